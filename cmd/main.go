package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	envgate "github.com/envgate/envgate"
	"github.com/envgate/envgate/exitcodes"
	"github.com/envgate/envgate/flags"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "envgate"
	app.Usage = "Environment-gated check runner"
	app.Description = "envgate evaluates declared environment checks, runs the ones whose conditions hold, and reports the rest as ignored with a reason"
	app.Flags = flags.Flags
	app.Action = run

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			os.Exit(exitErr.ExitCode())
		}
		log.Crit("Application failed", "message", err)
	}
}

func run(ctx *cli.Context) error {
	lvl, err := log.LvlFromString(ctx.String(flags.LogLevel.Name))
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid log level: %v", err), exitcodes.RuntimeErr)
	}
	logger := log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, true))
	log.SetDefault(logger)

	cfg, err := envgate.NewConfig(ctx, logger)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to create config: %v", err), exitcodes.RuntimeErr)
	}

	harness, err := envgate.New(cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to create harness: %v", err), exitcodes.RuntimeErr)
	}

	summary, err := harness.Run(ctx.Context)
	if err != nil {
		return cli.Exit(envgate.NewRuntimeError(err).Error(), exitcodes.RuntimeErr)
	}
	if err := harness.Report(os.Stdout, summary); err != nil {
		return cli.Exit(fmt.Sprintf("failed to write report: %v", err), exitcodes.RuntimeErr)
	}

	if summary.ExitCode() != exitcodes.Success {
		return cli.Exit("", exitcodes.TestFailure)
	}
	return nil
}
