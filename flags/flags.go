package flags

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "ENVGATE"

func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	Checks = &cli.StringFlag{
		Name:     "checks",
		Value:    "",
		Required: true,
		EnvVars:  prefixEnvVars("CHECKS"),
		Usage:    "Path to the checks file (eg. 'checks.yaml')",
	}
	LockDir = &cli.StringFlag{
		Name:    "lock-dir",
		Value:   "",
		EnvVars: prefixEnvVars("LOCK_DIR"),
		Usage:   "Directory for cross-process lock files (defaults to a well-known temp location)",
	}
	Workers = &cli.IntFlag{
		Name:    "workers",
		Value:   1,
		EnvVars: prefixEnvVars("WORKERS"),
		Usage:   "Number of parallel workers (1 runs checks strictly in declaration order)",
	}
	Timeout = &cli.DurationFlag{
		Name:    "timeout",
		Value:   0,
		EnvVars: prefixEnvVars("TIMEOUT"),
		Usage:   "Global deadline for the whole run (e.g. '2m'). 0 disables the deadline.",
	}
	JSONOutput = &cli.BoolFlag{
		Name:    "json",
		Value:   false,
		EnvVars: prefixEnvVars("JSON"),
		Usage:   "Emit the structured JSON report instead of the text report",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log.level",
		Value:   "info",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Usage:   "The lowest log level that will be output (trace|debug|info|warn|error|crit)",
	}
)

var requiredFlags = []cli.Flag{
	Checks,
}

var optionalFlags = []cli.Flag{
	LockDir,
	Workers,
	Timeout,
	JSONOutput,
	LogLevel,
}

var Flags []cli.Flag

func init() {
	Flags = append(requiredFlags, optionalFlags...)
}

func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}

// ParseTimeout guards against negative deadlines from the environment.
func ParseTimeout(d time.Duration) (time.Duration, error) {
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative, got %s", d)
	}
	return d, nil
}
