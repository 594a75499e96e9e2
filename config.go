package envgate

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/envgate/envgate/flags"
)

type Config struct {
	// ChecksFile is the YAML declaration the binary runs. Library users
	// leave it empty and register entries directly.
	ChecksFile string
	// LockDir holds the cross-process lock files. Empty selects the
	// well-known temp location shared by runner processes on this host.
	LockDir string
	// MaxWorkers is the worker-pool width; 1 preserves declaration order.
	MaxWorkers int
	// Timeout is the global run deadline; zero disables it.
	Timeout time.Duration
	// JSONOutput selects the structured report over the text report.
	JSONOutput bool

	Log log.Logger
}

// NewConfig creates a Config from CLI flags.
func NewConfig(ctx *cli.Context, logger log.Logger) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}
	checksFile := ctx.String(flags.Checks.Name)
	if checksFile == "" {
		return nil, errors.New("checks file is required")
	}
	absChecksFile, err := filepath.Abs(checksFile)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for checks file: %w", err)
	}

	timeout, err := flags.ParseTimeout(ctx.Duration(flags.Timeout.Name))
	if err != nil {
		return nil, err
	}
	workers := ctx.Int(flags.Workers.Name)
	if workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", workers)
	}

	return &Config{
		ChecksFile: absChecksFile,
		LockDir:    ctx.String(flags.LockDir.Name),
		MaxWorkers: workers,
		Timeout:    timeout,
		JSONOutput: ctx.Bool(flags.JSONOutput.Name),
		Log:        logger,
	}, nil
}
