// Command transport solves a transportation problem read from a file and
// prints the least-cost start, the MODI pivots and the optimal plan.
//
// Usage:
//
//	transport --problem problem.yaml [--balance] [--format text|json]
//	          [--max-iterations N] [--log-level debug] [--log-format json] [--log-file path]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/lvtransport/internal/config"
	"github.com/katalvlaran/lvtransport/internal/logging"
	"github.com/katalvlaran/lvtransport/internal/report"
	"github.com/katalvlaran/lvtransport/transport"
)

// Exit codes.
const (
	exitOK         = 0
	exitUsage      = 2
	exitInput      = 3 // unreadable, invalid or unbalanced problem
	exitSolve      = 4 // engine failure
	exitOutputFail = 5
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("transport", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	problem := fs.String("problem", "", "problem file (yaml, json or toml)")
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}

		return exitUsage
	}
	if *problem == "" && fs.NArg() == 1 {
		*problem = fs.Arg(0)
	}

	cfg, err := config.Load(*problem, fs)
	if err != nil {
		fmt.Fprintln(stderr, "transport:", err)
		if errors.Is(err, config.ErrNoProblemFile) {
			fs.Usage()

			return exitUsage
		}

		return exitInput
	}

	logger, err := logging.New(cfg.Logging())
	if err != nil {
		fmt.Fprintln(stderr, "transport:", err)

		return exitUsage
	}
	defer logger.Close()

	logger.Info("solving",
		slog.String("problem", *problem),
		slog.Int("sources", len(cfg.Supply)),
		slog.Int("destinations", len(cfg.Demand)),
		slog.Bool("balance", cfg.Solver.Balance))

	opts := append(cfg.Options(), transport.WithLogger(logger.Logger))
	res, err := transport.Solve(ctx, cfg.Instance(), opts...)
	if err != nil {
		logger.Error("solve failed", slog.Any("error", err))
		fmt.Fprintln(stderr, "transport:", err)
		var ie *transport.ImbalanceError
		if errors.As(err, &ie) {
			fmt.Fprintln(stderr, "transport: rerun with --balance to add a dummy source or destination")

			return exitInput
		}
		if isInputError(err) {
			return exitInput
		}

		return exitSolve
	}
	logger.Info("solved",
		slog.Float64("initial_cost", res.InitialCost),
		slog.Float64("final_cost", res.FinalCost),
		slog.Int("pivots", len(res.Pivots)),
		slog.Bool("degenerate", res.Degenerate))

	if cfg.Format == "json" {
		err = report.JSON(stdout, res, cfg.Solver.Sentinel)
	} else {
		err = report.Text(stdout, res, cfg.Solver.Sentinel)
	}
	if err != nil {
		logger.Error("write report", slog.Any("error", err))

		return exitOutputFail
	}

	return exitOK
}

func isInputError(err error) bool {
	for _, target := range []error{
		transport.ErrEmptyInstance,
		transport.ErrDimensionMismatch,
		transport.ErrNegativeValue,
		transport.ErrNonFinite,
		transport.ErrBadOptions,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
