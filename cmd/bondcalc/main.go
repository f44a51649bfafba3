// bondcalc projects German-method bonds: amortization schedules, price,
// duration, convexity, TCEA, TREA and yield.
//
// Input is a JSON bond object or array, read from --input or stdin. Output is
// JSON on stdout (CSV for a single schedule); logs go to stderr.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/meenmo/germanbond/cmd/bondcalc/internal/config"
	"github.com/meenmo/germanbond/cmd/bondcalc/internal/logger"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errRecordFailed reports that at least one record carries an error field.
// The records themselves were already written.
var errRecordFailed = errors.New("one or more records failed")

type app struct {
	cfg *config.Config
	log zerolog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errRecordFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "bondcalc",
		Short: "German-method bond schedules, prices and cost/return rates",
		Long: `bondcalc builds constant-amortization (German method) bond schedules with
optional partial or total grace, then prices them against a market rate and
solves the issuer's effective annual cost (TCEA), the investor's effective
annual return (TREA) and the yield to maturity.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				cfg.Log.Level = level
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			a.cfg = cfg
			a.log = logger.NewWithWriter(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty}, cmd.ErrOrStderr())
			logger.SetGlobalLogger(a.log)
			return nil
		},
	}

	root.PersistentFlags().String("config", "", "config file path (default: ./bondcalc.yaml or ~/.bondcalc/bondcalc.yaml)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(a.versionCmd())
	root.AddCommand(a.projectCmd())
	root.AddCommand(a.scheduleCmd())
	root.AddCommand(a.metricsCmd())
	return root
}
