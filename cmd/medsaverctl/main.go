// Command medsaverctl is the operator CLI: schema migration, catalogue
// import, manual reminder dispatch and role management.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"medsaver/internal/app"
	"medsaver/internal/config"
	"medsaver/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg *config.Config
	log *zap.Logger

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "medsaverctl",
	Short:         "Operate a medsaver deployment",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		log, err = logger.New(cfg.Env, level)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	medicinesCmd.AddCommand(medicinesImportCmd)
	remindersCmd.AddCommand(remindersDispatchCmd)
	usersCmd.AddCommand(usersPromoteCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(medicinesCmd)
	rootCmd.AddCommand(remindersCmd)
	rootCmd.AddCommand(usersCmd)
}

// openApp connects and wires services for a single command.
func openApp(ctx context.Context) (*app.App, error) {
	return app.Open(ctx, cfg, log)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
