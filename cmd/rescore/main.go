package main

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Havertz69/rental-app/internal/config"
	"github.com/Havertz69/rental-app/internal/database"
	"github.com/Havertz69/rental-app/internal/logger"
)

var log = logger.Nop()

var rootCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Batch scoring and maintenance for the rental backend",
	Long: `Re-runs the pricing, forecast, payment and risk scorers across the whole
portfolio, applies schema migrations and manages API accounts.

Database settings come from the same DB_* environment variables the API
server reads.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		env, _ := cmd.Flags().GetString("env")
		level, _ := cmd.Flags().GetString("log-level")
		log = logger.NewWithOptions(logger.Options{Env: env, Level: level, Out: os.Stderr})
		return nil
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("env", "development", "environment name (development logs to the console, anything else as JSON)")
	f.String("log-level", "", "log level override: debug, info, warn or error")
}

// openDatabase connects using the DB_* environment.
func openDatabase(ctx context.Context) (*database.Database, error) {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return nil, eris.Wrap(err, "load database config")
	}
	db, err := database.NewPostgresPool(ctx, cfg)
	if err != nil {
		return nil, eris.Wrapf(err, "connect to %s:%s/%s", cfg.Host, cfg.Port, cfg.Name)
	}
	return db, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("Command failed", err, nil)
		os.Exit(1)
	}
}
