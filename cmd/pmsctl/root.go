package main

import (
	"context"
	"fmt"
	"os"

	"darb_pms/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pmsctl",
	Short: "Operator tooling for the DARB PMS backend",
	Long: `pmsctl runs database migrations and provisions accounts
against the database configured by the DB_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

// openPool connects using only the database settings, so the CLI works
// without the server's JWT secret.
func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		return nil, err
	}
	pool, err := config.ConnectDB(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return pool, nil
}
