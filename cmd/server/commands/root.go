package commands

import (
	"fmt"
	"os"

	"github.com/sednex/community-backend/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	databaseURL string
	debugSQL    bool
)

// rootCmd runs the HTTP server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "SedNex community backend",
	Long: `REST backend for the SedNex community platform.

Commands:
  serve       - Run the HTTP API (default)
  migrate     - Create or update the database schema
  grant-role  - Assign a role to a registered user`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "db", "", "Database connection URL (defaults to DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&debugSQL, "debug-sql", false, "Log every SQL statement")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(grantRoleCmd)
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig() *config.Config {
	cfg := config.Load()
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	return cfg
}
