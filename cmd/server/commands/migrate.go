package commands

import (
	"fmt"

	"github.com/sednex/community-backend/internal/database"
	"github.com/sednex/community-backend/pkg/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if _, err := database.Init(cfg.DatabaseURL, debugSQL); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("Database schema is up to date")
		return nil
	},
}
