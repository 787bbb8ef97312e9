package commands

import (
	"fmt"

	"github.com/sednex/community-backend/internal/database"
	"github.com/sednex/community-backend/internal/services"
	"github.com/sednex/community-backend/pkg/logger"
	"github.com/spf13/cobra"
)

// grantRoleCmd bootstraps the first admin, who can then manage roles
// through the API.
var grantRoleCmd = &cobra.Command{
	Use:   "grant-role <subject-id> <role>",
	Short: "Assign a role to a registered user",
	Example: `  server grant-role Xb3kQ9... admin
  server grant-role Xb3kQ9... user`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		db, err := database.Connect(cfg.DatabaseURL, debugSQL)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}

		users := services.NewUserService(db, nil)
		user, err := users.SetRole(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		logger.WithFields(logger.Fields{
			"subject": user.SubjectID,
			"email":   user.Email,
			"role":    user.Role,
		}).Info("Role updated")
		return nil
	},
}
