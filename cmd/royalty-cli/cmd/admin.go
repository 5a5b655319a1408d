package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"royalty-core/internal/service"
	"royalty-core/pkg/config"
	"royalty-core/pkg/database"
	"royalty-core/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string
	adminRole     string
)

var adminCreateCmd = &cobra.Command{
	Use:   "admin-create",
	Short: "Create a back-office administrator account",
	Run: func(cmd *cobra.Command, args []string) {
		config.Init()
		logger.Init(config.Global.App.Env)
		defer logger.Sync()

		db, err := database.ConnectPostgres(dsnFromConfig())
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			os.Exit(1)
		}
		rdb, err := database.ConnectRedis(config.Global.Redis.Addr, config.Global.Redis.Password, config.Global.Redis.DB)
		if err != nil {
			fmt.Printf("Redis connection failed: %v\n", err)
			os.Exit(1)
		}

		admins := service.NewAdminService(db, rdb, time.Duration(config.Global.Session.TTLHours)*time.Hour)
		admin, err := admins.CreateAdministrator(context.Background(), adminName, adminEmail, adminPassword, adminRole)
		if err != nil {
			fmt.Printf("Create failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Administrator created: id=%d email=%s role=%s\n", admin.ID, admin.Email, admin.Role)
	},
}

func init() {
	adminCreateCmd.Flags().StringVar(&adminName, "name", "", "display name")
	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "login email")
	adminCreateCmd.Flags().StringVar(&adminPassword, "password", "", "initial password")
	adminCreateCmd.Flags().StringVar(&adminRole, "role", "admin", "role label")
	adminCreateCmd.MarkFlagRequired("email")
	adminCreateCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(adminCreateCmd)
}
