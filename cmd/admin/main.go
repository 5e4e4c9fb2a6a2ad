package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alertclinique/alertclinique-go/internal/config"
	"github.com/alertclinique/alertclinique-go/internal/repository"
	"github.com/alertclinique/alertclinique-go/internal/service"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	rootCmd := &cobra.Command{
		Use:          "admin",
		Short:        "Alert Clinique administration",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(createCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")

			cfg := config.Load()
			db, err := repository.NewDB(cfg.DatabaseDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			svc := service.NewAdminService(repository.NewAdminRepository(db))
			admin, err := svc.Create(ctx, username, password)
			if errors.Is(err, service.ErrAdminExists) {
				return fmt.Errorf("Admin with username %s already exists", username)
			}
			if err != nil {
				return fmt.Errorf("creating admin: %w", err)
			}

			fmt.Printf("Admin %s created (id %d).\n", admin.Username, admin.ID)
			return nil
		},
	}
	cmd.Flags().String("username", "", "Administrator username")
	cmd.Flags().String("password", "", "Administrator password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")

	return cmd
}
