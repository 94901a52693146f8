package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/766ms/Glam-rent-v1/database/seeders"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

// glamrent admin:create — bootstrap an administrator account.
var adminCreateCmd = &cobra.Command{
	Use:   "admin:create",
	Short: "Create (or promote) an administrator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminEmail == "" || adminPassword == "" {
			return fmt.Errorf("both --email and --password are required")
		}
		db, err := bootDB()
		if err != nil {
			return err
		}
		return seeders.CreateAdmin(db, adminName, adminEmail, adminPassword)
	},
}

func init() {
	adminCreateCmd.Flags().StringVar(&adminName, "name", "Administrator", "display name")
	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "login email")
	adminCreateCmd.Flags().StringVar(&adminPassword, "password", "", "login password")
}
