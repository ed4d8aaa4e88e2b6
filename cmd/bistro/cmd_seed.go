package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bistrohq/bistro/config"
	"github.com/bistrohq/bistro/database/seeders"
	"github.com/bistrohq/bistro/pkg/database"
)

// bistro seed — run all registered seeders.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		if err := database.Connect(); err != nil {
			return err
		}
		ctx := cmd.Context()
		defer database.Disconnect(ctx)

		fmt.Println("Running seeders…")
		return seeders.RunAll(ctx, database.DB)
	},
}
