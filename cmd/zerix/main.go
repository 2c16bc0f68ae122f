package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zerix-app/zerix/cmd/server"
	"github.com/zerix-app/zerix/internal/database"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "zerix",
		Short: "Zerix social backend",
	}

	rootCmd.AddCommand(
		serveCmd(),
		migrateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			server.NewServer().Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db := &database.Database{}
			if err := db.Connect(); err != nil {
				return fmt.Errorf("migrate failed: %v", err)
			}
			fmt.Println("Schema is up to date.")
			return nil
		},
	}
}
