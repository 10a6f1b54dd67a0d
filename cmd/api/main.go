package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/garcia/todolist/cmd/api/commands"
)

// @title Todo API
// @version 1.0
// @description CRUD over a single todolist table.
// @host localhost:3001
// @BasePath /

func main() {
	rootCmd := &cobra.Command{
		Use:           "todolist",
		Short:         "Todo list API server",
		Long:          `todolist serves create, list, update and delete operations over a single todo table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
