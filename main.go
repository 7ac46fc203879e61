// Package main is the TaskForge API server and its maintenance commands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const appName = "taskforge-api"

// Version is overridden at build time with -ldflags "-X main.Version=..."
var Version = "1.0.0"

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Task and project management REST API",
		Long: `TaskForge serves a REST API over users, projects, tasks and comments,
and keeps an activity log of every task change.

Running without a subcommand starts the HTTP server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")

	cmd.AddCommand(
		serveCmd(flags),
		migrateCmd(flags),
		seedCmd(flags),
		transferCmd(flags),
		versionCmd(),
	)
	return cmd
}

func serveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
}

func migrateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(flags)
		},
	}
}

func seedCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with the demo user, project and tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), flags)
		},
	}
}

func transferCmd(flags *globalFlags) *cobra.Command {
	var (
		sourceDriver string
		sourceURL    string
		batchSize    int
	)
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Copy all data from another database into the configured one",
		Long: `Copies users, projects, tasks, comments and activity logs from the source
database into the configured database. The target schema is migrated first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransfer(cmd.Context(), flags, sourceDriver, sourceURL, batchSize)
		},
	}
	cmd.Flags().StringVar(&sourceDriver, "source-driver", "sqlite", "Source database driver (postgres, sqlite)")
	cmd.Flags().StringVar(&sourceURL, "source-url", "", "Source database URL")
	cmd.Flags().IntVar(&batchSize, "batch-size", 500, "Rows copied per batch")
	_ = cmd.MarkFlagRequired("source-url")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	}
}
