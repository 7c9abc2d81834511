package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/interview-assistant/internal/infrastructure/database"
	"github.com/johnquangdev/interview-assistant/pkg/config"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the interview assistant database schema",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDB(func(db *gorm.DB) error {
					n, err := database.Migrate(db, migrate.Up, 0)
					if err != nil {
						return err
					}
					cmd.Printf("Applied %d migration(s)\n", n)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down [n]",
			Short: "Roll back the last n migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n < 1 {
						return fmt.Errorf("n must be a positive integer, got %q", args[0])
					}
					steps = n
				}
				return withDB(func(db *gorm.DB) error {
					n, err := database.Migrate(db, migrate.Down, steps)
					if err != nil {
						return err
					}
					cmd.Printf("Rolled back %d migration(s)\n", n)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show which migrations have been applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDB(func(db *gorm.DB) error {
					return printStatus(cmd, db)
				})
			},
		},
	)

	return root
}

func withDB(fn func(db *gorm.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		return err
	}
	defer database.CloseDB(db)

	return fn(db)
}

func printStatus(cmd *cobra.Command, db *gorm.DB) error {
	available, err := database.MigrationSource().FindMigrations()
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	records, err := database.MigrationRecords(db)
	if err != nil {
		return fmt.Errorf("failed to read migration records: %w", err)
	}
	applied := make(map[string]time.Time, len(records))
	for _, r := range records {
		applied[r.Id] = r.AppliedAt
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MIGRATION\tAPPLIED")
	for _, m := range available {
		status := "pending"
		if at, ok := applied[m.Id]; ok {
			status = at.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\n", m.Id, status)
	}
	return w.Flush()
}
