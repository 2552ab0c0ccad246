// Command migrate applies and inspects the database schema.
//
//	migrate up       apply all pending migrations
//	migrate down     roll back the most recent migration
//	migrate status   list every migration and whether it is applied
//	migrate reset    roll back every migration
//
// The target database is taken from --database-url or DATABASE_URL.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/backend/migrations"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Output of every subcommand goes to out.
func newRootCmd(out io.Writer) *cobra.Command {
	var (
		dsn      string
		db       *sql.DB
		provider *goose.Provider
	)

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the Trip Planner database schema",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if dsn == "" {
				return errors.New("database URL is required: set DATABASE_URL or --database-url")
			}
			var err error
			db, err = sql.Open("pgx", dsn)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			if err := db.PingContext(cmd.Context()); err != nil {
				return fmt.Errorf("ping database: %w", err)
			}
			provider, err = goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
			if err != nil {
				return fmt.Errorf("create goose provider: %w", err)
			}
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if db == nil {
				return nil
			}
			return db.Close()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&dsn, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection string")

	printResults := func(results []*goose.MigrationResult) {
		if len(results) == 0 {
			fmt.Fprintln(out, "no migrations to run")
			return
		}
		for _, r := range results {
			fmt.Fprintf(out, "%s %05d %s (%s)\n", r.Direction, r.Source.Version, r.Source.Path, r.Duration)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				results, err := provider.Up(cmd.Context())
				if err != nil {
					return fmt.Errorf("migrate up: %w", err)
				}
				printResults(results)
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				result, err := provider.Down(cmd.Context())
				if err != nil {
					if errors.Is(err, goose.ErrNoNextVersion) {
						printResults(nil)
						return nil
					}
					return fmt.Errorf("migrate down: %w", err)
				}
				printResults([]*goose.MigrationResult{result})
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				statuses, err := provider.Status(cmd.Context())
				if err != nil {
					return fmt.Errorf("migrate status: %w", err)
				}
				for _, s := range statuses {
					applied := "-"
					if !s.AppliedAt.IsZero() {
						applied = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(out, "%05d %-10s %-19s %s\n", s.Source.Version, s.State, applied, s.Source.Path)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Roll back every migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				results, err := provider.DownTo(cmd.Context(), 0)
				if err != nil {
					return fmt.Errorf("migrate reset: %w", err)
				}
				printResults(results)
				return nil
			},
		},
	)
	return root
}
