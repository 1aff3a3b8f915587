package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banshee-data/cellmeasure/internal/storage/sqlite"
)

func newMigrateCommand() *cobra.Command {
	var dbPath string

	migrateCmd := &cobra.Command{
		Use:         "migrate",
		Short:       "Manage the measurement database schema",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}
	migrateCmd.PersistentFlags().StringVar(&dbPath, "db", "cellmeasure.db", "SQLite database path")

	withStore := func(fn func(*sqlite.Store) error) error {
		s, err := sqlite.Connect(dbPath)
		if err != nil {
			return err
		}
		defer s.Close()
		return fn(s)
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s *sqlite.Store) error { return s.MigrateUp() })
		},
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s *sqlite.Store) error { return s.MigrateDown() })
		},
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s *sqlite.Store) error {
				v, dirty, err := s.MigrateVersion()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", v, dirty)
				return err
			})
		},
	})

	return migrateCmd
}
