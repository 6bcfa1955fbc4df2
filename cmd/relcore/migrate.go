package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/relcore/internal/cliutil"
	"github.com/pthm/relcore/store/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the tuple store schema to the database",
	Long:  `Create the relcore_tuples table and its indexes in PostgreSQL, if they don't already exist.`,
	Example: `  # Apply using --db
  relcore migrate --db postgres://localhost/mydb

  # Apply using config file settings
  relcore migrate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := postgres.Migrate(context.Background(), db); err != nil {
			return cliutil.GeneralError("applying migration", err)
		}

		if !quiet {
			fmt.Println("relcore_tuples table is up to date.")
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&dbFlag, "db", "", "database URL")
}
