package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/relcore/engine"
	"github.com/pthm/relcore/internal/cliutil"
	"github.com/pthm/relcore/model"
	"github.com/pthm/relcore/store/postgres"
)

var writeDelete bool

var writeCmd = &cobra.Command{
	Use:   "write <subject> <relation> <object>",
	Short: "Write or delete a tuple",
	Long: `Write adds a tuple to the store after validating it against the schema.
With --delete, the tuple is removed instead, without schema validation
(so a tuple from a relation that's since been removed can still be
cleaned up).`,
	Example: `  relcore write user:alice editor document:doc1
  relcore write --delete user:alice editor document:doc1`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSchema(cfg)
		if err != nil {
			return err
		}

		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		subject, err := parseSubjectRef(args[0])
		if err != nil {
			return cliutil.GeneralError("parsing subject", err)
		}
		object, err := parseObjectRef(args[2])
		if err != nil {
			return cliutil.GeneralError("parsing object", err)
		}
		relation := model.Relation(args[1])
		tuple := model.NewTuple(subject, relation, object)

		e := engine.New(postgres.New(db), s)
		ctx := context.Background()

		if writeDelete {
			if err := e.DeleteTuple(ctx, tuple); err != nil {
				return cliutil.GeneralError("delete failed", err)
			}
			if !quiet {
				fmt.Printf("Deleted %s\n", tuple)
			}
			return nil
		}

		if err := e.WriteTuple(ctx, tuple); err != nil {
			if model.IsValidationError(err) {
				return cliutil.SchemaParseError("tuple failed schema validation", err)
			}
			return cliutil.GeneralError("write failed", err)
		}
		if !quiet {
			fmt.Printf("Wrote %s\n", tuple)
		}
		return nil
	},
}

func init() {
	writeCmd.Flags().StringVar(&dbFlag, "db", "", "database URL")
	writeCmd.Flags().BoolVar(&writeDelete, "delete", false, "delete the tuple instead of writing it")
}
