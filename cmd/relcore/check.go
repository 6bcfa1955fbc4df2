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

var checkCmd = &cobra.Command{
	Use:   "check <subject> <relation> <object>",
	Short: "Check whether a subject holds a relation on an object",
	Long: `Check evaluates a single permission: does <subject> have <relation> on
<object>, considering direct grants, relation inheritance, and userset
indirection.

Subjects and objects are written as "type:id" (e.g. user:alice) or,
for a userset subject, "type:id#relation" (e.g. group:eng#member).`,
	Example: `  relcore check user:alice viewer document:doc1
  relcore check group:eng#member viewer document:doc1`,
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

		e := engine.New(postgres.New(db), s)
		resp, err := e.Check(context.Background(), model.CheckRequest{
			Subject: subject, Relation: relation, Object: object,
		})
		if err != nil {
			return cliutil.GeneralError("check failed", err)
		}

		if !quiet {
			fmt.Println(resp.Allowed)
		}
		if !resp.Allowed {
			return cliutil.DeniedError(fmt.Sprintf("%s does not have %s on %s", subject, relation, object))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&dbFlag, "db", "", "database URL")
}
