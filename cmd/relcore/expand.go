package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm/relcore/engine"
	"github.com/pthm/relcore/expander"
	"github.com/pthm/relcore/internal/cliutil"
	"github.com/pthm/relcore/model"
	"github.com/pthm/relcore/store/postgres"
)

var expandMaxDepth int

var expandCmd = &cobra.Command{
	Use:   "expand <relation> <object>",
	Short: "Enumerate the subjects that hold a relation on an object",
	Long: `Expand lists every subject that holds <relation> on <object>, following
userset indirection, printed one per line. Relation inheritance is not
followed: holders of a relation that inherits from <relation> are not
listed unless they also hold <relation> directly or through a userset.`,
	Example: `  relcore expand viewer document:doc1`,
	Args:    cobra.ExactArgs(2),
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

		object, err := parseObjectRef(args[1])
		if err != nil {
			return cliutil.GeneralError("parsing object", err)
		}
		relation := model.Relation(args[0])

		e := engine.New(postgres.New(db), s)

		var subjects []model.Subject
		if expandMaxDepth > 0 {
			tree, err := e.Expand(context.Background(), model.ExpandRequest{Relation: relation, Object: object, MaxDepth: expandMaxDepth})
			if err != nil {
				return cliutil.GeneralError("expand failed", err)
			}
			subjects = expander.Flatten(tree)
		} else {
			subjects, err = e.ExpandAndFlatten(context.Background(), relation, object)
			if err != nil {
				return cliutil.GeneralError("expand failed", err)
			}
		}

		if !quiet {
			lines := make([]string, len(subjects))
			for i, s := range subjects {
				lines[i] = s.String()
			}
			fmt.Println(strings.Join(lines, "\n"))
		}
		return nil
	},
}

func init() {
	expandCmd.Flags().StringVar(&dbFlag, "db", "", "database URL")
	expandCmd.Flags().IntVar(&expandMaxDepth, "max-depth", 0, "override the expansion depth cap (0 = use the flattening default)")
}
