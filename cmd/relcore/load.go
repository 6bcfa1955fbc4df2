package main

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/pthm/relcore/internal/cliutil"
	"github.com/pthm/relcore/internal/config"
	"github.com/pthm/relcore/model"
	"github.com/pthm/relcore/schema"
	"github.com/pthm/relcore/schema/fga"
)

// loadSchema parses the schema file named in cfg, dispatching on its
// extension: ".fga" goes through the OpenFGA DSL adapter, anything else
// is treated as relcore's native YAML format.
func loadSchema(cfg *config.Config) (*schema.Schema, error) {
	path := resolveString(schemaFlag, cfg.Schema)
	if hasFGAExt(path) {
		s, err := fga.ParseFile(path)
		if err != nil {
			return nil, cliutil.SchemaParseError("parsing fga schema", err)
		}
		return s, nil
	}

	s, err := schema.LoadYAMLFile(path)
	if err != nil {
		return nil, cliutil.SchemaParseError("parsing yaml schema", err)
	}
	return s, nil
}

func hasFGAExt(path string) bool {
	return len(path) > 4 && path[len(path)-4:] == ".fga"
}

// parseObjectRef parses a "type:id" reference, as used for the object
// argument of check/expand/write commands.
func parseObjectRef(ref string) (model.Object, error) {
	objType, id, _, hasRelation := splitRef(ref)
	if objType == "" || id == "" {
		return model.Object{}, fmt.Errorf("expected type:id, got %q", ref)
	}
	if hasRelation {
		return model.Object{}, fmt.Errorf("object reference %q must not include a #relation suffix", ref)
	}
	return model.NewObject(model.ObjectType(objType), id), nil
}

// parseSubjectRef parses a "type:id" or "type:id#relation" reference,
// as used for the subject argument of check/write commands.
func parseSubjectRef(ref string) (model.Subject, error) {
	objType, id, relation, hasRelation := splitRef(ref)
	if objType == "" || id == "" {
		return model.Subject{}, fmt.Errorf("expected type:id or type:id#relation, got %q", ref)
	}
	if hasRelation {
		return model.NewUsersetSubject(model.ObjectType(objType), id, model.Relation(relation)), nil
	}
	return model.NewSubject(model.ObjectType(objType), id), nil
}

func splitRef(ref string) (objType, id, relation string, hasRelation bool) {
	colon := -1
	for i := 0; i < len(ref); i++ {
		if ref[i] == ':' {
			colon = i
			break
		}
	}
	if colon < 0 {
		return "", "", "", false
	}
	objType = ref[:colon]
	rest := ref[colon+1:]

	for i := 0; i < len(rest); i++ {
		if rest[i] == '#' {
			return objType, rest[:i], rest[i+1:], true
		}
	}
	return objType, rest, "", false
}

// openDB opens a database connection using the db flag, falling back
// to the config's resolved DSN.
func openDB(cfg *config.Config) (*sql.DB, error) {
	dsn := dbFlag
	if dsn == "" {
		var err error
		dsn, err = cfg.DSN()
		if err != nil {
			return nil, cliutil.ConfigError("database configuration", err)
		}
	}
	if dsn == "" {
		return nil, cliutil.ConfigError("database URL is required (use --db or set in config)", nil)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, cliutil.DBConnectError("connecting to database", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, cliutil.DBConnectError("pinging database", err)
	}
	return db, nil
}

// resolveString returns the first non-empty value, implementing the
// flag > config > default precedence used throughout the CLI.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

