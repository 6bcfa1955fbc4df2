package postgres

import _ "embed"

// TuplesSQL is the DDL for the relcore_tuples table, applied idempotently
// by Migrate. Embedding it keeps the binary self-contained; no external
// SQL files need to ship alongside it.
//
//go:embed sql/tuples.sql
var TuplesSQL string
