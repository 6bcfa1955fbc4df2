// Package postgres provides a transactional Postgres-backed TupleStore.
//
// The store is expressed against the minimal Querier/Execer interfaces
// rather than *sql.DB directly, so a caller can run checks inside its own
// transaction (passing a *sql.Tx) and see writes made earlier in that same
// transaction before they commit.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pthm/relcore/model"
	"github.com/pthm/relcore/store"
)

// Querier is satisfied by *sql.DB, *sql.Tx, and *sql.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Execer extends Querier with ExecContext, also satisfied by *sql.DB,
// *sql.Tx, and *sql.Conn.
type Execer interface {
	Querier
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Store is a TupleStore backed by the relcore_tuples table.
type Store struct {
	db Execer
}

var _ store.TupleStore = (*Store)(nil)

// New returns a Store that issues queries through db. db may be a
// *sql.DB, *sql.Tx, or *sql.Conn.
func New(db Execer) *Store {
	return &Store{db: db}
}

func (s *Store) WriteTuples(ctx context.Context, req model.WriteRequest) error {
	if tx, ok := s.db.(*sql.Tx); ok {
		return writeTuples(ctx, tx, req)
	}
	if db, ok := s.db.(interface {
		BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	}); ok {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()
		if err := writeTuples(ctx, tx, req); err != nil {
			return err
		}
		return tx.Commit()
	}
	// An Execer that cannot begin a transaction (neither *sql.Tx, *sql.DB
	// nor *sql.Conn): apply each statement directly, best-effort.
	return writeTuplesNonTx(ctx, s.db, req)
}

func writeTuples(ctx context.Context, tx *sql.Tx, req model.WriteRequest) error {
	for _, t := range req.Writes {
		if err := insertTuple(ctx, tx, t); err != nil {
			return err
		}
	}
	for _, t := range req.Deletes {
		if err := deleteTuple(ctx, tx, t); err != nil {
			return err
		}
	}
	return nil
}

func writeTuplesNonTx(ctx context.Context, ex Execer, req model.WriteRequest) error {
	for _, t := range req.Writes {
		if err := insertTuple(ctx, ex, t); err != nil {
			return err
		}
	}
	for _, t := range req.Deletes {
		if err := deleteTuple(ctx, ex, t); err != nil {
			return err
		}
	}
	return nil
}

const insertSQL = `
INSERT INTO relcore_tuples (subject_type, subject_id, subject_relation, relation, object_type, object_id)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (subject_type, subject_id, COALESCE(subject_relation, ''), relation, object_type, object_id)
DO NOTHING`

func insertTuple(ctx context.Context, ex Execer, t model.Tuple) error {
	_, err := ex.ExecContext(ctx, insertSQL,
		string(t.Subject.Object.Type), t.Subject.Object.ID, nullableRelation(t.Subject.SubjectRelation),
		string(t.Relation), string(t.Object.Type), t.Object.ID)
	return err
}

const deleteSQL = `
DELETE FROM relcore_tuples
WHERE subject_type = $1 AND subject_id = $2 AND COALESCE(subject_relation, '') = COALESCE($3, '')
  AND relation = $4 AND object_type = $5 AND object_id = $6`

func deleteTuple(ctx context.Context, ex Execer, t model.Tuple) error {
	_, err := ex.ExecContext(ctx, deleteSQL,
		string(t.Subject.Object.Type), t.Subject.Object.ID, nullableRelation(t.Subject.SubjectRelation),
		string(t.Relation), string(t.Object.Type), t.Object.ID)
	return err
}

func nullableRelation(r model.Relation) any {
	if r == "" {
		return nil
	}
	return string(r)
}

func (s *Store) ReadTuples(ctx context.Context, filter store.TupleFilter) ([]model.Tuple, error) {
	var b strings.Builder
	b.WriteString(`SELECT subject_type, subject_id, subject_relation, relation, object_type, object_id FROM relcore_tuples WHERE 1=1`)
	var args []any

	if filter.Subject != nil {
		args = append(args, string(filter.Subject.Object.Type), filter.Subject.Object.ID, nullableRelation(filter.Subject.SubjectRelation))
		n := len(args)
		fmt.Fprintf(&b, " AND subject_type = $%d AND subject_id = $%d AND COALESCE(subject_relation, '') = COALESCE($%d, '')", n-2, n-1, n)
	}
	if filter.Relation != nil {
		args = append(args, string(*filter.Relation))
		fmt.Fprintf(&b, " AND relation = $%d", len(args))
	}
	if filter.Object != nil {
		args = append(args, string(filter.Object.Type), filter.Object.ID)
		n := len(args)
		fmt.Fprintf(&b, " AND object_type = $%d AND object_id = $%d", n-1, n)
	}

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Tuple
	for rows.Next() {
		var subjType, subjID, rel, objType, objID string
		var subjRel sql.NullString
		if err := rows.Scan(&subjType, &subjID, &subjRel, &rel, &objType, &objID); err != nil {
			return nil, err
		}
		subject := model.Subject{Object: model.NewObject(model.ObjectType(subjType), subjID)}
		if subjRel.Valid {
			subject.SubjectRelation = model.Relation(subjRel.String)
		}
		out = append(out, model.NewTuple(subject, model.Relation(rel), model.NewObject(model.ObjectType(objType), objID)))
	}
	return out, rows.Err()
}

func (s *Store) TupleExists(ctx context.Context, t model.Tuple) (bool, error) {
	const q = `SELECT EXISTS(
		SELECT 1 FROM relcore_tuples
		WHERE subject_type = $1 AND subject_id = $2 AND COALESCE(subject_relation, '') = COALESCE($3, '')
		  AND relation = $4 AND object_type = $5 AND object_id = $6
	)`
	var exists bool
	err := s.db.QueryRowContext(ctx, q,
		string(t.Subject.Object.Type), t.Subject.Object.ID, nullableRelation(t.Subject.SubjectRelation),
		string(t.Relation), string(t.Object.Type), t.Object.ID,
	).Scan(&exists)
	return exists, err
}
