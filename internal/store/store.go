// Package store persists a shell session in SQLite: the input history and
// the definitions (functions, bound variables, equations) that are
// replayed into a fresh System on start.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/njchilds90/mathkit"
)

type Kind string

const (
	FunctionKind Kind = "function"
	VariableKind Kind = "variable"
	EquationKind Kind = "equation"
)

// Definition is one saved definition. Params is only used by functions.
type Definition struct {
	Kind   Kind
	Name   string
	Params []string
	Body   string
}

type Entry struct {
	Line   string
	Result string
	At     time.Time
}

type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS definitions (
	kind   TEXT NOT NULL,
	name   TEXT NOT NULL,
	params TEXT NOT NULL DEFAULT '',
	body   TEXT NOT NULL,
	PRIMARY KEY (kind, name)
);
CREATE TABLE IF NOT EXISTS history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	line       TEXT NOT NULL,
	result     TEXT NOT NULL,
	created_at INTEGER NOT NULL
);`

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (st *Store) Close() error { return st.db.Close() }

// ============================================================
// History
// ============================================================

func (st *Store) AddHistory(ctx context.Context, line, result string) error {
	_, err := st.db.ExecContext(ctx,
		`INSERT INTO history (line, result, created_at) VALUES (?, ?, ?)`,
		line, result, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("store: add history: %w", err)
	}
	return nil
}

// History returns the most recent limit entries, oldest first.
func (st *Store) History(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := st.db.QueryContext(ctx,
		`SELECT line, result, created_at FROM history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: history: %w", err)
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var at int64
		if err := rows.Scan(&e.Line, &e.Result, &at); err != nil {
			return nil, fmt.Errorf("store: history: %w", err)
		}
		e.At = time.Unix(at, 0)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: history: %w", err)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// ============================================================
// Definitions
// ============================================================

// Save inserts or replaces d.
func (st *Store) Save(ctx context.Context, d Definition) error {
	_, err := st.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO definitions (kind, name, params, body) VALUES (?, ?, ?, ?)`,
		string(d.Kind), d.Name, strings.Join(d.Params, ","), d.Body)
	if err != nil {
		return fmt.Errorf("store: save %s %s: %w", d.Kind, d.Name, err)
	}
	return nil
}

func (st *Store) Delete(ctx context.Context, kind Kind, name string) error {
	_, err := st.db.ExecContext(ctx, `DELETE FROM definitions WHERE kind = ? AND name = ?`, string(kind), name)
	if err != nil {
		return fmt.Errorf("store: delete %s %s: %w", kind, name, err)
	}
	return nil
}

// SetEquations replaces every saved equation in one transaction.
func (st *Store) SetEquations(ctx context.Context, equations []string) error {
	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: equations: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM definitions WHERE kind = ?`, string(EquationKind)); err != nil {
		tx.Rollback()
		return fmt.Errorf("store: equations: %w", err)
	}
	for i, eq := range equations {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO definitions (kind, name, body) VALUES (?, ?, ?)`,
			string(EquationKind), fmt.Sprintf("%04d", i), eq)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("store: equation %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Definitions returns every saved definition ordered by kind and name.
func (st *Store) Definitions(ctx context.Context) ([]Definition, error) {
	rows, err := st.db.QueryContext(ctx, `SELECT kind, name, params, body FROM definitions ORDER BY kind, name`)
	if err != nil {
		return nil, fmt.Errorf("store: definitions: %w", err)
	}
	defer rows.Close()
	var out []Definition
	for rows.Next() {
		var d Definition
		var kind, params string
		if err := rows.Scan(&kind, &d.Name, &params, &d.Body); err != nil {
			return nil, fmt.Errorf("store: definitions: %w", err)
		}
		d.Kind = Kind(kind)
		if params != "" {
			d.Params = strings.Split(params, ",")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Restore replays the saved definitions into s. Functions are defined
// before variables are bound so that bound values may call them.
func (st *Store) Restore(ctx context.Context, s *mathkit.System) error {
	defs, err := st.Definitions(ctx)
	if err != nil {
		return err
	}
	for _, k := range []Kind{FunctionKind, VariableKind, EquationKind} {
		for _, d := range defs {
			if d.Kind != k {
				continue
			}
			if err := restore(s, d); err != nil {
				return fmt.Errorf("store: restore %s %s: %w", d.Kind, d.Name, err)
			}
		}
	}
	return nil
}

func restore(s *mathkit.System, d Definition) error {
	switch d.Kind {
	case FunctionKind:
		_, err := s.DefineFunction(d.Name, d.Params, d.Body)
		return err
	case VariableKind:
		v, err := s.ParseValue(d.Body)
		if err != nil {
			return err
		}
		s.Bind(s.Variable(d.Name), v, true)
		return nil
	case EquationKind:
		eq, err := s.ParseEquation(d.Body)
		if err != nil {
			return err
		}
		s.Equations = append(s.Equations, eq)
		return nil
	}
	return fmt.Errorf("unknown kind %q", d.Kind)
}
