package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/jmoiron/sqlx"
)

// TableSpec describes how an entity is stored. Column names come from the
// entity's `db` struct tags.
type TableSpec struct {
	Name string
	// Keys are the primary key columns, in the order they appear in routes.
	Keys []string
	// Generated marks a single key column assigned by the database.
	Generated bool
	// OrderBy is the list ordering; it defaults to the key columns.
	OrderBy string
}

// Table executes the single-statement operations of one entity type. Every
// call acquires its own connection from the pool and releases it before
// returning.
type Table[T any] struct {
	db      *sqlx.DB
	spec    TableSpec
	all     []string
	columns []string

	insertSQL string
	getSQL    string
	listSQL   string
	updateSQL string
	deleteSQL string
}

func NewTable[T any](db *sqlx.DB, spec TableSpec) (*Table[T], error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("table %s: %s is not a struct", spec.Name, typ)
	}
	if len(spec.Keys) == 0 {
		return nil, fmt.Errorf("table %s: no key columns", spec.Name)
	}
	if spec.Generated && len(spec.Keys) != 1 {
		return nil, fmt.Errorf("table %s: a generated key must be a single column", spec.Name)
	}

	all := Columns(typ)
	known := make(map[string]bool, len(all))
	for _, c := range all {
		known[c] = true
	}
	for _, k := range spec.Keys {
		if !known[k] {
			return nil, fmt.Errorf("table %s: key column %q not found in %s", spec.Name, k, typ)
		}
	}

	t := &Table[T]{db: db, spec: spec, all: all}
	for _, c := range all {
		if !t.isKey(c) {
			t.columns = append(t.columns, c)
		}
	}
	if t.spec.OrderBy == "" {
		t.spec.OrderBy = strings.Join(spec.Keys, ", ")
	}
	t.buildStatements()
	return t, nil
}

func (t *Table[T]) buildStatements() {
	insertCols := t.all
	if t.spec.Generated {
		insertCols = t.columns
	}
	t.insertSQL = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.spec.Name, strings.Join(insertCols, ", "), named(insertCols, ", "))
	if t.spec.Generated {
		t.insertSQL += " RETURNING " + t.spec.Keys[0]
	}

	selectCols := strings.Join(t.all, ", ")
	t.getSQL = t.db.Rebind(fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		selectCols, t.spec.Name, t.keyClause()))
	t.listSQL = fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		selectCols, t.spec.Name, t.spec.OrderBy)

	if len(t.columns) > 0 {
		sets := make([]string, len(t.columns))
		for i, c := range t.columns {
			sets[i] = c + " = :" + c
		}
		keys := make([]string, len(t.spec.Keys))
		for i, k := range t.spec.Keys {
			keys[i] = k + " = :" + k
		}
		t.updateSQL = fmt.Sprintf("UPDATE %s SET %s WHERE %s",
			t.spec.Name, strings.Join(sets, ", "), strings.Join(keys, " AND "))
	}

	t.deleteSQL = t.db.Rebind(fmt.Sprintf("DELETE FROM %s WHERE %s", t.spec.Name, t.keyClause()))
}

func (t *Table[T]) Name() string { return t.spec.Name }

func (t *Table[T]) Keys() []string { return t.spec.Keys }

// Updatable reports whether the entity has non-key columns to replace.
func (t *Table[T]) Updatable() bool { return t.updateSQL != "" }

// Insert adds rec. For generated keys the assigned key is written back
// into rec.
func (t *Table[T]) Insert(ctx context.Context, rec *T) error {
	return t.withTx(ctx, "insert", func(tx *sqlx.Tx) error {
		if !t.spec.Generated {
			_, err := tx.NamedExecContext(ctx, t.insertSQL, rec)
			return err
		}

		query, args, err := tx.BindNamed(t.insertSQL, rec)
		if err != nil {
			return err
		}
		var id int64
		if err := tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
			return err
		}
		return t.SetKeys(rec, id)
	})
}

// Get returns the row with the given key values, or ErrNotFound.
func (t *Table[T]) Get(ctx context.Context, keys ...int64) (*T, error) {
	if err := t.checkKeys(keys); err != nil {
		return nil, err
	}
	conn, err := t.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var rec T
	if err := conn.GetContext(ctx, &rec, t.getSQL, args(keys)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &QueryError{Table: t.spec.Name, Op: "select", Err: err}
	}
	return &rec, nil
}

// List returns every row in display order. It never returns a nil slice.
func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	return t.selectAll(ctx, t.listSQL)
}

// ListBy returns the rows whose column equals value.
func (t *Table[T]) ListBy(ctx context.Context, column string, value interface{}) ([]T, error) {
	if !t.hasColumn(column) {
		return nil, fmt.Errorf("table %s: unknown column %q", t.spec.Name, column)
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? ORDER BY %s",
		strings.Join(t.all, ", "), t.spec.Name, column, t.spec.OrderBy)
	return t.selectAll(ctx, query, value)
}

// Update replaces every non-key column of the row identified by keys with
// the values in rec. It returns ErrNotFound when no row matched.
func (t *Table[T]) Update(ctx context.Context, rec *T, keys ...int64) error {
	if !t.Updatable() {
		return fmt.Errorf("table %s: no updatable columns", t.spec.Name)
	}
	if err := t.SetKeys(rec, keys...); err != nil {
		return err
	}
	return t.withTx(ctx, "update", func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, t.updateSQL, rec)
		if err != nil {
			return err
		}
		return requireAffected(res)
	})
}

// Delete removes the row identified by keys, or returns ErrNotFound.
func (t *Table[T]) Delete(ctx context.Context, keys ...int64) error {
	if err := t.checkKeys(keys); err != nil {
		return err
	}
	return t.withTx(ctx, "delete", func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, t.deleteSQL, args(keys)...)
		if err != nil {
			return err
		}
		return requireAffected(res)
	})
}

// SetKeys writes key values into rec's key fields, in key order.
func (t *Table[T]) SetKeys(rec *T, keys ...int64) error {
	if err := t.checkKeys(keys); err != nil {
		return err
	}
	v := reflect.ValueOf(rec).Elem()
	for i, col := range t.spec.Keys {
		f := t.db.Mapper.FieldByName(v, col)
		if f.Kind() == reflect.Ptr {
			f = f.Elem()
		}
		if !f.CanSet() || !f.CanInt() {
			return fmt.Errorf("table %s: key field %q is not an integer", t.spec.Name, col)
		}
		f.SetInt(keys[i])
	}
	return nil
}

// KeyValues returns the key columns of rec by name.
func (t *Table[T]) KeyValues(rec *T) map[string]interface{} {
	v := reflect.ValueOf(rec).Elem()
	out := make(map[string]interface{}, len(t.spec.Keys))
	for _, col := range t.spec.Keys {
		out[col] = t.db.Mapper.FieldByName(v, col).Interface()
	}
	return out
}

func (t *Table[T]) selectAll(ctx context.Context, query string, params ...interface{}) ([]T, error) {
	conn, err := t.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	out := make([]T, 0)
	if err := conn.SelectContext(ctx, &out, conn.Rebind(query), params...); err != nil {
		return nil, &QueryError{Table: t.spec.Name, Op: "select", Err: err}
	}
	return out, nil
}

// withTx runs fn inside a transaction on a dedicated connection. Any error
// rolls the transaction back; the connection is released on every path.
func (t *Table[T]) withTx(ctx context.Context, op string, fn func(*sqlx.Tx) error) error {
	conn, err := t.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return &QueryError{Table: t.spec.Name, Op: "begin", Err: err}
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, rbErr)
		}
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return &QueryError{Table: t.spec.Name, Op: op, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &QueryError{Table: t.spec.Name, Op: "commit", Err: err}
	}
	return nil
}

func (t *Table[T]) acquire(ctx context.Context) (*sqlx.Conn, error) {
	conn, err := t.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return conn, nil
}

func (t *Table[T]) checkKeys(keys []int64) error {
	if len(keys) != len(t.spec.Keys) {
		return fmt.Errorf("table %s: expected %d key values, got %d", t.spec.Name, len(t.spec.Keys), len(keys))
	}
	return nil
}

func (t *Table[T]) keyClause() string {
	parts := make([]string, len(t.spec.Keys))
	for i, k := range t.spec.Keys {
		parts[i] = k + " = ?"
	}
	return strings.Join(parts, " AND ")
}

func (t *Table[T]) isKey(col string) bool {
	for _, k := range t.spec.Keys {
		if k == col {
			return true
		}
	}
	return false
}

func (t *Table[T]) hasColumn(col string) bool {
	for _, c := range t.all {
		if c == col {
			return true
		}
	}
	return false
}

// Columns lists the `db`-tagged fields of a struct type in declaration order.
func Columns(typ reflect.Type) []string {
	var cols []string
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		if name == "" || name == "-" {
			continue
		}
		cols = append(cols, name)
	}
	return cols
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func named(cols []string, sep string) string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = ":" + c
	}
	return strings.Join(out, sep)
}

func args(keys []int64) []interface{} {
	out := make([]interface{}, len(keys))
	for i, k := range keys {
		out[i] = k
	}
	return out
}
