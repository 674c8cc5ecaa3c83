package store

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// stmtResult scripts the outcome of one Exec or QueryRow call. Statements
// consume results in call order, so a test scripts exactly the sequence it
// expects the repository to run.
type stmtResult struct {
	tag  pgconn.CommandTag
	vals []any
	err  error
}

// queryResult scripts one Query call (the pgxscan read paths).
type queryResult struct {
	cols []string
	rows [][]any
	err  error
}

type statement struct {
	sql  string
	args []any
}

// fakeDB satisfies DB without a database. It records every statement it
// sees, including those issued through a transaction, and tracks whether
// that transaction committed or rolled back.
type fakeDB struct {
	steps   []stmtResult
	queries []queryResult

	statements []statement

	beginErr  error
	commitErr error

	committed  bool
	rolledBack bool
}

func (d *fakeDB) pop() stmtResult {
	if len(d.steps) == 0 {
		panic("fakeDB: statement executed beyond scripted results")
	}
	next := d.steps[0]
	d.steps = d.steps[1:]
	return next
}

func (d *fakeDB) record(sql string, args []any) {
	d.statements = append(d.statements, statement{sql: sql, args: args})
}

func (d *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	return &fakeTx{db: d}, nil
}

func (d *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	d.record(sql, args)
	next := d.pop()
	return next.tag, next.err
}

func (d *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	d.record(sql, args)
	next := d.pop()
	return &fakeRow{vals: next.vals, err: next.err}
}

func (d *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	d.record(sql, args)
	if len(d.queries) == 0 {
		panic("fakeDB: query executed beyond scripted results")
	}
	next := d.queries[0]
	d.queries = d.queries[1:]
	if next.err != nil {
		return nil, next.err
	}
	return &fakeRows{cols: next.cols, rows: next.rows, idx: -1}, nil
}

// fakeTx shares the owning fakeDB's statement log and result script. The
// embedded interface panics on anything the repositories never call.
type fakeTx struct {
	pgx.Tx
	db *fakeDB
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.db.Exec(ctx, sql, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.db.QueryRow(ctx, sql, args...)
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.db.Query(ctx, sql, args...)
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.db.commitErr != nil {
		return t.db.commitErr
	}
	t.db.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if !t.db.committed {
		t.db.rolledBack = true
	}
	return nil
}

type fakeRow struct {
	vals []any
	err  error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.vals) {
		return fmt.Errorf("fakeRow: scanned %d destinations, scripted %d values", len(dest), len(r.vals))
	}
	for i, v := range r.vals {
		if err := assign(dest[i], v); err != nil {
			return err
		}
	}
	return nil
}

// fakeRows backs the pgxscan read paths. The embedded interface panics on
// anything scany does not call.
type fakeRows struct {
	pgx.Rows
	cols []string
	rows [][]any
	idx  int
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.idx]
	if len(dest) != len(row) {
		return fmt.Errorf("fakeRows: scanned %d destinations, scripted %d values", len(dest), len(row))
	}
	for i, v := range row {
		if err := assign(dest[i], v); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.idx], nil
}

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fields := make([]pgconn.FieldDescription, len(r.cols))
	for i, col := range r.cols {
		fields[i] = pgconn.FieldDescription{Name: col}
	}
	return fields
}

func (r *fakeRows) Close() {}

func (r *fakeRows) Err() error { return nil }

func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

// assign copies a scripted value into a scan destination, allocating when
// the destination is a pointer field. nil leaves the destination zero.
func assign(dest, val any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return fmt.Errorf("scan destination must be a non-nil pointer, got %T", dest)
	}

	ev := dv.Elem()
	if val == nil {
		ev.Set(reflect.Zero(ev.Type()))
		return nil
	}

	vv := reflect.ValueOf(val)
	switch {
	case vv.Type().AssignableTo(ev.Type()):
		ev.Set(vv)
	case ev.Kind() == reflect.Ptr && vv.Type().AssignableTo(ev.Type().Elem()):
		p := reflect.New(ev.Type().Elem())
		p.Elem().Set(vv)
		ev.Set(p)
	case vv.Type().ConvertibleTo(ev.Type()):
		ev.Set(vv.Convert(ev.Type()))
	default:
		return fmt.Errorf("cannot scan %T into %T", val, dest)
	}
	return nil
}
