package database

import (
	"context"
	"fmt"
	"strings"

	"mini-orm/core/orm"

	"gorm.io/gorm"
)

var _ orm.Store = (*Connection)(nil)

// Connection adapts a gorm connection to the orm Store contract.
// Statements are issued as raw SQL with quoted identifiers and bound values.
type Connection struct {
	db *gorm.DB
}

// NewConnection wraps an open gorm connection.
func NewConnection(db *gorm.DB) *Connection {
	return &Connection{db: db}
}

// Open connects with cfg and wraps the result.
func Open(cfg Config) (*Connection, error) {
	db, err := Connect(cfg)
	if err != nil {
		return nil, &orm.ConnectivityError{Op: "connect", Err: err}
	}
	return NewConnection(db), nil
}

// DB returns the underlying gorm connection.
func (c *Connection) DB() *gorm.DB {
	return c.db
}

// Close releases the underlying connection pool.
func (c *Connection) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// FetchColumnNames returns the table's columns in ordinal order.
func (c *Connection) FetchColumnNames(ctx context.Context, table string) ([]string, error) {
	columns, err := GetTableColumns(c.db.WithContext(ctx), table)
	if err != nil {
		return nil, &orm.ConnectivityError{Op: "fetch columns", Err: err}
	}
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Field
	}
	return names, nil
}

// FetchIdentityColumns returns the auto-increment columns of the table.
func (c *Connection) FetchIdentityColumns(ctx context.Context, table string) ([]string, error) {
	columns, err := GetTableColumns(c.db.WithContext(ctx), table)
	if err != nil {
		return nil, &orm.ConnectivityError{Op: "fetch identity columns", Err: err}
	}
	var names []string
	for _, col := range columns {
		if col.IsIdentity() {
			names = append(names, col.Field)
		}
	}
	return names, nil
}

// FetchRows selects every row of table, values positioned like columns.
func (c *Connection) FetchRows(ctx context.Context, table string, columns []string) ([][]any, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", quoteList(c.db, columns), quote(c.db, table))
	rows, err := c.db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, &orm.ConnectivityError{Op: "fetch rows", Err: err}
	}
	defer rows.Close()

	var out [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, &orm.ConnectivityError{Op: "fetch rows", Err: err}
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, &orm.ConnectivityError{Op: "fetch rows", Err: err}
	}
	return out, nil
}

// ExecuteNonQuery runs a statement and returns the affected row count.
func (c *Connection) ExecuteNonQuery(ctx context.Context, query string, args ...any) (int64, error) {
	return writer{db: c.db}.exec(ctx, "execute", query, args)
}

// ExecuteScalarQuery runs a query and returns the first column of every row.
func (c *Connection) ExecuteScalarQuery(ctx context.Context, query string, args ...any) ([]any, error) {
	rows, err := c.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, &orm.ConnectivityError{Op: "execute scalar", Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &orm.ConnectivityError{Op: "execute scalar", Err: err}
	}

	var out []any
	for rows.Next() {
		values := make([]any, len(cols))
		targets := make([]any, len(cols))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, &orm.ConnectivityError{Op: "execute scalar", Err: err}
		}
		out = append(out, values[0])
	}
	if err := rows.Err(); err != nil {
		return nil, &orm.ConnectivityError{Op: "execute scalar", Err: err}
	}
	return out, nil
}

// Begin opens the transaction of one save cycle.
func (c *Connection) Begin(ctx context.Context) (orm.Transaction, error) {
	tx := c.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, &orm.ConnectivityError{Op: "begin", Err: tx.Error}
	}
	return &transaction{writer: writer{db: tx}}, nil
}

type transaction struct {
	writer
}

func (t *transaction) Commit() error {
	if err := t.db.Commit().Error; err != nil {
		return &orm.ConnectivityError{Op: "commit", Err: err}
	}
	return nil
}

func (t *transaction) Rollback() error {
	if err := t.db.Rollback().Error; err != nil {
		return &orm.ConnectivityError{Op: "rollback", Err: err}
	}
	return nil
}

// writer issues reconciliation statements and enforces the row-count policy.
type writer struct {
	db *gorm.DB
}

func (w writer) exec(ctx context.Context, op, query string, args []any) (int64, error) {
	res := w.db.WithContext(ctx).Exec(query, args...)
	if res.Error != nil {
		return 0, &orm.ConnectivityError{Op: op, Err: res.Error}
	}
	return res.RowsAffected, nil
}

// InsertRows issues one multi-row INSERT. When identity is set it returns the
// generated values of that column, one per row in order.
func (w writer) InsertRows(ctx context.Context, table string, columns []string, rows [][]any, identity string) ([]any, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	query, args := insertStatement(w.db, table, columns, rows)
	if identity == "" {
		affected, err := w.exec(ctx, "insert", query, args)
		if err != nil {
			return nil, err
		}
		return nil, orm.CheckInserted(table, len(rows), affected)
	}

	// gorm's Exec drops the driver result, so go to the pool for LastInsertId.
	res, err := w.db.Statement.ConnPool.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, &orm.ConnectivityError{Op: "insert", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, &orm.ConnectivityError{Op: "insert", Err: err}
	}
	if err := orm.CheckInserted(table, len(rows), affected); err != nil {
		return nil, err
	}
	last, err := res.LastInsertId()
	if err != nil {
		return nil, &orm.ConnectivityError{Op: "insert", Err: err}
	}
	return generatedKeys(w.db.Dialector.Name(), last, len(rows)), nil
}

// generatedKeys spreads the id reported for a multi-row INSERT over its rows.
// MySQL reports the first generated id and SQLite the last; both hand out
// consecutive values within one statement.
func generatedKeys(dialect string, reported int64, n int) []any {
	first := reported
	if dialect == DriverSQLite {
		first = reported - int64(n) + 1
	}
	keys := make([]any, n)
	for i := range keys {
		keys[i] = first + int64(i)
	}
	return keys
}

// UpdateRows issues one UPDATE per row, keyed by its primary key.
func (w writer) UpdateRows(ctx context.Context, table string, columns []string, values [][]any, keyColumns []string, keys [][]any) error {
	query := updateStatement(w.db, table, columns, keyColumns)
	for i, key := range keys {
		args := append(append(make([]any, 0, len(columns)+len(key)), values[i]...), key...)
		affected, err := w.exec(ctx, "update", query, args)
		if err != nil {
			return err
		}
		if err := orm.CheckUpdated(table, key, affected); err != nil {
			return err
		}
	}
	return nil
}

// DeleteRows issues one DELETE per key.
func (w writer) DeleteRows(ctx context.Context, table string, keyColumns []string, keys [][]any) error {
	query := deleteStatement(w.db, table, keyColumns)
	for _, key := range keys {
		affected, err := w.exec(ctx, "delete", query, key)
		if err != nil {
			return err
		}
		if err := orm.CheckDeleted(table, key, affected); err != nil {
			return err
		}
	}
	return nil
}

func insertStatement(db *gorm.DB, table string, columns []string, rows [][]any) (string, []any) {
	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",") + ")"
	tuples := make([]string, len(rows))
	args := make([]any, 0, len(rows)*len(columns))
	for i, r := range rows {
		tuples[i] = placeholder
		args = append(args, r...)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		quote(db, table), quoteList(db, columns), strings.Join(tuples, ","))
	return query, args
}

func updateStatement(db *gorm.DB, table string, columns, keyColumns []string) string {
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		quote(db, table), assignments(db, columns, ", "), assignments(db, keyColumns, " AND "))
}

func deleteStatement(db *gorm.DB, table string, keyColumns []string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s", quote(db, table), assignments(db, keyColumns, " AND "))
}

func assignments(db *gorm.DB, columns []string, sep string) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = quote(db, c) + " = ?"
	}
	return strings.Join(parts, sep)
}

func quoteList(db *gorm.DB, names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quote(db, n)
	}
	return strings.Join(quoted, ",")
}
