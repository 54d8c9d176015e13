package schema

import (
	"context"
	"strings"
)

// ColumnSource is the part of the store that schema discovery reads.
type ColumnSource interface {
	// FetchColumnNames returns the table's columns in ordinal order.
	FetchColumnNames(ctx context.Context, table string) ([]string, error)
	// FetchIdentityColumns returns the server-generated columns of the table.
	FetchIdentityColumns(ctx context.Context, table string) ([]string, error)
}

// Table is the discovered persistence shape of an entity type.
type Table struct {
	// Name is the store table name.
	Name string `yaml:"name"`
	// Columns are the persisted columns, in field declaration order.
	Columns []string `yaml:"columns"`
	// Keys are the primary key columns.
	Keys []string `yaml:"keys"`
	// Identity are the server-generated columns, excluded from writes.
	Identity []string `yaml:"identity,omitempty"`
}

// TableName resolves the table name for a set.
func TableName[T any](setName string, m *Mapping[T]) string {
	if m.Table != "" {
		return m.Table
	}
	return setName
}

// Discover derives the table shape of T by intersecting its mapping with the
// store's actual columns.
func Discover[T any](ctx context.Context, src ColumnSource, setName string, m *Mapping[T]) (*Table, error) {
	name := TableName(setName, m)
	typeName := m.EntityType().Name()

	dbColumns, err := src.FetchColumnNames(ctx, name)
	if err != nil {
		return nil, &SchemaError{Type: typeName, Table: name, Reason: "failed to fetch columns", Err: err}
	}
	if len(dbColumns) == 0 {
		return nil, &SchemaError{Type: typeName, Table: name, Reason: "table not found or has no columns"}
	}

	table := &Table{Name: name}
	for _, f := range m.Fields {
		if containsFold(dbColumns, f.Name) {
			table.Columns = append(table.Columns, f.Name)
		}
	}

	for _, k := range m.KeyFields() {
		if !containsFold(dbColumns, k.Name) {
			return nil, &SchemaError{Type: typeName, Table: name, Reason: "primary key " + k.Name + " is not a column of the table"}
		}
		table.Keys = append(table.Keys, k.Name)
	}

	identity, err := src.FetchIdentityColumns(ctx, name)
	if err != nil {
		return nil, &SchemaError{Type: typeName, Table: name, Reason: "failed to fetch identity columns", Err: err}
	}
	for _, c := range table.Columns {
		if containsFold(identity, c) {
			table.Identity = append(table.Identity, c)
		}
	}

	return table, nil
}

// IsIdentity reports whether column is server-generated.
func (t *Table) IsIdentity(column string) bool {
	return containsFold(t.Identity, column)
}

// Writable returns the columns that inserts and updates may set.
func (t *Table) Writable() []string {
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if !t.IsIdentity(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// HasIdentityKey reports whether any key column is server-generated.
func (t *Table) HasIdentityKey() bool {
	return t.IdentityKey() != ""
}

// IdentityKey returns the server-generated key column, or "" when no key
// column is generated.
func (t *Table) IdentityKey() string {
	for _, k := range t.Keys {
		if t.IsIdentity(k) {
			return k
		}
	}
	return ""
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
