package orm

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"mini-orm/core/schema"
)

// memTable is one table of memStore. Rows are positioned like columns.
type memTable struct {
	columns  []string
	identity []string
	rows     [][]any
	nextID   int64
}

func (t *memTable) clone() *memTable {
	c := *t
	c.rows = make([][]any, len(t.rows))
	for i, r := range t.rows {
		c.rows[i] = slices.Clone(r)
	}
	return &c
}

func (t *memTable) index(column string) int {
	return slices.IndexFunc(t.columns, func(c string) bool { return strings.EqualFold(c, column) })
}

func (t *memTable) find(keyColumns []string, key []any) []int {
	var hits []int
	for i, r := range t.rows {
		match := true
		for j, kc := range keyColumns {
			if schema.KeyString(r[t.index(kc)]) != schema.KeyString(key[j]) {
				match = false
				break
			}
		}
		if match {
			hits = append(hits, i)
		}
	}
	return hits
}

// memStore is an in-memory Store that logs every write statement.
type memStore struct {
	tables    map[string]*memTable
	reads     int
	begins    int
	log       []string
	affected  map[string]int64
	beginErr  error
	commitErr error
}

func newMemStore() *memStore {
	return &memStore{tables: map[string]*memTable{}, affected: map[string]int64{}}
}

func (s *memStore) create(name string, columns []string, identity ...string) {
	s.tables[name] = &memTable{columns: columns, identity: identity}
}

func (s *memStore) seed(name string, rows ...[]any) {
	t := s.tables[name]
	for _, r := range rows {
		t.rows = append(t.rows, r)
		for _, id := range t.identity {
			if n, ok := r[t.index(id)].(int64); ok && n > t.nextID {
				t.nextID = n
			}
		}
	}
}

// force makes the next statements of op on table report n affected rows.
func (s *memStore) force(op, table string, n int64) {
	s.affected[op+" "+table] = n
}

func (s *memStore) reported(op, table string, actual int64) int64 {
	if n, ok := s.affected[op+" "+table]; ok {
		return n
	}
	return actual
}

func (s *memStore) rows(table string) [][]any {
	return s.tables[table].rows
}

func (s *memStore) FetchColumnNames(_ context.Context, table string) ([]string, error) {
	s.reads++
	t, ok := s.tables[table]
	if !ok {
		return nil, nil
	}
	return slices.Clone(t.columns), nil
}

func (s *memStore) FetchIdentityColumns(_ context.Context, table string) ([]string, error) {
	s.reads++
	t, ok := s.tables[table]
	if !ok {
		return nil, nil
	}
	return slices.Clone(t.identity), nil
}

func (s *memStore) FetchRows(_ context.Context, table string, columns []string) ([][]any, error) {
	s.reads++
	t, ok := s.tables[table]
	if !ok {
		return nil, fmt.Errorf("no such table: %s", table)
	}
	out := make([][]any, len(t.rows))
	for i, r := range t.rows {
		row := make([]any, len(columns))
		for j, c := range columns {
			row[j] = r[t.index(c)]
		}
		out[i] = row
	}
	return out, nil
}

func (s *memStore) Begin(_ context.Context) (Transaction, error) {
	s.begins++
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	tables := make(map[string]*memTable, len(s.tables))
	for name, t := range s.tables {
		tables[name] = t.clone()
	}
	return &memTx{store: s, tables: tables}, nil
}

type memTx struct {
	store  *memStore
	tables map[string]*memTable
}

func (tx *memTx) InsertRows(_ context.Context, table string, columns []string, rows [][]any, identity string) ([]any, error) {
	t := tx.tables[table]
	var generated []any
	for _, r := range rows {
		full := make([]any, len(t.columns))
		for i, c := range columns {
			full[t.index(c)] = r[i]
		}
		for _, id := range t.identity {
			t.nextID++
			full[t.index(id)] = t.nextID
			if strings.EqualFold(id, identity) {
				generated = append(generated, t.nextID)
			}
		}
		t.rows = append(t.rows, full)
	}
	tx.store.log = append(tx.store.log, fmt.Sprintf("insert %s %d", table, len(rows)))
	if err := CheckInserted(table, len(rows), tx.store.reported("insert", table, int64(len(rows)))); err != nil {
		return nil, err
	}
	return generated, nil
}

func (tx *memTx) UpdateRows(_ context.Context, table string, columns []string, values [][]any, keyColumns []string, keys [][]any) error {
	t := tx.tables[table]
	for i, key := range keys {
		hits := t.find(keyColumns, key)
		for _, h := range hits {
			for j, c := range columns {
				t.rows[h][t.index(c)] = values[i][j]
			}
		}
		tx.store.log = append(tx.store.log, fmt.Sprintf("update %s %v", table, key))
		if err := CheckUpdated(table, key, tx.store.reported("update", table, int64(len(hits)))); err != nil {
			return err
		}
	}
	return nil
}

func (tx *memTx) DeleteRows(_ context.Context, table string, keyColumns []string, keys [][]any) error {
	t := tx.tables[table]
	for _, key := range keys {
		hits := t.find(keyColumns, key)
		for i := len(hits) - 1; i >= 0; i-- {
			t.rows = slices.Delete(t.rows, hits[i], hits[i]+1)
		}
		tx.store.log = append(tx.store.log, fmt.Sprintf("delete %s %v", table, key))
		if err := CheckDeleted(table, key, tx.store.reported("delete", table, int64(len(hits)))); err != nil {
			return err
		}
	}
	return nil
}

func (tx *memTx) Commit() error {
	if tx.store.commitErr != nil {
		return tx.store.commitErr
	}
	tx.store.tables = tx.tables
	tx.store.log = append(tx.store.log, "commit")
	return nil
}

func (tx *memTx) Rollback() error {
	tx.store.log = append(tx.store.log, "rollback")
	return nil
}
