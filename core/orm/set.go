package orm

import (
	"context"
	"fmt"
	"iter"
	"reflect"
	"slices"

	"mini-orm/core/schema"

	"github.com/go-playground/validator/v10"
)

// loadable is the part of a set driven by Open.
type loadable interface {
	setName() string
	entityType() reflect.Type
	tableInfo() *schema.Table
	check() error
	load(ctx context.Context, r Reader) error
	loaded() int
	mapRelations(reg *registry) error
	reset()
}

// relationTarget is what another set needs to resolve navigations into this one.
type relationTarget interface {
	tableInfo() *schema.Table
	isJoin() bool
	referencesTo(target reflect.Type) []string
	keyNames() []string
	indexBy(field string) (map[string][]any, error)
}

// savable is the part of a set driven by SaveChanges.
type savable interface {
	validate(v *validator.Validate) error
	summary() (ChangeSummary, error)
	persist(ctx context.Context, w Writer, obs observer) (persistStats, error)
	accept()
}

// entitySet is the type-erased view of a Set held by the registry.
type entitySet interface {
	loadable
	relationTarget
	savable
}

// Set is the ordered, mutable collection of loaded entities of one type.
// Sets are obtained from Declare and filled by Open.
type Set[T any] struct {
	name     string
	mapping  *schema.Mapping[T]
	table    *schema.Table
	entities []*T
	tracker  *ChangeTracker[T]
}

func newSet[T any](name string, m *schema.Mapping[T]) *Set[T] {
	return &Set[T]{
		name:    name,
		mapping: m,
		tracker: newChangeTracker(m, nil),
	}
}

// Add appends e and records it as pending insert. Adding back an entity
// removed since the last load or commit cancels its pending delete instead.
// Adding an entity that is already live fails.
func (s *Set[T]) Add(e *T) error {
	if e == nil {
		return &NullEntityError{Set: s.name, Op: "add"}
	}
	if slices.Contains(s.entities, e) {
		return &EntityStateError{Set: s.name, Op: "add", Reason: "entity is already in the set"}
	}
	s.entities = append(s.entities, e)
	s.tracker.recordAdd(e)
	return nil
}

// Remove drops e from the set. It returns false when e is not live.
// Removing a pending insert cancels it instead of scheduling a delete.
func (s *Set[T]) Remove(e *T) (bool, error) {
	if e == nil {
		return false, &NullEntityError{Set: s.name, Op: "remove"}
	}
	i := slices.Index(s.entities, e)
	if i < 0 {
		return false, nil
	}
	s.entities = slices.Delete(s.entities, i, i+1)
	s.tracker.recordRemove(e)
	return true, nil
}

// RemoveRange removes every entity in es.
func (s *Set[T]) RemoveRange(es []*T) error {
	for _, e := range es {
		if _, err := s.Remove(e); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes every live entity one at a time.
func (s *Set[T]) Clear() error {
	return s.RemoveRange(slices.Clone(s.entities))
}

// Contains reports whether e is live in the set.
func (s *Set[T]) Contains(e *T) bool {
	return slices.Contains(s.entities, e)
}

// Len returns the number of live entities.
func (s *Set[T]) Len() int {
	return len(s.entities)
}

// All iterates live entities in load order followed by add order.
func (s *Set[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, e := range slices.Clone(s.entities) {
			if !yield(e) {
				return
			}
		}
	}
}

// Slice returns a copy of the live entities.
func (s *Set[T]) Slice() []*T {
	return slices.Clone(s.entities)
}

// First returns the first live entity or nil.
func (s *Set[T]) First() *T {
	if len(s.entities) == 0 {
		return nil
	}
	return s.entities[0]
}

// Last returns the last live entity or nil.
func (s *Set[T]) Last() *T {
	if len(s.entities) == 0 {
		return nil
	}
	return s.entities[len(s.entities)-1]
}

// Find returns the first live entity matching pred, or nil.
func (s *Set[T]) Find(pred func(*T) bool) *T {
	for _, e := range s.entities {
		if pred(e) {
			return e
		}
	}
	return nil
}

// Name returns the declared set name.
func (s *Set[T]) Name() string {
	return s.name
}

// Table returns the discovered table shape, nil before Open.
func (s *Set[T]) Table() *schema.Table {
	return s.table
}

// Mapping returns the set's persistence descriptor.
func (s *Set[T]) Mapping() *schema.Mapping[T] {
	return s.mapping
}

// Tracker exposes the set's change tracker for inspection.
func (s *Set[T]) Tracker() *ChangeTracker[T] {
	return s.tracker
}

func (s *Set[T]) setName() string          { return s.name }
func (s *Set[T]) entityType() reflect.Type { return s.mapping.EntityType() }
func (s *Set[T]) tableInfo() *schema.Table { return s.table }
func (s *Set[T]) loaded() int              { return len(s.entities) }
func (s *Set[T]) isJoin() bool             { return s.mapping.Join }
func (s *Set[T]) check() error             { return s.mapping.Check(s.name) }
func (s *Set[T]) referencesTo(target reflect.Type) []string {
	return s.mapping.ReferencesTo(target)
}

func (s *Set[T]) keyNames() []string {
	keys := s.mapping.KeyFields()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.Name
	}
	return names
}

func (s *Set[T]) tableName() string {
	if s.table != nil {
		return s.table.Name
	}
	return schema.TableName(s.name, s.mapping)
}

// load discovers the table, fetches every row and captures the baseline.
func (s *Set[T]) load(ctx context.Context, r Reader) error {
	table, err := schema.Discover(ctx, r, s.name, s.mapping)
	if err != nil {
		return err
	}
	s.table = table
	s.tracker.persisted(s.fieldsFor(table.Columns))

	rows, err := r.FetchRows(ctx, table.Name, table.Columns)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", table.Name, err)
	}

	fields := s.fieldsFor(table.Columns)

	entities := make([]*T, 0, len(rows))
	for _, row := range rows {
		if len(row) != len(fields) {
			return fmt.Errorf("failed to load %s: row has %d values for %d columns", table.Name, len(row), len(fields))
		}
		e := new(T)
		for i, f := range fields {
			if err := f.Set(e, row[i]); err != nil {
				return fmt.Errorf("failed to load %s: %w", table.Name, err)
			}
		}
		entities = append(entities, e)
	}

	s.entities = entities
	s.tracker.rebase(entities)
	return nil
}

// indexBy groups live entities by the key string of field.
func (s *Set[T]) indexBy(field string) (map[string][]any, error) {
	f := s.mapping.Field(field)
	if f == nil {
		return nil, &SchemaError{Type: s.entityType().Name(), Table: s.tableName(), Reason: "unknown field " + field}
	}
	index := make(map[string][]any, len(s.entities))
	for _, e := range s.entities {
		k := schema.KeyString(f.Get(e))
		index[k] = append(index[k], e)
	}
	return index, nil
}

// summary counts the pending work of the set.
func (s *Set[T]) summary() (ChangeSummary, error) {
	modified, err := s.tracker.Modified(s.tableName(), s.entities)
	if err != nil {
		return ChangeSummary{}, err
	}
	return ChangeSummary{
		Table:    s.tableName(),
		Added:    len(s.tracker.added),
		Modified: len(modified),
		Removed:  len(s.tracker.removed),
	}, nil
}

// accept makes the live state the new baseline after a commit.
func (s *Set[T]) accept() {
	s.tracker.rebase(s.entities)
}

// reset drops everything a failed Open loaded into the set.
func (s *Set[T]) reset() {
	s.table = nil
	s.entities = nil
	s.tracker = newChangeTracker(s.mapping, nil)
}
