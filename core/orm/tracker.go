package orm

import (
	"slices"

	"mini-orm/core/schema"
)

// snapshot is the value-wise copy of one loaded entity's scalars.
type snapshot struct {
	values []any
	key    []any
}

// ChangeTracker keeps the load-time baseline of one entity set plus its
// pending adds and removes.
type ChangeTracker[T any] struct {
	mapping  *schema.Mapping[T]
	fields   []*schema.Field[T]
	baseline []snapshot
	origin   map[*T]int
	added    []*T
	removed  []*T
}

func newChangeTracker[T any](m *schema.Mapping[T], entities []*T) *ChangeTracker[T] {
	t := &ChangeTracker[T]{mapping: m, fields: m.Fields}
	t.rebase(entities)
	return t
}

// rebase replaces the baseline with a fresh snapshot of entities.
func (t *ChangeTracker[T]) rebase(entities []*T) {
	t.baseline = make([]snapshot, 0, len(entities))
	t.origin = make(map[*T]int, len(entities))
	for _, e := range entities {
		t.origin[e] = len(t.baseline)
		t.baseline = append(t.baseline, t.capture(e))
	}
	t.added = nil
	t.removed = nil
}

// persisted limits snapshots and diffs to the fields backed by a column.
func (t *ChangeTracker[T]) persisted(fields []*schema.Field[T]) {
	t.fields = fields
}

func (t *ChangeTracker[T]) capture(e *T) snapshot {
	values := make([]any, len(t.fields))
	for i, f := range t.fields {
		values[i] = f.Get(e)
	}
	return snapshot{values: values, key: t.mapping.KeyValues(e)}
}

// recordAdd queues e for insertion, or cancels its pending delete when e was
// removed since the last baseline.
func (t *ChangeTracker[T]) recordAdd(e *T) {
	if i := slices.Index(t.removed, e); i >= 0 {
		t.removed = slices.Delete(t.removed, i, i+1)
		return
	}
	t.added = append(t.added, e)
}

// recordRemove queues e for deletion, or cancels its pending add when e was
// never persisted.
func (t *ChangeTracker[T]) recordRemove(e *T) {
	if i := slices.Index(t.added, e); i >= 0 {
		t.added = slices.Delete(t.added, i, i+1)
		return
	}
	t.removed = append(t.removed, e)
}

// Added returns the entities pending insert.
func (t *ChangeTracker[T]) Added() []*T {
	return slices.Clone(t.added)
}

// Removed returns the entities pending delete.
func (t *ChangeTracker[T]) Removed() []*T {
	return slices.Clone(t.removed)
}

// Baseline returns how many entities were captured at load (or last commit).
func (t *ChangeTracker[T]) Baseline() int {
	return len(t.baseline)
}

// OriginalKey returns the key e had when it was captured.
func (t *ChangeTracker[T]) OriginalKey(e *T) ([]any, bool) {
	i, ok := t.origin[e]
	if !ok {
		return nil, false
	}
	return t.baseline[i].key, true
}

// Modified returns, in baseline order, the live entities whose scalar values
// differ from their snapshot. Entities no longer live are skipped and pending
// adds never match a snapshot.
func (t *ChangeTracker[T]) Modified(table string, live []*T) ([]*T, error) {
	pending := make(map[*T]struct{}, len(t.added))
	for _, e := range t.added {
		pending[e] = struct{}{}
	}

	index := make(map[string][]*T, len(live))
	for _, e := range live {
		if _, ok := pending[e]; ok {
			continue
		}
		k := schema.CompositeKey(t.mapping.KeyValues(e))
		index[k] = append(index[k], e)
	}

	var modified []*T
	for _, snap := range t.baseline {
		matches := index[schema.CompositeKey(snap.key)]
		switch {
		case len(matches) == 0:
			continue
		case len(matches) > 1:
			return nil, &DuplicateKeyError{Table: table, Key: snap.key}
		}

		e := matches[0]
		for i, f := range t.fields {
			if !f.Type.Equal(snap.values[i], f.Get(e)) {
				modified = append(modified, e)
				break
			}
		}
	}
	return modified, nil
}
