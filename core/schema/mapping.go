package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Mapping is the explicit persistence descriptor of entity type T.
type Mapping[T any] struct {
	// Table overrides the table name; empty means the set's declared name.
	Table string
	// Join marks T as a many-to-many join entity.
	Join bool
	// Fields lists the persisted scalars in column order.
	Fields []*Field[T]
	// Relations lists the navigations of T.
	Relations []*Relation[T]
}

// NewMapping builds a mapping from its fields.
func NewMapping[T any](fields ...*Field[T]) *Mapping[T] {
	return &Mapping[T]{Fields: fields}
}

// WithTable sets an explicit table name.
func (m *Mapping[T]) WithTable(name string) *Mapping[T] {
	m.Table = name
	return m
}

// AsJoin marks the entity as a join entity between two owners.
func (m *Mapping[T]) AsJoin() *Mapping[T] {
	m.Join = true
	return m
}

// Relate appends navigations.
func (m *Mapping[T]) Relate(relations ...*Relation[T]) *Mapping[T] {
	m.Relations = append(m.Relations, relations...)
	return m
}

// EntityType returns the reflect.Type of T, used as the registry key.
func (m *Mapping[T]) EntityType() reflect.Type {
	return reflect.TypeFor[T]()
}

// Field finds a field by name (case-insensitive).
func (m *Mapping[T]) Field(name string) *Field[T] {
	for _, f := range m.Fields {
		if strings.EqualFold(f.Name, name) {
			return f
		}
	}
	return nil
}

// KeyFields returns the primary key fields in declaration order.
func (m *Mapping[T]) KeyFields() []*Field[T] {
	var keys []*Field[T]
	for _, f := range m.Fields {
		if f.Key {
			keys = append(keys, f)
		}
	}
	return keys
}

// KeyValues returns the canonical primary key values of e.
func (m *Mapping[T]) KeyValues(e *T) []any {
	keys := m.KeyFields()
	values := make([]any, len(keys))
	for i, f := range keys {
		values[i] = f.Get(e)
	}
	return values
}

// ReferencesTo returns the foreign key names of every RefersTo relation aimed at target.
func (m *Mapping[T]) ReferencesTo(target reflect.Type) []string {
	var fks []string
	for _, r := range m.Relations {
		if r.Kind == ManyToOne && r.Target == target {
			fks = append(fks, r.ForeignKey)
		}
	}
	return fks
}

// Check validates the declaration itself, before any I/O happens.
func (m *Mapping[T]) Check(setName string) error {
	typeName := m.EntityType().Name()
	fail := func(format string, args ...any) error {
		return &SchemaError{Type: typeName, Table: setName, Reason: fmt.Sprintf(format, args...)}
	}

	if len(m.Fields) == 0 {
		return fail("no persisted fields declared")
	}

	seen := make(map[string]struct{}, len(m.Fields))
	for _, f := range m.Fields {
		key := strings.ToLower(f.Name)
		if f.Name == "" {
			return fail("field with empty name")
		}
		if _, dup := seen[key]; dup {
			return fail("field %s declared twice", f.Name)
		}
		seen[key] = struct{}{}
	}

	keys := m.KeyFields()
	if len(keys) == 0 {
		return fail("no primary key declared")
	}

	fks := make(map[string]struct{})
	for _, r := range m.Relations {
		switch r.Kind {
		case ManyToOne:
			if m.Field(r.ForeignKey) == nil {
				return fail("foreign key %s is not a declared field", r.ForeignKey)
			}
			fks[strings.ToLower(r.ForeignKey)] = struct{}{}
		case Collection:
			if r.Target == nil {
				return fail("collection without target type")
			}
		}
	}

	if m.Join {
		if len(keys) != 2 {
			return fail("join entity must have exactly two key fields, found %d", len(keys))
		}
		for _, k := range keys {
			if _, ok := fks[strings.ToLower(k.Name)]; !ok {
				return fail("join key %s is not a foreign key", k.Name)
			}
		}
	}

	return nil
}

// Infos returns the type-erased view of every field.
func (m *Mapping[T]) Infos() []FieldInfo {
	infos := make([]FieldInfo, len(m.Fields))
	for i, f := range m.Fields {
		infos[i] = f.Info()
	}
	return infos
}
