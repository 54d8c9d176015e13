package orm

import (
	"fmt"
	"reflect"
	"strings"

	"mini-orm/core/schema"
)

// registry resolves declared sets by entity type.
type registry struct {
	sets   []entitySet
	byType map[reflect.Type]entitySet
}

func newRegistry() *registry {
	return &registry{byType: make(map[reflect.Type]entitySet)}
}

func (r *registry) add(s entitySet) error {
	t := s.entityType()
	if prev, ok := r.byType[t]; ok {
		return &SchemaError{
			Type:   t.Name(),
			Table:  s.setName(),
			Reason: fmt.Sprintf("entity type already declared by set %s", prev.setName()),
		}
	}
	r.byType[t] = s
	r.sets = append(r.sets, s)
	return nil
}

func (r *registry) lookup(t reflect.Type) (relationTarget, bool) {
	s, ok := r.byType[t]
	return s, ok
}

// mapRelations resolves every navigation of the set against the loaded
// entities of the related sets.
func (s *Set[T]) mapRelations(reg *registry) error {
	for _, rel := range s.mapping.Relations {
		var err error
		switch rel.Kind {
		case schema.ManyToOne:
			err = s.mapReference(reg, rel)
		case schema.Collection:
			err = s.mapCollection(reg, rel)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// mapReference points each entity at the single parent whose key equals its
// foreign key. A nil foreign key leaves the navigation nil.
func (s *Set[T]) mapReference(reg *registry, rel *schema.Relation[T]) error {
	target, ok := reg.lookup(rel.Target)
	if !ok {
		return s.relationError("no set declared for %s", rel.Target.Name())
	}
	keys := target.keyNames()
	if len(keys) != 1 {
		return s.relationError("reference target %s must have a single key, found %d", rel.Target.Name(), len(keys))
	}
	index, err := target.indexBy(keys[0])
	if err != nil {
		return err
	}

	fk := s.mapping.Field(rel.ForeignKey)
	for _, e := range s.entities {
		value := fk.Get(e)
		if value == nil {
			rel.Assign(e, nil)
			continue
		}
		matches := index[schema.KeyString(value)]
		if len(matches) != 1 {
			return &ReferentialMappingError{
				Table:      s.tableName(),
				ForeignKey: fk.Name,
				Target:     target.tableInfo().Name,
				Value:      value,
				Matches:    len(matches),
			}
		}
		rel.Assign(e, matches)
	}
	return nil
}

// mapCollection fills each owner's slice with the target entities whose
// foreign key equals the owner's key, in the target set's order.
func (s *Set[T]) mapCollection(reg *registry, rel *schema.Relation[T]) error {
	target, ok := reg.lookup(rel.Target)
	if !ok {
		return s.relationError("no set declared for %s", rel.Target.Name())
	}

	fk := rel.Via
	if fk == "" {
		candidates := target.referencesTo(s.entityType())
		switch len(candidates) {
		case 0:
			return s.relationError("%s has no foreign key referring to %s", rel.Target.Name(), s.entityType().Name())
		case 1:
			fk = candidates[0]
		default:
			return s.relationError("%s refers to %s through %v, name one with Through", rel.Target.Name(), s.entityType().Name(), candidates)
		}
	}
	if target.isJoin() && !containsName(target.keyNames(), fk) {
		return s.relationError("join foreign key %s is not a key of %s", fk, rel.Target.Name())
	}

	keys := s.mapping.KeyFields()
	if len(keys) != 1 {
		return s.relationError("collection owner must have a single key, found %d", len(keys))
	}

	index, err := target.indexBy(fk)
	if err != nil {
		return err
	}
	for _, e := range s.entities {
		rel.Assign(e, index[schema.KeyString(keys[0].Get(e))])
	}
	return nil
}

func (s *Set[T]) relationError(format string, args ...any) error {
	return &SchemaError{
		Type:   s.entityType().Name(),
		Table:  s.tableName(),
		Reason: fmt.Sprintf(format, args...),
	}
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
