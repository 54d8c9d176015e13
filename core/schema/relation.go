package schema

import "reflect"

// RelationKind distinguishes reference navigations from collections.
type RelationKind int

const (
	// ManyToOne is a foreign key scalar plus a single navigation pointer.
	ManyToOne RelationKind = iota + 1
	// Collection is a slice navigation filled with the entities referring back.
	Collection
)

// Relation describes a navigation of entity type T.
// Navigation fields are written only through Assign by the relation mapper.
type Relation[T any] struct {
	Kind RelationKind
	// ForeignKey names the scalar field of T holding the target key (ManyToOne).
	ForeignKey string
	// Via optionally names the foreign key on the target pointing back to T (Collection).
	Via string
	// Target is the entity type on the other end.
	Target reflect.Type

	assign func(owner *T, related []any)
}

// RefersTo declares that the scalar fk of T holds the primary key of a P,
// resolved into the navigation returned by nav.
func RefersTo[T, P any](fk string, nav func(*T) **P) *Relation[T] {
	return &Relation[T]{
		Kind:       ManyToOne,
		ForeignKey: fk,
		Target:     reflect.TypeFor[P](),
		assign: func(owner *T, related []any) {
			if len(related) == 0 {
				*nav(owner) = nil
				return
			}
			*nav(owner) = related[0].(*P)
		},
	}
}

// HasMany declares a collection of every C whose foreign key refers to T.
func HasMany[T, C any](nav func(*T) *[]*C) *Relation[T] {
	return &Relation[T]{
		Kind:   Collection,
		Target: reflect.TypeFor[C](),
		assign: func(owner *T, related []any) {
			out := make([]*C, len(related))
			for i, r := range related {
				out[i] = r.(*C)
			}
			*nav(owner) = out
		},
	}
}

// Through names the foreign key on the target that points back to the owner.
// It is only needed when the target refers to the owner type more than once.
func (r *Relation[T]) Through(fk string) *Relation[T] {
	r.Via = fk
	return r
}

// Assign writes the resolved related entities into the owner's navigation.
func (r *Relation[T]) Assign(owner *T, related []any) {
	r.assign(owner, related)
}
