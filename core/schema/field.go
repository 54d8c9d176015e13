package schema

import "fmt"

// Field describes one persisted scalar of entity type T.
// The getter and setter are bound at declaration time, so no runtime
// introspection of T is ever needed.
type Field[T any] struct {
	// Name is the field name; it doubles as the column name.
	Name string
	// Type is the storage type tag.
	Type TypeTag
	// Nullable reports whether the field can hold nil.
	Nullable bool
	// Key marks the field as part of the primary key.
	Key bool
	// Mandatory marks the field as required (nil or blank text is invalid).
	Mandatory bool
	// Rules holds extra go-playground/validator rules, e.g. "max=50".
	Rules string

	get func(*T) any
	set func(*T, any) error
}

// Scalar declares a non-nullable field held directly in T.
func Scalar[T any, V Value](name string, ref func(*T) *V) *Field[T] {
	tag := tagOf[V]()
	return &Field[T]{
		Name: name,
		Type: tag,
		get:  func(e *T) any { return *ref(e) },
		set: func(e *T, v any) error {
			if v == nil {
				var zero V
				*ref(e) = zero
				return nil
			}
			cv, ok := v.(V)
			if !ok {
				return fmt.Errorf("field %s: expected %s, got %T", name, tag, v)
			}
			*ref(e) = cv
			return nil
		},
	}
}

// Nullable declares a field held through a pointer in T; a nil pointer is NULL.
func Nullable[T any, V Value](name string, ref func(*T) **V) *Field[T] {
	tag := tagOf[V]()
	return &Field[T]{
		Name:     name,
		Type:     tag,
		Nullable: true,
		get: func(e *T) any {
			p := *ref(e)
			if p == nil {
				return nil
			}
			return *p
		},
		set: func(e *T, v any) error {
			if v == nil {
				*ref(e) = nil
				return nil
			}
			cv, ok := v.(V)
			if !ok {
				return fmt.Errorf("field %s: expected %s, got %T", name, tag, v)
			}
			*ref(e) = &cv
			return nil
		},
	}
}

// PrimaryKey marks the field as (part of) the primary key.
func (f *Field[T]) PrimaryKey() *Field[T] {
	f.Key = true
	return f
}

// Required marks the field as mandatory.
func (f *Field[T]) Required() *Field[T] {
	f.Mandatory = true
	return f
}

// Validate attaches validator rules checked before every save.
func (f *Field[T]) Validate(rules string) *Field[T] {
	f.Rules = rules
	return f
}

// Get returns the canonical value of the field on e.
func (f *Field[T]) Get(e *T) any {
	return f.get(e)
}

// Set normalizes raw and writes it into e.
func (f *Field[T]) Set(e *T, raw any) error {
	v, err := f.Type.Normalize(raw)
	if err != nil {
		return fmt.Errorf("field %s: %w", f.Name, err)
	}
	return f.set(e, v)
}

// Info returns the type-erased description of the field.
func (f *Field[T]) Info() FieldInfo {
	return FieldInfo{
		Name:     f.Name,
		Type:     f.Type,
		Nullable: f.Nullable,
		Key:      f.Key,
		Required: f.Mandatory,
		Rules:    f.Rules,
	}
}

// FieldInfo is the type-erased view of a Field.
type FieldInfo struct {
	Name     string  `yaml:"name"`
	Type     TypeTag `yaml:"-"`
	Nullable bool    `yaml:"nullable,omitempty"`
	Key      bool    `yaml:"key,omitempty"`
	Required bool    `yaml:"required,omitempty"`
	Rules    string  `yaml:"rules,omitempty"`
}
