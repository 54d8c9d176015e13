package orm

import (
	"fmt"
	"strings"

	"mini-orm/core/schema"

	"github.com/go-playground/validator/v10"
)

// validate checks every live entity of the set: required markers, field
// rules, key immutability and, for sets whose key the client supplies,
// key uniqueness.
func (s *Set[T]) validate(v *validator.Validate) error {
	table := s.tableName()
	invalid := make(map[*T]struct{})
	var problems []string
	report := func(i int, e *T, format string, args ...any) {
		invalid[e] = struct{}{}
		problems = append(problems, fmt.Sprintf("%s[%d]: %s", table, i, fmt.Sprintf(format, args...)))
	}

	for i, e := range s.entities {
		for _, f := range s.mapping.Fields {
			value := f.Get(e)
			if f.Mandatory && missing(f, value) {
				report(i, e, "%s is required", f.Name)
				continue
			}
			if f.Rules != "" && value != nil {
				if err := v.Var(value, f.Rules); err != nil {
					report(i, e, "%s fails %q", f.Name, f.Rules)
				}
			}
		}

		if orig, ok := s.tracker.OriginalKey(e); ok {
			if schema.CompositeKey(orig) != schema.CompositeKey(s.mapping.KeyValues(e)) {
				report(i, e, "primary key changed from %v", orig)
			}
		}
	}

	if s.table == nil || !s.table.HasIdentityKey() {
		seen := make(map[string]int, len(s.entities))
		for i, e := range s.entities {
			k := schema.CompositeKey(s.mapping.KeyValues(e))
			if first, dup := seen[k]; dup {
				report(i, e, "primary key %v already used by entity %d", s.mapping.KeyValues(e), first)
				continue
			}
			seen[k] = i
		}
	}

	if len(invalid) > 0 {
		return &ValidationError{Table: table, Invalid: len(invalid), Problems: problems}
	}
	return nil
}

// missing reports whether a required value is absent. A non-nullable bool
// always carries a value.
func missing[T any](f *schema.Field[T], value any) bool {
	if value == nil {
		return true
	}
	if f.Type == schema.TypeString {
		return strings.TrimSpace(value.(string)) == ""
	}
	return false
}
