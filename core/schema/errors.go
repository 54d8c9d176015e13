package schema

import "fmt"

// SchemaError reports a bad entity declaration or a declaration that does not
// match the store.
type SchemaError struct {
	Type   string
	Table  string
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("schema error for %s (table %s): %s", e.Type, e.Table, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
