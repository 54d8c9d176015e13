package orm

import (
	"fmt"
	"strings"

	"mini-orm/core/schema"
)

// SchemaError reports a bad declaration; see schema.SchemaError.
type SchemaError = schema.SchemaError

// NullEntityError is returned when nil is passed to Add or Remove.
type NullEntityError struct {
	Set string
	Op  string
}

func (e *NullEntityError) Error() string {
	return fmt.Sprintf("%s on %s: entity cannot be nil", e.Op, e.Set)
}

// EntityStateError is returned when an entity is added to a set it already
// belongs to.
type EntityStateError struct {
	Set    string
	Op     string
	Reason string
}

func (e *EntityStateError) Error() string {
	return fmt.Sprintf("%s on %s: %s", e.Op, e.Set, e.Reason)
}

// ValidationError aborts a save before any database call.
type ValidationError struct {
	Table    string
	Invalid  int
	Problems []string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%d invalid entities found in %s", e.Invalid, e.Table)
	if len(e.Problems) > 0 {
		msg += ": " + strings.Join(e.Problems, "; ")
	}
	return msg
}

// ReferentialMappingError aborts Open when a foreign key does not resolve to
// exactly one parent.
type ReferentialMappingError struct {
	Table      string
	ForeignKey string
	Target     string
	Value      any
	Matches    int
}

func (e *ReferentialMappingError) Error() string {
	return fmt.Sprintf("cannot map %s.%s=%v to %s: %d matching entities",
		e.Table, e.ForeignKey, e.Value, e.Target, e.Matches)
}

// DuplicateKeyError reports two live entities sharing a primary key.
type DuplicateKeyError struct {
	Table string
	Key   []any
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate primary key %v in %s", e.Key, e.Table)
}

// InsertCountMismatchError reports a batched insert that wrote fewer rows than submitted.
type InsertCountMismatchError struct {
	Table     string
	Submitted int
	Affected  int64
}

func (e *InsertCountMismatchError) Error() string {
	return fmt.Sprintf("could not insert %d rows into %s (affected %d of %d)",
		int64(e.Submitted)-e.Affected, e.Table, e.Affected, e.Submitted)
}

// UpdateNotFoundError reports an update that did not hit exactly one row.
type UpdateNotFoundError struct {
	Table    string
	Key      []any
	Affected int64
}

func (e *UpdateNotFoundError) Error() string {
	return fmt.Sprintf("update for table %s failed: key %v affected %d rows", e.Table, e.Key, e.Affected)
}

// DeleteNotFoundError reports a delete that did not hit exactly one row.
type DeleteNotFoundError struct {
	Table    string
	Key      []any
	Affected int64
}

func (e *DeleteNotFoundError) Error() string {
	return fmt.Sprintf("delete for table %s failed: key %v affected %d rows", e.Table, e.Key, e.Affected)
}

// ConnectivityError wraps a driver or transport failure.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// CheckInserted applies the row-count policy for a batched insert.
func CheckInserted(table string, submitted int, affected int64) error {
	if affected != int64(submitted) {
		return &InsertCountMismatchError{Table: table, Submitted: submitted, Affected: affected}
	}
	return nil
}

// CheckUpdated applies the row-count policy for a keyed update.
func CheckUpdated(table string, key []any, affected int64) error {
	if affected != 1 {
		return &UpdateNotFoundError{Table: table, Key: key, Affected: affected}
	}
	return nil
}

// CheckDeleted applies the row-count policy for a keyed delete.
func CheckDeleted(table string, key []any, affected int64) error {
	if affected != 1 {
		return &DeleteNotFoundError{Table: table, Key: key, Affected: affected}
	}
	return nil
}
