package schema

import (
	"fmt"
	"strings"
	"time"

	"mini-orm/core/utils"

	"github.com/shopspring/decimal"
)

// TypeTag identifies the storage type of a persisted scalar field.
// It is consulted by discovery, loading, snapshotting and diffing alike.
type TypeTag int

const (
	TypeString TypeTag = iota + 1
	TypeInt32
	TypeInt64
	TypeUint32
	TypeUint64
	TypeDecimal
	TypeBool
	TypeTime
)

// Value is the closed set of Go types a scalar field may hold.
type Value interface {
	string | int32 | int64 | uint32 | uint64 | decimal.Decimal | bool | time.Time
}

// String returns the lower-case tag name.
func (t TypeTag) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeUint32:
		return "uint32"
	case TypeUint64:
		return "uint64"
	case TypeDecimal:
		return "decimal"
	case TypeBool:
		return "bool"
	case TypeTime:
		return "time"
	default:
		return fmt.Sprintf("TypeTag(%d)", int(t))
	}
}

// tagOf maps a Value type parameter onto its tag.
func tagOf[V Value]() TypeTag {
	var zero V
	switch any(zero).(type) {
	case string:
		return TypeString
	case int32:
		return TypeInt32
	case int64:
		return TypeInt64
	case uint32:
		return TypeUint32
	case uint64:
		return TypeUint64
	case decimal.Decimal:
		return TypeDecimal
	case bool:
		return TypeBool
	case time.Time:
		return TypeTime
	}
	panic("unreachable: Value constraint admits an unknown type")
}

// Normalize converts a raw driver value into the canonical Go value for the tag.
// nil stays nil.
func (t TypeTag) Normalize(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch t {
	case TypeString:
		return utils.ToString(raw), nil
	case TypeInt32:
		i, err := utils.ToInt64(raw)
		if err != nil {
			return nil, err
		}
		if i < -1<<31 || i > 1<<31-1 {
			return nil, fmt.Errorf("value %d overflows int32", i)
		}
		return int32(i), nil
	case TypeInt64:
		return utils.ToInt64(raw)
	case TypeUint32:
		u, err := utils.ToUint64(raw)
		if err != nil {
			return nil, err
		}
		if u > 1<<32-1 {
			return nil, fmt.Errorf("value %d overflows uint32", u)
		}
		return uint32(u), nil
	case TypeUint64:
		return utils.ToUint64(raw)
	case TypeDecimal:
		return toDecimal(raw)
	case TypeBool:
		return utils.ToBool(raw)
	case TypeTime:
		return utils.ToTime(raw)
	}
	return nil, fmt.Errorf("unknown type tag %d", int(t))
}

func toDecimal(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	case []byte:
		return decimal.NewFromString(strings.TrimSpace(string(v)))
	default:
		i, err := utils.ToInt64(raw)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("cannot convert %T to decimal", raw)
		}
		return decimal.NewFromInt(i), nil
	}
}

// Equal compares two canonical values of this tag.
// Decimals compare by exact value, timestamps to full precision, nil only equals nil.
func (t TypeTag) Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch t {
	case TypeDecimal:
		da, okA := a.(decimal.Decimal)
		db, okB := b.(decimal.Decimal)
		return okA && okB && da.Equal(db)
	case TypeTime:
		ta, okA := a.(time.Time)
		tb, okB := b.(time.Time)
		return okA && okB && ta.Equal(tb)
	default:
		return a == b
	}
}

// KeyString renders a canonical value as an index key. Integer values of
// different widths render identically so foreign keys may be declared with a
// narrower type than the key they reference.
func KeyString(v any) string {
	switch x := v.(type) {
	case nil:
		return "\x00"
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case decimal.Decimal:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// CompositeKey joins the key strings of several values.
func CompositeKey(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = KeyString(v)
	}
	return strings.Join(parts, "\x1f")
}
