package sqlite

import "strconv"

// ValueKind is the storage class of a column value.
type ValueKind int

const (
	// KindInvalid is the zero Value, returned for out of range columns.
	KindInvalid ValueKind = iota
	KindNull
	KindInteger
	KindText
)

// Value is a column value read from the active statement. NULL reads as
// an empty string.
type Value struct {
	kind ValueKind
	i    int64
	s    string
}

// Kind returns the storage class of v.
func (v Value) Kind() ValueKind { return v.kind }

// IsValid reports whether v came from an existing column.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// IsNull reports whether v is SQL NULL.
func (v Value) IsNull() bool { return v.kind == KindNull }

// String returns v as text.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindText:
		return v.s
	default:
		return ""
	}
}

// Int64 returns v as an integer. Text is parsed; unparsable text yields 0.
func (v Value) Int64() int64 {
	switch v.kind {
	case KindInteger:
		return v.i
	case KindText:
		n, _ := strconv.ParseInt(v.s, 10, 64)
		return n
	default:
		return 0
	}
}

// Int returns v as an int.
func (v Value) Int() int { return int(v.Int64()) }
