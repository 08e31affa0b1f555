package rowtype

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
)

// Literal is a typed value used by predicates and partition materialization.
// It carries the field type it was constructed for, an optional payload,
// a null flag, and a borrow flag for string-like payloads copied from a source
// buffer that does not outlive the literal.
type Literal struct {
	typ      FieldType
	isNull   bool
	borrowed bool

	i64 int64
	f64 float64
	str string
	bin []byte
	dec *big.Int // unscaled decimal value
	sc  int32    // decimal scale, or timestamp precision
}

// Null returns a null literal of the given type.
func Null(t FieldType) Literal {
	return Literal{typ: t, isNull: true}
}

// Bool returns a boolean literal.
func Bool(v bool) Literal {
	var i int64
	if v {
		i = 1
	}

	return Literal{typ: TypeBoolean, i64: i}
}

// Int64 returns an integer literal (covers TinyInt/SmallInt/Int/BigInt/Date uniformly;
// callers select t to preserve comparison/formatting semantics).
func Int64(t FieldType, v int64) Literal {
	return Literal{typ: t, i64: v}
}

// Float64 returns a floating-point literal (Float or Double).
func Float64(t FieldType, v float64) Literal {
	return Literal{typ: t, f64: v}
}

// String returns a borrowed string literal; the caller must not mutate the
// backing bytes of s for the literal's lifetime.
func String(s string) Literal {
	return Literal{typ: TypeString, str: s, borrowed: true}
}

// OwnedString returns a string literal that owns a private copy of s.
func OwnedString(s string) Literal {
	return Literal{typ: TypeString, str: string(append([]byte(nil), s...))}
}

// Binary returns a binary literal wrapping b without copying (borrowed).
func Binary(b []byte) Literal {
	return Literal{typ: TypeBinary, bin: b, borrowed: true}
}

// Decimal returns a decimal literal with the given unscaled value and scale.
func Decimal(unscaled *big.Int, scale int32) Literal {
	return Literal{typ: TypeDecimal, dec: unscaled, sc: scale}
}

// Timestamp returns a timestamp literal: epoch-millis plus sub-millisecond
// precision, mirroring the row's compact/expanded timestamp split.
func Timestamp(epochMillis int64, precision int32) Literal {
	return Literal{typ: TypeTimestamp, i64: epochMillis, sc: precision}
}

// Type returns the literal's field type.
func (l Literal) Type() FieldType { return l.typ }

// IsNull reports whether the literal represents SQL NULL.
func (l Literal) IsNull() bool { return l.isNull }

// AsInt64 returns the integer payload.
func (l Literal) AsInt64() int64 { return l.i64 }

// AsFloat64 returns the float payload.
func (l Literal) AsFloat64() float64 { return l.f64 }

// AsString returns the string payload.
func (l Literal) AsString() string { return l.str }

// AsBinary returns the binary payload.
func (l Literal) AsBinary() []byte { return l.bin }

// AsDecimal returns the unscaled decimal value and its scale.
func (l Literal) AsDecimal() (*big.Int, int32) { return l.dec, l.sc }

// AsTimestamp returns the epoch-millis value and sub-millisecond precision.
func (l Literal) AsTimestamp() (epochMillis int64, precision int32) { return l.i64, l.sc }

// Owned returns a copy of the literal that owns its string/binary payload,
// safe to retain past the lifetime of any borrowed source buffer.
func (l Literal) Owned() Literal {
	if !l.borrowed {
		return l
	}

	out := l
	out.borrowed = false
	if l.str != "" {
		out.str = string(append([]byte(nil), l.str...))
	}
	if l.bin != nil {
		out.bin = append([]byte(nil), l.bin...)
	}

	return out
}

// Compare orders two literals of the same type. Two nulls compare equal; a null
// compares less than any non-null value. Comparing across different FieldTypes
// returns an error.
//
// The returned int is negative, zero, or positive per the usual Compare contract.
func Compare(a, b Literal) (int, error) {
	if a.typ != b.typ {
		return 0, fmt.Errorf("rowtype: cannot compare %s with %s", a.typ, b.typ)
	}

	if a.isNull && b.isNull {
		return 0, nil
	}
	if a.isNull {
		return -1, nil
	}
	if b.isNull {
		return 1, nil
	}

	switch a.typ {
	case TypeBoolean, TypeTinyInt, TypeSmallInt, TypeInt, TypeBigInt, TypeDate, TypeTimestamp:
		return compareInt64(a.i64, b.i64), nil
	case TypeFloat, TypeDouble:
		return compareFloat64(a.f64, b.f64), nil
	case TypeString:
		return compareStrings(a.str, b.str), nil
	case TypeBinary:
		return bytes.Compare(a.bin, b.bin), nil
	case TypeDecimal:
		if a.sc != b.sc {
			return 0, fmt.Errorf("rowtype: cannot compare decimals of differing scale %d vs %d", a.sc, b.sc)
		}

		return a.dec.Cmp(b.dec), nil
	default:
		return 0, fmt.Errorf("rowtype: %w: %s is not orderable", errNotOrderable, a.typ)
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareFloat64 uses Go's standard IEEE 754 < and > comparisons, not the
// IEEE totalOrder predicate: a comparison involving NaN returns 0, carries no
// meaningful order, and never panics or errors.
func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

var errNotOrderable = errors.New("type has no total order")
