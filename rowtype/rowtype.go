// Package rowtype defines the field-type tags, row-kind enum, and typed literal
// values shared by the row, array, predicate, and column-statistics layers.
package rowtype

import "fmt"

// FieldType tags the primitive type carried by a row slot, array element, literal,
// or statistics accumulator: a small uint8 enum with a String() renderer.
type FieldType uint8

// Recognized field types. Values are stable across the wire format and must not
// be renumbered once persisted data exists.
const (
	TypeUnknown FieldType = iota
	TypeBoolean
	TypeTinyInt
	TypeSmallInt
	TypeInt
	TypeBigInt
	TypeFloat
	TypeDouble
	TypeString
	TypeBinary
	TypeDecimal
	TypeDate
	TypeTimestamp
	TypeRow
	TypeArray
	TypeMap
)

func (t FieldType) String() string {
	switch t {
	case TypeBoolean:
		return "BOOLEAN"
	case TypeTinyInt:
		return "TINYINT"
	case TypeSmallInt:
		return "SMALLINT"
	case TypeInt:
		return "INT"
	case TypeBigInt:
		return "BIGINT"
	case TypeFloat:
		return "FLOAT"
	case TypeDouble:
		return "DOUBLE"
	case TypeString:
		return "STRING"
	case TypeBinary:
		return "BINARY"
	case TypeDecimal:
		return "DECIMAL"
	case TypeDate:
		return "DATE"
	case TypeTimestamp:
		return "TIMESTAMP"
	case TypeRow:
		return "ROW"
	case TypeArray:
		return "ARRAY"
	case TypeMap:
		return "MAP"
	default:
		return "UNKNOWN"
	}
}

// IsFixedWidth reports whether values of this type always occupy only a
// fixed-width slot, never the variable tail: Boolean, the integer and float
// types, and Date. Decimal and Timestamp report false, since whether they are
// compact depends on a precision the type tag does not carry.
func (t FieldType) IsFixedWidth() bool {
	switch t {
	case TypeBoolean, TypeTinyInt, TypeSmallInt, TypeInt, TypeBigInt,
		TypeFloat, TypeDouble, TypeDate:
		return true
	default:
		return false
	}
}

// RowKind is the changelog semantics of a row: insert, one of two update halves,
// or delete. It is stored as a single byte in the row header.
type RowKind uint8

const (
	RowKindInsert       RowKind = 0
	RowKindUpdateBefore RowKind = 1
	RowKindUpdateAfter  RowKind = 2
	RowKindDelete       RowKind = 3
)

// ShortString returns the canonical textual form of the row kind.
func (k RowKind) ShortString() string {
	switch k {
	case RowKindInsert:
		return "+I"
	case RowKindUpdateBefore:
		return "-U"
	case RowKindUpdateAfter:
		return "+U"
	case RowKindDelete:
		return "-D"
	default:
		return "?"
	}
}

// ParseRowKind parses one of the four canonical short strings back into a RowKind.
func ParseRowKind(s string) (RowKind, error) {
	switch s {
	case "+I":
		return RowKindInsert, nil
	case "-U":
		return RowKindUpdateBefore, nil
	case "+U":
		return RowKindUpdateAfter, nil
	case "-D":
		return RowKindDelete, nil
	default:
		return 0, fmt.Errorf("rowtype: invalid row kind string %q", s)
	}
}

func (k RowKind) String() string {
	return k.ShortString()
}
