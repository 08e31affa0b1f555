// Package colstats implements per-field-type column statistics accumulation:
// a monotonic min/max/null-count collector per field, a small accumulator
// struct with a String() renderer.
package colstats

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/lakerow/rowbinary/rowtype"
)

// ColumnStats accumulates min, max, and null_count for one field across a
// sequence of collect(value) calls. The zero value is ready to use: min/max
// are unset until the first non-null value arrives.
type ColumnStats struct {
	typ       rowtype.FieldType
	hasValue  bool
	hasNulls  bool
	min       rowtype.Literal
	max       rowtype.Literal
	nullCount int64
}

// New returns a fresh accumulator for the given field type.
func New(t rowtype.FieldType) *ColumnStats {
	return &ColumnStats{typ: t}
}

// Collect folds one value into the accumulator: a null literal
// increments null_count; the first non-null value sets min=max=value;
// subsequent non-null values tighten min/max per rowtype.Compare ordering.
// Collect is not safe for concurrent use on the same accumulator.
func (cs *ColumnStats) Collect(value rowtype.Literal) error {
	if value.IsNull() {
		cs.hasNulls = true
		cs.nullCount++

		return nil
	}

	if !cs.hasValue {
		cs.min = value.Owned()
		cs.max = value.Owned()
		cs.hasValue = true

		return nil
	}

	cmpMin, err := rowtype.Compare(value, cs.min)
	if err != nil {
		return err
	}
	if cmpMin < 0 {
		cs.min = value.Owned()
	}

	cmpMax, err := rowtype.Compare(value, cs.max)
	if err != nil {
		return err
	}
	if cmpMax > 0 {
		cs.max = value.Owned()
	}

	return nil
}

// HasValue reports whether any non-null value has been collected.
func (cs *ColumnStats) HasValue() bool { return cs.hasValue }

// Min returns the accumulated minimum. Valid only if HasValue is true.
func (cs *ColumnStats) Min() rowtype.Literal { return cs.min }

// Max returns the accumulated maximum. Valid only if HasValue is true.
func (cs *ColumnStats) Max() rowtype.Literal { return cs.max }

// NullCount returns the number of null values collected.
func (cs *ColumnStats) NullCount() int64 { return cs.nullCount }

// String renders "min X, max Y, null count Z", substituting "null" for an
// unset min/max.
func (cs *ColumnStats) String() string {
	minStr, maxStr := "null", "null"
	if cs.hasValue {
		minStr = formatLiteral(cs.min)
		maxStr = formatLiteral(cs.max)
	}

	return fmt.Sprintf("min %s, max %s, null count %d", minStr, maxStr, cs.nullCount)
}

// formatLiteral renders a non-null literal using type-native formatting:
// fixed notation for integers, canonical float formatting for Float/Double,
// ISO-8601 for timestamps, and base-10 reconstruction via scale for decimals.
func formatLiteral(l rowtype.Literal) string {
	switch l.Type() {
	case rowtype.TypeBoolean:
		return strconv.FormatBool(l.AsInt64() != 0)
	case rowtype.TypeTinyInt, rowtype.TypeSmallInt, rowtype.TypeInt, rowtype.TypeBigInt, rowtype.TypeDate:
		return strconv.FormatInt(l.AsInt64(), 10)
	case rowtype.TypeFloat:
		return FormatCanonicalFloat(float64(float32(l.AsFloat64())))
	case rowtype.TypeDouble:
		return FormatCanonicalFloat(l.AsFloat64())
	case rowtype.TypeString:
		return l.AsString()
	case rowtype.TypeBinary:
		return fmt.Sprintf("%x", l.AsBinary())
	case rowtype.TypeDecimal:
		return formatDecimal(l)
	case rowtype.TypeTimestamp:
		return formatTimestamp(l.AsInt64())
	default:
		return fmt.Sprintf("%v", l)
	}
}

// FormatCanonicalFloat implements the canonical float formatting used for
// values in [1e-3, 1e7] print fixed with trailing zeros trimmed; outside
// that range print scientific with upper-case "E", explicit sign only for
// negative exponents, and a one-digit exponent when possible.
func FormatCanonicalFloat(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}

	if abs == 0 || (abs >= 1e-3 && abs <= 1e7) {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if strings.Contains(s, ".") {
			s = strings.TrimRight(s, "0")
			s = strings.TrimSuffix(s, ".") + decimalSuffix(s)
		} else {
			s += ".0"
		}

		return s
	}

	s := strconv.FormatFloat(v, 'E', -1, 64)

	return canonicalizeExponent(s)
}

// decimalSuffix ensures a trimmed fixed-notation float keeps at least one
// fractional digit (e.g. "233." -> "233.0").
func decimalSuffix(trimmed string) string {
	if strings.HasSuffix(trimmed, ".") || !strings.Contains(trimmed, ".") {
		return ".0"
	}

	return ""
}

// canonicalizeExponent rewrites Go's "1.23E+08" style into "1.23E8" /
// "1.23E-8": no "+" sign, no leading zero in the exponent.
func canonicalizeExponent(s string) string {
	idx := strings.IndexAny(s, "Ee")
	if idx < 0 {
		return s
	}

	mantissa, exp := s[:idx], s[idx+1:]
	neg := strings.HasPrefix(exp, "-")
	exp = strings.TrimLeft(strings.TrimPrefix(strings.TrimPrefix(exp, "+"), "-"), "0")
	if exp == "" {
		exp = "0"
	}
	if neg {
		exp = "-" + exp
	}

	return mantissa + "E" + exp
}

// formatDecimal reconstructs a base-10 decimal string from its unscaled
// value and scale.
func formatDecimal(l rowtype.Literal) string {
	unscaled, scale := l.AsDecimal()
	if unscaled == nil {
		return "0"
	}

	neg := unscaled.Sign() < 0
	digits := new(big.Int).Abs(unscaled).String()

	if scale <= 0 {
		if scale < 0 {
			digits += strings.Repeat("0", int(-scale))
		}
		if neg {
			return "-" + digits
		}

		return digits
	}

	for len(digits) <= int(scale) {
		digits = "0" + digits
	}

	intPart := digits[:len(digits)-int(scale)]
	fracPart := digits[len(digits)-int(scale):]

	out := intPart + "." + fracPart
	if neg {
		out = "-" + out
	}

	return out
}

// formatTimestamp renders epochMillis as an ISO-8601 UTC timestamp.
func formatTimestamp(epochMillis int64) string {
	t := time.UnixMilli(epochMillis).UTC()

	return t.Format("2006-01-02T15:04:05.000Z")
}

// NestedColumnStats records only null_count plus the nested field's type tag:
// Row/Array/Map fields are not otherwise orderable, so no min/max is
// tracked for them.
type NestedColumnStats struct {
	typ       rowtype.FieldType
	nullCount int64
}

// NewNested returns a fresh nested-field accumulator.
func NewNested(t rowtype.FieldType) *NestedColumnStats {
	return &NestedColumnStats{typ: t}
}

// CollectNull increments the nested accumulator's null count.
func (ns *NestedColumnStats) CollectNull() { ns.nullCount++ }

// CollectNonNull records a present (non-null) nested value.
func (ns *NestedColumnStats) CollectNonNull() {}

// NullCount returns the number of null values collected.
func (ns *NestedColumnStats) NullCount() int64 { return ns.nullCount }

// String renders the nested accumulator's null count.
func (ns *NestedColumnStats) String() string {
	return fmt.Sprintf("%s: null count %d", ns.typ, ns.nullCount)
}
