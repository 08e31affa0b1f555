// Package partition implements the partition computer and bucket-id
// calculator: string <-> binary-row
// conversion for a simple (not-nested) partition schema, and a row-hash based
// bucket-id calculator with the sentinel bucket modes. Built on the same
// option-driven field writer pattern as rowopts, and on internal/hash for
// the concurrent interning cache's key derivation.
package partition

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/lakerow/rowbinary/colstats"
	"github.com/lakerow/rowbinary/errs"
	"github.com/lakerow/rowbinary/row"
	"github.com/lakerow/rowbinary/rowopts"
	"github.com/lakerow/rowbinary/rowtype"
)

// Field describes one partition-key column: its position within the binary
// row schema and its (simple, not-nested) type. Decimal/timestamp fields
// also need scale/precision to round-trip correctly.
type Field struct {
	Name      string
	Type      rowtype.FieldType
	Scale     int32 // decimal scale
	Precision int32 // decimal precision, or timestamp precision
}

// Schema is the ordered list of partition fields a Computer operates over.
type Schema []Field

func (s Schema) indexOf(name string) int {
	for i, f := range s {
		if f.Name == name {
			return i
		}
	}

	return -1
}

// Computer converts between partition-value strings and binary-row slots
// for a fixed Schema.
type Computer struct {
	schema Schema
	cfg    *rowopts.Config
}

// New builds a Computer over schema, restricted to the fields named in
// cfg's partition keys, in that order.
func New(schema Schema, cfg *rowopts.Config) (*Computer, error) {
	keys := cfg.PartitionKeys()
	ordered := make(Schema, 0, len(keys))
	for _, k := range keys {
		idx := schema.indexOf(k)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", errs.ErrMissingPartitionKey, k)
		}
		ordered = append(ordered, schema[idx])
	}

	return &Computer{schema: ordered, cfg: cfg}, nil
}

// Arity returns the number of partition fields.
func (c *Computer) Arity() int { return len(c.schema) }

// ToRow parses values (keyed by field name) into a binary row, in schema
// field order. A value equal to the configured default-partition-value
// sentinel is written as null. Every schema field must have a
// corresponding entry in values; a missing key is an error.
func (c *Computer) ToRow(values map[string]string) (row.Row, error) {
	w := row.NewWriter(len(c.schema))

	for i, f := range c.schema {
		raw, ok := values[f.Name]
		if !ok {
			w.Release()

			return row.Row{}, fmt.Errorf("%w: %s", errs.ErrMissingPartitionKey, f.Name)
		}

		if raw == c.cfg.DefaultPartitionValue() {
			if err := w.WriteNull(i); err != nil {
				w.Release()

				return row.Row{}, err
			}

			continue
		}

		if err := c.writeField(w, i, f, raw); err != nil {
			w.Release()

			return row.Row{}, err
		}
	}

	return w.Row(), nil
}

func (c *Computer) writeField(w *row.Writer, i int, f Field, raw string) error {
	switch f.Type {
	case rowtype.TypeBoolean:
		v, err := parseBool(raw)
		if err != nil {
			return err
		}

		return w.WriteBool(i, v)
	case rowtype.TypeTinyInt:
		v, err := strconv.ParseInt(raw, 10, 8)
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrInvalid, err)
		}

		return w.WriteTinyInt(i, int8(v))
	case rowtype.TypeSmallInt:
		v, err := strconv.ParseInt(raw, 10, 16)
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrInvalid, err)
		}

		return w.WriteSmallInt(i, int16(v))
	case rowtype.TypeInt:
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrInvalid, err)
		}

		return w.WriteInt(i, int32(v))
	case rowtype.TypeBigInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrInvalid, err)
		}

		return w.WriteLong(i, v)
	case rowtype.TypeFloat:
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrInvalid, err)
		}

		return w.WriteFloat(i, float32(v))
	case rowtype.TypeDouble:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrInvalid, err)
		}

		return w.WriteDouble(i, v)
	case rowtype.TypeString:
		return w.WriteString(i, raw)
	case rowtype.TypeBinary:
		return w.WriteBinary(i, []byte(raw))
	case rowtype.TypeDate:
		v, err := parseDate(raw, c.cfg.LegacyPartitionName())
		if err != nil {
			return err
		}

		return w.WriteDate(i, v)
	case rowtype.TypeDecimal:
		unscaled, err := parseDecimal(raw, f.Scale)
		if err != nil {
			return err
		}

		return w.WriteDecimal(i, unscaled, f.Precision)
	case rowtype.TypeTimestamp:
		ms, ns, err := parseTimestamp(raw)
		if err != nil {
			return err
		}

		return w.WriteTimestamp(i, ms, ns, f.Precision)
	default:
		return fmt.Errorf("%w: partition field type %s", errs.ErrNotImplemented, f.Type)
	}
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: not a boolean: %q", errs.ErrInvalid, raw)
	}
}

const epochDate = "1970-01-01"

func parseDate(raw string, legacy bool) (int32, error) {
	if legacy {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", errs.ErrInvalid, err)
		}

		return int32(v), nil
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrInvalid, err)
	}
	epoch, _ := time.Parse("2006-01-02", epochDate)

	return int32(t.Sub(epoch).Hours() / 24), nil //nolint: gosec
}

func parseDecimal(raw string, scale int32) (*big.Int, error) {
	neg := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")

	intPart, fracPart, _ := strings.Cut(raw, ".")
	for int32(len(fracPart)) < scale {
		fracPart += "0"
	}
	if int32(len(fracPart)) > scale {
		fracPart = fracPart[:scale]
	}

	digits := intPart + fracPart
	unscaled, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: not a decimal: %q", errs.ErrInvalid, raw)
	}
	if neg {
		unscaled.Neg(unscaled)
	}

	return unscaled, nil
}

func parseTimestamp(raw string) (epochMillis int64, nanoOfMillis int32, err error) {
	t, err := time.Parse("2006-01-02T15:04:05.000Z", raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %v", errs.ErrInvalid, err)
		}
	}

	ms := t.UnixMilli()
	nanoRemainder := int32(t.Nanosecond() % 1_000_000) //nolint: gosec

	return ms, nanoRemainder, nil
}

// ToStrings renders r back into its partition-value-string map, reversing
// ToRow: a null slot renders back to the configured default-partition-value
// sentinel.
func (c *Computer) ToStrings(r row.Row) (map[string]string, error) {
	out := make(map[string]string, len(c.schema))
	for i, f := range c.schema {
		isNull, err := r.IsNullAt(i)
		if err != nil {
			return nil, err
		}
		if isNull {
			out[f.Name] = c.cfg.DefaultPartitionValue()

			continue
		}

		s, err := c.readField(r, i, f)
		if err != nil {
			return nil, err
		}
		out[f.Name] = s
	}

	return out, nil
}

func (c *Computer) readField(r row.Row, i int, f Field) (string, error) {
	switch f.Type {
	case rowtype.TypeBoolean:
		v, err := r.GetBool(i)

		return strconv.FormatBool(v), err
	case rowtype.TypeTinyInt:
		v, err := r.GetTinyInt(i)

		return strconv.FormatInt(int64(v), 10), err
	case rowtype.TypeSmallInt:
		v, err := r.GetSmallInt(i)

		return strconv.FormatInt(int64(v), 10), err
	case rowtype.TypeInt:
		v, err := r.GetInt(i)

		return strconv.FormatInt(int64(v), 10), err
	case rowtype.TypeBigInt:
		v, err := r.GetLong(i)

		return strconv.FormatInt(v, 10), err
	case rowtype.TypeFloat:
		v, err := r.GetFloat(i)

		return colstats.FormatCanonicalFloat(float64(v)), err
	case rowtype.TypeDouble:
		v, err := r.GetDouble(i)

		return colstats.FormatCanonicalFloat(v), err
	case rowtype.TypeString:
		return r.GetString(i)
	case rowtype.TypeBinary:
		b, err := r.GetBinary(i)

		return string(b), err
	case rowtype.TypeDate:
		v, err := r.GetDate(i)
		if err != nil {
			return "", err
		}

		return formatDate(v, c.cfg.LegacyPartitionName()), nil
	case rowtype.TypeDecimal:
		unscaled, err := r.GetDecimalUnscaled(i, f.Precision)
		if err != nil {
			return "", err
		}

		return formatDecimalString(unscaled, f.Scale), nil
	case rowtype.TypeTimestamp:
		ms, _, err := r.GetTimestamp(i, f.Precision)
		if err != nil {
			return "", err
		}

		return time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05.000Z"), nil
	default:
		return "", fmt.Errorf("%w: partition field type %s", errs.ErrNotImplemented, f.Type)
	}
}

func formatDate(dayNumber int32, legacy bool) string {
	if legacy {
		return strconv.FormatInt(int64(dayNumber), 10)
	}

	epoch, _ := time.Parse("2006-01-02", epochDate)

	return epoch.AddDate(0, 0, int(dayNumber)).Format("2006-01-02")
}

func formatDecimalString(unscaled *big.Int, scale int32) string {
	neg := unscaled.Sign() < 0
	digits := new(big.Int).Abs(unscaled).String()

	if scale <= 0 {
		if neg {
			return "-" + digits
		}

		return digits
	}

	for int32(len(digits)) <= scale {
		digits = "0" + digits
	}

	out := digits[:int32(len(digits))-scale] + "." + digits[int32(len(digits))-scale:]
	if neg {
		out = "-" + out
	}

	return out
}
