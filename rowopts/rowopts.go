// Package rowopts implements the functional-options configuration shared by
// the partition computer / bucket-id calculator and the serializer: a config
// struct with unexported setters, configured via a slice of With* options
// applied in order.
package rowopts

import (
	"github.com/lakerow/rowbinary/errs"
	"github.com/lakerow/rowbinary/internal/options"
)

// TableKind distinguishes primary-key tables (where row identity is defined
// by a key and dynamic bucketing is disallowed) from append-only tables
// (where postponed bucketing is disallowed).
type TableKind uint8

const (
	TableKindPrimaryKey TableKind = iota
	TableKindAppend
)

func (k TableKind) String() string {
	if k == TableKindAppend {
		return "append"
	}

	return "primary_key"
}

// Sentinel num_buckets values.
const (
	// NumBucketsSingle forces every row into bucket 0.
	NumBucketsSingle = 1
	// NumBucketsDynamic selects cross-partition dynamic bucketing: every row
	// emits bucket 0, and the mode is unavailable for primary-key tables.
	NumBucketsDynamic = -1
	// NumBucketsPostponed defers bucket assignment: every row emits -2, and
	// the mode is unavailable for append-only tables.
	NumBucketsPostponed = -2
)

// DefaultPartitionValueSentinel is the default string recognized as "no
// partition value supplied", written as null and read back as itself
//.
const DefaultPartitionValueSentinel = "__DEFAULT_PARTITION__"

// Config holds the resolved partition-computer / bucket-id-calculator /
// serializer configuration.
type Config struct {
	partitionKeys         []string
	defaultPartitionValue string
	legacyPartitionName   bool
	numBuckets            int
	tableKind             TableKind
}

// Option configures a Config.
type Option = options.Option[*Config]

// New builds a Config from opts, applied in order, defaulting to
// NumBucketsSingle, the standard default-partition-value sentinel, ISO
// (non-legacy) partition naming, and a primary-key table.
func New(opts ...Option) (*Config, error) {
	c := &Config{
		defaultPartitionValue: DefaultPartitionValueSentinel,
		numBuckets:            NumBucketsSingle,
		tableKind:             TableKindPrimaryKey,
	}

	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	if err := c.validateNumBuckets(); err != nil {
		return nil, err
	}

	return c, nil
}

// validateNumBuckets enforces the bucketing construction rules once every
// option has been applied, since table kind and num_buckets may arrive via
// options in either order.
func (c *Config) validateNumBuckets() error {
	switch c.numBuckets {
	case 0:
		return errs.ErrInvalidBucketCount
	case NumBucketsDynamic:
		if c.tableKind == TableKindPrimaryKey {
			return errs.ErrDynamicBucketUnsupported
		}
	case NumBucketsPostponed:
		if c.tableKind == TableKindAppend {
			return errs.ErrPostponedBucketUnsupported
		}
	default:
		if c.numBuckets < NumBucketsPostponed {
			return errs.ErrInvalidBucketCount
		}
	}

	return nil
}

// WithPartitionKeys sets the ordered list of partition field names.
func WithPartitionKeys(keys []string) Option {
	return options.NoError(func(c *Config) {
		c.partitionKeys = append([]string(nil), keys...)
	})
}

// WithDefaultPartitionValue overrides the default-partition-value sentinel.
func WithDefaultPartitionValue(v string) Option {
	return options.NoError(func(c *Config) { c.defaultPartitionValue = v })
}

// WithLegacyPartitionName selects the legacy raw day-number date rendering
// instead of ISO calendar dates.
func WithLegacyPartitionName(legacy bool) Option {
	return options.NoError(func(c *Config) { c.legacyPartitionName = legacy })
}

// WithTableKind sets the table kind, constraining which num_buckets
// sentinels are legal.
func WithTableKind(k TableKind) Option {
	return options.NoError(func(c *Config) { c.tableKind = k })
}

// WithNumBuckets sets num_buckets. The cross-field legality
// check against table kind ({0, < -2} always rejected; -1 rejected for
// primary-key tables; -2 rejected for append-only tables) runs once in New,
// after every option has applied, since table kind may be set by a later
// option in the same call.
func WithNumBuckets(n int) Option {
	return options.NoError(func(c *Config) { c.numBuckets = n })
}

// PartitionKeys returns the configured partition field names.
func (c *Config) PartitionKeys() []string { return c.partitionKeys }

// DefaultPartitionValue returns the configured default-partition-value
// sentinel.
func (c *Config) DefaultPartitionValue() string { return c.defaultPartitionValue }

// LegacyPartitionName reports whether legacy (raw day-number) date naming
// is selected.
func (c *Config) LegacyPartitionName() bool { return c.legacyPartitionName }

// NumBuckets returns the configured num_buckets value (possibly a
// sentinel).
func (c *Config) NumBuckets() int { return c.numBuckets }

// TableKind returns the configured table kind.
func (c *Config) TableKind() TableKind { return c.tableKind }
