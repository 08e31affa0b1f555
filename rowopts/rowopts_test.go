package rowopts

import (
	"testing"

	"github.com/lakerow/rowbinary/errs"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	require := require.New(t)

	c, err := New()
	require.NoError(err)
	require.Equal(NumBucketsSingle, c.NumBuckets())
	require.Equal(DefaultPartitionValueSentinel, c.DefaultPartitionValue())
	require.False(c.LegacyPartitionName())
	require.Equal(TableKindPrimaryKey, c.TableKind())
}

func TestWithPartitionKeysAndLegacyName(t *testing.T) {
	require := require.New(t)

	c, err := New(
		WithPartitionKeys([]string{"region", "dt"}),
		WithLegacyPartitionName(true),
	)
	require.NoError(err)
	require.Equal([]string{"region", "dt"}, c.PartitionKeys())
	require.True(c.LegacyPartitionName())
}

func TestNumBucketsZeroRejected(t *testing.T) {
	require := require.New(t)

	_, err := New(WithNumBuckets(0))
	require.ErrorIs(err, errs.ErrInvalidBucketCount)
}

func TestDynamicBucketRejectedForPrimaryKey(t *testing.T) {
	require := require.New(t)

	_, err := New(WithNumBuckets(NumBucketsDynamic), WithTableKind(TableKindPrimaryKey))
	require.ErrorIs(err, errs.ErrDynamicBucketUnsupported)

	_, err = New(WithTableKind(TableKindAppend), WithNumBuckets(NumBucketsDynamic))
	require.NoError(err)
}

func TestPostponedBucketRejectedForAppendOnly(t *testing.T) {
	require := require.New(t)

	_, err := New(WithNumBuckets(NumBucketsPostponed), WithTableKind(TableKindAppend))
	require.ErrorIs(err, errs.ErrPostponedBucketUnsupported)

	_, err = New(WithTableKind(TableKindPrimaryKey), WithNumBuckets(NumBucketsPostponed))
	require.NoError(err)
}

func TestNumBucketsBelowNegativeTwoRejected(t *testing.T) {
	require := require.New(t)

	_, err := New(WithNumBuckets(-3))
	require.ErrorIs(err, errs.ErrInvalidBucketCount)
}
