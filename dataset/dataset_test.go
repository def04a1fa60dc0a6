package dataset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vuthaihoc/cart/feature"
)

func testSamples() []Sample {
	return []Sample{
		NewSample(feature.Values{feature.Number(1), feature.Category("red")}, feature.Category("a")),
		NewSample(feature.Values{feature.Number(5), feature.Category("blue")}, feature.Category("a")),
		NewSample(feature.Values{feature.Number(9), feature.Category("red")}, feature.Category("b")),
	}
}

func TestMemoryDatasetCounts(t *testing.T) {
	ctx := context.Background()
	s := New(testSamples())
	count, err := s.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, count)
	empty, err := s.Empty(ctx)
	require.NoError(t, err)
	require.False(t, empty)

	s = New(nil)
	count, err = s.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
	empty, err = s.Empty(ctx)
	require.NoError(t, err)
	require.True(t, empty)
}

func TestMemoryDatasetSplitNumeric(t *testing.T) {
	ctx := context.Background()
	s := New(testSamples())
	left, right, err := s.Split(ctx, feature.NewCriterion(0, feature.Number(5)))
	require.NoError(t, err)
	leftSamples, err := left.Samples(ctx)
	require.NoError(t, err)
	rightSamples, err := right.Samples(ctx)
	require.NoError(t, err)
	require.Len(t, leftSamples, 1)
	require.Len(t, rightSamples, 2)
	v, err := leftSamples[0].ValueAt(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, feature.Number(1), v)
	// the sample with value exactly 5 does not satisfy the strict
	// less-than criterion and ends up on the right
	v, err = rightSamples[0].ValueAt(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, feature.Number(5), v)
}

func TestMemoryDatasetSplitCategorical(t *testing.T) {
	ctx := context.Background()
	s := New(testSamples())
	left, right, err := s.Split(ctx, feature.NewCriterion(1, feature.Category("red")))
	require.NoError(t, err)
	leftCount, err := left.Count(ctx)
	require.NoError(t, err)
	rightCount, err := right.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, leftCount)
	require.Equal(t, 1, rightCount)
}

func TestMemoryDatasetSplitError(t *testing.T) {
	ctx := context.Background()
	s := New(testSamples())
	_, _, err := s.Split(ctx, feature.NewCriterion(7, feature.Number(1)))
	require.Error(t, err)
	require.Contains(t, err.Error(), "column 7")
}

func TestMemoryDatasetMerge(t *testing.T) {
	ctx := context.Background()
	samples := testSamples()
	merged, err := New(samples[:1]).Merge(ctx, New(samples[1:]))
	require.NoError(t, err)
	all, err := merged.Samples(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Same(t, samples[0], all[0])
	require.Same(t, samples[2], all[2])
}

func TestMaterialize(t *testing.T) {
	ctx := context.Background()
	s := New(testSamples())
	m, err := Materialize(ctx, s)
	require.NoError(t, err)
	require.Same(t, s, m)
}
