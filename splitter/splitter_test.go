package splitter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vuthaihoc/cart/dataset"
	"github.com/vuthaihoc/cart/feature"
)

func labeledSample(label feature.Value, values ...feature.Value) dataset.Sample {
	return dataset.NewSample(feature.Values(values), label)
}

func TestGiniImpurity(t *testing.T) {
	pure := []feature.Value{feature.Category("a"), feature.Category("a")}
	impurity, err := giniImpurity(pure)
	require.NoError(t, err)
	require.InDelta(t, 0, impurity, 1e-9)

	even := []feature.Value{feature.Category("a"), feature.Category("b")}
	impurity, err = giniImpurity(even)
	require.NoError(t, err)
	require.InDelta(t, 0.5, impurity, 1e-9)

	skewed := []feature.Value{
		feature.Category("a"), feature.Category("a"), feature.Category("a"),
		feature.Category("b"), feature.Category("b"),
	}
	impurity, err = giniImpurity(skewed)
	require.NoError(t, err)
	require.InDelta(t, 0.48, impurity, 1e-9)
}

func TestLabelVariance(t *testing.T) {
	labels := []feature.Value{feature.Number(2), feature.Number(4), feature.Number(4), feature.Number(6)}
	variance, err := labelVariance(labels)
	require.NoError(t, err)
	require.InDelta(t, 2.0, variance, 1e-9)

	_, err = labelVariance([]feature.Value{feature.Category("a")})
	require.Error(t, err)
}

func TestCandidatePivotsNumeric(t *testing.T) {
	ctx := context.Background()
	samples := []dataset.Sample{
		labeledSample(feature.Category("a"), feature.Number(3)),
		labeledSample(feature.Category("a"), feature.Number(1)),
		labeledSample(feature.Category("b"), feature.Number(3)),
		labeledSample(feature.Category("b"), feature.Number(8)),
	}
	pivots, err := candidatePivots(ctx, samples, 0)
	require.NoError(t, err)
	require.Equal(t, []feature.Value{feature.Number(2), feature.Number(5.5)}, pivots)
}

func TestCandidatePivotsCategorical(t *testing.T) {
	ctx := context.Background()
	samples := []dataset.Sample{
		labeledSample(feature.Category("a"), feature.Category("red")),
		labeledSample(feature.Category("a"), feature.Category("blue")),
		labeledSample(feature.Category("b"), feature.Category("red")),
	}
	pivots, err := candidatePivots(ctx, samples, 0)
	require.NoError(t, err)
	require.Equal(t, []feature.Value{feature.Category("red"), feature.Category("blue")}, pivots)
}

func TestGiniBestSplit(t *testing.T) {
	ctx := context.Background()
	s := dataset.New([]dataset.Sample{
		labeledSample(feature.Category("a"), feature.Number(1)),
		labeledSample(feature.Category("a"), feature.Number(2)),
		labeledSample(feature.Category("a"), feature.Number(3)),
		labeledSample(feature.Category("b"), feature.Number(8)),
		labeledSample(feature.Category("b"), feature.Number(9)),
	})
	g := NewGini([]feature.Feature{feature.NewContinuousFeature("x")})
	split, err := g.BestSplit(ctx, s, 1)
	require.NoError(t, err)
	require.Equal(t, 0, split.Column)
	require.Equal(t, feature.Number(5.5), split.Value)
	require.InDelta(t, 0.48, split.PurityIncrease, 1e-9)
	left, right := split.Groups()
	leftCount, err := left.Count(ctx)
	require.NoError(t, err)
	rightCount, err := right.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, leftCount)
	require.Equal(t, 2, rightCount)
}

// A constant column offers no candidate pivots, so the search
// falls back to a split on the value itself, with an empty left
// partition and zero purity increase.
func TestBestSplitFallbackOnConstantColumn(t *testing.T) {
	ctx := context.Background()
	s := dataset.New([]dataset.Sample{
		labeledSample(feature.Category("a"), feature.Number(7)),
		labeledSample(feature.Category("b"), feature.Number(7)),
	})
	g := NewGini([]feature.Feature{feature.NewContinuousFeature("x")})
	split, err := g.BestSplit(ctx, s, 1)
	require.NoError(t, err)
	require.Equal(t, feature.Number(7), split.Value)
	require.Zero(t, split.PurityIncrease)
	left, right := split.Groups()
	leftEmpty, err := left.Empty(ctx)
	require.NoError(t, err)
	require.True(t, leftEmpty)
	rightCount, err := right.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, rightCount)
}

func TestBestSplitEmptyDataset(t *testing.T) {
	ctx := context.Background()
	g := NewGini([]feature.Feature{feature.NewContinuousFeature("x")})
	_, err := g.BestSplit(ctx, dataset.New(nil), 1)
	require.Equal(t, ErrNoSamples, err)
}

func TestGiniTerminate(t *testing.T) {
	ctx := context.Background()
	s := dataset.New([]dataset.Sample{
		labeledSample(feature.Category("a"), feature.Number(1)),
		labeledSample(feature.Category("a"), feature.Number(2)),
		labeledSample(feature.Category("b"), feature.Number(3)),
	})
	g := NewGini([]feature.Feature{feature.NewContinuousFeature("x")})
	leaf, err := g.Terminate(ctx, s, 1)
	require.NoError(t, err)
	require.Equal(t, feature.Category("a"), leaf.Outcome)
	require.Equal(t, 3, leaf.Size)
	require.InDelta(t, 2.0/3.0, leaf.Probabilities["a"], 1e-9)
	require.InDelta(t, 1.0/3.0, leaf.Probabilities["b"], 1e-9)
	require.InDelta(t, 4.0/9.0, leaf.Impurity, 1e-9)

	_, err = g.Terminate(ctx, dataset.New(nil), 1)
	require.Equal(t, ErrNoSamples, err)
}

func TestVarianceBestSplit(t *testing.T) {
	ctx := context.Background()
	s := dataset.New([]dataset.Sample{
		labeledSample(feature.Number(1), feature.Number(1)),
		labeledSample(feature.Number(1), feature.Number(2)),
		labeledSample(feature.Number(1), feature.Number(3)),
		labeledSample(feature.Number(10), feature.Number(8)),
		labeledSample(feature.Number(10), feature.Number(9)),
	})
	v := NewVariance([]feature.Feature{feature.NewContinuousFeature("x")})
	split, err := v.BestSplit(ctx, s, 1)
	require.NoError(t, err)
	require.Equal(t, feature.Number(5.5), split.Value)
	require.Greater(t, split.PurityIncrease, 0.0)
}

func TestVarianceTerminate(t *testing.T) {
	ctx := context.Background()
	s := dataset.New([]dataset.Sample{
		labeledSample(feature.Number(2), feature.Number(1)),
		labeledSample(feature.Number(4), feature.Number(2)),
	})
	v := NewVariance([]feature.Feature{feature.NewContinuousFeature("x")})
	leaf, err := v.Terminate(ctx, s, 1)
	require.NoError(t, err)
	require.Equal(t, feature.Number(3), leaf.Outcome)
	require.InDelta(t, 1.0, leaf.Impurity, 1e-9)
	require.Equal(t, 2, leaf.Size)
	require.Nil(t, leaf.Probabilities)
}
