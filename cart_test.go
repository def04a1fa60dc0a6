package cart

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vuthaihoc/cart/dataset"
	"github.com/vuthaihoc/cart/feature"
	"github.com/vuthaihoc/cart/tree"
)

func classificationData() (dataset.Dataset, []feature.Feature) {
	s := dataset.New([]dataset.Sample{
		dataset.NewSample(feature.Values{feature.Number(1)}, feature.Category("a")),
		dataset.NewSample(feature.Values{feature.Number(2)}, feature.Category("a")),
		dataset.NewSample(feature.Values{feature.Number(3)}, feature.Category("a")),
		dataset.NewSample(feature.Values{feature.Number(8)}, feature.Category("b")),
		dataset.NewSample(feature.Values{feature.Number(9)}, feature.Category("b")),
	})
	return s, []feature.Feature{feature.NewContinuousFeature("x")}
}

func regressionData() (dataset.Dataset, []feature.Feature) {
	s := dataset.New([]dataset.Sample{
		dataset.NewSample(feature.Values{feature.Number(1)}, feature.Number(1)),
		dataset.NewSample(feature.Values{feature.Number(2)}, feature.Number(1)),
		dataset.NewSample(feature.Values{feature.Number(3)}, feature.Number(1)),
		dataset.NewSample(feature.Values{feature.Number(8)}, feature.Number(10)),
		dataset.NewSample(feature.Values{feature.Number(9)}, feature.Number(10)),
	})
	return s, []feature.Feature{feature.NewContinuousFeature("x")}
}

func TestGrowClassification(t *testing.T) {
	ctx := context.Background()
	s, features := classificationData()
	tr, err := GrowClassification(ctx, s, features, tree.Config{MaxLeafSize: 1})
	require.NoError(t, err)
	require.False(t, tr.Bare())
	accuracy, err := Accuracy(ctx, tr, s)
	require.NoError(t, err)
	require.InDelta(t, 1.0, accuracy, 1e-9)
}

func TestGrowClassificationInvalidConfig(t *testing.T) {
	ctx := context.Background()
	s, features := classificationData()
	_, err := GrowClassification(ctx, s, features, tree.Config{MaxDepth: -3})
	require.Error(t, err)
	require.Contains(t, err.Error(), "max depth")
}

func TestGrowRegression(t *testing.T) {
	ctx := context.Background()
	s, features := regressionData()
	tr, err := GrowRegression(ctx, s, features, tree.Config{MaxLeafSize: 1})
	require.NoError(t, err)
	mse, err := MeanSquaredError(ctx, tr, s)
	require.NoError(t, err)
	require.InDelta(t, 0.0, mse, 1e-9)

	leaf, err := tr.Search(ctx, feature.Values{feature.Number(8.5)})
	require.NoError(t, err)
	require.NotNil(t, leaf)
	require.Equal(t, feature.Number(10), leaf.Outcome)
}

func TestGrowClassificationEmptyDataset(t *testing.T) {
	ctx := context.Background()
	_, features := classificationData()
	tr, err := GrowClassification(ctx, dataset.New(nil), features, tree.Config{})
	require.Equal(t, tree.ErrEmptyDataset, err)
	require.Nil(t, tr)
}

func TestHoldout(t *testing.T) {
	ctx := context.Background()
	s, _ := classificationData()
	r := rand.New(rand.NewSource(1))
	train, test, err := Holdout(ctx, s, 80, r)
	require.NoError(t, err)
	trainCount, err := train.Count(ctx)
	require.NoError(t, err)
	testCount, err := test.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, trainCount)
	require.Equal(t, 1, testCount)

	_, _, err = Holdout(ctx, s, 120, r)
	require.Error(t, err)
}
