package csv

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vuthaihoc/cart/feature"
)

func testFeatures() []feature.Feature {
	return []feature.Feature{
		feature.NewContinuousFeature("age"),
		feature.NewDiscreteFeature("color", []string{"red", "blue"}),
		feature.NewDiscreteFeature("outcome", []string{"yes", "no"}),
	}
}

func TestReadDataset(t *testing.T) {
	ctx := context.Background()
	content := `age,outcome,color
1,yes,red
8.5,no,blue
`
	s, predictors, err := ReadDataset(strings.NewReader(content), testFeatures(), "outcome")
	require.NoError(t, err)
	require.Len(t, predictors, 2)
	require.Equal(t, "age", predictors[0].Name())
	require.Equal(t, "color", predictors[1].Name())

	samples, err := s.Samples(ctx)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	v, err := samples[0].ValueAt(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, feature.Number(1), v)
	v, err = samples[0].ValueAt(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, feature.Category("red"), v)
	label, err := samples[0].Label(ctx)
	require.NoError(t, err)
	require.Equal(t, feature.Category("yes"), label)

	v, err = samples[1].ValueAt(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, feature.Number(8.5), v)
	label, err = samples[1].Label(ctx)
	require.NoError(t, err)
	require.Equal(t, feature.Category("no"), label)
}

func TestReadDatasetErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		content string
		label   string
		errMsg  string
	}{
		{
			"unknown header feature",
			"age,height,outcome\n",
			"outcome",
			"unknown feature height",
		},
		{
			"missing label feature",
			"age,color\n",
			"outcome",
			"label feature outcome not present",
		},
		{
			"invalid cell",
			"age,color,outcome\nold,red,yes\n",
			"outcome",
			"parsing line 2",
		},
		{
			"unknown category",
			"age,color,outcome\n3,green,yes\n",
			"outcome",
			"unknown value green",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ReadDataset(strings.NewReader(tc.content), testFeatures(), tc.label)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestReadVectors(t *testing.T) {
	ctx := context.Background()
	predictors := []feature.Feature{
		feature.NewContinuousFeature("age"),
		feature.NewDiscreteFeature("color", []string{"red", "blue"}),
	}
	content := `color,age
red,4
blue,7
`
	vectors, err := ReadVectors(strings.NewReader(content), predictors)
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	v, err := vectors[0].ValueAt(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, feature.Number(4), v)
	v, err = vectors[0].ValueAt(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, feature.Category("red"), v)
	v, err = vectors[1].ValueAt(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, feature.Category("blue"), v)
}

func TestReadVectorsErrors(t *testing.T) {
	predictors := []feature.Feature{
		feature.NewContinuousFeature("age"),
		feature.NewDiscreteFeature("color", []string{"red", "blue"}),
	}
	_, err := ReadVectors(strings.NewReader("age,height\n"), predictors)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown feature height")

	_, err = ReadVectors(strings.NewReader("age,age\n"), predictors)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicated feature age")

	_, err = ReadVectors(strings.NewReader("age\n"), predictors)
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected 2 features")
}
