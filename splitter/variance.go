package splitter

import (
	"context"
	"fmt"

	"github.com/vuthaihoc/cart/dataset"
	"github.com/vuthaihoc/cart/feature"
	"github.com/vuthaihoc/cart/tree"
)

/*
Variance is a regression strategy: it selects splits by variance
reduction of the numeric labels and terminates partitions with
their mean label.
*/
type Variance struct {
	features []feature.Feature
}

/*
NewVariance takes the slice of predictor features of the training
data, with each feature's position as its column index, and
returns a Variance strategy for them.
*/
func NewVariance(features []feature.Feature) *Variance {
	return &Variance{features}
}

/*
BestSplit returns the split of the given dataset with the highest
label variance reduction, or an error if the dataset is empty, a
label is not numeric or the backend fails.
*/
func (v *Variance) BestSplit(ctx context.Context, s dataset.Dataset, depth int) (*tree.Comparison, error) {
	return bestSplit(ctx, s, len(v.features), labelVariance)
}

/*
Terminate returns a leaf predicting the mean label of the given
dataset, with the label variance of the partition and its sample
count as metadata.
*/
func (v *Variance) Terminate(ctx context.Context, s dataset.Dataset, depth int) (*tree.Leaf, error) {
	samples, err := s.Samples(ctx)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	labels, err := labelsOf(ctx, samples)
	if err != nil {
		return nil, err
	}
	mean, err := labelMean(labels)
	if err != nil {
		return nil, err
	}
	variance, err := labelVariance(labels)
	if err != nil {
		return nil, err
	}
	return tree.NewLeaf(feature.Number(mean), variance, len(samples), nil), nil
}

func labelMean(labels []feature.Value) (float64, error) {
	var sum float64
	for _, label := range labels {
		n, ok := label.(feature.Number)
		if !ok {
			return 0, fmt.Errorf("regression expects numeric labels, got %T value", label)
		}
		sum += float64(n)
	}
	return sum / float64(len(labels)), nil
}

// labelVariance is the population variance of the numeric labels.
func labelVariance(labels []feature.Value) (float64, error) {
	mean, err := labelMean(labels)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, label := range labels {
		d := float64(label.(feature.Number)) - mean
		sum += d * d
	}
	return sum / float64(len(labels)), nil
}
