/*
Package splitter provides split/leaf strategies to grow trees with:
Gini for classification and Variance for regression.

Both strategies know the predictor features of their training data,
with the position of each feature in the slice as its column index.
They search candidate splits exhaustively: for every column they
enumerate pivot values (midpoints between consecutive distinct
values for continuous features, each distinct token for discrete
ones), partition the dataset by each candidate criterion and keep
the split with the highest purity increase.
*/
package splitter

import (
	"context"
	"fmt"
	"sort"

	"github.com/vuthaihoc/cart/dataset"
	"github.com/vuthaihoc/cart/feature"
	"github.com/vuthaihoc/cart/tree"
)

/*
SplitError represents an error finding a split or a terminal leaf
*/
type SplitError string

/*
ErrNoSamples is the error returned when a strategy is asked to
work on a dataset with no samples.
*/
const ErrNoSamples = SplitError("cannot compute a split or leaf for an empty dataset")

func (se SplitError) Error() string {
	return string(se)
}

// impurityFunc measures the impurity of a set of labels: Gini
// impurity for classification, variance for regression.
type impurityFunc func(labels []feature.Value) (float64, error)

// bestSplit runs the exhaustive candidate search shared by both
// strategies. When no column yields a candidate (a single sample,
// or all columns constant) it falls back to a pivot on the first
// value of the first column, which routes every sample to one
// side; the builder detects the empty complement and collapses
// the split into a leaf.
func bestSplit(ctx context.Context, s dataset.Dataset, columns int, impurity impurityFunc) (*tree.Comparison, error) {
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
	parentImpurity, err := impurity(labels)
	if err != nil {
		return nil, err
	}
	var best *tree.Comparison
	for column := 0; column < columns; column++ {
		pivots, err := candidatePivots(ctx, samples, column)
		if err != nil {
			return nil, err
		}
		for _, pivot := range pivots {
			criterion := feature.NewCriterion(column, pivot)
			left, right, err := s.Split(ctx, criterion)
			if err != nil {
				return nil, err
			}
			gain, err := purityIncrease(ctx, parentImpurity, len(samples), left, right, impurity)
			if err != nil {
				return nil, err
			}
			if best == nil || gain > best.PurityIncrease {
				best = tree.NewComparison(criterion, gain, left, right)
			}
		}
	}
	if best == nil {
		pivot, err := samples[0].ValueAt(ctx, 0)
		if err != nil {
			return nil, err
		}
		criterion := feature.NewCriterion(0, pivot)
		left, right, err := s.Split(ctx, criterion)
		if err != nil {
			return nil, err
		}
		best = tree.NewComparison(criterion, 0, left, right)
	}
	return best, nil
}

// purityIncrease returns the parent impurity minus the
// size-weighted impurity of both partitions, floored at zero so
// purity increases stay comparable as non-negative gains.
func purityIncrease(ctx context.Context, parentImpurity float64, parentCount int, left, right dataset.Dataset, impurity impurityFunc) (float64, error) {
	gain := parentImpurity
	for _, side := range []dataset.Dataset{left, right} {
		samples, err := side.Samples(ctx)
		if err != nil {
			return 0, err
		}
		if len(samples) == 0 {
			continue
		}
		labels, err := labelsOf(ctx, samples)
		if err != nil {
			return 0, err
		}
		sideImpurity, err := impurity(labels)
		if err != nil {
			return 0, err
		}
		gain -= sideImpurity * float64(len(samples)) / float64(parentCount)
	}
	if gain < 0 {
		gain = 0
	}
	return gain, nil
}

// candidatePivots enumerates the pivot values to try for a column:
// midpoints between consecutive distinct numbers for a continuous
// feature, every distinct token for a discrete one.
func candidatePivots(ctx context.Context, samples []dataset.Sample, column int) ([]feature.Value, error) {
	var numbers []float64
	tokens := make(map[feature.Category]bool)
	var tokenOrder []feature.Category
	for _, sample := range samples {
		v, err := sample.ValueAt(ctx, column)
		if err != nil {
			return nil, err
		}
		switch v := v.(type) {
		case feature.Number:
			numbers = append(numbers, float64(v))
		case feature.Category:
			if !tokens[v] {
				tokens[v] = true
				tokenOrder = append(tokenOrder, v)
			}
		default:
			return nil, fmt.Errorf("column %d: unsupported value %T", column, v)
		}
	}
	var pivots []feature.Value
	if len(numbers) > 0 {
		sort.Float64s(numbers)
		for i, n := range numbers[1:] {
			if n == numbers[i] {
				continue
			}
			pivots = append(pivots, feature.Number((numbers[i]+n)/2.0))
		}
	}
	for _, token := range tokenOrder {
		pivots = append(pivots, token)
	}
	return pivots, nil
}

func labelsOf(ctx context.Context, samples []dataset.Sample) ([]feature.Value, error) {
	labels := make([]feature.Value, 0, len(samples))
	for _, sample := range samples {
		label, err := sample.Label(ctx)
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, nil
}
