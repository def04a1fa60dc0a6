/*
Package cart grows and queries binary classification-and-regression
trees.

The tree package holds the core node model, the work-stack builder
and the traversal and importance engines; the splitter package
provides the concrete split/leaf strategies; the dataset package
and its subpackages provide training data backed by memory, CSV
files, SQL databases, MongoDB or redis. This package ties them
together for the common cases: growing a classification or
regression tree over a dataset and evaluating it.
*/
package cart

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/vuthaihoc/cart/dataset"
	"github.com/vuthaihoc/cart/feature"
	"github.com/vuthaihoc/cart/splitter"
	"github.com/vuthaihoc/cart/tree"
)

/*
GrowClassification takes a training dataset, its predictor features
in column order and a tree config, grows a classification tree with
a Gini strategy and returns it or an error.
*/
func GrowClassification(ctx context.Context, s dataset.Dataset, features []feature.Feature, config tree.Config) (*tree.Tree, error) {
	t, err := tree.New(splitter.NewGini(features), config)
	if err != nil {
		return nil, err
	}
	if err := t.Grow(ctx, s); err != nil {
		return nil, err
	}
	return t, nil
}

/*
GrowRegression takes a training dataset with numeric labels, its
predictor features in column order and a tree config, grows a
regression tree with a variance-reduction strategy and returns it
or an error.
*/
func GrowRegression(ctx context.Context, s dataset.Dataset, features []feature.Feature, config tree.Config) (*tree.Tree, error) {
	t, err := tree.New(splitter.NewVariance(features), config)
	if err != nil {
		return nil, err
	}
	if err := t.Grow(ctx, s); err != nil {
		return nil, err
	}
	return t, nil
}

/*
Accuracy takes a grown tree and a labeled dataset and returns the
share of samples whose leaf outcome equals their label, or an error
if the dataset cannot be read or a sample cannot be searched.
*/
func Accuracy(ctx context.Context, t *tree.Tree, s dataset.Dataset) (float64, error) {
	samples, err := s.Samples(ctx)
	if err != nil {
		return 0, err
	}
	if len(samples) == 0 {
		return 0, fmt.Errorf("testing tree: empty dataset")
	}
	var hits float64
	for _, sample := range samples {
		leaf, err := t.Search(ctx, sample)
		if err != nil {
			return 0, fmt.Errorf("testing tree: %v", err)
		}
		if leaf == nil {
			return 0, fmt.Errorf("testing tree: tree is bare")
		}
		label, err := sample.Label(ctx)
		if err != nil {
			return 0, err
		}
		if leaf.Outcome.String() == label.String() {
			hits += 1.0
		}
	}
	return hits / float64(len(samples)), nil
}

/*
MeanSquaredError takes a grown regression tree and a dataset with
numeric labels and returns the mean squared difference between
each sample's label and its leaf outcome, or an error.
*/
func MeanSquaredError(ctx context.Context, t *tree.Tree, s dataset.Dataset) (float64, error) {
	samples, err := s.Samples(ctx)
	if err != nil {
		return 0, err
	}
	if len(samples) == 0 {
		return 0, fmt.Errorf("testing tree: empty dataset")
	}
	var sum float64
	for _, sample := range samples {
		leaf, err := t.Search(ctx, sample)
		if err != nil {
			return 0, fmt.Errorf("testing tree: %v", err)
		}
		if leaf == nil {
			return 0, fmt.Errorf("testing tree: tree is bare")
		}
		outcome, ok := leaf.Outcome.(feature.Number)
		if !ok {
			return 0, fmt.Errorf("testing tree: non-numeric outcome %v", leaf.Outcome)
		}
		label, err := sample.Label(ctx)
		if err != nil {
			return 0, err
		}
		n, ok := label.(feature.Number)
		if !ok {
			return 0, fmt.Errorf("testing tree: non-numeric label %v", label)
		}
		d := float64(n) - float64(outcome)
		sum += d * d
	}
	return sum / float64(len(samples)), nil
}

/*
Holdout takes a dataset, a percentage between 0 and 100 and a
random source and splits the dataset's samples at random into a
training dataset with the given percentage of them and a test
dataset with the rest.
*/
func Holdout(ctx context.Context, s dataset.Dataset, trainPercent int, r *rand.Rand) (dataset.Dataset, dataset.Dataset, error) {
	if trainPercent < 0 || trainPercent > 100 {
		return nil, nil, fmt.Errorf("train percent must be between 0 and 100, got %d", trainPercent)
	}
	samples, err := s.Samples(ctx)
	if err != nil {
		return nil, nil, err
	}
	shuffled := make([]dataset.Sample, len(samples))
	copy(shuffled, samples)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	cut := len(shuffled) * trainPercent / 100
	return dataset.New(shuffled[:cut]), dataset.New(shuffled[cut:]), nil
}
