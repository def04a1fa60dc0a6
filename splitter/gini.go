package splitter

import (
	"context"

	"github.com/vuthaihoc/cart/dataset"
	"github.com/vuthaihoc/cart/feature"
	"github.com/vuthaihoc/cart/tree"
)

/*
Gini is a classification strategy: it selects splits by Gini
impurity decrease and terminates partitions with the majority
label, annotated with the observed probability of each label.
*/
type Gini struct {
	features []feature.Feature
}

/*
NewGini takes the slice of predictor features of the training data,
with each feature's position as its column index, and returns a
Gini strategy for them.
*/
func NewGini(features []feature.Feature) *Gini {
	return &Gini{features}
}

/*
BestSplit returns the split of the given dataset with the highest
Gini impurity decrease, or an error if the dataset is empty or its
backend fails.
*/
func (g *Gini) BestSplit(ctx context.Context, s dataset.Dataset, depth int) (*tree.Comparison, error) {
	return bestSplit(ctx, s, len(g.features), giniImpurity)
}

/*
Terminate returns a leaf predicting the most frequent label of the
given dataset, with the probability of each observed label, the
Gini impurity of the partition and its sample count as metadata.
*/
func (g *Gini) Terminate(ctx context.Context, s dataset.Dataset, depth int) (*tree.Leaf, error) {
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
	counts := make(map[string]int)
	outcomes := make(map[string]feature.Value)
	for _, label := range labels {
		counts[label.String()]++
		outcomes[label.String()] = label
	}
	var outcome feature.Value
	probabilities := make(map[string]float64)
	best := 0
	for k, c := range counts {
		probabilities[k] = float64(c) / float64(len(labels))
		if c > best {
			best = c
			outcome = outcomes[k]
		}
	}
	impurity, err := giniImpurity(labels)
	if err != nil {
		return nil, err
	}
	return tree.NewLeaf(outcome, impurity, len(samples), probabilities), nil
}

// giniImpurity is 1 minus the summed squared label probabilities:
// 0 for a pure partition, approaching 1 as labels spread evenly
// over many values.
func giniImpurity(labels []feature.Value) (float64, error) {
	counts := make(map[string]int)
	for _, label := range labels {
		counts[label.String()]++
	}
	impurity := 1.0
	total := float64(len(labels))
	for _, c := range counts {
		p := float64(c) / total
		impurity -= p * p
	}
	return impurity, nil
}
