package tree

import (
	"context"

	"github.com/vuthaihoc/cart/dataset"
)

/*
Strategy is the collaborator a tree consults while growing: it
supplies candidate splits and terminal leaves. Concrete strategies
decide the split-selection criterion (Gini impurity, variance
reduction...) and the leaf outcome (majority class, mean...); the
builder only relies on the two operations below.

Its BestSplit method takes a dataset and the depth the resulting
node will sit at and returns a childless Comparison whose groups
partition the dataset into disjoint left/right subsets, either or
both possibly empty, and whose purity increase is comparable
across calls.

Its Terminate method takes a dataset and a depth and returns a
terminal Leaf for it.

Both methods are expected to succeed on any well-formed non-empty
dataset; errors surface backend failures, not modeling conditions.
*/
type Strategy interface {
	BestSplit(ctx context.Context, s dataset.Dataset, depth int) (*Comparison, error)
	Terminate(ctx context.Context, s dataset.Dataset, depth int) (*Leaf, error)
}
