package tree

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/vuthaihoc/cart/feature"
)

// Epsilon absorbs floating-point error when comparing purity
// increases at the pruning threshold, and substitutes a zero
// grand total when normalizing feature importances.
const Epsilon = 1e-8

/*
GrowError represents an error growing a tree
*/
type GrowError string

/*
ErrEmptyDataset is the error returned by the Grow method of a tree
when the given training dataset contains no samples.
*/
const ErrEmptyDataset = GrowError("cannot grow a tree from an empty dataset")

func (ge GrowError) Error() string {
	return string(ge)
}

/*
Config holds the hyperparameters bounding the growth of a tree.
The zero value of each field selects its default.
*/
type Config struct {
	// MaxDepth is the maximum depth comparison nodes may sit at,
	// with the root at depth 1. Must be at least 1 when set; 0
	// leaves the depth unbounded.
	MaxDepth int
	// MaxLeafSize is the number of samples a partition may hold
	// before the builder tries to split it further. Must be at
	// least 1 when set; 0 selects the default of 3.
	MaxLeafSize int
	// MinPurityIncrease is the minimum purity increase a candidate
	// split must achieve to be retained instead of a leaf. Must
	// not be negative; defaults to 0.
	MinPurityIncrease float64
}

const defaultMaxLeafSize = 3

/*
Tree is a binary classification-and-regression tree: comparison
nodes recursively partition the training data with axis-aligned
comparisons and leaves hold the prediction for the samples that
reach them. A tree starts bare and acquires its node graph when
grown with a Strategy over a training dataset.
*/
type Tree struct {
	root              *Comparison
	strategy          Strategy
	maxDepth          int
	maxLeafSize       int
	minPurityIncrease float64
}

/*
New takes the split/leaf strategy to grow with and a Config and
returns a bare tree or an error naming the offending hyperparameter
when the config violates a constraint.
*/
func New(strategy Strategy, config Config) (*Tree, error) {
	if strategy == nil {
		return nil, fmt.Errorf("strategy must not be nil")
	}
	maxDepth := config.MaxDepth
	if maxDepth == 0 {
		maxDepth = math.MaxInt
	}
	if maxDepth < 1 {
		return nil, fmt.Errorf("max depth must be at least 1, got %d", config.MaxDepth)
	}
	maxLeafSize := config.MaxLeafSize
	if maxLeafSize == 0 {
		maxLeafSize = defaultMaxLeafSize
	}
	if maxLeafSize < 1 {
		return nil, fmt.Errorf("max leaf size must be at least 1, got %d", config.MaxLeafSize)
	}
	if config.MinPurityIncrease < 0 {
		return nil, fmt.Errorf("min purity increase must not be negative, got %g", config.MinPurityIncrease)
	}
	return &Tree{
		strategy:          strategy,
		maxDepth:          maxDepth,
		maxLeafSize:       maxLeafSize,
		minPurityIncrease: config.MinPurityIncrease,
	}, nil
}

/*
Bare returns whether the tree has not been grown yet.
*/
func (t *Tree) Bare() bool {
	return t.root == nil
}

/*
Root returns the root comparison of the tree, or nil if the tree
is bare. The root is always a comparison: even when no split in
the training data qualifies, the builder keeps the root split and
collapses both its children into leaves.
*/
func (t *Tree) Root() *Comparison {
	return t.root
}

/*
Search takes a sample vector and descends from the root applying
each comparison's criterion until a leaf is reached, and returns
that leaf. On a bare tree it returns nil and no error. An error is
returned when the sample defines no value for a column the descent
needs, or defines one of the wrong kind, or when the descent hits
a comparison without children, as left behind by a failed growth.
*/
func (t *Tree) Search(ctx context.Context, sample feature.Vector) (*Leaf, error) {
	if t.root == nil {
		return nil, nil
	}
	var n Node = t.root
	for {
		switch current := n.(type) {
		case *Comparison:
			ok, err := current.SatisfiedBy(ctx, sample)
			if err != nil {
				return nil, fmt.Errorf("searching tree: %v", err)
			}
			if ok {
				n = current.left
			} else {
				n = current.right
			}
			if n == nil {
				return nil, fmt.Errorf("searching tree: comparison %v has no children: the tree was not fully grown", current)
			}
		case *Leaf:
			return current, nil
		}
	}
}

/*
Importance is the normalized share of the total purity increase
that splits on a column contributed across the whole tree.
*/
type Importance struct {
	Column int
	Score  float64
}

/*
FeatureImportances enumerates every node of the tree and returns
the importance of each column split on, sorted by descending
score. Scores are each column's accumulated purity increase
normalized by the grand total, so they sum to 1; when every split
contributed exactly zero measured gain the grand total is
substituted by Epsilon to keep the scores defined. On a bare tree
the result is empty.
*/
func (t *Tree) FeatureImportances() []Importance {
	if t.root == nil {
		return nil
	}
	totals := make(map[int]float64)
	for _, n := range Dump(t.root) {
		if c, ok := n.(*Comparison); ok {
			totals[c.Column] += c.PurityIncrease
		}
	}
	var total float64
	for _, v := range totals {
		total += v
	}
	if total == 0 {
		total = Epsilon
	}
	importances := make([]Importance, 0, len(totals))
	for column, v := range totals {
		importances = append(importances, Importance{Column: column, Score: v / total})
	}
	sort.Slice(importances, func(i, j int) bool {
		return importances[i].Score > importances[j].Score
	})
	return importances
}

func (t *Tree) String() string {
	if t.root == nil {
		return "[bare tree]\n"
	}
	return subtreeString(t.root)
}

func subtreeString(n Node) string {
	var result string
	var children []Node
	switch n := n.(type) {
	case *Comparison:
		result = fmt.Sprintf("%v\n|\n", n)
		if n.left != nil {
			children = append(children, n.left, n.right)
		}
	case *Leaf:
		result = fmt.Sprintf("%v\n", n)
	}
	for i, child := range children {
		for j, line := range strings.Split(subtreeString(child), "\n") {
			if len(line) > 0 {
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else {
					if i == len(children)-1 {
						result = fmt.Sprintf("%s   %s\n", result, line)
					} else {
						result = fmt.Sprintf("%s|  %s\n", result, line)
					}
				}
			}
		}
	}
	return result
}
