package tree

import (
	"fmt"

	"github.com/vuthaihoc/cart/dataset"
	"github.com/vuthaihoc/cart/feature"
)

/*
Node is a vertex of a grown tree: either a *Comparison splitting
samples on a column or a *Leaf holding an outcome.
*/
type Node interface {
	binaryNode()
}

/*
Comparison is an internal node of the tree. It routes samples left
when they satisfy its criterion and right otherwise.

A comparison owns either zero or exactly two children, never one.
Between its creation by a split strategy and the attachment of both
children by the builder it also owns the two dataset partitions it
was computed from; the builder releases them once the children are
in place so grown subtrees do not retain training data.
*/
type Comparison struct {
	feature.Criterion
	// PurityIncrease quantifies how much the split improved label
	// purity versus its parent partition. Never negative.
	PurityIncrease float64

	left, right Node
	leftGroup   dataset.Dataset
	rightGroup  dataset.Dataset
}

/*
Leaf is a terminal node of the tree. It holds the outcome predicted
for every sample that reaches it, plus whatever metadata the leaf
strategy computed from the source partition: the partition impurity,
its sample count and, for classification strategies, the observed
probability of each label value.
*/
type Leaf struct {
	Outcome       feature.Value
	Impurity      float64
	Size          int
	Probabilities map[string]float64
}

func (c *Comparison) binaryNode() {}
func (l *Leaf) binaryNode()       {}

/*
NewComparison takes a criterion, the purity increase the split
achieved and the left and right dataset partitions it produced, and
returns a childless Comparison owning those partitions. Split
strategies use it to build their candidates.
*/
func NewComparison(c feature.Criterion, purityIncrease float64, leftGroup, rightGroup dataset.Dataset) *Comparison {
	return &Comparison{
		Criterion:      c,
		PurityIncrease: purityIncrease,
		leftGroup:      leftGroup,
		rightGroup:     rightGroup,
	}
}

/*
NewLeaf takes an outcome value, the impurity and sample count of the
partition it was computed from and a map with the probability of
each label value (nil for regression outcomes) and returns a Leaf
with them.
*/
func NewLeaf(outcome feature.Value, impurity float64, size int, probabilities map[string]float64) *Leaf {
	return &Leaf{Outcome: outcome, Impurity: impurity, Size: size, Probabilities: probabilities}
}

// Left returns the left child, nil before attachment.
func (c *Comparison) Left() Node {
	return c.left
}

// Right returns the right child, nil before attachment.
func (c *Comparison) Right() Node {
	return c.right
}

/*
Groups returns the two dataset partitions the comparison was
computed from, or nil partitions once the builder has attached
both children and released them.
*/
func (c *Comparison) Groups() (dataset.Dataset, dataset.Dataset) {
	return c.leftGroup, c.rightGroup
}

// attach sets both children at once. Children are never attached
// one at a time from outside the builder, which keeps the
// 0-or-2-children invariant.
func (c *Comparison) attach(left, right Node) {
	c.left = left
	c.right = right
}

// cleanup releases the transient partitions. Called by the builder
// once both children are attached; after it returns the comparison
// no longer retains any training data.
func (c *Comparison) cleanup() {
	c.leftGroup = nil
	c.rightGroup = nil
}

func (c *Comparison) String() string {
	return fmt.Sprintf("{%v (+%g)}", c.Criterion, c.PurityIncrease)
}

func (l *Leaf) String() string {
	if l.Probabilities != nil {
		return fmt.Sprintf("{%v %v}", l.Outcome, l.Probabilities)
	}
	return fmt.Sprintf("{%v}", l.Outcome)
}

/*
Dump takes a node and returns the complete flattening of the
subtree rooted at it, in pre-order: the node itself, then the full
left subtree, then the full right subtree. A leaf yields a
one-element slice. The enumeration is iterative so arbitrarily
deep trees do not risk exhausting the goroutine stack.

Both children of a comparison produced by the degenerate-split
merge are the same leaf object, so callers must not assume the
returned nodes are distinct.
*/
func Dump(n Node) []Node {
	if n == nil {
		return nil
	}
	var result []Node
	stack := []Node{n}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result = append(result, current)
		if c, ok := current.(*Comparison); ok {
			// push right first so the left subtree is enumerated first
			if c.right != nil {
				stack = append(stack, c.right)
			}
			if c.left != nil {
				stack = append(stack, c.left)
			}
		}
	}
	return result
}
