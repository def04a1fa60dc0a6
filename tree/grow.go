package tree

import (
	"context"
	"fmt"

	"github.com/vuthaihoc/cart/dataset"
)

// frame is a pending builder step: a comparison whose partitions
// still have to be resolved into children, and the depth it sits
// at in the tree.
type frame struct {
	node  *Comparison
	depth int
}

/*
Grow takes a non-empty training dataset and constructs the full
tree in place, replacing any previously grown tree. Growth is
driven by an explicit last-in-first-out stack instead of recursion,
so deep unbalanced trees cannot exhaust the goroutine stack and
the release of each node's transient partitions is a single
auditable step.

For every stacked comparison the builder reads its two partitions
and resolves both sides: an empty partition collapses the split,
merging both partitions back and attaching the same terminal leaf
as both children; at the depth limit both sides terminate
unconditionally; otherwise each side independently either becomes
a candidate split, retained when its purity increase clears the
configured minimum within Epsilon, or a terminal leaf. Once both
children are attached the comparison's partitions are released, so
peak memory is bounded by the partitions of in-flight frames
rather than the whole growth trace.

Grow returns ErrEmptyDataset on an empty dataset, and surfaces any
error from the strategy or the dataset backend.
*/
func (t *Tree) Grow(ctx context.Context, s dataset.Dataset) error {
	empty, err := s.Empty(ctx)
	if err != nil {
		return fmt.Errorf("growing tree: %v", err)
	}
	if empty {
		return ErrEmptyDataset
	}
	root, err := t.strategy.BestSplit(ctx, s, 1)
	if err != nil {
		return fmt.Errorf("growing tree: splitting root: %v", err)
	}
	t.root = root
	stack := []frame{{root, 1}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		left, right := current.node.Groups()
		depth := current.depth + 1
		leftEmpty, err := left.Empty(ctx)
		if err != nil {
			return fmt.Errorf("growing tree: %v", err)
		}
		rightEmpty, err := right.Empty(ctx)
		if err != nil {
			return fmt.Errorf("growing tree: %v", err)
		}
		switch {
		case leftEmpty || rightEmpty:
			// the split failed to separate any rows: undo it by
			// merging the partitions and terminate with a single
			// leaf shared by both sides
			merged, err := left.Merge(ctx, right)
			if err != nil {
				return fmt.Errorf("growing tree: merging degenerate split: %v", err)
			}
			leaf, err := t.strategy.Terminate(ctx, merged, depth)
			if err != nil {
				return fmt.Errorf("growing tree: terminating degenerate split: %v", err)
			}
			current.node.attach(leaf, leaf)
		case depth >= t.maxDepth:
			leftLeaf, err := t.strategy.Terminate(ctx, left, depth)
			if err != nil {
				return fmt.Errorf("growing tree: terminating at depth limit: %v", err)
			}
			rightLeaf, err := t.strategy.Terminate(ctx, right, depth)
			if err != nil {
				return fmt.Errorf("growing tree: terminating at depth limit: %v", err)
			}
			current.node.attach(leftLeaf, rightLeaf)
		default:
			leftChild, leftPush, err := t.develop(ctx, left, depth)
			if err != nil {
				return err
			}
			rightChild, rightPush, err := t.develop(ctx, right, depth)
			if err != nil {
				return err
			}
			current.node.attach(leftChild, rightChild)
			if leftPush != nil {
				stack = append(stack, frame{leftPush, depth})
			}
			if rightPush != nil {
				stack = append(stack, frame{rightPush, depth})
			}
		}
		current.node.cleanup()
	}
	return nil
}

// develop resolves one side of a split into its child node: a
// candidate comparison when the partition is still worth splitting
// and the split clears the pruning threshold, a terminal leaf
// otherwise. The returned comparison, if any, still has to be
// expanded by the caller.
func (t *Tree) develop(ctx context.Context, s dataset.Dataset, depth int) (Node, *Comparison, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("growing tree: %v", err)
	}
	if count > t.maxLeafSize {
		candidate, err := t.strategy.BestSplit(ctx, s, depth)
		if err != nil {
			return nil, nil, fmt.Errorf("growing tree: splitting partition: %v", err)
		}
		if candidate.PurityIncrease+Epsilon > t.minPurityIncrease {
			return candidate, candidate, nil
		}
	}
	leaf, err := t.strategy.Terminate(ctx, s, depth)
	if err != nil {
		return nil, nil, fmt.Errorf("growing tree: terminating partition: %v", err)
	}
	return leaf, nil, nil
}
