package feature

import (
	"context"
	"fmt"
)

/*
Vector is an interface for anything that exposes feature values
indexed by column.

Its ValueAt method returns the value at the given column or an
error if the vector defines no value for it. Implementations
backed by remote storage may use the context to cancel the lookup.
*/
type Vector interface {
	ValueAt(ctx context.Context, column int) (Value, error)
}

/*
Values is an in-memory Vector backed by a slice, with the slice
index as column.
*/
type Values []Value

/*
ValueAt returns the value at the given column or an error if the
column is out of range for the slice.
*/
func (vs Values) ValueAt(ctx context.Context, column int) (Value, error) {
	if column < 0 || column >= len(vs) {
		return nil, fmt.Errorf("no value for column %d: vector has %d columns", column, len(vs))
	}
	return vs[column], nil
}

/*
Criterion represents an axis-aligned comparison against the value
at a column: the test a Comparison node applies to decide which
branch a sample continues on, and the predicate datasets partition
by.

The comparison operator depends on the kind of the pivot value.
For a Number pivot, a vector satisfies the criterion when its
value at the column is strictly less than the pivot; a value equal
to the pivot does not satisfy it. For a Category pivot, a vector
satisfies the criterion when its value at the column equals the
pivot; any other value, including tokens never seen while growing,
does not.
*/
type Criterion struct {
	Column int
	Value  Value
}

/*
NewCriterion takes a column index and a pivot value and returns a
Criterion comparing the value at that column against the pivot.
*/
func NewCriterion(column int, value Value) Criterion {
	return Criterion{Column: column, Value: value}
}

/*
SatisfiedBy receives a vector and returns a boolean indicating if
the vector satisfies the criterion. An error is returned when the
vector defines no value for the criterion's column, or when a
Number pivot is compared against a non-numeric value.
*/
func (c Criterion) SatisfiedBy(ctx context.Context, v Vector) (bool, error) {
	val, err := v.ValueAt(ctx, c.Column)
	if err != nil {
		return false, err
	}
	switch pivot := c.Value.(type) {
	case Number:
		n, ok := val.(Number)
		if !ok {
			return false, fmt.Errorf("column %d: comparing %T value against numeric pivot", c.Column, val)
		}
		return n < pivot, nil
	case Category:
		cat, ok := val.(Category)
		return ok && cat == pivot, nil
	}
	return false, fmt.Errorf("column %d: unsupported pivot value %T", c.Column, c.Value)
}

func (c Criterion) String() string {
	if c.Value != nil && c.Value.Kind() == Numeric {
		return fmt.Sprintf("column %d < %v", c.Column, c.Value)
	}
	return fmt.Sprintf("column %d is %v", c.Column, c.Value)
}
