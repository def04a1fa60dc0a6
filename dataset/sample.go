package dataset

import (
	"context"

	"github.com/vuthaihoc/cart/feature"
)

/*
Sample is a labeled feature vector: a row of training data.

Its ValueAt method, inherited from feature.Vector, returns the
value at a column. Its Label method returns the label the grown
tree should learn to predict for the sample.
*/
type Sample interface {
	feature.Vector
	Label(ctx context.Context) (feature.Value, error)
}

type memorySample struct {
	values feature.Values
	label  feature.Value
}

/*
NewSample takes a slice of feature values and a label value and
returns a Sample backed by them.
*/
func NewSample(values feature.Values, label feature.Value) Sample {
	return &memorySample{values, label}
}

func (ms *memorySample) ValueAt(ctx context.Context, column int) (feature.Value, error) {
	return ms.values.ValueAt(ctx, column)
}

func (ms *memorySample) Label(ctx context.Context) (feature.Value, error) {
	return ms.label, nil
}
