package dataset

import (
	"context"

	"github.com/vuthaihoc/cart/feature"
)

/*
Dataset represents a collection of labeled samples.

Its Count method returns the number of samples it contains, and its
Empty method whether it contains none.

Its Samples method returns the samples it contains.

Its Split method takes a feature.Criterion and partitions the
dataset in two disjoint datasets: a left one with the samples that
satisfy the criterion and a right one with the rest.

Its Merge method returns a dataset with the samples of the receiver
followed by those of the given dataset.

All methods take a context that implementations backed by remote
storage may use to allow cancelling the operation.
*/
type Dataset interface {
	Count(context.Context) (int, error)
	Empty(context.Context) (bool, error)
	Samples(context.Context) ([]Sample, error)
	Split(context.Context, feature.Criterion) (Dataset, Dataset, error)
	Merge(context.Context, Dataset) (Dataset, error)
}

type memoryDataset struct {
	samples []Sample
}

/*
New takes a slice of samples and returns a Dataset built with them,
backed only by the process memory.
*/
func New(samples []Sample) Dataset {
	return &memoryDataset{samples}
}

func (md *memoryDataset) Count(ctx context.Context) (int, error) {
	return len(md.samples), nil
}

func (md *memoryDataset) Empty(ctx context.Context) (bool, error) {
	return len(md.samples) == 0, nil
}

func (md *memoryDataset) Samples(ctx context.Context) ([]Sample, error) {
	return md.samples, nil
}

func (md *memoryDataset) Split(ctx context.Context, c feature.Criterion) (Dataset, Dataset, error) {
	var left, right []Sample
	for _, s := range md.samples {
		ok, err := c.SatisfiedBy(ctx, s)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	return New(left), New(right), nil
}

func (md *memoryDataset) Merge(ctx context.Context, other Dataset) (Dataset, error) {
	os, err := other.Samples(ctx)
	if err != nil {
		return nil, err
	}
	samples := make([]Sample, 0, len(md.samples)+len(os))
	samples = append(samples, md.samples...)
	samples = append(samples, os...)
	return New(samples), nil
}

/*
Materialize takes a dataset and returns an in-memory dataset with
its samples. Backend-specific datasets use it to implement
operations their storage cannot express, such as merging with a
dataset on a different backend.
*/
func Materialize(ctx context.Context, d Dataset) (Dataset, error) {
	if md, ok := d.(*memoryDataset); ok {
		return md, nil
	}
	samples, err := d.Samples(ctx)
	if err != nil {
		return nil, err
	}
	return New(samples), nil
}
