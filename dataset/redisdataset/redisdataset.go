/*
Package redisdataset provides an implementation of dataset.Dataset
that uses a redis DB as backend.

Samples are stored as JSON values under a key prefix, with a
counter key tracking how many have been written. Redis cannot
evaluate split criteria server-side, so splitting materializes the
samples in memory and partitions there.
*/
package redisdataset

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vuthaihoc/cart/dataset"
	"github.com/vuthaihoc/cart/feature"
	redis "gopkg.in/redis.v5"
)

/*
Dataset is a dataset.Dataset to which samples can also be written,
to seed the backing redis DB with training data.
*/
type Dataset interface {
	dataset.Dataset
	Write(context.Context, []dataset.Sample) (int, error)
}

type redisDataset struct {
	rc       *redis.Client
	prefix   string
	features []feature.Feature
	label    feature.Feature
}

type sampleDoc struct {
	Values []interface{} `json:"values"`
	Label  interface{}   `json:"label"`
}

/*
New takes a redis client, a key prefix, the slice of predictor
features in column order and the label feature, and returns a
Dataset backed by the redis DB.
*/
func New(rc *redis.Client, prefix string, features []feature.Feature, label feature.Feature) Dataset {
	return &redisDataset{rc, prefix, features, label}
}

func (rd *redisDataset) Count(ctx context.Context) (int, error) {
	count, err := rd.rc.Get(rd.countKey()).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("counting samples in redis: %v", err)
	}
	return int(count), nil
}

func (rd *redisDataset) Empty(ctx context.Context) (bool, error) {
	count, err := rd.Count(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (rd *redisDataset) Samples(ctx context.Context) ([]dataset.Sample, error) {
	count, err := rd.Count(ctx)
	if err != nil {
		return nil, err
	}
	samples := make([]dataset.Sample, 0, count)
	for i := 1; i <= count; i++ {
		data, err := rd.rc.Get(rd.keyFor(i)).Result()
		if err != nil {
			return nil, fmt.Errorf("retrieving sample %d from redis: %v", i, err)
		}
		s, err := rd.decode([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("retrieving sample %d from redis: %v", i, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func (rd *redisDataset) Split(ctx context.Context, c feature.Criterion) (dataset.Dataset, dataset.Dataset, error) {
	md, err := dataset.Materialize(ctx, rd)
	if err != nil {
		return nil, nil, err
	}
	return md.Split(ctx, c)
}

func (rd *redisDataset) Merge(ctx context.Context, other dataset.Dataset) (dataset.Dataset, error) {
	md, err := dataset.Materialize(ctx, rd)
	if err != nil {
		return nil, err
	}
	return md.Merge(ctx, other)
}

/*
Write takes a slice of samples and stores them on the redis DB,
returning the number of samples written and an error if any store
operation fails.
*/
func (rd *redisDataset) Write(ctx context.Context, samples []dataset.Sample) (int, error) {
	for i, s := range samples {
		data, err := rd.encode(ctx, s)
		if err != nil {
			return i, err
		}
		n, err := rd.rc.Incr(rd.countKey()).Result()
		if err != nil {
			return i, fmt.Errorf("writing sample to redis: %v", err)
		}
		if err := rd.rc.Set(rd.keyFor(int(n)), data, 0).Err(); err != nil {
			return i, fmt.Errorf("writing sample to redis: %v", err)
		}
	}
	return len(samples), nil
}

func (rd *redisDataset) encode(ctx context.Context, s dataset.Sample) ([]byte, error) {
	doc := &sampleDoc{Values: make([]interface{}, len(rd.features))}
	for column := range rd.features {
		v, err := s.ValueAt(ctx, column)
		if err != nil {
			return nil, err
		}
		doc.Values[column] = rawValue(v)
	}
	label, err := s.Label(ctx)
	if err != nil {
		return nil, err
	}
	doc.Label = rawValue(label)
	return json.Marshal(doc)
}

func (rd *redisDataset) decode(data []byte) (dataset.Sample, error) {
	doc := &sampleDoc{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	if len(doc.Values) != len(rd.features) {
		return nil, fmt.Errorf("expected %d values, got %d", len(rd.features), len(doc.Values))
	}
	values := make(feature.Values, len(rd.features))
	for column, f := range rd.features {
		v, err := f.Parse(doc.Values[column])
		if err != nil {
			return nil, err
		}
		values[column] = v
	}
	label, err := rd.label.Parse(doc.Label)
	if err != nil {
		return nil, err
	}
	return dataset.NewSample(values, label), nil
}

func (rd *redisDataset) countKey() string {
	return fmt.Sprintf("%s:count", rd.prefix)
}

func (rd *redisDataset) keyFor(i int) string {
	return fmt.Sprintf("%s:sample:%d", rd.prefix, i)
}

func rawValue(v feature.Value) interface{} {
	switch v := v.(type) {
	case feature.Number:
		return float64(v)
	case feature.Category:
		return string(v)
	}
	return nil
}
