/*
Package mongodataset provides an implementation of dataset.Dataset
that uses a MongoDB database as backend.

Samples are documents of a collection with one field per feature.
Dataset partitions do not copy documents: splitting stacks the
split criterion on the derived datasets and the accumulated
criteria are pushed down to the database as query conditions.
*/
package mongodataset

import (
	"context"
	"fmt"

	"github.com/vuthaihoc/cart/dataset"
	"github.com/vuthaihoc/cart/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const samplesCollectionName = "samples"

/*
Dataset is a dataset.Dataset to which samples can also be written,
to seed the backing collection with training data.
*/
type Dataset interface {
	dataset.Dataset
	Write(context.Context, []dataset.Sample) (int, error)
}

type condition struct {
	criterion feature.Criterion
	satisfied bool
}

type mongoDataset struct {
	session    *mgo.Session
	features   []feature.Feature
	label      feature.Feature
	conditions []condition
	count      *int
}

/*
Open takes a MongoDB database session, the slice of predictor
features in column order and the label feature, and returns a
Dataset that works on the samples collection of the session's
default database.
*/
func Open(ctx context.Context, session *mgo.Session, features []feature.Feature, label feature.Feature) Dataset {
	return &mongoDataset{session: session, features: features, label: label}
}

func (md *mongoDataset) Count(ctx context.Context) (int, error) {
	if md.count != nil {
		return *md.count, nil
	}
	count, err := md.samplesCollection().Find(md.query()).Count()
	if err != nil {
		return 0, fmt.Errorf("counting samples in mongo: %v", err)
	}
	md.count = &count
	return count, nil
}

func (md *mongoDataset) Empty(ctx context.Context) (bool, error) {
	count, err := md.Count(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (md *mongoDataset) Samples(ctx context.Context) ([]dataset.Sample, error) {
	iter := md.samplesCollection().Find(md.query()).Iter()
	defer iter.Close()
	var samples []dataset.Sample
	var doc bson.M
	for iter.Next(&doc) {
		values := make(feature.Values, len(md.features))
		for i, f := range md.features {
			v, err := f.Parse(doc[f.Name()])
			if err != nil {
				return nil, fmt.Errorf("reading samples from mongo: %v", err)
			}
			values[i] = v
		}
		label, err := md.label.Parse(doc[md.label.Name()])
		if err != nil {
			return nil, fmt.Errorf("reading samples from mongo: %v", err)
		}
		samples = append(samples, dataset.NewSample(values, label))
		doc = nil
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("reading samples from mongo: %v", err)
	}
	return samples, nil
}

func (md *mongoDataset) Split(ctx context.Context, c feature.Criterion) (dataset.Dataset, dataset.Dataset, error) {
	if c.Column < 0 || c.Column >= len(md.features) {
		return nil, nil, fmt.Errorf("splitting samples in mongo: no feature for column %d", c.Column)
	}
	left := md.withCondition(condition{criterion: c, satisfied: true})
	right := md.withCondition(condition{criterion: c, satisfied: false})
	return left, right, nil
}

func (md *mongoDataset) Merge(ctx context.Context, other dataset.Dataset) (dataset.Dataset, error) {
	m, err := dataset.Materialize(ctx, md)
	if err != nil {
		return nil, err
	}
	return m.Merge(ctx, other)
}

/*
Write takes a slice of samples and inserts them as documents on the
samples collection, returning the number of samples written and an
error if any insertion fails.
*/
func (md *mongoDataset) Write(ctx context.Context, samples []dataset.Sample) (int, error) {
	for i, s := range samples {
		doc := make(bson.M)
		for column, f := range md.features {
			v, err := s.ValueAt(ctx, column)
			if err != nil {
				return i, err
			}
			doc[f.Name()] = rawValue(v)
		}
		label, err := s.Label(ctx)
		if err != nil {
			return i, err
		}
		doc[md.label.Name()] = rawValue(label)
		if err := md.samplesCollection().Insert(doc); err != nil {
			return i, fmt.Errorf("writing samples to mongo: %v", err)
		}
	}
	return len(samples), nil
}

func (md *mongoDataset) withCondition(c condition) *mongoDataset {
	conditions := make([]condition, 0, len(md.conditions)+1)
	conditions = append(conditions, md.conditions...)
	conditions = append(conditions, c)
	return &mongoDataset{
		session:    md.session,
		features:   md.features,
		label:      md.label,
		conditions: conditions,
	}
}

func (md *mongoDataset) query() bson.M {
	if len(md.conditions) == 0 {
		return bson.M{}
	}
	clauses := make([]bson.M, 0, len(md.conditions))
	for _, c := range md.conditions {
		name := md.features[c.criterion.Column].Name()
		switch pivot := c.criterion.Value.(type) {
		case feature.Number:
			if c.satisfied {
				clauses = append(clauses, bson.M{name: bson.M{"$lt": float64(pivot)}})
			} else {
				clauses = append(clauses, bson.M{name: bson.M{"$gte": float64(pivot)}})
			}
		case feature.Category:
			if c.satisfied {
				clauses = append(clauses, bson.M{name: string(pivot)})
			} else {
				clauses = append(clauses, bson.M{name: bson.M{"$ne": string(pivot)}})
			}
		}
	}
	return bson.M{"$and": clauses}
}

func (md *mongoDataset) samplesCollection() *mgo.Collection {
	return md.session.DB("").C(samplesCollectionName)
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
