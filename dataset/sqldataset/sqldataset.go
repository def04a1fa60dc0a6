/*
Package sqldataset provides an implementation of dataset.Dataset
that uses an SQL database as backend.

Samples are rows of a table with one column per feature. Dataset
partitions do not copy rows: splitting stacks the split criterion
as a WHERE condition on the derived datasets, so counting and
reading samples push the accumulated conditions down to the
database.
*/
package sqldataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vuthaihoc/cart/dataset"
	"github.com/vuthaihoc/cart/feature"
)

/*
Adapter is an interface for backend-specific behavior of SQL
databases: how they are queried, how placeholders are numbered and
how identifiers are quoted.
*/
type Adapter interface {
	// QueryContext runs a query with the given args on the
	// database and returns its rows or an error.
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	// Placeholder returns the placeholder for the i-th query
	// argument, starting at 1.
	Placeholder(i int) string
	// Quote returns the given identifier quoted for use in a
	// query.
	Quote(identifier string) string
	// Close closes the underlying database.
	Close() error
}

type condition struct {
	criterion feature.Criterion
	satisfied bool
}

type sqlDataset struct {
	adapter    Adapter
	table      string
	features   []feature.Feature
	label      feature.Feature
	conditions []condition
	count      *int
}

/*
Open takes an Adapter to a database, the name of the samples table,
the slice of predictor features in column order and the label
feature, and returns a dataset.Dataset backed by the table. The
table is expected to have a column named after every feature.
*/
func Open(adapter Adapter, table string, features []feature.Feature, label feature.Feature) dataset.Dataset {
	return &sqlDataset{adapter: adapter, table: table, features: features, label: label}
}

func (sd *sqlDataset) Count(ctx context.Context) (int, error) {
	if sd.count != nil {
		return *sd.count, nil
	}
	where, args := sd.whereClause()
	rows, err := sd.adapter.QueryContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s%s", sd.adapter.Quote(sd.table), where), args...)
	if err != nil {
		return 0, fmt.Errorf("counting samples: %v", err)
	}
	defer rows.Close()
	var count int
	if !rows.Next() {
		return 0, fmt.Errorf("counting samples: no count row returned")
	}
	if err := rows.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting samples: %v", err)
	}
	sd.count = &count
	return count, nil
}

func (sd *sqlDataset) Empty(ctx context.Context) (bool, error) {
	count, err := sd.Count(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (sd *sqlDataset) Samples(ctx context.Context) ([]dataset.Sample, error) {
	columns := make([]string, 0, len(sd.features)+1)
	for _, f := range sd.features {
		columns = append(columns, sd.adapter.Quote(f.Name()))
	}
	columns = append(columns, sd.adapter.Quote(sd.label.Name()))
	where, args := sd.whereClause()
	query := fmt.Sprintf("SELECT %s FROM %s%s", strings.Join(columns, ", "), sd.adapter.Quote(sd.table), where)
	rows, err := sd.adapter.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reading samples: %v", err)
	}
	defer rows.Close()
	var samples []dataset.Sample
	for rows.Next() {
		targets := make([]interface{}, len(sd.features)+1)
		for i, f := range sd.features {
			targets[i] = scanTarget(f)
		}
		targets[len(sd.features)] = scanTarget(sd.label)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("reading samples: %v", err)
		}
		values := make(feature.Values, len(sd.features))
		for i, f := range sd.features {
			v, err := parseTarget(f, targets[i])
			if err != nil {
				return nil, fmt.Errorf("reading samples: %v", err)
			}
			values[i] = v
		}
		label, err := parseTarget(sd.label, targets[len(sd.features)])
		if err != nil {
			return nil, fmt.Errorf("reading samples: %v", err)
		}
		samples = append(samples, dataset.NewSample(values, label))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading samples: %v", err)
	}
	return samples, nil
}

func (sd *sqlDataset) Split(ctx context.Context, c feature.Criterion) (dataset.Dataset, dataset.Dataset, error) {
	if c.Column < 0 || c.Column >= len(sd.features) {
		return nil, nil, fmt.Errorf("splitting samples: no feature for column %d", c.Column)
	}
	left := sd.withCondition(condition{criterion: c, satisfied: true})
	right := sd.withCondition(condition{criterion: c, satisfied: false})
	return left, right, nil
}

func (sd *sqlDataset) Merge(ctx context.Context, other dataset.Dataset) (dataset.Dataset, error) {
	md, err := dataset.Materialize(ctx, sd)
	if err != nil {
		return nil, err
	}
	return md.Merge(ctx, other)
}

func (sd *sqlDataset) withCondition(c condition) *sqlDataset {
	conditions := make([]condition, 0, len(sd.conditions)+1)
	conditions = append(conditions, sd.conditions...)
	conditions = append(conditions, c)
	return &sqlDataset{
		adapter:    sd.adapter,
		table:      sd.table,
		features:   sd.features,
		label:      sd.label,
		conditions: conditions,
	}
}

func (sd *sqlDataset) whereClause() (string, []interface{}) {
	if len(sd.conditions) == 0 {
		return "", nil
	}
	clauses := make([]string, 0, len(sd.conditions))
	args := make([]interface{}, 0, len(sd.conditions))
	for i, c := range sd.conditions {
		column := sd.adapter.Quote(sd.features[c.criterion.Column].Name())
		placeholder := sd.adapter.Placeholder(i + 1)
		var operator string
		switch pivot := c.criterion.Value.(type) {
		case feature.Number:
			if c.satisfied {
				operator = "<"
			} else {
				operator = ">="
			}
			args = append(args, float64(pivot))
		case feature.Category:
			if c.satisfied {
				operator = "="
			} else {
				operator = "<>"
			}
			args = append(args, string(pivot))
		}
		clauses = append(clauses, fmt.Sprintf("%s %s %s", column, operator, placeholder))
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanTarget(f feature.Feature) interface{} {
	if _, ok := f.(*feature.ContinuousFeature); ok {
		return &sql.NullFloat64{}
	}
	return &sql.NullString{}
}

func parseTarget(f feature.Feature, target interface{}) (feature.Value, error) {
	switch target := target.(type) {
	case *sql.NullFloat64:
		if !target.Valid {
			return nil, fmt.Errorf("feature %s: NULL value", f.Name())
		}
		return f.Parse(target.Float64)
	case *sql.NullString:
		if !target.Valid {
			return nil, fmt.Errorf("feature %s: NULL value", f.Name())
		}
		return f.Parse(target.String)
	}
	return nil, fmt.Errorf("feature %s: unsupported scan target %T", f.Name(), target)
}
