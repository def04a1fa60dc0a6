/*
Package csv provides methods to read datasets of labeled samples,
and unlabeled sample vectors to predict, from CSV streams.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/vuthaihoc/cart/dataset"
	"github.com/vuthaihoc/cart/feature"
)

/*
ReadDataset takes an io.Reader for a CSV stream, a slice of features
and the name of the label feature, and returns a dataset with the
samples parsed from the reader, together with the predictor features
in column order, or an error.

The header or first row of the CSV content is expected to consist of
the names of the features in the given slice, in any order; exactly
one of them must be the label feature. The position of each
non-label header name defines the column index of that predictor on
the parsed samples. The rest of the rows should consist of valid
values for all features.
*/
func ReadDataset(reader io.Reader, features []feature.Feature, label string) (dataset.Dataset, []feature.Feature, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %v", err)
	}
	ordered, labelColumn, err := matchHeader(header, features, label)
	if err != nil {
		return nil, nil, err
	}
	predictors := make([]feature.Feature, 0, len(ordered)-1)
	for i, f := range ordered {
		if i != labelColumn {
			predictors = append(predictors, f)
		}
	}
	var samples []dataset.Sample
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading body: %v", err)
		}
		values := make(feature.Values, 0, len(predictors))
		var labelValue feature.Value
		for i, cell := range row {
			v, err := ordered[i].Parse(cell)
			if err != nil {
				return nil, nil, fmt.Errorf("parsing line %d: %v", l, err)
			}
			if i == labelColumn {
				labelValue = v
			} else {
				values = append(values, v)
			}
		}
		if len(values) != len(predictors) || labelValue == nil {
			return nil, nil, fmt.Errorf("parsing line %d: expected %d values, got %d", l, len(ordered), len(row))
		}
		samples = append(samples, dataset.NewSample(values, labelValue))
	}
	return dataset.New(samples), predictors, nil
}

/*
ReadDatasetFromFilePath takes a filepath string, a slice of features
and the name of the label feature, opens the file the filepath
points to and uses ReadDataset to parse it. It returns an error if
the given filepath cannot be opened for reading.
*/
func ReadDatasetFromFilePath(filepath string, features []feature.Feature, label string) (dataset.Dataset, []feature.Feature, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening dataset at %s: %v", filepath, err)
	}
	defer f.Close()
	s, predictors, err := ReadDataset(f, features, label)
	if err != nil {
		err = fmt.Errorf("reading dataset at %s: %v", filepath, err)
	}
	return s, predictors, err
}

/*
ReadVectors takes an io.Reader for a CSV stream and the predictor
features in column order, and returns the unlabeled sample vectors
parsed from the reader or an error. The header row is expected to
consist of the names of all the given predictors, in any order.
*/
func ReadVectors(reader io.Reader, predictors []feature.Feature) ([]feature.Values, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %v", err)
	}
	columns := make(map[string]int)
	for i, f := range predictors {
		columns[f.Name()] = i
	}
	ordered := make([]int, len(header))
	seen := make(map[string]bool)
	for i, name := range header {
		column, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("reading header: unknown feature %s", name)
		}
		if seen[name] {
			return nil, fmt.Errorf("reading header: duplicated feature %s", name)
		}
		seen[name] = true
		ordered[i] = column
	}
	if len(header) != len(predictors) {
		return nil, fmt.Errorf("reading header: expected %d features, got %d", len(predictors), len(header))
	}
	var vectors []feature.Values
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %v", err)
		}
		if len(row) != len(header) {
			return nil, fmt.Errorf("parsing line %d: expected %d values, got %d", l, len(header), len(row))
		}
		values := make(feature.Values, len(predictors))
		for i, cell := range row {
			column := ordered[i]
			v, err := predictors[column].Parse(cell)
			if err != nil {
				return nil, fmt.Errorf("parsing line %d: %v", l, err)
			}
			values[column] = v
		}
		vectors = append(vectors, values)
	}
	return vectors, nil
}

func matchHeader(header []string, features []feature.Feature, label string) ([]feature.Feature, int, error) {
	byName := make(map[string]feature.Feature)
	for _, f := range features {
		byName[f.Name()] = f
	}
	ordered := make([]feature.Feature, 0, len(header))
	labelColumn := -1
	for i, name := range header {
		f, ok := byName[name]
		if !ok {
			return nil, 0, fmt.Errorf("reading header: unknown feature %s", name)
		}
		delete(byName, name)
		ordered = append(ordered, f)
		if name == label {
			labelColumn = i
		}
	}
	if labelColumn < 0 {
		return nil, 0, fmt.Errorf("reading header: label feature %s not present", label)
	}
	return ordered, labelColumn, nil
}
