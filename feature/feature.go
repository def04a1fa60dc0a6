package feature

import (
	"fmt"
	"strconv"
)

/*
Kind identifies the type of a Value: numeric or categorical.
*/
type Kind int

const (
	// Numeric is the kind of values holding a continuous number
	Numeric Kind = iota
	// Categorical is the kind of values holding a discrete token
	Categorical
)

/*
Value represents the value a feature takes on a sample: either a
Number or a Category. The comparison semantics of a split depend on
the kind of its pivot value, so consumers switch on the concrete
type rather than on Kind.
*/
type Value interface {
	Kind() Kind
	String() string
}

/*
Number is a continuous feature value
*/
type Number float64

/*
Category is a discrete feature value
*/
type Category string

// Kind returns Numeric
func (n Number) Kind() Kind {
	return Numeric
}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// Kind returns Categorical
func (c Category) Kind() Kind {
	return Categorical
}

func (c Category) String() string {
	return string(c)
}

/*
Feature represents a property that can be observed on samples.

Its Name method returns the name of the feature.

Its Parse method takes a raw value as read from some backend (a CSV
cell, a DB column, a JSON document...) and returns it as a Value of
the feature's kind or an error if the raw value is not valid for
the feature.
*/
type Feature interface {
	Name() string
	Parse(interface{}) (Value, error)
}

/*
DiscreteFeature represents a property that can be observed and that can only
take a value among a finite set.
*/
type DiscreteFeature struct {
	name            string
	availableValues []string
}

/*
ContinuousFeature represents a property that can be observed and that can take
a numeric value
*/
type ContinuousFeature struct {
	name string
}

/*
NewDiscreteFeature takes a name string and a slice of available value strings
and returns a discrete feature with the given name and available values.
*/
func NewDiscreteFeature(name string, availableValues []string) *DiscreteFeature {
	return &DiscreteFeature{name, availableValues}
}

/*
NewContinuousFeature takes a name string and returns a continuous feature with
the given name.
*/
func NewContinuousFeature(name string) *ContinuousFeature {
	return &ContinuousFeature{name}
}

/*
Name returns a string with the name of the feature
*/
func (df *DiscreteFeature) Name() string {
	return df.name
}

/*
Parse receives a raw value and returns it as a Category or an error.
Strings must be among the available values of the feature; Category
values are accepted when valid; any other type is rejected.
*/
func (df *DiscreteFeature) Parse(raw interface{}) (Value, error) {
	var vs string
	switch raw := raw.(type) {
	case string:
		vs = raw
	case Category:
		vs = string(raw)
	default:
		return nil, fmt.Errorf("discrete feature %s expects string value, got %T value", df.Name(), raw)
	}
	for _, av := range df.availableValues {
		if av == vs {
			return Category(vs), nil
		}
	}
	return nil, fmt.Errorf("discrete feature %s got unknown value %s", df.Name(), vs)
}

/*
AvailableValues returns a string slice with the values available for the feature
*/
func (df *DiscreteFeature) AvailableValues() []string {
	return df.availableValues
}

func (df *DiscreteFeature) String() string {
	return df.name
}

/*
Name returns a string with the name of the feature
*/
func (cf *ContinuousFeature) Name() string {
	return cf.name
}

/*
Parse receives a raw value and returns it as a Number or an error.
Numeric types are accepted directly, strings are parsed as floats.
*/
func (cf *ContinuousFeature) Parse(raw interface{}) (Value, error) {
	switch raw := raw.(type) {
	case float64:
		return Number(raw), nil
	case float32:
		return Number(raw), nil
	case int:
		return Number(raw), nil
	case int64:
		return Number(raw), nil
	case Number:
		return raw, nil
	case string:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("continuous feature %s got non-numeric value %q", cf.Name(), raw)
		}
		return Number(f), nil
	}
	return nil, fmt.Errorf("continuous feature %s expects numeric value, got %T value", cf.Name(), raw)
}

func (cf *ContinuousFeature) String() string {
	return cf.name
}
