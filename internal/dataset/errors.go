package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput        = errors.New("dataset: no training records")
	ErrInvalidRecord     = errors.New("dataset: invalid record")
	ErrDegenerateFeature = errors.New("dataset: constant feature")
	ErrParse             = errors.New("dataset: malformed training data")
)

// DegenerateFeatureError reports a feature whose min equals its max.
type DegenerateFeatureError struct {
	Feature string
	Value   float64
}

func (e *DegenerateFeatureError) Error() string {
	return fmt.Sprintf("dataset: feature %s is constant (%v), cannot normalize", e.Feature, e.Value)
}

func (e *DegenerateFeatureError) Is(target error) bool {
	return target == ErrDegenerateFeature
}

// ParseError reports the first malformed line of a training file.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dataset: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
