package gfsi

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptySource marks a source holding no data rows at all.
var ErrEmptySource = errors.New("no data rows")

// DataLoadError reports a source table that could not be read or parsed.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// NewDataLoadError creates a new DataLoadError
func NewDataLoadError(source string, err error) *DataLoadError {
	return &DataLoadError{Source: source, Err: err}
}

// SchemaError reports columns that are absent after normalization.
type SchemaError struct {
	Table   string
	Missing []string
	Detail  string
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("schema %s", e.Table)
	if len(e.Missing) > 0 {
		msg += ": missing columns " + strings.Join(e.Missing, ", ")
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}
