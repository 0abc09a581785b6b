package views

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when the merged dataset has no rows to draw.
var ErrNoData = errors.New("no data")

// ErrUnknownCountry is returned when a radar selection names a country
// that is not in the merged dataset.
var ErrUnknownCountry = errors.New("unknown country")

// SelectionError reports a selection that cannot be rendered.
type SelectionError struct {
	Mode    Mode
	Country string
	Err     error
}

func (e *SelectionError) Error() string {
	if e.Country != "" {
		return fmt.Sprintf("%s for %q: %v", e.Mode.Label(), e.Country, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Mode.Label(), e.Err)
}

func (e *SelectionError) Unwrap() error {
	return e.Err
}
