package views

import (
	"fmt"
	"strings"
)

// Mode is one of the three dashboard visualizations.
type Mode int

const (
	Scatter Mode = iota
	Bar
	Radar
)

var modeLabels = [...]string{
	Scatter: "Scatter Plot",
	Bar:     "Bar Chart",
	Radar:   "Radar Chart",
}

var modeSlugs = [...]string{
	Scatter: "scatter",
	Bar:     "bar",
	Radar:   "radar",
}

// Modes lists the visualizations in menu order.
func Modes() []Mode {
	return []Mode{Scatter, Bar, Radar}
}

// Label is the text shown on the selector.
func (m Mode) Label() string {
	if !m.valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeLabels[m]
}

// Slug is the URL form of the mode.
func (m Mode) Slug() string {
	if !m.valid() {
		return ""
	}
	return modeSlugs[m]
}

func (m Mode) String() string {
	return m.Label()
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("invalid mode %d", int(m))
	}
	return []byte(m.Slug()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Mode) valid() bool {
	return m >= Scatter && m <= Radar
}

// ParseMode accepts a slug ("radar") or a label ("Radar Chart"), any case.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range Modes() {
		if s == m.Slug() || s == strings.ToLower(m.Label()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown visualization %q", s)
}
