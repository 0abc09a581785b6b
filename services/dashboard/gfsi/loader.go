package gfsi

import (
	"context"
	"sync"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/logger"
)

// Source yields the two yearly tables, already normalized.
type Source interface {
	Frames(ctx context.Context) (y2019, y2022 Frame, err error)
}

// Loader builds the Dataset once and hands the same value to every caller.
type Loader struct {
	source Source
	log    *logger.Logger

	mu      sync.Mutex
	dataset *Dataset
}

// NewLoader creates a Loader reading from source.
func NewLoader(source Source, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{source: source, log: log}
}

// Load returns the merged Dataset. Only a successful load is kept; a failed
// one is retried on the next call.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.dataset != nil {
		return l.dataset, nil
	}

	ds, err := l.build(ctx)
	if err != nil {
		l.log.WithError(err).Error("dataset load failed")
		return nil, err
	}
	l.dataset = ds

	st := ds.Stats()
	l.log.WithFields(logger.Fields{
		"rows_2019":      st.Rows2019,
		"rows_2022":      st.Rows2022,
		"unmatched_2019": st.Unmatched2019,
		"unmatched_2022": st.Unmatched2022,
		"merged":         st.Merged,
		"partial":        st.Partial,
		"version":        ds.Version(),
	}).Info("dataset loaded")
	return ds, nil
}

func (l *Loader) build(ctx context.Context) (*Dataset, error) {
	y2019, y2022, err := l.source.Frames(ctx)
	if err != nil {
		return nil, err
	}
	if err := y2019.Require(BaseColumns...); err != nil {
		return nil, err
	}
	if err := y2022.Require(BaseColumns...); err != nil {
		return nil, err
	}

	merged, err := InnerJoin(y2019, y2022, ColCountry, [2]string{Suffix2019, Suffix2022})
	if err != nil {
		return nil, err
	}
	ds, err := NewDataset(merged)
	if err != nil {
		return nil, err
	}

	ds.stats.Rows2019 = len(y2019.Rows)
	ds.stats.Rows2022 = len(y2022.Rows)
	ds.stats.Unmatched2019 = unmatched(y2019, y2022)
	ds.stats.Unmatched2022 = unmatched(y2022, y2019)
	return ds, nil
}

// unmatched counts rows of a whose country never appears in b.
func unmatched(a, b Frame) int {
	keys := make(map[string]bool, len(b.Rows))
	for _, c := range b.Column(ColCountry) {
		keys[c] = true
	}
	n := 0
	for _, c := range a.Column(ColCountry) {
		if !keys[c] {
			n++
		}
	}
	return n
}
