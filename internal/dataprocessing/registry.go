package dataprocessing

import (
	"revcompare/pkg/contracts/domain"
)

// MinComparableEntries is the number of dated sources a registry needs before
// a time-series comparison makes sense.
const MinComparableEntries = 2

// Registry is the immutable set of dated tables available for comparison.
// A new batch always produces a new Registry; nothing is merged into an
// existing one.
type Registry struct {
	entries []domain.Entry
}

// Load builds a registry from a batch of sources. Every source whose name
// carries a period is accepted, in input order. The names of the others are
// returned so the caller can warn about them; they stay usable for single
// table ranking.
func Load(sources []domain.Source) (*Registry, []string) {
	reg := &Registry{entries: make([]domain.Entry, 0, len(sources))}
	var rejected []string

	for _, src := range sources {
		period, ok := ExtractPeriod(src.Name)
		if !ok {
			rejected = append(rejected, src.Name)
			continue
		}
		reg.entries = append(reg.entries, domain.Entry{
			SourceName: src.Name,
			Table:      src.Table,
			Period:     period,
		})
	}

	return reg, rejected
}

// Entries returns a copy of the accepted entries.
func (r *Registry) Entries() []domain.Entry {
	if r == nil {
		return nil
	}
	out := make([]domain.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of accepted entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// CanCompare reports whether enough entries are loaded for aggregation.
func (r *Registry) CanCompare() bool {
	return r.Len() >= MinComparableEntries
}

// Columns returns every analyzable column across the accepted tables, in the
// order first seen. Identifying and unnamed columns are left out. An empty result means
// the batch has nothing to analyze.
func (r *Registry) Columns() []string {
	if r == nil {
		return nil
	}

	seen := make(map[string]bool)
	var columns []string
	for _, e := range r.entries {
		for _, c := range e.Table.Columns {
			if c == "" || domain.IsIdentifyingColumn(c) || seen[c] {
				continue
			}
			seen[c] = true
			columns = append(columns, c)
		}
	}
	return columns
}
