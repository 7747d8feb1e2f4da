// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package aggregate groups dependency edges by output artifact.
package aggregate

import (
	"github.com/petar-djukic/depmanifest/pkg/types"
)

// Aggregator accumulates edges into one record per output artifact.
// Records keep first-seen order, sources within a record keep first-seen
// order, and a record never lists the same source twice. The same source
// may appear under many outputs.
type Aggregator struct {
	index   map[string]int        // output -> position in records
	seen    []map[string]struct{} // per-record source set
	records []types.Record
	edges   int // edges offered, including duplicates
}

// New returns an empty aggregator.
func New() *Aggregator {
	return &Aggregator{index: make(map[string]int)}
}

// AddOutput registers an output artifact so it appears in the manifest even
// if no edge ever names it.
func (a *Aggregator) AddOutput(output string) {
	a.record(output)
}

// Add records that e.Output depends on e.Source.
func (a *Aggregator) Add(e types.Edge) {
	a.edges++
	i := a.record(e.Output)
	if _, dup := a.seen[i][e.Source]; dup {
		return
	}
	a.seen[i][e.Source] = struct{}{}
	a.records[i].Dependencies = append(a.records[i].Dependencies, e.Source)
}

// Manifest returns a copy of the accumulated records. Every record carries a
// non-nil dependency slice.
func (a *Aggregator) Manifest() types.Manifest {
	out := make(types.Manifest, len(a.records))
	for i, r := range a.records {
		deps := make([]string, len(r.Dependencies))
		copy(deps, r.Dependencies)
		out[i] = types.Record{Output: r.Output, Dependencies: deps}
	}
	return out
}

// EdgesOffered returns how many edges were passed to Add, duplicates
// included.
func (a *Aggregator) EdgesOffered() int {
	return a.edges
}

func (a *Aggregator) record(output string) int {
	if i, ok := a.index[output]; ok {
		return i
	}
	i := len(a.records)
	a.index[output] = i
	a.records = append(a.records, types.Record{Output: output, Dependencies: []string{}})
	a.seen = append(a.seen, make(map[string]struct{}))
	return i
}
