// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package manifestdiff reports how two dependency manifests differ. It only
// describes the difference; deciding what to rebuild is left to the
// orchestrator.
package manifestdiff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/petar-djukic/depmanifest/internal/render"
	"github.com/petar-djukic/depmanifest/pkg/types"
)

// Change lists the sources gained and lost by one output present in both
// manifests.
type Change struct {
	Output  string
	Added   []string
	Removed []string
}

// Report is the structural difference between two manifests. Slices follow
// the order of the manifest the entries come from.
type Report struct {
	AddedOutputs   []string
	RemovedOutputs []string
	Changed        []Change
}

// Empty reports whether the manifests are equivalent. Source order within a
// record is ignored.
func (r Report) Empty() bool {
	return len(r.AddedOutputs) == 0 && len(r.RemovedOutputs) == 0 && len(r.Changed) == 0
}

// Compare computes the structural difference from old to cur.
func Compare(old, cur types.Manifest) Report {
	var r Report

	oldIdx := index(old)
	curIdx := index(cur)

	for _, rec := range old {
		if _, ok := curIdx[rec.Output]; !ok {
			r.RemovedOutputs = append(r.RemovedOutputs, rec.Output)
		}
	}

	for _, rec := range cur {
		prev, ok := oldIdx[rec.Output]
		if !ok {
			r.AddedOutputs = append(r.AddedOutputs, rec.Output)
			continue
		}
		ch := Change{
			Output:  rec.Output,
			Added:   missingFrom(rec.Dependencies, prev),
			Removed: missingFrom(prev.Dependencies, rec),
		}
		if len(ch.Added) > 0 || len(ch.Removed) > 0 {
			r.Changed = append(r.Changed, ch)
		}
	}

	return r
}

// Format renders r as a short human-readable summary.
func Format(r Report) string {
	if r.Empty() {
		return "manifests are equivalent\n"
	}
	var b strings.Builder
	for _, o := range r.AddedOutputs {
		fmt.Fprintf(&b, "+ output %s\n", o)
	}
	for _, o := range r.RemovedOutputs {
		fmt.Fprintf(&b, "- output %s\n", o)
	}
	for _, ch := range r.Changed {
		fmt.Fprintf(&b, "~ output %s\n", ch.Output)
		for _, s := range ch.Added {
			fmt.Fprintf(&b, "    + %s\n", s)
		}
		for _, s := range ch.Removed {
			fmt.Fprintf(&b, "    - %s\n", s)
		}
	}
	return b.String()
}

// LineDiff renders both manifests as indented JSON and returns a line diff,
// each line prefixed with "+ ", "- " or "  ".
func LineDiff(old, cur types.Manifest) (string, error) {
	a, err := render.Render(old, render.Options{Indent: "  "})
	if err != nil {
		return "", fmt.Errorf("rendering old manifest: %w", err)
	}
	b, err := render.Render(cur, render.Options{Indent: "  "})
	if err != nil {
		return "", fmt.Errorf("rendering new manifest: %w", err)
	}

	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(string(a)+"\n", string(b)+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
		}
	}
	return out.String(), nil
}

func index(m types.Manifest) map[string]types.Record {
	idx := make(map[string]types.Record, len(m))
	for _, r := range m {
		idx[r.Output] = r
	}
	return idx
}

// missingFrom returns the entries of deps that rec does not list.
func missingFrom(deps []string, rec types.Record) []string {
	have := make(map[string]struct{}, len(rec.Dependencies))
	for _, d := range rec.Dependencies {
		have[d] = struct{}{}
	}
	var out []string
	for _, d := range deps {
		if _, ok := have[d]; !ok {
			out = append(out, d)
		}
	}
	return out
}
