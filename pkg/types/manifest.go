// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// DefaultAssetName is the canonical name of the emitted manifest asset.
const DefaultAssetName = "dependency-tree.json"

// Edge states that Output depends on Source.
type Edge struct {
	Output string // Artifact file name
	Source string // Absolute source path
}

// Record lists the deduplicated sources that feed one output artifact.
type Record struct {
	Output       string   `json:"output"`
	Dependencies []string `json:"dependencies"`
}

// Manifest is the ordered set of records for one build pass.
type Manifest []Record

// EdgeCount returns the total number of (output, source) pairs.
func (m Manifest) EdgeCount() int {
	n := 0
	for _, r := range m {
		n += len(r.Dependencies)
	}
	return n
}

// Lookup returns the record for output, if present.
func (m Manifest) Lookup(output string) (Record, bool) {
	for _, r := range m {
		if r.Output == output {
			return r, true
		}
	}
	return Record{}, false
}

// Asset is a named, sized build output handed back to the host.
type Asset struct {
	Name   string
	Source []byte
}

// Size returns the byte length of the asset content.
func (a Asset) Size() int {
	return len(a.Source)
}
