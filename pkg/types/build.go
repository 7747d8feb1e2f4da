// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines the build-graph and manifest types shared across
// depmanifest packages.
package types

// BuildResult is a read-only view of a finished bundling pass. It is built
// fresh for each build completion and never reused.
type BuildResult struct {
	Chunks []Chunk `json:"chunks" yaml:"chunks"`
}

// Chunk groups compiled modules that together produce one or more output
// artifacts.
type Chunk struct {
	ID             string   `json:"id,omitempty" yaml:"id,omitempty"`
	Files          []string `json:"files" yaml:"files"`                                       // Primary outputs, e.g. bundle.js
	AuxiliaryFiles []string `json:"auxiliaryFiles,omitempty" yaml:"auxiliaryFiles,omitempty"` // Usually source maps
	Modules        []Module `json:"modules" yaml:"modules"`
}

// Outputs returns the chunk's primary files followed by its auxiliary files.
func (c Chunk) Outputs() []string {
	out := make([]string, 0, len(c.Files)+len(c.AuxiliaryFiles))
	out = append(out, c.Files...)
	return append(out, c.AuxiliaryFiles...)
}

// Module is a compiled unit. Its file-level provenance is either a flat list
// of paths, a snapshot tree, both, or neither.
type Module struct {
	ID               string        `json:"id" yaml:"id"`
	FileDependencies []string      `json:"fileDependencies,omitempty" yaml:"fileDependencies,omitempty"`
	Snapshot         *SnapshotTree `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`
}

// HasDependencyInfo reports whether the module tracks any file-level
// dependencies.
func (m Module) HasDependencyInfo() bool {
	return len(m.FileDependencies) > 0 || (m.Snapshot != nil && len(m.Snapshot.Nodes) > 0)
}

// SnapshotTree is an arena of snapshot nodes. Nodes[0] is the root. Child
// links are arena indices, so shared or cyclic children can be expressed and
// detected without pointer chasing.
type SnapshotTree struct {
	Nodes []SnapshotNode `json:"nodes" yaml:"nodes"`
}

// SnapshotNode owns zero or more direct file paths and zero or more children.
type SnapshotNode struct {
	Files    []string `json:"files,omitempty" yaml:"files,omitempty"`
	Children []int    `json:"children,omitempty" yaml:"children,omitempty"`
}

// NewFlatSnapshot wraps a flat path list in a single-node tree.
func NewFlatSnapshot(files []string) *SnapshotTree {
	return &SnapshotTree{Nodes: []SnapshotNode{{Files: files}}}
}
