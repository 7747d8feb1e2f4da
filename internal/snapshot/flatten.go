// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package snapshot flattens file-dependency snapshot trees into a
// deduplicated list of regular source files.
package snapshot

import (
	"log/slog"
	"path/filepath"

	"github.com/petar-djukic/depmanifest/internal/fsinfo"
	"github.com/petar-djukic/depmanifest/internal/logging"
	"github.com/petar-djukic/depmanifest/pkg/types"
)

// DefaultExcludedNames are basenames that never count as sources. Package
// manifests change for reasons unrelated to the bundle's content.
var DefaultExcludedNames = []string{"package.json"}

// Stats counts what the flattener saw across all Flatten calls.
type Stats struct {
	Checked   int // Paths handed to the checker
	Excluded  int // Paths dropped by name or by the checker
	Revisited int // Child links pointing at an already visited node
	Dangling  int // Child links outside the arena
}

// Flattener walks snapshot trees with an explicit stack. It is not safe for
// concurrent use.
type Flattener struct {
	checker  fsinfo.Checker
	excluded map[string]struct{}
	logger   *slog.Logger
	stats    Stats
}

// NewFlattener returns a flattener that keeps paths the checker reports as
// regular files, minus those whose basename is in excludeNames. A nil
// excludeNames selects DefaultExcludedNames.
func NewFlattener(checker fsinfo.Checker, excludeNames []string, logger *slog.Logger) *Flattener {
	if excludeNames == nil {
		excludeNames = DefaultExcludedNames
	}
	if logger == nil {
		logger = logging.Discard()
	}
	excluded := make(map[string]struct{}, len(excludeNames))
	for _, n := range excludeNames {
		excluded[n] = struct{}{}
	}
	return &Flattener{checker: checker, excluded: excluded, logger: logger}
}

// Flatten returns every kept path reachable from the root of tree, in
// depth-first pre-order, each path at most once. Each node is visited at
// most once; a link back to a visited node truncates that branch.
func (f *Flattener) Flatten(tree *types.SnapshotTree) []string {
	if tree == nil || len(tree.Nodes) == 0 {
		return nil
	}

	var files []string
	verdicts := make(map[string]bool)
	visited := make([]bool, len(tree.Nodes))
	stack := []int{0}

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[idx] {
			f.stats.Revisited++
			f.logger.Debug("snapshot node already visited, truncating branch", "node", idx)
			continue
		}
		visited[idx] = true

		node := tree.Nodes[idx]
		for _, p := range node.Files {
			keep, seen := verdicts[p]
			if seen {
				continue
			}
			keep = f.keep(p)
			verdicts[p] = keep
			if keep {
				files = append(files, p)
			}
		}

		// Push in reverse so children are expanded in declaration order.
		for i := len(node.Children) - 1; i >= 0; i-- {
			child := node.Children[i]
			if child < 0 || child >= len(tree.Nodes) {
				f.stats.Dangling++
				f.logger.Warn("snapshot child index out of range", "node", idx, "child", child)
				continue
			}
			stack = append(stack, child)
		}
	}

	return files
}

// Stats returns the cumulative counters.
func (f *Flattener) Stats() Stats {
	return f.stats
}

// keep applies the name filter, then the filesystem check.
func (f *Flattener) keep(path string) bool {
	if _, ok := f.excluded[filepath.Base(path)]; ok {
		f.stats.Excluded++
		return false
	}
	f.stats.Checked++
	if !f.isRegularFile(path) {
		f.stats.Excluded++
		f.logger.Debug("dropping non-regular or missing file", "path", path)
		return false
	}
	return true
}

// isRegularFile treats a panicking checker as "not present".
func (f *Flattener) isRegularFile(path string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Warn("file check failed", "path", path, "error", r)
			ok = false
		}
	}()
	return f.checker.IsRegularFile(path)
}
