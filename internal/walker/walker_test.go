// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package walker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petar-djukic/depmanifest/internal/fsinfo"
	"github.com/petar-djukic/depmanifest/internal/snapshot"
	"github.com/petar-djukic/depmanifest/pkg/types"
)

// recordingSink captures everything the walker emits, in order.
type recordingSink struct {
	outputs []string
	edges   []types.Edge
}

func (s *recordingSink) AddOutput(o string) { s.outputs = append(s.outputs, o) }
func (s *recordingSink) Add(e types.Edge) { s.edges = append(s.edges, e) }

func newWalker() *Walker {
	all := fsinfo.CheckerFunc(func(string) bool { return true })
	return New(snapshot.NewFlattener(all, nil, nil), nil)
}

func TestWalk_PrimaryThenAuxiliaryPerSource(t *testing.T) {
	build := &types.BuildResult{Chunks: []types.Chunk{{
		ID:             "main",
		Files:          []string{"bundle.js"},
		AuxiliaryFiles: []string{"bundle.js.map"},
		Modules: []types.Module{
			{ID: "./src/a.js", FileDependencies: []string{"/src/a.js", "/src/b.js"}},
		},
	}}}
	sink := &recordingSink{}

	st := newWalker().Walk(build, sink)

	assert.Equal(t, []string{"bundle.js", "bundle.js.map"}, sink.outputs)
	assert.Equal(t, []types.Edge{
		{Output: "bundle.js", Source: "/src/a.js"},
		{Output: "bundle.js.map", Source: "/src/a.js"},
		{Output: "bundle.js", Source: "/src/b.js"},
		{Output: "bundle.js.map", Source: "/src/b.js"},
	}, sink.edges)
	assert.Equal(t, Stats{Chunks: 1, Modules: 1, Edges: 4}, st)
}

func TestWalk_SkipsModulesWithoutDependencyInfo(t *testing.T) {
	build := &types.BuildResult{Chunks: []types.Chunk{{
		Files: []string{"app.js"},
		Modules: []types.Module{
			{ID: "external \"react\""},
			{ID: "webpack/runtime", Snapshot: &types.SnapshotTree{}},
		},
	}}}
	sink := &recordingSink{}

	st := newWalker().Walk(build, sink)

	assert.Equal(t, []string{"app.js"}, sink.outputs)
	assert.Empty(t, sink.edges)
	assert.Equal(t, 2, st.SkippedModules)
}

func TestWalk_ChunkWithoutOutputs(t *testing.T) {
	build := &types.BuildResult{Chunks: []types.Chunk{
		{ID: "orphan", Modules: []types.Module{{ID: "m", FileDependencies: []string{"/src/m.js"}}}},
		{ID: "main", Files: []string{"main.js"}, Modules: []types.Module{{ID: "n", FileDependencies: []string{"/src/n.js"}}}},
	}}
	sink := &recordingSink{}

	st := newWalker().Walk(build, sink)

	assert.Equal(t, []string{"main.js"}, sink.outputs)
	assert.Equal(t, []types.Edge{{Output: "main.js", Source: "/src/n.js"}}, sink.edges)
	assert.Equal(t, 1, st.EmptyChunks)
}

func TestWalk_SnapshotAndFlatListCombined(t *testing.T) {
	build := &types.BuildResult{Chunks: []types.Chunk{{
		Files: []string{"vendor.js"},
		Modules: []types.Module{{
			ID:               "./vendor/lib.js",
			FileDependencies: []string{"/vendor/lib.js"},
			Snapshot: &types.SnapshotTree{Nodes: []types.SnapshotNode{
				{Files: []string{"/vendor/lib.js"}, Children: []int{1}},
				{Files: []string{"/vendor/util.js"}},
			}},
		}},
	}}}
	sink := &recordingSink{}

	newWalker().Walk(build, sink)

	assert.Equal(t, []types.Edge{
		{Output: "vendor.js", Source: "/vendor/lib.js"},
		{Output: "vendor.js", Source: "/vendor/lib.js"},
		{Output: "vendor.js", Source: "/vendor/util.js"},
	}, sink.edges)
}

func TestWalk_NilBuild(t *testing.T) {
	sink := &recordingSink{}

	st := newWalker().Walk(nil, sink)

	assert.Equal(t, Stats{}, st)
	assert.Empty(t, sink.outputs)
}
