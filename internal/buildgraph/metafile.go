// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package buildgraph

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/petar-djukic/depmanifest/pkg/types"
)

// metafile mirrors the parts of esbuild's metafile the loader reads.
type metafile struct {
	Inputs  map[string]metafileInput  `json:"inputs"`
	Outputs map[string]metafileOutput `json:"outputs"`
}

type metafileInput struct {
	Bytes int `json:"bytes"`
}

type metafileOutput struct {
	Bytes      int                     `json:"bytes"`
	Inputs     map[string]inputContrib `json:"inputs"`
	EntryPoint string                  `json:"entryPoint,omitempty"`
}

type inputContrib struct {
	BytesInOutput int `json:"bytesInOutput"`
}

const sourceMapExt = ".map"

// decodeMetafile maps each esbuild output to a chunk. A "x.map" output
// becomes an auxiliary file of output "x" when that output exists. Every
// contributing input becomes a module with a single absolute file
// dependency. Map keys are sorted so the result is deterministic.
func decodeMetafile(data []byte, baseDir string) (*types.BuildResult, error) {
	var mf metafile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBuildGraph, err)
	}
	if mf.Outputs == nil {
		return nil, fmt.Errorf("%w: metafile has no outputs", ErrInvalidBuildGraph)
	}

	names := make([]string, 0, len(mf.Outputs))
	for name := range mf.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)

	br := &types.BuildResult{}
	for _, name := range names {
		if base, isMap := strings.CutSuffix(name, sourceMapExt); isMap {
			if _, ok := mf.Outputs[base]; ok {
				continue // attached to its primary output below
			}
		}

		out := mf.Outputs[name]
		chunk := types.Chunk{ID: out.EntryPoint, Files: []string{name}}
		if chunk.ID == "" {
			chunk.ID = name
		}
		if _, ok := mf.Outputs[name+sourceMapExt]; ok {
			chunk.AuxiliaryFiles = []string{name + sourceMapExt}
		}

		inputs := make([]string, 0, len(out.Inputs))
		for in := range out.Inputs {
			inputs = append(inputs, in)
		}
		sort.Strings(inputs)
		for _, in := range inputs {
			chunk.Modules = append(chunk.Modules, types.Module{
				ID:               in,
				FileDependencies: []string{resolveInput(baseDir, in)},
			})
		}

		br.Chunks = append(br.Chunks, chunk)
	}
	return br, nil
}

// resolveInput makes a metafile input path absolute. Namespaced inputs such
// as "<stdin>" or "http-url:..." are left as-is; the file check drops them.
func resolveInput(baseDir, in string) string {
	if filepath.IsAbs(in) || strings.HasPrefix(in, "<") || strings.Contains(in, ":") {
		return in
	}
	abs, err := filepath.Abs(filepath.Join(baseDir, filepath.FromSlash(in)))
	if err != nil {
		return filepath.Join(baseDir, in)
	}
	return abs
}
