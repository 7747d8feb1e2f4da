// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package buildgraph loads a finished build graph from disk. It is the host
// side of depmanifest: bundlers dump their graph, this package turns the
// dump into a types.BuildResult.
package buildgraph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/petar-djukic/depmanifest/pkg/types"
)

// ErrInvalidBuildGraph is returned when a document cannot be decoded.
var ErrInvalidBuildGraph = errors.New("invalid build graph")

// Format selects the document schema.
type Format string

const (
	FormatAuto     Format = "auto"     // Sniff the document
	FormatGraph    Format = "graph"    // Native chunks/modules/snapshot graph, JSON or YAML
	FormatMetafile Format = "metafile" // esbuild metafile
)

// ParseFormat validates a format name. Empty means auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatGraph, FormatMetafile:
		return f, nil
	default:
		return "", fmt.Errorf("unknown build graph format %q", s)
	}
}

// Options configures loading.
type Options struct {
	Format Format
	// BaseDir resolves relative input paths of metafiles. esbuild records
	// inputs relative to its working directory, so the default is the
	// process working directory.
	BaseDir string
}

// LoadFile reads and decodes the build graph at path.
func LoadFile(fs afero.Fs, path string, opts Options) (*types.BuildResult, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading build graph: %w", err)
	}
	if opts.Format == "" {
		opts.Format = FormatAuto
	}
	if isYAML(path) {
		if opts.Format == FormatMetafile {
			return nil, fmt.Errorf("%w: metafiles are JSON, got %s", ErrInvalidBuildGraph, path)
		}
		return decodeYAMLGraph(data)
	}
	return Decode(data, opts)
}

// Decode decodes a JSON document.
func Decode(data []byte, opts Options) (*types.BuildResult, error) {
	format := opts.Format
	if format == "" || format == FormatAuto {
		f, err := sniff(data)
		if err != nil {
			return nil, err
		}
		format = f
	}

	switch format {
	case FormatMetafile:
		return decodeMetafile(data, opts.BaseDir)
	case FormatGraph:
		return decodeJSONGraph(data)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidBuildGraph, format)
	}
}

// sniff treats any document with a top-level "outputs" object as a
// metafile.
func sniff(data []byte) (Format, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBuildGraph, err)
	}
	if raw, ok := top["outputs"]; ok && bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return FormatMetafile, nil
	}
	return FormatGraph, nil
}

func decodeJSONGraph(data []byte) (*types.BuildResult, error) {
	var br types.BuildResult
	if err := json.Unmarshal(data, &br); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBuildGraph, err)
	}
	return &br, nil
}

func decodeYAMLGraph(data []byte) (*types.BuildResult, error) {
	var br types.BuildResult
	if err := yaml.Unmarshal(data, &br); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBuildGraph, err)
	}
	return &br, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
