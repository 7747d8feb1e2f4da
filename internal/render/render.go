// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package render serializes a manifest to its canonical JSON form.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/petar-djukic/depmanifest/pkg/types"
)

// ErrUnrepresentable is returned when the manifest holds a value JSON cannot
// carry without altering it.
var ErrUnrepresentable = errors.New("manifest not representable as JSON")

// Options controls layout only; content and ordering never change.
type Options struct {
	Indent string // Empty for compact output
}

// Render encodes m as a JSON array of {"output", "dependencies"} objects.
// The result has no trailing newline, no HTML escaping, and renders empty
// dependency lists as [].
func Render(m types.Manifest, opts Options) ([]byte, error) {
	if err := validate(m); err != nil {
		return nil, err
	}

	records := make([]types.Record, len(m))
	for i, r := range m {
		deps := r.Dependencies
		if deps == nil {
			deps = []string{}
		}
		records[i] = types.Record{Output: r.Output, Dependencies: deps}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if opts.Indent != "" {
		enc.SetIndent("", opts.Indent)
	}
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrepresentable, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Asset renders m and wraps it as a named build asset.
func Asset(name string, m types.Manifest, opts Options) (types.Asset, error) {
	src, err := Render(m, opts)
	if err != nil {
		return types.Asset{}, err
	}
	return types.Asset{Name: name, Source: src}, nil
}

// validate rejects invalid UTF-8, which encoding/json would silently
// replace with U+FFFD and so point the manifest at a different path.
func validate(m types.Manifest) error {
	for _, r := range m {
		if !utf8.ValidString(r.Output) {
			return fmt.Errorf("%w: output %q is not valid UTF-8", ErrUnrepresentable, r.Output)
		}
		for _, d := range r.Dependencies {
			if !utf8.ValidString(d) {
				return fmt.Errorf("%w: dependency %q of %q is not valid UTF-8", ErrUnrepresentable, d, r.Output)
			}
		}
	}
	return nil
}
