// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package fsinfo provides the filesystem capability the extractor needs:
// a single "is this a regular file" check, injectable for tests.
package fsinfo

import (
	"github.com/spf13/afero"
)

// Checker reports whether a path exists as a regular file. Implementations
// must never fail; a path that cannot be inspected is reported as absent.
type Checker interface {
	IsRegularFile(path string) bool
}

// CheckerFunc adapts a plain function to the Checker interface.
type CheckerFunc func(path string) bool

// IsRegularFile calls f(path).
func (f CheckerFunc) IsRegularFile(path string) bool {
	return f(path)
}

// FSChecker checks paths against an afero filesystem.
type FSChecker struct {
	fs afero.Fs
}

// Verify interface compliance at compile time.
var _ Checker = (*FSChecker)(nil)

// NewFSChecker returns a checker backed by fs. A nil fs means the OS
// filesystem.
func NewFSChecker(fs afero.Fs) *FSChecker {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FSChecker{fs: fs}
}

// IsRegularFile lstat's the path when the filesystem supports it, so
// symlinks are not followed. Any error, including a file vanishing between
// the build and the check, means "not present".
func (c *FSChecker) IsRegularFile(path string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	if path == "" {
		return false
	}

	if ls, isLstater := c.fs.(afero.Lstater); isLstater {
		info, _, err := ls.LstatIfPossible(path)
		if err != nil {
			return false
		}
		return info.Mode().IsRegular()
	}

	info, err := c.fs.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
