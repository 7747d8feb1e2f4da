// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package fsinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSChecker_MemMapFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/a.js", []byte("a"), 0o644))
	require.NoError(t, fs.MkdirAll("/src/lib", 0o755))

	c := NewFSChecker(fs)

	assert.True(t, c.IsRegularFile("/src/a.js"))
	assert.False(t, c.IsRegularFile("/src/lib"), "directories are not regular files")
	assert.False(t, c.IsRegularFile("/src/missing.js"))
	assert.False(t, c.IsRegularFile(""))
}

func TestFSChecker_OsFsSymlinkNotFollowed(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.js")
	link := filepath.Join(dir, "link.js")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	c := NewFSChecker(nil)

	assert.True(t, c.IsRegularFile(target))
	assert.False(t, c.IsRegularFile(link))
}

func TestFSChecker_VanishedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/gone.js", []byte("x"), 0o644))
	c := NewFSChecker(fs)
	require.True(t, c.IsRegularFile("/src/gone.js"))

	require.NoError(t, fs.Remove("/src/gone.js"))
	assert.False(t, c.IsRegularFile("/src/gone.js"))
}

func TestCheckerFunc(t *testing.T) {
	var got string
	c := CheckerFunc(func(p string) bool {
		got = p
		return true
	})

	assert.True(t, c.IsRegularFile("/x"))
	assert.Equal(t, "/x", got)
}

func TestCachedChecker_MemoisesVerdicts(t *testing.T) {
	calls := map[string]int{}
	next := CheckerFunc(func(p string) bool {
		calls[p]++
		return p == "/src/a.js"
	})

	c, err := NewCachedChecker(next, 0)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.True(t, c.IsRegularFile("/src/a.js"))
		assert.False(t, c.IsRegularFile("/src/b.js"))
	}

	assert.Equal(t, 1, calls["/src/a.js"])
	assert.Equal(t, 1, calls["/src/b.js"])
	hits, misses := c.Stats()
	assert.Equal(t, 4, hits)
	assert.Equal(t, 2, misses)
}

func TestCachedChecker_Eviction(t *testing.T) {
	calls := 0
	next := CheckerFunc(func(string) bool {
		calls++
		return true
	})

	c, err := NewCachedChecker(next, 1)
	require.NoError(t, err)

	c.IsRegularFile("/a")
	c.IsRegularFile("/b")
	c.IsRegularFile("/a")

	assert.Equal(t, 3, calls)
}

func TestNewCachedChecker_NilDelegate(t *testing.T) {
	_, err := NewCachedChecker(nil, 10)
	assert.Error(t, err)
}
