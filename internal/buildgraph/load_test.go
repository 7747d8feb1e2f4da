// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package buildgraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/depmanifest/pkg/types"
)

const graphJSON = `{
  "chunks": [
    {
      "id": "main",
      "files": ["javascripts/main.js"],
      "auxiliaryFiles": ["javascripts/main.js.map"],
      "modules": [
        {"id": "./app/main.js", "fileDependencies": ["/app/main.js"]},
        {"id": "./app/view.js", "snapshot": {"nodes": [
          {"files": ["/app/view.js"], "children": [1]},
          {"files": ["/app/view.css", "/app/package.json"], "children": [0]}
        ]}},
        {"id": "external \"jquery\""}
      ]
    }
  ]
}`

const graphYAML = `
chunks:
  - id: vendor
    files: [javascripts/vendor.js]
    modules:
      - id: ./vendor/lib.js
        snapshot:
          nodes:
            - files: [/vendor/lib.js]
              children: [1]
            - files: [/vendor/util.js]
`

const metafileJSON = `{
  "inputs": {
    "src/app.ts": {"bytes": 10, "imports": []},
    "src/util.ts": {"bytes": 5, "imports": []}
  },
  "outputs": {
    "dist/app.js.map": {"bytes": 100, "inputs": {}, "imports": [], "exports": []},
    "dist/app.js": {
      "bytes": 50,
      "entryPoint": "src/app.ts",
      "inputs": {"src/util.ts": {"bytesInOutput": 5}, "src/app.ts": {"bytesInOutput": 10}},
      "imports": [], "exports": []
    },
    "dist/orphan.css.map": {"bytes": 1, "inputs": {"<stdin>": {"bytesInOutput": 1}}}
  }
}`

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestLoadFile_NativeJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/build/graph.json", graphJSON)

	br, err := LoadFile(fs, "/build/graph.json", Options{})
	require.NoError(t, err)

	require.Len(t, br.Chunks, 1)
	c := br.Chunks[0]
	assert.Equal(t, []string{"javascripts/main.js", "javascripts/main.js.map"}, c.Outputs())
	require.Len(t, c.Modules, 3)
	assert.Equal(t, []string{"/app/main.js"}, c.Modules[0].FileDependencies)
	require.NotNil(t, c.Modules[1].Snapshot)
	assert.Equal(t, []int{0}, c.Modules[1].Snapshot.Nodes[1].Children)
	assert.False(t, c.Modules[2].HasDependencyInfo())
}

func TestLoadFile_NativeYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/build/graph.yaml", graphYAML)

	br, err := LoadFile(fs, "/build/graph.yaml", Options{})
	require.NoError(t, err)

	require.Len(t, br.Chunks, 1)
	assert.Equal(t, "vendor", br.Chunks[0].ID)
	snap := br.Chunks[0].Modules[0].Snapshot
	require.NotNil(t, snap)
	assert.Equal(t, []types.SnapshotNode{
		{Files: []string{"/vendor/lib.js"}, Children: []int{1}},
		{Files: []string{"/vendor/util.js"}},
	}, snap.Nodes)
}

func TestLoadFile_Metafile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/proj/meta.json", metafileJSON)

	br, err := LoadFile(fs, "/proj/meta.json", Options{BaseDir: "/proj"})
	require.NoError(t, err)

	require.Len(t, br.Chunks, 2)
	app := br.Chunks[0]
	assert.Equal(t, "src/app.ts", app.ID)
	assert.Equal(t, []string{"dist/app.js"}, app.Files)
	assert.Equal(t, []string{"dist/app.js.map"}, app.AuxiliaryFiles)
	require.Len(t, app.Modules, 2)
	assert.Equal(t, []string{"/proj/src/app.ts"}, app.Modules[0].FileDependencies)
	assert.Equal(t, []string{"/proj/src/util.ts"}, app.Modules[1].FileDependencies)

	orphan := br.Chunks[1]
	assert.Equal(t, []string{"dist/orphan.css.map"}, orphan.Files)
	assert.Equal(t, []string{"<stdin>"}, orphan.Modules[0].FileDependencies)
}

func TestLoadFile_MetafileBaseDirOverride(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/tmp/meta.json", metafileJSON)

	br, err := LoadFile(fs, "/tmp/meta.json", Options{Format: FormatMetafile, BaseDir: "/work"})
	require.NoError(t, err)

	assert.Equal(t, []string{"/work/src/app.ts"}, br.Chunks[0].Modules[0].FileDependencies)
}

func TestLoadFile_MetafileResolvesAgainstWorkingDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/proj/dist/meta.json", metafileJSON)

	br, err := LoadFile(fs, "/proj/dist/meta.json", Options{})
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(wd, "src/app.ts")}, br.Chunks[0].Modules[0].FileDependencies)
}

func TestLoadFile_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/b/broken.json", `{"chunks": [`)
	writeFile(t, fs, "/b/broken.yaml", "chunks: [:")
	writeFile(t, fs, "/b/graph.yml", graphYAML)

	_, err := LoadFile(fs, "/b/missing.json", Options{})
	assert.Error(t, err)

	_, err = LoadFile(fs, "/b/broken.json", Options{})
	assert.ErrorIs(t, err, ErrInvalidBuildGraph)

	_, err = LoadFile(fs, "/b/broken.yaml", Options{})
	assert.ErrorIs(t, err, ErrInvalidBuildGraph)

	_, err = LoadFile(fs, "/b/graph.yml", Options{Format: FormatMetafile})
	assert.ErrorIs(t, err, ErrInvalidBuildGraph)
}

func TestDecode_ForcedMetafileWithoutOutputs(t *testing.T) {
	_, err := Decode([]byte(`{"chunks": []}`), Options{Format: FormatMetafile})
	assert.ErrorIs(t, err, ErrInvalidBuildGraph)
}

func TestDecode_SniffKeepsNativeGraph(t *testing.T) {
	br, err := Decode([]byte(`{"chunks": [{"files": ["a.js"], "modules": []}], "outputs": []}`), Options{})
	require.NoError(t, err)
	assert.Len(t, br.Chunks, 1)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatAuto, f)

	f, err = ParseFormat("Metafile")
	require.NoError(t, err)
	assert.Equal(t, FormatMetafile, f)

	_, err = ParseFormat("rollup")
	assert.Error(t, err)
}
