package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSpec drops a spec file into a temp dir and returns its path.
func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "menus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSpecFile_NestedMenus(t *testing.T) {
	path := writeSpec(t, `
menus:
  - id: dev
    name: Development
    sub-menus:
      - id: ide
        name: IDEs
      - id: cli
        name: Command Line Tools
        category: CLI
shortcuts:
  - id: goland
    name: GoLand
    cmd: ["/opt/goland/bin/goland"]
    categories: [dev.ide]
`)

	sf, err := LoadSpecFile(path)
	require.NoError(t, err)

	require.Len(t, sf.Menus, 1)
	dev := sf.Menus[0]
	assert.Equal(t, "dev", dev.ID)
	assert.Equal(t, "Development", dev.Name)
	require.Len(t, dev.SubMenus, 2)
	assert.Equal(t, "IDEs", dev.SubMenus[0].Name)
	assert.Equal(t, "CLI", dev.SubMenus[1].CategoryToken())

	require.Len(t, sf.Shortcuts, 1)
	assert.Equal(t, []string{"dev.ide"}, sf.Shortcuts[0].Categories)
}

func TestLoadSpecFile_DuplicateSiblingID(t *testing.T) {
	path := writeSpec(t, `
menus:
  - id: dev
    name: Development
  - id: dev
    name: Other Development
`)
	_, err := LoadSpecFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate menu id")
}

func TestLoadSpecFile_ShortcutValidation(t *testing.T) {
	t.Run("missing command", func(t *testing.T) {
		path := writeSpec(t, `
shortcuts:
  - id: broken
    name: Broken
    categories: [dev]
`)
		_, err := LoadSpecFile(path)
		assert.Error(t, err)
	})

	t.Run("missing categories", func(t *testing.T) {
		path := writeSpec(t, `
shortcuts:
  - id: floating
    name: Floating
    cmd: [run]
`)
		_, err := LoadSpecFile(path)
		assert.Error(t, err)
	})
}

func TestLoadSpecFile_BadYAML(t *testing.T) {
	path := writeSpec(t, "menus: [unclosed")
	_, err := LoadSpecFile(path)
	assert.Error(t, err)
}
