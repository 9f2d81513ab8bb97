package install

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pombreda/appinst/internal/desktop"
	"github.com/pombreda/appinst/internal/model"
	"github.com/pombreda/appinst/internal/paths"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// testInstaller builds an Installer over a throwaway layout with the KDE
// refresh stubbed out.
func testInstaller(t *testing.T) *Installer {
	t.Helper()
	root := t.TempDir()
	layout := paths.Layout{
		Mode:    paths.ModeUser,
		DataDir: filepath.Join(root, "data"),
		ConfDir: filepath.Join(root, "config"),
	}
	in := New(layout, quietLogger())
	in.RefreshKDE = func(*log.Logger) {}
	return in
}

func devMenus() []*model.MenuSpec {
	return []*model.MenuSpec{
		{
			ID:   "dev",
			Name: "Development",
			SubMenus: []*model.MenuSpec{
				{ID: "ide", Name: "IDEs"},
			},
		},
	}
}

func golandShortcut() *model.ShortcutSpec {
	return &model.ShortcutSpec{
		ID:         "goland",
		Name:       "GoLand",
		Cmd:        []string{"/opt/goland/bin/goland"},
		Categories: []string{"dev.ide"},
	}
}

func TestFinalize_AssignsHierarchicalIDs(t *testing.T) {
	idMap := map[string]string{"dev": "dev", "dev.ide": "dev-ide"}

	out, err := Finalize([]*model.ShortcutSpec{golandShortcut()}, idMap)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "dev-ide-goland", out[0].ID)
}

// Finalize is phase two of a two-phase pipeline: it returns new records and
// never writes through to the caller's specs.
func TestFinalize_DoesNotMutateInput(t *testing.T) {
	sc := golandShortcut()
	_, err := Finalize([]*model.ShortcutSpec{sc}, map[string]string{"dev.ide": "dev-ide"})
	require.NoError(t, err)
	assert.Equal(t, "goland", sc.ID)
}

// The first declared category that resolves wins.
func TestFinalize_FirstResolvableCategoryWins(t *testing.T) {
	sc := golandShortcut()
	sc.Categories = []string{"missing.cat", "dev.ide", "dev"}

	out, err := Finalize([]*model.ShortcutSpec{sc},
		map[string]string{"dev": "dev", "dev.ide": "dev-ide"})
	require.NoError(t, err)
	assert.Equal(t, "dev-ide-goland", out[0].ID)
}

// A shortcut whose categories all miss the map is a fatal configuration
// error naming the shortcut, never a silent skip.
func TestFinalize_UnresolvableCategoryFatal(t *testing.T) {
	sc := golandShortcut()
	sc.Categories = []string{"nowhere"}

	_, err := Finalize([]*model.ShortcutSpec{sc}, map[string]string{"dev": "dev"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "goland")
}

// End-to-end: menus registered, category map applied, one GNOME and one KDE
// entry per shortcut with complementary visibility.
func TestInstall_EndToEnd(t *testing.T) {
	in := testInstaller(t)
	require.NoError(t, in.Install(devMenus(), []*model.ShortcutSpec{golandShortcut()}))

	// Menu definition file exists and holds the nested tree.
	menuData, err := os.ReadFile(in.Layout.MenuFile())
	require.NoError(t, err)
	assert.Contains(t, string(menuData), "<Name>Development</Name>")
	assert.Contains(t, string(menuData), "<Name>IDEs</Name>")
	assert.Contains(t, string(menuData), "<Category>dev.ide</Category>")

	// Exactly two launcher entries, both carrying the hierarchical id.
	files, err := os.ReadDir(in.Layout.ApplicationsDir())
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, f := range files {
		assert.True(t, strings.HasPrefix(f.Name(), "dev-ide-goland"), "filename %q", f.Name())
	}
}

// Visibility partition: per shortcut, exactly one variant is hidden from
// KDE and exactly one is visible only in KDE.
func TestInstall_VisibilityPartition(t *testing.T) {
	in := testInstaller(t)

	var emitted []*desktop.Entry
	in.EmitDesktop = func(e *desktop.Entry) (string, error) {
		emitted = append(emitted, e)
		return e.FilenameHint + ".desktop", nil
	}

	require.NoError(t, in.Install(devMenus(), []*model.ShortcutSpec{golandShortcut()}))
	require.Len(t, emitted, 2)

	var hiddenFromKDE, onlyKDE int
	for _, e := range emitted {
		switch {
		case e.NotShowIn == "KDE" && e.OnlyShowIn == "":
			hiddenFromKDE++
		case e.OnlyShowIn == "KDE" && e.NotShowIn == "":
			onlyKDE++
		default:
			t.Errorf("entry %q has inconsistent visibility: NotShowIn=%q OnlyShowIn=%q",
				e.FilenameHint, e.NotShowIn, e.OnlyShowIn)
		}
	}
	assert.Equal(t, 1, hiddenFromKDE)
	assert.Equal(t, 1, onlyKDE)
}

// The file-browser placeholder resolves differently per desktop variant.
func TestInstall_PlaceholderPerDesktop(t *testing.T) {
	in := testInstaller(t)

	var cmds [][]string
	in.EmitDesktop = func(e *desktop.Entry) (string, error) {
		cmds = append(cmds, e.Cmd)
		return e.FilenameHint + ".desktop", nil
	}

	sc := golandShortcut()
	sc.Cmd = []string{desktop.PlaceholderFileBrowser, "/opt"}
	require.NoError(t, in.Install(devMenus(), []*model.ShortcutSpec{sc}))

	require.Len(t, cmds, 2)
	assert.Equal(t, []string{"gnome-open", "/opt"}, cmds[0])
	assert.Equal(t, []string{"kfmclient", "openURL", "/opt"}, cmds[1])
}

// Running the whole installation twice is idempotent for the menu tree and
// overwrites entries in place.
func TestInstall_Rerun(t *testing.T) {
	in := testInstaller(t)
	shortcuts := []*model.ShortcutSpec{golandShortcut()}

	require.NoError(t, in.Install(devMenus(), shortcuts))
	require.NoError(t, in.Install(devMenus(), shortcuts))

	menuData, err := os.ReadFile(in.Layout.MenuFile())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(menuData), "<Name>Development</Name>"))

	files, err := os.ReadDir(in.Layout.ApplicationsDir())
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestInstall_UnresolvableShortcutFailsRun(t *testing.T) {
	in := testInstaller(t)
	sc := golandShortcut()
	sc.Categories = []string{"games.arcade"}

	err := in.Install(devMenus(), []*model.ShortcutSpec{sc})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "goland")
}
