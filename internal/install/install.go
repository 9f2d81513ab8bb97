// Package install orchestrates one registration run: reconcile the menu
// file, build the menu tree, finalize shortcut identifiers, and emit the
// per-desktop launcher entries.
package install

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/pombreda/appinst/internal/desktop"
	"github.com/pombreda/appinst/internal/menus"
	"github.com/pombreda/appinst/internal/model"
	"github.com/pombreda/appinst/internal/paths"
)

// Installer runs menu and shortcut registration against one resolved
// directory layout. Entries are written for both GNOME and KDE so the same
// logical shortcut set shows up once in either shell.
type Installer struct {
	Layout paths.Layout
	Log    *log.Logger

	// EmitDesktop writes one launcher entry; defaults to
	// desktop.MakeDesktopEntry. Tests override it.
	EmitDesktop func(*desktop.Entry) (string, error)
	// RefreshKDE pokes the KDE cache after KDE entries are written;
	// defaults to desktop.RefreshKDE.
	RefreshKDE func(*log.Logger)
}

// New creates an Installer for the given layout.
func New(layout paths.Layout, logger *log.Logger) *Installer {
	return &Installer{
		Layout:      layout,
		Log:         logger,
		EmitDesktop: desktop.MakeDesktopEntry,
		RefreshKDE:  desktop.RefreshKDE,
	}
}

// Install registers the menu tree and shortcuts. Re-running with the same
// specification is idempotent for the menu structure and overwrites entry
// files in place.
func (in *Installer) Install(menuSpecs []*model.MenuSpec, shortcuts []*model.ShortcutSpec) error {
	if err := in.Layout.Bootstrap(); err != nil {
		return err
	}

	rec, err := menus.Reconcile(in.Layout.MenuFile(), in.Layout.Mode, in.Log)
	if err != nil {
		return err
	}

	builder := menus.NewBuilder(rec, in.Layout.DesktopDirectoriesDir(), in.Log)
	idMap, err := builder.Build(menuSpecs)
	if err != nil {
		return err
	}

	finalized, err := Finalize(shortcuts, idMap)
	if err != nil {
		return err
	}

	location := in.Layout.ApplicationsDir()
	if err := in.emitVariants(finalized, location, variantGnome); err != nil {
		return err
	}
	if err := in.emitVariants(finalized, location, variantKDE); err != nil {
		return err
	}
	in.RefreshKDE(in.Log)

	in.Log.Info("registration complete",
		"menus", len(idMap), "shortcuts", len(finalized))
	return nil
}

// Finalize resolves each shortcut's identifier through the category map and
// returns new records; the caller's shortcuts are never mutated. The first
// declared category present in the map wins. A shortcut whose categories all
// miss the map is a configuration error: its identifier cannot be resolved.
func Finalize(shortcuts []*model.ShortcutSpec, idMap map[string]string) ([]model.ShortcutSpec, error) {
	out := make([]model.ShortcutSpec, 0, len(shortcuts))
	for _, sc := range shortcuts {
		menuID := ""
		for _, cat := range sc.Categories {
			if id, ok := idMap[cat]; ok {
				menuID = id
				break
			}
		}
		if menuID == "" {
			return nil, fmt.Errorf("shortcut %q: no declared category %v exists in the menu tree",
				sc.ID, sc.Categories)
		}

		cur := *sc
		cur.ID = model.ShortcutID(menuID, sc.ID)
		out = append(out, cur)
	}
	return out, nil
}

// variant describes one desktop environment's rendition of a shortcut.
type variant struct {
	suffix      string // filename suffix keeping the two renditions distinct
	filebrowser string
	notShowIn   string
	onlyShowIn  string
}

var (
	// GNOME rendition: hidden from KDE.
	variantGnome = variant{suffix: "-gnome", filebrowser: desktop.GnomeFileBrowser, notShowIn: "KDE"}
	// KDE rendition: visible only in KDE.
	variantKDE = variant{suffix: "-kde", filebrowser: desktop.KDEFileBrowser, onlyShowIn: "KDE"}
)

func (in *Installer) emitVariants(shortcuts []model.ShortcutSpec, location string, v variant) error {
	for _, sc := range shortcuts {
		entry := &desktop.Entry{
			Name:         sc.Name,
			Comment:      sc.Comment,
			Icon:         sc.Icon,
			Location:     location,
			FilenameHint: sc.ID + v.suffix,
			Cmd:          desktop.SubstituteCommand(sc.Cmd, v.filebrowser),
			Terminal:     sc.Terminal,
			Categories:   sc.Categories,
			NotShowIn:    v.notShowIn,
			OnlyShowIn:   v.onlyShowIn,
		}
		name, err := in.EmitDesktop(entry)
		if err != nil {
			return fmt.Errorf("cannot emit shortcut %q: %w", sc.ID, err)
		}
		in.Log.Debug("wrote shortcut entry", "file", name)
	}
	return nil
}
