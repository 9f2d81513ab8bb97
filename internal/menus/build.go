package menus

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"

	"github.com/pombreda/appinst/internal/desktop"
	"github.com/pombreda/appinst/internal/model"
)

// Builder grows the reconciled document's Menu tree from a menu
// specification and produces the category→hierarchical-id map consumed by
// shortcut finalization.
type Builder struct {
	Rec *Reconciler

	// DesktopDir is where .directory category entries are written. The
	// entries all share one directory, so filenames derive from the full
	// category rather than the menu id to stay unique.
	DesktopDir string

	Log *log.Logger

	// EmitDirectory writes one category-directory entry and returns its
	// filename. Defaults to desktop.MakeDirectoryEntry; tests override it.
	EmitDirectory func(*desktop.Entry) (string, error)
}

// NewBuilder creates a Builder over a reconciled document.
func NewBuilder(rec *Reconciler, desktopDir string, logger *log.Logger) *Builder {
	return &Builder{
		Rec:           rec,
		DesktopDir:    desktopDir,
		Log:           logger,
		EmitDirectory: desktop.MakeDirectoryEntry,
	}
}

// workItem is one queued spec together with its full parent context. The
// owning XML element rides on the item itself, so no side lookup keyed on
// node identity is needed when the item is popped.
type workItem struct {
	spec           *model.MenuSpec
	parentCategory string
	parentID       string
	parent         *etree.Element
}

// Build walks the specification breadth-first, creating or updating one
// Menu element per spec node, and returns the completed category map.
//
// The walk is a FIFO queue rather than recursion so sibling order is
// processed deterministically and depth is unbounded. The document is saved
// after every node: a failure mid-run leaves a valid, partially populated
// file.
func (b *Builder) Build(specs []*model.MenuSpec) (map[string]string, error) {
	queue := make([]workItem, 0, len(specs))
	for _, spec := range specs {
		queue = append(queue, workItem{spec: spec, parent: b.Rec.Root})
	}

	idMap := make(map[string]string)

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		spec := item.spec

		menuID, err := model.BuildID(spec.ID, item.parentID)
		if err != nil {
			return nil, err
		}
		category := model.JoinCategory(item.parentCategory, spec.CategoryToken())

		if prev, ok := idMap[category]; ok && prev != menuID {
			return nil, fmt.Errorf("category %q maps to both %q and %q", category, prev, menuID)
		}
		idMap[category] = menuID

		// The .directory entry for this level. Filename comes from the
		// escaped category so every tree path gets a distinct file.
		entryName, err := b.EmitDirectory(&desktop.Entry{
			Name:         spec.Name,
			Comment:      spec.Comment,
			Icon:         spec.Icon,
			Location:     b.DesktopDir,
			FilenameHint: category,
		})
		if err != nil {
			return nil, fmt.Errorf("cannot emit directory entry for %q: %w", category, err)
		}

		menuEl := findMenuByName(item.parent, spec.Name)
		if menuEl == nil {
			menuEl = item.parent.CreateElement("Menu")
		}
		ensureChild(menuEl, "Name", spec.Name)
		ensureChild(menuEl, "Directory", entryName)
		includeEl := ensureChild(menuEl, "Include", "")
		ensureChild(includeEl, "Category", category)

		if err := b.Rec.Save(); err != nil {
			return nil, err
		}
		b.Log.Debug("registered menu", "name", spec.Name, "category", category, "id", menuID)

		for _, child := range spec.SubMenus {
			queue = append(queue, workItem{
				spec:           child,
				parentCategory: category,
				parentID:       menuID,
				parent:         menuEl,
			})
		}
	}

	// Final formatting pass.
	if err := b.Rec.Save(); err != nil {
		return nil, err
	}
	return idMap, nil
}

// findMenuByName returns the direct Menu child whose Name text equals name,
// or nil. Re-registration updates that element instead of appending a twin.
func findMenuByName(parent *etree.Element, name string) *etree.Element {
	for _, el := range parent.SelectElements("Menu") {
		if n := el.SelectElement("Name"); n != nil && n.Text() == name {
			return el
		}
	}
	return nil
}

// ensureChild returns parent's first child with the given tag, creating it
// if absent, and overwrites its text when text is non-empty.
func ensureChild(parent *etree.Element, tag, text string) *etree.Element {
	el := parent.SelectElement(tag)
	if el == nil {
		el = parent.CreateElement(tag)
	}
	if text != "" {
		el.SetText(text)
	}
	return el
}
