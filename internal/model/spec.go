// Package model defines the declarative input structures for menu and
// shortcut registration.
package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MenuSpec describes one level of the requested application menu. Specs nest
// through SubMenus; the tree is caller-owned input and is never mutated by
// the installer.
type MenuSpec struct {
	// ID is a short stable token, unique among siblings. It seeds both the
	// hierarchical identifier and (absent an override) the category.
	ID string `yaml:"id"`

	// Name is the display string shown by the desktop shell.
	Name string `yaml:"name"`

	// Category overrides the category token for this level. Empty means
	// "use ID".
	Category string `yaml:"category,omitempty"`

	// Comment and Icon are carried through to the .directory entry.
	Comment string `yaml:"comment,omitempty"`
	Icon    string `yaml:"icon,omitempty"`

	// SubMenus are the ordered child menus.
	SubMenus []*MenuSpec `yaml:"sub-menus,omitempty"`
}

// ShortcutSpec describes one requested launcher. Cmd may start with a
// placeholder token ({{FILEBROWSER}} or {{WEBBROWSER}}) that the emitter
// rewrites per desktop environment.
type ShortcutSpec struct {
	// ID is the shortcut's own short token. The finalized identifier is the
	// owning menu's hierarchical id joined to this.
	ID string `yaml:"id"`

	Name    string   `yaml:"name"`
	Cmd     []string `yaml:"cmd"`
	Comment string   `yaml:"comment,omitempty"`
	Icon    string   `yaml:"icon,omitempty"`

	// Categories are the dot-joined menu categories this shortcut belongs
	// to, in the author's preference order.
	Categories []string `yaml:"categories"`

	Terminal bool `yaml:"terminal,omitempty"`
}

// SpecFile is the on-disk YAML document handed to the install command.
type SpecFile struct {
	Menus     []*MenuSpec     `yaml:"menus"`
	Shortcuts []*ShortcutSpec `yaml:"shortcuts"`
}

// LoadSpecFile reads and decodes a spec file.
func LoadSpecFile(path string) (*SpecFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read spec file %q: %w", path, err)
	}

	var sf SpecFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("cannot parse spec file %q: %w", path, err)
	}

	if err := validateMenus(sf.Menus, "top level"); err != nil {
		return nil, err
	}
	for _, sc := range sf.Shortcuts {
		if sc.ID == "" {
			return nil, fmt.Errorf("shortcut %q has no id", sc.Name)
		}
		if len(sc.Cmd) == 0 {
			return nil, fmt.Errorf("shortcut %q has no command", sc.ID)
		}
		if len(sc.Categories) == 0 {
			return nil, fmt.Errorf("shortcut %q declares no categories", sc.ID)
		}
	}

	return &sf, nil
}

// validateMenus rejects sibling id collisions early; a duplicate id would
// collapse two distinct menu paths onto one category.
func validateMenus(menus []*MenuSpec, where string) error {
	seen := map[string]bool{}
	for _, m := range menus {
		if m.ID == "" {
			return fmt.Errorf("menu %q (%s) has no id", m.Name, where)
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate menu id %q (%s)", m.ID, where)
		}
		seen[m.ID] = true
		if err := validateMenus(m.SubMenus, "under "+m.ID); err != nil {
			return err
		}
	}
	return nil
}

// CategoryToken returns the category token contributed by this level:
// the explicit override when present, the id otherwise.
func (m *MenuSpec) CategoryToken() string {
	if m.Category != "" {
		return m.Category
	}
	return m.ID
}
