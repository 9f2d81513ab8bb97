// Package desktop writes freedesktop.org entry files: .desktop launchers
// and .directory menu-category entries.
package desktop

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry is one flat record handed to the emitter. Emission is idempotent:
// the same record always produces the same file at the same path.
type Entry struct {
	// Name is the display string (Name= key).
	Name string
	// Location is the directory the entry file is written into.
	Location string
	// FilenameHint seeds the generated filename; it is escaped for
	// filesystem safety before use. Empty means "use Name".
	FilenameHint string

	Comment string
	Icon    string

	// Cmd is the launcher argument vector (launchers only).
	Cmd      []string
	Terminal bool

	// Categories are written as a freedesktop Categories= list.
	Categories []string

	// Visibility flags. At most one is set; the value is a desktop
	// environment name such as "KDE".
	NotShowIn  string
	OnlyShowIn string
}

// filename returns the escaped basename for the entry, without extension.
func (e *Entry) filename() string {
	hint := e.FilenameHint
	if hint == "" {
		hint = e.Name
	}
	return FilesystemEscape(hint)
}

// MakeDesktopEntry writes a Type=Application .desktop file for the entry
// and returns the generated filename (basename, including extension).
func MakeDesktopEntry(e *Entry) (string, error) {
	if len(e.Cmd) == 0 {
		return "", fmt.Errorf("desktop entry %q has no command", e.Name)
	}

	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	b.WriteString("Encoding=UTF-8\n")
	fmt.Fprintf(&b, "Name=%s\n", e.Name)
	if e.Comment != "" {
		fmt.Fprintf(&b, "Comment=%s\n", e.Comment)
	}
	fmt.Fprintf(&b, "Exec=%s\n", buildExec(e.Cmd))
	fmt.Fprintf(&b, "Terminal=%s\n", boolKey(e.Terminal))
	if e.Icon != "" {
		fmt.Fprintf(&b, "Icon=%s\n", e.Icon)
	}
	if len(e.Categories) > 0 {
		fmt.Fprintf(&b, "Categories=%s;\n", strings.Join(e.Categories, ";"))
	}
	if e.NotShowIn != "" {
		fmt.Fprintf(&b, "NotShowIn=%s;\n", e.NotShowIn)
	}
	if e.OnlyShowIn != "" {
		fmt.Fprintf(&b, "OnlyShowIn=%s;\n", e.OnlyShowIn)
	}

	name := e.filename() + ".desktop"
	if err := writeEntryFile(filepath.Join(e.Location, name), b.String()); err != nil {
		return "", err
	}
	return name, nil
}

// MakeDirectoryEntry writes a Type=Directory .directory file for the entry
// and returns the generated filename.
func MakeDirectoryEntry(e *Entry) (string, error) {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Directory\n")
	b.WriteString("Encoding=UTF-8\n")
	fmt.Fprintf(&b, "Name=%s\n", e.Name)
	if e.Comment != "" {
		fmt.Fprintf(&b, "Comment=%s\n", e.Comment)
	}
	icon := e.Icon
	if icon == "" {
		icon = "folder"
	}
	fmt.Fprintf(&b, "Icon=%s\n", icon)

	name := e.filename() + ".directory"
	if err := writeEntryFile(filepath.Join(e.Location, name), b.String()); err != nil {
		return "", err
	}
	return name, nil
}

func writeEntryFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("cannot write entry file %q: %w", path, err)
	}
	return nil
}

// buildExec joins the argument vector into an Exec= value, quoting any
// argument containing whitespace per the desktop entry spec.
func buildExec(cmd []string) string {
	parts := make([]string, 0, len(cmd))
	for _, arg := range cmd {
		if strings.ContainsAny(arg, " \t") {
			arg = `"` + arg + `"`
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

func boolKey(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
