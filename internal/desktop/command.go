package desktop

import "strings"

// Placeholder tokens accepted at the head of a shortcut command vector.
const (
	// PlaceholderFileBrowser is replaced with the desktop's file manager
	// invocation.
	PlaceholderFileBrowser = "{{FILEBROWSER}}"
	// PlaceholderWebBrowser is replaced with xdg-open, which dispatches to
	// the desktop's configured browser.
	PlaceholderWebBrowser = "{{WEBBROWSER}}"
)

// File-manager invocations per desktop environment. kfmclient takes a
// subcommand, so the replacement may span multiple argument tokens.
const (
	GnomeFileBrowser = "gnome-open"
	KDEFileBrowser   = "kfmclient openURL"
)

// SubstituteCommand returns a copy of cmd with a leading placeholder token
// rewritten for the given file browser. Commands without a placeholder pass
// through unchanged (still copied; the input is never aliased).
func SubstituteCommand(cmd []string, filebrowser string) []string {
	out := make([]string, 0, len(cmd)+1)
	switch cmd[0] {
	case PlaceholderFileBrowser:
		out = append(out, strings.Fields(filebrowser)...)
	case PlaceholderWebBrowser:
		out = append(out, "xdg-open")
	default:
		out = append(out, cmd[0])
	}
	return append(out, cmd[1:]...)
}
