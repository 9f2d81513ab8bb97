// Package paths resolves the install-root directory layout for a given
// install mode and bootstraps the directories the installer writes into.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// Mode selects where menu and entry files are installed.
type Mode string

const (
	// ModeAuto resolves to ModeSystem when running as root, ModeUser
	// otherwise. The probe happens in Resolve, exactly once.
	ModeAuto Mode = "auto"
	// ModeSystem installs under /usr/share and /etc/xdg.
	ModeSystem Mode = "system"
	// ModeUser installs under the XDG user data and config homes.
	ModeUser Mode = "user"
)

// Layout is the resolved directory set for one installation run.
type Layout struct {
	Mode Mode

	// DataDir holds applications/ and desktop-directories/.
	DataDir string
	// ConfDir holds menus/ with the root menu definition file.
	ConfDir string
}

// Resolve computes the layout for the requested mode.
func Resolve(mode Mode) (Layout, error) {
	if mode == ModeAuto {
		if os.Geteuid() == 0 {
			mode = ModeSystem
		} else {
			mode = ModeUser
		}
	}

	switch mode {
	case ModeSystem:
		return Layout{Mode: ModeSystem, DataDir: "/usr/share", ConfDir: "/etc/xdg"}, nil
	case ModeUser:
		data := os.Getenv("XDG_DATA_HOME")
		conf := os.Getenv("XDG_CONFIG_HOME")
		if data == "" || conf == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return Layout{}, fmt.Errorf("cannot determine home directory: %w", err)
			}
			if data == "" {
				data = filepath.Join(home, ".local", "share")
			}
			if conf == "" {
				conf = filepath.Join(home, ".config")
			}
		}
		return Layout{Mode: ModeUser, DataDir: data, ConfDir: conf}, nil
	default:
		return Layout{}, fmt.Errorf("unknown install mode %q", mode)
	}
}

// MenuFile returns the path of the root menu definition file.
func (l Layout) MenuFile() string {
	return filepath.Join(l.ConfDir, "menus", "applications.menu")
}

// ApplicationsDir returns the directory for .desktop launcher entries.
func (l Layout) ApplicationsDir() string {
	return filepath.Join(l.DataDir, "applications")
}

// DesktopDirectoriesDir returns the directory for .directory entries.
func (l Layout) DesktopDirectoriesDir() string {
	return filepath.Join(l.DataDir, "desktop-directories")
}

// Bootstrap ensures every directory the installer writes into exists. A file
// squatting on a needed directory path is removed and replaced. Failure here
// is fatal for the run: there is nowhere to install to.
func (l Layout) Bootstrap() error {
	dirs := []string{
		filepath.Join(l.ConfDir, "menus", "applications-merged"),
		l.ApplicationsDir(),
		l.DesktopDirectoriesDir(),
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err == nil {
			if info.IsDir() {
				continue
			}
			if err := os.Remove(dir); err != nil {
				return fmt.Errorf("cannot replace file %q with directory: %w", dir, err)
			}
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create install directory %q: %w", dir, err)
		}
	}
	return nil
}
