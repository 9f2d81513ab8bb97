// Package menus maintains the XDG root menu definition file: loading it with
// backup/validate/recover semantics and growing its Menu tree from a
// declarative specification.
package menus

import (
	"fmt"
	"os"
	"time"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"

	"github.com/pombreda/appinst/internal/paths"
)

// menuRootTag is the root element tag of a valid menu definition document.
const menuRootTag = "Menu"

// userMenuSkeleton is the document created for unprivileged installs. The
// parent MergeFile pulls in the system-wide menu so user entries extend it
// rather than shadow it.
const userMenuSkeleton = `<?xml version="1.0"?>
<!DOCTYPE Menu PUBLIC "-//freedesktop//DTD Menu 1.0//EN" "http://www.freedesktop.org/standards/menu-spec/menu-1.0.dtd">
<Menu>
    <Name>Applications</Name>
    <MergeFile type="parent">/etc/xdg/menus/applications.menu</MergeFile>
</Menu>
`

// systemMenuSkeleton is the document created for privileged installs; it is
// itself the system-wide menu, so there is no parent to merge.
const systemMenuSkeleton = `<?xml version="1.0"?>
<!DOCTYPE Menu PUBLIC "-//freedesktop//DTD Menu 1.0//EN" "http://www.freedesktop.org/standards/menu-spec/menu-1.0.dtd">
<Menu>
    <Name>Applications</Name>
</Menu>
`

// Reconciler owns the root menu definition document for one registration
// run. It is created by Reconcile and saved back to disk by the tree
// builder after every structural change.
type Reconciler struct {
	// Path is the definition file location.
	Path string
	// Doc is the parsed document; shared with the tree builder.
	Doc *etree.Document
	// Root is Doc's root Menu element.
	Root *etree.Element
}

// Reconcile loads or creates the menu definition file at path.
//
// A pre-existing regular file is copied to a timestamped backup before it is
// even parsed, so a corrupted file survives as the recovery artifact. A file
// that fails to parse, or whose root tag is not Menu, is deleted and
// replaced with a fresh skeleton; that recovery is logged, not surfaced as
// an error. A non-regular file (e.g. a directory) squatting on the path is
// removed outright.
func Reconcile(path string, mode paths.Mode, logger *log.Logger) (*Reconciler, error) {
	info, err := os.Lstat(path)
	if err == nil && !info.Mode().IsRegular() {
		logger.Warn("removing non-file at menu definition path", "path", path)
		if err := os.RemoveAll(path); err != nil {
			return nil, fmt.Errorf("cannot remove %q: %w", path, err)
		}
		info = nil
	}

	if info != nil {
		backup := fmt.Sprintf("%s.%s", path, time.Now().Format("20060102150405"))
		if err := copyFile(path, backup); err != nil {
			return nil, fmt.Errorf("cannot back up menu file: %w", err)
		}

		doc := etree.NewDocument()
		if err := doc.ReadFromFile(path); err == nil {
			if root := doc.Root(); root != nil && root.Tag == menuRootTag {
				return &Reconciler{Path: path, Doc: doc, Root: root}, nil
			}
		}

		// Unparsable or wrong root tag: the backup keeps the old bytes,
		// the live file starts over.
		logger.Warn("recovering corrupted menu definition file",
			"path", path, "backup", backup)
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("cannot remove corrupted menu file %q: %w", path, err)
		}
	}

	skeleton := userMenuSkeleton
	if mode == paths.ModeSystem {
		skeleton = systemMenuSkeleton
	}
	if err := os.WriteFile(path, []byte(skeleton), 0o644); err != nil {
		return nil, fmt.Errorf("cannot create menu file %q: %w", path, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("cannot parse freshly created menu file %q: %w", path, err)
	}
	return &Reconciler{Path: path, Doc: doc, Root: doc.Root()}, nil
}

// Save rewrites the whole document to disk. Called after every node the
// builder adds, so a crash mid-run leaves the previous complete write, not
// an interleaved half-document.
func (r *Reconciler) Save() error {
	r.Doc.Indent(4)
	if err := r.Doc.WriteToFile(r.Path); err != nil {
		return fmt.Errorf("cannot write menu file %q: %w", r.Path, err)
	}
	return nil
}

// copyFile makes a byte-exact copy of src at dst.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
