package desktop

import (
	"os/exec"

	"github.com/charmbracelet/log"
)

// RefreshKDE asks the KDE session to rebuild its system configuration cache
// so freshly written entries show up without a logout. A missing or failing
// kbuildsycoca is logged and ignored: the entries are on disk either way.
func RefreshKDE(logger *log.Logger) {
	path, err := exec.LookPath("kbuildsycoca")
	if err != nil {
		logger.Debug("kbuildsycoca not found, skipping KDE cache refresh")
		return
	}
	if err := exec.Command(path).Run(); err != nil {
		logger.Warn("KDE cache refresh failed", "err", err)
	}
}
