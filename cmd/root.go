package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pombreda/appinst/internal/install"
	"github.com/pombreda/appinst/internal/model"
	"github.com/pombreda/appinst/internal/paths"
)

const toolVersion = "1.0.0"

var (
	flagSpec    string
	flagMode    string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "appinst",
	Short: "Application menu and shortcut installer",
	Long: `appinst registers application launchers into the desktop's hierarchical
application menu, following a declarative YAML specification of menus,
sub-menus, and shortcuts.

It extends the XDG menu definition file (merging safely with anything a
previous run or the desktop environment left there), writes .directory
entries for every menu level, and emits .desktop launcher entries for both
GNOME and KDE so each shell shows the same shortcut set exactly once.`,
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install menus and shortcuts from a spec file",
	Long: `Install the menus and shortcuts described by a YAML spec file.

Examples:
  appinst install --spec menus.yaml
  appinst install --spec menus.yaml --mode system
  appinst install --spec menus.yaml --verbose`,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVarP(&flagSpec, "spec", "s", "", "Path to the YAML menu/shortcut spec file (required)")
	installCmd.Flags().StringVarP(&flagMode, "mode", "m", "auto",
		"Install mode: auto, user, or system.\n"+
			"auto selects system when running as root, user otherwise.\n"+
			"user installs under $XDG_DATA_HOME and $XDG_CONFIG_HOME;\n"+
			"system installs under /usr/share and /etc/xdg.")
	installCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	_ = installCmd.MarkFlagRequired("spec")

	rootCmd.AddCommand(installCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runInstall(cmd *cobra.Command, args []string) error {
	logger := log.New(os.Stderr)
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	logger.Info("appinst", "version", toolVersion)

	sf, err := model.LoadSpecFile(flagSpec)
	if err != nil {
		return err
	}

	layout, err := paths.Resolve(paths.Mode(flagMode))
	if err != nil {
		return err
	}
	logger.Debug("resolved layout",
		"mode", layout.Mode, "data", layout.DataDir, "conf", layout.ConfDir)

	installer := install.New(layout, logger)
	if err := installer.Install(sf.Menus, sf.Shortcuts); err != nil {
		return fmt.Errorf("installation failed: %w", err)
	}
	return nil
}
