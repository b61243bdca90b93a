// Package cli implements the civmod command-line interface.
//
// The CLI has two editing modes. Guided mode (`civmod wizard`) walks
// through a five step terminal form producing a complete starter mod.
// Expert mode addresses the document directly: `get`, `set`, `append`
// and `remove` operate on dotted paths against a working file.
//
// The remaining commands cover the document lifecycle: `new`,
// `validate`, `export`, `build`, `preview`, `catalogs`, `cache`, and
// `serve` for running the backend service.
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Phlair/civ7-modding-tools-sub000/internal/config"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/buildinfo"
)

var flagConfig string

// loadConfig resolves the effective configuration for a command run.
func loadConfig() (config.Config, error) {
	return config.Load(flagConfig)
}

// Execute runs the civmod CLI and returns an error if any command
// fails. Logging defaults to info level; --verbose (-v) enables debug.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "civmod",
		Short:        "civmod edits Civilization VII mod definitions",
		Long:         `civmod is a visual-editor backend and CLI for authoring Civilization VII mod definition files: a guided wizard, direct path-based editing, validation against game reference data, and export/build tooling.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to civmod.toml (default: ./civmod.toml)")

	root.AddCommand(newNewCmd())
	root.AddCommand(newWizardCmd())
	root.AddCommand(newGetCmd())
	root.AddCommand(newSetCmd())
	root.AddCommand(newAppendCmd())
	root.AddCommand(newRemoveCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newBuildCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newCatalogsCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}
