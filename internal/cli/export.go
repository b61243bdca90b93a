package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/export"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/gateway"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/httputil"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/validate"
)

func newExportCmd() *cobra.Command {
	var (
		file   string
		outDir string
		remote bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the document as a .modinfo manifest plus data files",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			doc, err := readDocument(file)
			if err != nil {
				return err
			}
			if err := gateDocument(doc); err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.OutputDir
			}

			track := newProgress(logger)
			if remote {
				client, err := openGateway(cmd)
				if err != nil {
					return err
				}
				if err := client.ExportToDir(cmd.Context(), doc, outDir); err != nil {
					return err
				}
			} else if err := export.ExportToDir(doc, outDir); err != nil {
				return err
			}
			track.done("Exported")

			files, err := export.Files(doc)
			if err != nil {
				return err
			}
			printSuccess("exported %s", doc.GetString(document.At("metadata").Key("id")))
			for _, f := range files {
				printFile(filepath.Join(outDir, filepath.FromSlash(f.Name)))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", defaultDocumentFile, "document file")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: output_dir from config)")
	cmd.Flags().BoolVar(&remote, "remote", false, "export through the backend service")
	return cmd
}

func newBuildCmd() *cobra.Command {
	var (
		file   string
		out    string
		remote bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Package the document as a zipped build archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			doc, err := readDocument(file)
			if err != nil {
				return err
			}
			if err := gateDocument(doc); err != nil {
				return err
			}

			id := doc.GetString(document.At("metadata").Key("id"))
			if out == "" {
				out = id + ".zip"
			}

			track := newProgress(logger)
			var data []byte
			if remote {
				client, err := openGateway(cmd)
				if err != nil {
					return err
				}
				data, err = client.Build(cmd.Context(), doc)
				if err != nil {
					return err
				}
			} else {
				data, err = export.Build(doc)
				if err != nil {
					return err
				}
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return err
			}
			track.done("Built")

			printSuccess("built %s", id)
			printFile(out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", defaultDocumentFile, "document file")
	cmd.Flags().StringVarP(&out, "out", "o", "", "archive path (default: <mod-id>.zip)")
	cmd.Flags().BoolVar(&remote, "remote", false, "build through the backend service")
	return cmd
}

// gateDocument runs the whole-document gate and prints the itemized
// refusal on failure.
func gateDocument(doc *document.Store) error {
	ok, issues := validate.ValidateDocument(doc.Tree())
	if ok {
		return nil
	}
	printError("document has %d issue(s); fix them before exporting", len(issues))
	for _, issue := range issues {
		printDetail("%s", issue.Message)
	}
	return &gateway.ValidationError{Issues: issues}
}

// openGateway builds a backend client from the configuration.
func openGateway(cmd *cobra.Command) (*gateway.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	cache, err := httputil.NewCache(cfg.CacheDir, cfg.CacheTTL)
	if err != nil {
		return nil, err
	}
	return gateway.NewClient(cfg.BackendURL, cache), nil
}
