package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/preview"
)

func newPreviewCmd() *cobra.Command {
	var (
		file string
		out  string
		dot  bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the document's progression trees as a diagram",
		Long:  "Preview draws the progression trees (civic nodes and their prerequisite edges) as an SVG via Graphviz, or prints the DOT source with --dot.",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(file)
			if err != nil {
				return err
			}

			trees := preview.Trees(doc)
			if len(trees) == 0 {
				printWarning("document has no progression trees")
				return nil
			}

			dotSrc := preview.ToDOT(trees)
			if dot {
				fmt.Print(dotSrc)
				return nil
			}

			svg, err := preview.RenderSVG(cmd.Context(), dotSrc)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, svg, 0644); err != nil {
				return err
			}
			printSuccess("rendered %d tree(s)", len(trees))
			printFile(out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", defaultDocumentFile, "document file")
	cmd.Flags().StringVarP(&out, "out", "o", "progression.svg", "SVG output path")
	cmd.Flags().BoolVar(&dot, "dot", false, "print DOT source instead of rendering")
	return cmd
}
