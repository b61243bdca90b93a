package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/prefs"
)

func newWizardCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Create or extend a mod through the guided wizard",
		Long:  "Wizard walks through five steps (basic info, civilization, units and buildings, modifiers and traditions, review) and commits the result to the document file on finish.",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := document.New()
			if _, err := os.Stat(file); err == nil {
				loaded, err := readDocument(file)
				if err != nil {
					return err
				}
				doc = loaded
			}

			model := newWizardModel(doc)
			program := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			final, err := program.Run()
			if err != nil {
				return err
			}

			m, ok := final.(wizardModel)
			if !ok || !m.wiz.Done() {
				printInfo("wizard cancelled, nothing written")
				return nil
			}

			if err := writeDocument(file, doc); err != nil {
				return err
			}

			if store, err := prefs.NewStore(""); err == nil {
				_ = store.SetLastMode(prefs.ModeGuided)
			}

			id := doc.GetString(document.At("metadata").Key("id"))
			printSuccess("created %s", id)
			printFile(file)
			printDetail("next: civmod validate --file %s, then civmod export", file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", defaultDocumentFile, "document file to write")
	return cmd
}

// recordExpertMode is called by the path commands so the editor
// remembers which mode was used last.
func recordExpertMode() {
	if store, err := prefs.NewStore(""); err == nil {
		_ = store.SetLastMode(prefs.ModeExpert)
	}
}
