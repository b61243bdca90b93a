package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/errors"
)

func newNewCmd() *cobra.Command {
	var (
		file string
		name string
	)

	cmd := &cobra.Command{
		Use:   "new <mod-id>",
		Short: "Create a new mod document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := errors.ValidateModID(id); err != nil {
				return err
			}
			if _, err := os.Stat(file); err == nil {
				return fmt.Errorf("%s already exists", file)
			}

			doc := document.New()
			meta := document.At("metadata")
			if err := doc.Set(meta.Key("id"), id); err != nil {
				return err
			}
			if err := doc.Set(meta.Key("version"), "1.0.0"); err != nil {
				return err
			}
			if name == "" {
				name = id
			}
			if err := doc.Set(meta.Key("name"), name); err != nil {
				return err
			}

			if err := writeDocument(file, doc); err != nil {
				return err
			}
			printSuccess("created %s", id)
			printFile(file)
			printDetail("next: civmod wizard --file %s, or civmod set metadata.description \"...\"", file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", defaultDocumentFile, "document file to create")
	cmd.Flags().StringVar(&name, "name", "", "display name (default: the mod id)")
	return cmd
}
