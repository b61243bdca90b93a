package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
)

// Expert-mode commands operating on dotted document paths, e.g.
//
//	civmod set metadata.name "Kingdom of Gondor"
//	civmod get units.0.unit.base_moves
//	civmod append units '{"id":"unit_rangers","unit_type":"UNIT_RANGERS"}'
//	civmod remove units 0

func newGetCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Print the value at a document path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(file)
			if err != nil {
				return err
			}

			v, ok := doc.Get(document.Parse(args[0]))
			if !ok {
				printWarning("nothing at %s", args[0])
				return nil
			}
			out, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", defaultDocumentFile, "document file")
	return cmd
}

func newSetCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Set the value at a document path",
		Long:  "Set the value at a document path. The value is parsed as JSON when possible, otherwise taken as a string. Missing intermediate containers are created.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(file)
			if err != nil {
				return err
			}

			if err := doc.Set(document.Parse(args[0]), parseValue(args[1])); err != nil {
				return err
			}
			if err := writeDocument(file, doc); err != nil {
				return err
			}
			recordExpertMode()
			printSuccess("set %s", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", defaultDocumentFile, "document file")
	return cmd
}

func newAppendCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "append <path> <value>",
		Short: "Append a value to the list at a document path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(file)
			if err != nil {
				return err
			}

			index, err := doc.Append(document.Parse(args[0]), parseValue(args[1]))
			if err != nil {
				return err
			}
			if err := writeDocument(file, doc); err != nil {
				return err
			}
			recordExpertMode()
			printSuccess("appended %s[%d]", args[0], index)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", defaultDocumentFile, "document file")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "remove <path> <index>",
		Short: "Remove the element at an index from the list at a document path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index %q is not a number", args[1])
			}

			doc, err := readDocument(file)
			if err != nil {
				return err
			}
			if err := doc.Remove(document.Parse(args[0]), index); err != nil {
				return err
			}
			if err := writeDocument(file, doc); err != nil {
				return err
			}
			recordExpertMode()
			printSuccess("removed %s[%d]", args[0], index)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", defaultDocumentFile, "document file")
	return cmd
}
