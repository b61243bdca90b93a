package cli

import (
	"github.com/spf13/cobra"
)

func newCatalogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogs [name]",
		Short: "List reference-data catalogs, or show one catalog's entries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openRefdata(cmd)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				names, err := store.Names(cmd.Context())
				if err != nil {
					return err
				}
				for _, name := range names {
					printInfo("%s", name)
				}
				return nil
			}

			catalog, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, entry := range catalog {
				if entry.Name != "" {
					printKeyValue(entry.Name, entry.ID)
				} else {
					printInfo("%s", entry.ID)
				}
			}
			printDetail("%d entries", len(catalog))
			return nil
		},
	}
	return cmd
}
