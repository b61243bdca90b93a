package cli

import (
	"github.com/spf13/cobra"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/prefs"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/refdata"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/validate"
)

func newValidateCmd() *cobra.Command {
	var (
		file      string
		fieldName string
		value     string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the document, or a single field value",
		Long:  "Validate runs the whole-document gate used before save and export. With --field and --value it instead checks one field value against the reference-data catalogs (or, for binding fields, the document's entity ids) and prints suggestions for near misses.",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(file)
			if err != nil {
				return err
			}

			if fieldName != "" {
				catalogs, err := openRefdata(cmd)
				if err != nil {
					return err
				}
				v := validate.NewFieldValidator(catalogs)
				result, err := v.ValidateField(cmd.Context(), fieldName, value, doc.Tree())
				if err != nil {
					return err
				}
				store, storeErr := prefs.NewStore("")
				if result.Valid {
					// An accepted value feeds the suggestion ranking of
					// later runs.
					if storeErr == nil {
						_ = store.RecordUsage(fieldName, value)
					}
					printSuccess("%s = %q is valid", fieldName, value)
					return nil
				}
				printError("%s", result.Message)
				for _, s := range rankedSuggestions(store, fieldName, result.Suggestions) {
					printDetail("did you mean %s?", s)
				}
				return nil
			}

			ok, issues := validate.ValidateDocument(doc.Tree())
			if ok {
				printSuccess("document is valid")
				return nil
			}
			printError("document has %d issue(s)", len(issues))
			for _, issue := range issues {
				printDetail("%s", issue.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", defaultDocumentFile, "document file")
	cmd.Flags().StringVar(&fieldName, "field", "", "field name to validate (e.g. yield_type)")
	cmd.Flags().StringVar(&value, "value", "", "candidate value for --field")
	cmd.MarkFlagsRequiredTogether("field", "value")
	return cmd
}

// rankedSuggestions orders catalog suggestions by how often the user has
// accepted each value before. A nil store leaves the order untouched.
func rankedSuggestions(store *prefs.Store, field string, suggestions []string) []string {
	if store == nil {
		return suggestions
	}
	return store.RankByUsage(field, suggestions)
}

// openRefdata builds the catalog store for a command run: a catalog
// directory when configured, otherwise the backend gateway.
func openRefdata(cmd *cobra.Command) (*refdata.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if cfg.Server.RefdataDir != "" {
		return refdata.NewStore(refdata.NewDirSource(cfg.Server.RefdataDir)), nil
	}

	client, err := openGateway(cmd)
	if err != nil {
		return nil, err
	}
	return refdata.NewStore(client), nil
}
