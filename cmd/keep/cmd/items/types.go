package items

import (
	"fmt"

	"github.com/spf13/cobra"

	"keep/cmd/keep/cmd/shared"
	"keep/internal/domain/item"
	"keep/internal/domain/view"
)

var typesSchema bool

// typeOutput - описание типа записи для --json
type typeOutput struct {
	Type   item.Type    `json:"type"`
	Name   string       `json:"name"`
	Fields []item.Field `json:"fields"`
}

var TypesCmd = &cobra.Command{
	Use:   "types",
	Short: "Типы записей и их поля",
	Long: `Показывает типы записей и их поля.

С флагом --schema печатает JSON Schema хранимой коллекции.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if typesSchema {
			doc, err := item.SchemaDocument()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(doc))
			return err
		}

		types := make([]typeOutput, 0, len(item.Types()))
		for _, t := range item.Types() {
			types = append(types, typeOutput{Type: t, Name: t.DisplayName(), Fields: item.FieldsFor(t)})
		}
		if shared.JSONOutput {
			return shared.PrintJSON(cmd, types)
		}

		w := cmd.OutOrStdout()
		for _, t := range types {
			fmt.Fprintf(w, "%s (%s)\n", shared.Bold(t.Name), t.Type)
			for _, f := range t.Fields {
				fmt.Fprintf(w, "  %-15s %s\n", f.Key, view.Placeholder(f))
			}
		}
		return nil
	},
}

func init() {
	TypesCmd.Flags().BoolVar(&typesSchema, "schema", false, "вывести JSON Schema коллекции")
}
