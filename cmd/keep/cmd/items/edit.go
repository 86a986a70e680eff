package items

import (
	"fmt"

	"github.com/spf13/cobra"

	"keep/cmd/keep/cmd/shared"
	"keep/internal/domain/input"
	"keep/internal/domain/item"
)

var EditCmd = &cobra.Command{
	Use:   "edit [id] [field] [value]",
	Short: "Изменить поле записи",
	Long: `Изменение одного поля записи.

Если значение не передано, оно будет запрошено. Пустое значение
удаляет необязательное поле; обязательное поле очистить нельзя.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := shared.Vault(cmd)
		if err != nil {
			return err
		}

		it, err := svc.Get(cmd.Context(), args[0])
		if err != nil {
			return shared.UserError(err)
		}
		editor, err := input.NewFieldEditor(it, item.FieldKey(args[1]))
		if err != nil {
			return fmt.Errorf("поле %q не относится к типу %s", args[1], it.GetType())
		}

		var text string
		if len(args) == 3 {
			text = args[2]
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", shared.Faint("Текущее значение"), display(editor.Key, editor.Original, false))
			if editor.Key == item.FieldPassword {
				text, err = shared.ReadPassword(cmd, editor.Key.Label()+": ")
			} else {
				text, err = shared.Prompt(cmd, editor.Key.Label())
			}
			if err != nil {
				return err
			}
		}

		f, _ := item.Lookup(it.GetType(), editor.Key)
		if f.Kind == item.KindDate {
			if text, err = item.ParseDateInput(text); err != nil {
				return err
			}
		}

		updated, err := svc.EditField(cmd.Context(), it.GetID(), editor.WithText(text))
		if err != nil {
			return shared.UserError(err)
		}

		if shared.JSONOutput {
			return shared.PrintJSON(cmd, updated)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s.%s\n", shared.Success("✅ Поле обновлено:"), updated.GetTitle(), editor.Key)
		return nil
	},
}
