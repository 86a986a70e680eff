package items

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"keep/cmd/keep/cmd/shared"
	"keep/internal/domain/input"
	"keep/internal/domain/item"
	"keep/internal/domain/view"
)

var (
	addType   string
	addFields []string
)

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Добавить запись",
	Long: `Добавление новой записи.

Типы записей: password, card, bankAccount, note.
Поля можно передать флагами -f поле=значение, иначе они будут запрошены.

Пример:
  keep item add -t password -f title=Gmail -f password=secret -f email=me@gmail.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := shared.App(cmd)
		if err != nil {
			return err
		}
		svc, err := shared.Vault(cmd)
		if err != nil {
			return err
		}

		t, err := item.ParseType(addType)
		if err != nil {
			return err
		}

		session := app.NewSession()
		defer session.Close()
		if err := session.SelectType(t); err != nil {
			return err
		}

		if len(addFields) > 0 {
			err = fillFromFlags(session, t)
		} else {
			p := app.Projector()
			err = fillInteractive(cmd, session, p.AddRows(t), p.Chrome(view.ModeAdd))
		}
		if err != nil {
			return err
		}

		it, err := svc.Create(cmd.Context(), session.State())
		if err != nil {
			return shared.UserError(err)
		}

		if shared.JSONOutput {
			return shared.PrintJSON(cmd, it)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", shared.Success("✅ Запись создана:"), it.GetTitle())
		fmt.Fprintf(cmd.OutOrStdout(), "   ID: %s\n", it.GetID())
		return nil
	},
}

func fillFromFlags(session *input.Session, t item.Type) error {
	for _, raw := range addFields {
		key, value, err := parseAssignment(raw)
		if err != nil {
			return err
		}
		f, ok := item.Lookup(t, key)
		if !ok {
			return fmt.Errorf("поле %q не относится к типу %s", key, t)
		}
		if f.Kind == item.KindLongNumber {
			err = typeLongNumber(session, key, value)
		} else {
			err = session.Set(key, value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func fillInteractive(cmd *cobra.Command, session *input.Session, rows []view.Row, chrome view.Chrome) error {
	out := cmd.ErrOrStderr()
	current := session.State().Type
	fmt.Fprintln(out, shared.Bold("Новая запись: "+current.DisplayName()))
	others := make([]string, 0, 3)
	for _, t := range item.OtherTypes(current) {
		others = append(others, string(t))
	}
	fmt.Fprintln(out, shared.Faint(fmt.Sprintf("[%s] keep item add -t %s", chrome.ButtonTitle, strings.Join(others, "|"))))

	for _, row := range rows {
		f := item.Field{Key: row.Key, Kind: row.Kind, Required: row.Required, Label: row.Label}
		label := view.Placeholder(f)
		if row.Kind == item.KindMultiline {
			label = fmt.Sprintf("%s [до %d символов]", label, item.MultilineLimit)
		}

		var (
			text string
			err  error
		)
		if row.Key == item.FieldPassword {
			text, err = shared.ReadPassword(cmd, label+": ")
		} else {
			text, err = shared.Prompt(cmd, label)
		}
		if err != nil {
			return err
		}

		if row.Kind == item.KindMultiline && item.Remaining(text) < 0 {
			fmt.Fprintln(out, shared.Warning(fmt.Sprintf("Текст обрезан до %d символов", item.MultilineLimit)))
		}
		if row.Kind == item.KindLongNumber {
			err = typeLongNumber(session, row.Key, text)
		} else {
			err = session.Set(row.Key, text)
		}
		if err != nil {
			return err
		}
	}

	if !session.CanSave() {
		fmt.Fprintln(out, shared.Warning("Не заполнены обязательные поля"))
	}
	return nil
}

func init() {
	AddCmd.Flags().StringVarP(&addType, "type", "t", string(item.DefaultType), "тип записи (password, card, bankAccount, note)")
	AddCmd.Flags().StringArrayVarP(&addFields, "field", "f", nil, "значение поля в виде поле=значение")
}
