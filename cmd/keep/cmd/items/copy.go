package items

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"keep/cmd/keep/cmd/shared"
	"keep/internal/domain/item"
)

var CopyCmd = &cobra.Command{
	Use:   "copy [id] [field]",
	Short: "Скопировать поле записи в буфер обмена",
	Long: `Копирует значение поля записи в буфер обмена.
По умолчанию копируется пароль.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := shared.Vault(cmd)
		if err != nil {
			return err
		}
		it, err := svc.Get(cmd.Context(), args[0])
		if err != nil {
			return shared.UserError(err)
		}

		key := item.FieldPassword
		if len(args) == 2 {
			key = item.FieldKey(args[1])
		}
		text, ok := it.Text(key)
		if !ok || text == "" {
			return fmt.Errorf("у записи нет поля %q", key)
		}
		if key == item.FieldLongNumber {
			text = item.StripSeparators(text)
		}

		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("ошибка записи в буфер обмена: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "📋 %s скопировано в буфер обмена\n", key.Label())
		return nil
	},
}
