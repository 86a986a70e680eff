package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"keep/cmd/keep/cmd/shared"
	"keep/internal/app/client/crypto"
)

var ChangePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Изменить мастер-пароль",
	Long: `Изменение мастер-пароля.

Сам мастер-ключ не меняется, поэтому записи не перешифровываются:
перешифровывается только файл ключа.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := shared.App(cmd)
		if err != nil {
			return err
		}

		oldPassword, err := shared.ReadPassword(cmd, "Текущий мастер-пароль: ")
		if err != nil {
			return err
		}
		newPassword, err := shared.ReadPassword(cmd, "Новый мастер-пароль: ")
		if err != nil {
			return err
		}
		confirm, err := shared.ReadPassword(cmd, "Повторите новый мастер-пароль: ")
		if err != nil {
			return err
		}
		if newPassword != confirm {
			return errors.New("пароли не совпадают")
		}
		if crypto.CheckPasswordStrength(newPassword) == crypto.PasswordWeak {
			fmt.Fprintln(cmd.ErrOrStderr(), shared.Warning("⚠️  Новый пароль слабый"))
		}

		if err := app.ChangeMasterPassword(oldPassword, newPassword); err != nil {
			return fmt.Errorf("ошибка смены пароля: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), shared.Success("✅ Мастер-пароль изменен"))
		return nil
	},
}
