package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"keep/cmd/keep/cmd/shared"
	"keep/internal/app/client/crypto"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Инициализировать хранилище Keep",
	Long: `Команда init выполняет первоначальную настройку:
	1. Создает мастер-ключ для шифрования данных
	2. Создает хранилище записей

Мастер-ключ защищает все ваши данные. Без мастер-пароля восстановить
данные невозможно.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.IsInitialized() {
			fmt.Fprintln(cmd.OutOrStdout(), "Хранилище уже инициализировано.")
			return nil
		}

		password, err := shared.ReadPassword(cmd, "Введите мастер-пароль: ")
		if err != nil {
			return err
		}
		confirm, err := shared.ReadPassword(cmd, "Повторите мастер-пароль: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return errors.New("пароли не совпадают")
		}
		if password == "" {
			return errors.New("мастер-пароль не может быть пустым")
		}

		if strength := crypto.CheckPasswordStrength(password); strength != crypto.PasswordStrong {
			fmt.Fprintln(cmd.ErrOrStderr(), shared.Warning(
				fmt.Sprintf("⚠️  Сложность пароля: %s. Рекомендуется не меньше 12 символов разных классов.", strength)))
		}

		if err := app.InitMasterKey(cmd.Context(), password); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), shared.Success("✅ Хранилище инициализировано"))
		fmt.Fprintln(cmd.OutOrStdout(), "Создайте первую запись: keep item add")
		return nil
	},
}
