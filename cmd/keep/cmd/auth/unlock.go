package auth

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"keep/cmd/keep/cmd/shared"
)

var UnlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Разблокировать мастер-ключ",
	Long: `Разблокирует мастер-ключ мастер-паролем.

Ключ остается разблокированным до keep auth lock или до истечения
времени сессии (SESSION_TTL).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := shared.App(cmd)
		if err != nil {
			return err
		}
		if app.IsMasterKeyUnlocked() {
			fmt.Fprintln(cmd.OutOrStdout(), "Мастер-ключ уже разблокирован.")
			return nil
		}

		password, err := shared.ReadPassword(cmd, "Мастер-пароль: ")
		if err != nil {
			return err
		}
		if err := app.UnlockMasterKey(password); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), shared.Success("✅ Мастер-ключ разблокирован"))
		if ttl := app.Config().SessionTTL; ttl > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), shared.Faint(fmt.Sprintf("Сессия истечет через %s", ttl.Round(time.Second))))
		}
		return nil
	},
}

var LockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Заблокировать мастер-ключ",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := shared.App(cmd)
		if err != nil {
			return err
		}
		if err := app.LockMasterKey(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), shared.Success("🔒 Мастер-ключ заблокирован"))
		return nil
	},
}

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Состояние хранилища",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := shared.App(cmd)
		if err != nil {
			return err
		}
		st := app.Status()
		if shared.JSONOutput {
			return shared.PrintJSON(cmd, st)
		}

		out := cmd.OutOrStdout()
		if !st.Initialized {
			fmt.Fprintln(out, "Хранилище не инициализировано. Выполните: keep init")
			return nil
		}
		lock := "заблокирован"
		if st.Unlocked {
			lock = "разблокирован"
		}
		fmt.Fprintf(out, "Мастер-ключ:  %s (%s)\n", lock, st.KeyAlgorithm)
		fmt.Fprintf(out, "Хранилище:    %s\n", st.StoreDriver)
		fmt.Fprintf(out, "Создано:      %s\n", st.InitializedAt.Local().Format("2006-01-02 15:04"))
		return nil
	},
}
