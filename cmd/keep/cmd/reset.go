package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"keep/cmd/keep/cmd/shared"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Удалить все записи",
	Long:  `Удаляет всю коллекцию записей из хранилища. Мастер-ключ сохраняется.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := shared.Vault(cmd)
		if err != nil {
			return err
		}

		if !resetYes {
			answer, err := shared.Prompt(cmd, "Удалить все записи? [y/N]")
			if err != nil {
				return err
			}
			if !strings.EqualFold(strings.TrimSpace(answer), "y") {
				return errors.New("отменено")
			}
		}

		if err := svc.Reset(cmd.Context()); err != nil {
			return shared.UserError(err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), shared.Success("✅ Все записи удалены"))
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "не спрашивать подтверждение")
}
