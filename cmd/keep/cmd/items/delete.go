package items

import (
	"fmt"

	"github.com/spf13/cobra"

	"keep/cmd/keep/cmd/shared"
)

var DeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Удалить запись",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := shared.Vault(cmd)
		if err != nil {
			return err
		}
		if err := svc.Delete(cmd.Context(), args[0]); err != nil {
			return shared.UserError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), shared.Success("✅ Запись удалена"))
		return nil
	},
}
