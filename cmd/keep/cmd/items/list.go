package items

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"keep/cmd/keep/cmd/shared"
	"keep/internal/domain/view"
)

var listSearch string

var ListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Список записей",
	Long: `Список записей, от последних изменений к старым.

Флаг --search оставляет записи, в названии которых есть подстрока
(с учетом регистра).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := shared.App(cmd)
		if err != nil {
			return err
		}
		svc, err := shared.Vault(cmd)
		if err != nil {
			return err
		}

		c, err := svc.List(cmd.Context())
		if err != nil {
			return shared.UserError(err)
		}
		rows := app.Projector().Project(c, view.ModeView, listSearch)

		if shared.JSONOutput {
			return shared.PrintJSON(cmd, rows)
		}
		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Записи не найдены")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tТип\tНазвание\tИзменено\t\n")
		for _, row := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
				row.ID,
				row.Type.DisplayName(),
				truncate(row.Title, 40),
				row.Changed.Local().Format("2006-01-02 15:04"),
			)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nВсего записей: %d\n", len(rows))
		return nil
	},
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}

func init() {
	ListCmd.Flags().StringVarP(&listSearch, "search", "s", "", "поиск по названию")
}
