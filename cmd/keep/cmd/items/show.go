package items

import (
	"fmt"

	"github.com/spf13/cobra"

	"keep/cmd/keep/cmd/shared"
	"keep/internal/domain/item"
	"keep/internal/domain/view"
)

var (
	showEdit   bool
	showReveal bool
)

// showOutput - запись в формате JSON
type showOutput struct {
	ID     string         `json:"id"`
	Type   item.Type      `json:"type"`
	Mode   string         `json:"mode"`
	Rows   []view.Row     `json:"rows"`
	Info   []view.InfoRow `json:"info,omitempty"`
	Chrome view.Chrome    `json:"chrome"`
}

var ShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Просмотреть запись",
	Long: `Просмотр записи по ID.

В режиме просмотра пустые поля скрываются, с флагом --edit показываются все
поля записи. Пароль и код безопасности скрыты без флага --reveal.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := shared.App(cmd)
		if err != nil {
			return err
		}
		svc, err := shared.Vault(cmd)
		if err != nil {
			return err
		}

		it, err := svc.Get(cmd.Context(), args[0])
		if err != nil {
			return shared.UserError(err)
		}

		mode := view.ModeView
		if showEdit {
			mode = view.ModeEdit
		}
		p := app.Projector()
		chrome := p.Chrome(mode)
		rows := p.DetailRows(it, mode)
		for i := range rows {
			rows[i].Text = display(rows[i].Key, rows[i].Text, showReveal)
		}

		out := showOutput{
			ID:     it.GetID(),
			Type:   it.GetType(),
			Mode:   mode.String(),
			Rows:   rows,
			Chrome: chrome,
		}
		if chrome.ShowInfo {
			out.Info = p.InfoRows(it)
		}
		if shared.JSONOutput {
			return shared.PrintJSON(cmd, out)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s  %s\n\n", shared.Bold(it.GetTitle()), shared.Faint(it.GetType().DisplayName()))
		for _, row := range rows {
			text := row.Text
			if text == "" {
				f, _ := item.Lookup(it.GetType(), row.Key)
				text = shared.Faint(view.Placeholder(f))
			}
			fmt.Fprintf(w, "%-18s %s\n", row.Label+":", text)
		}
		if len(out.Info) > 0 {
			fmt.Fprintln(w)
			for _, info := range out.Info {
				fmt.Fprintf(w, "%-18s %s\n", info.Label+":", shared.Faint(info.Text))
			}
		}

		fmt.Fprintln(w)
		switch chrome.Action {
		case view.ActionEdit:
			fmt.Fprintf(w, "[%s] keep item show %s --edit\n", chrome.ButtonTitle, it.GetID())
		case view.ActionDone:
			fmt.Fprintf(w, "keep item edit %s <поле> [значение]\n", it.GetID())
			fmt.Fprintf(w, "[%s] keep item show %s\n", chrome.ButtonTitle, it.GetID())
		}
		return nil
	},
}

func init() {
	ShowCmd.Flags().BoolVar(&showEdit, "edit", false, "режим правки: показать все поля")
	ShowCmd.Flags().BoolVar(&showReveal, "reveal", false, "показать пароль и код безопасности")
}
