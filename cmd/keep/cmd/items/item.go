package items

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"keep/internal/app/client/crypto"
	"keep/internal/domain/input"
	"keep/internal/domain/item"
)

// ItemCmd - родительская команда для операций с записями
var ItemCmd = &cobra.Command{
	Use:     "item",
	Aliases: []string{"items"},
	Short:   "Управление записями",
	Long:    `Добавление, просмотр, правка и удаление записей хранилища.`,
}

// sensitive - поля, которые скрываются без --reveal
var sensitive = map[item.FieldKey]bool{
	item.FieldPassword:     true,
	item.FieldSecurityCode: true,
}

func display(key item.FieldKey, text string, reveal bool) string {
	if sensitive[key] && !reveal {
		return crypto.MaskSensitiveData(text)
	}
	return text
}

// parseAssignment разбирает флаг вида key=value
func parseAssignment(s string) (item.FieldKey, string, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("ожидается поле=значение, получено %q", s)
	}
	return item.FieldKey(key), value, nil
}

// typeLongNumber вводит номер карты посимвольно, как с клавиатуры,
// чтобы номер получил группировку поля.
func typeLongNumber(session *input.Session, key item.FieldKey, number string) error {
	runes := []rune(item.StripSeparators(number))
	shown := ""
	for _, r := range runes {
		next, err := session.Type(key, shown+string(r))
		if err != nil {
			return err
		}
		shown = next
	}
	if len(runes) == 0 {
		return session.Set(key, "")
	}
	return nil
}
