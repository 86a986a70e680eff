package item

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

type Type string

const (
	TypePassword    Type = "password"
	TypeCard        Type = "card"
	TypeBankAccount Type = "bankAccount"
	TypeNote        Type = "note"
)

// DefaultType - тип, с которого начинается экран добавления
const DefaultType = TypePassword

// Types возвращает все типы в порядке отображения.
func Types() []Type {
	return []Type{TypePassword, TypeBankAccount, TypeCard, TypeNote}
}

// OtherTypes возвращает список типов для переключателя, без текущего.
func OtherTypes(current Type) []Type {
	out := make([]Type, 0, 3)
	for _, t := range Types() {
		if t != current {
			out = append(out, t)
		}
	}
	return out
}

// Schema реализует huma.SchemaProvider.
func (Type) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type: "string",
		Enum: []any{
			string(TypePassword),
			string(TypeCard),
			string(TypeBankAccount),
			string(TypeNote),
		},
		Description: "Тип хранимой записи",
		Examples:    []any{TypePassword},
	}
}

// Validate проверяет, что тип известен.
func (t Type) Validate() error {
	switch t {
	case TypePassword, TypeCard, TypeBankAccount, TypeNote:
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownType, t)
}

// String возвращает строковое представление типа.
func (t Type) String() string {
	return string(t)
}

// DisplayName возвращает человекочитаемое название типа.
func (t Type) DisplayName() string {
	switch t {
	case TypePassword:
		return "Password"
	case TypeCard:
		return "Card"
	case TypeBankAccount:
		return "Bank Account"
	case TypeNote:
		return "Note"
	default:
		return "Unknown"
	}
}

// ParseType разбирает тип из пользовательского ввода.
// Принимает как имя типа, так и короткие алиасы CLI.
func ParseType(s string) (Type, error) {
	switch s {
	case "password", "login", "pw":
		return TypePassword, nil
	case "card":
		return TypeCard, nil
	case "bankAccount", "bank-account", "bank", "account":
		return TypeBankAccount, nil
	case "note", "etc", "text":
		return TypeNote, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownType, s)
}
