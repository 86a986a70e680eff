package item

import (
	"time"
)

// Item - запись хранилища. Закрытый набор вариантов:
// *Password, *Card, *BankAccount, *Note.
type Item interface {
	GetID() string
	GetType() Type
	GetTitle() string
	GetDateCreated() time.Time
	GetDateModified() *time.Time
	// Text возвращает текст поля; ok == false, если поле отсутствует
	// или не относится к типу записи.
	Text(key FieldKey) (string, bool)
	Validate() error

	isItem()
}

// Base - общие поля всех записей
type Base struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	DateCreated  time.Time  `json:"dateCreated"`
	DateModified *time.Time `json:"dateModified"`
}

func (b *Base) GetID() string               { return b.ID }
func (b *Base) GetTitle() string            { return b.Title }
func (b *Base) GetDateCreated() time.Time   { return b.DateCreated }
func (b *Base) GetDateModified() *time.Time { return b.DateModified }

// LastChanged возвращает DateModified, а если его нет - DateCreated.
func LastChanged(it Item) time.Time {
	if m := it.GetDateModified(); m != nil {
		return *m
	}
	return it.GetDateCreated()
}

func (b *Base) validate(t Type) error {
	if b.ID == "" {
		return ErrInvalidPayload
	}
	if b.Title == "" {
		return missing(t, FieldTitle)
	}
	if b.DateModified != nil && b.DateModified.Before(b.DateCreated) {
		return ErrInvalidPayload
	}
	return nil
}

// Password - логин и пароль
type Password struct {
	Base
	Email    *string `json:"email"`
	Username *string `json:"username"`
	Password string  `json:"password"`
	Memo     *string `json:"memo"`
}

func (*Password) isItem()       {}
func (*Password) GetType() Type { return TypePassword }
func (p *Password) Validate() error {
	if err := p.validate(TypePassword); err != nil {
		return err
	}
	if p.Password == "" {
		return missing(TypePassword, FieldPassword)
	}
	return nil
}

func (p *Password) Text(key FieldKey) (string, bool) {
	switch key {
	case FieldTitle:
		return p.Title, true
	case FieldPassword:
		return p.Password, true
	case FieldEmail:
		return deref(p.Email)
	case FieldUsername:
		return deref(p.Username)
	case FieldMemo:
		return deref(p.Memo)
	}
	return "", false
}

// Card - платежная карта.
// StartFrom и ExpireBy хранятся строкой ISO-8601, а не как time.Time:
// так записаны уже существующие данные.
type Card struct {
	Base
	LongNumber   string  `json:"longNumber"`
	StartFrom    *string `json:"startFrom"`
	ExpireBy     *string `json:"expireBy"`
	SecurityCode *string `json:"securityCode"`
	Memo         *string `json:"memo"`
}

func (*Card) isItem()       {}
func (*Card) GetType() Type { return TypeCard }
func (c *Card) Validate() error {
	if err := c.validate(TypeCard); err != nil {
		return err
	}
	if c.LongNumber == "" {
		return missing(TypeCard, FieldLongNumber)
	}
	return nil
}

func (c *Card) Text(key FieldKey) (string, bool) {
	switch key {
	case FieldTitle:
		return c.Title, true
	case FieldLongNumber:
		return c.LongNumber, true
	case FieldStartFrom:
		return deref(c.StartFrom)
	case FieldExpireBy:
		return deref(c.ExpireBy)
	case FieldSecurityCode:
		return deref(c.SecurityCode)
	case FieldMemo:
		return deref(c.Memo)
	}
	return "", false
}

// BankAccount - банковский счет
type BankAccount struct {
	Base
	SortCode      *string `json:"sortCode"`
	AccountNumber string  `json:"accountNumber"`
	Memo          *string `json:"memo"`
}

func (*BankAccount) isItem()       {}
func (*BankAccount) GetType() Type { return TypeBankAccount }
func (b *BankAccount) Validate() error {
	if err := b.validate(TypeBankAccount); err != nil {
		return err
	}
	if b.AccountNumber == "" {
		return missing(TypeBankAccount, FieldAccountNumber)
	}
	return nil
}

func (b *BankAccount) Text(key FieldKey) (string, bool) {
	switch key {
	case FieldTitle:
		return b.Title, true
	case FieldAccountNumber:
		return b.AccountNumber, true
	case FieldSortCode:
		return deref(b.SortCode)
	case FieldMemo:
		return deref(b.Memo)
	}
	return "", false
}

// Note - произвольная заметка
type Note struct {
	Base
	Memo string `json:"memo"`
}

func (*Note) isItem()       {}
func (*Note) GetType() Type { return TypeNote }
func (n *Note) Validate() error {
	if err := n.validate(TypeNote); err != nil {
		return err
	}
	if n.Memo == "" {
		return missing(TypeNote, FieldMemo)
	}
	return nil
}

func (n *Note) Text(key FieldKey) (string, bool) {
	switch key {
	case FieldTitle:
		return n.Title, true
	case FieldMemo:
		return n.Memo, true
	}
	return "", false
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

func missing(t Type, key FieldKey) error {
	return &FieldError{Type: t, Key: key, Err: ErrMissingField}
}

// FieldError - ошибка конкретного поля
type FieldError struct {
	Type Type
	Key  FieldKey
	Err  error
}

func (e *FieldError) Error() string {
	return e.Type.String() + "." + e.Key.String() + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
