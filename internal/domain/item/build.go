package item

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Factory - фабрика записей: выдает id и время создания/изменения.
type Factory struct {
	now   func() time.Time
	newID func() string
}

// Option настраивает фабрику
type Option func(*Factory)

// WithClock подменяет источник времени (в тестах).
func WithClock(now func() time.Time) Option {
	return func(f *Factory) {
		f.now = now
	}
}

// WithIDGenerator подменяет генератор идентификаторов.
func WithIDGenerator(newID func() string) Option {
	return func(f *Factory) {
		f.newID = newID
	}
}

// NewFactory создает новую фабрику
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Now возвращает текущее время фабрики в UTC.
func (f *Factory) Now() time.Time {
	return f.now().UTC()
}

// New создает запись нового типа из накопленных значений полей.
func (f *Factory) New(t Type, values map[FieldKey]string) (Item, error) {
	return Build(t, values, f.newID(), f.Now())
}

// Patch меняет одно поле записи и проставляет дату изменения.
func (f *Factory) Patch(it Item, key FieldKey, text string) (Item, error) {
	return Patch(it, key, text, f.Now())
}

// Build собирает запись типа t. Пустые необязательные поля становятся
// отсутствующими, пустые обязательные дают ошибку.
func Build(t Type, values map[FieldKey]string, id string, now time.Time) (Item, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	for key := range values {
		if _, ok := Lookup(t, key); !ok {
			return nil, &FieldError{Type: t, Key: key, Err: ErrUnknownField}
		}
	}

	base := Base{ID: id, DateCreated: now}
	var it Item
	switch t {
	case TypePassword:
		it = &Password{Base: base}
	case TypeCard:
		it = &Card{Base: base}
	case TypeBankAccount:
		it = &BankAccount{Base: base}
	case TypeNote:
		it = &Note{Base: base}
	}

	for _, f := range FieldsFor(t) {
		if err := assign(it, f, values[f.Key]); err != nil {
			return nil, err
		}
	}
	if err := it.Validate(); err != nil {
		return nil, fmt.Errorf("build %s: %w", t, err)
	}
	return it, nil
}

// Patch возвращает копию записи с новым значением поля key.
// DateModified становится max(now, DateCreated). Исходная запись не меняется.
func Patch(it Item, key FieldKey, text string, now time.Time) (Item, error) {
	f, ok := Lookup(it.GetType(), key)
	if !ok {
		return nil, &FieldError{Type: it.GetType(), Key: key, Err: ErrUnknownField}
	}
	out := clone(it)
	if err := assign(out, f, text); err != nil {
		return nil, err
	}
	if now.Before(out.GetDateCreated()) {
		now = out.GetDateCreated()
	}
	stamp(out, now)
	return out, nil
}

// Clone возвращает поверхностную копию записи.
func Clone(it Item) Item {
	return clone(it)
}

func clone(it Item) Item {
	switch v := it.(type) {
	case *Password:
		c := *v
		return &c
	case *Card:
		c := *v
		return &c
	case *BankAccount:
		c := *v
		return &c
	case *Note:
		c := *v
		return &c
	}
	return it
}

func stamp(it Item, at time.Time) {
	switch v := it.(type) {
	case *Password:
		v.DateModified = &at
	case *Card:
		v.DateModified = &at
	case *BankAccount:
		v.DateModified = &at
	case *Note:
		v.DateModified = &at
	}
}

func assign(it Item, f Field, text string) error {
	text = Normalize(f.Kind, text)
	if f.Required && text == "" {
		return missing(it.GetType(), f.Key)
	}
	var opt *string
	if text != "" {
		opt = &text
	}

	switch v := it.(type) {
	case *Password:
		switch f.Key {
		case FieldTitle:
			v.Title = text
		case FieldPassword:
			v.Password = text
		case FieldEmail:
			v.Email = opt
		case FieldUsername:
			v.Username = opt
		case FieldMemo:
			v.Memo = opt
		}
	case *Card:
		switch f.Key {
		case FieldTitle:
			v.Title = text
		case FieldLongNumber:
			v.LongNumber = text
		case FieldStartFrom:
			v.StartFrom = opt
		case FieldExpireBy:
			v.ExpireBy = opt
		case FieldSecurityCode:
			v.SecurityCode = opt
		case FieldMemo:
			v.Memo = opt
		}
	case *BankAccount:
		switch f.Key {
		case FieldTitle:
			v.Title = text
		case FieldAccountNumber:
			v.AccountNumber = text
		case FieldSortCode:
			v.SortCode = opt
		case FieldMemo:
			v.Memo = opt
		}
	case *Note:
		switch f.Key {
		case FieldTitle:
			v.Title = text
		case FieldMemo:
			v.Memo = text
		}
	}
	return nil
}
