package input

import (
	"keep/internal/domain/item"
)

// FieldEditor - режим редактирования одного поля существующей записи.
type FieldEditor struct {
	Key      item.FieldKey
	Original string
	Text     string
	Required bool
}

// NewFieldEditor открывает редактор поля key записи it.
// Текст редактора изначально равен текущему значению поля.
func NewFieldEditor(it item.Item, key item.FieldKey) (FieldEditor, error) {
	f, ok := item.Lookup(it.GetType(), key)
	if !ok {
		return FieldEditor{}, &item.FieldError{Type: it.GetType(), Key: key, Err: item.ErrUnknownField}
	}
	text, _ := it.Text(key)
	return FieldEditor{
		Key:      key,
		Original: text,
		Text:     text,
		Required: f.Required,
	}, nil
}

// WithText возвращает копию редактора с новым текстом.
func (e FieldEditor) WithText(text string) FieldEditor {
	e.Text = text
	return e
}

// Changed сообщает, отличается ли текст от исходного.
func (e FieldEditor) Changed() bool {
	return e.Text != e.Original
}

func (e FieldEditor) CanSave() bool {
	return !e.Required || e.Text != ""
}

// Submittable - можно ли отправить правку на сохранение.
func (e FieldEditor) Submittable() bool {
	return e.Changed() && e.CanSave()
}
