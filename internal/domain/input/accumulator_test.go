package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"keep/internal/domain/item"
)

func edit(key item.FieldKey, text string, t item.Type) Event {
	return Event{Edit: Edit{Key: key, Text: text}, Type: t}
}

func TestReduce_Upsert(t *testing.T) {
	s := Fold(
		edit(item.FieldTitle, "G", item.TypePassword),
		edit(item.FieldPassword, "p", item.TypePassword),
		edit(item.FieldTitle, "Gmail", item.TypePassword),
	)

	assert.Equal(t, item.TypePassword, s.Type)
	assert.Equal(t, []Edit{
		{Key: item.FieldPassword, Text: "p"},
		{Key: item.FieldTitle, Text: "Gmail"},
	}, s.Fields)
}

func TestReduce_ClearAndReenter(t *testing.T) {
	s := Fold(edit(item.FieldTitle, "Gmail", item.TypePassword))
	_, ok := s.Lookup(item.FieldTitle)
	assert.True(t, ok)

	s = Reduce(s, edit(item.FieldTitle, "", item.TypePassword))
	_, ok = s.Lookup(item.FieldTitle)
	assert.False(t, ok)
	assert.Empty(t, s.Fields)

	s = Reduce(s, edit(item.FieldTitle, "Gmail", item.TypePassword))
	text, ok := s.Lookup(item.FieldTitle)
	assert.True(t, ok)
	assert.Equal(t, "Gmail", text)
}

func TestReduce_TypeSwitchResets(t *testing.T) {
	s := Fold(
		edit(item.FieldTitle, "Gmail", item.TypePassword),
		edit(item.FieldPassword, "p", item.TypePassword),
	)

	// Правка, пришедшая вместе со сменой типа, отбрасывается.
	s = Reduce(s, edit(item.FieldTitle, "Visa", item.TypeCard))
	assert.Equal(t, item.TypeCard, s.Type)
	assert.Empty(t, s.Fields)
	assert.False(t, s.CanSave())
}

func TestReduce_DoesNotMutatePrev(t *testing.T) {
	prev := Fold(edit(item.FieldTitle, "a", item.TypePassword), edit(item.FieldPassword, "b", item.TypePassword))
	snapshot := append([]Edit(nil), prev.Fields...)

	_ = Reduce(prev, edit(item.FieldTitle, "c", item.TypePassword))
	_ = Reduce(prev, edit(item.FieldPassword, "", item.TypePassword))
	assert.Equal(t, snapshot, prev.Fields)
}

func TestCanSave(t *testing.T) {
	optional := map[item.Type]item.FieldKey{
		item.TypePassword:    item.FieldEmail,
		item.TypeCard:        item.FieldSecurityCode,
		item.TypeBankAccount: item.FieldSortCode,
	}

	for _, typ := range item.Types() {
		t.Run(typ.String(), func(t *testing.T) {
			var all []Edit
			for _, key := range item.RequiredKeys(typ) {
				all = append(all, Edit{Key: key, Text: "x"})
			}
			assert.True(t, CanSave(all, typ))

			// Без любого обязательного поля сохранить нельзя.
			for i := range all {
				partial := append(append([]Edit(nil), all[:i]...), all[i+1:]...)
				assert.False(t, CanSave(partial, typ))

				emptied := append([]Edit(nil), all...)
				emptied[i].Text = ""
				assert.False(t, CanSave(emptied, typ))
			}

			// Необязательные поля не влияют на результат.
			if key, ok := optional[typ]; ok {
				assert.True(t, CanSave(append(all, Edit{Key: key, Text: ""}), typ))
				assert.False(t, CanSave([]Edit{{Key: key, Text: "x"}}, typ))
			}
		})
	}

	assert.False(t, CanSave(nil, "unknown"))
}

func TestState_Values(t *testing.T) {
	s := Fold(edit(item.FieldTitle, "Gmail", item.TypePassword), edit(item.FieldPassword, "p", item.TypePassword))
	assert.Equal(t, map[item.FieldKey]string{
		item.FieldTitle:    "Gmail",
		item.FieldPassword: "p",
	}, s.Values())
	assert.True(t, s.CanSave())
}
