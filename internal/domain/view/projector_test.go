package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keep/internal/domain/item"
)

var base = time.Date(2024, 3, 26, 10, 0, 0, 0, time.UTC)

func build(t *testing.T, typ item.Type, id string, created time.Time, values map[item.FieldKey]string) item.Item {
	t.Helper()
	it, err := item.Build(typ, values, id, created)
	require.NoError(t, err)
	return it
}

func listIDs(rows []ListItem) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestProjector_Project(t *testing.T) {
	gmail := build(t, item.TypePassword, "gmail", base, map[item.FieldKey]string{
		item.FieldTitle: "Gmail", item.FieldPassword: "p",
	})
	hsbc := build(t, item.TypeBankAccount, "hsbc", base.Add(time.Hour), map[item.FieldKey]string{
		item.FieldTitle: "HSBC", item.FieldAccountNumber: "1",
	})
	gmailEdited, err := item.Patch(gmail, item.FieldPassword, "p2", base.Add(2*time.Hour))
	require.NoError(t, err)
	memo := build(t, item.TypeNote, "memo", base.Add(time.Hour), map[item.FieldKey]string{
		item.FieldTitle: "gmail backup codes", item.FieldMemo: "123",
	})

	c, err := item.NewCollection(hsbc, gmailEdited, memo)
	require.NoError(t, err)
	p := NewProjector()

	// dateModified важнее dateCreated; при равенстве порядок коллекции
	assert.Equal(t, []string{"gmail", "hsbc", "memo"}, listIDs(p.Project(c, ModeView, "")))

	// поиск по подстроке с учетом регистра
	assert.Equal(t, []string{"gmail"}, listIDs(p.Project(c, ModeView, "Gmail")))
	assert.Equal(t, []string{"memo"}, listIDs(p.Project(c, ModeView, "gmail")))
	assert.Empty(t, p.Project(c, ModeView, "zzz"))
	assert.Empty(t, p.Project(item.Empty(), ModeAdd, ""))

	first := p.Project(c, ModeEdit, "")[0]
	assert.Equal(t, item.TypePassword, first.Type)
	assert.Equal(t, "Gmail", first.Title)
}

func rowKeys(rows []Row) []item.FieldKey {
	var out []item.FieldKey
	for _, r := range rows {
		out = append(out, r.Key)
	}
	return out
}

func TestProjector_DetailRows(t *testing.T) {
	card := build(t, item.TypeCard, "visa", base, map[item.FieldKey]string{
		item.FieldTitle:      "Visa",
		item.FieldLongNumber: "1234 5678",
		item.FieldExpireBy:   "2027-03-01T00:00:00Z",
	})
	p := NewProjector()

	view := p.DetailRows(card, ModeView)
	assert.Equal(t, []item.FieldKey{item.FieldTitle, item.FieldLongNumber, item.FieldExpireBy}, rowKeys(view))
	assert.Equal(t, "Card Long Number", view[1].Label)
	assert.True(t, view[1].Required)
	assert.Equal(t, item.KindLongNumber, view[1].Kind)

	edit := p.DetailRows(card, ModeEdit)
	assert.Equal(t, []item.FieldKey{
		item.FieldTitle, item.FieldLongNumber, item.FieldStartFrom,
		item.FieldExpireBy, item.FieldSecurityCode, item.FieldMemo,
	}, rowKeys(edit))
	assert.Equal(t, "", edit[2].Text)

	add := p.DetailRows(card, ModeAdd)
	assert.Len(t, add, 6)
	for _, r := range add {
		assert.Empty(t, r.Text)
	}
	assert.Equal(t, rowKeys(edit), rowKeys(p.AddRows(item.TypeCard)))
}

func TestProjector_InfoRows(t *testing.T) {
	n := build(t, item.TypeNote, "n", base, map[item.FieldKey]string{item.FieldTitle: "t", item.FieldMemo: "m"})
	p := NewProjector()

	assert.Equal(t, []InfoRow{{Label: "Created Date", Text: "2024-03-26T10:00:00Z"}}, p.InfoRows(n))

	edited, err := item.Patch(n, item.FieldMemo, "m2", base.Add(time.Hour))
	require.NoError(t, err)
	rows := p.InfoRows(edited)
	require.Len(t, rows, 2)
	assert.Equal(t, "Modified Date", rows[1].Label)
	assert.Equal(t, "2024-03-26T11:00:00Z", rows[1].Text)

	custom := NewProjector(WithDateFormat(func(t time.Time) string { return t.Format("02 Jan 2006") }))
	assert.Equal(t, "26 Mar 2024", custom.InfoRows(n)[0].Text)
}

func TestProjector_Chrome(t *testing.T) {
	p := NewProjector()

	add := p.Chrome(ModeAdd)
	assert.Equal(t, "Change", add.ButtonTitle)
	assert.Equal(t, ActionSwitchType, add.Action)
	assert.False(t, add.ShowInfo)

	view := p.Chrome(ModeView)
	assert.Equal(t, "Edit", view.ButtonTitle)
	assert.Equal(t, ModeEdit, view.Next)
	assert.True(t, view.ShowInfo)

	edit := p.Chrome(ModeEdit)
	assert.Equal(t, "Done", edit.ButtonTitle)
	assert.Equal(t, ModeView, edit.Next)
	assert.False(t, edit.ShowInfo)
}

func TestPlaceholder(t *testing.T) {
	f, _ := item.Lookup(item.TypePassword, item.FieldEmail)
	assert.Equal(t, "Email (optional)", Placeholder(f))
	f, _ = item.Lookup(item.TypePassword, item.FieldTitle)
	assert.Equal(t, "Title", Placeholder(f))
}
