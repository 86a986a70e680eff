package item

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 26, 10, 0, 0, 0, time.UTC)

func fixedFactory(ids ...string) *Factory {
	next := 0
	return NewFactory(
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			id := ids[next%len(ids)]
			next++
			return id
		}),
	)
}

func TestFactory_New(t *testing.T) {
	f := fixedFactory("id-1")

	it, err := f.New(TypePassword, map[FieldKey]string{
		FieldTitle:    "Gmail",
		FieldPassword: "secret",
		FieldEmail:    "",
	})
	require.NoError(t, err)

	p, ok := it.(*Password)
	require.True(t, ok)
	assert.Equal(t, "id-1", p.ID)
	assert.Equal(t, "Gmail", p.Title)
	assert.Equal(t, "secret", p.Password)
	assert.Nil(t, p.Email, "пустое необязательное поле должно отсутствовать")
	assert.Nil(t, p.Username)
	assert.Equal(t, testNow, p.DateCreated)
	assert.Nil(t, p.DateModified)
}

func TestFactory_NewDefaultID(t *testing.T) {
	f := NewFactory()
	a, err := f.New(TypeNote, map[FieldKey]string{FieldTitle: "a", FieldMemo: "m"})
	require.NoError(t, err)
	b, err := f.New(TypeNote, map[FieldKey]string{FieldTitle: "b", FieldMemo: "m"})
	require.NoError(t, err)
	assert.NotEmpty(t, a.GetID())
	assert.NotEqual(t, a.GetID(), b.GetID())
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(TypeCard, map[FieldKey]string{FieldTitle: "Visa"}, "x", testNow)
	assert.ErrorIs(t, err, ErrMissingField)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, FieldLongNumber, fe.Key)

	_, err = Build(TypeNote, map[FieldKey]string{FieldTitle: "t", FieldMemo: "m", FieldPassword: "p"}, "x", testNow)
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = Build("binary", nil, "x", testNow)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestPatch(t *testing.T) {
	orig, err := Build(TypeBankAccount, map[FieldKey]string{
		FieldTitle:         "HSBC",
		FieldAccountNumber: "12345678",
		FieldSortCode:      "40-11-60",
	}, "acc", testNow)
	require.NoError(t, err)

	later := testNow.Add(time.Hour)
	patched, err := Patch(orig, FieldSortCode, "", later)
	require.NoError(t, err)

	acc := patched.(*BankAccount)
	assert.Nil(t, acc.SortCode)
	require.NotNil(t, acc.DateModified)
	assert.Equal(t, later, *acc.DateModified)

	// Исходная запись не изменилась.
	sc, ok := orig.Text(FieldSortCode)
	assert.True(t, ok)
	assert.Equal(t, "40-11-60", sc)
	assert.Nil(t, orig.GetDateModified())

	_, err = Patch(orig, FieldTitle, "", later)
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = Patch(orig, FieldEmail, "a@b.c", later)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestPatch_ClockBehindCreation(t *testing.T) {
	orig, err := Build(TypeNote, map[FieldKey]string{FieldTitle: "n", FieldMemo: "m"}, "n", testNow)
	require.NoError(t, err)

	patched, err := Patch(orig, FieldMemo, "m2", testNow.Add(-time.Minute))
	require.NoError(t, err)
	require.NotNil(t, patched.GetDateModified())
	assert.Equal(t, testNow, *patched.GetDateModified())
	assert.NoError(t, patched.Validate())
}
