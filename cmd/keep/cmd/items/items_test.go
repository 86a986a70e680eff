package items

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keep/internal/domain/input"
	"keep/internal/domain/item"
	"keep/internal/utils/logger"
)

func TestParseAssignment(t *testing.T) {
	key, value, err := parseAssignment("memo=a=b")
	require.NoError(t, err)
	assert.Equal(t, item.FieldMemo, key)
	assert.Equal(t, "a=b", value)

	_, _, err = parseAssignment("title")
	assert.Error(t, err)
	_, _, err = parseAssignment("=x")
	assert.Error(t, err)
}

func TestTypeLongNumber(t *testing.T) {
	session := input.NewSession(logger.Discard())
	defer session.Close()
	require.NoError(t, session.SelectType(item.TypeCard))

	require.NoError(t, typeLongNumber(session, item.FieldLongNumber, "4111 1111 1111"))
	got, ok := session.State().Lookup(item.FieldLongNumber)
	require.True(t, ok)
	assert.Equal(t, "4111 1111 1111", got)

	require.NoError(t, typeLongNumber(session, item.FieldLongNumber, ""))
	got, _ = session.State().Lookup(item.FieldLongNumber)
	assert.Empty(t, got)
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "s****t", display(item.FieldPassword, "secret", false))
	assert.Equal(t, "secret", display(item.FieldPassword, "secret", true))
	assert.Equal(t, "Gmail", display(item.FieldTitle, "Gmail", false))
}
