package item

import (
	"encoding/json"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_JSONShape(t *testing.T) {
	card, err := Build(TypeCard, map[FieldKey]string{
		FieldTitle:      "Visa",
		FieldLongNumber: "1234 5678",
		FieldStartFrom:  "2024-03-01T00:00:00Z",
	}, "card-1", testNow)
	require.NoError(t, err)

	c, err := NewCollection(card, note(t, "n-1", "Note"))
	require.NoError(t, err)

	data, err := MarshalCollection(c)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)
	assert.Equal(t, "card", raw[0]["type"])
	payload := raw[0]["item"].(map[string]any)
	assert.Equal(t, "2024-03-01T00:00:00Z", payload["startFrom"])
	assert.Nil(t, payload["expireBy"])
	assert.Nil(t, payload["dateModified"])
	assert.Equal(t, "2024-03-26T10:00:00Z", payload["dateCreated"])

	restored, err := UnmarshalCollection(data)
	require.NoError(t, err)
	assert.Equal(t, c.Items(), restored.Items())
}

func TestUnmarshalItem_Errors(t *testing.T) {
	_, err := UnmarshalItem([]byte(`{"type":"binary","item":{"id":"x"}}`))
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = UnmarshalItem([]byte(`{"type":"note"}`))
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = UnmarshalItem([]byte(`{"type":"note","item":{"title":"t"}}`))
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = UnmarshalCollection([]byte(`[{"type":"note","item":{"id":"a"}},{"type":"note","item":{"id":"a"}}]`))
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestMarshalItem(t *testing.T) {
	it := note(t, "n-1", "Note")
	data, err := MarshalItem(it)
	require.NoError(t, err)

	back, err := UnmarshalItem(data)
	require.NoError(t, err)
	assert.Equal(t, it, back)
}

func TestCollectionSchema(t *testing.T) {
	r := huma.NewMapRegistry(schemaPrefix, huma.DefaultSchemaNamer)
	s := CollectionSchema(r)

	assert.Equal(t, huma.TypeArray, s.Type)
	require.NotNil(t, s.Items)
	assert.Len(t, s.Items.OneOf, len(Types()))
	assert.NotEmpty(t, r.Map())

	doc, err := SchemaDocument()
	require.NoError(t, err)
	assert.Contains(t, string(doc), "bankAccount")
}
