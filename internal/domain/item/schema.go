package item

import (
	"encoding/json"
	"reflect"

	"github.com/danielgtaylor/huma/v2"
)

const schemaPrefix = "#/components/schemas/"

func prototype(t Type) Item {
	switch t {
	case TypePassword:
		return &Password{}
	case TypeCard:
		return &Card{}
	case TypeBankAccount:
		return &BankAccount{}
	case TypeNote:
		return &Note{}
	}
	return nil
}

// CollectionSchema описывает сохраняемую коллекцию: массив конвертов
// {"type", "item"}, по одному варианту на тип записи.
// Схемы записей регистрируются в r.
func CollectionSchema(r huma.Registry) *huma.Schema {
	variants := make([]*huma.Schema, 0, len(Types()))
	for _, t := range Types() {
		payload := r.Schema(reflect.TypeOf(prototype(t)).Elem(), true, t.String())
		variants = append(variants, &huma.Schema{
			Type:     huma.TypeObject,
			Required: []string{"type", "item"},
			Properties: map[string]*huma.Schema{
				"type": {Type: huma.TypeString, Enum: []any{string(t)}},
				"item": payload,
			},
		})
	}
	return &huma.Schema{
		Type:        huma.TypeArray,
		Description: "Коллекция записей, хранится целиком под одним ключом",
		Items:       &huma.Schema{OneOf: variants},
	}
}

// SchemaDocument возвращает JSON-документ со схемой коллекции и схемами записей.
func SchemaDocument() ([]byte, error) {
	r := huma.NewMapRegistry(schemaPrefix, huma.DefaultSchemaNamer)
	collection := CollectionSchema(r)
	doc := map[string]any{
		"collection": collection,
		"type":       TypePassword.Schema(r),
		"components": map[string]any{"schemas": r.Map()},
	}
	return json.MarshalIndent(doc, "", "  ")
}
