package item

func required(key FieldKey, kind InputKind) Field {
	return Field{Key: key, Kind: kind, Required: true, Label: key.Label()}
}

func optional(key FieldKey, kind InputKind) Field {
	return Field{Key: key, Kind: kind, Required: false, Label: key.Label()}
}

// FieldsFor возвращает упорядоченную схему полей для типа.
// Для неизвестного типа возвращает nil.
func FieldsFor(t Type) []Field {
	switch t {
	case TypePassword:
		return []Field{
			required(FieldTitle, KindPlain),
			required(FieldPassword, KindPlain),
			optional(FieldEmail, KindPlain),
			optional(FieldUsername, KindPlain),
			optional(FieldMemo, KindMultiline),
		}
	case TypeCard:
		return []Field{
			required(FieldTitle, KindPlain),
			required(FieldLongNumber, KindLongNumber),
			optional(FieldStartFrom, KindDate),
			optional(FieldExpireBy, KindDate),
			optional(FieldSecurityCode, KindPlain),
			optional(FieldMemo, KindMultiline),
		}
	case TypeBankAccount:
		return []Field{
			required(FieldTitle, KindPlain),
			required(FieldAccountNumber, KindPlain),
			optional(FieldSortCode, KindPlain),
			optional(FieldMemo, KindMultiline),
		}
	case TypeNote:
		return []Field{
			required(FieldTitle, KindPlain),
			required(FieldMemo, KindMultiline),
		}
	default:
		return nil
	}
}

// Lookup ищет поле в схеме типа.
func Lookup(t Type, key FieldKey) (Field, bool) {
	for _, f := range FieldsFor(t) {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// IsRequired сообщает, обязательно ли поле для типа.
func IsRequired(t Type, key FieldKey) bool {
	f, ok := Lookup(t, key)
	return ok && f.Required
}

// RequiredKeys возвращает обязательные поля типа в порядке схемы.
func RequiredKeys(t Type) []FieldKey {
	var keys []FieldKey
	for _, f := range FieldsFor(t) {
		if f.Required {
			keys = append(keys, f.Key)
		}
	}
	return keys
}
