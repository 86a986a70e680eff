// Package input накапливает пользовательские правки полей записи
// до момента сохранения.
package input

import (
	"keep/internal/domain/item"
)

// Edit - одна ожидающая правка поля
type Edit struct {
	Key  item.FieldKey `json:"key"`
	Text string        `json:"text"`
}

// Event - правка вместе с типом, выбранным в момент правки
type Event struct {
	Edit Edit
	Type item.Type
}

// State - накопленные правки для выбранного типа.
// Fields хранит не более одной правки на ключ, в порядке последнего ввода.
type State struct {
	Fields []Edit    `json:"fields"`
	Type   item.Type `json:"type"`
}

// Initial - состояние нового экрана добавления.
func Initial() State {
	return State{Fields: []Edit{}, Type: item.DefaultType}
}

// Reduce применяет одно событие к состоянию. prev не изменяется.
func Reduce(prev State, ev Event) State {
	if ev.Type != prev.Type {
		// Правки старого типа отбрасываются вместе с самим событием.
		return State{Fields: []Edit{}, Type: ev.Type}
	}

	_, exists := prev.Lookup(ev.Edit.Key)
	fields := without(prev.Fields, ev.Edit.Key)
	if ev.Edit.Text == "" && exists {
		return State{Fields: fields, Type: prev.Type}
	}
	return State{Fields: append(fields, ev.Edit), Type: prev.Type}
}

// Fold сворачивает события, начиная с Initial.
func Fold(events ...Event) State {
	s := Initial()
	for _, ev := range events {
		s = Reduce(s, ev)
	}
	return s
}

func without(fields []Edit, key item.FieldKey) []Edit {
	out := make([]Edit, 0, len(fields)+1)
	for _, f := range fields {
		if f.Key != key {
			out = append(out, f)
		}
	}
	return out
}

// Lookup возвращает накопленный текст поля.
func (s State) Lookup(key item.FieldKey) (string, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f.Text, true
		}
	}
	return "", false
}

// Values возвращает правки в виде словаря для сборки записи.
func (s State) Values() map[item.FieldKey]string {
	out := make(map[item.FieldKey]string, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Key] = f.Text
	}
	return out
}

// CanSave сообщает, можно ли сохранить запись.
func (s State) CanSave() bool {
	return CanSave(s.Fields, s.Type)
}

// CanSave: true, если все обязательные поля типа t присутствуют и не пусты.
func CanSave(fields []Edit, t item.Type) bool {
	required := item.RequiredKeys(t)
	if len(required) == 0 {
		return false
	}
	for _, key := range required {
		found := false
		for _, f := range fields {
			if f.Key == key && f.Text != "" {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
