// Package view строит представление коллекции для экранов списка и записи.
package view

import (
	"sort"
	"strings"
	"time"

	"keep/internal/domain/item"
)

const optionalSuffix = " (optional)"

// ListItem - строка списка записей
type ListItem struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Type    item.Type `json:"type"`
	Changed time.Time `json:"changed"`
}

// Row - строка экрана записи
type Row struct {
	Key      item.FieldKey  `json:"key"`
	Label    string         `json:"label"`
	Text     string         `json:"text"`
	Required bool           `json:"required"`
	Kind     item.InputKind `json:"kind"`
}

// InfoRow - служебная строка (даты создания и изменения)
type InfoRow struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Projector строит представления. Форматирование дат задается снаружи.
type Projector struct {
	formatDate func(time.Time) string
}

type Option func(*Projector)

// WithDateFormat задает форматирование дат в служебных строках.
func WithDateFormat(format func(time.Time) string) Option {
	return func(p *Projector) {
		p.formatDate = format
	}
}

func NewProjector(opts ...Option) *Projector {
	p := &Projector{
		formatDate: func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Project возвращает список записей, от последних изменений к старым.
// Непустой search оставляет записи, в заголовке которых есть search
// (с учетом регистра). Список одинаков во всех режимах.
func (p *Projector) Project(c *item.Collection, _ Mode, search string) []ListItem {
	out := make([]ListItem, 0, c.Len())
	for _, it := range c.Items() {
		if search != "" && !strings.Contains(it.GetTitle(), search) {
			continue
		}
		out = append(out, ListItem{
			ID:      it.GetID(),
			Title:   it.GetTitle(),
			Type:    it.GetType(),
			Changed: item.LastChanged(it),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Changed.After(out[j].Changed)
	})
	return out
}

// DetailRows возвращает строки записи в порядке схемы типа.
// В режиме просмотра пустые поля скрываются, в режиме правки показываются все.
func (p *Projector) DetailRows(it item.Item, mode Mode) []Row {
	if mode == ModeAdd {
		return p.AddRows(it.GetType())
	}

	fields := item.FieldsFor(it.GetType())
	rows := make([]Row, 0, len(fields))
	for _, f := range fields {
		text, _ := it.Text(f.Key)
		if mode == ModeView && text == "" {
			continue
		}
		rows = append(rows, rowFor(f, text))
	}
	return rows
}

// AddRows возвращает пустые строки для новой записи типа t.
func (p *Projector) AddRows(t item.Type) []Row {
	fields := item.FieldsFor(t)
	rows := make([]Row, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, rowFor(f, ""))
	}
	return rows
}

// InfoRows возвращает даты создания и, если есть, изменения.
func (p *Projector) InfoRows(it item.Item) []InfoRow {
	rows := []InfoRow{{Label: "Created Date", Text: p.formatDate(it.GetDateCreated())}}
	if m := it.GetDateModified(); m != nil {
		rows = append(rows, InfoRow{Label: "Modified Date", Text: p.formatDate(*m)})
	}
	return rows
}

// Chrome возвращает оформление экрана для режима.
func (p *Projector) Chrome(mode Mode) Chrome {
	switch mode {
	case ModeAdd:
		return Chrome{ButtonTitle: "Change", Action: ActionSwitchType, Next: ModeAdd}
	case ModeEdit:
		return Chrome{ButtonTitle: "Done", Action: ActionDone, Next: ModeView}
	default:
		return Chrome{ButtonTitle: "Edit", Action: ActionEdit, Next: ModeEdit, ShowInfo: true}
	}
}

// Placeholder возвращает подсказку для пустого поля.
func Placeholder(f item.Field) string {
	if f.Required {
		return f.Label
	}
	return f.Label + optionalSuffix
}

func rowFor(f item.Field, text string) Row {
	return Row{
		Key:      f.Key,
		Label:    f.Label,
		Text:     text,
		Required: f.Required,
		Kind:     f.Kind,
	}
}
