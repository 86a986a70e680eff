package item

import (
	"fmt"
)

// Collection - упорядоченный набор записей с индексом id -> позиция.
// Хранится целиком под одним ключом хранилища.
type Collection struct {
	items []Item
	index map[string]int
}

// NewCollection создает коллекцию; id записей должны быть уникальны.
func NewCollection(items ...Item) (*Collection, error) {
	c := &Collection{
		items: make([]Item, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, it := range items {
		if _, ok := c.index[it.GetID()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, it.GetID())
		}
		c.index[it.GetID()] = len(c.items)
		c.items = append(c.items, it)
	}
	return c, nil
}

// Empty возвращает пустую коллекцию.
func Empty() *Collection {
	c, _ := NewCollection()
	return c
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Items возвращает копию среза записей в порядке хранения.
func (c *Collection) Items() []Item {
	if c == nil {
		return nil
	}
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection) At(i int) Item {
	return c.items[i]
}

func (c *Collection) Get(id string) (Item, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.items[i], true
}

func (c *Collection) Contains(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// Prepend добавляет запись в начало: новая запись всегда первая.
func (c *Collection) Prepend(it Item) error {
	if _, ok := c.index[it.GetID()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, it.GetID())
	}
	c.items = append([]Item{it}, c.items...)
	c.reindex()
	return nil
}

// Replace заменяет запись с тем же id на месте. Возвращает false, если записи нет.
func (c *Collection) Replace(it Item) bool {
	i, ok := c.index[it.GetID()]
	if !ok {
		return false
	}
	c.items[i] = it
	return true
}

// Remove удаляет запись по id. Возвращает false, если записи нет.
func (c *Collection) Remove(id string) bool {
	i, ok := c.index[id]
	if !ok {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.reindex()
	return true
}

// Clone возвращает независимую копию коллекции (записи не копируются).
func (c *Collection) Clone() *Collection {
	clone, _ := NewCollection(c.Items()...)
	return clone
}

func (c *Collection) reindex() {
	c.index = make(map[string]int, len(c.items))
	for i, it := range c.items {
		c.index[it.GetID()] = i
	}
}
