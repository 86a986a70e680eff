package item

import (
	"encoding/json"
	"fmt"
)

// envelope - сериализованная запись с дискриминатором типа
type envelope struct {
	Type Type            `json:"type"`
	Item json.RawMessage `json:"item"`
}

// MarshalItem сериализует запись в конверт с типом.
func MarshalItem(it Item) ([]byte, error) {
	payload, err := json.Marshal(it)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", it.GetType(), err)
	}
	return json.Marshal(envelope{Type: it.GetType(), Item: payload})
}

// UnmarshalItem восстанавливает запись из конверта.
func UnmarshalItem(data []byte) (Item, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return decode(env)
}

func decode(env envelope) (Item, error) {
	var it Item
	switch env.Type {
	case TypePassword:
		it = &Password{}
	case TypeCard:
		it = &Card{}
	case TypeBankAccount:
		it = &BankAccount{}
	case TypeNote:
		it = &Note{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}
	if len(env.Item) == 0 {
		return nil, fmt.Errorf("%w: empty %s payload", ErrInvalidPayload, env.Type)
	}
	if err := json.Unmarshal(env.Item, it); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, env.Type, err)
	}
	if it.GetID() == "" {
		return nil, fmt.Errorf("%w: %s without id", ErrInvalidPayload, env.Type)
	}
	return it, nil
}

// MarshalJSON сериализует коллекцию как массив конвертов.
func (c *Collection) MarshalJSON() ([]byte, error) {
	envs := make([]envelope, 0, c.Len())
	for _, it := range c.Items() {
		payload, err := json.Marshal(it)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", it.GetID(), err)
		}
		envs = append(envs, envelope{Type: it.GetType(), Item: payload})
	}
	return json.Marshal(envs)
}

// UnmarshalJSON восстанавливает коллекцию, сохраняя порядок.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var envs []envelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	items := make([]Item, 0, len(envs))
	for i, env := range envs {
		it, err := decode(env)
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, it)
	}
	restored, err := NewCollection(items...)
	if err != nil {
		return err
	}
	*c = *restored
	return nil
}

// MarshalCollection - сериализованное представление коллекции для хранилища.
func MarshalCollection(c *Collection) ([]byte, error) {
	if c == nil {
		c = Empty()
	}
	return json.Marshal(c)
}

func UnmarshalCollection(data []byte) (*Collection, error) {
	c := Empty()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return c, nil
}
