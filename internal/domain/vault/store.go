// Package vault координирует создание, правку и удаление записей
// поверх хранилища, которое читает и пишет коллекцию целиком.
package vault

import (
	"context"

	"keep/internal/domain/item"
)

// DefaultKey - логический ключ коллекции в хранилище
const DefaultKey = "keep-items"

// SecureStore - защищенное хранилище коллекции под одним ключом.
//
// Load возвращает ErrNotFound, если коллекции еще нет.
// Save возвращает ErrDuplicateKey, если под ключом уже что-то записано.
// Update перезаписывает значение безусловно.
// Между Load и Save/Update изоляции нет.
type SecureStore interface {
	Load(ctx context.Context, key string) (*item.Collection, error)
	Save(ctx context.Context, c *item.Collection, key string) error
	Update(ctx context.Context, c *item.Collection, key string) error
	Delete(ctx context.Context, key string) error
}
