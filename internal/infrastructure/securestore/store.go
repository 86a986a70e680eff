// Package securestore реализует vault.SecureStore: коллекция кодируется,
// шифруется и пишется одним блобом в выбранный бэкенд.
package securestore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/slog"

	"keep/internal/domain/item"
	"keep/internal/domain/vault"
)

// DefaultService - идентификатор приложения, которым ограничены ключи
const DefaultService = "keep"

// Backend хранит байты по адресу (service, key).
// Get возвращает vault.ErrNotFound для отсутствующего адреса,
// Insert - vault.ErrDuplicateKey для занятого.
type Backend interface {
	Get(ctx context.Context, service, key string) ([]byte, error)
	Insert(ctx context.Context, service, key string, data []byte) error
	Put(ctx context.Context, service, key string, data []byte) error
	Delete(ctx context.Context, service, key string) error
}

// Sealer шифрует данные; aad связывает шифротекст с адресом.
type Sealer interface {
	Seal(plaintext, aad []byte) ([]byte, error)
	Open(ciphertext, aad []byte) ([]byte, error)
}

// Store - SecureStore поверх Backend и Sealer
type Store struct {
	backend Backend
	sealer  Sealer
	service string
	log     *slog.Logger
}

var _ vault.SecureStore = (*Store)(nil)

// New создает хранилище. Без sealer данные пишутся открытым текстом,
// это допустимо только для бэкенда в памяти.
func New(backend Backend, sealer Sealer, service string, log *slog.Logger) *Store {
	if service == "" {
		service = DefaultService
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		backend: backend,
		sealer:  sealer,
		service: service,
		log:     log.With("component", "secure_store", "service", service),
	}
}

func (s *Store) Load(ctx context.Context, key string) (*item.Collection, error) {
	blob, err := s.backend.Get(ctx, s.service, key)
	if err != nil {
		return nil, err
	}

	data, err := s.open(blob, key)
	if err != nil {
		s.log.Error("failed to open collection", "key", key, "error", err)
		return nil, fmt.Errorf("open collection: %w", err)
	}

	c, err := item.UnmarshalCollection(data)
	if err != nil {
		s.log.Error("failed to decode collection", "key", key, "error", err)
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	s.log.Debug("collection loaded", "key", key, "items", c.Len())
	return c, nil
}

func (s *Store) Save(ctx context.Context, c *item.Collection, key string) error {
	blob, err := s.seal(c, key)
	if err != nil {
		return err
	}
	if err := s.backend.Insert(ctx, s.service, key, blob); err != nil {
		return err
	}
	s.log.Debug("collection saved", "key", key, "items", c.Len())
	return nil
}

func (s *Store) Update(ctx context.Context, c *item.Collection, key string) error {
	blob, err := s.seal(c, key)
	if err != nil {
		return err
	}
	if err := s.backend.Put(ctx, s.service, key, blob); err != nil {
		return err
	}
	s.log.Debug("collection updated", "key", key, "items", c.Len())
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, s.service, key)
}

// Close закрывает бэкенд, если он держит ресурсы.
func (s *Store) Close() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Store) seal(c *item.Collection, key string) ([]byte, error) {
	data, err := item.MarshalCollection(c)
	if err != nil {
		return nil, fmt.Errorf("encode collection: %w", err)
	}
	if s.sealer == nil {
		return data, nil
	}
	blob, err := s.sealer.Seal(data, s.aad(key))
	if err != nil {
		return nil, fmt.Errorf("seal collection: %w", err)
	}
	return blob, nil
}

func (s *Store) open(blob []byte, key string) ([]byte, error) {
	if s.sealer == nil {
		return blob, nil
	}
	return s.sealer.Open(blob, s.aad(key))
}

func (s *Store) aad(key string) []byte {
	return []byte(s.service + "/" + key)
}

// IsNotFound сообщает, что по ключу ничего не записано.
func IsNotFound(err error) bool {
	return errors.Is(err, vault.ErrNotFound)
}
