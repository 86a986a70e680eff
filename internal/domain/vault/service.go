package vault

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"keep/internal/domain/input"
	"keep/internal/domain/item"
)

type Servicer interface {
	Create(ctx context.Context, state input.State) (item.Item, error)
	EditField(ctx context.Context, id string, editor input.FieldEditor) (item.Item, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) (*item.Collection, error)
	Get(ctx context.Context, id string) (item.Item, error)
	Reset(ctx context.Context) error
}

// Service - координатор записи коллекции в SecureStore
type Service struct {
	store   SecureStore
	factory *item.Factory
	key     string
	locks   *keyedMutex
	log     *slog.Logger
}

// NewService creates a new vault service
func NewService(store SecureStore, factory *item.Factory, key string, log *slog.Logger) *Service {
	if factory == nil {
		factory = item.NewFactory()
	}
	if key == "" {
		key = DefaultKey
	}
	return &Service{
		store:   store,
		factory: factory,
		key:     key,
		locks:   newKeyedMutex(),
		log:     log.With("component", "vault_service", "key", key),
	}
}

// Key возвращает ключ коллекции в хранилище.
func (s *Service) Key() string {
	return s.key
}

// Create собирает новую запись из накопленных правок и добавляет ее
// в начало коллекции. Если коллекция уже существует, Save вернет
// ErrDuplicateKey и запись пойдет через Update.
func (s *Service) Create(ctx context.Context, state input.State) (item.Item, error) {
	if !state.CanSave() {
		return nil, ErrCannotSave
	}

	it, err := s.factory.New(state.Type, state.Values())
	if err != nil {
		return nil, fmt.Errorf("build item: %w", err)
	}

	unlock := s.locks.Lock(s.key)
	defer unlock()

	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.Prepend(it); err != nil {
		s.log.Error("generated id collides with stored item", "id", it.GetID())
		return nil, fmt.Errorf("%w: %v", ErrUnexpected, err)
	}

	// запись, раз начавшись, доводится до конца
	wctx := context.WithoutCancel(ctx)

	err = s.store.Save(wctx, c, s.key)
	if errors.Is(err, ErrDuplicateKey) {
		s.log.Debug("collection already stored, falling back to update", "id", it.GetID())
		err = s.store.Update(wctx, c, s.key)
		if errors.Is(err, ErrDuplicateKey) {
			s.log.Error("duplicate key on update", "id", it.GetID())
			return nil, fmt.Errorf("%w: update reported duplicated item", ErrUnexpected)
		}
		if err != nil {
			return nil, s.storeError("update", err)
		}
	} else if err != nil {
		return nil, s.storeError("save", err)
	}

	s.log.Info("item created", "id", it.GetID(), "type", it.GetType(), "total", c.Len())
	return it, nil
}

// EditField меняет одно поле записи id и проставляет дату изменения.
func (s *Service) EditField(ctx context.Context, id string, editor input.FieldEditor) (item.Item, error) {
	if !editor.Changed() {
		return nil, ErrUnchanged
	}
	if !editor.CanSave() {
		return nil, fmt.Errorf("%w: %s", ErrFieldRequired, editor.Key)
	}

	unlock := s.locks.Lock(s.key)
	defer unlock()

	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	current, ok := c.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	patched, err := s.factory.Patch(current, editor.Key, editor.Text)
	switch {
	case errors.Is(err, item.ErrMissingField):
		return nil, fmt.Errorf("%w: %s", ErrFieldRequired, editor.Key)
	case err != nil:
		return nil, fmt.Errorf("patch item: %w", err)
	}
	c.Replace(patched)

	if err := s.store.Update(context.WithoutCancel(ctx), c, s.key); err != nil {
		return nil, s.storeError("update", err)
	}

	s.log.Info("item field updated", "id", id, "field", editor.Key)
	return patched, nil
}

// Delete удаляет запись id. Отсутствие записи не ошибка.
func (s *Service) Delete(ctx context.Context, id string) error {
	unlock := s.locks.Lock(s.key)
	defer unlock()

	c, err := s.load(ctx)
	if err != nil {
		return err
	}
	removed := c.Remove(id)

	if err := s.store.Update(context.WithoutCancel(ctx), c, s.key); err != nil {
		return s.storeError("update", err)
	}

	s.log.Info("item deleted", "id", id, "removed", removed, "total", c.Len())
	return nil
}

// List возвращает сохраненную коллекцию; до первого сохранения она пуста.
func (s *Service) List(ctx context.Context) (*item.Collection, error) {
	return s.load(ctx)
}

// Get возвращает запись по id.
func (s *Service) Get(ctx context.Context, id string) (item.Item, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	it, ok := c.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return it, nil
}

// Reset удаляет всю коллекцию из хранилища.
func (s *Service) Reset(ctx context.Context) error {
	unlock := s.locks.Lock(s.key)
	defer unlock()

	err := s.store.Delete(context.WithoutCancel(ctx), s.key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return s.storeError("delete", err)
	}

	s.log.Info("collection deleted")
	return nil
}

func (s *Service) load(ctx context.Context) (*item.Collection, error) {
	c, err := s.store.Load(ctx, s.key)
	switch {
	case errors.Is(err, ErrNotFound):
		return item.Empty(), nil
	case err != nil:
		return nil, s.storeError("load", err)
	case c == nil:
		return item.Empty(), nil
	}
	// хранилище могло вернуть общий экземпляр
	return c.Clone(), nil
}

func (s *Service) storeError(op string, err error) error {
	s.log.Error("secure store failed", "op", op, "error", err)
	return &StoreError{Op: op, Err: err}
}
