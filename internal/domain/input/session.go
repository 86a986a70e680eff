package input

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"keep/internal/domain/item"
)

var ErrSessionClosed = errors.New("input session is closed")

// Session - потокобезопасная обертка над Reduce для одного экрана
// добавления. Подписчики получают снимки состояния до вызова Close.
type Session struct {
	mu     sync.Mutex
	state  State
	subs   []chan State
	closed bool
	log    *slog.Logger
}

// NewSession создает сессию с начальным состоянием Initial.
func NewSession(log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		state: Initial(),
		log:   log.With("component", "input_session"),
	}
}

// State возвращает текущий снимок состояния.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) CanSave() bool {
	return s.State().CanSave()
}

// SelectType переключает тип записи. Накопленные правки сбрасываются.
func (s *Session) SelectType(t item.Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if t == s.state.Type {
		return nil
	}
	s.log.Debug("type selected", "from", s.state.Type, "to", t)
	s.apply(Event{Type: t})
	return nil
}

// Set задает значение поля программно: текст нормализуется,
// дата приводится к ISO-8601.
func (s *Session) Set(key item.FieldKey, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	f, ok := item.Lookup(s.state.Type, key)
	if !ok {
		return &item.FieldError{Type: s.state.Type, Key: key, Err: item.ErrUnknownField}
	}

	text = item.Normalize(f.Kind, text)
	if f.Kind == item.KindDate {
		iso, err := item.ParseDateInput(text)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		text = iso
	}
	s.apply(Event{Edit: Edit{Key: key, Text: text}, Type: s.state.Type})
	return nil
}

// Type обрабатывает ввод с клавиатуры: next - полный текст поля после
// нажатия. Возвращает текст, который должно показать поле.
func (s *Session) Type(key item.FieldKey, next string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrSessionClosed
	}
	f, ok := item.Lookup(s.state.Type, key)
	if !ok {
		return "", &item.FieldError{Type: s.state.Type, Key: key, Err: item.ErrUnknownField}
	}

	prev, _ := s.state.Lookup(key)
	switch f.Kind {
	case item.KindLongNumber:
		next = item.TypeLongNumber(prev, next)
	default:
		next = item.Normalize(f.Kind, next)
	}
	s.apply(Event{Edit: Edit{Key: key, Text: next}, Type: s.state.Type})
	return next, nil
}

// Reset возвращает сессию в начальное состояние.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.state = Initial()
	s.publish()
}

// Subscribe возвращает канал снимков состояния. Канал сразу получает
// текущее состояние и хранит только последний непрочитанный снимок.
// Канал закрывается в Close.
func (s *Session) Subscribe() (<-chan State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	ch := make(chan State, 1)
	ch <- s.snapshot()
	s.subs = append(s.subs, ch)
	return ch, nil
}

// Close завершает сессию и закрывает каналы подписчиков.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}

func (s *Session) apply(ev Event) {
	s.state = Reduce(s.state, ev)
	s.publish()
}

func (s *Session) publish() {
	snap := s.snapshot()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func (s *Session) snapshot() State {
	fields := make([]Edit, len(s.state.Fields))
	copy(fields, s.state.Fields)
	return State{Fields: fields, Type: s.state.Type}
}
