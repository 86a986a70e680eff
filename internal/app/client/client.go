package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"keep/internal/app/client/config"
	"keep/internal/app/client/crypto"
	"keep/internal/domain/input"
	"keep/internal/domain/item"
	"keep/internal/domain/vault"
	"keep/internal/domain/view"
	"keep/internal/infrastructure/securestore"
)

var (
	ErrNotInitialized = errors.New("хранилище не инициализировано. Выполните: keep init")
	ErrLocked         = errors.New("мастер-ключ заблокирован. Выполните: keep auth unlock")
	ErrKeyMismatch    = errors.New("мастер-ключ не соответствует хранилищу")
)

type App struct {
	config    *config.Config
	log       *slog.Logger
	keys      *crypto.MasterKeyManager
	factory   *item.Factory
	projector *view.Projector
	store     *securestore.Store
	vault     *vault.Service
	state     *AppState
	mu        sync.Mutex
}

// AppState хранит состояние приложения
type AppState struct {
	Initialized   bool      `json:"initialized"`
	InitializedAt time.Time `json:"initialized_at"`
	MasterKeyHash string    `json:"master_key_hash"`
	StoreDriver   string    `json:"store_driver"`
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	state, err := loadAppState(cfg)
	if err != nil {
		log.Warn("Не удалось загрузить состояние приложения", "error", err)
		state = &AppState{}
	}

	algorithm := crypto.AlgArgon2id
	if cfg.KeyAlgorithm == "pbkdf2" {
		algorithm = crypto.AlgPBKDF2
	}
	keys, err := crypto.NewMasterKeyManager(cfg.MasterKeyPath,
		crypto.WithAlgorithm(algorithm),
		crypto.WithSessionTTL(cfg.SessionTTL),
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации мастер-ключа: %w", err)
	}

	return &App{
		config:    cfg,
		log:       log.With("component", "app"),
		keys:      keys,
		factory:   item.NewFactory(),
		projector: view.NewProjector(),
		state:     state,
	}, nil
}

func statePath(cfg *config.Config) string {
	return filepath.Join(cfg.ConfigDir, "state.json")
}

func loadAppState(cfg *config.Config) (*AppState, error) {
	data, err := os.ReadFile(statePath(cfg))
	if errors.Is(err, os.ErrNotExist) {
		return &AppState{}, nil
	}
	if err != nil {
		return nil, err
	}

	var state AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (a *App) saveAppState() error {
	data, err := json.MarshalIndent(a.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(statePath(a.config), data, 0600)
}

// Status - состояние хранилища для команды auth status
type Status struct {
	Initialized   bool      `json:"initialized"`
	Unlocked      bool      `json:"unlocked"`
	KeyAlgorithm  string    `json:"key_algorithm,omitempty"`
	StoreDriver   string    `json:"store_driver"`
	InitializedAt time.Time `json:"initialized_at,omitempty"`
}

func (a *App) Status() Status {
	st := Status{
		Initialized: a.IsInitialized(),
		Unlocked:    a.IsMasterKeyUnlocked(),
		StoreDriver: a.config.Store.Driver,
	}
	if a.keys.IsInitialized() {
		st.KeyAlgorithm = a.keys.Header().KeyAlgorithm
	}
	a.mu.Lock()
	st.InitializedAt = a.state.InitializedAt
	a.mu.Unlock()
	return st
}

// Config возвращает конфигурацию приложения.
func (a *App) Config() *config.Config {
	return a.config
}

// IsInitialized проверяет, создан ли мастер-ключ
func (a *App) IsInitialized() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Initialized && a.keys.IsInitialized()
}

// InitMasterKey создает мастер-ключ и открывает хранилище
func (a *App) InitMasterKey(ctx context.Context, password string) error {
	if err := a.keys.GenerateMasterKey(password); err != nil {
		return fmt.Errorf("ошибка генерации мастер-ключа: %w", err)
	}

	keyHash, err := a.keys.GetKeyHash()
	if err != nil {
		return fmt.Errorf("ошибка получения хэша ключа: %w", err)
	}

	a.mu.Lock()
	a.state.Initialized = true
	a.state.InitializedAt = time.Now().UTC()
	a.state.MasterKeyHash = keyHash
	a.state.StoreDriver = a.config.Store.Driver
	err = a.saveAppState()
	a.mu.Unlock()
	if err != nil {
		return fmt.Errorf("ошибка сохранения состояния: %w", err)
	}

	// хранилище создается сразу, чтобы ошибки подключения были видны при init
	if _, err := a.Vault(ctx); err != nil {
		return err
	}

	a.log.Info("Хранилище инициализировано", "driver", a.config.Store.Driver, "algorithm", a.keys.Header().KeyAlgorithm)
	return nil
}

// UnlockMasterKey разблокирует мастер-ключ
func (a *App) UnlockMasterKey(password string) error {
	if !a.keys.IsInitialized() {
		return ErrNotInitialized
	}
	if err := a.keys.UnlockMasterKey(password); err != nil {
		return fmt.Errorf("неверный мастер-пароль: %w", err)
	}
	return a.verifyKey()
}

// verifyKey сверяет хэш ключа с сохраненным при init
func (a *App) verifyKey() error {
	keyHash, err := a.keys.GetKeyHash()
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.MasterKeyHash != "" && a.state.MasterKeyHash != keyHash {
		a.log.Error("master key hash mismatch")
		_ = a.keys.Lock()
		return ErrKeyMismatch
	}
	return nil
}

// IsMasterKeyUnlocked проверяет, разблокирован ли мастер-ключ
func (a *App) IsMasterKeyUnlocked() bool {
	return !a.keys.IsLocked()
}

// LockMasterKey блокирует мастер-ключ и закрывает хранилище
func (a *App) LockMasterKey() error {
	if err := a.Close(); err != nil {
		a.log.Warn("Ошибка закрытия хранилища", "error", err)
	}
	return a.keys.Lock()
}

// ChangeMasterPassword меняет мастер-пароль. Данные не перешифровываются:
// меняется только обертка мастер-ключа.
func (a *App) ChangeMasterPassword(oldPassword, newPassword string) error {
	if err := a.keys.ChangeMasterPassword(oldPassword, newPassword); err != nil {
		return err
	}
	a.log.Info("Мастер-пароль изменен")
	return nil
}

// Vault возвращает сервис записей, открывая хранилище при первом вызове.
func (a *App) Vault(ctx context.Context) (*vault.Service, error) {
	if !a.keys.IsInitialized() {
		return nil, ErrNotInitialized
	}
	if a.keys.IsLocked() {
		return nil, ErrLocked
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.vault != nil {
		return a.vault, nil
	}

	store, err := securestore.Open(ctx, securestore.Options{
		Driver:      a.config.Store.Driver,
		Path:        a.config.Store.DataPath,
		DatabaseURI: a.config.Store.DatabaseURI,
		Service:     a.config.Store.Service,
	}, crypto.NewSealer(a.keys), a.log)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия хранилища: %w", err)
	}

	a.store = store
	a.vault = vault.NewService(store, a.factory, a.config.Store.Key, a.log)
	return a.vault, nil
}

// NewSession открывает сессию ввода новой записи.
func (a *App) NewSession() *input.Session {
	return input.NewSession(a.log)
}

// Projector возвращает построитель представлений.
func (a *App) Projector() *view.Projector {
	return a.projector
}

// Close закрывает хранилище
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	a.vault = nil
	return err
}
