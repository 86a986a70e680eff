// internal/app/client/crypto/master_key.go
package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// Константы для PBKDF2
	pbkdf2Iterations = 100000
	pbkdf2KeyLength  = 32 // 256 бит для AES-256
	saltLength       = 16

	// Константы для Argon2
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32

	masterKeyLength = 32
	keyVersion      = 1

	masterKeyPermissions = 0600
)

// Алгоритмы получения ключа из пароля
const (
	AlgArgon2id = "Argon2id"
	AlgPBKDF2   = "PBKDF2-SHA256"
)

// MasterKeyHeader содержит метаданные мастер-ключа
type MasterKeyHeader struct {
	Version      int       `json:"version"`
	KeyAlgorithm string    `json:"key_algorithm"`
	Salt         string    `json:"salt"` // hex
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	KeyHash      string    `json:"key_hash"`             // SHA256 хэш ключа пароля для проверки
	Iterations   int       `json:"iterations,omitempty"` // Для PBKDF2
}

// keyFile - содержимое файла мастер-ключа
type keyFile struct {
	Header MasterKeyHeader `json:"header"`
	Data   string          `json:"data"` // мастер-ключ, зашифрованный ключом пароля (hex)
}

// MasterKeyManager управляет мастер-ключом.
// Мастер-ключ случайный; на диске он хранится зашифрованным ключом,
// полученным из мастер-пароля.
type MasterKeyManager struct {
	masterKey  []byte
	header     MasterKeyHeader
	keyPath    string
	algorithm  string
	iterations int
	sessionTTL time.Duration
	isLocked   bool
	mu         sync.RWMutex
}

// Option настраивает менеджер
type Option func(*MasterKeyManager)

// WithAlgorithm задает алгоритм для новых ключей.
func WithAlgorithm(alg string) Option {
	return func(m *MasterKeyManager) {
		m.algorithm = alg
	}
}

// WithIterations задает число итераций PBKDF2 для новых ключей.
func WithIterations(n int) Option {
	return func(m *MasterKeyManager) {
		m.iterations = n
	}
}

// WithSessionTTL задает время жизни сессии после разблокировки.
func WithSessionTTL(ttl time.Duration) Option {
	return func(m *MasterKeyManager) {
		m.sessionTTL = ttl
	}
}

// NewMasterKeyManager создает новый менеджер мастер-ключа
func NewMasterKeyManager(keyPath string, opts ...Option) (*MasterKeyManager, error) {
	absPath, err := filepath.Abs(keyPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка определения пути: %w", err)
	}

	m := &MasterKeyManager{
		keyPath:    absPath,
		algorithm:  AlgArgon2id,
		iterations: pbkdf2Iterations,
		sessionTTL: defaultSessionTTL,
		isLocked:   true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.algorithm != AlgArgon2id && m.algorithm != AlgPBKDF2 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, m.algorithm)
	}

	if _, err := os.Stat(absPath); err == nil {
		kf, err := m.readKeyFile()
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки заголовка ключа: %w", err)
		}
		m.header = kf.Header
		// Пытаемся восстановить активную сессию
		_ = m.LoadSession()
	}

	return m, nil
}

// Path возвращает путь к файлу мастер-ключа.
func (m *MasterKeyManager) Path() string {
	return m.keyPath
}

// GenerateMasterKey создает новый мастер-ключ и сохраняет его,
// зашифровав ключом из пароля. Менеджер остается разблокированным.
func (m *MasterKeyManager) GenerateMasterKey(password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.keyPath); err == nil {
		return ErrAlreadyInitialized
	}
	if err := os.MkdirAll(filepath.Dir(m.keyPath), 0700); err != nil {
		return fmt.Errorf("ошибка создания каталога: %w", err)
	}

	masterKey, err := GenerateRandomBytes(masterKeyLength)
	if err != nil {
		return fmt.Errorf("ошибка генерации мастер-ключа: %w", err)
	}

	now := time.Now().UTC()
	header := MasterKeyHeader{
		Version:      keyVersion,
		KeyAlgorithm: m.algorithm,
		CreatedAt:    now,
	}
	if m.algorithm == AlgPBKDF2 {
		header.Iterations = m.iterations
	}

	if err := m.writeWrapped(header, password, masterKey); err != nil {
		clearMemory(masterKey)
		return fmt.Errorf("ошибка сохранения мастер-ключа: %w", err)
	}

	m.masterKey = masterKey
	m.isLocked = false
	return m.saveSessionLocked()
}

// UnlockMasterKey расшифровывает мастер-ключ паролем и открывает сессию
func (m *MasterKeyManager) UnlockMasterKey(password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isLocked {
		return nil
	}

	kf, err := m.readKeyFile()
	if err != nil {
		return err
	}
	m.header = kf.Header

	kek, err := m.verifyPassword(kf.Header, password)
	if err != nil {
		return err
	}
	defer clearMemory(kek)

	wrapped, err := hex.DecodeString(kf.Data)
	if err != nil {
		return fmt.Errorf("ошибка декодирования зашифрованного ключа: %w", err)
	}
	masterKey, err := decryptWithKey(kek, wrapped, nil)
	if err != nil {
		return fmt.Errorf("ошибка расшифровки мастер-ключа: %w", err)
	}

	m.masterKey = masterKey
	m.isLocked = false
	return m.saveSessionLocked()
}

// ChangeMasterPassword перешифровывает мастер-ключ новым паролем.
// Данные, зашифрованные мастер-ключом, остаются доступными.
func (m *MasterKeyManager) ChangeMasterPassword(oldPassword, newPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kf, err := m.readKeyFile()
	if err != nil {
		return err
	}
	kek, err := m.verifyPassword(kf.Header, oldPassword)
	if err != nil {
		return fmt.Errorf("неверный старый пароль: %w", err)
	}
	defer clearMemory(kek)

	wrapped, err := hex.DecodeString(kf.Data)
	if err != nil {
		return fmt.Errorf("ошибка декодирования зашифрованного ключа: %w", err)
	}
	masterKey, err := decryptWithKey(kek, wrapped, nil)
	if err != nil {
		return fmt.Errorf("ошибка расшифровки мастер-ключа: %w", err)
	}
	defer clearMemory(masterKey)

	header := kf.Header
	header.KeyAlgorithm = m.algorithm
	header.Iterations = 0
	if m.algorithm == AlgPBKDF2 {
		header.Iterations = m.iterations
	}
	return m.writeWrapped(header, newPassword, masterKey)
}

// EncryptData шифрует данные мастер-ключом
func (m *MasterKeyManager) EncryptData(plaintext []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.isLocked {
		return nil, ErrLocked
	}
	return encryptWithKey(m.masterKey, plaintext, nil)
}

// DecryptData расшифровывает данные мастер-ключом
func (m *MasterKeyManager) DecryptData(ciphertext []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.isLocked {
		return nil, ErrLocked
	}
	return decryptWithKey(m.masterKey, ciphertext, nil)
}

// GetKeyHash возвращает хэш текущего мастер-ключа
func (m *MasterKeyManager) GetKeyHash() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.isLocked {
		return "", ErrLocked
	}
	keyHash := sha256.Sum256(m.masterKey)
	return hex.EncodeToString(keyHash[:]), nil
}

// Lock очищает ключ из памяти и удаляет сессию
func (m *MasterKeyManager) Lock() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearKey()
	return m.clearSession()
}

// IsLocked проверяет, заблокирован ли ключ
func (m *MasterKeyManager) IsLocked() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isLocked
}

// IsInitialized проверяет, создан ли мастер-ключ
func (m *MasterKeyManager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.header.CreatedAt.IsZero()
}

// Header возвращает метаданные ключа.
func (m *MasterKeyManager) Header() MasterKeyHeader {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.header
}

// writeWrapped генерирует новую соль, шифрует masterKey ключом пароля и пишет файл.
func (m *MasterKeyManager) writeWrapped(header MasterKeyHeader, password string, masterKey []byte) error {
	salt, err := GenerateRandomBytes(saltLength)
	if err != nil {
		return fmt.Errorf("ошибка генерации соли: %w", err)
	}
	header.Salt = hex.EncodeToString(salt)
	header.UpdatedAt = time.Now().UTC()

	kek, err := deriveKey(header, password)
	if err != nil {
		return err
	}
	defer clearMemory(kek)

	keyHash := sha256.Sum256(kek)
	header.KeyHash = hex.EncodeToString(keyHash[:])

	wrapped, err := encryptWithKey(kek, masterKey, nil)
	if err != nil {
		return fmt.Errorf("ошибка шифрования мастер-ключа: %w", err)
	}

	data, err := json.MarshalIndent(keyFile{Header: header, Data: hex.EncodeToString(wrapped)}, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации: %w", err)
	}

	// Пишем во временный файл и переименовываем, чтобы не потерять ключ при сбое
	tmp := m.keyPath + ".tmp"
	if err := os.WriteFile(tmp, data, masterKeyPermissions); err != nil {
		return fmt.Errorf("ошибка записи файла: %w", err)
	}
	if err := os.Rename(tmp, m.keyPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("ошибка записи файла: %w", err)
	}

	m.header = header
	return nil
}

func (m *MasterKeyManager) readKeyFile() (keyFile, error) {
	var kf keyFile
	data, err := os.ReadFile(m.keyPath)
	if errors.Is(err, os.ErrNotExist) {
		return kf, ErrNotInitialized
	}
	if err != nil {
		return kf, fmt.Errorf("ошибка чтения файла ключа: %w", err)
	}
	if err := json.Unmarshal(data, &kf); err != nil {
		return kf, fmt.Errorf("ошибка декодирования файла ключа: %w", err)
	}
	return kf, nil
}

// verifyPassword возвращает ключ пароля, если его хэш совпадает с заголовком
func (m *MasterKeyManager) verifyPassword(header MasterKeyHeader, password string) ([]byte, error) {
	kek, err := deriveKey(header, password)
	if err != nil {
		return nil, err
	}
	keyHash := sha256.Sum256(kek)
	expected, err := hex.DecodeString(header.KeyHash)
	if err != nil || subtle.ConstantTimeCompare(keyHash[:], expected) != 1 {
		clearMemory(kek)
		return nil, ErrWrongPassword
	}
	return kek, nil
}

func deriveKey(header MasterKeyHeader, password string) ([]byte, error) {
	salt, err := hex.DecodeString(header.Salt)
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования соли: %w", err)
	}

	switch header.KeyAlgorithm {
	case AlgPBKDF2:
		iterations := header.Iterations
		if iterations <= 0 {
			iterations = pbkdf2Iterations
		}
		return pbkdf2.Key([]byte(password), salt, iterations, pbkdf2KeyLength, sha256.New), nil
	case AlgArgon2id:
		return argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, header.KeyAlgorithm)
	}
}

// clearKey затирает мастер-ключ в памяти
func (m *MasterKeyManager) clearKey() {
	clearMemory(m.masterKey)
	m.masterKey = nil
	m.isLocked = true
}
