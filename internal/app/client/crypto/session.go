// internal/app/client/crypto/session.go
package crypto

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	defaultSessionTTL  = 15 * time.Minute
	sessionPermissions = 0600
	sessionFileName    = ".session"
)

// Session хранит разблокированный мастер-ключ между запусками CLI
type Session struct {
	MasterKey []byte    `json:"master_key"` // мастер-ключ, зашифрованный ключом сессии
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionFile struct {
	Key  string `json:"key"`
	Data string `json:"data"`
}

// SaveSession сохраняет сессию с разблокированным ключом
func (m *MasterKeyManager) SaveSession() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saveSessionLocked()
}

func (m *MasterKeyManager) saveSessionLocked() error {
	if m.isLocked || len(m.masterKey) == 0 {
		return ErrLocked
	}
	if m.sessionTTL <= 0 {
		return nil
	}

	sessionKey, err := GenerateRandomBytes(32)
	if err != nil {
		return fmt.Errorf("ошибка генерации ключа сессии: %w", err)
	}

	wrapped, err := encryptWithKey(sessionKey, m.masterKey, nil)
	if err != nil {
		return fmt.Errorf("ошибка шифрования мастер-ключа: %w", err)
	}

	now := time.Now().UTC()
	data, err := json.Marshal(Session{
		MasterKey: wrapped,
		ExpiresAt: now.Add(m.sessionTTL),
		CreatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("ошибка сериализации сессии: %w", err)
	}

	encrypted, err := encryptWithKey(sessionKey, data, nil)
	if err != nil {
		return fmt.Errorf("ошибка шифрования сессии: %w", err)
	}

	out, err := json.MarshalIndent(sessionFile{
		Key:  hex.EncodeToString(sessionKey),
		Data: hex.EncodeToString(encrypted),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации: %w", err)
	}

	if err := os.WriteFile(m.sessionPath(), out, sessionPermissions); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}
	return nil
}

// LoadSession восстанавливает мастер-ключ из непросроченной сессии
func (m *MasterKeyManager) LoadSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := os.ReadFile(m.sessionPath())
	if errors.Is(err, os.ErrNotExist) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("ошибка чтения сессии: %w", err)
	}

	masterKey, err := openSession(raw, time.Now())
	if err != nil {
		// Сессия повреждена или истекла, удаляем её
		_ = m.clearSession()
		return err
	}

	m.masterKey = masterKey
	m.isLocked = false
	return nil
}

func openSession(raw []byte, now time.Time) ([]byte, error) {
	var sf sessionFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("ошибка декодирования сессии: %w", err)
	}
	sessionKey, err := hex.DecodeString(sf.Key)
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования ключа сессии: %w", err)
	}
	encrypted, err := hex.DecodeString(sf.Data)
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования данных сессии: %w", err)
	}

	data, err := decryptWithKey(sessionKey, encrypted, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка расшифровки сессии: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("ошибка декодирования сессии: %w", err)
	}
	if now.After(s.ExpiresAt) {
		return nil, ErrSessionExpired
	}

	masterKey, err := decryptWithKey(sessionKey, s.MasterKey, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка расшифровки мастер-ключа: %w", err)
	}
	return masterKey, nil
}

// ClearSession удаляет файл сессии
func (m *MasterKeyManager) ClearSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearSession()
}

func (m *MasterKeyManager) clearSession() error {
	if err := os.Remove(m.sessionPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}
	return nil
}

func (m *MasterKeyManager) sessionPath() string {
	return filepath.Join(filepath.Dir(m.keyPath), sessionFileName)
}
