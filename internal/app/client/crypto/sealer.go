// internal/app/client/crypto/sealer.go
package crypto

import (
	"fmt"
)

const blobVersion byte = 1

// Sealer шифрует коллекцию перед записью в хранилище.
// aad привязывает шифротекст к адресу записи (сервис и ключ),
// так что блоб нельзя подложить под другой ключ.
type Sealer struct {
	keys *MasterKeyManager
}

// NewSealer создает шифровальщик поверх мастер-ключа
func NewSealer(keys *MasterKeyManager) *Sealer {
	return &Sealer{keys: keys}
}

// Seal шифрует plaintext. Формат: версия (1 байт) | nonce | шифротекст.
func (s *Sealer) Seal(plaintext, aad []byte) ([]byte, error) {
	s.keys.mu.RLock()
	defer s.keys.mu.RUnlock()

	if s.keys.isLocked {
		return nil, ErrLocked
	}
	sealed, err := encryptWithKey(s.keys.masterKey, plaintext, aad)
	if err != nil {
		return nil, err
	}
	return append([]byte{blobVersion}, sealed...), nil
}

// Open расшифровывает результат Seal.
func (s *Sealer) Open(blob, aad []byte) ([]byte, error) {
	s.keys.mu.RLock()
	defer s.keys.mu.RUnlock()

	if s.keys.isLocked {
		return nil, ErrLocked
	}
	if len(blob) == 0 {
		return nil, ErrCiphertextTooShort
	}
	if blob[0] != blobVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBlobVersion, blob[0])
	}
	return decryptWithKey(s.keys.masterKey, blob[1:], aad)
}
