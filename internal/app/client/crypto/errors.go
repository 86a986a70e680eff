package crypto

import (
	"errors"
)

var (
	ErrLocked                 = errors.New("мастер-ключ не загружен или заблокирован")
	ErrWrongPassword          = errors.New("неверный пароль")
	ErrNotInitialized         = errors.New("мастер-ключ не создан")
	ErrAlreadyInitialized     = errors.New("мастер-ключ уже существует")
	ErrUnsupportedAlgorithm   = errors.New("неподдерживаемый алгоритм")
	ErrSessionNotFound        = errors.New("сессия не найдена")
	ErrSessionExpired         = errors.New("сессия истекла")
	ErrCiphertextTooShort     = errors.New("шифротекст слишком короткий")
	ErrUnsupportedBlobVersion = errors.New("неизвестная версия зашифрованных данных")
)
