package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// PasswordStrength - оценка сложности мастер-пароля
type PasswordStrength int

const (
	PasswordWeak PasswordStrength = iota
	PasswordMedium
	PasswordStrong
)

func (p PasswordStrength) String() string {
	switch p {
	case PasswordStrong:
		return "strong"
	case PasswordMedium:
		return "medium"
	default:
		return "weak"
	}
}

// GenerateRandomBytes генерирует криптографически безопасные случайные байты
func GenerateRandomBytes(size int) ([]byte, error) {
	bytes := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, bytes); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return bytes, nil
}

// CheckPasswordStrength оценивает мастер-пароль по длине и наборам символов.
func CheckPasswordStrength(password string) PasswordStrength {
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}

	length := len([]rune(password))
	switch {
	case length >= 12 && upper && lower && digit && special:
		return PasswordStrong
	case length >= 8 && upper && lower && digit:
		return PasswordMedium
	default:
		return PasswordWeak
	}
}

// MaskSensitiveData оставляет видимыми только крайние символы
func MaskSensitiveData(s string) string {
	r := []rune(s)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return string(r[0]) + strings.Repeat("*", len(r)-2) + string(r[len(r)-1])
}

// clearMemory затирает чувствительные данные
func clearMemory(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
