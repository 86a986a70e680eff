package item

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MultilineLimit - максимальная длина многострочного поля в символах
	MultilineLimit = 500

	longNumberGroup     = 5
	longNumberSeparator = " "
)

// dateLayouts - форматы, которые принимает поле даты
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"01/2006",
	"01/06",
}

// Normalize приводит программно заданный текст к каноничному виду поля.
// Многострочный текст обрезается до MultilineLimit, разделители
// в номере карты не вставляются.
func Normalize(kind InputKind, text string) string {
	switch kind {
	case KindMultiline:
		return truncate(text, MultilineLimit)
	default:
		return text
	}
}

// Remaining возвращает, сколько символов еще можно ввести в многострочное поле.
func Remaining(text string) int {
	return MultilineLimit - utf8.RuneCountInString(text)
}

func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	r := []rune(text)
	return string(r[:limit])
}

// TypeLongNumber повторяет поведение поля номера карты при наборе:
// когда длина нового текста кратна 5 и символ был добавлен (не удален),
// перед последним символом вставляется пробел.
func TypeLongNumber(prev, next string) string {
	n := utf8.RuneCountInString(next)
	if n == 0 || n < utf8.RuneCountInString(prev) || n%longNumberGroup != 0 {
		return next
	}
	r := []rune(next)
	return string(r[:n-1]) + longNumberSeparator + string(r[n-1])
}

// StripSeparators убирает разделители групп из номера карты.
func StripSeparators(s string) string {
	return strings.ReplaceAll(s, longNumberSeparator, "")
}

// ParseDateInput разбирает ввод даты и возвращает ISO-8601 строку (RFC 3339, UTC).
// Пустой ввод дает пустую строку.
func ParseDateInput(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FormatDate(t), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// FormatDate форматирует дату так, как она хранится в полях карты.
func FormatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
