package item

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Multiline(t *testing.T) {
	long := strings.Repeat("я", MultilineLimit+20)
	got := Normalize(KindMultiline, long)
	assert.Equal(t, MultilineLimit, len([]rune(got)))
	assert.Equal(t, 0, Remaining(got))
	assert.Equal(t, MultilineLimit-3, Remaining("abc"))

	// Номер карты, заданный программно, не форматируется.
	assert.Equal(t, "12345678", Normalize(KindLongNumber, "12345678"))
}

func TestTypeLongNumber(t *testing.T) {
	typed := ""
	for _, r := range "12345678" {
		typed = TypeLongNumber(typed, typed+string(r))
	}
	assert.Equal(t, "1234 5678", typed)
	assert.Equal(t, "12345678", StripSeparators(typed))

	// Удаление символа не вставляет разделитель.
	assert.Equal(t, "1234 ", TypeLongNumber("1234 5", "1234 "))
	assert.Equal(t, "", TypeLongNumber("1", ""))
}

func TestParseDateInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-01", "2024-03-01T00:00:00Z"},
		{"03/2027", "2027-03-01T00:00:00Z"},
		{"03/27", "2027-03-01T00:00:00Z"},
		{"2024-03-01T10:00:00+02:00", "2024-03-01T08:00:00Z"},
		{"  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDateInput(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseDateInput("next year")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
