package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealer(t *testing.T) {
	m := newTestManager(t, WithSessionTTL(0))
	require.NoError(t, m.GenerateMasterKey("pw"))
	s := NewSealer(m)

	aad := []byte("keep/keep-items")
	blob, err := s.Seal([]byte(`[]`), aad)
	require.NoError(t, err)
	assert.Equal(t, blobVersion, blob[0])

	plain, err := s.Open(blob, aad)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), plain)

	// чужой адрес не открывается
	_, err = s.Open(blob, []byte("keep/other"))
	assert.Error(t, err)

	blob[0] = 9
	_, err = s.Open(blob, aad)
	assert.ErrorIs(t, err, ErrUnsupportedBlobVersion)

	_, err = s.Open(nil, aad)
	assert.ErrorIs(t, err, ErrCiphertextTooShort)

	require.NoError(t, m.Lock())
	_, err = s.Seal([]byte(`[]`), aad)
	assert.ErrorIs(t, err, ErrLocked)
}
