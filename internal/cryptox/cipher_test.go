package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	return common.GenerateRandByteArray(KeySize)
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := testKey()

	for _, pt := range []string{"", "hunter2", "пароль 🔑", string(make([]byte, 4096))} {
		blob, err := Seal(pt, key)
		require.NoError(t, err)

		got, err := Open(blob, key)
		require.NoError(t, err)
		assert.Equal(t, pt, got)
	}
}

func TestSeal_FreshNonceEachCall(t *testing.T) {
	key := testKey()

	a, err := Seal("same", key)
	require.NoError(t, err)
	b, err := Seal("same", key)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)

	rawA, _ := base64.StdEncoding.DecodeString(a)
	rawB, _ := base64.StdEncoding.DecodeString(b)
	assert.NotEqual(t, rawA[:NonceSize], rawB[:NonceSize])
}

func TestSeal_Layout(t *testing.T) {
	blob, err := Seal("abc", testKey())
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(blob)
	require.NoError(t, err)
	// nonce + plaintext + 16 byte tag
	assert.Len(t, raw, NonceSize+3+16)
}

func TestSeal_InvalidKey(t *testing.T) {
	_, err := Seal("x", []byte("short"))
	require.Error(t, err)
}

func TestOpen_WrongKey(t *testing.T) {
	blob, err := Seal("secret", testKey())
	require.NoError(t, err)

	_, err = Open(blob, testKey())
	require.ErrorIs(t, err, ErrAuthFailure)
}

func TestOpen_TamperedBytes(t *testing.T) {
	key := testKey()
	blob, err := Seal("tamper me", key)
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(blob)
	require.NoError(t, err)

	for _, idx := range []int{0, NonceSize, len(raw) - 1} {
		mod := make([]byte, len(raw))
		copy(mod, raw)
		mod[idx] ^= 0x01

		_, err := Open(base64.StdEncoding.EncodeToString(mod), key)
		assert.ErrorIs(t, err, ErrAuthFailure, "flip at %d", idx)
	}
}

func TestOpen_MalformedInput(t *testing.T) {
	key := testKey()

	tests := []struct {
		name string
		blob string
		key  []byte
	}{
		{"not base64", "%%%not-base64%%%", key},
		{"empty", "", key},
		{"shorter than nonce", base64.StdEncoding.EncodeToString([]byte{1, 2, 3}), key},
		{"nonce without tag", base64.StdEncoding.EncodeToString(make([]byte, NonceSize+4)), key},
		{"bad key size", base64.StdEncoding.EncodeToString(make([]byte, 64)), []byte("k")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.blob, tt.key)
			assert.ErrorIs(t, err, ErrAuthFailure)
		})
	}
}
