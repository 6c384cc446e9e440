package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-rental/internal/apperr"
)

func testKey() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestNewRejectsBadKeyLength(t *testing.T) {
	_, err := New([]byte("too short"))
	assert.Error(t, err)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	v, err := New(testKey())
	require.NoError(t, err)

	inputs := []string{
		"4111111111111111",
		"12/27",
		"",
		"texto con acentos: ñandú",
	}

	for _, in := range inputs {
		enc, err := v.Encrypt(in)
		require.NoError(t, err)

		dec, err := v.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, in, dec)
	}
}

func TestEncryptUsesFreshNonce(t *testing.T) {
	v, err := New(testKey())
	require.NoError(t, err)

	first, err := v.Encrypt("4111111111111111")
	require.NoError(t, err)
	second, err := v.Encrypt("4111111111111111")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDecryptFailsGenerically(t *testing.T) {
	v, err := New(testKey())
	require.NoError(t, err)

	other, err := New([]byte("ffffffffffffffffffffffffffffffff"))
	require.NoError(t, err)

	foreign, err := other.Encrypt("secret")
	require.NoError(t, err)

	cases := map[string]string{
		"not base64":    "!!not-base64!!",
		"too short":     "YWJj",
		"wrong key":     foreign,
		"empty payload": "",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Decrypt(input)
			assert.ErrorIs(t, err, apperr.ErrCrypto)
		})
	}
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	v, err := New(testKey())
	require.NoError(t, err)

	enc, err := v.Encrypt("4111111111111111")
	require.NoError(t, err)

	tampered := []byte(enc)
	tampered[len(tampered)-5] ^= 0x01

	_, err = v.Decrypt(string(tampered))
	assert.ErrorIs(t, err, apperr.ErrCrypto)
}

func TestMaskCard(t *testing.T) {
	assert.Equal(t, "**** **** **** 1111", MaskCard("4111111111111111"))
	assert.Equal(t, "**** **** **** 1234", MaskCard("1234"))
	assert.Equal(t, "****", MaskCard("123"))
	assert.Equal(t, "****", MaskCard(""))
}
