package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Small parameters keep the key derivation fast in tests.
var testParams = Argon2Params{
	Time:    1,
	Memory:  8 * 1024,
	Threads: 1,
	KeyLen:  32,
	SaltLen: 16,
}

func TestPasswordRoundtrip(t *testing.T) {
	hash, err := HashPasswordWithParams("s3cret!", testParams)
	require.NoError(t, err)
	assert.Contains(t, string(hash), "$argon2id$v=19$")

	ok, err := VerifyPassword("s3cret!", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	first, err := HashPasswordWithParams("same", testParams)
	require.NoError(t, err)
	second, err := HashPasswordWithParams("same", testParams)
	require.NoError(t, err)

	assert.NotEqual(t, string(first), string(second))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	for _, hash := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$t=1,m=8192,p=1$AAAA$AAAA",
		"$argon2id$v=19$t=1,m=8192,p=1$AAAA",
	} {
		_, err := VerifyPassword("whatever", []byte(hash))
		assert.ErrorIs(t, err, ErrMalformedHash, hash)
	}
}
