package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	h, err := Hash("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", h)

	ok, err := Verify("hunter2", h)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify("hunter3", h)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyAcceptsLegacyBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("hunter2"), 10)
	require.NoError(t, err)

	ok, err := Verify("hunter2", string(legacy))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify("wrong", string(legacy))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyRejectsUnknownFormat(t *testing.T) {
	ok, err := Verify("x", "plaintext")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnknownHash)
}
