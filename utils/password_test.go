package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)
	require.NotEqual(t, "Sup3rSecret!", hashed)

	assert.True(t, CheckPassword("Sup3rSecret!", hashed))
	assert.False(t, CheckPassword("wrong-password", hashed))
}

func TestHashPasswordSaltsEveryCall(t *testing.T) {
	first, err := HashPassword("same-input")
	require.NoError(t, err)
	second, err := HashPassword("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("same-input", first))
	assert.True(t, CheckPassword("same-input", second))
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("anything", "not-a-bcrypt-hash"))
	assert.False(t, CheckPassword("anything", ""))
}

func TestGenerateRandomPassword(t *testing.T) {
	password := GenerateRandomPassword()
	assert.Len(t, password, 10)
	assert.NotEqual(t, password, GenerateRandomPassword())
}
