package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("secret", "u1", time.Hour)
	require.NoError(t, err)

	uid, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", "u1", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", "u1", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}
