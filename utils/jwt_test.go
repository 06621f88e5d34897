package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("ann@example.com", "ann")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, "ann", claims.Username)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsTamperedToken(t *testing.T) {
	token, err := GenerateToken("ann@example.com", "ann")
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)
}
