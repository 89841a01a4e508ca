package lib

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret string, sub, jti uuid.UUID) string {
	t.Helper()

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub.String(),
		"email": "test@example.com",
		"role":  "customer",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
		"jti":   jti.String(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseTokenRoundTrip(t *testing.T) {
	sub := uuid.New()
	jti := uuid.New()
	tokenStr := signTestToken(t, "test-secret", sub, jti)

	claims, err := ParseToken(tokenStr, "test-secret")
	require.NoError(t, err)

	assert.Equal(t, sub, claims.Sub)
	assert.Equal(t, jti, claims.Jti)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.True(t, claims.Exp.After(time.Now()))
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tokenStr := signTestToken(t, "test-secret", uuid.New(), uuid.New())

	_, err := ParseToken(tokenStr, "other-secret")
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", "test-secret")
	assert.Error(t, err)
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	for range 20 {
		num := GenerateOrderNumber()
		require.Len(t, num, 10)
		assert.Equal(t, "OUA-", num[:4])
		for _, r := range num[4:] {
			assert.True(t, (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'), "unexpected rune %q in %s", r, num)
		}
	}
}

func TestGenerateSKU(t *testing.T) {
	sku, err := GenerateSKU("Robe Kabyle", 6)
	require.NoError(t, err)

	assert.Equal(t, "ROB-", sku[:4])
	assert.Len(t, sku, 10)
}
