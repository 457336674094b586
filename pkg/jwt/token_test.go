package jwtPkg

import (
	"net/http/httptest"
	"testing"
	"time"

	"BlogGolang/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	t.Setenv(AccessTokenSecretEnv, "test-secret")

	signed, jti, expiredAt, err := Sign(entity.UserLoginData{
		ID:    "01J0USER",
		Email: "ana@example.com",
		Role:  entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, jti)
	assert.InDelta(t, time.Now().Add(TokenDuration).Unix(), expiredAt, 5)

	token, err := Parse(signed)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "01J0USER", claims["sub"])
	assert.Equal(t, "ana@example.com", claims["email"])
	assert.Equal(t, entity.RoleAdmin, claims["role"])
	assert.Equal(t, jti, claims["jti"])
}

func TestSign_MissingSecret(t *testing.T) {
	t.Setenv(AccessTokenSecretEnv, "")

	_, _, _, err := Sign(entity.UserLoginData{ID: "01J0USER"})
	assert.Error(t, err)
}

func TestParse_TamperedToken(t *testing.T) {
	t.Setenv(AccessTokenSecretEnv, "test-secret")

	signed, _, _, err := Sign(entity.UserLoginData{ID: "01J0USER"})
	require.NoError(t, err)

	_, err = Parse(signed + "x")
	assert.Error(t, err)
}

func TestTokenID(t *testing.T) {
	t.Setenv(AccessTokenSecretEnv, "test-secret")

	signed, jti, _, err := Sign(entity.UserLoginData{ID: "01J0USER"})
	require.NoError(t, err)

	token, err := Parse(signed)
	require.NoError(t, err)

	gotJti, remaining, err := TokenID(token)
	require.NoError(t, err)
	assert.Equal(t, jti, gotJti)
	assert.Greater(t, remaining, 23*time.Hour)
	assert.LessOrEqual(t, remaining, TokenDuration)
}

func TestVerifyTokenHeader(t *testing.T) {
	t.Setenv(AccessTokenSecretEnv, "test-secret")

	signed, _, _, err := Sign(entity.UserLoginData{ID: "01J0USER"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		wantErr bool
	}{
		{"valid bearer", "Bearer " + signed, false},
		{"missing header", "", true},
		{"wrong scheme", "Basic " + signed, true},
		{"empty token", "Bearer ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verifyErr error
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				_, verifyErr = VerifyTokenHeader(c)
				return nil
			})

			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			_, err := app.Test(req)
			require.NoError(t, err)

			if tt.wantErr {
				assert.Error(t, verifyErr)
			} else {
				assert.NoError(t, verifyErr)
			}
		})
	}
}
