package jwtPkg

import (
	"BlogGolang/internal/entity"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

const AccessTokenSecretEnv = "JWT_ACCESS_TOKEN_SECRET"

// TokenDuration is the fixed lifetime of issued access tokens.
const TokenDuration = 24 * time.Hour

// Sign issues an HS256 access token for the given user. Claims carry the
// user id as subject plus email and role; jti identifies the token for the
// revocation denylist. The signing secret is mandatory: issuing fails if
// JWT_ACCESS_TOKEN_SECRET is unset.
func Sign(user entity.UserLoginData) (string, string, int64, error) {
	secret := os.Getenv(AccessTokenSecretEnv)
	if secret == "" {
		return "", "", 0, fmt.Errorf("%s not set", AccessTokenSecretEnv)
	}

	jti := ulid.Make().String()
	expiredAt := time.Now().Add(TokenDuration).Unix()

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"jti":   jti,
		"exp":   expiredAt,
	}

	to := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := to.SignedString([]byte(secret))
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", "", 0, err
	}

	return accessToken, jti, expiredAt, nil
}

// ExtractBearerToken pulls the raw token out of the Authorization header.
func ExtractBearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get("Authorization")
	if header == "" {
		return "", errors.New("empty Authorization header")
	}

	if !strings.HasPrefix(header, "Bearer ") {
		return "", errors.New("invalid Authorization format")
	}

	accessToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if accessToken == "" {
		return "", errors.New("empty token")
	}

	return accessToken, nil
}

// VerifyTokenHeader parses and verifies the bearer token from the request.
// Any verification failure rejects the token.
func VerifyTokenHeader(c *fiber.Ctx) (*jwt.Token, error) {
	accessToken, err := ExtractBearerToken(c)
	if err != nil {
		return nil, err
	}

	return Parse(accessToken)
}

// Parse verifies signature and expiry of a raw token string.
func Parse(accessToken string) (*jwt.Token, error) {
	secret := os.Getenv(AccessTokenSecretEnv)
	if secret == "" {
		return nil, errors.New("JWT secret not configured")
	}

	token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	return token, nil
}

// TokenID returns the jti claim and remaining lifetime of a verified token.
func TokenID(token *jwt.Token) (string, time.Duration, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, errors.New("invalid token claims")
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return "", 0, errors.New("token has no jti claim")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return "", 0, errors.New("token has no exp claim")
	}

	remaining := time.Until(time.Unix(int64(exp), 0))
	if remaining < 0 {
		remaining = 0
	}

	return jti, remaining, nil
}

// GetUserLoginData reads the authenticated identity placed in Locals by the
// token middleware.
func GetUserLoginData(c *fiber.Ctx) (entity.UserLoginData, error) {
	userData := c.Locals("user")

	user, ok := userData.(entity.UserLoginData)
	if !ok {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	return user, nil
}
