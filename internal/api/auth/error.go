package auth

import (
	"BlogGolang/pkg/response"
	"net/http"
)

var (
	// ErrInvalidCredentials covers both unknown emails and wrong
	// passwords so the response does not leak which one failed.
	ErrInvalidCredentials = response.NewError(http.StatusUnauthorized, "invalid email or password")
	ErrProfileNotFound    = response.NewError(http.StatusUnauthorized, "account no longer exists")
)
