package user

import (
	"BlogGolang/pkg/response"
	"net/http"
)

var (
	ErrUserNotFound             = response.NewError(http.StatusNotFound, "user not found")
	ErrEmailExists              = response.NewError(http.StatusConflict, "email already exists")
	ErrCurrentPasswordIncorrect = response.NewError(http.StatusBadRequest, "current password is incorrect")
	ErrInvalidRole              = response.NewError(http.StatusBadRequest, "invalid role")
)

// ErrUserHasPosts is raised when deletion is blocked by dependent posts;
// the message names the exact count.
func ErrUserHasPosts(name string, count int) error {
	return response.NewErrorf(http.StatusConflict,
		"cannot delete user %q because they have %d posts associated with them", name, count)
}
