package tag

import (
	"BlogGolang/pkg/response"
	"net/http"
)

var (
	ErrTagNotFound   = response.NewError(http.StatusNotFound, "tag not found")
	ErrTagNameExists = response.NewError(http.StatusConflict, "tag name already exists")
	ErrTagSlugExists = response.NewError(http.StatusConflict, "tag slug already exists")
)
