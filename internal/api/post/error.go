package post

import (
	"BlogGolang/pkg/response"
	"net/http"
)

var (
	ErrPostNotFound     = response.NewError(http.StatusNotFound, "post not found")
	ErrPostSlugExists   = response.NewError(http.StatusConflict, "post slug already exists")
	ErrCategoryNotFound = response.NewError(http.StatusNotFound, "category not found")
)
