package category

import (
	"BlogGolang/pkg/response"
	"net/http"
)

var (
	ErrCategoryNotFound   = response.NewError(http.StatusNotFound, "category not found")
	ErrCategoryNameExists = response.NewError(http.StatusConflict, "category name already exists")
	ErrCategorySlugExists = response.NewError(http.StatusConflict, "category slug already exists")
)

// ErrCategoryHasPosts is raised when deletion is blocked by dependent
// posts; the message names the exact count.
func ErrCategoryHasPosts(name string, count int) error {
	return response.NewErrorf(http.StatusConflict,
		"cannot delete category %q because it has %d posts associated with it", name, count)
}
