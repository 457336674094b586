package category

import (
	"BlogGolang/internal/entity"
	"time"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Slug        string `json:"slug" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"omitempty"`
	Color       string `json:"color" validate:"omitempty,max=16"`
}

type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=255"`
	Slug        string `json:"slug" validate:"omitempty,min=2,max=255"`
	Description string `json:"description" validate:"omitempty"`
	Color       string `json:"color" validate:"omitempty,max=16"`
}

type CategoryResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Slug        string               `json:"slug"`
	Description string               `json:"description,omitempty"`
	Color       string               `json:"color,omitempty"`
	PostCount   *int                 `json:"postCount,omitempty"`
	Posts       []entity.PostSummary `json:"posts,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
