package tag

import (
	"BlogGolang/internal/entity"
	"time"
)

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
	Slug string `json:"slug" validate:"required,min=2,max=255"`
}

type UpdateTagRequest struct {
	Name string `json:"name" validate:"omitempty,min=2,max=255"`
	Slug string `json:"slug" validate:"omitempty,min=2,max=255"`
}

type TagResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Slug      string               `json:"slug"`
	PostCount *int                 `json:"postCount,omitempty"`
	Posts     []entity.PostSummary `json:"posts,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

type TagListResponse struct {
	Tags []TagResponse `json:"tags"`
}
