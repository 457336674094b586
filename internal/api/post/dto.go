package post

import (
	"BlogGolang/internal/entity"
	"time"
)

type CreatePostRequest struct {
	Title          string   `json:"title" validate:"required,min=2,max=255"`
	Slug           string   `json:"slug" validate:"required,min=2,max=255"`
	Excerpt        string   `json:"excerpt" validate:"omitempty,max=1024"`
	Content        string   `json:"content" validate:"required"`
	Published      bool     `json:"published"`
	Featured       bool     `json:"featured"`
	Image          string   `json:"image" validate:"omitempty,max=512"`
	ReadTime       int      `json:"readTime" validate:"omitempty,min=0"`
	SeoTitle       string   `json:"seoTitle" validate:"omitempty,max=255"`
	SeoDescription string   `json:"seoDescription" validate:"omitempty,max=512"`
	AuthorID       string   `json:"authorId" validate:"required"`
	CategoryID     string   `json:"categoryId" validate:"required"`
	Tags           []string `json:"tags" validate:"omitempty,dive,min=1,max=255"`
}

// UpdatePostRequest uses pointers where absence and zero value must be
// told apart. A present tags key replaces the full tag set.
type UpdatePostRequest struct {
	Title          string    `json:"title" validate:"omitempty,min=2,max=255"`
	Slug           string    `json:"slug" validate:"omitempty,min=2,max=255"`
	Excerpt        string    `json:"excerpt" validate:"omitempty,max=1024"`
	Content        string    `json:"content"`
	Published      *bool     `json:"published"`
	Featured       *bool     `json:"featured"`
	Image          string    `json:"image" validate:"omitempty,max=512"`
	ReadTime       *int      `json:"readTime" validate:"omitempty,min=0"`
	SeoTitle       string    `json:"seoTitle" validate:"omitempty,max=255"`
	SeoDescription string    `json:"seoDescription" validate:"omitempty,max=512"`
	CategoryID     string    `json:"categoryId"`
	Tags           *[]string `json:"tags" validate:"omitempty,dive,min=1,max=255"`
}

type PostResponse struct {
	ID             string                 `json:"id"`
	Title          string                 `json:"title"`
	Slug           string                 `json:"slug"`
	Excerpt        string                 `json:"excerpt,omitempty"`
	Content        string                 `json:"content"`
	Published      bool                   `json:"published"`
	Featured       bool                   `json:"featured"`
	Image          string                 `json:"image,omitempty"`
	ReadTime       int                    `json:"readTime"`
	SeoTitle       string                 `json:"seoTitle,omitempty"`
	SeoDescription string                 `json:"seoDescription,omitempty"`
	Views          int                    `json:"views"`
	Likes          int                    `json:"likes"`
	PublishedAt    *time.Time             `json:"published_at,omitempty"`
	Author         entity.AuthorSummary   `json:"author"`
	Category       entity.CategorySummary `json:"category"`
	Tags           []entity.TagSummary    `json:"tags"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type PostListResponse struct {
	Posts      []PostResponse `json:"posts"`
	Pagination Pagination     `json:"pagination"`
}
