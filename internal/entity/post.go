package entity

import "time"

type Post struct {
	ID             string     `db:"id"`
	Title          string     `db:"title"`
	Slug           string     `db:"slug"`
	Excerpt        string     `db:"excerpt"`
	Content        string     `db:"content"`
	Published      bool       `db:"published"`
	Featured       bool       `db:"featured"`
	Image          string     `db:"image"`
	ReadTime       int        `db:"read_time"`
	SeoTitle       string     `db:"seo_title"`
	SeoDescription string     `db:"seo_description"`
	Views          int        `db:"views"`
	Likes          int        `db:"likes"`
	PublishedAt    *time.Time `db:"published_at"`
	AuthorID       string     `db:"author_id"`
	CategoryID     string     `db:"category_id"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`

	// Expanded relations, populated by the repository on reads.
	Author   AuthorSummary
	Category CategorySummary
	Tags     []TagSummary
}

// AuthorSummary is the public slice of a user attached to posts.
type AuthorSummary struct {
	ID     string `db:"author_id" json:"id"`
	Name   string `db:"author_name" json:"name"`
	Email  string `db:"author_email" json:"email"`
	Avatar string `db:"author_avatar" json:"avatar,omitempty"`
	Bio    string `db:"author_bio" json:"bio,omitempty"`
}

type CategorySummary struct {
	ID          string `db:"category_id" json:"id"`
	Name        string `db:"category_name" json:"name"`
	Slug        string `db:"category_slug" json:"slug"`
	Description string `db:"category_description" json:"description,omitempty"`
}

type TagSummary struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

// PostSummary is the trimmed post shape embedded in user, category, and tag
// detail responses.
type PostSummary struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Slug      string    `db:"slug" json:"slug"`
	Excerpt   string    `db:"excerpt" json:"excerpt,omitempty"`
	Published bool      `db:"published" json:"published"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PostSummaryWithCategory extends PostSummary with the owning category,
// used by the user detail view.
type PostSummaryWithCategory struct {
	PostSummary
	Category CategorySummary `json:"category"`
}
