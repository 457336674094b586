package entity

import "time"

type Category struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description string    `db:"description"`
	Color       string    `db:"color"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// CategoryWithCount annotates a category with its live published-post count.
type CategoryWithCount struct {
	Category
	PostCount int `db:"post_count"`
}
