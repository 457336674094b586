package categoryRepository

const (
	queryCreateCategory = `
		INSERT INTO categories (
			id,
			name,
			slug,
			description,
			color,
			created_at,
			updated_at
		) VALUES (
			:id,
			:name,
			:slug,
			:description,
			:color,
			:created_at,
			:updated_at
		)
	`

	queryGetAllCategories = `
		SELECT
			id,
			name,
			slug,
			description,
			color,
			created_at,
			updated_at
		FROM categories
		ORDER BY name ASC
	`

	queryGetAllCategoriesWithCount = `
		SELECT
			c.id,
			c.name,
			c.slug,
			c.description,
			c.color,
			c.created_at,
			c.updated_at,
			COUNT(p.id) FILTER (WHERE p.published) AS post_count
		FROM categories c
		LEFT JOIN posts p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name ASC
	`

	queryGetPopularCategories = `
		SELECT
			c.id,
			c.name,
			c.slug,
			c.description,
			c.color,
			c.created_at,
			c.updated_at,
			COUNT(p.id) FILTER (WHERE p.published) AS post_count
		FROM categories c
		LEFT JOIN posts p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY post_count DESC, c.name ASC
		LIMIT :limit
	`

	queryGetCategoryByID = `
		SELECT
			id,
			name,
			slug,
			description,
			color,
			created_at,
			updated_at
		FROM categories
		WHERE id = :id
	`

	queryGetCategoryBySlug = `
		SELECT
			id,
			name,
			slug,
			description,
			color,
			created_at,
			updated_at
		FROM categories
		WHERE slug = :slug
	`

	queryGetCategoryPostSummaries = `
		SELECT
			id,
			title,
			slug,
			excerpt,
			published,
			created_at
		FROM posts
		WHERE category_id = :category_id
		ORDER BY created_at DESC
	`

	queryGetPublishedCategoryPostSummaries = `
		SELECT
			id,
			title,
			slug,
			excerpt,
			published,
			created_at
		FROM posts
		WHERE category_id = :category_id AND published = TRUE
		ORDER BY created_at DESC
	`

	queryCountCategoryPosts = `
		SELECT COUNT(*)
		FROM posts
		WHERE category_id = :category_id
	`

	queryUpdateCategory = `
		UPDATE categories
		SET
			name = :name,
			slug = :slug,
			description = :description,
			color = :color,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteCategory = `
		DELETE FROM categories
		WHERE id = :id
	`
)
