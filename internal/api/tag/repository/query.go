package tagRepository

const (
	queryCreateTag = `
		INSERT INTO tags (
			id,
			name,
			slug,
			created_at,
			updated_at
		) VALUES (
			:id,
			:name,
			:slug,
			:created_at,
			:updated_at
		)
	`

	queryGetAllTags = `
		SELECT
			id,
			name,
			slug,
			created_at,
			updated_at
		FROM tags
		ORDER BY name ASC
	`

	queryGetAllTagsWithCount = `
		SELECT
			t.id,
			t.name,
			t.slug,
			t.created_at,
			t.updated_at,
			COUNT(p.id) FILTER (WHERE p.published) AS post_count
		FROM tags t
		LEFT JOIN post_tags pt ON pt.tag_id = t.id
		LEFT JOIN posts p ON p.id = pt.post_id
		GROUP BY t.id
		ORDER BY t.name ASC
	`

	queryGetPopularTags = `
		SELECT
			t.id,
			t.name,
			t.slug,
			t.created_at,
			t.updated_at,
			COUNT(p.id) FILTER (WHERE p.published) AS post_count
		FROM tags t
		LEFT JOIN post_tags pt ON pt.tag_id = t.id
		LEFT JOIN posts p ON p.id = pt.post_id
		GROUP BY t.id
		ORDER BY post_count DESC, t.name ASC
		LIMIT :limit
	`

	querySearchTags = `
		SELECT
			t.id,
			t.name,
			t.slug,
			t.created_at,
			t.updated_at,
			COUNT(p.id) FILTER (WHERE p.published) AS post_count
		FROM tags t
		LEFT JOIN post_tags pt ON pt.tag_id = t.id
		LEFT JOIN posts p ON p.id = pt.post_id
		WHERE t.name ILIKE '%' || :query || '%'
		   OR t.slug ILIKE '%' || :query || '%'
		GROUP BY t.id
		ORDER BY t.name ASC
		LIMIT :limit
	`

	queryGetTagByID = `
		SELECT
			id,
			name,
			slug,
			created_at,
			updated_at
		FROM tags
		WHERE id = :id
	`

	queryGetTagBySlug = `
		SELECT
			id,
			name,
			slug,
			created_at,
			updated_at
		FROM tags
		WHERE slug = :slug
	`

	queryGetTagByName = `
		SELECT
			id,
			name,
			slug,
			created_at,
			updated_at
		FROM tags
		WHERE name = :name
	`

	queryGetTagPostSummaries = `
		SELECT
			p.id,
			p.title,
			p.slug,
			p.excerpt,
			p.published,
			p.created_at
		FROM posts p
		JOIN post_tags pt ON pt.post_id = p.id
		WHERE pt.tag_id = :tag_id
		ORDER BY p.created_at DESC
	`

	queryGetPublishedTagPostSummaries = `
		SELECT
			p.id,
			p.title,
			p.slug,
			p.excerpt,
			p.published,
			p.created_at
		FROM posts p
		JOIN post_tags pt ON pt.post_id = p.id
		WHERE pt.tag_id = :tag_id AND p.published = TRUE
		ORDER BY p.created_at DESC
	`

	queryCountTagPosts = `
		SELECT COUNT(*)
		FROM post_tags
		WHERE tag_id = :tag_id
	`

	queryUpdateTag = `
		UPDATE tags
		SET
			name = :name,
			slug = :slug,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteTag = `
		DELETE FROM tags
		WHERE id = :id
	`
)
