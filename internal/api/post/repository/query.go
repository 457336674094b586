package postRepository

const (
	queryCreatePost = `
		INSERT INTO posts (
			id,
			title,
			slug,
			excerpt,
			content,
			published,
			featured,
			image,
			read_time,
			seo_title,
			seo_description,
			views,
			likes,
			published_at,
			author_id,
			category_id,
			created_at,
			updated_at
		) VALUES (
			:id,
			:title,
			:slug,
			:excerpt,
			:content,
			:published,
			:featured,
			:image,
			:read_time,
			:seo_title,
			:seo_description,
			:views,
			:likes,
			:published_at,
			:author_id,
			:category_id,
			:created_at,
			:updated_at
		)
	`

	postSelectColumns = `
		p.id,
		p.title,
		p.slug,
		p.excerpt,
		p.content,
		p.published,
		p.featured,
		p.image,
		p.read_time,
		p.seo_title,
		p.seo_description,
		p.views,
		p.likes,
		p.published_at,
		p.author_id,
		p.category_id,
		p.created_at,
		p.updated_at,
		u.name AS author_name,
		u.email AS author_email,
		u.avatar AS author_avatar,
		u.bio AS author_bio,
		c.name AS category_name,
		c.slug AS category_slug,
		c.description AS category_description
	`

	postSelectJoins = `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		JOIN categories c ON c.id = p.category_id
	`

	queryGetPosts = `
		SELECT ` + postSelectColumns + postSelectJoins + `
		ORDER BY p.created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountPosts = `
		SELECT COUNT(*) FROM posts
	`

	queryGetPublishedPosts = `
		SELECT ` + postSelectColumns + postSelectJoins + `
		WHERE p.published = TRUE
		ORDER BY p.published_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountPublishedPosts = `
		SELECT COUNT(*) FROM posts WHERE published = TRUE
	`

	queryGetPostsByCategory = `
		SELECT ` + postSelectColumns + postSelectJoins + `
		WHERE p.category_id = :category_id AND p.published = TRUE
		ORDER BY p.published_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountPostsByCategory = `
		SELECT COUNT(*) FROM posts
		WHERE category_id = :category_id AND published = TRUE
	`

	queryGetPostsByTag = `
		SELECT ` + postSelectColumns + postSelectJoins + `
		JOIN post_tags pt ON pt.post_id = p.id
		WHERE pt.tag_id = :tag_id AND p.published = TRUE
		ORDER BY p.published_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountPostsByTag = `
		SELECT COUNT(*) FROM post_tags pt
		JOIN posts p ON p.id = pt.post_id
		WHERE pt.tag_id = :tag_id AND p.published = TRUE
	`

	queryGetPostByID = `
		SELECT ` + postSelectColumns + postSelectJoins + `
		WHERE p.id = :id
	`

	queryGetPostBySlug = `
		SELECT ` + postSelectColumns + postSelectJoins + `
		WHERE p.slug = :slug
	`

	queryIncrementPostViews = `
		UPDATE posts
		SET views = views + 1
		WHERE id = :id
	`

	queryCategoryExists = `
		SELECT EXISTS (SELECT 1 FROM categories WHERE id = :id)
	`

	queryUpdatePost = `
		UPDATE posts
		SET
			title = :title,
			slug = :slug,
			excerpt = :excerpt,
			content = :content,
			published = :published,
			featured = :featured,
			image = :image,
			read_time = :read_time,
			seo_title = :seo_title,
			seo_description = :seo_description,
			published_at = :published_at,
			category_id = :category_id,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeletePost = `
		DELETE FROM posts
		WHERE id = :id
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

	queryCreateTagRow = `
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

	queryAttachTag = `
		INSERT INTO post_tags (post_id, tag_id)
		VALUES (:post_id, :tag_id)
		ON CONFLICT DO NOTHING
	`

	queryDetachAllTags = `
		DELETE FROM post_tags
		WHERE post_id = :post_id
	`
)
