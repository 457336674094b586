package userRepository

const (
	queryCreateUser = `
		INSERT INTO users (
			id,
			email,
			name,
			password,
			role,
			avatar,
			bio,
			created_at,
			updated_at
		) VALUES (
			:id,
			:email,
			:name,
			:password,
			:role,
			:avatar,
			:bio,
			:created_at,
			:updated_at
		)
	`

	queryGetAllUsers = `
		SELECT
			id,
			email,
			name,
			password,
			role,
			avatar,
			bio,
			created_at,
			updated_at
		FROM users
		ORDER BY created_at DESC
	`

	queryGetUsersByRole = `
		SELECT
			id,
			email,
			name,
			password,
			role,
			avatar,
			bio,
			created_at,
			updated_at
		FROM users
		WHERE role = :role
		ORDER BY created_at DESC
	`

	queryGetActiveUsers = `
		SELECT
			u.id,
			u.email,
			u.name,
			u.password,
			u.role,
			u.avatar,
			u.bio,
			u.created_at,
			u.updated_at,
			COUNT(p.id) FILTER (WHERE p.published) AS post_count
		FROM users u
		LEFT JOIN posts p ON p.author_id = u.id
		GROUP BY u.id
		HAVING COUNT(p.id) FILTER (WHERE p.published) > 0
		ORDER BY post_count DESC, u.created_at DESC
		LIMIT :limit
	`

	queryGetUserStats = `
		SELECT
			COUNT(*) AS total_users,
			COUNT(*) FILTER (WHERE role = 'ADMIN') AS admin_users,
			COUNT(*) FILTER (WHERE role = 'MODERATOR') AS moderator_users,
			COUNT(*) FILTER (WHERE role = 'USER') AS regular_users
		FROM users
	`

	queryGetUserByID = `
		SELECT
			id,
			email,
			name,
			password,
			role,
			avatar,
			bio,
			created_at,
			updated_at
		FROM users
		WHERE id = :id
	`

	queryGetUserByEmail = `
		SELECT
			id,
			email,
			name,
			password,
			role,
			avatar,
			bio,
			created_at,
			updated_at
		FROM users
		WHERE email = :email
	`

	queryGetUserPostSummaries = `
		SELECT
			p.id,
			p.title,
			p.slug,
			p.excerpt,
			p.published,
			p.created_at,
			c.id AS category_id,
			c.name AS category_name,
			c.slug AS category_slug,
			c.description AS category_description
		FROM posts p
		JOIN categories c ON c.id = p.category_id
		WHERE p.author_id = :author_id
		ORDER BY p.created_at DESC
	`

	queryCountUserPosts = `
		SELECT COUNT(*)
		FROM posts
		WHERE author_id = :author_id
	`

	queryUpdateUser = `
		UPDATE users
		SET
			email = :email,
			name = :name,
			role = :role,
			avatar = :avatar,
			bio = :bio,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryUpdateUserPassword = `
		UPDATE users
		SET
			password = :password,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteUser = `
		DELETE FROM users
		WHERE id = :id
	`
)
