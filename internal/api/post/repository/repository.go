package postRepository

import (
	"BlogGolang/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Posts:    &postsRepository{q: sqlExecutor, log: r.log},
		PostTags: &postTagsRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Posts interface {
		CreatePost(ctx context.Context, post entity.Post) error
		GetPosts(ctx context.Context, limit, offset int) ([]entity.Post, error)
		CountPosts(ctx context.Context) (int, error)
		GetPublishedPosts(ctx context.Context, limit, offset int) ([]entity.Post, error)
		CountPublishedPosts(ctx context.Context) (int, error)
		GetPostsByCategory(ctx context.Context, categoryID string, limit, offset int) ([]entity.Post, error)
		CountPostsByCategory(ctx context.Context, categoryID string) (int, error)
		GetPostsByTag(ctx context.Context, tagID string, limit, offset int) ([]entity.Post, error)
		CountPostsByTag(ctx context.Context, tagID string) (int, error)
		GetPostByID(ctx context.Context, id string) (entity.Post, error)
		GetPostBySlug(ctx context.Context, slug string) (entity.Post, error)
		IncrementViews(ctx context.Context, id string) error
		CategoryExists(ctx context.Context, categoryID string) (bool, error)
		UpdatePost(ctx context.Context, post entity.Post) error
		DeletePost(ctx context.Context, id string) error
	}

	// PostTags covers the join table plus the tag find-or-create reads
	// that must share the post mutation's transaction.
	PostTags interface {
		GetTagByName(ctx context.Context, name string) (entity.Tag, bool, error)
		CreateTag(ctx context.Context, tag entity.Tag) error
		AttachTag(ctx context.Context, postID, tagID string) error
		DetachAllTags(ctx context.Context, postID string) error
		GetTagsByPostIDs(ctx context.Context, postIDs []string) (map[string][]entity.TagSummary, error)
	}

	Commit   func() error
	Rollback func() error
}

type postsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type postTagsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
