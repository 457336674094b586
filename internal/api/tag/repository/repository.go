package tagRepository

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
		Tags:     &tagsRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Tags interface {
		CreateTag(ctx context.Context, tag entity.Tag) error
		GetAllTags(ctx context.Context) ([]entity.Tag, error)
		GetAllWithCount(ctx context.Context) ([]entity.TagWithCount, error)
		GetPopular(ctx context.Context, limit int) ([]entity.TagWithCount, error)
		Search(ctx context.Context, query string, limit int) ([]entity.TagWithCount, error)
		GetTagByID(ctx context.Context, id string) (entity.Tag, error)
		GetTagBySlug(ctx context.Context, slug string) (entity.Tag, error)
		GetTagByName(ctx context.Context, name string) (entity.Tag, error)
		GetPostSummaries(ctx context.Context, tagID string, publishedOnly bool) ([]entity.PostSummary, error)
		CountPosts(ctx context.Context, tagID string) (int, error)
		UpdateTag(ctx context.Context, tag entity.Tag) error
		DeleteTag(ctx context.Context, id string) error
	}

	Commit   func() error
	Rollback func() error
}

type tagsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
