package postRepository

import (
	"BlogGolang/internal/api/post"
	"BlogGolang/internal/entity"
	contextPkg "BlogGolang/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type PostDB struct {
	ID                  sql.NullString `db:"id"`
	Title               sql.NullString `db:"title"`
	Slug                sql.NullString `db:"slug"`
	Excerpt             sql.NullString `db:"excerpt"`
	Content             sql.NullString `db:"content"`
	Published           bool           `db:"published"`
	Featured            bool           `db:"featured"`
	Image               sql.NullString `db:"image"`
	ReadTime            int            `db:"read_time"`
	SeoTitle            sql.NullString `db:"seo_title"`
	SeoDescription      sql.NullString `db:"seo_description"`
	Views               int            `db:"views"`
	Likes               int            `db:"likes"`
	PublishedAt         *time.Time     `db:"published_at"`
	AuthorID            sql.NullString `db:"author_id"`
	CategoryID          sql.NullString `db:"category_id"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
	AuthorName          sql.NullString `db:"author_name"`
	AuthorEmail         sql.NullString `db:"author_email"`
	AuthorAvatar        sql.NullString `db:"author_avatar"`
	AuthorBio           sql.NullString `db:"author_bio"`
	CategoryName        sql.NullString `db:"category_name"`
	CategorySlug        sql.NullString `db:"category_slug"`
	CategoryDescription sql.NullString `db:"category_description"`
}

func translateConstraintErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		if pqErr.Constraint == "posts_slug_key" {
			return post.ErrPostSlugExists
		}
	}
	return err
}

func (r *postsRepository) CreatePost(ctx context.Context, postData entity.Post) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":              postData.ID,
		"title":           postData.Title,
		"slug":            postData.Slug,
		"excerpt":         postData.Excerpt,
		"content":         postData.Content,
		"published":       postData.Published,
		"featured":        postData.Featured,
		"image":           postData.Image,
		"read_time":       postData.ReadTime,
		"seo_title":       postData.SeoTitle,
		"seo_description": postData.SeoDescription,
		"views":           postData.Views,
		"likes":           postData.Likes,
		"published_at":    postData.PublishedAt,
		"author_id":       postData.AuthorID,
		"category_id":     postData.CategoryID,
		"created_at":      postData.CreatedAt,
		"updated_at":      postData.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreatePost, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreatePost")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		if translated := translateConstraintErr(err); translated != err {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Post slug uniqueness violation")
			return translated
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating post")
		return err
	}

	return nil
}

func (r *postsRepository) GetPosts(ctx context.Context, limit, offset int) ([]entity.Post, error) {
	return r.selectPosts(ctx, queryGetPosts, map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}, "GetPosts")
}

func (r *postsRepository) GetPublishedPosts(ctx context.Context, limit, offset int) ([]entity.Post, error) {
	return r.selectPosts(ctx, queryGetPublishedPosts, map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}, "GetPublishedPosts")
}

func (r *postsRepository) GetPostsByCategory(ctx context.Context, categoryID string, limit, offset int) ([]entity.Post, error) {
	return r.selectPosts(ctx, queryGetPostsByCategory, map[string]interface{}{
		"category_id": categoryID,
		"limit":       limit,
		"offset":      offset,
	}, "GetPostsByCategory")
}

func (r *postsRepository) GetPostsByTag(ctx context.Context, tagID string, limit, offset int) ([]entity.Post, error) {
	return r.selectPosts(ctx, queryGetPostsByTag, map[string]interface{}{
		"tag_id": tagID,
		"limit":  limit,
		"offset": offset,
	}, "GetPostsByTag")
}

func (r *postsRepository) selectPosts(ctx context.Context, namedQuery string, argsKV map[string]interface{}, op string) ([]entity.Post, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var postsList []PostDB

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &postsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return nil, err
	}

	posts := make([]entity.Post, 0, len(postsList))
	for _, postDB := range postsList {
		posts = append(posts, r.makePost(postDB))
	}

	return posts, nil
}

func (r *postsRepository) CountPosts(ctx context.Context) (int, error) {
	return r.countPosts(ctx, queryCountPosts, map[string]interface{}{}, "CountPosts")
}

func (r *postsRepository) CountPublishedPosts(ctx context.Context) (int, error) {
	return r.countPosts(ctx, queryCountPublishedPosts, map[string]interface{}{}, "CountPublishedPosts")
}

func (r *postsRepository) CountPostsByCategory(ctx context.Context, categoryID string) (int, error) {
	return r.countPosts(ctx, queryCountPostsByCategory, map[string]interface{}{
		"category_id": categoryID,
	}, "CountPostsByCategory")
}

func (r *postsRepository) CountPostsByTag(ctx context.Context, tagID string) (int, error) {
	return r.countPosts(ctx, queryCountPostsByTag, map[string]interface{}{
		"tag_id": tagID,
	}, "CountPostsByTag")
}

func (r *postsRepository) countPosts(ctx context.Context, namedQuery string, argsKV map[string]interface{}, op string) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var total int

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return 0, err
	}

	return total, nil
}

func (r *postsRepository) GetPostByID(ctx context.Context, id string) (entity.Post, error) {
	return r.getPost(ctx, queryGetPostByID, map[string]interface{}{"id": id}, "GetPostByID")
}

func (r *postsRepository) GetPostBySlug(ctx context.Context, slug string) (entity.Post, error) {
	return r.getPost(ctx, queryGetPostBySlug, map[string]interface{}{"slug": slug}, "GetPostBySlug")
}

func (r *postsRepository) getPost(ctx context.Context, namedQuery string, argsKV map[string]interface{}, op string) (entity.Post, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var postRow PostDB

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return entity.Post{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&postRow); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn(op + " no rows found")
			return entity.Post{}, post.ErrPostNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return entity.Post{}, err
	}

	return r.makePost(postRow), nil
}

func (r *postsRepository) IncrementViews(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryIncrementPostViews, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("IncrementViews named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("IncrementViews execution err")
		return err
	}

	return nil
}

func (r *postsRepository) CategoryExists(ctx context.Context, categoryID string) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var exists bool

	query, args, err := sqlx.Named(queryCategoryExists, map[string]interface{}{"id": categoryID})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CategoryExists named query preparation err")
		return false, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&exists); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CategoryExists execution err")
		return false, err
	}

	return exists, nil
}

func (r *postsRepository) UpdatePost(ctx context.Context, postData entity.Post) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":              postData.ID,
		"title":           postData.Title,
		"slug":            postData.Slug,
		"excerpt":         postData.Excerpt,
		"content":         postData.Content,
		"published":       postData.Published,
		"featured":        postData.Featured,
		"image":           postData.Image,
		"read_time":       postData.ReadTime,
		"seo_title":       postData.SeoTitle,
		"seo_description": postData.SeoDescription,
		"published_at":    postData.PublishedAt,
		"category_id":     postData.CategoryID,
		"updated_at":      time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdatePost, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdatePost named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		if translated := translateConstraintErr(err); translated != err {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Post slug uniqueness violation on update")
			return translated
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdatePost execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdatePost rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         postData.ID,
		}).Warn("UpdatePost no rows affected")
		return post.ErrPostNotFound
	}

	return nil
}

func (r *postsRepository) DeletePost(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeletePost, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeletePost named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeletePost execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeletePost rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
		}).Warn("DeletePost no rows affected")
		return post.ErrPostNotFound
	}

	return nil
}

func (r *postsRepository) makePost(postRow PostDB) entity.Post {
	return entity.Post{
		ID:             postRow.ID.String,
		Title:          postRow.Title.String,
		Slug:           postRow.Slug.String,
		Excerpt:        postRow.Excerpt.String,
		Content:        postRow.Content.String,
		Published:      postRow.Published,
		Featured:       postRow.Featured,
		Image:          postRow.Image.String,
		ReadTime:       postRow.ReadTime,
		SeoTitle:       postRow.SeoTitle.String,
		SeoDescription: postRow.SeoDescription.String,
		Views:          postRow.Views,
		Likes:          postRow.Likes,
		PublishedAt:    postRow.PublishedAt,
		AuthorID:       postRow.AuthorID.String,
		CategoryID:     postRow.CategoryID.String,
		CreatedAt:      postRow.CreatedAt,
		UpdatedAt:      postRow.UpdatedAt,
		Author: entity.AuthorSummary{
			ID:     postRow.AuthorID.String,
			Name:   postRow.AuthorName.String,
			Email:  postRow.AuthorEmail.String,
			Avatar: postRow.AuthorAvatar.String,
			Bio:    postRow.AuthorBio.String,
		},
		Category: entity.CategorySummary{
			ID:          postRow.CategoryID.String,
			Name:        postRow.CategoryName.String,
			Slug:        postRow.CategorySlug.String,
			Description: postRow.CategoryDescription.String,
		},
	}
}
