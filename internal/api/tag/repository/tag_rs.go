package tagRepository

import (
	"BlogGolang/internal/api/tag"
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

type TagDB struct {
	ID        sql.NullString `db:"id"`
	Name      sql.NullString `db:"name"`
	Slug      sql.NullString `db:"slug"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type TagWithCountDB struct {
	TagDB
	PostCount int `db:"post_count"`
}

func translateConstraintErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case "tags_name_key":
			return tag.ErrTagNameExists
		case "tags_slug_key":
			return tag.ErrTagSlugExists
		}
	}
	return err
}

func (r *tagsRepository) CreateTag(ctx context.Context, tagData entity.Tag) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":         tagData.ID,
		"name":       tagData.Name,
		"slug":       tagData.Slug,
		"created_at": tagData.CreatedAt,
		"updated_at": tagData.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateTag, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateTag")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		if translated := translateConstraintErr(err); translated != err {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Tag uniqueness violation")
			return translated
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating tag")
		return err
	}

	return nil
}

func (r *tagsRepository) GetAllTags(ctx context.Context) ([]entity.Tag, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var tagsList []TagDB

	query, args, err := sqlx.Named(queryGetAllTags, map[string]interface{}{})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllTags named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &tagsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllTags execution err")
		return nil, err
	}

	tags := make([]entity.Tag, 0, len(tagsList))
	for _, tagDB := range tagsList {
		tags = append(tags, r.makeTag(tagDB))
	}

	return tags, nil
}

func (r *tagsRepository) GetAllWithCount(ctx context.Context) ([]entity.TagWithCount, error) {
	return r.selectTagsWithCount(ctx, queryGetAllTagsWithCount, map[string]interface{}{}, "GetAllWithCount")
}

func (r *tagsRepository) GetPopular(ctx context.Context, limit int) ([]entity.TagWithCount, error) {
	return r.selectTagsWithCount(ctx, queryGetPopularTags, map[string]interface{}{
		"limit": limit,
	}, "GetPopular")
}

func (r *tagsRepository) Search(ctx context.Context, searchQuery string, limit int) ([]entity.TagWithCount, error) {
	return r.selectTagsWithCount(ctx, querySearchTags, map[string]interface{}{
		"query": searchQuery,
		"limit": limit,
	}, "Search")
}

func (r *tagsRepository) selectTagsWithCount(ctx context.Context, namedQuery string, argsKV map[string]interface{}, op string) ([]entity.TagWithCount, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var tagsList []TagWithCountDB

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &tagsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return nil, err
	}

	tags := make([]entity.TagWithCount, 0, len(tagsList))
	for _, row := range tagsList {
		tags = append(tags, entity.TagWithCount{
			Tag:       r.makeTag(row.TagDB),
			PostCount: row.PostCount,
		})
	}

	return tags, nil
}

func (r *tagsRepository) GetTagByID(ctx context.Context, id string) (entity.Tag, error) {
	return r.getTag(ctx, queryGetTagByID, map[string]interface{}{"id": id}, "GetTagByID")
}

func (r *tagsRepository) GetTagBySlug(ctx context.Context, slug string) (entity.Tag, error) {
	return r.getTag(ctx, queryGetTagBySlug, map[string]interface{}{"slug": slug}, "GetTagBySlug")
}

func (r *tagsRepository) GetTagByName(ctx context.Context, name string) (entity.Tag, error) {
	return r.getTag(ctx, queryGetTagByName, map[string]interface{}{"name": name}, "GetTagByName")
}

func (r *tagsRepository) getTag(ctx context.Context, namedQuery string, argsKV map[string]interface{}, op string) (entity.Tag, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var tagRow TagDB

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return entity.Tag{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&tagRow); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn(op + " no rows found")
			return entity.Tag{}, tag.ErrTagNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return entity.Tag{}, err
	}

	return r.makeTag(tagRow), nil
}

func (r *tagsRepository) GetPostSummaries(ctx context.Context, tagID string, publishedOnly bool) ([]entity.PostSummary, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var posts []entity.PostSummary

	namedQuery := queryGetTagPostSummaries
	if publishedOnly {
		namedQuery = queryGetPublishedTagPostSummaries
	}

	query, args, err := sqlx.Named(namedQuery, map[string]interface{}{
		"tag_id": tagID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPostSummaries named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &posts, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPostSummaries execution err")
		return nil, err
	}

	return posts, nil
}

func (r *tagsRepository) CountPosts(ctx context.Context, tagID string) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var total int

	query, args, err := sqlx.Named(queryCountTagPosts, map[string]interface{}{
		"tag_id": tagID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountPosts named query preparation err")
		return 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountPosts execution err")
		return 0, err
	}

	return total, nil
}

func (r *tagsRepository) UpdateTag(ctx context.Context, tagData entity.Tag) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":         tagData.ID,
		"name":       tagData.Name,
		"slug":       tagData.Slug,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateTag, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateTag named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		if translated := translateConstraintErr(err); translated != err {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Tag uniqueness violation on update")
			return translated
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateTag execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateTag rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         tagData.ID,
		}).Warn("UpdateTag no rows affected")
		return tag.ErrTagNotFound
	}

	return nil
}

func (r *tagsRepository) DeleteTag(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteTag, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteTag named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteTag execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteTag rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
		}).Warn("DeleteTag no rows affected")
		return tag.ErrTagNotFound
	}

	return nil
}

func (r *tagsRepository) makeTag(tagRow TagDB) entity.Tag {
	return entity.Tag{
		ID:        tagRow.ID.String,
		Name:      tagRow.Name.String,
		Slug:      tagRow.Slug.String,
		CreatedAt: tagRow.CreatedAt,
		UpdatedAt: tagRow.UpdatedAt,
	}
}
