package postRepository

import (
	"BlogGolang/internal/entity"
	contextPkg "BlogGolang/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type tagDB struct {
	ID        sql.NullString `db:"id"`
	Name      sql.NullString `db:"name"`
	Slug      sql.NullString `db:"slug"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type postTagSummaryDB struct {
	entity.TagSummary
	PostID string `db:"post_id"`
}

func (r *postTagsRepository) GetTagByName(ctx context.Context, name string) (entity.Tag, bool, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var tagRow tagDB

	query, args, err := sqlx.Named(queryGetTagByName, map[string]interface{}{"name": name})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTagByName named query preparation err")
		return entity.Tag{}, false, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&tagRow); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Tag{}, false, nil
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTagByName execution err")
		return entity.Tag{}, false, err
	}

	return entity.Tag{
		ID:        tagRow.ID.String,
		Name:      tagRow.Name.String,
		Slug:      tagRow.Slug.String,
		CreatedAt: tagRow.CreatedAt,
		UpdatedAt: tagRow.UpdatedAt,
	}, true, nil
}

func (r *postTagsRepository) CreateTag(ctx context.Context, tag entity.Tag) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":         tag.ID,
		"name":       tag.Name,
		"slug":       tag.Slug,
		"created_at": tag.CreatedAt,
		"updated_at": tag.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateTagRow, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateTag named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateTag execution err")
		return err
	}

	return nil
}

func (r *postTagsRepository) AttachTag(ctx context.Context, postID, tagID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryAttachTag, map[string]interface{}{
		"post_id": postID,
		"tag_id":  tagID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("AttachTag named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("AttachTag execution err")
		return err
	}

	return nil
}

func (r *postTagsRepository) DetachAllTags(ctx context.Context, postID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDetachAllTags, map[string]interface{}{
		"post_id": postID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DetachAllTags named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DetachAllTags execution err")
		return err
	}

	return nil
}

func (r *postTagsRepository) GetTagsByPostIDs(ctx context.Context, postIDs []string) (map[string][]entity.TagSummary, error) {
	requestID := contextPkg.GetRequestID(ctx)
	grouped := make(map[string][]entity.TagSummary, len(postIDs))
	if len(postIDs) == 0 {
		return grouped, nil
	}

	query, args, err := sqlx.In(`
		SELECT t.id, t.name, t.slug, pt.post_id
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id IN (?)
		ORDER BY t.name ASC`, postIDs)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTagsByPostIDs query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	var rows []postTagSummaryDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTagsByPostIDs execution err")
		return nil, err
	}

	for _, row := range rows {
		grouped[row.PostID] = append(grouped[row.PostID], row.TagSummary)
	}

	return grouped, nil
}
