package categoryRepository

import (
	"BlogGolang/internal/api/category"
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

type CategoryDB struct {
	ID          sql.NullString `db:"id"`
	Name        sql.NullString `db:"name"`
	Slug        sql.NullString `db:"slug"`
	Description sql.NullString `db:"description"`
	Color       sql.NullString `db:"color"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type CategoryWithCountDB struct {
	CategoryDB
	PostCount int `db:"post_count"`
}

type categoryPostSummaryDB struct {
	entity.PostSummary
	CategoryID string `db:"category_id"`
}

// translateConstraintErr maps unique-constraint violations onto the typed
// Conflict errors. The constraints are the authoritative uniqueness
// enforcement; there is no pre-insert existence check.
func translateConstraintErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case "categories_name_key":
			return category.ErrCategoryNameExists
		case "categories_slug_key":
			return category.ErrCategorySlugExists
		}
	}
	return err
}

func (r *categoriesRepository) CreateCategory(ctx context.Context, cat entity.Category) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":          cat.ID,
		"name":        cat.Name,
		"slug":        cat.Slug,
		"description": cat.Description,
		"color":       cat.Color,
		"created_at":  cat.CreatedAt,
		"updated_at":  cat.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateCategory, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateCategory")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		if translated := translateConstraintErr(err); translated != err {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Category uniqueness violation")
			return translated
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating category")
		return err
	}

	return nil
}

func (r *categoriesRepository) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var categoriesList []CategoryDB

	query, args, err := sqlx.Named(queryGetAllCategories, map[string]interface{}{})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllCategories named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &categoriesList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllCategories execution err")
		return nil, err
	}

	categories := make([]entity.Category, 0, len(categoriesList))
	for _, categoryDB := range categoriesList {
		categories = append(categories, r.makeCategory(categoryDB))
	}

	return categories, nil
}

func (r *categoriesRepository) GetAllWithCount(ctx context.Context) ([]entity.CategoryWithCount, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var categoriesList []CategoryWithCountDB

	query, args, err := sqlx.Named(queryGetAllCategoriesWithCount, map[string]interface{}{})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllWithCount named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &categoriesList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllWithCount execution err")
		return nil, err
	}

	return r.makeCategoriesWithCount(categoriesList), nil
}

func (r *categoriesRepository) GetPopular(ctx context.Context, limit int) ([]entity.CategoryWithCount, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var categoriesList []CategoryWithCountDB

	query, args, err := sqlx.Named(queryGetPopularCategories, map[string]interface{}{
		"limit": limit,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPopular named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &categoriesList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPopular execution err")
		return nil, err
	}

	return r.makeCategoriesWithCount(categoriesList), nil
}

func (r *categoriesRepository) GetCategoryByID(ctx context.Context, id string) (entity.Category, error) {
	return r.getCategory(ctx, queryGetCategoryByID, map[string]interface{}{"id": id}, "GetCategoryByID")
}

func (r *categoriesRepository) GetCategoryBySlug(ctx context.Context, slug string) (entity.Category, error) {
	return r.getCategory(ctx, queryGetCategoryBySlug, map[string]interface{}{"slug": slug}, "GetCategoryBySlug")
}

func (r *categoriesRepository) getCategory(ctx context.Context, namedQuery string, argsKV map[string]interface{}, op string) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var cat CategoryDB

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return entity.Category{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&cat); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn(op + " no rows found")
			return entity.Category{}, category.ErrCategoryNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return entity.Category{}, err
	}

	return r.makeCategory(cat), nil
}

func (r *categoriesRepository) GetPostSummaries(ctx context.Context, categoryID string, publishedOnly bool) ([]entity.PostSummary, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var posts []entity.PostSummary

	namedQuery := queryGetCategoryPostSummaries
	if publishedOnly {
		namedQuery = queryGetPublishedCategoryPostSummaries
	}

	query, args, err := sqlx.Named(namedQuery, map[string]interface{}{
		"category_id": categoryID,
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

func (r *categoriesRepository) GetPostSummariesByCategoryIDs(ctx context.Context, categoryIDs []string) (map[string][]entity.PostSummary, error) {
	requestID := contextPkg.GetRequestID(ctx)
	grouped := make(map[string][]entity.PostSummary, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return grouped, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, title, slug, excerpt, published, created_at, category_id
		FROM posts
		WHERE category_id IN (?)
		ORDER BY created_at DESC`, categoryIDs)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPostSummariesByCategoryIDs query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	var rows []categoryPostSummaryDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPostSummariesByCategoryIDs execution err")
		return nil, err
	}

	for _, row := range rows {
		grouped[row.CategoryID] = append(grouped[row.CategoryID], row.PostSummary)
	}

	return grouped, nil
}

func (r *categoriesRepository) CountPosts(ctx context.Context, categoryID string) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var total int

	query, args, err := sqlx.Named(queryCountCategoryPosts, map[string]interface{}{
		"category_id": categoryID,
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

func (r *categoriesRepository) UpdateCategory(ctx context.Context, cat entity.Category) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":          cat.ID,
		"name":        cat.Name,
		"slug":        cat.Slug,
		"description": cat.Description,
		"color":       cat.Color,
		"updated_at":  time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateCategory, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateCategory named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		if translated := translateConstraintErr(err); translated != err {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Category uniqueness violation on update")
			return translated
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateCategory execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateCategory rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         cat.ID,
		}).Warn("UpdateCategory no rows affected")
		return category.ErrCategoryNotFound
	}

	return nil
}

func (r *categoriesRepository) DeleteCategory(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteCategory, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteCategory named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteCategory execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteCategory rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
		}).Warn("DeleteCategory no rows affected")
		return category.ErrCategoryNotFound
	}

	return nil
}

func (r *categoriesRepository) makeCategory(cat CategoryDB) entity.Category {
	return entity.Category{
		ID:          cat.ID.String,
		Name:        cat.Name.String,
		Slug:        cat.Slug.String,
		Description: cat.Description.String,
		Color:       cat.Color.String,
		CreatedAt:   cat.CreatedAt,
		UpdatedAt:   cat.UpdatedAt,
	}
}

func (r *categoriesRepository) makeCategoriesWithCount(rows []CategoryWithCountDB) []entity.CategoryWithCount {
	categories := make([]entity.CategoryWithCount, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, entity.CategoryWithCount{
			Category:  r.makeCategory(row.CategoryDB),
			PostCount: row.PostCount,
		})
	}
	return categories
}
