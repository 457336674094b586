package categoryService

import (
	"BlogGolang/internal/api/category"
	"BlogGolang/internal/entity"
	contextPkg "BlogGolang/pkg/context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *categoriesService) CreateCategory(ctx context.Context, req category.CreateCategoryRequest) (category.CategoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return category.CategoryResponse{}, err
	}

	categoryID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return category.CategoryResponse{}, err
	}

	now := time.Now()
	cat := entity.Category{
		ID:          categoryID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Color:       req.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := repo.Categories.CreateCategory(ctx, cat); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"name":       req.Name,
			"error":      err.Error(),
		}).Warn("Failed to create category")
		return category.CategoryResponse{}, err
	}

	return makeCategoryResponse(cat, nil, nil), nil
}

func (s *categoriesService) GetAllCategories(ctx context.Context) (*category.CategoryListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	categories, err := repo.Categories.GetAllCategories(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get categories")
		return nil, err
	}

	ids := make([]string, 0, len(categories))
	for _, cat := range categories {
		ids = append(ids, cat.ID)
	}

	postsByCategory, err := repo.Categories.GetPostSummariesByCategoryIDs(ctx, ids)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get category post summaries")
		return nil, err
	}

	response := &category.CategoryListResponse{
		Categories: make([]category.CategoryResponse, 0, len(categories)),
	}
	for _, cat := range categories {
		response.Categories = append(response.Categories, makeCategoryResponse(cat, nil, postsByCategory[cat.ID]))
	}

	return response, nil
}

func (s *categoriesService) GetAllWithCount(ctx context.Context) (*category.CategoryListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	categories, err := repo.Categories.GetAllWithCount(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get categories with count")
		return nil, err
	}

	return makeCountedListResponse(categories), nil
}

func (s *categoriesService) GetPopular(ctx context.Context, limit int) (*category.CategoryListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	if limit < 1 || limit > 100 {
		limit = 10
	}

	categories, err := repo.Categories.GetPopular(ctx, limit)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"limit":      limit,
			"error":      err.Error(),
		}).Error("Failed to get popular categories")
		return nil, err
	}

	return makeCountedListResponse(categories), nil
}

func (s *categoriesService) GetCategoryByID(ctx context.Context, id string) (category.CategoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return category.CategoryResponse{}, err
	}

	cat, err := repo.Categories.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("Category not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to get category")
		}
		return category.CategoryResponse{}, err
	}

	posts, err := repo.Categories.GetPostSummaries(ctx, cat.ID, false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to get category posts")
		return category.CategoryResponse{}, err
	}

	return makeCategoryResponse(cat, nil, posts), nil
}

func (s *categoriesService) GetCategoryBySlug(ctx context.Context, slug string) (category.CategoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return category.CategoryResponse{}, err
	}

	cat, err := repo.Categories.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"slug":       slug,
			}).Warn("Category not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"slug":       slug,
				"error":      err.Error(),
			}).Error("Failed to get category")
		}
		return category.CategoryResponse{}, err
	}

	// Slug lookups are the public-facing view: published posts only.
	posts, err := repo.Categories.GetPostSummaries(ctx, cat.ID, true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"slug":       slug,
			"error":      err.Error(),
		}).Error("Failed to get category posts")
		return category.CategoryResponse{}, err
	}

	return makeCategoryResponse(cat, nil, posts), nil
}

func (s *categoriesService) UpdateCategory(ctx context.Context, id string, req category.UpdateCategoryRequest) (category.CategoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return category.CategoryResponse{}, err
	}

	existing, err := repo.Categories.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("Category not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to get category")
		}
		return category.CategoryResponse{}, err
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Slug != "" {
		existing.Slug = req.Slug
	}
	if req.Description != "" {
		existing.Description = req.Description
	}
	if req.Color != "" {
		existing.Color = req.Color
	}
	existing.UpdatedAt = time.Now()

	if err := repo.Categories.UpdateCategory(ctx, existing); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Warn("Failed to update category")
		return category.CategoryResponse{}, err
	}

	posts, err := repo.Categories.GetPostSummaries(ctx, existing.ID, false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to get category posts")
		return category.CategoryResponse{}, err
	}

	return makeCategoryResponse(existing, nil, posts), nil
}

func (s *categoriesService) DeleteCategory(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	existing, err := repo.Categories.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("Category not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to get category")
		}
		return err
	}

	dependents, err := repo.Categories.CountPosts(ctx, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to count category posts")
		return err
	}

	if dependents > 0 {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"posts":      dependents,
		}).Warn("Category deletion blocked by dependent posts")
		return category.ErrCategoryHasPosts(existing.Name, dependents)
	}

	if err := repo.Categories.DeleteCategory(ctx, id); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to delete category")
		return err
	}

	return nil
}

func makeCategoryResponse(cat entity.Category, postCount *int, posts []entity.PostSummary) category.CategoryResponse {
	return category.CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Slug:        cat.Slug,
		Description: cat.Description,
		Color:       cat.Color,
		PostCount:   postCount,
		Posts:       posts,
		CreatedAt:   cat.CreatedAt,
		UpdatedAt:   cat.UpdatedAt,
	}
}

func makeCountedListResponse(categories []entity.CategoryWithCount) *category.CategoryListResponse {
	response := &category.CategoryListResponse{
		Categories: make([]category.CategoryResponse, 0, len(categories)),
	}
	for _, cat := range categories {
		count := cat.PostCount
		response.Categories = append(response.Categories, makeCategoryResponse(cat.Category, &count, nil))
	}
	return response
}
