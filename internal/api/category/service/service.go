package categoryService

import (
	"BlogGolang/internal/api/category"
	categoryRepository "BlogGolang/internal/api/category/repository"
	"BlogGolang/pkg/utils"
	"context"

	"github.com/sirupsen/logrus"
)

type ICategoriesService interface {
	CreateCategory(ctx context.Context, req category.CreateCategoryRequest) (category.CategoryResponse, error)
	GetAllCategories(ctx context.Context) (*category.CategoryListResponse, error)
	GetAllWithCount(ctx context.Context) (*category.CategoryListResponse, error)
	GetPopular(ctx context.Context, limit int) (*category.CategoryListResponse, error)
	GetCategoryByID(ctx context.Context, id string) (category.CategoryResponse, error)
	GetCategoryBySlug(ctx context.Context, slug string) (category.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id string, req category.UpdateCategoryRequest) (category.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id string) error
}

type categoriesService struct {
	log          *logrus.Logger
	categoryRepo categoryRepository.Repository
	utils        utils.IUtils
}

func NewCategoriesService(
	log *logrus.Logger,
	categoryRepo categoryRepository.Repository,
	utils utils.IUtils,
) ICategoriesService {
	return &categoriesService{
		log:          log,
		categoryRepo: categoryRepo,
		utils:        utils,
	}
}
