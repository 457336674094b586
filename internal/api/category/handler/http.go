package categoryHandler

import (
	categoryService "BlogGolang/internal/api/category/service"
	"BlogGolang/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CategoriesHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	categoryService categoryService.ICategoriesService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs categoryService.ICategoriesService,
) *CategoriesHandler {
	return &CategoriesHandler{
		log:             log,
		validator:       validate,
		middleware:      middleware,
		categoryService: cs,
	}
}

func (h *CategoriesHandler) Start(srv fiber.Router) {
	categories := srv.Group("/categories")

	// Public reads
	categories.Get("", h.GetAllCategories)
	categories.Get("/count", h.GetAllWithCount)
	categories.Get("/popular", h.GetPopular)
	categories.Get("/slug/:slug", h.GetCategoryBySlug)
	categories.Get("/:id", h.GetCategoryByID)

	// Mutations require auth
	categories.Post("/", h.middleware.NewTokenMiddleware, h.CreateCategory)
	categories.Patch("/:id", h.middleware.NewTokenMiddleware, h.UpdateCategory)
	categories.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeleteCategory)
}
