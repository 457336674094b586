package tagHandler

import (
	tagService "BlogGolang/internal/api/tag/service"
	"BlogGolang/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type TagsHandler struct {
	log        *logrus.Logger
	validator  *validator.Validate
	middleware middleware.Middleware
	tagService tagService.ITagsService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ts tagService.ITagsService,
) *TagsHandler {
	return &TagsHandler{
		log:        log,
		validator:  validate,
		middleware: middleware,
		tagService: ts,
	}
}

func (h *TagsHandler) Start(srv fiber.Router) {
	tags := srv.Group("/tags")

	// Public reads
	tags.Get("", h.GetAllTags)
	tags.Get("/count", h.GetAllWithCount)
	tags.Get("/popular", h.GetPopular)
	tags.Get("/search", h.Search)
	tags.Get("/slug/:slug", h.GetTagBySlug)
	tags.Get("/:id", h.GetTagByID)

	// Mutations require auth
	tags.Post("/", h.middleware.NewTokenMiddleware, h.CreateTag)
	tags.Patch("/:id", h.middleware.NewTokenMiddleware, h.UpdateTag)
	tags.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeleteTag)
}
