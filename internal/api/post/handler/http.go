package postHandler

import (
	postService "BlogGolang/internal/api/post/service"
	"BlogGolang/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type PostsHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	postService postService.IPostsService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ps postService.IPostsService,
) *PostsHandler {
	return &PostsHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		postService: ps,
	}
}

func (h *PostsHandler) Start(srv fiber.Router) {
	posts := srv.Group("/posts")

	// Public reads
	posts.Get("", h.GetPosts)
	posts.Get("/published", h.GetPublishedPosts)
	posts.Get("/category/:categoryId", h.GetPostsByCategory)
	posts.Get("/tag/:tagId", h.GetPostsByTag)
	posts.Get("/slug/:slug", h.GetPostBySlug)
	posts.Get("/:id", h.GetPostByID)

	// Mutations require auth
	posts.Post("/", h.middleware.NewTokenMiddleware, h.CreatePost)
	posts.Patch("/:id", h.middleware.NewTokenMiddleware, h.UpdatePost)
	posts.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeletePost)
}
