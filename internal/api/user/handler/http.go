package userHandler

import (
	userService "BlogGolang/internal/api/user/service"
	"BlogGolang/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type UsersHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	userService userService.IUsersService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	us userService.IUsersService,
) *UsersHandler {
	return &UsersHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		userService: us,
	}
}

func (h *UsersHandler) Start(srv fiber.Router) {
	users := srv.Group("/users")

	// Registration is the only public operation
	users.Post("/", h.RegisterUser)

	users.Get("", h.middleware.NewTokenMiddleware, h.GetAllUsers)
	users.Get("/stats", h.middleware.NewTokenMiddleware, h.GetStats)
	users.Get("/active", h.middleware.NewTokenMiddleware, h.GetActiveUsers)
	users.Get("/role/:role", h.middleware.NewTokenMiddleware, h.GetUsersByRole)
	users.Get("/:id", h.middleware.NewTokenMiddleware, h.GetUserByID)
	users.Patch("/:id/password", h.middleware.NewTokenMiddleware, h.ChangePassword)
	users.Patch("/:id", h.middleware.NewTokenMiddleware, h.UpdateUser)
	users.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeleteUser)
}
