package config

import (
	"BlogGolang/database/postgres"
	authHandler "BlogGolang/internal/api/auth/handler"
	authService "BlogGolang/internal/api/auth/service"
	categoryHandler "BlogGolang/internal/api/category/handler"
	categoryRepository "BlogGolang/internal/api/category/repository"
	categoryService "BlogGolang/internal/api/category/service"
	postHandler "BlogGolang/internal/api/post/handler"
	postRepository "BlogGolang/internal/api/post/repository"
	postService "BlogGolang/internal/api/post/service"
	tagHandler "BlogGolang/internal/api/tag/handler"
	tagRepository "BlogGolang/internal/api/tag/repository"
	tagService "BlogGolang/internal/api/tag/service"
	userHandler "BlogGolang/internal/api/user/handler"
	userRepository "BlogGolang/internal/api/user/repository"
	userService "BlogGolang/internal/api/user/service"
	"BlogGolang/internal/middleware"
	"BlogGolang/pkg/bcrypt"
	"BlogGolang/pkg/redis"
	"BlogGolang/pkg/utils"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	bcryptUtils bcrypt.IBcrypt
	redisServer redis.IRedis
	handlers    []handler
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, s.redisServer)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// User Domain
	userRepo := userRepository.New(s.db, s.log)
	userServices := userService.NewUsersService(s.log, userRepo, s.bcryptUtils, s.utils)
	userHandlers := userHandler.New(s.log, s.validator, s.middleware, userServices)

	// Auth Domain (shares the user repository)
	authServices := authService.NewAuthService(s.log, userRepo, s.bcryptUtils, s.redisServer)
	authHandlers := authHandler.New(s.log, s.validator, s.middleware, authServices)

	// Category Domain
	categoryRepo := categoryRepository.New(s.db, s.log)
	categoryServices := categoryService.NewCategoriesService(s.log, categoryRepo, s.utils)
	categoryHandlers := categoryHandler.New(s.log, s.validator, s.middleware, categoryServices)

	// Tag Domain
	tagRepo := tagRepository.New(s.db, s.log)
	tagServices := tagService.NewTagsService(s.log, tagRepo, s.utils)
	tagHandlers := tagHandler.New(s.log, s.validator, s.middleware, tagServices)

	// Post Domain
	postRepo := postRepository.New(s.db, s.log)
	postServices := postService.NewPostsService(s.log, postRepo, s.utils)
	postHandlers := postHandler.New(s.log, s.validator, s.middleware, postServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, authHandlers, userHandlers, categoryHandlers, tagHandlers, postHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewRateLimiter)
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown() error {
	if s.db != nil {
		defer s.db.Close()
	}
	return s.engine.Shutdown()
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
