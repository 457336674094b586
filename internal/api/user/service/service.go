package userService

import (
	"BlogGolang/internal/api/user"
	userRepository "BlogGolang/internal/api/user/repository"
	bcryptPkg "BlogGolang/pkg/bcrypt"
	"BlogGolang/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IUsersService interface {
	RegisterUser(ctx context.Context, req user.RegisterUserRequest) (user.UserResponse, error)
	GetAllUsers(ctx context.Context) (*user.UserListResponse, error)
	GetUsersByRole(ctx context.Context, role string) (*user.UserListResponse, error)
	GetActiveUsers(ctx context.Context, limit int) (*user.UserListResponse, error)
	GetStats(ctx context.Context) (user.UserStatsResponse, error)
	GetUserByID(ctx context.Context, id string) (user.UserResponse, error)
	UpdateUser(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error)
	ChangePassword(ctx context.Context, id string, req user.ChangePasswordRequest) error
	DeleteUser(ctx context.Context, id string) error
}

type usersService struct {
	log      *logrus.Logger
	userRepo userRepository.Repository
	bcrypt   bcryptPkg.IBcrypt
	utils    utils.IUtils
}

func NewUsersService(
	log *logrus.Logger,
	userRepo userRepository.Repository,
	bcrypt bcryptPkg.IBcrypt,
	utils utils.IUtils,
) IUsersService {
	return &usersService{
		log:      log,
		userRepo: userRepo,
		bcrypt:   bcrypt,
		utils:    utils,
	}
}
