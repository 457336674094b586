package authService

import (
	"BlogGolang/internal/api/auth"
	userRepository "BlogGolang/internal/api/user/repository"
	bcryptPkg "BlogGolang/pkg/bcrypt"
	redisPkg "BlogGolang/pkg/redis"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IAuthService interface {
	Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
	GetProfile(ctx context.Context, userID string) (auth.ProfileResponse, error)
	Logout(ctx context.Context, jti string, subject string, ttl time.Duration) error
}

type authService struct {
	log         *logrus.Logger
	userRepo    userRepository.Repository
	bcrypt      bcryptPkg.IBcrypt
	redisServer redisPkg.IRedis
}

func NewAuthService(
	log *logrus.Logger,
	userRepo userRepository.Repository,
	bcrypt bcryptPkg.IBcrypt,
	redisServer redisPkg.IRedis,
) IAuthService {
	return &authService{
		log:         log,
		userRepo:    userRepo,
		bcrypt:      bcrypt,
		redisServer: redisServer,
	}
}
