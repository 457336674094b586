package authService

import (
	"BlogGolang/internal/api/auth"
	"BlogGolang/internal/api/user"
	"BlogGolang/internal/entity"
	contextPkg "BlogGolang/pkg/context"
	jwtPkg "BlogGolang/pkg/jwt"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *authService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.userRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.LoginResponse{}, err
	}

	userData, err := repo.Users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"email":      req.Email,
			}).Warn("Login attempt with unknown email")
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get user by email")
		return auth.LoginResponse{}, err
	}

	if err := s.bcrypt.ComparePassword(userData.Password, req.Password); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"email":      req.Email,
		}).Warn("Login attempt with wrong password")
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, _, _, err := jwtPkg.Sign(entity.UserLoginData{
		ID:    userData.ID,
		Email: userData.Email,
		Role:  userData.Role,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign access token")
		return auth.LoginResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    userData.ID,
	}).Info("User logged in")

	return auth.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   "24h",
		User: auth.AuthUser{
			ID:    userData.ID,
			Name:  userData.Name,
			Email: userData.Email,
			Role:  userData.Role,
		},
	}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (auth.ProfileResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.userRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.ProfileResponse{}, err
	}

	userData, err := repo.Users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Valid token, but the subject row is gone.
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"user_id":    userID,
			}).Warn("Token subject no longer exists")
			return auth.ProfileResponse{}, auth.ErrProfileNotFound
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to get profile")
		return auth.ProfileResponse{}, err
	}

	posts, err := repo.Users.GetPostSummaries(ctx, userData.ID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to get profile posts")
		return auth.ProfileResponse{}, err
	}

	return auth.ProfileResponse{
		ID:     userData.ID,
		Name:   userData.Name,
		Email:  userData.Email,
		Role:   userData.Role,
		Avatar: userData.Avatar,
		Bio:    userData.Bio,
		Posts:  posts,
	}, nil
}

func (s *authService) Logout(ctx context.Context, jti string, subject string, ttl time.Duration) error {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.redisServer.RevokeToken(ctx, jti, subject, ttl); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"jti":        jti,
			"error":      err.Error(),
		}).Error("Failed to revoke token")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    subject,
		"jti":        jti,
	}).Info("User logged out")

	return nil
}
