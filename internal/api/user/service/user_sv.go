package userService

import (
	"BlogGolang/internal/api/user"
	"BlogGolang/internal/entity"
	contextPkg "BlogGolang/pkg/context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *usersService) RegisterUser(ctx context.Context, req user.RegisterUserRequest) (user.UserResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.userRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return user.UserResponse{}, err
	}

	userID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return user.UserResponse{}, err
	}

	hashedPassword, err := s.bcrypt.HashPassword(req.Password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return user.UserResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = entity.RoleUser
	}

	now := time.Now()
	userData := entity.User{
		ID:        userID,
		Email:     req.Email,
		Name:      req.Name,
		Password:  hashedPassword,
		Role:      role,
		Avatar:    req.Avatar,
		Bio:       req.Bio,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Users.CreateUser(ctx, userData); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"email":      req.Email,
			"error":      err.Error(),
		}).Warn("Failed to register user")
		return user.UserResponse{}, err
	}

	return makeUserResponse(userData, nil, nil), nil
}

func (s *usersService) GetAllUsers(ctx context.Context) (*user.UserListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.userRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	users, err := repo.Users.GetAllUsers(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get users")
		return nil, err
	}

	return makeUserListResponse(users), nil
}

func (s *usersService) GetUsersByRole(ctx context.Context, role string) (*user.UserListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if !entity.ValidRole(role) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"role":       role,
		}).Warn("Unknown role requested")
		return nil, user.ErrInvalidRole
	}

	repo, err := s.userRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	users, err := repo.Users.GetUsersByRole(ctx, role)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"role":       role,
			"error":      err.Error(),
		}).Error("Failed to get users by role")
		return nil, err
	}

	return makeUserListResponse(users), nil
}

func (s *usersService) GetActiveUsers(ctx context.Context, limit int) (*user.UserListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.userRepo.NewClient(false)
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

	users, err := repo.Users.GetActiveUsers(ctx, limit)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"limit":      limit,
			"error":      err.Error(),
		}).Error("Failed to get active users")
		return nil, err
	}

	response := &user.UserListResponse{
		Users: make([]user.UserResponse, 0, len(users)),
	}
	for _, userData := range users {
		count := userData.PostCount
		response.Users = append(response.Users, makeUserResponse(userData.User, &count, nil))
	}

	return response, nil
}

func (s *usersService) GetStats(ctx context.Context) (user.UserStatsResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.userRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return user.UserStatsResponse{}, err
	}

	stats, err := repo.Users.GetStats(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get user stats")
		return user.UserStatsResponse{}, err
	}

	return user.UserStatsResponse{
		TotalUsers:     stats.TotalUsers,
		AdminUsers:     stats.AdminUsers,
		ModeratorUsers: stats.ModeratorUsers,
		RegularUsers:   stats.RegularUsers,
	}, nil
}

func (s *usersService) GetUserByID(ctx context.Context, id string) (user.UserResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.userRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return user.UserResponse{}, err
	}

	userData, err := repo.Users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("User not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to get user")
		}
		return user.UserResponse{}, err
	}

	posts, err := repo.Users.GetPostSummaries(ctx, userData.ID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to get user posts")
		return user.UserResponse{}, err
	}

	return makeUserResponse(userData, nil, posts), nil
}

func (s *usersService) UpdateUser(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.userRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return user.UserResponse{}, err
	}

	existing, err := repo.Users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("User not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to get user")
		}
		return user.UserResponse{}, err
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Email != "" {
		existing.Email = req.Email
	}
	if req.Role != "" {
		existing.Role = req.Role
	}
	if req.Avatar != "" {
		existing.Avatar = req.Avatar
	}
	if req.Bio != "" {
		existing.Bio = req.Bio
	}
	existing.UpdatedAt = time.Now()

	if err := repo.Users.UpdateUser(ctx, existing); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Warn("Failed to update user")
		return user.UserResponse{}, err
	}

	return makeUserResponse(existing, nil, nil), nil
}

func (s *usersService) ChangePassword(ctx context.Context, id string, req user.ChangePasswordRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.userRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	existing, err := repo.Users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("User not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to get user")
		}
		return err
	}

	if err := s.bcrypt.ComparePassword(existing.Password, req.CurrentPassword); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
		}).Warn("Current password mismatch")
		return user.ErrCurrentPasswordIncorrect
	}

	hashedPassword, err := s.bcrypt.HashPassword(req.NewPassword)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return err
	}

	if err := repo.Users.UpdatePassword(ctx, id, hashedPassword); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to update password")
		return err
	}

	return nil
}

func (s *usersService) DeleteUser(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.userRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	existing, err := repo.Users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("User not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to get user")
		}
		return err
	}

	dependents, err := repo.Users.CountPosts(ctx, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to count user posts")
		return err
	}

	if dependents > 0 {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"posts":      dependents,
		}).Warn("User deletion blocked by dependent posts")
		return user.ErrUserHasPosts(existing.Name, dependents)
	}

	if err := repo.Users.DeleteUser(ctx, id); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to delete user")
		return err
	}

	return nil
}

func makeUserResponse(userData entity.User, postCount *int, posts []entity.PostSummaryWithCategory) user.UserResponse {
	return user.UserResponse{
		ID:        userData.ID,
		Name:      userData.Name,
		Email:     userData.Email,
		Role:      userData.Role,
		Avatar:    userData.Avatar,
		Bio:       userData.Bio,
		PostCount: postCount,
		Posts:     posts,
		CreatedAt: userData.CreatedAt,
		UpdatedAt: userData.UpdatedAt,
	}
}

func makeUserListResponse(users []entity.User) *user.UserListResponse {
	response := &user.UserListResponse{
		Users: make([]user.UserResponse, 0, len(users)),
	}
	for _, userData := range users {
		response.Users = append(response.Users, makeUserResponse(userData, nil, nil))
	}
	return response
}
