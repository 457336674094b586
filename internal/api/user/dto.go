package user

import (
	"BlogGolang/internal/entity"
	"time"
)

type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=USER ADMIN MODERATOR"`
	Avatar   string `json:"avatar" validate:"omitempty,max=512"`
	Bio      string `json:"bio" validate:"omitempty,max=1024"`
}

type UpdateUserRequest struct {
	Name   string `json:"name" validate:"omitempty,min=2,max=255"`
	Email  string `json:"email" validate:"omitempty,email,max=255"`
	Role   string `json:"role" validate:"omitempty,oneof=USER ADMIN MODERATOR"`
	Avatar string `json:"avatar" validate:"omitempty,max=512"`
	Bio    string `json:"bio" validate:"omitempty,max=1024"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

type UserResponse struct {
	ID        string                           `json:"id"`
	Name      string                           `json:"name"`
	Email     string                           `json:"email"`
	Role      string                           `json:"role"`
	Avatar    string                           `json:"avatar,omitempty"`
	Bio       string                           `json:"bio,omitempty"`
	PostCount *int                             `json:"postCount,omitempty"`
	Posts     []entity.PostSummaryWithCategory `json:"posts,omitempty"`
	CreatedAt time.Time                        `json:"created_at"`
	UpdatedAt time.Time                        `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

type UserStatsResponse struct {
	TotalUsers     int `json:"totalUsers"`
	AdminUsers     int `json:"adminUsers"`
	ModeratorUsers int `json:"moderatorUsers"`
	RegularUsers   int `json:"regularUsers"`
}
