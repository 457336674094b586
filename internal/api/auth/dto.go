package auth

import "BlogGolang/internal/entity"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   string   `json:"expires_in"`
	User        AuthUser `json:"user"`
}

type ProfileResponse struct {
	ID     string                           `json:"id"`
	Name   string                           `json:"name"`
	Email  string                           `json:"email"`
	Role   string                           `json:"role"`
	Avatar string                           `json:"avatar,omitempty"`
	Bio    string                           `json:"bio,omitempty"`
	Posts  []entity.PostSummaryWithCategory `json:"posts"`
}
