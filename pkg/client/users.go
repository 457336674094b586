package client

import (
	"BlogGolang/internal/api/user"
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const usersPath = apiPrefix + "/users"

func (c *Client) RegisterUser(ctx context.Context, req user.RegisterUserRequest) (*user.UserResponse, error) {
	var out user.UserResponse
	if err := c.mutate(ctx, http.MethodPost, usersPath+"/", req, &out, usersPath); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context) (*user.UserListResponse, error) {
	var out user.UserListResponse
	if err := c.get(ctx, usersPath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUserStats(ctx context.Context) (*user.UserStatsResponse, error) {
	var out user.UserStatsResponse
	if err := c.get(ctx, usersPath+"/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListActiveUsers(ctx context.Context, limit int) (*user.UserListResponse, error) {
	var out user.UserListResponse
	if err := c.get(ctx, fmt.Sprintf("%s/active?limit=%d", usersPath, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsersByRole(ctx context.Context, role string) (*user.UserListResponse, error) {
	var out user.UserListResponse
	if err := c.get(ctx, usersPath+"/role/"+url.PathEscape(role), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*user.UserResponse, error) {
	var out user.UserResponse
	if err := c.get(ctx, usersPath+"/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, req user.UpdateUserRequest) (*user.UserResponse, error) {
	var out user.UserResponse
	if err := c.mutate(ctx, http.MethodPatch, usersPath+"/"+url.PathEscape(id), req, &out, usersPath); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChangePassword(ctx context.Context, id string, req user.ChangePasswordRequest) error {
	path := usersPath + "/" + url.PathEscape(id) + "/password"
	return c.mutate(ctx, http.MethodPatch, path, req, nil, usersPath)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.mutate(ctx, http.MethodDelete, usersPath+"/"+url.PathEscape(id), nil, nil, usersPath)
}
