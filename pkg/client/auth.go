package client

import (
	"BlogGolang/internal/api/auth"
	"context"
	"net/http"
)

const authPath = apiPrefix + "/auth"

// Login authenticates and installs the returned token as the client
// session.
func (c *Client) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	var out auth.LoginResponse
	if err := c.mutate(ctx, http.MethodPost, authPath+"/login", req, &out, authPath, usersPath); err != nil {
		return nil, err
	}

	c.SetSession(&Session{AccessToken: out.AccessToken})
	return &out, nil
}

func (c *Client) GetProfile(ctx context.Context) (*auth.ProfileResponse, error) {
	var out auth.ProfileResponse
	if err := c.get(ctx, authPath+"/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the server-side token and clears the local session.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.mutate(ctx, http.MethodPost, authPath+"/logout", nil, nil, authPath, usersPath); err != nil {
		return err
	}

	c.ClearSession()
	return nil
}
