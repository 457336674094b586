package client

import (
	"BlogGolang/internal/api/post"
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const postsPath = apiPrefix + "/posts"

func paginationQuery(page, limit int) string {
	values := url.Values{}
	values.Set("page", fmt.Sprintf("%d", page))
	values.Set("limit", fmt.Sprintf("%d", limit))
	return "?" + values.Encode()
}

func (c *Client) ListPosts(ctx context.Context, page, limit int) (*post.PostListResponse, error) {
	var out post.PostListResponse
	if err := c.get(ctx, postsPath+paginationQuery(page, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPublishedPosts(ctx context.Context, page, limit int) (*post.PostListResponse, error) {
	var out post.PostListResponse
	if err := c.get(ctx, postsPath+"/published"+paginationQuery(page, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPostsByCategory(ctx context.Context, categoryID string, page, limit int) (*post.PostListResponse, error) {
	var out post.PostListResponse
	path := postsPath + "/category/" + url.PathEscape(categoryID) + paginationQuery(page, limit)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPostsByTag(ctx context.Context, tagID string, page, limit int) (*post.PostListResponse, error) {
	var out post.PostListResponse
	path := postsPath + "/tag/" + url.PathEscape(tagID) + paginationQuery(page, limit)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPost(ctx context.Context, id string) (*post.PostResponse, error) {
	var out post.PostResponse
	if err := c.get(ctx, postsPath+"/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPostBySlug(ctx context.Context, slug string) (*post.PostResponse, error) {
	var out post.PostResponse
	if err := c.get(ctx, postsPath+"/slug/"+url.PathEscape(slug), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePost(ctx context.Context, req post.CreatePostRequest) (*post.PostResponse, error) {
	var out post.PostResponse
	if err := c.mutate(ctx, http.MethodPost, postsPath+"/", req, &out, postsPath); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePost(ctx context.Context, id string, req post.UpdatePostRequest) (*post.PostResponse, error) {
	var out post.PostResponse
	if err := c.mutate(ctx, http.MethodPatch, postsPath+"/"+url.PathEscape(id), req, &out, postsPath); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.mutate(ctx, http.MethodDelete, postsPath+"/"+url.PathEscape(id), nil, nil, postsPath)
}
