package client

import (
	"BlogGolang/internal/api/tag"
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const tagsPath = apiPrefix + "/tags"

func (c *Client) ListTags(ctx context.Context) (*tag.TagListResponse, error) {
	var out tag.TagListResponse
	if err := c.get(ctx, tagsPath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListTagsWithCount(ctx context.Context) (*tag.TagListResponse, error) {
	var out tag.TagListResponse
	if err := c.get(ctx, tagsPath+"/count", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPopularTags(ctx context.Context, limit int) (*tag.TagListResponse, error) {
	var out tag.TagListResponse
	if err := c.get(ctx, fmt.Sprintf("%s/popular?limit=%d", tagsPath, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchTags(ctx context.Context, query string, limit int) (*tag.TagListResponse, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", fmt.Sprintf("%d", limit))

	var out tag.TagListResponse
	if err := c.get(ctx, tagsPath+"/search?"+values.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTag(ctx context.Context, id string) (*tag.TagResponse, error) {
	var out tag.TagResponse
	if err := c.get(ctx, tagsPath+"/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTagBySlug(ctx context.Context, slug string) (*tag.TagResponse, error) {
	var out tag.TagResponse
	if err := c.get(ctx, tagsPath+"/slug/"+url.PathEscape(slug), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTag(ctx context.Context, req tag.CreateTagRequest) (*tag.TagResponse, error) {
	var out tag.TagResponse
	if err := c.mutate(ctx, http.MethodPost, tagsPath+"/", req, &out, tagsPath); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTag(ctx context.Context, id string, req tag.UpdateTagRequest) (*tag.TagResponse, error) {
	var out tag.TagResponse
	if err := c.mutate(ctx, http.MethodPatch, tagsPath+"/"+url.PathEscape(id), req, &out, tagsPath); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTag(ctx context.Context, id string) error {
	return c.mutate(ctx, http.MethodDelete, tagsPath+"/"+url.PathEscape(id), nil, nil, tagsPath)
}
