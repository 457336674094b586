package client

import (
	"BlogGolang/internal/api/category"
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const categoriesPath = apiPrefix + "/categories"

func (c *Client) ListCategories(ctx context.Context) (*category.CategoryListResponse, error) {
	var out category.CategoryListResponse
	if err := c.get(ctx, categoriesPath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCategoriesWithCount(ctx context.Context) (*category.CategoryListResponse, error) {
	var out category.CategoryListResponse
	if err := c.get(ctx, categoriesPath+"/count", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPopularCategories(ctx context.Context, limit int) (*category.CategoryListResponse, error) {
	var out category.CategoryListResponse
	if err := c.get(ctx, fmt.Sprintf("%s/popular?limit=%d", categoriesPath, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCategory(ctx context.Context, id string) (*category.CategoryResponse, error) {
	var out category.CategoryResponse
	if err := c.get(ctx, categoriesPath+"/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCategoryBySlug(ctx context.Context, slug string) (*category.CategoryResponse, error) {
	var out category.CategoryResponse
	if err := c.get(ctx, categoriesPath+"/slug/"+url.PathEscape(slug), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCategory(ctx context.Context, req category.CreateCategoryRequest) (*category.CategoryResponse, error) {
	var out category.CategoryResponse
	if err := c.mutate(ctx, http.MethodPost, categoriesPath+"/", req, &out, categoriesPath); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, req category.UpdateCategoryRequest) (*category.CategoryResponse, error) {
	var out category.CategoryResponse
	if err := c.mutate(ctx, http.MethodPatch, categoriesPath+"/"+url.PathEscape(id), req, &out, categoriesPath); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.mutate(ctx, http.MethodDelete, categoriesPath+"/"+url.PathEscape(id), nil, nil, categoriesPath)
}
