package categoryService

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"BlogGolang/internal/api/category"
	categoryRepository "BlogGolang/internal/api/category/repository"
	"BlogGolang/internal/entity"
	"BlogGolang/pkg/response"
	"BlogGolang/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeRepository struct {
	stub *categoriesStub
}

func (f *fakeRepository) NewClient(tx bool) (categoryRepository.Client, error) {
	return categoryRepository.Client{
		Categories: f.stub,
		Commit:     func() error { return nil },
		Rollback:   func() error { return nil },
	}, nil
}

type categoriesStub struct {
	byID      map[string]entity.Category
	bySlug    map[string]entity.Category
	all       []entity.Category
	counted   []entity.CategoryWithCount
	posts     []entity.PostSummary
	postCount int

	created       []entity.Category
	updated       []entity.Category
	deleted       []string
	popularLimit  int
	publishedOnly []bool
}

func (s *categoriesStub) CreateCategory(_ context.Context, cat entity.Category) error {
	s.created = append(s.created, cat)
	return nil
}

func (s *categoriesStub) GetAllCategories(_ context.Context) ([]entity.Category, error) {
	return s.all, nil
}

func (s *categoriesStub) GetAllWithCount(_ context.Context) ([]entity.CategoryWithCount, error) {
	return s.counted, nil
}

func (s *categoriesStub) GetPopular(_ context.Context, limit int) ([]entity.CategoryWithCount, error) {
	s.popularLimit = limit
	return s.counted, nil
}

func (s *categoriesStub) GetCategoryByID(_ context.Context, id string) (entity.Category, error) {
	cat, ok := s.byID[id]
	if !ok {
		return entity.Category{}, category.ErrCategoryNotFound
	}
	return cat, nil
}

func (s *categoriesStub) GetCategoryBySlug(_ context.Context, slug string) (entity.Category, error) {
	cat, ok := s.bySlug[slug]
	if !ok {
		return entity.Category{}, category.ErrCategoryNotFound
	}
	return cat, nil
}

func (s *categoriesStub) GetPostSummaries(_ context.Context, _ string, publishedOnly bool) ([]entity.PostSummary, error) {
	s.publishedOnly = append(s.publishedOnly, publishedOnly)
	return s.posts, nil
}

func (s *categoriesStub) GetPostSummariesByCategoryIDs(_ context.Context, categoryIDs []string) (map[string][]entity.PostSummary, error) {
	result := make(map[string][]entity.PostSummary)
	for _, id := range categoryIDs {
		result[id] = s.posts
	}
	return result, nil
}

func (s *categoriesStub) CountPosts(_ context.Context, _ string) (int, error) {
	return s.postCount, nil
}

func (s *categoriesStub) UpdateCategory(_ context.Context, cat entity.Category) error {
	s.updated = append(s.updated, cat)
	return nil
}

func (s *categoriesStub) DeleteCategory(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func newService(stub *categoriesStub) ICategoriesService {
	return NewCategoriesService(testLogger(), &fakeRepository{stub: stub}, utils.New())
}

func TestCreateCategory(t *testing.T) {
	stub := &categoriesStub{}
	svc := newService(stub)

	result, err := svc.CreateCategory(context.Background(), category.CreateCategoryRequest{
		Name:        "Go",
		Slug:        "go",
		Description: "Everything Go",
		Color:       "#00ADD8",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "Go", result.Name)
	assert.Equal(t, "go", result.Slug)
	assert.Equal(t, "Everything Go", result.Description)
	require.Len(t, stub.created, 1)
	assert.Equal(t, result.ID, stub.created[0].ID)
}

func TestGetCategoryByID(t *testing.T) {
	stub := &categoriesStub{
		byID: map[string]entity.Category{
			"cat-1": {ID: "cat-1", Name: "Go", Slug: "go", CreatedAt: time.Now()},
		},
		posts: []entity.PostSummary{{ID: "post-1", Title: "Hello", Published: false}},
	}
	svc := newService(stub)

	result, err := svc.GetCategoryByID(context.Background(), "cat-1")
	require.NoError(t, err)

	assert.Equal(t, "Go", result.Name)
	require.Len(t, result.Posts, 1)

	// ID lookups include drafts.
	require.Len(t, stub.publishedOnly, 1)
	assert.False(t, stub.publishedOnly[0])
}

func TestGetCategoryByID_NotFound(t *testing.T) {
	svc := newService(&categoriesStub{byID: map[string]entity.Category{}})

	_, err := svc.GetCategoryByID(context.Background(), "missing")
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
}

func TestGetCategoryBySlug_PublishedOnly(t *testing.T) {
	stub := &categoriesStub{
		bySlug: map[string]entity.Category{
			"go": {ID: "cat-1", Name: "Go", Slug: "go"},
		},
	}
	svc := newService(stub)

	_, err := svc.GetCategoryBySlug(context.Background(), "go")
	require.NoError(t, err)

	require.Len(t, stub.publishedOnly, 1)
	assert.True(t, stub.publishedOnly[0])
}

func TestGetPopular_ClampsLimit(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"zero falls back", 0, 10},
		{"negative falls back", -3, 10},
		{"too large falls back", 500, 10},
		{"in range kept", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &categoriesStub{}
			svc := newService(stub)

			_, err := svc.GetPopular(context.Background(), tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, stub.popularLimit)
		})
	}
}

func TestUpdateCategory_MergesFields(t *testing.T) {
	stub := &categoriesStub{
		byID: map[string]entity.Category{
			"cat-1": {ID: "cat-1", Name: "Go", Slug: "go", Description: "old"},
		},
	}
	svc := newService(stub)

	result, err := svc.UpdateCategory(context.Background(), "cat-1", category.UpdateCategoryRequest{
		Name: "Golang",
	})
	require.NoError(t, err)

	assert.Equal(t, "Golang", result.Name)
	assert.Equal(t, "go", result.Slug)
	assert.Equal(t, "old", result.Description)
	require.Len(t, stub.updated, 1)
	assert.Equal(t, "Golang", stub.updated[0].Name)
}

func TestDeleteCategory(t *testing.T) {
	stub := &categoriesStub{
		byID: map[string]entity.Category{"cat-1": {ID: "cat-1", Name: "Go"}},
	}
	svc := newService(stub)

	require.NoError(t, svc.DeleteCategory(context.Background(), "cat-1"))
	assert.Equal(t, []string{"cat-1"}, stub.deleted)
}

func TestDeleteCategory_BlockedByPosts(t *testing.T) {
	stub := &categoriesStub{
		byID:      map[string]entity.Category{"cat-1": {ID: "cat-1", Name: "Go"}},
		postCount: 3,
	}
	svc := newService(stub)

	err := svc.DeleteCategory(context.Background(), "cat-1")

	var coded *response.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, http.StatusConflict, coded.Code)
	assert.Contains(t, err.Error(), `"Go"`)
	assert.Contains(t, err.Error(), "3 posts")
	assert.Empty(t, stub.deleted)
}
