package postService

import (
	"context"
	"io"
	"testing"

	"BlogGolang/internal/api/post"
	postRepository "BlogGolang/internal/api/post/repository"
	"BlogGolang/internal/entity"
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

// fakeRepository serves the same stubs for transactional and plain
// clients so committed writes are visible to the read-back.
type fakeRepository struct {
	posts    *postsStub
	postTags *postTagsStub

	commits   int
	rollbacks int
}

func (f *fakeRepository) NewClient(tx bool) (postRepository.Client, error) {
	return postRepository.Client{
		Posts:    f.posts,
		PostTags: f.postTags,
		Commit: func() error {
			f.commits++
			return nil
		},
		Rollback: func() error {
			f.rollbacks++
			return nil
		},
	}, nil
}

type postsStub struct {
	byID           map[string]entity.Post
	bySlug         map[string]entity.Post
	list           []entity.Post
	total          int
	categories     map[string]bool
	viewsIncreased []string
	deleted        []string

	fetchLimit  int
	fetchOffset int
}

func (s *postsStub) CreatePost(_ context.Context, postData entity.Post) error {
	if s.byID == nil {
		s.byID = make(map[string]entity.Post)
	}
	s.byID[postData.ID] = postData
	return nil
}

func (s *postsStub) GetPosts(_ context.Context, limit, offset int) ([]entity.Post, error) {
	s.fetchLimit = limit
	s.fetchOffset = offset
	return s.list, nil
}

func (s *postsStub) CountPosts(_ context.Context) (int, error) { return s.total, nil }

func (s *postsStub) GetPublishedPosts(_ context.Context, limit, offset int) ([]entity.Post, error) {
	s.fetchLimit = limit
	s.fetchOffset = offset
	return s.list, nil
}

func (s *postsStub) CountPublishedPosts(_ context.Context) (int, error) { return s.total, nil }

func (s *postsStub) GetPostsByCategory(_ context.Context, _ string, limit, offset int) ([]entity.Post, error) {
	s.fetchLimit = limit
	s.fetchOffset = offset
	return s.list, nil
}

func (s *postsStub) CountPostsByCategory(_ context.Context, _ string) (int, error) {
	return s.total, nil
}

func (s *postsStub) GetPostsByTag(_ context.Context, _ string, limit, offset int) ([]entity.Post, error) {
	s.fetchLimit = limit
	s.fetchOffset = offset
	return s.list, nil
}

func (s *postsStub) CountPostsByTag(_ context.Context, _ string) (int, error) { return s.total, nil }

func (s *postsStub) GetPostByID(_ context.Context, id string) (entity.Post, error) {
	postData, ok := s.byID[id]
	if !ok {
		return entity.Post{}, post.ErrPostNotFound
	}
	return postData, nil
}

func (s *postsStub) GetPostBySlug(_ context.Context, slug string) (entity.Post, error) {
	postData, ok := s.bySlug[slug]
	if !ok {
		return entity.Post{}, post.ErrPostNotFound
	}
	return postData, nil
}

func (s *postsStub) IncrementViews(_ context.Context, id string) error {
	s.viewsIncreased = append(s.viewsIncreased, id)
	return nil
}

func (s *postsStub) CategoryExists(_ context.Context, categoryID string) (bool, error) {
	return s.categories[categoryID], nil
}

func (s *postsStub) UpdatePost(_ context.Context, postData entity.Post) error {
	s.byID[postData.ID] = postData
	return nil
}

func (s *postsStub) DeletePost(_ context.Context, id string) error {
	if _, ok := s.byID[id]; !ok {
		return post.ErrPostNotFound
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type postTagsStub struct {
	tagsByName map[string]entity.Tag
	attached   map[string][]string
	detached   []string
}

func newPostTagsStub() *postTagsStub {
	return &postTagsStub{
		tagsByName: make(map[string]entity.Tag),
		attached:   make(map[string][]string),
	}
}

func (s *postTagsStub) GetTagByName(_ context.Context, name string) (entity.Tag, bool, error) {
	tagData, ok := s.tagsByName[name]
	return tagData, ok, nil
}

func (s *postTagsStub) CreateTag(_ context.Context, tagData entity.Tag) error {
	s.tagsByName[tagData.Name] = tagData
	return nil
}

func (s *postTagsStub) AttachTag(_ context.Context, postID, tagID string) error {
	s.attached[postID] = append(s.attached[postID], tagID)
	return nil
}

func (s *postTagsStub) DetachAllTags(_ context.Context, postID string) error {
	s.detached = append(s.detached, postID)
	s.attached[postID] = nil
	return nil
}

func (s *postTagsStub) GetTagsByPostIDs(_ context.Context, postIDs []string) (map[string][]entity.TagSummary, error) {
	byID := make(map[string]entity.Tag, len(s.tagsByName))
	for _, tagData := range s.tagsByName {
		byID[tagData.ID] = tagData
	}

	result := make(map[string][]entity.TagSummary)
	for _, postID := range postIDs {
		for _, tagID := range s.attached[postID] {
			tagData := byID[tagID]
			result[postID] = append(result[postID], entity.TagSummary{
				ID:   tagData.ID,
				Name: tagData.Name,
				Slug: tagData.Slug,
			})
		}
	}
	return result, nil
}

func newFixture() (*fakeRepository, IPostsService) {
	repo := &fakeRepository{
		posts:    &postsStub{byID: make(map[string]entity.Post), categories: map[string]bool{"cat-1": true}},
		postTags: newPostTagsStub(),
	}
	return repo, NewPostsService(testLogger(), repo, utils.New())
}

func TestCreatePost(t *testing.T) {
	repo, svc := newFixture()

	result, err := svc.CreatePost(context.Background(), post.CreatePostRequest{
		Title:      "Hello World",
		Slug:       "hello-world",
		Content:    "Body",
		Published:  true,
		AuthorID:   "user-1",
		CategoryID: "cat-1",
		Tags:       []string{"Go", "   ", "Testing"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.True(t, result.Published)
	require.NotNil(t, result.PublishedAt)
	require.Len(t, result.Tags, 2)
	assert.Equal(t, "Go", result.Tags[0].Name)
	assert.Equal(t, "go", result.Tags[0].Slug)

	assert.Equal(t, 1, repo.commits)
	require.Len(t, repo.postTags.tagsByName, 2)
}

func TestCreatePost_Draft(t *testing.T) {
	_, svc := newFixture()

	result, err := svc.CreatePost(context.Background(), post.CreatePostRequest{
		Title:      "Draft",
		Slug:       "draft",
		Content:    "Body",
		AuthorID:   "user-1",
		CategoryID: "cat-1",
	})
	require.NoError(t, err)

	assert.False(t, result.Published)
	assert.Nil(t, result.PublishedAt)
	assert.NotNil(t, result.Tags)
	assert.Empty(t, result.Tags)
}

func TestCreatePost_UnknownCategory(t *testing.T) {
	repo, svc := newFixture()

	_, err := svc.CreatePost(context.Background(), post.CreatePostRequest{
		Title:      "Hello",
		Slug:       "hello",
		Content:    "Body",
		AuthorID:   "user-1",
		CategoryID: "missing",
	})
	assert.ErrorIs(t, err, post.ErrCategoryNotFound)
	assert.Zero(t, repo.commits)
	assert.Equal(t, 1, repo.rollbacks)
	assert.Empty(t, repo.posts.byID)
}

func TestCreatePost_ReusesExistingTag(t *testing.T) {
	repo, svc := newFixture()
	repo.postTags.tagsByName["Go"] = entity.Tag{ID: "tag-go", Name: "Go", Slug: "go"}

	result, err := svc.CreatePost(context.Background(), post.CreatePostRequest{
		Title:      "Hello",
		Slug:       "hello",
		Content:    "Body",
		AuthorID:   "user-1",
		CategoryID: "cat-1",
		Tags:       []string{"Go"},
	})
	require.NoError(t, err)

	require.Len(t, result.Tags, 1)
	assert.Equal(t, "tag-go", result.Tags[0].ID)
	assert.Len(t, repo.postTags.tagsByName, 1)
}

func TestGetPosts_Pagination(t *testing.T) {
	repo, svc := newFixture()
	repo.posts.list = []entity.Post{{ID: "post-1"}, {ID: "post-2"}}
	repo.posts.total = 25

	result, err := svc.GetPosts(context.Background(), 2, 10)
	require.NoError(t, err)

	assert.Equal(t, 10, repo.posts.fetchLimit)
	assert.Equal(t, 10, repo.posts.fetchOffset)
	assert.Equal(t, 2, result.Pagination.Page)
	assert.Equal(t, 10, result.Pagination.Limit)
	assert.Equal(t, 25, result.Pagination.Total)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.Len(t, result.Posts, 2)
}

func TestGetPosts_NormalizesPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"zero values", 0, 0, 1, 10, 0},
		{"negative page", -2, 20, 1, 20, 0},
		{"limit too large", 1, 1000, 1, 10, 0},
		{"second page", 2, 5, 2, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, svc := newFixture()

			result, err := svc.GetPosts(context.Background(), tt.page, tt.limit)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPage, result.Pagination.Page)
			assert.Equal(t, tt.wantLimit, result.Pagination.Limit)
			assert.Equal(t, tt.wantOffset, repo.posts.fetchOffset)
		})
	}
}

func TestGetPostByID_CountsView(t *testing.T) {
	repo, svc := newFixture()
	repo.posts.byID["post-1"] = entity.Post{ID: "post-1", Title: "Hello", Views: 7}

	result, err := svc.GetPostByID(context.Background(), "post-1")
	require.NoError(t, err)

	assert.Equal(t, 8, result.Views)
	assert.Equal(t, []string{"post-1"}, repo.posts.viewsIncreased)
}

func TestGetPostBySlug_NotFound(t *testing.T) {
	_, svc := newFixture()

	_, err := svc.GetPostBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, post.ErrPostNotFound)
}

func TestUpdatePost_PublishTransitions(t *testing.T) {
	repo, svc := newFixture()
	repo.posts.byID["post-1"] = entity.Post{ID: "post-1", Title: "Hello", CategoryID: "cat-1"}

	published := true
	result, err := svc.UpdatePost(context.Background(), "post-1", post.UpdatePostRequest{
		Published: &published,
	})
	require.NoError(t, err)
	assert.True(t, result.Published)
	require.NotNil(t, result.PublishedAt)
	firstPublishedAt := *result.PublishedAt

	// Publishing again keeps the original timestamp.
	result, err = svc.UpdatePost(context.Background(), "post-1", post.UpdatePostRequest{
		Published: &published,
	})
	require.NoError(t, err)
	require.NotNil(t, result.PublishedAt)
	assert.Equal(t, firstPublishedAt, *result.PublishedAt)

	unpublished := false
	result, err = svc.UpdatePost(context.Background(), "post-1", post.UpdatePostRequest{
		Published: &unpublished,
	})
	require.NoError(t, err)
	assert.False(t, result.Published)
	assert.Nil(t, result.PublishedAt)
}

func TestUpdatePost_MergesFields(t *testing.T) {
	repo, svc := newFixture()
	repo.posts.byID["post-1"] = entity.Post{
		ID:         "post-1",
		Title:      "Hello",
		Slug:       "hello",
		Content:    "Body",
		CategoryID: "cat-1",
		ReadTime:   4,
	}

	readTime := 9
	result, err := svc.UpdatePost(context.Background(), "post-1", post.UpdatePostRequest{
		Title:    "Hello Again",
		ReadTime: &readTime,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello Again", result.Title)
	assert.Equal(t, "hello", result.Slug)
	assert.Equal(t, "Body", result.Content)
	assert.Equal(t, 9, result.ReadTime)
}

func TestUpdatePost_UnknownCategory(t *testing.T) {
	repo, svc := newFixture()
	repo.posts.byID["post-1"] = entity.Post{ID: "post-1", CategoryID: "cat-1"}

	_, err := svc.UpdatePost(context.Background(), "post-1", post.UpdatePostRequest{
		CategoryID: "missing",
	})
	assert.ErrorIs(t, err, post.ErrCategoryNotFound)
	assert.Zero(t, repo.commits)
}

func TestUpdatePost_TagsReplacedOnlyWhenPresent(t *testing.T) {
	repo, svc := newFixture()
	repo.posts.byID["post-1"] = entity.Post{ID: "post-1", CategoryID: "cat-1"}
	repo.postTags.tagsByName["Go"] = entity.Tag{ID: "tag-go", Name: "Go", Slug: "go"}
	repo.postTags.attached["post-1"] = []string{"tag-go"}

	// Absent tags key leaves the set untouched.
	result, err := svc.UpdatePost(context.Background(), "post-1", post.UpdatePostRequest{
		Title: "Renamed",
	})
	require.NoError(t, err)
	assert.Empty(t, repo.postTags.detached)
	require.Len(t, result.Tags, 1)

	// A present tags key replaces the full set.
	newTags := []string{"Testing"}
	result, err = svc.UpdatePost(context.Background(), "post-1", post.UpdatePostRequest{
		Tags: &newTags,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"post-1"}, repo.postTags.detached)
	require.Len(t, result.Tags, 1)
	assert.Equal(t, "Testing", result.Tags[0].Name)
}

func TestUpdatePost_NotFound(t *testing.T) {
	_, svc := newFixture()

	_, err := svc.UpdatePost(context.Background(), "missing", post.UpdatePostRequest{Title: "X"})
	assert.ErrorIs(t, err, post.ErrPostNotFound)
}

func TestDeletePost(t *testing.T) {
	repo, svc := newFixture()
	repo.posts.byID["post-1"] = entity.Post{ID: "post-1"}

	require.NoError(t, svc.DeletePost(context.Background(), "post-1"))
	assert.Equal(t, []string{"post-1"}, repo.posts.deleted)
}

func TestDeletePost_NotFound(t *testing.T) {
	_, svc := newFixture()

	err := svc.DeletePost(context.Background(), "missing")
	assert.ErrorIs(t, err, post.ErrPostNotFound)
}

func TestListPosts_EmptyPage(t *testing.T) {
	repo, svc := newFixture()
	repo.posts.list = nil
	repo.posts.total = 0

	result, err := svc.GetPublishedPosts(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.NotNil(t, result.Posts)
	assert.Empty(t, result.Posts)
	assert.Zero(t, result.Pagination.TotalPages)
}
