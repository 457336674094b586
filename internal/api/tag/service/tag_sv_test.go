package tagService

import (
	"context"
	"io"
	"testing"

	"BlogGolang/internal/api/tag"
	tagRepository "BlogGolang/internal/api/tag/repository"
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

type fakeRepository struct {
	stub *tagsStub
}

func (f *fakeRepository) NewClient(tx bool) (tagRepository.Client, error) {
	return tagRepository.Client{
		Tags:     f.stub,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type tagsStub struct {
	byID      map[string]entity.Tag
	bySlug    map[string]entity.Tag
	all       []entity.Tag
	counted   []entity.TagWithCount
	posts     []entity.PostSummary
	postCount int

	created      []entity.Tag
	updated      []entity.Tag
	deleted      []string
	searchQuery  string
	searchLimit  int
	searchCalls  int
	popularLimit int
}

func (s *tagsStub) CreateTag(_ context.Context, tagData entity.Tag) error {
	s.created = append(s.created, tagData)
	return nil
}

func (s *tagsStub) GetAllTags(_ context.Context) ([]entity.Tag, error) {
	return s.all, nil
}

func (s *tagsStub) GetAllWithCount(_ context.Context) ([]entity.TagWithCount, error) {
	return s.counted, nil
}

func (s *tagsStub) GetPopular(_ context.Context, limit int) ([]entity.TagWithCount, error) {
	s.popularLimit = limit
	return s.counted, nil
}

func (s *tagsStub) Search(_ context.Context, query string, limit int) ([]entity.TagWithCount, error) {
	s.searchCalls++
	s.searchQuery = query
	s.searchLimit = limit
	return s.counted, nil
}

func (s *tagsStub) GetTagByID(_ context.Context, id string) (entity.Tag, error) {
	tagData, ok := s.byID[id]
	if !ok {
		return entity.Tag{}, tag.ErrTagNotFound
	}
	return tagData, nil
}

func (s *tagsStub) GetTagBySlug(_ context.Context, slug string) (entity.Tag, error) {
	tagData, ok := s.bySlug[slug]
	if !ok {
		return entity.Tag{}, tag.ErrTagNotFound
	}
	return tagData, nil
}

func (s *tagsStub) GetTagByName(_ context.Context, name string) (entity.Tag, error) {
	for _, tagData := range s.all {
		if tagData.Name == name {
			return tagData, nil
		}
	}
	return entity.Tag{}, tag.ErrTagNotFound
}

func (s *tagsStub) GetPostSummaries(_ context.Context, _ string, _ bool) ([]entity.PostSummary, error) {
	return s.posts, nil
}

func (s *tagsStub) CountPosts(_ context.Context, _ string) (int, error) {
	return s.postCount, nil
}

func (s *tagsStub) UpdateTag(_ context.Context, tagData entity.Tag) error {
	s.updated = append(s.updated, tagData)
	return nil
}

func (s *tagsStub) DeleteTag(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func newService(stub *tagsStub) ITagsService {
	return NewTagsService(testLogger(), &fakeRepository{stub: stub}, utils.New())
}

func TestCreateTag(t *testing.T) {
	stub := &tagsStub{}
	svc := newService(stub)

	result, err := svc.CreateTag(context.Background(), tag.CreateTagRequest{
		Name: "Testing",
		Slug: "testing",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "Testing", result.Name)
	assert.Equal(t, "testing", result.Slug)
	require.Len(t, stub.created, 1)
}

func TestSearch_EmptyQuerySkipsRepository(t *testing.T) {
	stub := &tagsStub{}
	svc := newService(stub)

	result, err := svc.Search(context.Background(), "", 10)
	require.NoError(t, err)

	assert.Empty(t, result.Tags)
	assert.NotNil(t, result.Tags)
	assert.Zero(t, stub.searchCalls)
}

func TestSearch_ClampsLimit(t *testing.T) {
	stub := &tagsStub{
		counted: []entity.TagWithCount{
			{Tag: entity.Tag{ID: "tag-1", Name: "Go", Slug: "go"}, PostCount: 4},
		},
	}
	svc := newService(stub)

	result, err := svc.Search(context.Background(), "go", 500)
	require.NoError(t, err)

	assert.Equal(t, "go", stub.searchQuery)
	assert.Equal(t, 10, stub.searchLimit)
	require.Len(t, result.Tags, 1)
	require.NotNil(t, result.Tags[0].PostCount)
	assert.Equal(t, 4, *result.Tags[0].PostCount)
}

func TestGetTagByID_NotFound(t *testing.T) {
	svc := newService(&tagsStub{byID: map[string]entity.Tag{}})

	_, err := svc.GetTagByID(context.Background(), "missing")
	assert.ErrorIs(t, err, tag.ErrTagNotFound)
}

func TestGetPopular_ClampsLimit(t *testing.T) {
	stub := &tagsStub{}
	svc := newService(stub)

	_, err := svc.GetPopular(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 10, stub.popularLimit)
}

func TestUpdateTag_MergesFields(t *testing.T) {
	stub := &tagsStub{
		byID: map[string]entity.Tag{
			"tag-1": {ID: "tag-1", Name: "Go", Slug: "go"},
		},
	}
	svc := newService(stub)

	result, err := svc.UpdateTag(context.Background(), "tag-1", tag.UpdateTagRequest{Name: "Golang"})
	require.NoError(t, err)

	assert.Equal(t, "Golang", result.Name)
	assert.Equal(t, "go", result.Slug)
	require.Len(t, stub.updated, 1)
}

func TestDeleteTag_ProceedsWithAttachedPosts(t *testing.T) {
	stub := &tagsStub{
		byID:      map[string]entity.Tag{"tag-1": {ID: "tag-1", Name: "Go"}},
		postCount: 7,
	}
	svc := newService(stub)

	// Attached posts log a warning but never block deletion.
	require.NoError(t, svc.DeleteTag(context.Background(), "tag-1"))
	assert.Equal(t, []string{"tag-1"}, stub.deleted)
}

func TestDeleteTag_NotFound(t *testing.T) {
	stub := &tagsStub{byID: map[string]entity.Tag{}}
	svc := newService(stub)

	err := svc.DeleteTag(context.Background(), "missing")
	assert.ErrorIs(t, err, tag.ErrTagNotFound)
	assert.Empty(t, stub.deleted)
}
