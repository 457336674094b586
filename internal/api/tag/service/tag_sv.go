package tagService

import (
	"BlogGolang/internal/api/tag"
	"BlogGolang/internal/entity"
	contextPkg "BlogGolang/pkg/context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *tagsService) CreateTag(ctx context.Context, req tag.CreateTagRequest) (tag.TagResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.tagRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return tag.TagResponse{}, err
	}

	tagID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return tag.TagResponse{}, err
	}

	now := time.Now()
	tagData := entity.Tag{
		ID:        tagID,
		Name:      req.Name,
		Slug:      req.Slug,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Tags.CreateTag(ctx, tagData); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"name":       req.Name,
			"error":      err.Error(),
		}).Warn("Failed to create tag")
		return tag.TagResponse{}, err
	}

	return makeTagResponse(tagData, nil, nil), nil
}

func (s *tagsService) GetAllTags(ctx context.Context) (*tag.TagListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.tagRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	tags, err := repo.Tags.GetAllTags(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get tags")
		return nil, err
	}

	response := &tag.TagListResponse{
		Tags: make([]tag.TagResponse, 0, len(tags)),
	}
	for _, tagData := range tags {
		response.Tags = append(response.Tags, makeTagResponse(tagData, nil, nil))
	}

	return response, nil
}

func (s *tagsService) GetAllWithCount(ctx context.Context) (*tag.TagListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.tagRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	tags, err := repo.Tags.GetAllWithCount(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get tags with count")
		return nil, err
	}

	return makeCountedListResponse(tags), nil
}

func (s *tagsService) GetPopular(ctx context.Context, limit int) (*tag.TagListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.tagRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	if limit < 1 || limit > 100 {
		limit = 10
	}

	tags, err := repo.Tags.GetPopular(ctx, limit)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"limit":      limit,
			"error":      err.Error(),
		}).Error("Failed to get popular tags")
		return nil, err
	}

	return makeCountedListResponse(tags), nil
}

func (s *tagsService) Search(ctx context.Context, query string, limit int) (*tag.TagListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.tagRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	if query == "" {
		return &tag.TagListResponse{Tags: []tag.TagResponse{}}, nil
	}

	if limit < 1 || limit > 100 {
		limit = 10
	}

	tags, err := repo.Tags.Search(ctx, query, limit)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"query":      query,
			"error":      err.Error(),
		}).Error("Failed to search tags")
		return nil, err
	}

	return makeCountedListResponse(tags), nil
}

func (s *tagsService) GetTagByID(ctx context.Context, id string) (tag.TagResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.tagRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return tag.TagResponse{}, err
	}

	tagData, err := repo.Tags.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, tag.ErrTagNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("Tag not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to get tag")
		}
		return tag.TagResponse{}, err
	}

	posts, err := repo.Tags.GetPostSummaries(ctx, tagData.ID, false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to get tag posts")
		return tag.TagResponse{}, err
	}

	return makeTagResponse(tagData, nil, posts), nil
}

func (s *tagsService) GetTagBySlug(ctx context.Context, slug string) (tag.TagResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.tagRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return tag.TagResponse{}, err
	}

	tagData, err := repo.Tags.GetTagBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, tag.ErrTagNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"slug":       slug,
			}).Warn("Tag not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"slug":       slug,
				"error":      err.Error(),
			}).Error("Failed to get tag")
		}
		return tag.TagResponse{}, err
	}

	// Slug lookups are the public-facing view: published posts only.
	posts, err := repo.Tags.GetPostSummaries(ctx, tagData.ID, true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"slug":       slug,
			"error":      err.Error(),
		}).Error("Failed to get tag posts")
		return tag.TagResponse{}, err
	}

	return makeTagResponse(tagData, nil, posts), nil
}

func (s *tagsService) UpdateTag(ctx context.Context, id string, req tag.UpdateTagRequest) (tag.TagResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.tagRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return tag.TagResponse{}, err
	}

	existing, err := repo.Tags.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, tag.ErrTagNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("Tag not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to get tag")
		}
		return tag.TagResponse{}, err
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Slug != "" {
		existing.Slug = req.Slug
	}
	existing.UpdatedAt = time.Now()

	if err := repo.Tags.UpdateTag(ctx, existing); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Warn("Failed to update tag")
		return tag.TagResponse{}, err
	}

	posts, err := repo.Tags.GetPostSummaries(ctx, existing.ID, false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to get tag posts")
		return tag.TagResponse{}, err
	}

	return makeTagResponse(existing, nil, posts), nil
}

func (s *tagsService) DeleteTag(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.tagRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	existing, err := repo.Tags.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, tag.ErrTagNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("Tag not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to get tag")
		}
		return err
	}

	attached, err := repo.Tags.CountPosts(ctx, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to count tag posts")
		return err
	}

	// Attached posts do not block tag deletion; the join rows cascade.
	if attached > 0 {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"name":       existing.Name,
			"posts":      attached,
		}).Warn("Deleting tag still attached to posts")
	}

	if err := repo.Tags.DeleteTag(ctx, id); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to delete tag")
		return err
	}

	return nil
}

func makeTagResponse(tagData entity.Tag, postCount *int, posts []entity.PostSummary) tag.TagResponse {
	return tag.TagResponse{
		ID:        tagData.ID,
		Name:      tagData.Name,
		Slug:      tagData.Slug,
		PostCount: postCount,
		Posts:     posts,
		CreatedAt: tagData.CreatedAt,
		UpdatedAt: tagData.UpdatedAt,
	}
}

func makeCountedListResponse(tags []entity.TagWithCount) *tag.TagListResponse {
	response := &tag.TagListResponse{
		Tags: make([]tag.TagResponse, 0, len(tags)),
	}
	for _, tagData := range tags {
		count := tagData.PostCount
		response.Tags = append(response.Tags, makeTagResponse(tagData.Tag, &count, nil))
	}
	return response
}
