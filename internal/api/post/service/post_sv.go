package postService

import (
	"BlogGolang/internal/api/post"
	postRepository "BlogGolang/internal/api/post/repository"
	"BlogGolang/internal/entity"
	contextPkg "BlogGolang/pkg/context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *postsService) CreatePost(ctx context.Context, req post.CreatePostRequest) (post.PostResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.postRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return post.PostResponse{}, err
	}
	defer func() { _ = repo.Rollback() }()

	exists, err := repo.Posts.CategoryExists(ctx, req.CategoryID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to check category")
		return post.PostResponse{}, err
	}
	if !exists {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"category_id": req.CategoryID,
		}).Warn("Post creation with unknown category")
		return post.PostResponse{}, post.ErrCategoryNotFound
	}

	postID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return post.PostResponse{}, err
	}

	now := time.Now()
	var publishedAt *time.Time
	if req.Published {
		publishedAt = &now
	}

	postData := entity.Post{
		ID:             postID,
		Title:          req.Title,
		Slug:           req.Slug,
		Excerpt:        req.Excerpt,
		Content:        req.Content,
		Published:      req.Published,
		Featured:       req.Featured,
		Image:          req.Image,
		ReadTime:       req.ReadTime,
		SeoTitle:       req.SeoTitle,
		SeoDescription: req.SeoDescription,
		PublishedAt:    publishedAt,
		AuthorID:       req.AuthorID,
		CategoryID:     req.CategoryID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := repo.Posts.CreatePost(ctx, postData); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"slug":       req.Slug,
			"error":      err.Error(),
		}).Warn("Failed to create post")
		return post.PostResponse{}, err
	}

	if err := s.attachTags(ctx, repo, postID, req.Tags); err != nil {
		return post.PostResponse{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit post creation")
		return post.PostResponse{}, err
	}

	return s.readBack(ctx, postID)
}

// attachTags finds or creates each named tag and links it to the post,
// all on the caller's transaction.
func (s *postsService) attachTags(ctx context.Context, repo postRepository.Client, postID string, names []string) error {
	requestID := contextPkg.GetRequestID(ctx)

	for _, rawName := range names {
		name := strings.TrimSpace(rawName)
		if name == "" {
			continue
		}

		tagData, found, err := repo.PostTags.GetTagByName(ctx, name)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"tag":        name,
				"error":      err.Error(),
			}).Error("Failed to look up tag")
			return err
		}

		if !found {
			tagID, err := s.utils.NewULIDFromTimestamp(time.Now())
			if err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Error("Failed to generate ULID")
				return err
			}

			now := time.Now()
			tagData = entity.Tag{
				ID:        tagID,
				Name:      name,
				Slug:      s.utils.Slugify(name),
				CreatedAt: now,
				UpdatedAt: now,
			}

			if err := repo.PostTags.CreateTag(ctx, tagData); err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"tag":        name,
					"error":      err.Error(),
				}).Error("Failed to create tag")
				return err
			}
		}

		if err := repo.PostTags.AttachTag(ctx, postID, tagData.ID); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"tag":        name,
				"error":      err.Error(),
			}).Error("Failed to attach tag")
			return err
		}
	}

	return nil
}

// readBack loads the committed post with its expanded relations on a
// fresh non-transactional client.
func (s *postsService) readBack(ctx context.Context, postID string) (post.PostResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.postRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return post.PostResponse{}, err
	}

	postData, err := repo.Posts.GetPostByID(ctx, postID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         postID,
			"error":      err.Error(),
		}).Error("Failed to read post back")
		return post.PostResponse{}, err
	}

	tagsByPost, err := repo.PostTags.GetTagsByPostIDs(ctx, []string{postID})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         postID,
			"error":      err.Error(),
		}).Error("Failed to load post tags")
		return post.PostResponse{}, err
	}

	postData.Tags = tagsByPost[postID]
	return makePostResponse(postData), nil
}

func (s *postsService) GetPosts(ctx context.Context, page, limit int) (*post.PostListResponse, error) {
	page, limit = normalizePagination(page, limit)

	return s.listPosts(ctx, page, limit,
		func(repo postRepository.Client, offset int) ([]entity.Post, error) {
			return repo.Posts.GetPosts(ctx, limit, offset)
		},
		func(repo postRepository.Client) (int, error) {
			return repo.Posts.CountPosts(ctx)
		},
		"get_posts")
}

func (s *postsService) GetPublishedPosts(ctx context.Context, page, limit int) (*post.PostListResponse, error) {
	page, limit = normalizePagination(page, limit)

	return s.listPosts(ctx, page, limit,
		func(repo postRepository.Client, offset int) ([]entity.Post, error) {
			return repo.Posts.GetPublishedPosts(ctx, limit, offset)
		},
		func(repo postRepository.Client) (int, error) {
			return repo.Posts.CountPublishedPosts(ctx)
		},
		"get_published_posts")
}

func (s *postsService) GetPostsByCategory(ctx context.Context, categoryID string, page, limit int) (*post.PostListResponse, error) {
	page, limit = normalizePagination(page, limit)

	return s.listPosts(ctx, page, limit,
		func(repo postRepository.Client, offset int) ([]entity.Post, error) {
			return repo.Posts.GetPostsByCategory(ctx, categoryID, limit, offset)
		},
		func(repo postRepository.Client) (int, error) {
			return repo.Posts.CountPostsByCategory(ctx, categoryID)
		},
		"get_posts_by_category")
}

func (s *postsService) GetPostsByTag(ctx context.Context, tagID string, page, limit int) (*post.PostListResponse, error) {
	page, limit = normalizePagination(page, limit)

	return s.listPosts(ctx, page, limit,
		func(repo postRepository.Client, offset int) ([]entity.Post, error) {
			return repo.Posts.GetPostsByTag(ctx, tagID, limit, offset)
		},
		func(repo postRepository.Client) (int, error) {
			return repo.Posts.CountPostsByTag(ctx, tagID)
		},
		"get_posts_by_tag")
}

func (s *postsService) listPosts(
	ctx context.Context,
	page, limit int,
	fetch func(repo postRepository.Client, offset int) ([]entity.Post, error),
	count func(repo postRepository.Client) (int, error),
	operation string,
) (*post.PostListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.postRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	offset := (page - 1) * limit

	posts, err := fetch(repo, offset)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"operation":  operation,
			"error":      err.Error(),
		}).Error("Failed to fetch posts")
		return nil, err
	}

	total, err := count(repo)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"operation":  operation,
			"error":      err.Error(),
		}).Error("Failed to count posts")
		return nil, err
	}

	ids := make([]string, 0, len(posts))
	for _, postData := range posts {
		ids = append(ids, postData.ID)
	}

	tagsByPost, err := repo.PostTags.GetTagsByPostIDs(ctx, ids)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"operation":  operation,
			"error":      err.Error(),
		}).Error("Failed to load post tags")
		return nil, err
	}

	response := &post.PostListResponse{
		Posts: make([]post.PostResponse, 0, len(posts)),
		Pagination: post.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	}
	for _, postData := range posts {
		postData.Tags = tagsByPost[postData.ID]
		response.Posts = append(response.Posts, makePostResponse(postData))
	}

	return response, nil
}

func (s *postsService) GetPostByID(ctx context.Context, id string) (post.PostResponse, error) {
	return s.getPost(ctx, id, func(repo postRepository.Client) (entity.Post, error) {
		return repo.Posts.GetPostByID(ctx, id)
	})
}

func (s *postsService) GetPostBySlug(ctx context.Context, slug string) (post.PostResponse, error) {
	return s.getPost(ctx, slug, func(repo postRepository.Client) (entity.Post, error) {
		return repo.Posts.GetPostBySlug(ctx, slug)
	})
}

func (s *postsService) getPost(ctx context.Context, key string, fetch func(repo postRepository.Client) (entity.Post, error)) (post.PostResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.postRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return post.PostResponse{}, err
	}

	postData, err := fetch(repo)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"key":        key,
			}).Warn("Post not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"key":        key,
				"error":      err.Error(),
			}).Error("Failed to get post")
		}
		return post.PostResponse{}, err
	}

	// Each successful read counts as a view.
	if err := repo.Posts.IncrementViews(ctx, postData.ID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         postData.ID,
			"error":      err.Error(),
		}).Error("Failed to increment views")
		return post.PostResponse{}, err
	}
	postData.Views++

	tagsByPost, err := repo.PostTags.GetTagsByPostIDs(ctx, []string{postData.ID})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         postData.ID,
			"error":      err.Error(),
		}).Error("Failed to load post tags")
		return post.PostResponse{}, err
	}

	postData.Tags = tagsByPost[postData.ID]
	return makePostResponse(postData), nil
}

func (s *postsService) UpdatePost(ctx context.Context, id string, req post.UpdatePostRequest) (post.PostResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.postRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return post.PostResponse{}, err
	}
	defer func() { _ = repo.Rollback() }()

	existing, err := repo.Posts.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("Post not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to get post")
		}
		return post.PostResponse{}, err
	}

	if req.Title != "" {
		existing.Title = req.Title
	}
	if req.Slug != "" {
		existing.Slug = req.Slug
	}
	if req.Excerpt != "" {
		existing.Excerpt = req.Excerpt
	}
	if req.Content != "" {
		existing.Content = req.Content
	}
	if req.Image != "" {
		existing.Image = req.Image
	}
	if req.SeoTitle != "" {
		existing.SeoTitle = req.SeoTitle
	}
	if req.SeoDescription != "" {
		existing.SeoDescription = req.SeoDescription
	}
	if req.Featured != nil {
		existing.Featured = *req.Featured
	}
	if req.ReadTime != nil {
		existing.ReadTime = *req.ReadTime
	}

	if req.CategoryID != "" {
		exists, err := repo.Posts.CategoryExists(ctx, req.CategoryID)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to check category")
			return post.PostResponse{}, err
		}
		if !exists {
			s.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"category_id": req.CategoryID,
			}).Warn("Post update with unknown category")
			return post.PostResponse{}, post.ErrCategoryNotFound
		}
		existing.CategoryID = req.CategoryID
	}

	if req.Published != nil {
		existing.Published = *req.Published
		if *req.Published {
			if existing.PublishedAt == nil {
				now := time.Now()
				existing.PublishedAt = &now
			}
		} else {
			existing.PublishedAt = nil
		}
	}
	existing.UpdatedAt = time.Now()

	if err := repo.Posts.UpdatePost(ctx, existing); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Warn("Failed to update post")
		return post.PostResponse{}, err
	}

	// A present tags key replaces the full set.
	if req.Tags != nil {
		if err := repo.PostTags.DetachAllTags(ctx, id); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to detach tags")
			return post.PostResponse{}, err
		}

		if err := s.attachTags(ctx, repo, id, *req.Tags); err != nil {
			return post.PostResponse{}, err
		}
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit post update")
		return post.PostResponse{}, err
	}

	return s.readBack(ctx, id)
}

func (s *postsService) DeletePost(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.postRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	if err := repo.Posts.DeletePost(ctx, id); err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("Post not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to delete post")
		}
		return err
	}

	return nil
}

func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func makePostResponse(postData entity.Post) post.PostResponse {
	tags := postData.Tags
	if tags == nil {
		tags = []entity.TagSummary{}
	}

	return post.PostResponse{
		ID:             postData.ID,
		Title:          postData.Title,
		Slug:           postData.Slug,
		Excerpt:        postData.Excerpt,
		Content:        postData.Content,
		Published:      postData.Published,
		Featured:       postData.Featured,
		Image:          postData.Image,
		ReadTime:       postData.ReadTime,
		SeoTitle:       postData.SeoTitle,
		SeoDescription: postData.SeoDescription,
		Views:          postData.Views,
		Likes:          postData.Likes,
		PublishedAt:    postData.PublishedAt,
		Author:         postData.Author,
		Category:       postData.Category,
		Tags:           tags,
		CreatedAt:      postData.CreatedAt,
		UpdatedAt:      postData.UpdatedAt,
	}
}
