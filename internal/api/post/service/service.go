package postService

import (
	"BlogGolang/internal/api/post"
	postRepository "BlogGolang/internal/api/post/repository"
	"BlogGolang/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IPostsService interface {
	CreatePost(ctx context.Context, req post.CreatePostRequest) (post.PostResponse, error)
	GetPosts(ctx context.Context, page, limit int) (*post.PostListResponse, error)
	GetPublishedPosts(ctx context.Context, page, limit int) (*post.PostListResponse, error)
	GetPostsByCategory(ctx context.Context, categoryID string, page, limit int) (*post.PostListResponse, error)
	GetPostsByTag(ctx context.Context, tagID string, page, limit int) (*post.PostListResponse, error)
	GetPostByID(ctx context.Context, id string) (post.PostResponse, error)
	GetPostBySlug(ctx context.Context, slug string) (post.PostResponse, error)
	UpdatePost(ctx context.Context, id string, req post.UpdatePostRequest) (post.PostResponse, error)
	DeletePost(ctx context.Context, id string) error
}

type postsService struct {
	log      *logrus.Logger
	postRepo postRepository.Repository
	utils    utils.IUtils
}

func NewPostsService(
	log *logrus.Logger,
	postRepo postRepository.Repository,
	utils utils.IUtils,
) IPostsService {
	return &postsService{
		log:      log,
		postRepo: postRepo,
		utils:    utils,
	}
}
