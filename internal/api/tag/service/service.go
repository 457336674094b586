package tagService

import (
	"BlogGolang/internal/api/tag"
	tagRepository "BlogGolang/internal/api/tag/repository"
	"BlogGolang/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type ITagsService interface {
	CreateTag(ctx context.Context, req tag.CreateTagRequest) (tag.TagResponse, error)
	GetAllTags(ctx context.Context) (*tag.TagListResponse, error)
	GetAllWithCount(ctx context.Context) (*tag.TagListResponse, error)
	GetPopular(ctx context.Context, limit int) (*tag.TagListResponse, error)
	Search(ctx context.Context, query string, limit int) (*tag.TagListResponse, error)
	GetTagByID(ctx context.Context, id string) (tag.TagResponse, error)
	GetTagBySlug(ctx context.Context, slug string) (tag.TagResponse, error)
	UpdateTag(ctx context.Context, id string, req tag.UpdateTagRequest) (tag.TagResponse, error)
	DeleteTag(ctx context.Context, id string) error
}

type tagsService struct {
	log     *logrus.Logger
	tagRepo tagRepository.Repository
	utils   utils.IUtils
}

func NewTagsService(log *logrus.Logger, tagRepo tagRepository.Repository, utils utils.IUtils) ITagsService {
	return &tagsService{
		log:     log,
		tagRepo: tagRepo,
		utils:   utils,
	}
}
