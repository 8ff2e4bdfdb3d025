package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/notely/notes-api/internal/dto"
	apperrors "github.com/notely/notes-api/internal/errors"
	"github.com/notely/notes-api/internal/model"
	ctxutil "github.com/notely/notes-api/pkg/context"
	"github.com/notely/notes-api/pkg/logger"
)

// TagStore is the persistence surface the tag service needs.
// *repository.TagRepository satisfies it.
type TagStore interface {
	GetAll(ctx context.Context, userID uint, skip, limit int) ([]model.Tag, error)
	GetByID(ctx context.Context, tagID, userID uint) (*model.Tag, error)
	GetByIDs(ctx context.Context, tagIDs []uint, userID uint) ([]model.Tag, error)
	Create(ctx context.Context, tag *model.Tag) error
	Update(ctx context.Context, tagID, userID uint, name string) error
	Delete(ctx context.Context, tag *model.Tag) error
}

// TagService owns the per-user tag vocabulary.
type TagService struct {
	tags TagStore
}

func NewTagService(tags TagStore) *TagService {
	return &TagService{tags: tags}
}

func (s *TagService) List(ctx context.Context, userID uint, skip, limit int) ([]dto.TagResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "tag_service", "List")

	tags, err := s.tags.GetAll(ctx, userID, skip, limit)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	out := make([]dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, dto.TagResponse{ID: tag.ID, Name: tag.Name})
	}
	return out, nil
}

func (s *TagService) Get(ctx context.Context, tagID, userID uint) (*dto.TagResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "tag_service", "Get")

	tag, err := s.tags.GetByID(ctx, tagID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &dto.TagResponse{ID: tag.ID, Name: tag.Name}, nil
}

func (s *TagService) Create(ctx context.Context, userID uint, req *dto.TagRequest) (*dto.TagResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "tag_service", "Create")

	tag := &model.Tag{
		Name:   strings.TrimSpace(req.Name),
		UserID: userID,
	}
	if err := s.tags.Create(ctx, tag); err != nil {
		if isDuplicateKey(err) {
			return nil, apperrors.WrapError(apperrors.ErrTagExists, err)
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Tag created").
		Uint("tag_id", tag.ID).
		Uint("user_id", userID).
		Log()

	return &dto.TagResponse{ID: tag.ID, Name: tag.Name}, nil
}

func (s *TagService) Update(ctx context.Context, tagID, userID uint, req *dto.TagRequest) (*dto.TagResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "tag_service", "Update")

	if err := s.tags.Update(ctx, tagID, userID, strings.TrimSpace(req.Name)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTagNotFound
		}
		if isDuplicateKey(err) {
			return nil, apperrors.WrapError(apperrors.ErrTagExists, err)
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return s.Get(ctx, tagID, userID)
}

func (s *TagService) Delete(ctx context.Context, tagID, userID uint) error {
	ctx = ctxutil.WithOperation(ctx, "tag_service", "Delete")

	tag, err := s.tags.GetByID(ctx, tagID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTagNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.tags.Delete(ctx, tag); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Tag deleted").
		Uint("tag_id", tagID).
		Uint("user_id", userID).
		Log()

	return nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}
