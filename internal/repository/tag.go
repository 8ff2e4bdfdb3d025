package repository

import (
	"context"

	"github.com/notely/notes-api/internal/model"
	ctxutil "github.com/notely/notes-api/pkg/context"
	"github.com/notely/notes-api/pkg/logger"
	"gorm.io/gorm"
)

// TagRepository stores tags scoped to their owner.
type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// GetAll returns the user's tags with offset pagination
func (r *TagRepository) GetAll(ctx context.Context, userID uint, skip, limit int) ([]model.Tag, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetAll")

	var tags []model.Tag
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Offset(skip).
		Limit(limit).
		Find(&tags)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch tags").
			Uint("user_id", userID).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return tags, nil
}

// GetByID returns the tag only when it belongs to the user
func (r *TagRepository) GetByID(ctx context.Context, tagID, userID uint) (*model.Tag, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByID")

	var tag model.Tag
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", tagID, userID).
		First(&tag)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get tag").
				Uint("tag_id", tagID).
				Uint("user_id", userID).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	return &tag, nil
}

// GetByIDs resolves a set of tag ids owned by the user
func (r *TagRepository) GetByIDs(ctx context.Context, tagIDs []uint, userID uint) ([]model.Tag, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByIDs")

	if len(tagIDs) == 0 {
		return nil, nil
	}

	var tags []model.Tag
	result := r.db.WithContext(ctx).
		Where("id IN ? AND user_id = ?", tagIDs, userID).
		Find(&tags)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to resolve tags").
			Uint("user_id", userID).
			Int("requested", len(tagIDs)).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return tags, nil
}

// Create inserts a new tag
func (r *TagRepository) Create(ctx context.Context, tag *model.Tag) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Create")

	result := r.db.WithContext(ctx).Create(tag)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create tag").
			Uint("user_id", tag.UserID).
			String("name", tag.Name).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Tag created").
		Uint("tag_id", tag.ID).
		Uint("user_id", tag.UserID).
		Log()

	return nil
}

// Update renames the tag
func (r *TagRepository) Update(ctx context.Context, tagID, userID uint, name string) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Update")

	result := r.db.WithContext(ctx).Model(&model.Tag{}).
		Where("id = ? AND user_id = ?", tagID, userID).
		Update("name", name)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update tag").
			Uint("tag_id", tagID).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Delete removes the tag
func (r *TagRepository) Delete(ctx context.Context, tag *model.Tag) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Delete")

	result := r.db.WithContext(ctx).Delete(tag)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete tag").
			Uint("tag_id", tag.ID).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}
