package repository

import (
	"context"
	"time"

	"github.com/notely/notes-api/internal/model"
	ctxutil "github.com/notely/notes-api/pkg/context"
	"github.com/notely/notes-api/pkg/logger"
	"gorm.io/gorm"
)

// NoteRepository stores notes scoped to their owner. Every query is
// filtered by user id so one user can never see another's notes.
type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// GetAll returns the user's notes with offset pagination
func (r *NoteRepository) GetAll(ctx context.Context, userID uint, skip, limit int) ([]model.Note, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetAll")

	start := time.Now()
	var notes []model.Note

	result := r.db.WithContext(ctx).
		Preload("Tags").
		Where("user_id = ?", userID).
		Offset(skip).
		Limit(limit).
		Find(&notes)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch notes").
			Uint("user_id", userID).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "Notes retrieved").
		Uint("user_id", userID).
		Int("count", len(notes)).
		Duration(time.Since(start)).
		Log()

	return notes, nil
}

// GetByID returns the note only when it belongs to the user
func (r *NoteRepository) GetByID(ctx context.Context, noteID, userID uint) (*model.Note, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByID")

	var note model.Note
	result := r.db.WithContext(ctx).
		Preload("Tags").
		Where("id = ? AND user_id = ?", noteID, userID).
		First(&note)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get note").
				Uint("note_id", noteID).
				Uint("user_id", userID).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	return &note, nil
}

// Create inserts a note with its tag associations
func (r *NoteRepository) Create(ctx context.Context, note *model.Note) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Create")

	result := r.db.WithContext(ctx).Create(note)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create note").
			Uint("user_id", note.UserID).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Note created").
		Uint("note_id", note.ID).
		Uint("user_id", note.UserID).
		Log()

	return nil
}

// Update saves title, description and done flag, and replaces the tag
// association set.
func (r *NoteRepository) Update(ctx context.Context, note *model.Note, tags []model.Tag) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Update")

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(note).Updates(map[string]interface{}{
			"title":       note.Title,
			"description": note.Description,
			"done":        note.Done,
		}).Error; err != nil {
			return err
		}
		return tx.Model(note).Association("Tags").Replace(tags)
	})
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to update note").
			Uint("note_id", note.ID).
			Err(err).
			Log()
		return err
	}

	return nil
}

// UpdateStatus flips the done flag only
func (r *NoteRepository) UpdateStatus(ctx context.Context, noteID, userID uint, done bool) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "UpdateStatus")

	result := r.db.WithContext(ctx).Model(&model.Note{}).
		Where("id = ? AND user_id = ?", noteID, userID).
		Update("done", done)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update note status").
			Uint("note_id", noteID).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Delete removes the note and its tag associations
func (r *NoteRepository) Delete(ctx context.Context, note *model.Note) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Delete")

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(note).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(note).Error
	})
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to delete note").
			Uint("note_id", note.ID).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Note deleted").
		Uint("note_id", note.ID).
		Uint("user_id", note.UserID).
		Log()

	return nil
}
