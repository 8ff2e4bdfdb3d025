package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/notely/notes-api/internal/dto"
	apperrors "github.com/notely/notes-api/internal/errors"
	"github.com/notely/notes-api/internal/model"
	ctxutil "github.com/notely/notes-api/pkg/context"
	"github.com/notely/notes-api/pkg/logger"
)

// NoteStore is the persistence surface the note service needs.
// *repository.NoteRepository satisfies it.
type NoteStore interface {
	GetAll(ctx context.Context, userID uint, skip, limit int) ([]model.Note, error)
	GetByID(ctx context.Context, noteID, userID uint) (*model.Note, error)
	Create(ctx context.Context, note *model.Note) error
	Update(ctx context.Context, note *model.Note, tags []model.Tag) error
	UpdateStatus(ctx context.Context, noteID, userID uint, done bool) error
	Delete(ctx context.Context, note *model.Note) error
}

// NoteService owns note CRUD. Every query is scoped to the owning
// user; a note belonging to someone else is indistinguishable from a
// missing one.
type NoteService struct {
	notes NoteStore
	tags  TagStore
}

func NewNoteService(notes NoteStore, tags TagStore) *NoteService {
	return &NoteService{notes: notes, tags: tags}
}

func (s *NoteService) List(ctx context.Context, userID uint, skip, limit int) ([]dto.NoteResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "note_service", "List")

	notes, err := s.notes.GetAll(ctx, userID, skip, limit)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	out := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, newNoteResponse(&notes[i]))
	}
	return out, nil
}

func (s *NoteService) Get(ctx context.Context, noteID, userID uint) (*dto.NoteResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "note_service", "Get")

	note, err := s.notes.GetByID(ctx, noteID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := newNoteResponse(note)
	return &resp, nil
}

func (s *NoteService) Create(ctx context.Context, userID uint, req *dto.NoteRequest) (*dto.NoteResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "note_service", "Create")

	tags, err := s.resolveTags(ctx, req.Tags, userID)
	if err != nil {
		return nil, err
	}

	note := &model.Note{
		Title:       req.Title,
		Description: req.Description,
		UserID:      userID,
		Tags:        tags,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Note created").
		Uint("note_id", note.ID).
		Uint("user_id", userID).
		Log()

	resp := newNoteResponse(note)
	return &resp, nil
}

func (s *NoteService) Update(ctx context.Context, noteID, userID uint, req *dto.NoteUpdateRequest) (*dto.NoteResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "note_service", "Update")

	note, err := s.notes.GetByID(ctx, noteID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	tags, err := s.resolveTags(ctx, req.Tags, userID)
	if err != nil {
		return nil, err
	}

	note.Title = req.Title
	note.Description = req.Description
	note.Done = req.Done
	if err := s.notes.Update(ctx, note, tags); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	note.Tags = tags

	resp := newNoteResponse(note)
	return &resp, nil
}

func (s *NoteService) UpdateStatus(ctx context.Context, noteID, userID uint, done bool) (*dto.NoteResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "note_service", "UpdateStatus")

	if err := s.notes.UpdateStatus(ctx, noteID, userID, done); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return s.Get(ctx, noteID, userID)
}

func (s *NoteService) Delete(ctx context.Context, noteID, userID uint) error {
	ctx = ctxutil.WithOperation(ctx, "note_service", "Delete")

	note, err := s.notes.GetByID(ctx, noteID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNoteNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.notes.Delete(ctx, note); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Note deleted").
		Uint("note_id", noteID).
		Uint("user_id", userID).
		Log()

	return nil
}

// resolveTags loads the referenced tags and rejects IDs that do not
// exist or belong to another user.
func (s *NoteService) resolveTags(ctx context.Context, tagIDs []uint, userID uint) ([]model.Tag, error) {
	if len(tagIDs) == 0 {
		return []model.Tag{}, nil
	}

	tags, err := s.tags.GetByIDs(ctx, tagIDs, userID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if len(tags) != len(uniqueIDs(tagIDs)) {
		return nil, apperrors.ErrTagNotFound
	}
	return tags, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func newNoteResponse(note *model.Note) dto.NoteResponse {
	tags := make([]dto.TagResponse, 0, len(note.Tags))
	for _, tag := range note.Tags {
		tags = append(tags, dto.TagResponse{ID: tag.ID, Name: tag.Name})
	}
	return dto.NoteResponse{
		ID:          note.ID,
		Title:       note.Title,
		Description: note.Description,
		Done:        note.Done,
		Tags:        tags,
		CreatedAt:   note.CreatedAt,
		UpdatedAt:   note.UpdatedAt,
	}
}
