package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/notely/notes-api/internal/dto"
	apperrors "github.com/notely/notes-api/internal/errors"
	"github.com/notely/notes-api/internal/model"
)

// fakeNoteStore keeps notes in memory with owner scoping.
type fakeNoteStore struct {
	notes  map[uint]*model.Note
	nextID uint
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{notes: make(map[uint]*model.Note), nextID: 1}
}

func (s *fakeNoteStore) GetAll(ctx context.Context, userID uint, skip, limit int) ([]model.Note, error) {
	var out []model.Note
	for _, note := range s.notes {
		if note.UserID == userID {
			out = append(out, *note)
		}
	}
	return out, nil
}

func (s *fakeNoteStore) GetByID(ctx context.Context, noteID, userID uint) (*model.Note, error) {
	note, ok := s.notes[noteID]
	if !ok || note.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *note
	return &copied, nil
}

func (s *fakeNoteStore) Create(ctx context.Context, note *model.Note) error {
	note.ID = s.nextID
	s.nextID++
	copied := *note
	s.notes[note.ID] = &copied
	return nil
}

func (s *fakeNoteStore) Update(ctx context.Context, note *model.Note, tags []model.Tag) error {
	stored, ok := s.notes[note.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *note
	copied.Tags = tags
	copied.UserID = stored.UserID
	s.notes[note.ID] = &copied
	return nil
}

func (s *fakeNoteStore) UpdateStatus(ctx context.Context, noteID, userID uint, done bool) error {
	note, ok := s.notes[noteID]
	if !ok || note.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	note.Done = done
	return nil
}

func (s *fakeNoteStore) Delete(ctx context.Context, note *model.Note) error {
	delete(s.notes, note.ID)
	return nil
}

// fakeTagStore keeps tags in memory with owner scoping.
type fakeTagStore struct {
	tags   map[uint]*model.Tag
	nextID uint
}

func newFakeTagStore() *fakeTagStore {
	return &fakeTagStore{tags: make(map[uint]*model.Tag), nextID: 1}
}

func (s *fakeTagStore) GetAll(ctx context.Context, userID uint, skip, limit int) ([]model.Tag, error) {
	var out []model.Tag
	for _, tag := range s.tags {
		if tag.UserID == userID {
			out = append(out, *tag)
		}
	}
	return out, nil
}

func (s *fakeTagStore) GetByID(ctx context.Context, tagID, userID uint) (*model.Tag, error) {
	tag, ok := s.tags[tagID]
	if !ok || tag.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *tag
	return &copied, nil
}

func (s *fakeTagStore) GetByIDs(ctx context.Context, tagIDs []uint, userID uint) ([]model.Tag, error) {
	var out []model.Tag
	for _, id := range tagIDs {
		if tag, ok := s.tags[id]; ok && tag.UserID == userID {
			out = append(out, *tag)
		}
	}
	return out, nil
}

func (s *fakeTagStore) Create(ctx context.Context, tag *model.Tag) error {
	for _, existing := range s.tags {
		if existing.UserID == tag.UserID && existing.Name == tag.Name {
			return errors.New(`duplicate key value violates unique constraint "idx_tags_user_name"`)
		}
	}
	tag.ID = s.nextID
	s.nextID++
	copied := *tag
	s.tags[tag.ID] = &copied
	return nil
}

func (s *fakeTagStore) Update(ctx context.Context, tagID, userID uint, name string) error {
	tag, ok := s.tags[tagID]
	if !ok || tag.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	tag.Name = name
	return nil
}

func (s *fakeTagStore) Delete(ctx context.Context, tag *model.Tag) error {
	delete(s.tags, tag.ID)
	return nil
}

func TestNoteCRUDScopedToOwner(t *testing.T) {
	noteStore := newFakeNoteStore()
	tagStore := newFakeTagStore()
	svc := NewNoteService(noteStore, tagStore)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, &dto.NoteRequest{Title: "groceries", Description: "milk, eggs"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// The owner can read it
	if _, err := svc.Get(ctx, created.ID, 1); err != nil {
		t.Errorf("Expected owner to read the note, got %v", err)
	}

	// Another user cannot
	_, err = svc.Get(ctx, created.ID, 2)
	if !errors.Is(err, apperrors.ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound for foreign note, got %v", err)
	}

	// Nor update, patch or delete it
	_, err = svc.Update(ctx, created.ID, 2, &dto.NoteUpdateRequest{Title: "x", Description: "y"})
	if !errors.Is(err, apperrors.ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound on foreign update, got %v", err)
	}
	_, err = svc.UpdateStatus(ctx, created.ID, 2, true)
	if !errors.Is(err, apperrors.ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound on foreign status patch, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID, 2); !errors.Is(err, apperrors.ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound on foreign delete, got %v", err)
	}

	// Listing only shows the owner's notes
	notes, err := svc.List(ctx, 2, 0, 100)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("Expected empty list for other user, got %d notes", len(notes))
	}
}

func TestNoteStatusPatch(t *testing.T) {
	svc := NewNoteService(newFakeNoteStore(), newFakeTagStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, &dto.NoteRequest{Title: "groceries", Description: "milk"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	patched, err := svc.UpdateStatus(ctx, created.ID, 1, true)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if !patched.Done {
		t.Error("Expected done flag to be set")
	}
}

func TestNoteTagResolution(t *testing.T) {
	noteStore := newFakeNoteStore()
	tagStore := newFakeTagStore()
	svc := NewNoteService(noteStore, tagStore)
	tagSvc := NewTagService(tagStore)
	ctx := context.Background()

	mine, err := tagSvc.Create(ctx, 1, &dto.TagRequest{Name: "work"})
	if err != nil {
		t.Fatalf("Tag create failed: %v", err)
	}
	theirs, err := tagSvc.Create(ctx, 2, &dto.TagRequest{Name: "home"})
	if err != nil {
		t.Fatalf("Tag create failed: %v", err)
	}

	created, err := svc.Create(ctx, 1, &dto.NoteRequest{Title: "report", Description: "q3", Tags: []uint{mine.ID}})
	if err != nil {
		t.Fatalf("Create with own tag failed: %v", err)
	}
	if len(created.Tags) != 1 || created.Tags[0].Name != "work" {
		t.Errorf("Expected note tagged work, got %+v", created.Tags)
	}

	// Another user's tag cannot be attached
	_, err = svc.Create(ctx, 1, &dto.NoteRequest{Title: "x", Description: "y", Tags: []uint{theirs.ID}})
	if !errors.Is(err, apperrors.ErrTagNotFound) {
		t.Errorf("Expected ErrTagNotFound for foreign tag, got %v", err)
	}

	// Nor an ID that does not exist
	_, err = svc.Create(ctx, 1, &dto.NoteRequest{Title: "x", Description: "y", Tags: []uint{999}})
	if !errors.Is(err, apperrors.ErrTagNotFound) {
		t.Errorf("Expected ErrTagNotFound for unknown tag, got %v", err)
	}
}
