package service

import (
	"context"
	"errors"
	"testing"

	"github.com/notely/notes-api/internal/dto"
	apperrors "github.com/notely/notes-api/internal/errors"
)

func TestTagCRUDScopedToOwner(t *testing.T) {
	svc := NewTagService(newFakeTagStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, &dto.TagRequest{Name: "work"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Get(ctx, created.ID, 1); err != nil {
		t.Errorf("Expected owner to read the tag, got %v", err)
	}

	_, err = svc.Get(ctx, created.ID, 2)
	if !errors.Is(err, apperrors.ErrTagNotFound) {
		t.Errorf("Expected ErrTagNotFound for foreign tag, got %v", err)
	}

	if err := svc.Delete(ctx, created.ID, 2); !errors.Is(err, apperrors.ErrTagNotFound) {
		t.Errorf("Expected ErrTagNotFound on foreign delete, got %v", err)
	}

	if err := svc.Delete(ctx, created.ID, 1); err != nil {
		t.Errorf("Expected owner delete to succeed, got %v", err)
	}
}

func TestTagDuplicateName(t *testing.T) {
	svc := NewTagService(newFakeTagStore())
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, &dto.TagRequest{Name: "work"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err := svc.Create(ctx, 1, &dto.TagRequest{Name: "work"})
	if !errors.Is(err, apperrors.ErrTagExists) {
		t.Errorf("Expected ErrTagExists for duplicate name, got %v", err)
	}

	// The same name under a different user is fine
	if _, err := svc.Create(ctx, 2, &dto.TagRequest{Name: "work"}); err != nil {
		t.Errorf("Expected same name for another user to succeed, got %v", err)
	}
}

func TestTagRename(t *testing.T) {
	svc := NewTagService(newFakeTagStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, &dto.TagRequest{Name: "work"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	renamed, err := svc.Update(ctx, created.ID, 1, &dto.TagRequest{Name: "office"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if renamed.Name != "office" {
		t.Errorf("Expected renamed tag office, got %s", renamed.Name)
	}

	_, err = svc.Update(ctx, created.ID, 2, &dto.TagRequest{Name: "stolen"})
	if !errors.Is(err, apperrors.ErrTagNotFound) {
		t.Errorf("Expected ErrTagNotFound on foreign rename, got %v", err)
	}
}
