package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/notely/notes-api/internal/model"
)

type fakeProfileDirectory struct {
	users map[string]*model.User
}

func (d *fakeProfileDirectory) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := d.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (d *fakeProfileDirectory) UpdateAvatar(ctx context.Context, email, url string) (*model.User, error) {
	user, ok := d.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	user.Avatar = url
	copied := *user
	return &copied, nil
}

type fakeAvatarStore struct {
	lastKey string
}

func (s *fakeAvatarStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	s.lastKey = key
	_, _ = io.Copy(io.Discard, body)
	return "https://cdn.example.com/" + key, nil
}

func TestUpdateAvatarRefreshesCachedSession(t *testing.T) {
	directory := &fakeProfileDirectory{users: map[string]*model.User{
		"alice@example.com": testUser("alice@example.com"),
	}}
	store := &fakeAvatarStore{}
	cache := NewSessionCache(newFakeKVStore(), 5*time.Minute)
	svc := NewUserService(directory, cache, store)
	ctx := context.Background()

	resp, err := svc.UpdateAvatar(ctx, "alice@example.com", "me.PNG", "image/png", strings.NewReader("imagebytes"))
	if err != nil {
		t.Fatalf("UpdateAvatar failed: %v", err)
	}

	if resp.Avatar != "https://cdn.example.com/"+store.lastKey {
		t.Errorf("Expected avatar URL from storage, got %s", resp.Avatar)
	}

	// The cached snapshot was rewritten with the new avatar
	snap := cache.Get(ctx, "alice@example.com")
	if snap == nil {
		t.Fatal("Expected session cache to hold a fresh snapshot")
	}
	if snap.Avatar != resp.Avatar {
		t.Errorf("Expected cached avatar %s, got %s", resp.Avatar, snap.Avatar)
	}
}

func TestAvatarKeyStablePerUser(t *testing.T) {
	first := avatarKey("alice@example.com", "one.png")
	second := avatarKey("alice@example.com", "two.png")

	if first != second {
		t.Errorf("Expected stable key per user, got %s and %s", first, second)
	}

	if noExt := avatarKey("alice@example.com", "photo"); !strings.HasSuffix(noExt, ".png") {
		t.Errorf("Expected default extension, got %s", noExt)
	}
}
