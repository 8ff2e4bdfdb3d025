package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/notely/notes-api/internal/model"
)

// fakeKVStore is an in-memory KVStore for tests. TTLs are recorded but
// not enforced.
type fakeKVStore struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failGet bool
	failSet bool
	failDel bool
}

func newFakeKVStore() *fakeKVStore {
	return &fakeKVStore{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (f *fakeKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failGet {
		return "", false, errors.New("store down")
	}
	value, ok := f.data[key]
	return value, ok, nil
}

func (f *fakeKVStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if f.failSet {
		return errors.New("store down")
	}
	f.data[key] = value
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKVStore) Del(ctx context.Context, key string) error {
	if f.failDel {
		return errors.New("store down")
	}
	delete(f.data, key)
	delete(f.ttls, key)
	return nil
}

func testUser(email string) *model.User {
	return &model.User{
		Model:     gorm.Model{ID: 7, CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		Username:  "alice",
		Email:     email,
		Password:  "$2a$10$hash",
		Confirmed: true,
		Avatar:    "https://cdn.example.com/a.png",
	}
}

func TestSessionCachePutGet(t *testing.T) {
	store := newFakeKVStore()
	cache := NewSessionCache(store, 5*time.Minute)
	ctx := context.Background()

	user := testUser("alice@example.com")
	if err := cache.Put(ctx, user.Email, SnapshotFromUser(user)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	snap := cache.Get(ctx, user.Email)
	if snap == nil {
		t.Fatal("Expected a cache hit, got miss")
	}

	if snap.ID != user.ID {
		t.Errorf("Expected ID %d, got %d", user.ID, snap.ID)
	}
	if snap.Email != user.Email {
		t.Errorf("Expected email %s, got %s", user.Email, snap.Email)
	}
	if !snap.Confirmed {
		t.Error("Expected confirmed snapshot")
	}

	rebuilt := snap.ToUser()
	if rebuilt.Password != "" {
		t.Error("Snapshot must not carry the password hash")
	}
	if rebuilt.RefreshToken != "" {
		t.Error("Snapshot must not carry the refresh token")
	}
}

func TestSessionCacheMiss(t *testing.T) {
	cache := NewSessionCache(newFakeKVStore(), 5*time.Minute)

	if snap := cache.Get(context.Background(), "nobody@example.com"); snap != nil {
		t.Errorf("Expected miss, got %+v", snap)
	}
}

func TestSessionCacheStoreFailureDegradesToMiss(t *testing.T) {
	store := newFakeKVStore()
	cache := NewSessionCache(store, 5*time.Minute)
	ctx := context.Background()

	user := testUser("alice@example.com")
	if err := cache.Put(ctx, user.Email, SnapshotFromUser(user)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	store.failGet = true
	if snap := cache.Get(ctx, user.Email); snap != nil {
		t.Error("Expected store failure to read as a miss")
	}
}

func TestSessionCacheDiscardsUnreadableEntries(t *testing.T) {
	store := newFakeKVStore()
	cache := NewSessionCache(store, 5*time.Minute)
	ctx := context.Background()

	tests := []struct {
		name  string
		value string
	}{
		{name: "Not JSON", value: "\x80pickle"},
		{name: "Wrong version", value: `{"v":99,"id":7,"email":"alice@example.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := cache.key("alice@example.com")
			store.data[key] = tt.value

			if snap := cache.Get(ctx, "alice@example.com"); snap != nil {
				t.Errorf("Expected unreadable entry to read as miss, got %+v", snap)
			}
			if _, ok := store.data[key]; ok {
				t.Error("Expected unreadable entry to be deleted")
			}
		})
	}
}

func TestSessionCacheInvalidate(t *testing.T) {
	store := newFakeKVStore()
	cache := NewSessionCache(store, 5*time.Minute)
	ctx := context.Background()

	user := testUser("alice@example.com")
	if err := cache.Put(ctx, user.Email, SnapshotFromUser(user)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if err := cache.Invalidate(ctx, user.Email); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	if snap := cache.Get(ctx, user.Email); snap != nil {
		t.Error("Expected miss after invalidation")
	}
}

func TestSessionCachePutUsesConfiguredTTL(t *testing.T) {
	store := newFakeKVStore()
	cache := NewSessionCache(store, 5*time.Minute)
	ctx := context.Background()

	user := testUser("alice@example.com")
	if err := cache.Put(ctx, user.Email, SnapshotFromUser(user)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if got := store.ttls[cache.key(user.Email)]; got != 5*time.Minute {
		t.Errorf("Expected TTL 5m, got %v", got)
	}
}
