package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/notely/notes-api/internal/constants"
	apperrors "github.com/notely/notes-api/internal/errors"
	"github.com/notely/notes-api/internal/model"
	"github.com/notely/notes-api/pkg/logger"
	"gorm.io/gorm"
)

// snapshotVersion is bumped whenever the serialized field set changes;
// entries with an older version are discarded as misses.
const snapshotVersion = 1

// UserSnapshot is the point-in-time copy of a user record stored in
// the session cache. The field set is explicit and versioned so the
// cache format stays stable across deploys. The password hash and the
// refresh token slot are deliberately excluded: revocation state is
// only ever read from the directory.
type UserSnapshot struct {
	Version   int       `json:"v"`
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Confirmed bool      `json:"confirmed"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SnapshotFromUser copies the cacheable fields of a user record.
func SnapshotFromUser(user *model.User) *UserSnapshot {
	return &UserSnapshot{
		Version:   snapshotVersion,
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Confirmed: user.Confirmed,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	}
}

// ToUser rebuilds a transient user record from the snapshot.
func (s *UserSnapshot) ToUser() *model.User {
	return &model.User{
		Model: gorm.Model{
			ID:        s.ID,
			CreatedAt: s.CreatedAt,
		},
		Username:  s.Username,
		Email:     s.Email,
		Confirmed: s.Confirmed,
		Avatar:    s.Avatar,
	}
}

// KVStore is the shared key-value store behind the session cache. It
// must be visible to every service instance; pkg/redis.Client is the
// production implementation.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// SessionCache maps user email to a serialized snapshot with a short
// TTL. Entries are advisory; the user directory stays the source of
// truth and a stale read within the TTL window is accepted.
type SessionCache struct {
	store KVStore
	ttl   time.Duration
}

func NewSessionCache(store KVStore, ttl time.Duration) *SessionCache {
	return &SessionCache{
		store: store,
		ttl:   ttl,
	}
}

// TTL returns the configured entry lifetime.
func (c *SessionCache) TTL() time.Duration {
	return c.ttl
}

func (c *SessionCache) key(email string) string {
	return constants.CacheKeyUser + email
}

// Get returns the cached snapshot for email, or nil on a miss. Store
// failures and undecodable entries degrade to a miss so the caller
// falls back to the directory.
func (c *SessionCache) Get(ctx context.Context, email string) *UserSnapshot {
	value, found, err := c.store.Get(ctx, c.key(email))
	if err != nil {
		logger.WarnWithContext(ctx, "Session cache read failed, treating as miss").
			String("email", email).
			Err(err).
			Log()
		return nil
	}
	if !found {
		return nil
	}

	var snapshot UserSnapshot
	if err := json.Unmarshal([]byte(value), &snapshot); err != nil || snapshot.Version != snapshotVersion {
		logger.WarnWithContext(ctx, "Discarding unreadable session cache entry").
			String("email", email).
			Err(err).
			Log()
		_ = c.store.Del(ctx, c.key(email))
		return nil
	}

	return &snapshot
}

// Put stores the snapshot under the user's email with the cache TTL.
func (c *SessionCache) Put(ctx context.Context, email string, snapshot *UserSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := c.store.Set(ctx, c.key(email), string(data), c.ttl); err != nil {
		return apperrors.WrapError(apperrors.ErrServiceUnavailable, err)
	}

	return nil
}

// Invalidate removes the entry for email so the next identity
// resolution hits the directory.
func (c *SessionCache) Invalidate(ctx context.Context, email string) error {
	if err := c.store.Del(ctx, c.key(email)); err != nil {
		return apperrors.WrapError(apperrors.ErrServiceUnavailable, err)
	}
	return nil
}
