package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"gorm.io/gorm"

	"github.com/notely/notes-api/internal/dto"
	apperrors "github.com/notely/notes-api/internal/errors"
	"github.com/notely/notes-api/internal/model"
	ctxutil "github.com/notely/notes-api/pkg/context"
	"github.com/notely/notes-api/pkg/logger"
)

// AvatarStore uploads an object and returns its public URL.
// *storage.S3Store satisfies it.
type AvatarStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// UserProfileDirectory is the slice of the user repository the profile
// surface needs.
type UserProfileDirectory interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateAvatar(ctx context.Context, email, url string) (*model.User, error)
}

// UserService serves the profile endpoints: the current user and
// avatar upload.
type UserService struct {
	directory UserProfileDirectory
	cache     *SessionCache
	store     AvatarStore
}

func NewUserService(directory UserProfileDirectory, cache *SessionCache, store AvatarStore) *UserService {
	return &UserService{directory: directory, cache: cache, store: store}
}

func (s *UserService) Me(ctx context.Context, email string) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "user_service", "Me")

	user, err := s.directory.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateAvatar uploads the image, stores its URL on the user row and
// rewrites the cached session so the new avatar is visible on the next
// authenticated request.
func (s *UserService) UpdateAvatar(ctx context.Context, email, filename, contentType string, body io.Reader) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "user_service", "UpdateAvatar")

	key := avatarKey(email, filename)
	url, err := s.store.Upload(ctx, key, body, contentType)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrServiceUnavailable, err)
	}

	user, err := s.directory.UpdateAvatar(ctx, email, url)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.cache.Put(ctx, email, SnapshotFromUser(user)); err != nil {
		logger.WarnWithContext(ctx, "Failed to refresh cached session after avatar update").
			String("email", email).
			Err(err).
			Log()
	}

	logger.InfoWithContext(ctx, "Avatar updated").
		String("email", email).
		String("url", url).
		Log()

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// avatarKey derives a stable object key per user so a re-upload
// replaces the previous avatar instead of accumulating objects.
func avatarKey(email, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".png"
	}
	safe := strings.NewReplacer("@", "_", ".", "_").Replace(email)
	return fmt.Sprintf("avatars/%s%s", safe, ext)
}
