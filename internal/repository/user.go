package repository

import (
	"context"
	"time"

	"github.com/notely/notes-api/internal/model"
	ctxutil "github.com/notely/notes-api/pkg/context"
	"github.com/notely/notes-api/pkg/logger"
	"gorm.io/gorm"
)

// UserRepository is the user directory: the single source of truth for
// account records. The session cache only ever holds copies of what
// lives here.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail finds a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByEmail")

	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get user by email").
				String("email", email).
				Duration(time.Since(start)).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved by email").
		String("email", email).
		Uint("user_id", user.ID).
		Duration(time.Since(start)).
		Log()

	return &user, nil
}

// GetByUsername finds a user by display name
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByUsername")

	var user model.User
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get user by username").
				String("username", username).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	return &user, nil
}

// Create inserts a new user record
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Create")

	start := time.Now()
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("email", user.Email).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "User created").
		String("email", user.Email).
		Uint("user_id", user.ID).
		Duration(time.Since(start)).
		Log()

	return nil
}

// UpdateRefreshToken overwrites the user's refresh token slot. An empty
// token clears the slot, revoking whatever was issued before.
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, email, token string) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "UpdateRefreshToken")

	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Update("refresh_token", token)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update refresh token").
			String("email", email).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.DebugWithContext(ctx, "Refresh token updated").
		String("email", email).
		Bool("has_token", token != "").
		Log()

	return nil
}

// RotateRefreshToken swaps oldToken for newToken in a single guarded
// update. When two requests race on the same stale token the database
// row is the arbiter: exactly one update matches, the other sees zero
// rows and returns gorm.ErrRecordNotFound.
func (r *UserRepository) RotateRefreshToken(ctx context.Context, email, oldToken, newToken string) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "RotateRefreshToken")

	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND refresh_token = ?", email, oldToken).
		Update("refresh_token", newToken)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to rotate refresh token").
			String("email", email).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "Refresh token rotation matched no row").
			String("email", email).
			Log()
		return gorm.ErrRecordNotFound
	}

	return nil
}

// UpdateConfirmed sets the email confirmation flag
func (r *UserRepository) UpdateConfirmed(ctx context.Context, email string, confirmed bool) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "UpdateConfirmed")

	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Update("confirmed", confirmed)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update confirmed flag").
			String("email", email).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Confirmed flag updated").
		String("email", email).
		Bool("confirmed", confirmed).
		Log()

	return nil
}

// UpdateAvatar stores the avatar URL for the user
func (r *UserRepository) UpdateAvatar(ctx context.Context, email, url string) (*model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "UpdateAvatar")

	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Update("avatar", url)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update avatar").
			String("email", email).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.GetByEmail(ctx, email)
}
