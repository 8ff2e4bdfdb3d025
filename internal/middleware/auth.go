package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/notely/notes-api/internal/constants"
	"github.com/notely/notes-api/internal/model"
	ctxutil "github.com/notely/notes-api/pkg/context"
	"github.com/notely/notes-api/pkg/logger"
)

// Gin context keys under which the authenticated user is stored.
const (
	CtxUser      = "current_user"
	CtxUserID    = "user_id"
	CtxUserEmail = "user_email"
)

// IdentityResolver validates an access token and returns the user it
// belongs to. *service.AuthService satisfies it.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, accessToken string) (*model.User, error)
}

type AuthMiddleware struct {
	resolver IdentityResolver
}

func NewAuthMiddleware(resolver IdentityResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// RequireAuth extracts the bearer token, resolves the user and stores
// it in both the gin context and the request context. Every rejection
// is a plain 401 so callers cannot tell which check failed.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			logger.GetLogger().Warn("Missing or malformed Authorization header")
			abortUnauthorized(c)
			return
		}

		user, err := m.resolver.ResolveIdentity(c.Request.Context(), token)
		if err != nil {
			logger.WarnWithContext(c.Request.Context(), "Access token rejected").
				String("path", c.Request.URL.Path).
				Err(err).
				Log()
			abortUnauthorized(c)
			return
		}

		c.Set(CtxUser, user)
		c.Set(CtxUserID, user.ID)
		c.Set(CtxUserEmail, user.Email)

		ctx := ctxutil.WithUserEmail(c.Request.Context(), user.Email)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// BearerToken pulls the token out of the Authorization header.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// CurrentUser returns the user placed in the gin context by RequireAuth.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	val, exists := c.Get(CtxUser)
	if !exists {
		return nil, false
	}
	user, ok := val.(*model.User)
	return user, ok
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
}
