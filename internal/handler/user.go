package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notely/notes-api/internal/constants"
	apperrors "github.com/notely/notes-api/internal/errors"
	"github.com/notely/notes-api/internal/middleware"
	"github.com/notely/notes-api/internal/service"
	ctxutil "github.com/notely/notes-api/pkg/context"
	"github.com/notely/notes-api/pkg/logger"
)

// Avatar uploads above this size are rejected before hitting storage.
const maxAvatarSize = 5 << 20

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me returns the authenticated user's profile
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	resp, err := h.userService.Me(c.Request.Context(), user.Email)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateAvatar accepts a multipart image under the "file" field,
// stores it and returns the refreshed profile.
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "UpdateAvatar")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Missing file field", err.Error()))
		return
	}
	if fileHeader.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("File too large", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, err.Error()))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get(constants.HeaderContentType)

	resp, err := h.userService.UpdateAvatar(ctx, user.Email, fileHeader.Filename, contentType, file)
	if err != nil {
		logger.ErrorWithContext(ctx, "Avatar update failed").
			String("email", user.Email).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, resp)
}
