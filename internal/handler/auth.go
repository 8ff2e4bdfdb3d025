package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notely/notes-api/internal/constants"
	"github.com/notely/notes-api/internal/dto"
	apperrors "github.com/notely/notes-api/internal/errors"
	"github.com/notely/notes-api/internal/middleware"
	"github.com/notely/notes-api/internal/service"
	ctxutil "github.com/notely/notes-api/pkg/context"
	"github.com/notely/notes-api/pkg/logger"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles account creation
func (h *AuthHandler) Signup(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "Signup")

	var req dto.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	logger.InfoWithContext(ctx, "Signup attempt").
		String("email", req.Email).
		Log()

	user, err := h.authService.Register(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Signup failed").
			String("email", req.Email).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "Login")

	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	logger.InfoWithContext(ctx, "Login attempt").
		String("email", req.Email).
		Log()

	response, err := h.authService.Login(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Login failed").
			String("email", req.Email).
			Err(err).
			Log()
		c.JSON(apperrors.ToAuthHTTPStatus(err), constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	c.JSON(http.StatusOK, response)
}

// RefreshToken exchanges a refresh token, presented as a bearer
// credential, for a new token pair.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "RefreshToken")

	token, ok := middleware.BearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	pair, err := h.authService.Refresh(ctx, token)
	if err != nil {
		logger.WarnWithContext(ctx, "Token refresh failed").
			Err(err).
			Log()
		c.JSON(apperrors.ToAuthHTTPStatus(err), constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Logout clears the caller's refresh token and cached session
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "Logout")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	if err := h.authService.Logout(ctx, user.Email); err != nil {
		logger.ErrorWithContext(ctx, "Logout failed").
			String("email", user.Email).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Logged out"))
}

// ConfirmEmail marks the account behind a verification token as confirmed
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "ConfirmEmail")

	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, nil))
		return
	}

	alreadyConfirmed, err := h.authService.ConfirmEmail(ctx, token)
	if err != nil {
		logger.WarnWithContext(ctx, "Email confirmation failed").
			Err(err).
			Log()
		c.JSON(apperrors.ToAuthHTTPStatus(err), constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	if alreadyConfirmed {
		c.JSON(http.StatusOK, constants.BuildSuccessResponse("Your email is already confirmed"))
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Email confirmed"))
}

// RequestEmail re-sends the confirmation mail. The response does not
// reveal whether the address exists.
func (h *AuthHandler) RequestEmail(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "RequestEmail")

	var req dto.RequestEmailRequest
	if !bindJSON(c, &req) {
		return
	}

	alreadyConfirmed, err := h.authService.RequestEmailConfirmation(ctx, req.Email)
	if err != nil {
		logger.ErrorWithContext(ctx, "Confirmation request failed").
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	if alreadyConfirmed {
		c.JSON(http.StatusOK, constants.BuildSuccessResponse("Your email is already confirmed"))
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Check your email for confirmation"))
}
