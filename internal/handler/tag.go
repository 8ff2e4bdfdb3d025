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
)

type TagHandler struct {
	tagService *service.TagService
}

func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func (h *TagHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "ListTags")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	params := constants.ParseListParams(c)
	tags, err := h.tagService.List(ctx, user.ID, params.Skip, params.Limit)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, tags)
}

func (h *TagHandler) Get(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "GetTag")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	tagID, ok := pathID(c, "tagId")
	if !ok {
		return
	}

	tag, err := h.tagService.Get(ctx, tagID, user.ID)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "CreateTag")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	var req dto.TagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.tagService.Create(ctx, user.ID, &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusCreated, tag)
}

func (h *TagHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "UpdateTag")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	tagID, ok := pathID(c, "tagId")
	if !ok {
		return
	}

	var req dto.TagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.tagService.Update(ctx, tagID, user.ID, &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "DeleteTag")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	tagID, ok := pathID(c, "tagId")
	if !ok {
		return
	}

	if err := h.tagService.Delete(ctx, tagID, user.ID); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.Status(http.StatusNoContent)
}
