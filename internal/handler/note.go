package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/notely/notes-api/internal/constants"
	"github.com/notely/notes-api/internal/dto"
	apperrors "github.com/notely/notes-api/internal/errors"
	"github.com/notely/notes-api/internal/middleware"
	"github.com/notely/notes-api/internal/service"
	ctxutil "github.com/notely/notes-api/pkg/context"
)

type NoteHandler struct {
	noteService *service.NoteService
}

func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "ListNotes")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	params := constants.ParseListParams(c)
	notes, err := h.noteService.List(ctx, user.ID, params.Skip, params.Limit)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, notes)
}

func (h *NoteHandler) Get(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "GetNote")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	noteID, ok := pathID(c, "noteId")
	if !ok {
		return
	}

	note, err := h.noteService.Get(ctx, noteID, user.ID)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, note)
}

func (h *NoteHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "CreateNote")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	var req dto.NoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := h.noteService.Create(ctx, user.ID, &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusCreated, note)
}

func (h *NoteHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "UpdateNote")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	noteID, ok := pathID(c, "noteId")
	if !ok {
		return
	}

	var req dto.NoteUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := h.noteService.Update(ctx, noteID, user.ID, &req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, note)
}

func (h *NoteHandler) UpdateStatus(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "UpdateNoteStatus")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	noteID, ok := pathID(c, "noteId")
	if !ok {
		return
	}

	var req dto.NoteStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := h.noteService.UpdateStatus(ctx, noteID, user.ID, *req.Done)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.JSON(http.StatusOK, note)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContext(c.Request.Context(), "handler", "DeleteNote")

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	noteID, ok := pathID(c, "noteId")
	if !ok {
		return
	}

	if err := h.noteService.Delete(ctx, noteID, user.ID); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
		return
	}

	c.Status(http.StatusNoContent)
}

// pathID parses a positive integer path parameter, writing a 400 on
// failure.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, name+" must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}
