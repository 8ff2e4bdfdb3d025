package dto

import "time"

type NoteRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"required,max=500"`
	Tags        []uint `json:"tags"`
}

type NoteUpdateRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"required,max=500"`
	Done        bool   `json:"done"`
	Tags        []uint `json:"tags"`
}

type NoteStatusRequest struct {
	Done *bool `json:"done" binding:"required"`
}

type NoteResponse struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Done        bool          `json:"done"`
	Tags        []TagResponse `json:"tags"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
