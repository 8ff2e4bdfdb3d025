package dto

type TagRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
