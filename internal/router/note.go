package router

import "github.com/gin-gonic/gin"

func (r *Router) noteRoutes(api *gin.RouterGroup) {
	notes := api.Group("/notes")
	notes.Use(r.authMw.RequireAuth())
	{
		// Listing is rate limited per client IP
		notes.GET("", r.listRateLimit(), r.noteHandler.List)
		notes.GET("/:noteId", r.noteHandler.Get)
		notes.POST("", r.noteHandler.Create)
		notes.PUT("/:noteId", r.noteHandler.Update)
		notes.PATCH("/:noteId", r.noteHandler.UpdateStatus)
		notes.DELETE("/:noteId", r.noteHandler.Delete)
	}
}
