package router

import "github.com/gin-gonic/gin"

func (r *Router) tagRoutes(api *gin.RouterGroup) {
	tags := api.Group("/tags")
	tags.Use(r.authMw.RequireAuth())
	{
		tags.GET("", r.tagHandler.List)
		tags.GET("/:tagId", r.tagHandler.Get)
		tags.POST("", r.tagHandler.Create)
		tags.PUT("/:tagId", r.tagHandler.Update)
		tags.DELETE("/:tagId", r.tagHandler.Delete)
	}
}
