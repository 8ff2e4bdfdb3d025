package router

import "github.com/gin-gonic/gin"

func (r *Router) userRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	users.Use(r.authMw.RequireAuth())
	{
		users.GET("/me", r.userHandler.Me)
		users.PATCH("/avatar", r.userHandler.UpdateAvatar)
	}
}
