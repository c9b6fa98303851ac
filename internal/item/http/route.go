package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers item routes. All of them require authentication.
func RegisterRoutes(r gin.IRouter, h *Handler, authMiddleware gin.HandlerFunc) {
	group := r.Group("/items")
	group.Use(authMiddleware)

	group.POST("", h.Create)
	group.GET("", h.ListOwn)
	group.GET("/search", h.Search)
	group.GET("/:id", h.Get)
	group.PATCH("/:id", h.Update)
	group.POST("/:id/photo", h.UploadPhoto)
}
