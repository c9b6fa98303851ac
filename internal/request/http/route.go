package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers item request routes.
func RegisterRoutes(r gin.IRouter, h *Handler, authMiddleware gin.HandlerFunc) {
	group := r.Group("/requests")
	group.Use(authMiddleware)

	group.POST("", h.Create)
	group.GET("", h.ListOwn)
	group.GET("/all", h.ListAll)
	group.GET("/:id", h.Get)
}
