package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers booking routes. All of them require authentication.
func RegisterRoutes(r gin.IRouter, h *Handler, authMiddleware gin.HandlerFunc) {
	group := r.Group("/bookings")
	group.Use(authMiddleware)

	group.POST("", h.Create)
	group.GET("", h.ListOwn)
	group.GET("/owner", h.ListOwner)
	group.GET("/:id", h.Get)
	group.PATCH("/:id", h.Decide)
}
