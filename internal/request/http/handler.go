package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	pkgRequest "github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
	"github.com/nekogravitycat/shareit-backend/internal/request"
)

type Handler struct {
	service request.Service
}

func NewHandler(service request.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), body.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRequestResponse(r))
}

func (h *Handler) Get(c *gin.Context) {
	var uri pkgRequest.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRequestResponse(r))
}

// ListOwn returns the caller's own requests, newest first.
func (h *Handler) ListOwn(c *gin.Context) {
	h.list(c, h.service.ListOwn)
}

// ListAll returns other users' requests, newest first.
func (h *Handler) ListAll(c *gin.Context) {
	h.list(c, h.service.ListAll)
}

func (h *Handler) list(c *gin.Context, fetch func(ctx context.Context, userID string, from, size int) ([]*request.Request, error)) {
	var q pkgRequest.ListParams
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	reqs, err := fetch(c.Request.Context(), auth.GetUserID(c), q.From, q.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]RequestResponse, len(reqs))
	for i, r := range reqs {
		out[i] = NewRequestResponse(r)
	}
	c.JSON(http.StatusOK, response.List(out))
}
