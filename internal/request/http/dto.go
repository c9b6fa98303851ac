package http

import (
	"time"

	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	"github.com/nekogravitycat/shareit-backend/internal/request"
)

type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

type RequestResponse struct {
	ID          string                  `json:"id"`
	Description string                  `json:"description"`
	RequesterID string                  `json:"requester_id"`
	Created     time.Time               `json:"created"`
	Items       []itemHttp.ItemResponse `json:"items"`
}

func NewRequestResponse(r *request.Request) RequestResponse {
	return RequestResponse{
		ID:          r.ID,
		Description: r.Description,
		RequesterID: r.RequesterID,
		Created:     r.CreatedAt,
		Items:       itemHttp.NewItemResponses(r.Items),
	}
}
