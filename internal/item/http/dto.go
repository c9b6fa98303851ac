package http

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/file"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
)

// SearchItemsRequest defines query parameters for item search.
type SearchItemsRequest struct {
	request.ListParams
	Text string `form:"text"`
}

type CreateItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Available   *bool   `json:"available" binding:"required"`
	RequestID   *string `json:"request_id" binding:"omitempty,uuid"`
}

// UpdateItemRequest uses pointers so that absent fields stay untouched.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type BookingRefResponse struct {
	ID       string    `json:"id"`
	BookerID string    `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type ItemResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Available    bool                `json:"available"`
	OwnerID      string              `json:"owner_id"`
	RequestID    *string             `json:"request_id"`
	PhotoURL     *string             `json:"photo_url"`
	ThumbnailURL *string             `json:"thumbnail_url"`
	LastBooking  *BookingRefResponse `json:"last_booking"`
	NextBooking  *BookingRefResponse `json:"next_booking"`
	CreatedAt    time.Time           `json:"created_at"`
}

func newBookingRefResponse(b *item.BookingRef) *BookingRefResponse {
	if b == nil {
		return nil
	}
	return &BookingRefResponse{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}

func NewItemResponse(it *item.Item) ItemResponse {
	resp := ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     it.OwnerID,
		RequestID:   it.RequestID,
		LastBooking: newBookingRefResponse(it.LastBooking),
		NextBooking: newBookingRefResponse(it.NextBooking),
		CreatedAt:   it.CreatedAt,
	}
	if it.PhotoFileID != nil {
		photo := file.FileURL(*it.PhotoFileID)
		thumb := file.ThumbnailURL(*it.PhotoFileID)
		resp.PhotoURL = &photo
		resp.ThumbnailURL = &thumb
	}
	return resp
}

func NewItemResponses(items []*item.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = NewItemResponse(it)
	}
	return out
}

// ItemTag is a brief representation of an item.
type ItemTag struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OwnerID string `json:"owner_id"`
}
