package booking

import (
	"context"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
)

type itemNeighbors struct {
	repo Repository
}

// NewItemNeighbors lets the item module show an owner the approved bookings
// around the current moment without importing this package.
func NewItemNeighbors(repo Repository) item.BookingNeighbors {
	return &itemNeighbors{repo: repo}
}

func (n *itemNeighbors) Neighbors(ctx context.Context, itemID string, at time.Time) (*item.BookingRef, *item.BookingRef, error) {
	last, err := n.repo.LastApproved(ctx, itemID, at)
	if err != nil {
		return nil, nil, err
	}
	next, err := n.repo.NextApproved(ctx, itemID, at)
	if err != nil {
		return nil, nil, err
	}
	return toRef(last), toRef(next), nil
}

func toRef(b *Booking) *item.BookingRef {
	if b == nil {
		return nil
	}
	return &item.BookingRef{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}
