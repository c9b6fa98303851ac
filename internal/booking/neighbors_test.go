package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// neighborRepo answers the approved-booking lookups from fixed values.
type neighborRepo struct {
	memRepo
	last, next *Booking
	err        error
	gotAt      time.Time
}

func (r *neighborRepo) LastApproved(ctx context.Context, itemID string, at time.Time) (*Booking, error) {
	r.gotAt = at
	return r.last, r.err
}

func (r *neighborRepo) NextApproved(ctx context.Context, itemID string, at time.Time) (*Booking, error) {
	return r.next, nil
}

func TestItemNeighbors(t *testing.T) {
	ctx := context.Background()

	t.Run("Both sides", func(t *testing.T) {
		repo := &neighborRepo{
			last: &Booking{ID: "b1", BookerID: bookerID, Start: day(-3), End: day(-1)},
			next: &Booking{ID: "b2", BookerID: strangerID, Start: day(2), End: day(4)},
		}

		last, next, err := NewItemNeighbors(repo).Neighbors(ctx, itemID, fixedNow)
		require.NoError(t, err)
		require.NotNil(t, last)
		require.NotNil(t, next)
		assert.Equal(t, "b1", last.ID)
		assert.Equal(t, bookerID, last.BookerID)
		assert.Equal(t, day(2), next.Start)
		assert.Equal(t, fixedNow, repo.gotAt)
	})

	t.Run("None", func(t *testing.T) {
		last, next, err := NewItemNeighbors(&neighborRepo{}).Neighbors(ctx, itemID, fixedNow)
		require.NoError(t, err)
		assert.Nil(t, last)
		assert.Nil(t, next)
	})

	t.Run("Store failure", func(t *testing.T) {
		_, _, err := NewItemNeighbors(&neighborRepo{err: errors.New("db down")}).Neighbors(ctx, itemID, fixedNow)
		assert.Error(t, err)
	})
}
