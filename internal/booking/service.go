package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// UserGetter is the part of user.Service bookings depend on.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// ItemGetter is the part of item.Service bookings depend on.
type ItemGetter interface {
	GetByID(ctx context.Context, id string) (*item.Item, error)
}

type Service interface {
	Create(ctx context.Context, bookerID string, req CreateRequest) (*Booking, error)
	Find(ctx context.Context, bookingID, userID string) (*Booking, error)
	ListForBooker(ctx context.Context, userID, state string, from, size int) ([]*Booking, error)
	ListForOwner(ctx context.Context, userID, state string, from, size int) ([]*Booking, error)
	Approve(ctx context.Context, ownerID string, approved bool, bookingID string) (*Booking, error)
}

type service struct {
	repo   Repository
	users  UserGetter
	items  ItemGetter
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, users UserGetter, items ItemGetter, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		users:  users,
		items:  items,
		logger: logger,
		now:    time.Now,
	}
}

// Create validates and stores a WAITING booking. Checks run in a fixed order
// and the first failure wins.
func (s *service) Create(ctx context.Context, bookerID string, req CreateRequest) (*Booking, error) {
	b, err := s.create(ctx, bookerID, req)
	if err != nil {
		metrics.IncBookingFailure(apperror.KindOf(err))
		s.logger.Info("booking rejected",
			zap.String("booker_id", bookerID),
			zap.String("item_id", req.ItemID),
			zap.String("reason", apperror.KindOf(err)),
		)
		return nil, err
	}

	metrics.IncBookingCreated()
	s.logger.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("booker_id", bookerID),
		zap.String("item_id", b.ItemID),
	)
	return b, nil
}

func (s *service) create(ctx context.Context, bookerID string, req CreateRequest) (*Booking, error) {
	// timestamptz keeps microseconds; compare what will be stored.
	req.Start = req.Start.Truncate(time.Microsecond)
	req.End = req.End.Truncate(time.Microsecond)

	if !req.Start.Before(req.End) {
		return nil, ErrInvalidRange
	}

	now := s.now()
	if req.Start.Before(now) || req.End.Before(now) {
		return nil, ErrPastDate
	}

	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to fetch item: %w", err)
	}

	if !it.Available {
		return nil, ErrItemUnavailable
	}

	if it.OwnerID == bookerID {
		return nil, ErrSelfBooking
	}

	booker, err := s.getUser(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListByItemID(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	if other := firstConflict(req.Start, req.End, existing); other != nil {
		s.logger.Debug("booking overlaps", zap.String("item_id", it.ID), zap.String("existing_booking_id", other.ID))
		return nil, ErrScheduleConflict
	}

	b := &Booking{
		ItemID:     it.ID,
		ItemName:   it.Name,
		OwnerID:    it.OwnerID,
		BookerID:   booker.ID,
		BookerName: booker.Name,
		Start:      req.Start,
		End:        req.End,
		Status:     StatusWaiting,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Find hides bookings from anyone but the booker and the item owner.
func (s *service) Find(ctx context.Context, bookingID, userID string) (*Booking, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BookerID != userID && b.OwnerID != userID {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *service) ListForBooker(ctx context.Context, userID, state string, from, size int) ([]*Booking, error) {
	return s.list(ctx, Filter{BookerID: userID}, userID, state, from, size)
}

func (s *service) ListForOwner(ctx context.Context, userID, state string, from, size int) ([]*Booking, error) {
	return s.list(ctx, Filter{OwnerID: userID}, userID, state, from, size)
}

func (s *service) list(ctx context.Context, filter Filter, userID, state string, from, size int) ([]*Booking, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	page, err := request.Page(from, size)
	if err != nil {
		return nil, err
	}

	st, err := ParseState(state)
	if err != nil {
		return nil, err
	}

	filter.State = st
	filter.Now = s.now()
	filter.Page = page
	filter.Size = size

	bookings, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []*Booking{}
	}
	return bookings, nil
}

// Approve records the owner's decision. Dates and conflicts are not re-checked.
func (s *service) Approve(ctx context.Context, ownerID string, approved bool, bookingID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, ErrNotFound
	}

	next, err := b.Status.Decide(approved)
	if err != nil {
		return nil, err
	}

	prev := b.Status
	b.Status = next
	if err := s.repo.UpdateStatus(ctx, b); err != nil {
		return nil, err
	}

	metrics.IncBookingDecision(next.String())
	s.logger.Info("booking decided",
		zap.String("booking_id", b.ID),
		zap.String("from", prev.String()),
		zap.String("to", next.String()),
	)
	return b, nil
}

func (s *service) getUser(ctx context.Context, id string) (*user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	// Deleted accounts are kept with is_active=false.
	if !u.IsActive {
		return nil, ErrUserNotFound
	}
	return u, nil
}
