package item

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// UserGetter is the part of user.Service items depend on.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// RequestChecker reports whether an item request exists.
type RequestChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// BookingNeighbors finds the approved bookings around a moment in time:
// the latest one that started at or before it and the earliest one after it.
type BookingNeighbors interface {
	Neighbors(ctx context.Context, itemID string, at time.Time) (last, next *BookingRef, err error)
}

// Service defines business logic related to items.
type Service interface {
	Create(ctx context.Context, ownerID string, req CreateItemRequest) (*Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	View(ctx context.Context, id, viewerID string) (*Item, error)
	Update(ctx context.Context, id, ownerID string, req UpdateItemRequest) (*Item, error)
	ListByOwner(ctx context.Context, ownerID string, from, size int) ([]*Item, error)
	Search(ctx context.Context, text string, from, size int) ([]*Item, error)
	SetPhoto(ctx context.Context, id, ownerID, fileID string) (*Item, error)
	ListByRequestIDs(ctx context.Context, requestIDs []string) ([]*Item, error)
}

type service struct {
	repo      Repository
	users     UserGetter
	requests  RequestChecker
	neighbors BookingNeighbors
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a new item Service.
func NewService(repo Repository, users UserGetter, requests RequestChecker, neighbors BookingNeighbors, logger *zap.Logger) Service {
	return &service{
		repo:      repo,
		users:     users,
		requests:  requests,
		neighbors: neighbors,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateItemRequest) (*Item, error) {
	if err := s.ensureUser(ctx, ownerID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}

	if req.RequestID != nil {
		ok, err := s.requests.Exists(ctx, *req.RequestID)
		if err != nil {
			return nil, fmt.Errorf("failed to check request: %w", err)
		}
		if !ok {
			return nil, ErrRequestNotFound
		}
	}

	it := &Item{
		Name:        name,
		Description: description,
		Available:   req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	s.logger.Info("item created", zap.String("item_id", it.ID), zap.String("owner_id", ownerID))
	return it, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) View(ctx context.Context, id, viewerID string) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.OwnerID == viewerID {
		if err := s.attachBookings(ctx, it); err != nil {
			return nil, err
		}
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, id, ownerID string, req UpdateItemRequest) (*Item, error) {
	it, err := s.ownedItem(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		it.Name = name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, ErrDescriptionRequired
		}
		it.Description = description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, from, size int) ([]*Item, error) {
	page, err := request.Page(from, size)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, page, size)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if err := s.attachBookings(ctx, it); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *service) Search(ctx context.Context, text string, from, size int) ([]*Item, error) {
	page, err := request.Page(from, size)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return []*Item{}, nil
	}
	return s.repo.Search(ctx, text, page, size)
}

func (s *service) SetPhoto(ctx context.Context, id, ownerID, fileID string) (*Item, error) {
	it, err := s.ownedItem(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetPhoto(ctx, id, fileID); err != nil {
		return nil, err
	}
	it.PhotoFileID = &fileID
	return it, nil
}

func (s *service) ListByRequestIDs(ctx context.Context, requestIDs []string) ([]*Item, error) {
	return s.repo.ListByRequestIDs(ctx, requestIDs)
}

// ownedItem loads an item and hides it from anyone but its owner.
func (s *service) ownedItem(ctx context.Context, id, ownerID string) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return it, nil
}

func (s *service) ensureUser(ctx context.Context, id string) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrOwnerNotFound
		}
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	// Deleted accounts are kept with is_active=false.
	if !u.IsActive {
		return ErrOwnerNotFound
	}
	return nil
}

func (s *service) attachBookings(ctx context.Context, it *Item) error {
	last, next, err := s.neighbors.Neighbors(ctx, it.ID, s.now())
	if err != nil {
		return fmt.Errorf("failed to load bookings for item %s: %w", it.ID, err)
	}
	it.LastBooking = last
	it.NextBooking = next
	return nil
}
