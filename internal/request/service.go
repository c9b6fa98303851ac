package request

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	pagination "github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// UserGetter is the part of user.Service requests depend on.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// ItemLister loads the items answering a set of requests.
type ItemLister interface {
	ListByRequestIDs(ctx context.Context, requestIDs []string) ([]*item.Item, error)
}

// Service defines business logic for item requests.
type Service interface {
	Create(ctx context.Context, requesterID, description string) (*Request, error)
	GetByID(ctx context.Context, id, userID string) (*Request, error)
	ListOwn(ctx context.Context, userID string, from, size int) ([]*Request, error)
	ListAll(ctx context.Context, userID string, from, size int) ([]*Request, error)
}

type service struct {
	repo   Repository
	users  UserGetter
	items  ItemLister
	logger *zap.Logger
}

// NewService creates a new request Service.
func NewService(repo Repository, users UserGetter, items ItemLister, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		users:  users,
		items:  items,
		logger: logger,
	}
}

func (s *service) Create(ctx context.Context, requesterID, description string) (*Request, error) {
	if err := s.ensureUser(ctx, requesterID); err != nil {
		return nil, err
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}

	req := &Request{Description: description, RequesterID: requesterID}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	req.Items = []*item.Item{}

	s.logger.Info("request created", zap.String("request_id", req.ID), zap.String("requester_id", requesterID))
	return req, nil
}

func (s *service) GetByID(ctx context.Context, id, userID string) (*Request, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachItems(ctx, []*Request{req}); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) ListOwn(ctx context.Context, userID string, from, size int) ([]*Request, error) {
	page, err := pagination.Page(from, size)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	reqs, err := s.repo.ListByRequester(ctx, userID, page, size)
	if err != nil {
		return nil, err
	}
	if err := s.attachItems(ctx, reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListAll lists requests made by everyone except userID. The caller is not looked up.
func (s *service) ListAll(ctx context.Context, userID string, from, size int) ([]*Request, error) {
	page, err := pagination.Page(from, size)
	if err != nil {
		return nil, err
	}

	reqs, err := s.repo.ListOthers(ctx, userID, page, size)
	if err != nil {
		return nil, err
	}
	if err := s.attachItems(ctx, reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (s *service) ensureUser(ctx context.Context, id string) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	// Deleted accounts are kept with is_active=false.
	if !u.IsActive {
		return ErrUserNotFound
	}
	return nil
}

// attachItems fills Items on every request with one lookup.
func (s *service) attachItems(ctx context.Context, reqs []*Request) error {
	if len(reqs) == 0 {
		return nil
	}

	ids := make([]string, len(reqs))
	byID := make(map[string]*Request, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ID
		r.Items = []*item.Item{}
		byID[r.ID] = r
	}

	items, err := s.items.ListByRequestIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load request items: %w", err)
	}
	for _, it := range items {
		if it.RequestID == nil {
			continue
		}
		if r, ok := byID[*it.RequestID]; ok {
			r.Items = append(r.Items, it)
		}
	}
	return nil
}
