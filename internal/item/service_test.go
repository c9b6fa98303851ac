package item

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, it *Item) error {
	return m.Called(ctx, it).Error(0)
}
func (m *mockRepo) GetByID(ctx context.Context, id string) (*Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}
func (m *mockRepo) Update(ctx context.Context, it *Item) error {
	return m.Called(ctx, it).Error(0)
}
func (m *mockRepo) ListByOwner(ctx context.Context, ownerID string, page, size int) ([]*Item, error) {
	args := m.Called(ctx, ownerID, page, size)
	return args.Get(0).([]*Item), args.Error(1)
}
func (m *mockRepo) Search(ctx context.Context, text string, page, size int) ([]*Item, error) {
	args := m.Called(ctx, text, page, size)
	return args.Get(0).([]*Item), args.Error(1)
}
func (m *mockRepo) ListByRequestIDs(ctx context.Context, requestIDs []string) ([]*Item, error) {
	args := m.Called(ctx, requestIDs)
	return args.Get(0).([]*Item), args.Error(1)
}
func (m *mockRepo) SetPhoto(ctx context.Context, id, fileID string) error {
	return m.Called(ctx, id, fileID).Error(0)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type mockRequests struct {
	mock.Mock
}

func (m *mockRequests) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockNeighbors struct {
	mock.Mock
}

func (m *mockNeighbors) Neighbors(ctx context.Context, itemID string, at time.Time) (*BookingRef, *BookingRef, error) {
	args := m.Called(ctx, itemID, at)
	var last, next *BookingRef
	if v := args.Get(0); v != nil {
		last = v.(*BookingRef)
	}
	if v := args.Get(1); v != nil {
		next = v.(*BookingRef)
	}
	return last, next, args.Error(2)
}

type deps struct {
	repo      *mockRepo
	users     *mockUsers
	requests  *mockRequests
	neighbors *mockNeighbors
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService() (*service, deps) {
	d := deps{new(mockRepo), new(mockUsers), new(mockRequests), new(mockNeighbors)}
	svc := NewService(d.repo, d.users, d.requests, d.neighbors, zap.NewNop()).(*service)
	svc.now = func() time.Time { return fixedNow }
	return svc, d
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, d := newTestService()
		reqID := "req-1"

		d.users.On("GetByID", ctx, "owner").Return(&user.User{ID: "owner", IsActive: true}, nil)
		d.requests.On("Exists", ctx, reqID).Return(true, nil)
		d.repo.On("Create", ctx, mock.MatchedBy(func(it *Item) bool {
			return it.Name == "Drill" && it.OwnerID == "owner" && it.Available && *it.RequestID == reqID
		})).Run(func(args mock.Arguments) { args.Get(1).(*Item).ID = "item-1" }).Return(nil)

		it, err := svc.Create(ctx, "owner", CreateItemRequest{
			Name: " Drill ", Description: "Cordless", Available: true, RequestID: &reqID,
		})
		require.NoError(t, err)
		assert.Equal(t, "item-1", it.ID)
		d.repo.AssertExpectations(t)
	})

	t.Run("Unknown owner", func(t *testing.T) {
		svc, d := newTestService()
		d.users.On("GetByID", ctx, "ghost").Return(nil, user.ErrNotFound)

		_, err := svc.Create(ctx, "ghost", CreateItemRequest{Name: "Drill", Description: "Cordless"})
		assert.ErrorIs(t, err, ErrOwnerNotFound)
	})

	t.Run("Deactivated owner", func(t *testing.T) {
		svc, d := newTestService()
		d.users.On("GetByID", ctx, "deleted").Return(&user.User{ID: "deleted", IsActive: false}, nil)

		_, err := svc.Create(ctx, "deleted", CreateItemRequest{Name: "Drill", Description: "Cordless", Available: true})
		assert.ErrorIs(t, err, ErrOwnerNotFound)
		d.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Blank fields", func(t *testing.T) {
		svc, d := newTestService()
		d.users.On("GetByID", ctx, "owner").Return(&user.User{ID: "owner", IsActive: true}, nil)

		_, err := svc.Create(ctx, "owner", CreateItemRequest{Name: " ", Description: "Cordless"})
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = svc.Create(ctx, "owner", CreateItemRequest{Name: "Drill"})
		assert.ErrorIs(t, err, ErrDescriptionRequired)
	})

	t.Run("Unknown request", func(t *testing.T) {
		svc, d := newTestService()
		reqID := "req-404"
		d.users.On("GetByID", ctx, "owner").Return(&user.User{ID: "owner", IsActive: true}, nil)
		d.requests.On("Exists", ctx, reqID).Return(false, nil)

		_, err := svc.Create(ctx, "owner", CreateItemRequest{Name: "Drill", Description: "Cordless", RequestID: &reqID})
		assert.ErrorIs(t, err, ErrRequestNotFound)
		d.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestView(t *testing.T) {
	ctx := context.Background()
	last := &BookingRef{ID: "b-last", BookerID: "booker"}
	next := &BookingRef{ID: "b-next", BookerID: "booker"}

	t.Run("Owner sees bookings", func(t *testing.T) {
		svc, d := newTestService()
		d.repo.On("GetByID", ctx, "item-1").Return(&Item{ID: "item-1", OwnerID: "owner"}, nil)
		d.neighbors.On("Neighbors", ctx, "item-1", fixedNow).Return(last, next, nil)

		it, err := svc.View(ctx, "item-1", "owner")
		require.NoError(t, err)
		assert.Equal(t, last, it.LastBooking)
		assert.Equal(t, next, it.NextBooking)
	})

	t.Run("Others do not", func(t *testing.T) {
		svc, d := newTestService()
		d.repo.On("GetByID", ctx, "item-1").Return(&Item{ID: "item-1", OwnerID: "owner"}, nil)

		it, err := svc.View(ctx, "item-1", "someone")
		require.NoError(t, err)
		assert.Nil(t, it.LastBooking)
		assert.Nil(t, it.NextBooking)
		d.neighbors.AssertNotCalled(t, "Neighbors", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner patches fields", func(t *testing.T) {
		svc, d := newTestService()
		d.repo.On("GetByID", ctx, "item-1").
			Return(&Item{ID: "item-1", OwnerID: "owner", Name: "Drill", Description: "Cordless", Available: true}, nil)
		d.repo.On("Update", ctx, mock.AnythingOfType("*item.Item")).Return(nil)

		off := false
		it, err := svc.Update(ctx, "item-1", "owner", UpdateItemRequest{Available: &off})
		require.NoError(t, err)
		assert.False(t, it.Available)
		assert.Equal(t, "Drill", it.Name)
	})

	t.Run("Non-owner gets not found", func(t *testing.T) {
		svc, d := newTestService()
		d.repo.On("GetByID", ctx, "item-1").Return(&Item{ID: "item-1", OwnerID: "owner"}, nil)

		name := "Mine now"
		_, err := svc.Update(ctx, "item-1", "intruder", UpdateItemRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
		d.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestListByOwner(t *testing.T) {
	ctx := context.Background()
	svc, d := newTestService()

	d.users.On("GetByID", ctx, "owner").Return(&user.User{ID: "owner", IsActive: true}, nil)
	d.repo.On("ListByOwner", ctx, "owner", 2, 5).Return([]*Item{{ID: "a", OwnerID: "owner"}}, nil)
	d.neighbors.On("Neighbors", ctx, "a", fixedNow).Return(nil, &BookingRef{ID: "b"}, nil)

	items, err := svc.ListByOwner(ctx, "owner", 12, 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].LastBooking)
	assert.Equal(t, "b", items[0].NextBooking.ID)

	_, err = svc.ListByOwner(ctx, "owner", 0, 0)
	assert.ErrorIs(t, err, request.ErrInvalidPagination)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("Blank text returns nothing", func(t *testing.T) {
		svc, d := newTestService()

		items, err := svc.Search(ctx, "   ", 0, 10)
		require.NoError(t, err)
		assert.Empty(t, items)
		d.repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Delegates trimmed text", func(t *testing.T) {
		svc, d := newTestService()
		d.repo.On("Search", ctx, "drill", 0, 10).Return([]*Item{{ID: "a"}}, nil)

		items, err := svc.Search(ctx, " drill ", 0, 10)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})
}

func TestSetPhoto(t *testing.T) {
	ctx := context.Background()
	svc, d := newTestService()

	d.repo.On("GetByID", ctx, "item-1").Return(&Item{ID: "item-1", OwnerID: "owner"}, nil)
	d.repo.On("SetPhoto", ctx, "item-1", "file-1").Return(nil)

	it, err := svc.SetPhoto(ctx, "item-1", "owner", "file-1")
	require.NoError(t, err)
	assert.Equal(t, "file-1", *it.PhotoFileID)

	_, err = svc.SetPhoto(ctx, "item-1", "intruder", "file-2")
	assert.ErrorIs(t, err, ErrNotFound)
}
