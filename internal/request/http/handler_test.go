package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	pkgRequest "github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/request"
)

const (
	userID    = "11111111-1111-4111-8111-111111111111"
	requestID = "55555555-5555-4555-8555-555555555555"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, requesterID, description string) (*request.Request, error) {
	args := m.Called(ctx, requesterID, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}
func (m *mockService) GetByID(ctx context.Context, id, userID string) (*request.Request, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}
func (m *mockService) ListOwn(ctx context.Context, userID string, from, size int) ([]*request.Request, error) {
	args := m.Called(ctx, userID, from, size)
	return args.Get(0).([]*request.Request), args.Error(1)
}
func (m *mockService) ListAll(ctx context.Context, userID string, from, size int) ([]*request.Request, error) {
	args := m.Called(ctx, userID, from, size)
	return args.Get(0).([]*request.Request), args.Error(1)
}

func newRouter(svc request.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), auth.AuthRequired(auth.MiddlewareConfig{
		JWTManager:        auth.NewJWTManager("unused", time.Minute),
		TrustSharerHeader: true,
	}))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.SharerHeader, userID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestRoutes(t *testing.T) {
	svc := new(mockService)
	r := newRouter(svc)

	created := &request.Request{ID: requestID, Description: "need a ladder", RequesterID: userID, Items: []*item.Item{}}
	svc.On("Create", mock.Anything, userID, "need a ladder").Return(created, nil)
	svc.On("GetByID", mock.Anything, requestID, userID).Return(nil, request.ErrNotFound)
	svc.On("ListOwn", mock.Anything, userID, 0, 10).Return([]*request.Request{created}, nil)
	svc.On("ListAll", mock.Anything, userID, 0, 20).Return([]*request.Request(nil), nil)

	w := do(r, http.MethodPost, "/v1/requests", `{"description":"need a ladder"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp RequestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, requestID, resp.ID)
	assert.NotNil(t, resp.Items)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/v1/requests", `{}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/v1/requests/"+requestID, "").Code)

	w = do(r, http.MethodGet, "/v1/requests", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []RequestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = do(r, http.MethodGet, "/v1/requests/all?size=20", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestRequestRoutes_Pagination(t *testing.T) {
	svc := new(mockService)
	r := newRouter(svc)

	svc.On("ListOwn", mock.Anything, userID, 5, 100).Return([]*request.Request{}, pkgRequest.ErrInvalidPagination)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/v1/requests?size=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/v1/requests?from=5&size=100", "").Code)
}
