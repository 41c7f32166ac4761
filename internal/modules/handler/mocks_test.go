package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pilotdata/project/internal/modules/model"
	"github.com/pilotdata/project/internal/modules/repo"
	"github.com/pilotdata/project/internal/modules/service"
	"github.com/pilotdata/project/internal/pkg/apperr"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProjectService is a mock implementation of ProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, in service.CreateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, idOrCode string) (*model.Project, error) {
	args := m.Called(ctx, idOrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) List(ctx context.Context, in service.ListInput) (*repo.Page[model.Project], error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repo.Page[model.Project]), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, id uuid.UUID, changes repo.Changes) (*model.Project, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProjectService) UploadLogo(ctx context.Context, id uuid.UUID, encoded string) (*model.Project, error) {
	args := m.Called(ctx, id, encoded)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

// MockResourceRequestService is a mock implementation of ResourceRequestService
type MockResourceRequestService struct {
	mock.Mock
}

func (m *MockResourceRequestService) Create(ctx context.Context, rr *model.ResourceRequest) (*model.ResourceRequest, error) {
	args := m.Called(ctx, rr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResourceRequest), args.Error(1)
}

func (m *MockResourceRequestService) Get(ctx context.Context, id uuid.UUID) (*model.ResourceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResourceRequest), args.Error(1)
}

func (m *MockResourceRequestService) List(ctx context.Context, in service.ListInput) (*repo.Page[model.ResourceRequest], error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repo.Page[model.ResourceRequest]), args.Error(1)
}

func (m *MockResourceRequestService) Update(ctx context.Context, id uuid.UUID, changes repo.Changes) (*model.ResourceRequest, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResourceRequest), args.Error(1)
}

func (m *MockResourceRequestService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockWorkbenchService is a mock implementation of WorkbenchService
type MockWorkbenchService struct {
	mock.Mock
}

func (m *MockWorkbenchService) Create(ctx context.Context, w *model.Workbench) (*model.Workbench, error) {
	args := m.Called(ctx, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workbench), args.Error(1)
}

func (m *MockWorkbenchService) Get(ctx context.Context, id uuid.UUID) (*model.Workbench, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workbench), args.Error(1)
}

func (m *MockWorkbenchService) List(ctx context.Context, in service.ListInput) (*repo.Page[model.Workbench], error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repo.Page[model.Workbench]), args.Error(1)
}

func (m *MockWorkbenchService) Update(ctx context.Context, id uuid.UUID, changes repo.Changes) (*model.Workbench, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workbench), args.Error(1)
}

func (m *MockWorkbenchService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockHealthChecker is a mock implementation of HealthChecker
type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) IsOnline(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func perform(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope[T any] struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data T      `json:"data"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var out envelope[T]
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func fieldLocs(t *testing.T, w *httptest.ResponseRecorder) [][]string {
	t.Helper()
	res := decode[[]apperr.FieldError](t, w)
	locs := make([][]string, 0, len(res.Data))
	for _, f := range res.Data {
		locs = append(locs, f.Loc)
	}
	return locs
}
