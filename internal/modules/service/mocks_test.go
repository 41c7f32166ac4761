package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/pilotdata/project/internal/infra/httpclient"
	"github.com/pilotdata/project/internal/modules/model"
	"github.com/pilotdata/project/internal/modules/repo"
	"github.com/stretchr/testify/mock"
)

// MockProjectRepo is a mock implementation of ProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) RetrieveByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) RetrieveByCode(ctx context.Context, code string) (*model.Project, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) RetrieveByIDOrCode(ctx context.Context, idOrCode string) (*model.Project, error) {
	args := m.Called(ctx, idOrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) List(ctx context.Context) ([]model.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepo) Paginate(ctx context.Context, p repo.Pagination, sorting repo.Shaper, filtering repo.Shaper) (*repo.Page[model.Project], error) {
	args := m.Called(ctx, p, sorting, filtering)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repo.Page[model.Project]), args.Error(1)
}

func (m *MockProjectRepo) Update(ctx context.Context, id uuid.UUID, changes repo.Changes) (*model.Project, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStorageManager is a mock implementation of StorageManager
type MockStorageManager struct {
	mock.Mock
}

func (m *MockStorageManager) BucketNames(code string) []string {
	args := m.Called(code)
	return args.Get(0).([]string)
}

func (m *MockStorageManager) CreateBucket(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockStorageManager) CreateBucketsForProject(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

func (m *MockStorageManager) RemoveBucket(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockStorageManager) RemoveBucketsForProject(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

// MockPolicyManager is a mock implementation of PolicyManager
type MockPolicyManager struct {
	mock.Mock
}

func (m *MockPolicyManager) CreatePoliciesForProject(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

func (m *MockPolicyManager) RollbackPoliciesForProject(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

// MockAuthClient is a mock implementation of AuthClient
type MockAuthClient struct {
	mock.Mock
}

func (m *MockAuthClient) CreateUserGroups(ctx context.Context, projectCode string, description *string) error {
	return m.Called(ctx, projectCode, description).Error(0)
}

func (m *MockAuthClient) CreateUserRoles(ctx context.Context, projectCode string) error {
	return m.Called(ctx, projectCode).Error(0)
}

func (m *MockAuthClient) CreateDefaultPermissions(ctx context.Context, projectCode string) error {
	return m.Called(ctx, projectCode).Error(0)
}

func (m *MockAuthClient) GetPlatformAdmins(ctx context.Context) ([]httpclient.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]httpclient.User), args.Error(1)
}

// MockMetadataClient is a mock implementation of MetadataClient
type MockMetadataClient struct {
	mock.Mock
}

func (m *MockMetadataClient) CreateUsersNameFolders(ctx context.Context, users []httpclient.User, projectCode string) error {
	return m.Called(ctx, users, projectCode).Error(0)
}

// MockLogoUploader is a mock implementation of LogoUploader
type MockLogoUploader struct {
	mock.Mock
}

func (m *MockLogoUploader) ConvertAndUpload(ctx context.Context, raw []byte, filename string) error {
	return m.Called(ctx, raw, filename).Error(0)
}

// MockBucketStore is a mock implementation of BucketStore
type MockBucketStore struct {
	mock.Mock
}

func (m *MockBucketStore) CreateBucket(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockBucketStore) EnableVersioning(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockBucketStore) EnableEncryption(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockBucketStore) RemoveBucket(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

// MockObjectStore is a mock implementation of ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) CreateBucket(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockObjectStore) PutObject(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	return m.Called(ctx, bucket, key, body, contentType).Error(0)
}

// MockPolicyStore is a mock implementation of PolicyStore
type MockPolicyStore struct {
	mock.Mock
}

func (m *MockPolicyStore) AddPolicy(ctx context.Context, name string, document []byte) error {
	return m.Called(ctx, name, document).Error(0)
}

func (m *MockPolicyStore) RemovePolicy(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

// MockProjectCache is a mock implementation of ProjectCache
type MockProjectCache struct {
	mock.Mock
}

func (m *MockProjectCache) Get(ctx context.Context, idOrCode string) (*model.Project, bool) {
	args := m.Called(ctx, idOrCode)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*model.Project), args.Bool(1)
}

func (m *MockProjectCache) Set(ctx context.Context, p *model.Project) {
	m.Called(ctx, p)
}

func (m *MockProjectCache) Fill(ctx context.Context, p *model.Project) {
	m.Called(ctx, p)
}

func (m *MockProjectCache) Invalidate(ctx context.Context, p *model.Project) {
	m.Called(ctx, p)
}

// MockPublisher is a mock implementation of EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishProjectEvent(ctx context.Context, event string, p *model.Project) {
	m.Called(ctx, event, p)
}
