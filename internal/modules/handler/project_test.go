package handler

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pilotdata/project/internal/config"
	"github.com/pilotdata/project/internal/modules/model"
	"github.com/pilotdata/project/internal/modules/repo"
	"github.com/pilotdata/project/internal/modules/serializer"
	"github.com/pilotdata/project/internal/modules/service"
	"github.com/pilotdata/project/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{S3: config.S3Cfg{ImageURLPrefix: "http://minio.local/project-logos/"}}
}

func setupProjectRouter(svc *MockProjectService) *gin.Engine {
	h := NewProjectHandler(svc, testConfig())
	r := setupRouter()
	r.GET("/projects/", h.ListProjects)
	r.POST("/projects/", h.CreateProject)
	r.GET("/projects/:id_or_code", h.GetProject)
	r.PATCH("/projects/:id", h.UpdateProject)
	r.DELETE("/projects/:id", h.DeleteProject)
	r.POST("/projects/:id/logo", h.UploadLogo)
	return r
}

func sampleProject() *model.Project {
	return &model.Project{
		ID:        uuid.New(),
		Code:      "abcproj",
		Name:      "ABC Project",
		Tags:      pq.StringArray{"x"},
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestProjectHandler_ListProjects(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name           string
		query          string
		setup          func(*MockProjectService)
		expectedStatus int
		expectedLoc    []string
	}{
		{
			name:  "filters, sorting and pagination",
			query: "?name=abc&code_any=alpha,beta&tags_all=t1&is_discoverable=true&ids=" + id.String() + "&sort_by=created_at&sort_order=desc&page=2&page_size=5",
			setup: func(svc *MockProjectService) {
				svc.On("List", mock.Anything, mock.MatchedBy(func(in service.ListInput) bool {
					f, ok := in.Filtering.(repo.ProjectFiltering)
					s, _ := in.Sorting.(repo.Sorting)
					return ok &&
						*f.Name == "abc" &&
						assert.ObjectsAreEqual([]string{"alpha", "beta"}, f.Codes) &&
						assert.ObjectsAreEqual([]string{"t1"}, f.Tags) &&
						*f.IsDiscoverable &&
						assert.ObjectsAreEqual([]uuid.UUID{id}, f.IDs) &&
						f.CreatedAt == nil &&
						*s.Field == "created_at" && s.Order == repo.SortDesc &&
						in.Pagination == repo.Pagination{Page: 2, PageSize: 5}
				})).Return(&repo.Page[model.Project]{
					Pagination: repo.Pagination{Page: 2, PageSize: 5},
					Total:      11,
					Entries:    []model.Project{*sampleProject()},
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "defaults",
			query: "",
			setup: func(svc *MockProjectService) {
				svc.On("List", mock.Anything, mock.MatchedBy(func(in service.ListInput) bool {
					s, _ := in.Sorting.(repo.Sorting)
					return in.Pagination == repo.Pagination{Page: 0, PageSize: 20} && !s.IsPresent() && !in.Filtering.IsPresent()
				})).Return(&repo.Page[model.Project]{Pagination: repo.Pagination{PageSize: 20}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "created_at range",
			query:          "?created_at_start=2024-01-01T00:00:00Z&created_at_end=2024-02-01T00:00:00Z",
			expectedStatus: http.StatusOK,
			setup: func(svc *MockProjectService) {
				svc.On("List", mock.Anything, mock.MatchedBy(func(in service.ListInput) bool {
					f := in.Filtering.(repo.ProjectFiltering)
					return f.CreatedAt != nil && f.CreatedAt.End.Month() == time.February
				})).Return(&repo.Page[model.Project]{Pagination: repo.Pagination{PageSize: 20}}, nil).Once()
			},
		},
		{
			name:           "malformed id",
			query:          "?ids=" + id.String() + ",nope",
			setup:          func(*MockProjectService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedLoc:    []string{"query", "ids"},
		},
		{
			name:           "empty list item",
			query:          "?code_any=alpha,,beta",
			setup:          func(*MockProjectService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedLoc:    []string{"query", "code_any"},
		},
		{
			name:           "unsupported sort field",
			query:          "?sort_by=description",
			setup:          func(*MockProjectService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedLoc:    []string{"query", "sort_by"},
		},
		{
			name:           "bad sort order",
			query:          "?sort_order=up",
			setup:          func(*MockProjectService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedLoc:    []string{"query", "sort_order"},
		},
		{
			name:           "page size below one",
			query:          "?page_size=0",
			setup:          func(*MockProjectService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedLoc:    []string{"query", "page_size"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockProjectService{}
			tt.setup(svc)

			w := perform(setupProjectRouter(svc), http.MethodGet, "/projects/"+tt.query, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedLoc != nil {
				assert.Equal(t, [][]string{tt.expectedLoc}, fieldLocs(t, w))
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestProjectHandler_ListProjects_Body(t *testing.T) {
	svc := &MockProjectService{}
	p := sampleProject()
	svc.On("List", mock.Anything, mock.Anything).Return(&repo.Page[model.Project]{
		Pagination: repo.Pagination{Page: 0, PageSize: 2},
		Total:      3,
		Entries:    []model.Project{*p},
	}, nil).Once()

	w := perform(setupProjectRouter(svc), http.MethodGet, "/projects/?page_size=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	res := decode[serializer.ListResponse[ProjectResp]](t, w)
	assert.Equal(t, 2, res.Data.NumOfPages)
	assert.Equal(t, 0, res.Data.Page)
	assert.Equal(t, int64(3), res.Data.Total)
	require.Len(t, res.Data.Result, 1)
	assert.Equal(t, "abcproj", res.Data.Result[0].Code)
	assert.Equal(t, []string{}, res.Data.Result[0].SystemTags)
}

func TestProjectHandler_GetProject(t *testing.T) {
	t.Run("by code with logo", func(t *testing.T) {
		svc := &MockProjectService{}
		p := sampleProject()
		logo := p.ID.String() + ".png"
		p.LogoName = &logo
		svc.On("Get", mock.Anything, "abcproj").Return(p, nil).Once()

		w := perform(setupProjectRouter(svc), http.MethodGet, "/projects/abcproj", "")
		require.Equal(t, http.StatusOK, w.Code)

		res := decode[ProjectResp](t, w)
		assert.Equal(t, p.ID, res.Data.ID)
		require.NotNil(t, res.Data.ImageURL)
		assert.Equal(t, "http://minio.local/project-logos/"+logo, *res.Data.ImageURL)
	})

	t.Run("without logo", func(t *testing.T) {
		svc := &MockProjectService{}
		p := sampleProject()
		svc.On("Get", mock.Anything, p.ID.String()).Return(p, nil).Once()

		w := perform(setupProjectRouter(svc), http.MethodGet, "/projects/"+p.ID.String(), "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, decode[ProjectResp](t, w).Data.ImageURL)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &MockProjectService{}
		svc.On("Get", mock.Anything, "missing").Return(nil, apperr.NotFound("", nil)).Once()

		w := perform(setupProjectRouter(svc), http.MethodGet, "/projects/missing", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProjectHandler_CreateProject(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(*MockProjectService)
		expectedStatus int
		expectedLocs   [][]string
	}{
		{
			name: "successful creation with trimmed input",
			body: `{"code":" abcproj ","name":"  ABC Project ","tags":[" x "]}`,
			setup: func(svc *MockProjectService) {
				svc.On("Create", mock.Anything, service.CreateProjectInput{
					Code: "abcproj",
					Name: "ABC Project",
					Tags: []string{"x"},
				}).Return(sampleProject(), nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "code must start with a letter",
			body:           `{"code":"1abc","name":"ABC Project"}`,
			setup:          func(*MockProjectService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedLocs:   [][]string{{"body", "code"}},
		},
		{
			name:           "missing fields",
			body:           `{}`,
			setup:          func(*MockProjectService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedLocs:   [][]string{{"body", "code"}, {"body", "name"}},
		},
		{
			name:           "malformed json",
			body:           `{"code":`,
			setup:          func(*MockProjectService) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "duplicate code",
			body: `{"code":"abcproj","name":"ABC Project"}`,
			setup: func(svc *MockProjectService) {
				svc.On("Create", mock.Anything, mock.Anything).Return(nil, apperr.AlreadyExists("", nil)).Once()
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "provisioning failed",
			body: `{"code":"abcproj","name":"ABC Project"}`,
			setup: func(svc *MockProjectService) {
				svc.On("Create", mock.Anything, mock.Anything).Return(nil, apperr.Unhandled("unable to create project", nil)).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockProjectService{}
			tt.setup(svc)

			w := perform(setupProjectRouter(svc), http.MethodPost, "/projects/", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedLocs != nil {
				assert.ElementsMatch(t, tt.expectedLocs, fieldLocs(t, w))
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestProjectHandler_UpdateProject(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name           string
		path           string
		body           string
		setup          func(*MockProjectService)
		expectedStatus int
	}{
		{
			name: "only present fields are applied",
			path: "/projects/" + id.String(),
			body: `{"name":" Renamed ","logo_name":null,"tags":["a"]}`,
			setup: func(svc *MockProjectService) {
				svc.On("Update", mock.Anything, id, repo.Changes{
					"name":      "Renamed",
					"logo_name": nil,
					"tags":      pq.StringArray{"a"},
				}).Return(sampleProject(), nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "name cannot be null",
			path:           "/projects/" + id.String(),
			body:           `{"name":null}`,
			setup:          func(*MockProjectService) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "invalid id",
			path:           "/projects/abcproj",
			body:           `{"name":"Renamed"}`,
			setup:          func(*MockProjectService) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "missing project",
			path: "/projects/" + id.String(),
			body: `{}`,
			setup: func(svc *MockProjectService) {
				svc.On("Update", mock.Anything, id, repo.Changes{}).Return(nil, apperr.NotFound("", nil)).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockProjectService{}
			tt.setup(svc)

			w := perform(setupProjectRouter(svc), http.MethodPatch, tt.path, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestProjectHandler_DeleteProject(t *testing.T) {
	id := uuid.New()

	t.Run("deleted", func(t *testing.T) {
		svc := &MockProjectService{}
		svc.On("Delete", mock.Anything, id).Return(nil).Once()

		w := perform(setupProjectRouter(svc), http.MethodDelete, "/projects/"+id.String(), "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing", func(t *testing.T) {
		svc := &MockProjectService{}
		svc.On("Delete", mock.Anything, id).Return(apperr.NotFound("", nil)).Once()

		w := perform(setupProjectRouter(svc), http.MethodDelete, "/projects/"+id.String(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProjectHandler_UploadLogo(t *testing.T) {
	id := uuid.New()

	t.Run("uploaded", func(t *testing.T) {
		svc := &MockProjectService{}
		p := sampleProject()
		logo := id.String() + ".png"
		p.LogoName = &logo
		svc.On("UploadLogo", mock.Anything, id, "aGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8=").Return(p, nil).Once()

		w := perform(setupProjectRouter(svc), http.MethodPost, "/projects/"+id.String()+"/logo", `{"base64":"aGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8="}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://minio.local/project-logos/"+logo, *decode[ProjectResp](t, w).Data.ImageURL)
	})

	t.Run("invalid image", func(t *testing.T) {
		svc := &MockProjectService{}
		svc.On("UploadLogo", mock.Anything, id, mock.Anything).
			Return(nil, apperr.Validation("unsupported image format", "body", "base64")).Once()

		w := perform(setupProjectRouter(svc), http.MethodPost, "/projects/"+id.String()+"/logo", `{"base64":"not-an-image"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, [][]string{{"body", "base64"}}, fieldLocs(t, w))
	})

	t.Run("missing body field", func(t *testing.T) {
		svc := &MockProjectService{}

		w := perform(setupProjectRouter(svc), http.MethodPost, "/projects/"+id.String()+"/logo", `{}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		svc.AssertNotCalled(t, "UploadLogo", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("oversized body", func(t *testing.T) {
		svc := &MockProjectService{}
		body := `{"base64":"` + strings.Repeat("A", int(defaultBodyLimit)) + `"}`

		w := perform(setupProjectRouter(svc), http.MethodPost, "/projects/"+id.String()+"/logo", body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, [][]string{{"body"}}, fieldLocs(t, w))
		svc.AssertNotCalled(t, "UploadLogo", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage down", func(t *testing.T) {
		svc := &MockProjectService{}
		svc.On("UploadLogo", mock.Anything, id, mock.Anything).Return(nil, errors.New("boom")).Once()

		w := perform(setupProjectRouter(svc), http.MethodPost, "/projects/"+id.String()+"/logo", `{"base64":"x"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
