package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pilotdata/project/internal/modules/model"
	"github.com/pilotdata/project/internal/modules/repo"
	"github.com/pilotdata/project/internal/modules/serializer"
	"github.com/pilotdata/project/internal/modules/service"
	"github.com/pilotdata/project/internal/pkg/types"
)

type ResourceRequestHandler struct {
	svc service.ResourceRequestService
}

func NewResourceRequestHandler(s service.ResourceRequestService) *ResourceRequestHandler {
	return &ResourceRequestHandler{svc: s}
}

type EmbeddedProject struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type ResourceRequestResp struct {
	ID            uuid.UUID           `json:"id"`
	ProjectID     uuid.UUID           `json:"project_id"`
	UserID        string              `json:"user_id"`
	Email         string              `json:"email"`
	Username      string              `json:"username"`
	RequestedFor  string              `json:"requested_for"`
	CompletedAt   *time.Time          `json:"completed_at"`
	Message       *string             `json:"message"`
	VMConnections model.VMConnections `json:"vm_connections" swaggertype:"object"`
	RequestedAt   time.Time           `json:"requested_at"`
	Project       EmbeddedProject     `json:"project"`
}

func newResourceRequestResp(rr model.ResourceRequest) ResourceRequestResp {
	out := ResourceRequestResp{
		ID:            rr.ID,
		ProjectID:     rr.ProjectID,
		UserID:        rr.UserID,
		Email:         rr.Email,
		Username:      rr.Username,
		RequestedFor:  rr.RequestedFor,
		CompletedAt:   rr.CompletedAt,
		Message:       rr.Message,
		VMConnections: rr.Connections(),
		RequestedAt:   rr.RequestedAt,
	}
	if rr.Project != nil {
		out.Project = EmbeddedProject{Code: rr.Project.Code, Name: rr.Project.Name}
	}
	return out
}

type ListResourceRequestsReq struct {
	PageParams
	SortParams
	Username    *string `form:"username" json:"username"`
	Email       *string `form:"email" json:"email"`
	ProjectCode *string `form:"project_code" json:"project_code"`
}

// ListResourceRequests godoc
//
//	@Summary		List resource requests
//	@Description	List resource requests with their project, filtered, sorted and paginated
//	@Tags			resource-request
//	@Produce		json
//	@Param			username		query	string	false	"Username, substring or LIKE pattern"
//	@Param			email			query	string	false	"Email, substring or LIKE pattern"
//	@Param			project_code	query	string	false	"Exact code of the project"
//	@Param			sort_by			query	string	false	"Sort field"	Enums(project_id, user_id, username, email, requested_for, completed_at, requested_at, project.name, project.code)
//	@Param			sort_order		query	string	false	"Sort order"	Enums(asc, desc)
//	@Param			page			query	integer	false	"Page number, starting at 0"
//	@Param			page_size		query	integer	false	"Page size, default 20"
//	@Success		200	{object}	serializer.Response{data=serializer.ListResponse[handler.ResourceRequestResp]}
//	@Failure		422	{object}	serializer.Response{data=[]apperr.FieldError}
//	@Router			/resource-requests/ [get]
func (h *ResourceRequestHandler) ListResourceRequests(c *gin.Context) {
	req := ListResourceRequestsReq{}
	if err := bindQuery(c, &req); err != nil {
		abort(c, err)
		return
	}
	sorting, err := req.sorting(repo.ResourceRequestSortFields)
	if err != nil {
		abort(c, err)
		return
	}

	page, err := h.svc.List(c.Request.Context(), service.ListInput{
		Pagination: req.pagination(),
		Sorting:    sorting,
		Filtering: repo.ResourceRequestFiltering{
			Username:    req.Username,
			Email:       req.Email,
			ProjectCode: req.ProjectCode,
		},
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewList(page, newResourceRequestResp)})
}

// GetResourceRequest godoc
//
//	@Summary		Get resource request
//	@Tags			resource-request
//	@Produce		json
//	@Param			id	path		string	true	"Resource request ID"	Format(uuid)
//	@Success		200	{object}	serializer.Response{data=handler.ResourceRequestResp}
//	@Failure		404	{object}	serializer.Response
//	@Router			/resource-requests/{id} [get]
func (h *ResourceRequestHandler) GetResourceRequest(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		abort(c, err)
		return
	}

	rr, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: newResourceRequestResp(*rr)})
}

type CreateResourceRequestReq struct {
	ProjectID     uuid.UUID           `json:"project_id" binding:"required" swaggertype:"string" format:"uuid"`
	UserID        string              `json:"user_id" binding:"required"`
	Email         string              `json:"email" binding:"required,email"`
	Username      string              `json:"username" binding:"required"`
	RequestedFor  string              `json:"requested_for" binding:"required"`
	CompletedAt   *time.Time          `json:"completed_at"`
	Message       *string             `json:"message" binding:"omitempty,max=100"`
	VMConnections model.VMConnections `json:"vm_connections" swaggertype:"object"`
}

func (r *CreateResourceRequestReq) trim() {
	r.UserID = strings.TrimSpace(r.UserID)
	r.Email = strings.TrimSpace(r.Email)
	r.Username = strings.TrimSpace(r.Username)
	r.RequestedFor = strings.TrimSpace(r.RequestedFor)
}

// CreateResourceRequest godoc
//
//	@Summary		Create resource request
//	@Tags			resource-request
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.CreateResourceRequestReq	true	"CreateResourceRequest payload"
//	@Success		201		{object}	serializer.Response{data=handler.ResourceRequestResp}
//	@Failure		404		{object}	serializer.Response
//	@Failure		409		{object}	serializer.Response
//	@Failure		422		{object}	serializer.Response{data=[]apperr.FieldError}
//	@Router			/resource-requests/ [post]
func (h *ResourceRequestHandler) CreateResourceRequest(c *gin.Context) {
	req := CreateResourceRequestReq{}
	if err := bindJSON(c, &req); err != nil {
		abort(c, err)
		return
	}

	rr, err := h.svc.Create(c.Request.Context(), &model.ResourceRequest{
		ProjectID:     req.ProjectID,
		UserID:        req.UserID,
		Email:         req.Email,
		Username:      req.Username,
		RequestedFor:  req.RequestedFor,
		CompletedAt:   req.CompletedAt,
		Message:       req.Message,
		VMConnections: model.NewVMConnections(req.VMConnections),
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: newResourceRequestResp(*rr)})
}

type UpdateResourceRequestReq struct {
	ProjectID     types.Optional[uuid.UUID]           `json:"project_id" swaggertype:"string" format:"uuid"`
	UserID        types.Optional[string]              `json:"user_id" swaggertype:"string"`
	Email         types.Optional[string]              `json:"email" swaggertype:"string"`
	Username      types.Optional[string]              `json:"username" swaggertype:"string"`
	RequestedFor  types.Optional[string]              `json:"requested_for" swaggertype:"string"`
	CompletedAt   types.Optional[time.Time]           `json:"completed_at" swaggertype:"string" format:"date-time"`
	Message       types.Optional[string]              `json:"message" swaggertype:"string"`
	VMConnections types.Optional[model.VMConnections] `json:"vm_connections" swaggertype:"object"`
}

var emailCheck = validator.New()

func (r UpdateResourceRequestReq) Changes() (repo.Changes, error) {
	s := newChangeSet()
	value(s, "project_id", r.ProjectID, false, same[uuid.UUID])
	s.str("user_id", r.UserID, false, 0, 0)
	s.str("email", r.Email, false, 0, 0)
	if v, ok := s.changes["email"].(string); ok {
		if err := emailCheck.Var(v, "email"); err != nil {
			delete(s.changes, "email")
			s.fail("email", "value is not a valid email address")
		}
	}
	s.str("username", r.Username, false, 0, 0)
	s.str("requested_for", r.RequestedFor, false, 0, 0)
	value(s, "completed_at", r.CompletedAt, true, same[time.Time])
	s.str("message", r.Message, true, 0, 100)
	value(s, "vm_connections", r.VMConnections, true, func(v model.VMConnections) any {
		return model.NewVMConnections(v)
	})
	return s.result()
}

// UpdateResourceRequest godoc
//
//	@Summary		Update resource request
//	@Description	Apply the fields present in the payload; explicit nulls clear nullable fields
//	@Tags			resource-request
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Resource request ID"	Format(uuid)
//	@Param			payload	body		handler.UpdateResourceRequestReq	true	"UpdateResourceRequest payload"
//	@Success		200		{object}	serializer.Response{data=handler.ResourceRequestResp}
//	@Failure		404		{object}	serializer.Response
//	@Failure		422		{object}	serializer.Response{data=[]apperr.FieldError}
//	@Router			/resource-requests/{id} [patch]
func (h *ResourceRequestHandler) UpdateResourceRequest(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		abort(c, err)
		return
	}
	req := UpdateResourceRequestReq{}
	if err := bindJSON(c, &req); err != nil {
		abort(c, err)
		return
	}
	changes, err := req.Changes()
	if err != nil {
		abort(c, err)
		return
	}

	rr, err := h.svc.Update(c.Request.Context(), id, changes)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: newResourceRequestResp(*rr)})
}

// DeleteResourceRequest godoc
//
//	@Summary		Delete resource request
//	@Tags			resource-request
//	@Param			id	path	string	true	"Resource request ID"	Format(uuid)
//	@Success		204
//	@Failure		404	{object}	serializer.Response
//	@Router			/resource-requests/{id} [delete]
func (h *ResourceRequestHandler) DeleteResourceRequest(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		abort(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
