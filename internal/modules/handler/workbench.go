package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pilotdata/project/internal/modules/model"
	"github.com/pilotdata/project/internal/modules/repo"
	"github.com/pilotdata/project/internal/modules/serializer"
	"github.com/pilotdata/project/internal/modules/service"
	"github.com/pilotdata/project/internal/pkg/apperr"
	"github.com/pilotdata/project/internal/pkg/types"
)

type WorkbenchHandler struct {
	svc service.WorkbenchService
}

func NewWorkbenchHandler(s service.WorkbenchService) *WorkbenchHandler {
	return &WorkbenchHandler{svc: s}
}

type ListWorkbenchesReq struct {
	PageParams
	SortParams
	ProjectID string `form:"project_id" json:"project_id"`
}

func (r ListWorkbenchesReq) filtering() (repo.WorkbenchFiltering, error) {
	if r.ProjectID == "" {
		return repo.WorkbenchFiltering{}, nil
	}
	id, err := uuid.Parse(r.ProjectID)
	if err != nil {
		return repo.WorkbenchFiltering{}, apperr.Validation("value is not a valid uuid", "query", "project_id")
	}
	return repo.WorkbenchFiltering{ProjectID: &id}, nil
}

// ListWorkbenches godoc
//
//	@Summary		List workbenches
//	@Tags			workbench
//	@Produce		json
//	@Param			project_id	query	string	false	"Project ID"	Format(uuid)
//	@Param			sort_by		query	string	false	"Sort field"	Enums(project_id, resource, deployed_at, deployed_by_user_id)
//	@Param			sort_order	query	string	false	"Sort order"	Enums(asc, desc)
//	@Param			page		query	integer	false	"Page number, starting at 0"
//	@Param			page_size	query	integer	false	"Page size, default 20"
//	@Success		200	{object}	serializer.Response{data=serializer.ListResponse[model.Workbench]}
//	@Failure		422	{object}	serializer.Response{data=[]apperr.FieldError}
//	@Router			/workbenches/ [get]
func (h *WorkbenchHandler) ListWorkbenches(c *gin.Context) {
	req := ListWorkbenchesReq{}
	if err := bindQuery(c, &req); err != nil {
		abort(c, err)
		return
	}
	sorting, err := req.sorting(repo.WorkbenchSortFields)
	if err != nil {
		abort(c, err)
		return
	}
	filtering, err := req.filtering()
	if err != nil {
		abort(c, err)
		return
	}

	page, err := h.svc.List(c.Request.Context(), service.ListInput{
		Pagination: req.pagination(),
		Sorting:    sorting,
		Filtering:  filtering,
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewList(page, func(w model.Workbench) model.Workbench { return w })})
}

// GetWorkbench godoc
//
//	@Summary		Get workbench
//	@Tags			workbench
//	@Produce		json
//	@Param			id	path		string	true	"Workbench ID"	Format(uuid)
//	@Success		200	{object}	serializer.Response{data=model.Workbench}
//	@Failure		404	{object}	serializer.Response
//	@Router			/workbenches/{id} [get]
func (h *WorkbenchHandler) GetWorkbench(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		abort(c, err)
		return
	}

	w, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: w})
}

type CreateWorkbenchReq struct {
	ProjectID        uuid.UUID `json:"project_id" binding:"required" swaggertype:"string" format:"uuid"`
	Resource         string    `json:"resource" example:"guacamole"`
	DeployedByUserID string    `json:"deployed_by_user_id"`
}

func (r *CreateWorkbenchReq) trim() {
	r.Resource = strings.TrimSpace(r.Resource)
	r.DeployedByUserID = strings.TrimSpace(r.DeployedByUserID)
}

// CreateWorkbench godoc
//
//	@Summary		Create workbench
//	@Tags			workbench
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.CreateWorkbenchReq	true	"CreateWorkbench payload"
//	@Success		201		{object}	serializer.Response{data=model.Workbench}
//	@Failure		404		{object}	serializer.Response
//	@Failure		422		{object}	serializer.Response{data=[]apperr.FieldError}
//	@Router			/workbenches/ [post]
func (h *WorkbenchHandler) CreateWorkbench(c *gin.Context) {
	req := CreateWorkbenchReq{}
	if err := bindJSON(c, &req); err != nil {
		abort(c, err)
		return
	}

	w, err := h.svc.Create(c.Request.Context(), &model.Workbench{
		ProjectID:        req.ProjectID,
		Resource:         req.Resource,
		DeployedByUserID: req.DeployedByUserID,
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: w})
}

type UpdateWorkbenchReq struct {
	ProjectID        types.Optional[uuid.UUID] `json:"project_id" swaggertype:"string" format:"uuid"`
	Resource         types.Optional[string]    `json:"resource" swaggertype:"string"`
	DeployedByUserID types.Optional[string]    `json:"deployed_by_user_id" swaggertype:"string"`
}

func (r UpdateWorkbenchReq) Changes() (repo.Changes, error) {
	s := newChangeSet()
	value(s, "project_id", r.ProjectID, false, same[uuid.UUID])
	s.str("resource", r.Resource, false, 0, 256)
	s.str("deployed_by_user_id", r.DeployedByUserID, false, 0, 256)
	return s.result()
}

// UpdateWorkbench godoc
//
//	@Summary		Update workbench
//	@Tags			workbench
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Workbench ID"	Format(uuid)
//	@Param			payload	body		handler.UpdateWorkbenchReq	true	"UpdateWorkbench payload"
//	@Success		200		{object}	serializer.Response{data=model.Workbench}
//	@Failure		404		{object}	serializer.Response
//	@Failure		422		{object}	serializer.Response{data=[]apperr.FieldError}
//	@Router			/workbenches/{id} [patch]
func (h *WorkbenchHandler) UpdateWorkbench(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		abort(c, err)
		return
	}
	req := UpdateWorkbenchReq{}
	if err := bindJSON(c, &req); err != nil {
		abort(c, err)
		return
	}
	changes, err := req.Changes()
	if err != nil {
		abort(c, err)
		return
	}

	w, err := h.svc.Update(c.Request.Context(), id, changes)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: w})
}

// DeleteWorkbench godoc
//
//	@Summary		Delete workbench
//	@Tags			workbench
//	@Param			id	path	string	true	"Workbench ID"	Format(uuid)
//	@Success		204
//	@Failure		404	{object}	serializer.Response
//	@Router			/workbenches/{id} [delete]
func (h *WorkbenchHandler) DeleteWorkbench(c *gin.Context) {
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
