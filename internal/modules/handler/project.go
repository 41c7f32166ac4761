package handler

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pilotdata/project/internal/config"
	"github.com/pilotdata/project/internal/modules/model"
	"github.com/pilotdata/project/internal/modules/repo"
	"github.com/pilotdata/project/internal/modules/serializer"
	"github.com/pilotdata/project/internal/modules/service"
	"github.com/pilotdata/project/internal/pkg/types"
)

type ProjectHandler struct {
	svc            service.ProjectService
	imageURLPrefix string
	logoBodyLimit  int64
}

func NewProjectHandler(s service.ProjectService, cfg *config.Config) *ProjectHandler {
	return &ProjectHandler{
		svc:            s,
		imageURLPrefix: strings.TrimRight(cfg.S3.ImageURLPrefix, "/"),
		// room for the encoded image plus the JSON around it
		logoBodyLimit: max(defaultBodyLimit, int64(base64.StdEncoding.EncodedLen(cfg.Logo.SizeLimit))+4096),
	}
}

type ProjectResp struct {
	ID             uuid.UUID `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	LogoName       *string   `json:"logo_name"`
	Tags           []string  `json:"tags"`
	SystemTags     []string  `json:"system_tags"`
	IsDiscoverable bool      `json:"is_discoverable"`
	CreatedAt      time.Time `json:"created_at"`
	ImageURL       *string   `json:"image_url"`
}

func (h *ProjectHandler) resp(p model.Project) ProjectResp {
	out := ProjectResp{
		ID:             p.ID,
		Code:           p.Code,
		Name:           p.Name,
		Description:    p.Description,
		LogoName:       p.LogoName,
		Tags:           nonNil(p.Tags),
		SystemTags:     nonNil(p.SystemTags),
		IsDiscoverable: p.IsDiscoverable,
		CreatedAt:      p.CreatedAt,
	}
	if p.LogoName != nil && *p.LogoName != "" {
		url := h.imageURLPrefix + "/" + *p.LogoName
		out.ImageURL = &url
	}
	return out
}

func nonNil(vs []string) []string {
	if vs == nil {
		return []string{}
	}
	return vs
}

type ListProjectsReq struct {
	PageParams
	SortParams
	Name           *string `form:"name" json:"name"`
	Code           *string `form:"code" json:"code"`
	CodeAny        string  `form:"code_any" json:"code_any" example:"alpha,beta"`
	Description    *string `form:"description" json:"description"`
	CreatedAtStart string  `form:"created_at_start" json:"created_at_start" example:"2024-01-01T00:00:00Z"`
	CreatedAtEnd   string  `form:"created_at_end" json:"created_at_end" example:"2024-12-31T23:59:59Z"`
	TagsAll        string  `form:"tags_all" json:"tags_all" example:"tag1,tag2"`
	IsDiscoverable *bool   `form:"is_discoverable" json:"is_discoverable"`
	IDs            string  `form:"ids" json:"ids"`
}

func (r ListProjectsReq) input() (service.ListInput, error) {
	sorting, err := r.sorting(repo.ProjectSortFields)
	if err != nil {
		return service.ListInput{}, err
	}

	f := repo.ProjectFiltering{
		Name:           r.Name,
		Code:           r.Code,
		Description:    r.Description,
		IsDiscoverable: r.IsDiscoverable,
	}
	if f.Codes, err = splitList(r.CodeAny, "code_any"); err != nil {
		return service.ListInput{}, err
	}
	if f.Tags, err = splitList(r.TagsAll, "tags_all"); err != nil {
		return service.ListInput{}, err
	}
	if f.IDs, err = splitIDs(r.IDs, "ids"); err != nil {
		return service.ListInput{}, err
	}
	if f.CreatedAt, err = timeRange(r.CreatedAtStart, r.CreatedAtEnd, "created_at"); err != nil {
		return service.ListInput{}, err
	}

	return service.ListInput{Pagination: r.pagination(), Sorting: sorting, Filtering: f}, nil
}

// ListProjects godoc
//
//	@Summary		List projects
//	@Description	List projects, filtered, sorted and paginated
//	@Tags			project
//	@Produce		json
//	@Param			name				query	string	false	"Name, substring or LIKE pattern"
//	@Param			code				query	string	false	"Code, substring or LIKE pattern"
//	@Param			code_any			query	string	false	"Comma separated list of exact codes"
//	@Param			description			query	string	false	"Description, substring or LIKE pattern"
//	@Param			created_at_start	query	string	false	"Created at lower bound (RFC3339)"
//	@Param			created_at_end		query	string	false	"Created at upper bound (RFC3339)"
//	@Param			tags_all			query	string	false	"Comma separated list of tags the project must all carry"
//	@Param			is_discoverable		query	boolean	false	"Discoverable flag"
//	@Param			ids					query	string	false	"Comma separated list of project ids"
//	@Param			sort_by				query	string	false	"Sort field"	Enums(code, name, created_at)
//	@Param			sort_order			query	string	false	"Sort order"	Enums(asc, desc)
//	@Param			page				query	integer	false	"Page number, starting at 0"
//	@Param			page_size			query	integer	false	"Page size, default 20"
//	@Success		200	{object}	serializer.Response{data=serializer.ListResponse[handler.ProjectResp]}
//	@Failure		422	{object}	serializer.Response{data=[]apperr.FieldError}
//	@Router			/projects/ [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	req := ListProjectsReq{}
	if err := bindQuery(c, &req); err != nil {
		abort(c, err)
		return
	}
	in, err := req.input()
	if err != nil {
		abort(c, err)
		return
	}

	page, err := h.svc.List(c.Request.Context(), in)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: serializer.NewList(page, h.resp)})
}

// GetProject godoc
//
//	@Summary		Get project
//	@Description	Get a project by its id or code
//	@Tags			project
//	@Produce		json
//	@Param			id_or_code	path	string	true	"Project ID or code"
//	@Success		200	{object}	serializer.Response{data=handler.ProjectResp}
//	@Failure		404	{object}	serializer.Response
//	@Router			/projects/{id_or_code} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id_or_code"))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: h.resp(*p)})
}

type CreateProjectReq struct {
	Code           string   `json:"code" binding:"required,min=3,max=32,projectcode" example:"indoctestproject"`
	Name           string   `json:"name" binding:"required,min=3,max=256" example:"Indoc Test Project"`
	Description    string   `json:"description" binding:"max=256"`
	LogoName       *string  `json:"logo_name" binding:"omitempty,max=40"`
	Tags           []string `json:"tags" binding:"omitempty,dive,max=256"`
	SystemTags     []string `json:"system_tags" binding:"omitempty,dive,max=256"`
	IsDiscoverable bool     `json:"is_discoverable"`
}

func (r *CreateProjectReq) trim() {
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	if r.LogoName != nil {
		v := strings.TrimSpace(*r.LogoName)
		r.LogoName = &v
	}
	r.Tags = trimAll(r.Tags)
}

// CreateProject godoc
//
//	@Summary		Create project
//	@Description	Create a project and provision its buckets, policies, groups, roles, permissions and admin folders
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.CreateProjectReq	true	"CreateProject payload"
//	@Success		201		{object}	serializer.Response{data=handler.ProjectResp}
//	@Failure		409		{object}	serializer.Response
//	@Failure		422		{object}	serializer.Response{data=[]apperr.FieldError}
//	@Failure		500		{object}	serializer.Response
//	@Router			/projects/ [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	req := CreateProjectReq{}
	if err := bindJSON(c, &req); err != nil {
		abort(c, err)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), service.CreateProjectInput{
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		LogoName:       req.LogoName,
		Tags:           req.Tags,
		SystemTags:     req.SystemTags,
		IsDiscoverable: req.IsDiscoverable,
	})
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: h.resp(*p)})
}

// UpdateProjectReq is a partial update; absent fields are left untouched.
// The code of a project never changes.
type UpdateProjectReq struct {
	Name           types.Optional[string]   `json:"name" swaggertype:"string"`
	Description    types.Optional[string]   `json:"description" swaggertype:"string"`
	LogoName       types.Optional[string]   `json:"logo_name" swaggertype:"string"`
	Tags           types.Optional[[]string] `json:"tags" swaggertype:"array,string"`
	SystemTags     types.Optional[[]string] `json:"system_tags" swaggertype:"array,string"`
	IsDiscoverable types.Optional[bool]     `json:"is_discoverable" swaggertype:"boolean"`
}

func (r UpdateProjectReq) Changes() (repo.Changes, error) {
	s := newChangeSet()
	s.str("name", r.Name, false, 3, 256)
	s.str("description", r.Description, false, 0, 256)
	s.str("logo_name", r.LogoName, true, 0, 40)
	value(s, "tags", r.Tags, false, func(v []string) any { return pq.StringArray(trimAll(v)) })
	value(s, "system_tags", r.SystemTags, false, func(v []string) any { return pq.StringArray(v) })
	value(s, "is_discoverable", r.IsDiscoverable, false, same[bool])
	return s.result()
}

// UpdateProject godoc
//
//	@Summary		Update project
//	@Description	Apply the fields present in the payload to a project
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Project ID"	Format(uuid)
//	@Param			payload	body		handler.UpdateProjectReq	true	"UpdateProject payload"
//	@Success		200		{object}	serializer.Response{data=handler.ProjectResp}
//	@Failure		404		{object}	serializer.Response
//	@Failure		422		{object}	serializer.Response{data=[]apperr.FieldError}
//	@Router			/projects/{id} [patch]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		abort(c, err)
		return
	}
	req := UpdateProjectReq{}
	if err := bindJSON(c, &req); err != nil {
		abort(c, err)
		return
	}
	changes, err := req.Changes()
	if err != nil {
		abort(c, err)
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, changes)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: h.resp(*p)})
}

// DeleteProject godoc
//
//	@Summary		Delete project
//	@Description	Delete a project with its resource requests and workbenches
//	@Tags			project
//	@Param			id	path	string	true	"Project ID"	Format(uuid)
//	@Success		204
//	@Failure		404	{object}	serializer.Response
//	@Router			/projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
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

type UploadLogoReq struct {
	Base64 string `json:"base64" binding:"required"`
}

// UploadLogo godoc
//
//	@Summary		Upload project logo
//	@Description	Upload a base64 encoded PNG, stored resized as {project_id}.png
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Project ID"	Format(uuid)
//	@Param			payload	body		handler.UploadLogoReq	true	"UploadLogo payload"
//	@Success		200		{object}	serializer.Response{data=handler.ProjectResp}
//	@Failure		404		{object}	serializer.Response
//	@Failure		422		{object}	serializer.Response{data=[]apperr.FieldError}
//	@Router			/projects/{id}/logo [post]
func (h *ProjectHandler) UploadLogo(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		abort(c, err)
		return
	}
	req := UploadLogoReq{}
	if err := bindJSONLimit(c, &req, h.logoBodyLimit); err != nil {
		abort(c, err)
		return
	}

	p, err := h.svc.UploadLogo(c.Request.Context(), id, req.Base64)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: h.resp(*p)})
}
