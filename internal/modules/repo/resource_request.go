package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/pilotdata/project/internal/modules/model"
	"gorm.io/gorm"
)

var ResourceRequestDescriptor = &Descriptor{
	Columns: []string{
		"id", "project_id", "user_id", "username", "email", "requested_for",
		"requested_at", "completed_at", "message",
	},
	Relations: map[string]Relation{
		"project": {Alias: "Project", Descriptor: ProjectDescriptor},
	},
}

// ResourceRequestSortFields are the fields resource requests can be sorted by.
var ResourceRequestSortFields = []string{
	"project_id", "user_id", "username", "email", "requested_for", "completed_at", "requested_at",
	"project.name", "project.code",
}

type ResourceRequestFiltering struct {
	Username    *string
	Email       *string
	ProjectCode *string
}

func (f ResourceRequestFiltering) IsPresent() bool {
	return f.Username != nil || f.Email != nil || f.ProjectCode != nil
}

func (f ResourceRequestFiltering) Apply(q *gorm.DB, d *Descriptor) *gorm.DB {
	if f.Username != nil && *f.Username != "" {
		q = ilike(q, d, "username", *f.Username)
	}
	if f.Email != nil && *f.Email != "" {
		q = ilike(q, d, "email", *f.Email)
	}
	if f.ProjectCode != nil && *f.ProjectCode != "" {
		// A subquery keeps the predicate valid for the count query, which
		// does not join projects.
		col, _ := d.Column("project_id")
		sub := q.Session(&gorm.Session{NewDB: true}).
			Model(&model.Project{}).
			Select("id").
			Where("code = ?", *f.ProjectCode)
		q = q.Where("? IN (?)", col, sub)
	}
	return q
}

type ResourceRequestRepo interface {
	Create(ctx context.Context, rr *model.ResourceRequest) (*model.ResourceRequest, error)
	RetrieveByID(ctx context.Context, id uuid.UUID) (*model.ResourceRequest, error)
	List(ctx context.Context) ([]model.ResourceRequest, error)
	Paginate(ctx context.Context, p Pagination, sorting Shaper, filtering Shaper) (*Page[model.ResourceRequest], error)
	Update(ctx context.Context, id uuid.UUID, changes Changes) (*model.ResourceRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type resourceRequestRepo struct {
	store *Store[model.ResourceRequest, *model.ResourceRequest]
}

func NewResourceRequestRepo(db *gorm.DB) ResourceRequestRepo {
	withProject := func(q *gorm.DB) *gorm.DB {
		return q.InnerJoins("Project")
	}
	return &resourceRequestRepo{
		store: NewStore[model.ResourceRequest](db, "resource request", ResourceRequestDescriptor,
			WithSelectScope(withProject)),
	}
}

func (r *resourceRequestRepo) Create(ctx context.Context, rr *model.ResourceRequest) (*model.ResourceRequest, error) {
	return r.store.Create(ctx, rr)
}

func (r *resourceRequestRepo) RetrieveByID(ctx context.Context, id uuid.UUID) (*model.ResourceRequest, error) {
	return r.store.RetrieveByID(ctx, id)
}

func (r *resourceRequestRepo) List(ctx context.Context) ([]model.ResourceRequest, error) {
	return r.store.List(ctx)
}

func (r *resourceRequestRepo) Paginate(ctx context.Context, p Pagination, sorting Shaper, filtering Shaper) (*Page[model.ResourceRequest], error) {
	return r.store.Paginate(ctx, p, sorting, filtering)
}

func (r *resourceRequestRepo) Update(ctx context.Context, id uuid.UUID, changes Changes) (*model.ResourceRequest, error) {
	return r.store.Update(ctx, id, changes)
}

func (r *resourceRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Delete(ctx, id)
}
