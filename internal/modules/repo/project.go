package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pilotdata/project/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ProjectDescriptor = &Descriptor{
	Columns: []string{
		"id", "code", "name", "description", "logo_name", "created_at", "updated_at",
		"tags", "system_tags", "is_discoverable",
	},
}

// ProjectSortFields are the fields projects can be sorted by.
var ProjectSortFields = []string{"code", "name", "created_at"}

// ProjectFiltering narrows projects. Zero-valued fields do not filter.
type ProjectFiltering struct {
	Name           *string
	Code           *string
	Codes          []string
	Description    *string
	CreatedAt      *TimeRange
	Tags           []string
	IsDiscoverable *bool
	IDs            []uuid.UUID
}

// TimeRange is an inclusive [Start, End] interval.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

func (f ProjectFiltering) IsPresent() bool {
	return f.Name != nil || f.Code != nil || f.Codes != nil || f.Description != nil ||
		f.CreatedAt != nil || f.Tags != nil || f.IsDiscoverable != nil || f.IDs != nil
}

func (f ProjectFiltering) Apply(q *gorm.DB, d *Descriptor) *gorm.DB {
	if f.Name != nil && *f.Name != "" {
		q = ilike(q, d, "name", *f.Name)
	}
	if f.Code != nil && *f.Code != "" {
		q = ilike(q, d, "code", *f.Code)
	}
	if len(f.Codes) > 0 {
		col, _ := d.Column("code")
		q = q.Where(clause.IN{Column: col, Values: toAny(f.Codes)})
	}
	if f.Description != nil && *f.Description != "" {
		q = ilike(q, d, "description", *f.Description)
	}
	if f.CreatedAt != nil {
		col, _ := d.Column("created_at")
		q = q.Where("? BETWEEN ? AND ?", col, f.CreatedAt.Start, f.CreatedAt.End)
	}
	if len(f.Tags) > 0 {
		col, _ := d.Column("tags")
		q = q.Where("? @> ?", col, pq.StringArray(f.Tags))
	}
	if f.IsDiscoverable != nil {
		col, _ := d.Column("is_discoverable")
		q = q.Where(clause.Eq{Column: col, Value: *f.IsDiscoverable})
	}
	if len(f.IDs) > 0 {
		col, _ := d.Column("id")
		q = q.Where(clause.IN{Column: col, Values: toAny(f.IDs)})
	}
	return q
}

func toAny[T any](vs []T) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project) (*model.Project, error)
	RetrieveByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	RetrieveByCode(ctx context.Context, code string) (*model.Project, error)
	RetrieveByIDOrCode(ctx context.Context, idOrCode string) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	Paginate(ctx context.Context, p Pagination, sorting Shaper, filtering Shaper) (*Page[model.Project], error)
	Update(ctx context.Context, id uuid.UUID, changes Changes) (*model.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectRepo struct {
	db    *gorm.DB
	store *Store[model.Project, *model.Project]
}

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{
		db:    db,
		store: NewStore[model.Project](db, "project", ProjectDescriptor),
	}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	return r.store.Create(ctx, p)
}

func (r *projectRepo) RetrieveByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	return r.store.RetrieveByID(ctx, id)
}

func (r *projectRepo) RetrieveByCode(ctx context.Context, code string) (*model.Project, error) {
	return r.store.RetrieveBy(ctx, "code", code)
}

// RetrieveByIDOrCode treats idOrCode as an id when it parses as a UUID and as
// a project code otherwise.
func (r *projectRepo) RetrieveByIDOrCode(ctx context.Context, idOrCode string) (*model.Project, error) {
	if id, err := uuid.Parse(idOrCode); err == nil {
		return r.store.RetrieveByID(ctx, id)
	}
	return r.RetrieveByCode(ctx, idOrCode)
}

func (r *projectRepo) List(ctx context.Context) ([]model.Project, error) {
	return r.store.List(ctx)
}

func (r *projectRepo) Paginate(ctx context.Context, p Pagination, sorting Shaper, filtering Shaper) (*Page[model.Project], error) {
	return r.store.Paginate(ctx, p, sorting, filtering)
}

func (r *projectRepo) Update(ctx context.Context, id uuid.UUID, changes Changes) (*model.Project, error) {
	return r.store.Update(ctx, id, changes)
}

// Delete removes the project together with its resource requests and
// workbenches in one transaction.
func (r *projectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Atomic(ctx, func(tx *Store[model.Project, *model.Project]) error {
		if err := tx.db.Where("project_id = ?", id).Delete(&model.ResourceRequest{}).Error; err != nil {
			return mapError("resource request", err)
		}
		if err := tx.db.Where("project_id = ?", id).Delete(&model.Workbench{}).Error; err != nil {
			return mapError("workbench", err)
		}
		return tx.Delete(ctx, id)
	})
}
