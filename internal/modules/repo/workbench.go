package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/pilotdata/project/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var WorkbenchDescriptor = &Descriptor{
	Columns: []string{"id", "project_id", "resource", "deployed_at", "deployed_by_user_id"},
}

var WorkbenchSortFields = []string{"project_id", "resource", "deployed_at", "deployed_by_user_id"}

type WorkbenchFiltering struct {
	ProjectID *uuid.UUID
}

func (f WorkbenchFiltering) IsPresent() bool { return f.ProjectID != nil }

func (f WorkbenchFiltering) Apply(q *gorm.DB, d *Descriptor) *gorm.DB {
	if f.ProjectID != nil {
		col, _ := d.Column("project_id")
		q = q.Where(clause.Eq{Column: col, Value: *f.ProjectID})
	}
	return q
}

type WorkbenchRepo interface {
	Create(ctx context.Context, w *model.Workbench) (*model.Workbench, error)
	RetrieveByID(ctx context.Context, id uuid.UUID) (*model.Workbench, error)
	List(ctx context.Context) ([]model.Workbench, error)
	Paginate(ctx context.Context, p Pagination, sorting Shaper, filtering Shaper) (*Page[model.Workbench], error)
	Update(ctx context.Context, id uuid.UUID, changes Changes) (*model.Workbench, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type workbenchRepo struct {
	store *Store[model.Workbench, *model.Workbench]
}

func NewWorkbenchRepo(db *gorm.DB) WorkbenchRepo {
	return &workbenchRepo{store: NewStore[model.Workbench](db, "workbench", WorkbenchDescriptor)}
}

func (r *workbenchRepo) Create(ctx context.Context, w *model.Workbench) (*model.Workbench, error) {
	return r.store.Create(ctx, w)
}

func (r *workbenchRepo) RetrieveByID(ctx context.Context, id uuid.UUID) (*model.Workbench, error) {
	return r.store.RetrieveByID(ctx, id)
}

func (r *workbenchRepo) List(ctx context.Context) ([]model.Workbench, error) {
	return r.store.List(ctx)
}

func (r *workbenchRepo) Paginate(ctx context.Context, p Pagination, sorting Shaper, filtering Shaper) (*Page[model.Workbench], error) {
	return r.store.Paginate(ctx, p, sorting, filtering)
}

func (r *workbenchRepo) Update(ctx context.Context, id uuid.UUID, changes Changes) (*model.Workbench, error) {
	return r.store.Update(ctx, id, changes)
}

func (r *workbenchRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Delete(ctx, id)
}
