package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pilotdata/project/internal/modules/model"
	"github.com/pilotdata/project/internal/modules/repo"
)

type WorkbenchService interface {
	Create(ctx context.Context, w *model.Workbench) (*model.Workbench, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Workbench, error)
	List(ctx context.Context, in ListInput) (*repo.Page[model.Workbench], error)
	Update(ctx context.Context, id uuid.UUID, changes repo.Changes) (*model.Workbench, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type workbenchService struct{ r repo.WorkbenchRepo }

func NewWorkbenchService(r repo.WorkbenchRepo) WorkbenchService {
	return &workbenchService{r: r}
}

func (s *workbenchService) Create(ctx context.Context, w *model.Workbench) (*model.Workbench, error) {
	return s.r.Create(ctx, w)
}

func (s *workbenchService) Get(ctx context.Context, id uuid.UUID) (*model.Workbench, error) {
	return s.r.RetrieveByID(ctx, id)
}

func (s *workbenchService) List(ctx context.Context, in ListInput) (*repo.Page[model.Workbench], error) {
	return s.r.Paginate(ctx, in.Pagination, in.Sorting, in.Filtering)
}

func (s *workbenchService) Update(ctx context.Context, id uuid.UUID, changes repo.Changes) (*model.Workbench, error) {
	return s.r.Update(ctx, id, changes)
}

func (s *workbenchService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.r.Delete(ctx, id)
}
