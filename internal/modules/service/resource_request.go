package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pilotdata/project/internal/modules/model"
	"github.com/pilotdata/project/internal/modules/repo"
)

type ResourceRequestService interface {
	Create(ctx context.Context, rr *model.ResourceRequest) (*model.ResourceRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*model.ResourceRequest, error)
	List(ctx context.Context, in ListInput) (*repo.Page[model.ResourceRequest], error)
	Update(ctx context.Context, id uuid.UUID, changes repo.Changes) (*model.ResourceRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type resourceRequestService struct{ r repo.ResourceRequestRepo }

func NewResourceRequestService(r repo.ResourceRequestRepo) ResourceRequestService {
	return &resourceRequestService{r: r}
}

func (s *resourceRequestService) Create(ctx context.Context, rr *model.ResourceRequest) (*model.ResourceRequest, error) {
	return s.r.Create(ctx, rr)
}

func (s *resourceRequestService) Get(ctx context.Context, id uuid.UUID) (*model.ResourceRequest, error) {
	return s.r.RetrieveByID(ctx, id)
}

func (s *resourceRequestService) List(ctx context.Context, in ListInput) (*repo.Page[model.ResourceRequest], error) {
	return s.r.Paginate(ctx, in.Pagination, in.Sorting, in.Filtering)
}

func (s *resourceRequestService) Update(ctx context.Context, id uuid.UUID, changes repo.Changes) (*model.ResourceRequest, error) {
	return s.r.Update(ctx, id, changes)
}

func (s *resourceRequestService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.r.Delete(ctx, id)
}
