package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pilotdata/project/internal/infra/httpclient"
	"github.com/pilotdata/project/internal/infra/queue"
	"github.com/pilotdata/project/internal/modules/model"
	"github.com/pilotdata/project/internal/modules/repo"
	"github.com/pilotdata/project/internal/pkg/apperr"
	"go.uber.org/zap"
)

// AuthClient provisions identity resources, implemented by
// *httpclient.AuthClient.
type AuthClient interface {
	CreateUserGroups(ctx context.Context, projectCode string, description *string) error
	CreateUserRoles(ctx context.Context, projectCode string) error
	CreateDefaultPermissions(ctx context.Context, projectCode string) error
	GetPlatformAdmins(ctx context.Context) ([]httpclient.User, error)
}

// MetadataClient is implemented by *httpclient.MetadataClient.
type MetadataClient interface {
	CreateUsersNameFolders(ctx context.Context, users []httpclient.User, projectCode string) error
}

// ProjectCache is implemented by *cache.ProjectCache.
type ProjectCache interface {
	Get(ctx context.Context, idOrCode string) (*model.Project, bool)
	Set(ctx context.Context, p *model.Project)
	Fill(ctx context.Context, p *model.Project)
	Invalidate(ctx context.Context, p *model.Project)
}

// EventPublisher is implemented by *queue.Publisher.
type EventPublisher interface {
	PublishProjectEvent(ctx context.Context, event string, p *model.Project)
}

type CreateProjectInput struct {
	Code           string
	Name           string
	Description    string
	LogoName       *string
	Tags           []string
	SystemTags     []string
	IsDiscoverable bool
}

func (in CreateProjectInput) toModel() *model.Project {
	return &model.Project{
		Code:           in.Code,
		Name:           in.Name,
		Description:    in.Description,
		LogoName:       in.LogoName,
		Tags:           pq.StringArray(in.Tags),
		SystemTags:     pq.StringArray(in.SystemTags),
		IsDiscoverable: in.IsDiscoverable,
	}
}

type ListInput struct {
	Pagination repo.Pagination
	Sorting    repo.Shaper
	Filtering  repo.Shaper
}

type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput) (*model.Project, error)
	Get(ctx context.Context, idOrCode string) (*model.Project, error)
	List(ctx context.Context, in ListInput) (*repo.Page[model.Project], error)
	Update(ctx context.Context, id uuid.UUID, changes repo.Changes) (*model.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadLogo(ctx context.Context, id uuid.UUID, encoded string) (*model.Project, error)
}

type projectService struct {
	r         repo.ProjectRepo
	storage   StorageManager
	policies  PolicyManager
	auth      AuthClient
	metadata  MetadataClient
	logo      LogoUploader
	logoLimit int
	cache     ProjectCache
	events    EventPublisher
	log       *zap.Logger
}

type ProjectServiceDeps struct {
	Repo      repo.ProjectRepo
	Storage   StorageManager
	Policies  PolicyManager
	Auth      AuthClient
	Metadata  MetadataClient
	Logo      LogoUploader
	LogoLimit int
	Cache     ProjectCache
	Events    EventPublisher
}

func NewProjectService(d ProjectServiceDeps, log *zap.Logger) ProjectService {
	s := &projectService{
		r:         d.Repo,
		storage:   d.Storage,
		policies:  d.Policies,
		auth:      d.Auth,
		metadata:  d.Metadata,
		logo:      d.Logo,
		logoLimit: d.LogoLimit,
		cache:     d.Cache,
		events:    d.Events,
		log:       log,
	}
	if s.cache == nil {
		s.cache = noCache{}
	}
	if s.events == nil {
		s.events = noEvents{}
	}
	return s
}

// Create inserts the project and provisions its external resources in
// order. When provisioning fails every compensation is attempted and the
// caller gets a generic Unhandled error; the failing step is only logged.
func (s *projectService) Create(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	p, err := s.r.Create(ctx, in.toModel())
	if err != nil {
		return nil, err
	}

	if err := s.provision(ctx, p); err != nil {
		s.log.Error("project provisioning failed, rolling back",
			zap.String("project_id", p.ID.String()),
			zap.String("code", p.Code),
			zap.Error(err))
		s.rollback(context.WithoutCancel(ctx), p)
		return nil, apperr.Unhandled("unable to create project", nil)
	}

	s.cache.Set(ctx, p)
	s.events.PublishProjectEvent(ctx, queue.EventProjectCreated, p)
	return p, nil
}

func (s *projectService) provision(ctx context.Context, p *model.Project) error {
	if err := s.storage.CreateBucketsForProject(ctx, p.Code); err != nil {
		return fmt.Errorf("create buckets: %w", err)
	}
	if err := s.policies.CreatePoliciesForProject(ctx, p.Code); err != nil {
		return fmt.Errorf("create policies: %w", err)
	}
	description := p.Description
	if err := s.auth.CreateUserGroups(ctx, p.Code, &description); err != nil {
		return fmt.Errorf("create user groups: %w", err)
	}
	if err := s.auth.CreateUserRoles(ctx, p.Code); err != nil {
		return fmt.Errorf("create user roles: %w", err)
	}
	if err := s.auth.CreateDefaultPermissions(ctx, p.Code); err != nil {
		return fmt.Errorf("create default permissions: %w", err)
	}
	admins, err := s.auth.GetPlatformAdmins(ctx)
	if err != nil {
		return fmt.Errorf("get platform admins: %w", err)
	}
	if err := s.metadata.CreateUsersNameFolders(ctx, admins, p.Code); err != nil {
		return fmt.Errorf("create name folders: %w", err)
	}
	return nil
}

// rollback undoes provisioning in reverse order. A failing compensation is
// logged and does not stop the ones after it.
func (s *projectService) rollback(ctx context.Context, p *model.Project) {
	fields := []zap.Field{zap.String("project_id", p.ID.String()), zap.String("code", p.Code)}

	if err := s.policies.RollbackPoliciesForProject(ctx, p.Code); err != nil {
		s.log.Error("rollback: unable to remove policies", append(fields, zap.Error(err))...)
	}
	if err := s.storage.RemoveBucketsForProject(ctx, p.Code); err != nil {
		s.log.Error("rollback: unable to remove buckets", append(fields, zap.Error(err))...)
	}
	if err := s.r.Delete(ctx, p.ID); err != nil {
		s.log.Error("rollback: unable to delete project", append(fields, zap.Error(err))...)
	}
	s.cache.Invalidate(ctx, p)
}

func (s *projectService) Get(ctx context.Context, idOrCode string) (*model.Project, error) {
	if p, ok := s.cache.Get(ctx, idOrCode); ok {
		return p, nil
	}
	p, err := s.r.RetrieveByIDOrCode(ctx, idOrCode)
	if err != nil {
		return nil, err
	}
	s.cache.Fill(ctx, p)
	return p, nil
}

func (s *projectService) List(ctx context.Context, in ListInput) (*repo.Page[model.Project], error) {
	return s.r.Paginate(ctx, in.Pagination, in.Sorting, in.Filtering)
}

func (s *projectService) Update(ctx context.Context, id uuid.UUID, changes repo.Changes) (*model.Project, error) {
	p, err := s.r.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, p)
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.r.RetrieveByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.r.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, p)
	s.events.PublishProjectEvent(ctx, queue.EventProjectDeleted, p)
	return nil
}

// LogoName is the object key of a project's logo.
func LogoName(id uuid.UUID) string { return id.String() + ".png" }

// UploadLogo validates and stores the logo, then records it on the project.
// The project is left untouched unless the upload succeeded.
func (s *projectService) UploadLogo(ctx context.Context, id uuid.UUID, encoded string) (*model.Project, error) {
	raw, err := DecodeLogo(encoded, s.logoLimit)
	if err != nil {
		return nil, err
	}
	if _, err := s.r.RetrieveByID(ctx, id); err != nil {
		return nil, err
	}

	name := LogoName(id)
	if err := s.logo.ConvertAndUpload(ctx, raw, name); err != nil {
		return nil, err
	}

	p, err := s.r.Update(ctx, id, repo.Changes{"logo_name": name})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, p)
	return p, nil
}

type noCache struct{}

func (noCache) Get(context.Context, string) (*model.Project, bool) { return nil, false }
func (noCache) Set(context.Context, *model.Project) {}
func (noCache) Fill(context.Context, *model.Project) {}
func (noCache) Invalidate(context.Context, *model.Project) {}

type noEvents struct{}

func (noEvents) PublishProjectEvent(context.Context, string, *model.Project) {}
