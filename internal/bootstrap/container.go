package bootstrap

import (
	"context"

	"github.com/pilotdata/project/internal/config"
	"github.com/pilotdata/project/internal/infra/blob"
	"github.com/pilotdata/project/internal/infra/cache"
	"github.com/pilotdata/project/internal/infra/db"
	"github.com/pilotdata/project/internal/infra/httpclient"
	"github.com/pilotdata/project/internal/infra/iam"
	"github.com/pilotdata/project/internal/infra/logger"
	"github.com/pilotdata/project/internal/infra/queue"
	"github.com/pilotdata/project/internal/modules/handler"
	"github.com/pilotdata/project/internal/modules/repo"
	"github.com/pilotdata/project/internal/modules/service"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level, cfg.Log.Format)
	})

	// DB, migrated on open when database.autoMigrate is set
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		return db.New(do.MustInvoke[*config.Config](i), do.MustInvoke[*zap.Logger](i))
	})

	// Redis, nil when no address is configured
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		return cache.New(do.MustInvoke[*config.Config](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*cache.ProjectCache, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.NewProjectCache(do.MustInvoke[*redis.Client](i), cfg.ProjectCacheTTL(), do.MustInvoke[*zap.Logger](i)), nil
	})

	// RabbitMQ Connection, nil when no url is configured
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		return queue.Dial(do.MustInvoke[*config.Config](i))
	})
	do.Provide(inj, func(i *do.Injector) (*queue.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return queue.NewPublisher(do.MustInvoke[*amqp.Connection](i), cfg.RabbitMQ.Exchange, do.MustInvoke[*zap.Logger](i)), nil
	})

	// S3
	do.Provide(inj, func(i *do.Injector) (*blob.Storage, error) {
		return blob.NewS3(context.Background(), do.MustInvoke[*config.Config](i))
	})

	// MinIO admin API, signed with the same credentials as S3
	do.Provide(inj, func(i *do.Injector) (*iam.PolicyClient, error) {
		cfg := do.MustInvoke[*config.Config](i)
		acfg, err := blob.AWSConfig(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
		endpoint, _ := blob.Endpoint(cfg.S3.Endpoint)
		return iam.NewPolicyClient(endpoint, cfg.S3.Region, acfg.Credentials, cfg.ServiceTimeout(), do.MustInvoke[*zap.Logger](i)), nil
	})

	// utility services
	do.Provide(inj, func(i *do.Injector) (*httpclient.AuthClient, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return httpclient.NewAuthClient(cfg.Services.AuthURL, cfg.ServiceTimeout(), do.MustInvoke[*zap.Logger](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*httpclient.MetadataClient, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return httpclient.NewMetadataClient(cfg.Services.MetadataURL, len(cfg.S3.ZonePrefixes), cfg.ServiceTimeout(), do.MustInvoke[*zap.Logger](i)), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ResourceRequestRepo, error) {
		return repo.NewResourceRequestRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.WorkbenchRepo, error) {
		return repo.NewWorkbenchRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.StorageManager, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewStorageManager(do.MustInvoke[*blob.Storage](i), cfg.S3, do.MustInvoke[*zap.Logger](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.PolicyManager, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewPolicyManager(do.MustInvoke[*iam.PolicyClient](i), cfg.S3.ZonePrefixes, do.MustInvoke[*zap.Logger](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.LogoUploader, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewLogoUploader(do.MustInvoke[*blob.Storage](i), cfg.S3.LogoBucket, cfg.Logo.Dimension, do.MustInvoke[*zap.Logger](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewProjectService(service.ProjectServiceDeps{
			Repo:      do.MustInvoke[repo.ProjectRepo](i),
			Storage:   do.MustInvoke[service.StorageManager](i),
			Policies:  do.MustInvoke[service.PolicyManager](i),
			Auth:      do.MustInvoke[*httpclient.AuthClient](i),
			Metadata:  do.MustInvoke[*httpclient.MetadataClient](i),
			Logo:      do.MustInvoke[service.LogoUploader](i),
			LogoLimit: cfg.Logo.SizeLimit,
			Cache:     do.MustInvoke[*cache.ProjectCache](i),
			Events:    do.MustInvoke[*queue.Publisher](i),
		}, do.MustInvoke[*zap.Logger](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ResourceRequestService, error) {
		return service.NewResourceRequestService(do.MustInvoke[repo.ResourceRequestRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.WorkbenchService, error) {
		return service.NewWorkbenchService(do.MustInvoke[repo.WorkbenchRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.HealthChecker, error) {
		return service.NewDBChecker(do.MustInvoke[*gorm.DB](i), do.MustInvoke[*zap.Logger](i)), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(
			do.MustInvoke[service.ProjectService](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ResourceRequestHandler, error) {
		return handler.NewResourceRequestHandler(do.MustInvoke[service.ResourceRequestService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.WorkbenchHandler, error) {
		return handler.NewWorkbenchHandler(do.MustInvoke[service.WorkbenchService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.HealthHandler, error) {
		return handler.NewHealthHandler(do.MustInvoke[service.HealthChecker](i)), nil
	})

	return inj
}
