package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pilotdata/project/internal/config"
	"github.com/pilotdata/project/internal/infra/blob"
	"github.com/pilotdata/project/internal/pkg/apperr"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// BucketStore is the object storage backend, implemented by *blob.Storage.
type BucketStore interface {
	CreateBucket(ctx context.Context, name string) error
	EnableVersioning(ctx context.Context, name string) error
	EnableEncryption(ctx context.Context, name string) error
	RemoveBucket(ctx context.Context, name string) error
}

// StorageManager owns the per-zone buckets of projects.
type StorageManager interface {
	BucketNames(code string) []string
	CreateBucket(ctx context.Context, name string) error
	CreateBucketsForProject(ctx context.Context, code string) error
	RemoveBucket(ctx context.Context, name string) error
	RemoveBucketsForProject(ctx context.Context, code string) error
}

type storageManager struct {
	store      BucketStore
	prefixes   []string
	versioning bool
	encryption bool
	log        *zap.Logger
}

func NewStorageManager(store BucketStore, cfg config.S3Cfg, log *zap.Logger) StorageManager {
	return &storageManager{
		store:      store,
		prefixes:   cfg.ZonePrefixes,
		versioning: !cfg.GatewayEnabled,
		encryption: cfg.BucketEncryptionEnabled,
		log:        log,
	}
}

// BucketNames returns "{prefix}-{code}" for every zone, in zone order.
func (s *storageManager) BucketNames(code string) []string {
	return lo.Map(s.prefixes, func(prefix string, _ int) string {
		return prefix + "-" + code
	})
}

// CreateBucket creates the bucket and applies versioning and encryption as
// configured. A failing step leaves the bucket in place.
func (s *storageManager) CreateBucket(ctx context.Context, name string) error {
	s.log.Info("creating bucket", zap.String("bucket", name))
	if err := s.store.CreateBucket(ctx, name); err != nil {
		return apperr.Unhandled(fmt.Sprintf("unable to create bucket %s", name), err)
	}

	if s.versioning {
		if err := s.store.EnableVersioning(ctx, name); err != nil {
			return apperr.Unhandled(fmt.Sprintf("unable to enable versioning for %s", name), err)
		}
	} else {
		s.log.Warn("s3 gateway is enabled, versioning is left to the gateway", zap.String("bucket", name))
	}

	if s.encryption {
		if err := s.store.EnableEncryption(ctx, name); err != nil {
			return apperr.Unhandled(fmt.Sprintf("unable to enable encryption for %s", name), err)
		}
	} else {
		s.log.Warn("bucket encryption is disabled", zap.String("bucket", name))
	}
	return nil
}

func (s *storageManager) CreateBucketsForProject(ctx context.Context, code string) error {
	s.log.Info("creating buckets for project", zap.String("code", code))
	for _, name := range s.BucketNames(code) {
		if err := s.CreateBucket(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// RemoveBucket deletes the bucket. A bucket that does not exist counts as
// removed.
func (s *storageManager) RemoveBucket(ctx context.Context, name string) error {
	s.log.Info("removing bucket", zap.String("bucket", name))
	err := s.store.RemoveBucket(ctx, name)
	if errors.Is(err, blob.ErrBucketNotFound) {
		s.log.Info("bucket is already gone", zap.String("bucket", name))
		return nil
	}
	if err != nil {
		return apperr.Unhandled(fmt.Sprintf("unable to remove bucket %s", name), err)
	}
	return nil
}

// RemoveBucketsForProject removes every zone bucket of the project and
// returns the first failure after trying all of them.
func (s *storageManager) RemoveBucketsForProject(ctx context.Context, code string) error {
	s.log.Info("removing buckets for project", zap.String("code", code))
	var first error
	for _, name := range s.BucketNames(code) {
		if err := s.RemoveBucket(ctx, name); err != nil && first == nil {
			first = err
		}
	}
	return first
}
