package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HealthChecker interface {
	IsOnline(ctx context.Context) bool
}

// DBChecker reports whether the database answers queries.
type DBChecker struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewDBChecker(db *gorm.DB, log *zap.Logger) *DBChecker {
	return &DBChecker{db: db, log: log}
}

func (c *DBChecker) IsOnline(ctx context.Context) bool {
	if err := c.db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		c.log.Error("database is not reachable", zap.Error(err))
		return false
	}
	return true
}
