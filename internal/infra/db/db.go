package db

import (
	"fmt"
	"time"

	"github.com/pilotdata/project/internal/config"
	"github.com/pilotdata/project/internal/modules/model"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// GormConfig returns the gorm settings every connection uses. Tables live in
// the configured schema.
func GormConfig(cfg config.DBCfg, log *zap.Logger) *gorm.Config {
	level := gormlogger.Warn
	if cfg.EchoSQL {
		level = gormlogger.Info
	}
	return &gorm.Config{
		NamingStrategy: schema.NamingStrategy{TablePrefix: cfg.Schema + "."},
		TranslateError: true,
		Logger: gormlogger.New(zap.NewStdLog(log.Named("gorm")), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

func New(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	d, err := gorm.Open(postgres.Open(cfg.Database.DSN), GormConfig(cfg.Database, log))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := d.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Database.MaxOpen > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpen)
	}
	if cfg.Database.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdle)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if cfg.Database.AutoMigrate {
		if err := Migrate(d, cfg.Database.Schema); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Migrate creates the schema and brings the tables up to date.
func Migrate(d *gorm.DB, schemaName string) error {
	if err := d.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %q", schemaName)).Error; err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if err := d.AutoMigrate(&model.Project{}, &model.ResourceRequest{}, &model.Workbench{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
