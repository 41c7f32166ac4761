package main

//	@title			Project API
//	@version		1.0
//	@description	Projects, resource requests and workbenches of the data platform.
//	@schemes		http https
//	@BasePath		/v1

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pilotdata/project/internal/bootstrap"
	"github.com/pilotdata/project/internal/config"
	"github.com/pilotdata/project/internal/infra/queue"
	"github.com/pilotdata/project/internal/modules/handler"
	"github.com/pilotdata/project/internal/router"
	"github.com/pilotdata/project/internal/telemetry"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer func() { _ = log.Sync() }()

	// fail fast on an unreachable database
	do.MustInvoke[*gorm.DB](inj)

	tp, err := telemetry.SetupTracing(cfg)
	if err != nil {
		log.Sugar().Warnw("failed to setup tracing, continuing without tracing", "err", err)
	} else if tp != nil {
		log.Sugar().Infow("OpenTelemetry tracing enabled", "endpoint", cfg.Telemetry.OtlpEndpoint)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetry.Shutdown(ctx); err != nil {
				log.Sugar().Errorw("failed to shutdown tracer", "err", err)
			}
		}()
	}

	// init gin
	gin.SetMode(cfg.App.Env)

	engine := router.NewRouter(router.RouterDeps{
		Config:                 cfg,
		Log:                    log,
		ProjectHandler:         do.MustInvoke[*handler.ProjectHandler](inj),
		ResourceRequestHandler: do.MustInvoke[*handler.ResourceRequestHandler](inj),
		WorkbenchHandler:       do.MustInvoke[*handler.WorkbenchHandler](inj),
		HealthHandler:          do.MustInvoke[*handler.HealthHandler](inj),
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}
	closeBackends(inj, log)
	log.Sugar().Info("server exited")
}

func closeBackends(inj *do.Injector, log *zap.Logger) {
	if err := do.MustInvoke[*queue.Publisher](inj).Close(); err != nil {
		log.Sugar().Warnw("close publisher", "err", err)
	}
	if conn := do.MustInvoke[*amqp.Connection](inj); conn != nil {
		if err := conn.Close(); err != nil {
			log.Sugar().Warnw("close rabbitmq", "err", err)
		}
	}
	if rdb := do.MustInvoke[*redis.Client](inj); rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Sugar().Warnw("close redis", "err", err)
		}
	}
	if sqlDB, err := do.MustInvoke[*gorm.DB](inj).DB(); err == nil {
		_ = sqlDB.Close()
	}
}
