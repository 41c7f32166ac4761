package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/pilotdata/project/docs"
	"github.com/pilotdata/project/internal/config"
	"github.com/pilotdata/project/internal/middleware"
	"github.com/pilotdata/project/internal/modules/handler"
	"github.com/pilotdata/project/internal/modules/serializer"
	"github.com/pilotdata/project/internal/telemetry"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config                 *config.Config
	Log                    *zap.Logger
	ProjectHandler         *handler.ProjectHandler
	ResourceRequestHandler *handler.ResourceRequestHandler
	WorkbenchHandler       *handler.WorkbenchHandler
	HealthHandler          *handler.HealthHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	serializer.SetLogger(d.Log)

	r := gin.New()
	r.Use(gin.Recovery())

	if telemetry.Enabled(d.Config.Telemetry) {
		r.Use(middleware.Tracing(d.Config.App.Name)...)
	}

	r.Use(middleware.ZapLogger(d.Log))

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/v1")
	{
		v1.GET("/health/", d.HealthHandler.Health)

		projects := v1.Group("/projects")
		{
			projects.GET("/", d.ProjectHandler.ListProjects)
			projects.POST("/", d.ProjectHandler.CreateProject)
			projects.GET("/:id_or_code", d.ProjectHandler.GetProject)
			projects.PATCH("/:id", d.ProjectHandler.UpdateProject)
			projects.DELETE("/:id", d.ProjectHandler.DeleteProject)
			projects.POST("/:id/logo", d.ProjectHandler.UploadLogo)
		}

		rr := v1.Group("/resource-requests")
		{
			rr.GET("/", d.ResourceRequestHandler.ListResourceRequests)
			rr.POST("/", d.ResourceRequestHandler.CreateResourceRequest)
			rr.GET("/:id", d.ResourceRequestHandler.GetResourceRequest)
			rr.PATCH("/:id", d.ResourceRequestHandler.UpdateResourceRequest)
			rr.DELETE("/:id", d.ResourceRequestHandler.DeleteResourceRequest)
		}

		workbenches := v1.Group("/workbenches")
		{
			workbenches.GET("/", d.WorkbenchHandler.ListWorkbenches)
			workbenches.POST("/", d.WorkbenchHandler.CreateWorkbench)
			workbenches.GET("/:id", d.WorkbenchHandler.GetWorkbench)
			workbenches.PATCH("/:id", d.WorkbenchHandler.UpdateWorkbench)
			workbenches.DELETE("/:id", d.WorkbenchHandler.DeleteWorkbench)
		}
	}
	return r
}
