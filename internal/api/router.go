package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nakkarenukadevi/mbbs-ui/internal/handler"
	"github.com/nakkarenukadevi/mbbs-ui/internal/labels"
	"github.com/nakkarenukadevi/mbbs-ui/internal/metrics"
	"github.com/nakkarenukadevi/mbbs-ui/internal/middleware"
	"github.com/nakkarenukadevi/mbbs-ui/internal/navstate"
	"github.com/nakkarenukadevi/mbbs-ui/internal/service"
	"github.com/nakkarenukadevi/mbbs-ui/internal/web"
)

// Dependencies 路由依赖
type Dependencies struct {
	Log      *zap.Logger
	Metrics  *metrics.Metrics
	Students *service.StudentService
	Codec    *navstate.Codec
	Labels   *labels.Formatter
	// Limiter guards the routes that reach the students API; nil disables it
	Limiter *middleware.RateLimiter
}

// SetupRouter 设置路由
func SetupRouter(deps Dependencies) (*gin.Engine, error) {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(deps.Log), gin.Recovery())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static()))

	limit := func(c *gin.Context) { c.Next() }
	if deps.Limiter != nil {
		limit = deps.Limiter.Middleware()
	}

	forms := handler.NewFormHandler(deps.Codec, deps.Metrics, deps.Log.Named("form"))
	results := handler.NewResultsHandler(deps.Students, deps.Codec, deps.Labels, deps.Metrics, deps.Log.Named("results"))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "mbbs-ui is running",
		})
	})
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	// 页面路由
	r.GET("/", forms.ShowForm)
	r.POST("/", forms.Submit)
	r.POST("/validate/score", forms.ValidateScore)
	r.GET(handler.ResultsPath, limit, results.ShowResults)

	// API 路由组
	api := r.Group("/api/v1")
	// Results depend on the visitor's cookie
	api.Use(func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	})
	{
		api.GET("/results", limit, results.GetResults)
	}

	return r, nil
}
