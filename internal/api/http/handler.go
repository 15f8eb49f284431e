package apiHttp

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/kala-yatra/backend/docs"
	internalV1 "github.com/kala-yatra/backend/internal/api/http/internal/v1"
	"github.com/kala-yatra/backend/internal/config"
	"github.com/kala-yatra/backend/internal/service"
	"github.com/kala-yatra/backend/pkg/limiter"
	"github.com/kala-yatra/backend/pkg/logger"
	"github.com/kala-yatra/backend/pkg/validator"
)

type Handler struct {
	services *service.Services
	config   *config.Config
	gatherer prometheus.Gatherer
}

func NewHandlers(services *service.Services, cfg *config.Config, gatherer prometheus.Gatherer) *Handler {
	return &Handler{
		services: services,
		config:   cfg,
		gatherer: gatherer,
	}
}

func (h *Handler) Init() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	validator.RegisterGinValidator()

	router.Use(
		ginzap.Ginzap(logger.Logger(), time.RFC3339, true),
		ginzap.RecoveryWithZap(logger.Logger(), true),
		limiter.Limit(h.config.Limiter.RPS, h.config.Limiter.Burst, h.config.Limiter.TTL),
		corsMiddleware(h.config.HttpServer.AllowedOrigins),
	)

	if h.config.HttpServer.SwaggerEnabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.NewHandler(), ginSwagger.InstanceName("internal")))
	}

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))

	h.initAPI(router)

	return router
}

func (h *Handler) initAPI(router *gin.Engine) {
	internalHandlersV1 := internalV1.NewHandler(h.services, h.config)
	api := router.Group("/api")
	internalHandlersV1.Init(api)
}
