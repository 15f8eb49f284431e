package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/kala-yatra/backend/internal/config"
	"github.com/kala-yatra/backend/internal/service"
)

// @title Kala Yatra API
// @version 1.0
// @description Registration and manual UPI payment verification for the Kala Yatra art competition.

// @BasePath /api/v1

// @securityDefinitions.apikey UserAuth
// @in header
// @name Authorization

type Handler struct {
	services *service.Services
	config   *config.Config
}

func NewHandler(services *service.Services, config *config.Config) *Handler {
	return &Handler{
		services: services,
		config:   config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1", h.sessionMiddleware)

	h.initAuthRoutes(v1)
	h.initWizardRoutes(v1)
	h.initPaymentRoutes(v1)
	h.initDashboardRoutes(v1)
}
