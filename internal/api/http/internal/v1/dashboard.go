package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kala-yatra/backend/internal/service"
)

func (h *Handler) initDashboardRoutes(api *gin.RouterGroup) {
	api.GET("/dashboard", h.userIdentityMiddleware, h.dashboard)
	api.GET("/registrations/:id/receipt", h.userIdentityMiddleware, h.receipt)
}

type dashboardResponse struct {
	Registrations []service.DashboardEntry `json:"registrations"`
}

// @Summary Dashboard
// @Tags Dashboard
// @Description Registrations of the signed-in email with statuses derived from their latest payment
// @ModuleID dashboard
// @Produce json
// @Success 200 {object} dashboardResponse
// @Failure 401 {object} ErrorStruct
// @Security UserAuth
// @Router /dashboard [get]
func (h *Handler) dashboard(c *gin.Context) {
	entries, err := h.services.Dashboard.List(c.Request.Context(), mustSessionUser(c))
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboardResponse{Registrations: entries})
}

// @Summary Registration receipt
// @Tags Dashboard
// @ModuleID receipt
// @Produce application/pdf
// @Param id path string true "registration id"
// @Success 200
// @Failure 404 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 503 {object} ErrorStruct
// @Security UserAuth
// @Router /registrations/{id}/receipt [get]
func (h *Handler) receipt(c *gin.Context) {
	registrationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	doc, err := h.services.Receipts.Render(c.Request.Context(), mustSessionUser(c), registrationID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="kala-yatra-receipt-%s.pdf"`, registrationID))
	c.Data(http.StatusOK, "application/pdf", doc)
}
