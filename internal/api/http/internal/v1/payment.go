package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kala-yatra/backend/internal/domain"
	"github.com/kala-yatra/backend/internal/service"
	"github.com/kala-yatra/backend/pkg/logger"
)

const paymentCreatedMessage = "Payment record created successfully"

func (h *Handler) initPaymentRoutes(api *gin.RouterGroup) {
	api.POST("/create-payment", h.createPayment)
	api.POST("/verify-payment", h.verifyPayment)

	payments := api.Group("/payments", h.userIdentityMiddleware)
	payments.GET("/:id", h.paymentView)
	payments.GET("/:id/events", h.paymentEvents)
	payments.POST("/:id/self-report", h.selfReport)
}

type createPaymentRequest struct {
	RegistrationID string `json:"registrationId" binding:"required,uuid"`
	OrderID        string `json:"orderId" binding:"required,max=64"`
	ExpectedAmount int64  `json:"expectedAmount" binding:"required"`
}

type createPaymentResponse struct {
	Success   bool      `json:"success"`
	PaymentID uuid.UUID `json:"paymentId"`
	OrderID   string    `json:"orderId"`
	Message   string    `json:"message"`
}

// @Summary Create payment record
// @Tags Payments
// @Description Records a pending payment for a registration
// @ModuleID createPayment
// @Accept json
// @Produce json
// @Param input body createPaymentRequest true "payment"
// @Success 200 {object} createPaymentResponse
// @Failure 400 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /create-payment [post]
func (h *Handler) createPayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, MissingFieldsCode)
		return
	}

	payment, err := h.services.Payments.Create(c.Request.Context(), service.CreatePaymentInput{
		RegistrationID: uuid.MustParse(req.RegistrationID),
		OrderID:        req.OrderID,
		ExpectedAmount: req.ExpectedAmount,
	})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, createPaymentResponse{
		Success:   true,
		PaymentID: payment.ID,
		OrderID:   payment.OrderID,
		Message:   paymentCreatedMessage,
	})
}

// verifyPaymentRequest keeps the id and amount raw so that their shape is
// judged after the admin secret.
type verifyPaymentRequest struct {
	RegistrationID json.RawMessage `json:"registrationId" swaggertype:"string"`
	PaidAmount     json.RawMessage `json:"paidAmount" swaggertype:"number"`
	AdminSecret    string          `json:"adminSecret"`
}

type verifyPaymentResponse struct {
	Verified bool                 `json:"verified"`
	Message  string               `json:"message"`
	Status   domain.PaymentStatus `json:"status,omitempty"`
}

// @Summary Verify payment
// @Tags Payments
// @Description Without adminSecret reports the status of the latest payment. With it, verifies
// @Description the payment when paidAmount matches the verification amount and rejects it otherwise.
// @ModuleID verifyPayment
// @Accept json
// @Produce json
// @Param input body verifyPaymentRequest true "verification"
// @Success 200 {object} verifyPaymentResponse
// @Failure 400 {object} ErrorStruct
// @Failure 403 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /verify-payment [post]
func (h *Handler) verifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, MissingFieldsCode)
		return
	}

	paid, ok := parsePaidAmount(req.PaidAmount)

	result, err := h.services.Payments.Verify(c.Request.Context(), service.VerifyPaymentInput{
		RegistrationID:      parseRegistrationID(req.RegistrationID),
		PaidAmount:          paid,
		PaidAmountMalformed: !ok,
		AdminSecret:         req.AdminSecret,
	})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, verifyPaymentResponse{
		Verified: result.Verified,
		Message:  result.Message,
		Status:   result.Status,
	})
}

// parseRegistrationID returns uuid.Nil for anything but a uuid string.
// The service reports it as a missing field after the admin secret check.
func parseRegistrationID(raw json.RawMessage) uuid.UUID {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// parsePaidAmount accepts any JSON number. An absent or null amount is
// (nil, true), a string or other non-number is (nil, false).
func parsePaidAmount(raw json.RawMessage) (*float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, true
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return &v, true
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, InvalidRegistrationIDCode)
		return uuid.Nil, false
	}
	return id, true
}

// @Summary Payment details
// @Tags Payments
// @Description UPI link, QR code and display mode for the latest payment of a registration
// @ModuleID paymentView
// @Produce json
// @Param id path string true "registration id"
// @Success 200 {object} service.PaymentView
// @Failure 404 {object} ErrorStruct
// @Security UserAuth
// @Router /payments/{id} [get]
func (h *Handler) paymentView(c *gin.Context) {
	registrationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.services.Presenter.Present(c.Request.Context(), mustSessionUser(c), registrationID, c.Request.UserAgent())
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Payment status stream
// @Tags Payments
// @Description Server-sent events: status, verified, complete and ping
// @ModuleID paymentEvents
// @Produce text/event-stream
// @Param id path string true "registration id"
// @Success 200
// @Failure 404 {object} ErrorStruct
// @Security UserAuth
// @Router /payments/{id}/events [get]
func (h *Handler) paymentEvents(c *gin.Context) {
	registrationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	// the stream outlives the server write timeout
	if err := http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{}); err != nil {
		logger.Debug("clear write deadline failed", zap.Error(err))
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	streaming := false
	err := h.services.Presenter.Watch(c.Request.Context(), mustSessionUser(c), registrationID,
		func(ev service.StreamEvent) error {
			streaming = true
			c.SSEvent(string(ev.Type), ev)
			c.Writer.Flush()
			return c.Request.Context().Err()
		})
	if err == nil {
		return
	}

	if !streaming {
		serviceErrorResponse(c, err)
		return
	}
	logger.Warn("payment stream ended with error",
		zap.String("registration_id", registrationID.String()), zap.Error(err))
}

type selfReportRequest struct {
	HasPaid bool `json:"has_paid"`
}

type selfReportResponse struct {
	OrderID string               `json:"order_id"`
	Status  domain.PaymentStatus `json:"status"`
}

// @Summary Report a completed payment
// @Tags Payments
// @Description Puts the payment back into the review queue. Rejected payments may be
// @Description resubmitted, verified ones answer 409.
// @ModuleID selfReport
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param input body selfReportRequest true "confirmation"
// @Success 200 {object} selfReportResponse
// @Failure 400 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Security UserAuth
// @Router /payments/{id}/self-report [post]
func (h *Handler) selfReport(c *gin.Context) {
	var req selfReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	payment, err := h.services.Payments.SelfReport(c.Request.Context(), mustSessionUser(c), c.Param("id"), req.HasPaid)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, selfReportResponse{
		OrderID: payment.OrderID,
		Status:  payment.Status,
	})
}
