package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kala-yatra/backend/internal/service"
	"github.com/kala-yatra/backend/internal/wizard"
	"github.com/kala-yatra/backend/pkg/logger"
)

func errorResponse(c *gin.Context, status int, code ErrorCode) {
	c.AbortWithStatusJSON(status, getErrorStruct(code))
}

// serviceErrorResponse maps service and wizard errors onto status codes.
// Anything unknown is logged and answered with 500.
func serviceErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, wizard.ErrIncompleteForm):
		errorResponse(c, http.StatusBadRequest, IncompleteFormCode)
	case errors.Is(err, wizard.ErrTermsNotAccepted):
		errorResponse(c, http.StatusBadRequest, TermsNotAcceptedCode)
	case errors.Is(err, wizard.ErrWrongStep):
		errorResponse(c, http.StatusConflict, WrongStepCode)
	case errors.Is(err, service.ErrRegistrationExists):
		errorResponse(c, http.StatusConflict, RegistrationExistsCode)
	case errors.Is(err, service.ErrRegistrationSave):
		errorResponse(c, http.StatusInternalServerError, RegistrationSaveFailedCode)
	case errors.Is(err, service.ErrRegistrationClosed):
		errorResponse(c, http.StatusBadRequest, RegistrationClosedCode)
	case errors.Is(err, service.ErrInvalidDOB):
		errorResponse(c, http.StatusBadRequest, InvalidDOBCode)
	case errors.Is(err, service.ErrUnverifiedAdvance):
		errorResponse(c, http.StatusConflict, UnverifiedAdvanceCode)
	case errors.Is(err, service.ErrMissingFields):
		errorResponse(c, http.StatusBadRequest, MissingFieldsCode)
	case errors.Is(err, service.ErrInvalidAmount):
		errorResponse(c, http.StatusBadRequest, InvalidAmountCode)
	case errors.Is(err, service.ErrOrderIDTaken):
		errorResponse(c, http.StatusConflict, OrderIDTakenCode)
	case errors.Is(err, service.ErrRegistrationNotFound):
		errorResponse(c, http.StatusNotFound, RegistrationNotFoundCode)
	case errors.Is(err, service.ErrPaymentNotFound):
		errorResponse(c, http.StatusNotFound, PaymentNotFoundCode)
	case errors.Is(err, service.ErrAdminForbidden):
		errorResponse(c, http.StatusForbidden, AdminForbiddenCode)
	case errors.Is(err, service.ErrPaidAmountMissing):
		errorResponse(c, http.StatusBadRequest, PaidAmountMissingCode)
	case errors.Is(err, service.ErrPaidAmountInvalid):
		errorResponse(c, http.StatusBadRequest, PaidAmountInvalidCode)
	case errors.Is(err, service.ErrPaymentFinalized):
		errorResponse(c, http.StatusConflict, PaymentFinalizedCode)
	case errors.Is(err, service.ErrNotPaid):
		errorResponse(c, http.StatusBadRequest, NotPaidCode)
	case errors.Is(err, service.ErrPaymentWrite):
		logger.Error("payment write failed", zap.String("path", c.FullPath()), zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, PaymentWriteFailedCode)
	case errors.Is(err, service.ErrSignOut):
		logger.Error("sign out failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, SignOutFailedCode)
	case errors.Is(err, service.ErrReceiptNotReady):
		errorResponse(c, http.StatusConflict, ReceiptNotReadyCode)
	case errors.Is(err, service.ErrReceiptUnavailable):
		errorResponse(c, http.StatusServiceUnavailable, ReceiptUnavailableCode)
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
	}
}

func validationErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		errorResponse(c, http.StatusBadRequest, MissingFieldsCode)
		return
	}

	out := make([]ValidationError, len(verr))
	for i, ferr := range verr {
		out[i] = ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
	}
	response := ValidationErrorStruct{
		ErrorCode:    ValidationErrorCode,
		ErrorMessage: IncompleteFormMessage,
	}
	response.Errors = out
	c.AbortWithStatusJSON(http.StatusBadRequest, response)
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email address"
	case "number":
		return "This field must be a number"
	case "min":
		return fmt.Sprintf("Must be at least %v", value)
	case "max":
		return fmt.Sprintf("Must be at most %v", value)
	case "phonenumber":
		return "Enter a 10 digit Indian mobile number"
	case "datetime":
		return "Use the YYYY-MM-DD format"
	}
	return tag
}
