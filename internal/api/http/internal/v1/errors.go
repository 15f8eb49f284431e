package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "Something went wrong. Please try again."

	UnauthorizedCode     = 1001
	UnauthorizedMessage  = "Please sign in to continue."
	SignOutFailedCode    = 1002
	SignOutFailedMessage = "Failed to sign out. Please try again."

	IncompleteFormCode            = 2001
	IncompleteFormMessage         = "Please fill in all mandatory fields."
	TermsNotAcceptedCode          = 2002
	TermsNotAcceptedMessage       = "Please agree to the terms and conditions to proceed."
	WrongStepCode                 = 2003
	WrongStepMessage              = "This step is not available right now."
	RegistrationExistsCode        = 2004
	RegistrationExistsMessage     = "You have already registered with this email."
	RegistrationSaveFailedCode    = 2005
	RegistrationSaveFailedMessage = "Failed to save registration. Please try again."
	RegistrationClosedCode        = 2006
	RegistrationClosedMessage     = "Registrations are closed."
	InvalidDOBCode                = 2007
	InvalidDOBMessage             = "Please enter your date of birth as YYYY-MM-DD."
	UnverifiedAdvanceCode         = 2008
	UnverifiedAdvanceMessage      = "Please wait until your payment is verified."

	MissingFieldsCode            = 3001
	MissingFieldsMessage         = "Missing required fields"
	InvalidAmountCode            = 3002
	InvalidAmountMessage         = "Invalid amount. Only ₹1 is accepted."
	OrderIDTakenCode             = 3003
	OrderIDTakenMessage          = "A payment with this order id already exists."
	RegistrationNotFoundCode     = 3004
	RegistrationNotFoundMessage  = "Registration not found"
	PaymentNotFoundCode          = 3005
	PaymentNotFoundMessage       = "Failed to load payment information"
	AdminForbiddenCode           = 3006
	AdminForbiddenMessage        = "Unauthorized admin access"
	PaidAmountMissingCode        = 3007
	PaidAmountMissingMessage     = "Admin must provide paidAmount for verification"
	PaymentFinalizedCode         = 3008
	PaymentFinalizedMessage      = "This payment has already been processed."
	NotPaidCode                  = 3009
	NotPaidMessage               = "Please confirm that you have completed the payment."
	PaymentWriteFailedCode       = 3010
	PaymentWriteFailedMessage    = "Failed to update payment. Please try again."
	InvalidRegistrationIDCode    = 3011
	InvalidRegistrationIDMessage = "Invalid registration id"
	PaidAmountInvalidCode        = 3012
	PaidAmountInvalidMessage     = "paidAmount must be a number"

	ReceiptNotReadyCode       = 4001
	ReceiptNotReadyMessage    = "Your receipt is available once the payment is verified."
	ReceiptUnavailableCode    = 4002
	ReceiptUnavailableMessage = "receipt unavailable"

	ValidationErrorCode = 6000
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
} // @name ValidationErrorStruct

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

var errorMessages = map[ErrorCode]ErrorMessage{
	UnauthorizedCode:           UnauthorizedMessage,
	SignOutFailedCode:          SignOutFailedMessage,
	IncompleteFormCode:         IncompleteFormMessage,
	TermsNotAcceptedCode:       TermsNotAcceptedMessage,
	WrongStepCode:              WrongStepMessage,
	RegistrationExistsCode:     RegistrationExistsMessage,
	RegistrationSaveFailedCode: RegistrationSaveFailedMessage,
	RegistrationClosedCode:     RegistrationClosedMessage,
	InvalidDOBCode:             InvalidDOBMessage,
	UnverifiedAdvanceCode:      UnverifiedAdvanceMessage,
	MissingFieldsCode:          MissingFieldsMessage,
	InvalidAmountCode:          InvalidAmountMessage,
	OrderIDTakenCode:           OrderIDTakenMessage,
	RegistrationNotFoundCode:   RegistrationNotFoundMessage,
	PaymentNotFoundCode:        PaymentNotFoundMessage,
	AdminForbiddenCode:         AdminForbiddenMessage,
	PaidAmountMissingCode:      PaidAmountMissingMessage,
	PaymentFinalizedCode:       PaymentFinalizedMessage,
	NotPaidCode:                NotPaidMessage,
	PaymentWriteFailedCode:     PaymentWriteFailedMessage,
	InvalidRegistrationIDCode:  InvalidRegistrationIDMessage,
	PaidAmountInvalidCode:      PaidAmountInvalidMessage,
	ReceiptNotReadyCode:        ReceiptNotReadyMessage,
	ReceiptUnavailableCode:     ReceiptUnavailableMessage,
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	message, ok := errorMessages[code]
	if !ok {
		return &ErrorStruct{
			ErrorCode:    UnknownErrorCode,
			ErrorMessage: UnknownErrorMessage,
		}
	}

	return &ErrorStruct{
		ErrorCode:    code,
		ErrorMessage: message,
	}
}
