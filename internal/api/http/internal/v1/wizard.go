package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kala-yatra/backend/internal/wizard"
)

func (h *Handler) initWizardRoutes(api *gin.RouterGroup) {
	w := api.Group("/wizard", h.userIdentityMiddleware)

	w.GET("", h.wizardCurrent)
	w.POST("/details", h.wizardDetails)
	w.POST("/back", h.wizardBack)
	w.POST("/terms", h.wizardTerms)
	w.POST("/advance", h.wizardAdvance)
}

// @Summary Registration flow state
// @Tags Wizard
// @Description Returns the current step, or the existing registration of the signed-in email
// @ModuleID wizardCurrent
// @Produce json
// @Success 200 {object} service.WizardView
// @Failure 401 {object} ErrorStruct
// @Security UserAuth
// @Router /wizard [get]
func (h *Handler) wizardCurrent(c *gin.Context) {
	view, err := h.services.Wizard.Current(c.Request.Context(), mustSessionUser(c))
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

type wizardDetailsRequest struct {
	FullName       string `json:"full_name" binding:"required,max=200"`
	Age            int    `json:"age" binding:"required,min=1,max=120"`
	DOB            string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	Gender         string `json:"gender" binding:"max=32"`
	City           string `json:"city" binding:"required,max=100"`
	State          string `json:"state" binding:"required,max=100"`
	Country        string `json:"country" binding:"required,max=100"`
	Email          string `json:"email" binding:"required,email"`
	Mobile         string `json:"mobile" binding:"required,phonenumber"`
	ReferralCode   string `json:"referral_code" binding:"max=64"`
	HowDidYouHear  string `json:"how_did_you_hear" binding:"max=200"`
	ReceiveUpdates bool   `json:"receive_updates"`
	JoinCommunity  bool   `json:"join_community"`
}

func (r wizardDetailsRequest) form() wizard.Form {
	return wizard.Form{
		FullName:       r.FullName,
		Age:            r.Age,
		DOB:            r.DOB,
		Gender:         r.Gender,
		City:           r.City,
		State:          r.State,
		Country:        r.Country,
		Email:          r.Email,
		Mobile:         r.Mobile,
		ReferralCode:   r.ReferralCode,
		HowDidYouHear:  r.HowDidYouHear,
		ReceiveUpdates: r.ReceiveUpdates,
		JoinCommunity:  r.JoinCommunity,
	}
}

// @Summary Submit participant details
// @Tags Wizard
// @ModuleID wizardDetails
// @Accept json
// @Produce json
// @Param input body wizardDetailsRequest true "participant details"
// @Success 200 {object} service.WizardView
// @Failure 400 {object} ValidationErrorStruct
// @Failure 409 {object} ErrorStruct
// @Security UserAuth
// @Router /wizard/details [post]
func (h *Handler) wizardDetails(c *gin.Context) {
	var req wizardDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	view, err := h.services.Wizard.SubmitDetails(c.Request.Context(), mustSessionUser(c), req.form())
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Back to details
// @Tags Wizard
// @ModuleID wizardBack
// @Produce json
// @Success 200 {object} service.WizardView
// @Failure 409 {object} ErrorStruct
// @Security UserAuth
// @Router /wizard/back [post]
func (h *Handler) wizardBack(c *gin.Context) {
	view, err := h.services.Wizard.Back(c.Request.Context(), mustSessionUser(c))
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

type wizardTermsRequest struct {
	Agree bool `json:"agree"`
}

// @Summary Accept terms
// @Tags Wizard
// @Description Creates the registration with its payment and moves to the payment step
// @ModuleID wizardTerms
// @Accept json
// @Produce json
// @Param input body wizardTermsRequest true "terms agreement"
// @Success 200 {object} service.WizardView
// @Failure 400 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /wizard/terms [post]
func (h *Handler) wizardTerms(c *gin.Context) {
	var req wizardTermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	view, err := h.services.Wizard.AcceptTerms(c.Request.Context(), mustSessionUser(c), req.Agree)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Finish without verification
// @Tags Wizard
// @ModuleID wizardAdvance
// @Produce json
// @Success 200 {object} service.WizardView
// @Failure 409 {object} ErrorStruct
// @Security UserAuth
// @Router /wizard/advance [post]
func (h *Handler) wizardAdvance(c *gin.Context) {
	view, err := h.services.Wizard.Advance(c.Request.Context(), mustSessionUser(c))
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
