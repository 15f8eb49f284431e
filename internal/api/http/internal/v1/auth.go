package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kala-yatra/backend/internal/service"
	"github.com/kala-yatra/backend/pkg/logger"
)

const (
	stateCookie       = "oauth_state"
	stateCookieMaxAge = 600
)

func (h *Handler) initAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")

	auth.GET("/google/login", h.googleLogin)
	auth.GET("/callback", h.authCallback)
	auth.POST("/logout", h.logout)
	auth.GET("/me", h.me)
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", h.config.Auth.CookieDomain, h.config.Auth.CookieSecure, true)
}

func (h *Handler) redirectTo(c *gin.Context, path string) {
	c.Redirect(http.StatusFound, h.config.HttpServer.PublicURL+path)
}

// @Summary Google sign in
// @Tags Auth
// @Description Redirects to the Google consent screen
// @ModuleID googleLogin
// @Success 302
// @Failure 500 {object} ErrorStruct
// @Router /auth/google/login [get]
func (h *Handler) googleLogin(c *gin.Context) {
	authURL, state, err := h.services.Auth.SignInURL(c.Request.Context())
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	h.setCookie(c, stateCookie, state, stateCookieMaxAge)
	c.Redirect(http.StatusFound, authURL)
}

// @Summary OAuth callback
// @Tags Auth
// @Description Exchanges the authorization code, starts a session and redirects to the dashboard
// @ModuleID authCallback
// @Param code query string true "Authorization code"
// @Param state query string true "State parameter"
// @Success 302
// @Router /auth/callback [get]
func (h *Handler) authCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")

	savedState, err := c.Cookie(stateCookie)
	h.setCookie(c, stateCookie, "", -1)
	if code == "" || state == "" || err != nil || savedState != state {
		logger.Warn("oauth callback rejected", zap.Bool("has_code", code != ""), zap.Bool("state_match", savedState == state))
		h.redirectTo(c, h.config.HttpServer.AuthErrorPath)
		return
	}

	tokens, err := h.services.Auth.Callback(c.Request.Context(), code, state, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		logger.Error("oauth callback failed", zap.Error(err))
		h.redirectTo(c, h.config.HttpServer.AuthErrorPath)
		return
	}

	h.setCookie(c, h.config.Auth.CookieName, tokens.AccessToken, int(tokens.AccessTTL.Seconds()))
	h.setCookie(c, h.config.Auth.RefreshCookie, tokens.RefreshToken.String(), int(tokens.RefreshTTL.Seconds()))

	h.redirectTo(c, h.config.HttpServer.DashboardPath)
}

// @Summary Sign out
// @Tags Auth
// @ModuleID logout
// @Produce json
// @Success 200
// @Failure 500 {object} ErrorStruct
// @Router /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	if cookie, err := c.Cookie(h.config.Auth.RefreshCookie); err == nil {
		if refreshToken, err := uuid.Parse(cookie); err == nil {
			if err := h.services.Auth.SignOut(c.Request.Context(), refreshToken); err != nil {
				serviceErrorResponse(c, err)
				return
			}
		}
	}

	h.setCookie(c, h.config.Auth.CookieName, "", -1)
	h.setCookie(c, h.config.Auth.RefreshCookie, "", -1)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type meResponse struct {
	User *service.SessionUser `json:"user"`
}

// @Summary Current user
// @Tags Auth
// @Description Returns the signed-in user or null
// @ModuleID me
// @Produce json
// @Success 200 {object} meResponse
// @Security UserAuth
// @Router /auth/me [get]
func (h *Handler) me(c *gin.Context) {
	var response meResponse
	if user, ok := getSessionUser(c); ok {
		response.User = &user
	}

	c.JSON(http.StatusOK, response)
}
