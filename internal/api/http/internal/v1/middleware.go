package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kala-yatra/backend/internal/service"
)

const (
	authorizationHeader = "Authorization"
	userCtx             = "sessionUser"
)

// sessionMiddleware resolves the session from the cookie or a bearer token.
// Requests without a valid session pass through anonymously.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	token := h.sessionToken(c)
	if token == "" {
		c.Next()
		return
	}

	if user := h.services.Auth.GetUser(c.Request.Context(), token); user != nil {
		c.Set(userCtx, user)
	}
	c.Next()
}

func (h *Handler) sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(h.config.Auth.CookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader(authorizationHeader)
	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return ""
	}

	return headerParts[1]
}

func (h *Handler) userIdentityMiddleware(c *gin.Context) {
	if _, ok := getSessionUser(c); !ok {
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}
	c.Next()
}

func getSessionUser(c *gin.Context) (service.SessionUser, bool) {
	v, ok := c.Get(userCtx)
	if !ok {
		return service.SessionUser{}, false
	}
	user, ok := v.(*service.SessionUser)
	if !ok || user == nil {
		return service.SessionUser{}, false
	}
	return *user, true
}

// mustSessionUser is for handlers behind userIdentityMiddleware.
func mustSessionUser(c *gin.Context) service.SessionUser {
	user, _ := getSessionUser(c)
	return user
}
