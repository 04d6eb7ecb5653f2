package devserver

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/colonyops/profilectl/internal/csrf"
)

const csrfCookieMaxAge = 365 * 24 * 60 * 60

// ensureToken returns the request's csrftoken cookie, issuing a new one
// when it is missing.
func ensureToken(c *gin.Context) string {
	if v, err := c.Cookie(csrf.CookieName); err == nil && v != "" {
		return v
	}
	token := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(csrf.CookieName, token, csrfCookieMaxAge, "/", "", false, false)
	return token
}

// csrfProtect rejects mutations whose X-CSRFToken header does not match the
// csrftoken cookie.
func (s *Server) csrfProtect() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(csrf.HeaderName)
		cookie, err := c.Cookie(csrf.CookieName)
		if err != nil || header == "" || cookie == "" ||
			subtle.ConstantTimeCompare([]byte(header), []byte(cookie)) != 1 {
			s.logger.Warn().
				Str("path", c.Request.URL.Path).
				Bool("header", header != "").
				Bool("cookie", cookie != "").
				Msg("CSRF verification failed")
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody("CSRF verification failed"))
			return
		}
		c.Next()
	}
}
