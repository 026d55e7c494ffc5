package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gotodo/internal/server/auth"
	"github.com/dmitrijs2005/gotodo/internal/server/models"
)

const contextUserKey = "auth.user"

// unauthorizedMessage is the single response body returned for every
// protected-route authentication failure, regardless of cause.
const unauthorizedMessage = "could not validate credentials"

// authRequest pulls the three token transport channels off the gin request.
// The Authorization header contributes only a well-formed "Bearer <token>"
// credential, with the scheme stripped here.
func (s *Server) authRequest(c *gin.Context) auth.Request {
	req := auth.Request{Cookies: map[string]string{}}

	if v, err := c.Cookie(s.cfg.CookieName); err == nil {
		req.BoundCookie = v
	}

	for _, ck := range c.Request.Cookies() {
		req.Cookies[ck.Name] = ck.Value
	}

	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			req.BearerToken = parts[1]
		}
	}

	return req
}

// requireUser aborts with a uniform 401 when no authenticated user can be
// resolved, and otherwise stores the user on the gin context.
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := s.resolver.RequireUser(c.Request.Context(), s.authRequest(c))
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": unauthorizedMessage})
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// currentUser returns the user stored by requireUser.
func currentUser(c *gin.Context) *models.User {
	v, _ := c.Get(contextUserKey)
	u, _ := v.(*models.User)
	return u
}

// optionalUser resolves the page-rendering identity. It never fails; an
// anonymous request simply yields nil.
func (s *Server) optionalUser(c *gin.Context) *models.User {
	return s.resolver.OptionalUser(c.Request.Context(), s.authRequest(c))
}
