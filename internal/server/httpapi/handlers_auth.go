package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gotodo/internal/common"
)

const minPasswordLength = 8

func (s *Server) handleHome(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"User": s.optionalUser(c)})
}

func (s *Server) handleSignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

func (s *Server) handleSignup(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if username == "" || email == "" {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{"Error": "Username and email are required"})
		return
	}
	if len(password) < minPasswordLength {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{"Error": "Password must be at least 8 characters"})
		return
	}

	user, err := s.users.Register(c.Request.Context(), username, email, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUsernameTaken), errors.Is(err, common.ErrEmailTaken):
			c.HTML(http.StatusBadRequest, "signup.html", gin.H{"Error": err.Error()})
		default:
			s.logger.Error(c.Request.Context(), "signup failed", "error", err.Error())
			c.HTML(http.StatusInternalServerError, "signup.html", gin.H{"Error": "Something went wrong"})
		}
		return
	}

	token, err := s.users.IssueToken(user)
	if err != nil {
		s.logger.Error(c.Request.Context(), "token issue failed", "error", err.Error())
		c.HTML(http.StatusInternalServerError, "signup.html", gin.H{"Error": "Something went wrong"})
		return
	}

	s.setAccessCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (s *Server) handleLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := s.users.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Incorrect username or password"})
			return
		}
		s.logger.Error(c.Request.Context(), "login failed", "error", err.Error())
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Something went wrong"})
		return
	}

	token, err := s.users.IssueToken(user)
	if err != nil {
		s.logger.Error(c.Request.Context(), "token issue failed", "error", err.Error())
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Something went wrong"})
		return
	}

	s.setAccessCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleLogout(c *gin.Context) {
	s.clearAccessCookie(c)
	c.Redirect(http.StatusSeeOther, "/")
}

// setAccessCookie stores the token as "<prefix><token>" in an HttpOnly
// cookie. http.SetCookie is used directly: gin's SetCookie would
// percent-encode the space inside the prefixed value.
func (s *Server) setAccessCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    s.cfg.BearerPrefix + token,
		Path:     "/",
		MaxAge:   int(s.cfg.AccessTokenValidityDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearAccessCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
