// Package httpapi exposes the HTTP surface of the todo service: the page and
// form routes, the authenticated JSON API, and the static assets.
package httpapi

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gotodo/internal/logging"
	"github.com/dmitrijs2005/gotodo/internal/server/auth"
	"github.com/dmitrijs2005/gotodo/internal/server/config"
	"github.com/dmitrijs2005/gotodo/internal/server/services"
	"github.com/dmitrijs2005/gotodo/web"
)

const shutdownTimeout = 5 * time.Second

// Server wires http routing to the services and the identity resolver.
type Server struct {
	cfg      *config.Config
	logger   logging.Logger
	users    *services.UserService
	todos    *services.TodoService
	resolver *auth.Resolver
	engine   *gin.Engine
}

// NewServer builds the gin engine with all routes and middleware attached.
func NewServer(cfg *config.Config, logger logging.Logger, users *services.UserService,
	todos *services.TodoService, resolver *auth.Resolver) *Server {

	gin.SetMode(cfg.GinMode)

	s := &Server{
		cfg:      cfg,
		logger:   logger.With("module", "httpapi"),
		users:    users,
		todos:    todos,
		resolver: resolver,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.corsMiddleware())

	engine.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.html")))

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		panic(err)
	}
	engine.StaticFS("/static", http.FS(staticFS))

	s.registerRoutes(engine)
	s.engine = engine
	return s
}

// corsMiddleware allows cross-origin requests with credentials. The
// gin-contrib cors config rejects AllowAllOrigins combined with credentials,
// so the wildcard is expressed through AllowOriginFunc instead.
func (s *Server) corsMiddleware() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	if s.cfg.CORSOrigins == "*" {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		corsConfig.AllowOrigins = strings.Split(s.cfg.CORSOrigins, ",")
	}
	return cors.New(corsConfig)
}

func (s *Server) registerRoutes(engine *gin.Engine) {
	engine.GET("/health", s.handleHealth)

	engine.GET("/", s.handleHome)
	engine.GET("/signup", s.handleSignupPage)
	engine.POST("/signup", s.handleSignup)
	engine.GET("/login", s.handleLoginPage)
	engine.POST("/login", s.handleLogin)
	engine.GET("/logout", s.handleLogout)

	protected := engine.Group("/todos")
	protected.Use(s.requireUser())
	{
		protected.POST("", s.handleTodoCreate)
		protected.GET("", s.handleTodoList)
		protected.GET("/:id", s.handleTodoGet)
		protected.PUT("/:id", s.handleTodoUpdate)
		protected.DELETE("/:id", s.handleTodoDelete)
	}
}

// Handler returns the root http.Handler, used directly by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.EndpointAddr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.cfg.EndpointAddr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
