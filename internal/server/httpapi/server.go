// Package httpapi exposes the account and event services as a
// resource-oriented REST API. Handlers translate between HTTP and the
// service layer; all business rules live in the services.
package httpapi

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/eventhub/internal/logging"
	"github.com/dmitrijs2005/eventhub/internal/server/banners"
	"github.com/dmitrijs2005/eventhub/internal/server/config"
	"github.com/dmitrijs2005/eventhub/internal/server/services"
)

type Server struct {
	address       string
	logger        logging.Logger
	users         *services.UserService
	events        *services.EventService
	store         banners.Store
	db            *sql.DB
	maxUploadSize int64
	engine        *gin.Engine
}

func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService, es *services.EventService, store banners.Store, db *sql.DB) *Server {

	s := &Server{
		address:       cfg.EndpointAddr,
		logger:        l.With("module", "http_server"),
		users:         us,
		events:        es,
		store:         store,
		db:            db,
		maxUploadSize: cfg.MaxUploadSize,
	}

	s.engine = s.buildEngine()
	return s
}

func (s *Server) buildEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(corsMiddleware())

	r.GET("/health", s.healthCheck)

	api := r.Group("/api")
	{
		api.POST("/users/register", s.registerUser)
		api.POST("/users/login", s.loginUser)

		api.GET("/events", s.listEvents)
		api.GET("/events/:id", s.getEvent)
	}

	auth := r.Group("/api")
	auth.Use(s.authMiddleware())
	{
		auth.POST("/events", s.createEvent)
		auth.PUT("/events/:id", s.updateEvent)
		auth.DELETE("/events/:id", s.deleteEvent)
		auth.POST("/events/:id/register", s.registerAttendance)
	}

	// Banners: local storage is served directly, S3-backed storage answers
	// with a redirect to a presigned URL.
	if local, ok := s.store.(*banners.LocalStore); ok {
		r.Static("/uploads", local.Dir())
	} else if resolver, ok := s.store.(banners.URLResolver); ok {
		r.GET("/uploads/*key", s.redirectBanner(resolver))
	}

	return r
}

// Handler exposes the routing tree for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.engine,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) healthCheck(c *gin.Context) {
	if err := s.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) redirectBanner(resolver banners.URLResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")
		if len(key) > 0 && key[0] == '/' {
			key = key[1:]
		}

		url, err := resolver.ResolveURL(c.Request.Context(), key)
		if err != nil {
			s.logger.Error(c.Request.Context(), "banner url resolution failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Redirect(http.StatusFound, url)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
