package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/and161185/contact-keeper/internal/errs"
	"github.com/and161185/contact-keeper/internal/limiter"
	"github.com/and161185/contact-keeper/internal/repository/postgres"
	"github.com/and161185/contact-keeper/internal/service"
)

// Server wires services into REST handlers.
type Server struct {
	auth        service.AuthService
	contacts    service.ContactService
	db          *postgres.DB
	reqLim      limiter.RequestLimiter
	signKey     []byte
	allowOrigin string
	log         *zap.Logger
}

// New constructs a REST server with injected services.
func New(auth service.AuthService, contacts service.ContactService, db *postgres.DB,
	reqLim limiter.RequestLimiter, signKey []byte, allowOrigin string, log *zap.Logger) *Server {
	return &Server{
		auth:        auth,
		contacts:    contacts,
		db:          db,
		reqLim:      reqLim,
		signKey:     signKey,
		allowOrigin: allowOrigin,
		log:         log,
	}
}

// Router builds the gin engine with all middleware and routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(Recover(s.log), RequestID(), Logging(s.log), CORS(s.allowOrigin))

	r.GET("/", s.root)

	api := r.Group("/api")
	api.GET("/healthchecker", s.healthcheck)

	auth := api.Group("/auth")
	auth.POST("/signup", s.signup)
	auth.POST("/login", s.login)

	protected := api.Group("", Auth(s.signKey))
	protected.GET("/users/me", s.me)

	contacts := protected.Group("/contacts", RateLimit(s.reqLim))
	contacts.GET("", s.listContacts)
	contacts.POST("", s.createContact)
	contacts.GET("/birthday", s.upcomingBirthdays)
	contacts.GET("/:id", s.getContact)
	contacts.PUT("/:id", s.updateContact)
	contacts.DELETE("/:id", s.deleteContact)
	contacts.GET("/search/:email", s.searchByEmail)
	contacts.GET("/search/first_name/:name", s.searchByFirstName)
	contacts.GET("/search/last_name/:name", s.searchByLastName)

	return r
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "User contacts"})
}

// healthcheck verifies database connectivity.
func (s *Server) healthcheck(c *gin.Context) {
	if err := s.db.Pool.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error connecting to the database"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database is up"})
}

// abortWithDomainError translates sentinel errors into HTTP status codes.
func abortWithDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "not found"})
	case errors.Is(err, errs.ErrAlreadyExists):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"message": "already exists"})
	case errors.Is(err, errs.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "bad credentials"})
	case errors.Is(err, errs.ErrRateLimited):
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "too many requests"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal"})
	}
}
