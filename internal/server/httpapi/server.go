// Package httpapi exposes the application workflow over JSON REST. Every
// response carries a {"success": bool} envelope, matching what the dashboard
// frontends consume.
package httpapi

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anocare/anocare/internal/chain"
	"github.com/anocare/anocare/internal/logging"
	"github.com/anocare/anocare/internal/server/auth"
	"github.com/anocare/anocare/internal/server/services"
)

// Completer is the chat-completion collaborator behind POST /chat.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Server struct {
	apps      *services.ApplicationService
	review    *services.ReviewService
	registry  chain.Registry
	chat      Completer
	nonces    *auth.NonceStore
	jwtSecret []byte
	tokenTTL  time.Duration
	log       logging.Logger
}

func NewServer(
	apps *services.ApplicationService,
	review *services.ReviewService,
	registry chain.Registry,
	chat Completer,
	jwtSecret []byte,
	tokenTTL time.Duration,
	log logging.Logger,
) *Server {
	return &Server{
		apps:      apps,
		review:    review,
		registry:  registry,
		chat:      chat,
		nonces:    auth.NewNonceStore(),
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log.With("module", "httpapi"),
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true})
	})

	r.GET("/auth/nonce", s.handleNonce)
	r.POST("/auth/login", s.handleLogin)

	apps := r.Group("/applications")
	{
		apps.POST("/:address", s.handleSubmit)
		apps.GET("", s.handleListApplicants)
		apps.GET("/pending", s.RequireAdmin(), s.handleListPending)
		apps.PUT("/:address/approve", s.RequireAdmin(), s.handleApprove)
		apps.PUT("/:address/reject", s.RequireAdmin(), s.handleReject)
	}

	users := r.Group("/users")
	{
		users.GET("/:address", s.handleUserStatus)
		users.PUT("/:address/status", s.handleToggleActive)
	}

	r.POST("/chat", s.handleChat)

	return r
}
