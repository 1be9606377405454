// ABOUTME: Echo server wiring routes to resolvers, guard, and dispatcher
// ABOUTME: Route groups mirror the principal kinds they serve

package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/shelfwise/shelfwise-identity/internal/claims"
	"github.com/shelfwise/shelfwise-identity/internal/guard"
	"github.com/shelfwise/shelfwise-identity/internal/resolve"
	"github.com/shelfwise/shelfwise-identity/internal/store"
	"github.com/shelfwise/shelfwise-identity/internal/token"
)

const listLimit = 100

// Dependencies collects everything the HTTP surface needs.
type Dependencies struct {
	Users      *resolve.UserResolver
	Publishers *resolve.PublisherResolver
	Admins     *resolve.AdminResolver
	Dispatcher *resolve.Dispatcher
	Codec      *token.Codec
	Guard      *guard.Guard
	Store      store.Store
	TokenTTL   time.Duration
}

// Server is the HTTP API surface.
type Server struct {
	echo       *echo.Echo
	users      *resolve.UserResolver
	publishers *resolve.PublisherResolver
	admins     *resolve.AdminResolver
	dispatcher *resolve.Dispatcher
	codec      *token.Codec
	guard      *guard.Guard
	store      store.Store
	tokenTTL   time.Duration
	logger     *slog.Logger
}

// NewServer builds the echo app and registers all routes.
func NewServer(deps Dependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Recover())

	s := &Server{
		echo:       e,
		users:      deps.Users,
		publishers: deps.Publishers,
		admins:     deps.Admins,
		dispatcher: deps.Dispatcher,
		codec:      deps.Codec,
		guard:      deps.Guard,
		store:      deps.Store,
		tokenTTL:   deps.TokenTTL,
		logger:     slog.Default().With("component", "httpapi"),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo

	e.GET("/healthz", s.handleHealth)

	// User surface
	userAuth := s.requireAuth(guard.RequireEntity(claims.EntityUser))
	e.POST("/auth/register", s.handleUserRegister)
	e.POST("/auth/login", s.handleUserLogin)
	e.POST("/auth/login/:role", s.handleUserLoginAs)
	e.POST("/auth/send-otp", s.handleSendOTP)
	e.POST("/auth/verify-otp", s.handleVerifyOTP)
	e.GET("/auth/me", s.handleUserMe, userAuth)
	e.POST("/auth/upgrade-to-writer", s.handleUpgradeToWriter, userAuth)

	// Publisher surface
	pubAuth := s.requireAuth(guard.RequireEntity(claims.EntityPublisher))
	e.POST("/publishers/register", s.handlePublisherRegister)
	e.POST("/publishers/login", s.handlePublisherLogin)
	e.GET("/publishers/me", s.handlePublisherMe, pubAuth)

	// Admin surface
	adminAuth := s.requireAuth(guard.RequireEntity(claims.EntityAdmin))
	e.POST("/admin/register", s.handleAdminRegister)
	e.POST("/admin/login", s.handleAdminLogin)
	e.GET("/admin/me", s.handleAdminMe, adminAuth)
	e.GET("/admin/users", s.handleAdminListUsers,
		s.requireAuth(guard.RequireCapability(claims.CapManageUsers)))
	e.GET("/admin/publishers", s.handleAdminListPublishers,
		s.requireAuth(guard.RequireCapability(claims.CapManagePublishers)))

	// Unified surface
	e.POST("/login", s.handleUnifiedLogin)
	e.POST("/login/:kind", s.handleUnifiedLoginAs)
	e.GET("/me", s.handleUnifiedMe, s.requireUnifiedAuth())
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Start begins serving on the given address and blocks.
func (s *Server) Start(addr string) error {
	s.logger.Info("HTTP server starting", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// issueToken signs a claim set with the configured TTL.
func (s *Server) issueToken(cs claims.ClaimSet) (string, error) {
	return s.codec.Issue(cs, s.tokenTTL)
}
