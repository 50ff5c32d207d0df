package http

import (
	"Linklet-Backend/internal/auth"
	"Linklet-Backend/internal/repository"
	"Linklet-Backend/internal/service"
	"net/http"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Server wires the handlers into a routable mux.
type Server struct {
	authHandlers    *auth.AuthHandlers
	linksHandler    *LinksHandler
	redirectHandler *RedirectHandler
	healthHandler   *HealthHandler
	authMiddleware  *auth.Middleware
	log             *zap.Logger
}

// NewServer creates the HTTP server with all handlers attached.
func NewServer(
	storage repository.Storage,
	links *service.LinkService,
	jwtService *auth.JWTService,
	passwordService *auth.PasswordService,
	log *zap.Logger,
	baseURL string,
) *Server {
	return &Server{
		authHandlers:    auth.NewAuthHandlers(storage, jwtService, passwordService, log),
		linksHandler:    NewLinksHandler(links, log, baseURL),
		redirectHandler: NewRedirectHandler(links, log),
		healthHandler:   NewHealthHandler(storage, log),
		authMiddleware:  auth.NewMiddleware(jwtService, log),
		log:             log,
	}
}

// SetupRoutes registers all routes and returns the root handler.
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	// Probes, no auth
	mux.HandleFunc("/health", s.healthHandler.Health)
	mux.HandleFunc("/ready", s.healthHandler.Ready)

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Auth endpoints, no auth
	mux.HandleFunc("/api/auth/register", s.withCORS(s.authHandlers.Register))
	mux.HandleFunc("/api/auth/login", s.withCORS(s.authHandlers.Login))

	// Dashboard API, auth required
	mux.HandleFunc("/api/shorten", s.withCORS(s.authMiddleware.RequireAuth(s.linksHandler.CreateLink)))
	mux.HandleFunc("/api/urls", s.withCORS(s.authMiddleware.RequireAuth(s.linksHandler.ListLinks)))
	mux.HandleFunc("/api/urls/", s.withCORS(s.authMiddleware.RequireAuth(s.handleLinksAPI)))
	mux.HandleFunc("/api/stats/", s.withCORS(s.authMiddleware.RequireAuth(s.linksHandler.GetStats)))

	// Public redirect, must stay last
	mux.HandleFunc("/", s.handleRedirect)

	return mux
}

// handleLinksAPI dispatches /api/urls/{id} by method.
func (s *Server) handleLinksAPI(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.linksHandler.ListLinks(w, r)
	case http.MethodDelete:
		s.linksHandler.DeleteLink(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleRedirect(w http.ResponseWriter, r *http.Request) {
	if isSystemPath(r.URL.Path) {
		http.NotFound(w, r)
		return
	}
	s.redirectHandler.Redirect(w, r)
}

func (s *Server) withCORS(handler http.HandlerFunc) http.HandlerFunc {
	return s.authMiddleware.CORS(handler)
}

func isSystemPath(path string) bool {
	systemPaths := []string{
		"/api/",
		"/health",
		"/ready",
		"/swagger/",
	}

	for _, systemPath := range systemPaths {
		if strings.HasPrefix(path, systemPath) {
			return true
		}
	}

	return false
}
