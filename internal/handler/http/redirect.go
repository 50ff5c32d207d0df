package http

import (
	"Linklet-Backend/internal/repository"
	"Linklet-Backend/internal/service"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// RedirectHandler serves the public short-link redirect.
type RedirectHandler struct {
	links *service.LinkService
	log   *zap.Logger
}

// NewRedirectHandler creates a new redirect handler.
func NewRedirectHandler(links *service.LinkService, log *zap.Logger) *RedirectHandler {
	return &RedirectHandler{
		links: links,
		log:   log,
	}
}

// Redirect resolves a short code and issues a 302 to the original URL.
//
//	@Summary		Follow a short link
//	@Tags			Redirect
//	@Param			shortCode	path	string	true	"Short code"
//	@Success		302			"Redirect to the original URL"
//	@Failure		404			"Unknown short code"
//	@Router			/{shortCode} [get]
func (h *RedirectHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	shortCode := strings.Trim(r.URL.Path, "/")
	if shortCode == "" || strings.Contains(shortCode, "/") {
		http.NotFound(w, r)
		return
	}

	originalURL, err := h.links.Resolve(r.Context(), shortCode)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			http.NotFound(w, r)
			return
		}
		h.log.Error("failed to resolve short code", zap.String("short_code", shortCode), zap.Error(err))
		http.Error(w, "Service unavailable", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, originalURL, http.StatusFound)
}
