package http

import (
	"Linklet-Backend/internal/domain"
	"Linklet-Backend/internal/repository"
	"Linklet-Backend/internal/service"
	"Linklet-Backend/internal/shortcode"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Stable machine-readable error kinds for API clients.
const (
	kindInvalidArgument    = "invalid_argument"
	kindCodeAlreadyInUse   = "code_already_in_use"
	kindNotFound           = "not_found"
	kindBackendUnavailable = "backend_unavailable"
)

// LinksHandler serves the dashboard link API.
type LinksHandler struct {
	links   *service.LinkService
	log     *zap.Logger
	baseURL string
}

// NewLinksHandler creates a new links handler.
func NewLinksHandler(links *service.LinkService, log *zap.Logger, baseURL string) *LinksHandler {
	return &LinksHandler{
		links:   links,
		log:     log,
		baseURL: baseURL,
	}
}

// CreateLinkRequest is the shorten payload.
type CreateLinkRequest struct {
	OriginalURL string `json:"originalUrl"`
	CustomCode  string `json:"customCode,omitempty"`
}

// LinkData is a link as the API returns it.
type LinkData struct {
	ID           string              `json:"id"`
	ShortCode    string              `json:"shortCode"`
	OriginalURL  string              `json:"originalUrl"`
	ShortURL     string              `json:"shortUrl"`
	ClickCount   int64               `json:"clickCount"`
	ClickHistory []domain.ClickEntry `json:"clickHistory"`
	CreatedAt    string              `json:"createdAt"`
	UpdatedAt    string              `json:"updatedAt"`
}

// APIError is the error body for failed requests.
type APIError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type successResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

type errorResponse struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}

// CreateLink creates a new short link.
//
//	@Summary		Create a short link
//	@Description	Shorten a URL, optionally with a caller-supplied code
//	@Tags			Links
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateLinkRequest	true	"Link creation request"
//	@Success		201		{object}	successResponse	"Link created"
//	@Failure		400		{object}	errorResponse	"Invalid URL, bad code length, or code in use"
//	@Router			/api/shorten [post]
func (h *LinksHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid create link request", zap.Error(err))
		h.writeError(w, kindInvalidArgument, "Invalid request format", http.StatusBadRequest)
		return
	}

	link, err := h.links.Create(r.Context(), req.OriginalURL, req.CustomCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidURL):
			h.writeError(w, kindInvalidArgument, "Original URL must be a valid http(s) URL", http.StatusBadRequest)
		case errors.Is(err, shortcode.ErrBadLength), errors.Is(err, shortcode.ErrBadAlphabet):
			h.writeError(w, kindInvalidArgument, err.Error(), http.StatusBadRequest)
		case errors.Is(err, repository.ErrCodeExists):
			h.writeError(w, kindCodeAlreadyInUse, "Short code already in use", http.StatusBadRequest)
		default:
			h.log.Error("failed to create link", zap.Error(err))
			h.writeError(w, kindBackendUnavailable, "Failed to create link", http.StatusInternalServerError)
		}
		return
	}

	h.log.Info("created link", zap.String("short_code", link.ShortCode), zap.Int64("id", link.ID))
	h.writeJSON(w, successResponse{Success: true, Data: h.toLinkData(link)}, http.StatusCreated)
}

// ListLinks returns all links, newest first.
//
//	@Summary		List links
//	@Tags			Links
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	successResponse	"Link list"
//	@Router			/api/urls [get]
func (h *LinksHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.links.List(r.Context())
	if err != nil {
		h.log.Error("failed to list links", zap.Error(err))
		h.writeError(w, kindBackendUnavailable, "Failed to retrieve links", http.StatusInternalServerError)
		return
	}

	data := make([]LinkData, len(links))
	for i, link := range links {
		data[i] = h.toLinkData(link)
	}

	h.writeJSON(w, successResponse{Success: true, Data: data}, http.StatusOK)
}

// GetStats returns one link with its click history.
//
//	@Summary		Link statistics
//	@Tags			Links
//	@Produce		json
//	@Security		BearerAuth
//	@Param			shortCode	path		string	true	"Short code"
//	@Success		200			{object}	successResponse	"Link with history"
//	@Failure		404			{object}	errorResponse	"Not found"
//	@Router			/api/stats/{shortCode} [get]
func (h *LinksHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	shortCode := strings.TrimPrefix(r.URL.Path, "/api/stats/")
	if shortCode == "" || strings.Contains(shortCode, "/") {
		h.writeError(w, kindInvalidArgument, "Short code is required", http.StatusBadRequest)
		return
	}

	link, err := h.links.GetStats(r.Context(), shortCode)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			h.writeError(w, kindNotFound, "Link not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed to get stats", zap.String("short_code", shortCode), zap.Error(err))
		h.writeError(w, kindBackendUnavailable, "Failed to retrieve link", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, successResponse{Success: true, Data: h.toLinkData(link)}, http.StatusOK)
}

// DeleteLink deletes a link by record identifier.
//
//	@Summary		Delete a link
//	@Tags			Links
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Record identifier"
//	@Success		200	{object}	successResponse	"Deleted"
//	@Failure		404	{object}	errorResponse	"Not found"
//	@Router			/api/urls/{id} [delete]
func (h *LinksHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	rawID := strings.TrimPrefix(r.URL.Path, "/api/urls/")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		h.writeError(w, kindInvalidArgument, "Record identifier must be numeric", http.StatusBadRequest)
		return
	}

	if err := h.links.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			h.writeError(w, kindNotFound, "Link not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed to delete link", zap.Int64("id", id), zap.Error(err))
		h.writeError(w, kindBackendUnavailable, "Failed to delete link", http.StatusInternalServerError)
		return
	}

	h.log.Info("deleted link", zap.Int64("id", id))
	h.writeJSON(w, successResponse{Success: true}, http.StatusOK)
}

// Helper methods

func (h *LinksHandler) toLinkData(link *domain.Link) LinkData {
	history := link.ClickHistory
	if history == nil {
		history = []domain.ClickEntry{}
	}

	return LinkData{
		ID:           strconv.FormatInt(link.ID, 10),
		ShortCode:    link.ShortCode,
		OriginalURL:  link.OriginalURL,
		ShortURL:     h.baseURL + "/" + link.ShortCode,
		ClickCount:   link.ClickCount,
		ClickHistory: history,
		CreatedAt:    link.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    link.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *LinksHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("failed to encode response", zap.Error(err))
	}
}

func (h *LinksHandler) writeError(w http.ResponseWriter, kind, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{Success: false, Error: APIError{Kind: kind, Message: message}})
}
