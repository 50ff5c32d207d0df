package service

import (
	"Linklet-Backend/internal/cache"
	"Linklet-Backend/internal/domain"
	"Linklet-Backend/internal/repository"
	"Linklet-Backend/internal/shortcode"
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// ErrInvalidURL is returned when the original URL is not an absolute
// http/https URL.
var ErrInvalidURL = errors.New("invalid original URL")

// counterTimeout bounds the detached counter update fired on a cache hit.
// A timeout there is logged and dropped, never surfaced to the redirect.
const counterTimeout = 5 * time.Second

// LinkService orchestrates link creation, resolution and deletion over the
// durable store and the redirect cache. It holds no in-process locks: code
// uniqueness is the store's job, click counters are store-atomic, and the
// cache may fail at any time without affecting correctness.
type LinkService struct {
	storage repository.Storage
	cache   cache.Cache
	log     *zap.Logger

	// now is the clock used to pick the click-history day. Swappable in tests.
	now func() time.Time
}

// NewLinkService creates the service. Pass cache.NewNoop() when no cache
// backend is configured.
func NewLinkService(storage repository.Storage, redirectCache cache.Cache, log *zap.Logger) *LinkService {
	return &LinkService{
		storage: storage,
		cache:   redirectCache,
		log:     log,
		now:     time.Now,
	}
}

// Create shortens originalURL. When customCode is empty the code is derived
// from the reserved record identifier; otherwise the caller-supplied code is
// validated and used as-is. The store's unique constraint is the authority
// on collisions: the existence pre-check only fails fast.
func (s *LinkService) Create(ctx context.Context, originalURL, customCode string) (*domain.Link, error) {
	if err := validateURL(originalURL); err != nil {
		return nil, err
	}

	if customCode != "" {
		if err := shortcode.ValidateCustom(customCode); err != nil {
			return nil, err
		}
		exists, err := s.storage.CodeExists(ctx, customCode)
		if err != nil {
			return nil, fmt.Errorf("failed to check custom code: %w", err)
		}
		if exists {
			return nil, repository.ErrCodeExists
		}
	}

	id, err := s.storage.ReserveID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve record id: %w", err)
	}

	code := customCode
	if code == "" {
		code = shortcode.Derive(id)
	}

	link := &domain.Link{
		ID:           id,
		ShortCode:    code,
		OriginalURL:  originalURL,
		ClickHistory: []domain.ClickEntry{},
	}

	if err := s.storage.SaveLink(ctx, link); err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, code, originalURL); err != nil {
		s.log.Warn("cache set failed after create", zap.String("short_code", code), zap.Error(err))
	}

	return link, nil
}

// Resolve returns the original URL for a short code. On a cache hit the
// click counter is updated in a detached goroutine so the redirect never
// waits on the store; on a miss the store is read and the counter updated
// synchronously before the cache is repopulated.
func (s *LinkService) Resolve(ctx context.Context, shortCode string) (string, error) {
	cachedURL, hit, err := s.cache.Get(ctx, shortCode)
	if err != nil {
		s.log.Warn("cache get failed, falling back to storage", zap.String("short_code", shortCode), zap.Error(err))
	}
	if hit {
		go s.recordClickDetached(shortCode)
		return cachedURL, nil
	}

	link, err := s.storage.GetLinkByCode(ctx, shortCode)
	if err != nil {
		return "", err
	}

	if err := s.storage.IncrementClick(ctx, shortCode, domain.Day(s.now())); err != nil {
		// A concurrent delete between lookup and increment reads as gone.
		if errors.Is(err, repository.ErrCodeNotFound) {
			return "", err
		}
		return "", fmt.Errorf("failed to record click: %w", err)
	}

	if err := s.cache.Set(ctx, shortCode, link.OriginalURL); err != nil {
		s.log.Warn("cache set failed after resolve", zap.String("short_code", shortCode), zap.Error(err))
	}

	return link.OriginalURL, nil
}

// recordClickDetached runs the counter update for a cache-hit redirect with
// its own context and error boundary. The record may have been deleted
// concurrently; that is a logged no-op.
func (s *LinkService) recordClickDetached(shortCode string) {
	ctx, cancel := context.WithTimeout(context.Background(), counterTimeout)
	defer cancel()

	err := s.storage.IncrementClick(ctx, shortCode, domain.Day(s.now()))
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrCodeNotFound):
		s.log.Debug("skipping click for deleted link", zap.String("short_code", shortCode))
	default:
		s.log.Warn("background click update failed", zap.String("short_code", shortCode), zap.Error(err))
	}
}

// GetStats returns a link with its click history. No counter mutation.
func (s *LinkService) GetStats(ctx context.Context, shortCode string) (*domain.Link, error) {
	return s.storage.GetLinkByCode(ctx, shortCode)
}

// List returns all links, newest first.
func (s *LinkService) List(ctx context.Context) ([]*domain.Link, error) {
	return s.storage.ListLinks(ctx)
}

// DeleteByID removes a link by record identifier and invalidates its cache
// entry.
func (s *LinkService) DeleteByID(ctx context.Context, id int64) error {
	link, err := s.storage.GetLinkByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteLinkByID(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, link.ShortCode)
	return nil
}

// DeleteByCode removes a link by short code and invalidates its cache entry.
func (s *LinkService) DeleteByCode(ctx context.Context, shortCode string) error {
	if err := s.storage.DeleteLinkByCode(ctx, shortCode); err != nil {
		return err
	}

	s.invalidate(ctx, shortCode)
	return nil
}

func (s *LinkService) invalidate(ctx context.Context, shortCode string) {
	if err := s.cache.Delete(ctx, shortCode); err != nil {
		// A stale entry ages out with the TTL; deletion is best effort.
		s.log.Warn("cache invalidation failed", zap.String("short_code", shortCode), zap.Error(err))
	}
}

func validateURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return ErrInvalidURL
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}
