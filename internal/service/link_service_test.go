package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"Linklet-Backend/internal/cache"
	"Linklet-Backend/internal/repository"
	"Linklet-Backend/internal/repository/memory"
	"Linklet-Backend/internal/shortcode"
	"Linklet-Backend/pkg/base62"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCache is an in-memory Cache with switchable failure modes, standing in
// for an unreachable Redis.
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string

	failGet    bool
	failSet    bool
	failDelete bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, shortCode string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return "", false, errors.New("cache unavailable")
	}
	val, ok := c.data[shortCode]
	return val, ok, nil
}

func (c *fakeCache) Set(_ context.Context, shortCode, originalURL string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSet {
		return errors.New("cache unavailable")
	}
	c.data[shortCode] = originalURL
	return nil
}

func (c *fakeCache) Delete(_ context.Context, shortCode string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failDelete {
		return errors.New("cache unavailable")
	}
	delete(c.data, shortCode)
	return nil
}

func (c *fakeCache) get(shortCode string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.data[shortCode]
	return val, ok
}

func newTestService(t *testing.T, redirectCache cache.Cache) (*LinkService, *memory.MemStorage) {
	t.Helper()
	storage := memory.New()
	return NewLinkService(storage, redirectCache, zap.NewNop()), storage
}

func fixedClock(day string) func() time.Time {
	ts, _ := time.Parse("2006-01-02", day)
	return func() time.Time { return ts }
}

func TestCreateDerivesCode(t *testing.T) {
	svc, _ := newTestService(t, newFakeCache())

	link, err := svc.Create(context.Background(), "https://example.com/a", "")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(link.ShortCode), 6)
	assert.LessOrEqual(t, len(link.ShortCode), 10)
	assert.True(t, base62.IsValid(link.ShortCode))
	assert.Equal(t, shortcode.Derive(link.ID), link.ShortCode)
	assert.EqualValues(t, 0, link.ClickCount)
	assert.Empty(t, link.ClickHistory)
}

func TestCreatePopulatesCache(t *testing.T) {
	fc := newFakeCache()
	svc, _ := newTestService(t, fc)

	link, err := svc.Create(context.Background(), "https://example.com/a", "")
	require.NoError(t, err)

	cached, ok := fc.get(link.ShortCode)
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/a", cached)
}

func TestCreateSurvivesCacheFailure(t *testing.T) {
	fc := newFakeCache()
	fc.failSet = true
	svc, _ := newTestService(t, fc)

	link, err := svc.Create(context.Background(), "https://example.com/a", "")
	require.NoError(t, err, "cache failures must never fail creation")
	assert.NotEmpty(t, link.ShortCode)
}

func TestCreateRejectsInvalidURL(t *testing.T) {
	svc, _ := newTestService(t, cache.NewNoop())

	for _, raw := range []string{"", "not a url", "ftp://example.com/file", "https://", "example.com/no-scheme"} {
		_, err := svc.Create(context.Background(), raw, "")
		assert.ErrorIs(t, err, ErrInvalidURL, "input %q", raw)
	}
}

func TestCreateValidatesCustomCode(t *testing.T) {
	svc, _ := newTestService(t, cache.NewNoop())

	_, err := svc.Create(context.Background(), "https://example.com/a", "abc")
	assert.ErrorIs(t, err, shortcode.ErrBadLength)

	_, err = svc.Create(context.Background(), "https://example.com/a", "toolongcustom")
	assert.ErrorIs(t, err, shortcode.ErrBadLength)

	_, err = svc.Create(context.Background(), "https://example.com/a", "ab_cd")
	assert.ErrorIs(t, err, shortcode.ErrBadAlphabet)

	link, err := svc.Create(context.Background(), "https://example.com/a", "abcd")
	require.NoError(t, err)
	assert.Equal(t, "abcd", link.ShortCode)
}

func TestCreateCustomCodeCollision(t *testing.T) {
	svc, _ := newTestService(t, cache.NewNoop())
	ctx := context.Background()

	first, err := svc.Create(ctx, "https://example.com/a", "abcd")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "https://example.com/b", "abcd")
	assert.ErrorIs(t, err, repository.ErrCodeExists)

	// The pre-existing link is unmodified.
	got, err := svc.GetStats(ctx, "abcd")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "https://example.com/a", got.OriginalURL)
}

func TestCreateNeverCollides(t *testing.T) {
	svc, _ := newTestService(t, cache.NewNoop())
	ctx := context.Background()

	codes := make(map[string]struct{}, 200)
	for i := 0; i < 200; i++ {
		link, err := svc.Create(ctx, fmt.Sprintf("https://example.com/%d", i), "")
		require.NoError(t, err)

		_, dup := codes[link.ShortCode]
		require.False(t, dup, "derived code %q collided", link.ShortCode)
		codes[link.ShortCode] = struct{}{}
	}
}

func TestResolveMissPathCountsSynchronously(t *testing.T) {
	svc, _ := newTestService(t, cache.NewNoop())
	svc.now = fixedClock("2026-08-29")
	ctx := context.Background()

	link, err := svc.Create(ctx, "https://example.com/a", "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := svc.Resolve(ctx, link.ShortCode)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a", got)
	}

	stats, err := svc.GetStats(ctx, link.ShortCode)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.ClickCount)
	require.Len(t, stats.ClickHistory, 1)
	assert.Equal(t, "2026-08-29", stats.ClickHistory[0].Date)
	assert.EqualValues(t, 3, stats.ClickHistory[0].Count)
}

func TestResolveRepopulatesCache(t *testing.T) {
	fc := newFakeCache()
	svc, _ := newTestService(t, fc)
	ctx := context.Background()

	link, err := svc.Create(ctx, "https://example.com/a", "")
	require.NoError(t, err)

	// Simulate an expired entry, then resolve through the store.
	require.NoError(t, fc.Delete(ctx, link.ShortCode))
	_, err = svc.Resolve(ctx, link.ShortCode)
	require.NoError(t, err)

	cached, ok := fc.get(link.ShortCode)
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/a", cached)
}

func TestResolveCacheHitCountsInBackground(t *testing.T) {
	fc := newFakeCache()
	svc, _ := newTestService(t, fc)
	svc.now = fixedClock("2026-08-29")
	ctx := context.Background()

	link, err := svc.Create(ctx, "https://example.com/a", "")
	require.NoError(t, err)

	got, err := svc.Resolve(ctx, link.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", got)

	// The counter update is detached; it lands shortly after the response.
	assert.Eventually(t, func() bool {
		stats, err := svc.GetStats(ctx, link.ShortCode)
		return err == nil && stats.ClickCount == 1
	}, 2*time.Second, 10*time.Millisecond)

	stats, err := svc.GetStats(ctx, link.ShortCode)
	require.NoError(t, err)
	require.Len(t, stats.ClickHistory, 1)
	assert.EqualValues(t, 1, stats.ClickHistory[0].Count)
}

func TestResolveCacheHitToleratesDeletedRecord(t *testing.T) {
	fc := newFakeCache()
	svc, _ := newTestService(t, fc)
	ctx := context.Background()

	// A stale cache entry with no backing record: the redirect still works,
	// the background counter update is a no-op.
	require.NoError(t, fc.Set(ctx, "ghost1", "https://example.com/gone"))

	got, err := svc.Resolve(ctx, "ghost1")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/gone", got)
}

func TestResolveUnknownCode(t *testing.T) {
	svc, _ := newTestService(t, newFakeCache())

	_, err := svc.Resolve(context.Background(), "nosuch")
	assert.ErrorIs(t, err, repository.ErrCodeNotFound)
}

func TestResolveUnknownCodeWithCacheDown(t *testing.T) {
	fc := newFakeCache()
	fc.failGet = true
	svc, _ := newTestService(t, fc)

	_, err := svc.Resolve(context.Background(), "nosuch")
	assert.ErrorIs(t, err, repository.ErrCodeNotFound)
}

func TestResolveWithCacheDownDegradesToStore(t *testing.T) {
	fc := newFakeCache()
	fc.failGet = true
	fc.failSet = true
	svc, _ := newTestService(t, fc)
	ctx := context.Background()

	link, err := svc.Create(ctx, "https://example.com/a", "")
	require.NoError(t, err)

	got, err := svc.Resolve(ctx, link.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", got)

	stats, err := svc.GetStats(ctx, link.ShortCode)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.ClickCount)
}

func TestConcurrentResolvesLoseNoClicks(t *testing.T) {
	svc, _ := newTestService(t, cache.NewNoop())
	svc.now = fixedClock("2026-08-29")
	ctx := context.Background()

	link, err := svc.Create(ctx, "https://example.com/a", "")
	require.NoError(t, err)

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Resolve(ctx, link.ShortCode)
		}()
	}
	wg.Wait()

	stats, err := svc.GetStats(ctx, link.ShortCode)
	require.NoError(t, err)
	assert.EqualValues(t, n, stats.ClickCount)

	var sum int64
	for _, entry := range stats.ClickHistory {
		sum += entry.Count
	}
	assert.EqualValues(t, n, sum)
}

func TestDeleteInvalidatesCache(t *testing.T) {
	fc := newFakeCache()
	svc, _ := newTestService(t, fc)
	ctx := context.Background()

	link, err := svc.Create(ctx, "https://example.com/a", "")
	require.NoError(t, err)
	_, ok := fc.get(link.ShortCode)
	require.True(t, ok)

	require.NoError(t, svc.DeleteByID(ctx, link.ID))

	_, ok = fc.get(link.ShortCode)
	assert.False(t, ok, "delete must invalidate the cache entry")

	_, err = svc.Resolve(ctx, link.ShortCode)
	assert.ErrorIs(t, err, repository.ErrCodeNotFound)

	links, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestDeleteByCode(t *testing.T) {
	svc, _ := newTestService(t, cache.NewNoop())
	ctx := context.Background()

	link, err := svc.Create(ctx, "https://example.com/a", "abcd")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByCode(ctx, link.ShortCode))
	assert.ErrorIs(t, svc.DeleteByCode(ctx, link.ShortCode), repository.ErrCodeNotFound)
	assert.ErrorIs(t, svc.DeleteByID(ctx, link.ID), repository.ErrCodeNotFound)
}

func TestListNewestFirst(t *testing.T) {
	svc, _ := newTestService(t, cache.NewNoop())
	ctx := context.Background()

	a, err := svc.Create(ctx, "https://example.com/a", "")
	require.NoError(t, err)
	b, err := svc.Create(ctx, "https://example.com/b", "")
	require.NoError(t, err)

	links, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, b.ShortCode, links[0].ShortCode)
	assert.Equal(t, a.ShortCode, links[1].ShortCode)
}

// Full lifecycle: create, resolve three times on one day, check stats,
// delete, resolve again.
func TestLinkLifecycle(t *testing.T) {
	svc, _ := newTestService(t, cache.NewNoop())
	svc.now = fixedClock("2026-08-29")
	ctx := context.Background()

	link, err := svc.Create(ctx, "https://example.com/a", "")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(link.ShortCode), 6)
	require.LessOrEqual(t, len(link.ShortCode), 10)

	for i := 0; i < 3; i++ {
		_, err := svc.Resolve(ctx, link.ShortCode)
		require.NoError(t, err)
	}

	stats, err := svc.GetStats(ctx, link.ShortCode)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.ClickCount)
	require.Len(t, stats.ClickHistory, 1)
	assert.Equal(t, "2026-08-29", stats.ClickHistory[0].Date)
	assert.EqualValues(t, 3, stats.ClickHistory[0].Count)

	require.NoError(t, svc.DeleteByID(ctx, link.ID))
	_, err = svc.Resolve(ctx, link.ShortCode)
	assert.ErrorIs(t, err, repository.ErrCodeNotFound)
}
