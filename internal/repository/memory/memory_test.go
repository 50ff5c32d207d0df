package memory

import (
	"context"
	"sync"
	"testing"

	"Linklet-Backend/internal/domain"
	"Linklet-Backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLink(t *testing.T, s *MemStorage, code, url string) *domain.Link {
	t.Helper()

	id, err := s.ReserveID(context.Background())
	require.NoError(t, err)

	link := &domain.Link{ID: id, ShortCode: code, OriginalURL: url}
	require.NoError(t, s.SaveLink(context.Background(), link))
	return link
}

func TestSaveLinkRejectsDuplicateCode(t *testing.T) {
	s := New()
	ctx := context.Background()

	newTestLink(t, s, "abcd", "https://example.com/a")

	id, err := s.ReserveID(ctx)
	require.NoError(t, err)
	err = s.SaveLink(ctx, &domain.Link{ID: id, ShortCode: "abcd", OriginalURL: "https://example.com/b"})
	assert.ErrorIs(t, err, repository.ErrCodeExists)

	// The original record must be untouched.
	got, err := s.GetLinkByCode(ctx, "abcd")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", got.OriginalURL)
}

func TestGetLinkByCodeNotFound(t *testing.T) {
	s := New()

	_, err := s.GetLinkByCode(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrCodeNotFound)
}

func TestGetLinkByID(t *testing.T) {
	s := New()
	ctx := context.Background()

	link := newTestLink(t, s, "abcd", "https://example.com/a")

	got, err := s.GetLinkByID(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, "abcd", got.ShortCode)

	_, err = s.GetLinkByID(ctx, link.ID+1)
	assert.ErrorIs(t, err, repository.ErrCodeNotFound)
}

func TestListLinksNewestFirst(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := newTestLink(t, s, "aaaa", "https://example.com/1")
	second := newTestLink(t, s, "bbbb", "https://example.com/2")
	third := newTestLink(t, s, "cccc", "https://example.com/3")

	links, err := s.ListLinks(ctx)
	require.NoError(t, err)
	require.Len(t, links, 3)
	assert.Equal(t, third.ShortCode, links[0].ShortCode)
	assert.Equal(t, second.ShortCode, links[1].ShortCode)
	assert.Equal(t, first.ShortCode, links[2].ShortCode)
}

func TestIncrementClick(t *testing.T) {
	s := New()
	ctx := context.Background()

	newTestLink(t, s, "abcd", "https://example.com/a")

	require.NoError(t, s.IncrementClick(ctx, "abcd", "2026-08-29"))
	require.NoError(t, s.IncrementClick(ctx, "abcd", "2026-08-29"))
	require.NoError(t, s.IncrementClick(ctx, "abcd", "2026-08-30"))

	link, err := s.GetLinkByCode(ctx, "abcd")
	require.NoError(t, err)
	assert.EqualValues(t, 3, link.ClickCount)
	require.Len(t, link.ClickHistory, 2)
	assert.Equal(t, "2026-08-29", link.ClickHistory[0].Date)
	assert.EqualValues(t, 2, link.ClickHistory[0].Count)
	assert.Equal(t, "2026-08-30", link.ClickHistory[1].Date)
	assert.EqualValues(t, 1, link.ClickHistory[1].Count)

	err = s.IncrementClick(ctx, "missing", "2026-08-29")
	assert.ErrorIs(t, err, repository.ErrCodeNotFound)
}

func TestIncrementClickConcurrent(t *testing.T) {
	s := New()
	ctx := context.Background()

	newTestLink(t, s, "abcd", "https://example.com/a")

	const n = 500
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.IncrementClick(ctx, "abcd", "2026-08-29")
		}()
	}
	wg.Wait()

	link, err := s.GetLinkByCode(ctx, "abcd")
	require.NoError(t, err)
	assert.EqualValues(t, n, link.ClickCount)

	var sum int64
	for _, entry := range link.ClickHistory {
		sum += entry.Count
	}
	assert.EqualValues(t, n, sum, "history total must match click count")
}

func TestDeleteLink(t *testing.T) {
	s := New()
	ctx := context.Background()

	link := newTestLink(t, s, "abcd", "https://example.com/a")

	require.NoError(t, s.DeleteLinkByID(ctx, link.ID))
	_, err := s.GetLinkByCode(ctx, "abcd")
	assert.ErrorIs(t, err, repository.ErrCodeNotFound)

	assert.ErrorIs(t, s.DeleteLinkByID(ctx, link.ID), repository.ErrCodeNotFound)
	assert.ErrorIs(t, s.DeleteLinkByCode(ctx, "abcd"), repository.ErrCodeNotFound)

	other := newTestLink(t, s, "wxyz", "https://example.com/b")
	require.NoError(t, s.DeleteLinkByCode(ctx, other.ShortCode))
	links, err := s.ListLinks(ctx)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestUsers(t *testing.T) {
	s := New()
	ctx := context.Background()

	user := &domain.User{Email: "dev@example.com", PasswordHash: "hash"}
	require.NoError(t, s.CreateUser(ctx, user))
	assert.NotZero(t, user.ID)

	err := s.CreateUser(ctx, &domain.User{Email: "dev@example.com", PasswordHash: "other"})
	assert.ErrorIs(t, err, repository.ErrUserExists)

	got, err := s.GetUserByEmail(ctx, "dev@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
