// Package memory is an in-memory Storage implementation. It backs tests and
// local development; the maps are guarded by a single RWMutex, which gives
// IncrementClick the same atomicity the SQL store gets from its transaction.
package memory

import (
	"Linklet-Backend/internal/domain"
	"Linklet-Backend/internal/repository"
	"Linklet-Backend/pkg/snowflake"
	"context"
	"sort"
	"sync"
	"time"
)

type MemStorage struct {
	mu           sync.RWMutex
	linksByCode  map[string]*domain.Link
	usersByEmail map[string]*domain.User
	ids          *snowflake.Generator
	userCounter  int64
}

func New() *MemStorage {
	// Machine ID 0 is fine here: a MemStorage never shares an ID space.
	ids, _ := snowflake.NewGenerator(0)

	return &MemStorage{
		linksByCode:  make(map[string]*domain.Link),
		usersByEmail: make(map[string]*domain.User),
		ids:          ids,
	}
}

// --- Link Methods ---

func (s *MemStorage) ReserveID(_ context.Context) (int64, error) {
	return s.ids.Next()
}

func (s *MemStorage) SaveLink(_ context.Context, link *domain.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.linksByCode[link.ShortCode]; exists {
		return repository.ErrCodeExists
	}

	now := time.Now()
	link.CreatedAt = now
	link.UpdatedAt = now
	s.linksByCode[link.ShortCode] = link
	return nil
}

func (s *MemStorage) GetLinkByCode(_ context.Context, shortCode string) (*domain.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.linksByCode[shortCode]
	if !ok {
		return nil, repository.ErrCodeNotFound
	}
	return copyLink(link), nil
}

func (s *MemStorage) GetLinkByID(_ context.Context, id int64) (*domain.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, link := range s.linksByCode {
		if link.ID == id {
			return copyLink(link), nil
		}
	}
	return nil, repository.ErrCodeNotFound
}

func (s *MemStorage) ListLinks(_ context.Context) ([]*domain.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	links := make([]*domain.Link, 0, len(s.linksByCode))
	for _, link := range s.linksByCode {
		links = append(links, copyLink(link))
	}

	sort.Slice(links, func(i, j int) bool {
		if links[i].CreatedAt.Equal(links[j].CreatedAt) {
			return links[i].ID > links[j].ID
		}
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})

	return links, nil
}

func (s *MemStorage) CodeExists(_ context.Context, shortCode string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.linksByCode[shortCode]
	return ok, nil
}

func (s *MemStorage) IncrementClick(_ context.Context, shortCode string, day string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.linksByCode[shortCode]
	if !ok {
		return repository.ErrCodeNotFound
	}

	link.ClickCount++
	link.UpdatedAt = time.Now()

	for i := range link.ClickHistory {
		if link.ClickHistory[i].Date == day {
			link.ClickHistory[i].Count++
			return nil
		}
	}
	link.ClickHistory = append(link.ClickHistory, domain.ClickEntry{
		LinkID: link.ID,
		Date:   day,
		Count:  1,
	})
	return nil
}

func (s *MemStorage) DeleteLinkByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for code, link := range s.linksByCode {
		if link.ID == id {
			delete(s.linksByCode, code)
			return nil
		}
	}
	return repository.ErrCodeNotFound
}

func (s *MemStorage) DeleteLinkByCode(_ context.Context, shortCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.linksByCode[shortCode]; !ok {
		return repository.ErrCodeNotFound
	}
	delete(s.linksByCode, shortCode)
	return nil
}

// --- User Methods ---

func (s *MemStorage) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByEmail[user.Email]; exists {
		return repository.ErrUserExists
	}

	s.userCounter++
	user.ID = s.userCounter
	user.CreatedAt = time.Now()
	user.IsActive = true
	s.usersByEmail[user.Email] = user
	return nil
}

func (s *MemStorage) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByEmail[email]
	if !ok || !user.IsActive {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

// copyLink returns a snapshot so callers never observe a record mid-update.
func copyLink(link *domain.Link) *domain.Link {
	cp := *link
	cp.ClickHistory = make([]domain.ClickEntry, len(link.ClickHistory))
	copy(cp.ClickHistory, link.ClickHistory)
	return &cp
}
