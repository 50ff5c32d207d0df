package repository

import (
	"Linklet-Backend/internal/domain"
	"context"
	"errors"
)

var (
	// ErrCodeNotFound is returned when no live record holds a short code
	// or record identifier.
	ErrCodeNotFound = errors.New("short code not found")

	// ErrCodeExists is returned when an insert collides with a live record's
	// short code. The store's unique constraint is the source of truth;
	// existence pre-checks are an optimization only.
	ErrCodeExists = errors.New("short code already in use")

	// ErrUserExists is returned when registering an email that is taken.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound is returned when no account matches an email.
	ErrUserNotFound = errors.New("user not found")
)

// Storage is the durable link store. Implementations must enforce
// short-code uniqueness at insert time and perform click increments
// atomically: concurrent IncrementClick calls for the same code must not
// lose updates.
type Storage interface {
	// ReserveID allocates a new unique record identifier without inserting
	// anything. Code generation is derived from the identifier, so it has
	// to exist before the record does.
	ReserveID(ctx context.Context) (int64, error)

	// SaveLink persists a new record. Returns ErrCodeExists when the short
	// code is already held by a live record.
	SaveLink(ctx context.Context, link *domain.Link) error

	GetLinkByCode(ctx context.Context, shortCode string) (*domain.Link, error)
	GetLinkByID(ctx context.Context, id int64) (*domain.Link, error)

	// ListLinks returns all live records, newest first.
	ListLinks(ctx context.Context) ([]*domain.Link, error)

	// CodeExists reports whether a live record holds the short code.
	CodeExists(ctx context.Context, shortCode string) (bool, error)

	// IncrementClick adds one to the link's total click count and to its
	// history entry for day (creating the entry if absent), as a single
	// atomic store-level operation.
	IncrementClick(ctx context.Context, shortCode string, day string) error

	DeleteLinkByID(ctx context.Context, id int64) error
	DeleteLinkByCode(ctx context.Context, shortCode string) error

	// User methods
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
