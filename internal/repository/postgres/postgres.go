package postgres

import (
	"Linklet-Backend/internal/domain"
	"Linklet-Backend/internal/repository"
	"Linklet-Backend/pkg/snowflake"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStorage implements the Storage interface for PostgreSQL.
// Record identifiers are allocated from a snowflake generator so they exist
// before the insert; short-code uniqueness is enforced by the unique index
// on links.short_code.
type PostgresStorage struct {
	db  *gorm.DB
	ids *snowflake.Generator
	log *zap.Logger
}

// New creates a new PostgreSQL storage instance. machineID feeds the
// snowflake generator and must be unique per running instance.
func New(db *gorm.DB, machineID int64, log *zap.Logger) (*PostgresStorage, error) {
	ids, err := snowflake.NewGenerator(machineID)
	if err != nil {
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}

	return &PostgresStorage{
		db:  db,
		ids: ids,
		log: log,
	}, nil
}

// --- Link Methods ---

// ReserveID allocates the next record identifier.
func (s *PostgresStorage) ReserveID(_ context.Context) (int64, error) {
	id, err := s.ids.Next()
	if err != nil {
		s.log.Error("failed to reserve record id", zap.Error(err))
		return 0, fmt.Errorf("failed to reserve record id: %w", err)
	}
	return id, nil
}

// SaveLink persists a new link. The unique index on short_code is the
// source of truth for collisions.
func (s *PostgresStorage) SaveLink(ctx context.Context, link *domain.Link) error {
	if err := s.db.WithContext(ctx).Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrCodeExists
		}
		s.log.Error("failed to save link", zap.String("short_code", link.ShortCode), zap.Error(err))
		return fmt.Errorf("failed to save link: %w", err)
	}

	s.log.Info("saved new link", zap.String("short_code", link.ShortCode), zap.Int64("id", link.ID))
	return nil
}

// GetLinkByCode fetches a link with its click history by short code.
func (s *PostgresStorage) GetLinkByCode(ctx context.Context, shortCode string) (*domain.Link, error) {
	var link domain.Link

	err := s.db.WithContext(ctx).
		Preload("ClickHistory", func(db *gorm.DB) *gorm.DB { return db.Order("link_clicks.id ASC") }).
		Where("short_code = ?", shortCode).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrCodeNotFound
	}
	if err != nil {
		s.log.Error("failed to get link", zap.String("short_code", shortCode), zap.Error(err))
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	return &link, nil
}

// GetLinkByID fetches a link with its click history by record identifier.
func (s *PostgresStorage) GetLinkByID(ctx context.Context, id int64) (*domain.Link, error) {
	var link domain.Link

	err := s.db.WithContext(ctx).
		Preload("ClickHistory", func(db *gorm.DB) *gorm.DB { return db.Order("link_clicks.id ASC") }).
		Where("id = ?", id).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrCodeNotFound
	}
	if err != nil {
		s.log.Error("failed to get link by id", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	return &link, nil
}

// ListLinks returns all links, newest first.
func (s *PostgresStorage) ListLinks(ctx context.Context) ([]*domain.Link, error) {
	var links []*domain.Link

	err := s.db.WithContext(ctx).
		Preload("ClickHistory", func(db *gorm.DB) *gorm.DB { return db.Order("link_clicks.id ASC") }).
		Order("created_at DESC").Find(&links).Error
	if err != nil {
		s.log.Error("failed to list links", zap.Error(err))
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	return links, nil
}

// CodeExists reports whether a short code is taken.
func (s *PostgresStorage) CodeExists(ctx context.Context, shortCode string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.Link{}).Where("short_code = ?", shortCode).Count(&count).Error
	if err != nil {
		s.log.Error("failed to check code existence", zap.String("short_code", shortCode), zap.Error(err))
		return false, fmt.Errorf("failed to check code: %w", err)
	}

	return count > 0, nil
}

// IncrementClick adds one click to the link's total and to its history
// entry for day, in a single transaction. Both writes are in-database
// increments (no read-modify-write), so concurrent redirects for the same
// code never lose updates.
func (s *PostgresStorage) IncrementClick(ctx context.Context, shortCode string, day string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var link domain.Link
		err := tx.Select("id").Where("short_code = ?", shortCode).First(&link).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrCodeNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get link for click: %w", err)
		}

		err = tx.Model(&domain.Link{}).Where("id = ?", link.ID).
			Update("click_count", gorm.Expr("click_count + 1")).Error
		if err != nil {
			return fmt.Errorf("failed to update click count: %w", err)
		}

		entry := domain.ClickEntry{LinkID: link.ID, Date: day, Count: 1}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "link_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("link_clicks.count + 1")}),
		}).Create(&entry).Error
		if err != nil {
			return fmt.Errorf("failed to upsert click history: %w", err)
		}

		return nil
	})

	if err != nil && !errors.Is(err, repository.ErrCodeNotFound) {
		s.log.Error("failed to record click", zap.String("short_code", shortCode), zap.String("day", day), zap.Error(err))
	}
	return err
}

// DeleteLinkByID removes a link and (via FK cascade) its click history.
func (s *PostgresStorage) DeleteLinkByID(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Link{})
	if result.Error != nil {
		s.log.Error("failed to delete link by id", zap.Int64("id", id), zap.Error(result.Error))
		return fmt.Errorf("failed to delete link: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrCodeNotFound
	}

	s.log.Info("deleted link", zap.Int64("id", id))
	return nil
}

// DeleteLinkByCode removes a link by its short code.
func (s *PostgresStorage) DeleteLinkByCode(ctx context.Context, shortCode string) error {
	result := s.db.WithContext(ctx).Where("short_code = ?", shortCode).Delete(&domain.Link{})
	if result.Error != nil {
		s.log.Error("failed to delete link", zap.String("short_code", shortCode), zap.Error(result.Error))
		return fmt.Errorf("failed to delete link: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrCodeNotFound
	}

	s.log.Info("deleted link", zap.String("short_code", shortCode))
	return nil
}

// --- User Methods ---

// CreateUser persists a new dashboard account.
func (s *PostgresStorage) CreateUser(ctx context.Context, user *domain.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrUserExists
		}
		s.log.Error("failed to create user", zap.String("email", user.Email), zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("created new user", zap.Int64("user_id", user.ID))
	return nil
}

// GetUserByEmail fetches an active account by email.
func (s *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User

	err := s.db.WithContext(ctx).Where("email = ? AND is_active = ?", email, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		s.log.Error("failed to get user by email", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
