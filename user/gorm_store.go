package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nestora/nestora-api/database"
)

// GormStore is the relational implementation of Store.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by the given GORM handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ Store = (*GormStore)(nil)

func (s *GormStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("user: find by email: %w", err)
	}
	return &u, nil
}

func (s *GormStore) FindByID(ctx context.Context, id int64) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("user: find by id: %w", err)
	}
	return &u, nil
}

func (s *GormStore) Save(ctx context.Context, u *User) (*User, error) {
	now := time.Now()
	if u.ID == 0 && u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	if u.Role == "" {
		u.Role = DefaultRole
	}

	if err := s.db.WithContext(ctx).Save(u).Error; err != nil {
		if database.IsDuplicateError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("user: save: %w", err)
	}
	return u, nil
}

