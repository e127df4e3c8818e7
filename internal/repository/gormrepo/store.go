package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/charlesng35/pitwall/internal/repository"
)

// Store implements repository.Repository on top of GORM.
type Store struct {
	db *gorm.DB
}

var _ repository.Repository = (*Store)(nil)

// New constructs a Store. The schema must already be migrated.
func New(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("gorm repository: db is required")
	}
	return &Store{db: db}, nil
}

// Atomic runs fn inside a transaction. Nested calls use savepoints.
func (s *Store) Atomic(ctx context.Context, fn func(repository.Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.db.WithContext(ctx)
}

// first loads a single row by id, mapping a miss to repository.ErrNotFound.
func first[T any](ctx context.Context, s *Store, id string) (*T, error) {
	var out T
	err := s.conn(ctx).First(&out, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// save creates rows without an id and upserts the rest.
func save(ctx context.Context, s *Store, id string, value any) error {
	db := s.conn(ctx).Omit(clause.Associations)
	if id == "" {
		return translate(db.Create(value).Error)
	}
	return translate(db.Save(value).Error)
}

// remove deletes a single row by id, reporting a miss as repository.ErrNotFound.
func remove[T any](ctx context.Context, s *Store, id string) error {
	var model T
	result := s.conn(ctx).Where("id = ?", id).Delete(&model)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
