package main

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is the store-level "no such record" signal. Handlers and the
// resource guard branch on it with errors.Is; everything else from a store is
// treated as an unexpected failure.
var ErrNotFound = errors.New("record not found")

type UserStore interface {
	ByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, u *User) error
}

type TodoStore interface {
	All(ctx context.Context) ([]Todo, error)
	ByID(ctx context.Context, id string) (Todo, error)
	Create(ctx context.Context, t *Todo) error
	Update(ctx context.Context, t *Todo) error
	// DeleteByID fetches and deletes in one transaction, returning the record
	// as it was before deletion.
	DeleteByID(ctx context.Context, id string) (Todo, error)
}

// Process-wide stores, wired once at startup (tests swap in fakes).
var (
	users UserStore
	todos TodoStore
)

type gormUserStore struct{ db *gorm.DB }

func newGormUserStore(db *gorm.DB) *gormUserStore { return &gormUserStore{db: db} }

func (s *gormUserStore) ByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (s *gormUserStore) Create(ctx context.Context, u *User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

type gormTodoStore struct{ db *gorm.DB }

func newGormTodoStore(db *gorm.DB) *gormTodoStore { return &gormTodoStore{db: db} }

func (s *gormTodoStore) All(ctx context.Context) ([]Todo, error) {
	var list []Todo
	if err := s.db.WithContext(ctx).Order("created_at").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *gormTodoStore) ByID(ctx context.Context, id string) (Todo, error) {
	var t Todo
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Todo{}, ErrNotFound
	}
	return t, err
}

func (s *gormTodoStore) Create(ctx context.Context, t *Todo) error {
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *gormTodoStore) Update(ctx context.Context, t *Todo) error {
	return s.db.WithContext(ctx).Save(t).Error
}

func (s *gormTodoStore) DeleteByID(ctx context.Context, id string) (Todo, error) {
	var t Todo
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&t).Error; err != nil {
			return err
		}
		return tx.Delete(&Todo{}, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Todo{}, ErrNotFound
	}
	return t, err
}
