// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// AssistanceRequest model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a request is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/krishi-mitra/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateAssistanceRequest inserts a new request with a UUID primary key and a
// UTC creation timestamp.
func CreateAssistanceRequest(ctx context.Context, db *gorm.DB, phone, issue, lang string) (*domain.AssistanceRequest, error) {
	r := &domain.AssistanceRequest{
		ID:        uuid.NewString(),
		Phone:     phone,
		Issue:     issue,
		Language:  lang,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetAssistanceRequest fetches a single request by ID, or ErrNotFound.
func GetAssistanceRequest(ctx context.Context, db *gorm.DB, id string) (*domain.AssistanceRequest, error) {
	var r domain.AssistanceRequest
	if err := db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// ListAssistanceByPhone returns the requests filed from one phone number,
// newest first.
func ListAssistanceByPhone(ctx context.Context, db *gorm.DB, phone string, limit int) ([]domain.AssistanceRequest, error) {
	var out []domain.AssistanceRequest
	q := db.WithContext(ctx).Where("phone = ?", phone).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}
