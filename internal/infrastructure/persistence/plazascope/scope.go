// Package plazascope provides plaza-level database scoping for GORM.
//
// Every tenant-owned table carries a plaza_id column. This package extracts
// the plaza ID from the request context and applies WHERE plaza_id = ?
// conditions so a request can never read or mutate another plaza's rows.
//
// Usage:
//
//	db := plazascope.NewScopedDB(gormDB)
//	scoped := db.WithContext(ctx) // applies plaza filtering
//	scoped.Find(&bills) // WHERE plaza_id = 'xxx' is auto-added
package plazascope

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

// ErrPlazaIDRequired is returned when plaza_id is required but not found
var ErrPlazaIDRequired = errors.New("plaza_id is required but not found in context")

// ErrInvalidPlazaID is returned when plaza_id format is invalid
var ErrInvalidPlazaID = errors.New("invalid plaza_id format")

// Scope applies plaza filtering to GORM queries
func Scope(plazaID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("plaza_id = ?", plazaID)
	}
}

// ScopeString applies plaza filtering using a string plaza ID
func ScopeString(plazaID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("plaza_id = ?", plazaID)
	}
}

// ScopedDB wraps GORM DB with automatic plaza scoping
type ScopedDB struct {
	db       *gorm.DB
	required bool
}

// NewScopedDB creates a new ScopedDB. The plaza ID is mandatory by default.
func NewScopedDB(db *gorm.DB) *ScopedDB {
	return &ScopedDB{db: db, required: true}
}

// DB returns the underlying GORM DB without plaza scoping.
// Use with caution, this bypasses plaza isolation.
func (s *ScopedDB) DB() *gorm.DB {
	return s.db
}

// WithContext returns a GORM DB scoped to the plaza from context.
// It extracts plaza_id from the context (set by auth middleware)
// and applies the plaza filter to all queries.
//
// If plaza_id is not found in context and the scope is required, it
// returns a DB that will error on any operation.
func (s *ScopedDB) WithContext(ctx context.Context) *gorm.DB {
	plazaID := logger.GetPlazaID(ctx)

	if plazaID == "" {
		if s.required {
			db := s.db.WithContext(ctx)
			_ = db.AddError(ErrPlazaIDRequired)
			return db
		}
		return s.db.WithContext(ctx)
	}

	if _, err := uuid.Parse(plazaID); err != nil {
		db := s.db.WithContext(ctx)
		_ = db.AddError(ErrInvalidPlazaID)
		return db
	}

	return s.db.WithContext(ctx).Scopes(ScopeString(plazaID))
}

// WithPlaza returns a GORM DB scoped to a specific plaza ID.
// Use this when the plaza ID is known directly rather than from context.
func (s *ScopedDB) WithPlaza(plazaID uuid.UUID) *gorm.DB {
	if plazaID == uuid.Nil {
		if s.required {
			db := s.db
			_ = db.AddError(ErrPlazaIDRequired)
			return db
		}
		return s.db
	}
	return s.db.Scopes(Scope(plazaID))
}

// ForPlaza returns a context-carrying GORM DB scoped to a specific plaza.
func (s *ScopedDB) ForPlaza(ctx context.Context, plazaID uuid.UUID) *gorm.DB {
	return s.db.WithContext(ctx).Scopes(Scope(plazaID))
}

// Transaction executes a function within a transaction with plaza scope
func (s *ScopedDB) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	plazaID := logger.GetPlazaID(ctx)

	if plazaID == "" && s.required {
		return ErrPlazaIDRequired
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if plazaID != "" {
			tx = tx.Scopes(ScopeString(plazaID))
		}
		return fn(tx)
	})
}

// Unscoped returns the underlying DB without any plaza scoping.
// Only system-level operations and migrations should use this.
func (s *ScopedDB) Unscoped() *gorm.DB {
	return s.db
}

// SetRequired changes whether plaza_id is required
func (s *ScopedDB) SetRequired(required bool) *ScopedDB {
	return &ScopedDB{db: s.db, required: required}
}
