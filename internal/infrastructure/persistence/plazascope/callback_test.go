package plazascope

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// guardedModel maps to a table the guard protects
type guardedModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	PlazaID uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (guardedModel) TableName() string {
	return "expenses"
}

// freeModel maps to a table without a plaza_id column
type freeModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"size:100"`
}

func (freeModel) TableName() string {
	return "plazas"
}

func TestGuard_Register(t *testing.T) {
	db, _, mockDB := setupMockDB(t)
	defer mockDB.Close()

	g := NewGuard(true)
	g.Register(db)
}

func TestEnableGuard_RequiredEnforcement(t *testing.T) {
	t.Run("errors when plaza required but missing in context", func(t *testing.T) {
		db, _, mockDB := setupMockDB(t)
		defer mockDB.Close()

		EnableGuard(db, true)

		ctx := context.Background()
		var results []guardedModel

		err := db.WithContext(ctx).Find(&results).Error

		assert.ErrorIs(t, err, ErrPlazaIDRequired)
	})

	t.Run("errors on invalid UUID format", func(t *testing.T) {
		db, _, mockDB := setupMockDB(t)
		defer mockDB.Close()

		EnableGuard(db, true)

		ctx := contextWithPlaza("not-a-valid-uuid")
		var results []guardedModel

		err := db.WithContext(ctx).Find(&results).Error

		assert.ErrorIs(t, err, ErrInvalidPlazaID)
	})
}

func TestEnableGuard_AddsFilter(t *testing.T) {
	t.Run("adds plaza filter when missing", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		EnableGuard(db, true)

		plazaID := uuid.New()
		ctx := contextWithPlaza(plazaID.String())

		mock.ExpectQuery(`SELECT \* FROM "expenses" WHERE "expenses"\."plaza_id" = \$1`).
			WithArgs(plazaID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "plaza_id"}))

		var results []guardedModel
		err := db.WithContext(ctx).Find(&results).Error
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("keeps explicit plaza condition as-is", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		EnableGuard(db, true)

		plazaID := uuid.New()
		ctx := contextWithPlaza(plazaID.String())

		mock.ExpectQuery(`SELECT \* FROM "expenses" WHERE plaza_id = \$1`).
			WithArgs(plazaID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "plaza_id"}))

		var results []guardedModel
		err := db.WithContext(ctx).Where("plaza_id = ?", plazaID).Find(&results).Error
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEnableGuard_SkipsUnguardedTables(t *testing.T) {
	t.Run("leaves tables without plaza_id alone", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		EnableGuard(db, true)

		mock.ExpectQuery(`SELECT \* FROM "plazas"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		var results []freeModel
		err := db.WithContext(context.Background()).Find(&results).Error
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDisableGuard(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()

	EnableGuard(db, true)
	DisableGuard(db)

	mock.ExpectQuery(`SELECT \* FROM "expenses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "plaza_id"}))

	var results []guardedModel
	err := db.WithContext(context.Background()).Find(&results).Error
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
