package plazascope

import (
	"strings"

	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// guardedTables lists the tables the callback guard protects. Tables without
// a plaza_id column (plazas itself, schema_migrations) are left alone.
var guardedTables = map[string]bool{
	"businesses":              true,
	"advances":                true,
	"bills":                   true,
	"meter_readings":          true,
	"billing_settings":        true,
	"maintenance_instalments": true,
	"payments":                true,
	"pending_payments":        true,
	"staff":                   true,
	"salary_records":          true,
	"expenses":                true,
	"users":                   true,
}

// Guard provides GORM callback hooks that re-check plaza filtering on
// queries against plaza-owned tables. Repositories filter explicitly; the
// guard catches any query that slipped through without a plaza condition.
type Guard struct {
	column   string
	required bool
}

// NewGuard creates a new plaza guard
func NewGuard(required bool) *Guard {
	return &Guard{column: "plaza_id", required: required}
}

// Register registers the guard callbacks with GORM
func (g *Guard) Register(db *gorm.DB) {
	_ = db.Callback().Query().Before("gorm:query").Register("plaza:before_query", g.beforeQuery)
	_ = db.Callback().Update().Before("gorm:update").Register("plaza:before_update", g.beforeUpdate)
	_ = db.Callback().Delete().Before("gorm:delete").Register("plaza:before_delete", g.beforeDelete)
	_ = db.Callback().Row().Before("gorm:row").Register("plaza:before_row", g.beforeQuery)

	// Create is not guarded: plaza_id is set explicitly by the application
	// when constructing aggregates.
}

func (g *Guard) beforeQuery(db *gorm.DB) {
	g.addPlazaFilter(db)
}

func (g *Guard) beforeUpdate(db *gorm.DB) {
	g.addPlazaFilter(db)
}

func (g *Guard) beforeDelete(db *gorm.DB) {
	g.addPlazaFilter(db)
}

func (g *Guard) addPlazaFilter(db *gorm.DB) {
	if db.Statement.Context == nil {
		return
	}

	if db.Statement.Unscoped {
		return
	}

	if !guardedTables[db.Statement.Table] {
		return
	}

	if g.hasPlazaCondition(db) {
		return
	}

	plazaID := logger.GetPlazaID(db.Statement.Context)
	if plazaID == "" {
		if g.required {
			_ = db.AddError(ErrPlazaIDRequired)
		}
		return
	}

	if _, err := uuid.Parse(plazaID); err != nil {
		_ = db.AddError(ErrInvalidPlazaID)
		return
	}

	db.Statement.AddClause(clause.Where{
		Exprs: []clause.Expression{
			clause.Eq{
				Column: clause.Column{Table: clause.CurrentTable, Name: g.column},
				Value:  plazaID,
			},
		},
	})
}

// hasPlazaCondition checks whether a plaza_id condition is already present
func (g *Guard) hasPlazaCondition(db *gorm.DB) bool {
	if whereClause, ok := db.Statement.Clauses["WHERE"]; ok {
		if where, ok := whereClause.Expression.(clause.Where); ok {
			for _, expr := range where.Exprs {
				if g.exprContainsPlaza(expr) {
					return true
				}
			}
		}
	}

	sql := db.Statement.SQL.String()
	if sql != "" && strings.Contains(sql, g.column) {
		return true
	}

	return false
}

func (g *Guard) exprContainsPlaza(expr clause.Expression) bool {
	switch e := expr.(type) {
	case clause.Eq:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == g.column
		}
	case clause.IN:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == g.column
		}
	case clause.Expr:
		return strings.Contains(e.SQL, g.column)
	case clause.AndConditions:
		for _, cond := range e.Exprs {
			if g.exprContainsPlaza(cond) {
				return true
			}
		}
	case clause.OrConditions:
		for _, cond := range e.Exprs {
			if g.exprContainsPlaza(cond) {
				return true
			}
		}
	}
	return false
}

// EnableGuard registers the plaza guard on a GORM DB instance
func EnableGuard(db *gorm.DB, required bool) {
	NewGuard(required).Register(db)
}

// DisableGuard removes the guard callbacks. Mainly for tests.
func DisableGuard(db *gorm.DB) {
	_ = db.Callback().Query().Remove("plaza:before_query")
	_ = db.Callback().Update().Remove("plaza:before_update")
	_ = db.Callback().Delete().Remove("plaza:before_delete")
	_ = db.Callback().Row().Remove("plaza:before_row")
}
