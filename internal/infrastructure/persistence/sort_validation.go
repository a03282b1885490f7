package persistence

import (
	"fmt"
	"strings"

	"github.com/plazafl/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// applyListOptions applies whitelisted ordering and pagination to a query.
// Sort fields outside the whitelist silently fall back to created_at so a
// crafted order_by parameter can never reach the SQL string.
func applyListOptions(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowedFields, "created_at")
	dir := ValidateSortOrder(filter.OrderDir)
	return query.
		Order(fmt.Sprintf("%s %s", field, dir)).
		Offset(filter.Offset()).
		Limit(filter.Limit())
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// BusinessSortFields contains allowed sort fields for businesses
var BusinessSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"owner_name":   true,
	"shop_number":  true,
	"floor_number": true,
	"rent_amount":  true,
	"lease_start":  true,
	"status":       true,
}

// BillSortFields contains allowed sort fields for bills
var BillSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"bill_number":  true,
	"bill_date":    true,
	"due_date":     true,
	"total_amount": true,
	"paid_amount":  true,
	"status":       true,
	"month":        true,
	"year":         true,
}

// MeterReadingSortFields contains allowed sort fields for meter readings
var MeterReadingSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"reading_date":   true,
	"meter_type":     true,
	"consumption":    true,
	"amount":         true,
	"payment_status": true,
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"payment_date": true,
	"amount":       true,
	"method":       true,
}

// PendingPaymentSortFields contains allowed sort fields for pending payment claims
var PendingPaymentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"submitted_at": true,
	"reviewed_at":  true,
	"amount":       true,
	"status":       true,
}

// StaffSortFields contains allowed sort fields for staff
var StaffSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"designation":    true,
	"monthly_salary": true,
	"joined_at":      true,
	"status":         true,
}

// SalaryRecordSortFields contains allowed sort fields for salary records
var SalaryRecordSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"month":       true,
	"year":        true,
	"base_salary": true,
	"status":      true,
	"paid_at":     true,
}

// ExpenseSortFields contains allowed sort fields for expenses
var ExpenseSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"expense_date": true,
	"category":     true,
	"amount":       true,
	"vendor":       true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"display_name":  true,
	"role":          true,
	"status":        true,
	"last_login_at": true,
}

// AdvanceSortFields contains allowed sort fields for advances
var AdvanceSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"month":      true,
	"year":       true,
	"amount":     true,
	"bill_type":  true,
	"status":     true,
}

// PlazaSortFields contains allowed sort fields for plazas
var PlazaSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"code":       true,
	"city":       true,
	"status":     true,
}
