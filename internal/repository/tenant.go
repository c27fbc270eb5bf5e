package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/auth"
	"gorm.io/gorm"
)

// MaxPageSize is the maximum allowed page size for paginated queries
const MaxPageSize = 200

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// SortConfig holds sorting configuration for list queries
type SortConfig struct {
	Field string    // The field to sort by (API field name)
	Order SortOrder // asc or desc
}

// DefaultSortConfig returns a default sort configuration (updated_at DESC)
func DefaultSortConfig() SortConfig {
	return SortConfig{
		Field: "updatedAt",
		Order: SortOrderDesc,
	}
}

// ParseSortOrder parses a string into SortOrder, defaulting to desc
func ParseSortOrder(s string) SortOrder {
	if strings.ToLower(s) == "asc" {
		return SortOrderAsc
	}
	return SortOrderDesc
}

// BuildOrderClause builds the SQL ORDER BY clause from field mapping and sort config.
// fieldMap maps API field names to database column names.
// Returns the default sort if field is not in whitelist.
func BuildOrderClause(config SortConfig, fieldMap map[string]string, defaultColumn string) string {
	column, ok := fieldMap[config.Field]
	if !ok {
		column = defaultColumn
	}

	order := "DESC"
	if config.Order == SortOrderAsc {
		order = "ASC"
	}

	return column + " " + order
}

// ApplyCompanyFilter applies the multi-tenant company filter to a GORM query.
// Every tenant-scoped query must pass through here. The filter is never
// skipped: when no user context is present the filter is uuid.Nil, which
// matches no rows.
func ApplyCompanyFilter(ctx context.Context, query *gorm.DB) *gorm.DB {
	companyID := auth.GetEffectiveCompanyFilter(ctx)
	return query.Where("company_id = ?", companyID)
}

// ApplyCompanyFilterWithColumn applies the company filter using a specific column name.
// Use this when the company_id column needs table qualification.
func ApplyCompanyFilterWithColumn(ctx context.Context, query *gorm.DB, columnName string) *gorm.DB {
	companyID := auth.GetEffectiveCompanyFilter(ctx)
	return query.Where(columnName+" = ?", companyID)
}

// ApplyCompanyFilterWithAlias applies the company filter using a table alias.
// Use this when joining multiple tables and you need to specify which table's
// company_id to filter on.
func ApplyCompanyFilterWithAlias(ctx context.Context, query *gorm.DB, tableAlias string) *gorm.DB {
	companyID := auth.GetEffectiveCompanyFilter(ctx)
	return query.Where(tableAlias+".company_id = ?", companyID)
}

// MustHaveCompanyAccess checks if the caller has access to a specific company's data.
// Useful for single-record operations where the record was loaded without the filter.
func MustHaveCompanyAccess(ctx context.Context, recordCompanyID uuid.UUID) bool {
	companyID := auth.GetEffectiveCompanyFilter(ctx)
	return companyID != uuid.Nil && companyID == recordCompanyID
}
