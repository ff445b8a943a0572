package persistence

import (
	"strings"

	"github.com/hydroerp/backend/internal/domain/shared"
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

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the empty string if the input is not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool) string {
	trimmed := strings.TrimSpace(sortField)
	if allowedFields[trimmed] {
		return trimmed
	}
	return ""
}

// sortClause builds an ORDER BY clause from the filter against a whitelist.
// The second return value is false when the filter carries no usable field.
func sortClause(filter shared.Filter, allowedFields map[string]bool) (string, bool) {
	field := ValidateSortField(filter.OrderBy, allowedFields)
	if field == "" {
		return "", false
	}
	return field + " " + ValidateSortOrder(filter.OrderDir), true
}

// articleSortColumns contains allowed sort fields for catalog articles
var articleSortColumns = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"family":     true,
	"unit":       true,
	"status":     true,
}

// draftSortColumns contains allowed sort fields for quote drafts
var draftSortColumns = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"draft_number":  true,
	"customer_name": true,
	"status":        true,
	"submitted_at":  true,
}
