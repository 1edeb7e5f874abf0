package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "ASC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "DESC" {
		return "DESC"
	}
	return "ASC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is empty or not allowed.
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

// ProductSortFields contains allowed sort fields for the catalog listing.
// The public listing only ever sorts by price, the rest serve admin tooling.
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"price":      true,
	"title":      true,
	"code":       true,
}
