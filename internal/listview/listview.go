// Package listview provides the generic search and pagination engine shared
// by the dashboard list views (questions, parents, submissions).
package listview

import "strings"

// Page is one stable slice of a collection.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalPages int
	TotalCount int
}

// Filter returns the records whose designated fields contain term as a
// case-insensitive substring. An empty term matches everything. The input
// slice is never mutated.
func Filter[T any](records []T, term string, fields func(T) []string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return records
	}
	matched := make([]T, 0, len(records))
	for _, record := range records {
		for _, field := range fields(record) {
			if strings.Contains(strings.ToLower(field), term) {
				matched = append(matched, record)
				break
			}
		}
	}
	return matched
}

// Paginate slices records into the requested 1-indexed page. A page beyond
// the end yields an empty slice, never an error; callers clamp via ClampPage
// when they want the last non-empty page instead.
func Paginate[T any](records []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = 5
	}
	if page < 1 {
		page = 1
	}

	total := len(records)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      records[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalCount: total,
	}
}

// ClampPage pins a requested page into [1, totalPages] so a shrinking
// collection never leaves the caller staring at an empty page. A collection
// with no pages clamps to 1.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}
