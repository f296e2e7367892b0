// ABOUTME: Pagination metadata computation for feed list queries
// ABOUTME: Provides skip/pages/hasMore math shared by the query service

package query

import "legacy-updates-api/core/domain"

// Skip returns the number of records to skip for the given page and limit.
// The first page is always FirstPageLimit records, so later pages offset past
// it plus however many uniform pages precede them; page boundaries then stay
// disjoint when clients load page 1 at one limit and later pages at another.
func Skip(page, limit int) int {
	if page <= 1 {
		return 0
	}
	return FirstPageLimit + (page-2)*limit
}

// Paginate computes the pagination metadata for a page of results.
// returned is the number of records actually in the page, which may be
// smaller than limit on the last page.
func Paginate(total, page, limit, returned int) domain.Pagination {
	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}

	return domain.Pagination{
		Total:   total,
		Page:    page,
		Pages:   pages,
		HasMore: Skip(page, limit)+returned < total,
	}
}
