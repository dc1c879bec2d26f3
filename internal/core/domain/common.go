package domain

import (
	"math"
	"time"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DateRange is an inclusive [Start, End] interval of calendar days.
type DateRange struct {
	Start time.Time `json:"startDate"`
	End   time.Time `json:"endDate"`
}

// NormalizeToUTCDate truncates t to midnight UTC of the same calendar day.
func NormalizeToUTCDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewDateRange normalizes both ends to UTC midnight.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: NormalizeToUTCDate(start), End: NormalizeToUTCDate(end)}
}

// Valid reports whether Start is not after End.
func (r DateRange) Valid() bool {
	return !r.Start.After(r.End)
}

// Contains reports whether t lies within the range, inclusive on both ends.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Overlaps applies the weekly matching rule used for bulk status changes:
// other matches when its start is in r, its end is in r, or it spans r entirely.
func (r DateRange) Overlaps(other DateRange) bool {
	if r.Contains(other.Start) || r.Contains(other.End) {
		return true
	}
	return !other.Start.After(r.Start) && !other.End.Before(r.End)
}

// WeekOf returns the Sunday to Saturday week containing t.
func WeekOf(t time.Time) DateRange {
	day := NormalizeToUTCDate(t)
	start := day.AddDate(0, 0, -int(day.Weekday()))
	return DateRange{Start: start, End: start.AddDate(0, 0, 6)}
}

// Pagination is a 1-based page request.
type Pagination struct {
	Page  int
	Limit int
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// NewPagination applies the default page and limit to non-positive values
// and clamps both so that Offset()+Limit fits in an int.
func NewPagination(page, limit int) Pagination {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)
	page = min(page, math.MaxInt/limit)
	return Pagination{Page: page, Limit: limit}
}

// Offset is the number of records to skip for this page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageInfo describes a returned page of a larger result set.
type PageInfo struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int64 `json:"pages"`
	Limit int   `json:"limit"`
}

// NewPageInfo computes the number of pages for total records.
func NewPageInfo(p Pagination, total int64) PageInfo {
	pages := int64(0)
	if p.Limit > 0 {
		pages = (total + int64(p.Limit) - 1) / int64(p.Limit)
	}
	return PageInfo{Total: total, Page: p.Page, Pages: pages, Limit: p.Limit}
}
