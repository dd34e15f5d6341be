// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/domain"
)

// --- Response envelope ---

// Response is the standard envelope every endpoint returns.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// OK wraps data in a success envelope.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// OKMessage wraps data in a success envelope with a message.
func OKMessage(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// --- List query ---

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// ListQuery contains common list parameters bound from the query string.
type ListQuery struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	OrderBy  string `form:"orderBy"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
}

// ToFilter converts the query to a domain list filter, applying
// defaults and clamping the page size.
func (q *ListQuery) ToFilter() (domain.ListFilter, error) {
	filter := domain.DefaultListFilter()
	filter.Search = q.Search
	filter.Status = domain.ParseStatus(q.Status)

	if q.OrderBy != "" {
		filter.OrderBy = q.OrderBy
	}
	if q.Limit > 0 {
		filter.Limit = q.Limit
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if q.Offset > 0 {
		filter.Offset = q.Offset
	}

	if q.DateFrom != "" {
		t, err := ParseDate(q.DateFrom)
		if err != nil {
			return filter, apperror.NewValidation("invalid dateFrom").WithDetail("dateFrom", q.DateFrom)
		}
		filter.DateFrom = &t
	}
	if q.DateTo != "" {
		t, err := ParseDate(q.DateTo)
		if err != nil {
			return filter, apperror.NewValidation("invalid dateTo").WithDetail("dateTo", q.DateTo)
		}
		filter.DateTo = &t
	}

	return filter, nil
}

// ParseDate parses a date query parameter, accepting yyyy-mm-dd or a
// full RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// --- List response ---

// ListResponse wraps list results with pagination metadata.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// NewListResponse builds a list response from a domain list result.
func NewListResponse[T any](r domain.ListResult[T]) ListResponse {
	return ListResponse{
		Items:      r.Items,
		TotalCount: r.TotalCount,
		Limit:      r.Limit,
		Offset:     r.Offset,
	}
}

// --- Misc ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// BulkCreateResponse reports how many records a bulk insert stored.
type BulkCreateResponse struct {
	Inserted int `json:"inserted"`
}

// SetActiveRequest toggles the soft-delete flag.
type SetActiveRequest struct {
	Active bool `json:"active"`
}
