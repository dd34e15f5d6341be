package dto

import (
	"testing"
	"time"

	"uretimtrack/internal/domain"
)

func TestToFilterDefaults(t *testing.T) {
	q := ListQuery{}

	filter, err := q.ToFilter()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filter.OrderBy != "" {
		t.Errorf("empty query must not preset ordering, got %q", filter.OrderBy)
	}
	if filter.Status != domain.StatusActive {
		t.Errorf("expected active status default, got %v", filter.Status)
	}
	if filter.Limit != defaultPageSize {
		t.Errorf("expected limit %d, got %d", defaultPageSize, filter.Limit)
	}
	if filter.DateFrom != nil || filter.DateTo != nil {
		t.Error("expected no date bounds on empty query")
	}
}

func TestToFilterClampsLimit(t *testing.T) {
	q := ListQuery{Limit: 10000}

	filter, err := q.ToFilter()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.Limit != maxPageSize {
		t.Errorf("expected limit clamped to %d, got %d", maxPageSize, filter.Limit)
	}
}

func TestToFilterDateBounds(t *testing.T) {
	q := ListQuery{DateFrom: "2026-03-01", DateTo: "2026-03-14"}

	filter, err := q.ToFilter()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.DateFrom == nil || !filter.DateFrom.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected dateFrom: %v", filter.DateFrom)
	}
	if filter.DateTo == nil || !filter.DateTo.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected dateTo: %v", filter.DateTo)
	}

	if _, err := (&ListQuery{DateFrom: "bogus"}).ToFilter(); err == nil {
		t.Error("expected error for malformed dateFrom")
	}
}

func TestParseDateFormats(t *testing.T) {
	day, err := ParseDate("2026-03-14")
	if err != nil {
		t.Fatalf("day format rejected: %v", err)
	}
	if !day.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected day value: %v", day)
	}

	ts, err := ParseDate("2026-03-14T15:04:05Z")
	if err != nil {
		t.Fatalf("RFC3339 rejected: %v", err)
	}
	if !ts.Equal(time.Date(2026, 3, 14, 15, 4, 5, 0, time.UTC)) {
		t.Errorf("unexpected timestamp value: %v", ts)
	}

	if _, err := ParseDate("14.03.2026"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
