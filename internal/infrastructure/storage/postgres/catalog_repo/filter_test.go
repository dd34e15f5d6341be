package catalog_repo

import (
	"strings"
	"testing"

	"github.com/Masterminds/squirrel"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/domain"
	"uretimtrack/internal/domain/documents/shipment"
	"uretimtrack/internal/infrastructure/storage/postgres"
)

func TestParseOrderBy(t *testing.T) {
	cols := []string{"id", "code", "name", "product_type"}

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{name: "empty uses fallback", orderBy: "", want: "code ASC"},
		{name: "plain field ascending", orderBy: "name", want: "name ASC"},
		{name: "minus prefix descending", orderBy: "-name", want: "name DESC"},
		{name: "plus prefix ascending", orderBy: "+code", want: "code ASC"},
		{name: "timestamps always allowed", orderBy: "-created_at", want: "created_at DESC"},
		{name: "unknown field rejected", orderBy: "password", wantErr: true},
		{name: "bare minus rejected", orderBy: "-", wantErr: true},
		{name: "injection attempt rejected", orderBy: "code; DROP TABLE cat_products", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOrderBy(tt.orderBy, cols, "code ASC")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				if !apperror.IsAppError(err) {
					t.Errorf("expected AppError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// A parameterless list request must be valid for document tables even
// though they have no code column: the default filter carries no
// ordering, so the repository fallback applies.
func TestDefaultFilterOrdersDocumentsByDate(t *testing.T) {
	docCols := postgres.ExtractDBColumns[shipment.Shipment]()

	filter := domain.DefaultListFilter()
	got, err := ParseOrderBy(filter.OrderBy, docCols, "doc_date DESC")
	if err != nil {
		t.Fatalf("default filter rejected for document columns: %v", err)
	}
	if got != "doc_date DESC" {
		t.Errorf("got %q, want %q", got, "doc_date DESC")
	}
}

func TestApplyStatus(t *testing.T) {
	base := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Select("id").
		From("cat_products")

	tests := []struct {
		name       string
		status     domain.Status
		wantClause string
		wantArg    any
	}{
		{name: "active", status: domain.StatusActive, wantClause: "is_active = $1", wantArg: true},
		{name: "inactive", status: domain.StatusInactive, wantClause: "is_active = $1", wantArg: false},
		{name: "unknown defaults to active", status: domain.Status("bogus"), wantClause: "is_active = $1", wantArg: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := ApplyStatus(base, tt.status).ToSql()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(sql, tt.wantClause) {
				t.Errorf("sql %q missing clause %q", sql, tt.wantClause)
			}
			if len(args) != 1 || args[0] != tt.wantArg {
				t.Errorf("args = %v, want [%v]", args, tt.wantArg)
			}
		})
	}

	t.Run("all keeps query unfiltered", func(t *testing.T) {
		sql, args, err := ApplyStatus(base, domain.StatusAll).ToSql()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(sql, "is_active") {
			t.Errorf("sql %q should not filter is_active", sql)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want none", args)
		}
	})
}
