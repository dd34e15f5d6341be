package shipment

import (
	"context"
	"testing"
	"time"

	"uretimtrack/internal/core/apperror"
)

func intPtr(v int) *int { return &v }

func validShipment() *Shipment {
	s := NewShipment(time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC))
	s.Disk = intPtr(10)
	s.Domestic = true
	return s
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	if err := validShipment().Validate(ctx); err != nil {
		t.Fatalf("valid shipment rejected: %v", err)
	}

	both := validShipment()
	both.Abroad = true
	err := both.Validate(ctx)
	if err == nil {
		t.Fatal("expected error for domestic+abroad shipment")
	}
	if appErr, ok := apperror.AsAppError(err); !ok || appErr.Code != apperror.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}

	negative := validShipment()
	negative.Kampana = intPtr(-1)
	if err := negative.Validate(ctx); err == nil {
		t.Fatal("expected error for negative count")
	}

	neither := validShipment()
	neither.Domestic = false
	if err := neither.Validate(ctx); err != nil {
		t.Errorf("shipment without destination flags must be allowed: %v", err)
	}
}

func TestTotalTreatsNilAsZero(t *testing.T) {
	s := NewShipment(time.Now())
	s.Disk = intPtr(5)
	s.Poyra = intPtr(3)

	if got := s.Total(); got != 8 {
		t.Errorf("expected total 8, got %d", got)
	}
}
