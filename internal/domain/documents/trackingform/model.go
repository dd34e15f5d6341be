// Package trackingform provides the production tracking form document:
// one shift's recorded output for a product at a given operation, with
// defect and downtime breakdowns.
package trackingform

import (
	"context"
	"strings"
	"time"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/entity"
	"uretimtrack/internal/core/id"
)

// TrackingForm is a single production tracking record.
type TrackingForm struct {
	entity.Document

	// Shift is the shift label (e.g. "08:00-16:00")
	Shift string `db:"shift" json:"shift"`

	// Line, machine and crew fields are free text from the paper form
	Line              *string `db:"line" json:"line,omitempty"`
	ShiftSupervisor   *string `db:"shift_supervisor" json:"shiftSupervisor,omitempty"`
	Machine           *string `db:"machine" json:"machine,omitempty"`
	OperatorName      *string `db:"operator_name" json:"operatorName,omitempty"`
	SectionSupervisor *string `db:"section_supervisor" json:"sectionSupervisor,omitempty"`

	// ProductCode references the product by code
	ProductCode string `db:"product_code" json:"productCode"`

	// OperationID references the operation the quantity was recorded at
	OperationID id.ID `db:"operation_id" json:"operationId"`

	// Quantity is the number of good units produced
	Quantity int `db:"quantity" json:"quantity"`

	// StartTime/EndTime bound the recorded work interval
	StartTime *time.Time `db:"start_time" json:"startTime,omitempty"`
	EndTime   *time.Time `db:"end_time" json:"endTime,omitempty"`

	// OperatorEfficiency and MachineEfficiency are ratios in [0,1].
	// Nil means the value was not recorded on the form.
	OperatorEfficiency *float64 `db:"operator_efficiency" json:"operatorEfficiency,omitempty"`
	MachineEfficiency  *float64 `db:"machine_efficiency" json:"machineEfficiency,omitempty"`

	// Defect counts (units)
	CastingDefect    *int `db:"casting_defect" json:"castingDefect,omitempty"`
	ProcessingDefect *int `db:"processing_defect" json:"processingDefect,omitempty"`

	// Downtime durations (minutes)
	MachineFailure *int `db:"machine_failure" json:"machineFailure,omitempty"`
	SettingMachine *int `db:"setting_machine" json:"settingMachine,omitempty"`
	DiamondChange  *int `db:"diamond_change" json:"diamondChange,omitempty"`
	RawWaiting     *int `db:"raw_waiting" json:"rawWaiting,omitempty"`
	Cleaning       *int `db:"cleaning" json:"cleaning,omitempty"`
}

// NewTrackingForm creates a new TrackingForm with required fields.
func NewTrackingForm(date time.Time, productCode string, operationID id.ID, quantity int) *TrackingForm {
	return &TrackingForm{
		Document:    entity.NewDocument(date),
		ProductCode: productCode,
		OperationID: operationID,
		Quantity:    quantity,
	}
}

// Validate implements entity.Validatable interface.
func (f *TrackingForm) Validate(ctx context.Context) error {
	if err := f.Document.Validate(ctx); err != nil {
		return err
	}

	if strings.TrimSpace(f.ProductCode) == "" {
		return apperror.NewValidation("product code is required").
			WithDetail("field", "productCode")
	}
	if id.IsNil(f.OperationID) {
		return apperror.NewValidation("operation is required").
			WithDetail("field", "operationId")
	}
	if f.Quantity < 0 {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity")
	}

	for field, v := range map[string]*float64{
		"operatorEfficiency": f.OperatorEfficiency,
		"machineEfficiency":  f.MachineEfficiency,
	} {
		if v != nil && (*v < 0 || *v > 1) {
			return apperror.NewValidation("efficiency must be between 0 and 1").
				WithDetail("field", field)
		}
	}

	if f.StartTime != nil && f.EndTime != nil && f.EndTime.Before(*f.StartTime) {
		return apperror.NewValidation("end time cannot precede start time").
			WithDetail("field", "endTime")
	}

	return nil
}
