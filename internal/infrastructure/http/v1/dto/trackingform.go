package dto

import (
	"time"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/id"
	"uretimtrack/internal/domain/documents/trackingform"
)

// CreateTrackingFormRequest is the request body for creating a
// production tracking form.
type CreateTrackingFormRequest struct {
	Date              time.Time  `json:"date" binding:"required"`
	Shift             string     `json:"shift"`
	Line              *string    `json:"line"`
	ShiftSupervisor   *string    `json:"shiftSupervisor"`
	Machine           *string    `json:"machine"`
	OperatorName      *string    `json:"operatorName"`
	SectionSupervisor *string    `json:"sectionSupervisor"`
	ProductCode       string     `json:"productCode" binding:"required"`
	OperationID       string     `json:"operationId" binding:"required"`
	Quantity          int        `json:"quantity"`
	StartTime         *time.Time `json:"startTime"`
	EndTime           *time.Time `json:"endTime"`
	OperatorEfficiency *float64  `json:"operatorEfficiency"`
	MachineEfficiency  *float64  `json:"machineEfficiency"`
	CastingDefect     *int       `json:"castingDefect"`
	ProcessingDefect  *int       `json:"processingDefect"`
	MachineFailure    *int       `json:"machineFailure"`
	SettingMachine    *int       `json:"settingMachine"`
	DiamondChange     *int       `json:"diamondChange"`
	RawWaiting        *int       `json:"rawWaiting"`
	Cleaning          *int       `json:"cleaning"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateTrackingFormRequest) ToEntity() (*trackingform.TrackingForm, error) {
	opID, err := id.Parse(r.OperationID)
	if err != nil {
		return nil, apperror.NewValidation("invalid operationId").
			WithDetail("operationId", r.OperationID)
	}

	f := trackingform.NewTrackingForm(r.Date, r.ProductCode, opID, r.Quantity)
	f.Shift = r.Shift
	f.Line = r.Line
	f.ShiftSupervisor = r.ShiftSupervisor
	f.Machine = r.Machine
	f.OperatorName = r.OperatorName
	f.SectionSupervisor = r.SectionSupervisor
	f.StartTime = r.StartTime
	f.EndTime = r.EndTime
	f.OperatorEfficiency = r.OperatorEfficiency
	f.MachineEfficiency = r.MachineEfficiency
	f.CastingDefect = r.CastingDefect
	f.ProcessingDefect = r.ProcessingDefect
	f.MachineFailure = r.MachineFailure
	f.SettingMachine = r.SettingMachine
	f.DiamondChange = r.DiamondChange
	f.RawWaiting = r.RawWaiting
	f.Cleaning = r.Cleaning
	return f, nil
}

// UpdateTrackingFormRequest is the request body for updating a tracking form.
type UpdateTrackingFormRequest struct {
	CreateTrackingFormRequest
	Version int `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateTrackingFormRequest) ApplyTo(f *trackingform.TrackingForm) error {
	opID, err := id.Parse(r.OperationID)
	if err != nil {
		return apperror.NewValidation("invalid operationId").
			WithDetail("operationId", r.OperationID)
	}

	f.Date = r.Date
	f.Shift = r.Shift
	f.Line = r.Line
	f.ShiftSupervisor = r.ShiftSupervisor
	f.Machine = r.Machine
	f.OperatorName = r.OperatorName
	f.SectionSupervisor = r.SectionSupervisor
	f.ProductCode = r.ProductCode
	f.OperationID = opID
	f.Quantity = r.Quantity
	f.StartTime = r.StartTime
	f.EndTime = r.EndTime
	f.OperatorEfficiency = r.OperatorEfficiency
	f.MachineEfficiency = r.MachineEfficiency
	f.CastingDefect = r.CastingDefect
	f.ProcessingDefect = r.ProcessingDefect
	f.MachineFailure = r.MachineFailure
	f.SettingMachine = r.SettingMachine
	f.DiamondChange = r.DiamondChange
	f.RawWaiting = r.RawWaiting
	f.Cleaning = r.Cleaning
	f.SetVersion(r.Version)
	return nil
}
