package document_repo

import (
	"uretimtrack/internal/domain/documents/trackingform"
	"uretimtrack/internal/infrastructure/storage/postgres"
)

const trackingFormTable = "doc_tracking_forms"

// TrackingFormRepo is the PostgreSQL repository for production tracking forms.
type TrackingFormRepo struct {
	*BaseDocumentRepo[*trackingform.TrackingForm]
}

// NewTrackingFormRepo creates a new tracking form repository.
func NewTrackingFormRepo(txm *postgres.TxManager) *TrackingFormRepo {
	cols := postgres.ExtractDBColumns[trackingform.TrackingForm]()
	return &TrackingFormRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txm,
			trackingFormTable,
			cols,
			[]string{"product_code", "machine", "operator_name"},
			func() *trackingform.TrackingForm { return &trackingform.TrackingForm{} },
		),
	}
}

var _ trackingform.Repository = (*TrackingFormRepo)(nil)
