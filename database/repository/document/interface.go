package documentRepo

import (
	"context"
	"errors"

	"telecare/models"
)

// ErrNotFound is returned when no document matches the given ID.
var ErrNotFound = errors.New("document not found")

// DocumentRepository persists uploaded medical document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.MedicalDocument) error
	GetByID(ctx context.Context, id string) (*models.MedicalDocument, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.MedicalDocument, error)
	UpdateSummary(ctx context.Context, id, summary string) error
}
