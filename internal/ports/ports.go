package ports

import (
	"context"
	"io"

	"github.com/csg33k/attrition-form/internal/domain"
)

// FormNormalizer validates one submission attempt against a field table.
type FormNormalizer interface {
	Normalize(raw domain.RawInput) domain.ValidationResult
	// Fields returns the field table in evaluation order.
	Fields() []domain.FieldSpec
}

// PredictionClient performs the single request/response exchange with the
// prediction endpoint. It does not retry.
type PredictionClient interface {
	Predict(ctx context.Context, record domain.Record) (*domain.Prediction, error)
}

// PredictionRepository defines persistence operations for the history.
type PredictionRepository interface {
	SavePrediction(ctx context.Context, p *domain.PredictionRecord) error
	GetPrediction(ctx context.Context, id int64) (*domain.PredictionRecord, error)
	ListPredictions(ctx context.Context, limit int) ([]domain.PredictionRecord, error)
	DeletePrediction(ctx context.Context, id int64) error
}

// ReportGenerator defines the printable report port.
type ReportGenerator interface {
	// Generate writes a report for one stored prediction, listing fields in
	// the order of specs.
	Generate(p *domain.PredictionRecord, specs []domain.FieldSpec, w io.Writer) error
}
