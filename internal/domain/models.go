package domain

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Outcome strings shown after a successful prediction exchange.
const (
	OutcomeLeave = "The employee is likely to leave the company."
	OutcomeStay  = "The employee is likely to stay in the company."
)

// Kind selects which rule a FieldSpec applies.
type Kind int

const (
	KindText     Kind = iota // copied through unchanged
	KindCategory             // label mapped to an ordinal code
	KindInteger              // finite, zero fraction, range checked
	KindDecimal              // finite, lower bound only
)

// CategoryMap encodes ordinal labels for the backend model.
type CategoryMap map[string]int

// FieldSpec is the static description of one form field.
type FieldSpec struct {
	Name     string
	Label    string
	Required bool
	Kind     Kind

	// Categories is set for KindCategory.
	Categories CategoryMap
	// Options lists the select choices for text fields that are picked
	// rather than typed. Not enforced.
	Options []string

	// Numeric bounds (KindInteger, KindDecimal).
	Min          float64
	ExclusiveMin bool
	// Max is a fixed upper bound; nil means none.
	Max *float64
	// MaxRef names an earlier field whose parsed value plus MaxOffset is
	// the upper bound.
	MaxRef    string
	MaxOffset float64

	// Message is appended when a numeric rule fails. "{max}" is replaced
	// with the resolved upper bound.
	Message string
}

// DisplayLabel returns the label used in "is required" messages.
func (f FieldSpec) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Numeric reports whether the field is parsed as a number.
func (f FieldSpec) Numeric() bool {
	return f.Kind == KindInteger || f.Kind == KindDecimal
}

// Display renders a record value for people. Category codes are shown
// with their label.
func (f FieldSpec) Display(v any) string {
	var n float64
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		n = float64(x)
	case float64:
		n = x
	default:
		return fmt.Sprint(v)
	}
	out := strconv.FormatFloat(n, 'f', -1, 64)
	if f.Kind == KindCategory {
		for label, code := range f.Categories {
			if float64(code) == n {
				return label + " (" + out + ")"
			}
		}
	}
	return out
}

// RawInput holds the as-typed values of one submission attempt.
type RawInput struct {
	Values map[string]string
}

// Record is a normalized, backend-ready payload. Values are int (category
// codes), float64 (parsed numerics) or string.
type Record map[string]any

// ValidationResult is either a Record or a non-empty list of messages.
type ValidationResult struct {
	Record Record
	Errors []string
}

// OK reports whether the result carries a record.
func (v ValidationResult) OK() bool { return len(v.Errors) == 0 }

// Prediction is the decoded response of the prediction endpoint.
type Prediction struct {
	Leave       bool
	Probability *float64
	Message     string
}

// Outcome returns the fixed display string for p.
func (p Prediction) Outcome() string {
	if p.Leave {
		return OutcomeLeave
	}
	return OutcomeStay
}

// PredictionRecord is one stored prediction.
type PredictionRecord struct {
	ID          int64
	Record      Record
	Leave       bool
	Probability *float64
	Confidence  string
	CreatedAt   time.Time
}

// Outcome returns the fixed display string for the stored prediction.
func (p PredictionRecord) Outcome() string {
	return Prediction{Leave: p.Leave}.Outcome()
}

// ConfidenceLevel buckets a leave probability.
func ConfidenceLevel(p float64) string {
	switch {
	case math.IsNaN(p):
		return ""
	case p > 0.7:
		return "high"
	case p > 0.5:
		return "medium"
	}
	return "low"
}
