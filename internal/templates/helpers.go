package templates

import (
	"fmt"
	"strconv"

	"github.com/csg33k/attrition-form/internal/domain"
	"github.com/csg33k/attrition-form/internal/fields"
)

// FieldView is one form control.
type FieldView struct {
	Name     string
	Label    string
	Required bool
	// Control is "select", "number" or "text".
	Control string
	Options []string
	Step    string
	Min     string
}

// HistoryItem is one row of the recent-predictions list.
type HistoryItem struct {
	ID          int64
	Outcome     string
	Leave       bool
	Probability string
	Created     string
}

// FieldViews builds form controls from a field table.
func FieldViews(specs []domain.FieldSpec) []FieldView {
	out := make([]FieldView, 0, len(specs))
	for _, f := range specs {
		v := FieldView{Name: f.Name, Label: f.DisplayLabel(), Required: f.Required, Control: "text"}
		switch f.Kind {
		case domain.KindCategory:
			v.Control = "select"
			v.Options = fields.SortedLabels(f.Categories)
		case domain.KindInteger:
			v.Control = "number"
			v.Step = "1"
			v.Min = strconv.FormatFloat(f.Min, 'f', -1, 64)
		case domain.KindDecimal:
			v.Control = "number"
			v.Step = "any"
			v.Min = strconv.FormatFloat(f.Min, 'f', -1, 64)
		default:
			if len(f.Options) > 0 {
				v.Control = "select"
				v.Options = f.Options
			}
		}
		out = append(out, v)
	}
	return out
}

// HistoryItems converts stored predictions for display.
func HistoryItems(list []domain.PredictionRecord) []HistoryItem {
	out := make([]HistoryItem, 0, len(list))
	for _, p := range list {
		out = append(out, HistoryItem{
			ID:          p.ID,
			Outcome:     p.Outcome(),
			Leave:       p.Leave,
			Probability: probability(p.Probability),
			Created:     p.CreatedAt.Format("Jan 02, 2006 15:04"),
		})
	}
	return out
}

// probability converts a 0..1 probability to a "64.0%"-style string.
func probability(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%.1f%%", *p*100)
}

// itoa converts an int64 to a string, used for building URL paths.
func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
