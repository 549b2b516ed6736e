// Package pdf generates a printable report for a stored prediction:
// the outcome banner, the returned probability, and every submitted field in
// form order.
package pdf

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/csg33k/attrition-form/internal/domain"
)

// Generator satisfies ports.ReportGenerator.
type Generator struct{}

func New() *Generator { return &Generator{} }

func (Generator) Generate(p *domain.PredictionRecord, specs []domain.FieldSpec, w io.Writer) error {
	return GenerateReport(p, specs, w)
}

// GenerateReport writes the report for p to w.
func GenerateReport(p *domain.PredictionRecord, specs []domain.FieldSpec, w io.Writer) error {
	return buildReport(p, specs).Output(w)
}

// buildReport lays out the report. The header bar and footer repeat on every
// page; the field table continues across automatic page breaks.
func buildReport(p *domain.PredictionRecord, specs []domain.FieldSpec) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("{nb}")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	marginL, marginT, marginR, marginB := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// ── Header bar ───────────────────────────────────────────────────────────
	pdf.SetHeaderFunc(func() {
		pdf.SetFillColor(30, 30, 30)
		pdf.Rect(marginL, marginT, contentW, 10, "F")
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetXY(marginL+2, marginT+1.5)
		pdf.CellFormat(contentW-4, 7, "EMPLOYEE ATTRITION PREDICTION", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 7, "Page "+fmt.Sprint(pdf.PageNo())+" of {nb}", "", 1, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(marginL, marginT+13)
	})

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.SetFooterFunc(func() {
		pdf.SetXY(marginL, -marginB+4)
		pdf.SetFont("Helvetica", "I", 7.5)
		pdf.SetTextColor(130, 130, 130)
		pdf.CellFormat(contentW/2, 5, "Generated by Attrition Form", "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW/2, 5, fmt.Sprintf("Prediction #%d", p.ID), "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()

	// ── Outcome ──────────────────────────────────────────────────────────────
	if p.Leave {
		pdf.SetFillColor(248, 220, 215)
	} else {
		pdf.SetFillColor(220, 240, 220)
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 9, p.Outcome(), "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	colHalf := contentW / 2
	pdf.CellFormat(colHalf, 6, "Probability: "+probabilityText(p), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(colHalf, 6, "Recorded: "+p.CreatedAt.Format("2006-01-02 15:04"), "RB", 1, "R", false, 0, "")
	pdf.Ln(5)

	// ── Field table ──────────────────────────────────────────────────────────
	labelW := contentW * 0.55
	valueW := contentW - labelW

	pdf.SetFillColor(30, 30, 30)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.CellFormat(labelW, 7, "Field", "1", 0, "L", true, 0, "")
	pdf.CellFormat(valueW, 7, "Submitted Value", "1", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 8.5)

	for i, r := range reportRows(p.Record, specs) {
		if i%2 == 0 {
			pdf.SetFillColor(250, 250, 250)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetX(marginL)
		pdf.CellFormat(labelW, 6, tr(r.label), "1", 0, "L", true, 0, "")
		pdf.CellFormat(valueW, 6, tr(r.value), "1", 1, "L", true, 0, "")
	}
	return pdf
}

type row struct {
	label string
	value string
}

// reportRows lists fields in field-table order, then any extra record keys sorted
// by name.
func reportRows(record domain.Record, specs []domain.FieldSpec) []row {
	seen := make(map[string]bool, len(specs))
	var rows []row
	for _, f := range specs {
		v, ok := record[f.Name]
		if !ok {
			continue
		}
		seen[f.Name] = true
		rows = append(rows, row{label: f.DisplayLabel(), value: f.Display(v)})
	}
	var extra []string
	for k := range record {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		rows = append(rows, row{label: k, value: domain.FieldSpec{Name: k}.Display(record[k])})
	}
	return rows
}

func probabilityText(p *domain.PredictionRecord) string {
	if p.Probability == nil {
		return "n/a"
	}
	s := fmt.Sprintf("%.1f%%", *p.Probability*100)
	if p.Confidence != "" {
		s += " (" + strings.ToLower(p.Confidence) + " confidence)"
	}
	return s
}
