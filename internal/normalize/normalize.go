// Package normalize turns raw form values into a backend-ready record, or
// into the complete list of reasons the values were rejected.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/csg33k/attrition-form/internal/domain"
)

// Normalizer applies a fixed field table. Satisfies ports.FormNormalizer.
type Normalizer struct {
	specs []domain.FieldSpec
}

func New(specs []domain.FieldSpec) *Normalizer {
	return &Normalizer{specs: specs}
}

func (n *Normalizer) Fields() []domain.FieldSpec { return n.specs }

func (n *Normalizer) Normalize(raw domain.RawInput) domain.ValidationResult {
	return Normalize(raw, n.specs)
}

// Normalize validates raw against specs. It never mutates its arguments and
// holds no state between calls.
//
// Required-field messages come first, in field-table order, followed by one message
// per failing numeric rule, also in field-table order. Numeric rules run even when
// required fields are missing.
func Normalize(raw domain.RawInput, specs []domain.FieldSpec) domain.ValidationResult {
	var errs []string
	record := make(domain.Record, len(raw.Values))

	missing := make(map[string]bool)
	for _, f := range specs {
		if f.Required && raw.Values[f.Name] == "" {
			errs = append(errs, f.DisplayLabel()+" is required")
			missing[f.Name] = true
		}
	}
	for name, v := range raw.Values {
		if !missing[name] {
			record[name] = v
		}
	}

	for _, f := range specs {
		if f.Kind != domain.KindCategory {
			continue
		}
		s, ok := record[f.Name].(string)
		if !ok || s == "" {
			continue
		}
		if code, ok := f.Categories[s]; ok {
			record[f.Name] = code
		}
	}

	parsed := make(map[string]float64)
	for _, f := range specs {
		if !f.Numeric() {
			continue
		}
		v := ParseNumber(raw.Values[f.Name])
		parsed[f.Name] = v
		bound := upperBound(f, parsed)
		if !passes(f, v, bound) {
			errs = append(errs, message(f, bound))
			continue
		}
		record[f.Name] = v
	}

	if len(errs) > 0 {
		return domain.ValidationResult{Errors: errs}
	}
	return domain.ValidationResult{Record: record}
}

// decimal is plain decimal notation. ParseFloat alone would also accept
// underscores, hex floats and the words Inf and NaN.
var decimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber parses s as a decimal number. Anything that is not a finite
// number in plain decimal notation yields NaN.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if !decimal.MatchString(s) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// IsInteger reports whether v is finite with no fractional part.
func IsInteger(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v == math.Trunc(v)
}

func upperBound(f domain.FieldSpec, parsed map[string]float64) float64 {
	if f.MaxRef != "" {
		ref, ok := parsed[f.MaxRef]
		if !ok {
			return math.NaN()
		}
		return ref + f.MaxOffset
	}
	if f.Max != nil {
		return *f.Max
	}
	return math.Inf(1)
}

// passes mirrors the comparison semantics of the browser form: every
// comparison against NaN is false.
func passes(f domain.FieldSpec, v, max float64) bool {
	if math.IsNaN(v) {
		return false
	}
	if f.ExclusiveMin {
		if !(v > f.Min) {
			return false
		}
	} else if !(v >= f.Min) {
		return false
	}
	if !(v <= max) {
		return false
	}
	if f.Kind == domain.KindInteger && !IsInteger(v) {
		return false
	}
	return true
}

func message(f domain.FieldSpec, bound float64) string {
	if f.Message == "" {
		return f.DisplayLabel() + " is invalid"
	}
	return strings.ReplaceAll(f.Message, "{max}", FormatNumber(bound))
}

// FormatNumber renders v the way the browser prints a number.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	if a := math.Abs(v); a >= 1e21 || a < 1e-6 {
		return exponent(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// exponent renders v as "1.5e+21" or "1e-7": shortest digits, explicit
// exponent sign, no zero padding.
func exponent(v float64) string {
	mant, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}

// Messages joins validation messages for a single alert.
func Messages(errs []string) string {
	return strings.Join(errs, "\n")
}
