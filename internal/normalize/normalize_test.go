package normalize_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/csg33k/attrition-form/internal/domain"
	"github.com/csg33k/attrition-form/internal/fields"
	"github.com/csg33k/attrition-form/internal/normalize"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validValues() map[string]string {
	return map[string]string{
		"Age":                      "30",
		"TotalWorkingYears":        "5",
		"YearsAtCompany":           "3",
		"YearsSinceLastPromotion":  "1",
		"DistanceFromHome":         "2",
		"NumCompaniesWorked":       "1",
		"PercentSalaryHike":        "15",
		"DailyRate":                "500",
		"HourlyRate":               "50",
		"MonthlyRate":              "15000",
		"Education":                "Bachelor",
		"JobLevel":                 "senior",
		"EnvironmentSatisfaction":  "high",
		"JobInvolvement":           "high",
		"JobSatisfaction":          "high",
		"RelationshipSatisfaction": "high",
		"WorkLifeBalance":          "high",
		"PerformanceRating":        "high",
		"StockOptionLevel":         "high",
		"TrainingTimesLastYear":    "2",
		"BusinessTravel":           "Travel_Rarely",
		"Department":               "Research & Development",
		"EducationField":           "Life Sciences",
		"Gender":                   "Male",
		"JobRole":                  "Research Scientist",
		"MaritalStatus":            "Single",
		"OverTime":                 "Yes",
	}
}

// with returns validValues with the given overrides applied.
func with(overrides map[string]string) domain.RawInput {
	v := validValues()
	for k, val := range overrides {
		v[k] = val
	}
	return domain.RawInput{Values: v}
}

func run(overrides map[string]string) domain.ValidationResult {
	return normalize.Normalize(with(overrides), fields.Employee())
}

// ---------------------------------------------------------------------------
// Success path
// ---------------------------------------------------------------------------

func TestNormalize_ValidInput(t *testing.T) {
	got := run(nil)
	if !got.OK() {
		t.Fatalf("expected ok, got errors: %v", got.Errors)
	}
	want := domain.Record{
		"Age":                      30.0,
		"TotalWorkingYears":        5.0,
		"YearsAtCompany":           3.0,
		"YearsSinceLastPromotion":  1.0,
		"DistanceFromHome":         2.0,
		"NumCompaniesWorked":       1.0,
		"PercentSalaryHike":        15.0,
		"DailyRate":                500.0,
		"HourlyRate":               50.0,
		"MonthlyRate":              15000.0,
		"Education":                3,
		"JobLevel":                 3,
		"EnvironmentSatisfaction":  3,
		"JobInvolvement":           3,
		"JobSatisfaction":          3,
		"RelationshipSatisfaction": 3,
		"WorkLifeBalance":          3,
		"PerformanceRating":        3,
		"StockOptionLevel":         3,
		"TrainingTimesLastYear":    "2",
		"BusinessTravel":           "Travel_Rarely",
		"Department":               "Research & Development",
		"EducationField":           "Life Sciences",
		"Gender":                   "Male",
		"JobRole":                  "Research Scientist",
		"MaritalStatus":            "Single",
		"OverTime":                 "Yes",
	}
	if diff := cmp.Diff(want, got.Record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_CategoryMapping(t *testing.T) {
	tests := []struct {
		field string
		label string
		want  any
	}{
		{"Education", "Below College", 1},
		{"Education", "Doctor", 5},
		{"JobLevel", "junior", 1},
		{"JobLevel", "executive", 5},
		{"WorkLifeBalance", "very high", 4},
		{"StockOptionLevel", "low", 1},
		// Unknown labels pass through unchanged.
		{"Education", "PhD", "PhD"},
		{"JobSatisfaction", "very low", "very low"},
		{"JobLevel", "3", "3"},
	}
	for _, tc := range tests {
		t.Run(tc.field+"/"+tc.label, func(t *testing.T) {
			got := run(map[string]string{tc.field: tc.label})
			if !got.OK() {
				t.Fatalf("unexpected errors: %v", got.Errors)
			}
			if diff := cmp.Diff(tc.want, got.Record[tc.field]); diff != "" {
				t.Errorf("mapped value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize_ExtraFieldsCopied(t *testing.T) {
	got := run(map[string]string{"EmployeeNumber": "42", "Notes": ""})
	if !got.OK() {
		t.Fatalf("unexpected errors: %v", got.Errors)
	}
	if got.Record["EmployeeNumber"] != "42" {
		t.Errorf("EmployeeNumber = %#v, want \"42\"", got.Record["EmployeeNumber"])
	}
	if v, ok := got.Record["Notes"]; !ok || v != "" {
		t.Errorf("Notes = %#v (present=%v), want empty string", v, ok)
	}
}

// ---------------------------------------------------------------------------
// Required fields
// ---------------------------------------------------------------------------

func TestNormalize_RequiredFields(t *testing.T) {
	raw := with(map[string]string{"Gender": "", "OverTime": ""})
	delete(raw.Values, "Department")

	got := normalize.Normalize(raw, fields.Employee())
	want := []string{
		"Department is required",
		"Gender is required",
		"Over Time is required",
	}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if got.Record != nil {
		t.Errorf("record must be empty on failure, got %v", got.Record)
	}
}

func TestNormalize_RequiredLabelFallsBackToName(t *testing.T) {
	specs := []domain.FieldSpec{{Name: "Badge", Required: true}}
	got := normalize.Normalize(domain.RawInput{}, specs)
	if diff := cmp.Diff([]string{"Badge is required"}, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_OptionalEmptyFieldAllowed(t *testing.T) {
	specs := []domain.FieldSpec{{Name: "Notes", Kind: domain.KindText}}
	got := normalize.Normalize(domain.RawInput{Values: map[string]string{"Notes": ""}}, specs)
	if !got.OK() {
		t.Fatalf("unexpected errors: %v", got.Errors)
	}
}

// ---------------------------------------------------------------------------
// Numeric rules
// ---------------------------------------------------------------------------

const (
	msgAge   = "Age must be an integer between 18 and 65"
	msgYAC   = "Years at Company must be an integer between 0 and Total Working Years"
	msgYSLP  = "Years Since Last Promotion must be an integer between 0 and Years at Company"
	msgDFH   = "Distance from Home must be a non-negative integer"
	msgNCW   = "Number of Companies Worked must be a non-negative integer"
	msgPSH   = "Percent Salary Hike must be between 0 and 100"
	msgDaily = "Daily Rate must be greater than 0"
	msgHour  = "Hourly Rate must be greater than 0"
	msgMonth = "Monthly Rate must be greater than 0"
)

func TestNormalize_NumericRules(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		want      []string
	}{
		{"age below range", map[string]string{"Age": "17", "TotalWorkingYears": "0", "YearsAtCompany": "0", "YearsSinceLastPromotion": "0"},
			[]string{msgAge, "Total Working Years must be an integer between 0 and-1"}},
		{"age upper edge", map[string]string{"Age": "65"}, nil},
		{"age lower edge", map[string]string{"Age": "18", "TotalWorkingYears": "0", "YearsAtCompany": "0", "YearsSinceLastPromotion": "0"}, nil},
		{"age fractional", map[string]string{"Age": "30.5"}, []string{msgAge}},
		{"age with whitespace", map[string]string{"Age": " 30 "}, nil},
		{"twy above age bound", map[string]string{"Age": "25", "TotalWorkingYears": "10"},
			[]string{"Total Working Years must be an integer between 0 and7"}},
		{"twy at age bound", map[string]string{"Age": "25", "TotalWorkingYears": "7"}, nil},
		{"twy negative", map[string]string{"TotalWorkingYears": "-1"},
			[]string{"Total Working Years must be an integer between 0 and12", msgYAC}},
		{"yac above twy", map[string]string{"YearsAtCompany": "6"}, []string{msgYAC}},
		{"yac equal twy", map[string]string{"YearsAtCompany": "5"}, nil},
		{"yslp above yac", map[string]string{"YearsSinceLastPromotion": "4"}, []string{msgYSLP}},
		{"yslp equal yac", map[string]string{"YearsSinceLastPromotion": "3"}, nil},
		{"distance negative", map[string]string{"DistanceFromHome": "-2"}, []string{msgDFH}},
		{"distance fractional", map[string]string{"DistanceFromHome": "2.5"}, []string{msgDFH}},
		{"companies text", map[string]string{"NumCompaniesWorked": "two"}, []string{msgNCW}},
		{"distance digit separator", map[string]string{"DistanceFromHome": "1_0"}, []string{msgDFH}},
		{"distance hex", map[string]string{"DistanceFromHome": "0x10"}, []string{msgDFH}},
		{"companies hex float", map[string]string{"NumCompaniesWorked": "0x1p4"}, []string{msgNCW}},
		{"hike negative", map[string]string{"PercentSalaryHike": "-0.5"}, []string{msgPSH}},
		{"hike above 100 is accepted", map[string]string{"PercentSalaryHike": "150"}, nil},
		{"hike zero", map[string]string{"PercentSalaryHike": "0"}, nil},
		{"daily zero", map[string]string{"DailyRate": "0"}, []string{msgDaily}},
		{"daily just above zero", map[string]string{"DailyRate": "0.01"}, nil},
		{"hourly infinite", map[string]string{"HourlyRate": "Inf"}, []string{msgHour}},
		{"monthly negative", map[string]string{"MonthlyRate": "-100"}, []string{msgMonth}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := run(tc.overrides)
			if diff := cmp.Diff(tc.want, got.Errors); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize_UnparsedAgePropagates(t *testing.T) {
	got := run(map[string]string{"Age": "abc"})
	want := []string{
		msgAge,
		"Total Working Years must be an integer between 0 andNaN",
		msgYAC,
		msgYSLP,
	}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_FractionalAgeBound(t *testing.T) {
	got := run(map[string]string{"Age": "30.5", "TotalWorkingYears": "13"})
	want := []string{
		msgAge,
		"Total Working Years must be an integer between 0 and12.5",
	}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_TinyAgeBoundUsesExponent(t *testing.T) {
	got := run(map[string]string{"Age": "18.0000000001", "TotalWorkingYears": "1", "YearsAtCompany": "0", "YearsSinceLastPromotion": "0"})
	want := []string{
		msgAge,
		"Total Working Years must be an integer between 0 and9.99982319171977e-11",
	}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_CollectsAllErrors(t *testing.T) {
	got := run(map[string]string{"Gender": "", "Age": "200", "DailyRate": "0"})
	want := []string{
		"Gender is required",
		msgAge,
		// 5 > 200-18 is false, so only Age itself fails among the chained rules.
		msgDaily,
	}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_MissingNumericReportsBoth(t *testing.T) {
	got := run(map[string]string{"MonthlyRate": ""})
	want := []string{"Monthly Rate is required", msgMonth}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, overrides := range []map[string]string{nil, {"Age": "17", "Gender": ""}} {
		raw := with(overrides)
		before := cmp.Diff(validValues(), raw.Values)

		first := normalize.Normalize(raw, fields.Employee())
		second := normalize.Normalize(raw, fields.Employee())
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("results differ between runs (-first +second):\n%s", diff)
		}
		if after := cmp.Diff(validValues(), raw.Values); after != before {
			t.Fatalf("raw input was mutated")
		}
	}
}

func TestNormalizer_UsesFieldTable(t *testing.T) {
	n := normalize.New(fields.Employee())
	if len(n.Fields()) != len(fields.Employee()) {
		t.Fatalf("Fields() len = %d", len(n.Fields()))
	}
	if got := n.Normalize(with(nil)); !got.OK() {
		t.Fatalf("unexpected errors: %v", got.Errors)
	}
}

// ---------------------------------------------------------------------------
// Helpers under test
// ---------------------------------------------------------------------------

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		nan  bool
	}{
		{"42", 42, false},
		{" 3.5 ", 3.5, false},
		{"-0.01", -0.01, false},
		{"1e3", 1000, false},
		{"", 0, true},
		{"abc", 0, true},
		{"12abc", 0, true},
		{"Infinity", 0, true},
		{"NaN", 0, true},
		{"1_0", 0, true},
		{"0x1p4", 0, true},
		{"0x10", 0, true},
		{"0x1Ep0", 0, true},
		{"1e400", 0, true},
		{"+5", 5, false},
		{".5", 0.5, false},
		{"5.", 5, false},
		{"2E-2", 0.02, false},
	}
	for _, tc := range tests {
		got := normalize.ParseNumber(tc.in)
		if tc.nan {
			if !math.IsNaN(got) {
				t.Errorf("ParseNumber(%q) = %v, want NaN", tc.in, got)
			}
			continue
		}
		if got != tc.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{7, "7"},
		{-1, "-1"},
		{12.5, "12.5"},
		{0, "0"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{1e21, "1e+21"},
		{1.5e300, "1.5e+300"},
		{1e20, "100000000000000000000"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{-1.000000082740371e-10, "-1.000000082740371e-10"},
	}
	for _, tc := range tests {
		if got := normalize.FormatNumber(tc.in); got != tc.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMessages(t *testing.T) {
	got := normalize.Messages([]string{"a", "b"})
	if got != "a\nb" {
		t.Errorf("Messages = %q", got)
	}
}
