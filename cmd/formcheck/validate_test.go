package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/attrition-form/internal/domain"
)

const validYAML = `
Age: 30
TotalWorkingYears: 5
YearsAtCompany: 3
YearsSinceLastPromotion: 1
DistanceFromHome: 2
NumCompaniesWorked: 1
PercentSalaryHike: 15
DailyRate: 500.5
HourlyRate: 50
MonthlyRate: 15000
Education: Bachelor
JobLevel: senior
EnvironmentSatisfaction: high
JobInvolvement: high
JobSatisfaction: high
RelationshipSatisfaction: high
WorkLifeBalance: high
PerformanceRating: high
StockOptionLevel: high
TrainingTimesLastYear: 2
BusinessTravel: Travel_Rarely
Department: Research & Development
EducationField: Life Sciences
Gender: Male
JobRole: Research Scientist
MaritalStatus: Single
OverTime: "Yes"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestValidate_ValidYAML(t *testing.T) {
	path := writeFile(t, "employee.yaml", validYAML)
	out, _, err := execute(t, "validate", path, "--submit=false")
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, 30.0, rec["Age"])
	assert.Equal(t, 500.5, rec["DailyRate"])
	assert.Equal(t, 3.0, rec["Education"])
	assert.Equal(t, "Yes", rec["OverTime"])
}

func TestValidate_JSONInput(t *testing.T) {
	path := writeFile(t, "employee.json", `{"Age": "17", "Gender": "Female"}`)
	_, errOut, err := execute(t, "validate", path, "--submit=false")
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, errOut, "Education is required")
	assert.Contains(t, errOut, "Age must be an integer between 18 and 65")
	assert.NotContains(t, errOut, "Gender is required")
}

func TestValidate_UnreadableFile(t *testing.T) {
	_, _, err := execute(t, "validate", filepath.Join(t.TempDir(), "missing.yaml"), "--submit=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestValidate_NestedValueRejected(t *testing.T) {
	path := writeFile(t, "nested.yaml", "Age:\n  years: 30\n")
	_, _, err := execute(t, "validate", path, "--submit=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "Age"`)
}

func TestValidate_Submit(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"prediction": 1, "probability": 0.9}`))
	}))
	defer srv.Close()

	path := writeFile(t, "employee.yaml", validYAML)
	out, _, err := execute(t, "validate", path, "--submit", "--url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, domain.OutcomeLeave)
	assert.Equal(t, 3.0, got["JobLevel"])
}

func TestValidate_SubmitFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	path := writeFile(t, "employee.yaml", validYAML)
	_, errOut, err := execute(t, "validate", path, "--submit", "--url", srv.URL)
	require.Error(t, err)
	assert.True(t, domain.IsTransmission(err))
	assert.Contains(t, errOut, domain.TransmissionMessage)
}

func TestScalar(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{30, "30"},
		{12.5, "12.5"},
		{true, "true"},
	}
	for _, tt := range tests {
		got, err := scalar(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	_, err := scalar([]any{1})
	assert.Error(t, err)
}
