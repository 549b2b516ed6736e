// Package fields defines the employee form layout: the category maps used to
// encode ordinal labels and the ordered field table the normalizer walks.
// Numeric rules appear in evaluation order because later bounds reference
// earlier parsed values.
package fields

import "github.com/csg33k/attrition-form/internal/domain"

var (
	Levels = domain.CategoryMap{
		"low":       1,
		"medium":    2,
		"high":      3,
		"very high": 4,
	}

	Education = domain.CategoryMap{
		"Below College": 1,
		"College":       2,
		"Bachelor":      3,
		"Master":        4,
		"Doctor":        5,
	}

	JobLevel = domain.CategoryMap{
		"junior":    1,
		"mid_level": 2,
		"senior":    3,
		"manager":   4,
		"executive": 5,
	}
)

func ptr(f float64) *float64 { return &f }

// Employee returns the canonical field table. A fresh slice is returned on
// every call so callers may modify it.
func Employee() []domain.FieldSpec {
	return []domain.FieldSpec{
		// Numeric rules, fixed order.
		{Name: "Age", Label: "Age", Required: true, Kind: domain.KindInteger,
			Min: 18, Max: ptr(65),
			Message: "Age must be an integer between 18 and 65"},
		{Name: "TotalWorkingYears", Label: "Total Working Years", Required: true, Kind: domain.KindInteger,
			Min: 0, MaxRef: "Age", MaxOffset: -18,
			Message: "Total Working Years must be an integer between 0 and{max}"},
		{Name: "YearsAtCompany", Label: "Years at Company", Required: true, Kind: domain.KindInteger,
			Min: 0, MaxRef: "TotalWorkingYears",
			Message: "Years at Company must be an integer between 0 and Total Working Years"},
		{Name: "YearsSinceLastPromotion", Label: "Years Since Last Promotion", Required: true, Kind: domain.KindInteger,
			Min: 0, MaxRef: "YearsAtCompany",
			Message: "Years Since Last Promotion must be an integer between 0 and Years at Company"},
		{Name: "DistanceFromHome", Label: "Distance from Home", Required: true, Kind: domain.KindInteger,
			Min: 0,
			Message: "Distance from Home must be a non-negative integer"},
		{Name: "NumCompaniesWorked", Label: "Number of Companies Worked", Required: true, Kind: domain.KindInteger,
			Min: 0,
			Message: "Number of Companies Worked must be a non-negative integer"},
		// Only the lower bound is enforced; the message has always named 100.
		{Name: "PercentSalaryHike", Label: "Percent Salary Hike", Required: true, Kind: domain.KindDecimal,
			Min: 0,
			Message: "Percent Salary Hike must be between 0 and 100"},
		{Name: "DailyRate", Label: "Daily Rate", Required: true, Kind: domain.KindDecimal,
			Min: 0, ExclusiveMin: true,
			Message: "Daily Rate must be greater than 0"},
		{Name: "HourlyRate", Label: "Hourly Rate", Required: true, Kind: domain.KindDecimal,
			Min: 0, ExclusiveMin: true,
			Message: "Hourly Rate must be greater than 0"},
		{Name: "MonthlyRate", Label: "Monthly Rate", Required: true, Kind: domain.KindDecimal,
			Min: 0, ExclusiveMin: true,
			Message: "Monthly Rate must be greater than 0"},

		// Ordinal categories.
		{Name: "Education", Label: "Education", Required: true, Kind: domain.KindCategory, Categories: Education},
		{Name: "JobLevel", Label: "Job Level", Required: true, Kind: domain.KindCategory, Categories: JobLevel},
		{Name: "EnvironmentSatisfaction", Label: "Environment Satisfaction", Required: true, Kind: domain.KindCategory, Categories: Levels},
		{Name: "JobInvolvement", Label: "Job Involvement", Required: true, Kind: domain.KindCategory, Categories: Levels},
		{Name: "JobSatisfaction", Label: "Job Satisfaction", Required: true, Kind: domain.KindCategory, Categories: Levels},
		{Name: "RelationshipSatisfaction", Label: "Relationship Satisfaction", Required: true, Kind: domain.KindCategory, Categories: Levels},
		{Name: "WorkLifeBalance", Label: "Work Life Balance", Required: true, Kind: domain.KindCategory, Categories: Levels},
		{Name: "PerformanceRating", Label: "Performance Rating", Required: true, Kind: domain.KindCategory, Categories: Levels},
		{Name: "StockOptionLevel", Label: "Stock Option Level", Required: true, Kind: domain.KindCategory, Categories: Levels},

		// Passed through to the model as-is.
		{Name: "TrainingTimesLastYear", Label: "Training Times Last Year", Required: true, Kind: domain.KindText},
		{Name: "BusinessTravel", Label: "Business Travel", Required: true, Kind: domain.KindText,
			Options: []string{"Non-Travel", "Travel_Rarely", "Travel_Frequently"}},
		{Name: "Department", Label: "Department", Required: true, Kind: domain.KindText,
			Options: []string{"Sales", "Research & Development", "Human Resources"}},
		{Name: "EducationField", Label: "Education Field", Required: true, Kind: domain.KindText,
			Options: []string{"Life Sciences", "Medical", "Marketing", "Technical Degree", "Other", "Human Resources"}},
		{Name: "Gender", Label: "Gender", Required: true, Kind: domain.KindText,
			Options: []string{"Male", "Female"}},
		{Name: "JobRole", Label: "Job Role", Required: true, Kind: domain.KindText,
			Options: []string{
				"Sales Executive", "Research Scientist", "Laboratory Technician",
				"Manufacturing Director", "Healthcare Representative", "Manager",
				"Sales Representative", "Research Director", "Human Resources",
			}},
		{Name: "MaritalStatus", Label: "Marital Status", Required: true, Kind: domain.KindText,
			Options: []string{"Single", "Married", "Divorced"}},
		{Name: "OverTime", Label: "Over Time", Required: true, Kind: domain.KindText,
			Options: []string{"Yes", "No"}},
	}
}

// SortedLabels returns the labels of m ordered by code, for building selects.
func SortedLabels(m domain.CategoryMap) []string {
	out := make([]string, len(m))
	for label, code := range m {
		if code >= 1 && code <= len(m) {
			out[code-1] = label
		}
	}
	return out
}
