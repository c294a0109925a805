package domain

import "strings"

type ActivityLevel string

const (
	ActivityLow      ActivityLevel = "Low"
	ActivityModerate ActivityLevel = "Moderate"
	ActivityHigh     ActivityLevel = "High"
)

type FamilyHistory string

const (
	FamilyHistoryYes FamilyHistory = "Yes"
	FamilyHistoryNo  FamilyHistory = "No"
)

// RawInput holds the form fields exactly as the user typed them.
// An empty string means the field has not been filled in.
type RawInput struct {
	Height        string `json:"height"`         // feet
	Weight        string `json:"weight"`         // kg
	SugarFasting  string `json:"sugar_fasting"`  // mg/dL
	SugarPost     string `json:"sugar_post"`     // mg/dL
	BloodPressure string `json:"blood_pressure"` // "S/D" mmHg
	ActivityLevel string `json:"activity_level"`
	FamilyHistory string `json:"family_history"`
}

// Complete reports whether the five required measurement fields are filled in.
func (r RawInput) Complete() bool {
	for _, v := range []string{r.Height, r.Weight, r.SugarFasting, r.SugarPost, r.BloodPressure} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

type Metrics struct {
	HeightMeters     float64       `json:"height_meters"`
	WeightKg         float64       `json:"weight_kg"`
	SugarFastingMgDl float64       `json:"sugar_fasting_mg_dl"`
	SugarPostMgDl    float64       `json:"sugar_post_mg_dl"`
	SystolicMmHg     float64       `json:"systolic_mm_hg"`
	DiastolicMmHg    float64       `json:"diastolic_mm_hg"`
	ActivityLevel    ActivityLevel `json:"activity_level"`
	FamilyHistory    FamilyHistory `json:"family_history"`
}

type AdvisoryReport struct {
	Advisories []string `json:"advisories"`
	Complete   bool     `json:"complete"`
	AllClear   bool     `json:"all_clear"`
}
