package domain

import (
	"strings"
	"time"
)

type RiskScore string

const (
	RiskLow    RiskScore = "Low"
	RiskMedium RiskScore = "Medium"
	RiskHigh   RiskScore = "High"
)

type DiabetesStage string

const (
	DiabetesNormal      DiabetesStage = "Normal"
	DiabetesPreDiabetic DiabetesStage = "Pre-Diabetic"
	DiabetesDiabetic    DiabetesStage = "Diabetic"
)

// Session is the caller's credential context. It is passed explicitly
// to every operation that talks to the analysis service.
type Session struct {
	UserID int64
	Token  string
}

// AnalysisRequest is the body sent to POST /api/health/analyze.
type AnalysisRequest struct {
	UserID        int64   `json:"user_id"`
	Height        float64 `json:"height"` // meters
	Weight        float64 `json:"weight"`
	SugarFasting  float64 `json:"sugar_fasting"`
	SugarPost     float64 `json:"sugar_post"`
	BloodPressure string  `json:"blood_pressure"`
	ActivityLevel string  `json:"activity_level"`
	FamilyHistory string  `json:"family_history"`
}

type AnalysisResult struct {
	BMI           float64       `json:"bmi"`
	RiskScore     RiskScore     `json:"riskScore"`
	DiabetesStage DiabetesStage `json:"diabetesStage"`
	ObesityStage  string        `json:"obesityStage"`
	Warnings      []string      `json:"warnings"`
}

// Recommendation is the body of GET /api/recommendations/{userId}.
type Recommendation struct {
	DietPlan      string `json:"dietPlan"`
	ExercisePlan  string `json:"exercisePlan"`
	LifestyleTips string `json:"lifestyleTips"`
}

// Blank reports whether none of the plans carries any text.
func (r Recommendation) Blank() bool {
	return strings.TrimSpace(r.DietPlan) == "" &&
		strings.TrimSpace(r.ExercisePlan) == "" &&
		strings.TrimSpace(r.LifestyleTips) == ""
}

type SubmissionRecord struct {
	ID        string         `json:"id"`
	UserID    int64          `json:"user_id"`
	Metrics   Metrics        `json:"metrics"`
	Result    AnalysisResult `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}
