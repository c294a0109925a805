package service

import (
	"fmt"
	"math"
	"strings"

	"health-advisor/domain"
)

const (
	ColorGreen  = "#22c55e"
	ColorAmber  = "#f59e0b"
	ColorYellow = "#eab308"
	ColorRed    = "#ef4444"
)

// Recomendaciones fijas cuando el servicio externo no responde
var FallbackRecommendation = domain.Recommendation{
	DietPlan:      "Reduce refined carbohydrates. Increase fiber intake from vegetables and fruits. Limit sugar and processed foods. Focus on whole grains and lean proteins. Monitor portion sizes.",
	ExercisePlan:  "Aim for 150 minutes of moderate exercise per week. Include walking, swimming, or cycling. Add strength training 2-3 times per week. Avoid prolonged sitting.",
	LifestyleTips: "Maintain consistent meal times. Drink plenty of water. Get adequate sleep (7-9 hours). Manage stress through meditation or yoga. Regular health check-ups. Reduce sodium intake.",
}

// MapForDisplay derives the gauge, trend and status colors shown for an
// analysis result. The result itself is never modified.
func MapForDisplay(result domain.AnalysisResult) (domain.DisplayModel, error) {
	color, label, err := riskPresentation(result.RiskScore)
	if err != nil {
		return domain.DisplayModel{}, err
	}

	gaugeValue := clampGauge(result.BMI)

	warnings := make([]string, len(result.Warnings))
	copy(warnings, result.Warnings)

	return domain.DisplayModel{
		BMI:           result.BMI,
		BMIText:       fmt.Sprintf("%.1f", result.BMI),
		RiskScore:     result.RiskScore,
		RiskColor:     color,
		RiskLabel:     label,
		DiabetesStage: result.DiabetesStage,
		DiabetesColor: diabetesColor(result.DiabetesStage),
		ObesityStage:  result.ObesityStage,
		Gauge: []domain.GaugeSegment{
			{Name: "BMI", Value: gaugeValue},
			{Name: "remaining", Value: GaugeMaxBMI - gaugeValue},
		},
		Trend: []domain.TrendPoint{
			{Name: "Baseline", Value: TrendBaseline},
			{Name: "Current Fasting", Value: math.Min(result.BMI*TrendFastingMult, TrendFastingCap)},
			{Name: "Post Meal", Value: math.Min(result.BMI*TrendPostMult, TrendPostCap)},
			{Name: "Target", Value: TrendTarget},
		},
		Warnings: warnings,
	}, nil
}

func clampGauge(bmi float64) float64 {
	return math.Max(0, math.Min(bmi, GaugeMaxBMI))
}

func riskPresentation(risk domain.RiskScore) (color, label string, err error) {
	switch risk {
	case domain.RiskLow:
		return ColorGreen, "Excellent", nil
	case domain.RiskMedium:
		return ColorYellow, "Monitor", nil
	case domain.RiskHigh:
		return ColorRed, "High", nil
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnexpectedRiskScore, risk)
}

func diabetesColor(stage domain.DiabetesStage) string {
	switch stage {
	case domain.DiabetesNormal:
		return ColorGreen
	case domain.DiabetesPreDiabetic:
		return ColorAmber
	default:
		return ColorRed
	}
}

// SplitTips breaks a period-delimited plan into trimmed, non-empty items.
func SplitTips(plan string) []string {
	items := []string{}
	for _, part := range strings.Split(plan, TipSeparator) {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func MapRecommendation(rec domain.Recommendation, fallback bool) domain.RecommendationDisplay {
	return domain.RecommendationDisplay{
		Diet:      SplitTips(rec.DietPlan),
		Exercise:  SplitTips(rec.ExercisePlan),
		Lifestyle: SplitTips(rec.LifestyleTips),
		Fallback:  fallback,
	}
}
