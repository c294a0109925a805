package domain

type GaugeSegment struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type TrendPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type DisplayModel struct {
	BMI           float64        `json:"bmi"` // unclamped, as returned by the analysis service
	BMIText       string         `json:"bmi_text"`
	RiskScore     RiskScore      `json:"risk_score"`
	RiskColor     string         `json:"risk_color"`
	RiskLabel     string         `json:"risk_label"`
	DiabetesStage DiabetesStage  `json:"diabetes_stage"`
	DiabetesColor string         `json:"diabetes_color"`
	ObesityStage  string         `json:"obesity_stage"`
	Gauge         []GaugeSegment `json:"gauge"`
	Trend         []TrendPoint   `json:"trend"`
	Warnings      []string       `json:"warnings"`
}

type RecommendationDisplay struct {
	Diet      []string `json:"diet"`
	Exercise  []string `json:"exercise"`
	Lifestyle []string `json:"lifestyle"`
	Fallback  bool     `json:"fallback"`
}

type ResultsView struct {
	Display         DisplayModel          `json:"display"`
	Recommendations RecommendationDisplay `json:"recommendations"`
}
