package service

import (
	"math"
	"strconv"
	"strings"

	"health-advisor/domain"
)

// parseNumber accepts a trimmed decimal; NaN and infinities are rejected.
func parseNumber(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func isBlank(raw string) bool {
	return strings.TrimSpace(raw) == ""
}

func invalid(field string, kind ValidationKind, msg string) *ValidationError {
	return &ValidationError{Field: field, Kind: kind, Message: msg}
}

// Validate checks raw form input and converts it into Metrics.
// Rules run in a fixed order and the first failure is the only one reported.
func Validate(raw domain.RawInput) (domain.Metrics, error) {

	// Altura (pies)
	if isBlank(raw.Height) {
		return domain.Metrics{}, invalid("height", KindMissing,
			"Height is required. Please enter your height in feet (e.g., 5.9).")
	}
	height, ok := parseNumber(raw.Height)
	if !ok || height <= 0 {
		return domain.Metrics{}, invalid("height", KindNotANumber,
			"Height must be a valid positive number (e.g., 5.9 feet).")
	}
	if height < MinHeightFeet || height > MaxHeightFeet {
		return domain.Metrics{}, invalid("height", KindOutOfRange,
			"Height should be between 3.5 feet (1.07m) and 8 feet (2.44m). Please check and try again.")
	}

	// Peso
	if isBlank(raw.Weight) {
		return domain.Metrics{}, invalid("weight", KindMissing,
			"Weight is required. Please enter your weight in kilograms (e.g., 70).")
	}
	weight, ok := parseNumber(raw.Weight)
	if !ok || weight <= 0 {
		return domain.Metrics{}, invalid("weight", KindNotANumber,
			"Weight must be a valid positive number (e.g., 75 kg).")
	}
	if weight < MinWeightKg || weight > MaxWeightKg {
		return domain.Metrics{}, invalid("weight", KindOutOfRange,
			"Weight should be between 30 kg and 250 kg. Please check and try again.")
	}

	// Glucosa en ayunas
	if isBlank(raw.SugarFasting) {
		return domain.Metrics{}, invalid("sugar_fasting", KindMissing,
			"Fasting Blood Sugar is required. Enter after 8+ hours without food (Normal: 70-100 mg/dL).")
	}
	fasting, ok := parseNumber(raw.SugarFasting)
	if !ok || fasting < 0 {
		return domain.Metrics{}, invalid("sugar_fasting", KindNotANumber,
			"Fasting Blood Sugar must be a valid non-negative number (e.g., 95 mg/dL).")
	}
	if fasting < MinSugarMgDl || fasting > MaxSugarMgDl {
		return domain.Metrics{}, invalid("sugar_fasting", KindOutOfRange,
			"Fasting Blood Sugar should be between 50-600 mg/dL. Normal: 70-100, Pre-diabetic: 100-125, Diabetic: ≥126.")
	}

	// Glucosa postprandial
	if isBlank(raw.SugarPost) {
		return domain.Metrics{}, invalid("sugar_post", KindMissing,
			"Post-Meal Blood Sugar is required. Measure 2 hours after eating (Normal: <140 mg/dL).")
	}
	post, ok := parseNumber(raw.SugarPost)
	if !ok || post < 0 {
		return domain.Metrics{}, invalid("sugar_post", KindNotANumber,
			"Post-Meal Blood Sugar must be a valid non-negative number (e.g., 130 mg/dL).")
	}
	if post < MinSugarMgDl || post > MaxSugarMgDl {
		return domain.Metrics{}, invalid("sugar_post", KindOutOfRange,
			"Post-Meal Blood Sugar should be between 50-600 mg/dL. Normal: <140, Pre-diabetic: 140-199, Diabetic: ≥200.")
	}

	systolic, diastolic, err := validateBloodPressure(raw.BloodPressure)
	if err != nil {
		return domain.Metrics{}, err
	}

	activity, err := parseActivityLevel(raw.ActivityLevel)
	if err != nil {
		return domain.Metrics{}, err
	}
	family, err := parseFamilyHistory(raw.FamilyHistory)
	if err != nil {
		return domain.Metrics{}, err
	}

	return domain.Metrics{
		HeightMeters:     height * FeetToMeters,
		WeightKg:         weight,
		SugarFastingMgDl: fasting,
		SugarPostMgDl:    post,
		SystolicMmHg:     systolic,
		DiastolicMmHg:    diastolic,
		ActivityLevel:    activity,
		FamilyHistory:    family,
	}, nil
}

func validateBloodPressure(raw string) (float64, float64, error) {
	if isBlank(raw) {
		return 0, 0, invalid("blood_pressure", KindMissing,
			"Blood Pressure is required. Enter in format: Systolic/Diastolic (e.g., 120/80 mmHg).")
	}

	parts := strings.Split(raw, "/")
	if len(parts) != 2 {
		return 0, 0, invalid("blood_pressure", KindMalformedBP,
			"Blood Pressure format is invalid. Use format: Systolic/Diastolic (e.g., 120/80).")
	}

	systolic, okS := parseNumber(parts[0])
	diastolic, okD := parseNumber(parts[1])
	if !okS || !okD || systolic < 0 || diastolic < 0 {
		return 0, 0, invalid("blood_pressure", KindNotANumber,
			"Blood Pressure values must be valid non-negative numbers (e.g., 120/80).")
	}
	if systolic < MinSystolic || systolic > MaxSystolic ||
		diastolic < MinDiastolic || diastolic > MaxDiastolic {
		return 0, 0, invalid("blood_pressure", KindOutOfRange,
			"Blood Pressure out of range. Systolic must be 80-220 and Diastolic 40-140 mmHg. Normal: <120/80, Elevated: 120-129/<80, High: ≥130/80.")
	}
	if systolic <= diastolic {
		return 0, 0, invalid("blood_pressure", KindSystolicNotGreater,
			"Systolic pressure must be greater than Diastolic pressure (e.g., 120/80, not 80/120).")
	}

	return systolic, diastolic, nil
}

func parseActivityLevel(raw string) (domain.ActivityLevel, error) {
	switch level := domain.ActivityLevel(strings.TrimSpace(raw)); level {
	case "":
		return domain.ActivityModerate, nil
	case domain.ActivityLow, domain.ActivityModerate, domain.ActivityHigh:
		return level, nil
	}
	return "", invalid("activity_level", KindUnknownChoice,
		"Activity level must be one of Low, Moderate or High.")
}

func parseFamilyHistory(raw string) (domain.FamilyHistory, error) {
	switch history := domain.FamilyHistory(strings.TrimSpace(raw)); history {
	case "":
		return domain.FamilyHistoryNo, nil
	case domain.FamilyHistoryYes, domain.FamilyHistoryNo:
		return history, nil
	}
	return "", invalid("family_history", KindUnknownChoice,
		"Family history must be Yes or No.")
}

// BloodPressureText renders metrics back into the "S/D" form the analysis service expects.
func BloodPressureText(m domain.Metrics) string {
	return strconv.FormatFloat(m.SystolicMmHg, 'f', -1, 64) + "/" +
		strconv.FormatFloat(m.DiastolicMmHg, 'f', -1, 64)
}
