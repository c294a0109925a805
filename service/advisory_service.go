package service

import (
	"strings"

	"health-advisor/domain"
)

const (
	AdvisoryFastingDiabetic    = "Fasting sugar indicates diabetic range."
	AdvisoryFastingPreDiabetic = "Fasting sugar indicates pre-diabetic condition."
	AdvisoryPostMealDiabetic   = "Post-meal sugar is in diabetic range."
	AdvisoryObesity            = "BMI suggests obesity stage. Please consult a doctor."
	AdvisoryOverweight         = "BMI suggests overweight condition."
	AdvisoryHighBloodPressure  = "High blood pressure detected."
)

// Advise returns the real-time advisories for whatever fields are
// currently filled in. Fields that do not parse are skipped, never reported.
func Advise(raw domain.RawInput) []string {
	advisories := []string{}

	if fasting, ok := parseNumber(raw.SugarFasting); ok {
		if fasting >= FastingDiabeticMgDl {
			advisories = append(advisories, AdvisoryFastingDiabetic)
		} else if fasting >= FastingPreDiabeticMgDl {
			advisories = append(advisories, AdvisoryFastingPreDiabetic)
		}
	}

	if post, ok := parseNumber(raw.SugarPost); ok && post >= PostMealDiabeticMgDl {
		advisories = append(advisories, AdvisoryPostMealDiabetic)
	}

	// El IMC se calcula con la altura tal como se escribió (pies, sin convertir);
	// el cálculo autoritativo lo hace el servicio de análisis en metros.
	h, okH := parseNumber(raw.Height)
	w, okW := parseNumber(raw.Weight)
	if okH && okW && h > 0 && w > 0 {
		bmi := w / (h * h)
		if bmi >= ObeseBMI {
			advisories = append(advisories, AdvisoryObesity)
		} else if bmi >= OverweightBMI {
			advisories = append(advisories, AdvisoryOverweight)
		}
	}

	if strings.HasPrefix(raw.BloodPressure, HighBloodPressurePrefix) {
		advisories = append(advisories, AdvisoryHighBloodPressure)
	}

	return advisories
}

// AdviseReport wraps Advise with the completeness flags the form uses to
// show its reassuring state.
func AdviseReport(raw domain.RawInput) domain.AdvisoryReport {
	advisories := Advise(raw)
	complete := raw.Complete()
	return domain.AdvisoryReport{
		Advisories: advisories,
		Complete:   complete,
		AllClear:   complete && len(advisories) == 0,
	}
}
