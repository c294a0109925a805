package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"health-advisor/domain"
)

func TestAdvise_Empty(t *testing.T) {
	advisories := Advise(domain.RawInput{})
	assert.NotNil(t, advisories)
	assert.Empty(t, advisories)
}

func TestAdvise_FastingSugar(t *testing.T) {
	tests := []struct {
		fasting string
		want    []string
	}{
		{"99.9", []string{}},
		{"100", []string{AdvisoryFastingPreDiabetic}},
		{"125.9", []string{AdvisoryFastingPreDiabetic}},
		{"126", []string{AdvisoryFastingDiabetic}},
		{"300", []string{AdvisoryFastingDiabetic}},
		{"abc", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.fasting, func(t *testing.T) {
			got := Advise(domain.RawInput{SugarFasting: tt.fasting})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdvise_PostMealSugar(t *testing.T) {
	assert.Empty(t, Advise(domain.RawInput{SugarPost: "199"}))
	assert.Equal(t, []string{AdvisoryPostMealDiabetic}, Advise(domain.RawInput{SugarPost: "200"}))
}

func TestAdvise_BMIUsesRawHeight(t *testing.T) {
	// A realistic feet value gives a tiny BMI, so nothing fires.
	assert.Empty(t, Advise(domain.RawInput{Height: "5.9", Weight: "120"}))

	// 30 / 1^2 = 30
	assert.Equal(t, []string{AdvisoryObesity}, Advise(domain.RawInput{Height: "1", Weight: "30"}))
	// 25 / 1^2 = 25
	assert.Equal(t, []string{AdvisoryOverweight}, Advise(domain.RawInput{Height: "1", Weight: "25"}))
	assert.Empty(t, Advise(domain.RawInput{Height: "1", Weight: "24.9"}))
}

func TestAdvise_BMINeedsBothPositive(t *testing.T) {
	assert.Empty(t, Advise(domain.RawInput{Height: "0", Weight: "80"}))
	assert.Empty(t, Advise(domain.RawInput{Height: "1", Weight: "-80"}))
	assert.Empty(t, Advise(domain.RawInput{Height: "1"}))
	assert.Empty(t, Advise(domain.RawInput{Weight: "80"}))
}

func TestAdvise_BloodPressurePrefix(t *testing.T) {
	assert.Equal(t, []string{AdvisoryHighBloodPressure}, Advise(domain.RawInput{BloodPressure: "140/90"}))
	assert.Equal(t, []string{AdvisoryHighBloodPressure}, Advise(domain.RawInput{BloodPressure: "1400"}))
	assert.Empty(t, Advise(domain.RawInput{BloodPressure: "150/95"}))
	assert.Empty(t, Advise(domain.RawInput{BloodPressure: " 140/90"}))
}

func TestAdvise_OrderAndIdempotence(t *testing.T) {
	input := domain.RawInput{
		Height:        "1.5",
		Weight:        "80",
		SugarFasting:  "130",
		SugarPost:     "250",
		BloodPressure: "140/95",
	}
	want := []string{
		AdvisoryFastingDiabetic,
		AdvisoryPostMealDiabetic,
		AdvisoryObesity,
		AdvisoryHighBloodPressure,
	}

	first := Advise(input)
	second := Advise(input)
	assert.Equal(t, want, first)
	assert.Equal(t, first, second)
}

func TestAdviseReport(t *testing.T) {
	input := validInput()
	report := AdviseReport(input)
	assert.True(t, report.Complete)
	assert.True(t, report.AllClear)
	assert.Empty(t, report.Advisories)

	input.SugarFasting = "110"
	report = AdviseReport(input)
	assert.True(t, report.Complete)
	assert.False(t, report.AllClear)
	assert.Equal(t, []string{AdvisoryFastingPreDiabetic}, report.Advisories)

	report = AdviseReport(domain.RawInput{Height: "5.9"})
	assert.False(t, report.Complete)
	assert.False(t, report.AllClear)
}
