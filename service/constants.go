package service

const (
	FeetToMeters = 0.3048

	MinHeightFeet = 3.5
	MaxHeightFeet = 8.0
	MinWeightKg   = 30.0
	MaxWeightKg   = 250.0
	MinSugarMgDl  = 50.0
	MaxSugarMgDl  = 600.0
	MinSystolic   = 80.0
	MaxSystolic   = 220.0
	MinDiastolic  = 40.0
	MaxDiastolic  = 140.0

	// Umbrales de las advertencias en tiempo real
	FastingDiabeticMgDl    = 126.0
	FastingPreDiabeticMgDl = 100.0
	PostMealDiabeticMgDl   = 200.0
	ObeseBMI               = 30.0
	OverweightBMI          = 25.0

	// Heurística textual, no es un umbral numérico
	HighBloodPressurePrefix = "140"

	// Límites de presentación
	GaugeMaxBMI      = 50.0
	TrendBaseline    = 70.0
	TrendTarget      = 85.0
	TrendFastingMult = 3.0
	TrendFastingCap  = 100.0
	TrendPostMult    = 3.5
	TrendPostCap     = 120.0

	TipSeparator = ". "
)
