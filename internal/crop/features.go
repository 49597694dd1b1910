package crop

// Observation is one set of agronomic measurements. Range validation
// (humidity 0-100, ph 0-14) happens in the pipeline before it gets here.
type Observation struct {
	Nitrogen    float64 `json:"nitrogen"`
	Phosphorus  float64 `json:"phosphorus"`
	Potassium   float64 `json:"potassium"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
}

// DeriveFeatures computes the engineered features the model was trained on.
// The formulas must reproduce the training pipeline exactly.
func DeriveFeatures(o Observation) map[string]float64 {
	npRatio := 0.0
	if o.Phosphorus != 0 {
		npRatio = o.Nitrogen / o.Phosphorus
	}
	return map[string]float64{
		"temp_rain":              o.Temperature * o.Rainfall,
		"ph_rain":                o.PH * o.Rainfall,
		"K":                      o.Potassium,
		"rainfall":               o.Rainfall,
		"N":                      o.Nitrogen,
		"P":                      o.Phosphorus,
		"NPK_Avg_Soil_Fertility": (o.Nitrogen + o.Phosphorus + o.Potassium) / 3,
		"humidity":               o.Humidity,
		"NP_Ratio":               npRatio,
		"THI":                    (o.Temperature * o.Humidity) / 100,
	}
}

// Summary echoes the raw inputs in the response payload.
func (o Observation) Summary() map[string]float64 {
	return map[string]float64{
		"nitrogen":    o.Nitrogen,
		"phosphorus":  o.Phosphorus,
		"potassium":   o.Potassium,
		"temperature": o.Temperature,
		"humidity":    o.Humidity,
		"ph":          o.PH,
		"rainfall":    o.Rainfall,
	}
}
