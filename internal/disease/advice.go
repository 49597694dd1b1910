package disease

// Advisory text is static: it derives purely from the healthy/diseased
// status, with no model involvement.
const (
	healthyTreatment  = "No treatment needed. Your plant is healthy!"
	healthyPrevention = "Continue with current care routine. Monitor regularly."
	healthyAdvice     = "Maintain proper watering, sunlight, and nutrient levels."

	diseasedTreatment  = "Apply appropriate fungicide or pesticide. Isolate plant if contagious. Remove affected leaves."
	diseasedPrevention = "Improve air circulation. Avoid overwatering. Ensure proper spacing between plants."
	diseasedAdvice     = "Consult with agricultural expert for specific treatment."
)

// ConfidenceLevel buckets a probability into three advisory levels.
func ConfidenceLevel(confidence float64) string {
	switch {
	case confidence > 0.8:
		return "High"
	case confidence > 0.6:
		return "Medium"
	default:
		return "Low"
	}
}

// enrich fills the advisory fields of a result from its status and
// confidence.
func enrich(r *Result) {
	if r.IsHealthy {
		r.Disease = "No Disease"
		r.Treatment = healthyTreatment
		r.Prevention = healthyPrevention
		r.Advice = healthyAdvice
	} else {
		r.Disease = "Plant Disease Detected"
		r.Treatment = diseasedTreatment
		r.Prevention = diseasedPrevention
		r.Advice = diseasedAdvice
	}
	r.ConfidenceLevel = ConfidenceLevel(r.Confidence)
}
