package prediction

// Response is the JSON body returned for a successful prediction.
type Response struct {
	PredictedCalories    float64  `json:"predicted_calories"`
	ScaledIntensityIndex float64  `json:"scaled_intensity_index"`
	IntensityLevel       string   `json:"intensity_level"`
	IntensityDescription string   `json:"intensity_description"`
	IntensityExamples    []string `json:"intensity_examples"`
}

// NewResponse flattens a Result into its wire shape.
func NewResponse(res *Result) Response {
	tier := res.Intensity.Tier
	return Response{
		PredictedCalories:    res.Calories,
		ScaledIntensityIndex: res.Intensity.ScaledIndex,
		IntensityLevel:       tier.Level,
		IntensityDescription: tier.Description,
		IntensityExamples:    tier.Examples,
	}
}
