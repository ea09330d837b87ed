package intensity

import "slices"

// Tier is a named band of the scaled intensity index. Min is inclusive and
// Max is exclusive.
type Tier struct {
	Level       string   `json:"level"`
	Min         float64  `json:"min"`
	Max         float64  `json:"max"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

// Tier levels, lowest first.
const (
	VeryLow  = "Very Low"
	Low      = "Low"
	Moderate = "Moderate"
	High     = "High"
	VeryHigh = "Very High"
)

// tiers is ordered ascending and never mutated after init. Callers only ever
// see copies.
var tiers = []Tier{
	{
		Level:       VeryLow,
		Min:         0.0,
		Max:         2.0,
		Description: "Minimal exertion. Suitable for recovery or warm-up.",
		Examples: []string{
			"Gentle stretching",
			"Seated yoga or chair-based mobility",
			"Tai Chi",
			"Casual walking (under 3 km/h)",
			"Light household tasks (folding laundry, dusting)",
		},
	},
	{
		Level:       Low,
		Min:         2.0,
		Max:         4.0,
		Description: "Easy, steady-state activity. Light elevation in heart rate.",
		Examples: []string{
			"Brisk walking (3–5 km/h)",
			"Beginner yoga or Pilates",
			"Easy cycling on flat ground",
			"Recreational swimming (slow pace)",
			"Light resistance band workouts",
		},
	},
	{
		Level:       Moderate,
		Min:         4.0,
		Max:         6.0,
		Description: "Breathing heavier, can talk but not sing. Sustainable effort.",
		Examples: []string{
			"Jogging or slow running (6–8 km/h)",
			"Moderate cycling (outdoors or stationary)",
			"Zumba or dance cardio (low impact)",
			"Bodyweight circuits",
			"Resistance training with moderate weights",
			"Hiking on flat or slightly inclined terrain",
		},
	},
	{
		Level:       High,
		Min:         6.0,
		Max:         8.0,
		Description: "Challenging. Short bursts or sustained hard effort.",
		Examples: []string{
			"Running at moderate speed (8–10 km/h)",
			"Swimming laps continuously",
			"HIIT sessions with short recovery",
			"Circuit training with minimal rest",
			"CrossFit-style moderate sessions",
			"Heavy resistance training (supersets)",
		},
	},
	{
		Level:       VeryHigh,
		Min:         8.0,
		Max:         10.0,
		Description: "Near max effort. Anaerobic, high heart rate, unsustainable for long.",
		Examples: []string{
			"Sprint intervals (e.g., 30s sprint / 30s rest)",
			"Tabata (e.g., 20s max effort, 10s rest)",
			"Advanced HIIT (burpees, jump squats, mountain climbers)",
			"Competitive sports (football, boxing, tennis matches)",
			"Stair sprints or hill climbs",
			"Powerlifting or Olympic lifting sets",
		},
	},
}

// Tiers returns a copy of the tier table in ascending order.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	for i, t := range tiers {
		out[i] = t.clone()
	}
	return out
}

// Classify returns the first tier whose [Min, Max) range contains scaled.
// Anything that matches no tier (negative, >= 10, NaN) falls back to the
// highest tier.
func Classify(scaled float64) Tier {
	for _, t := range tiers {
		if t.Min <= scaled && scaled < t.Max {
			return t.clone()
		}
	}
	return tiers[len(tiers)-1].clone()
}

func (t Tier) clone() Tier {
	t.Examples = slices.Clone(t.Examples)
	return t
}
