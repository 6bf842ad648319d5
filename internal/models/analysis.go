package models

// Pattern type constants for simple and complex patterns.
const (
	PatternStellium      = "stellium"
	PatternHouseEmphasis = "house_emphasis"
	PatternTSquare       = "t-square"
	PatternYod           = "yod"
	PatternGrandTrine    = "grand trine"
	PatternGrandCross    = "grand cross"
)

// Balance holds the distribution of counted planets across one category
// axis (elements or modalities).
type Balance struct {
	// Counts maps category name to the number of planets in it
	Counts map[string]int `json:"counts"`

	// Percentages maps category name to count/total*100, rounded to 2
	// decimals (0 when no planets were counted)
	Percentages map[string]float64 `json:"percentages"`

	// Planets maps category name to the display names of the planets in it
	Planets map[string][]string `json:"planets"`

	// Dominant is the highest-count category, or "" when all counts are zero
	Dominant string `json:"dominant"`

	// Lacking lists every category with count <= 1. A single planet in a
	// category still counts as lacking; that threshold is intentional.
	Lacking []string `json:"lacking"`

	// Interpretation is the composed natural-language summary
	Interpretation string `json:"interpretation"`
}

// SimplePattern is a concentration pattern: a sign stellium or a house
// emphasis.
type SimplePattern struct {
	// Type is PatternStellium or PatternHouseEmphasis
	Type string `json:"type"`

	// Sign is set for stelliums
	Sign string `json:"sign,omitempty"`

	// House is set for house emphasis entries (1-12)
	House int `json:"house,omitempty"`

	// Planets lists the display names of the concentrated bodies
	Planets []string `json:"planets"`

	// Count is len(Planets)
	Count int `json:"count"`

	// Interpretation is the composed natural-language summary
	Interpretation string `json:"interpretation"`
}

// ComplexPattern is a multi-body aspect configuration: T-Square, Yod,
// Grand Trine, or Grand Cross.
type ComplexPattern struct {
	// Type is one of PatternTSquare, PatternYod, PatternGrandTrine,
	// PatternGrandCross
	Type string `json:"type"`

	// Planets lists the lower-cased names of the involved points
	Planets []string `json:"planets"`

	// Apex is the focal planet for T-Squares and Yods, "" otherwise
	Apex string `json:"apex,omitempty"`

	// Interpretation is the composed natural-language summary
	Interpretation string `json:"interpretation"`
}

// ShapeUndetermined is returned when the distribution matches no named
// chart shape or fewer than three degree values are available.
const ShapeUndetermined = "Undetermined"

// ChartShape classifies the overall distribution of bodies around the
// ecliptic.
type ChartShape struct {
	// Name is the shape classification (Bundle, Bowl, Locomotive, Splash,
	// or Undetermined)
	Name string `json:"shape_name"`

	// OccupiedSpan is 360 minus the largest gap, rounded to 1 decimal
	OccupiedSpan float64 `json:"occupied_span_degrees"`

	// LargestGap is the widest empty arc between consecutive bodies,
	// rounded to 1 decimal
	LargestGap float64 `json:"largest_gap_degrees"`

	// Interpretation is the composed natural-language summary
	Interpretation string `json:"interpretation"`
}

// Dignity is an essential dignity category.
type Dignity string

// The five essential dignity states. Peregrine means no special dignity
// and is a valid result, not an error.
const (
	DignityDomicile   Dignity = "domicile"
	DignityExaltation Dignity = "exaltation"
	DignityDetriment  Dignity = "detriment"
	DignityFall       Dignity = "fall"
	DignityPeregrine  Dignity = "peregrine"
)
