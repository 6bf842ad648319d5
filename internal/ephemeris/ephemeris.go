// Package ephemeris defines the chart calculation boundary. The engine
// itself never computes planetary positions; it accepts any Calculator
// that can produce a chart for a birth moment and place.
package ephemeris

import (
	"context"

	"github.com/harrison/stellium/internal/models"
)

// Birth identifies one birth moment and place. Time must be UTC;
// callers convert from local time before calling Compute.
type Birth struct {
	Year      int     `json:"year" yaml:"year"`
	Month     int     `json:"month" yaml:"month"`
	Day       int     `json:"day" yaml:"day"`
	Hour      int     `json:"hour" yaml:"hour"`
	Minute    int     `json:"minute" yaml:"minute"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Calculator computes a natal chart for a birth moment.
type Calculator interface {
	Compute(ctx context.Context, birth Birth) (*models.Chart, error)
}

// StaticCalculator returns the same fixed chart for every birth. It
// backs the demo command and tests; a real ephemeris implementation
// plugs in behind the same interface.
type StaticCalculator struct{}

// Compute returns the fixed demo chart. The birth argument is ignored
// apart from context cancellation.
func (StaticCalculator) Compute(ctx context.Context, _ Birth) (*models.Chart, error) {
	if err := ctx.Err(); err != nil {
		return nil, &models.EphemerisError{Op: "compute", Reason: "cancelled", Err: err}
	}
	return DemoChart(), nil
}

// DemoChart builds a complete sample chart exercising every section:
// a stellium, a T-Square, a retrograde planet, and all four angles.
func DemoChart() *models.Chart {
	return &models.Chart{
		Planets: map[string]models.Planet{
			"sun":     {Name: "Sun", Sign: "capricorn", Degree: 280.5, House: 10},
			"moon":    {Name: "Moon", Sign: "cancer", Degree: 102.3, House: 4},
			"mercury": {Name: "Mercury", Sign: "capricorn", Degree: 275.1, House: 10, Retrograde: true},
			"venus":   {Name: "Venus", Sign: "capricorn", Degree: 290.8, House: 10},
			"mars":    {Name: "Mars", Sign: "aries", Degree: 12.4, House: 1},
			"jupiter": {Name: "Jupiter", Sign: "taurus", Degree: 44.9, House: 2},
			"saturn":  {Name: "Saturn", Sign: "libra", Degree: 193.6, House: 7},
			"uranus":  {Name: "Uranus", Sign: "scorpio", Degree: 228.2, House: 8},
			"neptune": {Name: "Neptune", Sign: "sagittarius", Degree: 250.7, House: 9},
			"pluto":   {Name: "Pluto", Sign: "libra", Degree: 199.0, House: 7},
		},
		Houses: map[int]models.House{
			1: {Number: 1, Sign: "aries", Degree: 5.0},
			4: {Number: 4, Sign: "cancer", Degree: 95.0},
			7: {Number: 7, Sign: "libra", Degree: 185.0},
			10: {Number: 10, Sign: "capricorn", Degree: 275.0},
		},
		Angles: map[string]models.Angle{
			"ascendant":  {Sign: "aries", Degree: 5.0},
			"midheaven":  {Sign: "capricorn", Degree: 275.0},
			"descendant": {Sign: "libra", Degree: 185.0},
			"imum_coeli": {Sign: "cancer", Degree: 95.0},
		},
		Aspects: []models.Aspect{
			{Planet1: "sun", Planet2: "moon",
				Type: models.AspectType{Name: "opposition", Angle: 180}, Orb: 1.8},
			{Planet1: "sun", Planet2: "mars",
				Type: models.AspectType{Name: "square", Angle: 90}, Orb: 2.1},
			{Planet1: "moon", Planet2: "mars",
				Type: models.AspectType{Name: "square", Angle: 90}, Orb: 3.9},
			{Planet1: "sun", Planet2: "mercury",
				Type: models.AspectType{Name: "conjunction", Angle: 0}, Orb: 5.4},
			{Planet1: "jupiter", Planet2: "saturn",
				Type: models.AspectType{Name: "quincunx", Angle: 150}, Orb: 1.3},
		},
	}
}
