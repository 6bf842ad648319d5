package models

import (
	"fmt"
	"strconv"
	"strings"
)

// AspectType is the resolved identity of an aspect: a canonical name plus
// its exact angle. Raw chart input may carry either a name ("trine") or a
// numeric angle (120 or "120"); ResolveAspectType collapses both encodings
// into this one representation at the chart boundary so downstream code
// never branches on string-vs-number.
type AspectType struct {
	// Name is the lower-cased canonical aspect name ("square", "trine", ...).
	// For aspect types with no known canonical name this is the raw input
	// string, preserved so the knowledge store can still be consulted.
	Name string `json:"name"`

	// Angle is the exact aspect angle in degrees, or -1 when the raw type
	// was an unrecognized name
	Angle float64 `json:"angle"`
}

// Aspect is one angular relationship between two chart points.
type Aspect struct {
	// Planet1 and Planet2 are lower-cased point names
	Planet1 string `json:"planet1"`
	Planet2 string `json:"planet2"`

	// Type is the resolved aspect identity
	Type AspectType `json:"type"`

	// Orb is the deviation in degrees from the exact angle
	Orb float64 `json:"orb"`
}

// Involves reports whether the aspect touches the named point.
func (a Aspect) Involves(planet string) bool {
	return a.Planet1 == planet || a.Planet2 == planet
}

// Other returns the endpoint opposite the named point, and whether the
// aspect touches that point at all.
func (a Aspect) Other(planet string) (string, bool) {
	switch planet {
	case a.Planet1:
		return a.Planet2, true
	case a.Planet2:
		return a.Planet1, true
	}
	return "", false
}

// Canonical major and minor aspect angles.
var aspectAngles = map[string]float64{
	"conjunction":  0,
	"semisextile":  30,
	"semisquare":   45,
	"sextile":      60,
	"quintile":     72,
	"square":       90,
	"trine":        120,
	"sesquiquadrate": 135,
	"biquintile":   144,
	"quincunx":     150,
	"opposition":   180,
}

// aspectNames is the reverse index, angle -> canonical name.
var aspectNames = func() map[float64]string {
	m := make(map[float64]string, len(aspectAngles))
	for name, angle := range aspectAngles {
		m[angle] = name
	}
	return m
}()

// AspectAngle returns the exact angle for a canonical aspect name and
// whether the name is known.
func AspectAngle(name string) (float64, bool) {
	a, ok := aspectAngles[strings.ToLower(name)]
	return a, ok
}

// ResolveAspectType resolves a raw aspect type value (canonical name,
// numeric angle, or numeric string) into an AspectType. Unrecognized names
// resolve with Angle == -1; unrecognized angles keep the angle and use its
// decimal string as the name. Resolution never fails: unknown types are a
// knowledge-store concern, not a structural one.
func ResolveAspectType(raw any) AspectType {
	switch v := raw.(type) {
	case float64:
		return resolveAngle(v)
	case int:
		return resolveAngle(float64(v))
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		if angle, err := strconv.ParseFloat(s, 64); err == nil {
			return resolveAngle(angle)
		}
		if angle, ok := aspectAngles[s]; ok {
			return AspectType{Name: s, Angle: angle}
		}
		return AspectType{Name: s, Angle: -1}
	default:
		return AspectType{Name: fmt.Sprintf("%v", raw), Angle: -1}
	}
}

func resolveAngle(angle float64) AspectType {
	if name, ok := aspectNames[angle]; ok {
		return AspectType{Name: name, Angle: angle}
	}
	return AspectType{Name: strconv.FormatFloat(angle, 'f', -1, 64), Angle: angle}
}
