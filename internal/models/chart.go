// Package models defines the chart data model and the derived analysis
// types shared by every analyzer and the text composer.
//
// A Chart is immutable for the duration of one interpretation call. All
// derived types (balances, patterns, shape, dignities, sections) are
// computed fresh per call and never cached across charts.
package models

import "strings"

// Canonical zodiac sign names in ecliptic order, lower-cased.
var ZodiacSigns = []string{
	"aries", "taurus", "gemini", "cancer", "leo", "virgo",
	"libra", "scorpio", "sagittarius", "capricorn", "aquarius", "pisces",
}

// Element and modality category names.
const (
	ElementFire  = "fire"
	ElementEarth = "earth"
	ElementAir   = "air"
	ElementWater = "water"

	ModalityCardinal = "cardinal"
	ModalityFixed    = "fixed"
	ModalityMutable  = "mutable"
)

// Elements lists the four element categories in display order.
var Elements = []string{ElementFire, ElementEarth, ElementAir, ElementWater}

// Modalities lists the three modality categories in display order.
var Modalities = []string{ModalityCardinal, ModalityFixed, ModalityMutable}

// signElements maps each zodiac sign to its element.
var signElements = map[string]string{
	"aries": ElementFire, "leo": ElementFire, "sagittarius": ElementFire,
	"taurus": ElementEarth, "virgo": ElementEarth, "capricorn": ElementEarth,
	"gemini": ElementAir, "libra": ElementAir, "aquarius": ElementAir,
	"cancer": ElementWater, "scorpio": ElementWater, "pisces": ElementWater,
}

// signModalities maps each zodiac sign to its modality.
var signModalities = map[string]string{
	"aries": ModalityCardinal, "cancer": ModalityCardinal, "libra": ModalityCardinal, "capricorn": ModalityCardinal,
	"taurus": ModalityFixed, "leo": ModalityFixed, "scorpio": ModalityFixed, "aquarius": ModalityFixed,
	"gemini": ModalityMutable, "virgo": ModalityMutable, "sagittarius": ModalityMutable, "pisces": ModalityMutable,
}

// signIndex maps each sign to its 0-based position in ecliptic order.
var signIndex = func() map[string]int {
	m := make(map[string]int, len(ZodiacSigns))
	for i, s := range ZodiacSigns {
		m[s] = i
	}
	return m
}()

// SignElement returns the element for a zodiac sign (case-insensitive).
// Returns "" for unknown signs.
func SignElement(sign string) string {
	return signElements[strings.ToLower(sign)]
}

// SignModality returns the modality for a zodiac sign (case-insensitive).
// Returns "" for unknown signs.
func SignModality(sign string) string {
	return signModalities[strings.ToLower(sign)]
}

// SignIndex returns the 0-based ecliptic position of a sign, or -1 if the
// sign is not one of the 12 canonical names.
func SignIndex(sign string) int {
	if i, ok := signIndex[strings.ToLower(sign)]; ok {
		return i
	}
	return -1
}

// SignAt returns the sign at the given ecliptic position, wrapping modulo 12.
func SignAt(index int) string {
	i := index % len(ZodiacSigns)
	if i < 0 {
		i += len(ZodiacSigns)
	}
	return ZodiacSigns[i]
}

// IsZodiacSign reports whether name is one of the 12 canonical signs.
func IsZodiacSign(name string) bool {
	_, ok := signIndex[strings.ToLower(name)]
	return ok
}

// pseudoPoints are chart points that participate in aspects and houses but
// are excluded from element/modality counts and stellium detection.
var pseudoPoints = map[string]bool{
	"ascendant":   true,
	"midheaven":   true,
	"descendant":  true,
	"imum_coeli":  true,
	"north node":  true,
	"south node":  true,
	"north_node":  true,
	"south_node":  true,
	"true node":   true,
	"mean node":   true,
	"vertex":      true,
	"part of fortune": true,
}

// IsPseudoPoint reports whether the named point is an angle or node rather
// than a physical body. Pseudo points are skipped by the balance analyzers
// and the stellium detector.
func IsPseudoPoint(name string) bool {
	return pseudoPoints[strings.ToLower(name)]
}

// Planet is one charted body: its zodiac sign, ecliptic degree, occupied
// house, and retrograde flag.
type Planet struct {
	// Name is the display name of the body (e.g. "Sun")
	Name string `json:"name"`

	// Sign is the lower-cased zodiac sign the body occupies
	Sign string `json:"sign"`

	// Degree is the absolute ecliptic longitude in [0, 360)
	Degree float64 `json:"degree"`

	// House is the occupied house, 1-12 (0 when unknown)
	House int `json:"house"`

	// Retrograde indicates apparent retrograde motion
	Retrograde bool `json:"retrograde"`
}

// House is one of the 12 chart sectors, identified by its cusp.
type House struct {
	// Number is the house number, 1-12
	Number int `json:"number"`

	// Sign is the lower-cased zodiac sign on the cusp
	Sign string `json:"sign"`

	// Degree is the cusp's absolute ecliptic longitude in [0, 360)
	Degree float64 `json:"degree"`
}

// Angle is one of the four chart angles (ascendant, midheaven, descendant,
// imum coeli).
type Angle struct {
	// Sign is the lower-cased zodiac sign the angle falls in
	Sign string `json:"sign"`

	// Degree is the absolute ecliptic longitude in [0, 360)
	Degree float64 `json:"degree"`
}

// Chart is the normalized natal chart consumed by every analyzer.
// Planet and house keys are lower-cased; Planet.Name preserves the display
// spelling supplied by the caller.
type Chart struct {
	// Planets maps lower-cased body name to its position
	Planets map[string]Planet `json:"planets"`

	// Houses maps house number (1-12) to its cusp
	Houses map[int]House `json:"houses"`

	// Angles maps angle name (ascendant, midheaven, descendant, imum_coeli)
	// to its position
	Angles map[string]Angle `json:"angles"`

	// Aspects lists the angular relationships between chart points, in the
	// order supplied by the caller
	Aspects []Aspect `json:"aspects"`
}

// Planet returns the planet record for a name, case-insensitively.
func (c *Chart) Planet(name string) (Planet, bool) {
	p, ok := c.Planets[strings.ToLower(name)]
	return p, ok
}

// CountedPlanets returns the names of all charted bodies that participate
// in element/modality counts and stellium detection, i.e. everything except
// pseudo points. Order is not specified.
func (c *Chart) CountedPlanets() []string {
	names := make([]string, 0, len(c.Planets))
	for name := range c.Planets {
		if !IsPseudoPoint(name) {
			names = append(names, name)
		}
	}
	return names
}
