// Package dignity resolves essential dignities from the traditional
// rulership tables, extended with the modern outer-planet rulerships.
package dignity

import (
	"strings"

	"github.com/harrison/stellium/internal/models"
)

// domiciles maps each planet to the signs it rules. Mercury and Venus
// rule two signs each; the luminaries rule one.
var domiciles = map[string][]string{
	"sun":     {"leo"},
	"moon":    {"cancer"},
	"mercury": {"gemini", "virgo"},
	"venus":   {"taurus", "libra"},
	"mars":    {"aries", "scorpio"},
	"jupiter": {"sagittarius", "pisces"},
	"saturn":  {"capricorn", "aquarius"},
	"uranus":  {"aquarius"},
	"neptune": {"pisces"},
	"pluto":   {"scorpio"},
}

// exaltations maps each planet to its sign of exaltation.
var exaltations = map[string]string{
	"sun":     "aries",
	"moon":    "taurus",
	"mercury": "virgo",
	"venus":   "pisces",
	"mars":    "capricorn",
	"jupiter": "cancer",
	"saturn":  "libra",
	"uranus":  "scorpio",
	"neptune": "leo",
	"pluto":   "aries",
}

// detriments maps each planet to the signs opposite its domiciles.
var detriments = map[string][]string{
	"sun":     {"aquarius"},
	"moon":    {"capricorn"},
	"mercury": {"sagittarius", "pisces"},
	"venus":   {"scorpio", "aries"},
	"mars":    {"libra", "taurus"},
	"jupiter": {"gemini", "virgo"},
	"saturn":  {"cancer", "leo"},
	"uranus":  {"leo"},
	"neptune": {"virgo"},
	"pluto":   {"taurus"},
}

// falls maps each planet to the sign opposite its exaltation.
var falls = map[string]string{
	"sun":     "libra",
	"moon":    "scorpio",
	"mercury": "pisces",
	"venus":   "virgo",
	"mars":    "cancer",
	"jupiter": "capricorn",
	"saturn":  "aries",
	"uranus":  "taurus",
	"neptune": "aquarius",
	"pluto":   "libra",
}

// Resolve returns the essential dignity of a planet in a sign. It is a
// pure function of the fixed tables above: domicile, then exaltation,
// then detriment, then fall, and peregrine when none apply. Peregrine is
// a valid state, not an error.
func Resolve(planet, sign string) models.Dignity {
	planet = strings.ToLower(planet)
	sign = strings.ToLower(sign)

	for _, s := range domiciles[planet] {
		if s == sign {
			return models.DignityDomicile
		}
	}
	if exaltations[planet] == sign {
		return models.DignityExaltation
	}
	for _, s := range detriments[planet] {
		if s == sign {
			return models.DignityDetriment
		}
	}
	if falls[planet] == sign {
		return models.DignityFall
	}
	return models.DignityPeregrine
}
