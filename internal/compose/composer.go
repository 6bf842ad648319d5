// Package compose builds the natural-language interpretation text and
// assembles it into the final named, ordered sections.
//
// Every per-entity builder follows the same three-tier resolution:
// a specific interpretation keyed by the exact entity identity, then a
// generic one substituted from the entity's knowledge records, then a
// hardcoded minimal sentence naming only the entity. Every fallback is
// logged at warn level.
package compose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harrison/stellium/internal/dignity"
	"github.com/harrison/stellium/internal/knowledge"
	"github.com/harrison/stellium/internal/logger"
	"github.com/harrison/stellium/internal/models"
)

// Orb significance thresholds, as fractions of the aspect's defined orb.
const (
	tightOrbFraction = 0.25
	wideOrbFraction  = 0.85
)

// Composer builds per-entity interpretation text from the knowledge
// store.
type Composer struct {
	store *knowledge.Store
	log   logger.Logger
}

// NewComposer creates a Composer. A nil log defaults to the no-op logger.
func NewComposer(store *knowledge.Store, log logger.Logger) *Composer {
	if log == nil {
		log = logger.Nop{}
	}
	return &Composer{store: store, log: log}
}

// PlanetInSign composes the interpretation for one planet's sign and
// house placement, including its essential dignity and retrograde state.
func (cp *Composer) PlanetInSign(c *models.Chart, key string) string {
	planet, ok := c.Planet(key)
	if !ok {
		return ""
	}

	text := cp.planetSignText(key, planet)

	if state := dignity.Resolve(key, planet.Sign); state != models.DignityPeregrine {
		if record := cp.store.Dignity(string(state)); record != nil {
			text += fmt.Sprintf(" Here %s %s.", planet.Name, record.Str("description"))
		}
	}

	if planet.House >= 1 && planet.House <= 12 {
		if house := cp.store.House(planet.House); house != nil {
			text += fmt.Sprintf(" Placed in the %s, this plays out through %s.",
				strings.ToLower(house.Str("name")), house.Str("represents"))
		}
	}

	if planet.Retrograde {
		text += " " + cp.retrogradeText(key, planet)
	}

	return text
}

// planetSignText resolves the core planet-in-sign sentence through the
// three fallback tiers.
func (cp *Composer) planetSignText(key string, planet models.Planet) string {
	// Tier 1: specific interpretation for this exact pairing
	specificKey := fmt.Sprintf("%s_%s", strings.ToLower(key), planet.Sign)
	if record := cp.store.Description(specificKey); record != nil {
		if text := record.Str("text"); text != "" {
			return text
		}
	}

	// Tier 2: generic text substituted from the planet and sign records
	planetRecord := cp.store.Planet(key)
	signRecord := cp.store.Sign(planet.Sign)
	represents := planetRecord.Str("represents")
	signDescription := signRecord.Str("description")
	if represents != "" && signDescription != "" {
		cp.log.Warnf("compose: no specific text for %s, using generic", specificKey)
		return fmt.Sprintf("%s, governing %s, expresses through %s here.",
			planet.Name, represents, signDescription)
	}

	// Tier 3: minimal hardcoded sentence
	cp.log.Warnf("compose: no knowledge data for %s in %s, using fallback", key, planet.Sign)
	return fmt.Sprintf("%s is in %s.", planet.Name, planet.Sign)
}

// retrogradeText resolves the retrograde clause for a planet.
func (cp *Composer) retrogradeText(key string, planet models.Planet) string {
	if record := cp.store.Planet(key); record != nil {
		if text := record.Str("retrograde"); text != "" {
			return text
		}
	}
	cp.log.Warnf("compose: no retrograde text for %s, using fallback", key)
	return fmt.Sprintf("%s is retrograde, turning its themes inward.", planet.Name)
}

// HouseCusp composes the interpretation for a house cusp's sign.
func (cp *Composer) HouseCusp(house models.House) string {
	// Tier 1: specific cusp interpretation
	specificKey := fmt.Sprintf("house%d_%s", house.Number, house.Sign)
	if record := cp.store.Description(specificKey); record != nil {
		if text := record.Str("text"); text != "" {
			return text
		}
	}

	// Tier 2: generic from house and sign records
	houseRecord := cp.store.House(house.Number)
	signRecord := cp.store.Sign(house.Sign)
	represents := houseRecord.Str("represents")
	signDescription := signRecord.Str("description")
	if represents != "" && signDescription != "" {
		cp.log.Warnf("compose: no specific text for %s, using generic", specificKey)
		return fmt.Sprintf("With %s on the cusp, %s is approached with %s.",
			signName(signRecord, house.Sign), represents, signDescription)
	}

	// Tier 3: minimal sentence
	cp.log.Warnf("compose: no knowledge data for house %d cusp, using fallback", house.Number)
	return fmt.Sprintf("House %d begins in %s.", house.Number, house.Sign)
}

// Aspect composes the interpretation for one aspect, with orb
// significance commentary appended. The second return is false when the
// aspect type is unknown to the knowledge store entirely; such aspects
// are skipped, not failed.
func (cp *Composer) Aspect(c *models.Chart, a models.Aspect) (string, bool) {
	record := cp.store.Aspect(a.Type.Name)
	if record == nil && a.Type.Angle >= 0 {
		record = cp.store.Aspect(strconv.FormatFloat(a.Type.Angle, 'f', -1, 64))
	}
	if record == nil {
		cp.log.Warnf("compose: unknown aspect type %q between %s and %s, skipping",
			a.Type.Name, a.Planet1, a.Planet2)
		return "", false
	}

	text := cp.aspectCoreText(c, a, record)

	if orb, ok := record.Float("orb"); ok && orb > 0 {
		switch {
		case a.Orb < orb*tightOrbFraction:
			text += " With such a tight orb, this influence is particularly direct and hard to ignore."
		case a.Orb > orb*wideOrbFraction:
			text += " The wide orb makes this influence less immediate, a background tone rather than a driving theme."
		}
	}

	return text, true
}

// aspectCoreText resolves the aspect sentence through the fallback tiers.
func (cp *Composer) aspectCoreText(c *models.Chart, a models.Aspect, record knowledge.Record) string {
	pairKey := knowledge.PairKey(a.Planet1, a.Planet2)

	// Tier 1: specific pair interpretation
	if pairs := record.Sub("pairs"); pairs != nil {
		if text := pairs.Str(pairKey); text != "" {
			return text
		}
	}

	p1 := displayName(c, a.Planet1)
	p2 := displayName(c, a.Planet2)
	aspectName := record.Str("name")

	// Tier 2: generic built from the aspect's description
	if description := record.Str("description"); description != "" {
		cp.log.Warnf("compose: no specific text for %s %s, using generic", aspectName, pairKey)
		return fmt.Sprintf("%s and %s %s.", p1, p2, description)
	}

	// Tier 3: minimal sentence
	cp.log.Warnf("compose: no description for aspect %q, using fallback", a.Type.Name)
	return fmt.Sprintf("%s forms a %s with %s.", p1, strings.ToLower(aspectName), p2)
}

// Combination composes the interpretation for a notable planet pair
// (e.g. Sun-Moon), returning title and text. Absent combinations return
// empty strings; they are optional content, not fallback failures.
func (cp *Composer) Combination(p1, p2 string) (string, string) {
	record := cp.store.Combination(knowledge.PairKey(p1, p2))
	if record == nil {
		return "", ""
	}
	return record.Str("title"), record.Str("text")
}

// AngleText composes a short interpretation for one chart angle.
func (cp *Composer) AngleText(name string, angle models.Angle) string {
	if angle.Sign == "" {
		return ""
	}

	// Tier 1: specific (keyed like ascendant_leo)
	specificKey := fmt.Sprintf("%s_%s", strings.ToLower(name), angle.Sign)
	if record := cp.store.Description(specificKey); record != nil {
		if text := record.Str("text"); text != "" {
			return text
		}
	}

	// Tier 2: generic from the sign record
	signRecord := cp.store.Sign(angle.Sign)
	if description := signRecord.Str("description"); description != "" {
		cp.log.Warnf("compose: no specific text for %s, using generic", specificKey)
		return fmt.Sprintf("The %s falls in %s, coloring it with %s.",
			angleDisplay(name), signName(signRecord, angle.Sign), description)
	}

	// Tier 3: minimal sentence
	cp.log.Warnf("compose: no knowledge data for angle %s, using fallback", name)
	return fmt.Sprintf("The %s is in %s.", angleDisplay(name), angle.Sign)
}

func angleDisplay(name string) string {
	switch strings.ToLower(name) {
	case "imum_coeli":
		return "imum coeli"
	default:
		return strings.ToLower(name)
	}
}

func signName(record knowledge.Record, fallback string) string {
	if name := record.Str("name"); name != "" {
		return name
	}
	return fallback
}

func displayName(c *models.Chart, key string) string {
	if planet, ok := c.Planet(key); ok && planet.Name != "" {
		return planet.Name
	}
	return key
}
