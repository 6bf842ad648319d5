// Package pattern detects planetary configurations: concentration
// patterns (stelliums, house emphasis) and the classical multi-body
// aspect patterns (T-Square, Yod, Grand Trine, Grand Cross).
package pattern

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harrison/stellium/internal/knowledge"
	"github.com/harrison/stellium/internal/logger"
	"github.com/harrison/stellium/internal/models"
)

// stelliumMinimum is the number of bodies in one sign or house that
// constitutes a stellium or house emphasis.
const stelliumMinimum = 3

// houseOrdinals maps house numbers to the ordinal keys used by the
// house_emphasis knowledge domain.
var houseOrdinals = map[int]string{
	1: "first_house", 2: "second_house", 3: "third_house",
	4: "fourth_house", 5: "fifth_house", 6: "sixth_house",
	7: "seventh_house", 8: "eighth_house", 9: "ninth_house",
	10: "tenth_house", 11: "eleventh_house", 12: "twelfth_house",
}

// Detector finds concentration patterns in a chart.
type Detector struct {
	store *knowledge.Store
	log   logger.Logger
}

// NewDetector creates a simple-pattern Detector. A nil log defaults to
// the no-op logger.
func NewDetector(store *knowledge.Store, log logger.Logger) *Detector {
	if log == nil {
		log = logger.Nop{}
	}
	return &Detector{store: store, log: log}
}

// Stelliums returns one pattern per sign holding three or more counted
// planets, in zodiac order.
func (d *Detector) Stelliums(c *models.Chart) []models.SimplePattern {
	bySign := map[string][]string{}
	for _, name := range sortedCountedPlanets(c) {
		planet := c.Planets[name]
		bySign[planet.Sign] = append(bySign[planet.Sign], planet.Name)
	}

	var patterns []models.SimplePattern
	for _, sign := range models.ZodiacSigns {
		planets := bySign[sign]
		if len(planets) < stelliumMinimum {
			continue
		}
		patterns = append(patterns, models.SimplePattern{
			Type:           models.PatternStellium,
			Sign:           sign,
			Planets:        planets,
			Count:          len(planets),
			Interpretation: d.stelliumText(sign, planets),
		})
	}
	return patterns
}

// stelliumText fills the stellium template with the sign name, the planet
// list, and the sign's leading keywords.
func (d *Detector) stelliumText(sign string, planets []string) string {
	record := d.store.Pattern(models.PatternStellium)
	if record == nil {
		d.log.Warnf("pattern: no stellium template, using fallback")
		return fmt.Sprintf("A stellium concentrates %s in %s.", joinNames(planets), sign)
	}

	keywords := d.store.Sign(sign).Strings("keywords")
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}

	signName := d.store.Sign(sign).Str("name")
	if signName == "" {
		signName = sign
	}

	text := record.Str("pattern")
	text = strings.ReplaceAll(text, "{sign}", signName)
	text = strings.ReplaceAll(text, "{planets}", joinNames(planets))
	text = strings.ReplaceAll(text, "{keywords}", strings.Join(keywords, ", "))
	return text
}

// HouseEmphasis returns one pattern per house holding three or more
// planets, in house order. Houses with no emphasis record in the
// knowledge store are skipped silently (logged, not an error).
func (d *Detector) HouseEmphasis(c *models.Chart) []models.SimplePattern {
	byHouse := map[int][]string{}
	for _, name := range sortedCountedPlanets(c) {
		planet := c.Planets[name]
		if planet.House < 1 || planet.House > 12 {
			continue
		}
		byHouse[planet.House] = append(byHouse[planet.House], planet.Name)
	}

	var patterns []models.SimplePattern
	for house := 1; house <= 12; house++ {
		planets := byHouse[house]
		if len(planets) < stelliumMinimum {
			continue
		}

		record := d.store.HouseEmphasis(houseOrdinals[house])
		if record == nil {
			d.log.Warnf("pattern: no emphasis record for house %d, skipping", house)
			continue
		}

		patterns = append(patterns, models.SimplePattern{
			Type:           models.PatternHouseEmphasis,
			House:          house,
			Planets:        planets,
			Count:          len(planets),
			Interpretation: record.Str("description"),
		})
	}
	return patterns
}

// sortedCountedPlanets returns the chart's counted planet keys in a
// deterministic order.
func sortedCountedPlanets(c *models.Chart) []string {
	names := c.CountedPlanets()
	sort.Strings(names)
	return names
}

// joinNames renders a planet list as natural language.
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
