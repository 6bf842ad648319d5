package pattern

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harrison/stellium/internal/knowledge"
	"github.com/harrison/stellium/internal/logger"
	"github.com/harrison/stellium/internal/models"
)

// ComplexDetector finds the classical multi-body aspect patterns.
//
// Detection is greedy and order-dependent: T-Squares first, then Yods,
// Grand Trines, and Grand Crosses, with every planet used by an earlier
// pattern excluded from later ones via a shared consumed set. This avoids
// double-reporting at the cost of hiding a planet's legitimate membership
// in two real patterns; the ordering is an explicit policy, not an
// accident.
type ComplexDetector struct {
	store *knowledge.Store
	log   logger.Logger
}

// NewComplexDetector creates a ComplexDetector. A nil log defaults to the
// no-op logger.
func NewComplexDetector(store *knowledge.Store, log logger.Logger) *ComplexDetector {
	if log == nil {
		log = logger.Nop{}
	}
	return &ComplexDetector{store: store, log: log}
}

// aspectGraph indexes a chart's aspect list by aspect name for the
// geometric queries the detectors run.
type aspectGraph struct {
	// partners maps aspect name -> planet -> set of partners
	partners map[string]map[string]map[string]bool

	// pairs maps aspect name -> sorted pair key -> true
	pairs map[string]map[string]bool
}

func buildGraph(aspects []models.Aspect) *aspectGraph {
	g := &aspectGraph{
		partners: map[string]map[string]map[string]bool{},
		pairs:    map[string]map[string]bool{},
	}
	for _, a := range aspects {
		name := a.Type.Name
		if g.partners[name] == nil {
			g.partners[name] = map[string]map[string]bool{}
			g.pairs[name] = map[string]bool{}
		}
		addPartner(g.partners[name], a.Planet1, a.Planet2)
		addPartner(g.partners[name], a.Planet2, a.Planet1)
		g.pairs[name][knowledge.PairKey(a.Planet1, a.Planet2)] = true
	}
	return g
}

func addPartner(m map[string]map[string]bool, from, to string) {
	if m[from] == nil {
		m[from] = map[string]bool{}
	}
	m[from][to] = true
}

// have reports whether the named aspect exists between two planets.
func (g *aspectGraph) have(aspect, p1, p2 string) bool {
	return g.pairs[aspect][knowledge.PairKey(p1, p2)]
}

// pairsOf returns the aspects of one name as (p1, p2) pairs in input order.
func pairsOf(aspects []models.Aspect, name string) [][2]string {
	var out [][2]string
	for _, a := range aspects {
		if a.Type.Name == name {
			out = append(out, [2]string{a.Planet1, a.Planet2})
		}
	}
	return out
}

// Detect runs all four detectors in their fixed order over the chart and
// returns every pattern found. No planet appears in more than one pattern
// type per run.
func (d *ComplexDetector) Detect(c *models.Chart) []models.ComplexPattern {
	if len(c.Aspects) == 0 {
		return nil
	}

	graph := buildGraph(c.Aspects)
	consumed := map[string]bool{}

	// Fixed greedy order; each detector marks its planets consumed before
	// the next runs.
	detectors := []func(*models.Chart, *aspectGraph, map[string]bool) []models.ComplexPattern{
		d.tSquares,
		d.yods,
		d.grandTrines,
		d.grandCrosses,
	}

	var patterns []models.ComplexPattern
	for _, detect := range detectors {
		patterns = append(patterns, detect(c, graph, consumed)...)
	}
	return patterns
}

// anyConsumed reports whether any of the planets is already used by an
// earlier pattern.
func anyConsumed(consumed map[string]bool, planets ...string) bool {
	for _, p := range planets {
		if consumed[p] {
			return true
		}
	}
	return false
}

func consume(consumed map[string]bool, planets ...string) {
	for _, p := range planets {
		consumed[p] = true
	}
}

// sortedKeys returns a set's members in sorted order.
func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// comboKey builds a dedupe key from a sorted copy of the planet names.
func comboKey(planets ...string) string {
	sorted := append([]string(nil), planets...)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}

// tSquares finds every opposition whose two ends share a square partner:
// the shared partner is the apex.
func (d *ComplexDetector) tSquares(c *models.Chart, g *aspectGraph, consumed map[string]bool) []models.ComplexPattern {
	var patterns []models.ComplexPattern
	seen := map[string]bool{}

	for _, opp := range pairsOf(c.Aspects, "opposition") {
		p1, p2 := opp[0], opp[1]

		// Candidate apexes square both ends of the opposition; sorted for
		// deterministic greedy consumption
		for _, apex := range sortedKeys(g.partners["square"][p1]) {
			if apex == p1 || apex == p2 || !g.partners["square"][p2][apex] {
				continue
			}
			key := comboKey(p1, p2, apex)
			if seen[key] {
				continue
			}
			seen[key] = true

			if anyConsumed(consumed, p1, p2, apex) {
				continue
			}
			consume(consumed, p1, p2, apex)

			patterns = append(patterns, models.ComplexPattern{
				Type:           models.PatternTSquare,
				Planets:        []string{p1, p2, apex},
				Apex:           apex,
				Interpretation: d.tSquareText(c, p1, p2, apex),
			})
		}
	}
	return patterns
}

// tSquareText combines the structural template with geometry-derived
// commentary: the shared modality, the missing element, and the empty-leg
// sign opposite the apex.
func (d *ComplexDetector) tSquareText(c *models.Chart, p1, p2, apex string) string {
	text := d.patternTemplate(models.PatternTSquare, []string{p1, p2, apex}, apex)

	// All three signs share a modality by the geometry of squares and
	// oppositions, so reading it off the first planet is enough.
	if planet, ok := c.Planet(p1); ok {
		if modality := models.SignModality(planet.Sign); modality != "" {
			text += fmt.Sprintf(" The pattern runs in %s signs, so its tension expresses as %s.",
				modality, d.categoryTheme(modality))
		}
	}

	if missing := d.missingElement(c, p1, p2, apex); missing != "" {
		text += fmt.Sprintf(" The %s element is absent from the configuration; cultivating %s helps discharge it.",
			missing, d.categoryTheme(missing))
	}

	if planet, ok := c.Planet(apex); ok {
		if idx := models.SignIndex(planet.Sign); idx >= 0 {
			emptyLeg := models.SignAt(idx + 6)
			text += fmt.Sprintf(" The empty leg opposite the apex falls in %s, pointing at the themes that complete the square.", emptyLeg)
		}
	}

	return text
}

// missingElement returns the first element not represented among the
// three planets' signs, or "" when all four are covered.
func (d *ComplexDetector) missingElement(c *models.Chart, planets ...string) string {
	present := map[string]bool{}
	for _, name := range planets {
		if planet, ok := c.Planet(name); ok {
			present[models.SignElement(planet.Sign)] = true
		}
	}
	for _, element := range models.Elements {
		if !present[element] {
			return element
		}
	}
	return ""
}

// yods finds sextile pairs whose both ends form a quincunx to one common
// third point: that point is the apex.
func (d *ComplexDetector) yods(c *models.Chart, g *aspectGraph, consumed map[string]bool) []models.ComplexPattern {
	var patterns []models.ComplexPattern
	seen := map[string]bool{}

	for _, sextile := range pairsOf(c.Aspects, "sextile") {
		a, b := sextile[0], sextile[1]

		for _, apex := range sortedKeys(g.partners["quincunx"][a]) {
			if apex == a || apex == b || !g.partners["quincunx"][b][apex] {
				continue
			}
			key := comboKey(a, b, apex)
			if seen[key] {
				continue
			}
			seen[key] = true

			if anyConsumed(consumed, a, b, apex) {
				continue
			}
			consume(consumed, a, b, apex)

			text := d.patternTemplate(models.PatternYod, []string{a, b, apex}, apex)
			text += fmt.Sprintf(" %s and %s form the cooperative base; %s carries the demand for adjustment.",
				displayName(c, a), displayName(c, b), displayName(c, apex))

			patterns = append(patterns, models.ComplexPattern{
				Type:           models.PatternYod,
				Planets:        []string{a, b, apex},
				Apex:           apex,
				Interpretation: text,
			})
		}
	}
	return patterns
}

// grandTrines enumerates all 3-combinations of charted planets and keeps
// those whose three pairwise aspects are all trines. O(n^3) over at most
// a dozen bodies.
func (d *ComplexDetector) grandTrines(c *models.Chart, g *aspectGraph, consumed map[string]bool) []models.ComplexPattern {
	names := make([]string, 0, len(c.Planets))
	for name := range c.Planets {
		if !consumed[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var patterns []models.ComplexPattern
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if !g.have("trine", names[i], names[j]) {
				continue
			}
			for k := j + 1; k < len(names); k++ {
				p1, p2, p3 := names[i], names[j], names[k]
				if !g.have("trine", p1, p3) || !g.have("trine", p2, p3) {
					continue
				}
				if anyConsumed(consumed, p1, p2, p3) {
					continue
				}
				consume(consumed, p1, p2, p3)

				text := d.patternTemplate(models.PatternGrandTrine, []string{p1, p2, p3}, "")
				if element := d.commonElement(c, p1, p2, p3); element != "" {
					text += fmt.Sprintf(" Flowing entirely through %s signs, the circuit feeds %s.",
						element, d.categoryTheme(element))
				}

				patterns = append(patterns, models.ComplexPattern{
					Type:           models.PatternGrandTrine,
					Planets:        []string{p1, p2, p3},
					Interpretation: text,
				})
			}
		}
	}
	return patterns
}

// commonElement returns the shared element of the planets' signs, or ""
// when they differ.
func (d *ComplexDetector) commonElement(c *models.Chart, planets ...string) string {
	element := ""
	for _, name := range planets {
		planet, ok := c.Planet(name)
		if !ok {
			return ""
		}
		e := models.SignElement(planet.Sign)
		if element == "" {
			element = e
		} else if element != e {
			return ""
		}
	}
	return element
}

// grandCrosses pairs up oppositions with four distinct planets and keeps
// those whose four cross-pairs are all squares.
func (d *ComplexDetector) grandCrosses(c *models.Chart, g *aspectGraph, consumed map[string]bool) []models.ComplexPattern {
	oppositions := pairsOf(c.Aspects, "opposition")

	var patterns []models.ComplexPattern
	seen := map[string]bool{}

	for i := 0; i < len(oppositions); i++ {
		for j := i + 1; j < len(oppositions); j++ {
			p1, p2 := oppositions[i][0], oppositions[i][1]
			p3, p4 := oppositions[j][0], oppositions[j][1]

			if p3 == p1 || p3 == p2 || p4 == p1 || p4 == p2 {
				continue
			}
			if !g.have("square", p1, p3) || !g.have("square", p1, p4) ||
				!g.have("square", p2, p3) || !g.have("square", p2, p4) {
				continue
			}

			key := comboKey(p1, p2, p3, p4)
			if seen[key] {
				continue
			}
			seen[key] = true

			if anyConsumed(consumed, p1, p2, p3, p4) {
				continue
			}
			consume(consumed, p1, p2, p3, p4)

			text := d.patternTemplate(models.PatternGrandCross, []string{p1, p2, p3, p4}, "")
			if planet, ok := c.Planet(p1); ok {
				if modality := models.SignModality(planet.Sign); modality != "" {
					text += fmt.Sprintf(" Anchored in %s signs, the cross demands %s under pressure.",
						modality, d.categoryTheme(modality))
				}
			}

			patterns = append(patterns, models.ComplexPattern{
				Type:           models.PatternGrandCross,
				Planets:        []string{p1, p2, p3, p4},
				Interpretation: text,
			})
		}
	}
	return patterns
}

// patternTemplate fetches the structural template for a pattern type and
// substitutes the planet and apex placeholders. Missing templates fall
// back to a minimal sentence and log a warning.
func (d *ComplexDetector) patternTemplate(patternType string, planets []string, apex string) string {
	record := d.store.Pattern(patternType)
	if record == nil {
		d.log.Warnf("pattern: no template for %s, using fallback", patternType)
		return fmt.Sprintf("A %s links %s.", patternType, joinNames(planets))
	}

	text := record.Str("description")
	text = strings.ReplaceAll(text, "{planets}", joinNames(planets))
	text = strings.ReplaceAll(text, "{apex}", apex)
	return text
}

// categoryTheme reads the theme sentence fragment for an element or
// modality from the knowledge store.
func (d *ComplexDetector) categoryTheme(category string) string {
	if theme := d.store.Element(category).Str("theme"); theme != "" {
		return theme
	}
	return category + " qualities"
}

// displayName returns the chart's display spelling for a planet key.
func displayName(c *models.Chart, key string) string {
	if planet, ok := c.Planet(key); ok && planet.Name != "" {
		return planet.Name
	}
	return key
}
