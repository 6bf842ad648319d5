// Package balance computes element and modality distributions over the
// charted bodies.
package balance

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/harrison/stellium/internal/knowledge"
	"github.com/harrison/stellium/internal/logger"
	"github.com/harrison/stellium/internal/models"
)

// emphasisThreshold is the percentage above which the stronger "emphasis"
// template variant is preferred over the plain pattern text.
const emphasisThreshold = 40.0

// lackingThreshold marks a category as lacking when its count is at or
// below this value. A category holding exactly one planet is still
// reported as lacking; that is intentional.
const lackingThreshold = 1

// Analyzer computes element and modality balances for a chart.
type Analyzer struct {
	store *knowledge.Store
	log   logger.Logger
}

// NewAnalyzer creates a balance Analyzer. A nil log defaults to the no-op
// logger.
func NewAnalyzer(store *knowledge.Store, log logger.Logger) *Analyzer {
	if log == nil {
		log = logger.Nop{}
	}
	return &Analyzer{store: store, log: log}
}

// Elements computes the element distribution over the chart's counted
// planets (angles and nodes excluded).
func (a *Analyzer) Elements(c *models.Chart) models.Balance {
	return a.analyze(c, models.Elements, models.SignElement)
}

// Modalities computes the modality distribution over the chart's counted
// planets (angles and nodes excluded).
func (a *Analyzer) Modalities(c *models.Chart) models.Balance {
	return a.analyze(c, models.Modalities, models.SignModality)
}

// analyze accumulates counts over one category axis and composes the
// interpretation text.
func (a *Analyzer) analyze(c *models.Chart, categories []string, classify func(string) string) models.Balance {
	b := models.Balance{
		Counts:      make(map[string]int, len(categories)),
		Percentages: make(map[string]float64, len(categories)),
		Planets:     make(map[string][]string, len(categories)),
	}
	for _, cat := range categories {
		b.Counts[cat] = 0
		b.Percentages[cat] = 0
		b.Planets[cat] = []string{}
	}

	names := c.CountedPlanets()
	sort.Strings(names)

	total := 0
	for _, name := range names {
		planet := c.Planets[name]
		cat := classify(planet.Sign)
		if cat == "" {
			continue
		}
		b.Counts[cat]++
		b.Planets[cat] = append(b.Planets[cat], planet.Name)
		total++
	}

	for _, cat := range categories {
		if total > 0 {
			b.Percentages[cat] = round2(float64(b.Counts[cat]) / float64(total) * 100)
		}
	}

	// Dominant is the highest-count category; first in category order wins
	// ties. All-zero distributions have no dominant.
	best := 0
	for _, cat := range categories {
		if b.Counts[cat] > best {
			best = b.Counts[cat]
			b.Dominant = cat
		}
	}

	b.Lacking = []string{}
	for _, cat := range categories {
		if b.Counts[cat] <= lackingThreshold {
			b.Lacking = append(b.Lacking, cat)
		}
	}

	b.Interpretation = a.interpret(b)
	return b
}

// interpret builds the balance text from the pattern templates: the
// dominant category's template (emphasis variant above the threshold),
// followed by one sentence per lacking category.
func (a *Analyzer) interpret(b models.Balance) string {
	var parts []string

	if b.Dominant != "" {
		parts = append(parts, a.dominantText(b))
	}

	for _, cat := range b.Lacking {
		record := a.store.Pattern(cat + "_lacking")
		if record == nil {
			a.log.Warnf("balance: no lacking template for %s, using fallback", cat)
			parts = append(parts, fmt.Sprintf("The chart carries little %s energy.", cat))
			continue
		}
		parts = append(parts, record.Str("pattern"))
	}

	if len(parts) == 0 {
		return "The chart shows a balanced distribution with no single dominant or notably lacking category."
	}
	return strings.Join(parts, " ")
}

func (a *Analyzer) dominantText(b models.Balance) string {
	record := a.store.Pattern(b.Dominant + "_dominant")
	if record == nil {
		a.log.Warnf("balance: no dominant template for %s, using fallback", b.Dominant)
		return fmt.Sprintf("The %s category leads this chart.", b.Dominant)
	}

	template := record.Str("pattern")
	if b.Percentages[b.Dominant] > emphasisThreshold {
		if emphasis := record.Str("emphasis"); emphasis != "" {
			template = emphasis
		}
	}

	return strings.ReplaceAll(template, "{planets}", joinNames(b.Planets[b.Dominant]))
}

// joinNames renders a planet list as natural language ("Sun, Moon and Mars").
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
