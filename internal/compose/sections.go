package compose

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harrison/stellium/internal/knowledge"
	"github.com/harrison/stellium/internal/logger"
	"github.com/harrison/stellium/internal/models"
)

// Analysis bundles the analyzer outputs the assembler packages into
// sections.
type Analysis struct {
	Elements        models.Balance
	Modalities      models.Balance
	Stelliums       []models.SimplePattern
	HouseEmphasis   []models.SimplePattern
	ComplexPatterns []models.ComplexPattern
	Shape           models.ChartShape
}

// Assembler packages composer output and analysis results into the
// fixed, display-ordered section set.
type Assembler struct {
	store    *knowledge.Store
	composer *Composer
	log      logger.Logger
}

// NewAssembler creates an Assembler. A nil log defaults to the no-op
// logger.
func NewAssembler(store *knowledge.Store, composer *Composer, log logger.Logger) *Assembler {
	if log == nil {
		log = logger.Nop{}
	}
	return &Assembler{store: store, composer: composer, log: log}
}

// Assemble builds every named section from the chart and its analysis,
// then filters the display order down to sections that carry content or
// data. The retrograde section is suppressed outright when no planet is
// retrograde.
func (asm *Assembler) Assemble(c *models.Chart, analysis Analysis, level string) (map[string]models.Section, []string) {
	sections := map[string]models.Section{
		models.SectionOverview:         asm.overview(c),
		models.SectionChartShape:       asm.chartShape(analysis.Shape),
		models.SectionCoreSigns:        asm.coreSigns(c),
		models.SectionStelliums:        asm.stelliums(analysis.Stelliums),
		models.SectionSignDistribution: asm.signDistribution(c),
		models.SectionChartHighlights:  asm.chartHighlights(c, analysis.ComplexPatterns, level),
		models.SectionElementBalance:   asm.balanceSection("Element Balance", analysis.Elements),
		models.SectionModalityBalance:  asm.balanceSection("Modality Balance", analysis.Modalities),
		models.SectionHouseEmphasis:    asm.houseEmphasis(analysis.HouseEmphasis),
		models.SectionAngles:           asm.angles(c),
	}

	if level != "basic" {
		sections[models.SectionSunSignDetails] = asm.sunSignDetails(c)
	}

	if retro := asm.retrogradePlanets(c); retro != nil {
		sections[models.SectionRetrogradePlanets] = *retro
	}

	var order []string
	for _, key := range models.SectionOrder {
		section, ok := sections[key]
		if !ok || section.Empty() {
			delete(sections, key)
			continue
		}
		order = append(order, key)
	}

	return sections, order
}

func (asm *Assembler) overview(c *models.Chart) models.Section {
	var parts []string

	if sun, ok := c.Planet("sun"); ok {
		parts = append(parts, fmt.Sprintf("Sun in %s", signDisplay(asm.store, sun.Sign)))
	}
	if moon, ok := c.Planet("moon"); ok {
		parts = append(parts, fmt.Sprintf("Moon in %s", signDisplay(asm.store, moon.Sign)))
	}
	if asc, ok := c.Angles["ascendant"]; ok && asc.Sign != "" {
		parts = append(parts, fmt.Sprintf("%s rising", signDisplay(asm.store, asc.Sign)))
	}

	if len(parts) == 0 {
		return models.Section{Title: "Overview"}
	}

	return models.Section{
		Title:   "Overview",
		Content: "This chart carries " + strings.Join(parts, ", ") + ".",
	}
}

func (asm *Assembler) chartShape(shape models.ChartShape) models.Section {
	if shape.Name == "" {
		return models.Section{Title: "Chart Shape"}
	}
	return models.Section{
		Title: "Chart Shape",
		Content: fmt.Sprintf("**%s**: planets span %.1f° with a %.1f° gap. %s",
			shape.Name, shape.OccupiedSpan, shape.LargestGap, shape.Interpretation),
		Data: shape,
	}
}

// coreSigns composes one paragraph each for the Sun, the Moon, and the
// ascendant when present.
func (asm *Assembler) coreSigns(c *models.Chart) models.Section {
	var paragraphs []string

	for _, key := range []string{"sun", "moon"} {
		if text := asm.composer.PlanetInSign(c, key); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	if asc, ok := c.Angles["ascendant"]; ok {
		if text := asm.composer.AngleText("ascendant", asc); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	return models.Section{
		Title:   "Core Signs",
		Content: strings.Join(paragraphs, "\n\n"),
	}
}

// sunSignDetails expands the sun sign's record: extended description,
// element, modality, and keywords.
func (asm *Assembler) sunSignDetails(c *models.Chart) models.Section {
	sun, ok := c.Planet("sun")
	if !ok {
		return models.Section{Title: "Sun Sign Details"}
	}

	record := asm.store.Sign(sun.Sign)
	if record == nil {
		asm.log.Warnf("compose: no sign record for sun sign %s", sun.Sign)
		return models.Section{Title: "Sun Sign Details"}
	}

	var b strings.Builder
	if detail := record.Str("detail"); detail != "" {
		b.WriteString(detail)
	}
	element := record.Str("element")
	modality := record.Str("modality")
	if element != "" && modality != "" {
		fmt.Fprintf(&b, "\n\n%s is a %s %s sign", signDisplay(asm.store, sun.Sign), modality, element)
		if keywords := record.Strings("keywords"); len(keywords) > 0 {
			fmt.Fprintf(&b, ", keyed to %s", strings.Join(keywords, ", "))
		}
		b.WriteString(".")
	}

	return models.Section{
		Title:   "Sun Sign Details",
		Content: b.String(),
		Data: map[string]any{
			"sign":     sun.Sign,
			"element":  element,
			"modality": modality,
			"keywords": record.Strings("keywords"),
		},
	}
}

func (asm *Assembler) stelliums(patterns []models.SimplePattern) models.Section {
	if len(patterns) == 0 {
		return models.Section{Title: "Stelliums"}
	}

	texts := make([]string, 0, len(patterns))
	for _, p := range patterns {
		texts = append(texts, p.Interpretation)
	}

	return models.Section{
		Title:   "Stelliums",
		Content: strings.Join(texts, "\n\n"),
		Data:    patterns,
	}
}

// signDistribution summarizes how many counted planets sit in each
// occupied sign.
func (asm *Assembler) signDistribution(c *models.Chart) models.Section {
	counts := map[string]int{}
	for _, name := range c.CountedPlanets() {
		counts[c.Planets[name].Sign]++
	}
	if len(counts) == 0 {
		return models.Section{Title: "Sign Distribution"}
	}

	var parts []string
	for _, sign := range models.ZodiacSigns {
		if n := counts[sign]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", signDisplay(asm.store, sign), n))
		}
	}

	return models.Section{
		Title:   "Sign Distribution",
		Content: strings.Join(parts, " · "),
		Data:    counts,
	}
}

// chartHighlights merges notable combinations, complex aspect patterns,
// and (at the full level) the individual aspect interpretations.
func (asm *Assembler) chartHighlights(c *models.Chart, patterns []models.ComplexPattern, level string) models.Section {
	var blocks []string

	// Notable pairings among the chart's personal points
	combinationPairs := [][2]string{
		{"sun", "moon"},
		{"sun", "ascendant"},
		{"moon", "ascendant"},
	}
	for _, pair := range combinationPairs {
		if !asm.hasPoint(c, pair[0]) || !asm.hasPoint(c, pair[1]) {
			continue
		}
		title, text := asm.composer.Combination(pair[0], pair[1])
		if text == "" {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("**%s**: %s", title, text))
	}

	for _, p := range patterns {
		blocks = append(blocks, p.Interpretation)
	}

	if level != "basic" {
		for _, a := range c.Aspects {
			if text, ok := asm.composer.Aspect(c, a); ok {
				blocks = append(blocks, text)
			}
		}
	}

	content := strings.Join(blocks, "\n\n")

	var data any
	if len(patterns) > 0 {
		data = patterns
	}

	return models.Section{
		Title:   "Chart Highlights",
		Content: content,
		Data:    data,
	}
}

// hasPoint reports whether a named point exists as a planet or angle.
func (asm *Assembler) hasPoint(c *models.Chart, name string) bool {
	if _, ok := c.Planet(name); ok {
		return true
	}
	_, ok := c.Angles[name]
	return ok
}

func (asm *Assembler) balanceSection(title string, b models.Balance) models.Section {
	if b.Interpretation == "" && len(b.Counts) == 0 {
		return models.Section{Title: title}
	}
	return models.Section{
		Title:   title,
		Content: b.Interpretation,
		Data:    b,
	}
}

func (asm *Assembler) houseEmphasis(patterns []models.SimplePattern) models.Section {
	if len(patterns) == 0 {
		return models.Section{Title: "House Emphasis"}
	}

	texts := make([]string, 0, len(patterns))
	for _, p := range patterns {
		texts = append(texts, p.Interpretation)
	}

	return models.Section{
		Title:   "House Emphasis",
		Content: strings.Join(texts, "\n\n"),
		Data:    patterns,
	}
}

func (asm *Assembler) angles(c *models.Chart) models.Section {
	if len(c.Angles) == 0 {
		return models.Section{Title: "Angles"}
	}

	// Fixed presentation order
	names := []string{"ascendant", "midheaven", "descendant", "imum_coeli"}
	var texts []string
	for _, name := range names {
		angle, ok := c.Angles[name]
		if !ok {
			continue
		}
		if text := asm.composer.AngleText(name, angle); text != "" {
			texts = append(texts, text)
		}
	}

	return models.Section{
		Title:   "Angles",
		Content: strings.Join(texts, "\n\n"),
		Data:    c.Angles,
	}
}

// retrogradePlanets returns nil when no planet is retrograde; the
// section is suppressed entirely in that case.
func (asm *Assembler) retrogradePlanets(c *models.Chart) *models.Section {
	var keys []string
	for name, planet := range c.Planets {
		if planet.Retrograde {
			keys = append(keys, name)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)

	var texts []string
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		planet := c.Planets[key]
		names = append(names, planet.Name)
		texts = append(texts, asm.composer.retrogradeText(key, planet))
	}

	return &models.Section{
		Title:   "Retrograde Planets",
		Content: strings.Join(texts, "\n\n"),
		Data:    names,
	}
}

func signDisplay(store *knowledge.Store, sign string) string {
	if name := store.Sign(sign).Str("name"); name != "" {
		return name
	}
	return sign
}
