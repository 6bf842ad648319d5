// Package shape classifies the overall distribution of bodies around the
// ecliptic (Bundle, Bowl, Locomotive, Splash).
package shape

import (
	"math"
	"sort"

	"github.com/harrison/stellium/internal/knowledge"
	"github.com/harrison/stellium/internal/logger"
	"github.com/harrison/stellium/internal/models"
)

// minimumBodies is the fewest degree values a classification needs;
// below it the shape is Undetermined.
const minimumBodies = 3

// Analyzer classifies chart shapes using thresholds from the knowledge
// store.
type Analyzer struct {
	store *knowledge.Store
	log   logger.Logger
}

// NewAnalyzer creates a shape Analyzer. A nil log defaults to the no-op
// logger.
func NewAnalyzer(store *knowledge.Store, log logger.Logger) *Analyzer {
	if log == nil {
		log = logger.Nop{}
	}
	return &Analyzer{store: store, log: log}
}

// Analyze classifies the chart's shape from its counted planets'
// longitudes. Classification is a pure function of the degree set.
func (a *Analyzer) Analyze(c *models.Chart) models.ChartShape {
	var degrees []float64
	for _, name := range c.CountedPlanets() {
		degrees = append(degrees, c.Planets[name].Degree)
	}
	return a.Classify(degrees)
}

// Classify runs the gap/span geometry over a set of ecliptic degrees.
// Fewer than three values yield Undetermined.
func (a *Analyzer) Classify(degrees []float64) models.ChartShape {
	if len(degrees) < minimumBodies {
		return a.undetermined(0, 0)
	}

	sorted := append([]float64(nil), degrees...)
	sort.Float64s(sorted)

	// Largest gap between consecutive bodies, including the wrap-around
	// from the last back to the first
	largestGap := 360 - sorted[len(sorted)-1] + sorted[0]
	for i := 1; i < len(sorted); i++ {
		if gap := sorted[i] - sorted[i-1]; gap > largestGap {
			largestGap = gap
		}
	}
	span := 360 - largestGap

	name, description := a.classify(span, largestGap)

	return models.ChartShape{
		Name:           name,
		OccupiedSpan:   round1(span),
		LargestGap:     round1(largestGap),
		Interpretation: description,
	}
}

// classify tests the named shapes in priority order against the store's
// thresholds; the first match wins.
func (a *Analyzer) classify(span, gap float64) (string, string) {
	// Bundle: all bodies within the configured span
	if record := a.store.ChartShape("bundle"); record != nil {
		if maxSpan, ok := record.Float("max_span"); ok && span <= maxSpan {
			return a.shapeResult(record)
		}
	}

	// Bowl: half the wheel occupied, and the gap dominates the span
	if record := a.store.ChartShape("bowl"); record != nil {
		if maxSpan, ok := record.Float("max_span"); ok && span <= maxSpan && gap > span {
			return a.shapeResult(record)
		}
	}

	// Locomotive: one open gap of a third to two-thirds of the wheel
	if record := a.store.ChartShape("locomotive"); record != nil {
		minGap, okMin := record.Float("min_gap")
		maxGap, okMax := record.Float("max_gap")
		if okMin && okMax && gap >= minGap && gap <= maxGap {
			return a.shapeResult(record)
		}
	}

	// Splash: no gap wide enough to matter
	if record := a.store.ChartShape("splash"); record != nil {
		if maxGap, ok := record.Float("max_gap"); ok && gap <= maxGap {
			return a.shapeResult(record)
		}
	}

	a.log.Warnf("shape: span %.1f / gap %.1f matched no shape, undetermined", span, gap)
	return models.ShapeUndetermined, a.undeterminedText()
}

func (a *Analyzer) shapeResult(record knowledge.Record) (string, string) {
	return record.Str("name"), record.Str("description")
}

func (a *Analyzer) undetermined(span, gap float64) models.ChartShape {
	return models.ChartShape{
		Name:           models.ShapeUndetermined,
		OccupiedSpan:   round1(span),
		LargestGap:     round1(gap),
		Interpretation: a.undeterminedText(),
	}
}

func (a *Analyzer) undeterminedText() string {
	if record := a.store.ChartShape("undetermined"); record != nil {
		return record.Str("description")
	}
	return "The planetary distribution fits no classical chart shape."
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
