// Package interpret wires the analyzers and the composer into the
// top-level interpretation engine.
package interpret

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/stellium/internal/balance"
	"github.com/harrison/stellium/internal/chart"
	"github.com/harrison/stellium/internal/compose"
	"github.com/harrison/stellium/internal/knowledge"
	"github.com/harrison/stellium/internal/logger"
	"github.com/harrison/stellium/internal/models"
	"github.com/harrison/stellium/internal/pattern"
	"github.com/harrison/stellium/internal/shape"
)

// Engine runs the full interpretation pipeline: balance analysis,
// pattern detection, shape classification, and section assembly.
type Engine struct {
	store     *knowledge.Store
	balance   *balance.Analyzer
	simple    *pattern.Detector
	complex   *pattern.ComplexDetector
	shape     *shape.Analyzer
	assembler *compose.Assembler
	log       logger.Logger
}

// NewEngine creates an Engine backed by the given knowledge store. A nil
// log defaults to the no-op logger.
func NewEngine(store *knowledge.Store, log logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop{}
	}
	composer := compose.NewComposer(store, log)
	return &Engine{
		store:     store,
		balance:   balance.NewAnalyzer(store, log),
		simple:    pattern.NewDetector(store, log),
		complex:   pattern.NewComplexDetector(store, log),
		shape:     shape.NewAnalyzer(store, log),
		assembler: compose.NewAssembler(store, composer, log),
		log:       log,
	}
}

// Interpret runs every analyzer over a normalized chart and assembles
// the result. Any panic in the pipeline converts to a failed result
// rather than crashing the caller.
func (e *Engine) Interpret(c *models.Chart, level string) (result models.InterpretationResult) {
	result = models.InterpretationResult{
		RunID:       uuid.NewString(),
		Level:       level,
		GeneratedAt: time.Now().UTC(),
	}

	defer func() {
		if r := recover(); r != nil {
			e.log.Errorf("interpret: pipeline panic: %v", r)
			result.Success = false
			result.Sections = nil
			result.DisplayOrder = nil
			result.Error = fmt.Sprintf("interpretation failed: %v", r)
		}
	}()

	e.log.Infof("interpret: run %s starting at level %s", result.RunID, level)

	analysis := compose.Analysis{
		Elements:        e.balance.Elements(c),
		Modalities:      e.balance.Modalities(c),
		Stelliums:       e.simple.Stelliums(c),
		HouseEmphasis:   e.simple.HouseEmphasis(c),
		ComplexPatterns: e.complex.Detect(c),
		Shape:           e.shape.Analyze(c),
	}

	sections, order := e.assembler.Assemble(c, analysis, level)

	result.Success = true
	result.Sections = sections
	result.DisplayOrder = order
	e.log.Infof("interpret: run %s produced %d sections", result.RunID, len(order))
	return result
}

// InterpretData normalizes raw chart data and interprets it. Invalid
// chart data converts to a failed result, never an error return.
func (e *Engine) InterpretData(raw map[string]any, level string) models.InterpretationResult {
	c, err := chart.Normalize(raw)
	if err != nil {
		e.log.Errorf("interpret: invalid chart: %v", err)
		return models.InterpretationResult{
			Success:     false,
			RunID:       uuid.NewString(),
			Level:       level,
			GeneratedAt: time.Now().UTC(),
			Error:       err.Error(),
		}
	}
	return e.Interpret(c, level)
}
