package models

import "time"

// Section names used by the section assembler. SectionOrder fixes the
// display priority; sections with no content and no data are filtered out
// of the final display order.
const (
	SectionOverview          = "overview"
	SectionChartShape        = "chart_shape"
	SectionCoreSigns         = "core_signs"
	SectionSunSignDetails    = "sun_sign_details"
	SectionStelliums         = "stelliums"
	SectionSignDistribution  = "sign_distribution"
	SectionChartHighlights   = "chart_highlights"
	SectionElementBalance    = "element_balance"
	SectionModalityBalance   = "modality_balance"
	SectionHouseEmphasis     = "house_emphasis"
	SectionAngles            = "angles"
	SectionRetrogradePlanets = "retrograde_planets"
)

// SectionOrder is the fixed display priority of the named sections.
var SectionOrder = []string{
	SectionOverview,
	SectionChartShape,
	SectionCoreSigns,
	SectionSunSignDetails,
	SectionStelliums,
	SectionSignDistribution,
	SectionChartHighlights,
	SectionElementBalance,
	SectionModalityBalance,
	SectionHouseEmphasis,
	SectionAngles,
	SectionRetrogradePlanets,
}

// Section is one named block of composed interpretation output.
type Section struct {
	// Title is the human-readable section heading
	Title string `json:"title"`

	// Content is markdown-flavoured interpretation text
	Content string `json:"content"`

	// Data is the structured payload backing the text, if any
	Data any `json:"data,omitempty"`
}

// Empty reports whether the section carries neither content nor data.
// Empty sections are dropped from the display order.
func (s Section) Empty() bool {
	return s.Content == "" && s.Data == nil
}

// InterpretationResult is the top-level output of one interpretation call.
// On hard failure Success is false, Error carries the message, and no
// partial sections are returned.
type InterpretationResult struct {
	// Success indicates whether interpretation completed
	Success bool `json:"success"`

	// RunID uniquely identifies this interpretation call in logs
	RunID string `json:"run_id"`

	// Level is the requested interpretation level
	Level string `json:"level"`

	// GeneratedAt is when the interpretation was produced
	GeneratedAt time.Time `json:"generated_at"`

	// Sections maps section name to its composed block
	Sections map[string]Section `json:"structured_sections"`

	// DisplayOrder lists the non-empty section names in display priority
	DisplayOrder []string `json:"display_order"`

	// Error is the failure message when Success is false
	Error string `json:"error,omitempty"`
}
