// Package knowledge loads and indexes the reference data every analyzer
// and the text composer read from: planet/sign/house/aspect meanings,
// dignity texts, chart shape thresholds, and interpretation templates.
//
// A complete default data set is embedded in the binary; a configured data
// directory can override individual domain files. The store is built once
// at construction and is read-only afterwards, so it is safe to share
// across concurrent interpretation calls.
package knowledge

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/harrison/stellium/internal/logger"
)

//go:embed data/*.json
var defaultData embed.FS

// Domain names, one per JSON resource.
const (
	DomainPlanets                = "planets"
	DomainSigns                  = "signs"
	DomainHouses                 = "houses"
	DomainAspects                = "aspects"
	DomainDignities              = "dignities"
	DomainDescriptions           = "descriptions"
	DomainCombinations           = "combinations"
	DomainChartShapes            = "chart_shapes"
	DomainInterpretationPatterns = "interpretation_patterns"
	DomainHouseEmphasis          = "house_emphasis"
	DomainElementsModalities     = "elements_modalities"
)

// allDomains lists every domain the store loads at construction.
var allDomains = []string{
	DomainPlanets,
	DomainSigns,
	DomainHouses,
	DomainAspects,
	DomainDignities,
	DomainDescriptions,
	DomainCombinations,
	DomainChartShapes,
	DomainInterpretationPatterns,
	DomainHouseEmphasis,
	DomainElementsModalities,
}

// Record is one entry of a domain mapping. Values are the decoded JSON
// types; the typed accessors tolerate missing or mistyped fields by
// returning zero values, which feeds the composer's fallback tiers.
type Record map[string]any

// Str returns the string value for key, or "" when absent or not a string.
func (r Record) Str(key string) string {
	if r == nil {
		return ""
	}
	s, _ := r[key].(string)
	return s
}

// Strings returns the string-slice value for key, skipping non-string
// elements. Returns nil when absent.
func (r Record) Strings(key string) []string {
	if r == nil {
		return nil
	}
	raw, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Float returns the numeric value for key and whether it was present.
func (r Record) Float(key string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	f, ok := r[key].(float64)
	return f, ok
}

// Sub returns the nested record for key, or nil when absent.
func (r Record) Sub(key string) Record {
	if r == nil {
		return nil
	}
	m, ok := r[key].(map[string]any)
	if !ok {
		return nil
	}
	return Record(m)
}

// Store holds all domain mappings, indexed by lower-cased keys, plus a
// reverse index from numeric aspect angles to their records. Immutable
// after construction.
type Store struct {
	domains map[string]map[string]Record

	// aspectByAngle maps the decimal string of an aspect's exact angle
	// ("120") to the same record as its canonical name ("trine")
	aspectByAngle map[string]Record

	log logger.Logger
}

// NewStore builds a Store from the embedded default data, with per-domain
// overrides from dataDir when it is non-empty. Load failures degrade to
// empty domain mappings with a logged warning and never abort
// construction. A nil log defaults to the no-op logger.
func NewStore(dataDir string, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop{}
	}

	s := &Store{
		domains:       make(map[string]map[string]Record, len(allDomains)),
		aspectByAngle: make(map[string]Record),
		log:           log,
	}

	for _, domain := range allDomains {
		s.domains[domain] = s.load(domain, dataDir)
	}
	s.indexAspectAngles()

	return s
}

// load reads one domain's JSON resource. The on-disk override wins when
// present; otherwise the embedded default is used. Any read or parse error
// yields an empty mapping.
func (s *Store) load(domain, dataDir string) map[string]Record {
	filename := domain + ".json"

	var data []byte
	var err error
	if dataDir != "" {
		overridePath := filepath.Join(dataDir, filename)
		if _, statErr := os.Stat(overridePath); statErr == nil {
			data, err = os.ReadFile(overridePath)
			if err != nil {
				s.log.Warnf("knowledge: failed to read %s: %v", overridePath, err)
				return map[string]Record{}
			}
		}
	}
	if data == nil {
		data, err = defaultData.ReadFile("data/" + filename)
		if err != nil {
			s.log.Warnf("knowledge: no data for domain %s: %v", domain, err)
			return map[string]Record{}
		}
	}

	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		s.log.Warnf("knowledge: failed to parse %s: %v", filename, err)
		return map[string]Record{}
	}

	records := make(map[string]Record, len(raw))
	for key, value := range raw {
		records[strings.ToLower(key)] = Record(value)
	}
	return records
}

// indexAspectAngles builds the reverse numeric-angle index by scanning
// each aspect record's "angle" field.
func (s *Store) indexAspectAngles() {
	for _, record := range s.domains[DomainAspects] {
		angle, ok := record.Float("angle")
		if !ok {
			continue
		}
		key := strconv.FormatFloat(angle, 'f', -1, 64)
		s.aspectByAngle[key] = record
	}
}

// Domain returns the full mapping for a domain. The returned map must be
// treated as read-only.
func (s *Store) Domain(domain string) map[string]Record {
	return s.domains[domain]
}

// get fetches a record by lower-cased key from a domain.
func (s *Store) get(domain, key string) Record {
	return s.domains[domain][strings.ToLower(key)]
}

// Planet returns the knowledge record for a planet name, or nil.
func (s *Store) Planet(name string) Record {
	return s.get(DomainPlanets, name)
}

// Sign returns the knowledge record for a zodiac sign, or nil.
func (s *Store) Sign(name string) Record {
	return s.get(DomainSigns, name)
}

// House returns the knowledge record for a house number (1-12), or nil.
func (s *Store) House(number int) Record {
	return s.get(DomainHouses, strconv.Itoa(number))
}

// Aspect returns the knowledge record for an aspect, accepting either a
// canonical name ("trine") or a numeric angle string ("120"). Returns nil
// when the aspect is unknown to the store.
func (s *Store) Aspect(key string) Record {
	key = strings.ToLower(strings.TrimSpace(key))
	if record := s.get(DomainAspects, key); record != nil {
		return record
	}
	if f, err := strconv.ParseFloat(key, 64); err == nil {
		return s.aspectByAngle[strconv.FormatFloat(f, 'f', -1, 64)]
	}
	return nil
}

// Dignity returns the descriptive record for a dignity state, or nil.
func (s *Store) Dignity(state string) Record {
	return s.get(DomainDignities, state)
}

// Description returns a specific interpretation record (e.g. key
// "sun_gemini"), or nil.
func (s *Store) Description(key string) Record {
	return s.get(DomainDescriptions, key)
}

// Combination returns the record for a sorted planet-pair key (e.g.
// "moon_sun"), or nil.
func (s *Store) Combination(pairKey string) Record {
	return s.get(DomainCombinations, pairKey)
}

// ChartShape returns the threshold/description record for a shape name,
// or nil.
func (s *Store) ChartShape(name string) Record {
	return s.get(DomainChartShapes, name)
}

// Pattern returns the interpretation template record for a pattern key
// (balance categories like "fire_dominant", or complex pattern types like
// "t-square"), or nil.
func (s *Store) Pattern(key string) Record {
	return s.get(DomainInterpretationPatterns, key)
}

// HouseEmphasis returns the emphasis record for an ordinal house key
// ("first_house" ... "twelfth_house"), or nil.
func (s *Store) HouseEmphasis(key string) Record {
	return s.get(DomainHouseEmphasis, key)
}

// Element returns the descriptive record for an element or modality
// category, or nil.
func (s *Store) Element(category string) Record {
	return s.get(DomainElementsModalities, category)
}

// PairKey builds the canonical sorted key for a planet pair, used by
// aspect-specific and combination lookups.
func PairKey(a, b string) string {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%s_%s", a, b)
}
