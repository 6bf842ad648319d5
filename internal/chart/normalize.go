// Package chart normalizes raw chart input into the canonical
// models.Chart representation.
//
// Raw charts arrive from external calculators and transports in loosely
// typed form: planets and houses may be keyed mappings or lists of
// records, aspect types may be canonical names or numeric angles. All of
// that duck typing is resolved here, once, at the boundary; downstream
// analyzers never branch on representation shape.
package chart

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harrison/stellium/internal/models"
)

// Parse decodes raw chart bytes (JSON or YAML) and normalizes them.
func Parse(data []byte) (*models.Chart, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		if yamlErr := yaml.Unmarshal(data, &raw); yamlErr != nil {
			return nil, models.NewInvalidChartError("unparseable chart data: %v", err)
		}
	}
	return Normalize(raw)
}

// ParseFile reads and normalizes a chart from a JSON or YAML file.
func ParseFile(path string) (*models.Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart file: %w", err)
	}
	return Parse(data)
}

// Normalize converts a decoded raw chart into a models.Chart.
// It returns *models.InvalidChartError when the planets key is absent,
// any planet entry lacks a valid sign, Sun or Moon are missing, or houses
// and aspects are present but malformed.
func Normalize(raw map[string]any) (*models.Chart, error) {
	if raw == nil {
		return nil, models.NewInvalidChartError("chart data is empty")
	}

	rawPlanets, ok := raw["planets"]
	if !ok {
		return nil, models.NewInvalidChartError("missing planets")
	}

	planets, err := normalizePlanets(rawPlanets)
	if err != nil {
		return nil, err
	}

	// Sun and Moon are required for downstream validity
	for _, required := range []string{"sun", "moon"} {
		if _, ok := planets[required]; !ok {
			return nil, models.NewInvalidChartError("required planet %q is missing", required)
		}
	}

	chart := &models.Chart{
		Planets: planets,
		Houses:  map[int]models.House{},
		Angles:  map[string]models.Angle{},
	}

	if rawHouses, ok := raw["houses"]; ok && rawHouses != nil {
		chart.Houses, err = normalizeHouses(rawHouses)
		if err != nil {
			return nil, err
		}
	}

	if rawAngles, ok := raw["angles"]; ok && rawAngles != nil {
		chart.Angles, err = normalizeAngles(rawAngles)
		if err != nil {
			return nil, err
		}
	}

	if rawAspects, ok := raw["aspects"]; ok && rawAspects != nil {
		chart.Aspects, err = normalizeAspects(rawAspects)
		if err != nil {
			return nil, err
		}
	}

	return chart, nil
}

// normalizePlanets accepts either a name-keyed mapping of planet records
// or a list of records carrying a "name" (or "planet") field.
func normalizePlanets(raw any) (map[string]models.Planet, error) {
	planets := map[string]models.Planet{}

	switch v := raw.(type) {
	case map[string]any:
		// Deterministic iteration keeps error messages stable
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			planet, err := normalizePlanet(name, v[name])
			if err != nil {
				return nil, err
			}
			planets[strings.ToLower(name)] = planet
		}
	case []any:
		for i, entry := range v {
			record, ok := entry.(map[string]any)
			if !ok {
				return nil, models.NewInvalidChartError("planet entry %d is not a record", i)
			}
			name := stringField(record, "name")
			if name == "" {
				name = stringField(record, "planet")
			}
			if name == "" {
				return nil, models.NewInvalidChartError("planet entry %d has no name", i)
			}
			planet, err := normalizePlanet(name, record)
			if err != nil {
				return nil, err
			}
			planets[strings.ToLower(name)] = planet
		}
	default:
		return nil, models.NewInvalidChartError("planets must be a mapping or a list")
	}

	return planets, nil
}

func normalizePlanet(name string, raw any) (models.Planet, error) {
	record, ok := raw.(map[string]any)
	if !ok {
		return models.Planet{}, models.NewInvalidChartError("planet %q is not a record", name)
	}

	sign := strings.ToLower(stringField(record, "sign"))
	if sign == "" {
		return models.Planet{}, models.NewInvalidChartError("planet %q has no sign", name)
	}
	if !models.IsZodiacSign(sign) {
		return models.Planet{}, models.NewInvalidChartError("planet %q has unknown sign %q", name, sign)
	}

	degree, _ := numberField(record, "degree")
	house, _ := numberField(record, "house")
	retrograde, _ := record["retrograde"].(bool)

	return models.Planet{
		Name:       name,
		Sign:       sign,
		Degree:     degree,
		House:      int(house),
		Retrograde: retrograde,
	}, nil
}

// normalizeHouses accepts either a number-string-keyed mapping or a list
// of records carrying a "house" (or "number") field.
func normalizeHouses(raw any) (map[int]models.House, error) {
	houses := map[int]models.House{}

	add := func(numberKey string, entry any) error {
		number, err := strconv.Atoi(strings.TrimSpace(numberKey))
		if err != nil || number < 1 || number > 12 {
			return models.NewInvalidChartError("invalid house number %q", numberKey)
		}
		record, ok := entry.(map[string]any)
		if !ok {
			return models.NewInvalidChartError("house %d is not a record", number)
		}
		sign := strings.ToLower(stringField(record, "sign"))
		if sign == "" {
			return models.NewInvalidChartError("house %d has no sign", number)
		}
		degree, _ := numberField(record, "degree")
		houses[number] = models.House{Number: number, Sign: sign, Degree: degree}
		return nil
	}

	switch v := raw.(type) {
	case map[string]any:
		for key, entry := range v {
			if err := add(key, entry); err != nil {
				return nil, err
			}
		}
	case []any:
		for i, entry := range v {
			record, ok := entry.(map[string]any)
			if !ok {
				return nil, models.NewInvalidChartError("house entry %d is not a record", i)
			}
			number, ok := numberField(record, "house")
			if !ok {
				number, ok = numberField(record, "number")
			}
			if !ok {
				return nil, models.NewInvalidChartError("house entry %d has no number", i)
			}
			if err := add(strconv.Itoa(int(number)), record); err != nil {
				return nil, err
			}
		}
	default:
		return nil, models.NewInvalidChartError("houses must be a mapping or a list")
	}

	return houses, nil
}

func normalizeAngles(raw any) (map[string]models.Angle, error) {
	v, ok := raw.(map[string]any)
	if !ok {
		return nil, models.NewInvalidChartError("angles must be a mapping")
	}

	angles := map[string]models.Angle{}
	for name, entry := range v {
		record, ok := entry.(map[string]any)
		if !ok {
			return nil, models.NewInvalidChartError("angle %q is not a record", name)
		}
		degree, _ := numberField(record, "degree")
		angles[strings.ToLower(name)] = models.Angle{
			Sign:   strings.ToLower(stringField(record, "sign")),
			Degree: degree,
		}
	}
	return angles, nil
}

func normalizeAspects(raw any) ([]models.Aspect, error) {
	v, ok := raw.([]any)
	if !ok {
		return nil, models.NewInvalidChartError("aspects must be a sequence")
	}

	aspects := make([]models.Aspect, 0, len(v))
	for i, entry := range v {
		record, ok := entry.(map[string]any)
		if !ok {
			return nil, models.NewInvalidChartError("aspect entry %d is not a record", i)
		}

		p1 := strings.ToLower(stringField(record, "planet1"))
		p2 := strings.ToLower(stringField(record, "planet2"))
		if p1 == "" || p2 == "" {
			return nil, models.NewInvalidChartError("aspect entry %d is missing planets", i)
		}

		rawType, ok := record["type"]
		if !ok {
			rawType = record["aspect"]
		}
		orb, _ := numberField(record, "orb")

		aspects = append(aspects, models.Aspect{
			Planet1: p1,
			Planet2: p2,
			Type:    models.ResolveAspectType(rawType),
			Orb:     orb,
		})
	}
	return aspects, nil
}

// stringField reads a string field from a decoded record.
func stringField(record map[string]any, key string) string {
	s, _ := record[key].(string)
	return strings.TrimSpace(s)
}

// numberField reads a numeric field, tolerating the int values YAML
// produces and numeric strings.
func numberField(record map[string]any, key string) (float64, bool) {
	switch v := record[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
