package chart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/stellium/internal/models"
)

func mappedPlanets() map[string]any {
	return map[string]any{
		"Sun":  map[string]any{"sign": "Gemini", "degree": 75.5, "house": 10, "retrograde": false},
		"Moon": map[string]any{"sign": "cancer", "degree": 102.0, "house": 11},
		"Mars": map[string]any{"sign": "Aries", "degree": 15.25, "house": 8, "retrograde": true},
	}
}

func TestNormalizeMappedPlanets(t *testing.T) {
	c, err := Normalize(map[string]any{"planets": mappedPlanets()})
	require.NoError(t, err)

	sun, ok := c.Planet("sun")
	require.True(t, ok)
	assert.Equal(t, "Sun", sun.Name)
	assert.Equal(t, "gemini", sun.Sign)
	assert.Equal(t, 75.5, sun.Degree)
	assert.Equal(t, 10, sun.House)

	mars, _ := c.Planet("MARS")
	assert.True(t, mars.Retrograde)
}

func TestNormalizeListPlanets(t *testing.T) {
	raw := map[string]any{
		"planets": []any{
			map[string]any{"name": "Sun", "sign": "leo", "degree": 135.0, "house": 1},
			map[string]any{"planet": "Moon", "sign": "virgo", "degree": 160.0, "house": 2},
		},
	}

	c, err := Normalize(raw)
	require.NoError(t, err)
	assert.Len(t, c.Planets, 2)

	moon, ok := c.Planet("moon")
	require.True(t, ok)
	assert.Equal(t, "virgo", moon.Sign)
}

func TestNormalizeMissingPlanetsKey(t *testing.T) {
	_, err := Normalize(map[string]any{"houses": map[string]any{}})
	require.Error(t, err)

	var invalid *models.InvalidChartError
	assert.True(t, errors.As(err, &invalid))
}

func TestNormalizeEmptyPlanets(t *testing.T) {
	_, err := Normalize(map[string]any{"planets": map[string]any{}})
	require.Error(t, err)

	var invalid *models.InvalidChartError
	assert.True(t, errors.As(err, &invalid))
}

func TestNormalizePlanetWithoutSign(t *testing.T) {
	raw := map[string]any{
		"planets": map[string]any{
			"Sun":  map[string]any{"degree": 10.0},
			"Moon": map[string]any{"sign": "cancer"},
		},
	}

	_, err := Normalize(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no sign")
}

func TestNormalizeUnknownSignRejected(t *testing.T) {
	raw := map[string]any{
		"planets": map[string]any{
			"Sun":  map[string]any{"sign": "ophiuchus"},
			"Moon": map[string]any{"sign": "cancer"},
		},
	}

	_, err := Normalize(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sign")
}

func TestNormalizeHousesMappedAndList(t *testing.T) {
	mapped := map[string]any{
		"planets": mappedPlanets(),
		"houses": map[string]any{
			"1": map[string]any{"sign": "aries", "degree": 12.0},
			"2": map[string]any{"sign": "taurus", "degree": 40.0},
		},
	}
	c, err := Normalize(mapped)
	require.NoError(t, err)
	assert.Equal(t, "aries", c.Houses[1].Sign)

	list := map[string]any{
		"planets": mappedPlanets(),
		"houses": []any{
			map[string]any{"house": 1, "sign": "aries", "degree": 12.0},
			map[string]any{"number": 2.0, "sign": "taurus", "degree": 40.0},
		},
	}
	c, err = Normalize(list)
	require.NoError(t, err)
	assert.Equal(t, "taurus", c.Houses[2].Sign)
}

func TestNormalizeHouseWithoutSign(t *testing.T) {
	raw := map[string]any{
		"planets": mappedPlanets(),
		"houses": map[string]any{
			"3": map[string]any{"degree": 70.0},
		},
	}
	_, err := Normalize(raw)
	require.Error(t, err)
}

func TestNormalizeAspectTypes(t *testing.T) {
	raw := map[string]any{
		"planets": mappedPlanets(),
		"aspects": []any{
			map[string]any{"planet1": "Sun", "planet2": "Moon", "type": "opposition", "orb": 2.1},
			map[string]any{"planet1": "Sun", "planet2": "Mars", "type": 90.0, "orb": 1.0},
			map[string]any{"planet1": "Moon", "planet2": "Mars", "type": "90", "orb": 0.5},
		},
	}

	c, err := Normalize(raw)
	require.NoError(t, err)
	require.Len(t, c.Aspects, 3)

	assert.Equal(t, "opposition", c.Aspects[0].Type.Name)
	assert.Equal(t, 180.0, c.Aspects[0].Type.Angle)
	assert.Equal(t, "square", c.Aspects[1].Type.Name)
	assert.Equal(t, "square", c.Aspects[2].Type.Name)
	assert.Equal(t, "sun", c.Aspects[1].Planet1)
}

func TestNormalizeAspectsMustBeSequence(t *testing.T) {
	raw := map[string]any{
		"planets": mappedPlanets(),
		"aspects": map[string]any{"oops": "not a list"},
	}
	_, err := Normalize(raw)
	require.Error(t, err)
}

func TestNormalizeAngles(t *testing.T) {
	raw := map[string]any{
		"planets": mappedPlanets(),
		"angles": map[string]any{
			"Ascendant": map[string]any{"sign": "Leo", "degree": 123.4},
			"midheaven": map[string]any{"sign": "taurus", "degree": 42.0},
		},
	}

	c, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "leo", c.Angles["ascendant"].Sign)
	assert.Equal(t, 42.0, c.Angles["midheaven"].Degree)
}

func TestParseJSONAndYAML(t *testing.T) {
	jsonData := []byte(`{"planets": {"sun": {"sign": "aries", "degree": 5}, "moon": {"sign": "cancer", "degree": 100}}}`)
	c, err := Parse(jsonData)
	require.NoError(t, err)
	assert.Len(t, c.Planets, 2)

	yamlData := []byte("planets:\n  sun:\n    sign: aries\n    degree: 5\n  moon:\n    sign: cancer\n    degree: 100\n")
	c, err = Parse(yamlData)
	require.NoError(t, err)

	sun, _ := c.Planet("sun")
	assert.Equal(t, 5.0, sun.Degree)
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse([]byte("{{{{"))
	require.Error(t, err)

	var invalid *models.InvalidChartError
	assert.True(t, errors.As(err, &invalid))
}
