package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/stellium/internal/knowledge"
	"github.com/harrison/stellium/internal/models"
)

func testChart(planets map[string]models.Planet) *models.Chart {
	return &models.Chart{Planets: planets}
}

func TestElementsCountsAndPercentages(t *testing.T) {
	a := NewAnalyzer(knowledge.NewStore("", nil), nil)

	c := testChart(map[string]models.Planet{
		"sun":     {Name: "Sun", Sign: "aries"},       // fire
		"moon":    {Name: "Moon", Sign: "leo"},        // fire
		"mercury": {Name: "Mercury", Sign: "gemini"},  // air
		"venus":   {Name: "Venus", Sign: "capricorn"}, // earth
	})

	b := a.Elements(c)

	assert.Equal(t, 2, b.Counts[models.ElementFire])
	assert.Equal(t, 1, b.Counts[models.ElementAir])
	assert.Equal(t, 1, b.Counts[models.ElementEarth])
	assert.Equal(t, 0, b.Counts[models.ElementWater])

	assert.Equal(t, 50.0, b.Percentages[models.ElementFire])
	assert.Equal(t, 25.0, b.Percentages[models.ElementAir])

	assert.ElementsMatch(t, []string{"Sun", "Moon"}, b.Planets[models.ElementFire])
	assert.Equal(t, models.ElementFire, b.Dominant)
}

func TestElementModalityPartition(t *testing.T) {
	a := NewAnalyzer(knowledge.NewStore("", nil), nil)

	c := testChart(map[string]models.Planet{
		"sun":       {Name: "Sun", Sign: "taurus"},
		"moon":      {Name: "Moon", Sign: "scorpio"},
		"mars":      {Name: "Mars", Sign: "pisces"},
		"jupiter":   {Name: "Jupiter", Sign: "libra"},
		"saturn":    {Name: "Saturn", Sign: "leo"},
		"ascendant": {Name: "Ascendant", Sign: "virgo"}, // excluded
	})

	elements := a.Elements(c)
	modalities := a.Modalities(c)

	sumElements, sumModalities := 0, 0
	for _, n := range elements.Counts {
		sumElements += n
	}
	for _, n := range modalities.Counts {
		sumModalities += n
	}

	// Both axes partition the same counted planet set
	assert.Equal(t, 5, sumElements)
	assert.Equal(t, 5, sumModalities)
}

func TestLackingIncludesSinglePlanetCategories(t *testing.T) {
	a := NewAnalyzer(knowledge.NewStore("", nil), nil)

	c := testChart(map[string]models.Planet{
		"sun":     {Name: "Sun", Sign: "aries"},
		"moon":    {Name: "Moon", Sign: "leo"},
		"mars":    {Name: "Mars", Sign: "sagittarius"},
		"mercury": {Name: "Mercury", Sign: "gemini"}, // exactly one air planet
	})

	b := a.Elements(c)

	// One planet in a category still counts as lacking
	assert.Contains(t, b.Lacking, models.ElementAir)
	assert.Contains(t, b.Lacking, models.ElementEarth)
	assert.Contains(t, b.Lacking, models.ElementWater)
	assert.NotContains(t, b.Lacking, models.ElementFire)
}

func TestEmphasisVariantAboveThreshold(t *testing.T) {
	a := NewAnalyzer(knowledge.NewStore("", nil), nil)

	// 3 of 4 planets in fire = 75% > 40%
	c := testChart(map[string]models.Planet{
		"sun":   {Name: "Sun", Sign: "aries"},
		"moon":  {Name: "Moon", Sign: "leo"},
		"mars":  {Name: "Mars", Sign: "sagittarius"},
		"venus": {Name: "Venus", Sign: "taurus"},
	})

	b := a.Elements(c)
	require.NotEmpty(t, b.Interpretation)
	assert.Contains(t, b.Interpretation, "overwhelmingly")
	// Template placeholder substituted with planet names
	assert.Contains(t, b.Interpretation, "Sun")
	assert.NotContains(t, b.Interpretation, "{planets}")
}

func TestEmptyChartHasNoDominant(t *testing.T) {
	a := NewAnalyzer(knowledge.NewStore("", nil), nil)

	b := a.Elements(testChart(map[string]models.Planet{}))

	assert.Equal(t, "", b.Dominant)
	assert.Equal(t, 0.0, b.Percentages[models.ElementFire])
	assert.Len(t, b.Lacking, 4)
	assert.NotEmpty(t, b.Interpretation)
}

func TestModalitiesDominant(t *testing.T) {
	a := NewAnalyzer(knowledge.NewStore("", nil), nil)

	c := testChart(map[string]models.Planet{
		"sun":   {Name: "Sun", Sign: "aries"},     // cardinal
		"moon":  {Name: "Moon", Sign: "cancer"},   // cardinal
		"venus": {Name: "Venus", Sign: "libra"},   // cardinal
		"mars":  {Name: "Mars", Sign: "taurus"},   // fixed
		"pluto": {Name: "Pluto", Sign: "gemini"},  // mutable
	})

	b := a.Modalities(c)
	assert.Equal(t, models.ModalityCardinal, b.Dominant)
	assert.Equal(t, 60.0, b.Percentages[models.ModalityCardinal])
}

func TestJoinNames(t *testing.T) {
	assert.Equal(t, "", joinNames(nil))
	assert.Equal(t, "Sun", joinNames([]string{"Sun"}))
	assert.Equal(t, "Sun and Moon", joinNames([]string{"Sun", "Moon"}))
	assert.Equal(t, "Sun, Moon and Mars", joinNames([]string{"Sun", "Moon", "Mars"}))
}
