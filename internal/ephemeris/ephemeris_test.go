package ephemeris

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/stellium/internal/models"
)

func TestStaticCalculatorCompute(t *testing.T) {
	var calc StaticCalculator

	c, err := calc.Compute(context.Background(), Birth{Year: 1990, Month: 1, Day: 15})
	require.NoError(t, err)

	// The demo chart carries the full planet set and all four angles
	assert.Len(t, c.Planets, 10)
	assert.Len(t, c.Angles, 4)
	assert.NotEmpty(t, c.Aspects)

	_, ok := c.Planet("sun")
	assert.True(t, ok)
}

func TestStaticCalculatorCancelled(t *testing.T) {
	var calc StaticCalculator

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := calc.Compute(ctx, Birth{})
	require.Error(t, err)

	var ephErr *models.EphemerisError
	assert.ErrorAs(t, err, &ephErr)
}

func TestDemoChartNormalizes(t *testing.T) {
	c := DemoChart()

	// Every planet sign is canonical
	for name, planet := range c.Planets {
		assert.True(t, models.IsZodiacSign(planet.Sign), "planet %s has sign %q", name, planet.Sign)
	}

	// Mercury is the demo retrograde
	mercury, ok := c.Planet("mercury")
	require.True(t, ok)
	assert.True(t, mercury.Retrograde)
}
