package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger captures warn messages for assertions.
type recordingLogger struct {
	warnings []string
}

func (r *recordingLogger) Tracef(string, ...any) {}
func (r *recordingLogger) Debugf(string, ...any) {}
func (r *recordingLogger) Infof(string, ...any)  {}
func (r *recordingLogger) Errorf(string, ...any) {}
func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func TestNewStoreLoadsEmbeddedDefaults(t *testing.T) {
	s := NewStore("", nil)

	sun := s.Planet("Sun")
	require.NotNil(t, sun)
	assert.Equal(t, "Sun", sun.Str("name"))
	assert.NotEmpty(t, sun.Strings("keywords"))

	// All 12 signs present
	for _, sign := range []string{"aries", "taurus", "gemini", "cancer", "leo", "virgo",
		"libra", "scorpio", "sagittarius", "capricorn", "aquarius", "pisces"} {
		assert.NotNil(t, s.Sign(sign), "missing sign %s", sign)
	}

	// All 12 houses present
	for i := 1; i <= 12; i++ {
		assert.NotNil(t, s.House(i), "missing house %d", i)
	}
}

func TestAspectLookupByNameAndAngle(t *testing.T) {
	s := NewStore("", nil)

	byName := s.Aspect("trine")
	require.NotNil(t, byName)

	// The numeric angle string resolves to the same record
	byAngle := s.Aspect("120")
	require.NotNil(t, byAngle)
	assert.Equal(t, byName.Str("name"), byAngle.Str("name"))

	// Case-insensitive name lookup
	assert.NotNil(t, s.Aspect("Opposition"))

	// Unknown aspects return nil
	assert.Nil(t, s.Aspect("999"))
	assert.Nil(t, s.Aspect("parallel"))
}

func TestAspectOrbAndPairs(t *testing.T) {
	s := NewStore("", nil)

	square := s.Aspect("square")
	require.NotNil(t, square)

	orb, ok := square.Float("orb")
	assert.True(t, ok)
	assert.Equal(t, 8.0, orb)

	pairs := square.Sub("pairs")
	require.NotNil(t, pairs)
	assert.NotEmpty(t, pairs.Str("moon_sun"))
}

func TestDataDirOverride(t *testing.T) {
	dir := t.TempDir()
	override := `{"sun": {"name": "Sol", "keywords": ["override"]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "planets.json"), []byte(override), 0644))

	s := NewStore(dir, nil)

	// planets.json is overridden
	assert.Equal(t, "Sol", s.Planet("sun").Str("name"))
	assert.Nil(t, s.Planet("moon"))

	// other domains still come from embedded data
	assert.NotNil(t, s.Sign("aries"))
}

func TestCorruptFileDegradesToEmptyWithWarning(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "signs.json"), []byte("{not json"), 0644))

	log := &recordingLogger{}
	s := NewStore(dir, log)

	assert.Nil(t, s.Sign("aries"))
	assert.Empty(t, s.Domain(DomainSigns))
	assert.NotEmpty(t, log.warnings, "corrupt domain file should log a warning")
}

func TestPatternTemplates(t *testing.T) {
	s := NewStore("", nil)

	for _, key := range []string{"fire_dominant", "water_lacking", "stellium",
		"t-square", "yod", "grand trine", "grand cross"} {
		assert.NotNil(t, s.Pattern(key), "missing pattern %s", key)
	}

	// Dominant templates carry an emphasis variant
	assert.NotEmpty(t, s.Pattern("fire_dominant").Str("emphasis"))
}

func TestHouseEmphasisOrdinalKeys(t *testing.T) {
	s := NewStore("", nil)

	assert.NotNil(t, s.HouseEmphasis("first_house"))
	assert.NotNil(t, s.HouseEmphasis("twelfth_house"))
	assert.Nil(t, s.HouseEmphasis("thirteenth_house"))
}

func TestChartShapeThresholds(t *testing.T) {
	s := NewStore("", nil)

	bundle := s.ChartShape("bundle")
	require.NotNil(t, bundle)
	maxSpan, ok := bundle.Float("max_span")
	assert.True(t, ok)
	assert.Equal(t, 120.0, maxSpan)
}

func TestPairKey(t *testing.T) {
	assert.Equal(t, "moon_sun", PairKey("Sun", "Moon"))
	assert.Equal(t, "moon_sun", PairKey("moon", "sun"))
	assert.Equal(t, "mercury_venus", PairKey("venus", "mercury"))
}

func TestRecordAccessorsTolerateNil(t *testing.T) {
	var r Record
	assert.Equal(t, "", r.Str("x"))
	assert.Nil(t, r.Strings("x"))
	_, ok := r.Float("x")
	assert.False(t, ok)
	assert.Nil(t, r.Sub("x"))
}
