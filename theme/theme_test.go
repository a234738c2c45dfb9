package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/googlesky/liveplot/frame"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"dark", "light", "midnight"} {
		th, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, th.Name)
		assert.NotEmpty(t, th.Series)
		assert.Greater(t, th.LegendAlpha, 0.0)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("neon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dark", "error lists available themes")
}

func TestSeriesColorWraps(t *testing.T) {
	th, err := Lookup("dark")
	require.NoError(t, err)

	n := len(th.Series)
	assert.Equal(t, th.SeriesColor(0), th.SeriesColor(n))
	assert.Equal(t, th.SeriesColor(2), th.SeriesColor(2+n))
}

func TestRegister(t *testing.T) {
	Register(&Theme{
		Name:   "custom-test",
		Series: []frame.Color{{R: 1}},
	})

	th, err := Lookup("custom-test")
	require.NoError(t, err)
	assert.Equal(t, frame.Color{R: 1}, th.SeriesColor(0))
	assert.Contains(t, Names(), "custom-test")
}
