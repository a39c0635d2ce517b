package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBloomMapperLevelFor(t *testing.T) {
	m := NewBloomMapper(DefaultConfig())

	tests := []struct {
		name       string
		percentage float64
		wantLevel  int
	}{
		{"zero", 0, 1},
		{"top of remember", 39, 1},
		{"bottom of understand", 40, 2},
		{"top of understand", 54, 2},
		{"bottom of apply", 55, 3},
		{"top of apply", 69, 3},
		{"bottom of analyze", 70, 4},
		{"top of analyze", 84, 4},
		{"bottom of evaluate", 85, 5},
		{"full mastery", 100, 5},
		{"below range falls back", -5, 1},
		{"above range falls back", 120, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band := m.LevelFor(tt.percentage)
			assert.Equal(t, tt.wantLevel, band.Level)
			assert.NotEmpty(t, band.Label)
			assert.NotEmpty(t, band.Color)
			assert.NotEmpty(t, band.Keywords)
		})
	}
}

func TestBloomMapperLevelNonDecreasing(t *testing.T) {
	m := NewBloomMapper(DefaultConfig())

	prev := 0
	for pct := 0; pct <= 100; pct++ {
		level := m.LevelFor(float64(pct)).Level
		require.GreaterOrEqual(t, level, prev, "level regressed at %d%%", pct)
		prev = level
	}
}

func TestBloomMapperNextTarget(t *testing.T) {
	m := NewBloomMapper(DefaultConfig())

	assert.Equal(t, 2, m.NextTarget(10).Level)
	assert.Equal(t, 5, m.NextTarget(75).Level)
	// Capped at the top band, no error at the ceiling.
	assert.Equal(t, 5, m.NextTarget(95).Level)
}

func TestBloomMapperCustomBands(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bands = []BloomBand{
		{Level: 1, Label: "Low", Color: "#000", Keywords: []string{"a"}, MinPercent: 0, MaxPercent: 49},
		{Level: 2, Label: "High", Color: "#fff", Keywords: []string{"b"}, MinPercent: 50, MaxPercent: 100},
	}
	m := NewBloomMapper(cfg)

	assert.Equal(t, "Low", m.LevelFor(49).Label)
	assert.Equal(t, "High", m.LevelFor(50).Label)
	assert.Equal(t, "High", m.NextTarget(80).Label)
}
