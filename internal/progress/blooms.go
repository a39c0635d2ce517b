package progress

// BloomBand maps a mastery-percentage range onto one of the five ordered
// Bloom's taxonomy levels used by the dashboard scaffolding.
type BloomBand struct {
	Level       int      `json:"level"` // 1..5
	Label       string   `json:"label"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"` // scaffolding verbs shown to teachers
	MinPercent  int      `json:"minPercent"`
	MaxPercent  int      `json:"maxPercent"` // inclusive
}

// Bands are fixed, non-overlapping and exhaustive over [0,100].
var defaultBloomBands = []BloomBand{
	{
		Level:       1,
		Label:       "Remember",
		Color:       "#ef5350",
		Description: "Recalls facts and basic programming concepts",
		Keywords:    []string{"define", "list", "recall", "name"},
		MinPercent:  0,
		MaxPercent:  39,
	},
	{
		Level:       2,
		Label:       "Understand",
		Color:       "#ffa726",
		Description: "Explains ideas and predicts what code will do",
		Keywords:    []string{"describe", "explain", "summarize", "predict"},
		MinPercent:  40,
		MaxPercent:  54,
	},
	{
		Level:       3,
		Label:       "Apply",
		Color:       "#ffee58",
		Description: "Uses concepts to solve new problems",
		Keywords:    []string{"use", "implement", "solve", "modify"},
		MinPercent:  55,
		MaxPercent:  69,
	},
	{
		Level:       4,
		Label:       "Analyze",
		Color:       "#66bb6a",
		Description: "Breaks programs apart and finds why they fail",
		Keywords:    []string{"compare", "debug", "decompose", "trace"},
		MinPercent:  70,
		MaxPercent:  84,
	},
	{
		Level:       5,
		Label:       "Evaluate",
		Color:       "#42a5f5",
		Description: "Judges solutions and designs better ones",
		Keywords:    []string{"justify", "critique", "design", "improve"},
		MinPercent:  85,
		MaxPercent:  100,
	},
}

// BloomMapper resolves mastery percentages against a configured band table.
// It is pure and safe for concurrent use.
type BloomMapper struct {
	bands []BloomBand
}

func NewBloomMapper(cfg Config) *BloomMapper {
	bands := cfg.Bands
	if len(bands) == 0 {
		bands = defaultBloomBands
	}
	return &BloomMapper{bands: bands}
}

// LevelFor returns the band covering the given mastery percentage.
// Values outside [0,100] fall back to the lowest band; that is a documented
// fallback, not an error.
func (m *BloomMapper) LevelFor(percentage float64) BloomBand {
	for _, b := range m.bands {
		if percentage >= float64(b.MinPercent) && percentage <= float64(b.MaxPercent) {
			return b
		}
	}
	return m.bands[0]
}

// NextTarget returns the band one level above the current one, capped at
// the top band.
func (m *BloomMapper) NextTarget(percentage float64) BloomBand {
	current := m.LevelFor(percentage)
	for _, b := range m.bands {
		if b.Level == current.Level+1 {
			return b
		}
	}
	return m.bands[len(m.bands)-1]
}
