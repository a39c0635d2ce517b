package progress

// SkillThresholds are the lower bounds (in total points) of the three
// upper skill tiers. Beginner is everything below Intermediate.
type SkillThresholds struct {
	Intermediate int
	Advanced     int
	Expert       int
}

// Config collects every tunable of the progress core in one place so the
// classifier, mapper and recommender can be constructed with test doubles.
type Config struct {
	Skill SkillThresholds
	Bands []BloomBand

	// RecommendLimit is the default result cap for recommendations.
	RecommendLimit int

	// Topic average score bounds for the strengths/struggles recompute.
	StruggleBelow   float64
	StrengthAtLeast float64
	// MinTopicAttempts is how many scored attempts a topic needs before
	// it can be labelled at all.
	MinTopicAttempts int
}

func DefaultConfig() Config {
	return Config{
		Skill: SkillThresholds{
			Intermediate: 500,
			Advanced:     1500,
			Expert:       3000,
		},
		Bands:            defaultBloomBands,
		RecommendLimit:   5,
		StruggleBelow:    60,
		StrengthAtLeast:  85,
		MinTopicAttempts: 2,
	}
}
