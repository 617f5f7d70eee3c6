package game

// Balance holds every gameplay pacing constant in one place. The defaults
// are the shipped tuning; ops can override individual values from a YAML
// file (see config.LoadBalance) without a rebuild.
type Balance struct {
	ChartSize        int     `yaml:"chart_size"`
	WeeklyLivingCost int64   `yaml:"weekly_living_cost"`
	PayoutPerStream  float64 `yaml:"payout_per_stream"`

	DecayMin         float64 `yaml:"decay_min"`
	DecayMax         float64 `yaml:"decay_max"`
	FluctuationSpan  float64 `yaml:"fluctuation_span"`
	AgePenaltyWeeks  int     `yaml:"age_penalty_weeks"`
	AgePenaltyFactor float64 `yaml:"age_penalty_factor"`
	AgePenaltyFloor  float64 `yaml:"age_penalty_floor"`
	LateWeeks        int     `yaml:"late_weeks"`
	LateFactor       float64 `yaml:"late_factor"`
	LateFloor        float64 `yaml:"late_floor"`
	FallScore        float64 `yaml:"fall_score"`
	MaxChartWeeks    int     `yaml:"max_chart_weeks"`
	NPCRetireWeeks   int     `yaml:"npc_retire_weeks"`

	NPCSpawnChance float64 `yaml:"npc_spawn_chance"`

	UpgradeCostMedium  int64 `yaml:"upgrade_cost_medium"`
	UpgradeCostHigh    int64 `yaml:"upgrade_cost_high"`
	UpgradeCostMedHigh int64 `yaml:"upgrade_cost_medium_to_high"`

	PositionStreamBase int64   `yaml:"position_stream_base"`
	FameStreamFactor   float64 `yaml:"fame_stream_factor"`
	FanbaseStreamDiv   int64   `yaml:"fanbase_stream_divisor"`
}

func DefaultBalance() Balance {
	return Balance{
		ChartSize:        100,
		WeeklyLivingCost: 50,
		PayoutPerStream:  0.004,

		DecayMin:         0.90,
		DecayMax:         1.00,
		FluctuationSpan:  20,
		AgePenaltyWeeks:  15,
		AgePenaltyFactor: 0.85,
		AgePenaltyFloor:  100,
		LateWeeks:        25,
		LateFactor:       0.70,
		LateFloor:        50,
		FallScore:        10,
		MaxChartWeeks:    40,
		NPCRetireWeeks:   52,

		NPCSpawnChance: 0.20,

		UpgradeCostMedium:  500,
		UpgradeCostHigh:    2000,
		UpgradeCostMedHigh: 1500,

		PositionStreamBase: 50,
		FameStreamFactor:   2.0,
		FanbaseStreamDiv:   10,
	}
}

// upgradeCost returns the money needed to move from to target, or -1 when
// the request is not a strict upgrade.
func (b Balance) upgradeCost(from, to ProductionQuality) int64 {
	if qualityRank(to) <= qualityRank(from) {
		return -1
	}
	switch {
	case from == QualityLow && to == QualityMedium:
		return b.UpgradeCostMedium
	case from == QualityLow && to == QualityHigh:
		return b.UpgradeCostHigh
	case from == QualityMedium && to == QualityHigh:
		return b.UpgradeCostMedHigh
	default:
		return -1
	}
}
