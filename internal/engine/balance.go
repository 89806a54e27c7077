package engine

// Balance holds tunable numbers that are balance data rather than rules.
// Zero fields fall back to DefaultBalance.
type Balance struct {
	BurnDamageDivisor    int     `json:"burn_damage_divisor" yaml:"burn_damage_divisor"`
	PoisonDamageDivisor  int     `json:"poison_damage_divisor" yaml:"poison_damage_divisor"`
	ParalysisSkipPercent int     `json:"paralysis_skip_percent" yaml:"paralysis_skip_percent"`
	FreezeThawPercent    int     `json:"freeze_thaw_percent" yaml:"freeze_thaw_percent"`
	SleepMinRounds       int     `json:"sleep_min_rounds" yaml:"sleep_min_rounds"`
	SleepMaxRounds       int     `json:"sleep_max_rounds" yaml:"sleep_max_rounds"`
	TrickRoomRounds      int     `json:"trick_room_rounds" yaml:"trick_room_rounds"`
	SameTypeBonus        float64 `json:"same_type_bonus" yaml:"same_type_bonus"`
}

// DefaultBalance returns the stock balance values.
func DefaultBalance() Balance {
	return Balance{
		BurnDamageDivisor:    16,
		PoisonDamageDivisor:  8,
		ParalysisSkipPercent: 25,
		FreezeThawPercent:    20,
		SleepMinRounds:       1,
		SleepMaxRounds:       3,
		TrickRoomRounds:      5,
		SameTypeBonus:        1.5,
	}
}

// withDefaults fills zero fields from DefaultBalance.
func (b Balance) withDefaults() Balance {
	d := DefaultBalance()
	if b.BurnDamageDivisor <= 0 {
		b.BurnDamageDivisor = d.BurnDamageDivisor
	}
	if b.PoisonDamageDivisor <= 0 {
		b.PoisonDamageDivisor = d.PoisonDamageDivisor
	}
	if b.ParalysisSkipPercent <= 0 {
		b.ParalysisSkipPercent = d.ParalysisSkipPercent
	}
	if b.FreezeThawPercent <= 0 {
		b.FreezeThawPercent = d.FreezeThawPercent
	}
	if b.SleepMinRounds <= 0 {
		b.SleepMinRounds = d.SleepMinRounds
	}
	if b.SleepMaxRounds < b.SleepMinRounds {
		b.SleepMaxRounds = b.SleepMinRounds
		if d.SleepMaxRounds > b.SleepMaxRounds {
			b.SleepMaxRounds = d.SleepMaxRounds
		}
	}
	if b.TrickRoomRounds <= 0 {
		b.TrickRoomRounds = d.TrickRoomRounds
	}
	if b.SameTypeBonus <= 0 {
		b.SameTypeBonus = d.SameTypeBonus
	}
	return b
}
