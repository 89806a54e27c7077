package engine

import "github.com/avoid201/untoldstory/internal/game"

// BlockReason explains why a status was not applied.
type BlockReason string

const (
	BlockNone             BlockReason = ""
	BlockAlreadyAfflicted BlockReason = "already_afflicted"
	BlockImmune           BlockReason = "immune"
	BlockFainted          BlockReason = "fainted"
	BlockInvalid          BlockReason = "invalid_status"
)

// ApplyStatus inflicts s on c for duration rounds (0 = until cured). Major
// statuses are mutually exclusive, so a combatant already holding one blocks
// the new one. Type immunities come from ref.
func ApplyStatus(c *game.Combatant, s game.Status, duration int, ref Reference) (applied bool, reason BlockReason) {
	switch {
	case !s.Valid():
		return false, BlockInvalid
	case c.Fainted || c.Captured:
		return false, BlockFainted
	case c.Status != nil:
		return false, BlockAlreadyAfflicted
	case ref != nil && ref.StatusImmune(c.Types, s):
		return false, BlockImmune
	}
	if duration < 0 {
		duration = 0
	}
	c.Status = &game.StatusCondition{Status: s, RemainingRounds: duration}
	return true, BlockNone
}

// CureStatus removes any status from c and reports what was removed.
func CureStatus(c *game.Combatant) game.Status {
	if c.Status == nil {
		return game.StatusNone
	}
	s := c.Status.Status
	c.Status = nil
	return s
}

// TickResult is the outcome of one status tick.
type TickResult struct {
	Events []game.Event
	// Skip marks the combatant's action for this round as lost.
	Skip    bool
	Fainted bool
}

// Tick runs c's status once for the round that is opening: residual damage
// for burn and poison, a chance to lose the turn for paralysis, sleep until
// its duration runs out, and freeze until it thaws or its duration runs out.
// A timed status with N rounds affects N rounds and is cured on the last.
// Events carry no Seq or Round; the caller stamps them.
func Tick(c *game.Combatant, src Source, bal Balance) TickResult {
	var res TickResult
	if c.Status == nil || !c.IsActive() {
		return res
	}
	bal = bal.withDefaults()
	ref := c.Ref()
	st := c.Status
	switch st.Status {
	case game.StatusBurn, game.StatusPoison:
		div := bal.BurnDamageDivisor
		if st.Status == game.StatusPoison {
			div = bal.PoisonDamageDivisor
		}
		amount := c.MaxHP() / div
		if amount < 1 {
			amount = 1
		}
		dealt, fainted := applyDamage(c, amount)
		res.Events = append(res.Events, game.Event{Kind: game.EventStatusDamage, Target: &ref, Status: st.Status, Amount: dealt, HPAfter: c.CurrentHP})
		if fainted {
			res.Fainted = true
			res.Events = append(res.Events, game.Event{Kind: game.EventFaint, Target: &ref})
			return res
		}
	case game.StatusParalysis:
		if chance(src, bal.ParalysisSkipPercent) {
			res.Skip = true
			res.Events = append(res.Events, game.Event{Kind: game.EventSkipped, Target: &ref, Status: st.Status, Message: "fully paralyzed"})
		}
	case game.StatusSleep:
		res.Skip = true
		res.Events = append(res.Events, game.Event{Kind: game.EventSkipped, Target: &ref, Status: st.Status, Message: "fast asleep"})
		res.Events = append(res.Events, countDown(c, "woke up")...)
		return res
	case game.StatusFreeze:
		if chance(src, bal.FreezeThawPercent) {
			CureStatus(c)
			res.Events = append(res.Events, game.Event{Kind: game.EventStatusCured, Target: &ref, Status: game.StatusFreeze, Message: "thawed out"})
			return res
		}
		res.Skip = true
		res.Events = append(res.Events, game.Event{Kind: game.EventSkipped, Target: &ref, Status: st.Status, Message: "frozen solid"})
		res.Events = append(res.Events, countDown(c, "thawed out")...)
		return res
	}
	res.Events = append(res.Events, countDown(c, "wore off")...)
	return res
}

// countDown spends one round of a timed status and cures it when none are
// left. Untimed statuses (0 rounds) are untouched.
func countDown(c *game.Combatant, msg string) []game.Event {
	st := c.Status
	if st == nil || st.RemainingRounds <= 0 {
		return nil
	}
	st.RemainingRounds--
	if st.RemainingRounds > 0 {
		return nil
	}
	ref := c.Ref()
	cured := CureStatus(c)
	return []game.Event{{Kind: game.EventStatusCured, Target: &ref, Status: cured, Message: msg}}
}
