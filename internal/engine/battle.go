package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/avoid201/untoldstory/internal/game"
)

// Phase machine events.
const (
	eventStart   = "start"
	eventResolve = "resolve"
	eventNext    = "next"
	eventEnd     = "end"
)

// RoundResult is what one call to ResolveRound produced. Events include the
// opening of the next round when the battle goes on.
type RoundResult struct {
	Round   int          `json:"round"`
	Events  []game.Event `json:"events"`
	Outcome game.Outcome `json:"outcome"`
}

// Battle drives one battle through its phases. It is not safe for concurrent
// use; callers serialize access per battle.
type Battle struct {
	state   *game.BattleState
	ref     Reference
	bal     Balance
	machine *fsm.FSM
	broken  error
	source  func(seed int64, round int) Source
}

// Option customizes a Battle.
type Option func(*Battle)

// WithBalance overrides the tunable status and modifier numbers.
func WithBalance(b Balance) Option {
	return func(bt *Battle) { bt.bal = b.withDefaults() }
}

// WithSourceFunc replaces the per-round random source. The function receives
// the battle seed and a stream number that is unique per round step.
func WithSourceFunc(fn func(seed int64, stream int) Source) Option {
	return func(bt *Battle) {
		if fn != nil {
			bt.source = fn
		}
	}
}

// NewBattle validates req and returns a battle in the setup phase. No battle
// is returned when a snapshot is invalid or references unknown data.
func NewBattle(req Request, ref Reference, opts ...Option) (*Battle, error) {
	if ref == nil {
		return nil, dataError(CodeMissingReference, "reference data is required")
	}
	s, err := buildState(req, ref)
	if err != nil {
		return nil, err
	}
	return newBattle(s, ref, opts), nil
}

// Restore rebuilds a battle around a persisted state. The state is checked
// against the structural invariants before it is accepted.
func Restore(s *game.BattleState, ref Reference, opts ...Option) (*Battle, error) {
	if ref == nil {
		return nil, dataError(CodeMissingReference, "reference data is required")
	}
	if s == nil {
		return nil, validationError(CodeInvalidSnapshot, "battle state is nil")
	}
	switch s.Phase {
	case game.PhaseSetup, game.PhaseRoundInProgress, game.PhaseRoundResolved, game.PhaseEnded:
	default:
		return nil, validationError(CodeInvalidSnapshot, "unknown phase %q", s.Phase)
	}
	for side := range s.Sides {
		for i := range s.Sides[side].Roster {
			if s.Sides[side].Roster[i].Stages == nil {
				ResetStages(&s.Sides[side].Roster[i])
			}
		}
	}
	if err := CheckInvariants(s); err != nil {
		return nil, err
	}
	return newBattle(s, ref, opts), nil
}

func newBattle(s *game.BattleState, ref Reference, opts []Option) *Battle {
	b := &Battle{
		state:  s,
		ref:    ref,
		bal:    DefaultBalance(),
		source: roundSource,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.machine = fsm.NewFSM(
		string(s.Phase),
		fsm.Events{
			{Name: eventStart, Src: []string{string(game.PhaseSetup)}, Dst: string(game.PhaseRoundInProgress)},
			{Name: eventResolve, Src: []string{string(game.PhaseRoundInProgress)}, Dst: string(game.PhaseRoundResolved)},
			{Name: eventNext, Src: []string{string(game.PhaseRoundResolved)}, Dst: string(game.PhaseRoundInProgress)},
			{Name: eventEnd, Src: []string{string(game.PhaseRoundInProgress), string(game.PhaseRoundResolved)}, Dst: string(game.PhaseEnded)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				b.state.Phase = game.Phase(e.Dst)
			},
		},
	)
	return b
}

func (b *Battle) transition(ctx context.Context, event string) error {
	if err := b.machine.Event(ctx, event); err != nil {
		return validationError(CodeWrongPhase, "cannot %s in phase %s", event, b.state.Phase)
	}
	return nil
}

// Start opens the first round. Status ticks run immediately, so a battle can
// end before any action is submitted.
func (b *Battle) Start(ctx context.Context) ([]game.Event, error) {
	if b.broken != nil {
		return nil, b.broken
	}
	if err := b.transition(ctx, eventStart); err != nil {
		return nil, err
	}
	rc := b.openingContext()
	rc.openRound()
	if err := b.afterOpen(ctx, rc); err != nil {
		return rc.events, err
	}
	return rc.events, nil
}

func (b *Battle) openingContext() *roundContext {
	return newRoundContext(b.state, b.ref, b.source(b.state.Seed, 2*b.state.Round+1), b.bal)
}

// afterOpen ends the battle when residual damage decided it while a round
// was opening.
func (b *Battle) afterOpen(ctx context.Context, rc *roundContext) error {
	if err := b.check(); err != nil {
		return err
	}
	if !b.state.Outcome.Terminal() {
		return nil
	}
	if err := b.transition(ctx, eventEnd); err != nil {
		return err
	}
	rc.endBattle()
	return nil
}

func (b *Battle) check() error {
	if err := CheckInvariants(b.state); err != nil {
		b.broken = err
		return err
	}
	return nil
}

// Submit queues the action of one active combatant for the current round.
func (b *Battle) Submit(actor game.CombatantRef, a game.Action) error {
	if b.broken != nil {
		return b.broken
	}
	s := b.state
	if s.Phase == game.PhaseEnded || s.Outcome.Terminal() {
		return validationError(CodeBattleEnded, "battle has ended with %s", s.Outcome)
	}
	if s.Phase != game.PhaseRoundInProgress {
		return validationError(CodeWrongPhase, "actions are not accepted in phase %s", s.Phase)
	}
	c := s.Combatant(actor)
	if c == nil || !c.IsActive() {
		return validationError(CodeNotActive, "%s slot %d is not on the field", actor.Side, actor.Slot)
	}
	if s.IsSkipped(actor) {
		return validationError(CodeNotActive, "%s cannot act this round", displayName(c))
	}
	if _, ok := s.PendingFor(actor); ok {
		return validationError(CodeAlreadySubmitted, "%s already has an action this round", displayName(c))
	}
	a = b.canonicalAction(a)
	if err := b.validateAction(c, a); err != nil {
		return err
	}
	s.Pending = append(s.Pending, game.Submission{Actor: actor, Action: a})
	return nil
}

// canonicalAction rewrites move and item ids to their reference spelling.
// Unknown ids are left for validation to report.
func (b *Battle) canonicalAction(a game.Action) game.Action {
	switch a.Kind {
	case game.ActionUseMove:
		if m, ok := b.ref.Move(a.MoveID); ok {
			a.MoveID = m.ID
		}
	case game.ActionCapture:
		if it, ok := b.ref.Item(a.ItemID); ok {
			a.ItemID = it.ID
		}
	}
	return a
}

func (b *Battle) validateAction(c *game.Combatant, a game.Action) error {
	s := b.state
	switch a.Kind {
	case game.ActionUseMove:
		if !c.KnowsMove(a.MoveID) {
			return validationError(CodeUnknownMove, "%s does not know %q", displayName(c), a.MoveID)
		}
		if _, ok := b.ref.Move(a.MoveID); !ok {
			return dataError(CodeMissingReference, "move %q is not in the reference data", a.MoveID)
		}
		if t := s.Combatant(a.Target); t == nil || !t.IsActive() {
			return validationError(CodeInvalidTarget, "target %s slot %d is not on the field", a.Target.Side, a.Target.Slot)
		}
	case game.ActionFlee:
		if s.Type != game.BattleWild {
			return validationError(CodeNotAllowed, "cannot flee from a trainer battle")
		}
	case game.ActionCapture:
		if s.Type != game.BattleWild || c.Side != game.SidePlayer {
			return validationError(CodeNotAllowed, "capture is only possible against wild monsters")
		}
		if t := s.Combatant(a.Target); t == nil || t.Side != game.SideEnemy || !t.IsActive() {
			return validationError(CodeInvalidTarget, "capture target is not an active enemy")
		}
	case game.ActionSwitch:
		in := s.Combatant(game.CombatantRef{Side: c.Side, Slot: a.Slot})
		if in == nil || !in.Available() || in.Position >= 0 {
			return validationError(CodeInvalidSlot, "slot %d cannot be sent in", a.Slot)
		}
		for _, p := range s.Pending {
			if p.Actor.Side == c.Side && p.Action.Kind == game.ActionSwitch && p.Action.Slot == a.Slot {
				return validationError(CodeInvalidSlot, "slot %d is already being sent in", a.Slot)
			}
		}
	case game.ActionPass:
	default:
		return validationError(CodeUnknownAction, "unknown action %q", a.Kind)
	}
	return nil
}

// Required lists the combatants that must submit before the round can be
// resolved: every active combatant not skipped by its status.
func (b *Battle) Required() []game.CombatantRef {
	if b.state.Phase != game.PhaseRoundInProgress {
		return nil
	}
	var out []game.CombatantRef
	for _, c := range b.state.AllActive() {
		if !b.state.IsSkipped(c.Ref()) {
			out = append(out, c.Ref())
		}
	}
	return out
}

// Missing lists required combatants that have not submitted yet.
func (b *Battle) Missing() []game.CombatantRef {
	var out []game.CombatantRef
	for _, r := range b.Required() {
		if _, ok := b.state.PendingFor(r); !ok {
			out = append(out, r)
		}
	}
	return out
}

// Ready reports whether every required combatant has submitted.
func (b *Battle) Ready() bool {
	return b.state.Phase == game.PhaseRoundInProgress && len(b.Missing()) == 0
}

// ForceDefaults submits pass for everyone still missing. It is the round
// timeout policy and returns the combatants it filled in.
func (b *Battle) ForceDefaults() ([]game.CombatantRef, error) {
	if b.broken != nil {
		return nil, b.broken
	}
	missing := b.Missing()
	for _, r := range missing {
		if err := b.Submit(r, game.Pass()); err != nil {
			return nil, err
		}
	}
	return missing, nil
}

// ResolveRound executes the submitted actions in turn order, runs the
// end-of-round bookkeeping and either ends the battle or opens the next
// round.
func (b *Battle) ResolveRound(ctx context.Context) (RoundResult, error) {
	if b.broken != nil {
		return RoundResult{}, b.broken
	}
	if b.state.Phase == game.PhaseEnded {
		return RoundResult{}, validationError(CodeBattleEnded, "battle has ended with %s", b.state.Outcome)
	}
	if b.state.Phase != game.PhaseRoundInProgress {
		return RoundResult{}, validationError(CodeWrongPhase, "cannot resolve in phase %s", b.state.Phase)
	}
	if missing := b.Missing(); len(missing) > 0 {
		return RoundResult{}, validationError(CodeRoundIncomplete, "%d combatant(s) have not submitted", len(missing))
	}
	if err := b.transition(ctx, eventResolve); err != nil {
		return RoundResult{}, err
	}

	round := b.state.Round
	rc := newRoundContext(b.state, b.ref, b.source(b.state.Seed, 2*round), b.bal)
	rc.executePlans(rc.plannedOrder())
	rc.finishRound()
	res := RoundResult{Round: round}
	if err := b.check(); err != nil {
		res.Events = rc.events
		return res, err
	}

	if b.state.Outcome.Terminal() {
		if err := b.transition(ctx, eventEnd); err != nil {
			return res, err
		}
		rc.endBattle()
		res.Events = rc.events
		res.Outcome = b.state.Outcome
		return res, nil
	}

	if err := b.transition(ctx, eventNext); err != nil {
		return res, err
	}
	next := b.openingContext()
	next.openRound()
	err := b.afterOpen(ctx, next)
	res.Events = append(rc.events, next.events...)
	res.Outcome = b.state.Outcome
	return res, err
}

// State returns the live battle state. Callers must not mutate it.
func (b *Battle) State() *game.BattleState { return b.state }

// Phase returns the current phase.
func (b *Battle) Phase() game.Phase { return game.Phase(b.machine.Current()) }

// Outcome returns the current outcome.
func (b *Battle) Outcome() game.Outcome { return b.state.Outcome }

// Err returns the invariant violation that broke the battle, if any.
func (b *Battle) Err() error { return b.broken }

// Snapshot returns a deep copy of the state suitable for persistence.
func (b *Battle) Snapshot() (*game.BattleState, error) {
	raw, err := json.Marshal(b.state)
	if err != nil {
		return nil, fmt.Errorf("snapshot battle %s: %w", b.state.ID, err)
	}
	var out game.BattleState
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("snapshot battle %s: %w", b.state.ID, err)
	}
	return &out, nil
}
