package engine

import (
	"github.com/avoid201/untoldstory/internal/game"
	"github.com/avoid201/untoldstory/internal/keys"
)

// testRef is a small in-memory reference set.
type testRef struct {
	moves   map[string]game.Move
	species map[string]game.Species
	items   map[string]game.Item
	chart   map[string]map[string]float64
	immune  map[string]game.Status
}

func newTestRef() *testRef {
	return &testRef{
		moves: map[string]game.Move{
			"tackle":     {ID: "tackle", Name: "Tackle", Category: game.CategoryPhysical, Power: 40, Accuracy: 100, Type: "normal"},
			"ember":      {ID: "ember", Name: "Ember", Category: game.CategorySpecial, Power: 40, Accuracy: 100, Type: "fire"},
			"quick":      {ID: "quick", Name: "Quick Strike", Category: game.CategoryPhysical, Power: 40, Accuracy: 100, Type: "normal", Priority: 1},
			"growl":      {ID: "growl", Name: "Growl", Category: game.CategoryStatus, Accuracy: 100, StageEffects: []game.StageEffect{{Stat: game.StatAttack, Delta: -1}}},
			"swords":     {ID: "swords", Name: "Sharpen", Category: game.CategoryStatus, StageEffects: []game.StageEffect{{Stat: game.StatAttack, Delta: 2, OnSelf: true}}},
			"hypnosis":   {ID: "hypnosis", Name: "Hypnosis", Category: game.CategoryStatus, Accuracy: 100, StatusEffect: &game.StatusEffect{Status: game.StatusSleep, Duration: 2}},
			"toxic":      {ID: "toxic", Name: "Toxic", Category: game.CategoryStatus, Accuracy: 100, StatusEffect: &game.StatusEffect{Status: game.StatusPoison}},
			"trick_room": {ID: "trick_room", Name: "Trick Room", Category: game.CategoryStatus, Priority: -7, TrickRoom: true},
		},
		species: map[string]game.Species{
			"emberling": {ID: "emberling", Name: "Emberling", Types: []string{"fire"}, CatchRate: 1},
			"puddlefin": {ID: "puddlefin", Name: "Puddlefin", Types: []string{"water"}, CatchRate: 1},
			"rockmole":  {ID: "rockmole", Name: "Rockmole", Types: []string{"rock"}, CatchRate: 0.5},
		},
		items: map[string]game.Item{
			"ball": {ID: "ball", Name: "Ball", CatchModifier: 1},
		},
		chart: map[string]map[string]float64{
			"fire":   {"water": 0.5, "rock": 0.5},
			"water":  {"fire": 2},
			"normal": {"ghost": 0},
		},
		immune: map[string]game.Status{
			"fire": game.StatusBurn,
		},
	}
}

func (r *testRef) Move(id string) (game.Move, bool) { m, ok := r.moves[keys.ID(id)]; return m, ok }
func (r *testRef) Species(id string) (game.Species, bool) {
	s, ok := r.species[keys.ID(id)]
	return s, ok
}
func (r *testRef) Item(id string) (game.Item, bool) { i, ok := r.items[keys.ID(id)]; return i, ok }

func (r *testRef) Effectiveness(moveType string, defenderTypes []string) float64 {
	m := 1.0
	for _, t := range defenderTypes {
		if v, ok := r.chart[moveType][t]; ok {
			m *= v
		}
	}
	return m
}

func (r *testRef) StatusImmune(types []string, s game.Status) bool {
	for _, t := range types {
		if r.immune[t] == s {
			return true
		}
	}
	return false
}

// fixedSource returns the same roll every time. f=0 makes every
// probability check succeed; n=99 makes every percentage chance below 100
// fail.
type fixedSource struct {
	n int
	f float64
}

func (s fixedSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.n % n
}

func (s fixedSource) Float64() float64 { return s.f }

func withFixed(src fixedSource) Option {
	return WithSourceFunc(func(int64, int) Source { return src })
}

// mon builds a level 50 snapshot with flat stats and the given speed.
func mon(species string, speed int, moves ...string) game.Combatant {
	return game.Combatant{
		Species:   species,
		Level:     50,
		Stats:     game.StatBlock{HP: 200, Attack: 100, Defense: 100, SpAttack: 100, SpDefense: 100, Speed: speed},
		CurrentHP: 200,
		Moves:     moves,
	}
}

func singles(kind game.BattleType, player, enemy []game.Combatant) Request {
	return Request{ID: "b1", Type: kind, Seed: 42, Player: player, Enemy: enemy}
}

var (
	player0 = game.CombatantRef{Side: game.SidePlayer, Slot: 0}
	player1 = game.CombatantRef{Side: game.SidePlayer, Slot: 1}
	enemy0  = game.CombatantRef{Side: game.SideEnemy, Slot: 0}
	enemy1  = game.CombatantRef{Side: game.SideEnemy, Slot: 1}
)

func kinds(events []game.Event) []game.EventKind {
	out := make([]game.EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func findEvent(events []game.Event, kind game.EventKind) (game.Event, bool) {
	for _, e := range events {
		if e.Kind == kind {
			return e, true
		}
	}
	return game.Event{}, false
}
