// Package dex holds the immutable reference data a battle reads: species,
// moves, capture items, the type chart and type-based status immunities.
package dex

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/avoid201/untoldstory/internal/game"
	"github.com/avoid201/untoldstory/internal/keys"
)

// TypeInfo describes how one attacking type fares against defending types
// and which statuses a holder of the type cannot receive.
type TypeInfo struct {
	Name             string
	SuperEffective   []string
	NotVeryEffective []string
	NoEffect         []string
	StatusImmunities []game.Status
}

// Dex is safe for concurrent reads once built.
type Dex struct {
	species map[string]game.Species
	moves   map[string]game.Move
	items   map[string]game.Item
	// chart maps "attacking>defending" for single defending types.
	chart  map[string]float64
	immune map[string]map[game.Status]bool

	// matchups caches combined multipliers per attacking type and defender
	// type set.
	matchups sync.Map
}

var titleCaser = cases.Title(language.English)

// DisplayName turns an id such as "fire_fang" into "Fire Fang".
func DisplayName(id string) string {
	words := []rune(keys.ID(id))
	for i, r := range words {
		if r == '_' {
			words[i] = ' '
		}
	}
	return titleCaser.String(string(words))
}

// New builds a Dex. Ids are canonicalized with keys.ID; entries without a
// name get one derived from their id.
func New(types []TypeInfo, species []game.Species, moves []game.Move, items []game.Item) (*Dex, error) {
	d := &Dex{
		species: make(map[string]game.Species, len(species)),
		moves:   make(map[string]game.Move, len(moves)),
		items:   make(map[string]game.Item, len(items)),
		chart:   make(map[string]float64),
		immune:  make(map[string]map[game.Status]bool),
	}
	for _, t := range types {
		at := keys.ID(t.Name)
		if at == "" {
			return nil, fmt.Errorf("dex: type without a name")
		}
		for mult, defs := range map[float64][]string{2: t.SuperEffective, 0.5: t.NotVeryEffective, 0: t.NoEffect} {
			for _, def := range defs {
				d.chart[keys.MatchupKey(at, []string{def})] = mult
			}
		}
		if len(t.StatusImmunities) > 0 {
			set := make(map[game.Status]bool, len(t.StatusImmunities))
			for _, s := range t.StatusImmunities {
				set[s] = true
			}
			d.immune[at] = set
		}
	}
	for _, s := range species {
		id := keys.ID(s.ID)
		if _, dup := d.species[id]; dup {
			return nil, fmt.Errorf("dex: duplicate species %q", s.ID)
		}
		s.ID = id
		if s.Name == "" {
			s.Name = DisplayName(id)
		}
		s.Types = canonicalTypes(s.Types)
		if !(s.CatchRate > 0) {
			s.CatchRate = 1
		}
		d.species[id] = s
	}
	for _, m := range moves {
		id := keys.ID(m.ID)
		if _, dup := d.moves[id]; dup {
			return nil, fmt.Errorf("dex: duplicate move %q", m.ID)
		}
		m.ID = id
		if m.Name == "" {
			m.Name = DisplayName(id)
		}
		m.Type = keys.ID(m.Type)
		d.moves[id] = m
	}
	for _, it := range items {
		id := keys.ID(it.ID)
		if _, dup := d.items[id]; dup {
			return nil, fmt.Errorf("dex: duplicate item %q", it.ID)
		}
		it.ID = id
		if it.Name == "" {
			it.Name = DisplayName(id)
		}
		d.items[id] = it
	}
	return d, nil
}

func canonicalTypes(types []string) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		if id := keys.ID(t); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func (d *Dex) Move(id string) (game.Move, bool) {
	m, ok := d.moves[keys.ID(id)]
	return m, ok
}

func (d *Dex) Species(id string) (game.Species, bool) {
	s, ok := d.species[keys.ID(id)]
	return s, ok
}

func (d *Dex) Item(id string) (game.Item, bool) {
	it, ok := d.items[keys.ID(id)]
	return it, ok
}

// Effectiveness multiplies the chart entries of moveType against every
// defender type. Pairs missing from the chart are neutral, as is an untyped
// move.
func (d *Dex) Effectiveness(moveType string, defenderTypes []string) float64 {
	if keys.ID(moveType) == "" || len(defenderTypes) == 0 {
		return 1
	}
	key := keys.MatchupKey(moveType, defenderTypes)
	if v, ok := d.matchups.Load(key); ok {
		return v.(float64)
	}
	mult := 1.0
	for _, t := range defenderTypes {
		if v, ok := d.chart[keys.MatchupKey(moveType, []string{t})]; ok {
			mult *= v
		}
	}
	d.matchups.Store(key, mult)
	return mult
}

// StatusImmune reports whether any of types is immune to s.
func (d *Dex) StatusImmune(types []string, s game.Status) bool {
	for _, t := range types {
		if d.immune[keys.ID(t)][s] {
			return true
		}
	}
	return false
}

// SpeciesList returns every species ordered by id.
func (d *Dex) SpeciesList() []game.Species {
	out := make([]game.Species, 0, len(d.species))
	for _, s := range d.species {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MoveList returns every move ordered by id.
func (d *Dex) MoveList() []game.Move {
	out := make([]game.Move, 0, len(d.moves))
	for _, m := range d.moves {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ItemList returns every capture item ordered by id.
func (d *Dex) ItemList() []game.Item {
	out := make([]game.Item, 0, len(d.items))
	for _, it := range d.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
