package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/avoid201/untoldstory/internal/dex"
	"github.com/avoid201/untoldstory/internal/engine"
	"github.com/avoid201/untoldstory/internal/game"
	"github.com/avoid201/untoldstory/internal/keys"
)

type typeEntry struct {
	Name             string        `yaml:"name"`
	SuperEffective   []string      `yaml:"super_effective"`
	NotVeryEffective []string      `yaml:"not_very_effective"`
	NoEffect         []string      `yaml:"no_effect"`
	StatusImmunities []game.Status `yaml:"status_immunities"`
}

type speciesEntry struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Types     []string `yaml:"types"`
	CatchRate float64  `yaml:"catch_rate"`
}

type moveEntry struct {
	ID           string             `yaml:"id"`
	Name         string             `yaml:"name"`
	Category     string             `yaml:"category"`
	Power        int                `yaml:"power"`
	Accuracy     int                `yaml:"accuracy"`
	Type         string             `yaml:"type"`
	Priority     int                `yaml:"priority"`
	StageEffects []game.StageEffect `yaml:"stage_effects"`
	StatusEffect *game.StatusEffect `yaml:"status_effect"`
	TrickRoom    bool               `yaml:"trick_room"`
}

type itemEntry struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	CatchModifier float64 `yaml:"catch_modifier"`
}

type rawConfig struct {
	Server *struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Balance *engine.Balance `yaml:"balance"`
	Types   []typeEntry     `yaml:"types"`
	Species []speciesEntry  `yaml:"species"`
	Moves   []moveEntry     `yaml:"moves"`
	Items   []itemEntry     `yaml:"items"`
}

// LoadedConfig holds the reference data, balance numbers and server address
// read from the battle configuration file.
type LoadedConfig struct {
	Types         []dex.TypeInfo
	Species       []game.Species
	Moves         []game.Move
	Items         []game.Item
	Balance       engine.Balance
	ServerAddress string
}

// LoadConfig reads the YAML file at path. It requires non-empty `types`,
// `species` and `moves` lists and rejects duplicate ids and references to
// types that are not declared.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration document.
func Parse(b []byte) (*LoadedConfig, error) {
	var rc rawConfig
	if err := yaml.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if len(rc.Types) == 0 {
		return nil, fmt.Errorf("types is empty (provide a 'types' list)")
	}
	if len(rc.Species) == 0 {
		return nil, fmt.Errorf("species is empty (provide a 'species' list)")
	}
	if len(rc.Moves) == 0 {
		return nil, fmt.Errorf("moves is empty (provide a 'moves' list)")
	}

	out := &LoadedConfig{ServerAddress: ":8080", Balance: engine.DefaultBalance()}
	if rc.Server != nil && strings.TrimSpace(rc.Server.Address) != "" {
		out.ServerAddress = strings.TrimSpace(rc.Server.Address)
	}
	if rc.Balance != nil {
		if err := validateBalance(*rc.Balance); err != nil {
			return nil, err
		}
		out.Balance = mergeBalance(*rc.Balance)
	}

	typeSet := make(map[string]struct{}, len(rc.Types))
	for _, t := range rc.Types {
		id := keys.ID(t.Name)
		if id == "" {
			return nil, fmt.Errorf("type entry missing 'name'")
		}
		if _, dup := typeSet[id]; dup {
			return nil, fmt.Errorf("duplicate type '%s'", t.Name)
		}
		typeSet[id] = struct{}{}
	}
	knownType := func(owner, t string) error {
		if _, ok := typeSet[keys.ID(t)]; !ok {
			return fmt.Errorf("%s references unknown type '%s'", owner, t)
		}
		return nil
	}

	for _, t := range rc.Types {
		for _, list := range [][]string{t.SuperEffective, t.NotVeryEffective, t.NoEffect} {
			for _, d := range list {
				if err := knownType("type '"+t.Name+"'", d); err != nil {
					return nil, err
				}
			}
		}
		for _, s := range t.StatusImmunities {
			if !s.Valid() {
				return nil, fmt.Errorf("type '%s' lists unknown status immunity '%s'", t.Name, s)
			}
		}
		out.Types = append(out.Types, dex.TypeInfo{
			Name:             t.Name,
			SuperEffective:   t.SuperEffective,
			NotVeryEffective: t.NotVeryEffective,
			NoEffect:         t.NoEffect,
			StatusImmunities: t.StatusImmunities,
		})
	}

	for _, s := range rc.Species {
		if keys.ID(s.ID) == "" {
			return nil, fmt.Errorf("species entry missing 'id'")
		}
		if len(s.Types) == 0 {
			return nil, fmt.Errorf("species '%s' has no types", s.ID)
		}
		for _, t := range s.Types {
			if err := knownType("species '"+s.ID+"'", t); err != nil {
				return nil, err
			}
		}
		if s.CatchRate < 0 {
			return nil, fmt.Errorf("species '%s' has a negative catch_rate", s.ID)
		}
		out.Species = append(out.Species, game.Species{ID: s.ID, Name: s.Name, Types: s.Types, CatchRate: s.CatchRate})
	}

	for _, m := range rc.Moves {
		if keys.ID(m.ID) == "" {
			return nil, fmt.Errorf("move entry missing 'id'")
		}
		cat := game.MoveCategory(strings.ToLower(strings.TrimSpace(m.Category)))
		switch cat {
		case game.CategoryPhysical, game.CategorySpecial, game.CategoryStatus:
		case "":
			cat = game.CategoryStatus
			if m.Power > 0 {
				cat = game.CategoryPhysical
			}
		default:
			return nil, fmt.Errorf("move '%s' has unknown category '%s'", m.ID, m.Category)
		}
		if m.Type != "" {
			if err := knownType("move '"+m.ID+"'", m.Type); err != nil {
				return nil, err
			}
		}
		if m.Power < 0 || m.Accuracy < 0 || m.Accuracy > 100 {
			return nil, fmt.Errorf("move '%s' needs power >= 0 and accuracy in 0..100", m.ID)
		}
		for _, se := range m.StageEffects {
			if se.Stat == game.StatHP || !se.Stat.Valid() {
				return nil, fmt.Errorf("move '%s' changes stage of unknown stat '%s'", m.ID, se.Stat)
			}
		}
		if m.StatusEffect != nil && !m.StatusEffect.Status.Valid() {
			return nil, fmt.Errorf("move '%s' inflicts unknown status '%s'", m.ID, m.StatusEffect.Status)
		}
		out.Moves = append(out.Moves, game.Move{
			ID:           m.ID,
			Name:         m.Name,
			Category:     cat,
			Power:        m.Power,
			Accuracy:     m.Accuracy,
			Type:         m.Type,
			Priority:     m.Priority,
			StageEffects: m.StageEffects,
			StatusEffect: m.StatusEffect,
			TrickRoom:    m.TrickRoom,
		})
	}

	for _, it := range rc.Items {
		if keys.ID(it.ID) == "" {
			return nil, fmt.Errorf("item entry missing 'id'")
		}
		if !(it.CatchModifier > 0) {
			return nil, fmt.Errorf("item '%s' needs a positive catch_modifier", it.ID)
		}
		out.Items = append(out.Items, game.Item{ID: it.ID, Name: it.Name, CatchModifier: it.CatchModifier})
	}

	// Cross-entry validation: ids are unique per table after canonicalizing.
	if err := uniqueIDs("species", len(out.Species), func(i int) string { return out.Species[i].ID }); err != nil {
		return nil, err
	}
	if err := uniqueIDs("move", len(out.Moves), func(i int) string { return out.Moves[i].ID }); err != nil {
		return nil, err
	}
	if err := uniqueIDs("item", len(out.Items), func(i int) string { return out.Items[i].ID }); err != nil {
		return nil, err
	}
	return out, nil
}

func uniqueIDs(kind string, n int, id func(int) string) error {
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		k := keys.ID(id(i))
		if _, exists := seen[k]; exists {
			return fmt.Errorf("duplicate %s id '%s'", kind, id(i))
		}
		seen[k] = struct{}{}
	}
	return nil
}

func validateBalance(b engine.Balance) error {
	if b.ParalysisSkipPercent < 0 || b.ParalysisSkipPercent > 100 {
		return fmt.Errorf("balance.paralysis_skip_percent must be within 0..100")
	}
	if b.FreezeThawPercent < 0 || b.FreezeThawPercent > 100 {
		return fmt.Errorf("balance.freeze_thaw_percent must be within 0..100")
	}
	if b.SleepMaxRounds != 0 && b.SleepMinRounds > b.SleepMaxRounds {
		return fmt.Errorf("balance.sleep_min_rounds exceeds sleep_max_rounds")
	}
	if b.SameTypeBonus < 0 {
		return fmt.Errorf("balance.same_type_bonus must not be negative")
	}
	return nil
}

// mergeBalance keeps the defaults for every field the file leaves out.
func mergeBalance(b engine.Balance) engine.Balance {
	d := engine.DefaultBalance()
	if b.BurnDamageDivisor > 0 {
		d.BurnDamageDivisor = b.BurnDamageDivisor
	}
	if b.PoisonDamageDivisor > 0 {
		d.PoisonDamageDivisor = b.PoisonDamageDivisor
	}
	if b.ParalysisSkipPercent > 0 {
		d.ParalysisSkipPercent = b.ParalysisSkipPercent
	}
	if b.FreezeThawPercent > 0 {
		d.FreezeThawPercent = b.FreezeThawPercent
	}
	if b.SleepMinRounds > 0 {
		d.SleepMinRounds = b.SleepMinRounds
	}
	if b.SleepMaxRounds > 0 {
		d.SleepMaxRounds = b.SleepMaxRounds
	}
	if b.TrickRoomRounds > 0 {
		d.TrickRoomRounds = b.TrickRoomRounds
	}
	if b.SameTypeBonus > 0 {
		d.SameTypeBonus = b.SameTypeBonus
	}
	return d
}
