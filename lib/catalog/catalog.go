// Package catalog is the read-only species/move/learnset data store: an
// external collaborator of the battle core (spec §1), consulted only at
// team-construction time and by the dispatcher's Metronome/Mirror Move
// lookups. This package ships a small embedded Generation-1 dataset
// covering every move the dispatch table (lib/battle/dispatch.go) names,
// sufficient to drive the harness and golden scenarios without a network
// fetch.
package catalog

import (
	"fmt"

	"github.com/opd-ai/pokebattle-sim/lib/battle"
	"github.com/opd-ai/pokebattle-sim/lib/statcalc"
)

// Species is one catalog entry: base stats, types, and a default learnset.
type Species struct {
	Name      string
	Types     []battle.Type
	BaseStats statcalc.BaseStats
	Learnset  []string // move names, in level-up order
}

// Store is the in-memory catalog. Zero value is empty; use New for the
// bundled dataset.
type Store struct {
	species map[string]Species
	moves   map[string]battle.Move
}

// New returns a Store preloaded with the bundled Gen-1 dataset.
func New() *Store {
	s := &Store{species: map[string]Species{}, moves: map[string]battle.Move{}}
	for _, sp := range bundledSpecies {
		s.species[sp.Name] = sp
	}
	for _, m := range bundledMoves {
		s.moves[m.Name] = m
	}
	return s
}

// Species looks up a species by name.
func (s *Store) Species(name string) (Species, error) {
	sp, ok := s.species[name]
	if !ok {
		return Species{}, fmt.Errorf("catalog: unknown species %q", name)
	}
	return sp, nil
}

// Move looks up a move by name.
func (s *Store) Move(name string) (battle.Move, error) {
	m, ok := s.moves[name]
	if !ok {
		return battle.Move{}, fmt.Errorf("catalog: unknown move %q", name)
	}
	return m, nil
}

// AllMoves implements battle.MoveSource for Metronome's random pick.
func (s *Store) AllMoves() []battle.Move {
	out := make([]battle.Move, 0, len(s.moves))
	for _, m := range s.moves {
		out = append(out, m)
	}
	return out
}

// ByName implements battle.MoveSource for Mirror Move / Metronome redirect.
func (s *Store) ByName(name string) (battle.Move, bool) {
	m, ok := s.moves[name]
	return m, ok
}

// BuildBattler constructs a battle.Battler for species at level using
// perfect IVs and max EVs (the ruleset's competitive default), with moves
// drawn from moveNames.
func (s *Store) BuildBattler(speciesName string, level int, moveNames []string, side battle.Side) (*battle.Battler, error) {
	sp, err := s.Species(speciesName)
	if err != nil {
		return nil, err
	}
	ivs := statcalc.IVs{HP: 15, Attack: 15, Defense: 15, Special: 15, Speed: 15}
	stats := statcalc.Calculate(sp.BaseStats, ivs, statcalc.MaxEVs(), level)

	moves := make([]battle.Move, 0, len(moveNames))
	for _, name := range moveNames {
		m, err := s.Move(name)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}

	base := battle.BaseStats{HP: stats.HP, Atk: stats.Attack, Def: stats.Defense, Spc: stats.Special, Spe: stats.Speed}
	speciesBase := battle.BaseStats{HP: sp.BaseStats.HP, Atk: sp.BaseStats.Attack, Def: sp.BaseStats.Defense, Spc: sp.BaseStats.Special, Spe: sp.BaseStats.Speed}

	return &battle.Battler{
		Name: sp.Name, Types: append([]battle.Type(nil), sp.Types...), Level: level, Side: side,
		Stats: base, SpeciesBaseStats: speciesBase,
		CurrentHP: base.HP, MaxHP: base.HP,
		Stages: battle.NewStageTable(),
		Moves:  moves,
	}, nil
}
