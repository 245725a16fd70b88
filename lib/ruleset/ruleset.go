// Package ruleset validates team legality before a battle starts. It is
// consulted once, at team construction, and never again mid-battle (spec
// §1: "ruleset validator ... invoked only on team construction").
package ruleset

import (
	"fmt"

	"github.com/opd-ai/pokebattle-sim/lib/battle"
)

// Ruleset bounds team construction: level range, team size, and species
// bans, grounded on the original implementation's Ruleset dataclass
// (cup-style formats), trimmed to what the Gen-1 core actually consumes.
type Ruleset struct {
	Name           string
	MinLevel       int
	MaxLevel       int
	LevelSumLimit  int // 0 disables the check
	MinTeamSize    int
	MaxTeamSize    int
	BannedSpecies  map[string]bool
	AllowedSpecies map[string]bool // nil disables the whitelist
}

// Standard is the unrestricted level 1-100, 1-6 member format with no
// species bans. Clause flags are not part of a Ruleset; Clauses selects
// them. Name mirrors the original's CupType.STANDARD.
func Standard() Ruleset {
	return Ruleset{
		Name: "Standard", MinLevel: 1, MaxLevel: 100,
		MinTeamSize: 1, MaxTeamSize: 6,
		BannedSpecies: map[string]bool{},
	}
}

// Clauses returns the clause bag conventionally paired with name, or the
// all-off bag for any other name.
func Clauses(name string) battle.Clauses {
	switch name {
	case "tournament":
		return battle.Clauses{SleepClause: true, FreezeClause: true, OHKOClause: true, EvasionClause: true}
	default:
		return battle.Clauses{}
	}
}

// ValidateSpecies checks one species name/level against r.
func (r Ruleset) ValidateSpecies(name string, level int) error {
	if r.BannedSpecies[name] {
		return fmt.Errorf("%s is banned under ruleset %q", name, r.Name)
	}
	if r.AllowedSpecies != nil && !r.AllowedSpecies[name] {
		return fmt.Errorf("%s is not in the allowed list for ruleset %q", name, r.Name)
	}
	if level < r.MinLevel || level > r.MaxLevel {
		return fmt.Errorf("%s (Lv.%d) is outside [%d, %d] for ruleset %q", name, level, r.MinLevel, r.MaxLevel, r.Name)
	}
	return nil
}

// TeamMember is the minimal shape ValidateTeam needs from a roster entry;
// callers adapt their own team-builder type to it.
type TeamMember struct {
	Species string
	Level   int
}

// ValidateTeam checks team size, per-member legality, the level-sum cap (if
// set), and duplicate species.
func (r Ruleset) ValidateTeam(team []TeamMember) error {
	if len(team) < r.MinTeamSize {
		return fmt.Errorf("team needs at least %d Pokemon under ruleset %q", r.MinTeamSize, r.Name)
	}
	if len(team) > r.MaxTeamSize {
		return fmt.Errorf("team cannot exceed %d Pokemon under ruleset %q", r.MaxTeamSize, r.Name)
	}

	seen := make(map[string]bool, len(team))
	levelSum := 0
	for _, m := range team {
		if err := r.ValidateSpecies(m.Species, m.Level); err != nil {
			return err
		}
		if seen[m.Species] {
			return fmt.Errorf("team cannot have duplicate Pokemon (%s) under ruleset %q", m.Species, r.Name)
		}
		seen[m.Species] = true
		levelSum += m.Level
	}
	if r.LevelSumLimit > 0 && levelSum > r.LevelSumLimit {
		return fmt.Errorf("team level sum (%d) exceeds limit (%d) for ruleset %q", levelSum, r.LevelSumLimit, r.Name)
	}
	return nil
}

// OHKOBannedMoves and EvasionBannedMoves mirror lib/battle's internal
// clause-filtered move sets, exposed here so an AI move-selector (an
// external collaborator) can filter its candidate list before ever handing
// an Action to the scheduler (spec §4.3: "filter AI move selection").
var OHKOBannedMoves = map[string]bool{"Guillotine": true, "Horn-Drill": true, "Fissure": true}
var EvasionBannedMoves = map[string]bool{"Double-Team": true, "Minimize": true}
