// Package harness drives battles end-to-end for the golden-test suite and
// the batch runner: a uniform-random controller (spec §1 Non-goals: "AI
// beyond uniform-random action selection" is explicitly out of scope for
// the core), a single-battle runner wiring lib/battle to lib/battlelog, and
// a concurrent batch runner.
package harness

import (
	"github.com/opd-ai/pokebattle-sim/lib/battle"
	"github.com/opd-ai/pokebattle-sim/lib/ruleset"
)

// RandomController picks a uniform-random legal action each turn: it never
// selects a 0-PP move when a PP-positive alternative exists, and it filters
// OHKO/Evasion-clause-banned moves when the corresponding clause is active
// (spec §4.3, "clauses ... filter AI move selection").
type RandomController struct {
	RNG battle.RNG
}

// ChooseAction returns this side's Action for the current turn. It always
// attacks with a legal move on the active creature; switching is left to
// the forced-switch pass (ChooseSwitch below), matching the uniform-random
// scope of the core's own controller.
func (c RandomController) ChooseAction(state *battle.BattleState, side battle.Side) battle.Action {
	active := state.TeamFor(side).Active()
	candidates := make([]int, 0, len(active.Moves))
	for i, m := range active.Moves {
		if !m.HasPP() {
			continue
		}
		if state.Clauses.OHKOClause && ruleset.OHKOBannedMoves[m.Name] {
			continue
		}
		if state.Clauses.EvasionClause && ruleset.EvasionBannedMoves[m.Name] {
			continue
		}
		candidates = append(candidates, i)
	}
	if len(candidates) == 0 {
		return battle.Action{Kind: battle.ActionAttack, MoveIndex: 0}
	}
	pick := candidates[c.RNG.Intn(len(candidates))]
	return battle.Action{Kind: battle.ActionAttack, MoveIndex: pick}
}

// ChooseSwitch implements battle.SwitchChooser: pick a living teammate,
// uniform-random among the alive set rather than always the first index,
// so forced switches aren't deterministic across battles that
// differ only in fainting order.
func (c RandomController) ChooseSwitch(state *battle.BattleState, side battle.Side) int {
	team := state.TeamFor(side)
	var alive []int
	for i, b := range team.Battlers {
		if b.IsAlive() {
			alive = append(alive, i)
		}
	}
	if len(alive) == 0 {
		return team.ActiveIndex
	}
	return alive[c.RNG.Intn(len(alive))]
}
