package battle

import "github.com/opd-ai/pokebattle-sim/lib/events"

// SwitchChooser is the external controller hook the scheduler calls when a
// side's active creature has fainted and a replacement must be chosen
// (spec §4.6 step 5, "Forced-switch pass"). Implementations live outside
// this package (AI, human CLI, harness); the core only needs the contract.
type SwitchChooser interface {
	// ChooseSwitch returns the index into team.Battlers of the creature to
	// send out. The implementation must return an index with CurrentHP > 0.
	ChooseSwitch(state *BattleState, side Side) int
}

// ValidateSwitch checks whether switching to index is legal for team (spec
// §7: illegal actions are switch-to-fainted, switch-to-current, and
// out-of-range index).
func ValidateSwitch(team *Team, index int) error {
	if index < 0 || index >= len(team.Battlers) {
		return ErrInvalidSlot
	}
	if index == team.ActiveIndex {
		return ErrSwitchToActive
	}
	if !team.Battlers[index].IsAlive() {
		return ErrSwitchIntoFainted
	}
	return nil
}

// Switch resolves a (possibly forced) switch on team to index: resets the
// outgoing creature's volatiles, updates ActiveIndex, and emits SWITCHED.
func Switch(ctx *Context, team *Team, index int) error {
	if err := ValidateSwitch(team, index); err != nil {
		return err
	}
	from := team.ActiveIndex
	restoreTransform(team.Battlers[from])
	team.Battlers[from].Volatiles.ResetOnSwitch()
	team.ActiveIndex = index
	ctx.emit(events.Switched{
		Base: ctx.turn(), Pokemon: team.Battlers[index].Name, Side: string(team.Side),
		FromIndex: from, ToIndex: index,
	})
	return nil
}

// restoreTransform undoes Transform on switch-out, restoring the creature's
// original types/stats/moves from the snapshot Transform took (spec §3:
// is_transformed/original_form are volatile, so ResetOnSwitch implies this,
// but the identity swap needs its own restoration step since Battler's
// Types/Stats/Moves fields aren't part of Volatiles).
func restoreTransform(b *Battler) {
	if !b.Volatiles.IsTransformed || b.Volatiles.OriginalForm == nil {
		return
	}
	form := b.Volatiles.OriginalForm
	b.Types = form.Types
	b.Stats.Atk, b.Stats.Def, b.Stats.Spc, b.Stats.Spe = form.BaseStats.Atk, form.BaseStats.Def, form.BaseStats.Spc, form.BaseStats.Spe
	b.Moves = form.Moves
}

// firstPPAlternative returns the index of the first move on b with PP > 0,
// or -1 if none exists. Used by the scheduler's illegal-action fallback
// (spec §7: "falls back to the first PP-positive move").
func firstPPAlternative(b *Battler) int {
	for i, m := range b.Moves {
		if m.HasPP() {
			return i
		}
	}
	return -1
}
