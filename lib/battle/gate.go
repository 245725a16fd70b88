package battle

import "github.com/opd-ai/pokebattle-sim/lib/events"

// GateResult reports whether the actor's chosen move should proceed to
// dispatch, and whether the action was consumed by something other than the
// move itself (confusion self-hit, sleep, paralysis, ...).
type GateResult struct {
	Proceed bool
	Reason  string // non-empty when Proceed is false, for MOVE_FAILED-style logging
}

// RunGate executes spec §4.5's nine-step pre-turn gate on actor before its
// chosen move (if any) is dispatched. It is the sole place status/volatile
// state can skip or redirect an action.
func RunGate(ctx *Context, actor *Battler, move Move) GateResult {
	side := actor.Side

	// 1. Recharge.
	if actor.Volatiles.MustRecharge {
		actor.Volatiles.MustRecharge = false
		ctx.emit(events.RechargeNeeded{Base: ctx.turn(), Pokemon: actor.Name, Side: string(side)})
		return GateResult{Proceed: false, Reason: "recharge"}
	}

	// 2. Freeze.
	if actor.Status == StatusFreeze {
		if ctx.RNG.Float64() < ctx.State.Config.FreezeThawChance {
			actor.Status = StatusNone
			ctx.emit(events.StatusCured{Base: ctx.turn(), Pokemon: actor.Name, Side: string(side), Status: string(StatusFreeze), Reason: "thawed"})
		} else {
			ctx.emit(events.StatusPreventedAction{Base: ctx.turn(), Pokemon: actor.Name, Side: string(side), Status: string(StatusFreeze)})
			return GateResult{Proceed: false, Reason: "frozen"}
		}
	}

	// 3. Sleep.
	if actor.Status == StatusSleep {
		actor.SleepCounter--
		if actor.SleepCounter <= 0 {
			actor.Status = StatusNone
			ctx.emit(events.StatusCured{Base: ctx.turn(), Pokemon: actor.Name, Side: string(side), Status: string(StatusSleep), Reason: "woke_up"})
		}
		// The wake turn still loses the action in Gen 1.
		ctx.emit(events.StatusPreventedAction{Base: ctx.turn(), Pokemon: actor.Name, Side: string(side), Status: string(StatusSleep)})
		return GateResult{Proceed: false, Reason: "asleep"}
	}

	// 4. Paralysis.
	if actor.Status == StatusParalysis {
		if ctx.RNG.Float64() < ctx.State.Config.ParalysisFailChance {
			ctx.emit(events.StatusPreventedAction{Base: ctx.turn(), Pokemon: actor.Name, Side: string(side), Status: string(StatusParalysis)})
			return GateResult{Proceed: false, Reason: "paralyzed"}
		}
	}

	// 5. Confusion.
	if actor.Volatiles.ConfusionTurns > 0 {
		actor.Volatiles.ConfusionTurns--
		if actor.Volatiles.ConfusionTurns == 0 {
			ctx.emit(events.StatusCured{Base: ctx.turn(), Pokemon: actor.Name, Side: string(side), Status: "confusion", Reason: "snapped_out"})
		} else if ctx.RNG.Float64() < 0.5 {
			selfHitConfusion(ctx, actor)
			return GateResult{Proceed: false, Reason: "confused"}
		}
	}

	// 6. Disable.
	if actor.Volatiles.DisabledMove == move.Name {
		return GateResult{Proceed: false, Reason: "disabled"}
	}

	// 7. Charging handled by the caller via dispatchTwoTurn / OutcomeChargeStart:
	// the gate only needs to recognize that a charging actor's stored move
	// resolves now rather than re-selecting; the scheduler substitutes
	// actor.Volatiles.ChargingMove for move before calling RunGate in that case.

	// 8. Trap.
	if actor.Volatiles.IsTrapped {
		return GateResult{Proceed: false, Reason: "trapped"}
	}

	// 9. PP.
	if !move.HasPP() {
		ctx.emit(events.MoveFailed{Base: ctx.turn(), Attacker: actor.Name, AttackerSide: string(side), Move: move.Name, Reason: "no_pp"})
		return GateResult{Proceed: false, Reason: "no_pp"}
	}

	return GateResult{Proceed: true}
}

// selfHitConfusion resolves a confusion self-hit: a 40-power typeless
// physical attack using the user's own Atk/Def stages (spec §4.5 step 5).
func selfHitConfusion(ctx *Context, actor *Battler) {
	selfMove := Move{Name: "confusion-hit", Type: Normal, Category: CategoryPhysical, Power: 40, Accuracy: 0}
	atk := attackStat(actor, true)
	def := defenseStat(actor, true)
	levelComponent := 2*float64(actor.Level)/5.0 + 2
	base := (levelComponent*float64(selfMove.Power)*atk/def)/50.0 + 2
	roll := ctx.RNG.Intn(ctx.State.Config.MaxRandomFactor-ctx.State.Config.MinRandomFactor+1) + ctx.State.Config.MinRandomFactor
	damage := int(base * (float64(roll) / float64(ctx.State.Config.RandomDivisor)))
	if damage < 1 {
		damage = 1
	}
	if damage > actor.CurrentHP {
		damage = actor.CurrentHP
	}
	actor.CurrentHP -= damage
	ctx.emit(events.ConfusionSelfHit{Base: ctx.turn(), Pokemon: actor.Name, Side: string(actor.Side), Damage: damage, HP: actor.CurrentHP, MaxHP: actor.MaxHP})
}
