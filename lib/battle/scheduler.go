package battle

import "github.com/opd-ai/pokebattle-sim/lib/events"

// ActionKind discriminates the two shapes a side's per-turn choice can take
// (spec §4.6: "an Action from each side, each a tagged Attack(move_ref) or
// Switch(team_index)").
type ActionKind int

const (
	ActionAttack ActionKind = iota
	ActionSwitch
)

// Action is one side's choice for the current turn.
type Action struct {
	Kind        ActionKind
	MoveIndex   int
	SwitchIndex int
}

// Outcome of a full turn, returned by RunTurn.
type TurnResult struct {
	Ended  bool
	Winner Side // "" for a draw
	Reason events.BattleEndReason
}

type orderedAction struct {
	side   Side
	action Action
}

// RunTurn executes one full turn: ordering, gated action execution, KO
// checks, the end-of-turn pass, the forced-switch pass, and the turn-limit
// check (spec §4.6). moves is the pool Metronome/Mirror Move consult; it
// may be nil if the catalog isn't wired (those moves then simply fail).
func RunTurn(ctx *Context, p1, p2 Action, chooser SwitchChooser, moves MoveSource) TurnResult {
	ctx.State.Turn++
	emitTurnStart(ctx)

	order := orderActions(ctx, p1, p2)

	for _, oa := range order {
		team := ctx.State.TeamFor(oa.side)
		actor := team.Active()
		if !actor.IsAlive() {
			continue
		}

		if oa.action.Kind == ActionSwitch {
			if err := Switch(ctx, team, oa.action.SwitchIndex); err != nil {
				ctx.emit(events.Info{Base: ctx.turn(), Message: "illegal switch rejected: " + err.Error()})
			}
			continue
		}

		if res := executeAttack(ctx, oa.side, oa.action.MoveIndex, moves); res.Ended {
			emitTurnEnd(ctx)
			return res
		}
	}

	if res := endOfTurnPass(ctx); res.Ended {
		emitTurnEnd(ctx)
		return res
	}

	forcedSwitchPass(ctx, chooser)

	if ctx.State.Turn >= ctx.State.MaxTurns {
		emitTurnEnd(ctx)
		ctx.emit(events.BattleEnd{Base: ctx.turn(), Winner: "", Reason: events.ReasonTurnLimit})
		return TurnResult{Ended: true, Reason: events.ReasonTurnLimit}
	}

	emitTurnEnd(ctx)
	return TurnResult{}
}

func emitTurnStart(ctx *Context) {
	ctx.emit(events.TurnStart{Base: ctx.turn()})
	for _, side := range []Side{P1, P2} {
		b := ctx.State.TeamFor(side).Active()
		ctx.emit(events.StateSnapshot{
			Base: ctx.turn(), Pokemon: b.Name, Side: string(side),
			HP: b.CurrentHP, MaxHP: b.MaxHP, Status: string(b.Status),
			Stages: stagesAsStrings(b.Stages.NonZero()), Volatiles: volatilesSnapshot(b),
		})
	}
}

func emitTurnEnd(ctx *Context) {
	snapshots := make([]events.HPSnapshot, 0, 2)
	for _, side := range []Side{P1, P2} {
		b := ctx.State.TeamFor(side).Active()
		snapshots = append(snapshots, events.HPSnapshot{Pokemon: b.Name, Side: string(side), HP: b.CurrentHP, MaxHP: b.MaxHP})
	}
	ctx.emit(events.TurnEnd{Base: ctx.turn(), Snapshots: snapshots})
}

func stagesAsStrings(m map[Stat]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}

func volatilesSnapshot(b *Battler) map[string]any {
	out := map[string]any{}
	if b.Volatiles.ConfusionTurns > 0 {
		out["confused"] = b.Volatiles.ConfusionTurns
	}
	if b.Volatiles.IsSeeded {
		out["seeded"] = true
	}
	if b.Volatiles.SubstituteHP > 0 {
		out["substitute_hp"] = b.Volatiles.SubstituteHP
	}
	if b.Volatiles.HasReflect {
		out["reflect"] = b.Volatiles.ReflectTurns
	}
	if b.Volatiles.HasLightScreen {
		out["light_screen"] = b.Volatiles.LightScreenTurns
	}
	if b.Volatiles.HasMist {
		out["mist"] = b.Volatiles.MistTurns
	}
	if b.Volatiles.IsTrapped {
		out["trapped"] = b.Volatiles.TrapTurns
	}
	if b.Volatiles.MustRecharge {
		out["must_recharge"] = true
	}
	if b.Volatiles.IsCharging {
		out["charging"] = b.Volatiles.ChargingMove
	}
	if b.Volatiles.IsRaging {
		out["raging"] = true
	}
	if b.Volatiles.DisabledMove != "" {
		out["disabled_move"] = b.Volatiles.DisabledMove
	}
	return out
}

// orderActions resolves spec §4.6 step 1: switch priority, both-switch
// arbitrary-but-deterministic order (P1 first), else speed comparison with a
// coin-flip tiebreak.
func orderActions(ctx *Context, p1, p2 Action) []orderedAction {
	p1Switch := p1.Kind == ActionSwitch
	p2Switch := p2.Kind == ActionSwitch

	switch {
	case p1Switch && !p2Switch:
		emitTurnOrderReason(ctx, "switch_priority", P1, P2)
		return []orderedAction{{P1, p1}, {P2, p2}}
	case p2Switch && !p1Switch:
		emitTurnOrderReason(ctx, "switch_priority", P2, P1)
		return []orderedAction{{P2, p2}, {P1, p1}}
	case p1Switch && p2Switch:
		emitTurnOrderReason(ctx, "switch_priority", P1, P2)
		return []orderedAction{{P1, p1}, {P2, p2}}
	}

	p1b := ctx.State.P1.Active()
	p2b := ctx.State.P2.Active()
	p1Speed := effectiveSpeed(p1b, ctx.State.Config)
	p2Speed := effectiveSpeed(p2b, ctx.State.Config)

	if p1Speed == p2Speed {
		if ctx.RNG.Float64() < 0.5 {
			emitTurnOrderReason(ctx, "speed_tie_random", P1, P2)
			return []orderedAction{{P1, p1}, {P2, p2}}
		}
		emitTurnOrderReason(ctx, "speed_tie_random", P2, P1)
		return []orderedAction{{P2, p2}, {P1, p1}}
	}
	if p1Speed > p2Speed {
		emitTurnOrderReason(ctx, "speed", P1, P2)
		return []orderedAction{{P1, p1}, {P2, p2}}
	}
	emitTurnOrderReason(ctx, "speed", P2, P1)
	return []orderedAction{{P2, p2}, {P1, p1}}
}

func emitTurnOrderReason(ctx *Context, reason string, first, second Side) {
	ctx.emit(events.TurnOrder{
		Base: ctx.turn(), Reason: reason,
		FirstActor: string(ctx.State.TeamFor(first).Active().Name), FirstSide: string(first),
		SecondActor: string(ctx.State.TeamFor(second).Active().Name), SecondSide: string(second),
	})
}

// executeAttack runs the pre-turn gate, dispatches the move, applies
// damage, resolves secondary effects, and checks for a KO (spec §4.6 steps
// 2-3). Returns a TurnResult with Ended true iff the battle just ended.
func executeAttack(ctx *Context, side Side, moveIndex int, moves MoveSource) TurnResult {
	team := ctx.State.TeamFor(side)
	actor := team.Active()
	defTeam := ctx.State.TeamFor(side.Other())
	defender := defTeam.Active()

	wasCharging := actor.Volatiles.IsCharging
	var move Move
	slot := -1
	if wasCharging {
		if m, ok := lookupMove(moves, actor.Volatiles.ChargingMove); ok {
			move = m
		} else {
			move = Move{Name: actor.Volatiles.ChargingMove, PP: 1}
		}
	} else {
		slot = resolveChosenMove(ctx, actor, moveIndex)
		if slot >= 0 {
			move = actor.Moves[slot]
		} else {
			move = Move{Name: "Struggle", Type: Normal, Category: CategoryPhysical, Power: 50, Accuracy: 100, PP: 1, MaxPP: 1}
		}
	}

	gate := RunGate(ctx, actor, move)
	if !gate.Proceed {
		return TurnResult{}
	}

	if slot >= 0 {
		actor.Moves[slot].PP--
	}
	actor.Volatiles.LastMoveUsed = move.Name
	ctx.emit(events.MoveUsed{
		Base: ctx.turn(), Attacker: actor.Name, AttackerSide: string(side),
		Move: move.Name, MoveType: string(move.Type), IsContinuation: actor.Volatiles.IsCharging,
	})

	if ohkoEvasionBanned(ctx.State.Clauses, move.Name) {
		ctx.emit(events.MoveFailed{Base: ctx.turn(), Attacker: actor.Name, AttackerSide: string(side), Move: move.Name, Reason: "banned_by_clause"})
		return TurnResult{}
	}

	outcome := Dispatch(ctx, actor, defender, move, moves)

	if outcome.Kind == OutcomeMetronome || outcome.Kind == OutcomeMirrorMove {
		if picked, ok := lookupMove(moves, outcome.Redirect); ok {
			move = picked
			outcome = Dispatch(ctx, actor, defender, move, moves)
		}
	}

	return resolveOutcome(ctx, actor, defender, move, outcome)
}

// lookupMove resolves a move by name through moves, tolerating a nil
// MoveSource (the catalog isn't always wired, e.g. in unit tests).
func lookupMove(moves MoveSource, name string) (Move, bool) {
	if moves == nil || name == "" {
		return Move{}, false
	}
	return moves.ByName(name)
}

// resolveChosenMove looks up the slot index of the move the actor selected,
// falling back to the first PP-positive move on an illegal (exhausted)
// choice (spec §7). Returns -1 when no PP-positive move exists at all
// (Struggle: not a catalog move, never has its PP decremented).
func resolveChosenMove(ctx *Context, actor *Battler, index int) int {
	if index >= 0 && index < len(actor.Moves) && actor.Moves[index].HasPP() {
		return index
	}
	if alt := firstPPAlternative(actor); alt >= 0 {
		ctx.emit(events.Info{Base: ctx.turn(), Message: actor.Name + "'s chosen move had no PP; falling back."})
		return alt
	}
	return -1
}

// resolveOutcome carries a dispatched move to its HP effects: checking
// accuracy where relevant, running the damage pipeline, applying it, and
// dispatching to the outcome-specific branch.
func resolveOutcome(ctx *Context, actor, defender *Battler, move Move, outcome Outcome) TurnResult {
	switch outcome.Kind {
	case OutcomeFail:
		ctx.emit(events.MoveFailed{Base: ctx.turn(), Attacker: actor.Name, AttackerSide: string(actor.Side), Move: move.Name, Reason: outcome.FailReason})
		return TurnResult{}

	case OutcomeNoOp, OutcomeHaze, OutcomeScreenActivated, OutcomeFocusEnergy,
		OutcomeSubstituteCreated, OutcomeDisable, OutcomeLeechSeedPlanted,
		OutcomeRecoveryHealed, OutcomeRecoveryFull, OutcomeTransform, OutcomeConversion:
		return TurnResult{}

	case OutcomeOHKOFail:
		ctx.emit(events.MoveFailed{Base: ctx.turn(), Attacker: actor.Name, AttackerSide: string(actor.Side), Move: move.Name, Reason: "ohko_too_slow"})
		return TurnResult{}

	case OutcomeRageStart:
		actor.Volatiles.IsRaging = true
		return applyStandardHit(ctx, actor, defender, move)

	case OutcomeTrapStart:
		return resolveTrapStart(ctx, actor, defender, move)

	case OutcomeMultiTurnLock:
		return resolveMultiTurnLock(ctx, actor, defender, move)

	case OutcomeChargeStart:
		actor.Volatiles.IsCharging = true
		actor.Volatiles.ChargingMove = move.Name
		if twoTurnMoves[move.Name].SemiInvulnerable {
			actor.Volatiles.IsSemiInvulnerable = true
		}
		if twoTurnMoves[move.Name].DefenseBoost {
			actual, atLimit := actor.Stages.Modify(StatDef, 1)
			if actual != 0 {
				ctx.emit(events.StatChanged{Base: ctx.turn(), Pokemon: actor.Name, Side: string(actor.Side), Stat: string(StatDef), Stages: actual, NewStage: actor.Stages.Get(StatDef), Source: "skull_bash"})
			}
			if atLimit {
				ctx.emit(events.StatLimitReached{Base: ctx.turn(), Pokemon: actor.Name, Side: string(actor.Side), Stat: string(StatDef), AtMax: true})
			}
		}
		ctx.emit(events.ChargingMove{Base: ctx.turn(), Pokemon: actor.Name, Side: string(actor.Side), Move: move.Name, MessageKey: "charge_" + move.Name})
		return TurnResult{}

	case OutcomeChargeRelease:
		actor.Volatiles.IsCharging = false
		actor.Volatiles.ChargingMove = ""
		actor.Volatiles.IsSemiInvulnerable = false
		return applyStandardHit(ctx, actor, defender, move)

	case OutcomeRechargeAttack:
		res := applyStandardHit(ctx, actor, defender, move)
		if actor.IsAlive() {
			actor.Volatiles.MustRecharge = true
		}
		return res

	case OutcomeMultiHit:
		return resolveMultiHit(ctx, actor, defender, move, outcome.HitCount, false)

	case OutcomeDoubleHit:
		return resolveMultiHit(ctx, actor, defender, move, 2, false)

	case OutcomeTwineedle:
		return resolveMultiHit(ctx, actor, defender, move, 2, true)

	case OutcomeCrashOnMiss:
		return resolveCrashDamage(ctx, actor, defender, move)

	case OutcomeSelfDestruct:
		res := applyStandardHit(ctx, actor, defender, move)
		actor.CurrentHP = 0
		if res.Ended {
			return res
		}
		return faintBattler(ctx, actor, events.FaintSelfDestruct)

	case OutcomeDrain:
		return resolveDrain(ctx, actor, defender, move, outcome.DrainRatio)

	case OutcomeFixedDamage, OutcomeLevelDamage, OutcomeOHKO, OutcomeSuperFang:
		return applyFixedAmount(ctx, actor, defender, move, outcome.Damage)

	case OutcomeCounter:
		return applyFixedAmount(ctx, actor, defender, move, outcome.Damage)

	default: // OutcomeNormal
		return applyStandardHit(ctx, actor, defender, move)
	}
}

// applyStandardHit runs the full accuracy + damage + application +
// secondary-effect pipeline for an ordinary damaging (or status) move.
func applyStandardHit(ctx *Context, actor, defender *Battler, move Move) TurnResult {
	if move.EffectiveCategory() == CategoryStatus {
		applySecondaryEffects(ctx, actor, defender, move)
		return TurnResult{}
	}

	if !CheckHit(ctx, actor, defender, move) {
		ctx.emit(events.MoveMissed{Base: ctx.turn(), Attacker: actor.Name, AttackerSide: string(actor.Side), Move: move.Name, Defender: defender.Name, DefenderSide: string(defender.Side), Reason: events.MissAccuracy})
		return TurnResult{}
	}

	dr := ComputeDamage(ctx, actor, defender, move)
	if dr.Effectiveness == 0 {
		ctx.emit(events.MoveNoEffect{Base: ctx.turn(), Attacker: actor.Name, AttackerSide: string(actor.Side), Move: move.Name, Defender: defender.Name, DefenderSide: string(defender.Side)})
		return TurnResult{}
	}

	ao := ApplyDamage(ctx, actor, defender, move, dr)
	if ao.Missed {
		return TurnResult{}
	}
	emitDamageEvents(ctx, actor, defender, move, dr, ao)

	if !ao.AbsorbedBySub {
		applySecondaryEffects(ctx, actor, defender, move)
	}

	return checkFaint(ctx, defender, events.FaintDamage)
}

func emitDamageEvents(ctx *Context, actor, defender *Battler, move Move, dr DamageResult, ao ApplyOutcome) {
	if dr.Crit {
		ctx.emit(events.CriticalHit{Base: ctx.turn(), Attacker: actor.Name, AttackerSide: string(actor.Side)})
	}
	if dr.Effectiveness != 1 {
		ctx.emit(events.Effectiveness{Base: ctx.turn(), Defender: defender.Name, Multiplier: dr.Effectiveness})
	}
	ctx.emit(events.DamageDealt{
		Base: ctx.turn(), Attacker: actor.Name, AttackerSide: string(actor.Side),
		Defender: defender.Name, DefenderSide: string(defender.Side),
		Damage: ao.ActualDamage, HP: defender.CurrentHP, MaxHP: defender.MaxHP, Move: move.Name,
		Breakdown: &events.DamageBreakdown{
			MovePower: move.Power, AttackStat: dr.AttackStat, DefenseStat: dr.DefenseStat,
			STAB: dr.STAB, Effectiveness: dr.Effectiveness, IsCritical: dr.Crit,
			BurnModifier: dr.BurnModifier, RandomRoll: dr.RandomRoll, FinalDamage: ao.ActualDamage,
		},
	})
}

// applySecondaryEffects rolls the move's status/stat-change payload after a
// successful hit (or on a status move with no preceding damage). Sleep and
// Freeze clauses suppress only this secondary portion (spec §4.3).
func applySecondaryEffects(ctx *Context, actor, defender *Battler, move Move) {
	target := defender
	if move.TargetSelf {
		target = actor
	}

	if move.StatusEffect != "" && move.StatusEffect != StatusNone {
		if target.Status == StatusNone && !clauseBlocksStatus(ctx, target, move.StatusEffect) {
			if ctx.RNG.Intn(100) < move.StatusChance {
				applyMajorStatus(ctx, target, move.StatusEffect, move.Name)
			}
		}
	}

	for stat, delta := range move.StatChanges {
		actual, atLimit := target.Stages.Modify(stat, delta)
		if actual != 0 {
			ctx.emit(events.StatChanged{Base: ctx.turn(), Pokemon: target.Name, Side: string(target.Side), Stat: string(stat), Stages: actual, NewStage: target.Stages.Get(stat), Source: move.Name})
		}
		if atLimit {
			ctx.emit(events.StatLimitReached{Base: ctx.turn(), Pokemon: target.Name, Side: string(target.Side), Stat: string(stat), AtMax: target.Stages.Get(stat) == 6})
		}
	}
}

// clauseBlocksStatus implements Sleep/Freeze Clause (spec §6, "Clauses &
// rulesets"): at most one Pokemon per team may carry the clause's status at
// a time. Grounded on original_source/engine/clauses.py's
// check_sleep_clause/check_freeze_clause, which scan the whole defending
// team rather than just the move's immediate target.
func clauseBlocksStatus(ctx *Context, target *Battler, status Status) bool {
	if status != StatusSleep && status != StatusFreeze {
		return false
	}
	if status == StatusSleep && !ctx.State.Clauses.SleepClause {
		return false
	}
	if status == StatusFreeze && !ctx.State.Clauses.FreezeClause {
		return false
	}
	for _, b := range ctx.State.TeamFor(target.Side).Battlers {
		if b.IsAlive() && b.Status == status {
			return true
		}
	}
	return false
}

// ohkoEvasionBanned reports whether move is banned outright by the active
// OHKO/Evasion clause (spec §6, §4.3 "Clause interaction"). Grounded on
// original_source/engine/clauses.py's OHKO_MOVES/EVASION_MOVES sets.
func ohkoEvasionBanned(clauses Clauses, moveName string) bool {
	if clauses.OHKOClause && ohkoMoves[moveName] {
		return true
	}
	if clauses.EvasionClause && evasionBannedMoves[moveName] {
		return true
	}
	return false
}

var evasionBannedMoves = map[string]bool{"Double-Team": true, "Minimize": true}

func applyMajorStatus(ctx *Context, target *Battler, status Status, source string) {
	target.Status = status
	if status == StatusSleep {
		target.SleepCounter = ctx.RNG.Intn(7) + 1
	}
	ctx.emit(events.StatusApplied{Base: ctx.turn(), Pokemon: target.Name, Side: string(target.Side), Status: string(status), Source: source})
}

// applyFixedAmount applies a dispatcher-computed damage amount (fixed
// damage, level damage, OHKO, Super Fang, Counter) through the same
// accuracy/apply/KO pipeline as a standard hit, skipping ComputeDamage.
func applyFixedAmount(ctx *Context, actor, defender *Battler, move Move, amount int) TurnResult {
	if !CheckHit(ctx, actor, defender, move) {
		ctx.emit(events.MoveMissed{Base: ctx.turn(), Attacker: actor.Name, AttackerSide: string(actor.Side), Move: move.Name, Defender: defender.Name, DefenderSide: string(defender.Side), Reason: events.MissAccuracy})
		return TurnResult{}
	}
	eff := Effectiveness(move.Type, defender.Types)
	if eff == 0 {
		ctx.emit(events.MoveNoEffect{Base: ctx.turn(), Attacker: actor.Name, AttackerSide: string(actor.Side), Move: move.Name, Defender: defender.Name, DefenderSide: string(defender.Side)})
		return TurnResult{}
	}
	dr := DamageResult{Damage: amount, Effectiveness: eff}
	ao := ApplyDamage(ctx, actor, defender, move, dr)
	if ao.Missed {
		return TurnResult{}
	}
	emitDamageEvents(ctx, actor, defender, move, dr, ao)
	return checkFaint(ctx, defender, events.FaintDamage)
}

func resolveDrain(ctx *Context, actor, defender *Battler, move Move, ratio float64) TurnResult {
	if !CheckHit(ctx, actor, defender, move) {
		ctx.emit(events.MoveMissed{Base: ctx.turn(), Attacker: actor.Name, AttackerSide: string(actor.Side), Move: move.Name, Defender: defender.Name, DefenderSide: string(defender.Side), Reason: events.MissAccuracy})
		return TurnResult{}
	}
	dr := ComputeDamage(ctx, actor, defender, move)
	ao := ApplyDamage(ctx, actor, defender, move, dr)
	if ao.Missed {
		return TurnResult{}
	}
	emitDamageEvents(ctx, actor, defender, move, dr, ao)

	healed := int(float64(ao.ActualDamage) * ratio)
	if healed > 0 && actor.IsAlive() {
		if actor.CurrentHP+healed > actor.MaxHP {
			healed = actor.MaxHP - actor.CurrentHP
		}
		actor.CurrentHP += healed
		ctx.emit(events.HPDrained{Base: ctx.turn(), Source: defender.Name, Target: actor.Name, Amount: healed})
	}
	return checkFaint(ctx, defender, events.FaintDamage)
}

func resolveCrashDamage(ctx *Context, actor, defender *Battler, move Move) TurnResult {
	if !CheckHit(ctx, actor, defender, move) {
		ctx.emit(events.MoveMissed{Base: ctx.turn(), Attacker: actor.Name, AttackerSide: string(actor.Side), Move: move.Name, Defender: defender.Name, DefenderSide: string(defender.Side), Reason: events.MissAccuracy})
		if actor.CurrentHP > 1 {
			actor.CurrentHP--
		} else {
			actor.CurrentHP = 0
		}
		ctx.emit(events.StatusDamage{Base: ctx.turn(), Pokemon: actor.Name, Side: string(actor.Side), Status: "crash", Damage: 1, HP: actor.CurrentHP, MaxHP: actor.MaxHP})
		return checkFaint(ctx, actor, events.FaintDamage)
	}
	return applyStandardHit(ctx, actor, defender, move)
}

func resolveMultiTurnLock(ctx *Context, actor, defender *Battler, move Move) TurnResult {
	if actor.Volatiles.MultiTurnMove != move.Name {
		actor.Volatiles.MultiTurnMove = move.Name
		actor.Volatiles.MultiTurnCounter = ctx.RNG.Intn(2) + 2 // 2-3 turns
	}
	actor.Volatiles.MultiTurnCounter--
	res := applyStandardHit(ctx, actor, defender, move)
	if actor.Volatiles.MultiTurnCounter <= 0 && actor.IsAlive() {
		actor.Volatiles.MultiTurnMove = ""
		actor.Volatiles.ConfusionTurns = ctx.RNG.Intn(4) + 1
		ctx.emit(events.StatusApplied{Base: ctx.turn(), Pokemon: actor.Name, Side: string(actor.Side), Status: "confusion", Source: move.Name})
	}
	return res
}

func resolveTrapStart(ctx *Context, actor, defender *Battler, move Move) TurnResult {
	res := applyStandardHit(ctx, actor, defender, move)
	if defender.IsAlive() && !defender.Volatiles.IsTrapped {
		defender.Volatiles.IsTrapped = true
		defender.Volatiles.TrapTurns = ctx.RNG.Intn(4) + 2 // 2-5 turns
		defender.Volatiles.TrappedBy = BattlerRef{Side: actor.Side, Slot: ctx.State.TeamFor(actor.Side).ActiveIndex}
		defender.Volatiles.TrapMove = move.Name
		ctx.emit(events.PokemonTrapped{Base: ctx.turn(), Pokemon: defender.Name, Side: string(defender.Side), Move: move.Name, Turns: defender.Volatiles.TrapTurns})
	}
	return res
}

func resolveMultiHit(ctx *Context, actor, defender *Battler, move Move, hits int, twineedlePoison bool) TurnResult {
	if !CheckHit(ctx, actor, defender, move) {
		ctx.emit(events.MoveMissed{Base: ctx.turn(), Attacker: actor.Name, AttackerSide: string(actor.Side), Move: move.Name, Defender: defender.Name, DefenderSide: string(defender.Side), Reason: events.MissAccuracy})
		return TurnResult{}
	}
	total := 0
	landed := 0
	for i := 1; i <= hits; i++ {
		if !defender.IsAlive() {
			break
		}
		dr := ComputeDamage(ctx, actor, defender, move)
		ao := ApplyDamage(ctx, actor, defender, move, dr)
		if ao.Missed {
			break
		}
		total += ao.ActualDamage
		landed++
		ctx.emit(events.MultiHitStrike{Base: ctx.turn(), Attacker: actor.Name, Defender: defender.Name, HitNumber: i, Damage: ao.ActualDamage, Crit: dr.Crit})
		if twineedlePoison && defender.Status == StatusNone && !clauseBlocksStatus(ctx, defender, StatusPoison) {
			if ctx.RNG.Intn(100) < move.StatusChance {
				applyMajorStatus(ctx, defender, StatusPoison, move.Name)
			}
		}
		if !defender.IsAlive() {
			break
		}
	}
	ctx.emit(events.MultiHitComplete{Base: ctx.turn(), Attacker: actor.Name, TotalHits: landed, TotalDamage: total})
	return checkFaint(ctx, defender, events.FaintDamage)
}

// checkFaint emits POKEMON_FAINTED and ends the battle if target's team is
// now defeated (spec §4.6 step 3).
func checkFaint(ctx *Context, target *Battler, cause events.FaintCause) TurnResult {
	if target.IsAlive() {
		return TurnResult{}
	}
	return faintBattler(ctx, target, cause)
}

func faintBattler(ctx *Context, target *Battler, cause events.FaintCause) TurnResult {
	if target.CurrentHP > 0 {
		return TurnResult{}
	}
	ctx.emit(events.PokemonFainted{Base: ctx.turn(), Pokemon: target.Name, Side: string(target.Side), Cause: cause})
	team := ctx.State.TeamFor(target.Side)
	if team.IsDefeated() {
		winner := target.Side.Other()
		ctx.emit(events.BattleEnd{Base: ctx.turn(), Winner: string(winner), Reason: events.ReasonFainted})
		return TurnResult{Ended: true, Winner: winner, Reason: events.ReasonFainted}
	}
	return TurnResult{}
}

// endOfTurnPass resolves spec §4.6 step 4: residual damage, leech seed,
// trap ticks, and screen/disable expirations, P1 then P2.
func endOfTurnPass(ctx *Context) TurnResult {
	for _, side := range []Side{P1, P2} {
		b := ctx.State.TeamFor(side).Active()
		if !b.IsAlive() {
			continue
		}
		applyResidualStatus(ctx, b)
		if !b.IsAlive() {
			if res := faintBattler(ctx, b, events.FaintStatus); res.Ended {
				return res
			}
			continue
		}
		applyLeechSeedTick(ctx, side)
		if !b.IsAlive() {
			if res := faintBattler(ctx, b, events.FaintStatus); res.Ended {
				return res
			}
			continue
		}
		applyTrapTick(ctx, b)
		if !b.IsAlive() {
			if res := faintBattler(ctx, b, events.FaintStatus); res.Ended {
				return res
			}
			continue
		}
		decrementScreens(ctx, b)
		decrementDisable(ctx, b)
	}
	return TurnResult{}
}

func applyResidualStatus(ctx *Context, b *Battler) {
	cfg := ctx.State.Config
	switch b.Status {
	case StatusBurn:
		dmg := b.MaxHP / cfg.BurnDamageFraction
		if dmg < 1 {
			dmg = 1
		}
		dealResidual(ctx, b, dmg, "burn")
	case StatusPoison:
		dmg := b.MaxHP / cfg.PoisonDamageFraction
		if dmg < 1 {
			dmg = 1
		}
		dealResidual(ctx, b, dmg, "poison")
	}
}

func dealResidual(ctx *Context, b *Battler, dmg int, status string) {
	if dmg > b.CurrentHP {
		dmg = b.CurrentHP
	}
	b.CurrentHP -= dmg
	ctx.emit(events.StatusDamage{Base: ctx.turn(), Pokemon: b.Name, Side: string(b.Side), Status: status, Damage: dmg, HP: b.CurrentHP, MaxHP: b.MaxHP})
}

func applyLeechSeedTick(ctx *Context, side Side) {
	b := ctx.State.TeamFor(side).Active()
	if !b.Volatiles.IsSeeded {
		return
	}
	healer := ctx.State.TeamFor(side.Other()).Active()
	if !healer.IsAlive() {
		return
	}
	amount := b.MaxHP / 16
	if amount < 1 {
		amount = 1
	}
	if amount > b.CurrentHP {
		amount = b.CurrentHP
	}
	b.CurrentHP -= amount
	healed := amount
	if healer.CurrentHP+healed > healer.MaxHP {
		healed = healer.MaxHP - healer.CurrentHP
	}
	healer.CurrentHP += healed
	ctx.emit(events.LeechSeedDamage{Base: ctx.turn(), Healer: healer.Name, Seeded: b.Name, Damage: amount})
}

func applyTrapTick(ctx *Context, b *Battler) {
	if !b.Volatiles.IsTrapped {
		return
	}
	b.Volatiles.TrapTurns--
	dmg := b.MaxHP / 16
	if dmg < 1 {
		dmg = 1
	}
	if dmg > b.CurrentHP {
		dmg = b.CurrentHP
	}
	b.CurrentHP -= dmg
	ctx.emit(events.TrapDamage{Base: ctx.turn(), Pokemon: b.Name, Side: string(b.Side), Damage: dmg, HP: b.CurrentHP, MaxHP: b.MaxHP})
	if b.Volatiles.TrapTurns <= 0 {
		b.Volatiles.IsTrapped = false
		b.Volatiles.TrapMove = ""
		ctx.emit(events.TrapEscaped{Base: ctx.turn(), Pokemon: b.Name, Side: string(b.Side)})
	}
}

func decrementScreens(ctx *Context, b *Battler) {
	if b.Volatiles.HasReflect {
		b.Volatiles.ReflectTurns--
		if b.Volatiles.ReflectTurns <= 0 {
			b.Volatiles.HasReflect = false
			ctx.emit(events.ScreenExpired{Base: ctx.turn(), Pokemon: b.Name, Side: string(b.Side), Screen: events.ScreenReflect})
		}
	}
	if b.Volatiles.HasLightScreen {
		b.Volatiles.LightScreenTurns--
		if b.Volatiles.LightScreenTurns <= 0 {
			b.Volatiles.HasLightScreen = false
			ctx.emit(events.ScreenExpired{Base: ctx.turn(), Pokemon: b.Name, Side: string(b.Side), Screen: events.ScreenLightScreen})
		}
	}
	if b.Volatiles.HasMist {
		b.Volatiles.MistTurns--
		if b.Volatiles.MistTurns <= 0 {
			b.Volatiles.HasMist = false
			ctx.emit(events.ScreenExpired{Base: ctx.turn(), Pokemon: b.Name, Side: string(b.Side), Screen: events.ScreenMist})
		}
	}
}

func decrementDisable(ctx *Context, b *Battler) {
	if b.Volatiles.DisabledMove == "" {
		return
	}
	b.Volatiles.DisableTurns--
	if b.Volatiles.DisableTurns <= 0 {
		move := b.Volatiles.DisabledMove
		b.Volatiles.DisabledMove = ""
		ctx.emit(events.MoveReenabled{Base: ctx.turn(), Pokemon: b.Name, Side: string(b.Side), Move: move})
	}
}

// forcedSwitchPass resolves spec §4.6 step 5: any side whose active
// creature fainted this turn gets a replacement from chooser before the
// next turn starts.
func forcedSwitchPass(ctx *Context, chooser SwitchChooser) {
	for _, side := range []Side{P1, P2} {
		team := ctx.State.TeamFor(side)
		if team.Active().IsAlive() || team.IsDefeated() || chooser == nil {
			continue
		}
		idx := chooser.ChooseSwitch(ctx.State, side)
		if err := Switch(ctx, team, idx); err != nil {
			ctx.emit(events.Info{Base: ctx.turn(), Message: "forced switch failed: " + err.Error()})
		}
	}
}
