package battle

import "github.com/opd-ai/pokebattle-sim/lib/events"

// OutcomeKind discriminates the 33 shapes a special move's resolution can
// take. The source threads ad-hoc sentinel integers (-1 .. -12) through a
// single (int, str) return from execute_special_move; this is the sum type
// the spec's design notes ask for instead — the scheduler consumes it with
// one switch (see scheduler.go's resolveOutcome) rather than
// re-deriving the move's special-ness from its name a second time.
type OutcomeKind int

const (
	// OutcomeNormal: no special handling: run the generic damage pipeline
	// (if damaging) plus status-chance/stat-change application.
	OutcomeNormal OutcomeKind = iota
	OutcomeFixedDamage
	OutcomeLevelDamage
	OutcomeOHKOFail
	OutcomeOHKO
	OutcomeSuperFang
	OutcomeRecoveryHealed
	OutcomeRecoveryFull
	OutcomeHaze
	OutcomeLeechSeedPlanted
	OutcomeScreenActivated
	OutcomeFocusEnergy
	OutcomeSubstituteCreated
	OutcomeCounter
	OutcomeDisable
	OutcomeMetronome
	OutcomeMirrorMove
	OutcomeTransform
	OutcomeConversion
	OutcomeNoOp
	OutcomeDrain
	OutcomeSelfDestruct
	OutcomeCrashOnMiss
	OutcomeRechargeAttack
	OutcomeChargeStart
	OutcomeChargeRelease
	OutcomeMultiTurnLock
	OutcomeRageStart
	OutcomeTrapStart
	OutcomeMultiHit
	OutcomeDoubleHit
	OutcomeTwineedle
	OutcomeFail
)

// Outcome is the dispatcher's result. Only the fields relevant to Kind are
// populated; see each OutcomeKind's case in scheduler.go's resolveOutcome
// for which ones it reads.
type Outcome struct {
	Kind       OutcomeKind
	Damage     int    // fixed/level/OHKO/super-fang damage, pre-pipeline
	FailReason string
	Redirect   string // Metronome/Mirror Move picked move name
	HitCount   int    // multi-hit count (2-5)
	DrainRatio float64
}

// --- Static move tables, grounded on original_source/engine/move_effects.py ---

var fixedDamageMoves = map[string]int{
	"Dragon-Rage": 40,
	"Sonic-Boom":  20,
}

var levelDamageMoves = map[string]bool{"Night-Shade": true, "Seismic-Toss": true}
var ohkoMoves = map[string]bool{"Guillotine": true, "Horn-Drill": true, "Fissure": true}
var hpDrainMoves = map[string]bool{"Absorb": true, "Mega-Drain": true, "Leech-Life": true}
var selfDestructMoves = map[string]bool{"Explosion": true, "Self-Destruct": true}
var crashDamageMoves = map[string]bool{"High-Jump-Kick": true, "Jump-Kick": true}
var multiTurnMoves = map[string]bool{"Thrash": true, "Petal-Dance": true}
var trappingMoves = map[string]bool{"Wrap": true, "Bind": true, "Clamp": true, "Fire-Spin": true}
var multiHitMoves = map[string]bool{
	"Fury-Attack": true, "Fury-Swipes": true, "Pin-Missile": true,
	"Spike-Cannon": true, "Barrage": true, "Comet-Punch": true, "Double-Slap": true,
}
var doubleHitMoves = map[string]bool{"Double-Kick": true, "Bonemerang": true}
var noOpMoves = map[string]bool{"Splash": true, "Teleport": true, "Roar": true, "Whirlwind": true}
var recoveryMoves = map[string]float64{"Recover": 0.5, "Soft-Boiled": 0.5}

type twoTurnSpec struct {
	Recharge          bool
	SemiInvulnerable  bool
	DefenseBoost      bool
}

var twoTurnMoves = map[string]twoTurnSpec{
	"Hyper-Beam":  {Recharge: true},
	"Solar-Beam":  {},
	"Dig":         {SemiInvulnerable: true},
	"Fly":         {SemiInvulnerable: true},
	"Skull-Bash":  {DefenseBoost: true},
	"Sky-Attack":  {},
	"Razor-Wind":  {},
}

// selfTargetMoves is the set the log validator checks for self-targeting
// (spec §4.8 invalid_self_target).
var selfTargetMoves = map[string]bool{
	"Agility": true, "Barrier": true, "Amnesia": true, "Reflect": true,
	"Light-Screen": true, "Recover": true, "Rest": true, "Soft-Boiled": true,
	"Substitute": true, "Swords-Dance": true, "Withdraw": true, "Harden": true,
	"Growth": true, "Meditate": true, "Minimize": true,
}

// MoveSource supplies the move pool Metronome picks from and resolves a
// move by name for Mirror Move's redirect. The catalog package implements
// it; tests can supply a literal slice/map.
type MoveSource interface {
	AllMoves() []Move
	ByName(name string) (Move, bool)
}

// Dispatch resolves a move's special handling, if any (spec §4.3). Moves
// absent from every table below resolve as OutcomeNormal: the caller runs
// the generic damage pipeline and status-chance/stat-change application.
//
// Dispatch only decides *what kind* of resolution applies and performs any
// non-damage bookkeeping (screens, Focus Energy, Substitute cost, Haze,
// Disable, Transform, Conversion, no-ops). The only HP it changes is the
// user's own: Recover/Soft-Boiled/Rest healing and the Substitute cost.
// Damage to a target never happens here — that is always apply.go's job,
// centralizing HP mutation + event emission for every damage path.
func Dispatch(ctx *Context, attacker, defender *Battler, move Move, moves MoveSource) Outcome {
	name := move.Name

	if amt, ok := fixedDamageMoves[name]; ok {
		return Outcome{Kind: OutcomeFixedDamage, Damage: amt}
	}
	if levelDamageMoves[name] {
		return Outcome{Kind: OutcomeLevelDamage, Damage: attacker.Level}
	}
	if ohkoMoves[name] {
		if attacker.Stats.Spe < defender.Stats.Spe {
			return Outcome{Kind: OutcomeOHKOFail}
		}
		return Outcome{Kind: OutcomeOHKO, Damage: defender.CurrentHP}
	}
	if name == "Super-Fang" {
		dmg := defender.CurrentHP / 2
		if dmg < 1 {
			dmg = 1
		}
		return Outcome{Kind: OutcomeSuperFang, Damage: dmg}
	}
	if pct, ok := recoveryMoves[name]; ok {
		return dispatchRecovery(ctx, attacker, pct)
	}
	if name == "Rest" {
		return dispatchRest(ctx, attacker)
	}
	if name == "Haze" {
		return dispatchHaze(ctx, attacker, defender)
	}
	if name == "Leech-Seed" {
		return dispatchLeechSeed(ctx, defender)
	}
	if screen, ok := screenKindFor(name); ok {
		return dispatchScreen(ctx, attacker, screen)
	}
	if name == "Focus-Energy" {
		return dispatchFocusEnergy(ctx, attacker)
	}
	if name == "Substitute" {
		return dispatchSubstitute(ctx, attacker)
	}
	if name == "Counter" {
		return dispatchCounter(attacker)
	}
	if name == "Disable" {
		return dispatchDisable(ctx, defender)
	}
	if name == "Metronome" {
		return dispatchMetronome(ctx, moves)
	}
	if name == "Mirror-Move" {
		return dispatchMirrorMove(defender)
	}
	if name == "Transform" {
		return dispatchTransform(ctx, attacker, defender)
	}
	if name == "Conversion" {
		return dispatchConversion(ctx, attacker)
	}
	if noOpMoves[name] {
		return Outcome{Kind: OutcomeNoOp}
	}
	if hpDrainMoves[name] {
		return Outcome{Kind: OutcomeDrain, DrainRatio: 0.5}
	}
	if name == "Dream-Eater" {
		if defender.Status != StatusSleep {
			return Outcome{Kind: OutcomeFail, FailReason: "target_not_asleep"}
		}
		return Outcome{Kind: OutcomeDrain, DrainRatio: 0.5}
	}
	if selfDestructMoves[name] {
		return Outcome{Kind: OutcomeSelfDestruct}
	}
	if crashDamageMoves[name] {
		return Outcome{Kind: OutcomeCrashOnMiss}
	}
	if spec, ok := twoTurnMoves[name]; ok {
		return dispatchTwoTurn(attacker, name, spec)
	}
	if multiTurnMoves[name] {
		return Outcome{Kind: OutcomeMultiTurnLock}
	}
	if name == "Rage" {
		return Outcome{Kind: OutcomeRageStart}
	}
	if trappingMoves[name] {
		return Outcome{Kind: OutcomeTrapStart}
	}
	if multiHitMoves[name] {
		return Outcome{Kind: OutcomeMultiHit, HitCount: rollMultiHitCount(ctx)}
	}
	if doubleHitMoves[name] {
		return Outcome{Kind: OutcomeDoubleHit, HitCount: 2}
	}
	if name == "Twineedle" {
		return Outcome{Kind: OutcomeTwineedle, HitCount: 2}
	}

	return Outcome{Kind: OutcomeNormal}
}

// rollMultiHitCount implements the Gen-1 2-5 hit distribution: 2 hits on a
// 1-8 roll of 1-3, 3 hits on 4-6, 4 hits on 7, 5 hits on 8 (3/8, 3/8, 1/8,
// 1/8), grounded on original_source/engine/move_effects.py.
func rollMultiHitCount(ctx *Context) int {
	roll := ctx.RNG.Intn(8) + 1
	switch {
	case roll <= 3:
		return 2
	case roll <= 6:
		return 3
	case roll == 7:
		return 4
	default:
		return 5
	}
}

func screenKindFor(name string) (events.ScreenKind, bool) {
	switch name {
	case "Reflect":
		return events.ScreenReflect, true
	case "Light-Screen":
		return events.ScreenLightScreen, true
	case "Mist":
		return events.ScreenMist, true
	}
	return "", false
}

func dispatchRecovery(ctx *Context, attacker *Battler, pct float64) Outcome {
	if attacker.CurrentHP >= attacker.MaxHP {
		return Outcome{Kind: OutcomeFail, FailReason: "hp_full"}
	}
	amount := int(float64(attacker.MaxHP) * pct)
	healed := amount
	if attacker.CurrentHP+healed > attacker.MaxHP {
		healed = attacker.MaxHP - attacker.CurrentHP
	}
	attacker.CurrentHP += healed
	ctx.emit(events.PokemonHealed{
		Base: ctx.turn(), Pokemon: attacker.Name, Side: string(attacker.Side),
		Amount: healed, HP: attacker.CurrentHP, MaxHP: attacker.MaxHP, Source: "recovery_move",
	})
	return Outcome{Kind: OutcomeRecoveryHealed, Damage: healed}
}

func dispatchRest(ctx *Context, attacker *Battler) Outcome {
	if attacker.CurrentHP >= attacker.MaxHP {
		return Outcome{Kind: OutcomeFail, FailReason: "hp_full"}
	}
	healed := attacker.MaxHP - attacker.CurrentHP
	attacker.CurrentHP = attacker.MaxHP
	attacker.Status = StatusSleep
	attacker.SleepCounter = 2
	ctx.emit(events.PokemonHealed{
		Base: ctx.turn(), Pokemon: attacker.Name, Side: string(attacker.Side),
		Amount: healed, HP: attacker.CurrentHP, MaxHP: attacker.MaxHP, Source: "rest",
	})
	ctx.emit(events.StatusApplied{Base: ctx.turn(), Pokemon: attacker.Name, Side: string(attacker.Side), Status: string(StatusSleep), Source: "rest"})
	return Outcome{Kind: OutcomeRecoveryFull}
}

func dispatchHaze(ctx *Context, a, d *Battler) Outcome {
	a.Stages.Reset()
	d.Stages.Reset()
	a.Volatiles.ConfusionTurns = 0
	d.Volatiles.ConfusionTurns = 0
	a.Volatiles.IsSeeded = false
	d.Volatiles.IsSeeded = false
	a.Volatiles.FocusEnergy = false
	d.Volatiles.FocusEnergy = false
	ctx.emit(events.Info{Base: ctx.turn(), Message: "All stat changes were eliminated."})
	return Outcome{Kind: OutcomeHaze}
}

func dispatchLeechSeed(ctx *Context, defender *Battler) Outcome {
	for _, t := range defender.Types {
		if t == Grass {
			return Outcome{Kind: OutcomeFail, FailReason: "immune_type"}
		}
	}
	if defender.Volatiles.IsSeeded {
		return Outcome{Kind: OutcomeFail, FailReason: "already_seeded"}
	}
	defender.Volatiles.IsSeeded = true
	ctx.emit(events.LeechSeedPlanted{Base: ctx.turn(), Pokemon: defender.Name, Side: string(defender.Side)})
	return Outcome{Kind: OutcomeLeechSeedPlanted}
}

func dispatchScreen(ctx *Context, attacker *Battler, screen events.ScreenKind) Outcome {
	switch screen {
	case events.ScreenReflect:
		if attacker.Volatiles.HasReflect {
			return Outcome{Kind: OutcomeFail, FailReason: "already_active"}
		}
		attacker.Volatiles.HasReflect = true
		attacker.Volatiles.ReflectTurns = 5
	case events.ScreenLightScreen:
		if attacker.Volatiles.HasLightScreen {
			return Outcome{Kind: OutcomeFail, FailReason: "already_active"}
		}
		attacker.Volatiles.HasLightScreen = true
		attacker.Volatiles.LightScreenTurns = 5
	case events.ScreenMist:
		if attacker.Volatiles.HasMist {
			return Outcome{Kind: OutcomeFail, FailReason: "already_active"}
		}
		attacker.Volatiles.HasMist = true
		attacker.Volatiles.MistTurns = 5
	}
	ctx.emit(events.ScreenActivated{Base: ctx.turn(), Pokemon: attacker.Name, Side: string(attacker.Side), Screen: screen})
	return Outcome{Kind: OutcomeScreenActivated}
}

func dispatchFocusEnergy(ctx *Context, attacker *Battler) Outcome {
	if attacker.Volatiles.FocusEnergy {
		return Outcome{Kind: OutcomeFail, FailReason: "already_active"}
	}
	attacker.Volatiles.FocusEnergy = true
	return Outcome{Kind: OutcomeFocusEnergy}
}

func dispatchSubstitute(ctx *Context, attacker *Battler) Outcome {
	if attacker.Volatiles.SubstituteHP > 0 {
		return Outcome{Kind: OutcomeFail, FailReason: "already_active"}
	}
	cost := attacker.MaxHP / 4
	if attacker.CurrentHP <= cost {
		return Outcome{Kind: OutcomeFail, FailReason: "insufficient_hp"}
	}
	attacker.CurrentHP -= cost
	attacker.Volatiles.SubstituteHP = cost + 1
	ctx.emit(events.SubstituteCreated{Base: ctx.turn(), Pokemon: attacker.Name, Side: string(attacker.Side), HPCost: cost})
	return Outcome{Kind: OutcomeSubstituteCreated}
}

func dispatchCounter(attacker *Battler) Outcome {
	if !attacker.Volatiles.LastDamagePhysical || attacker.Volatiles.LastDamageTaken == 0 {
		return Outcome{Kind: OutcomeFail, FailReason: "no_target_damage"}
	}
	return Outcome{Kind: OutcomeCounter, Damage: attacker.Volatiles.LastDamageTaken * 2}
}

func dispatchDisable(ctx *Context, defender *Battler) Outcome {
	if defender.Volatiles.DisabledMove != "" {
		return Outcome{Kind: OutcomeFail, FailReason: "already_disabled"}
	}
	var candidates []int
	for i, m := range defender.Moves {
		if m.PP > 0 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return Outcome{Kind: OutcomeFail, FailReason: "no_pp_moves"}
	}
	pick := defender.Moves[candidates[ctx.RNG.Intn(len(candidates))]]
	turns := ctx.RNG.Intn(8) + 1 // 1-8
	defender.Volatiles.DisabledMove = pick.Name
	defender.Volatiles.DisableTurns = turns
	ctx.emit(events.MoveDisabled{Base: ctx.turn(), Pokemon: defender.Name, Side: string(defender.Side), Move: pick.Name, Turns: turns})
	return Outcome{Kind: OutcomeDisable}
}

func dispatchMetronome(ctx *Context, moves MoveSource) Outcome {
	if moves == nil {
		return Outcome{Kind: OutcomeFail, FailReason: "no_moves_available"}
	}
	pool := moves.AllMoves()
	var valid []Move
	for _, m := range pool {
		if m.Name == "Metronome" || m.Name == "Mirror-Move" || m.Name == "Struggle" {
			continue
		}
		valid = append(valid, m)
	}
	if len(valid) == 0 {
		return Outcome{Kind: OutcomeFail, FailReason: "no_valid_moves"}
	}
	pick := valid[ctx.RNG.Intn(len(valid))]
	return Outcome{Kind: OutcomeMetronome, Redirect: pick.Name}
}

func dispatchMirrorMove(defender *Battler) Outcome {
	if defender.Volatiles.LastMoveUsed == "" {
		return Outcome{Kind: OutcomeFail, FailReason: "no_last_move"}
	}
	return Outcome{Kind: OutcomeMirrorMove, Redirect: defender.Volatiles.LastMoveUsed}
}

func dispatchTransform(ctx *Context, attacker, defender *Battler) Outcome {
	attacker.Volatiles.OriginalForm = &Form{
		Types:     append([]Type(nil), attacker.Types...),
		BaseStats: attacker.Stats,
		Moves:     append([]Move(nil), attacker.Moves...),
	}
	attacker.Stats.Atk = defender.Stats.Atk
	attacker.Stats.Def = defender.Stats.Def
	attacker.Stats.Spc = defender.Stats.Spc
	attacker.Stats.Spe = defender.Stats.Spe
	attacker.Types = append([]Type(nil), defender.Types...)
	for stat, v := range defender.Stages.values {
		attacker.Stages.values[stat] = v
	}
	attacker.Moves = make([]Move, len(defender.Moves))
	for i, m := range defender.Moves {
		copied := m
		copied.PP = 5
		copied.MaxPP = 5
		attacker.Moves[i] = copied
	}
	attacker.Volatiles.IsTransformed = true
	ctx.emit(events.Info{Base: ctx.turn(), Message: attacker.Name + " transformed into " + defender.Name + "!"})
	return Outcome{Kind: OutcomeTransform}
}

func dispatchConversion(ctx *Context, attacker *Battler) Outcome {
	if len(attacker.Moves) == 0 {
		return Outcome{Kind: OutcomeFail, FailReason: "no_moves"}
	}
	newType := attacker.Moves[0].Type
	attacker.Types = []Type{newType}
	ctx.emit(events.Info{Base: ctx.turn(), Message: attacker.Name + " changed type to " + string(newType) + "!"})
	return Outcome{Kind: OutcomeConversion}
}

func dispatchTwoTurn(attacker *Battler, name string, spec twoTurnSpec) Outcome {
	if attacker.Volatiles.IsCharging && attacker.Volatiles.ChargingMove == name {
		// Turn 2: release. Caller clears charging state after resolving.
		return Outcome{Kind: OutcomeChargeRelease}
	}
	if spec.Recharge {
		// Hyper Beam resolves damage now, then must recharge next turn.
		return Outcome{Kind: OutcomeRechargeAttack}
	}
	return Outcome{Kind: OutcomeChargeStart}
}
