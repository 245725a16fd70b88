package battle

import "github.com/opd-ai/pokebattle-sim/lib/events"

// ApplyOutcome reports what absorbed a hit, for callers that need to know
// whether a secondary status roll should even be attempted (spec §4.4:
// substitute blocks secondary status from the hit it absorbs).
type ApplyOutcome struct {
	Missed            bool // semi-invulnerable dodge
	AbsorbedBySub     bool
	SubstituteBroke   bool
	ActualDamage      int // HP actually removed from CurrentHP (0 if absorbed by sub)
}

// semiInvulnerableExceptions lists moves that still connect against a
// Dig/Fly user (none in the base dispatch table below; the hook exists for
// catalog-declared exceptions such as Earthquake-vs-Dig in later
// generations, intentionally unused at Gen 1).
var semiInvulnerableExceptions = map[string]bool{}

// ApplyDamage resolves spec §4.4 end to end: semi-invulnerability, then
// substitute absorption, then screen reduction, then the HP clamp, then the
// Counter/Rage bookkeeping that must ride along with every hit.
func ApplyDamage(ctx *Context, attacker, target *Battler, move Move, dr DamageResult) ApplyOutcome {
	if target.Volatiles.IsSemiInvulnerable && !semiInvulnerableExceptions[move.Name] {
		reason := events.MissUnderground
		if target.Volatiles.ChargingMove == "Fly" {
			reason = events.MissFlying
		}
		ctx.emit(events.MoveMissed{
			Base: ctx.turn(), Attacker: attacker.Name, AttackerSide: string(attacker.Side),
			Move: move.Name, Defender: target.Name, DefenderSide: string(target.Side),
			Reason: reason,
		})
		return ApplyOutcome{Missed: true}
	}

	amount := dr.Damage
	isPhysical := move.EffectiveCategory() == CategoryPhysical

	if target.Volatiles.SubstituteHP > 0 {
		sub := target.Volatiles.SubstituteHP
		absorbed := amount
		if absorbed > sub {
			absorbed = sub
		}
		target.Volatiles.SubstituteHP -= absorbed
		broke := target.Volatiles.SubstituteHP <= 0
		if broke {
			target.Volatiles.SubstituteHP = 0
			ctx.emit(events.SubstituteBroke{Base: ctx.turn(), Pokemon: target.Name, Side: string(target.Side)})
		}
		recordLastDamage(target, amount, isPhysical, move.Type)
		applyRage(ctx, target, amount)
		return ApplyOutcome{AbsorbedBySub: true, SubstituteBroke: broke}
	}

	// Screen reduction: non-crit only, ignored entirely on crits (spec §9).
	if !dr.Crit {
		if isPhysical && target.Volatiles.HasReflect {
			amount /= 2
			ctx.emit(events.ScreenReducedDamage{Base: ctx.turn(), Pokemon: string(target.Side), Screen: events.ScreenReflect})
		} else if !isPhysical && target.Volatiles.HasLightScreen {
			amount /= 2
			ctx.emit(events.ScreenReducedDamage{Base: ctx.turn(), Pokemon: string(target.Side), Screen: events.ScreenLightScreen})
		}
	}

	if amount > target.CurrentHP {
		amount = target.CurrentHP
	}
	target.CurrentHP -= amount

	recordLastDamage(target, amount, isPhysical, move.Type)
	applyRage(ctx, target, amount)

	return ApplyOutcome{ActualDamage: amount}
}

func recordLastDamage(target *Battler, amount int, isPhysical bool, moveType Type) {
	target.Volatiles.LastDamageTaken = amount
	target.Volatiles.LastDamagePhysical = isPhysical
	target.Volatiles.LastDamageMoveType = moveType
}

// applyRage attaches spec §9's Rage bookkeeping to the apply_damage path
// (not to move execution): if the target that just took damage is raging,
// its own Attack stage goes up.
func applyRage(ctx *Context, target *Battler, amount int) {
	if !target.Volatiles.IsRaging || amount <= 0 || !target.IsAlive() {
		return
	}
	actual, atLimit := target.Stages.Modify(StatAtk, 1)
	if actual != 0 {
		ctx.emit(events.RageIncreased{Base: ctx.turn(), Pokemon: target.Name, Side: string(target.Side)})
		ctx.emit(events.StatChanged{
			Base: ctx.turn(), Pokemon: target.Name, Side: string(target.Side),
			Stat: string(StatAtk), Stages: actual, NewStage: target.Stages.Get(StatAtk), Source: "rage",
		})
	}
	if atLimit {
		ctx.emit(events.StatLimitReached{Base: ctx.turn(), Pokemon: target.Name, Side: string(target.Side), Stat: string(StatAtk), AtMax: true})
	}
}
