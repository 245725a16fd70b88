package battle

// DamageResult is the pure output of the damage pipeline: everything the
// caller needs to apply the hit and to populate DAMAGE_DEALT's audit
// breakdown.
type DamageResult struct {
	Damage        int
	Crit          bool
	Effectiveness float64
	STAB          float64
	AttackStat    int
	DefenseStat   int
	RandomRoll    int
	BurnModifier  float64
}

// ComputeDamage is the pure damage pipeline of spec §4.1: (attacker,
// defender, move, rng) -> (damage, crit, effectiveness). It has no side
// effects on either Battler; the caller (move-effect dispatcher / apply.go)
// is responsible for mutating HP.
func ComputeDamage(ctx *Context, attacker, defender *Battler, move Move) DamageResult {
	if move.EffectiveCategory() == CategoryStatus {
		return DamageResult{Damage: 0, Crit: false, Effectiveness: 1}
	}

	cfg := ctx.State.Config
	isPhysical := move.EffectiveCategory() == CategoryPhysical

	// 1. Critical hit: base_speed/512, x4 under Focus Energy (spec's
	// chosen, intentionally-not-buggy behavior — see spec §9).
	critChance := float64(attacker.SpeciesBaseStats.Spe) / 512.0
	if attacker.Volatiles.FocusEnergy {
		critChance *= cfg.FocusEnergyCritBoost
	}
	if critChance > 1 {
		critChance = 1
	}
	crit := ctx.RNG.Float64() < critChance

	// 2. Stat selection with stage modifiers.
	a := attackStat(attacker, isPhysical)
	d := defenseStat(defender, isPhysical)

	// 3. Crit doubles attack after stage modifiers; screens are ignored on
	// crits (applied later, in apply.go, by skipping screen reduction when
	// the hit is a crit).
	if crit {
		a *= cfg.CritMultiplier
	}

	// 4. Base damage.
	levelComponent := 2*float64(attacker.Level)/5.0 + 2
	base := (levelComponent*float64(move.Power)*a/d)/50.0 + 2

	// 5. STAB.
	stab := 1.0
	for _, t := range attacker.Types {
		if t == move.Type {
			stab = cfg.STABMultiplier
			break
		}
	}

	// 6. Type effectiveness.
	eff := Effectiveness(move.Type, defender.Types)

	// 7. Random factor.
	roll := ctx.RNG.Intn(cfg.MaxRandomFactor-cfg.MinRandomFactor+1) + cfg.MinRandomFactor
	randomFactor := float64(roll) / float64(cfg.RandomDivisor)

	damage := base * stab * eff * randomFactor

	// 8. Burn modifier (physical moves only).
	burnMod := 1.0
	if attacker.Status == StatusBurn && isPhysical {
		burnMod = cfg.BurnAttackMultiplier
		damage *= burnMod
	}

	final := int(damage) // truncate toward zero

	// 9. Floor: 0 only on immunity or status move; at least 1 otherwise.
	if eff == 0 {
		final = 0
	} else if final < 1 {
		final = 1
	}

	return DamageResult{
		Damage:        final,
		Crit:          crit,
		Effectiveness: eff,
		STAB:          stab,
		AttackStat:    int(a),
		DefenseStat:   int(d),
		RandomRoll:    roll,
		BurnModifier:  burnMod,
	}
}
