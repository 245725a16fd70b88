package battle

// stageMult converts a clamped stat stage into the Gen-1 rational
// multiplier: non-negative stages scale up by (2+s)/2, negative stages
// scale down by 2/(2-s) (spec §4.1 step 2).
func stageMult(stage int) float64 {
	if stage >= 0 {
		return float64(2+stage) / 2.0
	}
	return 2.0 / float64(2-stage)
}

// attackStat returns the attacker's effective Attack or Special stat
// (selected by isPhysical) with its stage multiplier applied.
func attackStat(b *Battler, isPhysical bool) float64 {
	if isPhysical {
		return float64(b.Stats.Atk) * stageMult(b.Stages.Get(StatAtk))
	}
	return float64(b.Stats.Spc) * stageMult(b.Stages.Get(StatSpc))
}

// defenseStat returns the defender's effective Defense or Special stat
// (selected by isPhysical) with its stage multiplier applied.
func defenseStat(b *Battler, isPhysical bool) float64 {
	if isPhysical {
		return float64(b.Stats.Def) * stageMult(b.Stages.Get(StatDef))
	}
	return float64(b.Stats.Spc) * stageMult(b.Stages.Get(StatSpc))
}

// effectiveSpeed applies the Spe stage multiplier and the Gen-1 paralysis
// speed penalty (spec §4.6 step 1).
func effectiveSpeed(b *Battler, cfg EngineConfig) float64 {
	speed := float64(b.Stats.Spe) * stageMult(b.Stages.Get(StatSpe))
	if b.Status == StatusParalysis {
		speed *= cfg.ParalysisSpeedFactor
	}
	return speed
}

// accuracyMultiplier applies the accuracy/evasion stage difference between
// attacker and defender (spec §4.2).
func accuracyMultiplier(attacker, defender *Battler) float64 {
	diff := attacker.Stages.Get(StatAccuracy) - defender.Stages.Get(StatEvasion)
	if diff > 6 {
		diff = 6
	}
	if diff < -6 {
		diff = -6
	}
	return stageMult(diff)
}
