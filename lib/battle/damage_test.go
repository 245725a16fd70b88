package battle

import "testing"

func TestComputeDamage_StatusMoveDealsZero(t *testing.T) {
	attacker := newTestBattler("Pikachu", []Type{Electric}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P1)
	defender := newTestBattler("Bulbasaur", []Type{Grass}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P2)
	ctx := newTestContextWithRNG(attacker, defender, &fakeRNG{})

	dr := ComputeDamage(ctx, attacker, defender, Move{Name: "Growl", Category: CategoryStatus})
	if dr.Damage != 0 || dr.Effectiveness != 1 {
		t.Fatalf("status move must deal 0 damage at neutral effectiveness, got %+v", dr)
	}
}

func TestComputeDamage_STABApplied(t *testing.T) {
	attacker := newTestBattler("Pikachu", []Type{Electric}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P1)
	defender := newTestBattler("Bulbasaur", []Type{Grass}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P2)
	move := Move{Name: "Thunderbolt", Type: Electric, Category: CategorySpecial, Power: 90, Accuracy: 100}

	noCritNoRandomVariance := &fakeRNG{floats: []float64{0.999}, ints: []int{255 - 217}}
	ctx := newTestContextWithRNG(attacker, defender, noCritNoRandomVariance)
	dr := ComputeDamage(ctx, attacker, defender, move)

	if dr.STAB != ctx.State.Config.STABMultiplier {
		t.Errorf("expected STAB multiplier %v for same-type move, got %v", ctx.State.Config.STABMultiplier, dr.STAB)
	}
	if dr.Crit {
		t.Fatal("high float roll must not crit")
	}
	if dr.Damage <= 0 {
		t.Errorf("expected positive damage, got %d", dr.Damage)
	}
}

func TestComputeDamage_NoSTABWithoutTypeMatch(t *testing.T) {
	attacker := newTestBattler("Machamp", []Type{Fighting}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P1)
	defender := newTestBattler("Bulbasaur", []Type{Grass}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P2)
	move := Move{Name: "Rock-Slide", Type: Rock, Category: CategoryPhysical, Power: 75, Accuracy: 100}

	ctx := newTestContextWithRNG(attacker, defender, &fakeRNG{floats: []float64{0.999}, ints: []int{0}})
	dr := ComputeDamage(ctx, attacker, defender, move)
	if dr.STAB != 1.0 {
		t.Errorf("expected no STAB bonus for a move type the attacker doesn't share, got %v", dr.STAB)
	}
}

func TestComputeDamage_CritDoublesAttackStat(t *testing.T) {
	attacker := newTestBattler("Persian", []Type{Normal}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P1)
	defender := newTestBattler("Bulbasaur", []Type{Grass}, BaseStats{HP: 200, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P2)
	move := Move{Name: "Slash", Type: Normal, Category: CategoryPhysical, Power: 70, Accuracy: 100}

	always := &fakeRNG{floats: []float64{0.0}, ints: []int{0}}
	ctxCrit := newTestContextWithRNG(attacker, defender, always)
	drCrit := ComputeDamage(ctxCrit, attacker, defender, move)
	if !drCrit.Crit {
		t.Fatal("a zero float roll must always crit")
	}
	if drCrit.AttackStat != attacker.Stats.Atk*int(ctxCrit.State.Config.CritMultiplier) {
		t.Errorf("crit must multiply the attack stat by CritMultiplier, got %d", drCrit.AttackStat)
	}
}

func TestComputeDamage_ImmuneTypeDealsZeroRegardlessOfRandomFactor(t *testing.T) {
	attacker := newTestBattler("Gengar", []Type{Ghost, Poison}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P1)
	defender := newTestBattler("Alakazam", []Type{Psychic}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P2)
	move := Move{Name: "Lick", Type: Ghost, Category: CategoryPhysical, Power: 20, Accuracy: 100}

	ctx := newTestContextWithRNG(attacker, defender, &fakeRNG{floats: []float64{0.99}, ints: []int{38}})
	dr := ComputeDamage(ctx, attacker, defender, move)
	if dr.Effectiveness != 0 || dr.Damage != 0 {
		t.Errorf("Ghost move against Psychic must be immune (asymmetric with Psychic-vs-Ghost), got eff=%v damage=%d", dr.Effectiveness, dr.Damage)
	}
}

func TestComputeDamage_PsychicVsGhostIsNeutralNotImmune(t *testing.T) {
	// Spec §9's deliberately-preserved Gen-1 quirk: Psychic defenders are
	// immune to Ghost-type moves, but a Psychic-type move is only neutral
	// (not immune) against a Ghost-typed defender — the chart is
	// intentionally asymmetric, not a typo. The defender is pure Ghost so
	// that a second type (Gengar's Poison is weak to Psychic) does not
	// change the multiplier.
	attacker := newTestBattler("Alakazam", []Type{Psychic}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P1)
	defender := newTestBattler("Gengar", []Type{Ghost}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P2)

	eff := Effectiveness(Psychic, defender.Types)
	if eff != 1 {
		t.Errorf("Psychic vs Ghost must be neutral (1x), got %v", eff)
	}
	_ = attacker
}

func TestComputeDamage_BurnHalvesPhysicalDamage(t *testing.T) {
	attacker := newTestBattler("Machamp", []Type{Fighting}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P1)
	attacker.Status = StatusBurn
	defender := newTestBattler("Snorlax", []Type{Normal}, BaseStats{HP: 200, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P2)
	move := Move{Name: "Karate-Chop", Type: Fighting, Category: CategoryPhysical, Power: 50, Accuracy: 100}

	ctx := newTestContextWithRNG(attacker, defender, &fakeRNG{floats: []float64{0.99}, ints: []int{38}})
	dr := ComputeDamage(ctx, attacker, defender, move)
	if dr.BurnModifier != ctx.State.Config.BurnAttackMultiplier {
		t.Errorf("expected burn modifier %v applied to physical damage, got %v", ctx.State.Config.BurnAttackMultiplier, dr.BurnModifier)
	}
}

func TestComputeDamage_NonImmuneDamageIsAtLeastOne(t *testing.T) {
	attacker := newTestBattler("Caterpie", []Type{Bug}, BaseStats{HP: 50, Atk: 1, Def: 1, Spc: 1, Spe: 1}, P1)
	defender := newTestBattler("Onix", []Type{Rock, Ground}, BaseStats{HP: 200, Atk: 100, Def: 200, Spc: 100, Spe: 50}, P2)
	move := Move{Name: "Tackle", Type: Normal, Category: CategoryPhysical, Power: 35, Accuracy: 100}

	ctx := newTestContextWithRNG(attacker, defender, &fakeRNG{floats: []float64{0.99}, ints: []int{0}})
	dr := ComputeDamage(ctx, attacker, defender, move)
	if dr.Effectiveness == 0 {
		t.Fatal("test setup should not be an immunity case")
	}
	if dr.Damage < 1 {
		t.Errorf("any non-immune hit must deal at least 1 damage, got %d", dr.Damage)
	}
}
