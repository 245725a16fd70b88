package battle

import "testing"

func newDispatchPair() (*Battler, *Battler) {
	a := newTestBattler("Gengar", []Type{Ghost, Poison}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 120}, P1)
	d := newTestBattler("Snorlax", []Type{Normal}, BaseStats{HP: 300, Atk: 100, Def: 100, Spc: 100, Spe: 30}, P2)
	return a, d
}

func TestDispatch_FixedDamageMoveIgnoresPower(t *testing.T) {
	a, d := newDispatchPair()
	ctx := newTestContextWithRNG(a, d, &fakeRNG{})
	out := Dispatch(ctx, a, d, Move{Name: "Dragon-Rage"}, nil)
	if out.Kind != OutcomeFixedDamage || out.Damage != 40 {
		t.Errorf("Dragon-Rage must always deal fixed 40 damage, got %+v", out)
	}
}

func TestDispatch_LevelDamageMoveUsesAttackerLevel(t *testing.T) {
	a, d := newDispatchPair()
	a.Level = 73
	ctx := newTestContextWithRNG(a, d, &fakeRNG{})
	out := Dispatch(ctx, a, d, Move{Name: "Seismic-Toss"}, nil)
	if out.Kind != OutcomeLevelDamage || out.Damage != 73 {
		t.Errorf("Seismic-Toss must deal damage equal to the attacker's level, got %+v", out)
	}
}

func TestDispatch_OHKOFailsWhenAttackerSlower(t *testing.T) {
	a, d := newDispatchPair()
	a.Stats.Spe = 10
	d.Stats.Spe = 200
	ctx := newTestContextWithRNG(a, d, &fakeRNG{})
	out := Dispatch(ctx, a, d, Move{Name: "Horn-Drill"}, nil)
	if out.Kind != OutcomeOHKOFail {
		t.Errorf("an OHKO move must fail when the attacker is slower than the defender, got %+v", out)
	}
}

func TestDispatch_OHKOSucceedsDealsDefenderFullHP(t *testing.T) {
	a, d := newDispatchPair()
	a.Stats.Spe = 200
	d.Stats.Spe = 10
	d.CurrentHP = 137
	ctx := newTestContextWithRNG(a, d, &fakeRNG{})
	out := Dispatch(ctx, a, d, Move{Name: "Fissure"}, nil)
	if out.Kind != OutcomeOHKO || out.Damage != 137 {
		t.Errorf("a successful OHKO must deal damage equal to the defender's current HP, got %+v", out)
	}
}

func TestDispatch_SuperFangHalvesDefenderHPFloorOne(t *testing.T) {
	a, d := newDispatchPair()
	d.CurrentHP = 1
	ctx := newTestContextWithRNG(a, d, &fakeRNG{})
	out := Dispatch(ctx, a, d, Move{Name: "Super-Fang"}, nil)
	if out.Kind != OutcomeSuperFang || out.Damage != 1 {
		t.Errorf("Super-Fang against 1 HP must floor to 1 damage, got %+v", out)
	}
}

func TestDispatch_CounterFailsWithNoPriorPhysicalDamage(t *testing.T) {
	a, d := newDispatchPair()
	ctx := newTestContextWithRNG(a, d, &fakeRNG{})
	out := Dispatch(ctx, a, d, Move{Name: "Counter"}, nil)
	if out.Kind != OutcomeFail || out.FailReason != "no_target_damage" {
		t.Errorf("Counter with no recorded physical damage must fail, got %+v", out)
	}
}

func TestDispatch_CounterReturnsDoubleLastPhysicalDamage(t *testing.T) {
	a, d := newDispatchPair()
	a.Volatiles.LastDamagePhysical = true
	a.Volatiles.LastDamageTaken = 30
	ctx := newTestContextWithRNG(a, d, &fakeRNG{})
	out := Dispatch(ctx, a, d, Move{Name: "Counter"}, nil)
	if out.Kind != OutcomeCounter || out.Damage != 60 {
		t.Errorf("Counter must deal exactly double the last recorded physical damage, got %+v", out)
	}
}

func TestDispatch_SubstituteFailsWhenHPTooLow(t *testing.T) {
	a, d := newDispatchPair()
	a.CurrentHP = 10 // cost = MaxHP/4 = 25, CurrentHP <= cost
	ctx := newTestContextWithRNG(a, d, &fakeRNG{})
	out := Dispatch(ctx, a, d, Move{Name: "Substitute"}, nil)
	if out.Kind != OutcomeFail || out.FailReason != "insufficient_hp" {
		t.Errorf("Substitute must fail when HP is at or below the 1/4 cost, got %+v", out)
	}
}

func TestDispatch_SubstituteCostsQuarterMaxHP(t *testing.T) {
	a, d := newDispatchPair() // MaxHP 100
	ctx := newTestContextWithRNG(a, d, &fakeRNG{})
	before := a.CurrentHP
	out := Dispatch(ctx, a, d, Move{Name: "Substitute"}, nil)
	if out.Kind != OutcomeSubstituteCreated {
		t.Fatalf("expected a substitute to be created, got %+v", out)
	}
	if before-a.CurrentHP != 25 {
		t.Errorf("Substitute must cost 1/4 max HP (25), actual cost %d", before-a.CurrentHP)
	}
	if a.Volatiles.SubstituteHP != 26 {
		t.Errorf("substitute HP must be cost+1 (26), got %d", a.Volatiles.SubstituteHP)
	}
}

func TestDispatch_SelfDestructMovesAreFlaggedRegardlessOfDefenderImmunity(t *testing.T) {
	a, d := newDispatchPair()
	d.Types = []Type{Ghost}
	ctx := newTestContextWithRNG(a, d, &fakeRNG{})
	out := Dispatch(ctx, a, d, Move{Name: "Explosion", Type: Normal}, nil)
	if out.Kind != OutcomeSelfDestruct {
		t.Errorf("Explosion must always dispatch as OutcomeSelfDestruct regardless of type matchup, got %+v", out)
	}
}

func TestDispatch_MultiHitRollsTwoToFiveHits(t *testing.T) {
	a, d := newDispatchPair()
	cases := []struct {
		roll int
		want int
	}{{0, 2}, {2, 2}, {3, 3}, {5, 3}, {6, 4}, {7, 5}}
	for _, c := range cases {
		ctx := newTestContextWithRNG(a, d, &fakeRNG{ints: []int{c.roll}})
		out := Dispatch(ctx, a, d, Move{Name: "Fury-Attack"}, nil)
		if out.Kind != OutcomeMultiHit || out.HitCount != c.want {
			t.Errorf("roll index %d: expected %d hits, got %+v", c.roll, c.want, out)
		}
	}
}

func TestDispatch_RecoveryFailsAtFullHP(t *testing.T) {
	a, d := newDispatchPair()
	ctx := newTestContextWithRNG(a, d, &fakeRNG{})
	out := Dispatch(ctx, a, d, Move{Name: "Recover"}, nil)
	if out.Kind != OutcomeFail || out.FailReason != "hp_full" {
		t.Errorf("Recover at full HP must fail, got %+v", out)
	}
}

func TestDispatch_RecoveryHealsHalfMaxHP(t *testing.T) {
	a, d := newDispatchPair()
	a.CurrentHP = 10
	ctx := newTestContextWithRNG(a, d, &fakeRNG{})
	out := Dispatch(ctx, a, d, Move{Name: "Recover"}, nil)
	if out.Kind != OutcomeRecoveryHealed || out.Damage != 50 {
		t.Errorf("Recover must heal half of max HP (50), got %+v", out)
	}
	if a.CurrentHP != 60 {
		t.Errorf("expected CurrentHP 60 after healing, got %d", a.CurrentHP)
	}
}

func TestDispatch_LeechSeedFailsAgainstGrassType(t *testing.T) {
	a, d := newDispatchPair()
	d.Types = []Type{Grass}
	ctx := newTestContextWithRNG(a, d, &fakeRNG{})
	out := Dispatch(ctx, a, d, Move{Name: "Leech-Seed"}, nil)
	if out.Kind != OutcomeFail || out.FailReason != "immune_type" {
		t.Errorf("Leech Seed must fail against a Grass-type target, got %+v", out)
	}
}

func TestDispatch_TwoTurnHyperBeamSignalsRecharge(t *testing.T) {
	a, d := newDispatchPair()
	ctx := newTestContextWithRNG(a, d, &fakeRNG{})
	out := Dispatch(ctx, a, d, Move{Name: "Hyper-Beam"}, nil)
	if out.Kind != OutcomeRechargeAttack {
		t.Errorf("Hyper-Beam must dispatch as OutcomeRechargeAttack on its attacking turn, got %+v", out)
	}
}

func TestDispatch_TwoTurnDigChargesThenReleases(t *testing.T) {
	a, d := newDispatchPair()
	ctx := newTestContextWithRNG(a, d, &fakeRNG{})
	start := Dispatch(ctx, a, d, Move{Name: "Dig"}, nil)
	if start.Kind != OutcomeChargeStart {
		t.Fatalf("Dig's first turn must be OutcomeChargeStart, got %+v", start)
	}
	a.Volatiles.IsCharging = true
	a.Volatiles.ChargingMove = "Dig"
	release := Dispatch(ctx, a, d, Move{Name: "Dig"}, nil)
	if release.Kind != OutcomeChargeRelease {
		t.Errorf("Dig's second turn while charging must be OutcomeChargeRelease, got %+v", release)
	}
}

func TestDispatch_UnlistedMoveIsOutcomeNormal(t *testing.T) {
	a, d := newDispatchPair()
	ctx := newTestContextWithRNG(a, d, &fakeRNG{})
	out := Dispatch(ctx, a, d, Move{Name: "Tackle"}, nil)
	if out.Kind != OutcomeNormal {
		t.Errorf("a move absent from every special table must resolve as OutcomeNormal, got %+v", out)
	}
}
