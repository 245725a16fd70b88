package battle

import "testing"

func TestCheckHit_ZeroAccuracyAlwaysHits(t *testing.T) {
	attacker := newTestBattler("A", []Type{Normal}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P1)
	defender := newTestBattler("B", []Type{Normal}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P2)
	ctx := newTestContextWithRNG(attacker, defender, &fakeRNG{ints: []int{99}}) // would be a miss at ordinary accuracy

	if !CheckHit(ctx, attacker, defender, Move{Name: "Swift", Accuracy: 0}) {
		t.Error("a 0-accuracy move must always hit")
	}
}

func TestCheckHit_RollAboveThresholdMisses(t *testing.T) {
	attacker := newTestBattler("A", []Type{Normal}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P1)
	defender := newTestBattler("B", []Type{Normal}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P2)
	// Intn(100) + 1: fakeRNG.Intn(100) returns 99 when asked for <100, so roll = 100.
	ctx := newTestContextWithRNG(attacker, defender, &fakeRNG{ints: []int{99}})

	if CheckHit(ctx, attacker, defender, Move{Name: "Hyper-Beam", Accuracy: 90}) {
		t.Error("a roll of 100 against 90 accuracy must miss")
	}
}

func TestCheckHit_RollAtOrBelowThresholdHits(t *testing.T) {
	attacker := newTestBattler("A", []Type{Normal}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P1)
	defender := newTestBattler("B", []Type{Normal}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P2)
	ctx := newTestContextWithRNG(attacker, defender, &fakeRNG{ints: []int{0}}) // roll = 1

	if !CheckHit(ctx, attacker, defender, Move{Name: "Tackle", Accuracy: 95}) {
		t.Error("a roll of 1 must always hit regardless of accuracy")
	}
}

func TestCheckHit_EvasionLowersEffectiveThreshold(t *testing.T) {
	attacker := newTestBattler("A", []Type{Normal}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P1)
	defender := newTestBattler("B", []Type{Normal}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P2)
	defender.Stages.Modify(StatEvasion, 6) // accuracyMultiplier -> stageMult(-6) = 0.25

	ctx := newTestContextWithRNG(attacker, defender, &fakeRNG{ints: []int{29}}) // roll = 30
	if CheckHit(ctx, attacker, defender, Move{Name: "Tackle", Accuracy: 100}) {
		t.Error("100 accuracy reduced to 25 effective threshold must miss a roll of 30")
	}
}
