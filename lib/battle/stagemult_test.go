package battle

import "testing"

func TestStageMult_PositiveAndNegativeStages(t *testing.T) {
	cases := []struct {
		stage int
		want  float64
	}{
		{0, 1.0},
		{1, 1.5},
		{6, 4.0},
		{-1, 2.0 / 3.0},
		{-6, 2.0 / 8.0},
	}
	for _, c := range cases {
		if got := stageMult(c.stage); got != c.want {
			t.Errorf("stageMult(%d) = %v, want %v", c.stage, got, c.want)
		}
	}
}

func TestStageTable_ModifyClampsToPlusMinusSix(t *testing.T) {
	st := NewStageTable()
	actual, atLimit := st.Modify(StatAtk, 10)
	if st.Get(StatAtk) != 6 {
		t.Fatalf("stage must clamp at +6, got %d", st.Get(StatAtk))
	}
	if actual != 6 || !atLimit {
		t.Errorf("expected actual=6 atLimit=true for an overshoot from 0, got actual=%d atLimit=%v", actual, atLimit)
	}

	actual, atLimit = st.Modify(StatAtk, 1)
	if st.Get(StatAtk) != 6 {
		t.Fatalf("stage must stay clamped at +6 after a further increase, got %d", st.Get(StatAtk))
	}
	if actual != 0 || !atLimit {
		t.Errorf("a no-op increase at the ceiling must report actual=0 atLimit=true, got actual=%d atLimit=%v", actual, atLimit)
	}

	st2 := NewStageTable()
	st2.Modify(StatDef, -10)
	if st2.Get(StatDef) != -6 {
		t.Fatalf("stage must clamp at -6, got %d", st2.Get(StatDef))
	}
}

func TestStageTable_ResetZeroesEveryStage(t *testing.T) {
	st := NewStageTable()
	st.Modify(StatAtk, 3)
	st.Modify(StatSpe, -2)
	st.Reset()
	for _, s := range []Stat{StatAtk, StatDef, StatSpc, StatSpe, StatAccuracy, StatEvasion} {
		if st.Get(s) != 0 {
			t.Errorf("Reset must zero every stage, %s is %d", s, st.Get(s))
		}
	}
}

func TestAccuracyMultiplier_ClampsStageDifferenceToPlusMinusSix(t *testing.T) {
	attacker := newTestBattler("A", []Type{Normal}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P1)
	defender := newTestBattler("B", []Type{Normal}, BaseStats{HP: 100, Atk: 100, Def: 100, Spc: 100, Spe: 100}, P2)

	attacker.Stages.Modify(StatAccuracy, 6)
	defender.Stages.Modify(StatEvasion, -6)
	// difference is +12, must clamp to the +6 multiplier (8/2 = 4.0)
	if got := accuracyMultiplier(attacker, defender); got != 4.0 {
		t.Errorf("expected accuracy multiplier clamped to 4.0, got %v", got)
	}
}

func TestEffectiveSpeed_ParalysisAppliesSpeedPenalty(t *testing.T) {
	b := newTestBattler("Slowpoke", nil, BaseStats{HP: 100, Atk: 50, Def: 50, Spc: 50, Spe: 100}, P1)
	cfg := DefaultEngineConfig()
	normal := effectiveSpeed(b, cfg)

	b.Status = StatusParalysis
	paralyzed := effectiveSpeed(b, cfg)

	if paralyzed != normal*cfg.ParalysisSpeedFactor {
		t.Errorf("paralysis must scale speed by ParalysisSpeedFactor, got %v want %v", paralyzed, normal*cfg.ParalysisSpeedFactor)
	}
}
