package battle

import (
	"errors"
	"testing"
)

func mkTeam(side Side, battlers ...*Battler) *Team {
	return &Team{Side: side, Battlers: battlers}
}

func TestValidateSwitch_OutOfRangeIndex(t *testing.T) {
	team := mkTeam(P1, newTestBattler("Snorlax", nil, BaseStats{HP: 200}, P1))
	if err := ValidateSwitch(team, 5); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("expected ErrInvalidSlot, got %v", err)
	}
}

func TestValidateSwitch_ToAlreadyActive(t *testing.T) {
	team := mkTeam(P1, newTestBattler("Snorlax", nil, BaseStats{HP: 200}, P1), newTestBattler("Gengar", nil, BaseStats{HP: 100}, P1))
	if err := ValidateSwitch(team, 0); !errors.Is(err, ErrSwitchToActive) {
		t.Errorf("expected ErrSwitchToActive, got %v", err)
	}
}

func TestValidateSwitch_IntoFaintedCreature(t *testing.T) {
	fainted := newTestBattler("Gengar", nil, BaseStats{HP: 100}, P1)
	fainted.CurrentHP = 0
	team := mkTeam(P1, newTestBattler("Snorlax", nil, BaseStats{HP: 200}, P1), fainted)
	if err := ValidateSwitch(team, 1); !errors.Is(err, ErrSwitchIntoFainted) {
		t.Errorf("expected ErrSwitchIntoFainted, got %v", err)
	}
}

func TestValidateSwitch_LegalSwitchReturnsNil(t *testing.T) {
	team := mkTeam(P1, newTestBattler("Snorlax", nil, BaseStats{HP: 200}, P1), newTestBattler("Gengar", nil, BaseStats{HP: 100}, P1))
	if err := ValidateSwitch(team, 1); err != nil {
		t.Errorf("expected a legal switch to validate cleanly, got %v", err)
	}
}

func TestSwitch_ResetsVolatilesButPreservesScreens(t *testing.T) {
	outgoing := newTestBattler("Snorlax", nil, BaseStats{HP: 200}, P1)
	outgoing.Volatiles.ConfusionTurns = 3
	outgoing.Volatiles.HasReflect = true
	outgoing.Volatiles.ReflectTurns = 4
	incoming := newTestBattler("Gengar", nil, BaseStats{HP: 100}, P1)
	team := mkTeam(P1, outgoing, incoming)
	opponent := newTestBattler("Alakazam", nil, BaseStats{HP: 100}, P2)
	ctx := newTestContextWithRNG(outgoing, opponent, &fakeRNG{})

	if err := Switch(ctx, team, 1); err != nil {
		t.Fatalf("unexpected error switching: %v", err)
	}
	if team.ActiveIndex != 1 {
		t.Errorf("expected ActiveIndex 1 after switch, got %d", team.ActiveIndex)
	}
	if outgoing.Volatiles.ConfusionTurns != 0 {
		t.Error("switching out must clear confusion")
	}
	if !outgoing.Volatiles.HasReflect || outgoing.Volatiles.ReflectTurns != 4 {
		t.Error("switching out must preserve Reflect, which belongs to the side not the individual")
	}
}

func TestSwitch_RestoresTransformOnSwitchOut(t *testing.T) {
	outgoing := newTestBattler("Ditto", []Type{Normal}, BaseStats{HP: 100, Atk: 48, Def: 48, Spc: 48, Spe: 48}, P1)
	original := Form{Types: []Type{Normal}, BaseStats: BaseStats{Atk: 48, Def: 48, Spc: 48, Spe: 48}, Moves: outgoing.Moves}
	outgoing.Volatiles.IsTransformed = true
	outgoing.Volatiles.OriginalForm = &original
	outgoing.Types = []Type{Water}
	outgoing.Stats.Atk = 999

	incoming := newTestBattler("Gengar", nil, BaseStats{HP: 100}, P1)
	team := mkTeam(P1, outgoing, incoming)
	opponent := newTestBattler("Alakazam", nil, BaseStats{HP: 100}, P2)
	ctx := newTestContextWithRNG(outgoing, opponent, &fakeRNG{})

	if err := Switch(ctx, team, 1); err != nil {
		t.Fatalf("unexpected error switching: %v", err)
	}
	if outgoing.Stats.Atk != 48 {
		t.Errorf("switching out a Transformed creature must restore its original stats, got Atk=%d", outgoing.Stats.Atk)
	}
	if len(outgoing.Types) != 1 || outgoing.Types[0] != Normal {
		t.Errorf("switching out a Transformed creature must restore its original types, got %v", outgoing.Types)
	}
}

func TestFirstPPAlternative_SkipsExhaustedMoves(t *testing.T) {
	b := newTestBattler("Gengar", nil, BaseStats{HP: 100}, P1,
		Move{Name: "Lick", PP: 0},
		Move{Name: "Confuse-Ray", PP: 0},
		Move{Name: "Night-Shade", PP: 5},
	)
	if got := firstPPAlternative(b); got != 2 {
		t.Errorf("expected index 2 (first move with PP remaining), got %d", got)
	}
}

func TestFirstPPAlternative_ReturnsMinusOneWhenAllExhausted(t *testing.T) {
	b := newTestBattler("Gengar", nil, BaseStats{HP: 100}, P1, Move{Name: "Lick", PP: 0})
	if got := firstPPAlternative(b); got != -1 {
		t.Errorf("expected -1 when no move has PP, got %d", got)
	}
}
