package harness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opd-ai/pokebattle-sim/lib/battle"
	"github.com/opd-ai/pokebattle-sim/lib/battlelog"
	"github.com/opd-ai/pokebattle-sim/lib/catalog"
	"github.com/opd-ai/pokebattle-sim/lib/validator"
)

// These scenarios pin down the concrete end-to-end cases named in the
// specification's testable-properties section: self-destruct against an
// immune target, the sleep clause blocking a second sleep, Counter, and
// Hyper Beam's recharge turn. Each drives RunTurn directly with scripted
// actions rather than the random controller, so the exact move sequence
// is guaranteed rather than merely likely.

func newTestContext(p1, p2 *battle.Team, seed int64) *battle.Context {
	state := &battle.BattleState{P1: p1, P2: p2, MaxTurns: 100, Config: battle.DefaultEngineConfig()}
	return battle.NewContext(state, seed, nil)
}

// S1 — Self-destruct resolves faint: Snorlax uses Self-Destruct on Gengar,
// a Ghost type immune to Normal damage. Expect Snorlax to faint with cause
// self_destruct even though no damage landed, and no spurious
// faint_without_cause anomaly.
func TestScenario_S1_SelfDestructAgainstImmuneTarget(t *testing.T) {
	store := catalog.New()
	p1, err := buildTeam(store, []TeamSpec{{Species: "Snorlax", Level: 50, Moves: []string{"Self-Destruct"}}}, battle.P1, "Red")
	require.NoError(t, err)
	p2, err := buildTeam(store, []TeamSpec{{Species: "Gengar", Level: 50, Moves: []string{"Night-Shade"}}}, battle.P2, "Blue")
	require.NoError(t, err)

	ctx := newTestContext(p1, p2, 1)
	battleID := battlelog.NewBattleID(time.Now())
	rec := battlelog.NewRecorder(battleID, time.Now(), teamNames(p1), teamNames(p2), p1.TrainerName, p2.TrainerName)
	rec.Subscribe(ctx.Bus)

	res := battle.RunTurn(ctx, battle.Action{Kind: battle.ActionAttack, MoveIndex: 0}, battle.Action{Kind: battle.ActionAttack, MoveIndex: 0}, nil, store)
	require.True(t, res.Ended, "Snorlax's self-destruct faints its only team member, ending the battle")
	require.Equal(t, battle.P2, res.Winner)

	log := rec.Finish(time.Now(), string(res.Winner), string(res.Reason), ctx.State.Turn)

	var faintEntry *battlelog.Entry
	for i := range log.Entries {
		if log.Entries[i].ActionType == "pokemon_fainted" && log.Entries[i].Pokemon == p1.Battlers[0].Name {
			faintEntry = &log.Entries[i]
		}
	}
	require.NotNil(t, faintEntry, "expected Snorlax to faint from Self-Destruct")
	require.Equal(t, "self_destruct", faintEntry.Details["cause"])

	anomalies := validator.Validate(log)
	for _, a := range anomalies {
		require.NotEqual(t, "faint_without_cause", a.Rule, "self-destruct faint must carry a cause")
	}
}

// S3 — Sleep clause blocks second sleep: Gengar uses Hypnosis on Bulbasaur
// (turn 1), putting it to sleep; a second Hypnosis at a fresh target on
// Gengar's own team's opponent is blocked by the clause rather than
// stacking a second sleeper.
func TestScenario_S3_SleepClauseBlocksSecondSleep(t *testing.T) {
	store := catalog.New()
	p1, err := buildTeam(store, []TeamSpec{{Species: "Gengar", Level: 50, Moves: []string{"Hypnosis"}}}, battle.P1, "Red")
	require.NoError(t, err)
	p2, err := buildTeam(store, []TeamSpec{
		{Species: "Bulbasaur", Level: 50, Moves: []string{"Tackle"}},
		{Species: "Squirtle", Level: 50, Moves: []string{"Tackle"}},
	}, battle.P2, "Blue")
	require.NoError(t, err)

	state := &battle.BattleState{P1: p1, P2: p2, MaxTurns: 100, Clauses: battle.Clauses{SleepClause: true}, Config: battle.DefaultEngineConfig()}
	ctx := battle.NewContext(state, 3, nil)

	// Turn 1: Hypnosis lands on the active Bulbasaur.
	battle.RunTurn(ctx, battle.Action{Kind: battle.ActionAttack, MoveIndex: 0}, battle.Action{Kind: battle.ActionAttack, MoveIndex: 0}, nil, store)
	require.Equal(t, battle.StatusSleep, p2.Battlers[0].Status, "Bulbasaur should be asleep after the first Hypnosis")

	// Switch in Squirtle, then try to put it to sleep too while Bulbasaur
	// is still asleep — the clause must block it.
	require.NoError(t, battle.Switch(ctx, p2, 1))
	battle.RunTurn(ctx, battle.Action{Kind: battle.ActionAttack, MoveIndex: 0}, battle.Action{Kind: battle.ActionAttack, MoveIndex: 0}, nil, store)

	require.NotEqual(t, battle.StatusSleep, p2.Battlers[1].Status, "clause must prevent a second sleeping Pokemon on the same team")
}

// S4 — Counter: P1's Earthquake deals physical damage; P2's Counter on the
// following turn returns double that amount.
func TestScenario_S4_CounterReturnsDoubleDamage(t *testing.T) {
	store := catalog.New()
	p1, err := buildTeam(store, []TeamSpec{{Species: "Machamp", Level: 50, Moves: []string{"Earthquake", "Splash"}}}, battle.P1, "Red")
	require.NoError(t, err)
	p2, err := buildTeam(store, []TeamSpec{{Species: "Machamp", Level: 50, Moves: []string{"Counter"}}}, battle.P2, "Blue")
	require.NoError(t, err)

	ctx := newTestContext(p1, p2, 5)

	// Turn 1: P1 attacks with Earthquake; P2's Counter has no prior damage
	// to key off yet and fails harmlessly.
	battle.RunTurn(ctx, battle.Action{Kind: battle.ActionAttack, MoveIndex: 0}, battle.Action{Kind: battle.ActionAttack, MoveIndex: 0}, nil, store)
	earthquakeDamage := p2.Battlers[0].MaxHP - p2.Battlers[0].CurrentHP
	require.Greater(t, earthquakeDamage, 0, "Earthquake must have dealt physical damage for Counter to key off of")
	p1HPAfterTurn1 := p1.Battlers[0].CurrentHP

	// Turn 2: P1 does nothing offensive (Splash) so Counter's return damage
	// can only have come from turn 1's Earthquake hit.
	battle.RunTurn(ctx, battle.Action{Kind: battle.ActionAttack, MoveIndex: 1}, battle.Action{Kind: battle.ActionAttack, MoveIndex: 0}, nil, store)
	counterDamage := p1HPAfterTurn1 - p1.Battlers[0].CurrentHP
	require.Equal(t, earthquakeDamage*2, counterDamage, "Counter must return exactly double the physical damage it last took")
}

// S6 — Hyper Beam recharge: the turn after Hyper Beam connects without
// KOing its target, the user must recharge and performs no move.
func TestScenario_S6_HyperBeamForcesRecharge(t *testing.T) {
	store := catalog.New()
	p1, err := buildTeam(store, []TeamSpec{{Species: "Snorlax", Level: 100, Moves: []string{"Hyper-Beam"}}}, battle.P1, "Red")
	require.NoError(t, err)
	p2, err := buildTeam(store, []TeamSpec{{Species: "Snorlax", Level: 100, Moves: []string{"Tackle"}}}, battle.P2, "Blue")
	require.NoError(t, err)

	ctx := newTestContext(p1, p2, 11)

	battle.RunTurn(ctx, battle.Action{Kind: battle.ActionAttack, MoveIndex: 0}, battle.Action{Kind: battle.ActionAttack, MoveIndex: 0}, nil, store)
	require.True(t, p1.Battlers[0].Volatiles.MustRecharge, "Hyper Beam must set the recharge volatile when it doesn't faint its target")

	battleID := battlelog.NewBattleID(time.Now())
	rec := battlelog.NewRecorder(battleID, time.Now(), teamNames(p1), teamNames(p2), p1.TrainerName, p2.TrainerName)
	rec.Subscribe(ctx.Bus)

	battle.RunTurn(ctx, battle.Action{Kind: battle.ActionAttack, MoveIndex: 0}, battle.Action{Kind: battle.ActionAttack, MoveIndex: 0}, nil, store)
	log := rec.Finish(time.Now(), "", "", ctx.State.Turn)

	var sawRecharge, sawMoveUsedForP1 bool
	for _, e := range log.Entries {
		if e.ActionType == "recharge_needed" && e.Pokemon == p1.Battlers[0].Name {
			sawRecharge = true
		}
		if e.ActionType == "move_used" && e.Pokemon == p1.Battlers[0].Name {
			sawMoveUsedForP1 = true
		}
	}
	require.True(t, sawRecharge, "expected a recharge_needed entry for the Hyper Beam user")
	require.False(t, sawMoveUsedForP1, "the recharging actor must not perform a move that turn")
}
