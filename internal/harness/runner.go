package harness

import (
	"fmt"
	"time"

	"github.com/opd-ai/pokebattle-sim/lib/battle"
	"github.com/opd-ai/pokebattle-sim/lib/battlelog"
	"github.com/opd-ai/pokebattle-sim/lib/catalog"
)

// TeamSpec names the species/level/moveset a scenario builds one creature
// from.
type TeamSpec struct {
	Species string
	Level   int
	Moves   []string
}

// Scenario is one reproducible battle configuration: two teams, a seed, and
// the engine knobs that gate it (spec §5: "its own RNG seed, its own event
// bus, its own log files").
type Scenario struct {
	Name      string
	Seed      int64
	MaxTurns  int
	Clauses   battle.Clauses
	Config    battle.EngineConfig
	Team1Name string
	Team2Name string
	Team1     []TeamSpec
	Team2     []TeamSpec
}

// Result is one battle's outcome plus its rendered logs.
type Result struct {
	Scenario   string
	Seed       int64
	Winner     string
	Reason     string
	TotalTurns int
	Machine    battlelog.MachineLog
	Human      string
}

// RunScenario plays s to completion against store and returns the outcome
// and both rendered logs. startTime is supplied by the caller so the
// runner itself stays a pure function of (scenario, startTime).
func RunScenario(s Scenario, store *catalog.Store, startTime time.Time) (Result, error) {
	p1, err := buildTeam(store, s.Team1, battle.P1, s.Team1Name)
	if err != nil {
		return Result{}, fmt.Errorf("building team1: %w", err)
	}
	p2, err := buildTeam(store, s.Team2, battle.P2, s.Team2Name)
	if err != nil {
		return Result{}, fmt.Errorf("building team2: %w", err)
	}

	state := &battle.BattleState{P1: p1, P2: p2, MaxTurns: s.MaxTurns, Clauses: s.Clauses, Config: s.Config}
	ctx := battle.NewContext(state, s.Seed, nil)

	battleID := battlelog.NewBattleID(startTime)
	team1Names := teamNames(p1)
	team2Names := teamNames(p2)
	rec := battlelog.NewRecorder(battleID, startTime, team1Names, team2Names, p1.TrainerName, p2.TrainerName)
	rec.Subscribe(ctx.Bus)

	controller := RandomController{RNG: ctx.RNG}

	for {
		p1Action := controller.ChooseAction(state, battle.P1)
		p2Action := controller.ChooseAction(state, battle.P2)
		res := battle.RunTurn(ctx, p1Action, p2Action, controller, store)
		if res.Ended {
			machine := rec.Finish(startTime.Add(time.Duration(state.Turn)*time.Millisecond), string(res.Winner), string(res.Reason), state.Turn)
			return Result{
				Scenario: s.Name, Seed: s.Seed, Winner: string(res.Winner), Reason: string(res.Reason),
				TotalTurns: state.Turn, Machine: machine, Human: battlelog.RenderHuman(machine),
			}, nil
		}
	}
}

func buildTeam(store *catalog.Store, specs []TeamSpec, side battle.Side, trainerName string) (*battle.Team, error) {
	team := &battle.Team{Side: side, TrainerName: trainerName}
	for _, spec := range specs {
		b, err := store.BuildBattler(spec.Species, spec.Level, spec.Moves, side)
		if err != nil {
			return nil, err
		}
		team.Battlers = append(team.Battlers, b)
	}
	return team, nil
}

func teamNames(t *battle.Team) []string {
	names := make([]string, 0, len(t.Battlers))
	for _, b := range t.Battlers {
		names = append(names, b.Name)
	}
	return names
}
