// Command battlesim runs a single Generation-1 battle or a batch of
// independent replicas, writes the human and machine logs, and optionally
// validates the machine log against the mandatory audit invariants.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/pokebattle-sim/internal/harness"
	"github.com/opd-ai/pokebattle-sim/lib/battle"
	"github.com/opd-ai/pokebattle-sim/lib/battlelog"
	"github.com/opd-ai/pokebattle-sim/lib/catalog"
	"github.com/opd-ai/pokebattle-sim/lib/ruleset"
	"github.com/opd-ai/pokebattle-sim/lib/validator"
)

func main() {
	seed := flag.Int64("seed", 1, "base RNG seed")
	batch := flag.Int("batch", 1, "number of independent replicas to run")
	maxTurns := flag.Int("max-turns", 1000, "turn cap before a draw is declared")
	outDir := flag.String("out", "./battlelogs", "directory to write logs into")
	rulesetName := flag.String("ruleset", "standard", "clause bundle: standard|tournament")
	validate := flag.Bool("validate", true, "run the audit validator on each machine log")
	stopOnError := flag.Bool("stop-on-error", false, "abort the batch as soon as one replica errors")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logrus.WithFields(logrus.Fields{"caller": "battlesim.main", "error": err.Error()}).Fatal("failed to create output directory")
	}

	store := catalog.New()
	scenario := defaultScenario(*seed, *maxTurns, *rulesetName)
	startTime := time.Now()

	results := harness.RunBatch(scenario, *batch, store, startTime, *stopOnError)

	exitCode := 0
	for _, br := range results {
		if br.Err != nil {
			fmt.Fprintf(os.Stderr, "replica %d (seed %d): %v\n", br.Index, br.Seed, br.Err)
			exitCode = 1
			continue
		}
		if err := writeResult(*outDir, br); err != nil {
			fmt.Fprintf(os.Stderr, "replica %d: %v\n", br.Index, err)
			exitCode = 1
			continue
		}
		if *validate {
			anomalies := validator.Validate(br.Result.Machine)
			for _, a := range anomalies {
				fmt.Fprintf(os.Stderr, "replica %d: %s\n", br.Index, a.String())
				if a.Severity == validator.SeverityError {
					exitCode = 1
				}
			}
		}
		fmt.Printf("replica %d (seed %d): winner=%s reason=%s turns=%d\n",
			br.Index, br.Seed, br.Result.Winner, br.Result.Reason, br.Result.TotalTurns)
	}

	os.Exit(exitCode)
}

func writeResult(outDir string, br harness.BatchResult) error {
	base := filepath.Join(outDir, fmt.Sprintf("battle_%d", br.Index))
	if err := os.WriteFile(base+".log", []byte(br.Result.Human), 0o644); err != nil {
		return fmt.Errorf("writing human log: %w", err)
	}
	return battlelog.WriteMachineLog(base+".json", br.Result.Machine)
}

func defaultScenario(seed int64, maxTurns int, rulesetName string) harness.Scenario {
	return harness.Scenario{
		Name:      "battlesim",
		Seed:      seed,
		MaxTurns:  maxTurns,
		Clauses:   ruleset.Clauses(rulesetName),
		Config:    battle.DefaultEngineConfig(),
		Team1Name: "Red",
		Team2Name: "Blue",
		Team1: []harness.TeamSpec{
			{Species: "Charmander", Level: 50, Moves: []string{"Ember", "Scratch", "Fire-Punch", "Slash"}},
			{Species: "Squirtle", Level: 50, Moves: []string{"Water-Gun", "Tackle", "Bite", "Hydro-Pump"}},
		},
		Team2: []harness.TeamSpec{
			{Species: "Bulbasaur", Level: 50, Moves: []string{"Vine-Whip", "Tackle", "Leech-Seed", "Solar-Beam"}},
			{Species: "Pikachu", Level: 50, Moves: []string{"Thundershock", "Thunder-Punch", "Agility", "Thunderbolt"}},
		},
	}
}
