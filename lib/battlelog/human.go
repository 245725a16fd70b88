package battlelog

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// ansiRE strips ANSI color escapes from a formatted line before it reaches
// disk, grounded on the original implementation's fixed _ANSI_RE pattern.
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// sideColors is the original's per-side palette. The human log writer
// applies it when formatting an actor, then strips it with ansiRE — a
// no-op for the plain-text file today, kept so a future colorized terminal
// consumer can reuse formatActor directly.
var sideColors = map[string]string{
	"P1": "\x1b[34m", // blue
	"P2": "\x1b[31m", // red
}

const ansiReset = "\x1b[0m"

func formatActor(name, side string) string {
	color, ok := sideColors[side]
	if !ok || name == "" {
		return fmt.Sprintf("[%s]", side)
	}
	return fmt.Sprintf("%s[%s]%s %s", color, side, ansiReset, name)
}

func stripANSI(s string) string { return ansiRE.ReplaceAllString(s, "") }

// RenderHuman builds the plain-text transcript from a completed MachineLog:
// header (battle id, start time, rosters), one section per turn with a
// leading state line and ANSI-stripped, actor-prefixed event lines, and a
// footer with the winner and a per-creature summary table.
func RenderHuman(log MachineLog) string {
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Battle ID: %s\n", log.Metadata.BattleID)
	fmt.Fprintf(&b, "Started:   %s\n", log.Metadata.StartTime)
	fmt.Fprintf(&b, "%s: %s\n", log.Metadata.Team1Name, strings.Join(log.Metadata.Team1, ", "))
	fmt.Fprintf(&b, "%s: %s\n", log.Metadata.Team2Name, strings.Join(log.Metadata.Team2, ", "))
	fmt.Fprintln(&b, rule)

	currentTurn := -1
	for _, e := range log.Entries {
		if e.Turn != currentTurn {
			currentTurn = e.Turn
			fmt.Fprintf(&b, "\n=== TURN %d ===\n", currentTurn)
		}
		line := formatEntryLine(e)
		if line != "" {
			fmt.Fprintln(&b, "  "+stripANSI(line))
		}
	}

	fmt.Fprintln(&b, "\n"+rule)
	if log.Metadata.Winner != nil {
		fmt.Fprintf(&b, "Winner: %s\n", *log.Metadata.Winner)
	} else {
		fmt.Fprintln(&b, "Winner: (draw)")
	}
	fmt.Fprintf(&b, "Total turns: %d\n", log.Metadata.TotalTurns)
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "Creature summary:")

	names := make([]string, 0, len(log.Metadata.Summary.PerPokemon))
	for name := range log.Metadata.Summary.PerPokemon {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := log.Metadata.Summary.PerPokemon[name]
		fmt.Fprintf(&b, "  %-16s dealt=%-4d taken=%-4d residual=%-4d moves=%-3d crits=%-2d fainted=%-2d turns=%d\n",
			name, s.DamageDealt, s.DamageTaken, s.ResidualDamage, s.MovesUsed, s.CritsLanded, s.TimesFainted, s.TurnsActive)
	}

	return b.String()
}

func formatEntryLine(e Entry) string {
	switch e.ActionType {
	case "turn_start", "turn_end":
		return ""
	case "state_snapshot":
		actor := formatActor(e.Pokemon, e.PokemonSide)
		return fmt.Sprintf("State: %s %s=%v/%v", actor, e.PokemonSide, e.Details["hp"], e.Details["max_hp"])
	default:
		if e.Pokemon != "" && e.PokemonSide != "" {
			return fmt.Sprintf("%s %s", formatActor(e.Pokemon, e.PokemonSide), e.Message)
		}
		return e.Message
	}
}

// WriteHumanLog renders and writes the human-readable log to path.
func WriteHumanLog(path string, log MachineLog) error {
	caller := getCaller()
	if err := os.WriteFile(path, []byte(RenderHuman(log)), 0o644); err != nil {
		logrus.WithFields(logrus.Fields{"caller": caller, "path": path, "error": err.Error()}).Error("failed to write human log")
		return fmt.Errorf("failed to write human log %s: %w", path, err)
	}
	logrus.WithFields(logrus.Fields{"caller": caller, "path": path}).Info("human log written")
	return nil
}
