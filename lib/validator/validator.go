// Package validator checks a battlelog.MachineLog against the mandatory
// audit invariants (spec §4.8). It never panics and never mutates its
// input — an anomaly slice is the only output.
package validator

import (
	"fmt"

	"github.com/opd-ai/pokebattle-sim/lib/battlelog"
)

// Severity classifies an anomaly.
type Severity string

const (
	SeverityError Severity = "ERROR"
	SeverityWarn  Severity = "WARN"
)

// Anomaly is one validator finding.
type Anomaly struct {
	Rule     string
	Severity Severity
	Turn     int
	Message  string
}

func (a Anomaly) String() string {
	return fmt.Sprintf("[%s] turn %d: %s (%s)", a.Severity, a.Turn, a.Message, a.Rule)
}

// selfTargetMoves mirrors lib/battle/dispatch.go's selfTargetMoves set; kept
// independent so the validator has no import-time dependency on the core.
var selfTargetMoves = map[string]bool{
	"Agility": true, "Barrier": true, "Amnesia": true, "Reflect": true,
	"Light-Screen": true, "Recover": true, "Rest": true, "Soft-Boiled": true,
	"Substitute": true, "Swords-Dance": true, "Withdraw": true, "Harden": true,
	"Growth": true, "Meditate": true, "Minimize": true,
}

// Validate runs every mandatory invariant over log and returns the combined
// anomaly list, grouped by check in the order the checks run. A nil/empty
// return means the log is
// audit-clean.
func Validate(log battlelog.MachineLog) []Anomaly {
	var anomalies []Anomaly
	anomalies = append(anomalies, checkTurnBrackets(log)...)
	anomalies = append(anomalies, checkHPRange(log)...)
	anomalies = append(anomalies, checkSelfTarget(log)...)
	anomalies = append(anomalies, checkSwitchSnapshot(log)...)
	anomalies = append(anomalies, checkDuplicateMoves(log)...)
	anomalies = append(anomalies, checkFaintCause(log)...)
	return anomalies
}

func checkTurnBrackets(log battlelog.MachineLog) []Anomaly {
	started := map[int]bool{}
	ended := map[int]bool{}
	maxTurn := 0
	for _, e := range log.Entries {
		if e.Turn > maxTurn {
			maxTurn = e.Turn
		}
		switch e.ActionType {
		case "turn_start":
			started[e.Turn] = true
		case "turn_end":
			ended[e.Turn] = true
		}
	}
	var out []Anomaly
	for turn := 1; turn <= maxTurn; turn++ {
		if !started[turn] {
			out = append(out, Anomaly{Rule: "missing_turn_start", Severity: SeverityError, Turn: turn, Message: "no turn_start entry"})
		}
		if !ended[turn] {
			out = append(out, Anomaly{Rule: "missing_turn_end", Severity: SeverityError, Turn: turn, Message: "no turn_end entry"})
		}
	}
	return out
}

func hpFields(details map[string]any) (hp, maxHP int, ok bool) {
	hpv, ok1 := details["hp"]
	maxv, ok2 := details["max_hp"]
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	hpF, ok1 := toFloat(hpv)
	maxF, ok2 := toFloat(maxv)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return int(hpF), int(maxF), true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func checkHPRange(log battlelog.MachineLog) []Anomaly {
	var out []Anomaly
	for _, e := range log.Entries {
		if e.Details == nil {
			continue
		}
		hp, maxHP, ok := hpFields(e.Details)
		if !ok {
			continue
		}
		if hp < 0 || hp > maxHP {
			out = append(out, Anomaly{Rule: "hp_out_of_range", Severity: SeverityError, Turn: e.Turn,
				Message: fmt.Sprintf("%s: hp=%d max_hp=%d", e.Pokemon, hp, maxHP)})
		}
	}
	return out
}

func checkSelfTarget(log battlelog.MachineLog) []Anomaly {
	var out []Anomaly
	for _, e := range log.Entries {
		if e.ActionType != "move_used" || e.Details == nil {
			continue
		}
		move, _ := e.Details["move"].(string)
		if !selfTargetMoves[move] {
			continue
		}
		if e.Target != "" && e.Target != e.Pokemon {
			out = append(out, Anomaly{Rule: "invalid_self_target", Severity: SeverityError, Turn: e.Turn,
				Message: fmt.Sprintf("%s targeted %s with self-target move %s", e.Pokemon, e.Target, move)})
		}
	}
	return out
}

func checkSwitchSnapshot(log battlelog.MachineLog) []Anomaly {
	var out []Anomaly
	for i, e := range log.Entries {
		if e.ActionType != "switched" {
			continue
		}
		found := false
		for j := i + 1; j < len(log.Entries); j++ {
			next := log.Entries[j]
			if next.Turn != e.Turn {
				break
			}
			if next.ActionType == "state_snapshot" && next.Pokemon == e.Pokemon {
				found = true
				hp, _, ok := hpFields(next.Details)
				if ok && hp <= 0 {
					out = append(out, Anomaly{Rule: "switch_into_fainted", Severity: SeverityError, Turn: e.Turn,
						Message: e.Pokemon + " switched in with 0 HP"})
				}
				break
			}
		}
		if !found {
			out = append(out, Anomaly{Rule: "switch_missing_hp_snapshot", Severity: SeverityWarn, Turn: e.Turn,
				Message: "no HP snapshot after " + e.Pokemon + " switched in"})
		}
	}
	return out
}

type moveKey struct {
	actor, actorSide, target, targetSide, move string
	damage                                      int
	crit                                        bool
	effectiveness                               float64
	result                                       string
}

func checkDuplicateMoves(log battlelog.MachineLog) []Anomaly {
	var out []Anomaly
	seenPerTurn := map[int]map[moveKey]bool{}
	for _, e := range log.Entries {
		if e.ActionType != "damage_dealt" || e.Details == nil {
			continue
		}
		move, _ := e.Details["move"].(string)
		damage, _ := toFloat(e.Details["damage"])
		result, _ := e.Details["result"].(string)
		key := moveKey{actor: e.Pokemon, actorSide: e.PokemonSide, target: e.Target, targetSide: e.TargetSide,
			move: move, damage: int(damage), result: result}
		if bd, ok := e.Details["damage_breakdown"].(map[string]any); ok {
			key.crit, _ = bd["is_critical"].(bool)
			key.effectiveness, _ = toFloat(bd["effectiveness"])
		}
		if seenPerTurn[e.Turn] == nil {
			seenPerTurn[e.Turn] = map[moveKey]bool{}
		}
		if seenPerTurn[e.Turn][key] {
			out = append(out, Anomaly{Rule: "duplicate_move_event", Severity: SeverityError, Turn: e.Turn,
				Message: fmt.Sprintf("duplicate damage_dealt for %s -> %s (%s)", e.Pokemon, e.Target, move)})
			continue
		}
		seenPerTurn[e.Turn][key] = true
	}
	return out
}

func checkFaintCause(log battlelog.MachineLog) []Anomaly {
	var out []Anomaly
	byTurn := map[int][]battlelog.Entry{}
	for _, e := range log.Entries {
		byTurn[e.Turn] = append(byTurn[e.Turn], e)
	}
	for _, e := range log.Entries {
		if e.ActionType != "pokemon_fainted" {
			continue
		}
		causeOK := false
		for _, other := range byTurn[e.Turn] {
			if other.Target == e.Pokemon {
				if dmg, ok := other.Details["damage"]; ok {
					if f, ok := toFloat(dmg); ok && f > 0 {
						causeOK = true
						break
					}
				}
			}
			if other.Pokemon == e.Pokemon && (other.ActionType == "status_damage" || other.ActionType == "trap_damage" || other.ActionType == "confusion_self_hit") {
				if dmg, ok := other.Details["damage"]; ok {
					if f, ok := toFloat(dmg); ok && f > 0 {
						causeOK = true
						break
					}
				}
			}
			if other.Pokemon == e.Pokemon && other.ActionType == "move_used" {
				if cause, ok := e.Details["cause"].(string); ok && cause == "self_destruct" {
					causeOK = true
					break
				}
			}
		}
		if !causeOK {
			out = append(out, Anomaly{Rule: "faint_without_cause", Severity: SeverityError, Turn: e.Turn,
				Message: e.Pokemon + " fainted with no preceding damage event in the same turn"})
		}
	}
	return out
}
