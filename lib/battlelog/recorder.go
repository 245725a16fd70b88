// Package battlelog subscribes to a battle's event bus and produces the two
// logs spec'd for every battle: a human-readable transcript and a
// machine-readable JSON document for the validator and golden harness.
package battlelog

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/pokebattle-sim/lib/events"
)

func getCaller() string { return "battlelog" }

// Entry is one line of the machine log's entries array (spec §6).
type Entry struct {
	Turn        int            `json:"turn"`
	ActionType  string         `json:"action_type"`
	Pokemon     string         `json:"pokemon,omitempty"`
	PokemonSide string         `json:"pokemon_side,omitempty"`
	Target      string         `json:"target,omitempty"`
	TargetSide  string         `json:"target_side,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	Message     string         `json:"message"`
}

// PokemonSummary is one creature's footer/metadata tally.
type PokemonSummary struct {
	DamageDealt    int `json:"damage_dealt"`
	DamageTaken    int `json:"damage_taken"`
	ResidualDamage int `json:"residual_damage"`
	MovesUsed      int `json:"moves_used"`
	CritsLanded    int `json:"crits_landed"`
	TimesFainted   int `json:"times_fainted"`
	TurnsActive    int `json:"turns_active"`
}

// Summary wraps the per-pokemon tally map exactly as spec §6 shapes it.
type Summary struct {
	PerPokemon map[string]*PokemonSummary `json:"per_pokemon"`
}

// Metadata is the machine log's header block.
type Metadata struct {
	BattleID  string   `json:"battle_id"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Team1     []string `json:"team1"`
	Team2     []string `json:"team2"`
	Team1Name string   `json:"team1_name"`
	Team2Name string   `json:"team2_name"`
	Winner    *string  `json:"winner"`
	Reason    string   `json:"reason"`
	TotalTurns int     `json:"total_turns"`
	Summary   Summary  `json:"summary"`
}

// MachineLog is the full bit-exact JSON document (spec §6).
type MachineLog struct {
	Metadata Metadata `json:"metadata"`
	Entries  []Entry  `json:"entries"`
}

// NewBattleID formats the original implementation's
// battle_<YYYYMMDD_HHMMSS_ffffff> naming scheme from an externally supplied
// timestamp, keeping the recorder itself a pure function of its inputs.
func NewBattleID(at time.Time) string {
	return fmt.Sprintf("battle_%s_%06d", at.Format("20060102_150405"), at.Nanosecond()/1000)
}

// Recorder accumulates a MachineLog by subscribing to a battle's event bus.
// It never owns the bus and never mutates battle state — a pure observer.
type Recorder struct {
	log         MachineLog
	activeSides map[string]string // pokemon name -> side, last seen
	sawTurn     int
}

// NewRecorder creates a Recorder for a battle between team1/team2 and
// registers the metadata header. battleID/startTime are supplied by the
// caller (cmd/battlesim or internal/harness) for determinism.
func NewRecorder(battleID string, startTime time.Time, team1, team2 []string, team1Name, team2Name string) *Recorder {
	r := &Recorder{activeSides: map[string]string{}}
	r.log.Metadata = Metadata{
		BattleID:  battleID,
		StartTime: startTime.Format(time.RFC3339Nano),
		Team1:     team1,
		Team2:     team2,
		Team1Name: team1Name,
		Team2Name: team2Name,
		Summary:   Summary{PerPokemon: map[string]*PokemonSummary{}},
	}
	logrus.WithFields(logrus.Fields{"caller": getCaller(), "battleID": battleID}).Info("recorder created")
	return r
}

// Subscribe attaches the recorder to bus. Call once, before the battle runs.
func (r *Recorder) Subscribe(bus *events.Bus) {
	bus.SubscribeAll(r.handle)
}

// Finish stamps the end-of-battle metadata fields not known at construction
// time (winner, reason, total turns, end time) and returns the completed log.
func (r *Recorder) Finish(endTime time.Time, winner, reason string, totalTurns int) MachineLog {
	r.log.Metadata.EndTime = endTime.Format(time.RFC3339Nano)
	r.log.Metadata.Reason = reason
	r.log.Metadata.TotalTurns = totalTurns
	if winner != "" {
		r.log.Metadata.Winner = &winner
	}
	return r.log
}

func (r *Recorder) pokemon(name string) *PokemonSummary {
	ps, ok := r.log.Metadata.Summary.PerPokemon[name]
	if !ok {
		ps = &PokemonSummary{}
		r.log.Metadata.Summary.PerPokemon[name] = ps
	}
	return ps
}

func (r *Recorder) append(e Entry) {
	r.log.Entries = append(r.log.Entries, e)
}

// handle is the single SubscribeAll callback; it type-switches on every
// event variant. Go does not check a type switch for missing cases: a
// variant with no case here falls to the default branch, which logs a
// warning and records a generic entry.
func (r *Recorder) handle(ev events.Event) {
	t := ev.TurnNumber()
	switch e := ev.(type) {
	case events.BattleStart:
		r.append(Entry{Turn: t, ActionType: string(events.KindBattleStart), Message: fmt.Sprintf("%s vs %s", e.P1Name, e.P2Name)})
	case events.BattleEnd:
		r.append(Entry{Turn: t, ActionType: string(events.KindBattleEnd), Message: "battle ended: " + string(e.Reason)})
	case events.TurnStart:
		r.sawTurn = t
		r.append(Entry{Turn: t, ActionType: string(events.KindTurnStart), Message: fmt.Sprintf("turn %d begins", t)})
	case events.TurnEnd:
		r.append(Entry{Turn: t, ActionType: string(events.KindTurnEnd), Message: fmt.Sprintf("turn %d ends", t)})
		for _, snap := range e.Snapshots {
			r.pokemon(snap.Pokemon).TurnsActive++
		}
	case events.TurnOrder:
		r.append(Entry{Turn: t, ActionType: string(events.KindTurnOrder), Message: fmt.Sprintf("%s acts before %s (%s)", e.FirstActor, e.SecondActor, e.Reason)})
	case events.Switched:
		r.activeSides[e.Pokemon] = e.Side
		r.append(Entry{Turn: t, ActionType: string(events.KindSwitched), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"from_index": e.FromIndex, "to_index": e.ToIndex}, Message: e.Pokemon + " switched in"})
	case events.StateSnapshot:
		r.append(Entry{Turn: t, ActionType: string(events.KindStateSnapshot), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"hp": e.HP, "max_hp": e.MaxHP, "status": e.Status, "stages": e.Stages, "volatiles": e.Volatiles},
			Message: fmt.Sprintf("%s: %d/%d hp", e.Pokemon, e.HP, e.MaxHP)})

	case events.MoveUsed:
		r.pokemon(e.Attacker).MovesUsed++
		r.append(Entry{Turn: t, ActionType: string(events.KindMoveUsed), Pokemon: e.Attacker, PokemonSide: e.AttackerSide,
			Details: map[string]any{"move": e.Move, "move_type": e.MoveType, "is_continuation": e.IsContinuation},
			Message: fmt.Sprintf("%s used %s!", e.Attacker, e.Move)})
	case events.DamageDealt:
		r.pokemon(e.Attacker).DamageDealt += e.Damage
		r.pokemon(e.Defender).DamageTaken += e.Damage
		details := map[string]any{"move": e.Move, "damage": e.Damage, "hp": e.HP, "max_hp": e.MaxHP, "result": "resolved"}
		if e.Breakdown != nil {
			details["damage_breakdown"] = map[string]any{
				"move_power": e.Breakdown.MovePower, "attack_stat": e.Breakdown.AttackStat,
				"defense_stat": e.Breakdown.DefenseStat, "stab": e.Breakdown.STAB,
				"effectiveness": e.Breakdown.Effectiveness, "is_critical": e.Breakdown.IsCritical,
				"burn_modifier": e.Breakdown.BurnModifier, "random_roll": e.Breakdown.RandomRoll,
				"final_damage": e.Breakdown.FinalDamage,
			}
		}
		r.append(Entry{Turn: t, ActionType: string(events.KindDamageDealt), Pokemon: e.Attacker, PokemonSide: e.AttackerSide,
			Target: e.Defender, TargetSide: e.DefenderSide, Details: details,
			Message: fmt.Sprintf("%s took %d damage", e.Defender, e.Damage)})
	case events.CriticalHit:
		r.pokemon(e.Attacker).CritsLanded++
		r.append(Entry{Turn: t, ActionType: string(events.KindCriticalHit), Pokemon: e.Attacker, PokemonSide: e.AttackerSide, Message: "a critical hit!"})
	case events.Effectiveness:
		r.append(Entry{Turn: t, ActionType: string(events.KindEffectiveness), Target: e.Defender,
			Details: map[string]any{"effectiveness": e.Multiplier}, Message: effectivenessMessage(e.Multiplier)})
	case events.MoveMissed:
		r.append(Entry{Turn: t, ActionType: string(events.KindMoveMissed), Pokemon: e.Attacker, PokemonSide: e.AttackerSide,
			Target: e.Defender, TargetSide: e.DefenderSide, Details: map[string]any{"move": e.Move, "reason": string(e.Reason)},
			Message: e.Attacker + "'s attack missed!"})
	case events.MoveFailed:
		r.append(Entry{Turn: t, ActionType: string(events.KindMoveFailed), Pokemon: e.Attacker, PokemonSide: e.AttackerSide,
			Details: map[string]any{"move": e.Move, "reason": e.Reason}, Message: "but it failed!"})
	case events.MoveNoEffect:
		r.append(Entry{Turn: t, ActionType: string(events.KindMoveNoEffect), Pokemon: e.Attacker, PokemonSide: e.AttackerSide,
			Target: e.Defender, TargetSide: e.DefenderSide, Details: map[string]any{"move": e.Move},
			Message: "it doesn't affect " + e.Defender})

	case events.MultiHitStrike:
		r.pokemon(e.Attacker).DamageDealt += e.Damage
		if e.Crit {
			r.pokemon(e.Attacker).CritsLanded++
		}
		r.append(Entry{Turn: t, ActionType: string(events.KindMultiHitStrike), Pokemon: e.Attacker, Target: e.Defender,
			Details: map[string]any{"hit_number": e.HitNumber, "damage": e.Damage, "critical": e.Crit},
			Message: fmt.Sprintf("hit %d!", e.HitNumber)})
	case events.MultiHitComplete:
		r.append(Entry{Turn: t, ActionType: string(events.KindMultiHitComplete), Pokemon: e.Attacker,
			Details: map[string]any{"total_hits": e.TotalHits, "total_damage": e.TotalDamage},
			Message: fmt.Sprintf("hit %d time(s)!", e.TotalHits)})

	case events.StatusApplied:
		r.append(Entry{Turn: t, ActionType: string(events.KindStatusApplied), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"status": e.Status, "source": e.Source}, Message: e.Pokemon + " was afflicted with " + e.Status})
	case events.StatusCured:
		r.append(Entry{Turn: t, ActionType: string(events.KindStatusCured), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"status": e.Status, "reason": e.Reason}, Message: e.Pokemon + " recovered from " + e.Status})
	case events.StatusDamage:
		r.pokemon(e.Pokemon).ResidualDamage += e.Damage
		r.append(Entry{Turn: t, ActionType: string(events.KindStatusDamage), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"status": e.Status, "damage": e.Damage, "hp": e.HP, "max_hp": e.MaxHP},
			Message: fmt.Sprintf("%s is hurt by %s", e.Pokemon, e.Status)})
	case events.StatusPreventedAction:
		r.append(Entry{Turn: t, ActionType: string(events.KindStatusPreventedAction), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"status": e.Status}, Message: e.Pokemon + " is unable to move"})
	case events.ConfusionSelfHit:
		r.pokemon(e.Pokemon).ResidualDamage += e.Damage
		r.append(Entry{Turn: t, ActionType: string(events.KindConfusionSelfHit), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"damage": e.Damage, "hp": e.HP, "max_hp": e.MaxHP}, Message: e.Pokemon + " hurt itself in its confusion"})

	case events.StatChanged:
		r.append(Entry{Turn: t, ActionType: string(events.KindStatChanged), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"stat": e.Stat, "stages": e.Stages, "new_stage": e.NewStage, "source": e.Source},
			Message: fmt.Sprintf("%s's %s changed", e.Pokemon, e.Stat)})
	case events.StatLimitReached:
		r.append(Entry{Turn: t, ActionType: string(events.KindStatLimitReached), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"stat": e.Stat, "at_max": e.AtMax}, Message: e.Pokemon + "'s stat won't go further"})

	case events.ScreenActivated:
		r.append(Entry{Turn: t, ActionType: string(events.KindScreenActivated), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"screen": string(e.Screen)}, Message: screenMessage(e.Screen)})
	case events.ScreenExpired:
		r.append(Entry{Turn: t, ActionType: string(events.KindScreenExpired), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"screen": string(e.Screen)}, Message: string(e.Screen) + " wore off"})
	case events.ScreenBlocked:
		r.append(Entry{Turn: t, ActionType: string(events.KindScreenBlocked), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"screen": string(e.Screen)}, Message: "the attack was blocked"})
	case events.ScreenReducedDamage:
		r.append(Entry{Turn: t, ActionType: string(events.KindScreenReducedDamage), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"screen": string(e.Screen)}, Message: "damage was reduced"})

	case events.PokemonHealed:
		r.append(Entry{Turn: t, ActionType: string(events.KindPokemonHealed), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"amount": e.Amount, "hp": e.HP, "max_hp": e.MaxHP, "source": e.Source},
			Message: fmt.Sprintf("%s regained health", e.Pokemon)})
	case events.PokemonFainted:
		r.pokemon(e.Pokemon).TimesFainted++
		r.append(Entry{Turn: t, ActionType: string(events.KindPokemonFaint), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"cause": string(e.Cause)}, Message: e.Pokemon + " fainted!"})
	case events.HPDrained:
		r.append(Entry{Turn: t, ActionType: string(events.KindHPDrained), Pokemon: e.Source, Target: e.Target,
			Details: map[string]any{"amount": e.Amount}, Message: e.Source + " had its energy drained"})

	case events.PokemonTrapped:
		r.append(Entry{Turn: t, ActionType: string(events.KindPokemonTrapped), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"move": e.Move, "turns": e.Turns}, Message: e.Pokemon + " was trapped by " + e.Move})
	case events.TrapDamage:
		r.pokemon(e.Pokemon).ResidualDamage += e.Damage
		r.append(Entry{Turn: t, ActionType: string(events.KindTrapDamage), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"damage": e.Damage, "hp": e.HP, "max_hp": e.MaxHP}, Message: e.Pokemon + " is hurt by the trap"})
	case events.TrapEscaped:
		r.append(Entry{Turn: t, ActionType: string(events.KindTrapEscaped), Pokemon: e.Pokemon, PokemonSide: e.Side, Message: e.Pokemon + " broke free"})
	case events.SubstituteCreated:
		r.append(Entry{Turn: t, ActionType: string(events.KindSubstituteCreated), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"hp_cost": e.HPCost}, Message: e.Pokemon + " put in a substitute"})
	case events.SubstituteBroke:
		r.append(Entry{Turn: t, ActionType: string(events.KindSubstituteBroke), Pokemon: e.Pokemon, PokemonSide: e.Side, Message: "the substitute broke"})
	case events.SubstituteBlocked:
		r.append(Entry{Turn: t, ActionType: string(events.KindSubstituteBlocked), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"effect": e.Effect}, Message: "the substitute blocked the effect"})
	case events.RechargeNeeded:
		r.append(Entry{Turn: t, ActionType: string(events.KindRechargeNeeded), Pokemon: e.Pokemon, PokemonSide: e.Side, Message: e.Pokemon + " must recharge"})
	case events.ChargingMove:
		r.append(Entry{Turn: t, ActionType: string(events.KindChargingMove), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"move": e.Move, "message_key": e.MessageKey, "result": "charge_start"}, Message: e.Pokemon + " is charging " + e.Move})
	case events.RageIncreased:
		r.append(Entry{Turn: t, ActionType: string(events.KindRageIncreased), Pokemon: e.Pokemon, PokemonSide: e.Side, Message: e.Pokemon + "'s rage is building"})
	case events.LeechSeedPlanted:
		r.append(Entry{Turn: t, ActionType: string(events.KindLeechSeedPlanted), Pokemon: e.Pokemon, PokemonSide: e.Side, Message: e.Pokemon + " was seeded"})
	case events.LeechSeedDamage:
		r.pokemon(e.Seeded).ResidualDamage += e.Damage
		r.append(Entry{Turn: t, ActionType: string(events.KindLeechSeedDamage), Pokemon: e.Healer, Target: e.Seeded,
			Details: map[string]any{"damage": e.Damage}, Message: e.Healer + "'s health was drained"})
	case events.MistProtection:
		r.append(Entry{Turn: t, ActionType: string(events.KindMistProtection), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"stat": e.Stat}, Message: e.Pokemon + " is protected by mist"})
	case events.MoveDisabled:
		r.append(Entry{Turn: t, ActionType: string(events.KindMoveDisabled), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"move": e.Move, "turns": e.Turns}, Message: e.Pokemon + "'s " + e.Move + " was disabled"})
	case events.MoveReenabled:
		r.append(Entry{Turn: t, ActionType: string(events.KindMoveReenabled), Pokemon: e.Pokemon, PokemonSide: e.Side,
			Details: map[string]any{"move": e.Move}, Message: e.Pokemon + "'s " + e.Move + " is usable again"})
	case events.Info:
		r.append(Entry{Turn: t, ActionType: string(events.KindInfo), Message: e.Message})
	default:
		logrus.WithFields(logrus.Fields{"caller": getCaller(), "kind": ev.Kind()}).Warn("unrecognized event variant, logged generically")
		r.append(Entry{Turn: t, ActionType: string(ev.Kind()), Message: fmt.Sprintf("%v", ev)})
	}
}

func effectivenessMessage(mult float64) string {
	switch {
	case mult == 0:
		return "it had no effect!"
	case mult < 1:
		return "it's not very effective..."
	case mult > 1:
		return "it's super effective!"
	default:
		return ""
	}
}

func screenMessage(s events.ScreenKind) string {
	switch s {
	case events.ScreenReflect:
		return "Reflect raised its side's Defense"
	case events.ScreenLightScreen:
		return "Light Screen raised its side's Special"
	case events.ScreenMist:
		return "Mist shrouded its side in a protective mist"
	default:
		return "a screen was raised"
	}
}
