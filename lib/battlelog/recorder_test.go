package battlelog

import (
	"testing"
	"time"

	"github.com/opd-ai/pokebattle-sim/lib/events"
)

func TestRecorder_CapturesMetadataAndEntries(t *testing.T) {
	bus := events.NewBus(true)
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rec := NewRecorder("battle_test", start, []string{"Pikachu"}, []string{"Bulbasaur"}, "Red", "Blue")
	rec.Subscribe(bus)

	bus.Emit(events.TurnStart{Base: events.Base{Turn: 1}})
	bus.Emit(events.MoveUsed{Base: events.Base{Turn: 1}, Attacker: "Pikachu", AttackerSide: "P1", Move: "Thunderbolt", MoveType: "Electric"})
	bus.Emit(events.DamageDealt{Base: events.Base{Turn: 1}, Attacker: "Pikachu", AttackerSide: "P1", Defender: "Bulbasaur", DefenderSide: "P2", Damage: 30, HP: 30, MaxHP: 60, Move: "Thunderbolt"})
	bus.Emit(events.TurnEnd{Base: events.Base{Turn: 1}})

	log := rec.Finish(start.Add(time.Second), "P1", "fainted", 1)

	if len(log.Entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(log.Entries))
	}
	if log.Metadata.Winner == nil || *log.Metadata.Winner != "P1" {
		t.Errorf("expected winner P1, got %v", log.Metadata.Winner)
	}
	summary := log.Metadata.Summary.PerPokemon["Pikachu"]
	if summary == nil || summary.MovesUsed != 1 {
		t.Fatalf("expected Pikachu to have 1 move used, got %+v", summary)
	}
	defSummary := log.Metadata.Summary.PerPokemon["Bulbasaur"]
	if defSummary == nil || defSummary.DamageTaken != 30 {
		t.Fatalf("expected Bulbasaur to have taken 30 damage, got %+v", defSummary)
	}
}

func TestRenderHuman_StripsANSIAndIncludesFooter(t *testing.T) {
	bus := events.NewBus(true)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := NewRecorder("battle_test", start, []string{"Pikachu"}, []string{"Bulbasaur"}, "Red", "Blue")
	rec.Subscribe(bus)
	bus.Emit(events.TurnStart{Base: events.Base{Turn: 1}})
	bus.Emit(events.MoveUsed{Base: events.Base{Turn: 1}, Attacker: "Pikachu", AttackerSide: "P1", Move: "Thunderbolt"})
	bus.Emit(events.TurnEnd{Base: events.Base{Turn: 1}})
	log := rec.Finish(start, "P1", "fainted", 1)

	human := RenderHuman(log)
	if human == "" {
		t.Fatal("expected non-empty human log")
	}
	if containsEscape(human) {
		t.Error("human log must not contain raw ANSI escape sequences")
	}
}

func containsEscape(s string) bool {
	for _, r := range s {
		if r == '\x1b' {
			return true
		}
	}
	return false
}

func TestMachineLog_RoundTripsThroughDisk(t *testing.T) {
	bus := events.NewBus(true)
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rec := NewRecorder("battle_roundtrip", start, []string{"Pikachu"}, []string{"Bulbasaur"}, "Red", "Blue")
	rec.Subscribe(bus)
	bus.Emit(events.TurnStart{Base: events.Base{Turn: 1}})
	bus.Emit(events.MoveUsed{Base: events.Base{Turn: 1}, Attacker: "Pikachu", AttackerSide: "P1", Move: "Thunderbolt", MoveType: "Electric"})
	bus.Emit(events.DamageDealt{Base: events.Base{Turn: 1}, Attacker: "Pikachu", AttackerSide: "P1", Defender: "Bulbasaur", DefenderSide: "P2", Damage: 40, HP: 20, MaxHP: 60, Move: "Thunderbolt"})
	bus.Emit(events.TurnEnd{Base: events.Base{Turn: 1}})
	want := rec.Finish(start.Add(time.Second), "P1", "fainted", 1)

	dir := t.TempDir()
	path := dir + "/battle.json"
	if err := WriteMachineLog(path, want); err != nil {
		t.Fatalf("WriteMachineLog failed: %v", err)
	}
	got, err := ReadMachineLog(path)
	if err != nil {
		t.Fatalf("ReadMachineLog failed: %v", err)
	}

	if len(got.Entries) != len(want.Entries) {
		t.Fatalf("entry count changed across round-trip: want %d, got %d", len(want.Entries), len(got.Entries))
	}
	if got.Metadata.Winner == nil || *got.Metadata.Winner != *want.Metadata.Winner {
		t.Errorf("winner changed across round-trip: want %v, got %v", want.Metadata.Winner, got.Metadata.Winner)
	}
	if got.Metadata.TotalTurns != want.Metadata.TotalTurns {
		t.Errorf("total_turns changed across round-trip: want %d, got %d", want.Metadata.TotalTurns, got.Metadata.TotalTurns)
	}
}
