// Package battle implements the Generation-1 battle runtime: the damage and
// accuracy pipeline, the turn scheduler, the volatile-effect state machine,
// the special-move dispatcher, and the team manager. It is a pure,
// deterministic state machine driven entirely by an explicit *Context (see
// context.go) — no package-level mutable state, so concurrent batches never
// interfere with each other.
package battle

// Type is a Gen-1 elemental type. A creature carries 1-2.
type Type string

const (
	Normal   Type = "Normal"
	Fire     Type = "Fire"
	Water    Type = "Water"
	Electric Type = "Electric"
	Grass    Type = "Grass"
	Ice      Type = "Ice"
	Fighting Type = "Fighting"
	Poison   Type = "Poison"
	Ground   Type = "Ground"
	Flying   Type = "Flying"
	Psychic  Type = "Psychic"
	Bug      Type = "Bug"
	Rock     Type = "Rock"
	Ghost    Type = "Ghost"
	Dragon   Type = "Dragon"
)

// physicalTypes are the Gen-1/2/3 types whose effective category is
// physical regardless of the move's declared category (spec §3, Move).
var physicalTypes = map[Type]bool{
	Normal: true, Fighting: true, Poison: true, Ground: true,
	Flying: true, Bug: true, Rock: true, Ghost: true,
}

// Status is a creature's major status condition. At most one is active at
// a time (spec §3 invariant).
type Status string

const (
	StatusNone      Status = "none"
	StatusBurn      Status = "burn"
	StatusFreeze    Status = "freeze"
	StatusParalysis Status = "paralysis"
	StatusPoison    Status = "poison"
	StatusSleep     Status = "sleep"
)

// Category is a move's declared category. The *effective* category used by
// the damage pipeline is a function of the move's type in Gen 1 — see
// EffectiveCategory.
type Category string

const (
	CategoryPhysical Category = "physical"
	CategorySpecial  Category = "special"
	CategoryStatus   Category = "status"
)

// Stat names a stageable battle statistic.
type Stat string

const (
	StatAtk      Stat = "Atk"
	StatDef      Stat = "Def"
	StatSpc      Stat = "Spc"
	StatSpe      Stat = "Spe"
	StatAccuracy Stat = "Accuracy"
	StatEvasion  Stat = "Evasion"
)

// BaseStats are the five level-adjusted battle stats.
type BaseStats struct {
	HP  int
	Atk int
	Def int
	Spc int
	Spe int
}

// Move is immutable except for its mutable PP counter.
type Move struct {
	Name         string
	Type         Type
	Category     Category
	Power        int
	Accuracy     int // 1-100; 0 means fixed-accuracy (always hits)
	PP           int
	MaxPP        int
	StatusEffect Status
	StatusChance int // 1-100
	StatChanges  map[Stat]int
	TargetSelf   bool
}

// EffectiveCategory resolves the Gen-1 physical/special split: status moves
// are always status; damaging moves are physical iff their type is one of
// the eight Gen-1 physical types, else special (spec §3).
func (m Move) EffectiveCategory() Category {
	if m.Category == CategoryStatus {
		return CategoryStatus
	}
	if physicalTypes[m.Type] {
		return CategoryPhysical
	}
	return CategorySpecial
}

// HasPP reports whether the move can still be selected.
func (m Move) HasPP() bool { return m.PP > 0 }

// StageTable is a per-stat map of clamped stat stages, consolidating what
// the source keeps as many individual fields (spec §9 design note).
type StageTable struct {
	values map[Stat]int
}

// NewStageTable returns a table with every stage at 0.
func NewStageTable() StageTable {
	return StageTable{values: map[Stat]int{
		StatAtk: 0, StatDef: 0, StatSpc: 0, StatSpe: 0, StatAccuracy: 0, StatEvasion: 0,
	}}
}

// Get returns the current stage for stat, clamped to [-6, 6] by construction.
func (s StageTable) Get(stat Stat) int { return s.values[stat] }

// Modify applies delta, clamps to [-6, 6], and returns the actual change
// applied (which may be smaller than delta if the ceiling/floor was hit)
// and whether the limit was reached.
func (s *StageTable) Modify(stat Stat, delta int) (actual int, atLimit bool) {
	before := s.values[stat]
	after := before + delta
	if after > 6 {
		after = 6
	}
	if after < -6 {
		after = -6
	}
	s.values[stat] = after
	atLimit = after == 6 || after == -6
	return after - before, atLimit
}

// Reset sets every stage back to 0 (Haze).
func (s *StageTable) Reset() {
	for k := range s.values {
		s.values[k] = 0
	}
}

// NonZero returns the subset of stages that are not 0, for snapshotting.
func (s StageTable) NonZero() map[Stat]int {
	out := make(map[Stat]int)
	for k, v := range s.values {
		if v != 0 {
			out[k] = v
		}
	}
	return out
}

// Volatiles bags the per-battle, reset-on-switch mutable flags (spec §3).
// Consolidated into one struct so ResetOnSwitch is a single assignment
// rather than ~20, per the design notes.
type Volatiles struct {
	ConfusionTurns int
	IsSeeded       bool

	HasReflect       bool
	ReflectTurns     int
	HasLightScreen   bool
	LightScreenTurns int
	HasMist          bool
	MistTurns        int

	FocusEnergy bool

	SubstituteHP int

	DisabledMove string
	DisableTurns int

	LastMoveUsed        string
	LastDamageTaken     int
	LastDamagePhysical  bool
	LastDamageMoveType  Type

	IsCharging         bool
	ChargingMove       string
	MustRecharge       bool
	IsSemiInvulnerable bool

	MultiTurnMove    string
	MultiTurnCounter int

	IsRaging bool

	IsTrapped bool
	TrapTurns int
	TrappedBy BattlerRef // stable id, never a pointer (spec §9)
	TrapMove  string

	IsTransformed bool
	OriginalForm  *Form
}

// Form snapshots the pre-Transform identity so Transform can be undone by a
// switch-out (restoreTransform in team.go restores it).
type Form struct {
	Types     []Type
	BaseStats BaseStats
	Moves     []Move
}

// Reflect/Light Screen/Mist are modeled as per-Battler volatiles for
// simplicity since only one creature per side is ever active, matching
// team-battle semantics used throughout spec §4.3/§4.4.

// ResetOnSwitch clears every volatile flag except the screens (Reflect,
// Light Screen, Mist) and their turn counters, which it keeps on this
// Battler. They stay with the creature that switched out: the incoming
// creature does not receive them.
func (v *Volatiles) ResetOnSwitch() {
	reflect, reflectTurns := v.HasReflect, v.ReflectTurns
	light, lightTurns := v.HasLightScreen, v.LightScreenTurns
	mist, mistTurns := v.HasMist, v.MistTurns

	*v = Volatiles{}

	v.HasReflect, v.ReflectTurns = reflect, reflectTurns
	v.HasLightScreen, v.LightScreenTurns = light, lightTurns
	v.HasMist, v.MistTurns = mist, mistTurns
}

// BattlerRef is a stable (side, slot) identifier into the arena of
// Battlers owned by BattleState — replacing the source's cyclic
// back-references (trapped.trapped_by = trapper) with a value type that
// can always be safely re-resolved, even after the referenced creature has
// switched out or fainted (spec §9 design note).
type BattlerRef struct {
	Side Side
	Slot int
}

// Side tags which team a Battler or action belongs to.
type Side string

const (
	P1 Side = "P1"
	P2 Side = "P2"
)

func (s Side) Other() Side {
	if s == P1 {
		return P2
	}
	return P1
}

// Battler is a mutable record for one creature in battle.
type Battler struct {
	Name    string
	Types   []Type
	Level   int
	Side    Side

	Stats           BaseStats // level-adjusted
	SpeciesBaseStats BaseStats // pre-level, used for crit rate

	CurrentHP int
	MaxHP     int

	Status       Status
	SleepCounter int // 1-7 while asleep

	Stages StageTable

	Volatiles Volatiles

	Moves []Move
}

// IsAlive reports whether the creature can still act.
func (b *Battler) IsAlive() bool { return b.CurrentHP > 0 }

// Team is an ordered roster of 1-6 Battlers plus the active pointer.
type Team struct {
	TrainerName  string
	Side         Side
	Battlers     []*Battler
	ActiveIndex  int
}

// Active returns the currently active Battler.
func (t *Team) Active() *Battler { return t.Battlers[t.ActiveIndex] }

// IsDefeated reports whether every Battler on the team has fainted.
func (t *Team) IsDefeated() bool {
	for _, b := range t.Battlers {
		if b.IsAlive() {
			return false
		}
	}
	return true
}

// Clauses is the bag of pre-battle rule flags, consumed by the scheduler
// and dispatcher but never mutated mid-battle.
type Clauses struct {
	SleepClause   bool
	FreezeClause  bool
	OHKOClause    bool
	EvasionClause bool
}

// Generation selects the physical/special split rule. Only Gen 1 is fully
// specified; the knob exists so a future generation can be layered in
// without reshaping the damage pipeline's call sites.
type Generation int

const Gen1 Generation = 1

// EngineConfig bundles the tunables the source kept as module globals
// (spec §9 design note): GENERATION, STAB_MULTIPLIER, and friends.
type EngineConfig struct {
	Generation          Generation
	STABMultiplier       float64
	CritMultiplier       float64
	FocusEnergyCritBoost float64
	MinRandomFactor      int
	MaxRandomFactor      int
	RandomDivisor        int
	BurnAttackMultiplier float64
	BurnDamageFraction   int
	PoisonDamageFraction int
	ParalysisFailChance  float64
	FreezeThawChance     float64
	ParalysisSpeedFactor float64
}

// DefaultEngineConfig returns the authentic Gen-1 constants.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Generation:           Gen1,
		STABMultiplier:        1.5,
		CritMultiplier:        2.0,
		FocusEnergyCritBoost:  4.0,
		MinRandomFactor:       217,
		MaxRandomFactor:       255,
		RandomDivisor:         255,
		BurnAttackMultiplier:  0.5,
		BurnDamageFraction:    16,
		PoisonDamageFraction:  16,
		ParalysisFailChance:   0.25,
		FreezeThawChance:      0.20,
		ParalysisSpeedFactor:  0.25,
	}
}

// BattleState is the coherent whole: two teams, the turn counter, and the
// handles (bus/log/clauses/config) a Context carries by reference.
type BattleState struct {
	P1, P2    *Team
	Turn      int
	MaxTurns  int
	Clauses   Clauses
	Config    EngineConfig
}

// TeamFor returns the team on the given side.
func (s *BattleState) TeamFor(side Side) *Team {
	if side == P1 {
		return s.P1
	}
	return s.P2
}
