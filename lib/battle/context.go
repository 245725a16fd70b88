package battle

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/pokebattle-sim/lib/events"
)

// RNG is the minimal random source the battle runtime consults. Satisfied
// by *rand.Rand; tests substitute a scripted implementation to pin down
// otherwise-random branches (crit rolls, speed ties, multi-hit counts).
type RNG interface {
	Float64() float64
	Intn(n int) int
}

// Context is the explicit dependency bundle every core component takes
// instead of reaching for a package-level singleton (spec §9 design note:
// "the source uses process-wide handles ... the module-level state is an
// anti-pattern for concurrent batches"). A Context belongs to exactly one
// battle.
type Context struct {
	Bus    *events.Bus
	RNG    RNG
	State  *BattleState
	Log    logrus.FieldLogger
}

// NewContext builds a Context seeded deterministically from seed. Two
// Contexts built from the same seed and driven with the same actions
// produce byte-identical event histories (spec §8 property 1).
func NewContext(state *BattleState, seed int64, log logrus.FieldLogger) *Context {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Context{
		Bus:   events.NewBus(true),
		RNG:   rand.New(rand.NewSource(seed)),
		State: state,
		Log:   log,
	}
}

// emit publishes e on the bus. Callers build e with Base{Turn:
// c.State.Turn} so every event's ordinal reflects the turn in progress.
func (c *Context) emit(e events.Event) {
	c.Bus.Emit(e)
}

// turn returns events.Base stamped with the current turn ordinal, for
// terser event construction at call sites.
func (c *Context) turn() events.Base {
	return events.Base{Turn: c.State.Turn}
}
