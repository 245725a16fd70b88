package battle

import (
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/pokebattle-sim/lib/events"
)

// fakeRNG is a scripted RNG for pinning down the otherwise-random branches
// (crit rolls, accuracy rolls, speed ties, multi-hit counts) in a
// deterministic unit test.
type fakeRNG struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (f *fakeRNG) Float64() float64 {
	if f.fi >= len(f.floats) {
		return 0
	}
	v := f.floats[f.fi]
	f.fi++
	return v
}

func (f *fakeRNG) Intn(n int) int {
	if f.ii >= len(f.ints) {
		return 0
	}
	v := f.ints[f.ii]
	f.ii++
	if v >= n {
		v = n - 1
	}
	return v
}

func newTestBattler(name string, types []Type, stats BaseStats, side Side, moves ...Move) *Battler {
	return &Battler{
		Name: name, Types: types, Level: 50, Side: side,
		Stats: stats, SpeciesBaseStats: stats,
		CurrentHP: stats.HP, MaxHP: stats.HP,
		Stages: NewStageTable(),
		Moves:  moves,
	}
}

func newTestContextWithRNG(p1, p2 *Battler, rng RNG) *Context {
	state := &BattleState{
		P1:       &Team{Side: P1, Battlers: []*Battler{p1}},
		P2:       &Team{Side: P2, Battlers: []*Battler{p2}},
		MaxTurns: 100,
		Config:   DefaultEngineConfig(),
	}
	return &Context{
		Bus:   events.NewBus(true),
		RNG:   rng,
		State: state,
		Log:   logrus.StandardLogger(),
	}
}
