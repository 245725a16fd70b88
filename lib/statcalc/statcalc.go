// Package statcalc implements the pure Gen-1 level/IV/EV → battle-stat
// formulas. It has no dependency on lib/battle and is consulted once, at
// team-construction time, by the external collaborator that builds Teams.
package statcalc

import "math"

// IVs are Gen-1 Individual Values (0-15 per stat).
type IVs struct {
	HP, Attack, Defense, Special, Speed int
}

// EVs are Gen-1 Effort Values (0-65535 per stat).
type EVs struct {
	HP, Attack, Defense, Special, Speed int
}

// MaxEVs returns the competitive default: every stat maxed.
func MaxEVs() EVs {
	return EVs{HP: 65535, Attack: 65535, Defense: 65535, Special: 65535, Speed: 65535}
}

// BaseStats are a species' unmodified stats.
type BaseStats struct {
	HP, Attack, Defense, Special, Speed int
}

// Stats are the level-adjusted battle stats produced by Calculate.
type Stats struct {
	HP, Attack, Defense, Special, Speed int
}

// HP computes the Gen-1 HP formula:
// floor(((base+iv)*2 + floor(sqrt(ev)/4)) * level/100) + level + 10.
func HP(base, iv, ev, level int) int {
	evComponent := math.Floor(math.Sqrt(float64(ev)) / 4)
	inner := float64((base+iv)*2) + evComponent
	return int(math.Floor(inner*float64(level)/100)) + level + 10
}

// OtherStat computes the Gen-1 non-HP formula:
// floor(((base+iv)*2 + floor(sqrt(ev)/4)) * level/100) + 5.
func OtherStat(base, iv, ev, level int) int {
	evComponent := math.Floor(math.Sqrt(float64(ev)) / 4)
	inner := float64((base+iv)*2) + evComponent
	return int(math.Floor(inner*float64(level)/100)) + 5
}

// Calculate derives the full Stats set at level from base, ivs, and evs.
func Calculate(base BaseStats, ivs IVs, evs EVs, level int) Stats {
	return Stats{
		HP:      HP(base.HP, ivs.HP, evs.HP, level),
		Attack:  OtherStat(base.Attack, ivs.Attack, evs.Attack, level),
		Defense: OtherStat(base.Defense, ivs.Defense, evs.Defense, level),
		Special: OtherStat(base.Special, ivs.Special, evs.Special, level),
		Speed:   OtherStat(base.Speed, ivs.Speed, evs.Speed, level),
	}
}
