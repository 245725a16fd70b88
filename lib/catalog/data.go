package catalog

import (
	"github.com/opd-ai/pokebattle-sim/lib/battle"
	"github.com/opd-ai/pokebattle-sim/lib/statcalc"
)

func move(name string, t battle.Type, cat battle.Category, power, acc, pp int) battle.Move {
	return battle.Move{Name: name, Type: t, Category: cat, Power: power, Accuracy: acc, PP: pp, MaxPP: pp}
}

func statusMove(name string, t battle.Type, acc, pp int, changes map[battle.Stat]int, self bool) battle.Move {
	return battle.Move{Name: name, Type: t, Category: battle.CategoryStatus, Accuracy: acc, PP: pp, MaxPP: pp, StatChanges: changes, TargetSelf: self}
}

// bundledMoves covers every move named by lib/battle's dispatch tables plus
// a workable set of ordinary damaging/status moves for team-building.
var bundledMoves = []battle.Move{
	// Standard damaging moves.
	move("Tackle", battle.Normal, battle.CategoryPhysical, 35, 95, 35),
	move("Scratch", battle.Normal, battle.CategoryPhysical, 40, 100, 35),
	move("Ember", battle.Fire, battle.CategorySpecial, 40, 100, 25),
	move("Water-Gun", battle.Water, battle.CategorySpecial, 40, 100, 25),
	move("Thundershock", battle.Electric, battle.CategorySpecial, 40, 100, 30),
	move("Vine-Whip", battle.Grass, battle.CategorySpecial, 35, 100, 10),
	move("Gust", battle.Normal, battle.CategorySpecial, 40, 100, 35),
	move("Rock-Throw", battle.Rock, battle.CategoryPhysical, 50, 65, 15),
	move("Bite", battle.Normal, battle.CategoryPhysical, 60, 100, 25),
	move("Thunderbolt", battle.Electric, battle.CategorySpecial, 95, 100, 15),
	move("Flamethrower", battle.Fire, battle.CategorySpecial, 95, 100, 15),
	move("Hydro-Pump", battle.Water, battle.CategorySpecial, 120, 80, 5),
	move("Psychic", battle.Psychic, battle.CategorySpecial, 90, 100, 10),
	move("Ice-Beam", battle.Ice, battle.CategorySpecial, 95, 100, 10),
	move("Earthquake", battle.Ground, battle.CategoryPhysical, 100, 100, 10),
	move("Body-Slam", battle.Normal, battle.CategoryPhysical, 85, 100, 15),
	move("Hyper-Fang", battle.Normal, battle.CategoryPhysical, 80, 90, 15),
	move("Slash", battle.Normal, battle.CategoryPhysical, 70, 100, 20),
	move("Mega-Punch", battle.Normal, battle.CategoryPhysical, 80, 85, 20),
	move("Mega-Kick", battle.Normal, battle.CategoryPhysical, 120, 75, 5),
	move("Hydro-Pump-Special", battle.Water, battle.CategorySpecial, 120, 80, 5),

	// Status / stat-change moves (selfTargetMoves set in dispatch.go).
	statusMove("Growl", battle.Normal, 100, 40, map[battle.Stat]int{battle.StatAtk: -1}, false),
	statusMove("Tail-Whip", battle.Normal, 100, 30, map[battle.Stat]int{battle.StatDef: -1}, false),
	statusMove("Swords-Dance", battle.Normal, 0, 20, map[battle.Stat]int{battle.StatAtk: 2}, true),
	statusMove("Agility", battle.Psychic, 0, 30, map[battle.Stat]int{battle.StatSpe: 2}, true),
	statusMove("Barrier", battle.Psychic, 0, 30, map[battle.Stat]int{battle.StatDef: 2}, true),
	statusMove("Amnesia", battle.Psychic, 0, 20, map[battle.Stat]int{battle.StatSpc: 2}, true),
	statusMove("Withdraw", battle.Water, 0, 40, map[battle.Stat]int{battle.StatDef: 1}, true),
	statusMove("Harden", battle.Normal, 0, 30, map[battle.Stat]int{battle.StatDef: 1}, true),
	statusMove("Growth", battle.Normal, 0, 40, map[battle.Stat]int{battle.StatSpc: 1}, true),
	statusMove("Meditate", battle.Psychic, 0, 40, map[battle.Stat]int{battle.StatAtk: 1}, true),
	statusMove("Minimize", battle.Normal, 0, 20, map[battle.Stat]int{battle.StatEvasion: 1}, true),
	statusMove("Double-Team", battle.Normal, 0, 15, map[battle.Stat]int{battle.StatEvasion: 1}, true),
	func() battle.Move {
		m := statusMove("Sleep-Powder", battle.Grass, 75, 15, nil, false)
		m.StatusEffect = battle.StatusSleep
		m.StatusChance = 100
		return m
	}(),
	func() battle.Move {
		m := statusMove("Poison-Powder", battle.Grass, 75, 35, nil, false)
		m.StatusEffect = battle.StatusPoison
		m.StatusChance = 100
		return m
	}(),
	func() battle.Move {
		m := statusMove("Stun-Spore", battle.Grass, 75, 30, nil, false)
		m.StatusEffect = battle.StatusParalysis
		m.StatusChance = 100
		return m
	}(),
	func() battle.Move {
		m := statusMove("Hypnosis", battle.Psychic, 60, 20, nil, false)
		m.StatusEffect = battle.StatusSleep
		m.StatusChance = 100
		return m
	}(),

	// Moves carrying a status-chance secondary effect on an otherwise
	// standard damaging move.
	func() battle.Move {
		m := move("Thunder-Punch", battle.Electric, battle.CategoryPhysical, 75, 100, 15)
		m.StatusEffect = battle.StatusParalysis
		m.StatusChance = 10
		return m
	}(),
	func() battle.Move {
		m := move("Fire-Punch", battle.Fire, battle.CategoryPhysical, 75, 100, 15)
		m.StatusEffect = battle.StatusBurn
		m.StatusChance = 10
		return m
	}(),

	// Dispatch-table special moves.
	move("Dragon-Rage", battle.Dragon, battle.CategorySpecial, 0, 100, 10),
	move("Sonic-Boom", battle.Normal, battle.CategorySpecial, 0, 90, 20),
	move("Night-Shade", battle.Ghost, battle.CategorySpecial, 0, 100, 15),
	move("Seismic-Toss", battle.Fighting, battle.CategoryPhysical, 0, 100, 20),
	move("Guillotine", battle.Normal, battle.CategoryPhysical, 0, 30, 5),
	move("Horn-Drill", battle.Normal, battle.CategoryPhysical, 0, 30, 5),
	move("Fissure", battle.Ground, battle.CategoryPhysical, 0, 30, 5),
	move("Super-Fang", battle.Normal, battle.CategoryPhysical, 0, 90, 10),
	statusMove("Recover", battle.Normal, 0, 20, nil, true),
	statusMove("Soft-Boiled", battle.Normal, 0, 10, nil, true),
	statusMove("Rest", battle.Psychic, 0, 10, nil, true),
	statusMove("Haze", battle.Ice, 0, 30, nil, false),
	statusMove("Leech-Seed", battle.Grass, 90, 10, nil, false),
	statusMove("Reflect", battle.Psychic, 0, 20, nil, true),
	statusMove("Light-Screen", battle.Psychic, 0, 30, nil, true),
	statusMove("Mist", battle.Ice, 0, 30, nil, true),
	statusMove("Focus-Energy", battle.Normal, 0, 30, nil, true),
	statusMove("Substitute", battle.Normal, 0, 10, nil, true),
	move("Counter", battle.Fighting, battle.CategoryPhysical, 0, 100, 20),
	statusMove("Disable", battle.Normal, 55, 20, nil, false),
	statusMove("Metronome", battle.Normal, 0, 10, nil, false),
	statusMove("Mirror-Move", battle.Flying, 0, 20, nil, false),
	statusMove("Transform", battle.Normal, 0, 10, nil, false),
	statusMove("Conversion", battle.Normal, 0, 30, nil, true),
	statusMove("Splash", battle.Normal, 0, 40, nil, true),
	statusMove("Teleport", battle.Psychic, 0, 20, nil, true),
	statusMove("Roar", battle.Normal, 100, 20, nil, false),
	statusMove("Whirlwind", battle.Normal, 100, 20, nil, false),
	func() battle.Move { m := move("Absorb", battle.Grass, battle.CategorySpecial, 20, 100, 20); return m }(),
	func() battle.Move { m := move("Mega-Drain", battle.Grass, battle.CategorySpecial, 40, 100, 10); return m }(),
	func() battle.Move { m := move("Leech-Life", battle.Bug, battle.CategoryPhysical, 20, 100, 15); return m }(),
	func() battle.Move { m := move("Dream-Eater", battle.Psychic, battle.CategorySpecial, 100, 100, 15); return m }(),
	move("Explosion", battle.Normal, battle.CategoryPhysical, 170, 100, 5),
	move("Self-Destruct", battle.Normal, battle.CategoryPhysical, 130, 100, 5),
	move("High-Jump-Kick", battle.Fighting, battle.CategoryPhysical, 85, 90, 20),
	move("Jump-Kick", battle.Fighting, battle.CategoryPhysical, 70, 95, 25),
	move("Hyper-Beam", battle.Normal, battle.CategorySpecial, 150, 90, 5),
	move("Solar-Beam", battle.Grass, battle.CategorySpecial, 120, 100, 10),
	move("Dig", battle.Ground, battle.CategoryPhysical, 100, 100, 10),
	move("Fly", battle.Flying, battle.CategoryPhysical, 70, 95, 15),
	move("Skull-Bash", battle.Normal, battle.CategoryPhysical, 100, 100, 15),
	move("Sky-Attack", battle.Flying, battle.CategoryPhysical, 140, 90, 5),
	move("Razor-Wind", battle.Normal, battle.CategorySpecial, 80, 75, 10),
	move("Thrash", battle.Normal, battle.CategoryPhysical, 90, 100, 20),
	move("Petal-Dance", battle.Grass, battle.CategorySpecial, 70, 100, 20),
	move("Rage", battle.Normal, battle.CategoryPhysical, 20, 100, 20),
	move("Wrap", battle.Normal, battle.CategoryPhysical, 15, 85, 20),
	move("Bind", battle.Normal, battle.CategoryPhysical, 15, 75, 20),
	move("Clamp", battle.Water, battle.CategoryPhysical, 35, 75, 10),
	move("Fire-Spin", battle.Fire, battle.CategorySpecial, 15, 70, 15),
	move("Fury-Attack", battle.Normal, battle.CategoryPhysical, 15, 85, 20),
	move("Fury-Swipes", battle.Normal, battle.CategoryPhysical, 18, 80, 15),
	move("Pin-Missile", battle.Bug, battle.CategoryPhysical, 14, 85, 20),
	move("Spike-Cannon", battle.Normal, battle.CategoryPhysical, 20, 100, 15),
	move("Barrage", battle.Normal, battle.CategoryPhysical, 15, 85, 20),
	move("Comet-Punch", battle.Normal, battle.CategoryPhysical, 18, 85, 15),
	move("Double-Slap", battle.Normal, battle.CategoryPhysical, 15, 85, 10),
	move("Double-Kick", battle.Fighting, battle.CategoryPhysical, 30, 100, 30),
	move("Bonemerang", battle.Ground, battle.CategoryPhysical, 50, 90, 10),
	func() battle.Move {
		m := move("Twineedle", battle.Bug, battle.CategoryPhysical, 25, 100, 20)
		m.StatusEffect = battle.StatusPoison
		m.StatusChance = 20
		return m
	}(),
}

func species(name string, types []battle.Type, base statcalc.BaseStats, moves []string) Species {
	return Species{Name: name, Types: types, BaseStats: base, Learnset: moves}
}

// bundledSpecies is a small, authentic slice of the Gen-1 roster, enough to
// exercise every physical/special/status move category above.
var bundledSpecies = []Species{
	species("Bulbasaur", []battle.Type{battle.Grass, battle.Poison},
		statcalc.BaseStats{HP: 45, Attack: 49, Defense: 49, Special: 65, Speed: 45},
		[]string{"Tackle", "Growl", "Vine-Whip", "Leech-Seed", "Sleep-Powder", "Solar-Beam"}),
	species("Charmander", []battle.Type{battle.Fire},
		statcalc.BaseStats{HP: 39, Attack: 52, Defense: 43, Special: 50, Speed: 65},
		[]string{"Scratch", "Growl", "Ember", "Fire-Punch", "Slash", "Flamethrower"}),
	species("Squirtle", []battle.Type{battle.Water},
		statcalc.BaseStats{HP: 44, Attack: 48, Defense: 65, Special: 50, Speed: 43},
		[]string{"Tackle", "Withdraw", "Water-Gun", "Bite", "Hydro-Pump"}),
	species("Pikachu", []battle.Type{battle.Electric},
		statcalc.BaseStats{HP: 35, Attack: 55, Defense: 30, Special: 50, Speed: 90},
		[]string{"Thundershock", "Growl", "Thunder-Punch", "Agility", "Thunderbolt"}),
	species("Gengar", []battle.Type{battle.Ghost, battle.Poison},
		statcalc.BaseStats{HP: 60, Attack: 65, Defense: 60, Special: 130, Speed: 110},
		[]string{"Night-Shade", "Hypnosis", "Psychic", "Explosion", "Dream-Eater"}),
	species("Alakazam", []battle.Type{battle.Psychic},
		statcalc.BaseStats{HP: 55, Attack: 50, Defense: 45, Special: 135, Speed: 120},
		[]string{"Psychic", "Reflect", "Recover", "Disable"}),
	species("Snorlax", []battle.Type{battle.Normal},
		statcalc.BaseStats{HP: 160, Attack: 110, Defense: 65, Special: 65, Speed: 30},
		[]string{"Body-Slam", "Rest", "Earthquake", "Self-Destruct", "Hyper-Beam"}),
	species("Gyarados", []battle.Type{battle.Water, battle.Flying},
		statcalc.BaseStats{HP: 95, Attack: 125, Defense: 79, Special: 100, Speed: 81},
		[]string{"Bite", "Hydro-Pump", "Dragon-Rage", "Thrash"}),
	species("Jynx", []battle.Type{battle.Ice, battle.Psychic},
		statcalc.BaseStats{HP: 65, Attack: 50, Defense: 35, Special: 115, Speed: 95},
		[]string{"Ice-Beam", "Psychic", "Lovely-Kiss", "Rest"}),
	species("Machamp", []battle.Type{battle.Fighting},
		statcalc.BaseStats{HP: 90, Attack: 130, Defense: 80, Special: 65, Speed: 55},
		[]string{"Seismic-Toss", "Submission", "Counter", "Earthquake"}),
}
