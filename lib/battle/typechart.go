package battle

// typeChart is the authoritative Gen-1 effectiveness table: moveType ->
// defenderType -> multiplier. A missing (attacker, defender) pair defaults
// to 1 (neutral). This is transcribed from the historical Gen-1 data, not
// later-generation charts — see spec §9 for the two deliberate deviations
// this preserves (Ghost-vs-Psychic asymmetry, Psychic-vs-Ghost neutrality).
var typeChart = map[Type]map[Type]float64{
	Normal:   {Rock: 0.5, Ghost: 0},
	Fire:     {Fire: 0.5, Water: 0.5, Grass: 2, Ice: 2, Bug: 2, Rock: 0.5, Dragon: 0.5},
	Water:    {Fire: 2, Water: 0.5, Grass: 0.5, Ground: 2, Rock: 2, Dragon: 0.5},
	Electric: {Water: 2, Electric: 0.5, Grass: 0.5, Ground: 0, Flying: 2, Dragon: 0.5},
	Grass:    {Fire: 0.5, Water: 2, Grass: 0.5, Poison: 0.5, Ground: 2, Flying: 0.5, Bug: 0.5, Rock: 2, Dragon: 0.5},
	Ice:      {Water: 0.5, Grass: 2, Ice: 0.5, Ground: 2, Flying: 2, Dragon: 2},
	Fighting: {Normal: 2, Ice: 2, Poison: 0.5, Flying: 0.5, Psychic: 0.5, Bug: 0.5, Rock: 2, Ghost: 0},
	Poison:   {Grass: 2, Poison: 0.5, Ground: 0.5, Bug: 2, Rock: 0.5, Ghost: 0.5},
	Ground:   {Fire: 2, Electric: 2, Grass: 0.5, Poison: 2, Flying: 0, Bug: 0.5, Rock: 2},
	Flying:   {Electric: 0.5, Grass: 2, Fighting: 2, Bug: 2, Rock: 0.5},
	Psychic:  {Fighting: 2, Poison: 2, Psychic: 0.5},
	Bug:      {Fire: 0.5, Grass: 2, Fighting: 0.5, Poison: 2, Flying: 0.5, Psychic: 2, Ghost: 0.5},
	Rock:     {Fire: 2, Ice: 2, Fighting: 0.5, Ground: 0.5, Flying: 2, Bug: 2},
	Ghost:    {Normal: 0, Psychic: 0, Ghost: 2},
	Dragon:   {Dragon: 2},
}

// Effectiveness returns the product of the type-chart entry for moveType
// against every one of the defender's types (spec §4.1 step 6).
func Effectiveness(moveType Type, defenderTypes []Type) float64 {
	mult := 1.0
	row := typeChart[moveType]
	for _, t := range defenderTypes {
		if v, ok := row[t]; ok {
			mult *= v
		} else {
			mult *= 1.0
		}
	}
	return mult
}
