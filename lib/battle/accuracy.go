package battle

// CheckHit resolves whether move hits defender when used by attacker (spec
// §4.2). A move with Accuracy == 0 is flagged fixed-accuracy and always
// hits (e.g. Swift-style moves, though none ship in the base Gen-1 dispatch
// table here use this flag — the hook exists for catalog-supplied moves
// that do).
func CheckHit(ctx *Context, attacker, defender *Battler, move Move) bool {
	if move.Accuracy == 0 {
		return true
	}
	threshold := float64(move.Accuracy) * accuracyMultiplier(attacker, defender)
	roll := ctx.RNG.Intn(100) + 1 // uniform integer in [1, 100]
	return float64(roll) <= threshold
}
