package harness

import (
	"math"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/opd-ai/pokebattle-sim/lib/battlelog"
)

// floatTolerance is the relative tolerance spec §6 requires when comparing
// effectiveness/damage_breakdown floats in golden machine logs.
const floatTolerance = 1e-9

// stripVolatileMetadata zeroes the fields spec §6 excludes from golden
// comparison (battle_id, start_time, end_time) so two logs that are
// otherwise byte-identical don't fail on a timestamp or generated id.
func stripVolatileMetadata(log battlelog.MachineLog) battlelog.MachineLog {
	log.Metadata.BattleID = ""
	log.Metadata.StartTime = ""
	log.Metadata.EndTime = ""
	return log
}

// DiffGolden compares got against the golden want, ignoring volatile
// metadata and tolerating floats within floatTolerance, and returns a
// human-readable diff ("" means the logs match).
func DiffGolden(want, got battlelog.MachineLog) string {
	w := stripVolatileMetadata(want)
	g := stripVolatileMetadata(got)

	floatCmp := cmp.Comparer(func(a, b float64) bool {
		if a == b {
			return true
		}
		return math.Abs(a-b) <= floatTolerance*math.Max(math.Abs(a), math.Abs(b))
	})

	return cmp.Diff(w, g, floatCmp, cmpopts.EquateEmpty())
}
