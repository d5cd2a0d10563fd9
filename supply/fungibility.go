package supply

// =============================================================================
// FUNGIBILITY - Caliber conversion between compatible ammo types
// =============================================================================
//
// Both functions are integer-only. Convert rounds down: it is the amount that
// is safe to claim as available. ConvertNeeded rounds up with a floor of one:
// it is the amount that must be withdrawn so the quartermaster never
// under-withdraws. Rack sizes must be >= 1.

// Convert returns how many shots of target sourceShots of source yields:
// floor(sourceShots * target.RackSize / source.RackSize).
func Convert(target *AmmoType, sourceShots int, source *AmmoType) int {
	if target == source || target.Name == source.Name {
		return sourceShots
	}
	return sourceShots * target.RackSize / source.RackSize
}

// ConvertNeeded returns how many shots of source must be consumed to produce
// shotsOfTarget shots of target:
// max(1, ceil(shotsOfTarget * source.RackSize / target.RackSize)), or 0 when
// shotsOfTarget <= 0.
func ConvertNeeded(target *AmmoType, shotsOfTarget int, source *AmmoType) int {
	if shotsOfTarget <= 0 {
		return 0
	}
	if target == source || target.Name == source.Name {
		return shotsOfTarget
	}
	num := shotsOfTarget * source.RackSize
	needed := (num + target.RackSize - 1) / target.RackSize
	return max(1, needed)
}
