// README: Vehicle-to-slot compatibility rules.
package parking

import "parkgrid/internal/types"

// CompatibleSizes returns the slot sizes a vehicle may occupy: any slot at
// least as large as the vehicle under small < medium < large.
func CompatibleSizes(vehicle types.Size) []types.Size {
	switch vehicle {
	case types.SizeSmall:
		return []types.Size{types.SizeSmall, types.SizeMedium, types.SizeLarge}
	case types.SizeMedium:
		return []types.Size{types.SizeMedium, types.SizeLarge}
	default:
		return []types.Size{types.SizeLarge}
	}
}
