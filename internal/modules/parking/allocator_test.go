package parking

import (
	"testing"

	"parkgrid/internal/types"
)

func TestCompatibleSizes(t *testing.T) {
	tests := []struct {
		vehicle types.Size
		want    []types.Size
	}{
		{types.SizeSmall, []types.Size{types.SizeSmall, types.SizeMedium, types.SizeLarge}},
		{types.SizeMedium, []types.Size{types.SizeMedium, types.SizeLarge}},
		{types.SizeLarge, []types.Size{types.SizeLarge}},
	}
	for _, tt := range tests {
		t.Run(tt.vehicle.String(), func(t *testing.T) {
			got := CompatibleSizes(tt.vehicle)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

// No slot smaller than the vehicle may ever be compatible.
func TestCompatibleSizes_NeverSmaller(t *testing.T) {
	for _, vehicle := range []types.Size{types.SizeSmall, types.SizeMedium, types.SizeLarge} {
		for _, slot := range CompatibleSizes(vehicle) {
			if slot < vehicle {
				t.Errorf("vehicle %s offered smaller slot %s", vehicle, slot)
			}
		}
	}
}
