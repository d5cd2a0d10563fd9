package supply_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/quartermaster/supply"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		target *supply.AmmoType
		shots  int
		source *supply.AmmoType
		want   int
	}{
		{lrm5, 6, lrm20, 1},   // floor(6*5/20)
		{lrm5, 40, lrm20, 10}, // floor(40*5/20)
		{lrm20, 10, lrm5, 40}, // floor(10*20/5)
		{srm6, 1, srm2, 3},    // floor(1*6/2)
		{srm2, 2, srm6, 0},    // floor(2*2/6)
		{lrm5, 17, lrm5, 17},  // identity
		{lrm5, 0, lrm20, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s<-%d %s", tt.target.Name, tt.shots, tt.source.Name), func(t *testing.T) {
			assert.Equal(t, tt.want, supply.Convert(tt.target, tt.shots, tt.source))
		})
	}
}

func TestConvertNeeded(t *testing.T) {
	tests := []struct {
		target *supply.AmmoType
		shots  int
		source *supply.AmmoType
		want   int
	}{
		{lrm5, 10, lrm20, 40}, // ceil(10*20/5)
		{lrm20, 1, lrm5, 1},   // ceil(5/20) = 1
		{lrm20, 5, lrm5, 2},   // ceil(25/20)
		{srm6, 1, srm2, 1},    // max(1, ceil(2/6))
		{srm2, 5, srm6, 15},   // ceil(30/2)
		{lrm5, 9, lrm5, 9},    // identity
		{lrm5, 0, lrm20, 0},
		{lrm5, -3, lrm20, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d %s from %s", tt.shots, tt.target.Name, tt.source.Name), func(t *testing.T) {
			assert.Equal(t, tt.want, supply.ConvertNeeded(tt.target, tt.shots, tt.source))
		})
	}
}

func TestConvert_NeededNeverUnderSupplies(t *testing.T) {
	// Converting back what ConvertNeeded asks for always covers the request.
	racks := []int{1, 2, 4, 5, 6, 10, 15, 20}
	for _, rx := range racks {
		for _, ry := range racks {
			x := &supply.AmmoType{Name: fmt.Sprintf("X%d", rx), Family: "F", RackSize: rx}
			y := &supply.AmmoType{Name: fmt.Sprintf("Y%d", ry), Family: "F", RackSize: ry}
			for n := 0; n <= 60; n++ {
				needed := supply.ConvertNeeded(x, n, y)
				got := supply.Convert(x, needed, y)
				if got < n {
					t.Fatalf("rack %d<-%d: %d needed for %d shots converts back to only %d", rx, ry, needed, n, got)
				}
				if n > 0 && needed < 1 {
					t.Fatalf("rack %d<-%d: needed %d for %d shots", rx, ry, needed, n)
				}
			}
		}
	}
}

func TestAmmoType_IsCompatibleWith(t *testing.T) {
	assert.True(t, lrm5.IsCompatibleWith(lrm20))
	assert.True(t, srm2.IsCompatibleWith(srm6))
	assert.False(t, lrm5.IsCompatibleWith(lrm5), "same rack size")
	assert.False(t, lrm5.IsCompatibleWith(srm6), "different family")
	assert.False(t, lrm5.IsCompatibleWith(nil))
}
