package seatmap

import (
	"math"
	"testing"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectedOccupied(i int) bool {
	x := math.Sin(float64(seed+i)) * 10000
	return x-math.Floor(x) > occupiedThreshold
}

func TestGenerate_Sleeper(t *testing.T) {
	layout := Generate("Sleeper (SL)", 4)
	require.Len(t, layout, 32)

	for i, b := range layout {
		assert.Equal(t, sleeperBay[i%8], b.Type)
		assert.Equal(t, i/8+1, b.Bay)
		assert.Equal(t, expectedOccupied(i), b.Occupied, "berth %s", b.ID)
	}
	assert.Equal(t, "1", layout[0].ID)
	assert.Equal(t, "9", layout[8].ID)
	assert.Equal(t, "32", layout[31].ID)
}

func TestGenerate_ThreeTierUsesSleeperLayout(t *testing.T) {
	assert.Equal(t, Generate("Sleeper", 2), Generate("AC 3 Tier (3A)", 2))
}

func TestGenerate_TwoTier(t *testing.T) {
	layout := Generate("AC 2 Tier (2A)", 2)
	require.Len(t, layout, 12)

	types := make([]domain.BerthType, 0, 6)
	for _, b := range layout[:6] {
		types = append(types, b.Type)
	}
	assert.Equal(t, []domain.BerthType{"LB", "UB", "LB", "UB", "SL", "SU"}, types)
	assert.Equal(t, "7", layout[6].ID)
	assert.Equal(t, 2, layout[6].Bay)
}

func TestGenerate_FirstClassCabins(t *testing.T) {
	layout := Generate("AC First Class (1A)", 99)
	require.Len(t, layout, 18)

	assert.Equal(t, "C1-1", layout[0].ID)
	assert.Equal(t, "C3-2", layout[5].ID)
	assert.Equal(t, "C4-1", layout[6].ID)
	assert.Equal(t, "C6-4", layout[17].ID)
	assert.Equal(t, domain.BerthType("Cabin 6 - Berth 4"), layout[17].Type)
	assert.Equal(t, 6, layout[17].Bay)
	for i, b := range layout {
		assert.Equal(t, expectedOccupied(i), b.Occupied)
	}
}

func TestGenerate_DefaultClass(t *testing.T) {
	assert.Equal(t, Generate("Sleeper", 4), Generate("All Classes", 4))
}

func TestGenerate_SleeperWinsOverOtherDigits(t *testing.T) {
	// "3" is checked before "2" and "1"
	layout := Generate("123", 1)
	assert.Len(t, layout, 8)
}

func TestGenerate_NoBays(t *testing.T) {
	assert.Empty(t, Generate("Sleeper", 0))
	assert.Empty(t, Generate("2A", -3))
	assert.Len(t, Generate("1A", 0), 18)
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate("AC 2 Tier (2A)", 4)
	b := Generate("AC 2 Tier (2A)", 4)
	assert.Equal(t, a, b)
}

func TestFind(t *testing.T) {
	layout := Generate("Sleeper", 1)
	b, ok := Find(layout, "7")
	assert.True(t, ok)
	assert.Equal(t, domain.BerthSideLower, b.Type)

	_, ok = Find(layout, "9")
	assert.False(t, ok)
}
