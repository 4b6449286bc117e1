// Package seatmap builds the berth layout of a coach. The layout is seeded, so the
// same class and bay count always produce the same occupied berths.
package seatmap

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Domenick1991/railbooking/internal/domain"
)

const (
	seed              = 12345
	occupiedThreshold = 0.7
)

var (
	sleeperBay = []domain.BerthType{
		domain.BerthLower, domain.BerthMiddle, domain.BerthUpper,
		domain.BerthLower, domain.BerthMiddle, domain.BerthUpper,
		domain.BerthSideLower, domain.BerthSideUpper,
	}
	twoTierBay = []domain.BerthType{
		domain.BerthLower, domain.BerthUpper,
		domain.BerthLower, domain.BerthUpper,
		domain.BerthSideLower, domain.BerthSideUpper,
	}
	// berths per cabin in first class: three coupes, then three four-berth cabins
	firstClassCabins = []int{2, 2, 2, 4, 4, 4}
)

type source struct {
	counter float64
}

func newSource() *source {
	return &source{counter: seed}
}

func (s *source) next() float64 {
	x := math.Sin(s.counter) * 10000
	s.counter++
	return x - math.Floor(x)
}

func (s *source) occupied() bool {
	return s.next() > occupiedThreshold
}

// Generate returns the berths of a coach for the given travel class.
func Generate(travelClass string, bays int) []domain.Berth {
	src := newSource()
	switch {
	case strings.Contains(travelClass, "Sleeper"), strings.Contains(travelClass, "3"):
		return bayLayout(src, sleeperBay, bays)
	case strings.Contains(travelClass, "2"):
		return bayLayout(src, twoTierBay, bays)
	case strings.Contains(travelClass, "1"):
		return cabinLayout(src)
	default:
		return bayLayout(src, sleeperBay, bays)
	}
}

func bayLayout(src *source, pattern []domain.BerthType, bays int) []domain.Berth {
	if bays <= 0 {
		return []domain.Berth{}
	}
	berths := make([]domain.Berth, 0, bays*len(pattern))
	for bay := 1; bay <= bays; bay++ {
		base := (bay - 1) * len(pattern)
		for slot, typ := range pattern {
			berths = append(berths, domain.Berth{
				ID:       strconv.Itoa(base + slot + 1),
				Type:     typ,
				Bay:      bay,
				Occupied: src.occupied(),
			})
		}
	}
	return berths
}

func cabinLayout(src *source) []domain.Berth {
	berths := make([]domain.Berth, 0, 18)
	for i, size := range firstClassCabins {
		cabin := i + 1
		for slot := 1; slot <= size; slot++ {
			berths = append(berths, domain.Berth{
				ID:       fmt.Sprintf("C%d-%d", cabin, slot),
				Type:     domain.BerthType(fmt.Sprintf("Cabin %d - Berth %d", cabin, slot)),
				Bay:      cabin,
				Occupied: src.occupied(),
			})
		}
	}
	return berths
}

// Find returns the berth with the given id.
func Find(layout []domain.Berth, id string) (domain.Berth, bool) {
	for _, b := range layout {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Berth{}, false
}
