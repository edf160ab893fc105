package domain

import (
	"strconv"
	"strings"
)

// SpotType represents the physical kind of a parking spot
type SpotType string

const (
	SpotTypeRegular  SpotType = "REGULAR"
	SpotTypeCompact  SpotType = "COMPACT"
	SpotTypeDisabled SpotType = "DISABLED"
	SpotTypeElectric SpotType = "ELECTRIC"
)

// SpotStatus represents the occupancy status of a parking spot
type SpotStatus string

const (
	SpotStatusAvailable  SpotStatus = "AVAILABLE"
	SpotStatusOccupied   SpotStatus = "OCCUPIED"
	SpotStatusReserved   SpotStatus = "RESERVED"
	SpotStatusOutOfOrder SpotStatus = "OUT_OF_ORDER"
)

// Spot represents one physically allocatable parking position within a lot
type Spot struct {
	ID         int64
	LotID      int64
	SpotNumber string
	Type       SpotType
	Status     SpotStatus
	Floor      *string
	Section    *string
}

// IsAvailable returns true if the spot can be assigned
func (s *Spot) IsAvailable() bool {
	return s.Status == SpotStatusAvailable
}

// SpotNumberLess orders spot numbers naturally: "2" < "10", "A2" < "A10".
// Numbers that are entirely digits compare numerically, otherwise the
// shared non-digit prefix is compared first and the numeric suffix after it
func SpotNumberLess(a, b string) bool {
	ap, an, aok := splitSpotNumber(a)
	bp, bn, bok := splitSpotNumber(b)

	if ap != bp {
		return ap < bp
	}
	if aok && bok && an != bn {
		return an < bn
	}
	if aok != bok {
		return bok
	}
	return a < b
}

func splitSpotNumber(s string) (prefix string, number int64, ok bool) {
	i := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if i < 0 {
		return s, 0, false
	}
	n, err := strconv.ParseInt(s[i:], 10, 64)
	if err != nil {
		return s, 0, false
	}
	return s[:i], n, true
}
