package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRideStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from RideStatus
		to   RideStatus
		want bool
	}{
		{RideStatusRequested, RideStatusConfirmed, true},
		{RideStatusConfirmed, RideStatusDriverAssigned, true},
		{RideStatusConfirmed, RideStatusPickup, true},
		{RideStatusPickup, RideStatusInProgress, true},
		{RideStatusInProgress, RideStatusCompleted, true},
		{RideStatusPickup, RideStatusCancelled, true},
		{RideStatusInProgress, RideStatusPickup, false},
		{RideStatusConfirmed, RideStatusConfirmed, false},
		{RideStatusCompleted, RideStatusCancelled, false},
		{RideStatusCancelled, RideStatusConfirmed, false},
		{RideStatusConfirmed, RideStatus("FLYING"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPoolingGroup_HasSeat(t *testing.T) {
	g := &PoolingGroup{Representative: &RideBooking{MaxPassengers: 3}, MemberCount: 2}
	assert.True(t, g.HasSeat())

	g.MemberCount = 3
	assert.False(t, g.HasSeat())
}
