package domain

import "testing"

func TestLockerStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to LockerStatus
		ok       bool
	}{
		{LockerAvailable, LockerOccupied, true},
		{LockerAvailable, LockerMaintenance, true},
		{LockerOccupied, LockerAvailable, true},
		{LockerOccupied, LockerMaintenance, true},
		{LockerMaintenance, LockerAvailable, true},
		{LockerMaintenance, LockerOccupied, false},
		{LockerAvailable, LockerAvailable, false},
		{LockerOccupied, LockerOccupied, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestValidLockerStatus(t *testing.T) {
	for _, s := range []LockerStatus{LockerAvailable, LockerOccupied, LockerMaintenance} {
		if !ValidLockerStatus(s) {
			t.Errorf("%s should be valid", s)
		}
	}
	if ValidLockerStatus("broken") {
		t.Errorf("unknown status should not be valid")
	}
}
