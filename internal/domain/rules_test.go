package domain

import "testing"

func TestIsBust(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		claimed   int
		checkOut  CheckRule
		want      bool
	}{
		{name: "Overshoot", remaining: 40, claimed: 41, checkOut: CheckDouble, want: true},
		{name: "ExactZeroNeverBusts", remaining: 40, claimed: 40, checkOut: CheckDouble, want: false},
		{name: "LeaveOneDoubleOut", remaining: 101, claimed: 100, checkOut: CheckDouble, want: true},
		{name: "LeaveOneMasterOut", remaining: 101, claimed: 100, checkOut: CheckMaster, want: true},
		{name: "LeaveOneOpenOut", remaining: 101, claimed: 100, checkOut: CheckOpen, want: false},
		{name: "LeaveTwoDoubleOut", remaining: 102, claimed: 100, checkOut: CheckDouble, want: false},
		{name: "PlainScore", remaining: 501, claimed: 180, checkOut: CheckDouble, want: false},
		{name: "ZeroVisit", remaining: 32, claimed: 0, checkOut: CheckDouble, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBust(tt.remaining, tt.claimed, tt.checkOut); got != tt.want {
				t.Errorf("IsBust(%d, %d, %s) = %v, want %v", tt.remaining, tt.claimed, tt.checkOut, got, tt.want)
			}
		})
	}
}

func TestIsValidCheckout(t *testing.T) {
	if !IsValidCheckout(40, 40) {
		t.Errorf("40 out of 40 should be a valid checkout")
	}
	if IsValidCheckout(40, 39) {
		t.Errorf("39 out of 40 should not be a valid checkout")
	}
	if !IsValidCheckout(170, 170) {
		t.Errorf("170 out of 170 should be a valid checkout")
	}
}

func TestMinDartsForScore(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		checkOut CheckRule
		want     int
	}{
		{name: "DoubleTops", score: 40, checkOut: CheckDouble, want: 1},
		{name: "Bullseye", score: 50, checkOut: CheckDouble, want: 1},
		{name: "OddBelowForty", score: 39, checkOut: CheckDouble, want: 2},
		{name: "EvenAboveForty", score: 42, checkOut: CheckDouble, want: 2},
		{name: "MaxTwoDartFinish", score: 110, checkOut: CheckDouble, want: 2},
		{name: "JustAboveTwoDartRange", score: 111, checkOut: CheckDouble, want: 3},
		{name: "BigFish", score: 170, checkOut: CheckDouble, want: 3},
		{name: "NoFinishScore", score: 169, checkOut: CheckDouble, want: 3},
		{name: "MasterTriple", score: 57, checkOut: CheckMaster, want: 1},
		{name: "MasterDouble", score: 40, checkOut: CheckMaster, want: 1},
		{name: "MasterOuterBull", score: 25, checkOut: CheckMaster, want: 1},
		{name: "MasterTwoDarts", score: 61, checkOut: CheckMaster, want: 2},
		{name: "OpenSingleDart", score: 60, checkOut: CheckOpen, want: 1},
		{name: "OpenTwoDarts", score: 120, checkOut: CheckOpen, want: 2},
		{name: "OpenThreeDarts", score: 121, checkOut: CheckOpen, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinDartsForScore(tt.score, tt.checkOut); got != tt.want {
				t.Errorf("MinDartsForScore(%d, %s) = %d, want %d", tt.score, tt.checkOut, got, tt.want)
			}
		})
	}
}

func TestHasCheckout(t *testing.T) {
	noFinish := []int{159, 162, 163, 165, 166, 168, 169}
	for _, score := range noFinish {
		if HasCheckout(score, CheckDouble) {
			t.Errorf("%d should have no double-out finish", score)
		}
	}
	if !HasCheckout(170, CheckDouble) {
		t.Errorf("170 is the maximum double-out finish")
	}
	if HasCheckout(171, CheckDouble) {
		t.Errorf("171 should have no double-out finish")
	}
	if HasCheckout(1, CheckDouble) {
		t.Errorf("1 is dead under double-out")
	}
	if !HasCheckout(1, CheckOpen) {
		t.Errorf("1 is finishable under open-out")
	}
	if !HasCheckout(180, CheckMaster) {
		t.Errorf("180 ends on a triple and is finishable under master-out")
	}
}
