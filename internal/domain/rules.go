package domain

// noFinishScores are the remainders that cannot be taken out at all under a
// double-out exit, no matter how the three darts fall. Known quirk of
// finishing-score arithmetic; keep it a lookup, not a formula.
var noFinishScores = map[int]bool{
	159: true,
	162: true,
	163: true,
	165: true,
	166: true,
	168: true,
	169: true,
}

// MaxCheckout is the highest remainder finishable in one visit (T20 T20 Bull).
const MaxCheckout = 170

// IsBust reports whether a visit of claimed points from remaining is a bust
// under the given exit rule. Overshooting is always a bust; exact zero never
// is (checkout validity is judged separately); leaving exactly 1 is a bust
// under Double and Master because no single dart can finish from 1.
func IsBust(remaining, claimed int, checkOut CheckRule) bool {
	left := remaining - claimed
	if left < 0 {
		return true
	}
	if left == 0 {
		return false
	}
	if left == 1 && (checkOut == CheckDouble || checkOut == CheckMaster) {
		return true
	}
	return false
}

// IsValidCheckout reports whether a visit completes the leg. The engine
// trusts the scorer on how the total was composed and only judges the
// arithmetic; MinDartsForScore is the guard against impossible claims.
func IsValidCheckout(remaining, claimed int) bool {
	return remaining-claimed == 0
}

// MinDartsForScore returns the fewest darts that can produce score as a
// finish under the exit rule. Always 1, 2 or 3.
func MinDartsForScore(score int, checkOut CheckRule) int {
	switch checkOut {
	case CheckDouble:
		if score == 50 || (score <= 40 && score%2 == 0) {
			return 1
		}
		if score <= 110 && !noFinishScores[score] {
			return 2
		}
		return 3
	case CheckMaster:
		if score <= 40 && score%2 == 0 {
			return 1
		}
		if score <= 60 && score%3 == 0 {
			return 1
		}
		if score == 25 || score == 50 {
			return 1
		}
		return 2
	default: // Open
		if score <= 60 {
			return 1
		}
		if score <= 120 {
			return 2
		}
		return 3
	}
}

// HasCheckout reports whether score can be finished in a single visit under
// the exit rule. Under Double the no-finish remainders and anything above
// 170 are out of reach; Open and Master have no such holes below 180.
func HasCheckout(score int, checkOut CheckRule) bool {
	if score < 2 && checkOut != CheckOpen {
		return false
	}
	if score < 1 {
		return false
	}
	if checkOut == CheckDouble {
		return score <= MaxCheckout && !noFinishScores[score]
	}
	return score <= 180
}
