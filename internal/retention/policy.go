// Package retention implements the pure forget-time functions that decide
// how long a closed interval lingers on the timeline before it is dropped.
package retention

import "time"

// Policy is a pure function from a closed interval to a forget-at instant.
// Implementations must be side-effect free: given the same (start, end)
// they always return the same answer.
//
// The package models RetentionPolicy as a tagged sum (LastedLessThan,
// RectLinear) rather than an interface with many implementations, per the
// design notes: with only two variants, dynamic dispatch buys nothing and
// a closed set is easier to reason about exhaustively.
type Policy struct {
	kind    kind
	period  time.Duration
	atLeast time.Duration
	ratio   float64
}

type kind int

const (
	kindLastedLessThan kind = iota
	kindRectLinear
)

// LastedLessThan returns a policy that forgets an interval at its end
// instant if the interval's duration is shorter than period; otherwise the
// interval is retained forever.
func LastedLessThan(period time.Duration) Policy {
	return Policy{kind: kindLastedLessThan, period: period}
}

// RectLinear returns a policy that forgets an interval at
// end + atLeast + (end-start)*ratio: long-lived intervals linger
// proportionally longer, with a floor of atLeast.
func RectLinear(atLeast time.Duration, ratio float64) Policy {
	return Policy{kind: kindRectLinear, atLeast: atLeast, ratio: ratio}
}

// ForgetAt evaluates the policy against a closed [start, end] interval. The
// second return value is false when the policy never forgets the interval
// (forget-at is +infinity).
func (p Policy) ForgetAt(start, end time.Time) (time.Time, bool) {
	switch p.kind {
	case kindLastedLessThan:
		if end.Sub(start) < p.period {
			return end, true
		}
		return time.Time{}, false
	case kindRectLinear:
		lifetime := end.Sub(start)
		extra := p.atLeast + time.Duration(float64(lifetime)*p.ratio)
		return end.Add(extra), true
	default:
		return time.Time{}, false
	}
}

// Set is an ordered collection of policies applied conjunctively: the
// effective forget time is the minimum of every rule's finite forget time.
// An empty set, or a set in which no rule fires a finite time, means the
// interval is retained indefinitely.
type Set []Policy

// ForgetAt evaluates every policy in the set and returns the earliest
// finite forget-at instant, or (zero, false) if none fires.
func (s Set) ForgetAt(start, end time.Time) (time.Time, bool) {
	var (
		best    time.Time
		haveAny bool
	)
	for _, p := range s {
		t, ok := p.ForgetAt(start, end)
		if !ok {
			continue
		}
		if !haveAny || t.Before(best) {
			best = t
			haveAny = true
		}
	}
	return best, haveAny
}
