// README: Accelerated-time duration aggregation with session continuity.
package billing

import (
	"math"
	"time"
)

// Span is a closed session's entry/exit pair.
type Span struct {
	Entry time.Time
	Exit  time.Time
}

// Aggregator converts real elapsed time into billable park-time hours.
// factor scales wall-clock seconds (1200 means one park-hour every 3 real
// seconds).
type Aggregator struct {
	factor float64
}

func NewAggregator(factor float64) Aggregator {
	if factor <= 0 {
		factor = 1
	}
	return Aggregator{factor: factor}
}

// ContinuityWindow is the largest real-time gap between a prior exit and a
// new entry that still counts as one continuous stay: one accelerated hour.
func (a Aggregator) ContinuityWindow() time.Duration {
	return time.Duration(float64(time.Hour) / a.factor)
}

func (a Aggregator) Continuous(prior Span, entry time.Time) bool {
	gap := entry.Sub(prior.Exit)
	return gap <= a.ContinuityWindow()
}

// BillableHours returns fractional park-time hours for a session. When the
// immediately preceding closed session is continuous with this one, its real
// duration is merged in before scaling. Chains longer than two sessions do
// not merge recursively.
func (a Aggregator) BillableHours(entry, exit time.Time, prior *Span) float64 {
	realSeconds := exit.Sub(entry).Seconds()
	if prior != nil && a.Continuous(*prior, entry) {
		realSeconds += prior.Exit.Sub(prior.Entry).Seconds()
	}
	return realSeconds * a.factor / 3600.0
}

// CeilHours rounds fractional billable hours up to the whole hours that are
// actually charged. The fractional value is kept for display.
func CeilHours(hours float64) int64 {
	return int64(math.Ceil(hours))
}
