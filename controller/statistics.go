// Package controller - End-of-stream statistics derived from confirmed event times.
package controller

import "gonum.org/v1/gonum/stat"

// Summary is the end-of-stream view of a Counter.
type Summary struct {
	// Burgers is the basket-derived burger total.
	Burgers int
	// DirectBurgers is the number of events confirmed in the burger region.
	DirectBurgers int
	// HasBurgerRegion is true for layouts with a mid-belt burger region.
	HasBurgerRegion bool

	EmptyBaskets  int
	FilledBaskets int

	EntryTimes  []float64
	ExitTimes   []float64
	BurgerTimes []float64

	BurgersPerBasket int

	// AvgFillTime is the mean positive exit-minus-entry difference over index-aligned pairs.
	AvgFillTime float64
	// AvgBurgerInterval is the mean gap between consecutive burger-region events.
	AvgBurgerInterval float64
	// AvgBurgerTime is AvgBurgerInterval when a burger region exists, otherwise
	// AvgFillTime divided by BurgersPerBasket.
	AvgBurgerTime float64
}

// Summary computes the end-of-stream statistics.
func (c *Counter) Summary() Summary {
	s := Summary{
		Burgers:          c.burgers,
		DirectBurgers:    c.Count(RoleBurger),
		HasBurgerRegion:  c.HasRole(RoleBurger),
		EmptyBaskets:     c.Count(RoleBasketEntry),
		FilledBaskets:    c.Count(RoleBasketExit),
		EntryTimes:       c.Times(RoleBasketEntry),
		ExitTimes:        c.Times(RoleBasketExit),
		BurgerTimes:      c.Times(RoleBurger),
		BurgersPerBasket: c.burgersPerBasket,
	}

	s.AvgFillTime = AverageFillTime(s.EntryTimes, s.ExitTimes)
	s.AvgBurgerInterval = AverageInterval(s.BurgerTimes)

	switch {
	case s.HasBurgerRegion:
		s.AvgBurgerTime = s.AvgBurgerInterval
	case s.AvgFillTime > 0 && s.BurgersPerBasket > 0:
		s.AvgBurgerTime = s.AvgFillTime / float64(s.BurgersPerBasket)
	}
	return s
}

// AverageFillTime returns the mean of exits[i]-entries[i] over the first
// min(len(entries), len(exits)) pairs, ignoring differences that are not positive.
// Unpaired entries or exits are dropped. It returns zero when no pair qualifies.
func AverageFillTime(entries, exits []float64) float64 {
	n := min(len(entries), len(exits))
	diffs := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if d := exits[i] - entries[i]; d > 0 {
			diffs = append(diffs, d)
		}
	}
	if len(diffs) == 0 {
		return 0
	}
	return stat.Mean(diffs, nil)
}

// AverageInterval returns the mean difference between consecutive times, or zero when
// fewer than two times are given.
func AverageInterval(times []float64) float64 {
	if len(times) < 2 {
		return 0
	}
	diffs := make([]float64, len(times)-1)
	for i := 1; i < len(times); i++ {
		diffs[i-1] = times[i] - times[i-1]
	}
	return stat.Mean(diffs, nil)
}
