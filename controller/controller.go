// Package controller - This file contains the counter that routes per-region presence results
// through their debouncers and accumulates confirmed events.
package controller

import (
	"fmt"

	"github.com/rs/zerolog"
)

// DefaultBufferSize is the number of consecutive frames that must agree before an event
// is confirmed.
const DefaultBufferSize = 3

// DefaultBurgersPerBasket is the number of burgers credited for each filled basket.
const DefaultBurgersPerBasket = 4

// Event is a confirmed event in one region.
type Event struct {
	Region string
	Role   Role
	// Time is the frame time in seconds from stream start.
	Time float64
	// Count is the region's confirmed event count including this event.
	Count int
	// Burgers is the basket-derived burger total after this event.
	Burgers int
}

// CounterConfig configures a Counter.
type CounterConfig struct {
	// BufferSize is the detection buffer capacity of every region.
	BufferSize int
	// BurgersPerBasket is credited to the burger total on each basket exit.
	BurgersPerBasket int
}

// DefaultCounterConfig returns the production defaults.
func DefaultCounterConfig() CounterConfig {
	return CounterConfig{
		BufferSize:       DefaultBufferSize,
		BurgersPerBasket: DefaultBurgersPerBasket,
	}
}

// tally is the per-region counter state. The count is the length of times, so the two
// can never disagree.
type tally struct {
	times []float64
}

// Counter owns one Debouncer per region and the counts derived from confirmed events.
//
// Each region's state is private to it; Observe calls for one region must arrive in
// frame order, calls for different regions are independent.
type Counter struct {
	regions          []Region
	debouncers       []*Debouncer
	tallies          []tally
	burgersPerBasket int
	burgers          int
	logger           zerolog.Logger
}

// NewCounter creates a Counter for the given regions.
//
// Arguments:
//   - regions: The monitored regions. At most one region may hold each role.
//   - cfg: Buffer size and burgers-per-basket multiplier.
//   - logger: Receives one info line per confirmed event.
//
// Returns:
//   - *Counter: The counter with zeroed state.
//   - error: An error if the configuration is invalid.
func NewCounter(regions []Region, cfg CounterConfig, logger zerolog.Logger) (*Counter, error) {
	if cfg.BufferSize < 1 {
		return nil, fmt.Errorf("buffer size must be at least 1, got %d", cfg.BufferSize)
	}
	if cfg.BurgersPerBasket < 0 {
		return nil, fmt.Errorf("burgers per basket must not be negative, got %d", cfg.BurgersPerBasket)
	}

	seen := make(map[Role]string, len(regions))
	c := &Counter{
		regions:          make([]Region, len(regions)),
		debouncers:       make([]*Debouncer, len(regions)),
		tallies:          make([]tally, len(regions)),
		burgersPerBasket: cfg.BurgersPerBasket,
		logger:           logger,
	}
	for i, r := range regions {
		if other, ok := seen[r.Role]; ok {
			return nil, fmt.Errorf("regions %q and %q share role %s", other, r.Name, r.Role)
		}
		seen[r.Role] = r.Name
		c.regions[i] = r
		c.debouncers[i] = NewDebouncer(cfg.BufferSize, r.MinInterval)
	}
	return c, nil
}

// Observe feeds the presence result of region i for the frame at time t.
//
// Arguments:
//   - i: Index of the region, in the order given to NewCounter.
//   - present: Whether a qualifying object was found in the region.
//   - t: Frame time in seconds from stream start.
//
// Returns:
//   - Event: The confirmed event, valid only when ok is true.
//   - bool: true when the observation confirmed an event.
func (c *Counter) Observe(i int, present bool, t float64) (Event, bool) {
	if i < 0 || i >= len(c.regions) {
		return Event{}, false
	}
	if !c.debouncers[i].Observe(present, t) {
		return Event{}, false
	}

	region := c.regions[i]
	c.tallies[i].times = append(c.tallies[i].times, t)
	if region.Role == RoleBasketExit {
		c.burgers += c.burgersPerBasket
	}

	ev := Event{
		Region:  region.Name,
		Role:    region.Role,
		Time:    t,
		Count:   len(c.tallies[i].times),
		Burgers: c.burgers,
	}
	c.logEvent(ev)
	return ev, true
}

func (c *Counter) logEvent(ev Event) {
	e := c.logger.Info().
		Str("region", ev.Region).
		Stringer("role", ev.Role).
		Float64("t", ev.Time).
		Int("count", ev.Count)

	switch ev.Role {
	case RoleBasketEntry:
		e.Msg("empty basket entered")
	case RoleBasketExit:
		e.Int("burgers", ev.Burgers).Msg("filled basket left")
	case RoleBurger:
		e.Msg("burger detected")
	default:
		e.Msg("event confirmed")
	}
}

// Len returns the number of regions.
func (c *Counter) Len() int { return len(c.regions) }

// State returns the debouncer state of region i.
func (c *Counter) State(i int) State { return c.debouncers[i].State() }

// HasRole reports whether a region holds the role.
func (c *Counter) HasRole(role Role) bool {
	return c.index(role) >= 0
}

// Count returns the confirmed event count of the region holding role, or zero.
func (c *Counter) Count(role Role) int {
	if i := c.index(role); i >= 0 {
		return len(c.tallies[i].times)
	}
	return 0
}

// Times returns a copy of the confirmed event times of the region holding role.
func (c *Counter) Times(role Role) []float64 {
	i := c.index(role)
	if i < 0 {
		return nil
	}
	out := make([]float64, len(c.tallies[i].times))
	copy(out, c.tallies[i].times)
	return out
}

// Burgers returns the burger total derived from filled baskets.
func (c *Counter) Burgers() int { return c.burgers }

// BurgersPerBasket returns the multiplier applied on each basket exit.
func (c *Counter) BurgersPerBasket() int { return c.burgersPerBasket }

func (c *Counter) index(role Role) int {
	for i, r := range c.regions {
		if r.Role == role {
			return i
		}
	}
	return -1
}
