// Package phh records hands in the Poker Hand History (PHH) TOML format.
// Player p1 is the small blind and p2 the big blind.
package phh

import "time"

// HandHistory represents a single poker hand encoded in PHH format.
type HandHistory struct {
	Variant           string   `toml:"variant"`
	Antes             []int    `toml:"antes"`
	BlindsOrStraddles []int    `toml:"blinds_or_straddles"`
	MinBet            int      `toml:"min_bet"`
	StartingStacks    []int    `toml:"starting_stacks"`
	FinishingStacks   []int    `toml:"finishing_stacks,omitempty"`
	Winnings          []int    `toml:"winnings,omitempty"`
	Actions           []string `toml:"actions"`
	Players           []string `toml:"players,omitempty"`
	HandID            string   `toml:"hand"`
	Time              string   `toml:"time,omitempty"`
	TimeZone          string   `toml:"time_zone,omitempty"`
	Day               int      `toml:"day,omitempty"`
	Month             int      `toml:"month,omitempty"`
	Year              int      `toml:"year,omitempty"`

	Timestamp time.Time `toml:"-"`
}

// SetTimestamp fills the date and time fields from ts in UTC.
func (h *HandHistory) SetTimestamp(ts time.Time) {
	ts = ts.UTC()
	h.Timestamp = ts
	h.Time = ts.Format("15:04:05")
	h.TimeZone = "UTC"
	h.Day = ts.Day()
	h.Month = int(ts.Month())
	h.Year = ts.Year()
}
