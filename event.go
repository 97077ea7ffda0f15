/*
Copyright © 2026 the tinder authors.
This file is part of tinder.

tinder is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

tinder is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with tinder.  If not, see <http://www.gnu.org/licenses/>.
*/

package tinder

// EventType enumerates the kinds of events the Scheduler dispatches.
type EventType int

const (
	NewFire EventType = iota
	FireSpread
	Save
	EndSimulation
)

// typeOrder gives the tie-break ordering of event types at equal time:
// SAVE precedes FIRE_SPREAD, and END_SIMULATION always comes last.
var typeOrder = map[EventType]int{
	Save:          0,
	NewFire:       1,
	FireSpread:    1,
	EndSimulation: 2,
}

// Event is one entry in a Scenario's Scheduler: a type, a time (in
// fractional days since the simulation start), and the fields relevant
// to that type.
type Event struct {
	Type      EventType
	Time      float64
	Cell      Location
	Intensity float64
	SourceMask uint8
}

// less orders two events by time ascending, then by typeOrder, matching
// §3 "Event": "ties broken by type such that SAVE precedes FIRE_SPREAD at
// the same timestamp and END_SIMULATION comes last."
func (e Event) less(o Event) bool {
	if e.Time != o.Time {
		return e.Time < o.Time
	}
	return typeOrder[e.Type] < typeOrder[o.Type]
}
