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

import "testing"

// TestSchedulerEventMonotonicity checks §8's "During run(), successive
// popped events have non-decreasing time", at the Scheduler level.
func TestSchedulerEventMonotonicity(t *testing.T) {
	s := NewScheduler()
	times := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	for _, tm := range times {
		s.Push(Event{Type: FireSpread, Time: tm})
	}
	s.Push(Event{Type: Save, Time: 1}) // ties with an existing FIRE_SPREAD at t=1

	last := -1.0
	count := 0
	for s.Len() > 0 {
		e := s.Pop()
		if e.Time < last {
			t.Fatalf("popped event time %v decreased from previous %v", e.Time, last)
		}
		last = e.Time
		count++
	}
	if count != len(times)+1 {
		t.Errorf("popped %d events, want %d", count, len(times)+1)
	}
}

func TestSchedulerTieBreakOrdering(t *testing.T) {
	s := NewScheduler()
	s.Push(Event{Type: EndSimulation, Time: 1})
	s.Push(Event{Type: FireSpread, Time: 1})
	s.Push(Event{Type: Save, Time: 1})
	s.Push(Event{Type: NewFire, Time: 1})

	first := s.Pop()
	if first.Type != Save {
		t.Errorf("first popped event at a tied time was %v, want Save", first.Type)
	}
	last := s.Pop()
	_ = last // second pop is one of NewFire/FireSpread, order between them is unspecified
	third := s.Pop()
	_ = third
	fourth := s.Pop()
	if fourth.Type != EndSimulation {
		t.Errorf("last popped event at a tied time was %v, want EndSimulation", fourth.Type)
	}
}

func TestSchedulerClear(t *testing.T) {
	s := NewScheduler()
	s.Push(Event{Type: FireSpread, Time: 1})
	s.Push(Event{Type: Save, Time: 2})
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", s.Len())
	}
}

func TestSchedulerPopPanicsWhenEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Pop() on an empty scheduler should panic")
		}
	}()
	NewScheduler().Pop()
}
