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

import "container/heap"

// Scheduler is a time-ordered set of Events. No corpus dependency offers
// a priority-queue type, so this is built directly on the standard
// library's container/heap, which is the idiomatic Go answer for a
// pop-earliest-by-key structure (see DESIGN.md).
type Scheduler struct {
	q eventHeap
}

// NewScheduler returns an empty Scheduler.
func NewScheduler() *Scheduler {
	s := &Scheduler{}
	heap.Init(&s.q)
	return s
}

// Len returns the number of pending events.
func (s *Scheduler) Len() int { return s.q.Len() }

// Push inserts an event into the scheduler.
func (s *Scheduler) Push(e Event) {
	heap.Push(&s.q, e)
}

// Pop removes and returns the earliest pending event. It panics if the
// scheduler is empty; callers must check Len() first.
func (s *Scheduler) Pop() Event {
	return heap.Pop(&s.q).(Event)
}

// Clear replaces the scheduler with an empty set, as END_SIMULATION does
// (§4.1).
func (s *Scheduler) Clear() {
	s.q = s.q[:0]
}

type eventHeap []Event

func (h eventHeap) Len() int            { return len(h) }
func (h eventHeap) Less(i, j int) bool  { return h[i].less(h[j]) }
func (h eventHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) { *h = append(*h, x.(Event)) }
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
