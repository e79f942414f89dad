package engine

import (
	"container/heap"
	"time"
)

// TimerID identifies a scheduled timer, zero is never issued
type TimerID uint64

type timer struct {
	id       TimerID
	deadline time.Time
	period   time.Duration // 0 for one-shot
	seq      uint64        // insertion order, breaks deadline ties
	fn       func()
	index    int
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Scheduler is a wall-clock timer queue pumped by the host frame loop
// Not safe for concurrent use: timers fire on the goroutine calling Run
type Scheduler struct {
	clock  TimeProvider
	timers timerHeap
	byID   map[TimerID]*timer
	nextID TimerID
	seq    uint64
}

// NewScheduler creates a scheduler that reads deadlines from clock
func NewScheduler(clock TimeProvider) *Scheduler {
	return &Scheduler{
		clock: clock,
		byID:  make(map[TimerID]*timer),
	}
}

// After schedules fn once, d after the clock's current time
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	return s.schedule(s.clock.Now().Add(d), 0, fn)
}

// At schedules fn once at an absolute deadline
// A deadline already passed fires on the next Run
func (s *Scheduler) At(deadline time.Time, fn func()) TimerID {
	return s.schedule(deadline, 0, fn)
}

// Every schedules fn repeatedly with the given period, first firing one period from now
// Non-positive periods are rejected and return zero
func (s *Scheduler) Every(period time.Duration, fn func()) TimerID {
	if period <= 0 {
		return 0
	}
	return s.schedule(s.clock.Now().Add(period), period, fn)
}

func (s *Scheduler) schedule(deadline time.Time, period time.Duration, fn func()) TimerID {
	s.nextID++
	s.seq++
	t := &timer{
		id:       s.nextID,
		deadline: deadline,
		period:   period,
		seq:      s.seq,
		fn:       fn,
	}
	heap.Push(&s.timers, t)
	s.byID[t.id] = t
	return t.id
}

// Cancel removes a pending timer, returns false if it already fired or never existed
func (s *Scheduler) Cancel(id TimerID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	if t.index >= 0 {
		heap.Remove(&s.timers, t.index)
	}
	return true
}

// Run fires every timer due at or before now in deadline order and returns the count fired
// Repeating timers re-arm from their previous deadline so they do not drift
func (s *Scheduler) Run(now time.Time) int {
	fired := 0
	for len(s.timers) > 0 {
		t := s.timers[0]
		if t.deadline.After(now) {
			break
		}
		heap.Pop(&s.timers)

		if t.period > 0 {
			s.seq++
			t.deadline = t.deadline.Add(t.period)
			t.seq = s.seq
			heap.Push(&s.timers, t)
		} else {
			delete(s.byID, t.id)
		}

		t.fn()
		fired++
	}
	return fired
}

// Pending returns the number of armed timers
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Deadline returns when the timer fires next
func (s *Scheduler) Deadline(id TimerID) (time.Time, bool) {
	t, ok := s.byID[id]
	if !ok {
		return time.Time{}, false
	}
	return t.deadline, true
}

// Clear cancels all timers
func (s *Scheduler) Clear() {
	for _, t := range s.timers {
		t.index = -1
	}
	s.timers = s.timers[:0]
	clear(s.byID)
}
