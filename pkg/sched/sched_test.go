// Copyright 2026 The taskcore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sched

import "testing"

type testTask struct {
	id     uint64
	woken  *bool
}

func (t testTask) TaskID() uint64 { return t.id }
func (t testTask) Wake()          { *t.woken = true }

func tt(id uint64) testTask {
	b := false
	return testTask{id: id, woken: &b}
}

func TestFIFOOrder(t *testing.T) {
	p := NewFIFO[testTask]()
	if hint := p.HighestPriorityHint(); hint != NoPriority {
		t.Fatalf("empty hint = %d, want NoPriority", hint)
	}
	p.Add(tt(1))
	p.Add(tt(2))
	a, ok := p.PickNext()
	if !ok || a.TaskID() != 1 {
		t.Fatalf("expected task 1 first, got %+v ok=%v", a, ok)
	}
	b, ok := p.PickNext()
	if !ok || b.TaskID() != 2 {
		t.Fatalf("expected task 2 second, got %+v ok=%v", b, ok)
	}
	if _, ok := p.PickNext(); ok {
		t.Fatal("expected empty queue")
	}
}

func TestRoundRobinSliceExpiry(t *testing.T) {
	r := NewRoundRobin[testTask]()
	r.Add(tt(1))
	cur, _ := r.PickNext()
	for i := 0; i < DefaultTimeSlice-1; i++ {
		if r.TickCurrent(cur) {
			t.Fatalf("tick %d expired early", i)
		}
	}
	if !r.TickCurrent(cur) {
		t.Fatal("expected slice to expire on final tick")
	}
}

func TestStaticPriorityLowestVacantLevelWins(t *testing.T) {
	p := NewStaticPriority[testTask]()
	low := tt(1)
	high := tt(2)
	if !p.SetPriority(low, 7) {
		t.Fatal("expected level 7 to be accepted")
	}
	if !p.SetPriority(high, 0) {
		t.Fatal("expected level 0 to be accepted")
	}
	p.Add(low)
	p.Add(high)
	next, ok := p.PickNext()
	if !ok || next.TaskID() != high.TaskID() {
		t.Fatalf("expected high priority task first, got %+v", next)
	}
	if p.SetPriority(low, NumPriorityLevels) {
		t.Fatal("expected out-of-range priority to be rejected")
	}
}

func TestCFSPrefersLowerVruntime(t *testing.T) {
	c := NewCFS[testTask]()
	a, b := tt(1), tt(2)
	c.Add(a)
	c.Add(b)
	picked, ok := c.PickNext()
	if !ok {
		t.Fatal("expected a task")
	}
	// Both start at the same vruntime; the queue must yield exactly one
	// of them and leave the other still queued.
	if hint := c.HighestPriorityHint(); hint == NoPriority {
		t.Fatal("expected remaining task to still be queued")
	}
	// Charging the picked task one tick raises its vruntime above the
	// other task's, so the other task must come out first.
	c.TickCurrent(picked)
	c.Add(picked)
	if next, ok := c.PickNext(); !ok || next.TaskID() == picked.TaskID() {
		t.Fatalf("expected the lower-vruntime task after re-adding, got %+v ok=%v", next, ok)
	}
	if _, ok := c.PickNext(); !ok {
		t.Fatal("expected the other task too")
	}
}

func TestBlockQueueWakeOneInOrder(t *testing.T) {
	q := NewBlockQueue[testTask]()
	first := tt(1)
	second := tt(2)
	q.Add(first)
	q.Add(second)
	if !q.WakeOne() {
		t.Fatal("expected a waiter to be woken")
	}
	if !*first.woken {
		t.Fatal("expected first waiter to be woken first")
	}
	if *second.woken {
		t.Fatal("second waiter should still be parked")
	}
	if q.Len() != 1 {
		t.Fatalf("queue len = %d, want 1", q.Len())
	}
}

func TestBlockQueueAddWithCondSkipsIneligible(t *testing.T) {
	q := NewBlockQueue[testTask]()
	ready := false
	w := tt(1)
	q.AddWithCond(w, func() bool { return ready })
	if q.WakeOne() {
		t.Fatal("expected ineligible waiter to stay parked")
	}
	ready = true
	if !q.WakeOne() {
		t.Fatal("expected waiter to wake once eligible")
	}
}

func TestBlockQueueWakeAllSkipsIneligible(t *testing.T) {
	q := NewBlockQueue[testTask]()
	q.Add(tt(1))
	blocked := tt(2)
	q.AddWithCond(blocked, func() bool { return false })
	woken := q.WakeAll()
	if woken != 1 {
		t.Fatalf("woken = %d, want 1", woken)
	}
	if q.Len() != 1 {
		t.Fatalf("expected ineligible waiter to remain queued, len = %d", q.Len())
	}
}
