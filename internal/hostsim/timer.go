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

package hostsim

import (
	"time"

	"github.com/arceos-go/taskcore/internal/klog"
	"github.com/arceos-go/taskcore/pkg/kernel"
	"github.com/arceos-go/taskcore/pkg/trap"
	"golang.org/x/sys/unix"
	"golang.org/x/time/rate"
)

// simulatedFrequency is the fictitious platform timebase: enough
// headroom above TickHz that a tick interval is comfortably above
// Go's scheduler timer resolution.
const simulatedFrequency uint64 = 1_000_000

// SoftwareTimer implements trap.TimebaseFrequencySource and
// trap.TimerDeadlineSetter by arming a one-shot time.Timer for each
// requested deadline and posting the resulting interrupt to the target
// CPU's pending-interrupt queue, which the CPU dispatches through its
// trap tables at its next safe point. A rate.Limiter caps how often
// ticks may actually fire, the way a real platform's minimum timer
// granularity would, so a misbehaving test harness that keeps
// requesting near-zero deadlines can't busy-loop the host CPU.
type SoftwareTimer struct {
	cpu     *kernel.CPU
	tables  *trap.Tables
	limiter *rate.Limiter
}

// NewSoftwareTimer returns a timer that delivers ticks to cpu through
// tables, rate-limited to at most TickHz*2 deliveries per second.
func NewSoftwareTimer(cpu *kernel.CPU, tables *trap.Tables) *SoftwareTimer {
	cpu.SetInterruptHandler(tables.DispatchInterrupt)
	return &SoftwareTimer{
		cpu:     cpu,
		tables:  tables,
		limiter: rate.NewLimiter(rate.Limit(trap.TickHz*2), trap.TickHz),
	}
}

// TimebaseFrequency implements trap.TimebaseFrequencySource.
func (s *SoftwareTimer) TimebaseFrequency() uint64 { return simulatedFrequency }

// SetTimerDeadline implements trap.TimerDeadlineSetter.
func (s *SoftwareTimer) SetTimerDeadline(ticksFromNow uint64) {
	d := time.Duration(ticksFromNow) * time.Second / time.Duration(simulatedFrequency)
	time.AfterFunc(d, func() {
		if !s.limiter.Allow() {
			klog.WithCPU(s.cpu.ID()).Warningf("dropped timer tick: rate limit exceeded")
			return
		}
		if !s.cpu.RaiseInterrupt(trap.SupervisorTimerInterrupt) {
			klog.WithCPU(s.cpu.ID()).Warningf("dropped timer tick at %s: interrupt queue full", monotonicStamp())
		}
	})
}

// monotonicStamp reads CLOCK_MONOTONIC directly, the way a real timer
// driver would consult a hardware counter rather than wall-clock time,
// for attributing a dropped tick to a point on the host's own
// timeline.
func monotonicStamp() time.Duration {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0
	}
	return time.Duration(ts.Sec)*time.Second + time.Duration(ts.Nsec)
}
