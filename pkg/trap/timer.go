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

package trap

import "github.com/arceos-go/taskcore/pkg/kernel"

// TickHz is the scheduler tick rate; spec.md §4.8 ties preemption
// granularity to it.
const TickHz = 1000

// TimebaseFrequencySource reports the platform timer's tick frequency,
// one of the host hooks from SPEC_FULL.md §6.
type TimebaseFrequencySource interface {
	TimebaseFrequency() uint64
}

// TimerDeadlineSetter reprograms the platform timer to fire again after
// the given number of timebase ticks.
type TimerDeadlineSetter interface {
	SetTimerDeadline(ticksFromNow uint64)
}

// InstallTimerHandler registers the timer interrupt handler once, at
// init time rather than lazily on first fire, per the original's
// trap_handler::timer (SPEC_FULL.md §12): the deadline for the next
// tick is reprogrammed immediately on entry to this handler, so a
// timer interrupt is always pending roughly TickHz times per second of
// platform time.
func InstallTimerHandler(t *Tables, freq TimebaseFrequencySource, setter TimerDeadlineSetter) {
	interval := freq.TimebaseFrequency() / TickHz
	t.Interrupts.Register(SupervisorTimerInterrupt, func(c *kernel.CPU, cause uint64) {
		setter.SetTimerDeadline(interval)
		if c.SchedulerTick() {
			c.PreemptCurrent()
		}
	})
}
