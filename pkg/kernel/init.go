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

package kernel

import (
	"sync/atomic"

	"github.com/arceos-go/taskcore/internal/klog"
	"github.com/arceos-go/taskcore/pkg/sched"
)

// mainInitFinished gates secondary CPUs on the main CPU having
// installed the global scheduler, mirroring the original boot
// handshake (MAIN_PROCESSOR_INIT_FINISHED) that keeps secondary harts
// from touching the global ready queue before it exists.
var mainInitFinished atomic.Bool

// InitMainProcessor builds CPU 0's handle and installs the process-wide
// global scheduler policy. It must be called exactly once, before any
// InitSecondaryProcessor call, per spec.md §4.2's boot ordering.
func InitMainProcessor(id uint64, localPolicy, globalPolicy sched.Policy[*Task], irqGuard, irqRelease func()) *CPU {
	InitGlobalScheduler(globalPolicy)
	proc := NewProcessor(id, localPolicy)
	klog.WithCPU(id).Info("main processor initialized")
	return NewCPU(proc, irqGuard, irqRelease)
}

// InitSecondaryProcessor builds a non-zero CPU's handle. It blocks
// until the main processor has finished InitMainProcessor and called
// StartMainProcessor, since the global scheduler must exist first.
func InitSecondaryProcessor(id uint64, localPolicy sched.Policy[*Task], irqGuard, irqRelease func()) *CPU {
	for !mainInitFinished.Load() {
		// Busy-wait mirrors the original's spin-until-flag handshake;
		// secondary harts have nothing better to do yet at this point
		// in boot.
	}
	proc := NewProcessor(id, localPolicy)
	klog.WithCPU(id).Info("secondary processor initialized")
	return NewCPU(proc, irqGuard, irqRelease)
}

// StartMainProcessor signals that the global scheduler is ready for
// secondary CPUs and then runs c's dispatch loop forever.
func StartMainProcessor(c *CPU) {
	mainInitFinished.Store(true)
	c.Run()
}

// StartSecondaryProcessor runs c's dispatch loop forever. It exists as
// a separate entry point from StartMainProcessor so callers (and
// internal/hostsim's per-CPU goroutines) don't need to know which CPU
// is which beyond boot ordering.
func StartSecondaryProcessor(c *CPU) {
	c.Run()
}
