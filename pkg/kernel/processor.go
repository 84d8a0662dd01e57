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
	"github.com/arceos-go/taskcore/pkg/sched"
	"github.com/arceos-go/taskcore/pkg/stackpool"
)

// Processor is the per-CPU scheduling state described in spec.md §4.2:
// a local ready queue, a reference to the shared global queue, the
// currently running task, a stack pool, an idle task and a synthetic
// original task. Exactly one Processor exists per logical CPU, pinned
// to its own OS thread by the host harness in internal/hostsim via
// runtime.LockOSThread.
type Processor struct {
	id uint64

	local sched.Policy[*Task]

	current *Task

	pool *stackpool.Pool

	idle     *Task
	original *Task
}

// NewProcessor constructs a Processor with its own local policy and
// stack pool. The original task becomes the current task until the
// first real Switch happens.
func NewProcessor(id uint64, localPolicy sched.Policy[*Task]) *Processor {
	localPolicy.Init()
	original := NewOriginal()
	idlePool := stackpool.New()
	idle := NewIdle(idlePool.Fetch())
	idle.entry = idleLoop
	p := &Processor{
		id:       id,
		local:    localPolicy,
		pool:     stackpool.New(),
		idle:     idle,
		original: original,
		current:  original,
	}
	return p
}

// ID returns the processor's logical CPU number.
func (p *Processor) ID() uint64 { return p.id }

// Current returns the task currently occupying this CPU.
func (p *Processor) Current() *Task { return p.current }
