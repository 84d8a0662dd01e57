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
	"sync"

	"github.com/arceos-go/taskcore/pkg/sched"
)

// GlobalScheduler is the single shared ready queue every CPU falls back
// to when its own local queue has nothing better to offer, per
// spec.md §4.5's two-tier design. Exactly one instance exists for the
// whole runtime.
type GlobalScheduler struct {
	mu     sync.Mutex
	policy sched.Policy[*Task]
}

var globalScheduler = &GlobalScheduler{}

// InitGlobalScheduler installs the policy backing the shared ready
// queue. It must be called exactly once before any CPU starts, normally
// from InitMainProcessor.
func InitGlobalScheduler(policy sched.Policy[*Task]) {
	globalScheduler.mu.Lock()
	defer globalScheduler.mu.Unlock()
	policy.Init()
	globalScheduler.policy = policy
}

func (g *GlobalScheduler) enqueue(t *Task) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.policy.Add(t)
}

func (g *GlobalScheduler) pickNext() (*Task, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.policy.PickNext()
}

func (g *GlobalScheduler) highestPriorityHint() uint8 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.policy.HighestPriorityHint()
}

func (g *GlobalScheduler) setPriority(t *Task, priority int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.policy.SetPriority(t, priority)
}
