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
	"context"

	"github.com/arceos-go/taskcore/internal/klog"
	"github.com/arceos-go/taskcore/pkg/kernel"
	"github.com/arceos-go/taskcore/pkg/trap"
	"golang.org/x/sync/semaphore"
)

// IRQController simulates a platform interrupt controller (a PLIC, in
// RISC-V terms): a bounded number of claims may be in flight at once,
// enforced with a weighted semaphore, and claimed IRQ numbers queue
// until DispatchExtIntr handles and completes them.
type IRQController struct {
	cpu     *kernel.CPU
	tables  *trap.Tables
	sem     *semaphore.Weighted
	pending chan uint64
}

// NewIRQController returns a controller wired to deliver external
// interrupts to cpu through tables, allowing at most capacity claims
// outstanding at once.
func NewIRQController(cpu *kernel.CPU, tables *trap.Tables, capacity int64) *IRQController {
	c := &IRQController{
		cpu:     cpu,
		tables:  tables,
		sem:     semaphore.NewWeighted(capacity),
		pending: make(chan uint64, capacity),
	}
	tables.Interrupts.Register(trap.SupervisorExternalInterrupt, func(cpu *kernel.CPU, cause uint64) {
		if irq, ok := c.claim(); ok {
			tables.DispatchExtIntr(cpu, irq)
			c.complete(irq)
		}
	})
	return c
}

// Raise simulates a platform device asserting irq. It blocks only if
// capacity claims are already outstanding, matching a real PLIC's
// bounded claim/complete protocol; ctx lets a caller bound that wait.
func (c *IRQController) Raise(ctx context.Context, irq uint64) error {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	c.pending <- irq
	if !c.cpu.RaiseInterrupt(trap.SupervisorExternalInterrupt) {
		klog.WithCPU(c.cpu.ID()).Warningf("dropped external interrupt notification for irq %d", irq)
	}
	return nil
}

func (c *IRQController) claim() (uint64, bool) {
	select {
	case irq := <-c.pending:
		return irq, true
	default:
		return 0, false
	}
}

func (c *IRQController) complete(uint64) {
	c.sem.Release(1)
}
