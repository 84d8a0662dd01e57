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

import (
	"fmt"

	"github.com/arceos-go/taskcore/pkg/kernel"
	"github.com/arceos-go/taskcore/pkg/riscv64"
)

// InterruptHandlerFunc handles a supervisor interrupt cause. The timer
// cause uses the same type; InstallTimerHandler (timer.go) registers the
// runtime's timer handler.
type InterruptHandlerFunc func(c *kernel.CPU, cause uint64)

// ExceptionHandlerFunc handles a synchronous exception, with access to
// the trapped context for instruction-level recovery (e.g. skipping a
// misaligned access) or for syscall argument extraction.
type ExceptionHandlerFunc func(c *kernel.CPU, ctx *riscv64.Context, cause uint64)

// ExtIntrHandlerFunc handles a platform external interrupt identified
// by the PLIC's claimed IRQ number, not an scause value.
type ExtIntrHandlerFunc func(c *kernel.CPU, irq uint64)

// SyscallHandlerFunc handles one syscall number, returning the value to
// place in a0.
type SyscallHandlerFunc func(c *kernel.CPU, ctx *riscv64.Context) uint64

// Tables bundles the four trap-dispatch tables a CPU consults, per
// spec.md §4.7.
type Tables struct {
	Interrupts *HandlerMap[uint64, InterruptHandlerFunc]
	Exceptions *HandlerMap[uint64, ExceptionHandlerFunc]
	ExtIntrs   *HandlerMap[uint64, ExtIntrHandlerFunc]
	Syscalls   *HandlerMap[uint64, SyscallHandlerFunc]
}

// NewTables builds the four tables, each defaulting to a handler that
// panics naming the unregistered cause, per spec.md §7.
func NewTables() *Tables {
	return &Tables{
		Interrupts: NewHandlerMap[uint64, InterruptHandlerFunc](func(c *kernel.CPU, cause uint64) {
			panic(fmt.Sprintf("trap: unhandled interrupt cause %d", cause))
		}),
		Exceptions: NewHandlerMap[uint64, ExceptionHandlerFunc](func(c *kernel.CPU, ctx *riscv64.Context, cause uint64) {
			panic(fmt.Sprintf("trap: unhandled exception cause %d at sepc=%#x", cause, ctx.Sepc))
		}),
		ExtIntrs: NewHandlerMap[uint64, ExtIntrHandlerFunc](func(c *kernel.CPU, irq uint64) {
			panic(fmt.Sprintf("trap: unhandled external interrupt irq %d", irq))
		}),
		Syscalls: NewHandlerMap[uint64, SyscallHandlerFunc](func(c *kernel.CPU, ctx *riscv64.Context) uint64 {
			panic(fmt.Sprintf("trap: unhandled syscall number %d", ctx.SyscallNumber()))
		}),
	}
}

// DispatchException routes a trapped exception, handling the syscall
// exception specially: it advances sepc past the ecall instruction (per
// the RISC-V convention that sepc points at ecall itself, not its
// successor) and routes to the syscall table keyed by a7 before
// falling through to the generic exception table for anything else.
func (t *Tables) DispatchException(c *kernel.CPU, ctx *riscv64.Context, cause uint64) {
	if cause == EnvironmentCallFromUMode {
		ctx.StepSepc()
		h := t.Syscalls.Lookup(ctx.SyscallNumber())
		ctx.SetReturnValue(h(c, ctx))
		return
	}
	t.Exceptions.Lookup(cause)(c, ctx, cause)
}

// DispatchInterrupt routes a trapped interrupt to whatever handler is
// registered for its cause, the timer cause included.
func (t *Tables) DispatchInterrupt(c *kernel.CPU, cause uint64) {
	t.Interrupts.Lookup(cause)(c, cause)
}

// DispatchExtIntr routes a claimed external interrupt by PLIC IRQ
// number, called from the SupervisorExternalInterrupt handler after it
// claims an IRQ from the platform's IRQController.
func (t *Tables) DispatchExtIntr(c *kernel.CPU, irq uint64) {
	t.ExtIntrs.Lookup(irq)(c, irq)
}
