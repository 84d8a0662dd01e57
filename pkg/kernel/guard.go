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

// SwitchGuard is an IRQ-off RAII token, per spec.md §4.2: while a
// switch guard is held, the owning CPU must not take interrupts,
// because the current task pointer and ready queues are in an
// inconsistent state mid-switch. In the hosted model there is no real
// IRQ line to mask, so the guard instead calls the CPU's irqGuard host
// hook (if any) on acquisition and irqRelease on Release; interrupts
// raised meanwhile wait in the CPU's pending queue until Run drains it.
type SwitchGuard struct {
	cpu *CPU
}

// acquireSwitchGuard panics if a switch guard is already held on c, per
// spec.md §7's listing of "acquiring switch guard twice" as a contract
// violation rather than a tolerated race: unlike Wake's races, nested
// acquisition can only happen from a logic error in the dispatch loop
// itself, never from another CPU or a legitimate interrupt.
func acquireSwitchGuard(c *CPU) *SwitchGuard {
	if c.guardHeld {
		panic("kernel: switch guard already held")
	}
	c.guardHeld = true
	if c.irqGuard != nil {
		c.irqGuard()
	}
	return &SwitchGuard{cpu: c}
}

// Release re-enables interrupts/preemption on the owning CPU. Callers
// must not use the guard after calling Release.
func (g *SwitchGuard) Release() {
	g.cpu.guardHeld = false
	if g.cpu.irqRelease != nil {
		g.cpu.irqRelease()
	}
}
