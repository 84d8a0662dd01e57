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

// Package riscv64 models the register-context layout and switch
// primitives of a RISC-V sv39 Supervisor-mode task runtime.
//
// This module is hosted: it cannot occupy real Supervisor mode, so the
// save/restore primitives below operate on plain Go structs rather than
// live hardware registers. The field layout, semantics and the
// sstatus-recombination behavior of SaveFrame match what a freestanding
// save_prev_ctx/load_next_ctx pair would do on real hardware, so that the
// rest of the scheduler can be written, and tested, against the real
// shape of a RISC-V trap frame.
package riscv64

// Sstatus bits relevant to task switching.
const (
	SstatusSIE uint64 = 1 << 1 // Supervisor Interrupt Enable
	SstatusSPP uint64 = 1 << 8 // Supervisor Previous Privilege
)

// GeneralRegisters is the integer register file of a RISC-V hart, laid
// out the way a trap frame stores it: ra/sp/gp/tp, the temporaries, the
// callee-saved registers and the argument registers.
type GeneralRegisters struct {
	Ra uint64 // x1
	Sp uint64 // x2
	Gp uint64 // x3
	Tp uint64 // x4

	T [7]uint64  // t0-t6 (x5-x7, x28-x31)
	S [12]uint64 // s0-s11 (x8-x9, x18-x27)
	A [8]uint64  // a0-a7 (x10-x17)
}

// FloatState is the floating-point register file plus fcsr.
type FloatState struct {
	F    [32]uint64
	Fcsr uint32
}

// Context is the saved hardware state of a task: it is used both for
// trap frames (materialized by trap entry on the interrupted task's
// stack) and for saved thread contexts (the same layout is reused by
// load_next_ctx on both the preemption-return path and the cooperative
// resume path).
type Context struct {
	Regs    GeneralRegisters
	Sepc    uint64
	Sstatus uint64
	Float   FloatState
}

// SaveFrame captures cur (the live register state at the point of a
// voluntary switch or a trap) into dst, recombining sstatus with
// statusOrBits — the SIE bit that the switch guard had cleared before the
// snapshot was taken, so that the saved frame reflects the interrupt
// state that was live immediately before the guard, not the guard's own
// disabled state.
func SaveFrame(dst *Context, cur *Context, statusOrBits uint64) {
	*dst = *cur
	dst.Sstatus = cur.Sstatus | statusOrBits
}

// LoadFrame restores regs/sepc/sstatus/float state from src into dst. On
// real hardware this is followed by an `sret`; here it is the data half
// of resuming a task, paired with whatever mechanism (goroutine resume,
// direct call) actually transfers control in the hosted model.
func LoadFrame(dst *Context, src *Context) {
	*dst = *src
}

// StepSepc advances the saved program counter past a 4-byte instruction,
// used by the user-env-call exception handler before syscall dispatch.
func (c *Context) StepSepc() {
	c.Sepc += 4
}

// SyscallNumber reads the syscall number from a7, per the RISC-V Linux
// calling convention this runtime follows for its syscall handler table.
func (c *Context) SyscallNumber() uint64 {
	return c.Regs.A[7]
}

// SyscallArgs reads the six syscall arguments from a0..a5.
func (c *Context) SyscallArgs() [6]uint64 {
	return [6]uint64{
		c.Regs.A[0], c.Regs.A[1], c.Regs.A[2],
		c.Regs.A[3], c.Regs.A[4], c.Regs.A[5],
	}
}

// SetReturnValue writes a syscall's result into a0.
func (c *Context) SetReturnValue(v uint64) {
	c.Regs.A[0] = v
}
