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

package riscv64

import "testing"

func sampleContext() *Context {
	c := &Context{
		Sepc:    0xffffffc080200000,
		Sstatus: SstatusSPP,
	}
	for i := range c.Regs.T {
		c.Regs.T[i] = uint64(0x1000 + i)
	}
	for i := range c.Regs.S {
		c.Regs.S[i] = uint64(0x2000 + i)
	}
	for i := range c.Regs.A {
		c.Regs.A[i] = uint64(0x3000 + i)
	}
	c.Regs.Ra = 0xdead
	c.Regs.Sp = 0xbeef
	c.Regs.Gp = 0xc0de
	c.Regs.Tp = 0xface
	for i := range c.Float.F {
		c.Float.F[i] = uint64(0x4000 + i)
	}
	c.Float.Fcsr = 0x42
	return c
}

// TestRoundTrip verifies the testable property from spec.md §8: save
// followed by load on the same frame restores all general registers,
// sepc and sstatus bit-exactly.
func TestRoundTrip(t *testing.T) {
	live := sampleContext()
	var saved Context
	SaveFrame(&saved, live, 0)

	var restored Context
	LoadFrame(&restored, &saved)

	if restored != *live {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", restored, *live)
	}
}

func TestSaveFrameRecombinesSstatus(t *testing.T) {
	live := &Context{Sstatus: 0}
	var saved Context
	SaveFrame(&saved, live, SstatusSIE)
	if saved.Sstatus&SstatusSIE == 0 {
		t.Fatalf("expected SIE bit to be set in saved frame, got %#x", saved.Sstatus)
	}
}

func TestStepSepc(t *testing.T) {
	c := &Context{Sepc: 0x1000}
	c.StepSepc()
	if c.Sepc != 0x1004 {
		t.Fatalf("StepSepc: got %#x, want %#x", c.Sepc, 0x1004)
	}
}

func TestSyscallArgsAndReturn(t *testing.T) {
	c := &Context{}
	c.Regs.A[7] = 64
	for i := 0; i < 6; i++ {
		c.Regs.A[i] = uint64(i + 1)
	}
	if got := c.SyscallNumber(); got != 64 {
		t.Fatalf("SyscallNumber: got %d, want 64", got)
	}
	args := c.SyscallArgs()
	for i, v := range args {
		if v != uint64(i+1) {
			t.Fatalf("SyscallArgs[%d]: got %d, want %d", i, v, i+1)
		}
	}
	c.SetReturnValue(7)
	if c.Regs.A[0] != 7 {
		t.Fatalf("SetReturnValue: got %d, want 7", c.Regs.A[0])
	}
}
