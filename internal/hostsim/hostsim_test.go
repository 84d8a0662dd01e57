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
	"testing"
	"time"

	"github.com/arceos-go/taskcore/pkg/kernel"
	"github.com/arceos-go/taskcore/pkg/riscv64"
	"github.com/arceos-go/taskcore/pkg/sched"
	"github.com/arceos-go/taskcore/pkg/trap"
)

func TestBootClusterDispatchesGloballySpawnedTask(t *testing.T) {
	_, cpus := BootCluster(2, func() sched.Policy[*kernel.Task] {
		return sched.NewFIFO[*kernel.Task]()
	}, sched.NewFIFO[*kernel.Task]())

	ran := make(chan uint64, 1)
	cpus[0].SpawnToGlobal(func(c *kernel.CPU) int32 {
		ran <- c.ID()
		return 0
	})

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("globally spawned task never ran on either CPU")
	}
}

func TestIRQControllerDispatchesClaimedIRQ(t *testing.T) {
	proc := kernel.NewProcessor(0, sched.NewFIFO[*kernel.Task]())
	cpu := kernel.NewCPU(proc, nil, nil)
	tables := trap.NewTables()

	handled := make(chan uint64, 1)
	tables.ExtIntrs.Register(7, func(c *kernel.CPU, irq uint64) {
		handled <- irq
	})

	cpu.SetInterruptHandler(tables.DispatchInterrupt)
	ctrl := NewIRQController(cpu, tables, 4)
	if err := ctrl.Raise(context.Background(), 7); err != nil {
		t.Fatalf("Raise: %v", err)
	}

	cpu.DrainPendingInterrupts()

	select {
	case irq := <-handled:
		if irq != 7 {
			t.Fatalf("handled irq = %d, want 7", irq)
		}
	case <-time.After(time.Second):
		t.Fatal("extintr handler never ran")
	}
}

func TestEcallDispatchesRegisteredSyscall(t *testing.T) {
	proc := kernel.NewProcessor(0, sched.NewFIFO[*kernel.Task]())
	cpu := kernel.NewCPU(proc, nil, nil)
	tables := trap.NewTables()

	const sysAdd = 42
	tables.Syscalls.Register(sysAdd, func(c *kernel.CPU, ctx *riscv64.Context) uint64 {
		args := ctx.SyscallArgs()
		return args[0] + args[1]
	})

	frame := cpu.Current().Frame()
	frame.Regs.A[7] = sysAdd
	frame.Regs.A[0] = 3
	frame.Regs.A[1] = 4
	frame.Sepc = 0x1000

	Ecall(cpu, tables)

	if got := frame.Regs.A[0]; got != 7 {
		t.Fatalf("syscall result = %d, want 7", got)
	}
	if frame.Sepc != 0x1004 {
		t.Fatalf("sepc = %#x, want %#x (ecall instruction stepped over)", frame.Sepc, 0x1004)
	}
}

func TestEcallFromRunningThreadTask(t *testing.T) {
	_, cpus := BootCluster(1, func() sched.Policy[*kernel.Task] {
		return sched.NewFIFO[*kernel.Task]()
	}, sched.NewFIFO[*kernel.Task]())
	cpu := cpus[0]
	tables := trap.NewTables()

	const sysDouble = 7
	tables.Syscalls.Register(sysDouble, func(c *kernel.CPU, ctx *riscv64.Context) uint64 {
		return ctx.SyscallArgs()[0] * 2
	})

	result := make(chan uint64, 1)
	cpu.SpawnToLocal(func(c *kernel.CPU) int32 {
		frame := c.Current().Frame()
		frame.Regs.A[7] = sysDouble
		frame.Regs.A[0] = 21
		Ecall(c, tables)
		result <- frame.Regs.A[0]
		return 0
	})

	select {
	case v := <-result:
		if v != 42 {
			t.Fatalf("syscall result = %d, want 42", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("spawned task never issued its ecall")
	}
}

func TestSoftwareTimerDeliversTick(t *testing.T) {
	proc := kernel.NewProcessor(0, sched.NewFIFO[*kernel.Task]())
	cpu := kernel.NewCPU(proc, nil, nil)
	tables := trap.NewTables()

	ticked := make(chan struct{}, 1)
	tables.Interrupts.Register(trap.SupervisorTimerInterrupt, func(c *kernel.CPU, cause uint64) {
		ticked <- struct{}{}
	})

	timer := NewSoftwareTimer(cpu, tables)
	timer.SetTimerDeadline(1)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		cpu.DrainPendingInterrupts()
		select {
		case <-ticked:
			return
		default:
			time.Sleep(time.Millisecond)
		}
	}
	t.Fatal("timer interrupt handler never ran")
}
