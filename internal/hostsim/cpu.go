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

// Package hostsim is the default host harness for this hosted model of
// a multi-CPU RISC-V sv39 task runtime: it stands in for the bare-metal
// platform the real spec targets, providing per-CPU OS-thread pinning,
// a software timer, and a simulated PLIC-style interrupt controller.
package hostsim

import (
	"runtime"

	"github.com/arceos-go/taskcore/internal/klog"
	"github.com/arceos-go/taskcore/pkg/kernel"
	"github.com/arceos-go/taskcore/pkg/sched"
	"golang.org/x/sync/errgroup"
)

// RunPinned locks the calling goroutine to its current OS thread before
// invoking start, standing in for a logical CPU that never migrates
// between physical harts. start should not return until the CPU's
// dispatch loop is meant to stop (in practice, never, since
// kernel.CPU.Run never returns).
func RunPinned(start func()) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	start()
}

// BootCluster brings up numCPUs logical CPUs: CPU 0 via
// kernel.InitMainProcessor/StartMainProcessor, the rest via
// InitSecondaryProcessor/StartSecondaryProcessor, each pinned to its
// own OS thread. It uses golang.org/x/sync/errgroup the way a
// multi-CPU integration test needs to: wait for every CPU goroutine
// and propagate the first failure, even though in steady state no CPU
// ever returns.
//
// newLocalPolicy is called once per CPU so each gets its own policy
// instance; globalPolicy is shared and installed once by CPU 0.
func BootCluster(numCPUs int, newLocalPolicy func() sched.Policy[*kernel.Task], globalPolicy sched.Policy[*kernel.Task]) (*errgroup.Group, []*kernel.CPU) {
	cpus := make([]*kernel.CPU, numCPUs)
	main := kernel.InitMainProcessor(0, newLocalPolicy(), globalPolicy, nil, nil)
	cpus[0] = main

	var g errgroup.Group
	g.Go(func() error {
		RunPinned(func() { kernel.StartMainProcessor(main) })
		return nil
	})

	for i := 1; i < numCPUs; i++ {
		id := uint64(i)
		secondary := kernel.InitSecondaryProcessor(id, newLocalPolicy(), nil, nil)
		cpus[i] = secondary
		g.Go(func() error {
			RunPinned(func() { kernel.StartSecondaryProcessor(secondary) })
			return nil
		})
	}

	klog.Infof("booted %d-CPU cluster", numCPUs)
	return &g, cpus
}
