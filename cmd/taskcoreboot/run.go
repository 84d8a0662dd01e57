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

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/arceos-go/taskcore/internal/hostsim"
	"github.com/arceos-go/taskcore/internal/kconfig"
	"github.com/arceos-go/taskcore/internal/klog"
	"github.com/arceos-go/taskcore/pkg/kernel"
	"github.com/arceos-go/taskcore/pkg/sched"
	"github.com/google/subcommands"
)

// runCmd implements subcommands.Command for "run": it boots a
// simulated cluster and blocks forever, the way taskcoreboot's real
// freestanding counterpart never returns from its own boot entry
// point.
type runCmd struct {
	configPath string
	numCPUs    int
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "boot a simulated taskcore cluster" }
func (*runCmd) Usage() string {
	return "run [-config path] [-cpus n]\n"
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "path to a taskcore.toml config file")
	f.IntVar(&c.numCPUs, "cpus", 0, "override num_cpus from the config file")
}

func (c *runCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg := kconfig.Defaults()
	if c.configPath != "" {
		loaded, err := kconfig.Load(c.configPath)
		if err != nil {
			fmt.Printf("loading config: %v\n", err)
			return subcommands.ExitFailure
		}
		cfg = loaded
	}
	if c.numCPUs > 0 {
		cfg.NumCPUs = c.numCPUs
	}

	klog.SetLevel(cfg.LogLevel)

	newLocal, err := policyFactory(cfg.LocalPolicy, cfg.PriorityLevels)
	if err != nil {
		fmt.Println(err)
		return subcommands.ExitFailure
	}
	global, err := policyFactory(cfg.GlobalPolicy, cfg.PriorityLevels)
	if err != nil {
		fmt.Println(err)
		return subcommands.ExitFailure
	}

	g, _ := hostsim.BootCluster(cfg.NumCPUs, newLocal, global())
	klog.Infof("taskcoreboot: cluster running, tick_hz=%d", cfg.TickHz)
	if err := g.Wait(); err != nil {
		fmt.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// policyFactory resolves a config-file policy name to a constructor.
// priorityLevels is unused by every built-in policy today but is
// threaded through so a future NumPriorityLevels-configurable policy
// doesn't need a signature change here.
func policyFactory(name string, priorityLevels int) (func() sched.Policy[*kernel.Task], error) {
	switch name {
	case "fifo":
		return func() sched.Policy[*kernel.Task] { return sched.NewFIFO[*kernel.Task]() }, nil
	case "roundrobin":
		return func() sched.Policy[*kernel.Task] { return sched.NewRoundRobin[*kernel.Task]() }, nil
	case "priority":
		return func() sched.Policy[*kernel.Task] { return sched.NewStaticPriority[*kernel.Task]() }, nil
	case "cfs":
		return func() sched.Policy[*kernel.Task] { return sched.NewCFS[*kernel.Task]() }, nil
	default:
		return nil, fmt.Errorf("taskcoreboot: unknown policy %q", name)
	}
}
