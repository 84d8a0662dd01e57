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

	"github.com/arceos-go/taskcore/internal/kconfig"
	"github.com/google/subcommands"
)

// inspectCmd implements subcommands.Command for "inspect": it prints
// the fully resolved configuration (defaults merged with an optional
// file) without booting anything, for debugging a deployment's config.
type inspectCmd struct {
	configPath string
}

func (*inspectCmd) Name() string     { return "inspect" }
func (*inspectCmd) Synopsis() string { return "print the resolved boot configuration" }
func (*inspectCmd) Usage() string {
	return "inspect [-config path]\n"
}

func (c *inspectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "path to a taskcore.toml config file")
}

func (c *inspectCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg := kconfig.Defaults()
	if c.configPath != "" {
		loaded, err := kconfig.Load(c.configPath)
		if err != nil {
			fmt.Printf("loading config: %v\n", err)
			return subcommands.ExitFailure
		}
		cfg = loaded
	}
	fmt.Printf("tick_hz = %d\n", cfg.TickHz)
	fmt.Printf("stack_size = %d\n", cfg.StackSize)
	fmt.Printf("local_policy = %q\n", cfg.LocalPolicy)
	fmt.Printf("global_policy = %q\n", cfg.GlobalPolicy)
	fmt.Printf("priority_levels = %d\n", cfg.PriorityLevels)
	fmt.Printf("log_level = %q\n", cfg.LogLevel)
	fmt.Printf("num_cpus = %d\n", cfg.NumCPUs)
	return subcommands.ExitSuccess
}
