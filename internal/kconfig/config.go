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

// Package kconfig loads the boot-time configuration for taskcoreboot
// from TOML, the way gVisor's runsc command loads its OCI-adjacent
// config files, using BurntSushi/toml.
package kconfig

import "github.com/BurntSushi/toml"

// Config is the full set of boot-time tunables. Zero values are never
// valid configuration; Defaults returns the values taskcoreboot falls
// back to when no file or flag overrides them.
type Config struct {
	TickHz         uint64 `toml:"tick_hz"`
	StackSize      int    `toml:"stack_size"`
	LocalPolicy    string `toml:"local_policy"`
	GlobalPolicy   string `toml:"global_policy"`
	PriorityLevels int    `toml:"priority_levels"`
	LogLevel       string `toml:"log_level"`
	NumCPUs        int    `toml:"num_cpus"`
}

// Defaults returns the configuration taskcoreboot uses absent a config
// file or flag overrides.
func Defaults() Config {
	return Config{
		TickHz:         1000,
		StackSize:      0x40000,
		LocalPolicy:    "roundrobin",
		GlobalPolicy:   "cfs",
		PriorityLevels: 8,
		LogLevel:       "info",
		NumCPUs:        1,
	}
}

// Load reads and merges a TOML config file over Defaults. A missing
// field in the file keeps its default value rather than zeroing it,
// since Config is decoded into a copy of Defaults() rather than a zero
// value.
func Load(path string) (Config, error) {
	cfg := Defaults()
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}
