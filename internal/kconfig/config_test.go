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

package kconfig

import "testing"

func TestDefaults(t *testing.T) {
	d := Defaults()
	if d.TickHz != 1000 || d.StackSize != 0x40000 || d.PriorityLevels != 8 {
		t.Fatalf("unexpected defaults: %+v", d)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	cfg, err := Load("testdata/taskcore.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NumCPUs != 4 {
		t.Fatalf("NumCPUs = %d, want 4", cfg.NumCPUs)
	}
	if cfg.TickHz != 1000 {
		t.Fatalf("TickHz = %d, want 1000", cfg.TickHz)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load("testdata/does-not-exist.toml"); err == nil {
		t.Fatal("expected error loading missing file")
	}
}
