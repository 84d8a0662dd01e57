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
	"github.com/arceos-go/taskcore/pkg/kernel"
	"github.com/arceos-go/taskcore/pkg/trap"
)

// Ecall lets a task body simulate executing a RISC-V `ecall` instruction
// against its own live register frame. Unlike a timer tick or an
// external IRQ, a synchronous exception traps at the exact point of
// execution rather than arriving asynchronously on some other
// goroutine, so there is no pendingIntr queue to post to here: Ecall
// dispatches straight through tables on the calling task's own
// goroutine, mirroring the way real hardware vectors into the trap
// handler without ever returning to the instruction after `ecall`
// until the handler does.
//
// Callers set up syscall arguments on c.Current().Frame() (a7 for the
// syscall number, a0-a5 for arguments) before calling Ecall, the same
// way a libc syscall stub loads registers before trapping.
func Ecall(c *kernel.CPU, tables *trap.Tables) {
	t := c.Current()
	tables.DispatchException(c, t.Frame(), trap.EnvironmentCallFromUMode)
}
