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

package trap

// Interrupt causes, the low bits of scause with its top bit set. Only
// the supervisor-level causes this runtime ever registers handlers for
// are named; the rest route through a table's panicking default.
const (
	SupervisorSoftwareInterrupt uint64 = 1
	SupervisorTimerInterrupt    uint64 = 5
	SupervisorExternalInterrupt uint64 = 9
)

// Exception causes, scause with its top bit clear.
const (
	InstructionAddressMisaligned uint64 = 0
	IllegalInstruction           uint64 = 2
	Breakpoint                   uint64 = 3
	LoadAddressMisaligned        uint64 = 4
	StoreAddressMisaligned       uint64 = 6
	EnvironmentCallFromUMode     uint64 = 8
	EnvironmentCallFromSMode     uint64 = 9
	InstructionPageFault         uint64 = 12
	LoadPageFault                uint64 = 13
	StorePageFault               uint64 = 15
)
