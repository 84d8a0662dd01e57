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

package kernel

import "fmt"

// State is the variant described in spec.md §3. Runnable covers both
// "currently executing on some CPU" and "ready in a scheduler queue".
type State uint8

const (
	// Runnable covers both currently-executing and ready-in-a-queue.
	Runnable State = iota + 1
	// Blocking is transient: the task decided to block but may not yet
	// have saved its context. No other CPU may resume it while Blocking.
	Blocking
	// Blocked means the task is parked in a block queue with a context
	// safe to wake.
	Blocked
	// Exited is terminal.
	Exited
)

func (s State) String() string {
	switch s {
	case Runnable:
		return "Runnable"
	case Blocking:
		return "Blocking"
	case Blocked:
		return "Blocked"
	case Exited:
		return "Exited"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}
