// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package util

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

// PerfStats records the time and memory used by a phase (e.g. evaluation or
// rendering), as measured from when it was created.
type PerfStats struct {
	start time.Time
	// Total bytes allocated at the start
	allocated uint64
	// Number of completed GC cycles at the start
	cycles uint32
}

// NewPerfStats starts measuring a phase.
func NewPerfStats() *PerfStats {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	return &PerfStats{time.Now(), m.TotalAlloc, m.NumGC}
}

// Elapsed returns the time since this phase started.
func (p *PerfStats) Elapsed() time.Duration {
	return time.Since(p.start)
}

// Log (at debug level) what this phase has used so far, along with the memory
// currently in use.
func (p *PerfStats) Log(phase string) {
	if !log.IsLevelEnabled(log.DebugLevel) {
		return
	}
	//
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	log.WithFields(log.Fields{
		"elapsed":   p.Elapsed().Round(time.Microsecond),
		"allocated": float64(m.TotalAlloc-p.allocated) / megabyte,
		"gc":        m.NumGC - p.cycles,
		"heap":      float64(m.HeapAlloc) / megabyte,
	}).Debugf("%s done", phase)
}
