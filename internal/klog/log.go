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

// Package klog is a small leveled-logging facade over logrus, in the
// style of gVisor's pkg/log: package-level Debugf/Infof/Warningf/
// Errorf functions write through a single configurable logger so
// callers never have to carry one around.
package klog

import (
	"os"

	"github.com/sirupsen/logrus"
)

var std = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// SetLevel changes the minimum level that reaches the log, by name
// ("debug", "info", "warning", "error"). It panics on an unrecognized
// name, the same contract-violation treatment spec.md §7 gives
// malformed configuration.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		panic("klog: " + err.Error())
	}
	std.SetLevel(lvl)
}

// WithCPU returns an entry tagged with the current CPU's logical ID, so
// multi-CPU test and hostsim logs are easy to attribute.
func WithCPU(id uint64) *logrus.Entry {
	return std.WithField("cpu", id)
}

// WithTask returns an entry tagged with a task ID.
func WithTask(id uint64) *logrus.Entry {
	return std.WithField("task", id)
}

func Debugf(format string, args ...any)   { std.Debugf(format, args...) }
func Infof(format string, args ...any)    { std.Infof(format, args...) }
func Warningf(format string, args ...any) { std.Warnf(format, args...) }
func Errorf(format string, args ...any)   { std.Errorf(format, args...) }
