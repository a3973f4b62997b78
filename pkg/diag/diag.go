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
package diag

import (
	"errors"
	"fmt"

	"github.com/microcad-lang/go-microcad/pkg/util/source"
)

// Level determines the severity of a diagnostic.
type Level uint8

const (
	// Trace diagnostics report fine-grained progress (e.g. from print).
	Trace Level = iota
	// Info diagnostics are informative only.
	Info
	// Warning diagnostics indicate something suspicious, which can be promoted
	// to an error by configuration.
	Warning
	// Error diagnostics indicate evaluation could not proceed as written.
	Error
)

func (p Level) String() string {
	switch p {
	case Trace:
		return "trace"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	//
	return "???"
}

// Diagnostic is a single message reported to the user, which is (optionally)
// associated with a location in a source file.
type Diagnostic struct {
	Level   Level
	Message string
	Ref     source.Ref
}

// NewDiagnostic constructs a new diagnostic.
func NewDiagnostic(level Level, ref source.Ref, msg string) Diagnostic {
	return Diagnostic{level, msg, ref}
}

func (p Diagnostic) String() string {
	if p.Ref.IsNone() {
		return fmt.Sprintf("%s: %s", p.Level, p.Message)
	}
	//
	return fmt.Sprintf("%s: %s (%s)", p.Level, p.Message, p.Ref.String())
}

// Located is implemented by errors which know where they arose.
type Located interface {
	error
	Location() source.Ref
}

// LocationOf returns the location of an error (or anything it wraps), or the
// empty reference if it has none.
func LocationOf(err error) source.Ref {
	var located Located
	//
	if errors.As(err, &located) {
		return located.Location()
	}
	//
	return source.NoRef()
}

// Sink is anything which records diagnostics.
type Sink interface {
	// PushDiag records a single diagnostic, returning false if no further
	// diagnostics will be recorded.
	PushDiag(Diagnostic) bool
}

// Handler is the standard diagnostic sink.  This accumulates diagnostics in
// order of reporting (ignoring exact duplicates), promotes warnings to errors
// when so configured and stops collecting once the error limit is exceeded.
type Handler struct {
	diagnostics []Diagnostic
	// Maximum number of errors to collect (0 means unlimited).
	errorLimit uint
	// Treat warnings as errors.
	warningsAsErrors bool
	// Number of errors and warnings recorded so far.
	errors, warnings uint
	// Set once the error limit has been exceeded.
	exceeded bool
	// Used to detect duplicates
	seen map[Diagnostic]bool
}

var _ Reporter = &Handler{}

// Reporter is a sink which additionally offers convenience methods for each
// diagnostic level.
type Reporter interface {
	Sink
	Error(ref source.Ref, err error) bool
	Warning(ref source.Ref, msg string) bool
	Info(ref source.Ref, msg string) bool
	Trace(ref source.Ref, msg string) bool
	HasErrors() bool
}

// NewHandler constructs a new handler with the given error limit (0 means
// unlimited).
func NewHandler(errorLimit uint, warningsAsErrors bool) *Handler {
	return &Handler{errorLimit: errorLimit, warningsAsErrors: warningsAsErrors, seen: make(map[Diagnostic]bool)}
}

// PushDiag records a single diagnostic, returning false once the error limit
// has been exceeded.
func (p *Handler) PushDiag(diag Diagnostic) bool {
	if p.exceeded {
		return false
	} else if diag.Level == Warning && p.warningsAsErrors {
		diag.Level = Error
	}
	//
	if p.seen[diag] {
		return true
	}
	//
	if diag.Level == Error {
		if p.errorLimit > 0 && p.errors >= p.errorLimit {
			p.exceeded = true
			return false
		}
		//
		p.errors++
	} else if diag.Level == Warning {
		p.warnings++
	}
	//
	p.seen[diag] = true
	p.diagnostics = append(p.diagnostics, diag)
	//
	return true
}

// Error records an error at a given location.
func (p *Handler) Error(ref source.Ref, err error) bool {
	return p.PushDiag(NewDiagnostic(Error, ref, err.Error()))
}

// ReportAll records a set of errors, each at its own location (if known).
// This returns false if the error limit was exceeded.
func (p *Handler) ReportAll(errs []error) bool {
	for _, err := range errs {
		if !p.Error(LocationOf(err), err) {
			return false
		}
	}
	//
	return true
}

// Warning records a warning at a given location.
func (p *Handler) Warning(ref source.Ref, msg string) bool {
	return p.PushDiag(NewDiagnostic(Warning, ref, msg))
}

// Info records an informative message at a given location.
func (p *Handler) Info(ref source.Ref, msg string) bool {
	return p.PushDiag(NewDiagnostic(Info, ref, msg))
}

// Trace records a trace message at a given location.
func (p *Handler) Trace(ref source.Ref, msg string) bool {
	return p.PushDiag(NewDiagnostic(Trace, ref, msg))
}

// Diagnostics returns all diagnostics recorded so far, in order.
func (p *Handler) Diagnostics() []Diagnostic {
	return p.diagnostics
}

// ErrorCount returns the number of errors recorded so far.
func (p *Handler) ErrorCount() uint {
	return p.errors
}

// WarningCount returns the number of warnings recorded so far.
func (p *Handler) WarningCount() uint {
	return p.warnings
}

// HasErrors checks whether any errors have been recorded.
func (p *Handler) HasErrors() bool {
	return p.errors > 0 || p.exceeded
}

// LimitExceeded checks whether further diagnostics were dropped because the
// error limit was exceeded.
func (p *Handler) LimitExceeded() bool {
	return p.exceeded
}
