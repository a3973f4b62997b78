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
package eval

import (
	"github.com/microcad-lang/go-microcad/pkg/model"
	"github.com/microcad-lang/go-microcad/pkg/symbol"
	"github.com/microcad-lang/go-microcad/pkg/syntax"
	"github.com/microcad-lang/go-microcad/pkg/util/source"
	"github.com/microcad-lang/go-microcad/pkg/value"
)

// FrameKind distinguishes the different kinds of stack frame.
type FrameKind uint8

const (
	// SourceFrame evaluates the top-level statements of a source file.
	SourceFrame FrameKind = iota
	// ModuleFrame evaluates the statements of a module, or the value of a
	// constant declared within one.
	ModuleFrame
	// WorkbenchFrame builds a single workpiece.
	WorkbenchFrame
	// InitFrame runs an initialiser of a workbench.
	InitFrame
	// FunctionFrame runs the body of a function.
	FunctionFrame
	// BodyFrame evaluates a body expression (i.e. "{ ... }").
	BodyFrame
	// CallFrame records an active call, including its arguments.
	CallFrame
)

func (p FrameKind) String() string {
	switch p {
	case SourceFrame:
		return "source"
	case ModuleFrame:
		return "module"
	case WorkbenchFrame:
		return "workbench"
	case InitFrame:
		return "init"
	case FunctionFrame:
		return "function"
	case BodyFrame:
		return "body"
	case CallFrame:
		return "call"
	}
	//
	return "???"
}

// Frame is a single frame on the evaluation stack.
type Frame struct {
	Kind FrameKind
	// Symbol providing the scope for name lookup within this frame.
	Symbol symbol.Id
	// Local values, in order of assignment.
	locals value.Tuple
	// Aliases introduced by use statements within a body.
	aliases map[string]syntax.QualifiedName
	// Modules imported wholesale by use statements within a body.
	useAlls []syntax.QualifiedName
	// Model being built by this frame (if any).
	model    model.Id
	hasModel bool
	// Arguments of a call frame.
	Args value.ArgumentValueList
	// Location of whatever opened this frame.
	Ref source.Ref
}

// Local returns the value of a local variable declared in this frame.
func (p *Frame) Local(name string) (value.Value, bool) {
	return p.locals.Get(name)
}

// Locals returns all local variables declared in this frame.
func (p *Frame) Locals() value.Tuple {
	return p.locals
}

// Model returns the model being built by this frame (if any).
func (p *Frame) Model() (model.Id, bool) {
	return p.model, p.hasModel
}

// Set a local variable, overwriting any previous value.
func (p *Frame) set(name string, val value.Value) {
	for i, n := range p.locals.Names {
		if n == name {
			p.locals.Items[i] = val
			return
		}
	}
	//
	p.locals.Add(name, val)
}

// Check whether local lookups should stop at this frame.  Only body frames
// can see the locals of their enclosing frame.
func (p *Frame) isBoundary() bool {
	return p.Kind != BodyFrame
}

func (p *Frame) addAlias(name string, target syntax.QualifiedName) {
	if p.aliases == nil {
		p.aliases = make(map[string]syntax.QualifiedName)
	}
	//
	p.aliases[name] = target
}

// ============================================================================
// Stack operations
// ============================================================================

func (p *Context) push(kind FrameKind, sym symbol.Id, ref source.Ref) *Frame {
	frame := &Frame{Kind: kind, Symbol: sym, Ref: ref}
	p.frames = append(p.frames, frame)
	//
	return frame
}

func (p *Context) pop() {
	p.frames = p.frames[:len(p.frames)-1]
}

// Top returns the innermost frame.
func (p *Context) Top() *Frame {
	return p.frames[len(p.frames)-1]
}

// CurrentCall returns the innermost call frame, which exists whenever a
// builtin is being invoked.
func (p *Context) CurrentCall() (*Frame, bool) {
	for i := len(p.frames) - 1; i >= 0; i-- {
		if p.frames[i].Kind == CallFrame {
			return p.frames[i], true
		}
	}
	//
	return nil, false
}

// Scope returns the symbol providing the scope for name lookup.
func (p *Context) scope() symbol.Id {
	if len(p.frames) == 0 {
		return symbol.RootId
	}
	//
	return p.Top().Symbol
}

// Find the innermost frame which is building a model, stopping at the
// innermost boundary.
func (p *Context) modelFrame() *Frame {
	for i := len(p.frames) - 1; i >= 0; i-- {
		frame := p.frames[i]
		//
		if frame.hasModel || frame.Kind == FunctionFrame {
			return frame
		} else if frame.isBoundary() {
			break
		}
	}
	//
	return nil
}

// Find the innermost frame in which a local variable is declared, stopping at
// the innermost boundary.
func (p *Context) findLocal(name string) (value.Value, bool) {
	for i := len(p.frames) - 1; i >= 0; i-- {
		frame := p.frames[i]
		//
		if val, ok := frame.locals.Get(name); ok {
			return val, true
		} else if frame.isBoundary() {
			break
		}
	}
	//
	return nil, false
}

// Rewrite a name according to any use statements within enclosing bodies.
// Aliases are tried first, followed by wholesale imports.
func (p *Context) bodyAliases(name syntax.QualifiedName) []syntax.QualifiedName {
	var (
		candidates []syntax.QualifiedName
		head       = name.Head().Name
	)
	//
	for i := len(p.frames) - 1; i >= 0; i-- {
		frame := p.frames[i]
		//
		if target, ok := frame.aliases[head]; ok {
			rest := name.Dehead()
			candidates = append(candidates, extendName(target, rest))
		}
		//
		for _, all := range frame.useAlls {
			candidates = append(candidates, extendName(all, name))
		}
		//
		if frame.isBoundary() {
			break
		}
	}
	//
	return candidates
}

func extendName(prefix syntax.QualifiedName, rest syntax.QualifiedName) syntax.QualifiedName {
	name := prefix
	//
	for _, part := range rest.Parts {
		name = name.Extend(part.Name)
	}
	//
	name.Ref = rest.Ref
	//
	return name
}
