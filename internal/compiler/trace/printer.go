// Package trace renders the scope and declaration events produced during
// semantic analysis.
package trace

import (
	"fmt"
	"strings"

	"github.com/arnavsurve/fanc/internal/compiler/types"
)

type EventKind string

const (
	EventBeginScope EventKind = "begin_scope"
	EventEndScope   EventKind = "end_scope"
	EventVar        EventKind = "var"
	EventFunc       EventKind = "func"
)

// Event is one listener callback, in the order it arrived.
type Event struct {
	Kind   EventKind
	Name   string
	Type   types.Type // variable type or function return type
	Offset int
	Params []types.Type
	Depth  int // open scopes below the global one when the event fired
}

func (e Event) String() string {
	switch e.Kind {
	case EventVar:
		return fmt.Sprintf("%s %s %d", e.Name, e.Type, e.Offset)
	case EventFunc:
		return fmt.Sprintf("%s (%s) -> %s", e.Name, strings.Join(types.Names(e.Params), ","), e.Type)
	case EventBeginScope:
		return "---begin scope---"
	case EventEndScope:
		return "---end scope---"
	}
	return string(e.Kind)
}

// Printer implements scope.Listener. Function declarations are collected
// into the global section; everything else is indented by nesting depth.
type Printer struct {
	events  []Event
	globals strings.Builder
	body    strings.Builder
	depth   int
}

func NewPrinter() *Printer {
	return &Printer{}
}

func (p *Printer) BeginScope() {
	p.depth++
	p.record(Event{Kind: EventBeginScope, Depth: p.depth})
}

func (p *Printer) EndScope() {
	p.record(Event{Kind: EventEndScope, Depth: p.depth})
	if p.depth > 0 {
		p.depth--
	}
}

func (p *Printer) EmitVar(name string, t types.Type, offset int) {
	p.record(Event{Kind: EventVar, Name: name, Type: t, Offset: offset, Depth: p.depth})
}

func (p *Printer) EmitFunc(name string, ret types.Type, params []types.Type) {
	ps := make([]types.Type, len(params))
	copy(ps, params)
	p.record(Event{Kind: EventFunc, Name: name, Type: ret, Params: ps, Depth: p.depth})
}

func (p *Printer) record(e Event) {
	p.events = append(p.events, e)
	if e.Kind == EventFunc {
		p.globals.WriteString(e.String() + "\n")
		return
	}
	p.body.WriteString(strings.Repeat("  ", e.Depth) + e.String() + "\n")
}

// Events returns a copy of everything recorded so far.
func (p *Printer) Events() []Event {
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// Depth is the number of scopes currently open.
func (p *Printer) Depth() int { return p.depth }

func (p *Printer) String() string {
	var out strings.Builder
	out.WriteString("---begin global scope---\n")
	out.WriteString(p.globals.String())
	out.WriteString(p.body.String())
	out.WriteString("---end global scope---\n")
	return out.String()
}
