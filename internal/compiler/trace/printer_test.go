package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/fanc/internal/compiler/scope"
	"github.com/arnavsurve/fanc/internal/compiler/types"
)

var _ scope.Listener = (*Printer)(nil)

func TestPrinterFormat(t *testing.T) {
	p := NewPrinter()
	p.EmitFunc("print", types.Void, []types.Type{types.String})
	p.EmitFunc("add", types.Int, []types.Type{types.Int, types.Byte})
	p.BeginScope()
	p.EmitVar("a", types.Int, -1)
	p.EmitVar("b", types.Byte, -2)
	p.BeginScope()
	p.EmitVar("c", types.Bool, 0)
	p.EndScope()
	p.EndScope()

	want := `---begin global scope---
print (string) -> void
add (int,byte) -> int
  ---begin scope---
  a int -1
  b byte -2
    ---begin scope---
    c bool 0
    ---end scope---
  ---end scope---
---end global scope---
`
	assert.Equal(t, want, p.String())
	assert.Equal(t, 0, p.Depth())
}

func TestPrinterEvents(t *testing.T) {
	p := NewPrinter()
	p.EmitFunc("f", types.Void, nil)
	p.BeginScope()
	p.EmitVar("x", types.Int, 0)
	p.EndScope()

	events := p.Events()
	require.Len(t, events, 4)
	assert.Equal(t, EventFunc, events[0].Kind)
	assert.Equal(t, Event{Kind: EventBeginScope, Depth: 1}, events[1])
	assert.Equal(t, Event{Kind: EventVar, Name: "x", Type: types.Int, Offset: 0, Depth: 1}, events[2])
	assert.Equal(t, EventEndScope, events[3].Kind)

	// The returned slice is a copy.
	events[0].Name = "changed"
	assert.Equal(t, "f", p.Events()[0].Name)
}

func TestEmptyPrinter(t *testing.T) {
	assert.Equal(t, "---begin global scope---\n---end global scope---\n", NewPrinter().String())
}
