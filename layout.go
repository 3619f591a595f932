package docgen

import "fmt"

// PlannerState is the page cursor state of a Planner.
type PlannerState int

const (
	AwaitingPage PlannerState = iota
	InPage
	Done
)

func (s PlannerState) String() string {
	switch s {
	case AwaitingPage:
		return "awaiting_page"
	case InPage:
		return "in_page"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Planner assigns record blocks to pages and grid cells and interleaves the
// page and section breaks. A Planner belongs to a single generation pass.
type Planner struct {
	layout Layout
	next   int
	state  PlannerState
}

// NewPlanner returns a Planner positioned before the first page. The layout
// must already be valid.
func NewPlanner(l Layout) *Planner {
	return &Planner{layout: l}
}

// State returns the current cursor state.
func (p *Planner) State() PlannerState { return p.state }

// Placed returns the number of records placed so far.
func (p *Planner) Placed() int { return p.next }

// SlotFor computes where record i lands. Cells fill row-major.
func (p *Planner) SlotFor(i int) Slot {
	s := Slot{Record: i, Grid: p.layout}
	capacity := p.layout.Capacity()
	s.Page = i / capacity
	if p.layout.Mode == Grid {
		idx := i % capacity
		s.Row = (idx / p.layout.Cols) % p.layout.Rows
		s.Col = idx % p.layout.Cols
	}
	return s
}

// Place positions the next record's block and returns the commands to emit
// for it, breaks included. Blocks must not contain page or section breaks.
func (p *Planner) Place(block []Command) []Command {
	if p.state == Done {
		panic("docgen: Place called on a finished planner")
	}
	slot := p.SlotFor(p.next)
	p.next++

	if p.layout.Mode != Grid {
		out := make([]Command, 0, len(block)+1)
		out = append(out, block...)
		out = append(out, PageBreak)
		p.state = AwaitingPage
		return out
	}

	idx := slot.Record % p.layout.Capacity()
	out := make([]Command, 0, len(block)+2)
	switch {
	case idx == 0 && slot.Page > 0:
		out = append(out, PageBreak)
	case idx > 0 && p.layout.FlattenCells:
		out = append(out, SectionBreak)
	}
	if !p.layout.FlattenCells {
		out = append(out, Command{Kind: KindCell, Slot: slot})
	}
	out = append(out, block...)

	p.state = InPage
	if idx == p.layout.Capacity()-1 {
		p.state = AwaitingPage
	}
	return out
}

// Finish moves the planner to its terminal state. A partially filled last
// page is left as is.
func (p *Planner) Finish() {
	p.state = Done
}

// Plan places every block in order and returns the full command stream.
func Plan(l Layout, blocks [][]Command) []Command {
	p := NewPlanner(l)
	var out []Command
	for _, b := range blocks {
		out = append(out, p.Place(b)...)
	}
	p.Finish()
	return out
}
