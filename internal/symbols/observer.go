package symbols

import (
	"strconv"

	"zara/internal/trace"
)

// Op identifies a table mutation.
type Op uint8

const (
	OpInsert    Op = iota + 1
	OpDrop         // local insert with no open scope
	OpPush
	OpPop
	OpUnderflow // pop on an empty stack
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpDrop:
		return "drop"
	case OpPush:
		return "push"
	case OpPop:
		return "pop"
	case OpUnderflow:
		return "underflow"
	default:
		return "unknown"
	}
}

// Event describes one mutation. Fields irrelevant to Op are zero.
type Event struct {
	Op        Op
	Symbol    Symbol
	Target    Target
	Scope     string // label of the affected scope
	Depth     int    // local depth after the operation
	Overwrote bool   // insert replaced an entry in the same scope
	Shadows   bool   // insert hides a symbol from an outer scope
	Dropped   int    // symbols discarded by pop
}

// Observer receives events after the table has been updated.
// It must not call back into the table.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(ev Event) { f(ev) }

// TraceObserver emits every event as a trace point at ScopeOp, parented to parent.
func TraceObserver(tr trace.Tracer, parent uint64) Observer {
	return ObserverFunc(func(ev Event) {
		if !tr.Enabled() {
			return
		}
		extra := map[string]string{
			"target": ev.Target.String(),
			"depth":  strconv.Itoa(ev.Depth),
		}
		if ev.Scope != "" {
			extra["scope"] = ev.Scope
		}
		detail := ev.Symbol.Name
		switch ev.Op {
		case OpInsert:
			extra["kind"] = string(ev.Symbol.Kind)
			if ev.Overwrote {
				extra["overwrote"] = "true"
			}
			if ev.Shadows {
				extra["shadows"] = "true"
			}
		case OpPop:
			extra["dropped"] = strconv.Itoa(ev.Dropped)
		}
		trace.Point(tr, trace.ScopeOp, "symbols."+ev.Op.String(), detail, parent, extra)
	})
}

// Observers fans an event out to several observers in order.
func Observers(obs ...Observer) Observer {
	return ObserverFunc(func(ev Event) {
		for _, o := range obs {
			if o != nil {
				o.Observe(ev)
			}
		}
	})
}
