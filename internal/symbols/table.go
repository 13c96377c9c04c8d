package symbols

import "fmt"

// Options tune table behaviour.
type Options struct {
	// Strict surfaces dropped local inserts and empty pops as errors.
	Strict bool
	// Observer, if set, is told about every mutation after it happens.
	Observer Observer
}

// Table is a global scope plus a stack of local scopes (innermost last).
type Table struct {
	global *scope
	locals []*scope
	opts   Options
}

// New creates an empty table.
func New(opts Options) *Table {
	return &Table{
		global: newScope("global"),
		opts:   opts,
	}
}

// Insert writes sym into the selected scope, overwriting an entry with the
// same name in that scope. A Local insert with no open scope is dropped, or
// fails with ErrNoLocalScope in strict mode.
func (t *Table) Insert(name string, kind Kind, value any, target Target) error {
	if name == "" {
		return ErrEmptyName
	}
	sym := Symbol{Name: name, Kind: kind, Value: value}

	var dst *scope
	switch target {
	case Global:
		dst = t.global
	case Local:
		if len(t.locals) == 0 {
			t.notify(Event{Op: OpDrop, Symbol: sym, Target: target})
			if t.opts.Strict {
				return fmt.Errorf("insert %q: %w", name, ErrNoLocalScope)
			}
			return nil
		}
		dst = t.locals[len(t.locals)-1]
	default:
		return fmt.Errorf("insert %q: invalid target %d", name, target)
	}

	// затенение фиксируем до записи: ищем имя во внешних уровнях
	shadows := false
	if target == Local {
		_, shadows = t.lookupFrom(len(t.locals)-2, name)
	}
	overwrote := dst.put(sym)
	t.notify(Event{
		Op:        OpInsert,
		Symbol:    sym,
		Target:    target,
		Scope:     dst.label,
		Depth:     len(t.locals),
		Overwrote: overwrote,
		Shadows:   shadows,
	})
	return nil
}

// Lookup returns a copy of the nearest symbol named name.
func (t *Table) Lookup(name string) (Symbol, bool) {
	return t.lookupFrom(len(t.locals)-1, name)
}

// LookupLocal searches only the innermost local scope.
func (t *Table) LookupLocal(name string) (Symbol, bool) {
	if len(t.locals) == 0 {
		return Symbol{}, false
	}
	return t.locals[len(t.locals)-1].get(name)
}

// lookupFrom ищет в локальных уровнях [0..top] сверху вниз, затем в global.
func (t *Table) lookupFrom(top int, name string) (Symbol, bool) {
	for i := top; i >= 0; i-- {
		if sym, ok := t.locals[i].get(name); ok {
			return sym, true
		}
	}
	return t.global.get(name)
}

// PushScope opens an empty local scope. label only shows up in dumps and events.
func (t *Table) PushScope(label string) {
	t.locals = append(t.locals, newScope(label))
	t.notify(Event{Op: OpPush, Scope: label, Target: Local, Depth: len(t.locals)})
}

// PopScope discards the innermost local scope with all its symbols.
// On an empty stack it does nothing, or returns ErrScopeUnderflow in strict mode.
func (t *Table) PopScope() error {
	if len(t.locals) == 0 {
		t.notify(Event{Op: OpUnderflow, Target: Local})
		if t.opts.Strict {
			return ErrScopeUnderflow
		}
		return nil
	}
	top := t.locals[len(t.locals)-1]
	t.locals[len(t.locals)-1] = nil
	t.locals = t.locals[:len(t.locals)-1]
	t.notify(Event{Op: OpPop, Scope: top.label, Target: Local, Depth: len(t.locals), Dropped: top.len()})
	return nil
}

// Depth is the number of open local scopes.
func (t *Table) Depth() int { return len(t.locals) }

// Len is the total number of symbols across all scopes.
func (t *Table) Len() int {
	n := t.global.len()
	for _, s := range t.locals {
		n += s.len()
	}
	return n
}

func (t *Table) notify(ev Event) {
	if t.opts.Observer != nil {
		t.opts.Observer.Observe(ev)
	}
}
