package symbols

import "sync"

// Locked serializes every operation on a Table behind one mutex.
// Scope push/pop and lookups are not safe to interleave otherwise.
type Locked struct {
	mu sync.Mutex
	t  *Table
}

// NewLocked wraps t; t must not be used directly afterwards.
func NewLocked(t *Table) *Locked {
	return &Locked{t: t}
}

func (l *Locked) Insert(name string, kind Kind, value any, target Target) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Insert(name, kind, value, target)
}

func (l *Locked) Lookup(name string) (Symbol, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Lookup(name)
}

func (l *Locked) PushScope(label string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.t.PushScope(label)
}

func (l *Locked) PopScope() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.PopScope()
}

func (l *Locked) Depth() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Depth()
}

func (l *Locked) Dump() Report {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.t.Dump()
}

// With runs fn with exclusive access, for multi-step sequences such as
// push, insert, pop.
func (l *Locked) With(fn func(t *Table) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(l.t)
}
