package symbols

import "errors"

var (
	// ErrNoLocalScope is returned in strict mode by a Local insert with no open scope.
	ErrNoLocalScope = errors.New("no local scope is open")
	// ErrScopeUnderflow is returned in strict mode by PopScope on an empty stack.
	ErrScopeUnderflow = errors.New("scope stack underflow")
	// ErrEmptyName rejects Insert with an empty name.
	ErrEmptyName = errors.New("symbol name is empty")
)
