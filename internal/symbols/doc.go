// Package symbols keeps the names declared during one pass over a zara
// source file: a single global scope plus a stack of local scopes.
//
// Lookup walks the local stack from the innermost scope outwards and falls
// back to the global scope, so an inner declaration shadows an outer one.
// Within one scope a name is unique; inserting it again overwrites the entry
// in place.
//
// By default the table is permissive: a local insert with no open scope is
// dropped and popping an empty stack does nothing. Options.Strict turns both
// into errors (ErrNoLocalScope, ErrScopeUnderflow).
//
// Insert rejects an empty name with ErrEmptyName in both modes; a nameless
// entry could never be looked up.
//
// Lookup and Dump return Symbol copies, but Value is stored as given: a map,
// slice or pointer stays shared with the table. Bind immutable values.
//
// Table is not safe for concurrent use; wrap it in Locked when it has to be
// shared.
package symbols
