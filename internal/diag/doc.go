// Package diag defines the diagnostic model shared by the lexer, the symbol
// table collector and the CLI.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced
//     by the lexical and declaration-collection passes.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform formatting beyond the single-line short form
// used by tests and quiet CLI output. Rendering lives in internal/diagfmt.
//
// # Data model
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier with stable string form (LEX1001…).
//   - Message – short, actionable text.
//   - Primary – the source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages.
//
// Lexical findings never abort a pass: producers report and keep going, and
// the Bag caps how many findings are retained.
package diag
