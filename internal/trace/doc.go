// Package trace records what the zara front end is doing while it runs.
//
// Events are grouped into spans (begin/end pairs) and points. Each event has
// a Scope; the tracer Level decides which scopes are kept:
//
//   - LevelPhase keeps ScopeDriver and ScopePass (tokenize, collect)
//   - LevelDetail adds ScopeFile (one event pair per input file)
//   - LevelDebug adds ScopeOp (every symbol table insert/push/pop)
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	sp := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lex", 0)
//	defer sp.End("")
//
// StreamTracer writes immediately (text or NDJSON), RingTracer keeps the last
// N events for a dump on failure, MultiTracer fans out to both.
package trace
