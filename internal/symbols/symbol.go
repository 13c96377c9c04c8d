package symbols

import "fmt"

// Kind is the semantic classification of a symbol. The set is open:
// callers may use any label, the constants cover what the driver inserts.
type Kind string

const (
	KindIdentifier Kind = "identifier"
	KindType       Kind = "type"
	KindFunc       Kind = "func"
	KindInt        Kind = "int"
	KindFloat      Kind = "float"
	KindString     Kind = "string"
)

// Symbol is one declared name. A nil Value means no value is bound.
type Symbol struct {
	Name string
	Kind Kind
	// Value is not copied by Lookup or Dump; it must be treated as immutable.
	Value any
}

// HasValue reports whether a value is bound.
func (s Symbol) HasValue() bool { return s.Value != nil }

func (s Symbol) String() string {
	return fmt.Sprintf("Name: %s, Type: %s, Value: %s", s.Name, s.Kind, formatValue(s.Value))
}

func formatValue(v any) string {
	if v == nil {
		return "<none>"
	}
	return fmt.Sprint(v)
}

// Target selects which scope Insert writes to.
type Target uint8

const (
	Global Target = iota
	Local         // innermost open local scope
)

func (t Target) String() string {
	switch t {
	case Global:
		return "global"
	case Local:
		return "local"
	default:
		return "invalid"
	}
}

// ParseTarget converts "global"/"local" to a Target.
func ParseTarget(s string) (Target, error) {
	switch s {
	case "global":
		return Global, nil
	case "local":
		return Local, nil
	default:
		return Global, fmt.Errorf("invalid scope %q (expected: global|local)", s)
	}
}
