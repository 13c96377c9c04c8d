package symbols

// scope хранит символы в порядке первой вставки; повторная вставка
// перезаписывает запись, не меняя её позицию.
type scope struct {
	label   string
	index   map[string]int
	entries []Symbol
}

func newScope(label string) *scope {
	return &scope{label: label, index: make(map[string]int)}
}

// put reports whether name was already present.
func (s *scope) put(sym Symbol) bool {
	if i, ok := s.index[sym.Name]; ok {
		s.entries[i] = sym
		return true
	}
	s.index[sym.Name] = len(s.entries)
	s.entries = append(s.entries, sym)
	return false
}

func (s *scope) get(name string) (Symbol, bool) {
	i, ok := s.index[name]
	if !ok {
		return Symbol{}, false
	}
	return s.entries[i], true
}

func (s *scope) len() int { return len(s.entries) }
