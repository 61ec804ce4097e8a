package lisp

import (
	"sort"
	"sync"
)

// SymbolID is a number assigned to a symbol when it is first interned.  IDs
// are unique within a SymbolTable and increase in the order symbols were
// interned.
type SymbolID uint32

// DefaultSymbolTable is the process-wide symbol table.  Symbols are never
// removed from it.
var DefaultSymbolTable = NewSymbolTable()

// Intern uses DefaultSymbolTable to intern s and returns its canonical
// symbol.
func Intern(s string) *Symbol {
	return DefaultSymbolTable.Intern(s)
}

// InternAll interns each string in s and returns the symbols in order.
func InternAll(s ...string) []*Symbol {
	return DefaultSymbolTable.InternAll(s...)
}

// SymbolRow is an entry in an exported SymbolTable.
type SymbolRow struct {
	Name string
	ID   SymbolID
}

type symbolRowByName []SymbolRow

func (r symbolRowByName) Len() int           { return len(r) }
func (r symbolRowByName) Less(i, j int) bool { return r[i].Name < r[j].Name }
func (r symbolRowByName) Swap(i, j int)      { r[i], r[j] = r[j], r[i] }

// SymbolTable maps text to canonical symbols.  SymbolTable methods are safe to
// call concurrently.
type SymbolTable struct {
	sync   sync.RWMutex
	lastid SymbolID
	s      map[string]*Symbol
}

// NewSymbolTable returns a new, empty SymbolTable.  Symbols from different
// tables are never identical, so most programs should only use
// DefaultSymbolTable.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		s: make(map[string]*Symbol),
	}
}

// Len returns the number of symbols interned in the table.
func (t *SymbolTable) Len() int {
	t.sync.RLock()
	defer t.sync.RUnlock()
	return len(t.s)
}

// Intern inserts s into the table if it is not present and returns its
// symbol.
func (t *SymbolTable) Intern(s string) *Symbol {
	t.sync.RLock()
	sym, ok := t.s[s]
	t.sync.RUnlock()
	if ok {
		return sym
	}
	t.sync.Lock()
	defer t.sync.Unlock()
	return t.intern(s)
}

// InternAll performs a bulk Intern operation and returns a list of symbols
// that matches the given strings.
func (t *SymbolTable) InternAll(s ...string) []*Symbol {
	syms := make([]*Symbol, 0, len(s))
	t.sync.Lock()
	defer t.sync.Unlock()
	for _, s := range s {
		syms = append(syms, t.intern(s))
	}
	return syms
}

func (t *SymbolTable) intern(s string) *Symbol {
	if sym, ok := t.s[s]; ok {
		return sym
	}
	t.lastid++
	sym := &Symbol{name: s, id: t.lastid, numeral: isNumeral(s)}
	t.s[s] = sym
	return sym
}

// Peek retrieves the symbol for s without interning it.  Peek returns false
// if s has not been interned.
func (t *SymbolTable) Peek(s string) (*Symbol, bool) {
	t.sync.RLock()
	defer t.sync.RUnlock()
	sym, ok := t.s[s]
	return sym, ok
}

// Export returns all table entries sorted by name.
func (t *SymbolTable) Export() []SymbolRow {
	t.sync.RLock()
	r := make([]SymbolRow, 0, len(t.s))
	for name, sym := range t.s {
		r = append(r, SymbolRow{Name: name, ID: sym.id})
	}
	t.sync.RUnlock()
	sort.Sort(symbolRowByName(r))
	return r
}

func isNumeral(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
