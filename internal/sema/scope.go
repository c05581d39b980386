package sema

import "github.com/oxhq/quasar/internal/types"

// symbol records a named binding's type and mutability.
type symbol struct {
	typ   types.Type
	constant bool
}

// scope is one lexical level of the scope stack: function bodies, block
// statements, and for-loop variables each push one.
type scope struct {
	parent *scope
	names  map[string]symbol
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: make(map[string]symbol)}
}

func (s *scope) define(name string, t types.Type, constant bool) {
	s.names[name] = symbol{typ: t, constant: constant}
}

func (s *scope) declaredHere(name string) bool {
	_, ok := s.names[name]
	return ok
}

func (s *scope) resolve(name string) (symbol, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.names[name]; ok {
			return sym, true
		}
	}
	return symbol{}, false
}
