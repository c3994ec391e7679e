package history

// Scope provides a convenient way to group changes using defer.
// Usage:
//
//	func indentLines(m *Manager) {
//	    defer m.Scope().End()
//	    // ... multiple edits ...
//	}
type Scope struct {
	manager *Manager
	active  bool
}

// Scope opens a compound change.
// Call End() or use with defer to close it.
func (m *Manager) Scope() *Scope {
	m.BeginCompound()
	return &Scope{
		manager: m,
		active:  true,
	}
}

// End closes the compound change.
// Safe to call multiple times; only the first call has effect.
func (s *Scope) End() {
	if s.active {
		s.manager.EndCompound()
		s.active = false
	}
}

// Transaction runs fn inside a compound change.
// Edits made before an error remain applied and grouped; the error is
// returned unchanged.
func (m *Manager) Transaction(fn func() error) error {
	defer m.Scope().End()
	return fn()
}
