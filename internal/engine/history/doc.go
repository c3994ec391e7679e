// Package history provides undo/redo bookkeeping for a document.
//
// The history records, for every edit made to a document, the change that
// reverses it. Key concepts:
//
// # Changes
//
// A Change is either an *Atomic change or a *Compound change:
//   - Insertion: insert text at a position (reverses an erase)
//   - Deletion: erase a region (reverses an insert)
//   - Replacement: replace a region with text (reverses a replace)
//   - Compound: an ordered group of atomic changes undone as one unit
//
// Consecutive atomic changes merge when they describe contiguous typing or
// deleting, so a run of keystrokes becomes one undo step.
//
// # Manager
//
// The Manager owns the undo and redo stacks plus a pending slot holding
// the most recent atomic change while it can still absorb the next one:
//
//	m := history.NewManager(doc)
//	m.Record(history.NewDeletion(region))
//
//	res, err := m.Undo(1)
//	res, err = m.Redo(1)
//
// # Compound Changes
//
// Changes recorded between BeginCompound and EndCompound are undone
// together. Scopes nest; only the outermost one closes the group:
//
//	defer m.Scope().End()
//
// # Rollback
//
// While a change is performed for undo or redo, the changes the target
// records are collected into a side compound, which moves onto the
// opposite stack when the step finishes.
//
// The Manager is not safe for concurrent use.
package history
