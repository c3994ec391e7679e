// Package tracking records the changes of a document in a bounded journal.
//
// A [Journal] registers itself as a listener of a document and keeps the
// most recent changes in a ring buffer. Every entry carries a journal
// sequence number that only grows, even when undo lowers the document
// revision, so callers can ask what changed since they last looked:
//
//	j := tracking.NewJournal(tracking.WithMaxEntries(1000))
//	if err := j.Attach(doc); err != nil {
//	    return err
//	}
//	seq := j.Current()
//	// ... edits ...
//	for _, e := range j.ChangesSince(seq) {
//	    fmt.Println(e)
//	}
//
// # Marks
//
// Named marks remember a sequence number, for example before running an
// edit script:
//
//	j.Mark("before_script")
//	// ... edits ...
//	entries, err := j.ChangesSinceMark("before_script")
//
// # Thread Safety
//
// All Journal operations are safe for concurrent use. The document itself
// is not; see the engine package for a locked facade.
package tracking
