package cli

import (
	"time"

	"github.com/google/uuid"
)

// Checkpoint is one durable undo step recorded by a commit.
type Checkpoint struct {
	ID    uuid.UUID
	Label string
	At    time.Time
}

// UndoStack is an in-memory undo log implementing coltrans.UndoSink. The
// engine records exactly one checkpoint per commit and none for preview or
// reset, so the stack length is a direct count of durable changes.
type UndoStack struct {
	entries []Checkpoint
}

// Checkpoint appends one durable step.
func (u *UndoStack) Checkpoint(label string) {
	u.entries = append(u.entries, Checkpoint{
		ID:    uuid.New(),
		Label: label,
		At:    time.Now(),
	})
}

// Len returns the number of recorded steps.
func (u *UndoStack) Len() int {
	return len(u.entries)
}

// Last returns the most recent checkpoint.
func (u *UndoStack) Last() (Checkpoint, bool) {
	if len(u.entries) == 0 {
		return Checkpoint{}, false
	}
	return u.entries[len(u.entries)-1], true
}
