package tasks

import (
	"fmt"

	"github.com/desertthunder/shelf/internal/models"
)

// ProgressUpdate represents a progress event during a script run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	SeedBooks Phase = iota
	SeedMembers
	ExecuteStep
	Summary
)

func (p Phase) String() string {
	switch p {
	case SeedBooks:
		return "seed_books"
	case SeedMembers:
		return "seed_members"
	case ExecuteStep:
		return "execute_step"
	case Summary:
		return "summary"
	default:
		return ""
	}
}

func seedBookUpdate(step, total int, b models.Book) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SeedBooks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Registered book %d: %s", b.ID, b.Title),
		Data:    b,
	}
}

func seedMemberUpdate(step, total int, m models.Member) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SeedMembers,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Registered member %d: %s", m.ID, m.Name),
		Data:    m,
	}
}

func executeStepUpdate(step, total int, s Step) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExecuteStep,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Running %s...", s),
		Data:    s,
	}
}

func summaryUpdate(r *RunResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Summary,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Applied %d, tolerated %d, %d transactions", r.Applied, r.Tolerated, len(r.Transactions)),
		Data:    r.Stats,
	}
}
