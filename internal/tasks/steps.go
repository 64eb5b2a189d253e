package tasks

import (
	"fmt"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// Op names a scripted catalog operation.
type Op string

const (
	OpAddBook      Op = "add_book"
	OpRemoveBook   Op = "remove_book"
	OpAddMember    Op = "add_member"
	OpRemoveMember Op = "remove_member"
	OpCheckout     Op = "checkout"
	OpReturn       Op = "return"
	OpSearch       Op = "search"
	OpStats        Op = "stats"
)

// Step is one scripted operation. Only the fields relevant to Op are read.
type Step struct {
	Op      Op
	Book    int
	Member  int
	Keyword string
	Title   string
	Author  string
	Year    int
	Name    string
	Email   string
}

func (s Step) String() string {
	switch s.Op {
	case OpAddBook:
		return fmt.Sprintf("add book %d %q", s.Book, s.Title)
	case OpRemoveBook:
		return fmt.Sprintf("remove book %d", s.Book)
	case OpAddMember:
		return fmt.Sprintf("add member %d %q", s.Member, s.Name)
	case OpRemoveMember:
		return fmt.Sprintf("remove member %d", s.Member)
	case OpCheckout:
		return fmt.Sprintf("checkout book %d to member %d", s.Book, s.Member)
	case OpReturn:
		return fmt.Sprintf("return book %d", s.Book)
	case OpSearch:
		return fmt.Sprintf("search %q", s.Keyword)
	case OpStats:
		return "stats"
	default:
		return string(s.Op)
	}
}

// StepsFromConfig converts configured script steps.
func StepsFromConfig(cfg []shared.StepConfig) []Step {
	steps := make([]Step, len(cfg))
	for i, c := range cfg {
		steps[i] = Step{
			Op:      Op(c.Op),
			Book:    c.Book,
			Member:  c.Member,
			Keyword: c.Keyword,
			Title:   c.Title,
			Author:  c.Author,
			Year:    c.Year,
			Name:    c.Name,
			Email:   c.Email,
		}
	}
	return steps
}

// StepResult is the outcome of a single executed [Step].
type StepResult struct {
	Index  int           // Position in the script
	Step   Step          // Executed step
	Result models.Result // Outcome of mutating steps; Success for queries
	Books  []models.Book // Matches of a search step
	Stats  *models.Stats // Snapshot taken by a stats step
}

// StepError reports a step the engine could not execute.
type StepError struct {
	Index int
	Op    Op
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
