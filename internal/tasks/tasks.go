package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// RunResult contains all data from a full script run.
type RunResult struct {
	Steps        []StepResult         // Individual step outcomes in script order
	Stats        models.Stats         // Stats after the last step
	Transactions []models.Transaction // Full transaction log after the last step
	Applied      int                  // Mutating steps that returned Success
	Tolerated    int                  // Mutating steps that returned any other Result
}

// ScriptEngine defines scripted operations against a catalog.
type ScriptEngine interface {
	// Seed registers the given books and members in order.
	Seed(ctx context.Context, books []models.Book, members []models.Member, progress chan<- ProgressUpdate) error

	// Run executes steps in order and reports the outcome of each.
	Run(ctx context.Context, steps []Step, progress chan<- ProgressUpdate) (*RunResult, error)
}

// CatalogEngine implements [ScriptEngine] for a single [catalog.Catalog].
type CatalogEngine struct {
	catalog *catalog.Catalog
}

var _ ScriptEngine = (*CatalogEngine)(nil)

// NewCatalogEngine creates a new CatalogEngine bound to c.
func NewCatalogEngine(c *catalog.Catalog) *CatalogEngine {
	return &CatalogEngine{catalog: c}
}

// Catalog returns the catalog the engine operates on.
func (e *CatalogEngine) Catalog() *catalog.Catalog {
	return e.catalog
}

// sendProgress sends a progress update through the channel without blocking.
func (e *CatalogEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
		// Channel full, skip this update
	}
}

// Seed registers books then members.
func (e *CatalogEngine) Seed(ctx context.Context, books []models.Book, members []models.Member, progress chan<- ProgressUpdate) error {
	if e.catalog == nil {
		return shared.ErrCatalogMissing
	}

	for i, b := range books {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.catalog.AddBook(b)
		e.sendProgress(progress, seedBookUpdate(i+1, len(books), b))
	}

	for i, m := range members {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.catalog.AddMember(m)
		e.sendProgress(progress, seedMemberUpdate(i+1, len(members), m))
	}

	return nil
}

// Run executes steps against the catalog.
//
// Tolerated outcomes (unknown ids, double checkout, double return) are recorded and never stop the run.
// An unknown op or a cancelled context stops it with the partial result.
func (e *CatalogEngine) Run(ctx context.Context, steps []Step, progress chan<- ProgressUpdate) (*RunResult, error) {
	if e.catalog == nil {
		return nil, shared.ErrCatalogMissing
	}

	result := &RunResult{Steps: make([]StepResult, 0, len(steps))}
	total := len(steps)

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			e.finish(result)
			return result, err
		}

		e.sendProgress(progress, executeStepUpdate(i+1, total, step))

		sr, err := e.apply(i, step)
		if err != nil {
			e.finish(result)
			return result, err
		}
		result.Steps = append(result.Steps, sr)

		if mutates(step.Op) {
			if sr.Result.OK() {
				result.Applied++
			} else {
				result.Tolerated++
			}
		}
	}

	e.finish(result)
	e.sendProgress(progress, summaryUpdate(result))
	return result, nil
}

func (e *CatalogEngine) apply(i int, step Step) (StepResult, error) {
	sr := StepResult{Index: i, Step: step, Result: models.Success}
	c := e.catalog

	switch step.Op {
	case OpAddBook:
		if step.Title == "" {
			return sr, &StepError{Index: i, Op: step.Op, Err: fmt.Errorf("%w: title is required", shared.ErrMissingArgument)}
		}
		c.AddBook(models.NewBook(step.Book, step.Title, step.Author, step.Year))
	case OpRemoveBook:
		sr.Result = c.RemoveBook(step.Book)
	case OpAddMember:
		if step.Name == "" {
			return sr, &StepError{Index: i, Op: step.Op, Err: fmt.Errorf("%w: name is required", shared.ErrMissingArgument)}
		}
		c.AddMember(models.NewMember(step.Member, step.Name, step.Email))
	case OpRemoveMember:
		sr.Result = c.RemoveMember(step.Member)
	case OpCheckout:
		sr.Result = c.CheckoutBook(step.Book, step.Member)
	case OpReturn:
		sr.Result = c.ReturnBook(step.Book)
	case OpSearch:
		sr.Books = c.SearchBooks(step.Keyword)
	case OpStats:
		stats := c.GenerateStats()
		sr.Stats = &stats
	default:
		return sr, &StepError{Index: i, Op: step.Op, Err: shared.ErrUnknownStep}
	}

	return sr, nil
}

func (e *CatalogEngine) finish(result *RunResult) {
	result.Stats = e.catalog.GenerateStats()
	result.Transactions = e.catalog.Transactions()
}

func mutates(op Op) bool {
	switch op {
	case OpRemoveBook, OpRemoveMember, OpCheckout, OpReturn:
		return true
	default:
		return false
	}
}
