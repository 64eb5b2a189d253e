package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

func seededEngine(t *testing.T) *CatalogEngine {
	t.Helper()
	config := shared.DefaultConfig()
	engine := NewCatalogEngine(catalog.New(config.Catalog.Name))
	if err := engine.Seed(context.Background(), config.Books, config.Members, nil); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	return engine
}

func drain(ch chan ProgressUpdate) []ProgressUpdate {
	close(ch)
	var updates []ProgressUpdate
	for u := range ch {
		updates = append(updates, u)
	}
	return updates
}

func TestSeed(t *testing.T) {
	t.Run("registers records and reports progress", func(t *testing.T) {
		config := shared.DefaultConfig()
		engine := NewCatalogEngine(catalog.New("Seeded"))
		progress := make(chan ProgressUpdate, 10)

		if err := engine.Seed(context.Background(), config.Books, config.Members, progress); err != nil {
			t.Fatalf("Seed failed: %v", err)
		}

		stats := engine.Catalog().GenerateStats()
		if stats.TotalBooks != 3 || stats.TotalMembers != 2 {
			t.Errorf("unexpected stats after seed: %+v", stats)
		}

		updates := drain(progress)
		if len(updates) != 5 {
			t.Fatalf("expected 5 progress updates, got %d", len(updates))
		}
		if updates[0].Phase != SeedBooks || updates[4].Phase != SeedMembers {
			t.Errorf("unexpected phases: %v, %v", updates[0].Phase, updates[4].Phase)
		}
		if !strings.Contains(updates[0].Message, "Harry Potter") {
			t.Errorf("unexpected message %q", updates[0].Message)
		}
	})

	t.Run("cancelled context stops seeding", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		engine := NewCatalogEngine(catalog.New("Cancelled"))
		err := engine.Seed(ctx, []models.Book{models.NewBook(1, "A", "", 0)}, nil, nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if n := len(engine.Catalog().Books()); n != 0 {
			t.Errorf("expected no books, got %d", n)
		}
	})

	t.Run("nil catalog", func(t *testing.T) {
		engine := NewCatalogEngine(nil)
		if err := engine.Seed(context.Background(), nil, nil, nil); !errors.Is(err, shared.ErrCatalogMissing) {
			t.Errorf("expected ErrCatalogMissing, got %v", err)
		}
	})
}

func TestRun(t *testing.T) {
	t.Run("default script reproduces the reference scenario", func(t *testing.T) {
		engine := seededEngine(t)
		steps := StepsFromConfig(shared.DefaultConfig().Script)

		result, err := engine.Run(context.Background(), steps, nil)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		if len(result.Steps) != 6 {
			t.Fatalf("expected 6 step results, got %d", len(result.Steps))
		}

		search := result.Steps[2]
		if len(search.Books) != 1 || search.Books[0].ID != 1 {
			t.Errorf("expected search to find book 1, got %+v", search.Books)
		}

		first := result.Steps[3].Stats
		if first == nil || *first != (models.Stats{TotalBooks: 3, TotalMembers: 2, CheckedOutBooks: 2}) {
			t.Errorf("unexpected stats before return: %+v", first)
		}

		want := models.Stats{TotalBooks: 3, TotalMembers: 2, CheckedOutBooks: 1}
		if *result.Steps[5].Stats != want {
			t.Errorf("unexpected stats after return: %+v", result.Steps[5].Stats)
		}
		if result.Stats != want {
			t.Errorf("unexpected final stats: %+v", result.Stats)
		}

		if len(result.Transactions) != 3 {
			t.Errorf("expected 3 transactions, got %d", len(result.Transactions))
		}
		if result.Applied != 3 || result.Tolerated != 0 {
			t.Errorf("expected 3 applied and 0 tolerated, got %d/%d", result.Applied, result.Tolerated)
		}
	})

	t.Run("tolerated outcomes do not stop the run", func(t *testing.T) {
		engine := seededEngine(t)
		steps := []Step{
			{Op: OpCheckout, Book: 1, Member: 1},
			{Op: OpCheckout, Book: 1, Member: 2},
			{Op: OpReturn, Book: 2},
			{Op: OpCheckout, Book: 99, Member: 1},
			{Op: OpRemoveMember, Member: 1},
		}

		result, err := engine.Run(context.Background(), steps, nil)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		want := []models.Result{models.Success, models.AlreadyCheckedOut, models.AlreadyReturned, models.NotFound, models.Success}
		for i, sr := range result.Steps {
			if sr.Result != want[i] {
				t.Errorf("step %d: expected %v, got %v", i, want[i], sr.Result)
			}
		}
		if result.Applied != 2 || result.Tolerated != 3 {
			t.Errorf("expected 2 applied and 3 tolerated, got %d/%d", result.Applied, result.Tolerated)
		}
		if result.Stats.CheckedOutBooks != 0 {
			t.Errorf("expected member removal to release book, got %+v", result.Stats)
		}
	})

	t.Run("add steps register records", func(t *testing.T) {
		engine := NewCatalogEngine(catalog.New("Fresh"))
		steps := []Step{
			{Op: OpAddBook, Book: 10, Title: "Dune", Author: "Frank Herbert", Year: 1965},
			{Op: OpAddMember, Member: 5, Name: "Paul", Email: "paul@example.com"},
			{Op: OpCheckout, Book: 10, Member: 5},
			{Op: OpRemoveBook, Book: 10},
		}

		result, err := engine.Run(context.Background(), steps, nil)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if result.Stats != (models.Stats{TotalBooks: 0, TotalMembers: 1}) {
			t.Errorf("unexpected stats: %+v", result.Stats)
		}
		if len(result.Transactions) != 2 || result.Transactions[1].Kind != models.KindRelease {
			t.Errorf("expected checkout then release, got %+v", result.Transactions)
		}
	})

	t.Run("unknown op returns a StepError", func(t *testing.T) {
		engine := seededEngine(t)
		steps := []Step{{Op: OpCheckout, Book: 1, Member: 1}, {Op: "burn"}}

		result, err := engine.Run(context.Background(), steps, nil)
		if !errors.Is(err, shared.ErrUnknownStep) {
			t.Fatalf("expected ErrUnknownStep, got %v", err)
		}

		var stepErr *StepError
		if !errors.As(err, &stepErr) || stepErr.Index != 1 {
			t.Errorf("expected StepError at index 1, got %v", err)
		}
		if result == nil || len(result.Steps) != 1 || len(result.Transactions) != 1 {
			t.Errorf("expected partial result with 1 step, got %+v", result)
		}
	})

	t.Run("add_book without title fails", func(t *testing.T) {
		engine := NewCatalogEngine(catalog.New("Fresh"))
		_, err := engine.Run(context.Background(), []Step{{Op: OpAddBook, Book: 1}}, nil)
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("progress updates", func(t *testing.T) {
		engine := seededEngine(t)
		progress := make(chan ProgressUpdate, 10)
		steps := []Step{{Op: OpCheckout, Book: 1, Member: 1}, {Op: OpStats}}

		if _, err := engine.Run(context.Background(), steps, progress); err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		updates := drain(progress)
		if len(updates) != 3 {
			t.Fatalf("expected 3 updates, got %d", len(updates))
		}
		if updates[0].Phase != ExecuteStep || updates[0].Step != 1 || updates[0].Total != 2 {
			t.Errorf("unexpected first update %+v", updates[0])
		}
		if updates[2].Phase != Summary {
			t.Errorf("expected summary last, got %v", updates[2].Phase)
		}
	})

	t.Run("full progress channel never blocks", func(t *testing.T) {
		engine := seededEngine(t)
		progress := make(chan ProgressUpdate)

		if _, err := engine.Run(context.Background(), []Step{{Op: OpStats}, {Op: OpStats}}, progress); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		engine := seededEngine(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := engine.Run(ctx, []Step{{Op: OpCheckout, Book: 1, Member: 1}}, nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if result.Stats.CheckedOutBooks != 0 {
			t.Errorf("expected no checkout after cancel, got %+v", result.Stats)
		}
	})
}

func TestStepString(t *testing.T) {
	tc := []struct {
		step Step
		want string
	}{
		{Step{Op: OpCheckout, Book: 1, Member: 2}, "checkout book 1 to member 2"},
		{Step{Op: OpReturn, Book: 3}, "return book 3"},
		{Step{Op: OpSearch, Keyword: "potter"}, `search "potter"`},
		{Step{Op: OpStats}, "stats"},
		{Step{Op: "mystery"}, "mystery"},
	}

	for _, tt := range tc {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.step.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
