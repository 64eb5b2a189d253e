package metrics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/models"
	th "github.com/desertthunder/shelf/internal/testing"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector(t *testing.T) {
	var c *catalog.Catalog
	collector := NewCollector(func() models.Stats { return c.GenerateStats() })
	c = catalog.New("Metered", catalog.WithObserver(collector))

	c.AddBook(models.NewBook(1, "Emma", "Jane Austen", 1815))
	c.AddBook(models.NewBook(2, "Persuasion", "Jane Austen", 1817))
	c.AddMember(models.NewMember(1, "Anne", ""))

	c.CheckoutBook(1, 1)
	c.CheckoutBook(1, 1)
	c.CheckoutBook(2, 1)
	c.ReturnBook(1)
	c.ReturnBook(1)
	c.RemoveMember(1)

	t.Run("transactions by kind", func(t *testing.T) {
		if got := testutil.ToFloat64(collector.transactions.WithLabelValues("checkout")); got != 2 {
			t.Errorf("expected 2 checkouts, got %v", got)
		}
		if got := testutil.ToFloat64(collector.transactions.WithLabelValues("return")); got != 1 {
			t.Errorf("expected 1 return, got %v", got)
		}
		if got := testutil.ToFloat64(collector.transactions.WithLabelValues("release")); got != 1 {
			t.Errorf("expected 1 release, got %v", got)
		}
	})

	t.Run("notices by op and result", func(t *testing.T) {
		if got := testutil.ToFloat64(collector.notices.WithLabelValues("checkout", "already_checked_out")); got != 1 {
			t.Errorf("expected 1 double checkout, got %v", got)
		}
		if got := testutil.ToFloat64(collector.notices.WithLabelValues("return", "already_returned")); got != 1 {
			t.Errorf("expected 1 double return, got %v", got)
		}
	})

	t.Run("WriteText", func(t *testing.T) {
		var buf bytes.Buffer
		if err := collector.WriteText(&buf); err != nil {
			t.Fatalf("WriteText failed: %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			`shelf_transactions_total{kind="checkout"} 2`,
			"shelf_books 2",
			"shelf_books_checked_out 0",
			"# HELP shelf_notices_total",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("WriteText propagates writer errors", func(t *testing.T) {
		if err := collector.WriteText(&th.FWriter{}); err == nil {
			t.Error("expected write error")
		}
	})

	t.Run("without stats gauges", func(t *testing.T) {
		bare := NewCollector(nil)
		var buf bytes.Buffer
		if err := bare.WriteText(&buf); err != nil {
			t.Fatalf("WriteText failed: %v", err)
		}
		if strings.Contains(buf.String(), "shelf_books") {
			t.Errorf("expected no gauges, got:\n%s", buf.String())
		}
	})
}
