package formatter

import (
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	th "github.com/desertthunder/shelf/internal/testing"
)

func TestParseFormat(t *testing.T) {
	tc := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "", want: Text},
		{input: "text", want: Text},
		{input: "Markdown", want: Markdown},
		{input: " csv ", want: CSV},
		{input: "json", want: JSON},
		{input: "pdf", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidFlag) {
					t.Errorf("expected ErrInvalidFlag, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBooks(t *testing.T) {
	c := th.NewSampleCatalog(t)
	books := c.Books()

	t.Run("Text", func(t *testing.T) {
		data, err := Books(books, Text)
		if err != nil {
			t.Fatalf("Books failed: %v", err)
		}
		output := string(data)

		if !strings.Contains(output, "1. Harry Potter and the Sorcerer's Stone - J.K. Rowling (1997) [checked out by member 1]") {
			t.Errorf("missing first book line, got: %s", output)
		}
		if !strings.Contains(output, "3. 1984 - George Orwell (1949) [available]") {
			t.Errorf("missing third book line, got: %s", output)
		}
	})

	t.Run("Markdown", func(t *testing.T) {
		data, err := Books(books, Markdown)
		if err != nil {
			t.Fatalf("Books failed: %v", err)
		}
		output := string(data)

		if !strings.HasPrefix(output, "| ID | Title | Author | Year | Status |") {
			t.Errorf("missing table header, got: %s", output)
		}
		if strings.Count(output, "\n") != 5 {
			t.Errorf("expected header, divider and 3 rows, got: %s", output)
		}
	})

	t.Run("CSV", func(t *testing.T) {
		data, err := Books(books, CSV)
		if err != nil {
			t.Fatalf("Books failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}
		if len(records) != 4 {
			t.Fatalf("expected 4 records, got %d", len(records))
		}
		if records[1][4] != "true" || records[1][5] != "1" {
			t.Errorf("unexpected checkout columns %v", records[1])
		}
		if records[3][4] != "false" || records[3][5] != "" {
			t.Errorf("unexpected checkout columns %v", records[3])
		}
	})

	t.Run("JSON", func(t *testing.T) {
		data, err := Books(books, JSON)
		if err != nil {
			t.Fatalf("Books failed: %v", err)
		}
		output := string(data)

		if !strings.Contains(output, `"title": "To Kill a Mockingbird"`) {
			t.Errorf("missing title, got: %s", output)
		}
		if !strings.Contains(output, `"checked_out_by": 2`) {
			t.Errorf("missing holder, got: %s", output)
		}
	})
}

func TestMembers(t *testing.T) {
	c := th.NewSampleCatalog(t)
	c.CheckoutBook(3, 1)
	members := c.Members()

	t.Run("Text", func(t *testing.T) {
		data, _ := Members(members, Text)
		if !strings.Contains(string(data), "1. John Doe <john.doe@example.com> holding 2 book(s)") {
			t.Errorf("unexpected output: %s", data)
		}
	})

	t.Run("Markdown", func(t *testing.T) {
		data, _ := Members(members, Markdown)
		if !strings.Contains(string(data), "| 1 | John Doe | john.doe@example.com | 1, 3 |") {
			t.Errorf("unexpected output: %s", data)
		}
	})

	t.Run("CSV", func(t *testing.T) {
		data, err := Members(members, CSV)
		if err != nil {
			t.Fatalf("Members failed: %v", err)
		}
		if !strings.Contains(string(data), "1,John Doe,john.doe@example.com,1;3") {
			t.Errorf("unexpected output: %s", data)
		}
	})
}

func TestStats(t *testing.T) {
	stats := models.Stats{TotalBooks: 3, TotalMembers: 2, CheckedOutBooks: 1}

	t.Run("Text", func(t *testing.T) {
		data, _ := Stats("My Library", stats, Text)
		output := string(data)
		if !strings.HasPrefix(output, "My Library\n") {
			t.Errorf("missing name header, got: %s", output)
		}
		if !strings.Contains(output, "Checked out:") || !strings.Contains(output, "Overdue:") {
			t.Errorf("missing rows, got: %s", output)
		}
	})

	t.Run("Markdown", func(t *testing.T) {
		data, _ := Stats("My Library", stats, Markdown)
		if !strings.Contains(string(data), "| Total books | 3 |") {
			t.Errorf("unexpected output: %s", data)
		}
	})

	t.Run("CSV", func(t *testing.T) {
		data, _ := Stats("My Library", stats, CSV)
		want := "metric,count\ntotalBooks,3\ntotalMembers,2\ncheckedOutBooks,1\noverdueBooks,0\n"
		if string(data) != want {
			t.Errorf("got %q, want %q", data, want)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		data, _ := Stats("My Library", stats, JSON)
		want := "{\n  \"totalBooks\": 3,\n  \"totalMembers\": 2,\n  \"checkedOutBooks\": 1,\n  \"overdueBooks\": 0\n}"
		if string(data) != want {
			t.Errorf("got %s, want %s", data, want)
		}
	})
}

func TestTransactions(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		{ID: "a", Kind: models.KindCheckout, BookID: 1, MemberID: 1, At: at, Message: "Member John Doe checked out book 1984."},
		{ID: "b", Kind: models.KindReturn, BookID: 1, MemberID: 1, At: at, Message: "Member John Doe returned book 1984."},
	}

	t.Run("Text", func(t *testing.T) {
		data, _ := Transactions(txs, Text)
		want := "Member John Doe checked out book 1984.\nMember John Doe returned book 1984.\n"
		if string(data) != want {
			t.Errorf("got %q, want %q", data, want)
		}
	})

	t.Run("Markdown", func(t *testing.T) {
		data, _ := Transactions(txs, Markdown)
		if !strings.Contains(string(data), "2. Member John Doe returned book 1984.") {
			t.Errorf("unexpected output: %s", data)
		}
	})

	t.Run("CSV", func(t *testing.T) {
		data, _ := Transactions(txs, CSV)
		if !strings.Contains(string(data), "a,checkout,1,1,2024-05-01T12:00:00Z,Member John Doe checked out book 1984.") {
			t.Errorf("unexpected output: %s", data)
		}
	})

	t.Run("empty log", func(t *testing.T) {
		data, _ := Transactions(nil, Text)
		if len(data) != 0 {
			t.Errorf("expected empty output, got %q", data)
		}
	})
}

func TestMarshalJSON(t *testing.T) {
	compact, err := MarshalJSON(models.Stats{TotalBooks: 1}, false)
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(compact) != `{"totalBooks":1,"totalMembers":0,"checkedOutBooks":0,"overdueBooks":0}` {
		t.Errorf("unexpected compact JSON %s", compact)
	}

	if _, err := MarshalJSON(make(chan int), false); err == nil {
		t.Error("expected error for unsupported type")
	}
}
