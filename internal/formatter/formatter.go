// package formatter renders catalog data in various formats (plain text, Markdown, CSV, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format selects an output renderer.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	CSV      Format = "csv"
	JSON     Format = "json"
)

// ParseFormat converts a flag or config value into a [Format]. Empty input selects [Text].
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return Text, nil
	case Text, Markdown, CSV, JSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
	}
}

// Books renders a book listing in the given format.
func Books(books []models.Book, f Format) ([]byte, error) {
	switch f {
	case Markdown:
		return booksToMarkdown(books), nil
	case CSV:
		return booksToCSV(books)
	case JSON:
		return MarshalJSON(books, true)
	default:
		return booksToText(books), nil
	}
}

// Members renders a member listing in the given format.
func Members(members []models.Member, f Format) ([]byte, error) {
	switch f {
	case Markdown:
		return membersToMarkdown(members), nil
	case CSV:
		return membersToCSV(members)
	case JSON:
		return MarshalJSON(members, true)
	default:
		return membersToText(members), nil
	}
}

// Stats renders catalog statistics in the given format.
func Stats(name string, stats models.Stats, f Format) ([]byte, error) {
	switch f {
	case Markdown:
		var buf bytes.Buffer
		buf.WriteString(fmt.Sprintf("# %s\n\n", name))
		buf.WriteString("| Metric | Count |\n| --- | --- |\n")
		for _, row := range statRows(stats) {
			buf.WriteString(fmt.Sprintf("| %s | %d |\n", row.label, row.value))
		}
		return buf.Bytes(), nil
	case CSV:
		records := [][]string{{"metric", "count"}}
		for _, row := range statRows(stats) {
			records = append(records, []string{row.key, strconv.Itoa(row.value)})
		}
		return writeCSV(records)
	case JSON:
		return MarshalJSON(stats, true)
	default:
		var buf bytes.Buffer
		buf.WriteString(fmt.Sprintf("%s\n", name))
		for _, row := range statRows(stats) {
			buf.WriteString(fmt.Sprintf("  %-18s %d\n", row.label+":", row.value))
		}
		return buf.Bytes(), nil
	}
}

// Transactions renders the transaction log in the given format.
func Transactions(txs []models.Transaction, f Format) ([]byte, error) {
	switch f {
	case Markdown:
		var buf bytes.Buffer
		buf.WriteString("## Transactions\n\n")
		for i, tx := range txs {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, tx.Message))
		}
		return buf.Bytes(), nil
	case CSV:
		records := [][]string{{"ID", "Kind", "Book", "Member", "At", "Message"}}
		for _, tx := range txs {
			records = append(records, []string{
				tx.ID,
				string(tx.Kind),
				strconv.Itoa(tx.BookID),
				strconv.Itoa(tx.MemberID),
				tx.At.UTC().Format(time.RFC3339),
				tx.Message,
			})
		}
		return writeCSV(records)
	case JSON:
		return MarshalJSON(txs, true)
	default:
		var buf bytes.Buffer
		for _, tx := range txs {
			buf.WriteString(tx.Message + "\n")
		}
		return buf.Bytes(), nil
	}
}

// MarshalJSON encodes v, indenting when pretty is set.
func MarshalJSON(v any, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}

// Availability describes a book's checkout state for display.
func Availability(b models.Book) string {
	if b.IsCheckedOut {
		return fmt.Sprintf("checked out by member %d", b.CheckedOutBy)
	}
	return "available"
}

type statRow struct {
	key   string
	label string
	value int
}

func statRows(s models.Stats) []statRow {
	return []statRow{
		{key: "totalBooks", label: "Total books", value: s.TotalBooks},
		{key: "totalMembers", label: "Total members", value: s.TotalMembers},
		{key: "checkedOutBooks", label: "Checked out", value: s.CheckedOutBooks},
		{key: "overdueBooks", label: "Overdue", value: s.OverdueBooks},
	}
}

func booksToText(books []models.Book) []byte {
	var buf bytes.Buffer
	for _, b := range books {
		buf.WriteString(fmt.Sprintf("%d. %s - %s (%d) [%s]\n", b.ID, b.Title, b.Author, b.PublicationYear, Availability(b)))
	}
	return buf.Bytes()
}

func booksToMarkdown(books []models.Book) []byte {
	var buf bytes.Buffer
	buf.WriteString("| ID | Title | Author | Year | Status |\n| --- | --- | --- | --- | --- |\n")
	for _, b := range books {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %d | %s |\n", b.ID, b.Title, b.Author, b.PublicationYear, Availability(b)))
	}
	return buf.Bytes()
}

func booksToCSV(books []models.Book) ([]byte, error) {
	records := [][]string{{"ID", "Title", "Author", "Year", "CheckedOut", "CheckedOutBy"}}
	for _, b := range books {
		holder := ""
		if b.IsCheckedOut {
			holder = strconv.Itoa(b.CheckedOutBy)
		}
		records = append(records, []string{
			strconv.Itoa(b.ID),
			b.Title,
			b.Author,
			strconv.Itoa(b.PublicationYear),
			strconv.FormatBool(b.IsCheckedOut),
			holder,
		})
	}
	return writeCSV(records)
}

func membersToText(members []models.Member) []byte {
	var buf bytes.Buffer
	for _, m := range members {
		buf.WriteString(fmt.Sprintf("%d. %s <%s> holding %d book(s)\n", m.ID, m.Name, m.Email, len(m.CheckedOutBooks)))
	}
	return buf.Bytes()
}

func membersToMarkdown(members []models.Member) []byte {
	var buf bytes.Buffer
	buf.WriteString("| ID | Name | Email | Books |\n| --- | --- | --- | --- |\n")
	for _, m := range members {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n", m.ID, m.Name, m.Email, joinIDs(m.CheckedOutBooks, ", ")))
	}
	return buf.Bytes()
}

func membersToCSV(members []models.Member) ([]byte, error) {
	records := [][]string{{"ID", "Name", "Email", "Books"}}
	for _, m := range members {
		records = append(records, []string{strconv.Itoa(m.ID), m.Name, m.Email, joinIDs(m.CheckedOutBooks, ";")})
	}
	return writeCSV(records)
}

func joinIDs(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}

func writeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.Bytes(), nil
}
