// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/models"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// SampleBooks returns the three books of the reference library.
func SampleBooks() []models.Book {
	return []models.Book{
		models.NewBook(1, "Harry Potter and the Sorcerer's Stone", "J.K. Rowling", 1997),
		models.NewBook(2, "To Kill a Mockingbird", "Harper Lee", 1960),
		models.NewBook(3, "1984", "George Orwell", 1949),
	}
}

// SampleMembers returns the two members of the reference library.
func SampleMembers() []models.Member {
	return []models.Member{
		models.NewMember(1, "John Doe", "john.doe@example.com"),
		models.NewMember(2, "Jane Smith", "jane.smith@example.com"),
	}
}

// NewSampleCatalog builds the reference library with books 1 and 2 checked out to members 1 and 2.
func NewSampleCatalog(t *testing.T, opts ...catalog.Option) *catalog.Catalog {
	t.Helper()

	c := catalog.New("My Library", opts...)
	for _, b := range SampleBooks() {
		c.AddBook(b)
	}
	for _, m := range SampleMembers() {
		c.AddMember(m)
	}
	if r := c.CheckoutBook(1, 1); !r.OK() {
		t.Fatalf("sample checkout of book 1 failed: %v", r)
	}
	if r := c.CheckoutBook(2, 2); !r.OK() {
		t.Fatalf("sample checkout of book 2 failed: %v", r)
	}
	return c
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
