// package models defines the data model for the library catalog
package models

import (
	"fmt"
	"time"
)

// Book is a single catalog entry.
//
// CheckedOutBy holds the id of the holding [Member] and is zero whenever IsCheckedOut is false.
type Book struct {
	ID              int    `json:"id" toml:"id" yaml:"id" validate:"required"`
	Title           string `json:"title" toml:"title" yaml:"title" validate:"required"`
	Author          string `json:"author" toml:"author" yaml:"author"`
	PublicationYear int    `json:"publication_year" toml:"publication_year" yaml:"publication_year"`
	IsCheckedOut    bool   `json:"is_checked_out" toml:"-" yaml:"-"`
	CheckedOutBy    int    `json:"checked_out_by,omitempty" toml:"-" yaml:"-"`
}

// NewBook creates an available [Book].
func NewBook(id int, title, author string, year int) Book {
	return Book{ID: id, Title: title, Author: author, PublicationYear: year}
}

// IsOverdue always reports false: no due date is tracked for a checkout.
func (b Book) IsOverdue() bool {
	return false
}

// Member is a registered library member.
type Member struct {
	ID              int    `json:"id" toml:"id" yaml:"id" validate:"required"`
	Name            string `json:"name" toml:"name" yaml:"name" validate:"required"`
	Email           string `json:"email" toml:"email" yaml:"email" validate:"omitempty,email"`
	CheckedOutBooks []int  `json:"checked_out_books" toml:"-" yaml:"-"`
}

// NewMember creates a [Member] holding no books.
func NewMember(id int, name, email string) Member {
	return Member{ID: id, Name: name, Email: email, CheckedOutBooks: []int{}}
}

// Holds reports whether bookID is in the member's checked out list.
func (m Member) Holds(bookID int) bool {
	for _, id := range m.CheckedOutBooks {
		if id == bookID {
			return true
		}
	}
	return false
}

// TransactionKind enumerates the events recorded in a catalog's transaction log.
type TransactionKind string

const (
	KindCheckout TransactionKind = "checkout"
	KindReturn   TransactionKind = "return"
	KindRelease  TransactionKind = "release" // book detached from its holder by a removal
)

// Transaction is one entry of the append-only transaction log.
type Transaction struct {
	ID       string          `json:"id"`
	Kind     TransactionKind `json:"kind"`
	BookID   int             `json:"book_id"`
	MemberID int             `json:"member_id"`
	At       time.Time       `json:"at"`
	Message  string          `json:"message"`
}

func (t Transaction) String() string { return t.Message }

// CheckoutMessage formats the log line for a checkout.
func CheckoutMessage(member, title string) string {
	return fmt.Sprintf("Member %s checked out book %s.", member, title)
}

// ReturnMessage formats the log line for a return.
func ReturnMessage(member, title string) string {
	return fmt.Sprintf("Member %s returned book %s.", member, title)
}

// ReleaseMessage formats the log line for a book released because its book or member record was removed.
func ReleaseMessage(member, title string) string {
	return fmt.Sprintf("Book %s was released from member %s.", title, member)
}

// Stats contains aggregate counts over a catalog.
type Stats struct {
	TotalBooks      int `json:"totalBooks"`
	TotalMembers    int `json:"totalMembers"`
	CheckedOutBooks int `json:"checkedOutBooks"`
	OverdueBooks    int `json:"overdueBooks"`
}

// Result is the outcome of a catalog mutation.
//
// Callers that ignore it observe the same silent behavior as a no-op.
type Result int

const (
	Success Result = iota
	NotFound
	AlreadyCheckedOut
	AlreadyReturned
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case NotFound:
		return "not_found"
	case AlreadyCheckedOut:
		return "already_checked_out"
	case AlreadyReturned:
		return "already_returned"
	default:
		return ""
	}
}

// OK reports whether r is [Success].
func (r Result) OK() bool { return r == Success }
