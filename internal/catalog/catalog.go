package catalog

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// Observer is notified of catalog activity after the catalog lock is released.
type Observer interface {
	Observe(tx models.Transaction)     // Observe receives every appended transaction
	Notice(op string, r models.Result) // Notice receives every non-success outcome
}

// Option configures a [Catalog].
type Option func(*Catalog)

// WithLogger sets the logger used for advisory notices.
func WithLogger(l *log.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock overrides the time source used to stamp transactions.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		if now != nil {
			c.now = now
		}
	}
}

// WithObserver registers an [Observer].
func WithObserver(o Observer) Option {
	return func(c *Catalog) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// Catalog is a named collection of books and members with a transaction log.
type Catalog struct {
	mu           sync.RWMutex
	name         string
	books        []*models.Book
	members      []*models.Member
	transactions []models.Transaction
	logger       *log.Logger
	now          func() time.Time
	observers    []Observer
}

// New creates an empty [Catalog].
func New(name string, opts ...Option) *Catalog {
	c := &Catalog{
		name:   name,
		logger: shared.DiscardLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = shared.WithLogger(c.logger, "catalog", name)
	return c
}

// Name returns the catalog's label.
func (c *Catalog) Name() string {
	return c.name
}

// AddBook registers a book. Ids are not checked for uniqueness; lookups resolve to the first match.
//
// The book is registered as available regardless of the checkout state it carries.
func (c *Catalog) AddBook(book models.Book) {
	book.IsCheckedOut = false
	book.CheckedOutBy = 0

	c.mu.Lock()
	defer c.mu.Unlock()
	c.books = append(c.books, &book)
}

// AddMember registers a member with an empty held list.
func (c *Catalog) AddMember(member models.Member) {
	member.CheckedOutBooks = []int{}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.members = append(c.members, &member)
}

// RemoveBook unregisters the first book with id.
//
// A checked out book is released from its holder first.
func (c *Catalog) RemoveBook(id int) models.Result {
	c.mu.Lock()
	i := c.bookIndex(id)
	if i < 0 {
		c.mu.Unlock()
		c.notify(nil, "remove_book", models.NotFound)
		return models.NotFound
	}

	var released []models.Transaction
	if tx, ok := c.detach(c.books[i], models.KindRelease); ok {
		released = append(released, tx)
	}
	c.books = slices.Delete(c.books, i, i+1)
	c.mu.Unlock()

	c.notify(released, "", models.Success)
	return models.Success
}

// RemoveMember unregisters the first member with id.
//
// Every book the member holds is returned to the shelf first.
func (c *Catalog) RemoveMember(id int) models.Result {
	c.mu.Lock()
	i := c.memberIndex(id)
	if i < 0 {
		c.mu.Unlock()
		c.notify(nil, "remove_member", models.NotFound)
		return models.NotFound
	}

	var released []models.Transaction
	member := c.members[i]
	for _, bookID := range slices.Clone(member.CheckedOutBooks) {
		j := c.bookIndex(bookID)
		if j < 0 {
			continue
		}
		if tx, ok := c.detach(c.books[j], models.KindRelease); ok {
			released = append(released, tx)
		}
	}
	c.members = slices.Delete(c.members, i, i+1)
	c.mu.Unlock()

	c.notify(released, "", models.Success)
	return models.Success
}

// CheckoutBook lends the book bookID to the member memberID.
func (c *Catalog) CheckoutBook(bookID, memberID int) models.Result {
	c.mu.Lock()
	bi, mi := c.bookIndex(bookID), c.memberIndex(memberID)
	if bi < 0 || mi < 0 {
		c.mu.Unlock()
		c.notify(nil, "checkout", models.NotFound)
		return models.NotFound
	}

	book, member := c.books[bi], c.members[mi]
	if book.IsCheckedOut {
		title := book.Title
		c.mu.Unlock()
		c.logger.Infof("Book %s is already checked out.", title)
		c.notify(nil, "checkout", models.AlreadyCheckedOut)
		return models.AlreadyCheckedOut
	}

	book.IsCheckedOut = true
	book.CheckedOutBy = member.ID
	member.CheckedOutBooks = append(member.CheckedOutBooks, book.ID)
	tx := c.record(models.KindCheckout, book.ID, member.ID, models.CheckoutMessage(member.Name, book.Title))
	c.mu.Unlock()

	c.logger.Debug("checked out", "book", tx.BookID, "member", tx.MemberID)
	c.notify([]models.Transaction{tx}, "", models.Success)
	return models.Success
}

// ReturnBook puts the book bookID back on the shelf.
func (c *Catalog) ReturnBook(bookID int) models.Result {
	c.mu.Lock()
	bi := c.bookIndex(bookID)
	if bi < 0 {
		c.mu.Unlock()
		c.notify(nil, "return", models.NotFound)
		return models.NotFound
	}

	book := c.books[bi]
	if !book.IsCheckedOut {
		title := book.Title
		c.mu.Unlock()
		c.logger.Infof("Book %s is already returned.", title)
		c.notify(nil, "return", models.AlreadyReturned)
		return models.AlreadyReturned
	}

	tx, _ := c.detach(book, models.KindReturn)
	c.mu.Unlock()

	c.logger.Debug("returned", "book", tx.BookID, "member", tx.MemberID)
	c.notify([]models.Transaction{tx}, "", models.Success)
	return models.Success
}

// SearchBooks returns the books whose title contains keyword, ignoring case, in registration order.
//
// An empty keyword matches every book.
func (c *Catalog) SearchBooks(keyword string) []models.Book {
	needle := strings.ToLower(keyword)

	c.mu.RLock()
	defer c.mu.RUnlock()

	found := []models.Book{}
	for _, b := range c.books {
		if strings.Contains(strings.ToLower(b.Title), needle) {
			found = append(found, *b)
		}
	}
	return found
}

// GenerateStats counts books, members, checked out books and overdue books.
func (c *Catalog) GenerateStats() models.Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := models.Stats{
		TotalBooks:   len(c.books),
		TotalMembers: len(c.members),
	}
	for _, b := range c.books {
		if !b.IsCheckedOut {
			continue
		}
		stats.CheckedOutBooks++
		if b.IsOverdue() {
			stats.OverdueBooks++
		}
	}
	return stats
}

// record appends a transaction. Callers hold the write lock.
func (c *Catalog) record(kind models.TransactionKind, bookID, memberID int, msg string) models.Transaction {
	tx := models.Transaction{
		ID:       shared.GenerateID(),
		Kind:     kind,
		BookID:   bookID,
		MemberID: memberID,
		At:       c.now(),
		Message:  msg,
	}
	c.transactions = append(c.transactions, tx)
	return tx
}

// detach clears a checked out book's holder on both sides and records kind. Callers hold the write lock.
//
// The holder may already be unregistered; the transaction then names it "unknown".
func (c *Catalog) detach(book *models.Book, kind models.TransactionKind) (models.Transaction, bool) {
	if !book.IsCheckedOut {
		return models.Transaction{}, false
	}

	holderID := book.CheckedOutBy
	holder := "unknown"
	if mi := c.memberIndex(holderID); mi >= 0 {
		member := c.members[mi]
		member.CheckedOutBooks = removeFirst(member.CheckedOutBooks, book.ID)
		holder = member.Name
	}
	book.IsCheckedOut = false
	book.CheckedOutBy = 0

	msg := models.ReturnMessage(holder, book.Title)
	if kind == models.KindRelease {
		msg = models.ReleaseMessage(holder, book.Title)
	}
	return c.record(kind, book.ID, holderID, msg), true
}

func (c *Catalog) notify(txs []models.Transaction, op string, r models.Result) {
	for _, o := range c.observers {
		for _, tx := range txs {
			o.Observe(tx)
		}
		if r != models.Success {
			o.Notice(op, r)
		}
	}
}

func (c *Catalog) bookIndex(id int) int {
	return slices.IndexFunc(c.books, func(b *models.Book) bool { return b.ID == id })
}

func (c *Catalog) memberIndex(id int) int {
	return slices.IndexFunc(c.members, func(m *models.Member) bool { return m.ID == id })
}

func removeFirst(ids []int, id int) []int {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return ids
}
