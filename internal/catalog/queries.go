package catalog

import (
	"slices"

	"github.com/desertthunder/shelf/internal/models"
)

// Books returns a copy of every registered book in registration order.
func (c *Catalog) Books() []models.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	books := make([]models.Book, len(c.books))
	for i, b := range c.books {
		books[i] = *b
	}
	return books
}

// Members returns a copy of every registered member in registration order.
func (c *Catalog) Members() []models.Member {
	c.mu.RLock()
	defer c.mu.RUnlock()

	members := make([]models.Member, len(c.members))
	for i, m := range c.members {
		members[i] = copyMember(m)
	}
	return members
}

// Book looks up the first book with id.
func (c *Catalog) Book(id int) (models.Book, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.bookIndex(id); i >= 0 {
		return *c.books[i], true
	}
	return models.Book{}, false
}

// Member looks up the first member with id.
func (c *Catalog) Member(id int) (models.Member, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.memberIndex(id); i >= 0 {
		return copyMember(c.members[i]), true
	}
	return models.Member{}, false
}

// HeldBy resolves the books currently checked out by memberID, in checkout order.
func (c *Catalog) HeldBy(memberID int) ([]models.Book, models.Result) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	mi := c.memberIndex(memberID)
	if mi < 0 {
		return nil, models.NotFound
	}

	held := []models.Book{}
	for _, id := range c.members[mi].CheckedOutBooks {
		if bi := c.bookIndex(id); bi >= 0 {
			held = append(held, *c.books[bi])
		}
	}
	return held, models.Success
}

// Transactions returns the transaction log in append order.
func (c *Catalog) Transactions() []models.Transaction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.transactions)
}

// TransactionLog returns the human readable transaction messages in append order.
func (c *Catalog) TransactionLog() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lines := make([]string, len(c.transactions))
	for i, tx := range c.transactions {
		lines[i] = tx.Message
	}
	return lines
}

func copyMember(m *models.Member) models.Member {
	out := *m
	out.CheckedOutBooks = slices.Clone(m.CheckedOutBooks)
	if out.CheckedOutBooks == nil {
		out.CheckedOutBooks = []int{}
	}
	return out
}
