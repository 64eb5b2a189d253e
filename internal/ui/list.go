package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/models"
)

var (
	_ list.Item = bookItem{}
	_ list.Item = memberItem{}
)

// bookItem wraps [models.Book] to implement [list.Item].
type bookItem struct {
	book models.Book
}

func (i bookItem) FilterValue() string { return i.book.Title }
func (i bookItem) Title() string       { return i.book.Title }
func (i bookItem) Description() string {
	desc := fmt.Sprintf("%s • %d", i.book.Author, i.book.PublicationYear)
	return fmt.Sprintf("%s • %s", desc, formatter.Availability(i.book))
}

// memberItem wraps [models.Member] to implement [list.Item].
type memberItem struct {
	member models.Member
}

func (i memberItem) FilterValue() string { return i.member.Name }
func (i memberItem) Title() string       { return i.member.Name }
func (i memberItem) Description() string {
	desc := fmt.Sprintf("%d book(s)", len(i.member.CheckedOutBooks))
	if i.member.Email != "" {
		desc = fmt.Sprintf("%s • %s", i.member.Email, desc)
	}
	return desc
}

func bookItems(books []models.Book) []list.Item {
	items := make([]list.Item, len(books))
	for i, b := range books {
		items[i] = bookItem{book: b}
	}
	return items
}

func memberItems(members []models.Member) []list.Item {
	items := make([]list.Item, len(members))
	for i, m := range members {
		items[i] = memberItem{member: m}
	}
	return items
}
