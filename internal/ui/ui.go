package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BookListView ViewState = iota
	MemberPickView
	StatsView
	LogView
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	catalog    *catalog.Catalog
	width      int
	height     int
	bookList   list.Model
	memberList list.Model
	snapshot   catalogSnapshot
	selected   *models.Book
	status     string
	statusOK   bool
	err        error
	help       help.Model
	keys       keyMap
}

// NewModel creates a new TUI model over c.
func NewModel(ctx context.Context, c *catalog.Catalog) *Model {
	bookList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	bookList.Title = c.Name()
	memberList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	memberList.Title = "Check out to"

	return &Model{
		ctx:        ctx,
		view:       BookListView,
		catalog:    c,
		bookList:   bookList,
		memberList: memberList,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init loads the catalog contents.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bookList.SetSize(msg.Width-4, msg.Height-8)
		m.memberList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case BookListView:
			return m.handleBookListKeys(msg)
		case MemberPickView:
			return m.handleMemberPickKeys(msg)
		case StatsView, LogView:
			return m.handleInfoKeys(msg)
		}

	case Msg:
		switch msg.kind {
		case MsgCatalogLoaded:
			m.snapshot = msg.data.(catalogSnapshot)
			return m, tea.Batch(
				m.bookList.SetItems(bookItems(m.snapshot.books)),
				m.memberList.SetItems(memberItems(m.snapshot.members)),
			)
		case MsgOperationDone:
			outcome := msg.data.(operationOutcome)
			m.status, m.statusOK = describe(outcome), outcome.result.OK()
			return m, m.load()
		case MsgFailed:
			m.err = msg.data.(error)
			return m, nil
		}
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case BookListView:
		return m.renderBookList()
	case MemberPickView:
		return m.renderMemberPick()
	case StatsView:
		return m.renderStats()
	case LogView:
		return m.renderLog()
	default:
		return ""
	}
}

func (m *Model) handleBookListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.bookList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.bookList, cmd = m.bookList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.checkout):
		if item, ok := m.bookList.SelectedItem().(bookItem); ok {
			book := item.book
			m.selected = &book
			m.view = MemberPickView
		}
		return m, nil
	case key.Matches(msg, m.keys.ret):
		if item, ok := m.bookList.SelectedItem().(bookItem); ok {
			return m, m.returnBook(item.book.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.stats):
		m.view = StatsView
		return m, nil
	case key.Matches(msg, m.keys.log):
		m.view = LogView
		return m, nil
	}

	var cmd tea.Cmd
	m.bookList, cmd = m.bookList.Update(msg)
	return m, cmd
}

func (m *Model) handleMemberPickKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.memberList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.memberList, cmd = m.memberList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.selected = nil
		m.view = BookListView
		return m, nil
	case key.Matches(msg, m.keys.checkout):
		item, ok := m.memberList.SelectedItem().(memberItem)
		if !ok || m.selected == nil {
			return m, nil
		}
		bookID := m.selected.ID
		m.selected = nil
		m.view = BookListView
		return m, m.checkout(bookID, item.member.ID)
	}

	var cmd tea.Cmd
	m.memberList, cmd = m.memberList.Update(msg)
	return m, cmd
}

func (m *Model) handleInfoKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = BookListView
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case BookListView:
		m.bookList, cmd = m.bookList.Update(msg)
	case MemberPickView:
		m.memberList, cmd = m.memberList.Update(msg)
	}
	return m, cmd
}

func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		if err := m.ctx.Err(); err != nil {
			return failedMsg(err)
		}
		return catalogLoadedMsg(catalogSnapshot{
			books:        m.catalog.Books(),
			members:      m.catalog.Members(),
			stats:        m.catalog.GenerateStats(),
			transactions: m.catalog.Transactions(),
		})
	}
}

func (m *Model) checkout(bookID, memberID int) tea.Cmd {
	return func() tea.Msg {
		return operationDoneMsg("checkout", bookID, m.catalog.CheckoutBook(bookID, memberID))
	}
}

func (m *Model) returnBook(bookID int) tea.Cmd {
	return func() tea.Msg {
		return operationDoneMsg("return", bookID, m.catalog.ReturnBook(bookID))
	}
}

func describe(o operationOutcome) string {
	switch o.result {
	case models.Success:
		if o.op == "checkout" {
			return fmt.Sprintf("✓ Book %d checked out", o.bookID)
		}
		return fmt.Sprintf("✓ Book %d returned", o.bookID)
	case models.AlreadyCheckedOut:
		return fmt.Sprintf("Book %d is already checked out", o.bookID)
	case models.AlreadyReturned:
		return fmt.Sprintf("Book %d is already returned", o.bookID)
	case models.NotFound:
		return fmt.Sprintf("Book %d is no longer in the catalog", o.bookID)
	default:
		return ""
	}
}

func (m *Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusOK {
		return styles.ok.Render(m.status)
	}
	return styles.warn.Render(m.status)
}

func (m *Model) renderBookList() string {
	helpKeys := []key.Binding{m.keys.checkout, m.keys.ret, m.keys.stats, m.keys.log, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s", m.bookList.View(), m.renderStatus(), helpView)
}

func (m *Model) renderMemberPick() string {
	title := ""
	if m.selected != nil {
		title = styles.title.Render(fmt.Sprintf("Check out '%s'", m.selected.Title))
	}
	pickKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select"))
	helpView := m.help.ShortHelpView([]key.Binding{pickKey, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, m.memberList.View(), helpView)
}

func (m *Model) renderStats() string {
	s := m.snapshot.stats
	title := styles.title.Render(fmt.Sprintf("%s statistics", m.catalog.Name()))
	info := fmt.Sprintf(
		"Total books:   %d\nTotal members: %d\nChecked out:   %d\nOverdue:       %d",
		s.TotalBooks, s.TotalMembers, s.CheckedOutBooks, s.OverdueBooks,
	)
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}

func (m *Model) renderLog() string {
	title := styles.title.Render("Transactions")

	var body strings.Builder
	if len(m.snapshot.transactions) == 0 {
		body.WriteString(styles.help.Render("No transactions yet"))
	}
	for i, tx := range m.snapshot.transactions {
		fmt.Fprintf(&body, "%3d. %s\n", i+1, tx.Message)
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, body.String(), helpView)
}
