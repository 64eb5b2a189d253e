package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/shelf/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgCatalogLoaded MsgKind = iota
	MsgOperationDone
	MsgFailed
)

type catalogSnapshot struct {
	books        []models.Book
	members      []models.Member
	stats        models.Stats
	transactions []models.Transaction
}

type operationOutcome struct {
	op     string
	bookID int
	result models.Result
}

// catalogLoadedMsg is the constructor for [MsgCatalogLoaded]
func catalogLoadedMsg(snap catalogSnapshot) Msg {
	return Msg{kind: MsgCatalogLoaded, data: snap}
}

// operationDoneMsg is the constructor for [MsgOperationDone]
func operationDoneMsg(op string, bookID int, r models.Result) Msg {
	return Msg{kind: MsgOperationDone, data: operationOutcome{op: op, bookID: bookID, result: r}}
}

// failedMsg is the constructor for [MsgFailed]
func failedMsg(err error) Msg {
	return Msg{kind: MsgFailed, data: err}
}
