package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/todox/internal/models"
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
	MsgRecordsLoaded MsgKind = iota
	MsgRecordInserted
)

type recordsLoaded struct {
	records []models.Record
	err     error
}

type recordInserted struct {
	task string
	err  error
}

// recordsLoadedMsg is the constructor for [MsgRecordsLoaded]
func recordsLoadedMsg(records []models.Record, err error) Msg {
	return Msg{kind: MsgRecordsLoaded, data: recordsLoaded{records, err}}
}

// recordInsertedMsg is the constructor for [MsgRecordInserted]
func recordInsertedMsg(task string, err error) Msg {
	return Msg{kind: MsgRecordInserted, data: recordInserted{task, err}}
}
