package tui

import (
	"github.com/rejectlist/rejectdesk/internal/domain/client"
	"github.com/rejectlist/rejectdesk/internal/domain/session"
	"github.com/rejectlist/rejectdesk/internal/gateway"
	"github.com/rejectlist/rejectdesk/internal/importer"
)

type loggedInMsg struct {
	sess session.Session
}

type loginFailedMsg struct {
	err error
}

type rowsLoadedMsg struct {
	rows []client.Client
}

type rowSavedMsg struct {
	rec client.Client
}

type rowDeletedMsg struct {
	id client.ID
}

type copiedMsg struct {
	count int
}

type exportedMsg struct {
	path string
	rows int
}

type csvParsedMsg struct {
	result importer.Result
	path   string
}

type templateSavedMsg struct {
	path string
}

type batchSavedMsg struct {
	res gateway.BatchResult
}

type sessionEndedMsg struct{}

type errMsg struct {
	err error
}
