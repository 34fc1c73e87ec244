package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/rejectlist/rejectdesk/internal/authz"
	"github.com/rejectlist/rejectdesk/internal/domain/client"
	"github.com/rejectlist/rejectdesk/internal/importer"
)

type addField int

const (
	addFieldGroup addField = iota
	addFieldName
	addFieldDate
	addFieldLocation
	addFieldFollow
	addFieldProprietor
	addFieldMediator
	addFieldContact
	addFieldFileSeen
	addFieldStatus
	addFieldReason
	addFieldCount
)

var addFieldNames = [addFieldCount]string{
	"GROUP", "NAME", "PROPOSAL DATE", "LOCATION", "FOLLOW",
	"PROPRIETOR", "MEDIATOR", "CONTACT NO", "FILE SEEN", "STATUS", "REASON",
}

type addMode int

const (
	addBrowse addMode = iota
	addEditRow
	addImportPath
)

// addModel is the pending-client grid: rows typed in by hand or merged in
// from a CSV import, held locally until a batch save pushes them to the
// server. Rows that fail to save stay in the grid with their error.
type addModel struct {
	rows   []importer.Row
	cursor int
	mode   addMode

	// row edit card state
	draft client.Client
	field addField
	input textinput.Model

	pathInput textinput.Model

	busy    bool
	notice  string
	errText string
}

func newAddModel() addModel {
	input := textinput.New()
	input.CharLimit = 300

	path := textinput.New()
	path.Placeholder = "path/to/clients.csv"
	path.CharLimit = 300

	return addModel{input: input, pathInput: path}
}

func (m addModel) update(msg tea.Msg, app *App) (addModel, tea.Cmd) {
	switch msg := msg.(type) {
	case csvParsedMsg:
		m.busy = false
		merged, dropped := importer.Merge(m.rows, msg.result.Rows)
		m.rows = merged
		m.clampCursor()
		m.notice = fmt.Sprintf("imported %d row(s) from %s", len(msg.result.Rows), msg.path)
		if msg.result.Skipped > 0 {
			m.notice += fmt.Sprintf(", %d nameless row(s) skipped", msg.result.Skipped)
		}
		if dropped > 0 {
			m.notice += fmt.Sprintf(", %d empty row(s) dropped", dropped)
		}
		m.errText = ""
		return m, nil

	case templateSavedMsg:
		m.notice = "template written to " + msg.path
		m.errText = ""
		return m, nil

	case batchSavedMsg:
		m.busy = false
		failed := make(map[int]error)
		for _, o := range msg.res.Outcomes {
			if o.Err != nil {
				failed[o.Index] = o.Err
			}
		}
		var remain []importer.Row
		for i, row := range m.rows {
			if _, ok := failed[i]; ok {
				remain = append(remain, row)
			}
		}
		m.rows = remain
		m.clampCursor()
		m.notice = fmt.Sprintf("%d created, %d updated", msg.res.Created(), msg.res.Updated())
		if len(failed) > 0 {
			first := msg.res.Failed()[0]
			m.errText = fmt.Sprintf("%d row(s) failed, first: %v", len(failed), first.Err)
		} else {
			m.errText = ""
		}
		return m, nil

	case errMsg:
		m.busy = false
		m.errText = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case addEditRow:
			return m.handleEditKey(msg)
		case addImportPath:
			return m.handlePathKey(msg, app)
		default:
			return m.handleBrowseKey(msg, app)
		}
	}
	return m, nil
}

func (m addModel) handleBrowseKey(msg tea.KeyMsg, app *App) (addModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch msg.String() {
	case "esc", "q":
		return m, app.closeAddGrid()

	case "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case "n":
		m.rows = append(m.rows, importer.Row{
			LocalID: uuid.NewString(),
			Record:  client.Client{Status: client.DefaultStatus},
		})
		m.cursor = len(m.rows) - 1
		return m.openRowEditor(), textinput.Blink

	case "enter", "e":
		if len(m.rows) == 0 {
			return m, nil
		}
		return m.openRowEditor(), textinput.Blink

	case "d":
		if len(m.rows) == 0 {
			return m, nil
		}
		m.rows = append(m.rows[:m.cursor], m.rows[m.cursor+1:]...)
		m.clampCursor()
		m.notice = "row removed"
		return m, nil

	case "i":
		if !authz.Can(app.deps.Guard.Current(), authz.CapImport) {
			m.errText = "only a team lead can import"
			return m, nil
		}
		m.mode = addImportPath
		m.pathInput.SetValue("")
		m.pathInput.Focus()
		return m, textinput.Blink

	case "t":
		if !authz.Can(app.deps.Guard.Current(), authz.CapImport) {
			m.errText = "only a team lead can download the template"
			return m, nil
		}
		return m, app.templateCmd()

	case "s":
		if len(m.rows) == 0 {
			m.notice = "nothing to save"
			return m, nil
		}
		recs := make([]client.Client, len(m.rows))
		for i, row := range m.rows {
			recs[i] = row.Record
		}
		m.busy = true
		m.errText = ""
		return m, app.saveBatchCmd(recs)
	}
	return m, nil
}

func (m addModel) handlePathKey(msg tea.KeyMsg, app *App) (addModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = addBrowse
		m.pathInput.Blur()
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.pathInput.Value())
		m.mode = addBrowse
		m.pathInput.Blur()
		if path == "" {
			return m, nil
		}
		m.busy = true
		return m, app.importCSVCmd(path)
	default:
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}
}

// openRowEditor loads the row under the cursor into the edit card.
func (m addModel) openRowEditor() addModel {
	m.mode = addEditRow
	m.draft = m.rows[m.cursor].Record
	m.field = addFieldGroup
	m.seedInput()
	return m
}

func (m *addModel) seedInput() {
	m.input.SetValue(m.textFieldValue(m.field))
	m.input.CursorEnd()
	if isTextField(m.field) {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func isTextField(f addField) bool {
	return f != addFieldFileSeen && f != addFieldStatus
}

func (m addModel) textFieldValue(f addField) string {
	switch f {
	case addFieldGroup:
		return m.draft.Group
	case addFieldName:
		return m.draft.Name
	case addFieldDate:
		return m.draft.ProposalDate
	case addFieldLocation:
		return m.draft.Location
	case addFieldFollow:
		return m.draft.Follow
	case addFieldProprietor:
		return m.draft.Proprietor
	case addFieldMediator:
		return m.draft.Mediator
	case addFieldContact:
		return m.draft.ContactNo
	case addFieldReason:
		return m.draft.Reason
	}
	return ""
}

// commitField writes the text editor back into the draft. Dates and contact
// numbers are normalized the same way the CSV importer normalizes them.
func (m *addModel) commitField() {
	val := strings.TrimSpace(m.input.Value())
	switch m.field {
	case addFieldGroup:
		m.draft.Group = val
	case addFieldName:
		m.draft.Name = val
	case addFieldDate:
		m.draft.ProposalDate = importer.NormalizeDate(val)
	case addFieldLocation:
		m.draft.Location = val
	case addFieldFollow:
		m.draft.Follow = val
	case addFieldProprietor:
		m.draft.Proprietor = val
	case addFieldMediator:
		m.draft.Mediator = val
	case addFieldContact:
		m.draft.ContactNo = client.Digits(val)
	case addFieldReason:
		m.draft.Reason = val
	}
}

func (m addModel) handleEditKey(msg tea.KeyMsg) (addModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = addBrowse
		m.input.Blur()
		m.notice = "edit cancelled"
		return m, nil

	case "ctrl+c":
		return m, tea.Quit

	case "tab", "down":
		m.commitField()
		m.field = (m.field + 1) % addFieldCount
		m.seedInput()
		return m, textinput.Blink

	case "shift+tab", "up":
		m.commitField()
		m.field = (m.field + addFieldCount - 1) % addFieldCount
		m.seedInput()
		return m, textinput.Blink

	case "enter":
		m.commitField()
		m.rows[m.cursor].Record = m.draft
		m.mode = addBrowse
		m.input.Blur()
		m.notice = "row updated"
		return m, nil

	case "left", "right":
		switch m.field {
		case addFieldStatus:
			m.draft.Status = cycleStatus(m.draft.Status, msg.String() == "right")
			return m, nil
		case addFieldFileSeen:
			m.draft.FileSeen = cycleSeen(m.draft.FileSeen)
			return m, nil
		}
	}

	if isTextField(m.field) {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *addModel) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m addModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("add clients") + "\n\n")

	if m.mode == addEditRow {
		for f := addField(0); f < addFieldCount; f++ {
			marker := "  "
			if f == m.field {
				marker = "> "
			}
			var val string
			switch f {
			case addFieldStatus:
				val = statusPill(m.draft.Status)
				if f == m.field {
					val += faintStyle.Render("  ←/→ change")
				}
			case addFieldFileSeen:
				val = m.draft.FileSeen.String()
				if f == m.field {
					val += faintStyle.Render("  ←/→ toggle")
				}
			default:
				if f == m.field {
					val = m.input.View()
				} else {
					val = m.textFieldValue(f)
				}
			}
			b.WriteString(fmt.Sprintf("%s%-14s %s\n", marker, addFieldNames[f], val))
		}
		b.WriteString("\n" + helpStyle.Render("tab next field • enter apply • esc cancel"))
		return boxStyle.Render(b.String())
	}

	if m.mode == addImportPath {
		b.WriteString("import CSV file\n")
		b.WriteString(m.pathInput.View() + "\n\n")
		b.WriteString(helpStyle.Render("enter import • esc cancel"))
		return boxStyle.Render(b.String())
	}

	if len(m.rows) == 0 {
		b.WriteString(faintStyle.Render("no pending clients. n adds a row, i imports a CSV.") + "\n")
	} else {
		header := fmt.Sprintf("  %-3s %-15s %-28s %-12s %s",
			"", "GROUP", "NAME", "DATE", "STATUS")
		b.WriteString(headerStyle.Render(header) + "\n")
		for i, row := range m.rows {
			line := fmt.Sprintf("  %-3d %-15s %-28s %-12s %s",
				i+1, trunc(row.Record.Group, 15), trunc(row.Record.Name, 28),
				row.Record.ProposalDate, statusPill(row.Record.Status))
			if i == m.cursor {
				b.WriteString(cursorRowStyle.Render(line) + "\n")
			} else {
				b.WriteString(rowStyle.Render(line) + "\n")
			}
		}
	}
	b.WriteString("\n")

	if m.busy {
		b.WriteString(faintStyle.Render("working...") + "\n")
	}
	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText) + "\n")
	} else if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice) + "\n")
	}

	b.WriteString(helpStyle.Render(
		"n new row • enter edit • d remove • i import csv • t template • s save all • esc back"))
	return b.String()
}
