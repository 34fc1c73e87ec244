package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rejectlist/rejectdesk/internal/authz"
	"github.com/rejectlist/rejectdesk/internal/domain/client"
)

type detailField int

const (
	fieldName detailField = iota
	fieldStatus
	fieldFileSeen
	fieldReason
	fieldCount
)

type detailModel struct {
	rec     client.Client
	editing bool
	field   detailField
	name    textinput.Model
	reason  textinput.Model
	status  client.Status
	seen    client.TriState
	busy    bool
	notice  string
	errText string
}

func newDetailModel(rec client.Client, editing bool) detailModel {
	name := textinput.New()
	name.CharLimit = 120
	name.SetValue(rec.Name)

	reason := textinput.New()
	reason.CharLimit = 300
	reason.SetValue(rec.Reason)

	m := detailModel{
		rec:     rec,
		editing: editing,
		name:    name,
		reason:  reason,
		status:  rec.Status,
		seen:    rec.FileSeen,
	}
	if editing {
		m.name.Focus()
	}
	return m
}

func (m detailModel) update(msg tea.Msg, app *App) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case rowSavedMsg:
		m.busy = false
		m.editing = false
		m.rec = msg.rec
		m.notice = "saved"
		m.errText = ""
		return m, nil

	case copiedMsg:
		m.notice = "details copied to clipboard"
		return m, nil

	case errMsg:
		m.busy = false
		m.errText = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg, app)
		}
		return m.handleViewKey(msg, app)
	}
	return m, nil
}

func (m detailModel) handleViewKey(msg tea.KeyMsg, app *App) (detailModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m, app.closeDetail()
	case "c":
		return m, app.copyCmd([]client.Client{m.rec})
	case "e":
		if !authz.Can(app.deps.Guard.Current(), authz.CapEdit) {
			m.errText = "only a team lead can edit"
			return m, nil
		}
		edit := newDetailModel(m.rec, true)
		return edit, textinput.Blink
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m detailModel) handleEditKey(msg tea.KeyMsg, app *App) (detailModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.editing = false
		m.name.SetValue(m.rec.Name)
		m.reason.SetValue(m.rec.Reason)
		m.status = m.rec.Status
		m.seen = m.rec.FileSeen
		m.notice = "edit cancelled"
		return m, nil

	case "tab", "shift+tab", "up", "down":
		delta := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			delta = int(fieldCount) - 1
		}
		m.field = (m.field + detailField(delta)) % fieldCount
		m.name.Blur()
		m.reason.Blur()
		switch m.field {
		case fieldName:
			m.name.Focus()
		case fieldReason:
			m.reason.Focus()
		}
		return m, textinput.Blink

	case "enter":
		if strings.TrimSpace(m.name.Value()) == "" {
			m.errText = "name is required"
			return m, nil
		}
		rec := m.rec
		rec.Name = strings.TrimSpace(m.name.Value())
		rec.Reason = strings.TrimSpace(m.reason.Value())
		rec.Status = m.status
		rec.FileSeen = m.seen
		m.busy = true
		m.errText = ""
		return m, app.saveCmd(rec)

	case "left", "right":
		switch m.field {
		case fieldStatus:
			m.status = cycleStatus(m.status, msg.String() == "right")
		case fieldFileSeen:
			m.seen = cycleSeen(m.seen)
		}
		return m, nil

	case " ":
		if m.field == fieldFileSeen {
			m.seen = cycleSeen(m.seen)
			return m, nil
		}
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch m.field {
	case fieldName:
		m.name, cmd = m.name.Update(msg)
	case fieldReason:
		m.reason, cmd = m.reason.Update(msg)
	}
	return m, cmd
}

func cycleStatus(cur client.Status, forward bool) client.Status {
	all := client.Statuses()
	for i, s := range all {
		if s == cur {
			if forward {
				return all[(i+1)%len(all)]
			}
			return all[(i+len(all)-1)%len(all)]
		}
	}
	return client.DefaultStatus
}

func cycleSeen(cur client.TriState) client.TriState {
	if cur == client.TriYes {
		return client.TriNo
	}
	return client.TriYes
}

func (m detailModel) view() string {
	var b strings.Builder

	if m.editing {
		b.WriteString(titleStyle.Render("edit client") + "\n\n")
		b.WriteString(m.editLine(fieldName, "NAME", m.name.View()) + "\n")
		b.WriteString(m.editLine(fieldStatus, "STATUS", statusPill(m.status)+faintStyle.Render("  ←/→ change")) + "\n")
		b.WriteString(m.editLine(fieldFileSeen, "FILE SEEN", m.seen.String()+faintStyle.Render("  ←/→ toggle")) + "\n")
		b.WriteString(m.editLine(fieldReason, "REASON", m.reason.View()) + "\n\n")
		if m.busy {
			b.WriteString(faintStyle.Render("saving...") + "\n")
		}
		if m.errText != "" {
			b.WriteString(errorStyle.Render(m.errText) + "\n")
		}
		b.WriteString(helpStyle.Render("tab next field • enter save • esc cancel"))
		return boxStyle.Render(b.String())
	}

	b.WriteString(titleStyle.Render("client details") + "\n\n")
	lines := [][2]string{
		{"NAME", client.UpperOrUnknown(m.rec.Name)},
		{"GROUP", client.UpperOrUnknown(m.rec.Group)},
		{"PROPOSAL DATE", m.rec.ProposalDMY()},
		{"YEAR", m.rec.Year()},
		{"MONTH", m.rec.Month3()},
		{"LOCATION", client.UpperOrUnknown(m.rec.Location)},
		{"FOLLOW", client.UpperOrUnknown(m.rec.Follow)},
		{"PROPRIETOR", client.UpperOrUnknown(m.rec.Proprietor)},
		{"MEDIATOR", client.UpperOrUnknown(m.rec.Mediator)},
		{"CONTACT NO", contactOrUnknown(m.rec.ContactNo)},
		{"FILE SEEN", m.rec.FileSeen.String()},
		{"REASON", client.UpperOrUnknown(m.rec.Reason)},
	}
	for _, kv := range lines {
		b.WriteString(fmt.Sprintf("%-14s %s\n", kv[0], kv[1]))
	}
	b.WriteString(fmt.Sprintf("%-14s %s\n\n", "STATUS", statusPill(m.rec.Status)))

	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText) + "\n")
	} else if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice) + "\n")
	}
	b.WriteString(helpStyle.Render("c copy • e edit • esc back"))
	return boxStyle.Render(b.String())
}

func (m detailModel) editLine(f detailField, label, value string) string {
	marker := "  "
	if f == m.field {
		marker = "> "
	}
	return fmt.Sprintf("%s%-11s %s", marker, label, value)
}

func contactOrUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return client.Unknown
	}
	return s
}
