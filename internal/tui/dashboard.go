package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rejectlist/rejectdesk/internal/authz"
	"github.com/rejectlist/rejectdesk/internal/domain/client"
	"github.com/rejectlist/rejectdesk/internal/domain/roster"
)

type facet int

const (
	facetGroup facet = iota
	facetFollow
	facetYear
	facetMonth
	facetStatus
	facetFileSeen
	facetCount
)

var facetNames = [facetCount]string{"GROUP", "FOLLOW", "YEAR", "MONTH", "STATUS", "FILE"}

type dashboardModel struct {
	browser *roster.Browser
	search  textinput.Model

	searching bool
	facet     facet
	cursor    int

	confirmDelete []client.ID
	loading       bool
	notice        string
	errText       string
}

func newDashboardModel(pageSize int) dashboardModel {
	search := textinput.New()
	search.Placeholder = "search clients..."
	search.CharLimit = 120

	b := roster.NewBrowser(roster.NewSet(nil))
	b.SetPageSize(pageSize)
	return dashboardModel{browser: b, search: search, loading: true}
}

func (m dashboardModel) update(msg tea.Msg, app *App) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case rowsLoadedMsg:
		m.loading = false
		m.browser.Set().Replace(msg.rows)
		m.notice = fmt.Sprintf("loaded %d clients", len(msg.rows))
		m.errText = ""
		return m, nil

	case rowSavedMsg:
		m.browser.Set().ApplyUpdated(msg.rec)
		m.notice = "saved " + msg.rec.Name
		return m, nil

	case rowDeletedMsg:
		m.browser.Set().ApplyDeleted(msg.id)
		if m.browser.Selection().Has(msg.id) {
			m.browser.Selection().Toggle(msg.id)
		}
		m.notice = "client deleted"
		m.clampCursor()
		return m, nil

	case copiedMsg:
		m.notice = fmt.Sprintf("copied %d record(s) to clipboard", msg.count)
		return m, nil

	case exportedMsg:
		m.notice = fmt.Sprintf("exported %d row(s) to %s", msg.rows, msg.path)
		return m, nil

	case errMsg:
		m.loading = false
		m.errText = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg, app)
	}
	return m, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg, app *App) (dashboardModel, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter", "esc":
			m.searching = false
			m.search.Blur()
			if msg.String() == "esc" {
				m.search.SetValue("")
			}
			f := m.browser.Filter()
			f.Query = m.search.Value()
			m.browser.SetFilter(f)
			m.cursor = 0
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			f := m.browser.Filter()
			f.Query = m.search.Value()
			m.browser.SetFilter(f)
			m.cursor = 0
			return m, cmd
		}
	}

	if len(m.confirmDelete) > 0 {
		switch msg.String() {
		case "y", "Y":
			ids := m.confirmDelete
			m.confirmDelete = nil
			return m, app.deleteCmd(ids)
		default:
			m.confirmDelete = nil
			m.notice = "delete cancelled"
			return m, nil
		}
	}

	sess := app.deps.Guard.Current()
	view := m.browser.View()

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Logout):
		return m, app.logoutCmd()

	case key.Matches(msg, keys.Reload):
		m.loading = true
		return m, app.loadRowsCmd()

	case key.Matches(msg, keys.Search):
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(view.Rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.PrevPage):
		m.browser.PrevPage()
		m.clampCursor()
		return m, nil

	case key.Matches(msg, keys.NextPage):
		m.browser.NextPage()
		m.clampCursor()
		return m, nil

	case key.Matches(msg, keys.FirstPage):
		m.browser.FirstPage()
		m.cursor = 0
		return m, nil

	case key.Matches(msg, keys.LastPage):
		m.browser.LastPage()
		m.clampCursor()
		return m, nil

	case key.Matches(msg, keys.NextFacet):
		m.facet = (m.facet + 1) % facetCount
		return m, nil

	case key.Matches(msg, keys.CycleValue):
		m.cycleFacetValue()
		m.cursor = 0
		return m, nil

	case key.Matches(msg, keys.PageSize):
		m.cyclePageSize()
		m.cursor = 0
		return m, nil

	case key.Matches(msg, keys.Select):
		if rec, ok := m.rowUnderCursor(); ok {
			m.browser.Selection().Toggle(rec.ID)
		}
		return m, nil

	case key.Matches(msg, keys.SelectPage):
		m.browser.Selection().TogglePage(view.Rows)
		return m, nil

	case key.Matches(msg, keys.Details):
		if rec, ok := m.rowUnderCursor(); ok {
			return m, app.openDetail(rec)
		}
		return m, nil

	case key.Matches(msg, keys.Copy):
		recs := m.browser.SelectedRecords()
		if len(recs) == 0 {
			m.notice = "select row(s) to copy"
			return m, nil
		}
		return m, app.copyCmd(recs)

	case key.Matches(msg, keys.Add):
		if !authz.Can(sess, authz.CapAdd) {
			m.errText = "only a team lead can add clients"
			return m, nil
		}
		return m, app.openAddGrid()

	case key.Matches(msg, keys.Export):
		if !authz.Can(sess, authz.CapExport) {
			m.errText = "only a team lead can export"
			return m, nil
		}
		if !m.browser.Filter().Active() {
			m.notice = "apply a search or filter to export"
			return m, nil
		}
		rows := m.browser.Filtered()
		if len(rows) == 0 {
			m.notice = "nothing to export"
			return m, nil
		}
		return m, app.exportCmd(m.browser.Filter(), rows)

	case key.Matches(msg, keys.Edit):
		if !authz.Can(sess, authz.CapEdit) {
			m.errText = "only a team lead can edit"
			return m, nil
		}
		if m.browser.Selection().Count() > 0 {
			return m, app.openEditQueue(m.browser.SelectedRecords())
		}
		if rec, ok := m.rowUnderCursor(); ok {
			return m, app.openEditor(rec)
		}
		return m, nil

	case key.Matches(msg, keys.Delete):
		if !authz.Can(sess, authz.CapDelete) {
			m.errText = "only a team lead can delete"
			return m, nil
		}
		if ids := m.browser.Selection().IDs(); len(ids) > 0 {
			m.confirmDelete = ids
			return m, nil
		}
		if rec, ok := m.rowUnderCursor(); ok {
			m.confirmDelete = []client.ID{rec.ID}
		}
		return m, nil
	}
	return m, nil
}

func (m *dashboardModel) rowUnderCursor() (client.Client, bool) {
	rows := m.browser.View().Rows
	if m.cursor < 0 || m.cursor >= len(rows) {
		return client.Client{}, false
	}
	return rows[m.cursor], true
}

func (m *dashboardModel) clampCursor() {
	n := len(m.browser.View().Rows)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *dashboardModel) cyclePageSize() {
	cur := m.browser.PageSize()
	for i, n := range roster.PageSizes {
		if n == cur {
			m.browser.SetPageSize(roster.PageSizes[(i+1)%len(roster.PageSizes)])
			return
		}
	}
	m.browser.SetPageSize(roster.DefaultPageSize)
}

// cycleFacetValue advances the active facet to its next option, wrapping
// back to ALL after the last.
func (m *dashboardModel) cycleFacetValue() {
	rows := m.browser.Set().Rows()
	f := m.browser.Filter()

	cycle := func(options []string, cur string) string {
		for i, o := range options {
			if o == cur {
				return options[(i+1)%len(options)]
			}
		}
		return roster.All
	}

	switch m.facet {
	case facetGroup:
		f.Group = cycle(roster.GroupOptions(rows), f.Group)
	case facetFollow:
		f.Follow = cycle(roster.FollowOptions(rows), f.Follow)
	case facetYear:
		f.Year = cycle(roster.YearOptions(rows), f.Year)
	case facetMonth:
		f.Month = cycle(roster.MonthOptions(), f.Month)
	case facetStatus:
		f.Status = cycle(roster.StatusOptions(), f.Status)
	case facetFileSeen:
		f.FileSeen = cycle(roster.FileSeenOptions(), f.FileSeen)
	}
	m.browser.SetFilter(f)
}

func (m dashboardModel) facetValue(fc facet) string {
	f := m.browser.Filter()
	switch fc {
	case facetGroup:
		return f.Group
	case facetFollow:
		return f.Follow
	case facetYear:
		return f.Year
	case facetMonth:
		return f.Month
	case facetStatus:
		return f.Status
	case facetFileSeen:
		return f.FileSeen
	}
	return roster.All
}

func (m dashboardModel) view(app *App) string {
	var b strings.Builder
	sess := app.deps.Guard.Current()

	role := "member"
	if sess.TeamLead {
		role = "team lead"
	}
	b.WriteString(titleStyle.Render("rejectdesk") + "  " +
		faintStyle.Render(fmt.Sprintf("%s (%s)", sess.Username, role)) + "\n\n")

	b.WriteString(m.search.View() + "\n")

	var facets []string
	for fc := facet(0); fc < facetCount; fc++ {
		label := fmt.Sprintf("%s: %s", facetNames[fc], m.facetValue(fc))
		if fc == m.facet {
			facets = append(facets, activeFacetStyle.Render(label))
		} else {
			facets = append(facets, facetStyle.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, facets...) + "\n\n")

	if m.loading {
		b.WriteString(faintStyle.Render("loading clients...") + "\n")
		return b.String()
	}

	view := m.browser.View()
	b.WriteString(m.renderTable(view) + "\n")

	b.WriteString(faintStyle.Render(fmt.Sprintf(
		"page %d/%d • %d match(es) • %d selected • page size %d",
		view.Page, max(view.Pages, 1), view.Total,
		m.browser.Selection().Count(), m.browser.PageSize())) + "\n")

	if len(m.confirmDelete) > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf(
			"delete %d record(s)? y to confirm, any other key to cancel", len(m.confirmDelete))) + "\n")
	}
	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText) + "\n")
	} else if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice) + "\n")
	}

	help := "/ search • tab+f filter • ←/→ page • space select • a page • enter details • c copy"
	if sess.TeamLead {
		help += " • n add • e edit • d delete • x export"
	}
	help += " • p size • r reload • ctrl+l logout • q quit"
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (m dashboardModel) renderTable(view roster.View) string {
	header := fmt.Sprintf("   %-3s %-15s %-28s %-12s %-14s %-12s %s",
		"", "GROUP", "NAME", "DATE", "LOCATION", "FOLLOW", "STATUS")

	var rows []string
	rows = append(rows, headerStyle.Render(header))
	for i, rec := range view.Rows {
		mark := " "
		if m.browser.Selection().Has(rec.ID) {
			mark = "✓"
		}
		line := fmt.Sprintf(" %s %-3d %-15s %-28s %-12s %-14s %-12s %s",
			mark, view.Start+i,
			trunc(rec.Group, 15), trunc(rec.Name, 28), trunc(rec.ProposalDMY(), 12),
			trunc(rec.Location, 14), trunc(rec.Follow, 12), statusPill(rec.Status))

		switch {
		case i == m.cursor:
			rows = append(rows, cursorRowStyle.Render(line))
		case m.browser.Selection().Has(rec.ID):
			rows = append(rows, selectedRowStyle.Render(line))
		default:
			rows = append(rows, rowStyle.Render(line))
		}
	}
	if len(view.Rows) == 0 {
		rows = append(rows, faintStyle.Render("  no matching clients. type / to search or tab+f to filter."))
	}
	return strings.Join(rows, "\n")
}

func trunc(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
