// Package tui is the terminal dashboard: a login form, the filterable
// roster table, and a per-client detail card.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rejectlist/rejectdesk/internal/domain/client"
	"github.com/rejectlist/rejectdesk/internal/domain/roster"
	"github.com/rejectlist/rejectdesk/internal/domain/session"
	"github.com/rejectlist/rejectdesk/internal/export"
	"github.com/rejectlist/rejectdesk/internal/gateway"
	"github.com/rejectlist/rejectdesk/internal/importer"
)

type screen int

const (
	screenLogin screen = iota
	screenDashboard
	screenDetail
	screenAdd
)

// Deps are the wired-up services the dashboard drives.
type Deps struct {
	Guard       *session.Guard
	Gateway     *gateway.Gateway
	Broadcaster *session.Broadcaster
	Logger      *slog.Logger
	PageSize    int
}

// App is the root model.
type App struct {
	deps   Deps
	screen screen
	login  loginModel
	dash   dashboardModel
	detail detailModel
	add    addModel

	// editQueue holds the rest of a bulk edit: records edited one at a
	// time, each save advancing to the next.
	editQueue []client.Client
}

// New builds the root model. A restored session skips the login form.
func New(deps Deps) *App {
	app := &App{
		deps:  deps,
		login: newLoginModel(),
		dash:  newDashboardModel(deps.PageSize),
		add:   newAddModel(),
	}
	if deps.Guard.Current().Valid() {
		app.screen = screenDashboard
	}
	return app
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.watchLogout()}
	if a.screen == screenDashboard {
		cmds = append(cmds, a.loadRowsCmd())
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case loggedInMsg:
		a.screen = screenDashboard
		a.dash = newDashboardModel(a.deps.PageSize)
		a.add = newAddModel()
		return a, tea.Batch(a.loadRowsCmd(), a.watchLogout())

	case sessionEndedMsg:
		a.screen = screenLogin
		a.login = newLoginModel()
		a.dash = newDashboardModel(a.deps.PageSize)
		return a, nil

	case tea.FocusMsg:
		return a, a.wakeCmd()
	}

	var cmd tea.Cmd
	switch a.screen {
	case screenLogin:
		a.login, cmd = a.login.update(msg, a)
	case screenDashboard:
		a.dash, cmd = a.dash.update(msg, a)
	case screenDetail:
		a.detail, cmd = a.detail.update(msg, a)
		// Saves made on the card also land in the table.
		if saved, ok := msg.(rowSavedMsg); ok {
			a.dash.browser.Set().ApplyUpdated(saved.rec)
			if len(a.editQueue) > 0 {
				next := a.editQueue[0]
				a.editQueue = a.editQueue[1:]
				a.detail = newDetailModel(next, true)
			}
		}
	case screenAdd:
		a.add, cmd = a.add.update(msg, a)
		// Server-confirmed rows from a batch save land in the table too.
		if saved, ok := msg.(batchSavedMsg); ok {
			for _, o := range saved.res.Outcomes {
				if o.Err != nil {
					continue
				}
				if o.Created {
					a.dash.browser.Set().ApplyCreated(o.Record)
				} else {
					a.dash.browser.Set().ApplyUpdated(o.Record)
				}
			}
		}
	}
	return a, cmd
}

func (a *App) View() string {
	switch a.screen {
	case screenLogin:
		return a.login.view()
	case screenDetail:
		return a.detail.view()
	case screenAdd:
		return a.add.view()
	default:
		return a.dash.view(a)
	}
}

func (a *App) openDetail(rec client.Client) tea.Cmd {
	a.detail = newDetailModel(rec, false)
	a.screen = screenDetail
	return nil
}

func (a *App) openEditor(rec client.Client) tea.Cmd {
	a.detail = newDetailModel(rec, true)
	a.screen = screenDetail
	return nil
}

// openEditQueue starts a bulk edit over the selected records, one card at
// a time.
func (a *App) openEditQueue(recs []client.Client) tea.Cmd {
	if len(recs) == 0 {
		return nil
	}
	a.editQueue = recs[1:]
	a.detail = newDetailModel(recs[0], true)
	a.screen = screenDetail
	return nil
}

func (a *App) closeDetail() tea.Cmd {
	a.editQueue = nil
	a.screen = screenDashboard
	return nil
}

// openAddGrid switches to the pending-client grid. Grid contents survive
// leaving and returning so a half-typed batch is not lost.
func (a *App) openAddGrid() tea.Cmd {
	a.screen = screenAdd
	return nil
}

func (a *App) closeAddGrid() tea.Cmd {
	a.screen = screenDashboard
	return nil
}

func (a *App) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		sess, err := a.deps.Gateway.Login(ctx, username, password)
		if err != nil {
			return loginFailedMsg{err: err}
		}
		if err := a.deps.Guard.Establish(ctx, sess); err != nil {
			return loginFailedMsg{err: err}
		}
		return loggedInMsg{sess: sess}
	}
}

func (a *App) loadRowsCmd() tea.Cmd {
	return func() tea.Msg {
		rows, err := a.deps.Gateway.List(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return rowsLoadedMsg{rows: rows}
	}
}

func (a *App) saveCmd(rec client.Client) tea.Cmd {
	return func() tea.Msg {
		saved, err := a.deps.Gateway.Update(context.Background(), rec)
		if err != nil {
			return errMsg{err: err}
		}
		return rowSavedMsg{rec: saved}
	}
}

func (a *App) deleteCmd(ids []client.ID) tea.Cmd {
	cmds := make([]tea.Cmd, len(ids))
	for i, id := range ids {
		id := id
		cmds[i] = func() tea.Msg {
			if err := a.deps.Gateway.Delete(context.Background(), id); err != nil {
				return errMsg{err: err}
			}
			return rowDeletedMsg{id: id}
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) saveBatchCmd(recs []client.Client) tea.Cmd {
	return func() tea.Msg {
		res := a.deps.Gateway.SaveBatch(context.Background(), recs)
		return batchSavedMsg{res: res}
	}
}

func (a *App) importCSVCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return errMsg{err: fmt.Errorf("reading %s: %w", path, err)}
		}
		res, err := importer.Parse(string(data))
		if err != nil {
			return errMsg{err: fmt.Errorf("importing %s: %w", path, err)}
		}
		return csvParsedMsg{result: res, path: path}
	}
}

func (a *App) templateCmd() tea.Cmd {
	return func() tea.Msg {
		path := importer.TemplateFilename
		if err := os.WriteFile(path, []byte(importer.Template()), 0o644); err != nil {
			return errMsg{err: fmt.Errorf("writing template: %w", err)}
		}
		return templateSavedMsg{path: path}
	}
}

func (a *App) copyCmd(recs []client.Client) tea.Cmd {
	return func() tea.Msg {
		if err := export.CopyToClipboard(export.BulkText(recs)); err != nil {
			return errMsg{err: err}
		}
		return copiedMsg{count: len(recs)}
	}
}

func (a *App) exportCmd(filter roster.Filter, rows []client.Client) tea.Cmd {
	return func() tea.Msg {
		path := export.Filename(filter)
		if err := export.WriteFile(path, rows); err != nil {
			return errMsg{err: err}
		}
		return exportedMsg{path: path, rows: len(rows)}
	}
}

func (a *App) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := a.deps.Gateway.Logout(ctx); err != nil {
			a.deps.Logger.Warn("server logout failed", "error", err)
		}
		if err := a.deps.Guard.Logout(ctx); err != nil {
			return errMsg{err: err}
		}
		return sessionEndedMsg{}
	}
}

// watchLogout surfaces a logout from any source, including another
// process observed through the state store.
func (a *App) watchLogout() tea.Cmd {
	_, ch := a.deps.Broadcaster.Subscribe()
	return func() tea.Msg {
		<-ch
		return sessionEndedMsg{}
	}
}

// wakeCmd re-checks token freshness when the terminal regains focus.
func (a *App) wakeCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.deps.Guard.WakeCheck(context.Background()); err != nil {
			return sessionEndedMsg{}
		}
		return nil
	}
}
