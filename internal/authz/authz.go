// Package authz gates dashboard actions on the signed-in user's role.
// Team leads manage the roster; everyone else browses and copies.
package authz

import "github.com/rejectlist/rejectdesk/internal/domain/session"

// Capability names one guarded dashboard action.
type Capability string

const (
	CapView   Capability = "clients.view"
	CapCopy   Capability = "clients.copy"
	CapAdd    Capability = "clients.add"
	CapEdit   Capability = "clients.edit"
	CapDelete Capability = "clients.delete"
	CapImport Capability = "clients.import"
	CapExport Capability = "clients.export"
)

// Can reports whether the session's user may perform the capability. An
// invalid session can do nothing.
func Can(sess session.Session, cap Capability) bool {
	if !sess.Valid() {
		return false
	}
	switch cap {
	case CapView, CapCopy:
		return true
	case CapAdd, CapEdit, CapDelete, CapImport, CapExport:
		return sess.TeamLead
	}
	return false
}
