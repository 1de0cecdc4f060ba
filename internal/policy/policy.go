// Package policy decides whether an actor may modify a resource it may or may not own.
package policy

import "go-ticket-tracker/internal/model"

// privileged roles may modify any resource regardless of ownership.
var privileged = map[model.Role]struct{}{
	model.RoleAdmin:          {},
	model.RoleProjectManager: {},
}

// Allow reports whether actor may modify a resource owned by ownerID. An empty
// ownerID means the resource has no owner and only privileged roles pass.
func Allow(actor model.Identity, ownerID string) bool {
	if _, ok := privileged[actor.Role]; ok {
		return true
	}
	return ownerID != "" && actor.ID != "" && actor.ID == ownerID
}

// TicketEditor is the owner consulted for ticket updates: the assigned developer.
func TicketEditor(t model.Ticket) string {
	return t.Developer
}

// TicketRemover is the owner consulted for ticket deletion: the submitter.
func TicketRemover(t model.Ticket) string {
	return t.Submitter
}
