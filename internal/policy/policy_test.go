package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-ticket-tracker/internal/model"
)

func TestAllow(t *testing.T) {
	cases := []struct {
		name  string
		actor model.Identity
		owner string
		want  bool
	}{
		{"admin on foreign resource", model.Identity{ID: "a", Role: model.RoleAdmin}, "x", true},
		{"project manager on unowned resource", model.Identity{ID: "pm", Role: model.RoleProjectManager}, "", true},
		{"developer owns resource", model.Identity{ID: "d", Role: model.RoleDeveloper}, "d", true},
		{"developer on foreign resource", model.Identity{ID: "d", Role: model.RoleDeveloper}, "x", false},
		{"submitter on unowned resource", model.Identity{ID: "s", Role: model.RoleSubmitter}, "", false},
		{"empty actor id never matches", model.Identity{Role: model.RoleSubmitter}, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Allow(tc.actor, tc.owner))
		})
	}
}

func TestTicketOwners(t *testing.T) {
	ticket := model.Ticket{Submitter: "s1", Developer: "d1"}
	submitter := model.Identity{ID: "s1", Role: model.RoleSubmitter}
	developer := model.Identity{ID: "d1", Role: model.RoleDeveloper}

	assert.False(t, Allow(submitter, TicketEditor(ticket)), "submitter cannot edit an assigned ticket")
	assert.True(t, Allow(developer, TicketEditor(ticket)))
	assert.True(t, Allow(submitter, TicketRemover(ticket)))
	assert.False(t, Allow(developer, TicketRemover(ticket)))

	unassigned := model.Ticket{Submitter: "s1"}
	assert.False(t, Allow(developer, TicketEditor(unassigned)))
}
