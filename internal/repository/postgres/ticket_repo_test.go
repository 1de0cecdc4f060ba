package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-ticket-tracker/internal/model"
)

func TestTicketWhere(t *testing.T) {
	where, args := ticketWhere(model.TicketFilter{})
	assert.Equal(t, "", where)
	assert.Empty(t, args)

	where, args = ticketWhere(model.TicketFilter{Project: "p1", User: "u1", Status: "open"})
	assert.Equal(t, " WHERE project = $1 AND (submitter = $2 OR developer = $2) AND status = $3", where)
	assert.Equal(t, []any{"p1", "u1", "open"}, args)

	where, args = ticketWhere(model.TicketFilter{User: "u1"})
	assert.Equal(t, " WHERE (submitter = $1 OR developer = $1)", where)
	assert.Equal(t, []any{"u1"}, args)
}
