package memory

import (
	"context"
	"sort"
	"sync"

	"go-ticket-tracker/internal/model"
	"go-ticket-tracker/internal/repository"
)

var _ repository.TicketRepository = (*TicketRepository)(nil)

type TicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]model.Ticket
}

func NewTicketRepository() *TicketRepository {
	return &TicketRepository{tickets: map[string]model.Ticket{}}
}

func (r *TicketRepository) FindByID(_ context.Context, id string) (model.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tickets[id]
	if !ok {
		return model.Ticket{}, model.ErrTicketNotFound
	}
	return t, nil
}

func (r *TicketRepository) List(_ context.Context, filter model.TicketFilter) (model.TicketPage, error) {
	r.mu.RLock()
	matched := make([]model.Ticket, 0)
	for _, t := range r.tickets {
		if matches(t, filter) {
			matched = append(matched, t)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := filter.Offset()
	if start > total {
		start = total
	}
	end := total
	if filter.Limit > 0 && start+filter.Limit < total {
		end = start + filter.Limit
	}

	return model.TicketPage{Tickets: matched[start:end], Total: total}, nil
}

func (r *TicketRepository) Create(_ context.Context, t model.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tickets[t.ID] = t
	return nil
}

func (r *TicketRepository) Update(_ context.Context, t model.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tickets[t.ID]; !ok {
		return model.ErrTicketNotFound
	}
	r.tickets[t.ID] = t
	return nil
}

func (r *TicketRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tickets[id]; !ok {
		return model.ErrTicketNotFound
	}
	delete(r.tickets, id)
	return nil
}

func matches(t model.Ticket, filter model.TicketFilter) bool {
	if filter.Project != "" && t.Project != filter.Project {
		return false
	}
	if filter.User != "" && t.Submitter != filter.User && t.Developer != filter.User {
		return false
	}
	if filter.Status != "" && t.Status != filter.Status {
		return false
	}
	return true
}
