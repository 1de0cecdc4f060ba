package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-ticket-tracker/internal/model"
	"go-ticket-tracker/internal/policy"
	"go-ticket-tracker/internal/repository"
)

const (
	defaultTicketLimit = 10
	maxTicketLimit     = 100

	defaultTicketType     = "bug"
	defaultTicketStatus   = "new"
	defaultTicketPriority = "low"
)

type TicketService struct {
	tickets repository.TicketRepository
	users   repository.UserRepository
	now     func() time.Time
}

func NewTicketService(tickets repository.TicketRepository, users repository.UserRepository) *TicketService {
	return &TicketService{
		tickets: tickets,
		users:   users,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *TicketService) List(ctx context.Context, filter model.TicketFilter) (model.TicketPage, model.TicketFilter, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultTicketLimit
	}
	if filter.Limit > maxTicketLimit {
		filter.Limit = maxTicketLimit
	}

	page, err := s.tickets.List(ctx, filter)
	if err != nil {
		return model.TicketPage{}, filter, err
	}
	return page, filter, nil
}

func (s *TicketService) Get(ctx context.Context, id string) (model.Ticket, error) {
	ticket, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrTicketNotFound) {
			return model.Ticket{}, notFound(err, "ticket not found", id)
		}
		return model.Ticket{}, err
	}
	return ticket, nil
}

// Create files a ticket on behalf of actor, who becomes its submitter.
func (s *TicketService) Create(ctx context.Context, actor model.Identity, req model.CreateTicketRequest) (model.Ticket, error) {
	title := strings.TrimSpace(req.Title)
	project := strings.TrimSpace(req.Project)
	if title == "" {
		return model.Ticket{}, invalidInput("title is required", "")
	}
	if project == "" {
		return model.Ticket{}, invalidInput("project is required", "")
	}

	developer := strings.TrimSpace(req.Developer)
	if err := s.checkDeveloper(ctx, developer); err != nil {
		return model.Ticket{}, err
	}

	now := s.now()
	ticket := model.Ticket{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Project:     project,
		Submitter:   actor.ID,
		Developer:   developer,
		Type:        orDefault(req.Type, defaultTicketType),
		Status:      defaultTicketStatus,
		Priority:    orDefault(req.Priority, defaultTicketPriority),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return model.Ticket{}, err
	}
	return ticket, nil
}

// Update applies a partial update. Only the assigned developer or a privileged
// role may edit a ticket.
func (s *TicketService) Update(ctx context.Context, actor model.Identity, id string, req model.UpdateTicketRequest) (model.Ticket, error) {
	ticket, err := s.Get(ctx, id)
	if err != nil {
		return model.Ticket{}, err
	}

	if !policy.Allow(actor, policy.TicketEditor(ticket)) {
		return model.Ticket{}, errForbidden
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return model.Ticket{}, invalidInput("title cannot be empty", "")
		}
		ticket.Title = title
	}
	if req.Description != nil {
		ticket.Description = strings.TrimSpace(*req.Description)
	}
	if req.Developer != nil {
		developer := strings.TrimSpace(*req.Developer)
		if err := s.checkDeveloper(ctx, developer); err != nil {
			return model.Ticket{}, err
		}
		ticket.Developer = developer
	}
	if req.Type != nil {
		ticket.Type = orDefault(*req.Type, ticket.Type)
	}
	if req.Status != nil {
		ticket.Status = orDefault(*req.Status, ticket.Status)
	}
	if req.Priority != nil {
		ticket.Priority = orDefault(*req.Priority, ticket.Priority)
	}
	ticket.UpdatedAt = s.now()

	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, model.ErrTicketNotFound) {
			return model.Ticket{}, notFound(err, "ticket not found", id)
		}
		return model.Ticket{}, err
	}
	return ticket, nil
}

// Delete removes a ticket. Only its submitter or a privileged role may do so.
func (s *TicketService) Delete(ctx context.Context, actor model.Identity, id string) error {
	ticket, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !policy.Allow(actor, policy.TicketRemover(ticket)) {
		return errForbidden
	}

	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrTicketNotFound) {
			return notFound(err, "ticket not found", id)
		}
		return err
	}
	return nil
}

func (s *TicketService) checkDeveloper(ctx context.Context, developer string) error {
	if developer == "" {
		return nil
	}

	if _, err := s.users.FindByID(ctx, developer); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return invalidInput("developer does not exist", developer)
		}
		return err
	}
	return nil
}

func orDefault(raw string, fallback string) string {
	if v := strings.TrimSpace(raw); v != "" {
		return strings.ToLower(v)
	}
	return fallback
}
