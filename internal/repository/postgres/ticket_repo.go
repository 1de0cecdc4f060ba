package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-ticket-tracker/internal/model"
	"go-ticket-tracker/internal/repository"
)

var _ repository.TicketRepository = (*TicketRepository)(nil)

const ticketColumns = `id, title, description, project, submitter, developer, type, status, priority, created_at, updated_at`

type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) FindByID(ctx context.Context, id string) (model.Ticket, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id)
	t, err := scanTicket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Ticket{}, model.ErrTicketNotFound
	}
	if err != nil {
		return model.Ticket{}, fmt.Errorf("find ticket: %w", err)
	}
	return t, nil
}

func (r *TicketRepository) List(ctx context.Context, filter model.TicketFilter) (model.TicketPage, error) {
	where, args := ticketWhere(filter)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`+where, args...).Scan(&total); err != nil {
		return model.TicketPage{}, fmt.Errorf("count tickets: %w", err)
	}

	query := `SELECT ` + ticketColumns + ` FROM tickets` + where + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset())
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return model.TicketPage{}, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]model.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return model.TicketPage{}, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return model.TicketPage{}, fmt.Errorf("list tickets: %w", err)
	}

	return model.TicketPage{Tickets: tickets, Total: total}, nil
}

func (r *TicketRepository) Create(ctx context.Context, t model.Ticket) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tickets (`+ticketColumns+`)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11)`,
		t.ID, t.Title, t.Description, t.Project, t.Submitter, t.Developer,
		t.Type, t.Status, t.Priority, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) Update(ctx context.Context, t model.Ticket) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tickets SET title = $2, description = $3, developer = NULLIF($4, ''),
		        type = $5, status = $6, priority = $7, updated_at = $8
		 WHERE id = $1`,
		t.ID, t.Title, t.Description, t.Developer, t.Type, t.Status, t.Priority, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTicketNotFound
	}
	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTicketNotFound
	}
	return nil
}

func ticketWhere(filter model.TicketFilter) (string, []any) {
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if filter.Project != "" {
		args = append(args, filter.Project)
		clauses = append(clauses, fmt.Sprintf("project = $%d", len(args)))
	}
	if filter.User != "" {
		args = append(args, filter.User)
		clauses = append(clauses, fmt.Sprintf("(submitter = $%d OR developer = $%d)", len(args), len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanTicket(row pgx.Row) (model.Ticket, error) {
	var t model.Ticket
	var developer *string
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Project, &t.Submitter, &developer,
		&t.Type, &t.Status, &t.Priority, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.Ticket{}, err
	}
	if developer != nil {
		t.Developer = *developer
	}
	return t, nil
}
