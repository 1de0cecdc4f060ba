package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-ticket-tracker/internal/model"
	"go-ticket-tracker/internal/repository"
)

var _ repository.TicketRepository = (*TicketRepository)(nil)

type TicketRepository struct {
	coll *mongo.Collection
}

func NewTicketRepository(coll *mongo.Collection) *TicketRepository {
	return &TicketRepository{coll: coll}
}

func (r *TicketRepository) FindByID(ctx context.Context, id string) (model.Ticket, error) {
	var t model.Ticket
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Ticket{}, model.ErrTicketNotFound
	}
	if err != nil {
		return model.Ticket{}, fmt.Errorf("find ticket: %w", err)
	}
	return t, nil
}

func (r *TicketRepository) List(ctx context.Context, filter model.TicketFilter) (model.TicketPage, error) {
	query := ticketQuery(filter)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return model.TicketPage{}, fmt.Errorf("count tickets: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filter.Limit > 0 {
		opts.SetSkip(int64(filter.Offset())).SetLimit(int64(filter.Limit))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return model.TicketPage{}, fmt.Errorf("list tickets: %w", err)
	}

	tickets := make([]model.Ticket, 0)
	if err := cursor.All(ctx, &tickets); err != nil {
		return model.TicketPage{}, fmt.Errorf("decode tickets: %w", err)
	}

	return model.TicketPage{Tickets: tickets, Total: int(total)}, nil
}

func (r *TicketRepository) Create(ctx context.Context, t model.Ticket) error {
	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) Update(ctx context.Context, t model.Ticket) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrTicketNotFound
	}
	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrTicketNotFound
	}
	return nil
}

func ticketQuery(filter model.TicketFilter) bson.M {
	query := bson.M{}
	if filter.Project != "" {
		query["project"] = filter.Project
	}
	if filter.User != "" {
		query["$or"] = bson.A{
			bson.M{"submitter": filter.User},
			bson.M{"developer": filter.User},
		}
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return query
}
