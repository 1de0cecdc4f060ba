package model

import "time"

type Ticket struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Project     string    `json:"project" bson:"project"`
	Submitter   string    `json:"submitter" bson:"submitter"`
	Developer   string    `json:"developer,omitempty" bson:"developer,omitempty"`
	Type        string    `json:"type" bson:"type"`
	Status      string    `json:"status" bson:"status"`
	Priority    string    `json:"priority" bson:"priority"`
	CreatedAt   time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updatedAt"`
}

// TicketFilter narrows a ticket listing. User matches either submitter or developer.
type TicketFilter struct {
	Project string
	User    string
	Status  string
	Page    int
	Limit   int
}

func (f TicketFilter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

type TicketPage struct {
	Tickets []Ticket `json:"tickets"`
	Total   int      `json:"-"`
}
