package domain

import (
	"context"
	"time"
)

// Event represents a listed event. Unapproved events are only visible to
// staff and to their organizer.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	OrganizerID string    `json:"organizer_id"`
	IsApproved  bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new unapproved Event owned by organizerID.
// ID is set by the repository on create.
func NewEvent(title, description string, date time.Time, location, organizerID string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Date:        date,
		Location:    location,
		OrganizerID: organizerID,
		IsApproved:  false,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Recognized ordering values for event listings. Anything else falls back to
// primary-key order.
const (
	OrderingDate      = "date"
	OrderingDateDesc  = "-date"
	OrderingTitle     = "title"
	OrderingTitleDesc = "-title"
)

// EventFilter narrows an event listing. Nil fields are no-ops; all set
// filters compose with AND (the search term itself matches title OR
// description).
type EventFilter struct {
	Search     *string
	Location   *string
	StartDate  *time.Time
	EndDate    *time.Time
	IsApproved *bool
	Ordering   string
}

// EventPatch holds a partial update for an event. Nil fields are unchanged.
// Organizer, approval state, and timestamps are server-controlled and cannot
// be patched.
type EventPatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	Location    *string
}

// CreateEventInput holds the caller-supplied fields for a new event.
type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	Update(ctx context.Context, id string, patch EventPatch) (*Event, error)
	SetApproved(ctx context.Context, id string) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for listing, moderating, and
// mutating events. The requester is nil for anonymous callers.
type EventService interface {
	ListEvents(ctx context.Context, requester *User, filter EventFilter) ([]*Event, error)
	CreateEvent(ctx context.Context, requester *User, input CreateEventInput) (*Event, error)
	GetEvent(ctx context.Context, requester *User, id string) (*Event, error)
	UpdateEvent(ctx context.Context, requester *User, id string, patch EventPatch) (*Event, error)
	DeleteEvent(ctx context.Context, requester *User, id string) error
	ApproveEvent(ctx context.Context, requester *User, id string) (*Event, error)
	ListUnapproved(ctx context.Context, requester *User) ([]*Event, error)
}
