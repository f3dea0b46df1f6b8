package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventboard/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	notifier       domain.Notifier
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	notifier domain.Notifier,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		contextTimeout: timeout,
	}
}

func (s *eventService) ListEvents(ctx context.Context, requester *domain.User, filter domain.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.CanListAllEvents(requester) {
		// Non-staff only ever see approved events; their is_approved
		// filter is silently ignored.
		approved := true
		filter.IsApproved = &approved
	}
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func validateCreateInput(in domain.CreateEventInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Location) == "" {
		return fmt.Errorf("%w: location is required", domain.ErrInvalidInput)
	}
	return nil
}

func validatePatch(p domain.EventPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", domain.ErrInvalidInput)
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return fmt.Errorf("%w: description must not be empty", domain.ErrInvalidInput)
	}
	if p.Date != nil && p.Date.IsZero() {
		return fmt.Errorf("%w: date must not be empty", domain.ErrInvalidInput)
	}
	if p.Location != nil && strings.TrimSpace(*p.Location) == "" {
		return fmt.Errorf("%w: location must not be empty", domain.ErrInvalidInput)
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, requester *domain.User, input domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if requester == nil {
		return nil, domain.ErrForbidden
	}
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	event := domain.NewEvent(input.Title, input.Description, input.Date, input.Location, requester.ID, now, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.notifier.Notify(domain.Notification{
		RecipientEmail: requester.Email,
		EventTitle:     event.Title,
		Kind:           domain.NotificationEventCreated,
	})
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, requester *domain.User, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	// The event exists but is not visible: forbidden, not not-found.
	if !domain.CanViewEvent(requester, event) {
		return nil, fmt.Errorf("%w: not approved yet", domain.ErrForbidden)
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, requester *domain.User, id string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !domain.CanModifyEvent(requester, event) {
		return nil, domain.ErrForbidden
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	updated, err := s.eventRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, requester *domain.User, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !domain.CanDeleteEvent(requester, event) {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	s.notifyOrganizer(ctx, event, domain.NotificationEventDeleted)
	return nil
}

func (s *eventService) ApproveEvent(ctx context.Context, requester *domain.User, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Policy check first: approval rights do not depend on the event, so
	// non-staff get forbidden even for ids that do not exist.
	if !domain.CanApproveEvent(requester) {
		return nil, domain.ErrForbidden
	}
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.IsApproved {
		return nil, domain.ErrAlreadyApproved
	}
	approved, err := s.eventRepo.SetApproved(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("approve event: %w", err)
	}
	s.notifyOrganizer(ctx, approved, domain.NotificationEventApproved)
	return approved, nil
}

func (s *eventService) ListUnapproved(ctx context.Context, requester *domain.User) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.CanListAllEvents(requester) {
		return nil, domain.ErrForbidden
	}
	unapproved := false
	events, err := s.eventRepo.List(ctx, domain.EventFilter{IsApproved: &unapproved})
	if err != nil {
		return nil, fmt.Errorf("list unapproved events: %w", err)
	}
	return events, nil
}

// notifyOrganizer enqueues a fire-and-forget notification for the event's
// organizer. A failed organizer lookup skips the notification; it never fails
// the calling operation.
func (s *eventService) notifyOrganizer(ctx context.Context, event *domain.Event, kind domain.NotificationKind) {
	organizer, err := s.userRepo.GetByID(ctx, event.OrganizerID)
	if err != nil || organizer == nil {
		return
	}
	s.notifier.Notify(domain.Notification{
		RecipientEmail: organizer.Email,
		EventTitle:     event.Title,
		Kind:           kind,
	})
}
