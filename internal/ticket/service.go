package ticket

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/shiroonigami23-ui/disruption-response-platform/internal/catalog"
	"github.com/shiroonigami23-ui/disruption-response-platform/internal/contracts"
)

// Store persists action tickets. Create must assign the sequential ticket id
// and enforce the (disruption, shipment) uniqueness atomically: when a ticket
// for the pair already exists it returns that ticket and created=false.
type Store interface {
	Create(ctx context.Context, draft contracts.ActionTicket) (contracts.ActionTicket, bool, error)
	ByID(ctx context.Context, id string) (contracts.ActionTicket, error)
	All(ctx context.Context) ([]contracts.ActionTicket, error)
	ByDisruption(ctx context.Context, disruptionID string) ([]contracts.ActionTicket, error)
	ByDisruptionAndShipment(ctx context.Context, disruptionID, shipmentID string) (contracts.ActionTicket, error)
	Count(ctx context.Context) (int, error)
	UpdateStatus(ctx context.Context, id string, status contracts.TicketStatus) (contracts.ActionTicket, error)
	AppendNote(ctx context.Context, id, note string) (contracts.ActionTicket, error)
}

// EventPublisher emits ticket lifecycle events. Publishing is best-effort:
// a failed publish never fails the ticket operation.
type EventPublisher interface {
	Publish(ctx context.Context, event contracts.TicketEvent) error
}

// Service turns decisions into persisted, human-readable action tickets and
// walks them through their status lifecycle.
type Service struct {
	store   Store
	catalog *catalog.Catalog
	events  EventPublisher
	now     func() time.Time
}

func NewService(store Store, cat *catalog.Catalog, events EventPublisher) *Service {
	return &Service{store: store, catalog: cat, events: events, now: time.Now}
}

// Create persists a ticket for the decision. Creation is idempotent per
// (disruption, shipment): a second call returns the existing ticket unchanged
// and emits no event.
func (s *Service) Create(ctx context.Context, disruptionID string, decision contracts.Decision, operatorID string) (contracts.ActionTicket, error) {
	shipment, err := s.catalog.ShipmentByID(decision.ShipmentID)
	if err != nil {
		return contracts.ActionTicket{}, err
	}

	var altRoute *contracts.Route
	if decision.AlternativeRouteID != nil {
		r, err := s.catalog.RouteByID(*decision.AlternativeRouteID)
		if err != nil {
			return contracts.ActionTicket{}, err
		}
		altRoute = &r
	}

	draft := contracts.ActionTicket{
		DisruptionID: disruptionID,
		ShipmentID:   decision.ShipmentID,
		Destination:  shipment.Destination,
		Action:       decision.Action,
		Decision:     decision,
		Explanation:  renderExplanation(decision, shipment, altRoute),
		Status:       contracts.TicketPending,
		CreatedBy:    operatorID,
	}

	created, inserted, err := s.store.Create(ctx, draft)
	if err != nil {
		return contracts.ActionTicket{}, err
	}
	if inserted {
		s.publish(ctx, contracts.TicketEventCreated, created, operatorID)
	}
	return created, nil
}

// Transition moves a ticket to a new status. Re-applying the current status
// is a no-op success; moving back to pending is rejected.
func (s *Service) Transition(ctx context.Context, ticketID string, status contracts.TicketStatus) (contracts.ActionTicket, error) {
	if !contracts.ValidTicketStatus(status) {
		return contracts.ActionTicket{}, fmt.Errorf("unknown ticket status %q: %w", status, contracts.ErrInvalidInput)
	}
	if status == contracts.TicketPending {
		return contracts.ActionTicket{}, fmt.Errorf("ticket cannot return to pending: %w", contracts.ErrInvalidInput)
	}

	current, err := s.store.ByID(ctx, ticketID)
	if err != nil {
		return contracts.ActionTicket{}, err
	}
	if current.Status == status {
		return current, nil
	}

	updated, err := s.store.UpdateStatus(ctx, ticketID, status)
	if err != nil {
		return contracts.ActionTicket{}, err
	}
	s.publish(ctx, contracts.TicketEventStatusChanged, updated, "")
	return updated, nil
}

// AppendNote adds a timestamped note to the ticket's history. Prior notes are
// never replaced.
func (s *Service) AppendNote(ctx context.Context, ticketID, author, note string) (contracts.ActionTicket, error) {
	stamp := s.now().UTC().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("[%s] %s: %s", stamp, author, note)
	return s.store.AppendNote(ctx, ticketID, line)
}

func (s *Service) ByID(ctx context.Context, ticketID string) (contracts.ActionTicket, error) {
	return s.store.ByID(ctx, ticketID)
}

func (s *Service) All(ctx context.Context) ([]contracts.ActionTicket, error) {
	return s.store.All(ctx)
}

func (s *Service) ByDisruption(ctx context.Context, disruptionID string) ([]contracts.ActionTicket, error) {
	return s.store.ByDisruption(ctx, disruptionID)
}

func (s *Service) publish(ctx context.Context, eventType contracts.TicketEventType, t contracts.ActionTicket, operatorID string) {
	if s.events == nil {
		return
	}
	event := contracts.TicketEvent{
		ID:           uuid.NewString(),
		Type:         eventType,
		Timestamp:    s.now().UTC(),
		TicketID:     t.ID,
		DisruptionID: t.DisruptionID,
		ShipmentID:   t.ShipmentID,
		Action:       t.Action,
		Status:       t.Status,
		OperatorID:   operatorID,
	}
	if err := s.events.Publish(ctx, event); err != nil {
		log.Printf("ticket event publish error: %v", err)
	}
}
