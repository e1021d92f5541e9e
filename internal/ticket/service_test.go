package ticket

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiroonigami23-ui/disruption-response-platform/internal/catalog"
	"github.com/shiroonigami23-ui/disruption-response-platform/internal/contracts"
	"github.com/shiroonigami23-ui/disruption-response-platform/internal/storage"
)

type capturingPublisher struct {
	events []contracts.TicketEvent
}

func (p *capturingPublisher) Publish(_ context.Context, event contracts.TicketEvent) error {
	p.events = append(p.events, event)
	return nil
}

func newTestService() (*Service, *storage.MemoryTicketStore, *capturingPublisher) {
	store := storage.NewMemoryTicketStore()
	publisher := &capturingPublisher{}
	return NewService(store, catalog.Default(), publisher), store, publisher
}

func ptr[T any](v T) *T { return &v }

func delayDecisionFor(shipmentID string, hours int) contracts.Decision {
	return contracts.Decision{
		ShipmentID:          shipmentID,
		Action:              contracts.ActionDelay,
		Reasoning:           "High priority shipment can tolerate the expected delay duration",
		EstimatedCostImpact: ptr(0.0),
		EstimatedDelayHours: ptr(hours),
		ConfidenceScore:     0.85,
	}
}

func TestCreateIsIdempotentPerDisruptionAndShipment(t *testing.T) {
	service, store, publisher := newTestService()
	ctx := context.Background()

	first, err := service.Create(ctx, "DISR-001", delayDecisionFor("SHIP-002", 24), "OP-001")
	require.NoError(t, err)
	assert.Equal(t, "TICKET-001", first.ID)
	assert.Equal(t, contracts.TicketPending, first.Status)

	second, err := service.Create(ctx, "DISR-001", delayDecisionFor("SHIP-002", 24), "OP-002")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedBy, second.CreatedBy, "existing ticket is returned unchanged")

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.Len(t, publisher.events, 1, "duplicate creation emits no event")
	assert.Equal(t, contracts.TicketEventCreated, publisher.events[0].Type)
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	t1, err := service.Create(ctx, "DISR-001", delayDecisionFor("SHIP-001", 24), "OP-001")
	require.NoError(t, err)
	t2, err := service.Create(ctx, "DISR-001", delayDecisionFor("SHIP-002", 24), "OP-001")
	require.NoError(t, err)
	t3, err := service.Create(ctx, "DISR-002", delayDecisionFor("SHIP-003", 24), "OP-001")
	require.NoError(t, err)

	assert.Equal(t, "TICKET-001", t1.ID)
	assert.Equal(t, "TICKET-002", t2.ID)
	assert.Equal(t, "TICKET-003", t3.ID)
}

func TestCreateUnknownShipment(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Create(context.Background(), "DISR-001", delayDecisionFor("SHIP-404", 24), "OP-001")
	assert.ErrorIs(t, err, contracts.ErrNotFound)
}

func TestRerouteExplanationIncludesAlternativeRoute(t *testing.T) {
	service, _, _ := newTestService()

	decision := contracts.Decision{
		ShipmentID:          "SHIP-001",
		Action:              contracts.ActionReroute,
		Reasoning:           "Perishable cargo requires immediate rerouting to prevent spoilage",
		EstimatedCostImpact: ptr(50.0),
		EstimatedDelayHours: ptr(120),
		AlternativeRouteID:  ptr("ROUTE-005"),
		ConfidenceScore:     0.90,
	}

	ticket, err := service.Create(context.Background(), "DISR-001", decision, "OP-001")
	require.NoError(t, err)

	assert.Contains(t, ticket.Explanation, "Reroute Shipment SHIP-001")
	assert.Contains(t, ticket.Explanation, "perishable cargo requires immediate rerouting")
	assert.Contains(t, ticket.Explanation, "Chennai to Hong Kong")
	assert.Contains(t, ticket.Explanation, "Priority: 9/10")
	assert.Contains(t, ticket.Explanation, "Cargo Type: Perishable")
	assert.Contains(t, ticket.Explanation, "+50.0%")
	assert.Equal(t, "Singapore", ticket.Destination)
	assert.Equal(t, decision, ticket.Decision)
}

func TestDelayExplanationTiesDurationToTolerance(t *testing.T) {
	service, _, _ := newTestService()

	ticket, err := service.Create(context.Background(), "DISR-001", delayDecisionFor("SHIP-002", 48), "OP-001")
	require.NoError(t, err)

	assert.Contains(t, ticket.Explanation, "Delay Shipment SHIP-002")
	assert.Contains(t, ticket.Explanation, "The expected delay of 48 hours is within the shipment's tolerance of 72 hours.")
}

func TestEscalateExplanation(t *testing.T) {
	service, _, _ := newTestService()

	decision := contracts.Decision{
		ShipmentID:      "SHIP-005",
		Action:          contracts.ActionEscalate,
		Reasoning:       "Disruption exceeds delay tolerance but no reroute options available",
		ConfidenceScore: 0.95,
	}
	ticket, err := service.Create(context.Background(), "DISR-003", decision, "OP-001")
	require.NoError(t, err)

	assert.Contains(t, ticket.Explanation, "requires management review")
	assert.Contains(t, ticket.Explanation, "exceed automated decision parameters")
}

func TestTransitionLifecycle(t *testing.T) {
	service, _, publisher := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, "DISR-001", delayDecisionFor("SHIP-001", 24), "OP-001")
	require.NoError(t, err)

	approved, err := service.Transition(ctx, created.ID, contracts.TicketApproved)
	require.NoError(t, err)
	assert.Equal(t, contracts.TicketApproved, approved.Status)

	// Re-applying the same status is a no-op success, not an error.
	again, err := service.Transition(ctx, created.ID, contracts.TicketApproved)
	require.NoError(t, err)
	assert.Equal(t, contracts.TicketApproved, again.Status)

	inProgress, err := service.Transition(ctx, created.ID, contracts.TicketInProgress)
	require.NoError(t, err)
	assert.Equal(t, contracts.TicketInProgress, inProgress.Status)

	// One created event plus two real transitions; the no-op emits nothing.
	require.Len(t, publisher.events, 3)
	assert.Equal(t, contracts.TicketEventStatusChanged, publisher.events[1].Type)
	assert.Equal(t, contracts.TicketEventStatusChanged, publisher.events[2].Type)
}

func TestTransitionBackToPendingIsRejected(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, "DISR-001", delayDecisionFor("SHIP-001", 24), "OP-001")
	require.NoError(t, err)

	_, err = service.Transition(ctx, created.ID, contracts.TicketPending)
	assert.ErrorIs(t, err, contracts.ErrInvalidInput)
}

func TestTransitionUnknownStatusOrTicket(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Transition(ctx, "TICKET-404", contracts.TicketApproved)
	assert.ErrorIs(t, err, contracts.ErrNotFound)

	created, err := service.Create(ctx, "DISR-001", delayDecisionFor("SHIP-001", 24), "OP-001")
	require.NoError(t, err)

	_, err = service.Transition(ctx, created.ID, contracts.TicketStatus("archived"))
	assert.ErrorIs(t, err, contracts.ErrInvalidInput)
}

func TestAppendNoteKeepsHistory(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, "DISR-001", delayDecisionFor("SHIP-001", 24), "OP-001")
	require.NoError(t, err)

	first, err := service.AppendNote(ctx, created.ID, "OP-001", "customer notified")
	require.NoError(t, err)
	assert.Contains(t, first.Notes, "OP-001: customer notified")

	second, err := service.AppendNote(ctx, created.ID, "OP-002", "ETA updated")
	require.NoError(t, err)

	lines := strings.Split(second.Notes, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "customer notified")
	assert.Contains(t, lines[1], "OP-002: ETA updated")

	_, err = service.AppendNote(ctx, "TICKET-404", "OP-001", "nope")
	assert.ErrorIs(t, err, contracts.ErrNotFound)
}

func TestQueriesByDisruption(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Create(ctx, "DISR-001", delayDecisionFor("SHIP-001", 24), "OP-001")
	require.NoError(t, err)
	_, err = service.Create(ctx, "DISR-001", delayDecisionFor("SHIP-002", 24), "OP-001")
	require.NoError(t, err)
	_, err = service.Create(ctx, "DISR-002", delayDecisionFor("SHIP-003", 24), "OP-001")
	require.NoError(t, err)

	all, err := service.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	forOne, err := service.ByDisruption(ctx, "DISR-001")
	require.NoError(t, err)
	require.Len(t, forOne, 2)
	assert.Equal(t, "SHIP-001", forOne[0].ShipmentID)
	assert.Equal(t, "SHIP-002", forOne[1].ShipmentID)

	fetched, err := service.ByID(ctx, forOne[0].ID)
	require.NoError(t, err)
	assert.Equal(t, forOne[0].ID, fetched.ID)
}
