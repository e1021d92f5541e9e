package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiroonigami23-ui/disruption-response-platform/internal/contracts"
)

func draftTicket(disruptionID, shipmentID string) contracts.ActionTicket {
	return contracts.ActionTicket{
		DisruptionID: disruptionID,
		ShipmentID:   shipmentID,
		Destination:  "Singapore",
		Action:       contracts.ActionDelay,
		Explanation:  "hold in place",
		Status:       contracts.TicketPending,
		CreatedBy:    "OP-001",
	}
}

func TestMemoryTicketStoreConcurrentCreateSamePair(t *testing.T) {
	store := NewMemoryTicketStore()
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	ids := make([]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ticket, _, err := store.Create(ctx, draftTicket("DISR-001", "SHIP-001"))
			assert.NoError(t, err)
			ids[i] = ticket.ID
		}(i)
	}
	wg.Wait()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "concurrent creation for one pair yields one ticket")

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestMemoryTicketStoreCreateReportsInsertion(t *testing.T) {
	store := NewMemoryTicketStore()
	ctx := context.Background()

	first, created, err := store.Create(ctx, draftTicket("DISR-001", "SHIP-001"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "TICKET-001", first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second, created, err := store.Create(ctx, draftTicket("DISR-001", "SHIP-001"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestMemoryTicketStoreLookups(t *testing.T) {
	store := NewMemoryTicketStore()
	ctx := context.Background()

	_, _, err := store.Create(ctx, draftTicket("DISR-001", "SHIP-001"))
	require.NoError(t, err)
	_, _, err = store.Create(ctx, draftTicket("DISR-002", "SHIP-002"))
	require.NoError(t, err)

	byPair, err := store.ByDisruptionAndShipment(ctx, "DISR-002", "SHIP-002")
	require.NoError(t, err)
	assert.Equal(t, "TICKET-002", byPair.ID)

	_, err = store.ByDisruptionAndShipment(ctx, "DISR-002", "SHIP-404")
	assert.ErrorIs(t, err, contracts.ErrNotFound)

	forDisruption, err := store.ByDisruption(ctx, "DISR-001")
	require.NoError(t, err)
	require.Len(t, forDisruption, 1)
	assert.Equal(t, "TICKET-001", forDisruption[0].ID)

	_, err = store.ByID(ctx, "TICKET-404")
	assert.ErrorIs(t, err, contracts.ErrNotFound)
}

func TestMemoryDisruptionStore(t *testing.T) {
	seed := contracts.Disruption{
		ID:       "DISR-001",
		Type:     contracts.DisruptionPortStrike,
		Location: "Chennai Port, India",
		Severity: contracts.SeverityHigh,
		Status:   contracts.DisruptionActive,
	}
	store := NewMemoryDisruptionStore(seed)
	ctx := context.Background()

	got, err := store.DisruptionByID(ctx, "DISR-001")
	require.NoError(t, err)
	assert.Equal(t, seed.Location, got.Location)

	_, err = store.DisruptionByID(ctx, "DISR-404")
	assert.ErrorIs(t, err, contracts.ErrNotFound)

	created, err := store.Insert(ctx, contracts.Disruption{
		Type:     contracts.DisruptionWeather,
		Location: "Pacific Shipping Lane",
		Severity: contracts.SeverityMedium,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID, "ids are assigned when absent")
	assert.Equal(t, contracts.DisruptionActive, created.Status)

	require.NoError(t, store.UpdateStatus(ctx, "DISR-001", contracts.DisruptionResolved))
	updated, err := store.DisruptionByID(ctx, "DISR-001")
	require.NoError(t, err)
	assert.Equal(t, contracts.DisruptionResolved, updated.Status)

	active, err := store.List(ctx, contracts.DisruptionActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, created.ID, active[0].ID)

	assert.ErrorIs(t, store.UpdateStatus(ctx, "DISR-404", contracts.DisruptionResolved), contracts.ErrNotFound)
}
