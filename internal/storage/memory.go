package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shiroonigami23-ui/disruption-response-platform/internal/contracts"
)

// MemoryTicketStore is a mutex-guarded in-memory implementation of the ticket
// store, used in tests and when running without a database. One lock covers
// the id counter and the pair-uniqueness check, so creation stays atomic.
type MemoryTicketStore struct {
	mu      sync.Mutex
	seq     int
	byID    map[string]contracts.ActionTicket
	byPair  map[string]string // disruptionID|shipmentID -> ticket id
	ordered []string
	now     func() time.Time
}

func NewMemoryTicketStore() *MemoryTicketStore {
	return &MemoryTicketStore{
		byID:   make(map[string]contracts.ActionTicket),
		byPair: make(map[string]string),
		now:    time.Now,
	}
}

func pairKey(disruptionID, shipmentID string) string {
	return disruptionID + "|" + shipmentID
}

func (m *MemoryTicketStore) Create(_ context.Context, draft contracts.ActionTicket) (contracts.ActionTicket, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := pairKey(draft.DisruptionID, draft.ShipmentID)
	if existingID, ok := m.byPair[key]; ok {
		return m.byID[existingID], false, nil
	}

	m.seq++
	draft.ID = fmt.Sprintf("TICKET-%03d", m.seq)
	now := m.now().UTC()
	draft.CreatedAt = now
	draft.UpdatedAt = now

	m.byID[draft.ID] = draft
	m.byPair[key] = draft.ID
	m.ordered = append(m.ordered, draft.ID)
	return draft, true, nil
}

func (m *MemoryTicketStore) ByID(_ context.Context, id string) (contracts.ActionTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.byID[id]
	if !ok {
		return contracts.ActionTicket{}, fmt.Errorf("ticket %s: %w", id, contracts.ErrNotFound)
	}
	return t, nil
}

func (m *MemoryTicketStore) All(_ context.Context) ([]contracts.ActionTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tickets := make([]contracts.ActionTicket, 0, len(m.ordered))
	for _, id := range m.ordered {
		tickets = append(tickets, m.byID[id])
	}
	return tickets, nil
}

func (m *MemoryTicketStore) ByDisruption(_ context.Context, disruptionID string) ([]contracts.ActionTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tickets := make([]contracts.ActionTicket, 0, 8)
	for _, id := range m.ordered {
		if t := m.byID[id]; t.DisruptionID == disruptionID {
			tickets = append(tickets, t)
		}
	}
	return tickets, nil
}

func (m *MemoryTicketStore) ByDisruptionAndShipment(_ context.Context, disruptionID, shipmentID string) (contracts.ActionTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byPair[pairKey(disruptionID, shipmentID)]
	if !ok {
		return contracts.ActionTicket{}, fmt.Errorf("ticket for disruption %s shipment %s: %w", disruptionID, shipmentID, contracts.ErrNotFound)
	}
	return m.byID[id], nil
}

func (m *MemoryTicketStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID), nil
}

func (m *MemoryTicketStore) UpdateStatus(_ context.Context, id string, status contracts.TicketStatus) (contracts.ActionTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.byID[id]
	if !ok {
		return contracts.ActionTicket{}, fmt.Errorf("ticket %s: %w", id, contracts.ErrNotFound)
	}
	t.Status = status
	t.UpdatedAt = m.now().UTC()
	m.byID[id] = t
	return t, nil
}

func (m *MemoryTicketStore) AppendNote(_ context.Context, id, note string) (contracts.ActionTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.byID[id]
	if !ok {
		return contracts.ActionTicket{}, fmt.Errorf("ticket %s: %w", id, contracts.ErrNotFound)
	}
	if t.Notes == "" {
		t.Notes = note
	} else {
		t.Notes += "\n" + note
	}
	t.UpdatedAt = m.now().UTC()
	m.byID[id] = t
	return t, nil
}

// MemoryDisruptionStore keeps disruptions in memory, seeded or created at
// runtime. Mirrors the Postgres repository's semantics.
type MemoryDisruptionStore struct {
	mu          sync.Mutex
	disruptions map[string]contracts.Disruption
	now         func() time.Time
}

func NewMemoryDisruptionStore(seed ...contracts.Disruption) *MemoryDisruptionStore {
	s := &MemoryDisruptionStore{
		disruptions: make(map[string]contracts.Disruption, len(seed)),
		now:         time.Now,
	}
	for _, d := range seed {
		s.disruptions[d.ID] = d
	}
	return s
}

func (s *MemoryDisruptionStore) DisruptionByID(_ context.Context, id string) (contracts.Disruption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.disruptions[id]
	if !ok {
		return contracts.Disruption{}, fmt.Errorf("disruption %s: %w", id, contracts.ErrNotFound)
	}
	return d, nil
}

func (s *MemoryDisruptionStore) List(_ context.Context, status contracts.DisruptionStatus) ([]contracts.Disruption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]contracts.Disruption, 0, len(s.disruptions))
	for _, d := range s.disruptions {
		if status == "" || d.Status == status {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryDisruptionStore) Insert(_ context.Context, d contracts.Disruption) (contracts.Disruption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Status == "" {
		d.Status = contracts.DisruptionActive
	}
	d.CreatedAt = s.now().UTC()
	s.disruptions[d.ID] = d
	return d, nil
}

func (s *MemoryDisruptionStore) UpdateStatus(_ context.Context, id string, status contracts.DisruptionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.disruptions[id]
	if !ok {
		return fmt.Errorf("disruption %s: %w", id, contracts.ErrNotFound)
	}
	d.Status = status
	s.disruptions[id] = d
	return nil
}
