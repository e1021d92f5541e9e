package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiroonigami23-ui/disruption-response-platform/internal/contracts"
)

type DisruptionRepository struct {
	pool *pgxpool.Pool
}

func NewDisruptionRepository(pool *pgxpool.Pool) *DisruptionRepository {
	return &DisruptionRepository{pool: pool}
}

const disruptionColumns = `id, type, location, severity, description, status, estimated_duration_hours, created_at`

func (r *DisruptionRepository) DisruptionByID(ctx context.Context, id string) (contracts.Disruption, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT `+disruptionColumns+`
        FROM disruptions
        WHERE id = $1
    `, id)

	d, err := scanDisruption(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return contracts.Disruption{}, fmt.Errorf("disruption %s: %w", id, contracts.ErrNotFound)
	}
	if err != nil {
		return contracts.Disruption{}, fmt.Errorf("query disruption: %w", err)
	}
	return d, nil
}

func (r *DisruptionRepository) List(ctx context.Context, status contracts.DisruptionStatus) ([]contracts.Disruption, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+disruptionColumns+`
        FROM disruptions
        WHERE ($1 = '' OR status = $1)
        ORDER BY created_at DESC
    `, string(status))
	if err != nil {
		return nil, fmt.Errorf("query disruptions: %w", err)
	}
	defer rows.Close()

	disruptions := make([]contracts.Disruption, 0, 8)
	for rows.Next() {
		d, err := scanDisruption(rows)
		if err != nil {
			return nil, fmt.Errorf("scan disruption: %w", err)
		}
		disruptions = append(disruptions, d)
	}
	return disruptions, rows.Err()
}

func (r *DisruptionRepository) Insert(ctx context.Context, d contracts.Disruption) (contracts.Disruption, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Status == "" {
		d.Status = contracts.DisruptionActive
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO disruptions (id, type, location, severity, description, status, estimated_duration_hours)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+disruptionColumns+`
    `, d.ID, d.Type, d.Location, d.Severity, d.Description, d.Status, d.EstimatedDurationHours)

	inserted, err := scanDisruption(row)
	if err != nil {
		return contracts.Disruption{}, fmt.Errorf("insert disruption: %w", err)
	}
	return inserted, nil
}

func (r *DisruptionRepository) UpdateStatus(ctx context.Context, id string, status contracts.DisruptionStatus) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE disruptions SET status = $2 WHERE id = $1
    `, id, string(status))
	if err != nil {
		return fmt.Errorf("update disruption status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("disruption %s: %w", id, contracts.ErrNotFound)
	}
	return nil
}

func scanDisruption(row pgx.Row) (contracts.Disruption, error) {
	var d contracts.Disruption
	err := row.Scan(&d.ID, &d.Type, &d.Location, &d.Severity, &d.Description, &d.Status, &d.EstimatedDurationHours, &d.CreatedAt)
	return d, err
}

type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

const ticketColumns = `id, disruption_id, shipment_id, destination, action, decision, explanation, status, created_by, notes, created_at, updated_at`

// Create inserts the draft with a server-assigned sequential id. The unique
// (disruption_id, shipment_id) constraint makes the check-then-act race
// collapse into a single atomic statement: on conflict nothing is inserted
// and the surviving row is returned instead.
func (r *TicketRepository) Create(ctx context.Context, draft contracts.ActionTicket) (contracts.ActionTicket, bool, error) {
	decisionJSON, err := json.Marshal(draft.Decision)
	if err != nil {
		return contracts.ActionTicket{}, false, fmt.Errorf("marshal decision: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO action_tickets
            (id, disruption_id, shipment_id, destination, action, decision, explanation, status, created_by)
        VALUES
            ('TICKET-' || LPAD(nextval('action_ticket_seq')::text, 3, '0'),
             $1, $2, $3, $4, $5::jsonb, $6, $7, $8)
        ON CONFLICT (disruption_id, shipment_id) DO NOTHING
        RETURNING `+ticketColumns+`
    `, draft.DisruptionID, draft.ShipmentID, draft.Destination, draft.Action,
		string(decisionJSON), draft.Explanation, draft.Status, draft.CreatedBy)

	inserted, err := scanTicket(row)
	if err == nil {
		return inserted, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return contracts.ActionTicket{}, false, fmt.Errorf("insert ticket: %w", err)
	}

	existing, err := r.ByDisruptionAndShipment(ctx, draft.DisruptionID, draft.ShipmentID)
	if err != nil {
		return contracts.ActionTicket{}, false, err
	}
	return existing, false, nil
}

func (r *TicketRepository) ByID(ctx context.Context, id string) (contracts.ActionTicket, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT `+ticketColumns+`
        FROM action_tickets
        WHERE id = $1
    `, id)

	t, err := scanTicket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return contracts.ActionTicket{}, fmt.Errorf("ticket %s: %w", id, contracts.ErrNotFound)
	}
	if err != nil {
		return contracts.ActionTicket{}, fmt.Errorf("query ticket: %w", err)
	}
	return t, nil
}

func (r *TicketRepository) ByDisruptionAndShipment(ctx context.Context, disruptionID, shipmentID string) (contracts.ActionTicket, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT `+ticketColumns+`
        FROM action_tickets
        WHERE disruption_id = $1 AND shipment_id = $2
    `, disruptionID, shipmentID)

	t, err := scanTicket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return contracts.ActionTicket{}, fmt.Errorf("ticket for disruption %s shipment %s: %w", disruptionID, shipmentID, contracts.ErrNotFound)
	}
	if err != nil {
		return contracts.ActionTicket{}, fmt.Errorf("query ticket by pair: %w", err)
	}
	return t, nil
}

func (r *TicketRepository) All(ctx context.Context) ([]contracts.ActionTicket, error) {
	return r.list(ctx, `
        SELECT `+ticketColumns+`
        FROM action_tickets
        ORDER BY id ASC
    `)
}

func (r *TicketRepository) ByDisruption(ctx context.Context, disruptionID string) ([]contracts.ActionTicket, error) {
	return r.list(ctx, `
        SELECT `+ticketColumns+`
        FROM action_tickets
        WHERE disruption_id = $1
        ORDER BY id ASC
    `, disruptionID)
}

func (r *TicketRepository) list(ctx context.Context, query string, args ...any) ([]contracts.ActionTicket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]contracts.ActionTicket, 0, 16)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *TicketRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM action_tickets`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count tickets: %w", err)
	}
	return count, nil
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id string, status contracts.TicketStatus) (contracts.ActionTicket, error) {
	row := r.pool.QueryRow(ctx, `
        UPDATE action_tickets
        SET status = $2, updated_at = NOW()
        WHERE id = $1
        RETURNING `+ticketColumns+`
    `, id, string(status))

	t, err := scanTicket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return contracts.ActionTicket{}, fmt.Errorf("ticket %s: %w", id, contracts.ErrNotFound)
	}
	if err != nil {
		return contracts.ActionTicket{}, fmt.Errorf("update ticket status: %w", err)
	}
	return t, nil
}

func (r *TicketRepository) AppendNote(ctx context.Context, id, note string) (contracts.ActionTicket, error) {
	row := r.pool.QueryRow(ctx, `
        UPDATE action_tickets
        SET notes = CASE WHEN notes = '' THEN $2 ELSE notes || E'\n' || $2 END,
            updated_at = NOW()
        WHERE id = $1
        RETURNING `+ticketColumns+`
    `, id, note)

	t, err := scanTicket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return contracts.ActionTicket{}, fmt.Errorf("ticket %s: %w", id, contracts.ErrNotFound)
	}
	if err != nil {
		return contracts.ActionTicket{}, fmt.Errorf("append ticket note: %w", err)
	}
	return t, nil
}

func scanTicket(row pgx.Row) (contracts.ActionTicket, error) {
	var t contracts.ActionTicket
	var decisionRaw []byte
	err := row.Scan(
		&t.ID,
		&t.DisruptionID,
		&t.ShipmentID,
		&t.Destination,
		&t.Action,
		&decisionRaw,
		&t.Explanation,
		&t.Status,
		&t.CreatedBy,
		&t.Notes,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return contracts.ActionTicket{}, err
	}
	_ = json.Unmarshal(decisionRaw, &t.Decision)
	return t, nil
}
