package contracts

import "time"

type TicketEventType string

const (
	TicketEventCreated       TicketEventType = "ticket_created"
	TicketEventStatusChanged TicketEventType = "ticket_status_changed"
)

// TicketEvent is published whenever a ticket is created or moves through its
// status lifecycle. The notifier consumes these to surface operator work.
type TicketEvent struct {
	ID           string          `json:"id"`
	Type         TicketEventType `json:"type"`
	Timestamp    time.Time       `json:"timestamp"`
	TicketID     string          `json:"ticket_id"`
	DisruptionID string          `json:"disruption_id"`
	ShipmentID   string          `json:"shipment_id"`
	Action       ActionType      `json:"action"`
	Status       TicketStatus    `json:"status"`
	OperatorID   string          `json:"operator_id,omitempty"`
}

func (e TicketEvent) Key() string {
	return e.DisruptionID + "|" + e.ShipmentID
}
