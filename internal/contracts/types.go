package contracts

import "time"

type DisruptionType string

const (
	DisruptionPortStrike       DisruptionType = "port_strike"
	DisruptionWeather          DisruptionType = "weather"
	DisruptionRouteClosure     DisruptionType = "route_closure"
	DisruptionEquipmentFailure DisruptionType = "equipment_failure"
	DisruptionCustomsDelay     DisruptionType = "customs_delay"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type CargoType string

const (
	CargoPerishable CargoType = "perishable"
	CargoStandard   CargoType = "standard"
	CargoBulk       CargoType = "bulk"
	CargoHazardous  CargoType = "hazardous"
)

type ActionType string

const (
	ActionReroute  ActionType = "reroute"
	ActionDelay    ActionType = "delay"
	ActionEscalate ActionType = "escalate"
)

type DisruptionStatus string

const (
	DisruptionActive     DisruptionStatus = "active"
	DisruptionMonitoring DisruptionStatus = "monitoring"
	DisruptionResolved   DisruptionStatus = "resolved"
)

type TicketStatus string

const (
	TicketPending    TicketStatus = "pending"
	TicketApproved   TicketStatus = "approved"
	TicketInProgress TicketStatus = "in_progress"
	TicketCompleted  TicketStatus = "completed"
	TicketRejected   TicketStatus = "rejected"
)

// Disruption is an external event impairing one or more shipping routes.
// Immutable once created apart from its status transition.
type Disruption struct {
	ID                     string           `json:"id"`
	Type                   DisruptionType   `json:"type"`
	Location               string           `json:"location"`
	Severity               Severity         `json:"severity"`
	Description            string           `json:"description"`
	Status                 DisruptionStatus `json:"status"`
	EstimatedDurationHours int              `json:"estimated_duration_hours,omitempty"`
	CreatedAt              time.Time        `json:"created_at"`
}

// Route is a fixed origin-to-destination shipping path. Read-only reference
// data; EstimatedDays is the normal transit time.
type Route struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	ViaPoints     []string `json:"via_points"`
	EstimatedDays int      `json:"estimated_days"`
	IsActive      bool     `json:"is_active"`
}

// Shipment is cargo assigned to a route. Priority runs 1-10, tolerances
// bound how much delay (hours) and cost increase (percent) it can absorb.
type Shipment struct {
	ID                       string    `json:"id"`
	RouteID                  string    `json:"route_id"`
	CargoType                CargoType `json:"cargo_type"`
	Priority                 int       `json:"priority"`
	DelayToleranceHours      int       `json:"delay_tolerance_hours"`
	CostIncreaseTolerancePct float64   `json:"cost_increase_tolerance_percent"`
	Destination              string    `json:"destination"`
}

// ImpactAnalysis is recomputed on every request and never persisted.
type ImpactAnalysis struct {
	DisruptionID           string     `json:"disruption_id"`
	AffectedRoutes         []Route    `json:"affected_routes"`
	AffectedShipments      []Shipment `json:"affected_shipments"`
	TotalShipmentsImpacted int        `json:"total_shipments_impacted"`
	HighPriorityCount      int        `json:"high_priority_count"`
	SeverityScore          float64    `json:"severity_score"`
}

// Decision is the recommended action for one shipment. Cost impact, delay
// and alternative route are only set for the actions they apply to, and
// serialize as null otherwise.
type Decision struct {
	ShipmentID          string     `json:"shipment_id"`
	Action              ActionType `json:"action"`
	Reasoning           string     `json:"reasoning"`
	EstimatedCostImpact *float64   `json:"estimated_cost_impact"`
	EstimatedDelayHours *int       `json:"estimated_delay_hours"`
	AlternativeRouteID  *string    `json:"alternative_route_id"`
	ConfidenceScore     float64    `json:"confidence_score"`
}

// OperatorConstraints captures the operator's answer to "how may we respond":
// whether rerouting is on the table and how much extra cost is acceptable.
type OperatorConstraints struct {
	DisruptionID           string  `json:"disruption_id"`
	AllowReroute           bool    `json:"allow_reroute"`
	MaxCostIncreasePercent float64 `json:"max_cost_increase_percent"`
	PrioritizeHighPriority bool    `json:"prioritize_high_priority"`
	AdditionalNotes        string  `json:"additional_notes,omitempty"`
}

// ActionTicket is the persisted record of a decision. At most one ticket
// exists per (disruption, shipment) pair.
type ActionTicket struct {
	ID           string       `json:"id"`
	DisruptionID string       `json:"disruption_id"`
	ShipmentID   string       `json:"shipment_id"`
	Destination  string       `json:"destination"`
	Action       ActionType   `json:"action"`
	Decision     Decision     `json:"decision"`
	Explanation  string       `json:"explanation"`
	Status       TicketStatus `json:"status"`
	CreatedBy    string       `json:"created_by"`
	Notes        string       `json:"notes"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ValidTicketStatus reports whether s is a known ticket status.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketPending, TicketApproved, TicketInProgress, TicketCompleted, TicketRejected:
		return true
	}
	return false
}
