package decision

import (
	"fmt"

	"github.com/shiroonigami23-ui/disruption-response-platform/internal/catalog"
	"github.com/shiroonigami23-ui/disruption-response-platform/internal/contracts"
)

// Confidence is fixed per action kind rather than computed: rerouting and
// delaying carry execution risk the rules cannot see, escalation does not.
const (
	confidenceReroute  = 0.90
	confidenceDelay    = 0.85
	confidenceEscalate = 0.95
)

const (
	highPriorityMin    = 8
	mediumPriorityMin  = 4
	lowPriorityMaxWait = 168 // hours; a week of delay escalates even low priority
	defaultDelayHours  = 48
	costPctPerExtraDay = 10.0
)

// AlternativeFinder is the alternative-route query, served by the impact
// analyzer over the shared catalog.
type AlternativeFinder interface {
	AlternativeRoutes(origin, destination string, excludeRouteIDs []string) []contracts.Route
}

// Engine evaluates the per-shipment response rules. It is a pure function of
// its inputs plus read-only reference data: no randomness, no clock, safe for
// unlimited parallel invocation.
type Engine struct {
	catalog      *catalog.Catalog
	alternatives AlternativeFinder
}

func NewEngine(cat *catalog.Catalog, alternatives AlternativeFinder) *Engine {
	return &Engine{catalog: cat, alternatives: alternatives}
}

// Decide picks the action for one shipment. durationHours is the disruption's
// estimated duration; 0 means unspecified. The cascade is ordered and the
// first matching branch wins:
//
//  1. perishable cargo stuck longer than 48h reroutes immediately when it can
//  2. high priority (>= 8): tight tolerance reroutes, tolerable duration
//     delays, anything else reroutes or escalates
//  3. medium priority (4-7): tight tolerance reroutes, tolerable duration
//     delays at zero cost, anything else escalates
//  4. low priority (< 4): delays unless the wait exceeds a week
func (e *Engine) Decide(shipment contracts.Shipment, constraints contracts.OperatorConstraints, durationHours int) (contracts.Decision, error) {
	if err := validateConstraints(constraints); err != nil {
		return contracts.Decision{}, err
	}

	currentRoute, err := e.catalog.RouteByID(shipment.RouteID)
	if err != nil {
		return contracts.Decision{}, err
	}

	alternatives := e.alternatives.AlternativeRoutes(currentRoute.Origin, shipment.Destination, []string{shipment.RouteID})
	canReroute := len(alternatives) > 0 && constraints.AllowReroute

	// Perishable override: spoilage risk trumps the priority tiers.
	if shipment.CargoType == contracts.CargoPerishable && durationHours > 48 && canReroute {
		return e.rerouteDecision(shipment, currentRoute, alternatives,
			"Perishable cargo requires immediate rerouting to prevent spoilage"), nil
	}

	switch {
	case shipment.Priority >= highPriorityMin:
		if shipment.DelayToleranceHours < 24 {
			if canReroute {
				return e.rerouteDecision(shipment, currentRoute, alternatives,
					"High priority shipment with low delay tolerance requires immediate rerouting"), nil
			}
			return escalateDecision(shipment,
				"High priority shipment needs rerouting but no alternatives available"), nil
		}
		if durationHours > 0 && durationHours <= shipment.DelayToleranceHours {
			return delayDecision(shipment, durationHours,
				"High priority shipment can tolerate the expected delay duration"), nil
		}
		if canReroute {
			return e.rerouteDecision(shipment, currentRoute, alternatives,
				"Disruption exceeds delay tolerance, rerouting required"), nil
		}
		return escalateDecision(shipment,
			"Disruption exceeds delay tolerance but no reroute options available"), nil

	case shipment.Priority >= mediumPriorityMin:
		if shipment.DelayToleranceHours < 12 {
			if canReroute {
				return e.rerouteDecision(shipment, currentRoute, alternatives,
					"Medium priority shipment with tight delay tolerance requires rerouting"), nil
			}
			return escalateDecision(shipment,
				"Tight delay tolerance but no reroute options available"), nil
		}
		if durationHours > 0 && durationHours <= shipment.DelayToleranceHours {
			// Delaying in place costs nothing, which is always within the
			// shipment's cost tolerance.
			const delayCostImpact = 0.0
			if delayCostImpact <= shipment.CostIncreaseTolerancePct {
				return delayDecision(shipment, durationHours,
					"Medium priority shipment can absorb delay within cost constraints"), nil
			}
		}
		return escalateDecision(shipment,
			"Delay exceeds tolerance and rerouting may exceed cost constraints"), nil

	default:
		if durationHours > lowPriorityMaxWait {
			return escalateDecision(shipment,
				"Extended delay exceeds acceptable threshold even for low priority"), nil
		}
		delay := durationHours
		if delay == 0 {
			delay = defaultDelayHours
		}
		return delayDecision(shipment, delay,
			"Low priority shipment scheduled for delay until disruption resolves"), nil
	}
}

// rerouteDecision picks the fastest alternative; on equal transit days the
// first one in catalog order wins. Cost impact is estimated at 10% per extra
// transit day over the current route.
func (e *Engine) rerouteDecision(shipment contracts.Shipment, currentRoute contracts.Route, alternatives []contracts.Route, reason string) contracts.Decision {
	best := alternatives[0]
	for _, alt := range alternatives[1:] {
		if alt.EstimatedDays < best.EstimatedDays {
			best = alt
		}
	}

	extraDays := best.EstimatedDays - currentRoute.EstimatedDays
	if extraDays < 0 {
		extraDays = 0
	}
	costImpact := float64(extraDays) * costPctPerExtraDay
	delayHours := extraDays * 24
	altID := best.ID

	return contracts.Decision{
		ShipmentID:          shipment.ID,
		Action:              contracts.ActionReroute,
		Reasoning:           reason,
		EstimatedCostImpact: &costImpact,
		EstimatedDelayHours: &delayHours,
		AlternativeRouteID:  &altID,
		ConfidenceScore:     confidenceReroute,
	}
}

func delayDecision(shipment contracts.Shipment, delayHours int, reason string) contracts.Decision {
	costImpact := 0.0
	return contracts.Decision{
		ShipmentID:          shipment.ID,
		Action:              contracts.ActionDelay,
		Reasoning:           reason,
		EstimatedCostImpact: &costImpact,
		EstimatedDelayHours: &delayHours,
		ConfidenceScore:     confidenceDelay,
	}
}

func escalateDecision(shipment contracts.Shipment, reason string) contracts.Decision {
	return contracts.Decision{
		ShipmentID:      shipment.ID,
		Action:          contracts.ActionEscalate,
		Reasoning:       reason,
		ConfidenceScore: confidenceEscalate,
	}
}

func validateConstraints(constraints contracts.OperatorConstraints) error {
	if constraints.MaxCostIncreasePercent < 0 || constraints.MaxCostIncreasePercent > 100 {
		return fmt.Errorf("max cost increase percent %.2f outside 0-100: %w",
			constraints.MaxCostIncreasePercent, contracts.ErrInvalidInput)
	}
	return nil
}

// ProcessDecisions runs Decide over every affected shipment in input order.
// Nothing is skipped or deduplicated here; a NotFound on any shipment aborts
// the whole batch with no partial result.
func (e *Engine) ProcessDecisions(disruptionID string, affectedShipments []contracts.Shipment, constraints contracts.OperatorConstraints, durationHours int) ([]contracts.Decision, error) {
	if err := validateConstraints(constraints); err != nil {
		return nil, err
	}

	decisions := make([]contracts.Decision, 0, len(affectedShipments))
	for _, shipment := range affectedShipments {
		d, err := e.Decide(shipment, constraints, durationHours)
		if err != nil {
			return nil, fmt.Errorf("disruption %s shipment %s: %w", disruptionID, shipment.ID, err)
		}
		decisions = append(decisions, d)
	}
	return decisions, nil
}
