package impact

import (
	"context"
	"strings"

	"github.com/shiroonigami23-ui/disruption-response-platform/internal/catalog"
	"github.com/shiroonigami23-ui/disruption-response-platform/internal/contracts"
)

const highPriorityThreshold = 8

// DisruptionSource resolves a disruption by id, returning an error wrapping
// contracts.ErrNotFound when the id does not exist.
type DisruptionSource interface {
	DisruptionByID(ctx context.Context, id string) (contracts.Disruption, error)
}

// Analyzer matches a disruption against the route network and scores the
// blast radius. It is read-only over shared reference data and safe for
// concurrent use.
type Analyzer struct {
	disruptions DisruptionSource
	catalog     *catalog.Catalog
}

func NewAnalyzer(disruptions DisruptionSource, cat *catalog.Catalog) *Analyzer {
	return &Analyzer{disruptions: disruptions, catalog: cat}
}

// Analyze computes which routes and shipments a disruption touches and a
// severity score on a 0-10 scale. Route matching is a textual heuristic over
// the disruption's free-form location: origin or destination appearing in the
// location, the location appearing in the route name, or any via point
// appearing in the location. "Pacific" anywhere in the location counts as a
// hit on the "Pacific Ocean" via point. The containment checks are
// case-sensitive on purpose; changing them changes which routes match.
func (a *Analyzer) Analyze(ctx context.Context, disruptionID string) (contracts.ImpactAnalysis, error) {
	disruption, err := a.disruptions.DisruptionByID(ctx, disruptionID)
	if err != nil {
		return contracts.ImpactAnalysis{}, err
	}

	affectedRoutes := make([]contracts.Route, 0, 4)
	affectedRouteIDs := make(map[string]struct{})
	for _, route := range a.catalog.Routes() {
		if routeAffected(route, disruption.Location) {
			affectedRoutes = append(affectedRoutes, route)
			affectedRouteIDs[route.ID] = struct{}{}
		}
	}

	affectedShipments := make([]contracts.Shipment, 0, 8)
	highPriority := 0
	for _, shipment := range a.catalog.Shipments() {
		if _, ok := affectedRouteIDs[shipment.RouteID]; !ok {
			continue
		}
		affectedShipments = append(affectedShipments, shipment)
		if shipment.Priority >= highPriorityThreshold {
			highPriority++
		}
	}

	return contracts.ImpactAnalysis{
		DisruptionID:           disruptionID,
		AffectedRoutes:         affectedRoutes,
		AffectedShipments:      affectedShipments,
		TotalShipmentsImpacted: len(affectedShipments),
		HighPriorityCount:      highPriority,
		SeverityScore:          severityScore(disruption.Severity, len(affectedShipments), highPriority),
	}, nil
}

func routeAffected(route contracts.Route, location string) bool {
	viaMatch := false
	for _, point := range route.ViaPoints {
		if strings.Contains(location, point) {
			viaMatch = true
			break
		}
	}
	if !viaMatch && strings.Contains(location, "Pacific") {
		for _, point := range route.ViaPoints {
			if point == "Pacific Ocean" {
				viaMatch = true
				break
			}
		}
	}

	return strings.Contains(location, route.Origin) ||
		strings.Contains(location, route.Destination) ||
		strings.Contains(route.Name, location) ||
		viaMatch
}

// severityScore combines the disruption's declared severity with how many
// shipments it touches and how many of those are high priority.
func severityScore(severity contracts.Severity, shipmentCount, highPriorityCount int) float64 {
	base := 5.0
	switch severity {
	case contracts.SeverityLow:
		base = 2.0
	case contracts.SeverityMedium:
		base = 5.0
	case contracts.SeverityHigh:
		base = 7.5
	case contracts.SeverityCritical:
		base = 9.0
	}

	shipmentMultiplier := 1.0
	if shipmentCount > 10 {
		shipmentMultiplier = 1.5
	} else if shipmentCount > 5 {
		shipmentMultiplier = 1.3
	}

	priorityMultiplier := 1.0
	if highPriorityCount > 0 {
		priorityMultiplier = 1.0 + float64(highPriorityCount)*0.1
	}

	return clamp(base*shipmentMultiplier*priorityMultiplier, 0, 10.0)
}

// AlternativeRoutes returns every active route with the exact origin and
// destination, excluding the given route ids. An empty result is valid and
// means no viable alternative exists.
func (a *Analyzer) AlternativeRoutes(origin, destination string, excludeRouteIDs []string) []contracts.Route {
	excluded := make(map[string]struct{}, len(excludeRouteIDs))
	for _, id := range excludeRouteIDs {
		excluded[id] = struct{}{}
	}

	alternatives := make([]contracts.Route, 0, 2)
	for _, route := range a.catalog.Routes() {
		if _, skip := excluded[route.ID]; skip {
			continue
		}
		if route.Origin == origin && route.Destination == destination && route.IsActive {
			alternatives = append(alternatives, route)
		}
	}
	return alternatives
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
