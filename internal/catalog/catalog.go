package catalog

import (
	"fmt"

	"github.com/shiroonigami23-ui/disruption-response-platform/internal/contracts"
)

// Catalog holds the read-only route and shipment reference data. It is
// constructed once at process start and shared by reference; lookups never
// mutate it, so concurrent use needs no locking.
type Catalog struct {
	routes        []contracts.Route
	shipments     []contracts.Shipment
	routesByID    map[string]contracts.Route
	shipmentsByID map[string]contracts.Shipment
}

func New(routes []contracts.Route, shipments []contracts.Shipment) *Catalog {
	c := &Catalog{
		routes:        routes,
		shipments:     shipments,
		routesByID:    make(map[string]contracts.Route, len(routes)),
		shipmentsByID: make(map[string]contracts.Shipment, len(shipments)),
	}
	for _, r := range routes {
		c.routesByID[r.ID] = r
	}
	for _, s := range shipments {
		c.shipmentsByID[s.ID] = s
	}
	return c
}

// Routes returns all routes in seed order. Callers must not modify the slice.
func (c *Catalog) Routes() []contracts.Route {
	return c.routes
}

func (c *Catalog) Shipments() []contracts.Shipment {
	return c.shipments
}

func (c *Catalog) RouteByID(id string) (contracts.Route, error) {
	r, ok := c.routesByID[id]
	if !ok {
		return contracts.Route{}, fmt.Errorf("route %s: %w", id, contracts.ErrNotFound)
	}
	return r, nil
}

func (c *Catalog) ShipmentByID(id string) (contracts.Shipment, error) {
	s, ok := c.shipmentsByID[id]
	if !ok {
		return contracts.Shipment{}, fmt.Errorf("shipment %s: %w", id, contracts.ErrNotFound)
	}
	return s, nil
}

func (c *Catalog) ShipmentsByRoute(routeID string) []contracts.Shipment {
	matches := make([]contracts.Shipment, 0, 4)
	for _, s := range c.shipments {
		if s.RouteID == routeID {
			matches = append(matches, s)
		}
	}
	return matches
}
