package catalog

import "github.com/shiroonigami23-ui/disruption-response-platform/internal/contracts"

// Default returns the catalog seeded with the standing route network and the
// shipments currently in transit on it.
func Default() *Catalog {
	return New(seedRoutes(), seedShipments())
}

func seedRoutes() []contracts.Route {
	return []contracts.Route{
		{ID: "ROUTE-001", Name: "Chennai to Singapore", Origin: "Chennai", Destination: "Singapore", ViaPoints: []string{"Colombo"}, EstimatedDays: 7, IsActive: true},
		{ID: "ROUTE-002", Name: "Chennai to Dubai", Origin: "Chennai", Destination: "Dubai", ViaPoints: []string{"Mumbai"}, EstimatedDays: 10, IsActive: true},
		{ID: "ROUTE-003", Name: "Singapore to Los Angeles", Origin: "Singapore", Destination: "Los Angeles", ViaPoints: []string{"Tokyo"}, EstimatedDays: 18, IsActive: true},
		{ID: "ROUTE-004", Name: "Rotterdam to Mumbai", Origin: "Rotterdam", Destination: "Mumbai", ViaPoints: []string{"Suez Canal", "Jeddah"}, EstimatedDays: 21, IsActive: true},
		{ID: "ROUTE-005", Name: "Chennai to Hong Kong", Origin: "Chennai", Destination: "Hong Kong", ViaPoints: []string{"Singapore"}, EstimatedDays: 12, IsActive: true},
		{ID: "ROUTE-006", Name: "Shanghai to San Francisco", Origin: "Shanghai", Destination: "San Francisco", ViaPoints: []string{}, EstimatedDays: 16, IsActive: true},
		{ID: "ROUTE-007", Name: "Hamburg to Singapore", Origin: "Hamburg", Destination: "Singapore", ViaPoints: []string{"Suez Canal", "Colombo"}, EstimatedDays: 24, IsActive: true},
		{ID: "ROUTE-008", Name: "London to Chennai", Origin: "London", Destination: "Chennai", ViaPoints: []string{"Suez Canal"}, EstimatedDays: 20, IsActive: true},
		{ID: "ROUTE-009", Name: "Rotterdam to New York", Origin: "Rotterdam", Destination: "New York", ViaPoints: []string{}, EstimatedDays: 8, IsActive: true},
		{ID: "ROUTE-010", Name: "Rotterdam to Shanghai", Origin: "Rotterdam", Destination: "Shanghai", ViaPoints: []string{"Suez Canal", "Singapore"}, EstimatedDays: 28, IsActive: true},
	}
}

func seedShipments() []contracts.Shipment {
	return []contracts.Shipment{
		{ID: "SHIP-001", RouteID: "ROUTE-001", CargoType: contracts.CargoPerishable, Priority: 9, DelayToleranceHours: 24, CostIncreaseTolerancePct: 30.0, Destination: "Singapore"},
		{ID: "SHIP-002", RouteID: "ROUTE-001", CargoType: contracts.CargoStandard, Priority: 5, DelayToleranceHours: 72, CostIncreaseTolerancePct: 15.0, Destination: "Singapore"},
		{ID: "SHIP-003", RouteID: "ROUTE-002", CargoType: contracts.CargoBulk, Priority: 3, DelayToleranceHours: 168, CostIncreaseTolerancePct: 10.0, Destination: "Dubai"},
		{ID: "SHIP-004", RouteID: "ROUTE-003", CargoType: contracts.CargoPerishable, Priority: 10, DelayToleranceHours: 12, CostIncreaseTolerancePct: 50.0, Destination: "Los Angeles"},
		{ID: "SHIP-005", RouteID: "ROUTE-004", CargoType: contracts.CargoHazardous, Priority: 8, DelayToleranceHours: 48, CostIncreaseTolerancePct: 20.0, Destination: "Mumbai"},
		{ID: "SHIP-006", RouteID: "ROUTE-005", CargoType: contracts.CargoStandard, Priority: 6, DelayToleranceHours: 96, CostIncreaseTolerancePct: 18.0, Destination: "Hong Kong"},
		{ID: "SHIP-007", RouteID: "ROUTE-003", CargoType: contracts.CargoStandard, Priority: 4, DelayToleranceHours: 120, CostIncreaseTolerancePct: 12.0, Destination: "Los Angeles"},
		{ID: "SHIP-008", RouteID: "ROUTE-004", CargoType: contracts.CargoPerishable, Priority: 9, DelayToleranceHours: 36, CostIncreaseTolerancePct: 35.0, Destination: "Mumbai"},
		{ID: "SHIP-009", RouteID: "ROUTE-006", CargoType: contracts.CargoBulk, Priority: 2, DelayToleranceHours: 240, CostIncreaseTolerancePct: 8.0, Destination: "San Francisco"},
		{ID: "SHIP-010", RouteID: "ROUTE-007", CargoType: contracts.CargoStandard, Priority: 7, DelayToleranceHours: 60, CostIncreaseTolerancePct: 22.0, Destination: "Singapore"},
	}
}
