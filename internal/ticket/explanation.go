package ticket

import (
	"fmt"
	"strings"

	"github.com/shiroonigami23-ui/disruption-response-platform/internal/contracts"
)

// renderExplanation produces the operator-facing narrative for a decision.
// altRoute is only set for reroute decisions.
func renderExplanation(decision contracts.Decision, shipment contracts.Shipment, altRoute *contracts.Route) string {
	switch decision.Action {
	case contracts.ActionReroute:
		return rerouteExplanation(decision, shipment, altRoute)
	case contracts.ActionDelay:
		return delayExplanation(decision, shipment)
	default:
		return escalateExplanation(decision, shipment)
	}
}

func rerouteExplanation(decision contracts.Decision, shipment contracts.Shipment, altRoute *contracts.Route) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Decision: Reroute Shipment %s**\n\n", shipment.ID)
	fmt.Fprintf(&b, "We have decided to reroute this shipment because %s.\n\n", strings.ToLower(decision.Reasoning))
	writeShipmentDetails(&b, shipment)

	if altRoute != nil {
		fmt.Fprintf(&b, "**Alternative Route:**\n")
		fmt.Fprintf(&b, "- Route: %s\n", altRoute.Name)
		fmt.Fprintf(&b, "- Estimated Duration: %d days\n", altRoute.EstimatedDays)
		if decision.EstimatedCostImpact != nil {
			fmt.Fprintf(&b, "- Estimated Cost Impact: +%.1f%%\n", *decision.EstimatedCostImpact)
		}
		if decision.EstimatedDelayHours != nil {
			fmt.Fprintf(&b, "- Additional Delay: %d hours\n", *decision.EstimatedDelayHours)
		}
		b.WriteString("\n")
	}

	b.WriteString("**Action Required:**\n" +
		"1. Coordinate with logistics team to redirect shipment\n" +
		"2. Update customer with new ETA\n" +
		"3. Arrange alternative route documentation\n" +
		"4. Monitor shipment progress on new route")
	return b.String()
}

func delayExplanation(decision contracts.Decision, shipment contracts.Shipment) string {
	delayHours := 0
	if decision.EstimatedDelayHours != nil {
		delayHours = *decision.EstimatedDelayHours
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Decision: Delay Shipment %s**\n\n", shipment.ID)
	fmt.Fprintf(&b, "We have decided to delay this shipment because %s.\n\n", strings.ToLower(decision.Reasoning))
	fmt.Fprintf(&b, "**Shipment Details:**\n")
	fmt.Fprintf(&b, "- Priority: %d/10\n", shipment.Priority)
	fmt.Fprintf(&b, "- Cargo Type: %s\n", titleCase(string(shipment.CargoType)))
	fmt.Fprintf(&b, "- Delay Tolerance: %d hours\n", shipment.DelayToleranceHours)
	fmt.Fprintf(&b, "- Expected Delay: %d hours\n\n", delayHours)
	fmt.Fprintf(&b, "**Rationale:**\n")
	fmt.Fprintf(&b, "The expected delay of %d hours is within the shipment's tolerance of %d hours. "+
		"This is the most cost-effective option with minimal impact on delivery commitments.\n\n",
		delayHours, shipment.DelayToleranceHours)
	b.WriteString("**Action Required:**\n" +
		"1. Notify customer of expected delay\n" +
		"2. Update ETA in tracking system\n" +
		"3. Monitor disruption status for changes\n" +
		"4. Prepare contingency if delay extends")
	return b.String()
}

func escalateExplanation(decision contracts.Decision, shipment contracts.Shipment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Decision: Escalate Shipment %s**\n\n", shipment.ID)
	fmt.Fprintf(&b, "This shipment requires management review because %s.\n\n", strings.ToLower(decision.Reasoning))
	writeShipmentDetails(&b, shipment)
	b.WriteString("**Why Escalation:**\n" +
		"This situation requires human judgment as it involves complex trade-offs between " +
		"cost, timing, and operational constraints that exceed automated decision parameters.\n\n")
	b.WriteString("**Action Required:**\n" +
		"1. Escalate to logistics manager immediately\n" +
		"2. Prepare detailed impact analysis\n" +
		"3. Contact customer for priority clarification\n" +
		"4. Explore custom solutions with partners")
	return b.String()
}

func writeShipmentDetails(b *strings.Builder, shipment contracts.Shipment) {
	fmt.Fprintf(b, "**Shipment Details:**\n")
	fmt.Fprintf(b, "- Priority: %d/10\n", shipment.Priority)
	fmt.Fprintf(b, "- Cargo Type: %s\n", titleCase(string(shipment.CargoType)))
	fmt.Fprintf(b, "- Delay Tolerance: %d hours\n", shipment.DelayToleranceHours)
	fmt.Fprintf(b, "- Cost Tolerance: %.0f%%\n", shipment.CostIncreaseTolerancePct)
	b.WriteString("\n")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
