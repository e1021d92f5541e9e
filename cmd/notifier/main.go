package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shiroonigami23-ui/disruption-response-platform/internal/config"
	"github.com/shiroonigami23-ui/disruption-response-platform/internal/contracts"
	"github.com/shiroonigami23-ui/disruption-response-platform/internal/mq"
)

// The notifier tails the ticket event stream and surfaces operator-facing
// notifications. Escalations are called out loudly since they need a human.
func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := mq.NewReader(cfg.KafkaBrokers, cfg.KafkaTopicTickets, cfg.ConsumerGroupPrefix+"-notifier")
	defer reader.Close()

	log.Printf("notifier consuming %s", cfg.KafkaTopicTickets)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Println("notifier shutting down")
				return
			}
			log.Printf("notifier read error: %v", err)
			time.Sleep(500 * time.Millisecond)
			continue
		}

		event, err := mq.ParseMessageJSON[contracts.TicketEvent](msg)
		if err != nil {
			log.Printf("notifier decode event error: %v", err)
			continue
		}

		switch event.Type {
		case contracts.TicketEventCreated:
			if event.Action == contracts.ActionEscalate {
				log.Printf("ESCALATION %s: shipment %s on disruption %s needs manager review",
					event.TicketID, event.ShipmentID, event.DisruptionID)
				continue
			}
			log.Printf("ticket %s created: %s shipment %s (disruption %s)",
				event.TicketID, event.Action, event.ShipmentID, event.DisruptionID)
		case contracts.TicketEventStatusChanged:
			log.Printf("ticket %s moved to %s", event.TicketID, event.Status)
		default:
			log.Printf("notifier unknown event type %q", event.Type)
		}
	}
}
