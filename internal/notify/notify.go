package notify

import (
	"context"
	"fmt"

	"github.com/dmarchuk/flightroster/internal/kafka"
	"github.com/dmarchuk/flightroster/internal/logging"
)

// Sender delivers roster notifications to passengers. The delivery
// channel is the passenger's phone number; actual SMS dispatch is
// stubbed to a log line.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.RosterEvent) error {
	if event.Phone == "" {
		return nil
	}

	var text string
	switch event.Type {
	case kafka.EventPassengerAdded:
		text = fmt.Sprintf("You are booked on flight %s", event.FlightNumber)
	case kafka.EventPassengerRemoved:
		text = fmt.Sprintf("You were removed from flight %s", event.FlightNumber)
	default:
		return nil
	}

	logging.L().Infow("sending notification",
		"phone", event.Phone,
		"flight_number", event.FlightNumber,
		"text", text,
	)
	return nil
}
