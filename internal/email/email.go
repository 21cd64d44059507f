package email

import (
	"context"

	"github.com/skyfarehq/skyfare/internal/kafka"
	"github.com/skyfarehq/skyfare/pkg/logger"
	"go.uber.org/zap"
)

// Sender delivers booking notifications. The current implementation only
// logs the message; wiring an SMTP provider is a deployment concern.
type Sender struct {
	log *zap.Logger
}

func NewSender() *Sender {
	return &Sender{log: logger.WithComponent("email")}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.Info("sending booking notification",
		zap.String("to", event.PassengerEmail),
		zap.String("type", event.Type),
		zap.String("pnr", event.PNR),
		zap.String("seat", event.SeatNumber),
	)
	return nil
}
