package channel

import (
	"context"
	"log/slog"
)

// SimulatedSMSSender logs messages instead of sending them. It stands in for
// a real gateway in development and test deployments.
type SimulatedSMSSender struct {
	log *slog.Logger
}

// NewSimulatedSMSSender creates a simulated SMS gateway. A nil logger
// discards output.
func NewSimulatedSMSSender(log *slog.Logger) *SimulatedSMSSender {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &SimulatedSMSSender{log: log}
}

func (s *SimulatedSMSSender) SendSMS(ctx context.Context, phone, text string) error {
	s.log.InfoContext(ctx, "simulated sms", "phone", phone, "length", len(text))
	return nil
}
