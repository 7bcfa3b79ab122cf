package contract

import (
	"context"

	"github.com/rs/zerolog"
)

// Notifier receives contract milestones. The default implementation logs
// them; a real deployment can plug in mail or messaging.
type Notifier interface {
	ContractOpened(ctx context.Context, c *Contract)
	PaymentDecided(ctx context.Context, c *Contract, p *Payment)
}

type logNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) Notifier {
	return &logNotifier{log: log}
}

func (n *logNotifier) ContractOpened(_ context.Context, c *Contract) {
	n.log.Info().
		Str("contract_id", c.ID).
		Str("vehicle_id", c.VehicleID).
		Str("customer_id", c.CustomerID).
		Str("kind", string(c.Kind)).
		Float64("amount", c.Amount).
		Msg("contract opened")
}

func (n *logNotifier) PaymentDecided(_ context.Context, c *Contract, p *Payment) {
	n.log.Info().
		Str("contract_id", c.ID).
		Str("payment_id", p.ID).
		Str("decision", string(p.Status)).
		Msg("payment decided")
}
