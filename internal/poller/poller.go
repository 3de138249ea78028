// Package poller runs the scheduled order and shipment sweeps. Each tick
// covers the rolling lookback window; the pipelines' idempotency guards make
// overlapping windows safe.
package poller

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// OrderSyncer pulls orders from the hub. A zero start time means "use the
// rolling lookback window".
type OrderSyncer interface {
	SyncOrders(ctx context.Context, start time.Time) error
}

// ShipmentSyncer pulls shipments from the hub.
type ShipmentSyncer interface {
	SyncShipments(ctx context.Context, start time.Time) error
}

type Poller struct {
	orders    OrderSyncer
	shipments ShipmentSyncer
	interval  time.Duration
	logger    *zap.Logger
}

// New creates a poller ticking at the given interval.
func New(orders OrderSyncer, shipments ShipmentSyncer, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Poller{
		orders:    orders,
		shipments: shipments,
		interval:  interval,
		logger:    logger,
	}
}

// Run blocks until the context is cancelled, sweeping orders then shipments
// every tick. The first sweep runs immediately.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Poller stopped")
			return
		case <-ticker.C:
			p.sweep(ctx)
		}
	}
}

func (p *Poller) sweep(ctx context.Context) {
	p.logger.Info("Starting scheduled sweep")
	if err := p.orders.SyncOrders(ctx, time.Time{}); err != nil {
		p.logger.Error("Order sweep failed", zap.Error(err))
	}
	if err := p.shipments.SyncShipments(ctx, time.Time{}); err != nil {
		p.logger.Error("Shipment sweep failed", zap.Error(err))
	}
	p.logger.Info("Finished scheduled sweep")
}
