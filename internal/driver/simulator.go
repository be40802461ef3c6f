package driver

import (
	"context"
	"math"
	"time"

	"github.com/hebertsb/pizzeria-nova-backend/internal/domain"
	"github.com/hebertsb/pizzeria-nova-backend/internal/logger"
)

// TransitionEngine is the slice of the orders service the simulator
// needs: apply a status change with a driver position.
type TransitionEngine interface {
	Transition(ctx context.Context, orderID string, st domain.Status, loc *domain.LatLng) (*domain.Order, error)
}

type Config struct {
	// Origin is the fixed restaurant location every route starts from.
	Origin domain.LatLng
	// Duration is the total simulated travel time.
	Duration time.Duration
	// Interval is the wall-clock delay between position updates.
	Interval time.Duration
}

// Simulator drives one synthetic delivery leg per launched order:
// linear interpolation from the restaurant to the drop-off, one
// EnRoute transition per step, then a terminal Delivered transition.
//
// A launched run has no per-order cancellation: an order cancelled
// externally while a run is in flight will be overwritten back to
// EnRoute/Delivered (last write wins, same as the rest of the store).
// Process shutdown stops all runs via ctx.
type Simulator struct {
	ctx    context.Context
	engine TransitionEngine
	cfg    Config
}

func NewSimulator(ctx context.Context, engine TransitionEngine, cfg Config) *Simulator {
	return &Simulator{ctx: ctx, engine: engine, cfg: cfg}
}

// Launch starts the delivery leg for orderID ending at dest. It
// returns immediately; the run owns its own goroutine.
func (s *Simulator) Launch(orderID string, dest domain.LatLng) {
	go s.run(orderID, dest)
}

func (s *Simulator) run(orderID string, dest domain.LatLng) {
	steps := s.steps()
	wait := s.cfg.Interval
	if s.cfg.Duration <= 0 {
		// Single immediate jump to the destination.
		wait = 0
	}
	logger.Info("driver simulation started", "order_id", orderID, "steps", steps)

	t := time.NewTimer(wait)
	defer t.Stop()

	for i := 1; i <= steps; i++ {
		select {
		case <-s.ctx.Done():
			logger.Info("driver simulation stopped", "order_id", orderID)
			return
		case <-t.C:
		}

		fraction := float64(i) / float64(steps)
		pos := interpolate(s.cfg.Origin, dest, fraction)
		if _, err := s.engine.Transition(s.ctx, orderID, domain.StatusEnRoute, &pos); err != nil {
			logger.Warn("driver simulation aborted", "order_id", orderID, "step", i, "err", err)
			return
		}
		t.Reset(wait)
	}

	if _, err := s.engine.Transition(s.ctx, orderID, domain.StatusDelivered, &dest); err != nil {
		logger.Warn("driver simulation could not deliver", "order_id", orderID, "err", err)
		return
	}
	logger.Info("driver simulation finished", "order_id", orderID)
}

// steps = max(1, round(duration / interval)).
func (s *Simulator) steps() int {
	if s.cfg.Duration <= 0 || s.cfg.Interval <= 0 {
		return 1
	}
	n := int(math.Round(float64(s.cfg.Duration) / float64(s.cfg.Interval)))
	if n < 1 {
		return 1
	}
	return n
}

// interpolate moves each axis independently along the straight line
// between a and b. fraction >= 1 returns b exactly so the final step
// carries no float residue.
func interpolate(a, b domain.LatLng, fraction float64) domain.LatLng {
	if fraction >= 1 {
		return b
	}
	return domain.LatLng{
		Latitude:  a.Latitude + (b.Latitude-a.Latitude)*fraction,
		Longitude: a.Longitude + (b.Longitude-a.Longitude)*fraction,
	}
}
