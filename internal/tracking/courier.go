package tracking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aishops/ryder/internal/order/domain"
)

type Config struct {
	ProcessingDelay time.Duration
	TickInterval    time.Duration
	Step            float64
}

func DefaultConfig() Config {
	return Config{
		ProcessingDelay: 2 * time.Second,
		TickInterval:    100 * time.Millisecond,
		Step:            0.02,
	}
}

// Update is one observed state of the simulated delivery.
type Update struct {
	Status   domain.Status
	Position domain.Coordinate
	Progress float64
}

// Courier drives an order's simulated transit: a fixed processing delay, then
// one Advance per tick until arrival. A single goroutine owns the ticker and
// all transitions, so updates are strictly ordered and monotonic in t, and the
// terminal tick is never skipped. Stop cancels pending timers and does not
// return until the goroutine has exited, so no notification fires after Stop.
type Courier struct {
	log    *slog.Logger
	cfg    Config
	notify func(Update)
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	status  domain.Status
	transit *Transit
}

// StartCourier begins the simulation for an order already in the created
// state. notify is called from the driver goroutine, in tick order; it must
// not block for long.
func StartCourier(ctx context.Context, log *slog.Logger, cfg Config, origin, dest domain.Coordinate, notify func(Update)) (*Courier, error) {
	transit, err := NewTransit(origin, dest, cfg.Step)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	c := &Courier{
		log:     log,
		cfg:     cfg,
		notify:  notify,
		cancel:  cancel,
		done:    make(chan struct{}),
		status:  domain.StatusProcessing,
		transit: transit,
	}
	go c.run(ctx)
	return c, nil
}

func (c *Courier) run(ctx context.Context) {
	defer close(c.done)

	c.emit()

	delay := time.NewTimer(c.cfg.ProcessingDelay)
	defer delay.Stop()
	select {
	case <-ctx.Done():
		return
	case <-delay.C:
	}

	c.mu.Lock()
	c.status = domain.StatusInTransit
	c.mu.Unlock()
	c.emit()

	tick := time.NewTicker(c.cfg.TickInterval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			c.mu.Lock()
			_, arrived := c.transit.Advance()
			if arrived {
				c.status = domain.StatusDelivered
			}
			c.mu.Unlock()
			c.emit()
			if arrived {
				c.log.Info("courier arrived")
				return
			}
		}
	}
}

func (c *Courier) emit() {
	if c.notify == nil {
		return
	}
	c.notify(c.Snapshot())
}

// Snapshot returns the current status and position.
func (c *Courier) Snapshot() Update {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Update{
		Status:   c.status,
		Position: c.transit.Position(),
		Progress: c.transit.Progress(),
	}
}

// Stop cancels any pending timer and waits for the driver goroutine to exit.
// Safe to call more than once, and after natural arrival.
func (c *Courier) Stop() {
	c.cancel()
	<-c.done
}

// Done is closed when the driver goroutine has exited, either by arrival or
// by Stop.
func (c *Courier) Done() <-chan struct{} {
	return c.done
}
