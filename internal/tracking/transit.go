package tracking

import (
	"errors"

	"github.com/aishops/ryder/internal/order/domain"
)

var ErrBadStep = errors.New("step must be in (0, 1]")

// Transit interpolates a courier position between origin and destination in
// fixed steps of t. It is a pure state machine; the Courier drives it on a
// timer. The terminal step pins the position to the destination verbatim so
// floating-point drift can never leave the courier short of it.
type Transit struct {
	origin, dest domain.Coordinate
	step         float64
	t            float64
	pos          domain.Coordinate
	done         bool
}

func NewTransit(origin, dest domain.Coordinate, step float64) (*Transit, error) {
	if step <= 0 || step > 1 {
		return nil, ErrBadStep
	}
	return &Transit{origin: origin, dest: dest, step: step, pos: origin}, nil
}

// Advance moves t forward one step, clamped so the final tick lands on t = 1
// exactly. It returns the new position and whether the transit has arrived.
// Advancing after arrival keeps the position at the destination. An origin
// equal to the destination steps through the same tick count and trivially
// stays put.
func (tr *Transit) Advance() (domain.Coordinate, bool) {
	if tr.done {
		return tr.pos, true
	}
	tr.t += tr.step
	if tr.t >= 1 {
		tr.t = 1
		tr.pos = tr.dest
		tr.done = true
		return tr.pos, true
	}
	tr.pos = domain.Coordinate{
		Lat: tr.origin.Lat + (tr.dest.Lat-tr.origin.Lat)*tr.t,
		Lng: tr.origin.Lng + (tr.dest.Lng-tr.origin.Lng)*tr.t,
	}
	return tr.pos, false
}

func (tr *Transit) Position() domain.Coordinate { return tr.pos }

func (tr *Transit) Progress() float64 { return tr.t }

func (tr *Transit) Done() bool { return tr.done }
