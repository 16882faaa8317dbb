package wallet

import "errors"

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBadAmount         = errors.New("amount must be non-negative")
	ErrExcessiveRelease  = errors.New("release exceeds held balance")
)

// Wallet tracks a session's demo balance with escrow-style holds: checkout
// moves funds from available to held, delivery acknowledgment captures the
// held amount, and an abandoned order releases it back. Available + Held is
// conserved by Hold and Release.
type Wallet struct {
	availableCents int64
	heldCents      int64
}

func New(availableCents int64) (*Wallet, error) {
	if availableCents < 0 {
		return nil, ErrBadAmount
	}
	return &Wallet{availableCents: availableCents}, nil
}

func (w *Wallet) AvailableCents() int64 { return w.availableCents }
func (w *Wallet) HeldCents() int64      { return w.heldCents }

// Hold reserves amount from the available balance. It fails without mutation
// when the balance does not cover it.
func (w *Wallet) Hold(amount int64) error {
	if amount < 0 {
		return ErrBadAmount
	}
	if w.availableCents < amount {
		return ErrInsufficientFunds
	}
	w.availableCents -= amount
	w.heldCents += amount
	return nil
}

// Capture finalizes a held amount, burning it from the wallet.
func (w *Wallet) Capture(amount int64) error {
	if amount < 0 {
		return ErrBadAmount
	}
	if w.heldCents < amount {
		return ErrExcessiveRelease
	}
	w.heldCents -= amount
	return nil
}

// Release returns a held amount to the available balance.
func (w *Wallet) Release(amount int64) error {
	if amount < 0 {
		return ErrBadAmount
	}
	if w.heldCents < amount {
		return ErrExcessiveRelease
	}
	w.heldCents -= amount
	w.availableCents += amount
	return nil
}
