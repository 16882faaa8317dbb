package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldRejectsOverdraft(t *testing.T) {
	w, err := New(1000)
	require.NoError(t, err)

	err = w.Hold(1001)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, int64(1000), w.AvailableCents(), "failed hold must not mutate")
	assert.Equal(t, int64(0), w.HeldCents())
}

func TestHoldCaptureFlow(t *testing.T) {
	w, err := New(5000)
	require.NoError(t, err)

	require.NoError(t, w.Hold(2400))
	assert.Equal(t, int64(2600), w.AvailableCents())
	assert.Equal(t, int64(2400), w.HeldCents())

	require.NoError(t, w.Capture(2400))
	assert.Equal(t, int64(2600), w.AvailableCents())
	assert.Equal(t, int64(0), w.HeldCents())
}

func TestReleaseConservesTotal(t *testing.T) {
	w, err := New(5000)
	require.NoError(t, err)

	require.NoError(t, w.Hold(3000))
	require.NoError(t, w.Release(3000))
	assert.Equal(t, int64(5000), w.AvailableCents())
	assert.Equal(t, int64(0), w.HeldCents())

	assert.ErrorIs(t, w.Release(1), ErrExcessiveRelease)
}

func TestNewRejectsNegative(t *testing.T) {
	_, err := New(-1)
	assert.ErrorIs(t, err, ErrBadAmount)
}
