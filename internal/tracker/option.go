package tracker

import (
	"bufio"
	"io"
	"time"
)

// Option is a functional option for configuring a Tracker.
type Option func(*Tracker)

// WithInput sets where prompts read answers from.
func WithInput(r io.Reader) Option {
	return func(t *Tracker) {
		t.in = bufio.NewReader(r)
	}
}

// WithOutput sets where the menu and reports are written.
func WithOutput(w io.Writer) Option {
	return func(t *Tracker) {
		t.out = w
	}
}

// WithCurrency sets the symbol printed before amounts.
func WithCurrency(symbol string) Option {
	return func(t *Tracker) {
		t.currency = symbol
	}
}

// WithPlotter sets how the category chart is shown.
func WithPlotter(p Plotter) Option {
	return func(t *Tracker) {
		t.plotter = p
	}
}

// WithClock sets the time source used to stamp new expenses.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}
