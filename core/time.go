// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"time"
)

// NewTime creates a new time service
func NewTime(cfg TimeConfiguration) *Time {
	var interval time.Duration
	if cfg.EventPollDelay <= 0 {
		interval = time.Nanosecond
	} else {
		interval = time.Duration(cfg.EventPollDelay) * time.Millisecond
	}

	return &Time{
		eventPollDelay: cfg.EventPollDelay,
		eventTicker:    time.NewTicker(interval),
	}
}

// Time contains the time services used by the event loop
type Time struct {
	eventPollDelay int
	eventTicker    *time.Ticker
}

// EventPollDelay gets the configured delay between event polls
func (t *Time) EventPollDelay() int {
	return t.eventPollDelay
}

// EventTicker gets the initialized event ticker for the event loop
func (t *Time) EventTicker() *time.Ticker {
	return t.eventTicker
}

// Stop stops the tickers
func (t *Time) Stop() {
	t.eventTicker.Stop()
}
