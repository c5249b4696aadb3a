package bids

import (
	"context"
	"time"

	"tourboard/internal/shared/config"
	"tourboard/pkg/logger"
)

// HoldSweeper periodically expires holds whose held_until has passed.
// The engine itself only honors the expiry timestamp; this loop is the
// scheduler that drives it.
type HoldSweeper struct {
	service  Service
	interval time.Duration
	extras   []SweepTask
	stop     chan struct{}
	done     chan struct{}
	log      *logger.Logger
}

// SweepTask is an additional housekeeping job run on every sweep tick.
type SweepTask func(ctx context.Context) error

func NewHoldSweeper(service Service, cfg config.NegotiationConfig) *HoldSweeper {
	return &HoldSweeper{
		service:  service,
		interval: cfg.HoldSweepInterval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		log:      logger.GetDefault(),
	}
}

// AddTask registers an extra job on the sweep schedule. Must be called
// before Start.
func (h *HoldSweeper) AddTask(task SweepTask) {
	h.extras = append(h.extras, task)
}

// Start runs the sweep loop until Stop is called.
func (h *HoldSweeper) Start() {
	go func() {
		defer close(h.done)
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()

		for {
			select {
			case <-h.stop:
				return
			case <-ticker.C:
				h.sweep()
			}
		}
	}()
	h.log.Info("hold sweeper started", "interval", h.interval.String())
}

// Stop signals the loop and waits for the in-flight sweep to finish.
func (h *HoldSweeper) Stop() {
	close(h.stop)
	<-h.done
	h.log.Info("hold sweeper stopped")
}

func (h *HoldSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := h.service.ExpireOverdueHolds(ctx); err != nil {
		h.log.WithError(err).Error("hold sweep failed")
	}

	for _, task := range h.extras {
		if err := task(ctx); err != nil {
			h.log.WithError(err).Error("sweep task failed")
		}
	}
}
