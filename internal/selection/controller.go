// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package selection

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/soundtrail/internal/logging"
	"github.com/tomtom215/soundtrail/internal/render"
	"github.com/tomtom215/soundtrail/internal/store"
)

// Publisher receives every new snapshot and every applied drag frame.
// Implementations must not block.
type Publisher interface {
	PublishSnapshot(snap *Snapshot)
	PublishFrame(frame Frame)
}

// Status is a point-in-time summary for health checks.
type Status struct {
	State     DatasetState `json:"state"`
	Records   int          `json:"records"`
	Version   uint64       `json:"version"`
	Dragging  bool         `json:"dragging"`
	LoadedAt  time.Time    `json:"loaded_at,omitempty"`
	LoadError string       `json:"load_error,omitempty"`
}

type result struct {
	value any
	err   error
}

type command struct {
	ctx   context.Context
	fn    func(ctx context.Context, d *Dashboard) (any, error)
	reply chan result
}

// Controller owns a Dashboard and runs every command against it on a
// single goroutine. It implements suture.Service.
type Controller struct {
	dash   *Dashboard
	cmds   chan command
	logger zerolog.Logger

	mu        sync.RWMutex
	publisher Publisher
	// stopped is closed when Serve returns and replaced when it starts again.
	stopped chan struct{}
}

// NewController wraps dash. Commands block until Serve is running and fail
// with ErrControllerStopped once it has returned.
func NewController(dash *Dashboard) *Controller {
	return &Controller{
		dash:    dash,
		cmds:    make(chan command, 64),
		logger:  logging.WithComponent("selection-controller"),
		stopped: make(chan struct{}),
	}
}

// SetPublisher installs p. Passing nil disables publishing.
func (c *Controller) SetPublisher(p Publisher) {
	c.mu.Lock()
	c.publisher = p
	c.mu.Unlock()
}

func (c *Controller) getPublisher() Publisher {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.publisher
}

func (c *Controller) stoppedChan() <-chan struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stopped
}

// Serve runs the command loop until ctx is canceled.
func (c *Controller) Serve(ctx context.Context) error {
	c.mu.Lock()
	select {
	case <-c.stopped:
		c.stopped = make(chan struct{})
	default:
	}
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		close(c.stopped)
		c.mu.Unlock()
		// Queued callers see stopped and return ErrControllerStopped.
		for {
			select {
			case <-c.cmds:
			default:
				return
			}
		}
	}()

	c.logger.Info().Msg("Selection controller started")
	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("Selection controller stopped")
			return ctx.Err()
		case cmd := <-c.cmds:
			c.handle(cmd)
		}
	}
}

// String implements fmt.Stringer for suture logging.
func (c *Controller) String() string {
	return "selection-controller"
}

func (c *Controller) handle(cmd command) {
	if err := cmd.ctx.Err(); err != nil {
		cmd.reply <- result{err: err}
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().Interface("panic", r).Msg("Selection command panicked")
			cmd.reply <- result{err: fmt.Errorf("selection command panicked: %v", r)}
		}
	}()
	v, err := cmd.fn(cmd.ctx, c.dash)
	cmd.reply <- result{value: v, err: err}
}

// call sends fn to the command loop and waits for its result.
func call[T any](ctx context.Context, c *Controller, fn func(ctx context.Context, d *Dashboard) (T, error)) (T, error) {
	var zero T
	cmd := command{
		ctx: ctx,
		fn: func(ctx context.Context, d *Dashboard) (any, error) {
			return fn(ctx, d)
		},
		reply: make(chan result, 1),
	}
	stopped := c.stoppedChan()
	select {
	case <-stopped:
		return zero, ErrControllerStopped
	default:
	}

	select {
	case c.cmds <- cmd:
	case <-stopped:
		return zero, ErrControllerStopped
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	var res result
	select {
	case res = <-cmd.reply:
	case <-stopped:
		// The loop may have answered just before it returned.
		select {
		case res = <-cmd.reply:
		default:
			return zero, ErrControllerStopped
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
	if res.err != nil {
		return zero, res.err
	}
	v, _ := res.value.(T)
	return v, nil
}

func (c *Controller) publishSnapshot(snap *Snapshot) {
	if p := c.getPublisher(); p != nil && snap != nil {
		p.PublishSnapshot(snap)
	}
}

// Snapshot returns the current snapshot in any dataset state.
func (c *Controller) Snapshot(ctx context.Context) (*Snapshot, error) {
	return call(ctx, c, func(_ context.Context, d *Dashboard) (*Snapshot, error) {
		return d.Snapshot(), nil
	})
}

// Years returns the distinct years of the dataset.
func (c *Controller) Years(ctx context.Context) ([]int, error) {
	return call(ctx, c, func(_ context.Context, d *Dashboard) ([]int, error) {
		return d.Years()
	})
}

// SelectYear makes year the coarse window.
func (c *Controller) SelectYear(ctx context.Context, year int) (*Snapshot, error) {
	return call(ctx, c, func(ctx context.Context, d *Dashboard) (*Snapshot, error) {
		snap, err := d.SelectYear(ctx, year)
		if err == nil {
			c.publishSnapshot(snap)
		}
		return snap, err
	})
}

// RangeResult is the result of ApplyRange.
type RangeResult struct {
	Snapshot *Snapshot
	Swapped  bool
}

// ApplyRange makes the typed dates the coarse window.
func (c *Controller) ApplyRange(ctx context.Context, start, end string) (*Snapshot, bool, error) {
	res, err := call(ctx, c, func(ctx context.Context, d *Dashboard) (RangeResult, error) {
		snap, swapped, err := d.ApplyRange(ctx, start, end)
		if err != nil {
			return RangeResult{}, err
		}
		c.publishSnapshot(snap)
		return RangeResult{Snapshot: snap, Swapped: swapped}, nil
	})
	if err != nil {
		return nil, false, err
	}
	return res.Snapshot, res.Swapped, nil
}

// Drag feeds one pointer event to the drag state machine.
func (c *Controller) Drag(ctx context.Context, ev Event) (DragResult, error) {
	return call(ctx, c, func(ctx context.Context, d *Dashboard) (DragResult, error) {
		res, err := d.HandleDrag(ctx, ev)
		if err != nil {
			return res, err
		}
		if res.Frame != nil {
			if p := c.getPublisher(); p != nil {
				p.PublishFrame(*res.Frame)
			}
		}
		c.publishSnapshot(res.Snapshot)
		return res, nil
	})
}

// SetWidths records reported container widths and re-renders when ready.
func (c *Controller) SetWidths(ctx context.Context, widths map[render.Region]int) (*Snapshot, error) {
	return call(ctx, c, func(_ context.Context, d *Dashboard) (*Snapshot, error) {
		before := d.Snapshot().Version
		snap := d.SetWidths(widths)
		if snap.Version != before {
			c.publishSnapshot(snap)
		}
		return snap, nil
	})
}

// Loaded installs the loaded dataset.
func (c *Controller) Loaded(ctx context.Context, st *store.Store, src store.WindowSource) (*Snapshot, error) {
	return call(ctx, c, func(ctx context.Context, d *Dashboard) (*Snapshot, error) {
		snap, err := d.Load(ctx, st, src)
		if err != nil {
			return nil, err
		}
		c.logger.Info().
			Int("records", d.RecordCount()).
			Int("year", snap.Year).
			Msg("Dataset ready")
		c.publishSnapshot(snap)
		return snap, nil
	})
}

// Failed marks the dataset unavailable.
func (c *Controller) Failed(ctx context.Context, loadErr error) (*Snapshot, error) {
	return call(ctx, c, func(_ context.Context, d *Dashboard) (*Snapshot, error) {
		snap := d.Fail(loadErr)
		c.logger.Error().Err(loadErr).Msg("Dataset unavailable")
		c.publishSnapshot(snap)
		return snap, nil
	})
}

// Status returns a summary for health checks.
func (c *Controller) Status(ctx context.Context) (Status, error) {
	return call(ctx, c, func(_ context.Context, d *Dashboard) (Status, error) {
		s := Status{
			State:    d.State(),
			Records:  d.RecordCount(),
			Version:  d.Snapshot().Version,
			Dragging: d.Dragging(),
			LoadedAt: d.LoadedAt(),
		}
		if err := d.LoadError(); err != nil {
			s.LoadError = err.Error()
		}
		return s, nil
	})
}
