// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package selection

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/soundtrail/internal/analytics"
	"github.com/tomtom215/soundtrail/internal/cache"
	"github.com/tomtom215/soundtrail/internal/calendar"
	"github.com/tomtom215/soundtrail/internal/config"
	"github.com/tomtom215/soundtrail/internal/logging"
	"github.com/tomtom215/soundtrail/internal/metrics"
	"github.com/tomtom215/soundtrail/internal/models"
	"github.com/tomtom215/soundtrail/internal/render"
	"github.com/tomtom215/soundtrail/internal/store"
	"github.com/tomtom215/soundtrail/internal/timeutil"
)

// DatasetState is the load state of the dataset.
type DatasetState string

// Dataset states.
const (
	DatasetLoading DatasetState = "loading"
	DatasetReady   DatasetState = "ready"
	DatasetFailed  DatasetState = "failed"
)

// Pipeline triggers, used as the metrics label and in logs.
const (
	TriggerLoad   = "load"
	TriggerYear   = "year"
	TriggerRange  = "range"
	TriggerDrag   = "drag"
	TriggerLayout = "layout"
	TriggerFail   = "fail"
)

// MessageLoadFailed prefixes the error shown in every region after a failed load.
const MessageLoadFailed = "Could not load listening history"

// Options configures a Dashboard.
type Options struct {
	Heatmap    calendar.Options
	Layout     render.Layout
	TopArtists int
	TopTracks  int
	Location   *time.Location

	// Cache holds rendered regions keyed by dataset generation, window,
	// range and widths. Nil disables caching.
	Cache *cache.Cache

	// Backend names the window source for metrics: memory or duckdb.
	Backend string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Heatmap:    calendar.DefaultOptions(),
		Layout:     render.DefaultLayout(),
		TopArtists: analytics.DefaultTopArtists,
		TopTracks:  analytics.DefaultTopTracks,
		Location:   time.Local,
		Backend:    "memory",
	}
}

// OptionsFromConfig builds Options from the dashboard configuration.
func OptionsFromConfig(cfg config.DashboardConfig, loc *time.Location) Options {
	opts := DefaultOptions()
	if cfg.CellSize > 0 {
		opts.Heatmap.CellSize = cfg.CellSize
	}
	if cfg.CellGap > 0 {
		opts.Heatmap.CellGap = cfg.CellGap
	}
	if cfg.HandleWidth > 0 {
		opts.Heatmap.HandleWidth = cfg.HandleWidth
	}
	if cfg.HandleGrabWidth > 0 {
		opts.Heatmap.HandleGrabWidth = cfg.HandleGrabWidth
	}
	if cfg.TopArtists > 0 {
		opts.TopArtists = cfg.TopArtists
	}
	if cfg.TopTracks > 0 {
		opts.TopTracks = cfg.TopTracks
	}
	opts.Layout = render.LayoutFromConfig(cfg)
	if loc != nil {
		opts.Location = loc
	}
	return opts
}

// Snapshot is one complete rendered state of the dashboard. Snapshots are
// immutable; every pipeline run produces a new one with a higher Version.
type Snapshot struct {
	Version     uint64                   `json:"version"`
	State       DatasetState             `json:"state"`
	Error       string                   `json:"error,omitempty"`
	Year        int                      `json:"year,omitempty"`
	Years       []int                    `json:"years"`
	Window      *DateRange               `json:"window,omitempty"`
	Range       *DateRange               `json:"range,omitempty"`
	Narrowed    bool                     `json:"narrowed"`
	Inputs      Inputs                   `json:"inputs"`
	Summary     string                   `json:"summary"`
	Handles     calendar.HandlePositions `json:"handles"`
	OffsetX     float64                  `json:"offset_x"`
	ColumnWidth float64                  `json:"column_width"`
	Records     int                      `json:"records"`
	Calendar    models.CalendarSummary   `json:"calendar"`
	Regions     []render.Fragment        `json:"regions"`
	Cached      bool                     `json:"cached"`
	RenderedAt  time.Time                `json:"rendered_at"`
}

// Region returns the fragment of region r.
func (s *Snapshot) Region(r render.Region) (render.Fragment, bool) {
	for _, f := range s.Regions {
		if f.Region == r {
			return f, true
		}
	}
	return render.Fragment{}, false
}

// DragOutcome describes what a drag event did.
type DragOutcome string

// Drag outcomes.
const (
	OutcomeGrabbed   DragOutcome = "grabbed"
	OutcomeApplied   DragOutcome = metrics.DragApplied
	OutcomeDropped   DragOutcome = metrics.DragDropped
	OutcomeIgnored   DragOutcome = metrics.DragIgnored
	OutcomeCommitted DragOutcome = "committed"
)

// DragResult is the result of one drag event. Frame is set for applied
// moves and Snapshot for commits.
type DragResult struct {
	Outcome  DragOutcome     `json:"outcome"`
	Handle   calendar.Handle `json:"handle,omitempty"`
	Frame    *Frame          `json:"frame,omitempty"`
	Snapshot *Snapshot       `json:"snapshot,omitempty"`
}

// Dashboard is the context object holding all selection state. It is not
// safe for concurrent use.
type Dashboard struct {
	opts   Options
	logger zerolog.Logger

	state    DatasetState
	loadErr  error
	loadedAt time.Time

	store      *store.Store
	source     store.WindowSource
	generation uint64

	year        int
	windowStart time.Time
	windowEnd   time.Time
	window      []models.PlayRecord
	grid        *calendar.Grid
	daily       map[string]float64
	maxDaily    float64

	rng    RangeState
	inputs Inputs
	drag   *DragController
	widths render.Widths

	version  uint64
	snapshot *Snapshot
}

// NewDashboard returns a dashboard in the loading state.
func NewDashboard(opts Options) *Dashboard {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Backend == "" {
		opts.Backend = "memory"
	}
	d := &Dashboard{
		opts:   opts,
		logger: logging.WithComponent("selection"),
		state:  DatasetLoading,
		store:  store.Empty(),
		drag:   NewDragController(opts.Heatmap.HandleWidth, opts.Heatmap.HandleGrabWidth),
		widths: render.Widths{},
	}
	regions := make([]render.Fragment, len(render.Regions))
	for i, r := range render.Regions {
		regions[i] = render.Loading(r)
	}
	d.snapshot = &Snapshot{
		State:      DatasetLoading,
		Years:      []int{},
		Summary:    FallbackLabel,
		Regions:    regions,
		RenderedAt: time.Now(),
	}
	metrics.SetDatasetState(string(DatasetLoading))
	return d
}

// State returns the dataset state.
func (d *Dashboard) State() DatasetState { return d.state }

// Snapshot returns the current snapshot.
func (d *Dashboard) Snapshot() *Snapshot { return d.snapshot }

// Range returns the current range state. During a drag Start and End are
// the live handle dates.
func (d *Dashboard) Range() RangeState { return d.rng }

// Inputs returns the date input values.
func (d *Dashboard) Inputs() Inputs { return d.inputs }

// Grid returns the calendar grid of the coarse window.
func (d *Dashboard) Grid() *calendar.Grid { return d.grid }

// Dragging reports whether a handle is grabbed.
func (d *Dashboard) Dragging() bool { return d.drag.Dragging() }

// LoadedAt returns when the dataset resolved.
func (d *Dashboard) LoadedAt() time.Time { return d.loadedAt }

// RecordCount returns the number of loaded records.
func (d *Dashboard) RecordCount() int { return d.store.Len() }

// LoadError returns the load failure, if any.
func (d *Dashboard) LoadError() error { return d.loadErr }

// Years returns the distinct years of the dataset.
func (d *Dashboard) Years() ([]int, error) {
	if err := d.guard(); err != nil {
		return nil, err
	}
	return d.store.Years(), nil
}

func (d *Dashboard) guard() error {
	switch d.state {
	case DatasetLoading:
		return ErrNotLoaded
	case DatasetFailed:
		return ErrDatasetUnavailable
	}
	return nil
}

// Load installs the dataset and selects its latest year. src answers window
// queries; nil uses st itself. An empty store renders every region empty.
func (d *Dashboard) Load(ctx context.Context, st *store.Store, src store.WindowSource) (*Snapshot, error) {
	if st == nil {
		st = store.Empty()
	}
	if src == nil {
		src = st
	}
	d.state = DatasetReady
	d.loadErr = nil
	d.loadedAt = time.Now()
	d.store = st
	d.source = src
	d.generation++
	if d.opts.Cache != nil {
		// Entries of older generations can never be hit again.
		stats := d.opts.Cache.GetStats()
		d.opts.Cache.Clear()
		d.logger.Debug().
			Int64("entries", stats.TotalKeys).
			Int64("hits", stats.Hits).
			Int64("misses", stats.Misses).
			Msg("Render cache cleared for new dataset")
	}
	metrics.SetDatasetState(string(DatasetReady))

	year, ok := st.LatestYear()
	if !ok {
		d.year = 0
		d.windowStart, d.windowEnd = time.Time{}, time.Time{}
		d.window = []models.PlayRecord{}
		d.grid = nil
		d.daily = map[string]float64{}
		d.maxDaily = 0
		d.rng = RangeState{Filtered: []models.PlayRecord{}}
		d.inputs = Inputs{}
		d.drag.Reset(nil, time.Time{}, time.Time{})
		return d.run(TriggerLoad), nil
	}

	start, end := timeutil.YearBounds(year, d.opts.Location)
	return d.coarse(ctx, start, end, year, false, TriggerLoad)
}

// Fail marks the dataset as unavailable. Every region shows the error and
// every later command returns ErrDatasetUnavailable.
func (d *Dashboard) Fail(err error) *Snapshot {
	if err == nil {
		err = errors.New("unknown error")
	}
	d.state = DatasetFailed
	d.loadErr = err
	metrics.SetDatasetState(string(DatasetFailed))

	started := time.Now()
	d.version++
	msg := MessageLoadFailed + ": " + err.Error()
	regions := make([]render.Fragment, len(render.Regions))
	for i, r := range render.Regions {
		regions[i] = render.Failed(r, msg)
	}
	d.snapshot = &Snapshot{
		Version:    d.version,
		State:      DatasetFailed,
		Error:      err.Error(),
		Years:      []int{},
		Summary:    FallbackLabel,
		Regions:    regions,
		RenderedAt: time.Now(),
	}
	metrics.RecordPipelineRun(TriggerFail, time.Since(started), d.version)
	return d.snapshot
}

// SelectYear makes year the coarse window and renders it whole.
func (d *Dashboard) SelectYear(ctx context.Context, year int) (*Snapshot, error) {
	if err := d.guard(); err != nil {
		return nil, err
	}
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	start, end := timeutil.YearBounds(year, d.opts.Location)
	return d.coarse(ctx, start, end, year, false, TriggerYear)
}

// ApplyRange makes the typed dates the coarse window. Both inputs must be
// strict YYYY-MM-DD dates; on error nothing changes. An inverted range is
// swapped and the inputs rewritten, reported by the swapped result.
func (d *Dashboard) ApplyRange(ctx context.Context, startInput, endInput string) (*Snapshot, bool, error) {
	if err := d.guard(); err != nil {
		return nil, false, err
	}
	start, err := timeutil.ParseDate(startInput, d.opts.Location)
	if err != nil {
		return nil, false, fmt.Errorf("%w: start: %w", ErrInvalidDate, err)
	}
	end, err := timeutil.ParseDate(endInput, d.opts.Location)
	if err != nil {
		return nil, false, fmt.Errorf("%w: end: %w", ErrInvalidDate, err)
	}

	swapped := end.Before(start)
	if swapped {
		start, end = end, start
	}
	snap, err := d.coarse(ctx, start, end, 0, true, TriggerRange)
	if err != nil {
		return nil, false, err
	}
	return snap, swapped, nil
}

// HandleDrag feeds one pointer event to the drag state machine. Moves update
// the live range only; pointer_up commits it and runs the pipeline once.
func (d *Dashboard) HandleDrag(_ context.Context, ev Event) (DragResult, error) {
	if err := d.guard(); err != nil {
		return DragResult{}, err
	}

	switch ev.Type {
	case EventPointerDown:
		if ev.Handle != "" {
			if err := d.drag.Down(ev.Handle); err != nil {
				return DragResult{}, err
			}
			return DragResult{Outcome: OutcomeGrabbed, Handle: ev.Handle}, nil
		}
		if ev.X == nil {
			return DragResult{}, fmt.Errorf("%w: pointer_down needs a handle or an offset", ErrInvalidDrag)
		}
		h, err := d.drag.DownAt(*ev.X)
		if err != nil {
			return DragResult{}, err
		}
		return DragResult{Outcome: OutcomeGrabbed, Handle: h}, nil

	case EventPointerMove:
		if !d.drag.Dragging() {
			metrics.RecordDragFrame(metrics.DragIgnored)
			return DragResult{Outcome: OutcomeIgnored}, nil
		}
		x := math.NaN()
		if ev.X != nil {
			x = *ev.X
		}
		frame, err := d.drag.Move(x)
		if err != nil {
			metrics.RecordDragFrame(metrics.DragDropped)
			d.logger.Debug().Err(err).Str("handle", string(d.drag.Active())).Msg("Dropped drag frame")
			return DragResult{Outcome: OutcomeDropped, Handle: d.drag.Active()}, nil
		}
		d.rng.Start, d.rng.End = d.drag.Range()
		metrics.RecordDragFrame(metrics.DragApplied)
		return DragResult{Outcome: OutcomeApplied, Handle: frame.Handle, Frame: &frame}, nil

	case EventPointerUp:
		h := d.drag.Active()
		start, end, err := d.drag.Up()
		if err != nil {
			return DragResult{Outcome: OutcomeIgnored}, nil
		}
		d.rng = RangeState{
			Start:    start,
			End:      end,
			Filtered: store.FilterDays(d.window, start, end),
			Narrowed: true,
		}
		d.inputs = inputsFor(start, end)
		d.drag.Reset(d.grid, start, end)
		return DragResult{Outcome: OutcomeCommitted, Handle: h, Snapshot: d.run(TriggerDrag)}, nil
	}
	return DragResult{}, fmt.Errorf("%w: unknown event type %q", ErrInvalidDrag, ev.Type)
}

// SetWidths records the reported container widths and re-renders. Unknown
// regions are ignored. Before the dataset resolves, and during a drag, the
// widths are only kept for the next render.
func (d *Dashboard) SetWidths(widths map[render.Region]int) *Snapshot {
	for r, w := range widths {
		if r.Valid() && w > 0 {
			d.widths[r] = w
		}
	}
	if d.state != DatasetReady || d.drag.Dragging() {
		return d.snapshot
	}
	return d.run(TriggerLayout)
}

// coarse queries the window, rebuilds the grid and renders the whole window.
// State is only replaced once the query succeeded. year is zero for an
// explicit range.
func (d *Dashboard) coarse(ctx context.Context, start, end time.Time, year int, narrowed bool, trigger string) (*Snapshot, error) {
	start, end = timeutil.DayFloor(start), timeutil.DayFloor(end)

	queryStart := time.Now()
	records, err := d.source.Window(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("query window: %w", err)
	}
	metrics.RecordWindowQuery(d.opts.Backend, time.Since(queryStart), len(records))

	grid, err := calendar.NewGrid(start, end, d.opts.Heatmap.CellSize, d.opts.Heatmap.CellGap)
	if err != nil {
		return nil, fmt.Errorf("build calendar grid: %w", err)
	}

	d.year = year
	d.windowStart, d.windowEnd = start, end
	d.window = records
	d.grid = grid
	d.daily = analytics.DailyMinutes(records)
	d.maxDaily = analytics.MaxDailyMinutes(d.daily)
	d.rng = RangeState{Start: start, End: end, Filtered: records, Narrowed: narrowed}
	d.inputs = inputsFor(start, end)
	d.drag.Reset(grid, start, end)

	return d.run(trigger), nil
}

// rendered is the cacheable output of one pipeline run.
type rendered struct {
	regions  []render.Fragment
	calendar models.CalendarSummary
	handles  calendar.HandlePositions
	offsetX  float64
}

type renderKey struct {
	Generation  uint64         `json:"generation"`
	WindowStart string         `json:"window_start"`
	WindowEnd   string         `json:"window_end"`
	Start       string         `json:"start"`
	End         string         `json:"end"`
	Widths      map[string]int `json:"widths"`
}

// run is the aggregate and render pipeline over the committed range. It
// replaces the snapshot wholesale.
func (d *Dashboard) run(trigger string) *Snapshot {
	started := time.Now()
	d.version++

	out, cached := d.renderRegions()

	snap := &Snapshot{
		Version:    d.version,
		State:      d.state,
		Year:       d.year,
		Years:      d.store.Years(),
		Narrowed:   d.rng.Narrowed,
		Inputs:     d.inputs,
		Summary:    d.rng.Label(),
		Handles:    out.handles,
		OffsetX:    out.offsetX,
		Records:    len(d.rng.Filtered),
		Calendar:   out.calendar,
		Regions:    out.regions,
		Cached:     cached,
		RenderedAt: time.Now(),
	}
	if d.grid.Len() > 0 {
		snap.Window = dateRange(d.windowStart, d.windowEnd)
		snap.Range = dateRange(d.rng.Start, d.rng.End)
		snap.ColumnWidth = d.grid.ColumnWidth()
	}
	d.snapshot = snap

	elapsed := time.Since(started)
	metrics.RecordPipelineRun(trigger, elapsed, d.version)
	d.logger.Debug().
		Str("trigger", trigger).
		Uint64("version", d.version).
		Int("records", snap.Records).
		Bool("cached", cached).
		Dur("duration", elapsed).
		Msg("Rendered dashboard")
	return snap
}

func (d *Dashboard) renderKey() string {
	widths := make(map[string]int, len(d.widths))
	for r, w := range d.widths {
		widths[string(r)] = w
	}
	return cache.GenerateKey("regions", renderKey{
		Generation:  d.generation,
		WindowStart: timeutil.FormatDate(d.windowStart),
		WindowEnd:   timeutil.FormatDate(d.windowEnd),
		Start:       timeutil.FormatDate(d.rng.Start),
		End:         timeutil.FormatDate(d.rng.End),
		Widths:      widths,
	})
}

func (d *Dashboard) renderRegions() (rendered, bool) {
	var key string
	if d.opts.Cache != nil {
		key = d.renderKey()
		if v, ok := d.opts.Cache.Get(key); ok {
			if out, ok := v.(rendered); ok {
				metrics.RecordCacheLookup("render", true)
				return out, true
			}
		}
		metrics.RecordCacheLookup("render", false)
	}

	out := d.renderAll()
	if d.opts.Cache != nil {
		d.opts.Cache.Set(key, out)
	}
	return out, false
}

func (d *Dashboard) renderAll() rendered {
	if d.store.Len() == 0 {
		regions := make([]render.Fragment, len(render.Regions))
		for i, r := range render.Regions {
			regions[i] = render.Empty(r, render.StateNoData, render.MessageNoData)
		}
		return rendered{regions: regions}
	}

	var out rendered
	records := d.rng.Filtered
	layout := d.opts.Layout

	var heatmap calendar.Heatmap
	if d.grid.Len() > 0 {
		heatmap = calendar.RenderHeatmap(d.grid, d.daily, d.maxDaily, d.rng.Start, d.rng.End, d.opts.Heatmap)
		out.calendar = analytics.SummarizeDays(d.daily, d.rng.Start, d.rng.End)
		out.handles = heatmap.Handles
		out.offsetX = heatmap.OffsetX
	}

	out.regions = []render.Fragment{
		render.Calendar(heatmap, d.grid.Len(), out.calendar),
		render.TopArtists(analytics.TopArtists(records, d.opts.TopArtists)),
		render.TopTracks(analytics.TopTracks(records, d.store.Availability(), d.opts.TopTracks),
			layout.For(d.widths, render.RegionTopTracks), layout),
		render.HourOfDay(analytics.HourOfDay(records),
			layout.For(d.widths, render.RegionHourOfDay), layout),
		render.DayOfWeek(analytics.DayOfWeek(records),
			layout.For(d.widths, render.RegionDayOfWeek), layout),
		render.ContentShare(analytics.ContentShare(records),
			layout.For(d.widths, render.RegionContentShare), layout),
	}
	return out
}
