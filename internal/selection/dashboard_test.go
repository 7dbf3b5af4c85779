// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package selection

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/soundtrail/internal/analytics"
	"github.com/tomtom215/soundtrail/internal/cache"
	"github.com/tomtom215/soundtrail/internal/calendar"
	"github.com/tomtom215/soundtrail/internal/models"
	"github.com/tomtom215/soundtrail/internal/render"
	"github.com/tomtom215/soundtrail/internal/store"
	"github.com/tomtom215/soundtrail/internal/timeutil"
)

func play(ts time.Time, artist string, ms int64) models.PlayRecord {
	return models.PlayRecord{
		Timestamp: ts,
		MsPlayed:  ms,
		Artist:    artist,
		Track:     "Track " + artist,
		Album:     models.NotAvailable,
	}
}

func utc(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
}

func scenarioStore() *store.Store {
	return store.New([]models.PlayRecord{
		play(utc(2024, 1, 1, 10, 0, 0), "A", 120000),
		play(utc(2024, 1, 1, 10, 5, 0), "B", 60000),
		play(utc(2024, 1, 2, 9, 0, 0), "A", 180000),
	}, models.FieldAvailability{
		models.FieldTimestamp:  true,
		models.FieldMsPlayed:   true,
		models.FieldArtistName: true,
		models.FieldTrackName:  true,
	})
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Location = time.UTC
	return opts
}

func loadedDashboard(t *testing.T, st *store.Store) *Dashboard {
	t.Helper()
	d := NewDashboard(testOptions())
	if _, err := d.Load(context.Background(), st, nil); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return d
}

func regionStates(snap *Snapshot) map[render.Region]render.State {
	out := make(map[render.Region]render.State, len(snap.Regions))
	for _, f := range snap.Regions {
		out[f.Region] = f.State
	}
	return out
}

func TestLoadSelectsLatestYear(t *testing.T) {
	t.Parallel()

	st := store.New([]models.PlayRecord{
		play(utc(2022, 5, 1, 12, 0, 0), "A", 60000),
		play(utc(2024, 3, 1, 12, 0, 0), "B", 60000),
	}, nil)
	d := loadedDashboard(t, st)

	snap := d.Snapshot()
	if snap.Year != 2024 {
		t.Errorf("Year = %d, want 2024", snap.Year)
	}
	if !reflect.DeepEqual(snap.Years, []int{2022, 2024}) {
		t.Errorf("Years = %v", snap.Years)
	}
	if snap.Window == nil || snap.Window.Start != "2024-01-01" || snap.Window.End != "2024-12-31" {
		t.Errorf("Window = %+v", snap.Window)
	}
	if snap.Narrowed || snap.Summary != FallbackLabel {
		t.Errorf("year selection should show fallback label, got %q", snap.Summary)
	}
	if snap.Inputs != (Inputs{Start: "2024-01-01", End: "2024-12-31"}) {
		t.Errorf("Inputs = %+v", snap.Inputs)
	}
	if snap.Records != 1 {
		t.Errorf("Records = %d, want 1", snap.Records)
	}
	if len(snap.Regions) != len(render.Regions) {
		t.Fatalf("got %d regions, want %d", len(snap.Regions), len(render.Regions))
	}
	for i, r := range render.Regions {
		if snap.Regions[i].Region != r {
			t.Errorf("region %d = %s, want %s", i, snap.Regions[i].Region, r)
		}
	}
	if snap.Handles.Start != 0 || snap.Handles.End <= snap.Handles.Start {
		t.Errorf("Handles = %+v", snap.Handles)
	}
}

func TestScenarioNarrowToSingleDay(t *testing.T) {
	t.Parallel()

	check := func(t *testing.T, d *Dashboard) {
		t.Helper()
		rng := d.Range()
		if len(rng.Filtered) != 2 {
			t.Fatalf("filtered = %d records, want 2", len(rng.Filtered))
		}
		want := []models.ArtistTotal{{Artist: "A", Minutes: 2.0}, {Artist: "B", Minutes: 1.0}}
		if got := analytics.TopArtists(rng.Filtered, 5); !reflect.DeepEqual(got, want) {
			t.Errorf("TopArtists = %v, want %v", got, want)
		}
		for _, b := range analytics.DayOfWeek(rng.Filtered) {
			want := 0.0
			if b.Weekday == int(time.Monday) {
				want = 3.0
			}
			if b.Minutes != want {
				t.Errorf("%s = %v, want %v", b.Name, b.Minutes, want)
			}
		}

		snap := d.Snapshot()
		if snap.Summary != "Monday, Jan 01, 2024 → Monday, Jan 01, 2024" {
			t.Errorf("Summary = %q", snap.Summary)
		}
		artists, _ := snap.Region(render.RegionTopArtists)
		a, b := strings.Index(artists.HTML, ">A<"), strings.Index(artists.HTML, ">B<")
		if a < 0 || b < 0 || a > b {
			t.Errorf("artist order wrong in %s", artists.HTML)
		}
		if !strings.Contains(artists.HTML, "2.0 min") || !strings.Contains(artists.HTML, "1.0 min") {
			t.Errorf("artist minutes missing in %s", artists.HTML)
		}
	}

	t.Run("explicit range", func(t *testing.T) {
		t.Parallel()
		d := loadedDashboard(t, scenarioStore())
		if _, err := d.SelectYear(context.Background(), 2024); err != nil {
			t.Fatal(err)
		}
		if _, _, err := d.ApplyRange(context.Background(), "2024-01-01", "2024-01-01"); err != nil {
			t.Fatal(err)
		}
		check(t, d)
	})

	t.Run("drag end handle onto start", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		d := loadedDashboard(t, scenarioStore())
		if _, err := d.SelectYear(ctx, 2024); err != nil {
			t.Fatal(err)
		}
		steps := []Event{PointerDown(calendar.HandleEnd), PointerMove(0), PointerUp()}
		var last DragResult
		for _, ev := range steps {
			res, err := d.HandleDrag(ctx, ev)
			if err != nil {
				t.Fatalf("HandleDrag(%s) error = %v", ev.Type, err)
			}
			last = res
		}
		if last.Outcome != OutcomeCommitted || last.Snapshot == nil {
			t.Fatalf("last outcome = %s", last.Outcome)
		}
		if d.Inputs() != (Inputs{Start: "2024-01-01", End: "2024-01-01"}) {
			t.Errorf("Inputs = %+v", d.Inputs())
		}
		check(t, d)
	})
}

func TestEmptyDatasetShowsEmptyStates(t *testing.T) {
	t.Parallel()

	d := loadedDashboard(t, store.Empty())
	snap := d.Snapshot()

	if snap.State != DatasetReady {
		t.Errorf("State = %s", snap.State)
	}
	if snap.Summary != FallbackLabel {
		t.Errorf("Summary = %q", snap.Summary)
	}
	for _, f := range snap.Regions {
		if f.State != render.StateNoData || f.Message != render.MessageNoData {
			t.Errorf("%s: state=%s message=%q", f.Region, f.State, f.Message)
		}
		if !strings.Contains(f.HTML, "empty-state") {
			t.Errorf("%s: no empty-state markup", f.Region)
		}
	}
	if len(snap.Years) != 0 {
		t.Errorf("Years = %v", snap.Years)
	}

	// Commands still work and keep the empty states.
	snap, err := d.SelectYear(context.Background(), 2024)
	if err != nil {
		t.Fatalf("SelectYear() error = %v", err)
	}
	for r, s := range regionStates(snap) {
		if s != render.StateNoData {
			t.Errorf("%s after SelectYear = %s", r, s)
		}
	}
	if res, err := d.HandleDrag(context.Background(), PointerMove(10)); err != nil || res.Outcome != OutcomeIgnored {
		t.Errorf("move without drag = %v, %v", res.Outcome, err)
	}
}

func TestInertUntilLoaded(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	d := NewDashboard(testOptions())
	for r, s := range regionStates(d.Snapshot()) {
		if s != render.StateLoading {
			t.Errorf("%s = %s, want loading", r, s)
		}
	}

	if _, err := d.SelectYear(ctx, 2024); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("SelectYear error = %v", err)
	}
	if _, _, err := d.ApplyRange(ctx, "2024-01-01", "2024-01-02"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("ApplyRange error = %v", err)
	}
	if _, err := d.HandleDrag(ctx, PointerDown(calendar.HandleStart)); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("HandleDrag error = %v", err)
	}
	if _, err := d.Years(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Years error = %v", err)
	}

	before := d.Snapshot().Version
	d.SetWidths(map[render.Region]int{render.RegionTopTracks: 900})
	if d.Snapshot().Version != before {
		t.Error("SetWidths rendered before load")
	}
}

func TestFailedLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	d := NewDashboard(testOptions())
	snap := d.Fail(errors.New("connection refused"))

	if snap.State != DatasetFailed {
		t.Errorf("State = %s", snap.State)
	}
	for _, f := range snap.Regions {
		if f.State != render.StateError {
			t.Errorf("%s = %s, want error", f.Region, f.State)
		}
		if !strings.Contains(f.Message, "connection refused") {
			t.Errorf("%s message = %q", f.Region, f.Message)
		}
	}
	if _, err := d.SelectYear(ctx, 2024); !errors.Is(err, ErrDatasetUnavailable) {
		t.Errorf("SelectYear error = %v", err)
	}
	if _, err := d.HandleDrag(ctx, PointerUp()); !errors.Is(err, ErrDatasetUnavailable) {
		t.Errorf("HandleDrag error = %v", err)
	}
}

func TestApplyRangeSwapsInvertedDates(t *testing.T) {
	t.Parallel()

	d := loadedDashboard(t, scenarioStore())
	snap, swapped, err := d.ApplyRange(context.Background(), "2024-01-02", "2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if !swapped {
		t.Error("swapped = false")
	}
	if snap.Inputs != (Inputs{Start: "2024-01-01", End: "2024-01-02"}) {
		t.Errorf("Inputs = %+v", snap.Inputs)
	}
	rng := d.Range()
	if rng.End.Before(rng.Start) {
		t.Errorf("range %v..%v is inverted", rng.Start, rng.End)
	}
	if len(rng.Filtered) != 3 {
		t.Errorf("filtered = %d, want 3", len(rng.Filtered))
	}
	if snap.Year != 0 || !snap.Narrowed {
		t.Errorf("Year = %d Narrowed = %v", snap.Year, snap.Narrowed)
	}
}

func TestApplyRangeRejectsInvalidDates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start, end string
	}{
		{"empty start", "", "2024-01-01"},
		{"bad month", "2024-13-01", "2024-01-01"},
		{"bad day", "2024-01-01", "2024-02-30"},
		{"loose format", "2024-1-1", "2024-01-02"},
		{"garbage end", "2024-01-01", "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := loadedDashboard(t, scenarioStore())
			before := d.Snapshot()

			_, _, err := d.ApplyRange(context.Background(), tt.start, tt.end)
			if !errors.Is(err, ErrInvalidDate) || !errors.Is(err, timeutil.ErrInvalidDate) {
				t.Fatalf("error = %v, want ErrInvalidDate", err)
			}
			if d.Snapshot() != before {
				t.Error("snapshot replaced after invalid input")
			}
		})
	}
}

func TestSelectYearRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	d := loadedDashboard(t, scenarioStore())
	for _, y := range []int{0, -1, 10000} {
		if _, err := d.SelectYear(context.Background(), y); !errors.Is(err, ErrInvalidYear) {
			t.Errorf("SelectYear(%d) error = %v", y, err)
		}
	}
}

func TestFilterAtMidnightBoundary(t *testing.T) {
	t.Parallel()

	st := store.New([]models.PlayRecord{
		play(utc(2024, 3, 9, 23, 59, 59), "before", 60000),
		play(utc(2024, 3, 10, 0, 0, 0), "first", 60000),
		play(utc(2024, 3, 10, 23, 59, 59), "last", 60000),
		play(utc(2024, 3, 11, 0, 0, 0), "after", 60000),
	}, nil)
	d := loadedDashboard(t, st)

	if _, _, err := d.ApplyRange(context.Background(), "2024-03-10", "2024-03-10"); err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, r := range d.Range().Filtered {
		got = append(got, r.Artist)
	}
	if !reflect.DeepEqual(got, []string{"first", "last"}) {
		t.Errorf("filtered = %v", got)
	}
}

func TestIdempotentRerender(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	d := loadedDashboard(t, scenarioStore())
	first, err := d.SelectYear(ctx, 2024)
	if err != nil {
		t.Fatal(err)
	}
	second, err := d.SelectYear(ctx, 2024)
	if err != nil {
		t.Fatal(err)
	}
	if second.Version <= first.Version {
		t.Errorf("version did not advance: %d -> %d", first.Version, second.Version)
	}
	if !reflect.DeepEqual(first.Regions, second.Regions) {
		t.Error("identical selection rendered different regions")
	}
	if first.Calendar != second.Calendar {
		t.Errorf("calendar summary %+v != %+v", first.Calendar, second.Calendar)
	}
}

func TestRenderCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := cache.NewBounded(time.Minute, 16)
	t.Cleanup(c.Close)
	opts := testOptions()
	opts.Cache = c
	d := NewDashboard(opts)
	if _, err := d.Load(ctx, scenarioStore(), nil); err != nil {
		t.Fatal(err)
	}

	first, err := d.SelectYear(ctx, 2024)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Cached {
		t.Error("reselecting the loaded year should hit the cache")
	}
	if _, _, err := d.ApplyRange(ctx, "2024-01-01", "2024-01-01"); err != nil {
		t.Fatal(err)
	}
	if d.Snapshot().Cached {
		t.Error("new range should miss the cache")
	}

	// A reload starts a new generation.
	if _, err := d.Load(ctx, scenarioStore(), nil); err != nil {
		t.Fatal(err)
	}
	if d.Snapshot().Cached {
		t.Error("reload should not reuse regions of the previous dataset")
	}
	stats := c.GetStats()
	if stats.Evictions != 2 || stats.TotalKeys != 1 {
		t.Errorf("cache after reload = %+v, want the 2 old entries cleared and 1 new", stats)
	}
}

func TestSetWidths(t *testing.T) {
	t.Parallel()

	d := loadedDashboard(t, scenarioStore())
	before := d.Snapshot().Version

	snap := d.SetWidths(map[render.Region]int{
		render.RegionTopTracks: 100,
		render.Region("nope"):  900,
	})
	if snap.Version == before {
		t.Error("SetWidths did not re-render")
	}
	f, _ := snap.Region(render.RegionTopTracks)
	if f.State != render.StateTooSmall {
		t.Errorf("top tracks at 100px = %s, want too_small", f.State)
	}
	f, _ = snap.Region(render.RegionHourOfDay)
	if f.State != render.StateReady {
		t.Errorf("hour of day = %s, want ready", f.State)
	}
}

func TestTopTracksUnavailable(t *testing.T) {
	t.Parallel()

	st := store.New([]models.PlayRecord{
		play(utc(2024, 1, 1, 10, 0, 0), "A", 60000),
	}, models.FieldAvailability{models.FieldArtistName: true})
	d := loadedDashboard(t, st)

	f, ok := d.Snapshot().Region(render.RegionTopTracks)
	if !ok || f.State != render.StateUnavailable || f.Message != analytics.TrackColumnMissingMessage {
		t.Errorf("top tracks = %+v", f)
	}
}
