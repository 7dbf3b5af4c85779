// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/soundtrail/internal/config"
	playimport "github.com/tomtom215/soundtrail/internal/import"
	"github.com/tomtom215/soundtrail/internal/models"
	"github.com/tomtom215/soundtrail/internal/selection"
	"github.com/tomtom215/soundtrail/internal/store"
)

type fakeLoader struct {
	ds    *playimport.Dataset
	stats *playimport.ImportStats
	err   error
}

func (f *fakeLoader) Load(context.Context) (*playimport.Dataset, *playimport.ImportStats, error) {
	return f.ds, f.stats, f.err
}

func (f *fakeLoader) Source() string { return "fake.csv" }

type fakeSink struct {
	st      *store.Store
	src     store.WindowSource
	loadErr error
	err     error
}

func (f *fakeSink) Loaded(_ context.Context, st *store.Store, src store.WindowSource) (*selection.Snapshot, error) {
	f.st, f.src = st, src
	return &selection.Snapshot{}, f.err
}

func (f *fakeSink) Failed(_ context.Context, loadErr error) (*selection.Snapshot, error) {
	f.loadErr = loadErr
	return &selection.Snapshot{}, f.err
}

type fakeMirror struct {
	records []models.PlayRecord
	err     error
}

func (f *fakeMirror) Mirror(_ context.Context, records []models.PlayRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = records
	return nil
}

func (f *fakeMirror) Window(_ context.Context, start, end time.Time) ([]models.PlayRecord, error) {
	return store.FilterDays(f.records, start, end), nil
}

func twoPlays() *playimport.Dataset {
	ts := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	return &playimport.Dataset{
		Records: []models.PlayRecord{
			{Timestamp: ts, MsPlayed: 60000, Artist: "A"},
			{Timestamp: ts.AddDate(0, 0, 1), MsPlayed: 120000, Artist: "B"},
		},
		Availability: models.FieldAvailability{},
	}
}

func TestDatasetLoaderService(t *testing.T) {
	t.Parallel()

	stats := &playimport.ImportStats{Format: playimport.FormatCSV, Rows: 3, Imported: 2, SkippedTimestamp: 1}
	mirrorFailure := errors.New("duckdb unavailable")

	tests := []struct {
		name       string
		loader     *fakeLoader
		mirror     *fakeMirror
		wantLoaded bool
		wantMirror bool
	}{
		{name: "memory backend", loader: &fakeLoader{ds: twoPlays(), stats: stats}, wantLoaded: true},
		{name: "mirrored backend", loader: &fakeLoader{ds: twoPlays(), stats: stats}, mirror: &fakeMirror{}, wantLoaded: true, wantMirror: true},
		{name: "mirror failure falls back to memory", loader: &fakeLoader{ds: twoPlays(), stats: stats}, mirror: &fakeMirror{err: mirrorFailure}, wantLoaded: true},
		{name: "load failure", loader: &fakeLoader{stats: &playimport.ImportStats{}, err: playimport.ErrNoSource}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sink := &fakeSink{}
			var mirror RecordMirror
			if tt.mirror != nil {
				mirror = tt.mirror
			}
			svc := NewDatasetLoaderService(tt.loader, sink, mirror)

			if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrDoNotRestart) {
				t.Fatalf("Serve() = %v, want ErrDoNotRestart", err)
			}

			if !tt.wantLoaded {
				if !errors.Is(sink.loadErr, playimport.ErrNoSource) {
					t.Errorf("Failed got %v", sink.loadErr)
				}
				if sink.st != nil {
					t.Error("Loaded should not be called")
				}
				return
			}
			if sink.st == nil || sink.st.Len() != 2 {
				t.Fatalf("store = %+v", sink.st)
			}
			if tt.wantMirror {
				if sink.src != tt.mirror || len(tt.mirror.records) != 2 {
					t.Errorf("window source = %v, mirrored %d", sink.src, len(tt.mirror.records))
				}
			} else if sink.src != nil {
				t.Errorf("window source = %v, want nil", sink.src)
			}
		})
	}
}

func TestDatasetLoaderService_SinkError(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{err: selection.ErrControllerStopped}
	svc := NewDatasetLoaderService(&fakeLoader{ds: twoPlays(), stats: &playimport.ImportStats{}}, sink, nil)

	err := svc.Serve(context.Background())
	if !errors.Is(err, selection.ErrControllerStopped) || errors.Is(err, suture.ErrDoNotRestart) {
		t.Errorf("Serve() = %v", err)
	}
	if svc.String() != "dataset-loader" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestDatasetLoaderService_RealLoader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.csv")
	csv := "ts,ms_played,master_metadata_album_artist_name,master_metadata_track_name\n" +
		"2024-03-04T09:00:00Z,60000,Artist,Song\n" +
		"not a time,1000,Artist,Song\n"
	if err := os.WriteFile(path, []byte(csv), 0o600); err != nil {
		t.Fatal(err)
	}

	loader := playimport.NewLoader(config.DatasetConfig{Path: path, Format: playimport.FormatAuto}, time.UTC, nil)
	sink := &fakeSink{}
	if err := NewDatasetLoaderService(loader, sink, nil).Serve(context.Background()); !errors.Is(err, suture.ErrDoNotRestart) {
		t.Fatalf("Serve() = %v", err)
	}
	if sink.st == nil || sink.st.Len() != 1 {
		t.Fatalf("store = %+v", sink.st)
	}
	if !sink.st.Availability().Has(models.FieldTrackName) {
		t.Error("track column should be available")
	}
}
