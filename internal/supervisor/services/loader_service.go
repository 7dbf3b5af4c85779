// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/thejerf/suture/v4"

	playimport "github.com/tomtom215/soundtrail/internal/import"
	"github.com/tomtom215/soundtrail/internal/logging"
	"github.com/tomtom215/soundtrail/internal/metrics"
	"github.com/tomtom215/soundtrail/internal/models"
	"github.com/tomtom215/soundtrail/internal/selection"
	"github.com/tomtom215/soundtrail/internal/store"
)

// DatasetLoader reads and parses the export. Satisfied by *playimport.Loader.
type DatasetLoader interface {
	Load(ctx context.Context) (*playimport.Dataset, *playimport.ImportStats, error)
	Source() string
}

// DatasetSink receives the outcome of the load. Satisfied by
// *selection.Controller.
type DatasetSink interface {
	Loaded(ctx context.Context, st *store.Store, src store.WindowSource) (*selection.Snapshot, error)
	Failed(ctx context.Context, loadErr error) (*selection.Snapshot, error)
}

// RecordMirror copies the records into a second backend that then answers
// coarse-window queries. Satisfied by *database.DB.
type RecordMirror interface {
	store.WindowSource
	Mirror(ctx context.Context, records []models.PlayRecord) error
}

// DatasetLoaderService loads the dataset once and hands it to the sink.
type DatasetLoaderService struct {
	loader DatasetLoader
	sink   DatasetSink
	mirror RecordMirror
	name   string
}

// NewDatasetLoaderService creates the loader service. mirror may be nil, in
// which case windows are answered by the in-memory store.
func NewDatasetLoaderService(loader DatasetLoader, sink DatasetSink, mirror RecordMirror) *DatasetLoaderService {
	return &DatasetLoaderService{
		loader: loader,
		sink:   sink,
		mirror: mirror,
		name:   "dataset-loader",
	}
}

// Serve implements suture.Service. After the sink has been told the outcome
// it returns suture.ErrDoNotRestart; a load failure is shown on the
// dashboard rather than retried.
func (s *DatasetLoaderService) Serve(ctx context.Context) error {
	log := logging.WithComponent("dataset-loader")
	log.Info().Str("source", s.loader.Source()).Msg("Loading listening history")

	ds, stats, err := s.loader.Load(ctx)
	if stats != nil {
		metrics.RecordImport(stats.Duration(), stats.Imported, stats.SkippedTimestamp, stats.SkippedDuration)
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Error().Err(err).Str("source", s.loader.Source()).Msg("Dataset load failed")
		if _, sinkErr := s.sink.Failed(ctx, err); sinkErr != nil {
			return fmt.Errorf("report load failure: %w", sinkErr)
		}
		return suture.ErrDoNotRestart
	}

	st := store.New(ds.Records, ds.Availability)
	metrics.DatasetRecords.Set(float64(st.Len()))
	log.Info().
		Str("format", stats.Format).
		Int64("rows", stats.Rows).
		Int64("imported", stats.Imported).
		Int64("skipped_timestamp", stats.SkippedTimestamp).
		Int64("skipped_duration", stats.SkippedDuration).
		Bool("from_snapshot", stats.FromSnapshot).
		Dur("duration", stats.Duration()).
		Msg("Dataset parsed")

	var src store.WindowSource
	if s.mirror != nil {
		start := time.Now()
		if err := s.mirror.Mirror(ctx, st.Records()); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn().Err(err).Msg("Failed to mirror records, serving windows from memory")
		} else {
			src = s.mirror
			log.Info().Int("records", st.Len()).Dur("duration", time.Since(start)).Msg("Records mirrored")
		}
	}

	if _, err := s.sink.Loaded(ctx, st, src); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("install dataset: %w", err)
	}
	return suture.ErrDoNotRestart
}

// String implements fmt.Stringer for suture logging.
func (s *DatasetLoaderService) String() string {
	return s.name
}
