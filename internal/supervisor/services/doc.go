// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

/*
Package services provides the suture.Service wrappers of the dashboard server.

HTTP Server (HTTPServerService):
  - Translates ListenAndServe into a context-aware Serve
  - Drains connections for a configurable timeout on shutdown

Dataset Loader (DatasetLoaderService):
  - Runs playimport.Loader once at startup
  - Records import metrics and logs the ImportStats
  - Optionally mirrors the records into DuckDB, which then answers the
    coarse-window queries
  - Reports the outcome to the selection controller and returns
    suture.ErrDoNotRestart

The selection controller and the WebSocket hub implement suture.Service
themselves and are added to the tree directly.
*/
package services
