// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

/*
Package main is the entry point for the Soundtrail server.

Soundtrail loads a personal listening-history export once at startup and
serves a single-page dashboard: a calendar heatmap with draggable range
handles, activity charts and top artist/track tables. Every selection change
re-renders the affected regions on the server and pushes the new snapshot to
connected browsers over WebSocket.

# Application Architecture

	RootSupervisor ("soundtrail")
	├── DataSupervisor ("data-layer")
	│   └── Dataset loader (runs once)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── Selection controller
	│   └── WebSocket hub
	└── APISupervisor ("api-layer")
	    └── HTTP server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional config file and environment
 2. Logging: zerolog with JSON/console output modes
 3. Render cache (optional)
 4. Selection dashboard and controller
 5. WebSocket hub
 6. DuckDB mirror (STORE_BACKEND=duckdb) and Badger snapshot (SNAPSHOT_PATH)
 7. HTTP router
 8. Supervisor tree

The dashboard answers requests immediately with a loading state. The loader
installs the dataset once parsing finishes, or marks it unavailable on failure.

# Configuration

The dataset source is required:

	DATASET_PATH=/data/history.csv   # or DATASET_URL=https://...
	DATASET_TIMEZONE=Europe/Berlin   # defaults to the local zone

Optional settings:

	STORE_BACKEND=duckdb             # memory (default) or duckdb
	DUCKDB_PATH=/data/soundtrail.duckdb
	SNAPSHOT_PATH=/data/snapshot     # Badger cache of the parsed export
	HTTP_PORT=3858
	LOG_LEVEL=debug
	LOG_FORMAT=console

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
server gracefully, closes WebSocket clients and waits up to
HTTP_SHUTDOWN_TIMEOUT for every service to return.
*/
package main
