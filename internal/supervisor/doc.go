// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

/*
Package supervisor runs the dashboard server's long-lived services under a
suture v4 tree.

# Overview

	RootSupervisor ("soundtrail")
	├── DataSupervisor ("data-layer")
	│   └── DatasetLoaderService
	├── MessagingSupervisor ("messaging-layer")
	│   ├── selection.Controller
	│   └── websocket.Hub
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

The loader runs once. It hands the parsed dataset (or the load error) to
the selection controller and then returns suture.ErrDoNotRestart, so a
broken export is reported on the dashboard instead of being retried in a
loop. The controller and the hub restart independently of the HTTP
server.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddMessagingService(controller)
	tree.AddMessagingService(hub)
	tree.AddDataService(services.NewDatasetLoaderService(loader, controller, mirror))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	errCh := tree.ServeBackground(ctx)

# Service Interface

All services implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Return behavior:
  - suture.ErrDoNotRestart: the service is finished and is not restarted
  - other error: the service crashed and is restarted with backoff
  - ctx.Err(): shutdown was requested

# Failure Handling

Failures decay over FailureDecay seconds. Once the count exceeds
FailureThreshold the supervisor waits FailureBackoff before the next
restart. Supervisor events are logged through sutureslog on the
application's slog logger, which writes to zerolog.

# Debugging Shutdown Issues

Services that outlive ShutdownTimeout are listed by
UnstoppedServiceReport.

DuckDB is not supervised. It is an embedded library owned by the
database package and closed by main after the tree stops.
*/
package supervisor
