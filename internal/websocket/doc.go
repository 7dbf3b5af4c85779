// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

/*
Package websocket carries live dashboard updates to the browser and drag
events back to the selection controller.

Outbound messages, {"type": ..., "data": ...}:

	dashboard   a complete selection.Snapshot after every pipeline run
	drag_frame  handle positions and band label for one applied pointer move
	pong        reply to a client ping
	error       {"code", "message"} for a rejected client message

Inbound messages are flat JSON objects:

	{"type":"pointer_down","handle":"start"}
	{"type":"pointer_move","x":131}
	{"type":"pointer_up"}
	{"type":"ping"}

The Hub implements selection.Publisher and runs as a suture service. Each
Client runs a read pump and a write pump; the read pump forwards pointer
events to the controller and answers pings. Clients whose send buffer
fills up are dropped.
*/
package websocket
